// Package main is the entry point for the ocpctl CLI.
//
// ocpctl provisions an OpenShift cluster on AWS in two runs: `ocpctl dns`
// prepares the public hosted zone for the base domain, and `ocpctl install`
// drives openshift-install once the zone is delegated.
//
// For detailed usage information, run:
//
//	ocpctl --help
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/imamik/ocpctl/cmd/ocpctl/commands"
	"github.com/imamik/ocpctl/cmd/ocpctl/handlers"
)

// Version information set by goreleaser at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	commands.SetVersionInfo(version, commit, date)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := commands.Root().ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(handlers.ExitCode(err))
	}
}
