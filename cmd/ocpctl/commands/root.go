// Package commands defines the CLI command structure and flag bindings.
//
// Commands only parse arguments; execution is delegated to the handlers
// package.
package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/ocpctl/cmd/ocpctl/handlers"
)

// Root returns the root command for the ocpctl CLI.
func Root() *cobra.Command {
	opts := &handlers.Options{}

	cmd := &cobra.Command{
		Use:           "ocpctl",
		Short:         "Provision OpenShift on AWS with openshift-install",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVarP(&opts.ConfigPath, "config", "c", "", "Path to configuration file (default: ocpctl.yaml if present)")

	cmd.AddCommand(DNS(opts))
	cmd.AddCommand(Install(opts))
	cmd.AddCommand(Version())
	cmd.AddCommand(Completion())

	return cmd
}

// bindCommon registers the flags both runs share.
func bindCommon(cmd *cobra.Command, opts *handlers.Options) {
	f := cmd.Flags()
	f.StringVar(&opts.BaseDomain, "base-domain", "", "Public DNS domain the cluster lives under")
	f.StringVar(&opts.Region, "region", "", "AWS region")
	f.StringVar(&opts.Profile, "profile", "", "AWS credential profile to write or read")
	f.StringVar(&opts.TargetUser, "target-user", "", "Account that owns generated files (default: invoking user)")
}
