package handlers

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/imamik/ocpctl/internal/config"
	"github.com/imamik/ocpctl/internal/orchestration"
	"github.com/imamik/ocpctl/internal/platform/awscloud"
	"github.com/imamik/ocpctl/internal/platform/dnsprobe"
	"github.com/imamik/ocpctl/internal/platform/download"
	"github.com/imamik/ocpctl/internal/platform/executor"
	"github.com/imamik/ocpctl/internal/prompt"
	"github.com/imamik/ocpctl/internal/provisioning"
	"github.com/imamik/ocpctl/internal/util/fsutil"
)

// Factory function variables - can be replaced in tests for dependency injection.
var (
	lookupEnv = os.LookupEnv

	lookupOwner = fsutil.LookupOwner

	newCloud = func() awscloud.Factory {
		return awscloud.NewClients()
	}

	newPrompt = func() prompt.Provider {
		return prompt.New(os.Stdin, os.Stderr)
	}

	newRunner = func() executor.Runner {
		return executor.New()
	}

	newFetcher = func() download.Fetcher {
		return download.NewHTTPFetcher(&http.Client{})
	}

	newProber = func(t *config.Timeouts) dnsprobe.Prober {
		return dnsprobe.New(t.ProbeTimeout)
	}

	newObserver = func() provisioning.Observer {
		return provisioning.NewConsoleObserver()
	}

	// prepareContext lets tests adjust the context before the run starts.
	prepareContext = func(*provisioning.Context) {}

	stdout io.Writer = os.Stdout

	colorOutput = func() bool {
		return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
	}
)

// loadConfig merges defaults, file, environment and flags, then validates
// with validate. Every failure is an ErrInvalidConfig.
func loadConfig(opts *Options, validate func(*config.Config) error) (*config.Config, error) {
	cfg, err := config.Load(opts.ConfigPath, lookupEnv)
	if err != nil {
		return nil, provisioning.Fail(provisioning.ErrInvalidConfig, err)
	}
	opts.apply(cfg)
	if err := validate(cfg); err != nil {
		return nil, provisioning.Fail(provisioning.ErrInvalidConfig, fmt.Errorf("invalid configuration: %w", err))
	}
	return cfg, nil
}

// execute runs the named plan and returns the finished context.
func execute(ctx context.Context, name string, cfg *config.Config) (*provisioning.Context, error) {
	owner, err := lookupOwner(cfg.TargetUser)
	if err != nil {
		return nil, provisioning.Fail(provisioning.ErrInvalidConfig, err)
	}

	runner, err := orchestration.NewRunner(name)
	if err != nil {
		return nil, err
	}

	pctx := provisioning.NewContext(ctx, cfg, provisioning.Deps{
		Cloud:    newCloud(),
		Prompt:   newPrompt(),
		Runner:   newRunner(),
		Fetcher:  newFetcher(),
		Observer: newObserver(),
		Owner:    owner,
		Out:      stdout,
	})
	pctx.Prober = newProber(pctx.Timeouts)
	prepareContext(pctx)

	return pctx, runner.Run(pctx)
}
