package provisioning

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/imamik/ocpctl/internal/config"
	"github.com/imamik/ocpctl/internal/platform/awscloud"
	"github.com/imamik/ocpctl/internal/platform/dnsprobe"
	"github.com/imamik/ocpctl/internal/platform/download"
	"github.com/imamik/ocpctl/internal/platform/executor"
	"github.com/imamik/ocpctl/internal/prompt"
	"github.com/imamik/ocpctl/internal/util/fsutil"
)

// Context wraps all dependencies and state needed for a provisioning phase.
// Credentials travel in State.AWS; nothing reads or writes process environment.
type Context struct {
	context.Context
	Config   *config.Config
	State    *State
	Cloud    awscloud.Factory
	Prompt   prompt.Provider
	Runner   executor.Runner
	Fetcher  download.Fetcher
	Prober   dnsprobe.Prober
	Observer Observer
	Timeouts *config.Timeouts

	// Owner receives ownership of keys, manifests and kube config.
	Owner *fsutil.Owner
	// Out is operator-facing output: the nameserver list and installer stream.
	Out io.Writer
	// Now is the clock used for caller references and backup names.
	Now func() time.Time

	// Checkpoint is the last workflow state reached by Run.
	Checkpoint WorkflowState
}

// Deps are the collaborators a Context is built from.
type Deps struct {
	Cloud    awscloud.Factory
	Prompt   prompt.Provider
	Runner   executor.Runner
	Fetcher  download.Fetcher
	Prober   dnsprobe.Prober
	Observer Observer
	Owner    *fsutil.Owner
	Out      io.Writer
}

// NewContext creates a new provisioning context. Missing observer and output
// default to the console.
func NewContext(ctx context.Context, cfg *config.Config, deps Deps) *Context {
	observer := deps.Observer
	if observer == nil {
		observer = NewConsoleObserver()
	}
	out := deps.Out
	if out == nil {
		out = os.Stdout
	}
	return &Context{
		Context:    ctx,
		Config:     cfg,
		State:      NewState(),
		Cloud:      deps.Cloud,
		Prompt:     deps.Prompt,
		Runner:     deps.Runner,
		Fetcher:    deps.Fetcher,
		Prober:     deps.Prober,
		Observer:   observer,
		Timeouts:   config.LoadTimeouts(),
		Owner:      deps.Owner,
		Out:        out,
		Now:        time.Now,
		Checkpoint: StateInitial,
	}
}

// HomeDir returns the owner's home directory, falling back to the invoking user's.
func (c *Context) HomeDir() (string, error) {
	if c.Owner != nil && c.Owner.HomeDir != "" {
		return c.Owner.HomeDir, nil
	}
	return os.UserHomeDir()
}

// WithTimeout derives a child context bounded by d for a single API call.
// A zero d only inherits cancellation.
func (c *Context) WithTimeout(d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(c.Context)
	}
	return context.WithTimeout(c.Context, d)
}
