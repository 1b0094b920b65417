package orchestration

import (
	"fmt"

	"github.com/imamik/ocpctl/internal/provisioning"
)

// Runner executes one plan against a provisioning context.
type Runner struct {
	plan *provisioning.Plan
}

// NewRunner builds the plan named name.
func NewRunner(name string) (*Runner, error) {
	var (
		plan *provisioning.Plan
		err  error
	)
	switch name {
	case DNS:
		plan, err = DNSPlan()
	case Install:
		plan, err = InstallPlan()
	default:
		return nil, fmt.Errorf("unknown run %q", name)
	}
	if err != nil {
		return nil, err
	}
	return &Runner{plan: plan}, nil
}

// Plan returns the plan the runner walks.
func (r *Runner) Plan() *provisioning.Plan {
	return r.plan
}

// Run walks the plan. On failure ctx.Checkpoint is provisioning.StateFailed
// and ctx.State keeps whatever the completed stages produced.
func (r *Runner) Run(ctx *provisioning.Context) error {
	ctx.Observer = ctx.Observer.WithFields(map[string]string{"run": r.plan.Name, "cluster": ctx.Config.ClusterName})
	return provisioning.Run(ctx, r.plan)
}
