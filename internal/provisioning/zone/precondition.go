package zone

import (
	"fmt"

	"github.com/imamik/ocpctl/internal/provisioning"
)

// PreconditionChecker verifies at the start of an install run that the zone
// exists. It re-queries Route 53 every run and never creates anything.
type PreconditionChecker struct{}

// NewPreconditionChecker creates the zone precondition stage of the install run.
func NewPreconditionChecker() *PreconditionChecker {
	return &PreconditionChecker{}
}

// Name implements provisioning.Phase.
func (p *PreconditionChecker) Name() string {
	return phasePrecondition
}

// Provision implements provisioning.Phase.
func (p *PreconditionChecker) Provision(ctx *provisioning.Context) error {
	domain := ctx.Config.BaseDomain

	apiCtx, cancel := ctx.WithTimeout(ctx.Timeouts.APITimeout)
	defer cancel()
	zone, err := Lookup(apiCtx, ctx.Cloud.ZoneManager(ctx.State.AWS), domain)
	if err != nil {
		return fmt.Errorf("failed to look up hosted zone for %s: %w", domain, err)
	}
	if zone == nil {
		return provisioning.Failf(provisioning.ErrResourceState,
			"no public hosted zone exists for %s; run `ocpctl dns` first", domain)
	}

	provisioning.LogCheck(ctx.Observer, phasePrecondition, zone.Name, nil, fmt.Sprintf("hosted zone %s present", zone.ID))
	ctx.State.Zone = zone
	return nil
}
