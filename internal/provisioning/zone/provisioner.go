package zone

import (
	"fmt"

	"github.com/imamik/ocpctl/internal/provisioning"
)

const (
	phaseZone         = "zone"
	phasePropagation  = "propagation"
	phasePrecondition = "zone-precondition"
)

// Provisioner creates or discovers the zone, publishes its nameservers and
// waits for the operator to confirm delegation.
type Provisioner struct{}

// NewProvisioner creates the zone stage of the DNS run.
func NewProvisioner() *Provisioner {
	return &Provisioner{}
}

// Name implements provisioning.Phase.
func (p *Provisioner) Name() string {
	return phaseZone
}

// Provision implements provisioning.Phase.
func (p *Provisioner) Provision(ctx *provisioning.Context) error {
	domain := ctx.Config.BaseDomain

	apiCtx, cancel := ctx.WithTimeout(ctx.Timeouts.APITimeout)
	defer cancel()
	zone, err := Ensure(apiCtx, ctx.Cloud.ZoneManager(ctx.State.AWS), domain, ctx.Now, ctx.Observer)
	if err != nil {
		return fmt.Errorf("failed to ensure hosted zone for %s: %w", domain, err)
	}
	ctx.State.Zone = zone

	path := ctx.Config.NameserversFile
	if err := WriteNameservers(path, zone.NameServers, ctx.Owner); err != nil {
		return err
	}
	ctx.State.NameserversFile = path
	ctx.Observer.Printf("Wrote %d nameservers for %s to %s", len(zone.NameServers), zone.Name, path)

	fmt.Fprintf(ctx.Out, "\nConfigure these nameservers for %s at your domain registrar:\n\n", domain)
	for _, ns := range zone.NameServers {
		fmt.Fprintf(ctx.Out, "  %s\n", ns)
	}
	fmt.Fprintf(ctx.Out, "\nThe list is also saved in %s.\n\n", path)

	ok, err := ctx.Prompt.Confirm(ctx, fmt.Sprintf("Have the nameservers for %s been configured at the registrar?", domain))
	if err != nil {
		return fmt.Errorf("confirmation failed: %w", err)
	}
	if !ok {
		return provisioning.Failf(provisioning.ErrGateRefused,
			"nameserver delegation for %s was not confirmed; re-run once the registrar is updated", domain)
	}
	ctx.State.Confirmed = true
	return nil
}
