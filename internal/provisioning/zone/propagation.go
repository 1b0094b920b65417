package zone

import (
	"context"
	"fmt"
	"strings"

	"github.com/samber/lo"

	"github.com/imamik/ocpctl/internal/provisioning"
	"github.com/imamik/ocpctl/internal/util/retry"
)

// PropagationChecker queries every delegation nameserver for the zone's NS
// records. It is informational: failed nameservers are reported, not fatal.
type PropagationChecker struct{}

// NewPropagationChecker creates the propagation stage of the DNS run.
func NewPropagationChecker() *PropagationChecker {
	return &PropagationChecker{}
}

// Name implements provisioning.Phase.
func (p *PropagationChecker) Name() string {
	return phasePropagation
}

// Provision implements provisioning.Phase. Only cancellation returns an error.
func (p *PropagationChecker) Provision(ctx *provisioning.Context) error {
	zone := ctx.State.Zone
	if zone == nil || !ctx.State.Confirmed {
		return fmt.Errorf("propagation check requires a confirmed zone")
	}

	results := make([]provisioning.ProbeResult, 0, len(zone.NameServers))
	for _, ns := range zone.NameServers {
		result := p.probe(ctx, ns, zone.Name, zone.NameServers)
		results = append(results, result)

		detail := fmt.Sprintf("serves %s after %d attempt(s)", strings.Join(result.Records, ", "), result.Attempts)
		provisioning.LogCheck(ctx.Observer, phasePropagation, ns, result.Err, detail)

		if err := ctx.Err(); err != nil {
			ctx.State.Propagation = results
			return err
		}
	}
	ctx.State.Propagation = results

	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
		}
	}
	if failed > 0 {
		ctx.Observer.Warnf("%d of %d nameservers did not answer for %s yet; delegation may still be propagating", failed, len(results), zone.Name)
	} else {
		ctx.Observer.Printf("All %d nameservers answer for %s", len(results), zone.Name)
	}
	return nil
}

func (p *PropagationChecker) probe(ctx *provisioning.Context, ns, domain string, expected []string) provisioning.ProbeResult {
	result := provisioning.ProbeResult{NameServer: ns}
	result.Err = retry.Do(ctx, func(attempt int) error {
		result.Attempts = attempt
		queryCtx, cancel := context.WithTimeout(ctx, ctx.Timeouts.ProbeTimeout)
		defer cancel()

		records, err := ctx.Prober.Probe(queryCtx, ns, domain)
		if err != nil {
			return err
		}
		result.Records = records
		if !overlaps(records, expected) {
			return fmt.Errorf("%s serves NS %s, none of which belong to the zone", ns, strings.Join(records, ", "))
		}
		return nil
	},
		retry.WithAttempts(ctx.Timeouts.ProbeAttempts),
		retry.WithInitialDelay(ctx.Timeouts.ProbeDelay),
	)
	return result
}

func overlaps(records, expected []string) bool {
	return lo.Some(lo.Map(records, canonical), lo.Map(expected, canonical))
}

func canonical(name string, _ int) string {
	return strings.ToLower(strings.TrimSuffix(name, "."))
}
