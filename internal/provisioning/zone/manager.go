package zone

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/imamik/ocpctl/internal/platform/awscloud"
	"github.com/imamik/ocpctl/internal/provisioning"
	"github.com/imamik/ocpctl/internal/util/fsutil"
)

const resourceType = "hosted zone"

// Ensure returns the public hosted zone for domain, creating it when none
// exists. At most one zone is created per domain: a concurrent creator that
// wins the race is picked up by a second lookup.
func Ensure(ctx context.Context, zones awscloud.ZoneManager, domain string, now func() time.Time, observer provisioning.Observer) (*awscloud.Zone, error) {
	name := awscloud.NormalizeDomain(domain)

	existing, err := zones.FindZone(ctx, name)
	if err != nil {
		return nil, classify(err)
	}
	if existing != nil {
		provisioning.LogResourceExists(observer, phaseZone, resourceType, name, existing.ID)
		return withNameServers(ctx, zones, existing)
	}

	provisioning.LogResourceCreating(observer, phaseZone, resourceType, name)
	created, err := zones.CreateZone(ctx, name, CallerReference(domain, now()))
	if awscloud.IsZoneAlreadyExists(err) {
		observer.Warnf("hosted zone %s was created concurrently, discovering it", name)
		existing, err = zones.FindZone(ctx, name)
		if err != nil {
			return nil, classify(err)
		}
		if existing == nil {
			return nil, provisioning.Failf(provisioning.ErrResourceState, "hosted zone %s reported as existing but cannot be found", name)
		}
		provisioning.LogResourceExists(observer, phaseZone, resourceType, name, existing.ID)
		return withNameServers(ctx, zones, existing)
	}
	if err != nil {
		return nil, classify(err)
	}

	provisioning.LogResourceCreated(observer, phaseZone, resourceType, name, created.ID)
	if len(created.NameServers) > 0 {
		return created, nil
	}
	zone, err := withNameServers(ctx, zones, created)
	if err != nil {
		return nil, err
	}
	zone.Created = true
	return zone, nil
}

// Lookup returns the zone for domain with its nameservers, or nil when it does not exist.
// It never modifies anything.
func Lookup(ctx context.Context, zones awscloud.ZoneManager, domain string) (*awscloud.Zone, error) {
	existing, err := zones.FindZone(ctx, awscloud.NormalizeDomain(domain))
	if err != nil {
		return nil, classify(err)
	}
	if existing == nil {
		return nil, nil
	}
	return withNameServers(ctx, zones, existing)
}

// CallerReference derives the idempotency token for CreateHostedZone.
func CallerReference(domain string, t time.Time) string {
	return fmt.Sprintf("%s-%d", strings.TrimSuffix(awscloud.NormalizeDomain(domain), "."), t.UnixNano())
}

// WriteNameservers stores the list one per line, replacing the file atomically.
func WriteNameservers(path string, nameServers []string, owner *fsutil.Owner) error {
	data := strings.Join(nameServers, "\n") + "\n"
	if err := fsutil.WriteFileAtomic(path, []byte(data), fsutil.PublicFileMode, owner); err != nil {
		return fmt.Errorf("failed to write nameservers file: %w", err)
	}
	return nil
}

func withNameServers(ctx context.Context, zones awscloud.ZoneManager, zone *awscloud.Zone) (*awscloud.Zone, error) {
	full, err := zones.GetZone(ctx, zone.ID)
	if err != nil {
		return nil, classify(err)
	}
	if len(full.NameServers) == 0 {
		return nil, provisioning.Failf(provisioning.ErrResourceState, "hosted zone %s has no delegation nameservers", zone.ID)
	}
	full.Created = zone.Created
	if full.Name == "" {
		full.Name = zone.Name
	}
	return full, nil
}

func classify(err error) error {
	if awscloud.IsAuthError(err) {
		return provisioning.Fail(provisioning.ErrAuthentication, err)
	}
	if awscloud.IsNoSuchZone(err) {
		return provisioning.Fail(provisioning.ErrResourceState, err)
	}
	return err
}
