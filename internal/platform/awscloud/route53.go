package awscloud

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/route53"
	"github.com/aws/aws-sdk-go-v2/service/route53/types"
)

// Route53API is the subset of the Route 53 client used for zone management.
type Route53API interface {
	ListHostedZonesByName(ctx context.Context, params *route53.ListHostedZonesByNameInput, optFns ...func(*route53.Options)) (*route53.ListHostedZonesByNameOutput, error)
	CreateHostedZone(ctx context.Context, params *route53.CreateHostedZoneInput, optFns ...func(*route53.Options)) (*route53.CreateHostedZoneOutput, error)
	GetHostedZone(ctx context.Context, params *route53.GetHostedZoneInput, optFns ...func(*route53.Options)) (*route53.GetHostedZoneOutput, error)
}

// Route53Zones implements ZoneManager.
type Route53Zones struct {
	api Route53API
}

// NewRoute53Zones wraps a Route 53 client.
func NewRoute53Zones(api Route53API) *Route53Zones {
	return &Route53Zones{api: api}
}

// FindZone returns the first public zone whose name equals domain.
// Private zones with the same name are ignored.
func (r *Route53Zones) FindZone(ctx context.Context, domain string) (*Zone, error) {
	name := NormalizeDomain(domain)
	input := &route53.ListHostedZonesByNameInput{
		DNSName:  aws.String(name),
		MaxItems: aws.Int32(100),
	}

	for {
		out, err := r.api.ListHostedZonesByName(ctx, input)
		if err != nil {
			return nil, fmt.Errorf("failed to list hosted zones for %s: %w", name, err)
		}

		// Results are sorted by name starting at DNSName, so the first
		// non-matching name ends the search.
		for _, hz := range out.HostedZones {
			if NormalizeDomain(aws.ToString(hz.Name)) != name {
				return nil, nil
			}
			if hz.Config != nil && hz.Config.PrivateZone {
				continue
			}
			return &Zone{ID: ShortZoneID(aws.ToString(hz.Id)), Name: name}, nil
		}

		if !out.IsTruncated || out.NextDNSName == nil {
			return nil, nil
		}
		input.DNSName = out.NextDNSName
		input.HostedZoneId = out.NextHostedZoneId
	}
}

// CreateZone creates a public hosted zone for domain.
func (r *Route53Zones) CreateZone(ctx context.Context, domain, callerReference string) (*Zone, error) {
	name := NormalizeDomain(domain)
	out, err := r.api.CreateHostedZone(ctx, &route53.CreateHostedZoneInput{
		Name:            aws.String(name),
		CallerReference: aws.String(callerReference),
		HostedZoneConfig: &types.HostedZoneConfig{
			Comment:     aws.String("managed by ocpctl"),
			PrivateZone: false,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create hosted zone %s: %w", name, err)
	}
	if out.HostedZone == nil {
		return nil, fmt.Errorf("create hosted zone %s returned no zone", name)
	}

	zone := &Zone{
		ID:      ShortZoneID(aws.ToString(out.HostedZone.Id)),
		Name:    name,
		Created: true,
	}
	if out.DelegationSet != nil {
		zone.NameServers = cleanNameServers(out.DelegationSet.NameServers)
	}
	return zone, nil
}

// GetZone describes a zone including its delegation set.
func (r *Route53Zones) GetZone(ctx context.Context, id string) (*Zone, error) {
	out, err := r.api.GetHostedZone(ctx, &route53.GetHostedZoneInput{Id: aws.String(ShortZoneID(id))})
	if err != nil {
		return nil, fmt.Errorf("failed to get hosted zone %s: %w", id, err)
	}
	if out.HostedZone == nil {
		return nil, fmt.Errorf("get hosted zone %s returned no zone", id)
	}

	zone := &Zone{
		ID:   ShortZoneID(aws.ToString(out.HostedZone.Id)),
		Name: NormalizeDomain(aws.ToString(out.HostedZone.Name)),
	}
	if out.DelegationSet != nil {
		zone.NameServers = cleanNameServers(out.DelegationSet.NameServers)
	}
	return zone, nil
}

func cleanNameServers(in []string) []string {
	out := make([]string, 0, len(in))
	for _, ns := range in {
		ns = strings.TrimSuffix(strings.TrimSpace(ns), ".")
		if ns != "" {
			out = append(out, ns)
		}
	}
	return out
}
