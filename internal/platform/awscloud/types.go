package awscloud

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
)

// Credentials is the resolved cloud identity for one run.
type Credentials struct {
	Profile         string
	AccessKeyID     string
	SecretAccessKey string
	Region          string
	Output          string
}

// String masks both keys.
func (c Credentials) String() string {
	return fmt.Sprintf("Credentials{Profile:%s Region:%s AccessKeyID:%s}", c.Profile, c.Region, maskKey(c.AccessKeyID))
}

// Complete reports whether both halves of the key pair are present.
func (c Credentials) Complete() bool {
	return c.AccessKeyID != "" && c.SecretAccessKey != ""
}

// Identity is the caller identity reported by STS.
type Identity struct {
	Account string
	ARN     string
	UserID  string
}

// Zone is a public Route 53 hosted zone and its delegation set.
type Zone struct {
	ID          string
	Name        string
	NameServers []string
	// Created is true when this run created the zone rather than discovering it.
	Created bool
}

// IdentityVerifier performs a read-only identity probe.
type IdentityVerifier interface {
	CallerIdentity(ctx context.Context) (*Identity, error)
}

// ZoneManager finds, creates and describes hosted zones.
type ZoneManager interface {
	// FindZone returns the public zone named domain, or nil when none exists.
	FindZone(ctx context.Context, domain string) (*Zone, error)
	// CreateZone creates a public zone. callerReference makes retries idempotent.
	CreateZone(ctx context.Context, domain, callerReference string) (*Zone, error)
	// GetZone returns the zone with its delegation nameservers.
	GetZone(ctx context.Context, id string) (*Zone, error)
}

// Archiver stores an artifact in object storage.
type Archiver interface {
	Archive(ctx context.Context, bucket, key string, data []byte) error
}

// Factory builds API clients from resolved credentials.
type Factory interface {
	Config(ctx context.Context, creds Credentials) (aws.Config, error)
	IdentityVerifier(cfg aws.Config) IdentityVerifier
	ZoneManager(cfg aws.Config) ZoneManager
	Archiver(cfg aws.Config) Archiver
}

// NormalizeDomain lowercases domain and adds the trailing dot Route 53 uses.
func NormalizeDomain(domain string) string {
	d := strings.ToLower(strings.TrimSpace(domain))
	if !strings.HasSuffix(d, ".") {
		d += "."
	}
	return d
}

// ShortZoneID strips the "/hostedzone/" prefix Route 53 returns.
func ShortZoneID(id string) string {
	return strings.TrimPrefix(id, "/hostedzone/")
}

func maskKey(s string) string {
	if len(s) <= 4 {
		return strings.Repeat("*", len(s))
	}
	return s[:4] + "****"
}
