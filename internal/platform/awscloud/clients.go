package awscloud

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/route53"
	"github.com/aws/aws-sdk-go-v2/service/sts"

	s3archive "github.com/imamik/ocpctl/internal/platform/s3"
)

// Clients is the production Factory backed by the AWS SDK.
type Clients struct{}

// NewClients returns the SDK-backed factory.
func NewClients() *Clients {
	return &Clients{}
}

// Config implements Factory.
func (c *Clients) Config(ctx context.Context, creds Credentials) (aws.Config, error) {
	return NewConfig(ctx, creds)
}

// IdentityVerifier implements Factory.
func (c *Clients) IdentityVerifier(cfg aws.Config) IdentityVerifier {
	return NewSTSVerifier(sts.NewFromConfig(cfg))
}

// ZoneManager implements Factory.
func (c *Clients) ZoneManager(cfg aws.Config) ZoneManager {
	return NewRoute53Zones(route53.NewFromConfig(cfg))
}

// Archiver implements Factory.
func (c *Clients) Archiver(cfg aws.Config) Archiver {
	return s3archive.NewFromConfig(cfg)
}
