package awscloud

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
)

// NewConfig builds an aws.Config that uses exactly the given static credentials and region.
func NewConfig(ctx context.Context, creds Credentials) (aws.Config, error) {
	if !creds.Complete() {
		return aws.Config{}, fmt.Errorf("access key id and secret access key are required")
	}
	if creds.Region == "" {
		return aws.Config{}, fmt.Errorf("region is required")
	}

	cfg, err := config.LoadDefaultConfig(ctx,
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(creds.AccessKeyID, creds.SecretAccessKey, "")),
		config.WithRegion(creds.Region),
	)
	if err != nil {
		return aws.Config{}, fmt.Errorf("failed to load AWS config: %w", err)
	}
	return cfg, nil
}
