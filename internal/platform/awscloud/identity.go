package awscloud

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sts"
)

// STSAPI is the subset of the STS client used for the identity probe.
type STSAPI interface {
	GetCallerIdentity(ctx context.Context, params *sts.GetCallerIdentityInput, optFns ...func(*sts.Options)) (*sts.GetCallerIdentityOutput, error)
}

// STSVerifier implements IdentityVerifier.
type STSVerifier struct {
	api STSAPI
}

// NewSTSVerifier wraps an STS client.
func NewSTSVerifier(api STSAPI) *STSVerifier {
	return &STSVerifier{api: api}
}

// CallerIdentity calls sts:GetCallerIdentity. It never modifies anything.
func (v *STSVerifier) CallerIdentity(ctx context.Context) (*Identity, error) {
	out, err := v.api.GetCallerIdentity(ctx, &sts.GetCallerIdentityInput{})
	if err != nil {
		return nil, fmt.Errorf("failed to get caller identity: %w", err)
	}
	return &Identity{
		Account: aws.ToString(out.Account),
		ARN:     aws.ToString(out.Arn),
		UserID:  aws.ToString(out.UserId),
	}, nil
}
