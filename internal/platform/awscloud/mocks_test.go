package awscloud

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/route53"
	"github.com/aws/aws-sdk-go-v2/service/sts"
	"github.com/stretchr/testify/mock"
)

type mockRoute53 struct {
	mock.Mock
}

func (m *mockRoute53) ListHostedZonesByName(ctx context.Context, params *route53.ListHostedZonesByNameInput, _ ...func(*route53.Options)) (*route53.ListHostedZonesByNameOutput, error) {
	args := m.Called(ctx, params)
	out, _ := args.Get(0).(*route53.ListHostedZonesByNameOutput)
	return out, args.Error(1)
}

func (m *mockRoute53) CreateHostedZone(ctx context.Context, params *route53.CreateHostedZoneInput, _ ...func(*route53.Options)) (*route53.CreateHostedZoneOutput, error) {
	args := m.Called(ctx, params)
	out, _ := args.Get(0).(*route53.CreateHostedZoneOutput)
	return out, args.Error(1)
}

func (m *mockRoute53) GetHostedZone(ctx context.Context, params *route53.GetHostedZoneInput, _ ...func(*route53.Options)) (*route53.GetHostedZoneOutput, error) {
	args := m.Called(ctx, params)
	out, _ := args.Get(0).(*route53.GetHostedZoneOutput)
	return out, args.Error(1)
}

type mockSTS struct {
	mock.Mock
}

func (m *mockSTS) GetCallerIdentity(ctx context.Context, params *sts.GetCallerIdentityInput, _ ...func(*sts.Options)) (*sts.GetCallerIdentityOutput, error) {
	args := m.Called(ctx, params)
	out, _ := args.Get(0).(*sts.GetCallerIdentityOutput)
	return out, args.Error(1)
}
