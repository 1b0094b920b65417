package awscloud

import (
	"context"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sts"
	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCallerIdentity(t *testing.T) {
	api := new(mockSTS)
	api.On("GetCallerIdentity", mock.Anything, mock.Anything).Return(&sts.GetCallerIdentityOutput{
		Account: aws.String("123456789012"),
		Arn:     aws.String("arn:aws:iam::123456789012:user/ops"),
		UserId:  aws.String("AIDAEXAMPLE"),
	}, nil)

	id, err := NewSTSVerifier(api).CallerIdentity(context.Background())
	require.NoError(t, err)
	assert.Equal(t, &Identity{Account: "123456789012", ARN: "arn:aws:iam::123456789012:user/ops", UserID: "AIDAEXAMPLE"}, id)
}

func TestCallerIdentity_Rejected(t *testing.T) {
	api := new(mockSTS)
	api.On("GetCallerIdentity", mock.Anything, mock.Anything).
		Return(nil, &smithy.GenericAPIError{Code: "InvalidClientTokenId", Message: "bad token"})

	_, err := NewSTSVerifier(api).CallerIdentity(context.Background())
	require.Error(t, err)
	assert.True(t, IsAuthError(err))
}

func TestErrorClassification(t *testing.T) {
	tests := []struct {
		code       string
		auth       bool
		zoneExists bool
		noSuchZone bool
	}{
		{code: "SignatureDoesNotMatch", auth: true},
		{code: "ExpiredToken", auth: true},
		{code: "AccessDenied", auth: true},
		{code: "HostedZoneAlreadyExists", zoneExists: true},
		{code: "NoSuchHostedZone", noSuchZone: true},
		{code: "Throttling"},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			err := &smithy.GenericAPIError{Code: tt.code}
			assert.Equal(t, tt.code, ErrorCode(err))
			assert.Equal(t, tt.auth, IsAuthError(err))
			assert.Equal(t, tt.zoneExists, IsZoneAlreadyExists(err))
			assert.Equal(t, tt.noSuchZone, IsNoSuchZone(err))
		})
	}

	assert.Empty(t, ErrorCode(assert.AnError))
}

func TestNewConfig(t *testing.T) {
	cfg, err := NewConfig(context.Background(), Credentials{AccessKeyID: "AKIAEXAMPLE", SecretAccessKey: "secret", Region: "us-east-1"})
	require.NoError(t, err)
	assert.Equal(t, "us-east-1", cfg.Region)

	creds, err := cfg.Credentials.Retrieve(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "AKIAEXAMPLE", creds.AccessKeyID)
	assert.Equal(t, "secret", creds.SecretAccessKey)
}

func TestNewConfig_Incomplete(t *testing.T) {
	_, err := NewConfig(context.Background(), Credentials{AccessKeyID: "AKIAEXAMPLE", Region: "us-east-1"})
	assert.Error(t, err)

	_, err = NewConfig(context.Background(), Credentials{AccessKeyID: "AKIAEXAMPLE", SecretAccessKey: "s"})
	assert.Error(t, err)
}

func TestCredentials_StringMasksKeys(t *testing.T) {
	c := Credentials{Profile: "default", AccessKeyID: "AKIAEXAMPLEKEY", SecretAccessKey: "topsecret", Region: "us-east-1"}
	s := c.String()
	assert.NotContains(t, s, "topsecret")
	assert.NotContains(t, s, "AKIAEXAMPLEKEY")
	assert.Contains(t, s, "AKIA****")
}
