package awscloud

import (
	"errors"

	"github.com/aws/smithy-go"
)

// authErrorCodes are the API error codes that mean the caller's credentials
// were rejected rather than the request being malformed.
var authErrorCodes = map[string]bool{
	"InvalidClientTokenId":        true,
	"SignatureDoesNotMatch":       true,
	"ExpiredToken":                true,
	"ExpiredTokenException":       true,
	"AccessDenied":                true,
	"AccessDeniedException":       true,
	"UnrecognizedClientException": true,
	"InvalidAccessKeyId":          true,
	"AuthFailure":                 true,
}

// ErrorCode returns the API error code carried by err, or "".
func ErrorCode(err error) string {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		return apiErr.ErrorCode()
	}
	return ""
}

// IsAuthError reports whether err is a credential rejection.
func IsAuthError(err error) bool {
	return authErrorCodes[ErrorCode(err)]
}

// IsZoneAlreadyExists reports whether a CreateHostedZone call lost a race with another creator.
func IsZoneAlreadyExists(err error) bool {
	return ErrorCode(err) == "HostedZoneAlreadyExists"
}

// IsNoSuchZone reports whether err says the hosted zone does not exist.
func IsNoSuchZone(err error) bool {
	return ErrorCode(err) == "NoSuchHostedZone"
}
