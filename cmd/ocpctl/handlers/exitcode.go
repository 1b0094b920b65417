package handlers

import (
	"errors"

	"github.com/imamik/ocpctl/internal/provisioning"
)

// Process exit codes.
const (
	ExitOK              = 0
	ExitGeneric         = 1
	ExitConfig          = 2
	ExitAuthentication  = 3
	ExitResourceState   = 4
	ExitGateRefused     = 5
	ExitToolAcquisition = 6
	ExitExternalProcess = 7
)

var exitCodes = []struct {
	kind error
	code int
}{
	{provisioning.ErrInvalidConfig, ExitConfig},
	{provisioning.ErrAuthentication, ExitAuthentication},
	{provisioning.ErrResourceState, ExitResourceState},
	{provisioning.ErrGateRefused, ExitGateRefused},
	{provisioning.ErrToolAcquisition, ExitToolAcquisition},
	{provisioning.ErrExternalProcess, ExitExternalProcess},
}

// ExitCode maps a run error to the process exit status.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	for _, e := range exitCodes {
		if errors.Is(err, e.kind) {
			return e.code
		}
	}
	return ExitGeneric
}
