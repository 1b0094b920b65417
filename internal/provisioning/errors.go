package provisioning

import (
	"errors"
	"fmt"
)

// Failure kinds. Stages tag their errors with one of these so the CLI can
// report a distinct exit status per class of failure.
var (
	// ErrAuthentication indicates missing or rejected cloud credentials.
	ErrAuthentication = errors.New("authentication failure")
	// ErrResourceState indicates a required external resource is absent or in an unexpected state.
	ErrResourceState = errors.New("resource state failure")
	// ErrGateRefused indicates the operator declined an interactive confirmation.
	ErrGateRefused = errors.New("confirmation refused")
	// ErrToolAcquisition indicates a download, extraction, or install failure.
	ErrToolAcquisition = errors.New("tool acquisition failure")
	// ErrExternalProcess indicates an external binary exited unsuccessfully.
	ErrExternalProcess = errors.New("external process failure")
	// ErrInvalidConfig indicates the run configuration is incomplete or malformed.
	ErrInvalidConfig = errors.New("invalid configuration")
)

// kindError tags an error with a failure kind while keeping its message.
type kindError struct {
	kind error
	err  error
}

func (e *kindError) Error() string {
	return e.err.Error()
}

func (e *kindError) Unwrap() []error {
	return []error{e.kind, e.err}
}

// Fail tags err with kind. errors.Is matches both the kind and the original chain.
func Fail(kind, err error) error {
	if err == nil {
		return nil
	}
	return &kindError{kind: kind, err: err}
}

// Failf is Fail with a formatted message.
func Failf(kind error, format string, args ...any) error {
	return &kindError{kind: kind, err: fmt.Errorf(format, args...)}
}

// StageError reports which stage halted a workflow.
type StageError struct {
	Stage string
	From  WorkflowState
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s stage failed: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}
