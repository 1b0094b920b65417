package executor

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
)

// Command describes one process invocation.
type Command struct {
	Name string
	Args []string
	// Dir is the working directory; empty means the current one.
	Dir string
	// Env entries are appended to the inherited environment.
	Env    []string
	Stdout io.Writer
	Stderr io.Writer
}

func (c Command) String() string {
	return strings.TrimSpace(c.Name + " " + strings.Join(c.Args, " "))
}

// Runner executes commands.
type Runner interface {
	Run(ctx context.Context, cmd Command) error
	Output(ctx context.Context, cmd Command) ([]byte, error)
}

// ExitError reports a process that started and exited non-zero.
type ExitError struct {
	Command  string
	ExitCode int
	Err      error
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("%s exited with code %d", e.Command, e.ExitCode)
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// OS runs commands with os/exec.
type OS struct{}

// New returns the os/exec backed runner.
func New() *OS {
	return &OS{}
}

// Run starts cmd and waits for it. Unset writers default to the process's
// own stdout and stderr.
func (r *OS) Run(ctx context.Context, cmd Command) error {
	c := r.build(ctx, cmd)
	c.Stdout = orDefault(cmd.Stdout, os.Stdout)
	c.Stderr = orDefault(cmd.Stderr, os.Stderr)
	return wrap(cmd, c.Run())
}

// Output runs cmd and returns its stdout. Stderr is streamed.
func (r *OS) Output(ctx context.Context, cmd Command) ([]byte, error) {
	var stdout bytes.Buffer
	c := r.build(ctx, cmd)
	c.Stdout = &stdout
	c.Stderr = orDefault(cmd.Stderr, os.Stderr)
	if err := wrap(cmd, c.Run()); err != nil {
		return stdout.Bytes(), err
	}
	return stdout.Bytes(), nil
}

func (r *OS) build(ctx context.Context, cmd Command) *exec.Cmd {
	c := exec.CommandContext(ctx, cmd.Name, cmd.Args...)
	c.Dir = cmd.Dir
	if len(cmd.Env) > 0 {
		c.Env = append(os.Environ(), cmd.Env...)
	}
	return c
}

func wrap(cmd Command, err error) error {
	if err == nil {
		return nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return &ExitError{Command: cmd.String(), ExitCode: exitErr.ExitCode(), Err: err}
	}
	return fmt.Errorf("failed to start %s: %w", cmd.Name, err)
}

func orDefault(w, def io.Writer) io.Writer {
	if w == nil {
		return def
	}
	return w
}
