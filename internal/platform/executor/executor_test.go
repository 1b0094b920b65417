package executor

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun_StreamsOutput(t *testing.T) {
	var stdout, stderr bytes.Buffer
	err := New().Run(context.Background(), Command{
		Name:   "sh",
		Args:   []string{"-c", "echo out; echo err >&2"},
		Stdout: &stdout,
		Stderr: &stderr,
	})
	require.NoError(t, err)
	assert.Equal(t, "out\n", stdout.String())
	assert.Equal(t, "err\n", stderr.String())
}

func TestRun_NonZeroExit(t *testing.T) {
	err := New().Run(context.Background(), Command{
		Name:   "sh",
		Args:   []string{"-c", "exit 3"},
		Stdout: &bytes.Buffer{},
		Stderr: &bytes.Buffer{},
	})
	var exitErr *ExitError
	require.True(t, errors.As(err, &exitErr))
	assert.Equal(t, 3, exitErr.ExitCode)
	assert.Equal(t, "sh -c exit 3 exited with code 3", exitErr.Error())
}

func TestRun_StartFailure(t *testing.T) {
	err := New().Run(context.Background(), Command{Name: "/nonexistent/binary"})
	require.Error(t, err)
	var exitErr *ExitError
	assert.False(t, errors.As(err, &exitErr))
	assert.Contains(t, err.Error(), "failed to start /nonexistent/binary")
}

func TestRun_DirAndEnv(t *testing.T) {
	dir := t.TempDir()
	var stdout bytes.Buffer
	err := New().Run(context.Background(), Command{
		Name:   "sh",
		Args:   []string{"-c", "pwd; echo $OCPCTL_TEST_VALUE"},
		Dir:    dir,
		Env:    []string{"OCPCTL_TEST_VALUE=42"},
		Stdout: &stdout,
	})
	require.NoError(t, err)
	assert.Contains(t, stdout.String(), dir)
	assert.Contains(t, stdout.String(), "42")
}

func TestOutput(t *testing.T) {
	out, err := New().Output(context.Background(), Command{Name: "sh", Args: []string{"-c", "echo 4.16.9"}})
	require.NoError(t, err)
	assert.Equal(t, "4.16.9\n", string(out))
}

func TestRun_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := New().Run(ctx, Command{Name: "sh", Args: []string{"-c", "sleep 5"}})
	assert.Error(t, err)
}
