package fsutil

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureDir_TightensExistingPermissions(t *testing.T) {
	t.Parallel()
	dir := filepath.Join(t.TempDir(), "secrets")
	require.NoError(t, os.Mkdir(dir, 0o755))

	require.NoError(t, EnsureDir(dir, PrivateDirMode, nil))

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.Equal(t, PrivateDirMode, info.Mode().Perm())
}

func TestEnsureDir_CreatesNested(t *testing.T) {
	t.Parallel()
	dir := filepath.Join(t.TempDir(), "a", "b", "c")

	require.NoError(t, EnsureDir(dir, PrivateDirMode, nil))

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestWriteFileAtomic(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	path := filepath.Join(dir, "credentials")

	require.NoError(t, WriteFileAtomic(path, []byte("first"), PrivateFileMode, nil))
	require.NoError(t, WriteFileAtomic(path, []byte("second"), PrivateFileMode, nil))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "second", string(data))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, PrivateFileMode, info.Mode().Perm())

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary files must not be left behind")
}

func TestWriteStreamAtomic(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	path := filepath.Join(dir, "openshift-install")
	payload := strings.Repeat("x", 3<<20)

	require.NoError(t, WriteStreamAtomic(path, strings.NewReader(payload), ExecutableMode, nil))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, len(payload), len(data))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, ExecutableMode, info.Mode().Perm())
}

func TestWriteStreamAtomic_ReadFailureLeavesNothing(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	path := filepath.Join(dir, "oc")

	err := WriteStreamAtomic(path, iotest.ErrReader(errors.New("truncated")), ExecutableMode, nil)
	require.Error(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestWriteFileAtomic_MissingDirectory(t *testing.T) {
	t.Parallel()
	err := WriteFileAtomic(filepath.Join(t.TempDir(), "absent", "f"), []byte("x"), PrivateFileMode, nil)
	require.Error(t, err)
}

func TestCopyFile(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	src := filepath.Join(dir, "src")
	dst := filepath.Join(dir, "dst")
	content := []byte("apiVersion: v1\nkind: Config\n")
	require.NoError(t, os.WriteFile(src, content, 0o644))

	require.NoError(t, CopyFile(src, dst, PrivateFileMode, nil))

	got, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, content, got)

	info, err := os.Stat(dst)
	require.NoError(t, err)
	assert.Equal(t, PrivateFileMode, info.Mode().Perm())
}

func TestExists(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	path := filepath.Join(dir, "f")

	ok, err := Exists(path)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, os.WriteFile(path, nil, 0o600))
	ok, err = Exists(path)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestOwner_ChownCurrentUserIsNoop(t *testing.T) {
	t.Parallel()
	owner, err := LookupOwner("")
	require.NoError(t, err)
	assert.NotEmpty(t, owner.HomeDir)

	path := filepath.Join(t.TempDir(), "f")
	require.NoError(t, os.WriteFile(path, nil, 0o600))
	assert.NoError(t, owner.Chown(path))
}

func TestOwner_NilChown(t *testing.T) {
	t.Parallel()
	var owner *Owner
	assert.NoError(t, owner.Chown("/does/not/matter"))
}

func TestLookupOwner_Unknown(t *testing.T) {
	t.Parallel()
	_, err := LookupOwner("no-such-user-ocpctl-test")
	require.Error(t, err)
}
