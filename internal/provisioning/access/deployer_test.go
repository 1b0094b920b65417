package access

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/imamik/ocpctl/internal/provisioning"
	testutil "github.com/imamik/ocpctl/internal/testing"
)

const server = "https://api.demo.example.test:6443"

func newHarness(t *testing.T, b *testutil.ConfigBuilder) *testutil.Harness {
	t.Helper()
	h := testutil.NewHarness(t, b.Build())
	dir := h.Ctx.Config.InstallDir
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "auth"), 0o700))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "auth", "kubeconfig"), testutil.Kubeconfig(server), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "auth", "kubeadmin-password"), []byte("AbCdE-fGhIj-KlMnO\n"), 0o600))
	h.Ctx.State.Install = &provisioning.Installation{
		Dir:          dir,
		Kubeconfig:   filepath.Join(dir, "auth", "kubeconfig"),
		PasswordFile: filepath.Join(dir, "auth", "kubeadmin-password"),
	}
	return h
}

func TestDeployer_InstallsKubeconfig(t *testing.T) {
	h := newHarness(t, testutil.NewConfigBuilder())

	require.NoError(t, NewDeployer().Provision(h.Ctx))

	a := h.Ctx.State.Access
	require.NotNil(t, a)
	assert.Equal(t, filepath.Join(h.Home, ".kube", "config"), a.KubeconfigPath)
	assert.Equal(t, server, a.APIServerURL)
	assert.Equal(t, "https://console-openshift-console.apps.demo.example.test", a.ConsoleURL)
	assert.Equal(t, "kubeadmin", a.Username)
	assert.Equal(t, "AbCdE-fGhIj-KlMnO", a.Password)
	assert.Empty(t, a.PreviousConfig)

	data, err := os.ReadFile(a.KubeconfigPath)
	require.NoError(t, err)
	assert.Equal(t, testutil.Kubeconfig(server), data)

	info, err := os.Stat(a.KubeconfigPath)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
	info, err = os.Stat(filepath.Dir(a.KubeconfigPath))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o700), info.Mode().Perm())

	assert.NotContains(t, h.Observer.Transcript(), "AbCdE-fGhIj-KlMnO")
	assert.NotContains(t, a.String(), "AbCdE-fGhIj-KlMnO")
	h.Cloud.Archive.AssertNotCalled(t, "Archive", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestDeployer_KeepsExistingConfig(t *testing.T) {
	h := newHarness(t, testutil.NewConfigBuilder())
	kubeDir := filepath.Join(h.Home, ".kube")
	require.NoError(t, os.MkdirAll(kubeDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(kubeDir, "config"), []byte("previous"), 0o644))

	require.NoError(t, NewDeployer().Provision(h.Ctx))

	a := h.Ctx.State.Access
	assert.Equal(t, filepath.Join(kubeDir, "config.20260314T150926Z.bak"), a.PreviousConfig)
	prev, err := os.ReadFile(a.PreviousConfig)
	require.NoError(t, err)
	assert.Equal(t, "previous", string(prev))

	current, err := os.ReadFile(a.KubeconfigPath)
	require.NoError(t, err)
	assert.Equal(t, testutil.Kubeconfig(server), current)
}

func TestDeployer_ArchivesArtifacts(t *testing.T) {
	h := newHarness(t, testutil.NewConfigBuilder().WithArchive("ocp-artifacts", ""))
	dir := h.Ctx.Config.InstallDir
	require.NoError(t, os.WriteFile(filepath.Join(dir, "install-config.yaml.backup"), []byte("manifest"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "metadata.json"), []byte(`{"clusterName":"demo"}`), 0o600))

	h.Cloud.Archive.On("Archive", mock.Anything, "ocp-artifacts", "demo/install-config.yaml.backup", []byte("manifest")).Return(nil).Once()
	h.Cloud.Archive.On("Archive", mock.Anything, "ocp-artifacts", "demo/metadata.json", []byte(`{"clusterName":"demo"}`)).Return(nil).Once()

	require.NoError(t, NewDeployer().Provision(h.Ctx))
	h.Cloud.Archive.AssertExpectations(t)
	assert.Len(t, h.Observer.EventsOf(provisioning.EventResourceCreated), 3)
}

func TestDeployer_ArchiveFailureIsWarning(t *testing.T) {
	h := newHarness(t, testutil.NewConfigBuilder().WithArchive("ocp-artifacts", "/runs/demo/"))
	dir := h.Ctx.Config.InstallDir
	require.NoError(t, os.WriteFile(filepath.Join(dir, "install-config.yaml.backup"), []byte("manifest"), 0o600))

	h.Cloud.Archive.On("Archive", mock.Anything, "ocp-artifacts", "runs/demo/install-config.yaml.backup", mock.Anything).
		Return(errors.New("AccessDenied")).Once()

	require.NoError(t, NewDeployer().Provision(h.Ctx))
	require.NotNil(t, h.Ctx.State.Access)
	h.Cloud.Archive.AssertExpectations(t)

	transcript := h.Observer.Transcript()
	assert.Contains(t, transcript, "skipping archive of metadata.json")
	assert.Contains(t, transcript, "failed to archive install-config.yaml.backup")
}

func TestDeployer_BrokenKubeconfig(t *testing.T) {
	h := newHarness(t, testutil.NewConfigBuilder())
	require.NoError(t, os.WriteFile(h.Ctx.State.Install.Kubeconfig, []byte("::not yaml"), 0o600))

	err := NewDeployer().Provision(h.Ctx)
	assert.ErrorIs(t, err, provisioning.ErrResourceState)
	_, statErr := os.Stat(filepath.Join(h.Home, ".kube", "config"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestAPIServer(t *testing.T) {
	got, err := APIServer(testutil.Kubeconfig(server))
	require.NoError(t, err)
	assert.Equal(t, server, got)

	_, err = APIServer([]byte("apiVersion: v1\nkind: Config\ncurrent-context: missing\n"))
	assert.Error(t, err)
}

func TestConsoleURL(t *testing.T) {
	assert.Equal(t, "https://console-openshift-console.apps.demo.example.test", ConsoleURL("demo", "example.test."))
}
