package orchestration

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/imamik/ocpctl/internal/platform/awscloud"
	"github.com/imamik/ocpctl/internal/platform/executor"
	"github.com/imamik/ocpctl/internal/prompt"
	"github.com/imamik/ocpctl/internal/provisioning"
	testutil "github.com/imamik/ocpctl/internal/testing"
)

const (
	domain = "example.test."
	mirror = "https://mirror.example.test/ocp"
)

func phaseNames(plan *provisioning.Plan) []string {
	names := make([]string, 0, len(plan.Steps))
	for _, s := range plan.Steps {
		names = append(names, s.Phase.Name())
	}
	return names
}

func TestPlans(t *testing.T) {
	dns, err := DNSPlan()
	require.NoError(t, err)
	assert.Equal(t, []string{"credentials", "zone", "propagation"}, phaseNames(dns))
	assert.Equal(t, provisioning.StatePropagationChecked, dns.Final())

	install, err := InstallPlan()
	require.NoError(t, err)
	assert.Equal(t, []string{"credentials", "zone-precondition", "tools", "ssh-key", "manifest", "installer", "access"}, phaseNames(install))
	assert.Equal(t, provisioning.StateAccessConfigDeployed, install.Final())

	step, ok := install.StepFrom(provisioning.StateZonePreconditionVerified)
	require.True(t, ok)
	assert.Equal(t, provisioning.StateToolsInstalled, step.To)
}

func TestNewRunner_Unknown(t *testing.T) {
	_, err := NewRunner("destroy")
	assert.Error(t, err)
}

func dnsHarness(t *testing.T) *testutil.Harness {
	t.Helper()
	h := testutil.NewHarness(t, testutil.NewConfigBuilder().Build())
	h.Cloud.Zones.On("FindZone", mock.Anything, domain).Return(nil, nil).Once()
	h.Cloud.Zones.On("CreateZone", mock.Anything, domain, mock.Anything).Return(&awscloud.Zone{
		ID: "ZNEW", Name: domain, NameServers: testutil.NameServers, Created: true,
	}, nil).Once()
	return h
}

// A fresh domain: zone created, nameservers published, operator confirms,
// every nameserver probed even when all probes fail.
func TestDNSRun_ScenarioA(t *testing.T) {
	h := dnsHarness(t)
	for _, ns := range testutil.NameServers {
		h.Prober.Failures[ns] = errors.New("i/o timeout")
	}

	r, err := NewRunner(DNS)
	require.NoError(t, err)
	require.NoError(t, r.Run(h.Ctx))

	assert.Equal(t, provisioning.StatePropagationChecked, h.Ctx.Checkpoint)
	require.NotNil(t, h.Ctx.State.Zone)
	assert.True(t, h.Ctx.State.Zone.Created)
	assert.True(t, h.Ctx.State.Confirmed)

	data, err := os.ReadFile(h.Ctx.Config.NameserversFile)
	require.NoError(t, err)
	assert.Equal(t, strings.Join(testutil.NameServers, "\n")+"\n", string(data))

	for _, ns := range testutil.NameServers {
		assert.Positive(t, h.Prober.Calls[ns], ns)
	}
	require.Len(t, h.Ctx.State.Propagation, 4)
	assert.Len(t, h.Observer.EventsOf(provisioning.EventCheckFailed), 4)
	h.Cloud.Zones.AssertExpectations(t)
}

func TestDNSRun_GateRefusalStopsBeforeProbe(t *testing.T) {
	h := dnsHarness(t)
	h.SetPrompt(prompt.NewScripted(testutil.PullSecret, "no"))

	r, err := NewRunner(DNS)
	require.NoError(t, err)
	err = r.Run(h.Ctx)

	assert.ErrorIs(t, err, provisioning.ErrGateRefused)
	var stageErr *provisioning.StageError
	require.ErrorAs(t, err, &stageErr)
	assert.Equal(t, "zone", stageErr.Stage)
	assert.Equal(t, provisioning.StateCredentialsConfigured, stageErr.From)
	assert.Equal(t, provisioning.StateFailed, h.Ctx.Checkpoint)

	assert.Zero(t, h.Prober.TotalCalls())
	_, statErr := os.Stat(h.Ctx.Config.NameserversFile)
	assert.NoError(t, statErr, "nameservers are published before the gate")
}

func TestDNSRun_AuthFailureStopsFirstStage(t *testing.T) {
	h := testutil.NewHarness(t, testutil.NewConfigBuilder().WithCredentials("AKIAEXAMPLEKEY", "").Build())

	r, err := NewRunner(DNS)
	require.NoError(t, err)
	err = r.Run(h.Ctx)

	assert.ErrorIs(t, err, provisioning.ErrAuthentication)
	h.Cloud.Zones.AssertNotCalled(t, "FindZone", mock.Anything, mock.Anything)
}

type installFixture struct {
	h *testutil.Harness
}

func newInstallFixture(t *testing.T) *installFixture {
	t.Helper()
	cfg := testutil.NewConfigBuilder().WithTools(mirror, "").Build()
	h := testutil.NewHarness(t, cfg)

	h.Cloud.Zones.On("FindZone", mock.Anything, domain).Return(&awscloud.Zone{ID: "Z1", Name: domain}, nil)
	h.Cloud.Zones.On("GetZone", mock.Anything, "Z1").Return(&awscloud.Zone{
		ID: "Z1", Name: domain, NameServers: testutil.NameServers,
	}, nil)

	installer, err := testutil.TarGz(map[string]string{"openshift-install": "#!/bin/sh\n"})
	require.NoError(t, err)
	client, err := testutil.TarGz(map[string]string{"oc": "#!/bin/sh\n", "kubectl": "#!/bin/sh\n"})
	require.NoError(t, err)
	h.Fetcher.Bodies[mirror+"/4.16.9/openshift-install-linux-4.16.9.tar.gz"] = installer
	h.Fetcher.Bodies[mirror+"/4.16.9/openshift-client-linux-4.16.9.tar.gz"] = client

	dir := cfg.InstallDir
	h.Runner.On("openshift-install", func(cmd executor.Command) ([]byte, error) {
		if len(cmd.Args) > 0 && cmd.Args[0] == "version" {
			return []byte("openshift-install 4.16.9\n"), nil
		}
		if err := os.MkdirAll(filepath.Join(dir, "auth"), 0o700); err != nil {
			return nil, err
		}
		if err := os.WriteFile(filepath.Join(dir, "auth", "kubeconfig"), testutil.Kubeconfig("https://api.demo.example.test:6443"), 0o600); err != nil {
			return nil, err
		}
		return []byte("INFO Install complete!\n"), os.WriteFile(filepath.Join(dir, "auth", "kubeadmin-password"), []byte("pw"), 0o600)
	})
	return &installFixture{h: h}
}

func TestInstallRun_Complete(t *testing.T) {
	f := newInstallFixture(t)

	r, err := NewRunner(Install)
	require.NoError(t, err)
	require.NoError(t, r.Run(f.h.Ctx))

	s := f.h.Ctx.State
	assert.Equal(t, provisioning.StateAccessConfigDeployed, f.h.Ctx.Checkpoint)
	require.NotNil(t, s.Tools)
	require.NotNil(t, s.SSHKey)
	assert.True(t, s.SSHKey.Generated)
	require.NotNil(t, s.Manifest)
	require.NotNil(t, s.Access)
	assert.Equal(t, "https://api.demo.example.test:6443", s.Access.APIServerURL)
	assert.Equal(t, filepath.Join(f.h.Home, ".kube", "config"), s.Access.KubeconfigPath)

	manifest, err := os.ReadFile(s.Manifest.Path)
	require.NoError(t, err)
	assert.Contains(t, string(manifest), "baseDomain: example.test\n")
	assert.Contains(t, string(manifest), s.SSHKey.PublicKey)

	assert.Equal(t, []string{"openshift-install", "oc", "openshift-install"}, f.h.Runner.Names())
	f.h.Cloud.Zones.AssertNotCalled(t, "CreateZone", mock.Anything, mock.Anything, mock.Anything)
}

func TestInstallRun_MissingZoneFailsFast(t *testing.T) {
	h := testutil.NewHarness(t, testutil.NewConfigBuilder().WithTools(mirror, "").Build())
	h.Cloud.Zones.On("FindZone", mock.Anything, domain).Return(nil, nil)

	r, err := NewRunner(Install)
	require.NoError(t, err)
	err = r.Run(h.Ctx)

	assert.ErrorIs(t, err, provisioning.ErrResourceState)
	assert.Contains(t, err.Error(), "ocpctl dns")
	assert.Empty(t, h.Fetcher.URLs)
	assert.Empty(t, h.Runner.Commands)
	assert.Nil(t, h.Ctx.State.SSHKey)
	_, statErr := os.Stat(filepath.Join(h.Home, ".ssh"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestInstallRun_ToolFailureHaltsLaterStages(t *testing.T) {
	f := newInstallFixture(t)
	delete(f.h.Fetcher.Bodies, mirror+"/4.16.9/openshift-client-linux-4.16.9.tar.gz")

	r, err := NewRunner(Install)
	require.NoError(t, err)
	err = r.Run(f.h.Ctx)

	assert.ErrorIs(t, err, provisioning.ErrToolAcquisition)
	var stageErr *provisioning.StageError
	require.ErrorAs(t, err, &stageErr)
	assert.Equal(t, "tools", stageErr.Stage)

	s := f.h.Ctx.State
	assert.Nil(t, s.SSHKey)
	assert.Nil(t, s.Manifest)
	assert.Nil(t, s.Install)
	assert.Empty(t, f.h.Prompt.Labels, "pull secret is never requested")
	assert.NotContains(t, f.h.Runner.Names(), "openshift-install")
}

func TestInstallRun_InstallerFailureKeepsManifest(t *testing.T) {
	f := newInstallFixture(t)
	f.h.Runner.On("openshift-install", func(cmd executor.Command) ([]byte, error) {
		if cmd.Args[0] == "version" {
			return []byte("openshift-install 4.16.9\n"), nil
		}
		return nil, &executor.ExitError{Command: cmd.String(), ExitCode: 1}
	})

	r, err := NewRunner(Install)
	require.NoError(t, err)
	err = r.Run(f.h.Ctx)

	assert.ErrorIs(t, err, provisioning.ErrExternalProcess)
	require.NotNil(t, f.h.Ctx.State.Manifest)
	_, statErr := os.Stat(f.h.Ctx.State.Manifest.BackupPath)
	assert.NoError(t, statErr)
	assert.Nil(t, f.h.Ctx.State.Access)
}
