package installer

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/imamik/ocpctl/internal/platform/executor"
	"github.com/imamik/ocpctl/internal/provisioning"
	"github.com/imamik/ocpctl/internal/util/fsutil"
)

const phase = "installer"

// Artifacts written by a successful installer run, relative to the install dir.
const (
	KubeconfigPath = "auth/kubeconfig"
	PasswordPath   = "auth/kubeadmin-password"
)

// Driver is the installer stage.
type Driver struct {
	// Stderr receives the installer's stderr. Nil means os.Stderr.
	Stderr io.Writer
}

// NewDriver creates the installer stage.
func NewDriver() *Driver {
	return &Driver{}
}

// Name implements provisioning.Phase.
func (d *Driver) Name() string {
	return phase
}

// Provision implements provisioning.Phase.
func (d *Driver) Provision(ctx *provisioning.Context) error {
	if ctx.State.Tools == nil || ctx.State.Tools.Installer == "" {
		return fmt.Errorf("installer stage requires installed tools")
	}
	if ctx.State.Manifest == nil {
		return fmt.Errorf("installer stage requires a rendered manifest")
	}

	dir := ctx.Config.InstallDir
	cmd := executor.Command{
		Name:   ctx.State.Tools.Installer,
		Args:   []string{"create", "cluster", "--dir", dir, "--log-level=info"},
		Stdout: ctx.Out,
		Stderr: d.stderr(),
	}

	ctx.Observer.Printf("[%s] running %s (this takes 30-45 minutes)", phase, cmd)
	start := time.Now()
	if err := ctx.Runner.Run(ctx, cmd); err != nil {
		if ctx.Err() != nil {
			return fmt.Errorf("installer interrupted: %w", ctx.Err())
		}
		var exitErr *executor.ExitError
		if errors.As(err, &exitErr) {
			return provisioning.Failf(provisioning.ErrExternalProcess,
				"openshift-install exited with code %d; see %s", exitErr.ExitCode, filepath.Join(dir, ".openshift_install.log"))
		}
		return provisioning.Fail(provisioning.ErrExternalProcess, err)
	}
	ctx.Observer.Printf("[%s] installer finished after %s", phase, time.Since(start).Round(time.Second))

	install := &provisioning.Installation{
		Dir:          dir,
		Kubeconfig:   filepath.Join(dir, KubeconfigPath),
		PasswordFile: filepath.Join(dir, PasswordPath),
	}
	for _, path := range []string{install.Kubeconfig, install.PasswordFile} {
		ok, err := fsutil.Exists(path)
		if err != nil {
			return err
		}
		if !ok {
			return provisioning.Failf(provisioning.ErrExternalProcess,
				"installer exited successfully but did not produce %s", path)
		}
	}

	provisioning.LogResourceCreated(ctx.Observer, phase, "cluster", ctx.Config.ClusterName, ctx.Config.ClusterName+"."+ctx.Config.BaseDomain)
	ctx.State.Install = install
	return nil
}

func (d *Driver) stderr() io.Writer {
	if d.Stderr != nil {
		return d.Stderr
	}
	return os.Stderr
}
