package manifest

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/imamik/ocpctl/internal/provisioning"
	"github.com/imamik/ocpctl/internal/util/fsutil"
)

const (
	phase = "manifest"

	// FileName is the manifest the installer reads.
	FileName = "install-config.yaml"
	// BackupFileName keeps the manifest after the installer consumes it.
	BackupFileName = FileName + ".backup"
	// installerStateFile marks a directory the installer has already used.
	installerStateFile = "metadata.json"
)

// Generator is the manifest stage.
type Generator struct{}

// NewGenerator creates the manifest stage.
func NewGenerator() *Generator {
	return &Generator{}
}

// Name implements provisioning.Phase.
func (g *Generator) Name() string {
	return phase
}

// Provision implements provisioning.Phase.
func (g *Generator) Provision(ctx *provisioning.Context) error {
	key := ctx.State.SSHKey
	if key == nil || key.PublicKey == "" {
		return fmt.Errorf("manifest requires the ssh public key")
	}

	dir := ctx.Config.InstallDir
	used, err := fsutil.Exists(filepath.Join(dir, installerStateFile))
	if err != nil {
		return err
	}
	if used {
		return provisioning.Failf(provisioning.ErrResourceState,
			"%s already contains installer state (%s); choose a fresh install directory", dir, installerStateFile)
	}

	secret, err := ctx.Prompt.ReadSecret(ctx, "Pull secret")
	if err != nil {
		return fmt.Errorf("failed to read pull secret: %w", err)
	}
	secret = strings.TrimSpace(secret)
	if secret == "" {
		return provisioning.Failf(provisioning.ErrInvalidConfig, "pull secret is empty")
	}
	if !json.Valid([]byte(secret)) {
		return provisioning.Failf(provisioning.ErrInvalidConfig, "pull secret is not valid JSON")
	}

	data, err := Render(Input{
		ClusterName: ctx.Config.ClusterName,
		BaseDomain:  ctx.Config.BaseDomain,
		Region:      ctx.Config.Region,
		PullSecret:  secret,
		SSHKey:      key.PublicKey,
		Topology:    ctx.Config.Topology,
	})
	if err != nil {
		return provisioning.Fail(provisioning.ErrInvalidConfig, err)
	}
	if len(data) == 0 {
		return provisioning.Failf(provisioning.ErrInvalidConfig, "rendered manifest is empty")
	}

	if err := fsutil.EnsureDir(dir, fsutil.PrivateDirMode, ctx.Owner); err != nil {
		return err
	}
	manifest := &provisioning.Manifest{
		Path:       filepath.Join(dir, FileName),
		BackupPath: filepath.Join(dir, BackupFileName),
	}
	if ok, _ := fsutil.Exists(manifest.Path); ok {
		ctx.Observer.Warnf("overwriting existing %s", manifest.Path)
	}
	if err := fsutil.WriteFileAtomic(manifest.Path, data, fsutil.PrivateFileMode, ctx.Owner); err != nil {
		return err
	}
	if err := fsutil.CopyFile(manifest.Path, manifest.BackupPath, fsutil.PrivateFileMode, ctx.Owner); err != nil {
		return err
	}

	if info, err := os.Stat(manifest.Path); err == nil {
		provisioning.LogResourceCreated(ctx.Observer, phase, "manifest", manifest.Path, fmt.Sprintf("%d bytes", info.Size()))
	}
	ctx.State.Manifest = manifest
	return nil
}
