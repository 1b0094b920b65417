package tools

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/blang/semver/v4"
	"github.com/samber/lo"

	"github.com/imamik/ocpctl/internal/platform/download"
	"github.com/imamik/ocpctl/internal/platform/executor"
	"github.com/imamik/ocpctl/internal/provisioning"
	"github.com/imamik/ocpctl/internal/util/fsutil"
)

const phase = "tools"

// Binary names inside the release archives.
const (
	InstallerBinary = "openshift-install"
	ClientBinary    = "oc"
	KubectlBinary   = "kubectl"
)

// release is one mirror archive and the binaries taken from it.
type release struct {
	archive  string
	required []string
	optional []string
}

func releases(version string) []release {
	return []release{
		{archive: fmt.Sprintf("openshift-install-linux-%s.tar.gz", version), required: []string{InstallerBinary}},
		{archive: fmt.Sprintf("openshift-client-linux-%s.tar.gz", version), required: []string{ClientBinary}, optional: []string{KubectlBinary}},
	}
}

// Acquirer is the tool installation stage.
type Acquirer struct{}

// NewAcquirer creates the tools stage.
func NewAcquirer() *Acquirer {
	return &Acquirer{}
}

// Name implements provisioning.Phase.
func (a *Acquirer) Name() string {
	return phase
}

// Provision implements provisioning.Phase. Every failure is a tool acquisition error.
func (a *Acquirer) Provision(ctx *provisioning.Context) error {
	if err := a.provision(ctx); err != nil {
		return provisioning.Fail(provisioning.ErrToolAcquisition, err)
	}
	return nil
}

func (a *Acquirer) provision(ctx *provisioning.Context) error {
	version := ctx.Config.Version
	binDir := ctx.Config.Tools.BinDir
	tools := &provisioning.ToolSet{
		Version:   version,
		Installer: filepath.Join(binDir, InstallerBinary),
		Client:    filepath.Join(binDir, ClientBinary),
	}

	reuse := false
	if ctx.Config.Tools.SkipDownload {
		if installed, _ := installerVersion(ctx, ctx.Runner, tools.Installer); sameVersion(installed, version) {
			provisioning.LogResourceExists(ctx.Observer, phase, "binary", InstallerBinary, version)
			reuse = true
			kubectl := filepath.Join(binDir, KubectlBinary)
			present, err := fsutil.Exists(kubectl)
			if err != nil {
				return err
			}
			if present {
				tools.Kubectl = kubectl
			}
		}
	}

	if !reuse {
		installed, err := a.install(ctx, version, binDir)
		if err != nil {
			return err
		}
		if lo.Contains(installed, KubectlBinary) {
			tools.Kubectl = filepath.Join(binDir, KubectlBinary)
		}
	}

	if err := verify(ctx, tools); err != nil {
		return err
	}
	ctx.State.Tools = tools
	return nil
}

// install downloads and unpacks both archives and installs their binaries.
// The scratch directory is removed on every path.
func (a *Acquirer) install(ctx *provisioning.Context, version, binDir string) ([]string, error) {
	scratch, err := os.MkdirTemp("", "ocpctl-tools-")
	if err != nil {
		return nil, fmt.Errorf("failed to create scratch directory: %w", err)
	}
	defer os.RemoveAll(scratch)

	if err := os.MkdirAll(binDir, fsutil.ExecutableMode); err != nil {
		return nil, fmt.Errorf("failed to create bin dir %s: %w", binDir, err)
	}

	var installed []string
	for _, rel := range releases(version) {
		extracted, err := a.fetchAndExtract(ctx, version, rel.archive, scratch)
		if err != nil {
			return installed, err
		}

		for _, name := range rel.required {
			if err := installBinary(extracted, name, binDir); err != nil {
				return installed, err
			}
			installed = append(installed, name)
			provisioning.LogResourceCreated(ctx.Observer, phase, "binary", name, filepath.Join(binDir, name))
		}
		for _, name := range rel.optional {
			if ok, _ := fsutil.Exists(filepath.Join(extracted, name)); !ok {
				continue
			}
			if err := installBinary(extracted, name, binDir); err != nil {
				return installed, err
			}
			installed = append(installed, name)
			provisioning.LogResourceCreated(ctx.Observer, phase, "binary", name, filepath.Join(binDir, name))
		}
	}
	return installed, nil
}

func (a *Acquirer) fetchAndExtract(ctx *provisioning.Context, version, archive, scratch string) (string, error) {
	url := fmt.Sprintf("%s/%s/%s", strings.TrimSuffix(ctx.Config.Tools.MirrorURL, "/"), version, archive)
	archivePath := filepath.Join(scratch, archive)

	f, err := os.Create(archivePath)
	if err != nil {
		return "", err
	}
	dlCtx, cancel := ctx.WithTimeout(ctx.Timeouts.DownloadTimeout)
	defer cancel()

	ctx.Observer.Printf("Downloading %s", url)
	if err := ctx.Fetcher.Fetch(dlCtx, url, f); err != nil {
		f.Close()
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", err
	}

	r, err := os.Open(archivePath)
	if err != nil {
		return "", err
	}
	defer r.Close()

	dst := filepath.Join(scratch, strings.TrimSuffix(archive, ".tar.gz"))
	if err := os.MkdirAll(dst, fsutil.PrivateDirMode); err != nil {
		return "", err
	}
	if _, err := download.ExtractTarGz(r, dst); err != nil {
		return "", fmt.Errorf("failed to extract %s: %w", archive, err)
	}
	return dst, nil
}

// installBinary streams name from src into binDir with mode 0755 via temp file and rename.
func installBinary(src, name, binDir string) error {
	// #nosec G304
	f, err := os.Open(filepath.Join(src, name))
	if err != nil {
		return fmt.Errorf("archive does not contain %s: %w", name, err)
	}
	defer f.Close()
	if err := fsutil.WriteStreamAtomic(filepath.Join(binDir, name), f, fsutil.ExecutableMode, nil); err != nil {
		return fmt.Errorf("failed to install %s: %w", name, err)
	}
	return nil
}

func verify(ctx *provisioning.Context, tools *provisioning.ToolSet) error {
	installed, err := installerVersion(ctx, ctx.Runner, tools.Installer)
	if err != nil {
		return fmt.Errorf("%s version check failed: %w", InstallerBinary, err)
	}
	if !sameVersion(installed, tools.Version) {
		return fmt.Errorf("%s reports version %q, expected %s", InstallerBinary, installed, tools.Version)
	}

	if _, err := ctx.Runner.Output(ctx, executor.Command{Name: tools.Client, Args: []string{"version", "--client"}}); err != nil {
		return fmt.Errorf("%s version check failed: %w", ClientBinary, err)
	}

	provisioning.LogCheck(ctx.Observer, phase, InstallerBinary, nil, "version "+installed)
	return nil
}

// installerVersion runs "openshift-install version" and returns the release it reports.
func installerVersion(ctx context.Context, runner executor.Runner, path string) (string, error) {
	out, err := runner.Output(ctx, executor.Command{Name: path, Args: []string{"version"}})
	if err != nil {
		return "", err
	}
	return parseVersion(out), nil
}

// parseVersion reads "openshift-install 4.16.9" from the first output line.
func parseVersion(out []byte) string {
	sc := bufio.NewScanner(bytes.NewReader(out))
	if !sc.Scan() {
		return ""
	}
	fields := strings.Fields(sc.Text())
	if len(fields) < 2 {
		return ""
	}
	return strings.TrimPrefix(fields[1], "v")
}

// sameVersion compares releases semantically, so "4.16.9" matches "v4.16.9".
func sameVersion(installed, pinned string) bool {
	a, err := semver.ParseTolerant(installed)
	if err != nil {
		return false
	}
	b, err := semver.ParseTolerant(pinned)
	if err != nil {
		return false
	}
	return a.Equals(b)
}
