package access

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"k8s.io/client-go/tools/clientcmd"

	"github.com/imamik/ocpctl/internal/provisioning"
	"github.com/imamik/ocpctl/internal/util/fsutil"
)

const (
	phase = "access"

	// AdminUser is the installer's bootstrap administrator.
	AdminUser = "kubeadmin"

	backupTimeFormat = "20060102T150405Z"
)

// Deployer is the access stage.
type Deployer struct{}

// NewDeployer creates the access stage.
func NewDeployer() *Deployer {
	return &Deployer{}
}

// Name implements provisioning.Phase.
func (d *Deployer) Name() string {
	return phase
}

// Provision implements provisioning.Phase.
func (d *Deployer) Provision(ctx *provisioning.Context) error {
	install := ctx.State.Install
	if install == nil {
		return fmt.Errorf("access stage requires a completed installation")
	}

	kubeconfig, err := os.ReadFile(install.Kubeconfig)
	if err != nil {
		return provisioning.Fail(provisioning.ErrResourceState, fmt.Errorf("failed to read installer kubeconfig: %w", err))
	}
	server, err := APIServer(kubeconfig)
	if err != nil {
		return provisioning.Fail(provisioning.ErrResourceState, err)
	}
	password, err := os.ReadFile(install.PasswordFile)
	if err != nil {
		return provisioning.Fail(provisioning.ErrResourceState, fmt.Errorf("failed to read kubeadmin password: %w", err))
	}

	home, err := ctx.HomeDir()
	if err != nil {
		return err
	}
	kubeDir := filepath.Join(home, ".kube")
	if err := fsutil.EnsureDir(kubeDir, fsutil.PrivateDirMode, ctx.Owner); err != nil {
		return err
	}

	access := &provisioning.AccessConfig{
		KubeconfigPath: filepath.Join(kubeDir, "config"),
		APIServerURL:   server,
		ConsoleURL:     ConsoleURL(ctx.Config.ClusterName, ctx.Config.BaseDomain),
		Username:       AdminUser,
		Password:       strings.TrimSpace(string(password)),
	}

	exists, err := fsutil.Exists(access.KubeconfigPath)
	if err != nil {
		return err
	}
	if exists {
		access.PreviousConfig = filepath.Join(kubeDir, "config."+ctx.Now().UTC().Format(backupTimeFormat)+".bak")
		if err := fsutil.CopyFile(access.KubeconfigPath, access.PreviousConfig, fsutil.PrivateFileMode, ctx.Owner); err != nil {
			return fmt.Errorf("failed to keep existing kube config: %w", err)
		}
		ctx.Observer.Warnf("[%s] existing %s kept as %s", phase, access.KubeconfigPath, access.PreviousConfig)
	}
	if err := fsutil.WriteFileAtomic(access.KubeconfigPath, kubeconfig, fsutil.PrivateFileMode, ctx.Owner); err != nil {
		return err
	}
	provisioning.LogResourceCreated(ctx.Observer, phase, "kubeconfig", access.KubeconfigPath, server)

	if ctx.Config.Archive.Enabled() {
		d.archive(ctx, install.Dir)
	}

	ctx.State.Access = access
	return nil
}

// archive uploads the manifest backup and installer metadata. Failures are warnings.
func (d *Deployer) archive(ctx *provisioning.Context, dir string) {
	bucket := ctx.Config.Archive.Bucket
	prefix := strings.Trim(ctx.Config.Archive.Prefix, "/")
	if prefix == "" {
		prefix = ctx.Config.ClusterName
	}

	archiver := ctx.Cloud.Archiver(ctx.State.AWS)
	for _, name := range []string{"install-config.yaml.backup", "metadata.json"} {
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			ctx.Observer.Warnf("[%s] skipping archive of %s: %v", phase, name, err)
			continue
		}
		key := path.Join(prefix, name)

		actx, cancel := ctx.WithTimeout(ctx.Timeouts.APITimeout)
		err = archiver.Archive(actx, bucket, key, data)
		cancel()
		if err != nil {
			ctx.Observer.Warnf("[%s] failed to archive %s to s3://%s/%s: %v", phase, name, bucket, key, err)
			continue
		}
		provisioning.LogResourceCreated(ctx.Observer, phase, "archive", "s3://"+bucket+"/"+key, fmt.Sprintf("%d bytes", len(data)))
	}
}

// APIServer returns the server URL of the kubeconfig's current context.
func APIServer(kubeconfig []byte) (string, error) {
	cfg, err := clientcmd.Load(kubeconfig)
	if err != nil {
		return "", fmt.Errorf("failed to parse kubeconfig: %w", err)
	}
	name := cfg.CurrentContext
	kctx, ok := cfg.Contexts[name]
	if !ok {
		return "", fmt.Errorf("kubeconfig current context %q not found", name)
	}
	cluster, ok := cfg.Clusters[kctx.Cluster]
	if !ok || cluster.Server == "" {
		return "", fmt.Errorf("kubeconfig cluster %q has no server", kctx.Cluster)
	}
	return cluster.Server, nil
}

// ConsoleURL derives the web console address of a cluster.
func ConsoleURL(cluster, baseDomain string) string {
	return fmt.Sprintf("https://console-openshift-console.apps.%s.%s", cluster, strings.TrimSuffix(baseDomain, "."))
}
