// Package sshkey ensures the node access keypair exists under the target user's ~/.ssh.
package sshkey

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/imamik/ocpctl/internal/config"
	"github.com/imamik/ocpctl/internal/provisioning"
	"github.com/imamik/ocpctl/internal/util/fsutil"
	"github.com/imamik/ocpctl/internal/util/keygen"
)

const (
	phase   = "ssh-key"
	rsaBits = 4096
)

// Provisioner is the key stage. An existing private key is never rewritten.
type Provisioner struct{}

// NewProvisioner creates the key stage.
func NewProvisioner() *Provisioner {
	return &Provisioner{}
}

// Name implements provisioning.Phase.
func (p *Provisioner) Name() string {
	return phase
}

// Provision implements provisioning.Phase.
func (p *Provisioner) Provision(ctx *provisioning.Context) error {
	home, err := ctx.HomeDir()
	if err != nil {
		return fmt.Errorf("failed to resolve home directory: %w", err)
	}
	dir := filepath.Join(home, ".ssh")
	if err := fsutil.EnsureDir(dir, fsutil.PrivateDirMode, ctx.Owner); err != nil {
		return err
	}

	key := &provisioning.SSHKey{
		PrivatePath: filepath.Join(dir, ctx.Config.SSH.KeyName),
		PublicPath:  filepath.Join(dir, ctx.Config.SSH.KeyName+".pub"),
	}
	comment := keyComment(ctx)

	exists, err := fsutil.Exists(key.PrivatePath)
	if err != nil {
		return err
	}
	if exists {
		err = p.reuse(ctx, key, comment)
	} else {
		err = p.generate(ctx, key, comment)
	}
	if err != nil {
		return err
	}

	ctx.State.SSHKey = key
	return nil
}

func (p *Provisioner) reuse(ctx *provisioning.Context, key *provisioning.SSHKey, comment string) error {
	provisioning.LogResourceExists(ctx.Observer, phase, "ssh key", key.PrivatePath, ctx.Config.SSH.KeyName)

	if err := os.Chmod(key.PrivatePath, fsutil.PrivateFileMode); err != nil {
		return fmt.Errorf("failed to restrict %s: %w", key.PrivatePath, err)
	}
	if err := ctx.Owner.Chown(key.PrivatePath); err != nil {
		return err
	}

	pubExists, err := fsutil.Exists(key.PublicPath)
	if err != nil {
		return err
	}
	if !pubExists {
		// #nosec G304
		private, err := os.ReadFile(key.PrivatePath)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", key.PrivatePath, err)
		}
		public, err := keygen.PublicKeyFromPrivate(private, comment)
		if err != nil {
			return provisioning.Fail(provisioning.ErrResourceState,
				fmt.Errorf("existing key %s cannot be used without a passphrase: %w", key.PrivatePath, err))
		}
		if err := fsutil.WriteFileAtomic(key.PublicPath, public, fsutil.PublicFileMode, ctx.Owner); err != nil {
			return err
		}
		ctx.Observer.Printf("Re-derived missing public key %s", key.PublicPath)
	}

	// #nosec G304
	public, err := os.ReadFile(key.PublicPath)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", key.PublicPath, err)
	}
	key.PublicKey = strings.TrimSpace(string(public))
	if key.PublicKey == "" {
		return provisioning.Failf(provisioning.ErrResourceState, "public key %s is empty", key.PublicPath)
	}
	return nil
}

func (p *Provisioner) generate(ctx *provisioning.Context, key *provisioning.SSHKey, comment string) error {
	provisioning.LogResourceCreating(ctx.Observer, phase, "ssh key", key.PrivatePath)

	var (
		pair *keygen.KeyPair
		err  error
	)
	switch ctx.Config.SSH.KeyType {
	case config.KeyTypeRSA:
		pair, err = keygen.GenerateRSAKeyPair(rsaBits, comment)
	default:
		pair, err = keygen.GenerateED25519KeyPair(comment)
	}
	if err != nil {
		return err
	}

	if err := fsutil.WriteFileAtomic(key.PrivatePath, pair.PrivateKey, fsutil.PrivateFileMode, ctx.Owner); err != nil {
		return err
	}
	if err := fsutil.WriteFileAtomic(key.PublicPath, pair.PublicKey, fsutil.PublicFileMode, ctx.Owner); err != nil {
		return err
	}

	key.PublicKey = strings.TrimSpace(string(pair.PublicKey))
	key.Generated = true
	provisioning.LogResourceCreated(ctx.Observer, phase, "ssh key", key.PrivatePath, ctx.Config.SSH.KeyType)
	return nil
}

func keyComment(ctx *provisioning.Context) string {
	user := "ocpctl"
	if ctx.Owner != nil && ctx.Owner.Username != "" {
		user = ctx.Owner.Username
	}
	return fmt.Sprintf("%s@%s", user, ctx.Config.ClusterName)
}
