package credentials

import (
	"fmt"
	"path/filepath"

	"github.com/imamik/ocpctl/internal/platform/awscloud"
	"github.com/imamik/ocpctl/internal/provisioning"
)

const phase = "credentials"

// Configurator is the credentials stage.
type Configurator struct{}

// NewConfigurator creates the credentials stage.
func NewConfigurator() *Configurator {
	return &Configurator{}
}

// Name implements provisioning.Phase.
func (c *Configurator) Name() string {
	return phase
}

// Provision implements provisioning.Phase.
func (c *Configurator) Provision(ctx *provisioning.Context) error {
	dir, err := sharedDir(ctx)
	if err != nil {
		return err
	}

	creds, err := c.resolve(ctx, dir)
	if err != nil {
		return err
	}

	awsCfg, err := ctx.Cloud.Config(ctx, creds)
	if err != nil {
		return provisioning.Fail(provisioning.ErrAuthentication, err)
	}

	apiCtx, cancel := ctx.WithTimeout(ctx.Timeouts.APITimeout)
	defer cancel()
	identity, err := ctx.Cloud.IdentityVerifier(awsCfg).CallerIdentity(apiCtx)
	if err != nil {
		provisioning.LogCheck(ctx.Observer, phase, "sts:GetCallerIdentity", err, "")
		return provisioning.Fail(provisioning.ErrAuthentication, fmt.Errorf("credentials for profile %s were rejected: %w", creds.Profile, err))
	}
	provisioning.LogCheck(ctx.Observer, phase, "sts:GetCallerIdentity", nil,
		fmt.Sprintf("authenticated as %s (account %s)", identity.ARN, identity.Account))

	ctx.State.AWS = awsCfg
	ctx.State.Credentials = creds
	ctx.State.Identity = identity
	return nil
}

// resolve returns the credentials for this run. Supplied keys are written to
// the shared files; without keys the stored profile is reused.
func (c *Configurator) resolve(ctx *provisioning.Context, dir string) (awscloud.Credentials, error) {
	aws := ctx.Config.AWS
	creds := awscloud.Credentials{
		Profile:         aws.Profile,
		AccessKeyID:     aws.AccessKeyID,
		SecretAccessKey: aws.SecretAccessKey,
		Region:          ctx.Config.Region,
		Output:          aws.Output,
	}

	if creds.Complete() {
		files, err := awscloud.WriteProfile(dir, creds, ctx.Owner)
		if err != nil {
			return creds, fmt.Errorf("failed to write AWS profile %s: %w", creds.Profile, err)
		}
		provisioning.LogResourceCreated(ctx.Observer, phase, "aws profile", creds.Profile, files.Credentials)
		ctx.State.ProfileFiles = files
		return creds, nil
	}

	if creds.AccessKeyID != "" || creds.SecretAccessKey != "" {
		return creds, provisioning.Failf(provisioning.ErrAuthentication, "access key id and secret access key must be supplied together")
	}

	stored, ok, err := awscloud.ReadProfile(dir, creds.Profile)
	if err != nil {
		return creds, provisioning.Fail(provisioning.ErrAuthentication, err)
	}
	if !ok || !stored.Complete() {
		return creds, provisioning.Failf(provisioning.ErrAuthentication,
			"no access key supplied and profile %q has no stored keys in %s", creds.Profile, dir)
	}

	if creds.Region == "" {
		creds.Region = stored.Region
	}
	if stored.Output != "" {
		creds.Output = stored.Output
	}
	creds.AccessKeyID = stored.AccessKeyID
	creds.SecretAccessKey = stored.SecretAccessKey
	ctx.State.ProfileFiles = awscloud.SharedFiles(dir)
	provisioning.LogResourceExists(ctx.Observer, phase, "aws profile", creds.Profile, ctx.State.ProfileFiles.Credentials)
	return creds, nil
}

func sharedDir(ctx *provisioning.Context) (string, error) {
	if ctx.Config.AWS.ConfigDir != "" {
		return ctx.Config.AWS.ConfigDir, nil
	}
	home, err := ctx.HomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}
	return filepath.Join(home, ".aws"), nil
}
