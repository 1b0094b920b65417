package testing

import (
	"github.com/imamik/ocpctl/internal/config"
)

// ConfigBuilder provides a fluent interface for constructing test configs.
// Each method returns a new builder (immutable) for chaining.
type ConfigBuilder struct {
	cfg config.Config
}

// NewConfigBuilder creates a new ConfigBuilder from the built-in defaults plus
// a complete set of credentials, so the result passes both validations.
func NewConfigBuilder() *ConfigBuilder {
	cfg := *config.Default()
	cfg.ClusterName = "demo"
	cfg.BaseDomain = "example.test"
	cfg.Region = "us-east-1"
	cfg.AWS.AccessKeyID = "AKIAEXAMPLEKEY"
	cfg.AWS.SecretAccessKey = "example-secret-key"
	return &ConfigBuilder{cfg: cfg}
}

// WithClusterName sets the cluster name.
func (b *ConfigBuilder) WithClusterName(name string) *ConfigBuilder {
	nb := b.clone()
	nb.cfg.ClusterName = name
	return nb
}

// WithBaseDomain sets the base domain.
func (b *ConfigBuilder) WithBaseDomain(domain string) *ConfigBuilder {
	nb := b.clone()
	nb.cfg.BaseDomain = domain
	return nb
}

// WithRegion sets the AWS region.
func (b *ConfigBuilder) WithRegion(region string) *ConfigBuilder {
	nb := b.clone()
	nb.cfg.Region = region
	return nb
}

// WithCredentials sets the access key pair. Empty values clear them.
func (b *ConfigBuilder) WithCredentials(accessKeyID, secretAccessKey string) *ConfigBuilder {
	nb := b.clone()
	nb.cfg.AWS.AccessKeyID = accessKeyID
	nb.cfg.AWS.SecretAccessKey = secretAccessKey
	return nb
}

// WithProfile sets the AWS profile name.
func (b *ConfigBuilder) WithProfile(profile string) *ConfigBuilder {
	nb := b.clone()
	nb.cfg.AWS.Profile = profile
	return nb
}

// WithInstallDir sets the install directory.
func (b *ConfigBuilder) WithInstallDir(dir string) *ConfigBuilder {
	nb := b.clone()
	nb.cfg.InstallDir = dir
	return nb
}

// WithNameserversFile sets the nameserver side-channel file.
func (b *ConfigBuilder) WithNameserversFile(path string) *ConfigBuilder {
	nb := b.clone()
	nb.cfg.NameserversFile = path
	return nb
}

// WithTools sets the mirror URL and bin dir.
func (b *ConfigBuilder) WithTools(mirrorURL, binDir string) *ConfigBuilder {
	nb := b.clone()
	nb.cfg.Tools.MirrorURL = mirrorURL
	nb.cfg.Tools.BinDir = binDir
	return nb
}

// WithSkipDownload toggles reuse of already installed tools.
func (b *ConfigBuilder) WithSkipDownload(skip bool) *ConfigBuilder {
	nb := b.clone()
	nb.cfg.Tools.SkipDownload = skip
	return nb
}

// WithArchive enables artifact archiving to bucket under prefix.
func (b *ConfigBuilder) WithArchive(bucket, prefix string) *ConfigBuilder {
	nb := b.clone()
	nb.cfg.Archive.Bucket = bucket
	nb.cfg.Archive.Prefix = prefix
	return nb
}

// Build returns a copy of the configuration.
func (b *ConfigBuilder) Build() *config.Config {
	cfg := b.cfg
	return &cfg
}

func (b *ConfigBuilder) clone() *ConfigBuilder {
	return &ConfigBuilder{cfg: b.cfg}
}
