package config

import (
	"fmt"
	"os"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// LookupFunc resolves an environment variable. os.LookupEnv satisfies it.
type LookupFunc func(key string) (string, bool)

// Load builds a Config from defaults, the YAML file at path, and the environment.
//
// An empty path falls back to ocpctl.yaml in the working directory when that
// file exists; a missing default file is not an error. Validation is left to
// the caller because the DNS and install runs need different fields.
func Load(path string, lookup LookupFunc) (*Config, error) {
	cfg := Default()

	if path == "" {
		if _, err := os.Stat(DefaultConfigFile); err == nil {
			path = DefaultConfigFile
		}
	}

	if path != "" {
		if err := cfg.mergeFile(path); err != nil {
			return nil, err
		}
	}

	if lookup == nil {
		lookup = os.LookupEnv
	}
	cfg.ApplyEnv(lookup)

	return cfg, nil
}

// mergeFile decodes the YAML file over the current values. Keys absent from
// the file keep their defaults.
func (c *Config) mergeFile(path string) error {
	// #nosec G304
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	var rawConfig map[string]any
	if err := yaml.Unmarshal(data, &rawConfig); err != nil {
		return fmt.Errorf("failed to unmarshal yaml: %w", err)
	}
	if rawConfig == nil {
		return nil
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:      c,
		ErrorUnused: true,
	})
	if err != nil {
		return fmt.Errorf("failed to create config decoder: %w", err)
	}
	if err := decoder.Decode(rawConfig); err != nil {
		return fmt.Errorf("failed to decode config %s: %w", path, err)
	}

	return nil
}

// ApplyEnv overrides fields from environment variables.
//
// Environment Variables:
//   - AWS_ACCESS_KEY_ID, AWS_SECRET_ACCESS_KEY, AWS_PROFILE
//   - AWS_REGION (falls back to AWS_DEFAULT_REGION)
//   - OCPCTL_CLUSTER_NAME, OCPCTL_BASE_DOMAIN, OCPCTL_VERSION
//   - OCPCTL_INSTALL_DIR, OCPCTL_TARGET_USER, OCPCTL_NAMESERVERS_FILE
//   - OCPCTL_BIN_DIR, OCPCTL_MIRROR_URL, OCPCTL_ARCHIVE_BUCKET
func (c *Config) ApplyEnv(lookup LookupFunc) {
	set := func(key string, dst *string) {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}

	set("AWS_ACCESS_KEY_ID", &c.AWS.AccessKeyID)
	set("AWS_SECRET_ACCESS_KEY", &c.AWS.SecretAccessKey)
	set("AWS_PROFILE", &c.AWS.Profile)
	set("AWS_DEFAULT_REGION", &c.Region)
	set("AWS_REGION", &c.Region)

	set("OCPCTL_CLUSTER_NAME", &c.ClusterName)
	set("OCPCTL_BASE_DOMAIN", &c.BaseDomain)
	set("OCPCTL_VERSION", &c.Version)
	set("OCPCTL_INSTALL_DIR", &c.InstallDir)
	set("OCPCTL_TARGET_USER", &c.TargetUser)
	set("OCPCTL_NAMESERVERS_FILE", &c.NameserversFile)
	set("OCPCTL_BIN_DIR", &c.Tools.BinDir)
	set("OCPCTL_MIRROR_URL", &c.Tools.MirrorURL)
	set("OCPCTL_ARCHIVE_BUCKET", &c.Archive.Bucket)
}
