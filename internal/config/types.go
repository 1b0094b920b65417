package config

import "fmt"

// Config holds the configuration for one ocpctl run.
type Config struct {
	ClusterName string `mapstructure:"cluster_name" yaml:"cluster_name"`
	BaseDomain  string `mapstructure:"base_domain" yaml:"base_domain"`
	Region      string `mapstructure:"region" yaml:"region"`

	// Version is the pinned installer/client release, e.g. "4.16.9".
	Version string `mapstructure:"openshift_version" yaml:"openshift_version"`

	// InstallDir holds install-config.yaml and everything the installer produces.
	InstallDir string `mapstructure:"install_dir" yaml:"install_dir"`

	// TargetUser owns keys, manifests and the kube config. Defaults to the invoking user.
	TargetUser string `mapstructure:"target_user" yaml:"target_user"`

	// NameserversFile receives the zone's delegation nameservers, one per line.
	NameserversFile string `mapstructure:"nameservers_file" yaml:"nameservers_file"`

	AWS      AWSConfig      `mapstructure:"aws" yaml:"aws"`
	Tools    ToolsConfig    `mapstructure:"tools" yaml:"tools"`
	SSH      SSHConfig      `mapstructure:"ssh" yaml:"ssh"`
	Topology TopologyConfig `mapstructure:"topology" yaml:"topology"`
	Archive  ArchiveConfig  `mapstructure:"archive" yaml:"archive"`
}

// AWSConfig describes the credential profile written by the credentials stage.
type AWSConfig struct {
	Profile         string `mapstructure:"profile" yaml:"profile"`
	Output          string `mapstructure:"output" yaml:"output"`
	AccessKeyID     string `mapstructure:"access_key_id" yaml:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key" yaml:"secret_access_key"`

	// ConfigDir overrides the shared config directory (default ~<target_user>/.aws).
	ConfigDir string `mapstructure:"config_dir" yaml:"config_dir"`
}

// String masks the keys so the struct is safe to log.
func (a AWSConfig) String() string {
	return fmt.Sprintf("AWSConfig{Profile:%s Output:%s AccessKeyID:%s SecretAccessKey:%s}",
		a.Profile, a.Output, Mask(a.AccessKeyID), Mask(a.SecretAccessKey))
}

// ToolsConfig controls retrieval of the installer and client binaries.
type ToolsConfig struct {
	MirrorURL    string `mapstructure:"mirror_url" yaml:"mirror_url"`
	BinDir       string `mapstructure:"bin_dir" yaml:"bin_dir"`
	SkipDownload bool   `mapstructure:"skip_download" yaml:"skip_download"`
}

// SSHConfig names the node access keypair.
type SSHConfig struct {
	KeyName string `mapstructure:"key_name" yaml:"key_name"`
	KeyType string `mapstructure:"key_type" yaml:"key_type"` // ed25519 or rsa
}

// TopologyConfig is the fixed cluster layout rendered into install-config.yaml.
type TopologyConfig struct {
	ControlPlane MachinePool      `mapstructure:"control_plane" yaml:"control_plane"`
	Compute      MachinePool      `mapstructure:"compute" yaml:"compute"`
	Networking   NetworkingConfig `mapstructure:"networking" yaml:"networking"`
	Publish      string           `mapstructure:"publish" yaml:"publish"`
}

// MachinePool sizes one group of nodes.
type MachinePool struct {
	Replicas     int    `mapstructure:"replicas" yaml:"replicas"`
	InstanceType string `mapstructure:"instance_type" yaml:"instance_type"`
}

// NetworkingConfig holds the cluster CIDRs.
type NetworkingConfig struct {
	NetworkType    string `mapstructure:"network_type" yaml:"network_type"`
	ClusterNetwork string `mapstructure:"cluster_network" yaml:"cluster_network"`
	HostPrefix     int    `mapstructure:"host_prefix" yaml:"host_prefix"`
	MachineNetwork string `mapstructure:"machine_network" yaml:"machine_network"`
	ServiceNetwork string `mapstructure:"service_network" yaml:"service_network"`
}

// ArchiveConfig enables uploading install artifacts to S3 after a successful install.
type ArchiveConfig struct {
	Bucket string `mapstructure:"bucket" yaml:"bucket"`
	Prefix string `mapstructure:"prefix" yaml:"prefix"`
}

// Enabled reports whether an archive bucket is configured.
func (a ArchiveConfig) Enabled() bool {
	return a.Bucket != ""
}

// Mask keeps the first four characters of a secret for log output.
func Mask(s string) string {
	switch {
	case s == "":
		return ""
	case len(s) <= 4:
		return "****"
	default:
		return s[:4] + "****"
	}
}
