package manifest

import (
	"bytes"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/imamik/ocpctl/internal/config"
)

// Input is everything substituted into the manifest.
type Input struct {
	ClusterName string
	BaseDomain  string
	Region      string
	PullSecret  string
	SSHKey      string
	Topology    config.TopologyConfig
}

// InstallConfig mirrors the subset of the installer's install-config schema that is rendered.
type InstallConfig struct {
	APIVersion   string     `yaml:"apiVersion"`
	BaseDomain   string     `yaml:"baseDomain"`
	Metadata     Metadata   `yaml:"metadata"`
	Compute      []Pool     `yaml:"compute"`
	ControlPlane Pool       `yaml:"controlPlane"`
	Networking   Networking `yaml:"networking"`
	Platform     Platform   `yaml:"platform"`
	Publish      string     `yaml:"publish"`
	PullSecret   string     `yaml:"pullSecret"`
	SSHKey       string     `yaml:"sshKey"`
}

// Metadata names the cluster.
type Metadata struct {
	Name string `yaml:"name"`
}

// Pool is a machine pool.
type Pool struct {
	Name           string       `yaml:"name"`
	Hyperthreading string       `yaml:"hyperthreading"`
	Replicas       int          `yaml:"replicas"`
	Platform       PoolPlatform `yaml:"platform"`
}

// PoolPlatform holds the AWS machine settings of a pool.
type PoolPlatform struct {
	AWS AWSMachine `yaml:"aws"`
}

// AWSMachine selects the instance type.
type AWSMachine struct {
	Type string `yaml:"type"`
}

// Networking holds the cluster CIDRs.
type Networking struct {
	NetworkType    string           `yaml:"networkType"`
	ClusterNetwork []ClusterNetwork `yaml:"clusterNetwork"`
	MachineNetwork []MachineNetwork `yaml:"machineNetwork"`
	ServiceNetwork []string         `yaml:"serviceNetwork"`
}

// ClusterNetwork is the pod network.
type ClusterNetwork struct {
	CIDR       string `yaml:"cidr"`
	HostPrefix int    `yaml:"hostPrefix"`
}

// MachineNetwork is the node network.
type MachineNetwork struct {
	CIDR string `yaml:"cidr"`
}

// Platform selects AWS and its region.
type Platform struct {
	AWS AWSPlatform `yaml:"aws"`
}

// AWSPlatform is the platform.aws block.
type AWSPlatform struct {
	Region string `yaml:"region"`
}

// Build maps in onto the install-config schema.
func Build(in Input) *InstallConfig {
	t := in.Topology
	return &InstallConfig{
		APIVersion: "v1",
		BaseDomain: strings.TrimSuffix(in.BaseDomain, "."),
		Metadata:   Metadata{Name: in.ClusterName},
		Compute: []Pool{{
			Name:           "worker",
			Hyperthreading: "Enabled",
			Replicas:       t.Compute.Replicas,
			Platform:       PoolPlatform{AWS: AWSMachine{Type: t.Compute.InstanceType}},
		}},
		ControlPlane: Pool{
			Name:           "master",
			Hyperthreading: "Enabled",
			Replicas:       t.ControlPlane.Replicas,
			Platform:       PoolPlatform{AWS: AWSMachine{Type: t.ControlPlane.InstanceType}},
		},
		Networking: Networking{
			NetworkType:    t.Networking.NetworkType,
			ClusterNetwork: []ClusterNetwork{{CIDR: t.Networking.ClusterNetwork, HostPrefix: t.Networking.HostPrefix}},
			MachineNetwork: []MachineNetwork{{CIDR: t.Networking.MachineNetwork}},
			ServiceNetwork: []string{t.Networking.ServiceNetwork},
		},
		Platform:   Platform{AWS: AWSPlatform{Region: in.Region}},
		Publish:    t.Publish,
		PullSecret: in.PullSecret,
		SSHKey:     in.SSHKey,
	}
}

// Render produces the install-config.yaml document for in.
func Render(in Input) ([]byte, error) {
	if in.PullSecret == "" {
		return nil, fmt.Errorf("pull secret is empty")
	}
	if in.SSHKey == "" {
		return nil, fmt.Errorf("ssh public key is empty")
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(Build(in)); err != nil {
		return nil, fmt.Errorf("failed to render install-config: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("failed to render install-config: %w", err)
	}
	return buf.Bytes(), nil
}
