package config

// Default values applied before the config file, environment and flags.
const (
	DefaultVersion         = "4.16.9"
	DefaultInstallDir      = "install"
	DefaultNameserversFile = "nameservers.txt"
	DefaultConfigFile      = "ocpctl.yaml"
	DefaultAWSProfile      = "default"
	DefaultAWSOutput       = "json"
	DefaultMirrorURL       = "https://mirror.openshift.com/pub/openshift-v4/clients/ocp"
	DefaultBinDir          = "/usr/local/bin"
	DefaultSSHKeyName      = "id_ed25519"
	DefaultSSHKeyType      = KeyTypeED25519
	DefaultPublish         = "External"

	KeyTypeED25519 = "ed25519"
	KeyTypeRSA     = "rsa"
)

// Default returns a Config populated with the built-in topology and paths.
func Default() *Config {
	return &Config{
		Version:         DefaultVersion,
		InstallDir:      DefaultInstallDir,
		NameserversFile: DefaultNameserversFile,
		AWS: AWSConfig{
			Profile: DefaultAWSProfile,
			Output:  DefaultAWSOutput,
		},
		Tools: ToolsConfig{
			MirrorURL: DefaultMirrorURL,
			BinDir:    DefaultBinDir,
		},
		SSH: SSHConfig{
			KeyName: DefaultSSHKeyName,
			KeyType: DefaultSSHKeyType,
		},
		Topology: TopologyConfig{
			ControlPlane: MachinePool{Replicas: 3, InstanceType: "m5.xlarge"},
			Compute:      MachinePool{Replicas: 3, InstanceType: "m5.large"},
			Networking: NetworkingConfig{
				NetworkType:    "OVNKubernetes",
				ClusterNetwork: "10.128.0.0/14",
				HostPrefix:     23,
				MachineNetwork: "10.0.0.0/16",
				ServiceNetwork: "172.30.0.0/16",
			},
			Publish: DefaultPublish,
		},
	}
}
