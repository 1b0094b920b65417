package provisioning

import (
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"

	"github.com/imamik/ocpctl/internal/platform/awscloud"
)

// State holds the shared results of provisioning phases.
// It is progressively populated as each phase completes and is passed
// to subsequent phases that need earlier results.
type State struct {
	// Credential results (populated by the credentials stage)
	AWS          aws.Config
	Credentials  awscloud.Credentials
	ProfileFiles awscloud.ProfileFiles
	Identity     *awscloud.Identity

	// Zone results (populated by the zone stages)
	Zone            *awscloud.Zone
	NameserversFile string
	Confirmed       bool
	Propagation     []ProbeResult

	// Install run results
	Tools    *ToolSet
	SSHKey   *SSHKey
	Manifest *Manifest
	Install  *Installation
	Access   *AccessConfig
}

// NewState creates an empty provisioning state.
func NewState() *State {
	return &State{}
}

// ProbeResult is the outcome of the propagation probe against one nameserver.
type ProbeResult struct {
	NameServer string
	Records    []string
	Attempts   int
	Err        error
}

// ToolSet records the installed binaries.
type ToolSet struct {
	Version   string
	Installer string
	Client    string
	Kubectl   string
}

// SSHKey is the node access keypair on disk.
type SSHKey struct {
	PrivatePath string
	PublicPath  string
	PublicKey   string
	Generated   bool
}

// Manifest locates the rendered install-config.yaml and its backup.
type Manifest struct {
	Path       string
	BackupPath string
}

// Installation records the artifacts of a successful installer run.
type Installation struct {
	Dir          string
	Kubeconfig   string
	PasswordFile string
}

// AccessConfig is what the operator needs to reach the new cluster.
type AccessConfig struct {
	KubeconfigPath string
	PreviousConfig string
	APIServerURL   string
	ConsoleURL     string
	Username       string
	Password       string
}

// String omits the password.
func (a AccessConfig) String() string {
	return fmt.Sprintf("AccessConfig{Kubeconfig:%s API:%s Console:%s User:%s}", a.KubeconfigPath, a.APIServerURL, a.ConsoleURL, a.Username)
}
