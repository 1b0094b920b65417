package orchestration

import (
	"github.com/imamik/ocpctl/internal/provisioning"
	"github.com/imamik/ocpctl/internal/provisioning/access"
	"github.com/imamik/ocpctl/internal/provisioning/credentials"
	"github.com/imamik/ocpctl/internal/provisioning/installer"
	"github.com/imamik/ocpctl/internal/provisioning/manifest"
	"github.com/imamik/ocpctl/internal/provisioning/sshkey"
	"github.com/imamik/ocpctl/internal/provisioning/tools"
	"github.com/imamik/ocpctl/internal/provisioning/zone"
)

// Plan names.
const (
	DNS     = "dns"
	Install = "install"
)

// DNSPlan is Initial → CredentialsConfigured → ZoneConfirmed → PropagationChecked.
func DNSPlan() (*provisioning.Plan, error) {
	return provisioning.NewPlan(DNS,
		[]provisioning.WorkflowState{
			provisioning.StateCredentialsConfigured,
			provisioning.StateZoneConfirmed,
			provisioning.StatePropagationChecked,
		},
		[]provisioning.Phase{
			credentials.NewConfigurator(),
			zone.NewProvisioner(),
			zone.NewPropagationChecker(),
		},
	)
}

// InstallPlan runs from credentials through access config deployment.
func InstallPlan() (*provisioning.Plan, error) {
	return provisioning.NewPlan(Install,
		[]provisioning.WorkflowState{
			provisioning.StateCredentialsConfigured,
			provisioning.StateZonePreconditionVerified,
			provisioning.StateToolsInstalled,
			provisioning.StateKeyReady,
			provisioning.StateManifestGenerated,
			provisioning.StateInstallationComplete,
			provisioning.StateAccessConfigDeployed,
		},
		[]provisioning.Phase{
			credentials.NewConfigurator(),
			zone.NewPreconditionChecker(),
			tools.NewAcquirer(),
			sshkey.NewProvisioner(),
			manifest.NewGenerator(),
			installer.NewDriver(),
			access.NewDeployer(),
		},
	)
}
