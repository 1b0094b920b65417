package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/ocpctl/cmd/ocpctl/handlers"
)

// Install returns the command that provisions the cluster.
func Install(opts *handlers.Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "install",
		Short: "Install an OpenShift cluster into the prepared zone",
		Long: `Install an OpenShift cluster.

Requires the hosted zone created by 'ocpctl dns'. Downloads openshift-install,
oc and kubectl at the pinned version, ensures an SSH keypair, asks for the
pull secret, renders install-config.yaml and runs
'openshift-install create cluster'. On success the admin kubeconfig is
installed as ~/.kube/config and the console credentials are printed.

The pull secret is read from the terminal, or from stdin when it is not one.

Examples:
  ocpctl install --cluster-name demo --base-domain example.com --region us-east-1
  ocpctl install -c ocpctl.yaml < pull-secret.json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Install(cmd.Context(), opts)
		},
	}

	bindCommon(cmd, opts)
	f := cmd.Flags()
	f.StringVar(&opts.ClusterName, "cluster-name", "", "Cluster name (a DNS label)")
	f.StringVar(&opts.Version, "openshift-version", "", "Pinned installer and client version")
	f.StringVar(&opts.InstallDir, "install-dir", "", "Installer working directory (default: install)")
	f.StringVar(&opts.BinDir, "bin-dir", "", "Directory receiving the binaries (default: /usr/local/bin)")
	f.BoolVar(&opts.SkipDownload, "skip-download", false, "Reuse installed binaries when they match the pinned version")
	f.StringVar(&opts.ArchiveBucket, "archive-bucket", "", "S3 bucket receiving the manifest backup and installer metadata")

	return cmd
}
