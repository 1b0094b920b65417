package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/ocpctl/cmd/ocpctl/handlers"
)

// DNS returns the command that prepares the hosted zone.
func DNS(opts *handlers.Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dns",
		Short: "Create or discover the public hosted zone for the base domain",
		Long: `Prepare DNS for a cluster.

Writes the AWS credential profile, finds or creates the public Route 53
hosted zone for the base domain, and prints its nameservers. Delegate the
domain to those nameservers at your registrar, then confirm. A best-effort
probe reports whether each nameserver already answers for the zone.

Credentials are read from AWS_ACCESS_KEY_ID and AWS_SECRET_ACCESS_KEY, or
from an existing profile when neither is set.

Examples:
  ocpctl dns --base-domain example.com --region us-east-1
  ocpctl dns -c ocpctl.yaml --nameservers-file /tmp/ns.txt`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.DNS(cmd.Context(), opts)
		},
	}

	bindCommon(cmd, opts)
	cmd.Flags().StringVar(&opts.NameserversFile, "nameservers-file", "", "File receiving the zone's nameservers (default: nameservers.txt)")

	return cmd
}
