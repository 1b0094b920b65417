package handlers

import (
	"context"

	"github.com/imamik/ocpctl/internal/config"
	"github.com/imamik/ocpctl/internal/orchestration"
	"github.com/imamik/ocpctl/internal/ui/summary"
)

// DNS handles the dns command.
func DNS(ctx context.Context, opts *Options) error {
	cfg, err := loadConfig(opts, (*config.Config).ValidateDNS)
	if err != nil {
		return err
	}

	pctx, err := execute(ctx, orchestration.DNS, cfg)
	if err != nil {
		return err
	}

	s := pctx.State
	return summary.DNS(stdout, s.Zone.Name, s.Zone.NameServers, s.Propagation, colorOutput())
}
