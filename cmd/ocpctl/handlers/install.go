package handlers

import (
	"context"

	"github.com/imamik/ocpctl/internal/config"
	"github.com/imamik/ocpctl/internal/orchestration"
	"github.com/imamik/ocpctl/internal/ui/summary"
)

// Install handles the install command. The access summary is printed only
// when every stage succeeded.
func Install(ctx context.Context, opts *Options) error {
	cfg, err := loadConfig(opts, (*config.Config).ValidateInstall)
	if err != nil {
		return err
	}

	pctx, err := execute(ctx, orchestration.Install, cfg)
	if err != nil {
		return err
	}

	return summary.Install(stdout, cfg.ClusterName, pctx.State.Access, colorOutput())
}
