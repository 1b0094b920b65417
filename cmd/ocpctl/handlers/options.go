package handlers

import "github.com/imamik/ocpctl/internal/config"

// Options carries the command-line overrides. Empty values leave the
// configuration file and environment in charge.
type Options struct {
	ConfigPath string

	ClusterName     string
	BaseDomain      string
	Region          string
	Profile         string
	TargetUser      string
	NameserversFile string
	Version         string
	InstallDir      string
	BinDir          string
	SkipDownload    bool
	ArchiveBucket   string
}

// apply writes the set flags over cfg.
func (o *Options) apply(cfg *config.Config) {
	set := func(v string, dst *string) {
		if v != "" {
			*dst = v
		}
	}
	set(o.ClusterName, &cfg.ClusterName)
	set(o.BaseDomain, &cfg.BaseDomain)
	set(o.Region, &cfg.Region)
	set(o.Profile, &cfg.AWS.Profile)
	set(o.TargetUser, &cfg.TargetUser)
	set(o.NameserversFile, &cfg.NameserversFile)
	set(o.Version, &cfg.Version)
	set(o.InstallDir, &cfg.InstallDir)
	set(o.BinDir, &cfg.Tools.BinDir)
	set(o.ArchiveBucket, &cfg.Archive.Bucket)
	if o.SkipDownload {
		cfg.Tools.SkipDownload = true
	}
}
