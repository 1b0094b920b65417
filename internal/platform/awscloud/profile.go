package awscloud

import (
	"bytes"
	"fmt"
	"path/filepath"

	"gopkg.in/ini.v1"

	"github.com/imamik/ocpctl/internal/util/fsutil"
)

const (
	credentialsFileName = "credentials"
	configFileName      = "config"
)

// ProfileFiles are the paths of the shared credential and config files.
type ProfileFiles struct {
	Credentials string
	Config      string
}

// SharedFiles returns the shared file paths inside dir (usually ~/.aws).
func SharedFiles(dir string) ProfileFiles {
	return ProfileFiles{
		Credentials: filepath.Join(dir, credentialsFileName),
		Config:      filepath.Join(dir, configFileName),
	}
}

// configSection returns the section name the config file uses for profile.
func configSection(profile string) string {
	if profile == "" || profile == "default" {
		return "default"
	}
	return "profile " + profile
}

func credentialsSection(profile string) string {
	if profile == "" {
		return "default"
	}
	return profile
}

// WriteProfile stores creds as a named profile in the shared files under dir.
// Sections for other profiles are preserved. The directory is 0700 and both
// files 0600, owned by owner.
func WriteProfile(dir string, creds Credentials, owner *fsutil.Owner) (ProfileFiles, error) {
	files := SharedFiles(dir)
	if err := fsutil.EnsureDir(dir, fsutil.PrivateDirMode, owner); err != nil {
		return files, err
	}

	credFile, err := ini.LooseLoad(files.Credentials)
	if err != nil {
		return files, fmt.Errorf("failed to parse %s: %w", files.Credentials, err)
	}
	sec := credFile.Section(credentialsSection(creds.Profile))
	sec.Key("aws_access_key_id").SetValue(creds.AccessKeyID)
	sec.Key("aws_secret_access_key").SetValue(creds.SecretAccessKey)
	if err := saveINI(credFile, files.Credentials, owner); err != nil {
		return files, err
	}

	cfgFile, err := ini.LooseLoad(files.Config)
	if err != nil {
		return files, fmt.Errorf("failed to parse %s: %w", files.Config, err)
	}
	sec = cfgFile.Section(configSection(creds.Profile))
	sec.Key("region").SetValue(creds.Region)
	if creds.Output != "" {
		sec.Key("output").SetValue(creds.Output)
	}
	if err := saveINI(cfgFile, files.Config, owner); err != nil {
		return files, err
	}

	return files, nil
}

// ReadProfile loads a stored profile from the shared files under dir.
// The boolean is false when the credentials file has no such profile.
func ReadProfile(dir, profile string) (Credentials, bool, error) {
	files := SharedFiles(dir)
	creds := Credentials{Profile: profile}

	credFile, err := ini.LooseLoad(files.Credentials)
	if err != nil {
		return creds, false, fmt.Errorf("failed to parse %s: %w", files.Credentials, err)
	}
	sec, err := credFile.GetSection(credentialsSection(profile))
	if err != nil {
		return creds, false, nil
	}
	creds.AccessKeyID = sec.Key("aws_access_key_id").String()
	creds.SecretAccessKey = sec.Key("aws_secret_access_key").String()

	cfgFile, err := ini.LooseLoad(files.Config)
	if err != nil {
		return creds, true, fmt.Errorf("failed to parse %s: %w", files.Config, err)
	}
	if sec, err := cfgFile.GetSection(configSection(profile)); err == nil {
		creds.Region = sec.Key("region").String()
		creds.Output = sec.Key("output").String()
	}

	return creds, true, nil
}

func saveINI(f *ini.File, path string, owner *fsutil.Owner) error {
	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		return fmt.Errorf("failed to render %s: %w", path, err)
	}
	return fsutil.WriteFileAtomic(path, buf.Bytes(), fsutil.PrivateFileMode, owner)
}
