package testing

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/imamik/ocpctl/internal/config"
	"github.com/imamik/ocpctl/internal/prompt"
	"github.com/imamik/ocpctl/internal/provisioning"
	"github.com/imamik/ocpctl/internal/util/fsutil"
)

// FixedTime is the clock every Harness uses.
var FixedTime = time.Date(2026, 3, 14, 15, 9, 26, 0, time.UTC)

// Harness is a provisioning context wired to fakes, rooted in a temp directory.
type Harness struct {
	Ctx      *provisioning.Context
	Cloud    *FakeCloud
	Prompt   *prompt.Scripted
	Runner   *FakeRunner
	Fetcher  *FakeFetcher
	Prober   *FakeProber
	Observer *RecordingObserver
	Out      *bytes.Buffer

	// Home is the target user's home directory; Work holds relative paths.
	Home string
	Work string
}

// NewHarness builds a harness around cfg. Relative paths in cfg are resolved
// inside a fresh work directory. The prompt answers "yes" once and returns
// PullSecret.
func NewHarness(t *testing.T, cfg *config.Config) *Harness {
	t.Helper()
	root := t.TempDir()
	home := filepath.Join(root, "home")
	work := filepath.Join(root, "work")
	for _, dir := range []string{home, work} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			t.Fatalf("mkdir %s: %v", dir, err)
		}
	}

	cfg.InstallDir = within(work, cfg.InstallDir)
	cfg.NameserversFile = within(work, cfg.NameserversFile)
	if cfg.Tools.BinDir == "" || cfg.Tools.BinDir == config.DefaultBinDir {
		cfg.Tools.BinDir = filepath.Join(root, "bin")
	}

	h := &Harness{
		Cloud:    NewFakeCloud(),
		Prompt:   prompt.NewScripted(PullSecret, "yes"),
		Runner:   NewFakeRunner(),
		Fetcher:  NewFakeFetcher(),
		Prober:   NewFakeProber(NameServers...),
		Observer: NewRecordingObserver(),
		Out:      &bytes.Buffer{},
		Home:     home,
		Work:     work,
	}

	h.Ctx = provisioning.NewContext(context.Background(), cfg, provisioning.Deps{
		Cloud:    h.Cloud,
		Prompt:   h.Prompt,
		Runner:   h.Runner,
		Fetcher:  h.Fetcher,
		Prober:   h.Prober,
		Observer: h.Observer,
		Owner:    &fsutil.Owner{Username: "tester", UID: os.Geteuid(), GID: os.Getegid(), HomeDir: home},
		Out:      h.Out,
	})
	h.Ctx.Now = func() time.Time { return FixedTime }
	h.Ctx.Timeouts = &config.Timeouts{
		ProbeAttempts:   2,
		ProbeDelay:      time.Millisecond,
		ProbeTimeout:    time.Second,
		DownloadTimeout: 10 * time.Second,
		APITimeout:      10 * time.Second,
	}
	return h
}

// SetPrompt replaces the scripted provider.
func (h *Harness) SetPrompt(p *prompt.Scripted) {
	h.Prompt = p
	h.Ctx.Prompt = p
}

func within(dir, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(dir, path)
}
