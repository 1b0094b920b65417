package prompt

import (
	"context"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
)

// Provider asks the operator for input.
type Provider interface {
	// Confirm asks a yes/no question. Anything but an explicit yes is false.
	Confirm(ctx context.Context, question string) (bool, error)
	// ReadSecret reads a secret value until end of input.
	ReadSecret(ctx context.Context, label string) (string, error)
}

// IsAffirmative reports whether answer is "y" or "yes", ignoring case and surrounding space.
func IsAffirmative(answer string) bool {
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}

// New picks the interactive provider when in is a terminal and the line reader otherwise.
func New(in *os.File, out io.Writer) Provider {
	if isatty.IsTerminal(in.Fd()) || isatty.IsCygwinTerminal(in.Fd()) {
		return NewInteractive(in, out)
	}
	return NewLineReader(in, out)
}
