package prompt

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/huh"
)

// Interactive renders prompts as huh forms.
type Interactive struct {
	in  io.Reader
	out io.Writer
}

// NewInteractive creates a terminal provider.
func NewInteractive(in io.Reader, out io.Writer) *Interactive {
	return &Interactive{in: in, out: out}
}

// Confirm implements Provider. Aborting the form counts as a refusal.
func (p *Interactive) Confirm(ctx context.Context, question string) (bool, error) {
	var ok bool
	err := p.form(huh.NewGroup(
		huh.NewConfirm().
			Title(question).
			Affirmative("Yes").
			Negative("No").
			Value(&ok),
	)).RunWithContext(ctx)
	if errors.Is(err, huh.ErrUserAborted) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return ok, nil
}

// ReadSecret implements Provider. The value is pasted as-is, line breaks
// included, and ends with Ctrl-D.
func (p *Interactive) ReadSecret(ctx context.Context, label string) (string, error) {
	fmt.Fprintf(p.out, "%s (paste, then press Ctrl-D on an empty line):\n", label)
	return readSecret(ctx, bufio.NewReader(p.in))
}

func (p *Interactive) form(groups ...*huh.Group) *huh.Form {
	return huh.NewForm(groups...).WithInput(p.in).WithOutput(p.out)
}
