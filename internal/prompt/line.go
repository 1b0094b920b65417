package prompt

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// LineReader reads answers from a plain stream, one line per confirmation.
type LineReader struct {
	in  *bufio.Reader
	out io.Writer
}

// NewLineReader creates a provider reading from in and printing questions to out.
func NewLineReader(in io.Reader, out io.Writer) *LineReader {
	return &LineReader{in: bufio.NewReader(in), out: out}
}

// Confirm implements Provider. End of input is a refusal.
func (p *LineReader) Confirm(ctx context.Context, question string) (bool, error) {
	fmt.Fprintf(p.out, "%s [y/N]: ", question)
	line, err := readAsync(ctx, func() (string, error) {
		return p.in.ReadString('\n')
	})
	if err != nil && !errors.Is(err, io.EOF) {
		return false, err
	}
	return IsAffirmative(line), nil
}

// ReadSecret implements Provider. Everything up to end of input is the secret.
func (p *LineReader) ReadSecret(ctx context.Context, label string) (string, error) {
	fmt.Fprintf(p.out, "%s (end input with Ctrl-D):\n", label)
	return readSecret(ctx, p.in)
}

// eot is the byte a raw-mode terminal sends for Ctrl-D.
const eot = 0x04

// readSecret collects a multi-line value verbatim until end of input or EOT.
// Only surrounding whitespace is removed.
func readSecret(ctx context.Context, in *bufio.Reader) (string, error) {
	data, err := readAsync(ctx, func() (string, error) {
		s, err := in.ReadString(eot)
		if errors.Is(err, io.EOF) {
			err = nil
		}
		return strings.TrimSuffix(s, string(rune(eot))), err
	})
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(data), nil
}

// readAsync runs a blocking read and gives up when ctx is done.
// The read keeps running in the background until the stream yields.
func readAsync(ctx context.Context, read func() (string, error)) (string, error) {
	type result struct {
		s   string
		err error
	}
	done := make(chan result, 1)
	go func() {
		s, err := read()
		done <- result{s, err}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r := <-done:
		return r.s, r.err
	}
}
