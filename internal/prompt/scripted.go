package prompt

import (
	"context"
	"strings"
	"sync"
)

// Scripted replays canned answers. It records every question asked.
type Scripted struct {
	mu      sync.Mutex
	answers []string
	secret  string

	Questions []string
	Labels    []string
}

// NewScripted returns a provider that answers confirmations from answers in
// order and returns secret for every ReadSecret call. Running out of answers
// behaves like end of input.
func NewScripted(secret string, answers ...string) *Scripted {
	return &Scripted{answers: answers, secret: secret}
}

// Confirm implements Provider.
func (s *Scripted) Confirm(ctx context.Context, question string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Questions = append(s.Questions, question)
	if len(s.answers) == 0 {
		return false, nil
	}
	answer := s.answers[0]
	s.answers = s.answers[1:]
	return IsAffirmative(answer), nil
}

// ReadSecret implements Provider.
func (s *Scripted) ReadSecret(ctx context.Context, label string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Labels = append(s.Labels, label)
	return strings.TrimSpace(s.secret), nil
}
