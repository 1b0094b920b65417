package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDo_SuccessFirstAttempt(t *testing.T) {
	t.Parallel()
	calls := 0
	err := Do(context.Background(), func(_ int) error {
		calls++
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestDo_SuccessAfterRetries(t *testing.T) {
	t.Parallel()
	var seen []int
	err := Do(context.Background(), func(attempt int) error {
		seen = append(seen, attempt)
		if attempt < 3 {
			return errors.New("not yet")
		}
		return nil
	}, WithAttempts(5), WithInitialDelay(time.Millisecond))

	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3}, seen)
}

func TestDo_ExhaustsAttempts(t *testing.T) {
	t.Parallel()
	calls := 0
	err := Do(context.Background(), func(_ int) error {
		calls++
		return errors.New("no answer")
	}, WithAttempts(3), WithInitialDelay(time.Millisecond))

	require.Error(t, err)
	assert.Equal(t, 3, calls)
	assert.Contains(t, err.Error(), "failed after 3 attempts")
	assert.Contains(t, err.Error(), "no answer")
}

func TestDo_FatalStopsImmediately(t *testing.T) {
	t.Parallel()
	calls := 0
	sentinel := errors.New("refused")
	err := Do(context.Background(), func(_ int) error {
		calls++
		return Fatal(sentinel)
	}, WithAttempts(5), WithInitialDelay(time.Millisecond))

	require.Error(t, err)
	assert.Equal(t, 1, calls)
	assert.ErrorIs(t, err, sentinel)
}

func TestDo_ContextCancelled(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	err := Do(ctx, func(_ int) error {
		calls++
		cancel()
		return errors.New("transient")
	}, WithAttempts(5), WithInitialDelay(time.Hour))

	require.Error(t, err)
	assert.Equal(t, 1, calls)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestDo_ZeroAttemptsRunsOnce(t *testing.T) {
	t.Parallel()
	calls := 0
	_ = Do(context.Background(), func(_ int) error {
		calls++
		return errors.New("x")
	}, WithAttempts(0))

	assert.Equal(t, 1, calls)
}

func TestDo_BackoffCapped(t *testing.T) {
	t.Parallel()
	var stamps []time.Time
	_ = Do(context.Background(), func(_ int) error {
		stamps = append(stamps, time.Now())
		return errors.New("x")
	}, WithAttempts(4), WithInitialDelay(5*time.Millisecond), WithMultiplier(10), WithMaxDelay(10*time.Millisecond))

	require.Len(t, stamps, 4)
	last := stamps[3].Sub(stamps[2])
	assert.Less(t, last, 500*time.Millisecond, "delay must be capped by MaxDelay")
}

func TestFatal(t *testing.T) {
	t.Parallel()
	assert.NoError(t, Fatal(nil))

	base := errors.New("boom")
	err := Fatal(base)
	assert.True(t, IsFatal(err))
	assert.False(t, IsFatal(base))
	assert.Equal(t, "boom", err.Error())
	assert.ErrorIs(t, err, base)
}
