package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func newTestBackoff(cfg *Config) (*ExponentialBackoff, *[]time.Duration) {
	eb := NewExponentialBackoff(cfg)
	var slept []time.Duration
	eb.sleep = func(_ context.Context, d time.Duration) error {
		slept = append(slept, d)
		return nil
	}
	return eb, &slept
}

func TestExponentialBackoff_RetriesTransientErrors(t *testing.T) {
	eb, slept := newTestBackoff(&Config{MaxAttempts: 3, BaseDelay: 10 * time.Millisecond, MaxDelay: time.Second, Multiplier: 2})

	calls := 0
	err := eb.Execute(context.Background(), func(context.Context) error {
		calls++
		if calls < 3 {
			return errors.New("dial tcp: connection refused")
		}
		return nil
	})

	assert.NoError(t, err)
	assert.Equal(t, 3, calls)
	assert.Equal(t, []time.Duration{10 * time.Millisecond, 20 * time.Millisecond}, *slept)
}

func TestExponentialBackoff_StopsOnPermanentError(t *testing.T) {
	eb, slept := newTestBackoff(nil)
	permanent := errors.New("permission denied")

	calls := 0
	err := eb.Execute(context.Background(), func(context.Context) error {
		calls++
		return permanent
	})

	assert.Same(t, permanent, err)
	assert.Equal(t, 1, calls)
	assert.Empty(t, *slept)
}

func TestExponentialBackoff_ReportsExhaustion(t *testing.T) {
	eb, _ := newTestBackoff(&Config{MaxAttempts: 2, BaseDelay: time.Millisecond, MaxDelay: time.Millisecond, Multiplier: 2})

	err := eb.Execute(context.Background(), func(context.Context) error {
		return errors.New("service unavailable")
	})

	assert.True(t, IsMaxRetriesExceeded(err))
	assert.ErrorContains(t, err, "service unavailable")
}

func TestExponentialBackoff_CustomRetryable(t *testing.T) {
	flaky := errors.New("flaky")
	eb, _ := newTestBackoff(&Config{
		MaxAttempts: 2,
		BaseDelay:   time.Millisecond,
		MaxDelay:    time.Millisecond,
		Multiplier:  1,
		Retryable:   func(err error) bool { return errors.Is(err, flaky) },
	})

	calls := 0
	_ = eb.Execute(context.Background(), func(context.Context) error {
		calls++
		return flaky
	})

	assert.Equal(t, 2, calls)
}

func TestExponentialBackoff_DelayIsCapped(t *testing.T) {
	eb := NewExponentialBackoff(&Config{MaxAttempts: 10, BaseDelay: time.Second, MaxDelay: 3 * time.Second, Multiplier: 2})

	assert.Equal(t, 3*time.Second, eb.delay(5))
}
