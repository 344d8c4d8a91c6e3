package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func silentLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return logger
}

func TestExecuteSucceedsAfterFailures(t *testing.T) {
	var slept []time.Duration
	cfg := DefaultConfig("test")
	cfg.Sleep = func(d time.Duration) { slept = append(slept, d) }

	r := NewRetryer(cfg, silentLogger())

	calls := 0
	err := r.Execute(context.Background(), func() error {
		calls++
		if calls <= 2 {
			return errors.New("transient")
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 3, calls)
	assert.Equal(t, []time.Duration{1 * time.Second, 2 * time.Second}, slept)
}

func TestExecuteExhaustsAttempts(t *testing.T) {
	cfg := DefaultConfig("test")
	cfg.Sleep = func(time.Duration) {}

	r := NewRetryer(cfg, silentLogger())

	cause := errors.New("still down")
	calls := 0
	err := r.Execute(context.Background(), func() error {
		calls++
		return cause
	})

	require.Error(t, err)
	assert.Equal(t, 3, calls)
	assert.ErrorIs(t, err, cause)
}

func TestExecuteHonorsCancelledContext(t *testing.T) {
	r := NewRetryer(DefaultConfig("test"), silentLogger())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := r.Execute(ctx, func() error { return errors.New("never runs") })
	assert.ErrorIs(t, err, context.Canceled)
}

func TestDelaySeries(t *testing.T) {
	r := NewRetryer(Config{MaxAttempts: 5, BaseDelay: time.Second, Multiplier: 2}, silentLogger())

	assert.Equal(t, 1*time.Second, r.calculateDelay(1))
	assert.Equal(t, 2*time.Second, r.calculateDelay(2))
	assert.Equal(t, 4*time.Second, r.calculateDelay(3))
}
