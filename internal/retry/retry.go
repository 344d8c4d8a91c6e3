// Package retry provides a bounded retry loop with exponential backoff.
package retry

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/sirupsen/logrus"
)

// Config holds configuration for retry mechanisms.
type Config struct {
	MaxAttempts int           // Maximum number of attempts (including the first)
	BaseDelay   time.Duration // Delay after the first failed attempt
	Multiplier  float64       // Multiplier for exponential backoff
	Name        string        // Name for logging

	// Sleep overrides the backoff wait, for tests. Nil uses a
	// context-aware time.After wait.
	Sleep func(time.Duration)
}

// DefaultConfig returns a retry configuration matching the scraper's
// contract: 3 attempts, backoff 1s, 2s (base 2, zero-indexed exponent).
func DefaultConfig(name string) Config {
	return Config{
		MaxAttempts: 3,
		BaseDelay:   1 * time.Second,
		Multiplier:  2.0,
		Name:        name,
	}
}

// Func is a function that can be retried.
type Func func() error

// Retryer handles retry logic with exponential backoff.
type Retryer struct {
	config Config
	logger *logrus.Logger
}

// NewRetryer creates a new retryer, filling in sane defaults for
// zero-valued config fields.
func NewRetryer(config Config, logger *logrus.Logger) *Retryer {
	if config.MaxAttempts <= 0 {
		config.MaxAttempts = 3
	}
	if config.BaseDelay <= 0 {
		config.BaseDelay = 1 * time.Second
	}
	if config.Multiplier <= 1.0 {
		config.Multiplier = 2.0
	}
	if config.Name == "" {
		config.Name = "Retryer"
	}
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	return &Retryer{config: config, logger: logger}
}

// Execute runs fn until it succeeds or MaxAttempts is exhausted.
// A failed attempt is expected control flow, not an error; only the
// terminal exhaustion is returned, wrapping the last cause and the
// attempt count.
func (r *Retryer) Execute(ctx context.Context, fn Func) error {
	var lastErr error

	for attempt := 1; attempt <= r.config.MaxAttempts; attempt++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		err := fn()
		if err == nil {
			if attempt > 1 {
				r.logger.Infof("[%s] Operation succeeded on attempt %d", r.config.Name, attempt)
			}
			return nil
		}

		lastErr = err

		if attempt == r.config.MaxAttempts {
			r.logger.Errorf("[%s] All %d attempts failed, last error: %v", r.config.Name, attempt, err)
			break
		}

		delay := r.calculateDelay(attempt)
		r.logger.Warnf("[%s] Attempt %d failed: %v. Retrying in %v...", r.config.Name, attempt, err, delay)

		if r.config.Sleep != nil {
			r.config.Sleep(delay)
			continue
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
	}

	return fmt.Errorf("max retry attempts (%d) exceeded: %w", r.config.MaxAttempts, lastErr)
}

// calculateDelay returns baseDelay * multiplier^(attempt-1), i.e. the
// zero-indexed exponential series 1s, 2s, 4s... for base 1s / multiplier 2.
func (r *Retryer) calculateDelay(attempt int) time.Duration {
	delay := float64(r.config.BaseDelay) * math.Pow(r.config.Multiplier, float64(attempt-1))
	return time.Duration(delay)
}
