package utils

import (
	"context"
	"errors"
	"fmt"
	"time"
)

type RetryConfig struct {
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
}

// Retry calls fn until it succeeds or attempts run out. Errors matching any of
// permanent are returned immediately.
func Retry(ctx context.Context, cfg RetryConfig, fn func() error, permanent ...error) error {
	return RetryIf(ctx, cfg, fn, func(err error) bool {
		for _, p := range permanent {
			if errors.Is(err, p) {
				return false
			}
		}
		return true
	})
}

// RetryIf retries only while retryable reports true for the returned error.
// Context errors are never retried, and waiting between attempts stops as soon
// as ctx is done.
func RetryIf(ctx context.Context, cfg RetryConfig, fn func() error, retryable func(error) bool) error {
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 3
	}
	if cfg.Multiplier <= 1 {
		cfg.Multiplier = 2.0
	}
	if cfg.InitialDelay <= 0 {
		cfg.InitialDelay = time.Millisecond * 100
	}

	delay := cfg.InitialDelay

	for attempt := 1; attempt <= cfg.MaxAttempts; attempt++ {
		err := fn()
		if err == nil {
			return nil
		}

		if attempt == cfg.MaxAttempts || isContextErr(err) || !retryable(err) {
			return err
		}

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return fmt.Errorf("%w, last error: %w", ctx.Err(), err)
		case <-timer.C:
		}

		delay = time.Duration(float64(delay) * cfg.Multiplier)
		if cfg.MaxDelay > 0 && delay > cfg.MaxDelay {
			delay = cfg.MaxDelay
		}
	}
	return nil
}

func isContextErr(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
