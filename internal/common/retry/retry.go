// Package retry provides the linear-backoff retry loop shared by the
// store and ETA resolvers.
package retry

import (
	"time"

	"zepto-scraper/internal/common/errors"
)

// Config parameterizes one retry loop.
type Config struct {
	MaxAttempts int
	BaseDelay   time.Duration

	// Retryable decides whether a failed attempt consumes the remaining
	// budget or terminates immediately. Defaults to errors.IsRetryable.
	Retryable func(error) bool

	// Sleep is swappable for tests. Defaults to time.Sleep.
	Sleep func(time.Duration)
}

// Do runs op up to MaxAttempts times, passing the 0-indexed attempt number.
// Before attempt i (i > 0) it sleeps BaseDelay * (i + 1), a linear backoff
// matching the upstream's transient rate-limit failure mode rather than a
// sustained-outage one. The first attempt runs without delay. The last
// attempt's error is returned when the budget is exhausted.
func Do(cfg Config, op func(attempt int) error) error {
	if cfg.MaxAttempts < 1 {
		cfg.MaxAttempts = 1
	}
	retryable := cfg.Retryable
	if retryable == nil {
		retryable = errors.IsRetryable
	}
	sleep := cfg.Sleep
	if sleep == nil {
		sleep = time.Sleep
	}

	var lastErr error
	for attempt := 0; attempt < cfg.MaxAttempts; attempt++ {
		if attempt > 0 {
			sleep(cfg.BaseDelay * time.Duration(attempt+1))
		}

		lastErr = op(attempt)
		if lastErr == nil {
			return nil
		}
		if !retryable(lastErr) {
			return lastErr
		}
	}
	return lastErr
}
