package llm

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"strings"
	"time"
)

// RetryConfig parametrizes the retry decorator applied to completion call sites.
type RetryConfig struct {
	MaxAttempts    int
	BackoffFloor   time.Duration
	BackoffCeiling time.Duration
	Retryable      func(error) bool
}

// DefaultRetryConfig retries rate-limit failures with exponential backoff, 500ms
// floor, 16s ceiling, five attempts.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts:    5,
		BackoffFloor:   500 * time.Millisecond,
		BackoffCeiling: 16 * time.Second,
		Retryable:      IsRateLimitError,
	}
}

// IsRateLimitError reports whether an error looks like a rate-limit or
// resource-exhaustion response from the completion API.
func IsRateLimitError(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "429") || strings.Contains(msg, "RESOURCE_EXHAUSTED")
}

// Retry runs op, retrying on errors the config's predicate accepts, sleeping an
// exponentially growing, jittered backoff between attempts. Any other error, or
// exhaustion of the attempt budget, propagates immediately.
func Retry[T any](ctx context.Context, cfg RetryConfig, logger *slog.Logger, op func(ctx context.Context) (T, error)) (T, error) {
	var zero T
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 1
	}
	if cfg.BackoffFloor <= 0 {
		cfg.BackoffFloor = 500 * time.Millisecond
	}
	if cfg.BackoffCeiling < cfg.BackoffFloor {
		cfg.BackoffCeiling = cfg.BackoffFloor
	}
	if cfg.Retryable == nil {
		cfg.Retryable = IsRateLimitError
	}
	if logger == nil {
		logger = slog.Default()
	}

	backoff := cfg.BackoffFloor
	var lastErr error
	for attempt := 1; attempt <= cfg.MaxAttempts; attempt++ {
		out, err := op(ctx)
		if err == nil {
			return out, nil
		}
		if !cfg.Retryable(err) {
			return zero, err
		}
		lastErr = err

		if attempt == cfg.MaxAttempts {
			break
		}

		// Jitter spreads concurrent retries apart.
		sleep := backoff + time.Duration(rand.Int63n(int64(backoff)/2+1))
		logger.Warn("llm.retry.backoff",
			"attempt", attempt,
			"max_attempts", cfg.MaxAttempts,
			"sleep_ms", sleep.Milliseconds(),
			"error", err,
		)
		select {
		case <-ctx.Done():
			return zero, ctx.Err()
		case <-time.After(sleep):
		}

		backoff *= 2
		if backoff > cfg.BackoffCeiling {
			backoff = cfg.BackoffCeiling
		}
	}
	return zero, fmt.Errorf("retries exhausted after %d attempts: %w", cfg.MaxAttempts, lastErr)
}
