package dbconnect

import (
	"context"
	"errors"
	log "log/slog"
	"time"

	"github.com/sethvargo/go-retry"
)

// Retry executes task with Fibonacci backoff up to 5 retries.
// If retries are exhausted, gaveUpTask is invoked (when not nil) and the final error is returned.
//
// Facades never retry on their own; this is for callers that choose to, e.g. waiting
// for backends on server startup.
func Retry(ctx context.Context, task func(ctx context.Context) error, gaveUpTask func(ctx context.Context)) error {
	return RetryWithBackoff(ctx, 5, 1*time.Second, task, gaveUpTask)
}

// RetryWithBackoff is Retry with explicit max retries and Fibonacci base duration.
// Only errors for which ShouldRetry returns true are retried.
func RetryWithBackoff(ctx context.Context, maxRetries uint64, base time.Duration,
	task func(ctx context.Context) error, gaveUpTask func(ctx context.Context)) error {
	b := retry.WithMaxRetries(maxRetries, retry.NewFibonacci(base))
	err := retry.Do(ctx, b, func(ctx context.Context) error {
		err := task(ctx)
		if ShouldRetry(err) {
			return retry.RetryableError(err)
		}
		return err
	})
	if err != nil {
		log.Warn(err.Error() + ", gave up")
		if gaveUpTask != nil {
			gaveUpTask(ctx)
		}
		return err
	}
	return nil
}

// ShouldRetry reports whether the error is retryable. Remote round trip failures are,
// decode and configuration errors are not.
func ShouldRetry(err error) bool {
	if err == nil {
		return false
	}
	// Context cancellations/timeouts are permanent from the caller's POV.
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	switch CodeOf(err) {
	case DecodeError, ConfigurationError:
		return false
	}
	return true
}
