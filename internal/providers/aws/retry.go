package aws

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
)

const (
	// perCallTimeout bounds every individual cloud call.
	perCallTimeout = 20 * time.Second

	// maxRetries is the retry budget for THROTTLED/TRANSIENT failures.
	maxRetries = 3

	retryInitialInterval = 500 * time.Millisecond
	retryMultiplier      = 2
	retryJitter          = 0.25
)

// call runs fn with the per-call deadline, categorises failures, and retries
// THROTTLED/TRANSIENT errors with exponential backoff (initial 500 ms,
// factor 2, jitter ±25%, up to maxRetries attempts after the first).
// AUTH, PERMISSION, NOT_FOUND, and OTHER failures return immediately.
func call[T any](ctx context.Context, op string, fn func(context.Context) (T, error)) (T, error) {
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = retryInitialInterval
	bo.Multiplier = retryMultiplier
	bo.RandomizationFactor = retryJitter
	bo.Reset()

	var zero T
	var lastErr error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-time.After(bo.NextBackOff()):
			case <-ctx.Done():
				return zero, wrapErr(op, ctx.Err())
			}
		}

		callCtx, cancel := context.WithTimeout(ctx, perCallTimeout)
		out, err := fn(callCtx)
		cancel()
		if err == nil {
			return out, nil
		}

		lastErr = wrapErr(op, err)
		if !Retryable(lastErr) || ctx.Err() != nil {
			return zero, lastErr
		}
	}
	return zero, lastErr
}
