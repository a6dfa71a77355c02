// Package retry provides the attempt loop shared by the network-facing
// layers. Delay policies are passed as values so each caller keeps its
// own backoff shape: constant between record updates, attempt-scaled for
// transport failures, rate-limit-scaled for throttled API calls.
package retry

import (
	"context"
	"time"
)

// Policy computes the delay before the next attempt. attempt is the
// 1-based index of the attempt that just failed, err its failure.
type Policy func(attempt int, err error) time.Duration

// Constant returns the same delay regardless of attempt or error.
func Constant(d time.Duration) Policy {
	return func(int, error) time.Duration { return d }
}

// Linear grows the delay with the attempt number: unit, 2*unit, 3*unit.
func Linear(unit time.Duration) Policy {
	return func(attempt int, _ error) time.Duration { return time.Duration(attempt) * unit }
}

// Sleep waits for d or until the context is canceled, whichever comes
// first. A non-positive d returns immediately.
func Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// Do runs fn up to attempts times, sleeping policy(attempt, err) after
// each failure except the last. It returns nil as soon as fn succeeds,
// the context error if canceled while waiting, and the last failure
// once attempts are exhausted.
func Do(ctx context.Context, attempts int, policy Policy, fn func(attempt int) error) error {
	if attempts < 1 {
		attempts = 1
	}
	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		lastErr = fn(attempt)
		if lastErr == nil {
			return nil
		}
		if attempt == attempts {
			break
		}
		if err := Sleep(ctx, policy(attempt, lastErr)); err != nil {
			return err
		}
	}
	return lastErr
}
