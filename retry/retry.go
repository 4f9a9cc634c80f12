// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

// Package retry calls fallible operations a bounded number of times at a
// fixed interval and falls back to a caller-supplied value on exhaustion.
//
// It exists for queries against an external client whose IPC may fail
// transiently. There is no backoff growth and no jitter: every pause between
// attempts is exactly Policy.Interval.
package retry

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jongio/gamebridge/logutil"
)

// Default policy values.
const (
	DefaultMaxAttempts = 10
	DefaultInterval    = 250 * time.Millisecond
)

// Policy bounds a retry loop.
type Policy struct {
	// MaxAttempts is the total number of attempts, including the first.
	// Values below 1 are treated as 1.
	MaxAttempts int
	// Interval is the pause between consecutive attempts.
	Interval time.Duration
	// Sleep pauses between attempts. It returns early with ctx.Err() when
	// ctx is cancelled. Nil selects a timer-based sleep; tests replace it to
	// count attempts without waiting.
	Sleep func(ctx context.Context, d time.Duration) error
}

// DefaultPolicy returns a Policy of 10 attempts 250ms apart.
func DefaultPolicy() Policy {
	return Policy{MaxAttempts: DefaultMaxAttempts, Interval: DefaultInterval}
}

// Once returns a Policy that makes exactly one attempt.
func Once() Policy {
	return Policy{MaxAttempts: 1}
}

func (p Policy) attempts() int {
	if p.MaxAttempts < 1 {
		return 1
	}
	return p.MaxAttempts
}

func (p Policy) sleep(ctx context.Context, d time.Duration) error {
	if p.Sleep != nil {
		return p.Sleep(ctx, d)
	}
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Result is the outcome of Do.
type Result[T any] struct {
	// Value is the operation's value, or the fallback when Err is non-nil.
	Value T
	// Attempts is how many times the operation was called.
	Attempts int
	// Err is the last error seen, or nil when an attempt succeeded.
	Err error
}

// permanentError marks an error that must not be retried.
type permanentError struct {
	err error
}

func (e *permanentError) Error() string { return e.err.Error() }
func (e *permanentError) Unwrap() error { return e.err }

// Permanent wraps err so that Do stops after the current attempt.
// Permanent(nil) returns nil.
func Permanent(err error) error {
	if err == nil {
		return nil
	}
	return &permanentError{err: err}
}

// IsPermanent reports whether err was wrapped with Permanent.
func IsPermanent(err error) bool {
	var p *permanentError
	return errors.As(err, &p)
}

// ErrExhausted is wrapped by Result.Err when every attempt failed.
var ErrExhausted = errors.New("retry attempts exhausted")

// Do calls op until it succeeds, returns a Permanent error, ctx is cancelled,
// or policy.MaxAttempts calls have been made. On success Result.Value is op's
// value. Otherwise Result.Value is fallback and exactly one diagnostic naming
// the operation is logged.
func Do[T any](ctx context.Context, policy Policy, name string, op func(context.Context) (T, error), fallback T) Result[T] {
	log := logutil.NewLogger("retry").WithOperation(name)
	maxAttempts := policy.attempts()

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		value, err := op(ctx)
		if err == nil {
			if attempt > 1 {
				log.Debug("operation succeeded after retry", "attempts", attempt)
			}
			return Result[T]{Value: value, Attempts: attempt}
		}
		lastErr = err

		if IsPermanent(err) {
			log.Warn("operation failed permanently, using fallback",
				"attempts", attempt, "error", err)
			return Result[T]{Value: fallback, Attempts: attempt, Err: err}
		}

		if attempt == maxAttempts {
			break
		}

		log.Debug("operation failed, retrying",
			"attempt", attempt, "interval", policy.Interval, "error", err)
		if serr := policy.sleep(ctx, policy.Interval); serr != nil {
			log.Warn("operation cancelled, using fallback",
				"attempts", attempt, "error", serr)
			return Result[T]{Value: fallback, Attempts: attempt, Err: serr}
		}
	}

	log.Error("exhausted all attempts, using fallback",
		"attempts", maxAttempts, "error", lastErr)
	return Result[T]{
		Value:    fallback,
		Attempts: maxAttempts,
		Err:      fmt.Errorf("%s: %w after %d attempts: %w", name, ErrExhausted, maxAttempts, lastErr),
	}
}
