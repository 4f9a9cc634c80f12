// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package sdk

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sony/gobreaker"

	"github.com/jongio/gamebridge/logutil"
)

// Breaker defaults.
const (
	DefaultBreakerFailures = 5
	DefaultBreakerTimeout  = 30 * time.Second
)

// BreakerConfig configures the circuit breaker used by Guarded.
type BreakerConfig struct {
	// Failures is the number of consecutive failed calls that opens the
	// breaker. Zero selects DefaultBreakerFailures; a negative value never
	// opens it.
	Failures int
	// Timeout is how long the breaker stays open before letting a trial
	// call through. Zero selects DefaultBreakerTimeout.
	Timeout time.Duration
	// OnStateChange is called on every transition, typically to export
	// metrics.
	OnStateChange func(name string, from, to gobreaker.State)
}

// Guarded wraps a Client with a circuit breaker. While the breaker is open
// calls fail immediately with ErrUnavailable instead of reaching the client,
// which stops an Accessor from spending its whole retry budget on a client
// that is known to be down.
//
// ErrNotInstalled answers are not counted as failures.
type Guarded struct {
	inner   Client
	breaker *gobreaker.CircuitBreaker
}

// NewGuarded wraps inner.
func NewGuarded(inner Client, cfg BreakerConfig) *Guarded {
	failures := cfg.Failures
	if failures == 0 {
		failures = DefaultBreakerFailures
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultBreakerTimeout
	}
	log := logutil.NewLogger("sdk")

	settings := gobreaker.Settings{
		Name:        "sdk",
		MaxRequests: 1,
		Timeout:     timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if failures < 0 {
				return false
			}
			return counts.ConsecutiveFailures >= uint32(failures)
		},
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, ErrNotInstalled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn("client circuit breaker changed state",
				"from", from.String(), "to", to.String())
			if cfg.OnStateChange != nil {
				cfg.OnStateChange(name, from, to)
			}
		},
	}

	return &Guarded{inner: inner, breaker: gobreaker.NewCircuitBreaker(settings)}
}

// State returns the breaker's current state.
func (g *Guarded) State() gobreaker.State {
	return g.breaker.State()
}

func guard[T any](g *Guarded, call func() (T, error)) (T, error) {
	out, err := g.breaker.Execute(func() (interface{}, error) {
		return call()
	})
	if err != nil {
		var zero T
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return zero, fmt.Errorf("%w: %w", ErrUnavailable, err)
		}
		return zero, err
	}

	value, ok := out.(T)
	if !ok {
		var zero T
		return zero, nil
	}
	return value, nil
}

// AppInstallDir implements Client.
func (g *Guarded) AppInstallDir(ctx context.Context, appID uint32) (string, error) {
	return guard(g, func() (string, error) { return g.inner.AppInstallDir(ctx, appID) })
}

// AchievementAchieved implements Client.
func (g *Guarded) AchievementAchieved(ctx context.Context, name string) (bool, error) {
	return guard(g, func() (bool, error) { return g.inner.AchievementAchieved(ctx, name) })
}

// AchievementDisplayAttribute implements Client.
func (g *Guarded) AchievementDisplayAttribute(ctx context.Context, name, key string) (string, error) {
	return guard(g, func() (string, error) { return g.inner.AchievementDisplayAttribute(ctx, name, key) })
}

// AchievementAchievedPercent implements Client.
func (g *Guarded) AchievementAchievedPercent(ctx context.Context, name string) (float32, error) {
	return guard(g, func() (float32, error) { return g.inner.AchievementAchievedPercent(ctx, name) })
}

// AchievementIcon implements Client.
func (g *Guarded) AchievementIcon(ctx context.Context, name string) (*Icon, error) {
	return guard(g, func() (*Icon, error) { return g.inner.AchievementIcon(ctx, name) })
}

// NumAchievements implements Client.
func (g *Guarded) NumAchievements(ctx context.Context) (uint32, error) {
	return guard(g, func() (uint32, error) { return g.inner.NumAchievements(ctx) })
}

// AchievementNames implements Client.
func (g *Guarded) AchievementNames(ctx context.Context) ([]string, error) {
	return guard(g, func() ([]string, error) { return g.inner.AchievementNames(ctx) })
}
