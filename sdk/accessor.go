// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package sdk

import (
	"context"
	"errors"
	"fmt"

	"github.com/jongio/gamebridge/logutil"
	"github.com/jongio/gamebridge/retry"
)

// errIconPending means the client answered without an image.
var errIconPending = errors.New("icon not yet available")

// Accessor reads achievement data through a Client and never returns an
// error: each query degrades to a neutral fallback once its attempts are
// spent.
type Accessor struct {
	client Client
	policy retry.Policy
	log    *logutil.ComponentLogger
}

// NewAccessor returns an Accessor using policy for the retried queries.
func NewAccessor(client Client, policy retry.Policy) *Accessor {
	return &Accessor{
		client: client,
		policy: policy,
		log:    logutil.NewLogger("sdk"),
	}
}

// permanentIfUnavailable stops the retry loop when the client itself is gone.
func permanentIfUnavailable(err error) error {
	if errors.Is(err, ErrUnavailable) {
		return retry.Permanent(err)
	}
	return err
}

func call[T any](ctx context.Context, policy retry.Policy, name string, fn func(context.Context) (T, error), fallback T) T {
	return retry.Do(ctx, policy, name, func(ctx context.Context) (T, error) {
		v, err := fn(ctx)
		return v, permanentIfUnavailable(err)
	}, fallback).Value
}

// IsAchieved reports whether the achievement is unlocked. It makes a single
// attempt and returns false on any error.
func (a *Accessor) IsAchieved(ctx context.Context, name string) bool {
	return call(ctx, retry.Once(), "achieved:"+name, func(ctx context.Context) (bool, error) {
		return a.client.AchievementAchieved(ctx, name)
	}, false)
}

// DisplayAttribute returns a display attribute such as "name" or "desc".
// It makes a single attempt and returns "" on error.
func (a *Accessor) DisplayAttribute(ctx context.Context, name, key string) string {
	return call(ctx, retry.Once(), fmt.Sprintf("display_attribute:%s:%s", name, key), func(ctx context.Context) (string, error) {
		return a.client.AchievementDisplayAttribute(ctx, name, key)
	}, "")
}

// AchievedPercent returns the global unlock percentage, or 0 once the
// attempts are exhausted.
func (a *Accessor) AchievedPercent(ctx context.Context, name string) float32 {
	return call(ctx, a.policy, "achieved_percent:"+name, func(ctx context.Context) (float32, error) {
		return a.client.AchievementAchievedPercent(ctx, name)
	}, 0)
}

// Icon returns the achievement image, or PlaceholderIcon once the attempts
// are exhausted. The result is never nil. A nil image from the client counts
// as a failed attempt.
func (a *Accessor) Icon(ctx context.Context, name string) *Icon {
	return call(ctx, a.policy, "icon:"+name, func(ctx context.Context) (*Icon, error) {
		icon, err := a.client.AchievementIcon(ctx, name)
		if err == nil && icon == nil {
			err = errIconPending
		}
		return icon, err
	}, PlaceholderIcon())
}

// NumAchievements returns the achievement count, or 0 once the attempts are
// exhausted.
func (a *Accessor) NumAchievements(ctx context.Context) uint32 {
	return call(ctx, a.policy, "num_achievements", a.client.NumAchievements, 0)
}

// AchievementNames returns the API names of every achievement, or an empty
// slice once the attempts are exhausted.
func (a *Accessor) AchievementNames(ctx context.Context) []string {
	names := call(ctx, a.policy, "achievement_names", a.client.AchievementNames, nil)
	if names == nil {
		return []string{}
	}
	return names
}

// InstallDir returns the install directory of appID. Unlike the achievement
// queries it reports the error, since callers must tell "not installed"
// apart from an empty directory.
func (a *Accessor) InstallDir(ctx context.Context, appID uint32) (string, error) {
	dir, err := a.client.AppInstallDir(ctx, appID)
	if err != nil {
		a.log.WithApp(appID).Warn("install directory unavailable", "error", err)
		return "", err
	}
	return dir, nil
}
