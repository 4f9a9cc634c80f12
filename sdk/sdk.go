// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

// Package sdk defines the boundary to the game-distribution client.
//
// The client is an external program reached over IPC. Its answers can be
// briefly unavailable while it starts up or syncs, so reads go through an
// Accessor that applies a retry.Policy and falls back to a neutral value
// instead of failing the caller.
package sdk

import (
	"context"
	"errors"
)

var (
	// ErrNotInstalled is returned when an application has no install directory.
	ErrNotInstalled = errors.New("application not installed")
	// ErrUnavailable is returned when the client cannot answer at all.
	// Accessor does not retry it.
	ErrUnavailable = errors.New("client unavailable")
)

// Icon is an achievement image as raw RGBA pixels.
type Icon struct {
	Handle []byte `json:"handle"`
	Width  uint32 `json:"width"`
	Height uint32 `json:"height"`
}

// PlaceholderIcon returns the image reported when no real one could be read:
// a single zero byte with zero dimensions.
func PlaceholderIcon() *Icon {
	return &Icon{Handle: []byte{0}}
}

// IsPlaceholder reports whether i carries no real image.
func (i *Icon) IsPlaceholder() bool {
	return i == nil || (i.Width == 0 && i.Height == 0)
}

// Client is the subset of the game-distribution client used by gamebridge.
// Implementations must be safe for concurrent use.
type Client interface {
	// AppInstallDir returns the absolute install directory of appID.
	AppInstallDir(ctx context.Context, appID uint32) (string, error)
	AchievementAchieved(ctx context.Context, name string) (bool, error)
	AchievementDisplayAttribute(ctx context.Context, name, key string) (string, error)
	AchievementAchievedPercent(ctx context.Context, name string) (float32, error)
	// AchievementIcon returns a nil Icon when the image has not been
	// downloaded yet.
	AchievementIcon(ctx context.Context, name string) (*Icon, error)
	NumAchievements(ctx context.Context) (uint32, error)
	AchievementNames(ctx context.Context) ([]string, error)
}
