// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package sdk

import (
	"context"
	"fmt"
)

// Static is a Client backed by a fixed table of install directories, such as
// the install_dirs section of the configuration file. It has no achievement
// data; those queries return ErrUnavailable.
type Static struct {
	dirs map[uint32]string
}

// NewStatic returns a Static client. The map is copied.
func NewStatic(dirs map[uint32]string) *Static {
	copied := make(map[uint32]string, len(dirs))
	for id, dir := range dirs {
		copied[id] = dir
	}
	return &Static{dirs: copied}
}

// AppInstallDir implements Client.
func (s *Static) AppInstallDir(_ context.Context, appID uint32) (string, error) {
	dir, ok := s.dirs[appID]
	if !ok || dir == "" {
		return "", fmt.Errorf("app %d: %w", appID, ErrNotInstalled)
	}
	return dir, nil
}

func (s *Static) noAchievements(what string) error {
	return fmt.Errorf("%s: %w: no achievement data in static client", what, ErrUnavailable)
}

// AchievementAchieved implements Client.
func (s *Static) AchievementAchieved(context.Context, string) (bool, error) {
	return false, s.noAchievements("achieved")
}

// AchievementDisplayAttribute implements Client.
func (s *Static) AchievementDisplayAttribute(context.Context, string, string) (string, error) {
	return "", s.noAchievements("display attribute")
}

// AchievementAchievedPercent implements Client.
func (s *Static) AchievementAchievedPercent(context.Context, string) (float32, error) {
	return 0, s.noAchievements("achieved percent")
}

// AchievementIcon implements Client.
func (s *Static) AchievementIcon(context.Context, string) (*Icon, error) {
	return nil, s.noAchievements("icon")
}

// NumAchievements implements Client.
func (s *Static) NumAchievements(context.Context) (uint32, error) {
	return 0, s.noAchievements("achievement count")
}

// AchievementNames implements Client.
func (s *Static) AchievementNames(context.Context) ([]string, error) {
	return nil, s.noAchievements("achievement names")
}
