// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package sdk

import (
	"context"
	"sync"
)

// Fake is an in-memory Client for tests.
//
// Each method consults its hook first; without a hook it answers from the
// maps. Every call is counted by method name.
type Fake struct {
	InstallDirs  map[uint32]string
	Achieved     map[string]bool
	Attributes   map[string]map[string]string
	Percents     map[string]float32
	Icons        map[string]*Icon
	Names        []string
	InstallDirFn func(appID uint32) (string, error)
	PercentFn    func(name string) (float32, error)
	IconFn       func(name string) (*Icon, error)
	AchievedFn   func(name string) (bool, error)

	mu    sync.Mutex
	calls map[string]int
}

func (f *Fake) record(method string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.calls == nil {
		f.calls = make(map[string]int)
	}
	f.calls[method]++
}

// Calls returns how many times method was invoked.
func (f *Fake) Calls(method string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[method]
}

// AppInstallDir implements Client.
func (f *Fake) AppInstallDir(_ context.Context, appID uint32) (string, error) {
	f.record("AppInstallDir")
	if f.InstallDirFn != nil {
		return f.InstallDirFn(appID)
	}
	dir, ok := f.InstallDirs[appID]
	if !ok {
		return "", ErrNotInstalled
	}
	return dir, nil
}

// AchievementAchieved implements Client.
func (f *Fake) AchievementAchieved(_ context.Context, name string) (bool, error) {
	f.record("AchievementAchieved")
	if f.AchievedFn != nil {
		return f.AchievedFn(name)
	}
	return f.Achieved[name], nil
}

// AchievementDisplayAttribute implements Client.
func (f *Fake) AchievementDisplayAttribute(_ context.Context, name, key string) (string, error) {
	f.record("AchievementDisplayAttribute")
	return f.Attributes[name][key], nil
}

// AchievementAchievedPercent implements Client.
func (f *Fake) AchievementAchievedPercent(_ context.Context, name string) (float32, error) {
	f.record("AchievementAchievedPercent")
	if f.PercentFn != nil {
		return f.PercentFn(name)
	}
	return f.Percents[name], nil
}

// AchievementIcon implements Client.
func (f *Fake) AchievementIcon(_ context.Context, name string) (*Icon, error) {
	f.record("AchievementIcon")
	if f.IconFn != nil {
		return f.IconFn(name)
	}
	return f.Icons[name], nil
}

// NumAchievements implements Client.
func (f *Fake) NumAchievements(context.Context) (uint32, error) {
	f.record("NumAchievements")
	return uint32(len(f.Names)), nil
}

// AchievementNames implements Client.
func (f *Fake) AchievementNames(context.Context) ([]string, error) {
	f.record("AchievementNames")
	return append([]string(nil), f.Names...), nil
}
