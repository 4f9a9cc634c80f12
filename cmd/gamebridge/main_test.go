// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package main

import (
	"encoding/json"
	"errors"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jongio/gamebridge/cliout"
	"github.com/jongio/gamebridge/config"
	"github.com/jongio/gamebridge/sdk"
	"github.com/jongio/gamebridge/testutil"
)

// execute runs the CLI with args and returns its stdout and exit code.
func execute(t *testing.T, args ...string) (string, int) {
	t.Helper()
	t.Setenv("GAMEBRIDGE_CONFIG", "")
	t.Cleanup(func() { _ = cliout.SetFormat("default") })

	var code int
	out := testutil.CaptureOutput(t, func() error {
		code = run(append([]string{"--no-color"}, args...))
		return nil
	})
	return out, code
}

func decode[T any](t *testing.T, out string) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal([]byte(out), &v), out)
	return v
}

func TestFindWithoutCandidatesSkipsEnumeration(t *testing.T) {
	out, code := execute(t, "find", "480", "--aux-exe=", "-o", "json")
	require.Equal(t, 0, code, out)

	got := decode[findOutput](t, out)
	assert.Equal(t, uint32(480), got.AppID)
	assert.NotNil(t, got.Processes)
	assert.Empty(t, got.Processes)
}

func TestFindHumanReadableEmpty(t *testing.T) {
	out, code := execute(t, "find", "480", "--aux-exe=")
	require.Equal(t, 0, code)
	assert.Contains(t, out, "No running processes found for app 480")
}

func TestFindRejectsInvalidAppID(t *testing.T) {
	for _, arg := range []string{"abc", "-1", strconv.FormatUint(math.MaxUint32+1, 10)} {
		t.Run(arg, func(t *testing.T) {
			out, code := execute(t, "find", "--", arg)
			assert.Equal(t, 1, code)
			assert.Contains(t, out, "invalid app ID")
		})
	}
}

func TestFindRejectsInvalidOverride(t *testing.T) {
	out, code := execute(t, "find", "480", "--exe", "../Game.exe")
	assert.Equal(t, 1, code)
	assert.Contains(t, out, "invalid executable name")
}

func TestAliveSelf(t *testing.T) {
	out, code := execute(t, "alive", strconv.Itoa(os.Getpid()), "-o", "json")
	require.Equal(t, 0, code, out)

	got := decode[aliveOutput](t, out)
	assert.True(t, got.Alive)
	assert.Equal(t, uint32(os.Getpid()), got.PID)
}

func TestAliveMissingExitsOne(t *testing.T) {
	out, code := execute(t, "alive", strconv.FormatUint(math.MaxUint32, 10), "-o", "json")
	assert.Equal(t, 1, code)

	got := decode[aliveOutput](t, out)
	assert.False(t, got.Alive)
}

func TestAliveTracksCreationTime(t *testing.T) {
	pid := strconv.Itoa(os.Getpid())
	out, code := execute(t, "alive", pid, "-o", "json")
	require.Equal(t, 0, code, out)
	first := decode[aliveOutput](t, out)
	require.NotZero(t, first.CreateTime)

	out, code = execute(t, "alive", pid, "--created", strconv.FormatInt(first.CreateTime, 10), "-o", "json")
	require.Equal(t, 0, code, out)
	assert.Equal(t, first, decode[aliveOutput](t, out))

	// A different creation time means the PID now belongs to another process.
	out, code = execute(t, "alive", pid, "--created", strconv.FormatInt(first.CreateTime-1000, 10), "-o", "json")
	assert.Equal(t, 1, code)
	got := decode[aliveOutput](t, out)
	assert.False(t, got.Alive)
	assert.Zero(t, got.CreateTime)
}

func TestWindowAbsentIsNull(t *testing.T) {
	out, code := execute(t, "window", strconv.Itoa(os.Getpid()), "-o", "json")
	require.Equal(t, 0, code, out)
	assert.JSONEq(t, `{"pid":`+strconv.Itoa(os.Getpid())+`,"title":null}`, out)
}

func TestScan(t *testing.T) {
	testutil.SkipOnWindows(t)
	root := t.TempDir()
	testutil.WriteFile(t, filepath.Join(root, "game"), "x", 0o755)
	testutil.WriteFile(t, filepath.Join(root, "notes.txt"), "x", 0o644)
	testutil.WriteFile(t, filepath.Join(root, "bin", "deep", "server"), "x", 0o755)

	out, code := execute(t, "scan", root, "-o", "json")
	require.Equal(t, 0, code, out)
	got := decode[scanOutput](t, out)
	assert.ElementsMatch(t, []string{"game", "server"}, got.Executables)

	out, code = execute(t, "scan", root, "--max-depth=1", "-o", "json")
	require.Equal(t, 0, code, out)
	assert.Equal(t, []string{"game"}, decode[scanOutput](t, out).Executables)
}

func TestConfigFileIsLoaded(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gamebridge.yaml")
	testutil.WriteFile(t, path, "match_mode: sometimes\n", 0o600)

	out, code := execute(t, "--config", path, "find", "480")
	assert.Equal(t, 1, code)
	assert.Contains(t, out, "invalid configuration")
}

func TestFlagsOverrideConfigFile(t *testing.T) {
	testutil.SkipOnWindows(t)
	root := t.TempDir()
	testutil.WriteFile(t, filepath.Join(root, "game"), "x", 0o755)
	testutil.WriteFile(t, filepath.Join(root, "bin", "server"), "x", 0o755)

	path := filepath.Join(t.TempDir(), "gamebridge.yaml")
	testutil.WriteFile(t, path, "scan:\n  max_depth: 1\n", 0o600)

	out, code := execute(t, "--config", path, "scan", root, "-o", "json")
	require.Equal(t, 0, code, out)
	assert.Equal(t, []string{"game"}, decode[scanOutput](t, out).Executables)

	out, code = execute(t, "--config", path, "--max-depth=0", "scan", root, "-o", "json")
	require.Equal(t, 0, code, out)
	assert.ElementsMatch(t, []string{"game", "server"}, decode[scanOutput](t, out).Executables)
}

func TestInvalidOutputFormat(t *testing.T) {
	out, code := execute(t, "version", "-o", "yaml")
	assert.Equal(t, 1, code)
	assert.Contains(t, out, "invalid output format")
}

func TestVersionQuiet(t *testing.T) {
	out, code := execute(t, "version", "-q")
	require.Equal(t, 0, code)
	assert.Equal(t, "0.0.0-dev\n", out)
}

func TestUnknownCommand(t *testing.T) {
	_, code := execute(t, "bogus")
	assert.Equal(t, 1, code)
}

// useClient makes the CLI query c for the rest of the test.
func useClient(t *testing.T, c sdk.Client) {
	t.Helper()
	prev := newClient
	newClient = func(*config.Config) sdk.Client { return c }
	t.Cleanup(func() { newClient = prev })
}

func TestAchievements(t *testing.T) {
	fake := &sdk.Fake{
		Names:      []string{"ACH_WIN", "ACH_LOSE"},
		Achieved:   map[string]bool{"ACH_WIN": true},
		Attributes: map[string]map[string]string{"ACH_WIN": {"name": "Winner"}},
		Percents:   map[string]float32{"ACH_WIN": 42.5, "ACH_LOSE": 3},
		Icons:      map[string]*sdk.Icon{"ACH_WIN": {Handle: make([]byte, 64*64*4), Width: 64, Height: 64}},
	}
	useClient(t, fake)

	out, code := execute(t, "achievements", "--retry-attempts=2", "--retry-interval=0", "-o", "json")
	require.Equal(t, 0, code, out)

	got := decode[achievementsOutput](t, out)
	assert.Equal(t, uint32(2), got.Count)
	assert.Equal(t, []achievementOutput{
		{Name: "ACH_WIN", DisplayName: "Winner", Achieved: true, Percent: 42.5, IconWidth: 64, IconHeight: 64},
		{Name: "ACH_LOSE", Percent: 3},
	}, got.Achievements)
	assert.Equal(t, 3, fake.Calls("AchievementIcon"), "the missing image is retried")
}

func TestAchievementsUseConfiguredRetryPolicy(t *testing.T) {
	fake := &sdk.Fake{PercentFn: func(string) (float32, error) { return 0, errors.New("ipc pipe busy") }}
	useClient(t, fake)

	out, code := execute(t, "achievements", "ACH_WIN", "--retry-attempts=3", "--retry-interval=0", "-o", "json")
	require.Equal(t, 0, code, out)

	got := decode[achievementsOutput](t, out)
	require.Len(t, got.Achievements, 1)
	assert.Equal(t, float32(0), got.Achievements[0].Percent)
	assert.Equal(t, 3, fake.Calls("AchievementAchievedPercent"))

	path := filepath.Join(t.TempDir(), "gamebridge.yaml")
	testutil.WriteFile(t, path, "retry:\n  max_attempts: 4\n  interval: 0s\n", 0o600)
	fake = &sdk.Fake{PercentFn: fake.PercentFn}
	useClient(t, fake)

	_, code = execute(t, "--config", path, "achievements", "ACH_WIN", "-o", "json")
	require.Equal(t, 0, code)
	assert.Equal(t, 4, fake.Calls("AchievementAchievedPercent"))
}

func TestAchievementsBreakerStopsRetries(t *testing.T) {
	fake := &sdk.Fake{PercentFn: func(string) (float32, error) { return 0, errors.New("ipc pipe busy") }}
	useClient(t, fake)
	path := filepath.Join(t.TempDir(), "gamebridge.yaml")
	testutil.WriteFile(t, path, "sdk:\n  breaker_failures: 2\n", 0o600)

	out, code := execute(t, "--config", path, "achievements", "ACH_WIN", "--retry-attempts=10", "--retry-interval=0", "-o", "json")
	require.Equal(t, 0, code, out)
	assert.Equal(t, 2, fake.Calls("AchievementAchievedPercent"))
}

func TestAchievementsWithoutClientData(t *testing.T) {
	out, code := execute(t, "achievements", "--retry-interval=0")
	require.Equal(t, 0, code, out)
	assert.Contains(t, out, "No achievements reported (0 total)")
}

func TestMetricsCommandRemoved(t *testing.T) {
	_, code := execute(t, "metrics")
	assert.Equal(t, 1, code)
}
