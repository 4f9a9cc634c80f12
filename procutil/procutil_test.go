// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package procutil

import (
	"errors"
	"math"
	"os"
	"os/exec"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// startSleeper launches a long-running child process and kills it when the
// test finishes.
func startSleeper(t *testing.T) *exec.Cmd {
	t.Helper()

	var cmd *exec.Cmd
	if runtime.GOOS == "windows" {
		cmd = exec.Command("ping", "-n", "30", "127.0.0.1")
	} else {
		cmd = exec.Command("sleep", "30")
	}
	require.NoError(t, cmd.Start())

	t.Cleanup(func() {
		_ = cmd.Process.Kill()
		_ = cmd.Wait()
	})
	return cmd
}

func TestIsProcessRunningCurrentProcess(t *testing.T) {
	assert.True(t, IsProcessRunning(os.Getpid()))
}

func TestIsProcessRunningInvalidPID(t *testing.T) {
	tests := []struct {
		name string
		pid  int
	}{
		{"zero pid", 0},
		{"negative pid", -1},
		{"min int32", math.MinInt32},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.False(t, IsProcessRunning(tt.pid))
		})
	}
}

func TestIsProcessRunningNonExistentPID(t *testing.T) {
	assert.False(t, IsProcessRunning(math.MaxInt32))
}

func TestIsProcessRunningRoundTrip(t *testing.T) {
	cmd := startSleeper(t)
	pid := cmd.Process.Pid

	require.True(t, IsProcessRunning(pid), "started process should be alive")

	require.NoError(t, cmd.Process.Kill())
	_ = cmd.Wait()

	assert.Eventually(t, func() bool { return !IsProcessRunning(pid) },
		5*time.Second, 50*time.Millisecond, "killed and reaped process should not be alive")
}

func TestSnapshotAlive(t *testing.T) {
	cmd := startSleeper(t)

	id, err := Snapshot(cmd.Process.Pid)
	require.NoError(t, err)
	assert.Equal(t, int32(cmd.Process.Pid), id.PID)
	assert.Positive(t, id.CreateTime)
	assert.True(t, id.Alive())

	require.NoError(t, cmd.Process.Kill())
	_ = cmd.Wait()

	assert.Eventually(t, func() bool { return !id.Alive() }, 5*time.Second, 50*time.Millisecond)
}

func TestSnapshotNotRunning(t *testing.T) {
	_, err := Snapshot(0)
	assert.True(t, errors.Is(err, ErrNotRunning))
}

func TestIdentityDetectsReusedPID(t *testing.T) {
	id, err := Snapshot(os.Getpid())
	require.NoError(t, err)

	// Same PID, different creation time: a different process.
	reused := Identity{PID: id.PID, CreateTime: id.CreateTime - 1000}
	assert.False(t, reused.Alive())
	assert.True(t, id.Alive())
}
