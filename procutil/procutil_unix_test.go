//go:build linux

// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package procutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// A killed child that has not been waited for stays in the process table as
// a zombie until it is reaped.
func TestIsProcessRunningZombie(t *testing.T) {
	cmd := startSleeper(t)
	pid := cmd.Process.Pid

	require.NoError(t, cmd.Process.Kill())

	assert.Eventually(t, func() bool { return !IsProcessRunning(pid) },
		5*time.Second, 50*time.Millisecond, "zombie should not be reported as running")
}

func TestIsProcessRunningInit(t *testing.T) {
	assert.True(t, IsProcessRunning(1))
}
