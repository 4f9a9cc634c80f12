// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package procutil

import (
	"errors"
	"fmt"
	"math"
	"slices"

	"github.com/shirou/gopsutil/v4/process"
)

// ErrNotRunning is returned by Snapshot when the process does not exist.
var ErrNotRunning = errors.New("process is not running")

// IsProcessRunning reports whether a process with the given PID exists and
// has not terminated. Zombie and dead processes are not running.
// Any error while querying the operating system is treated as not running.
func IsProcessRunning(pid int) bool {
	if pid <= 0 || pid > math.MaxInt32 {
		return false
	}

	exists, err := process.PidExists(int32(pid))
	if err != nil || !exists {
		return false
	}

	p, err := process.NewProcess(int32(pid))
	if err != nil {
		return false
	}

	return !terminated(p)
}

// terminated reports whether p's status says it has finished executing.
// Platforms that cannot report status (Windows) are covered by PidExists,
// which already rejects exited processes there.
func terminated(p *process.Process) bool {
	status, err := p.Status()
	if err != nil {
		return false
	}
	return slices.Contains(status, process.Zombie) || slices.Contains(status, "dead")
}

// Identity pairs a PID with the creation time of the process that held it
// when the snapshot was taken.
type Identity struct {
	PID int32 `json:"pid"`
	// CreateTime is in milliseconds since the Unix epoch.
	CreateTime int64 `json:"createTime"`
}

// Snapshot records the identity of the running process pid.
func Snapshot(pid int) (Identity, error) {
	if !IsProcessRunning(pid) {
		return Identity{}, fmt.Errorf("pid %d: %w", pid, ErrNotRunning)
	}

	p, err := process.NewProcess(int32(pid))
	if err != nil {
		return Identity{}, fmt.Errorf("pid %d: %w", pid, err)
	}

	created, err := p.CreateTime()
	if err != nil {
		return Identity{}, fmt.Errorf("reading creation time of pid %d: %w", pid, err)
	}

	return Identity{PID: int32(pid), CreateTime: created}, nil
}

// Alive reports whether the process captured by the snapshot is still
// running. It returns false once the PID has been reused by another process.
func (id Identity) Alive() bool {
	if !IsProcessRunning(int(id.PID)) {
		return false
	}

	p, err := process.NewProcess(id.PID)
	if err != nil {
		return false
	}

	created, err := p.CreateTime()
	if err != nil {
		return false
	}
	return created == id.CreateTime
}
