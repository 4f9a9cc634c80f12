// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

// Package procutil answers whether a previously discovered process is still
// alive.
//
// It wraps github.com/shirou/gopsutil/v4/process, which queries the
// operating system directly:
//
//   - Windows: OpenProcess and GetExitCodeProcess
//   - Linux: the /proc filesystem
//   - macOS/BSD: sysctl
//
// A process that has exited but has not yet been reaped by its parent
// (a zombie) is reported as not running.
//
// # Example Usage
//
//	if procutil.IsProcessRunning(pid) {
//	    fmt.Printf("Process %d is running\n", pid)
//	}
//
// Process IDs are recycled by the operating system. A caller that holds on to
// a PID for a long time can take a Snapshot when the process is found and
// later ask the Identity whether that same process is still alive:
//
//	id, err := procutil.Snapshot(pid)
//	if err == nil && !id.Alive() {
//	    // exited, or the PID now belongs to a different process
//	}
package procutil
