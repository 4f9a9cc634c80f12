//go:build windows
// +build windows

// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package cmdutil

import (
	"os/exec"
	"syscall"

	"golang.org/x/sys/windows"
)

// hideWindow prevents console programs such as powershell from flashing a
// window when launched from a GUI host.
func hideWindow(cmd *exec.Cmd) {
	if cmd.SysProcAttr == nil {
		cmd.SysProcAttr = &syscall.SysProcAttr{}
	}
	cmd.SysProcAttr.HideWindow = true
	cmd.SysProcAttr.CreationFlags |= windows.CREATE_NO_WINDOW
}
