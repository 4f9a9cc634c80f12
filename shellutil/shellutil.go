// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package shellutil

import "strings"

// Shell identifiers used for command execution.
const (
	// ShellCmd is the Windows Command Prompt.
	ShellCmd = "cmd"

	// ShellPowerShell is Windows PowerShell (5.1 and earlier).
	ShellPowerShell = "powershell"

	// ShellPwsh is PowerShell Core (6.0+, cross-platform).
	ShellPwsh = "pwsh"

	// ShellSh is the POSIX shell.
	ShellSh = "sh"
)

// Invocation returns the program name and arguments that run script through
// shell. PowerShell is started without loading profiles and without
// prompting; cmd uses /C; every other shell is treated as POSIX and uses -c.
func Invocation(shell, script string) (string, []string) {
	switch strings.ToLower(shell) {
	case ShellPowerShell, ShellPwsh:
		return shell, []string{"-NoProfile", "-NonInteractive", "-Command", script}
	case ShellCmd:
		return shell, []string{"/C", script}
	default:
		return shell, []string{"-c", script}
	}
}
