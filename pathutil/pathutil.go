// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

// Package pathutil locates the external tools gamebridge shells out to.
//
// A tool is looked up in PATH first and then in common system directories,
// so a desktop session launched with a minimal PATH still finds wmctrl.
package pathutil

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
)

// FindTool returns the full path of toolName, searching PATH and then
// SystemDirs. It returns "" when the tool cannot be found.
func FindTool(toolName string) string {
	if path := FindToolInPath(toolName); path != "" {
		return path
	}
	return SearchToolInSystemPath(toolName)
}

// FindToolInPath searches PATH for toolName, appending .exe on Windows.
func FindToolInPath(toolName string) string {
	path, err := exec.LookPath(exeName(toolName))
	if err != nil {
		return ""
	}
	return path
}

// SearchToolInSystemPath looks for toolName in SystemDirs.
func SearchToolInSystemPath(toolName string) string {
	if toolName == "" {
		return ""
	}
	name := exeName(toolName)
	for _, dir := range SystemDirs(runtime.GOOS) {
		full := filepath.Join(dir, name)
		if info, err := os.Stat(full); err == nil && !info.IsDir() {
			return full
		}
	}
	return ""
}

// SystemDirs lists the directories searched after PATH on goos.
func SystemDirs(goos string) []string {
	if goos == "windows" {
		root := os.Getenv("SystemRoot")
		if root == "" {
			root = `C:\Windows`
		}
		return []string{
			filepath.Join(root, "System32"),
			filepath.Join(root, "System32", "WindowsPowerShell", "v1.0"),
		}
	}

	dirs := []string{"/usr/local/bin", "/usr/bin", "/bin", "/opt/homebrew/bin"}
	if home, err := os.UserHomeDir(); err == nil {
		dirs = append(dirs, filepath.Join(home, ".local", "bin"))
	}
	return dirs
}

// InstallSuggestion returns a hint for installing a missing tool.
func InstallSuggestion(toolName string) string {
	suggestions := map[string]string{
		"wmctrl":     "Install wmctrl with your package manager, e.g. 'sudo apt install wmctrl'",
		"ps":         "Install procps with your package manager, e.g. 'sudo apt install procps'",
		"powershell": "PowerShell ships with Windows; check that %SystemRoot%\\System32\\WindowsPowerShell\\v1.0 exists",
	}
	if suggestion, ok := suggestions[toolName]; ok {
		return suggestion
	}
	return fmt.Sprintf("Please install %s manually", toolName)
}

func exeName(toolName string) string {
	if runtime.GOOS == "windows" && !strings.HasSuffix(strings.ToLower(toolName), ".exe") {
		return toolName + ".exe"
	}
	return toolName
}
