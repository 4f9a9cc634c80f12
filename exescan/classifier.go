// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package exescan

import (
	"io/fs"
	"path/filepath"
	"strings"
)

// WindowsExecutableSuffix is the suffix that marks an executable on Windows.
const WindowsExecutableSuffix = ".exe"

// DefaultAllowedExtensions lists the extensions an executable-bit file may
// carry on Unix-like systems and still count as a candidate: shell scripts,
// shared objects, Windows binaries run through a compatibility layer, and
// native engine builds.
var DefaultAllowedExtensions = []string{".sh", ".so", ".exe", ".x86", ".x86_64"}

// Classifier decides whether a regular file is a candidate executable.
type Classifier interface {
	IsExecutable(name string, mode fs.FileMode) bool
}

// ExtensionClassifier accepts files whose name ends with Suffix,
// case-insensitively. Permission bits are ignored.
type ExtensionClassifier struct {
	Suffix string
}

// IsExecutable implements Classifier.
func (c ExtensionClassifier) IsExecutable(name string, _ fs.FileMode) bool {
	return strings.HasSuffix(strings.ToLower(name), strings.ToLower(c.Suffix))
}

// PermissionClassifier accepts files with at least one execute bit set whose
// name has no extension or an extension in AllowedExtensions.
type PermissionClassifier struct {
	AllowedExtensions []string
}

// IsExecutable implements Classifier.
func (c PermissionClassifier) IsExecutable(name string, mode fs.FileMode) bool {
	if mode.Perm()&0o111 == 0 {
		return false
	}

	ext := filepath.Ext(name)
	if ext == "" {
		return true
	}
	for _, allowed := range c.AllowedExtensions {
		if strings.EqualFold(ext, allowed) {
			return true
		}
	}
	return false
}

// ForOS returns the classifier for goos. Windows is extension-gated; every
// other platform is permission-gated. A nil allowed list selects
// DefaultAllowedExtensions.
func ForOS(goos string, allowed []string) Classifier {
	if goos == "windows" {
		return ExtensionClassifier{Suffix: WindowsExecutableSuffix}
	}
	if allowed == nil {
		allowed = DefaultAllowedExtensions
	}
	return PermissionClassifier{AllowedExtensions: allowed}
}
