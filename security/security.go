// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package security

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// maxExecutableNameLength matches the common file system limit for a single
// path component.
const maxExecutableNameLength = 255

var (
	// ErrInvalidPath indicates a path contains invalid characters or patterns.
	ErrInvalidPath = errors.New("invalid path")
	// ErrPathTraversal indicates a path traversal attack attempt.
	ErrPathTraversal = errors.New("path traversal detected")
	// ErrInvalidExecutableName indicates an unusable executable file name.
	ErrInvalidExecutableName = errors.New("invalid executable name")
	// ErrInsecureFilePermissions indicates a file has insecure (world-writable) permissions.
	ErrInsecureFilePermissions = errors.New("insecure file permissions")
)

// ValidatePath checks if a path is safe to use.
// It rejects parent directory references before and after resolving the
// path to an absolute, symlink-free form. Paths that do not exist yet are
// validated structurally.
func ValidatePath(path string) error {
	if path == "" {
		return fmt.Errorf("%w: empty path", ErrInvalidPath)
	}

	if strings.Contains(path, "..") {
		return fmt.Errorf("%w: path contains parent directory reference", ErrPathTraversal)
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("%w: cannot resolve path: %w", ErrInvalidPath, err)
	}
	cleanPath := filepath.Clean(absPath)

	resolvedPath, err := filepath.EvalSymlinks(cleanPath)
	if err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("%w: cannot resolve symbolic links: %w", ErrInvalidPath, err)
		}
		resolvedPath = cleanPath
	}

	if strings.Contains(resolvedPath, "..") {
		return fmt.Errorf("%w: resolved path contains parent directory reference", ErrPathTraversal)
	}

	return nil
}

// ValidateExecutableName checks that name is a bare file name: non-empty,
// free of directory separators and control characters, and not a relative
// directory reference.
func ValidateExecutableName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: name cannot be empty", ErrInvalidExecutableName)
	}

	if len(name) > maxExecutableNameLength {
		return fmt.Errorf("%w: exceeds maximum length of %d characters", ErrInvalidExecutableName, maxExecutableNameLength)
	}

	if name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("%w: must be a file name without directory components", ErrInvalidExecutableName)
	}

	for _, r := range name {
		if r < 0x20 || r == 0x7f {
			return fmt.Errorf("%w: contains control characters", ErrInvalidExecutableName)
		}
	}

	return nil
}

// ValidateFilePermissions checks if a file has secure permissions.
// On Unix systems, it ensures the file is not group- or world-writable.
// On Windows, this check is skipped as Windows uses ACLs differently.
func ValidateFilePermissions(path string) error {
	if runtime.GOOS == "windows" {
		return nil
	}

	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("failed to stat file: %w", err)
	}

	if info.Mode().Perm()&0o022 != 0 {
		return ErrInsecureFilePermissions
	}

	return nil
}
