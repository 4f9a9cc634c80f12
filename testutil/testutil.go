// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

// Package testutil provides helpers shared by gamebridge tests: stdout
// capture, fixture files with exact permission bits, and platform skips.
package testutil

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

// CaptureOutput captures stdout during fn. The original stdout is always
// restored. An error from fn is logged, not failed, so callers can assert on
// output from failing commands.
//
//	out := testutil.CaptureOutput(t, func() error {
//	    return cmd.Execute()
//	})
func CaptureOutput(t *testing.T, fn func() error) string {
	t.Helper()

	orig := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("Failed to create pipe: %v", err)
	}
	os.Stdout = w

	outCh := make(chan string, 1)
	go func() {
		var buf bytes.Buffer
		_, _ = io.Copy(&buf, r)
		outCh <- buf.String()
	}()

	fnErr := func() error {
		defer func() { os.Stdout = orig }()
		return fn()
	}()

	if err := w.Close(); err != nil {
		t.Logf("Failed to close pipe writer: %v", err)
	}
	output := <-outCh
	_ = r.Close()

	if fnErr != nil {
		t.Logf("Command error: %v", fnErr)
	}
	return output
}

// WriteFile writes content to path with exactly perm, creating parent
// directories. The mode is applied with Chmod since WriteFile honours the
// umask.
func WriteFile(t *testing.T, path, content string, perm os.FileMode) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		t.Fatalf("Failed to create %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(content), perm); err != nil {
		t.Fatalf("Failed to write %s: %v", path, err)
	}
	if err := os.Chmod(path, perm); err != nil {
		t.Fatalf("Failed to chmod %s: %v", path, err)
	}
}

// SkipOnWindows skips tests that depend on POSIX permission bits or symlinks.
func SkipOnWindows(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("permission bits and symlinks are not reliable on Windows")
	}
}
