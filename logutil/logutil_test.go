// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package logutil

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSetupLogger(t *testing.T) {
	SetupLogger(true, false)
	if !IsDebugEnabled() {
		t.Error("expected debug to be enabled")
	}
	if GetLevel() != LevelDebug {
		t.Errorf("expected LevelDebug, got %v", GetLevel())
	}

	SetupLogger(false, false)
	if GetLevel() != LevelInfo {
		t.Errorf("expected LevelInfo, got %v", GetLevel())
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected Level
	}{
		{"debug", LevelDebug},
		{"DEBUG", LevelDebug},
		{"info", LevelInfo},
		{"warn", LevelWarn},
		{"warning", LevelWarn},
		{"error", LevelError},
		{"unknown", LevelInfo},
		{"", LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result := ParseLevel(tt.input)
			if result != tt.expected {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, result, tt.expected)
			}
		})
	}
}

func TestIsDebugEnabledEnvVar(t *testing.T) {
	SetupLogger(false, false)

	t.Setenv(EnvDebug, "true")
	if !IsDebugEnabled() {
		t.Error("expected debug to be enabled via env var")
	}

	t.Setenv(EnvDebug, "")
	if IsDebugEnabled() {
		t.Error("expected debug to be disabled")
	}
}

func TestDebugWhenDisabled(t *testing.T) {
	t.Setenv(EnvDebug, "")

	var buf bytes.Buffer
	SetupLoggerWithWriter(&buf, false, false)

	Debug("should not appear")

	if strings.Contains(buf.String(), "should not appear") {
		t.Errorf("debug message should not appear when debug is disabled, got: %s", buf.String())
	}
}

func TestStructuredLogging(t *testing.T) {
	var buf bytes.Buffer
	SetupLoggerWithWriter(&buf, false, true)

	Info("test message", "count", 42)

	output := buf.String()
	if !strings.Contains(output, `"msg":"test message"`) {
		t.Errorf("expected JSON output with msg field, got: %s", output)
	}
	if !strings.Contains(output, `"count":42`) {
		t.Errorf("expected JSON output with count field, got: %s", output)
	}
}

func TestSetLevel(t *testing.T) {
	var buf bytes.Buffer
	SetupLoggerWithWriter(&buf, false, false)

	SetLevel(LevelWarn)
	if GetLevel() != LevelWarn {
		t.Errorf("expected LevelWarn, got %v", GetLevel())
	}

	Info("filtered out")
	Warn("kept")
	if strings.Contains(buf.String(), "filtered out") {
		t.Errorf("info should be filtered at warn level, got: %s", buf.String())
	}
	if !strings.Contains(buf.String(), "kept") {
		t.Errorf("warn should pass at warn level, got: %s", buf.String())
	}

	SetLevel(LevelDebug)
	if !IsDebugEnabled() {
		t.Error("expected debug to be enabled after SetLevel(LevelDebug)")
	}
}

func TestSetOutput(t *testing.T) {
	var buf bytes.Buffer

	SetupLogger(true, false)
	SetOutput(&buf)

	Debug("test message after SetOutput")

	if !strings.Contains(buf.String(), "test message after SetOutput") {
		t.Errorf("expected output to contain message after SetOutput, got: %s", buf.String())
	}
}

func TestErrorAndWarn(t *testing.T) {
	var buf bytes.Buffer
	SetupLoggerWithWriter(&buf, false, false)

	Warn("test warning", "key", "value")
	Error("test error", "key", "value")

	output := buf.String()
	if !strings.Contains(output, "test warning") || !strings.Contains(output, "test error") {
		t.Errorf("expected warning and error messages, got: %s", output)
	}
}

func TestSetupFileLogger(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "appdata")
	t.Cleanup(func() { _ = Close() })

	msg, err := SetupFileLogger(dir, false, false)
	if err != nil {
		t.Fatalf("SetupFileLogger() error = %v", err)
	}
	if !strings.Contains(msg, "successfully") {
		t.Errorf("unexpected status message %q", msg)
	}

	Info("written to file", "pid", 7)

	data, err := os.ReadFile(filepath.Join(dir, LogFileName))
	if err != nil {
		t.Fatalf("reading log file: %v", err)
	}
	if !strings.Contains(string(data), "written to file") {
		t.Errorf("log file missing message, got: %s", data)
	}
}

func TestSetupFileLoggerUnwritableDir(t *testing.T) {
	// A regular file cannot be used as a directory.
	blocker := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(blocker, []byte("x"), 0600); err != nil {
		t.Fatal(err)
	}

	msg, err := SetupFileLogger(filepath.Join(blocker, "sub"), false, false)
	if err == nil {
		t.Fatal("expected error for unusable directory")
	}
	if !strings.Contains(msg, "Failed to initialise") {
		t.Errorf("unexpected status message %q", msg)
	}
}

func TestLogPanic(t *testing.T) {
	var buf bytes.Buffer
	SetupLoggerWithWriter(&buf, false, false)

	func() {
		defer LogPanic("test-location")
		panic("boom")
	}()

	output := buf.String()
	if !strings.Contains(output, "panic occurred") || !strings.Contains(output, "boom") {
		t.Errorf("expected panic to be logged, got: %s", output)
	}
	if !strings.Contains(output, "location=test-location") {
		t.Errorf("expected location in output, got: %s", output)
	}
}
