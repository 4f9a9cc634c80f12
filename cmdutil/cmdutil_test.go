// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package cmdutil

import (
	"context"
	"errors"
	"runtime"
	"strings"
	"testing"
	"time"
)

func TestExecRunnerOutput(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// "go version" works cross-platform
	output, err := NewExecRunner(0).Output(ctx, "go", "version")
	if err != nil {
		t.Fatalf("Output() error = %v, want nil", err)
	}
	if !strings.Contains(string(output), "go version") {
		t.Errorf("Output() = %q, want it to contain %q", output, "go version")
	}
}

func TestExecRunnerInvalidCommand(t *testing.T) {
	_, err := NewExecRunner(0).Output(context.Background(), "nonexistent-command-xyz-123")
	if err == nil {
		t.Fatal("Output() with invalid command should fail")
	}
	if !strings.Contains(err.Error(), "nonexistent-command-xyz-123") {
		t.Errorf("error should name the command, got %v", err)
	}
}

func TestExecRunnerTimeoutExceeded(t *testing.T) {
	var name string
	var args []string
	if runtime.GOOS == "windows" {
		name = "cmd.exe"
		args = []string{"/c", "timeout", "10"}
	} else {
		name = "sleep"
		args = []string{"10"}
	}

	start := time.Now()
	_, err := NewExecRunner(100*time.Millisecond).Output(context.Background(), name, args...)
	if err == nil {
		t.Error("Output() should fail when the timeout is exceeded")
	}
	if elapsed := time.Since(start); elapsed > 5*time.Second {
		t.Errorf("Output() took %v, timeout was not applied", elapsed)
	}
}

func TestMockRunner(t *testing.T) {
	m := &MockRunner{Stdout: []byte("out")}

	got, err := m.Output(context.Background(), "sh", "-c", "ps")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(got) != "out" {
		t.Errorf("Output() = %q, want %q", got, "out")
	}

	calls := m.Calls()
	if len(calls) != 1 || calls[0].Name != "sh" || strings.Join(calls[0].Args, " ") != "-c ps" {
		t.Errorf("unexpected calls: %+v", calls)
	}
}

func TestMockRunnerOutputFunc(t *testing.T) {
	wantErr := errors.New("launch failed")
	m := &MockRunner{
		Stdout: []byte("ignored"),
		OutputFunc: func(name string, args []string) ([]byte, error) {
			return nil, wantErr
		},
	}

	_, err := m.Output(context.Background(), "powershell")
	if !errors.Is(err, wantErr) {
		t.Errorf("Output() error = %v, want %v", err, wantErr)
	}
}
