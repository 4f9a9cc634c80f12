// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

// Package cmdutil runs external OS commands and captures their standard
// output. It is the only place gamebridge launches child processes, so the
// hidden-window handling on Windows and the optional timeout live here.
package cmdutil

import (
	"context"
	"fmt"
	"os/exec"
	"time"
)

// waitDelay bounds how long Output waits for inherited pipes to close after
// the command is killed by a cancelled context.
const waitDelay = time.Second

// Runner is an interface for running external commands.
// This allows for mocking in tests.
type Runner interface {
	// Output runs name with args and returns everything it wrote to stdout.
	Output(ctx context.Context, name string, args ...string) ([]byte, error)
}

// ExecRunner runs commands with os/exec.
//
// Commands receive no stdin and inherit the parent environment unchanged.
// On Windows they are created without a console window.
type ExecRunner struct {
	// Timeout bounds each command. Zero means the command runs until it
	// exits or ctx is cancelled.
	Timeout time.Duration
}

// NewExecRunner returns an ExecRunner with the given timeout.
func NewExecRunner(timeout time.Duration) *ExecRunner {
	return &ExecRunner{Timeout: timeout}
}

// Output runs a command and returns its standard output.
// On failure the partial output captured so far is returned with the error.
func (r *ExecRunner) Output(ctx context.Context, name string, args ...string) ([]byte, error) {
	if r.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.Timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdin = nil
	cmd.WaitDelay = waitDelay
	hideWindow(cmd)

	output, err := cmd.Output()
	if err != nil {
		return output, fmt.Errorf("command %q failed: %w", name, err)
	}

	return output, nil
}
