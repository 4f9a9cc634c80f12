// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package cmdutil

import (
	"context"
	"sync"
)

// Call records one invocation made through a MockRunner.
type Call struct {
	Name string
	Args []string
}

// MockRunner is a mock implementation of Runner for testing.
// When OutputFunc is set it takes precedence over Stdout and Err.
type MockRunner struct {
	Stdout     []byte
	Err        error
	OutputFunc func(name string, args []string) ([]byte, error)

	mu    sync.Mutex
	calls []Call
}

// Output records the call and returns the configured output or error.
func (m *MockRunner) Output(_ context.Context, name string, args ...string) ([]byte, error) {
	m.mu.Lock()
	m.calls = append(m.calls, Call{Name: name, Args: append([]string(nil), args...)})
	m.mu.Unlock()

	if m.OutputFunc != nil {
		return m.OutputFunc(name, args)
	}
	if m.Err != nil {
		return m.Stdout, m.Err
	}
	return m.Stdout, nil
}

// Calls returns a copy of the recorded invocations.
func (m *MockRunner) Calls() []Call {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Call(nil), m.calls...)
}
