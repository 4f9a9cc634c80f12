// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

// Package wininfo looks up the title of a top-level window owned by a process.
//
// On Linux the lookup uses wmctrl and is absent when wmctrl is not installed.
// Other platforms have no lookup and always report absent.
package wininfo

import (
	"bufio"
	"bytes"
	"context"
	"runtime"
	"strconv"
	"strings"

	"github.com/jongio/gamebridge/cmdutil"
	"github.com/jongio/gamebridge/logutil"
	"github.com/jongio/gamebridge/pathutil"
)

const wmctrl = "wmctrl"

// Finder resolves window titles.
type Finder struct {
	goos     string
	runner   cmdutil.Runner
	lookPath func(string) string
	log      *logutil.ComponentLogger
}

// Option customizes a Finder.
type Option func(*Finder)

// WithGOOS overrides the platform the Finder behaves as.
func WithGOOS(goos string) Option {
	return func(f *Finder) { f.goos = goos }
}

// WithLookPath overrides how the wmctrl binary is located. fn returns the
// path to run, or "" when the tool is missing.
func WithLookPath(fn func(string) string) Option {
	return func(f *Finder) { f.lookPath = fn }
}

// New returns a Finder that runs commands through runner.
// A nil runner selects a cmdutil.ExecRunner without timeout.
func New(runner cmdutil.Runner, opts ...Option) *Finder {
	if runner == nil {
		runner = cmdutil.NewExecRunner(0)
	}
	f := &Finder{
		goos:     runtime.GOOS,
		runner:   runner,
		lookPath: pathutil.FindTool,
		log:      logutil.NewLogger("wininfo"),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Title returns the title of the first window owned by pid.
func (f *Finder) Title(ctx context.Context, pid uint32) (string, bool) {
	if f.goos != "linux" {
		return "", false
	}

	bin := f.lookPath(wmctrl)
	if bin == "" {
		f.log.Debug("wmctrl not found, window titles unavailable", "hint", pathutil.InstallSuggestion(wmctrl))
		return "", false
	}

	out, err := f.runner.Output(ctx, bin, "-lp")
	if err != nil {
		f.log.Warn("listing windows failed", "error", err)
		return "", false
	}

	return ParseWmctrl(out, pid)
}

// ParseWmctrl finds pid in the output of "wmctrl -lp", whose lines read
//
//	<window id> <desktop> <pid> <host> <title...>
//
// Runs of whitespace inside the title collapse to a single space.
func ParseWmctrl(raw []byte, pid uint32) (string, bool) {
	scanner := bufio.NewScanner(bytes.NewReader(raw))
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) < 5 {
			continue
		}

		linePID, err := strconv.ParseUint(fields[2], 10, 32)
		if err != nil || uint32(linePID) != pid {
			continue
		}
		return strings.Join(fields[4:], " "), true
	}
	return "", false
}
