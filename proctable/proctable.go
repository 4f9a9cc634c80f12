// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

// Package proctable lists the operating system's running processes.
//
// Each call runs exactly one native listing command and normalizes its
// output into Records. Windows returns structured JSON from WMI; Unix-like
// systems return free-form ps text. The difference is contained in a Format,
// so consumers only ever see []Record.
//
// Listing fails closed: if the command cannot run, List returns an empty
// table and logs the failure. An empty table therefore means "enumeration
// unavailable", not "nothing is running". Records are point-in-time and are
// never cached.
//
// On Linux, ps reports the kernel's comm value: the executable name cut to
// LinuxCommLength bytes. Longer names only match by prefix (see NameLimit),
// and a comm containing spaces splits into tokens that no longer parse as
// name, pid and command, so that row is dropped.
package proctable

import (
	"context"
	"runtime"

	"github.com/jongio/gamebridge/cmdutil"
	"github.com/jongio/gamebridge/logutil"
	"github.com/jongio/gamebridge/shellutil"
)

// Record describes one OS process at enumeration time.
type Record struct {
	Name           string `json:"name"`
	PID            uint32 `json:"pid"`
	ExecutablePath string `json:"executablePath"`
}

// Lister produces the current process table.
type Lister interface {
	List(ctx context.Context) []Record
}

// Format turns one platform's listing command and its raw output into Records.
type Format interface {
	// Shell returns the command interpreter used to run Script.
	Shell() string
	// Script returns the listing command line.
	Script() string
	// Parse converts raw standard output into Records, dropping anything
	// it cannot interpret.
	Parse(raw []byte) []Record
}

// ForOS returns the Format for goos.
func ForOS(goos string) Format {
	if goos == "windows" {
		return WMIFormat{}
	}
	return PSFormat{}
}

// CommandLister implements Lister by running a Format's command through a
// cmdutil.Runner.
type CommandLister struct {
	runner cmdutil.Runner
	format Format
	log    *logutil.ComponentLogger
}

// NewCommandLister creates a CommandLister. A nil runner selects a
// cmdutil.ExecRunner without timeout; a nil format selects ForOS(runtime.GOOS).
func NewCommandLister(runner cmdutil.Runner, format Format) *CommandLister {
	if runner == nil {
		runner = cmdutil.NewExecRunner(0)
	}
	if format == nil {
		format = ForOS(runtime.GOOS)
	}
	return &CommandLister{
		runner: runner,
		format: format,
		log:    logutil.NewLogger("proctable"),
	}
}

// List runs the listing command once and parses its output. Command failure
// yields an empty table plus an error diagnostic.
func (l *CommandLister) List(ctx context.Context) []Record {
	name, args := shellutil.Invocation(l.format.Shell(), l.format.Script())

	out, err := l.runner.Output(ctx, name, args...)
	if err != nil {
		l.log.Error("process listing failed, returning empty table",
			"shell", name, "error", err)
		return []Record{}
	}

	records := l.format.Parse(out)
	l.log.Debug("process table enumerated", "records", len(records))
	return records
}
