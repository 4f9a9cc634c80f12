// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

// Package bridge is the host-facing surface of gamebridge.
//
// A Bridge answers three questions for a host application: which running
// processes belong to a game, whether one of those processes is still alive,
// and what its window is titled. None of them fail: an operation that cannot
// complete logs why and returns an empty, false, or absent answer.
package bridge

import (
	"context"
	"runtime"
	"time"

	"golang.org/x/time/rate"

	"github.com/jongio/gamebridge/exescan"
	"github.com/jongio/gamebridge/logutil"
	"github.com/jongio/gamebridge/matcher"
	"github.com/jongio/gamebridge/procutil"
	"github.com/jongio/gamebridge/proctable"
	"github.com/jongio/gamebridge/sdk"
	"github.com/jongio/gamebridge/wininfo"
)

// DefaultAuxiliaryExecutable is the achievement-manager helper that is
// launched alongside a game and must be discovered with it.
const DefaultAuxiliaryExecutable = "SAM.Game.exe"

// DirScanner lists executable candidates under an install directory.
type DirScanner interface {
	Scan(root string) []string
}

// Options configures a Bridge. Only Client is required.
type Options struct {
	// Client answers install directory queries.
	Client sdk.Client
	// Scanner defaults to an exescan.Scanner for the running platform.
	Scanner DirScanner
	// Lister defaults to a proctable.CommandLister for the running platform.
	Lister proctable.Lister
	// Windows defaults to a wininfo.Finder for the running platform.
	Windows *wininfo.Finder
	// MatchMode defaults to matcher.ModeAll.
	MatchMode matcher.Mode
	// NameLimit is the length at which Lister truncates process names; see
	// matcher.Options. Zero with a nil Lister selects the running platform's
	// limit.
	NameLimit int
	// AuxiliaryExecutables are appended to every scanned candidate list.
	// Nil selects DefaultAuxiliaryExecutable; an empty slice disables it.
	AuxiliaryExecutables []string
	// Overrides maps an app ID to a known executable name that replaces
	// install directory scanning for that app.
	Overrides map[uint32]string
	// Limiter, when set, throttles process table enumeration.
	Limiter *rate.Limiter
	// Metrics enables Prometheus instrumentation.
	Metrics bool
}

// Bridge implements the host-facing operations.
// It is safe for concurrent use.
type Bridge struct {
	client    sdk.Client
	scanner   DirScanner
	lister    proctable.Lister
	windows   *wininfo.Finder
	mode      matcher.Mode
	nameLimit int
	auxiliary []string
	overrides map[uint32]string
	limiter   *rate.Limiter
	metrics   bool
	log       *logutil.ComponentLogger
}

// New creates a Bridge from opts.
func New(opts Options) *Bridge {
	b := &Bridge{
		client:    opts.Client,
		scanner:   opts.Scanner,
		lister:    opts.Lister,
		windows:   opts.Windows,
		mode:      opts.MatchMode,
		nameLimit: opts.NameLimit,
		auxiliary: opts.AuxiliaryExecutables,
		overrides: make(map[uint32]string, len(opts.Overrides)),
		limiter:   opts.Limiter,
		metrics:   opts.Metrics,
		log:       logutil.NewLogger("bridge"),
	}

	if b.scanner == nil {
		b.scanner = exescan.New(exescan.Options{Classifier: exescan.ForOS(runtime.GOOS, nil)})
	}
	if b.lister == nil {
		b.lister = proctable.NewCommandLister(nil, nil)
		if b.nameLimit == 0 {
			b.nameLimit = proctable.NameLimit(runtime.GOOS)
		}
	}
	if b.windows == nil {
		b.windows = wininfo.New(nil)
	}
	if b.mode == "" {
		b.mode = matcher.ModeAll
	}
	if b.auxiliary == nil {
		b.auxiliary = []string{DefaultAuxiliaryExecutable}
	}
	for id, name := range opts.Overrides {
		b.overrides[id] = name
	}

	return b
}

// FindGameProcesses returns the running processes that belong to appID.
//
// When override is non-empty it is the only candidate and the install
// directory is not scanned. Otherwise a configured per-app override is used
// the same way, and failing that the candidates are the executables found in
// the app's install directory plus the auxiliary executables.
func (b *Bridge) FindGameProcesses(ctx context.Context, appID uint32, override string) []matcher.Match {
	start := time.Now()
	log := b.log.WithApp(appID).WithOperation("find_game_processes")

	candidates, source := b.candidates(ctx, appID, override, log)
	log.Debug("resolved candidates", "source", source, "count", len(candidates))

	matches := []matcher.Match{}
	if len(candidates) > 0 {
		table := b.enumerate(ctx, log)
		matches = matcher.Find(candidates, table, matcher.Options{Mode: b.mode, NameLimit: b.nameLimit, Logger: log})
	}

	if b.metrics {
		recordFind(source, len(matches), time.Since(start))
	}
	return matches
}

func (b *Bridge) candidates(ctx context.Context, appID uint32, override string, log *logutil.ComponentLogger) ([]string, string) {
	if override != "" {
		return []string{override}, "override"
	}
	if name, ok := b.overrides[appID]; ok && name != "" {
		return []string{name}, "config_override"
	}

	var candidates []string
	dir, err := b.client.AppInstallDir(ctx, appID)
	if err != nil {
		log.Warn("install directory unavailable, matching auxiliary executables only", "error", err)
	} else {
		candidates = b.scanner.Scan(dir)
	}

	candidates = append(candidates, b.auxiliary...)
	return matcher.Unique(candidates), "scan"
}

func (b *Bridge) enumerate(ctx context.Context, log *logutil.ComponentLogger) []proctable.Record {
	if b.limiter != nil {
		if err := b.limiter.Wait(ctx); err != nil {
			log.Warn("process enumeration throttled", "error", err)
			if b.metrics {
				recordThrottled()
			}
			return []proctable.Record{}
		}
	}

	start := time.Now()
	table := b.lister.List(ctx)
	if b.metrics {
		recordEnumeration(len(table), time.Since(start))
	}
	return table
}

// IsProcessAlive reports whether pid is still running.
func (b *Bridge) IsProcessAlive(pid uint32) bool {
	alive := procutil.IsProcessRunning(int(pid))
	if b.metrics {
		recordLiveness(alive)
	}
	return alive
}

// FindWindowTitle returns the title of a window owned by pid, if the
// platform supports the lookup and such a window exists.
func (b *Bridge) FindWindowTitle(ctx context.Context, pid uint32) (string, bool) {
	return b.windows.Title(ctx, pid)
}
