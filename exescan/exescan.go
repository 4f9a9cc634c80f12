// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

// Package exescan finds the executable files that belong to an installed game.
//
// A Scanner walks an install directory and returns the bare file names that
// its Classifier accepts. The classifier is chosen per operating system:
// Windows looks at the ".exe" suffix, Unix-like systems look at the execute
// permission bits and a short extension allow-list.
//
// Scanning never fails. An unreadable root yields an empty result and every
// unreadable entry is skipped; both are reported through logutil.
package exescan

import (
	"io/fs"
	"os"
	"path/filepath"
	"runtime"

	"github.com/jongio/gamebridge/logutil"
)

// Options configures a Scanner.
type Options struct {
	// Classifier selects candidate files. Nil selects ForOS(runtime.GOOS, nil).
	Classifier Classifier
	// MaxDepth limits how many directory levels are visited. 1 scans only
	// the root itself. Zero means unlimited.
	MaxDepth int
	// Logger receives diagnostics. Nil selects the "exescan" component logger.
	Logger *logutil.ComponentLogger
}

// Scanner yields candidate executable names from a directory tree.
type Scanner struct {
	classifier Classifier
	maxDepth   int
	log        *logutil.ComponentLogger
}

// New creates a Scanner.
func New(opts Options) *Scanner {
	if opts.Classifier == nil {
		opts.Classifier = ForOS(runtime.GOOS, nil)
	}
	if opts.Logger == nil {
		opts.Logger = logutil.NewLogger("exescan")
	}
	return &Scanner{
		classifier: opts.Classifier,
		maxDepth:   opts.MaxDepth,
		log:        opts.Logger,
	}
}

// Scan returns the names (without directories) of every candidate executable
// under root, in traversal order. Symbolic links are followed; a directory
// reached twice through links is visited once.
func (s *Scanner) Scan(root string) []string {
	log := s.log.WithOperation("scan").WithFields("root", root)
	found := []string{}

	info, err := os.Stat(root)
	if err != nil {
		log.Error("cannot read install directory", "error", err)
		return found
	}
	if !info.IsDir() {
		log.Error("install path is not a directory")
		return found
	}

	w := walker{
		scanner: s,
		log:     log,
		visited: make(map[string]struct{}),
	}
	w.walk(root, 0)

	log.Debug("scan complete", "candidates", len(w.found))
	return append(found, w.found...)
}

type walker struct {
	scanner *Scanner
	log     *logutil.ComponentLogger
	visited map[string]struct{}
	found   []string
}

func (w *walker) walk(dir string, depth int) {
	resolved, err := filepath.EvalSymlinks(dir)
	if err != nil {
		w.log.Warn("skipping unreadable directory", "path", dir, "error", err)
		return
	}
	if _, seen := w.visited[resolved]; seen {
		w.log.Debug("directory already visited", "path", dir, "target", resolved)
		return
	}
	w.visited[resolved] = struct{}{}

	// ReadDir returns the entries it could read alongside the error.
	entries, err := os.ReadDir(dir)
	if err != nil {
		w.log.Warn("error while reading directory entries", "path", dir, "error", err)
	}

	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name())

		info, err := entryInfo(path, entry)
		if err != nil {
			w.log.Warn("skipping unreadable entry", "path", path, "error", err)
			continue
		}

		if info.IsDir() {
			if w.scanner.maxDepth == 0 || depth+1 < w.scanner.maxDepth {
				w.walk(path, depth+1)
			}
			continue
		}
		if !info.Mode().IsRegular() {
			continue
		}
		if w.scanner.classifier.IsExecutable(entry.Name(), info.Mode()) {
			w.found = append(w.found, entry.Name())
		}
	}
}

// entryInfo returns the FileInfo of the entry, resolving symbolic links to
// their target.
func entryInfo(path string, entry fs.DirEntry) (fs.FileInfo, error) {
	if entry.Type()&fs.ModeSymlink != 0 {
		return os.Stat(path)
	}
	return entry.Info()
}
