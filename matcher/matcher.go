// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

// Package matcher intersects executable candidates with a process table.
package matcher

import (
	"fmt"
	"strings"

	"github.com/jongio/gamebridge/logutil"
	"github.com/jongio/gamebridge/proctable"
)

// Mode controls how many process records a single candidate may match.
type Mode string

const (
	// ModeAll reports every matching record, so two processes sharing a
	// name are both reported.
	ModeAll Mode = "all"
	// ModeFirst reports only the first matching record per candidate.
	ModeFirst Mode = "first"
)

// ParseMode converts a configuration string into a Mode.
// The empty string selects ModeAll.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case "", ModeAll:
		return ModeAll, nil
	case ModeFirst:
		return ModeFirst, nil
	default:
		return "", fmt.Errorf("unknown match mode %q (want %q or %q)", s, ModeAll, ModeFirst)
	}
}

// Options configures Find.
type Options struct {
	Mode Mode
	// NameLimit, when positive, is the length at which the process table
	// truncates names. A record whose name is exactly NameLimit bytes long
	// also matches a longer candidate starting with that name.
	NameLimit int
	Logger    *logutil.ComponentLogger
}

func (o Options) nameMatches(candidate, name string) bool {
	if strings.EqualFold(candidate, name) {
		return true
	}
	return o.NameLimit > 0 && len(name) == o.NameLimit && len(candidate) > o.NameLimit &&
		strings.EqualFold(candidate[:o.NameLimit], name)
}

// Unique returns candidates without case-insensitive duplicates, keeping the
// first spelling of each in its original position.
func Unique(candidates []string) []string {
	seen := make(map[string]struct{}, len(candidates))
	out := make([]string, 0, len(candidates))
	for _, c := range candidates {
		key := strings.ToLower(c)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, c)
	}
	return out
}

// Match is one process that matched a candidate.
type Match struct {
	PID            uint32 `json:"pid"`
	ExecutablePath string `json:"executablePath"`
}

// Find returns the records in table whose Name equals a candidate, ignoring
// case. Results are ordered by candidate, then by table order. Candidates are
// passed through Unique and each record is reported at most once, so two
// matches always name two distinct table entries. Each match is logged at
// info level; a candidate that matches nothing is logged at warn level. The
// result is never nil.
func Find(candidates []string, table []proctable.Record, opts Options) []Match {
	log := opts.Logger
	if log == nil {
		log = logutil.NewLogger("matcher")
	}

	matches := []Match{}
	reported := make(map[int]bool)
	for _, candidate := range Unique(candidates) {
		found := 0
		for i, rec := range table {
			if !opts.nameMatches(candidate, rec.Name) {
				continue
			}
			found++
			if reported[i] {
				if opts.Mode == ModeFirst {
					break
				}
				continue
			}
			reported[i] = true

			log.Info("process matched",
				"candidate", candidate,
				"name", rec.Name,
				"pid", rec.PID,
				"path", rec.ExecutablePath)
			matches = append(matches, Match{PID: rec.PID, ExecutablePath: rec.ExecutablePath})

			if opts.Mode == ModeFirst {
				break
			}
		}

		if found == 0 {
			log.Warn("no running process matched candidate", "candidate", candidate)
		}
	}

	return matches
}
