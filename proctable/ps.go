// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package proctable

import (
	"bytes"
	"regexp"
	"strconv"

	"github.com/jongio/gamebridge/shellutil"
)

// LinuxCommLength is the length at which Linux truncates the command name
// printed in ps's comm column.
const LinuxCommLength = 15

// NameLimit returns the length at which the native listing on goos truncates
// process names, or 0 when names are reported in full.
func NameLimit(goos string) int {
	if goos == "linux" {
		return LinuxCommLength
	}
	return 0
}

// psScript lists the short command name, pid, and full command line of
// every process.
const psScript = "ps -eo comm,pid,args"

// psLine captures a name token, a numeric pid token, and the rest of the line.
var psLine = regexp.MustCompile(`^\s*(\S+)\s+(\d+)\s+(.*\S)\s*$`)

// PSFormat reads the plain-text table printed by ps.
type PSFormat struct{}

// Shell implements Format.
func (PSFormat) Shell() string { return shellutil.ShellSh }

// Script implements Format.
func (PSFormat) Script() string { return psScript }

// Parse implements Format. Lines that do not match name, pid, and command
// (the header, blank lines, truncated rows) are dropped without affecting
// the lines after them. Lines have no length limit. A pid that does not fit
// in 32 bits becomes 0.
func (PSFormat) Parse(raw []byte) []Record {
	records := []Record{}

	for _, line := range bytes.Split(raw, []byte("\n")) {
		if rec, ok := parsePSLine(string(bytes.TrimRight(line, "\r"))); ok {
			records = append(records, rec)
		}
	}

	return records
}

func parsePSLine(line string) (Record, bool) {
	m := psLine.FindStringSubmatch(line)
	if m == nil {
		return Record{}, false
	}

	pid, err := strconv.ParseUint(m[2], 10, 32)
	if err != nil {
		pid = 0
	}

	return Record{
		Name:           m[1],
		PID:            uint32(pid),
		ExecutablePath: m[3],
	}, true
}
