// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package proctable

import (
	"bytes"
	"encoding/json"

	"github.com/jongio/gamebridge/shellutil"
)

// wmiScript lists Win32_Process objects as compact JSON.
const wmiScript = "Get-WmiObject Win32_Process | Select-Object ProcessName, ProcessId, ExecutablePath | ConvertTo-Json -Compress"

// WMIFormat reads the structured process listing produced by PowerShell.
type WMIFormat struct{}

// wmiProcess mirrors the selected Win32_Process properties.
// ExecutablePath is null for processes the caller cannot inspect.
type wmiProcess struct {
	ProcessName    *string `json:"ProcessName"`
	ProcessId      uint32  `json:"ProcessId"`
	ExecutablePath *string `json:"ExecutablePath"`
}

// Shell implements Format.
func (WMIFormat) Shell() string { return shellutil.ShellPowerShell }

// Script implements Format.
func (WMIFormat) Script() string { return wmiScript }

// Parse implements Format. ConvertTo-Json emits a bare object instead of an
// array when exactly one process is selected; both shapes are accepted.
// Records that do not decode or carry no name are dropped.
func (WMIFormat) Parse(raw []byte) []Record {
	raw = bytes.TrimSpace(raw)
	records := []Record{}
	if len(raw) == 0 {
		return records
	}

	var items []json.RawMessage
	switch raw[0] {
	case '[':
		if err := json.Unmarshal(raw, &items); err != nil {
			return records
		}
	case '{':
		items = []json.RawMessage{raw}
	default:
		return records
	}

	for _, item := range items {
		var p wmiProcess
		if err := json.Unmarshal(item, &p); err != nil {
			continue
		}
		if p.ProcessName == nil || *p.ProcessName == "" {
			continue
		}

		rec := Record{Name: *p.ProcessName, PID: p.ProcessId}
		if p.ExecutablePath != nil {
			rec.ExecutablePath = *p.ExecutablePath
		}
		records = append(records, rec)
	}

	return records
}
