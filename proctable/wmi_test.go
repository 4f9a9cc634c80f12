// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package proctable

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWMIFormatParse(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []Record
	}{
		{
			name: "array",
			raw: `[{"ProcessName":"System Idle Process","ProcessId":0,"ExecutablePath":null},` +
				`{"ProcessName":"Game.exe","ProcessId":4242,"ExecutablePath":"C:\\Games\\Game.exe"}]`,
			want: []Record{
				{Name: "System Idle Process", PID: 0, ExecutablePath: ""},
				{Name: "Game.exe", PID: 4242, ExecutablePath: `C:\Games\Game.exe`},
			},
		},
		{
			name: "single object",
			raw:  `{"ProcessName":"Game.exe","ProcessId":4242,"ExecutablePath":"C:\\Games\\Game.exe"}`,
			want: []Record{{Name: "Game.exe", PID: 4242, ExecutablePath: `C:\Games\Game.exe`}},
		},
		{
			name: "surrounding whitespace",
			raw:  "\r\n  [{\"ProcessName\":\"a.exe\",\"ProcessId\":1,\"ExecutablePath\":\"C:\\\\a.exe\"}]\r\n",
			want: []Record{{Name: "a.exe", PID: 1, ExecutablePath: `C:\a.exe`}},
		},
		{
			name: "malformed record skipped",
			raw: `[{"ProcessName":"bad.exe","ProcessId":"nope","ExecutablePath":null},` +
				`{"ProcessName":"good.exe","ProcessId":8,"ExecutablePath":null}]`,
			want: []Record{{Name: "good.exe", PID: 8}},
		},
		{
			name: "missing name skipped",
			raw:  `[{"ProcessId":9,"ExecutablePath":"C:\\x.exe"}]`,
			want: []Record{},
		},
		{
			name: "empty output",
			raw:  "",
			want: []Record{},
		},
		{
			name: "not json",
			raw:  "Get-WmiObject : Access denied",
			want: []Record{},
		},
		{
			name: "truncated array",
			raw:  `[{"ProcessName":"Game.exe","ProcessId":1`,
			want: []Record{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, WMIFormat{}.Parse([]byte(tt.raw)))
		})
	}
}
