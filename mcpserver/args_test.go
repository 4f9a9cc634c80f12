// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package mcpserver

import (
	"encoding/json"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
)

func TestGetArgsMap_NilArgs(t *testing.T) {
	req := mcp.CallToolRequest{}
	args := GetArgsMap(req)
	if len(args) != 0 {
		t.Error("expected empty map for nil args")
	}
}

func TestGetArgsMap_WithArgs(t *testing.T) {
	req := mcp.CallToolRequest{}
	req.Params.Arguments = map[string]interface{}{
		"appid":      float64(480),
		"executable": "Spacewar.exe",
	}
	args := GetArgsMap(req)
	if len(args) != 2 {
		t.Fatalf("expected 2 args, got %d", len(args))
	}
	if args["executable"] != "Spacewar.exe" {
		t.Errorf("expected 'Spacewar.exe', got %v", args["executable"])
	}
}

func TestGetArgsMap_NonMapArgs(t *testing.T) {
	req := mcp.CallToolRequest{}
	req.Params.Arguments = "not-a-map"
	args := GetArgsMap(req)
	if len(args) != 0 {
		t.Error("expected empty map for non-map arguments")
	}
}

func TestGetStringParam(t *testing.T) {
	args := map[string]interface{}{"key": "value", "num": 42}

	val, ok := GetStringParam(args, "key")
	if !ok || val != "value" {
		t.Errorf("expected 'value', got %q (ok=%v)", val, ok)
	}

	_, ok = GetStringParam(args, "num")
	if ok {
		t.Error("expected false for non-string value")
	}

	_, ok = GetStringParam(args, "missing")
	if ok {
		t.Error("expected false for missing key")
	}
}

func TestGetUint32Param(t *testing.T) {
	tests := []struct {
		name    string
		value   interface{}
		want    uint32
		wantErr bool
	}{
		{"float", float64(480), 480, false},
		{"int", 7, 7, false},
		{"json number", json.Number("4242"), 4242, false},
		{"zero", float64(0), 0, false},
		{"max", float64(4294967295), 4294967295, false},
		{"negative", float64(-1), 0, true},
		{"too large", float64(4294967296), 0, true},
		{"fractional", 1.5, 0, true},
		{"string", "480", 0, true},
		{"bad json number", json.Number("abc"), 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := GetUint32Param(map[string]interface{}{"pid": tt.value}, "pid")
			if (err != nil) != tt.wantErr {
				t.Fatalf("GetUint32Param() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("GetUint32Param() = %d, want %d", got, tt.want)
			}
		})
	}

	if _, err := GetUint32Param(map[string]interface{}{}, "pid"); err == nil {
		t.Error("expected error for missing parameter")
	}
}

func TestMarshalToolResult_Success(t *testing.T) {
	result, err := MarshalToolResult(map[string]string{"status": "ok"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result == nil || result.IsError {
		t.Fatal("expected successful result")
	}
}

func TestMarshalToolResult_Failure(t *testing.T) {
	// Channels cannot be marshaled to JSON.
	result, err := MarshalToolResult(make(chan int))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.IsError {
		t.Fatal("expected error result for un-marshalable value")
	}
}
