// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package mcpserver

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/mark3labs/mcp-go/mcp"
)

// GetArgsMap extracts the arguments map from an MCP tool call request.
// Returns an empty map if arguments are nil or not a map.
func GetArgsMap(request mcp.CallToolRequest) map[string]interface{} {
	if request.Params.Arguments != nil {
		if m, ok := request.Params.Arguments.(map[string]interface{}); ok {
			return m
		}
	}
	return map[string]interface{}{}
}

// GetStringParam extracts a string parameter from the arguments map.
// Returns the value and whether it was found and is a string.
func GetStringParam(args map[string]interface{}, key string) (string, bool) {
	val, ok := args[key]
	if !ok {
		return "", false
	}
	s, ok := val.(string)
	return s, ok
}

// GetUint32Param extracts a non-negative integer parameter. JSON numbers
// arrive as float64, so fractional and out-of-range values are rejected.
func GetUint32Param(args map[string]interface{}, key string) (uint32, error) {
	val, ok := args[key]
	if !ok {
		return 0, fmt.Errorf("missing required parameter %q", key)
	}

	var f float64
	switch v := val.(type) {
	case float64:
		f = v
	case int:
		f = float64(v)
	case json.Number:
		parsed, err := v.Float64()
		if err != nil {
			return 0, fmt.Errorf("parameter %q is not a number: %w", key, err)
		}
		f = parsed
	default:
		return 0, fmt.Errorf("parameter %q must be a number", key)
	}

	if f < 0 || f > math.MaxUint32 || f != math.Trunc(f) {
		return 0, fmt.Errorf("parameter %q must be an integer between 0 and %d", key, uint32(math.MaxUint32))
	}
	return uint32(f), nil
}

// MarshalToolResult marshals any value to JSON and returns it as an MCP tool result.
func MarshalToolResult(data interface{}) (*mcp.CallToolResult, error) {
	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return mcp.NewToolResultError("failed to marshal result: " + err.Error()), nil
	}
	return mcp.NewToolResultText(string(jsonData)), nil
}
