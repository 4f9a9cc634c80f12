// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

// Package mcpserver exposes a bridge.Bridge to host applications as Model
// Context Protocol tools over stdio.
//
// Tools:
//
//   - find_game_processes: processes belonging to an app ID
//   - is_process_alive: liveness of a PID
//   - find_window_title: title of a window owned by a PID
package mcpserver

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/jongio/gamebridge/bridge"
	"github.com/jongio/gamebridge/logutil"
	"github.com/jongio/gamebridge/matcher"
	"github.com/jongio/gamebridge/security"
)

// Tool names.
const (
	ToolFindGameProcesses = "find_game_processes"
	ToolIsProcessAlive    = "is_process_alive"
	ToolFindWindowTitle   = "find_window_title"
)

// Default per-tool limits: a burst of 20 calls refilled at 5 per second.
// Hosts poll is_process_alive, so the limits are generous.
const (
	defaultBurst      = 20
	defaultRefillRate = 5.0
)

// Server holds the tool handlers for one Bridge.
type Server struct {
	bridge  *bridge.Bridge
	limiter *RateLimiter
	log     *logutil.ComponentLogger
}

// New returns a Server for b. A nil limiter selects the default limits.
func New(b *bridge.Bridge, limiter *RateLimiter) *Server {
	if limiter == nil {
		limiter = NewRateLimiter(defaultBurst, defaultRefillRate)
	}
	return &Server{
		bridge:  b,
		limiter: limiter,
		log:     logutil.NewLogger("mcpserver"),
	}
}

// MCPServer builds the MCP server with every tool registered.
func (s *Server) MCPServer(name, version string) *server.MCPServer {
	m := server.NewMCPServer(name, version, server.WithToolCapabilities(false))

	m.AddTool(mcp.NewTool(ToolFindGameProcesses,
		mcp.WithDescription("List running processes that belong to an installed game. "+
			"Returns an array of {pid, executablePath}; empty when nothing matches or enumeration is unavailable."),
		mcp.WithNumber("appid", mcp.Required(), mcp.Description("Application ID of the game")),
		mcp.WithString("executable", mcp.Description("Known executable file name; skips install directory scanning")),
	), s.handleFindGameProcesses)

	m.AddTool(mcp.NewTool(ToolIsProcessAlive,
		mcp.WithDescription("Report whether a process is still running. Exited and zombie processes are not alive."),
		mcp.WithNumber("pid", mcp.Required(), mcp.Description("Process ID")),
	), s.handleIsProcessAlive)

	m.AddTool(mcp.NewTool(ToolFindWindowTitle,
		mcp.WithDescription("Return the title of a window owned by a process. Only available on Linux with wmctrl installed."),
		mcp.WithNumber("pid", mcp.Required(), mcp.Description("Process ID")),
	), s.handleFindWindowTitle)

	return m
}

// ServeStdio serves the tools on stdin and stdout until the input closes.
func (s *Server) ServeStdio(name, version string) error {
	s.log.Info("serving MCP tools on stdio", "name", name, "version", version)
	return server.ServeStdio(s.MCPServer(name, version))
}

type findResult struct {
	AppID     uint32          `json:"appid"`
	Processes []matcher.Match `json:"processes"`
}

type aliveResult struct {
	PID   uint32 `json:"pid"`
	Alive bool   `json:"alive"`
}

type titleResult struct {
	PID   uint32  `json:"pid"`
	Title *string `json:"title"`
}

// ensureResult turns a handler that panicked into an error result.
// It must be deferred before logutil.LogPanic so that it runs after it.
func ensureResult(result **mcp.CallToolResult) {
	if *result == nil {
		*result = mcp.NewToolResultError("internal error")
	}
}

func (s *Server) handleFindGameProcesses(ctx context.Context, request mcp.CallToolRequest) (result *mcp.CallToolResult, _ error) {
	defer ensureResult(&result)
	defer logutil.LogPanic(ToolFindGameProcesses)

	if err := s.limiter.CheckRateLimit(ToolFindGameProcesses); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	args := GetArgsMap(request)
	appID, err := GetUint32Param(args, "appid")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	override, _ := GetStringParam(args, "executable")
	if override != "" {
		if err := security.ValidateExecutableName(override); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
	}

	matches := s.bridge.FindGameProcesses(ctx, appID, override)
	return MarshalToolResult(findResult{AppID: appID, Processes: matches})
}

func (s *Server) handleIsProcessAlive(_ context.Context, request mcp.CallToolRequest) (result *mcp.CallToolResult, _ error) {
	defer ensureResult(&result)
	defer logutil.LogPanic(ToolIsProcessAlive)

	if err := s.limiter.CheckRateLimit(ToolIsProcessAlive); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	pid, err := GetUint32Param(GetArgsMap(request), "pid")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return MarshalToolResult(aliveResult{PID: pid, Alive: s.bridge.IsProcessAlive(pid)})
}

func (s *Server) handleFindWindowTitle(ctx context.Context, request mcp.CallToolRequest) (result *mcp.CallToolResult, _ error) {
	defer ensureResult(&result)
	defer logutil.LogPanic(ToolFindWindowTitle)

	if err := s.limiter.CheckRateLimit(ToolFindWindowTitle); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	pid, err := GetUint32Param(GetArgsMap(request), "pid")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	res := titleResult{PID: pid}
	if title, ok := s.bridge.FindWindowTitle(ctx, pid); ok {
		res.Title = &title
	}
	return MarshalToolResult(res)
}
