// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

// Package logutil provides a structured logging abstraction built on top of slog.
//
// Every gamebridge component logs through this package: scan errors,
// enumeration failures, match results, and retry exhaustion all end up in the
// same sink so a host can inspect one place when a query degrades to an
// empty result.
//
// # Basic Usage
//
//	// Initialize logging (typically in main.go)
//	logutil.SetupLogger(debug, structured)
//
//	// Or write to <appdata>/gamebridge.log
//	msg, err := logutil.SetupFileLogger(appDataDir, debug, structured)
//
//	// Component-scoped logging
//	log := logutil.NewLogger("matcher")
//	log.Info("process matched", "name", name, "pid", pid)
//
// # Debug Mode
//
// Debug logging can be enabled in two ways:
//   - Pass debug=true to SetupLogger
//   - Set GAMEBRIDGE_DEBUG=true environment variable
//
// # Structured Logging
//
// When structured=true is passed to SetupLogger, logs are output as JSON:
//
//	{"time":"2024-01-15T10:30:00Z","level":"INFO","msg":"process matched","pid":4242}
//
// Otherwise, logs use a human-readable text format:
//
//	time=2024-01-15T10:30:00Z level=INFO msg="process matched" pid=4242
package logutil
