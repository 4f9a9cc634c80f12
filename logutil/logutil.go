// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package logutil

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime/debug"
	"strings"
	"sync"
)

// Level represents the logging level.
type Level int

const (
	// LevelDebug is for debug messages.
	LevelDebug Level = iota
	// LevelInfo is for informational messages.
	LevelInfo
	// LevelWarn is for warnings.
	LevelWarn
	// LevelError is for errors.
	LevelError
)

// Environment variable names for logging configuration.
const (
	// EnvDebug enables debug logging when set to "true".
	EnvDebug = "GAMEBRIDGE_DEBUG"
)

// LogFileName is the name of the log file created by SetupFileLogger.
const LogFileName = "gamebridge.log"

var (
	mu           sync.RWMutex
	globalLogger *slog.Logger
	currentLevel           = LevelInfo
	isStructured           = false
	outputWriter io.Writer = os.Stderr
	logFile      *os.File
)

func init() {
	SetupLogger(false, false)
}

// SetupLogger configures the global logger.
//
// Parameters:
//   - debug: When true, enables debug-level logging
//   - structured: When true, outputs JSON-formatted logs; otherwise uses text format
//
// The logger writes to stderr by default.
// This function is safe for concurrent use.
func SetupLogger(debug, structured bool) {
	SetupLoggerWithWriter(os.Stderr, debug, structured)
}

// SetupLoggerWithWriter configures the logger with a custom writer.
// This is useful for testing or redirecting logs.
// This function is safe for concurrent use.
func SetupLoggerWithWriter(w io.Writer, debug, structured bool) {
	mu.Lock()
	defer mu.Unlock()

	outputWriter = w
	isStructured = structured
	if debug {
		currentLevel = LevelDebug
	} else {
		currentLevel = LevelInfo
	}
	rebuildLocked()
}

// SetupFileLogger sends log output to LogFileName inside dir, creating dir if
// needed. Any previously opened log file is closed. It never fails the caller:
// on error the logger keeps its current output and the returned message
// describes what went wrong.
func SetupFileLogger(dir string, debug, structured bool) (string, error) {
	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Sprintf("Failed to initialise %q: %v", LogFileName, err), err
	}

	path := filepath.Join(dir, LogFileName)
	// #nosec G304 -- dir is supplied by the host application
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Sprintf("Failed to initialise %q: %v", LogFileName, err), err
	}

	mu.Lock()
	prev := logFile
	logFile = f
	mu.Unlock()

	SetupLoggerWithWriter(f, debug, structured)

	if prev != nil {
		_ = prev.Close()
	}
	return fmt.Sprintf("Initialised %q successfully", LogFileName), nil
}

// Close closes the log file opened by SetupFileLogger, if any, and sends
// output back to stderr.
func Close() error {
	mu.Lock()
	f := logFile
	logFile = nil
	outputWriter = os.Stderr
	rebuildLocked()
	mu.Unlock()

	if f == nil {
		return nil
	}
	return f.Close()
}

// SetOutput sets the output writer for the logger.
// This function is safe for concurrent use.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()

	outputWriter = w
	rebuildLocked()
}

// rebuildLocked recreates the global logger from the current settings.
// Caller must hold mu.Lock().
func rebuildLocked() {
	opts := &slog.HandlerOptions{Level: toSlogLevel(currentLevel)}

	var handler slog.Handler
	if isStructured {
		handler = slog.NewJSONHandler(outputWriter, opts)
	} else {
		handler = slog.NewTextHandler(outputWriter, opts)
	}

	globalLogger = slog.New(handler)
	slog.SetDefault(globalLogger)
}

func toSlogLevel(level Level) slog.Level {
	switch level {
	case LevelDebug:
		return slog.LevelDebug
	case LevelWarn:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// IsDebugEnabled returns true if debug logging is enabled.
// This checks both the programmatic setting and the GAMEBRIDGE_DEBUG environment variable.
// This function is safe for concurrent use.
func IsDebugEnabled() bool {
	mu.RLock()
	level := currentLevel
	mu.RUnlock()
	return level == LevelDebug || os.Getenv(EnvDebug) == "true"
}

// Debug logs a debug message with optional key-value pairs.
// Debug messages are only logged when debug mode is enabled.
func Debug(msg string, args ...any) {
	if IsDebugEnabled() {
		Logger().Debug(msg, args...)
	}
}

// Info logs an info message with optional key-value pairs.
//
// Example:
//
//	logutil.Info("process matched", "name", "game.exe", "pid", 4242)
func Info(msg string, args ...any) {
	Logger().Info(msg, args...)
}

// Warn logs a warning message with optional key-value pairs.
func Warn(msg string, args ...any) {
	Logger().Warn(msg, args...)
}

// Error logs an error message with optional key-value pairs.
func Error(msg string, args ...any) {
	Logger().Error(msg, args...)
}

// LogPanic recovers a panic, logs it at error level with its stack, and
// swallows it. It must be called directly with defer:
//
//	defer logutil.LogPanic("find_game_processes")
func LogPanic(location string) {
	if r := recover(); r != nil {
		Logger().Error("panic occurred",
			"location", location,
			"panic", fmt.Sprint(r),
			"stack", string(debug.Stack()))
	}
}

// ParseLevel parses a string into a Level.
// Valid values are: "debug", "info", "warn", "warning", "error".
// Returns LevelInfo for unrecognized values.
func ParseLevel(s string) Level {
	switch strings.ToLower(s) {
	case "debug":
		return LevelDebug
	case "info":
		return LevelInfo
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

// GetLevel returns the current logging level.
// This function is safe for concurrent use.
func GetLevel() Level {
	mu.RLock()
	defer mu.RUnlock()
	return currentLevel
}

// SetLevel sets the logging level programmatically.
// This function is safe for concurrent use.
func SetLevel(level Level) {
	mu.Lock()
	defer mu.Unlock()

	currentLevel = level
	rebuildLocked()
}

// Logger returns the underlying slog.Logger for advanced usage.
// This function is safe for concurrent use.
func Logger() *slog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return globalLogger
}
