// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package logutil

import "log/slog"

// ComponentLogger provides component-scoped structured logging.
// The global logger is resolved on every call, so a ComponentLogger created
// before SetupLogger or SetupFileLogger still writes to the configured sink.
type ComponentLogger struct {
	component string
	attrs     []any
}

// NewLogger creates a Logger scoped to a named component.
func NewLogger(component string) *ComponentLogger {
	return &ComponentLogger{
		component: component,
		attrs:     []any{"component", component},
	}
}

// WithOperation returns a new Logger with the operation context added.
func (l *ComponentLogger) WithOperation(name string) *ComponentLogger {
	return l.WithFields("operation", name)
}

// WithApp returns a new Logger tagged with a game application ID.
func (l *ComponentLogger) WithApp(appID uint32) *ComponentLogger {
	return l.WithFields("appid", appID)
}

// WithFields returns a new Logger with additional fields.
// Fields are provided as alternating key-value pairs.
func (l *ComponentLogger) WithFields(fields ...any) *ComponentLogger {
	attrs := make([]any, 0, len(l.attrs)+len(fields))
	attrs = append(attrs, l.attrs...)
	attrs = append(attrs, fields...)
	return &ComponentLogger{
		component: l.component,
		attrs:     attrs,
	}
}

// Component returns the component name for this logger.
func (l *ComponentLogger) Component() string {
	return l.component
}

func (l *ComponentLogger) slogger() *slog.Logger {
	return Logger().With(l.attrs...)
}

// Debug logs a message at debug level.
func (l *ComponentLogger) Debug(msg string, args ...any) {
	l.slogger().Debug(msg, args...)
}

// Info logs a message at info level.
func (l *ComponentLogger) Info(msg string, args ...any) {
	l.slogger().Info(msg, args...)
}

// Warn logs a message at warn level.
func (l *ComponentLogger) Warn(msg string, args ...any) {
	l.slogger().Warn(msg, args...)
}

// Error logs a message at error level.
func (l *ComponentLogger) Error(msg string, args ...any) {
	l.slogger().Error(msg, args...)
}
