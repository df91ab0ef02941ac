// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package logger

// Entry logs through a Logger with a fixed group tag.
type Entry struct {
	l     *Logger
	group string
}

// Logger returns the logger behind the entry.
func (e Entry) Logger() *Logger { return e.l }

// Name returns the group tag.
func (e Entry) Name() string { return e.group }

// Trace logs msg at trace level.
func (e Entry) Trace(msg string) {
	if StaticEnabled(LevelTrace) {
		e.l.logf(LevelTrace, e.group, msg, nil, false)
	}
}

// Tracef logs a formatted message at trace level.
func (e Entry) Tracef(format string, args ...any) {
	if StaticEnabled(LevelTrace) {
		e.l.logf(LevelTrace, e.group, format, args, true)
	}
}

// Debug logs msg at debug level.
func (e Entry) Debug(msg string) {
	if StaticEnabled(LevelDebug) {
		e.l.logf(LevelDebug, e.group, msg, nil, false)
	}
}

// Debugf logs a formatted message at debug level.
func (e Entry) Debugf(format string, args ...any) {
	if StaticEnabled(LevelDebug) {
		e.l.logf(LevelDebug, e.group, format, args, true)
	}
}

// Info logs msg at info level.
func (e Entry) Info(msg string) {
	e.l.logf(LevelInfo, e.group, msg, nil, false)
}

// Infof logs a formatted message at info level.
func (e Entry) Infof(format string, args ...any) {
	e.l.logf(LevelInfo, e.group, format, args, true)
}

// Warn logs msg at warn level.
func (e Entry) Warn(msg string) {
	e.l.logf(LevelWarn, e.group, msg, nil, false)
}

// Warnf logs a formatted message at warn level.
func (e Entry) Warnf(format string, args ...any) {
	e.l.logf(LevelWarn, e.group, format, args, true)
}

// Error logs msg at error level.
func (e Entry) Error(msg string) {
	e.l.logf(LevelError, e.group, msg, nil, false)
}

// Errorf logs a formatted message at error level.
func (e Entry) Errorf(format string, args ...any) {
	e.l.logf(LevelError, e.group, format, args, true)
}

// Fatal logs msg at fatal level.
func (e Entry) Fatal(msg string) {
	e.l.logf(LevelFatal, e.group, msg, nil, false)
}

// Fatalf logs a formatted message at fatal level.
func (e Entry) Fatalf(format string, args ...any) {
	e.l.logf(LevelFatal, e.group, format, args, true)
}
