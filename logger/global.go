// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package logger

import "io"

var std = New()

// Default returns the process-wide logger used by the package-level functions.
func Default() *Logger { return std }

// SetLevel sets the runtime threshold of the default logger.
func SetLevel(level Level) { std.SetLevel(level) }

// SetColorMode sets the color policy of the default logger.
func SetColorMode(mode ColorMode) { std.SetColorMode(mode) }

// SetShowTime toggles timestamps on the default logger.
func SetShowTime(on bool) { std.SetShowTime(on) }

// SetLocalTime switches the default logger to local-zone timestamps.
func SetLocalTime(on bool) { std.SetLocalTime(on) }

// SetShowThreadID toggles goroutine ids on the default logger.
func SetShowThreadID(on bool) { std.SetShowThreadID(on) }

// SetShowFileLine toggles file:line on the default logger.
func SetShowFileLine(on bool) { std.SetShowFileLine(on) }

// SetShowGroup toggles the group tag on the default logger.
func SetShowGroup(on bool) { std.SetShowGroup(on) }

// SetTarget selects the default logger's target once.
func SetTarget(t Target) { std.SetTarget(t) }

// SetWriter installs the default logger's custom writer once.
func SetWriter(w io.Writer) { std.SetWriter(w) }

// SetFile installs a log file as the default logger's writer.
func SetFile(path string) error { return std.SetFile(path) }

// Trace logs msg at trace level using the default logger.
func Trace(msg string) {
	if StaticEnabled(LevelTrace) {
		std.logf(LevelTrace, "", msg, nil, false)
	}
}

// Tracef logs a formatted message at trace level using the default logger.
func Tracef(format string, args ...any) {
	if StaticEnabled(LevelTrace) {
		std.logf(LevelTrace, "", format, args, true)
	}
}

// Debug logs msg at debug level using the default logger.
func Debug(msg string) {
	if StaticEnabled(LevelDebug) {
		std.logf(LevelDebug, "", msg, nil, false)
	}
}

// Debugf logs a formatted message at debug level using the default logger.
func Debugf(format string, args ...any) {
	if StaticEnabled(LevelDebug) {
		std.logf(LevelDebug, "", format, args, true)
	}
}

// Info logs msg at info level using the default logger.
func Info(msg string) {
	std.logf(LevelInfo, "", msg, nil, false)
}

// Infof logs a formatted message at info level using the default logger.
func Infof(format string, args ...any) {
	std.logf(LevelInfo, "", format, args, true)
}

// Warn logs msg at warn level using the default logger.
func Warn(msg string) {
	std.logf(LevelWarn, "", msg, nil, false)
}

// Warnf logs a formatted message at warn level using the default logger.
func Warnf(format string, args ...any) {
	std.logf(LevelWarn, "", format, args, true)
}

// Error logs msg at error level using the default logger.
func Error(msg string) {
	std.logf(LevelError, "", msg, nil, false)
}

// Errorf logs a formatted message at error level using the default logger.
func Errorf(format string, args ...any) {
	std.logf(LevelError, "", format, args, true)
}

// Fatal logs msg at fatal level using the default logger. It does not exit.
func Fatal(msg string) {
	std.logf(LevelFatal, "", msg, nil, false)
}

// Fatalf logs a formatted message at fatal level using the default logger.
// It does not exit.
func Fatalf(format string, args ...any) {
	std.logf(LevelFatal, "", format, args, true)
}

// Group returns an Entry on the default logger tagged with name.
func Group(name string) Entry { return std.Group(name) }

// StartTimer starts a scope timer on the default logger.
func StartTimer(label string) *Timer {
	return std.startTimer(label, 2)
}

// Time runs fn under a scope timer on the default logger.
func Time(label string, fn func()) {
	t := std.startTimer(label, 2)
	defer t.Stop()
	fn()
}

// Banner writes the banner line through the default logger.
func Banner(name, version string) { std.Banner(name, version) }
