// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package logger

import (
	"errors"
	"fmt"
	"strings"
)

// Level is the severity of a log line. Levels are totally ordered and the
// same ordering is used by the compile-time floor and the runtime threshold.
type Level uint32

const (
	// LevelTrace is for very fine-grained diagnostics.
	LevelTrace Level = iota
	// LevelDebug is for diagnostics useful during development.
	LevelDebug
	// LevelInfo is for normal operational events.
	LevelInfo
	// LevelWarn is for unexpected conditions that do not stop the program.
	LevelWarn
	// LevelError is for failed operations.
	LevelError
	// LevelFatal is the highest severity. Logging at it does not exit.
	LevelFatal
)

var levelNames = [...]string{"TRACE", "DEBUG", "INFO", "WARN", "ERROR", "FATAL"}

// levelTags are the names padded to the fixed 5-character tag width.
var levelTags = [...]string{"TRACE", "DEBUG", "INFO ", "WARN ", "ERROR", "FATAL"}

// Sentinel errors returned (wrapped in *ParseError) by the text parsers.
var (
	// ErrInvalidLevel is returned when text does not name a level.
	ErrInvalidLevel = errors.New("invalid log level")

	// ErrInvalidColorMode is returned when text does not name a color mode.
	ErrInvalidColorMode = errors.New("invalid color mode")

	// ErrInvalidTarget is returned when text does not name an output target.
	ErrInvalidTarget = errors.New("invalid output target")
)

// ParseError reports text that could not be parsed into a configuration value.
type ParseError struct {
	// Kind is the configuration value being parsed, e.g. "level".
	Kind string
	// Text is the rejected input.
	Text string

	sentinel error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: %q", e.sentinel, e.Text)
}

// Unwrap returns the sentinel error for errors.Is.
func (e *ParseError) Unwrap() error {
	return e.sentinel
}

// String returns the upper-case level name.
func (l Level) String() string {
	if int(l) < len(levelNames) {
		return levelNames[l]
	}
	return fmt.Sprintf("LEVEL(%d)", uint32(l))
}

// tag returns the 5-character left-justified tag used in the line prefix.
func (l Level) tag() string {
	if int(l) < len(levelTags) {
		return levelTags[l]
	}
	return "?????"
}

// MarshalText implements encoding.TextMarshaler using the lower-case name.
func (l Level) MarshalText() ([]byte, error) {
	if int(l) >= len(levelNames) {
		return nil, &ParseError{Kind: "level", Text: l.String(), sentinel: ErrInvalidLevel}
	}
	return []byte(strings.ToLower(levelNames[l])), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (l *Level) UnmarshalText(text []byte) error {
	parsed, err := ParseLevel(string(text))
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}

// ParseLevel parses a level name case-insensitively.
func ParseLevel(text string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(text)) {
	case "trace":
		return LevelTrace, nil
	case "debug":
		return LevelDebug, nil
	case "info":
		return LevelInfo, nil
	case "warn":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	case "fatal":
		return LevelFatal, nil
	}
	return LevelInfo, &ParseError{Kind: "level", Text: text, sentinel: ErrInvalidLevel}
}

// StaticEnabled reports whether level passes the build-time floor.
// CompileFloor is a constant, so calls with a constant level fold away.
func StaticEnabled(level Level) bool {
	return level >= CompileFloor
}

// Target selects where a logger writes.
type Target uint32

const (
	// TargetStdout writes to the process standard output.
	TargetStdout Target = iota
	// TargetStderr writes to the process standard error.
	TargetStderr
	// TargetWriter writes to a custom writer installed with SetWriter.
	TargetWriter
)

// String returns the lower-case target name.
func (t Target) String() string {
	switch t {
	case TargetStdout:
		return "stdout"
	case TargetStderr:
		return "stderr"
	case TargetWriter:
		return "writer"
	default:
		return fmt.Sprintf("target(%d)", uint32(t))
	}
}

// ParseTarget parses "stdout", "stderr" or "writer" case-insensitively.
func ParseTarget(text string) (Target, error) {
	switch strings.ToLower(strings.TrimSpace(text)) {
	case "stdout":
		return TargetStdout, nil
	case "stderr":
		return TargetStderr, nil
	case "writer":
		return TargetWriter, nil
	}
	return TargetStderr, &ParseError{Kind: "target", Text: text, sentinel: ErrInvalidTarget}
}

// MarshalText implements encoding.TextMarshaler.
func (t Target) MarshalText() ([]byte, error) {
	if t > TargetWriter {
		return nil, &ParseError{Kind: "target", Text: t.String(), sentinel: ErrInvalidTarget}
	}
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *Target) UnmarshalText(text []byte) error {
	parsed, err := ParseTarget(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
