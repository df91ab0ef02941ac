// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package logger

import (
	"fmt"
	"strings"
)

// ColorMode decides whether lines carry ANSI color escapes.
type ColorMode uint32

const (
	// ColorAuto colors only standard streams attached to a terminal.
	ColorAuto ColorMode = iota
	// ColorAlways colors every line regardless of the target.
	ColorAlways
	// ColorNever never emits escapes.
	ColorNever
)

const (
	ansiReset = "\x1b[0m"
	ansiBold  = "\x1b[1m"
)

var levelColors = [...]string{
	LevelTrace: "\x1b[90m", // bright black
	LevelDebug: "\x1b[36m", // cyan
	LevelInfo:  "\x1b[32m", // green
	LevelWarn:  "\x1b[33m", // yellow
	LevelError: "\x1b[31m", // red
	LevelFatal: "\x1b[35m", // magenta
}

func levelColor(l Level) string {
	if int(l) < len(levelColors) {
		return levelColors[l]
	}
	return ""
}

// String returns the lower-case mode name.
func (m ColorMode) String() string {
	switch m {
	case ColorAuto:
		return "auto"
	case ColorAlways:
		return "always"
	case ColorNever:
		return "never"
	default:
		return fmt.Sprintf("colormode(%d)", uint32(m))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (m ColorMode) MarshalText() ([]byte, error) {
	if m > ColorNever {
		return nil, &ParseError{Kind: "color", Text: m.String(), sentinel: ErrInvalidColorMode}
	}
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *ColorMode) UnmarshalText(text []byte) error {
	parsed, err := ParseColorMode(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// ParseColorMode parses "always", "never", "auto" or "" case-insensitively.
// The empty string means ColorAuto. Any other text returns a *ParseError
// wrapping ErrInvalidColorMode.
func ParseColorMode(text string) (ColorMode, error) {
	switch {
	case strings.EqualFold(text, "always"):
		return ColorAlways, nil
	case strings.EqualFold(text, "never"):
		return ColorNever, nil
	case text == "", strings.EqualFold(text, "auto"):
		return ColorAuto, nil
	}
	return ColorAuto, &ParseError{Kind: "color", Text: text, sentinel: ErrInvalidColorMode}
}
