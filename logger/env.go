// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package logger

import (
	"strings"

	"github.com/milchinskiy/linelog/env"
)

// Environment variables read by ApplyEnv.
const (
	EnvLevel        = "LINELOG_LEVEL"
	EnvColor        = "LINELOG_COLOR"
	EnvShowThreadID = "LINELOG_SHOW_TID"
	EnvShowTime     = "LINELOG_SHOW_TIME"
)

// InitFromEnv configures the default logger from the process environment.
func InitFromEnv() {
	InitFromEnvWith(&env.OSReader{})
}

// InitFromEnvWith configures the default logger from envReader.
// This allows for dependency injection of environment variable access for testing.
func InitFromEnvWith(envReader env.Reader) {
	std.ApplyEnv(envReader)
}

// ApplyEnv reads the LINELOG_* variables. Unset or empty variables are
// skipped, and unparsable level or color values leave the current setting.
func (l *Logger) ApplyEnv(envReader env.Reader) {
	if v := envReader.Getenv(EnvLevel); v != "" {
		if level, err := ParseLevel(v); err == nil {
			l.SetLevel(level)
		}
	}
	if v := envReader.Getenv(EnvColor); v != "" {
		if mode, err := ParseColorMode(v); err == nil {
			l.SetColorMode(mode)
		}
	}
	if v := envReader.Getenv(EnvShowThreadID); v != "" {
		l.SetShowThreadID(envBool(v))
	}
	if v := envReader.Getenv(EnvShowTime); v != "" {
		l.SetShowTime(envBool(v))
	}
}

// envBool is true only for "1" or "true" in any case.
func envBool(v string) bool {
	return v == "1" || strings.EqualFold(v, "true")
}
