// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package logger

import (
	"runtime/debug"
	"strings"

	"github.com/valyala/fasttemplate"
)

// DefaultBannerTemplate is used when no template was set on the builder.
const DefaultBannerTemplate = "{name} v{version} ({mode})\n"

// BuildMode returns "release" when built with the linelog_release tag and
// "debug" otherwise.
func BuildMode() string { return buildMode }

// Banner writes a single unprefixed line such as "app v1.2.0 (debug)".
// It bypasses level gating and filtering. An empty name or version is
// taken from the main module's build info.
func (l *Logger) Banner(name, version string) {
	if name == "" || version == "" {
		biName, biVersion := buildInfo()
		if name == "" {
			name = biName
		}
		if version == "" {
			version = biVersion
		}
	}

	tmpl := l.bannerTemplate
	if tmpl == "" {
		tmpl = DefaultBannerTemplate
	}
	line := fasttemplate.ExecuteString(tmpl, "{", "}", map[string]any{
		"name":    name,
		"version": version,
		"mode":    buildMode,
	})
	if !strings.HasSuffix(line, "\n") {
		line += "\n"
	}
	l.write(LevelInfo, []byte(line))
}

func buildInfo() (name, version string) {
	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return "unknown", "0.0.0"
	}
	name = bi.Main.Path
	if i := strings.LastIndexByte(name, '/'); i >= 0 {
		name = name[i+1:]
	}
	if name == "" {
		name = "unknown"
	}
	version = strings.TrimPrefix(bi.Main.Version, "v")
	if version == "" {
		version = "0.0.0"
	}
	return name, version
}
