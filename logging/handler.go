// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package logging

import (
	"context"
	"log/slog"
	"runtime"

	"github.com/milchinskiy/linelog/logger"
)

// Extra slog levels matching the linelog levels without a slog constant.
const (
	LevelTrace slog.Level = slog.LevelDebug - 4
	LevelFatal slog.Level = slog.LevelError + 4
)

// ReplaceAttrFunc rewrites or drops (by returning the zero Attr) an
// attribute before it is rendered. groups lists the enclosing groups.
type ReplaceAttrFunc func(groups []string, a slog.Attr) slog.Attr

// config holds the resolved handler configuration.
type config struct {
	group   string
	replace ReplaceAttrFunc
}

// Option configures the handler created by [NewHandler].
type Option func(*config)

// WithGroup sets the group tag used before any [log/slog.Logger.WithGroup].
func WithGroup(name string) Option {
	return func(c *config) {
		c.group = name
	}
}

// WithReplaceAttr installs fn to rewrite attributes, as
// [log/slog.HandlerOptions.ReplaceAttr] does.
func WithReplaceAttr(fn ReplaceAttrFunc) Option {
	return func(c *config) {
		c.replace = fn
	}
}

// Handler is a [log/slog.Handler] that writes through a linelog logger.
// Attributes are appended to the message as " key=value"; slog groups
// become the line's group tag, joined with ".".
type Handler struct {
	lg      *logger.Logger
	group   string
	groups  []string
	attrs   []byte
	replace ReplaceAttrFunc
}

var _ slog.Handler = (*Handler)(nil)

// NewHandler creates a handler writing to lg. Level gating is lg's.
func NewHandler(lg *logger.Logger, opts ...Option) *Handler {
	cfg := &config{}
	for _, opt := range opts {
		opt(cfg)
	}
	h := &Handler{lg: lg, group: cfg.group, replace: cfg.replace}
	if cfg.group != "" {
		h.groups = []string{cfg.group}
	}
	return h
}

// New creates a [*log/slog.Logger] writing to lg.
func New(lg *logger.Logger, opts ...Option) *slog.Logger {
	return slog.New(NewHandler(lg, opts...))
}

// Enabled implements slog.Handler.
func (h *Handler) Enabled(_ context.Context, level slog.Level) bool {
	return h.lg.Enabled(FromSlogLevel(level))
}

// Handle implements slog.Handler.
func (h *Handler) Handle(_ context.Context, r slog.Record) error {
	level := FromSlogLevel(r.Level)
	if !h.lg.Enabled(level) {
		return nil
	}

	buf := make([]byte, 0, len(r.Message)+len(h.attrs)+64)
	buf = append(buf, r.Message...)
	buf = append(buf, h.attrs...)
	r.Attrs(func(a slog.Attr) bool {
		buf = appendAttr(buf, "", a, h.replace, h.groups)
		return true
	})

	var (
		file string
		line int
	)
	if r.PC != 0 && h.lg.WantsCaller() {
		frame, _ := runtime.CallersFrames([]uintptr{r.PC}).Next()
		file, line = logger.TrimPath(frame.File), frame.Line
	}
	h.lg.Emit(level, h.group, file, line, string(buf))
	return nil
}

// WithAttrs implements slog.Handler.
func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}
	h2 := h.clone()
	for _, a := range attrs {
		h2.attrs = appendAttr(h2.attrs, "", a, h.replace, h.groups)
	}
	return h2
}

// WithGroup implements slog.Handler.
func (h *Handler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	h2 := h.clone()
	h2.group = joinName(h.group, name, ".")
	h2.groups = append(h2.groups, name)
	return h2
}

func (h *Handler) clone() *Handler {
	return &Handler{
		lg:      h.lg,
		group:   h.group,
		groups:  append([]string(nil), h.groups...),
		attrs:   append([]byte(nil), h.attrs...),
		replace: h.replace,
	}
}

// FromSlogLevel maps a slog level onto the nearest linelog level at or
// below it.
func FromSlogLevel(level slog.Level) logger.Level {
	switch {
	case level < slog.LevelDebug:
		return logger.LevelTrace
	case level < slog.LevelInfo:
		return logger.LevelDebug
	case level < slog.LevelWarn:
		return logger.LevelInfo
	case level < slog.LevelError:
		return logger.LevelWarn
	case level < LevelFatal:
		return logger.LevelError
	default:
		return logger.LevelFatal
	}
}
