// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package logging

import (
	"runtime"

	"github.com/go-logr/logr"

	"github.com/milchinskiy/linelog/logger"
)

// NewLogr returns a [logr.Logger] writing through lg. V(0) logs at Info,
// V(1) at Debug and V(2) and above at Trace. Logger names become the
// group tag, joined with "/".
func NewLogr(lg *logger.Logger) logr.Logger {
	return logr.New(&logrSink{lg: lg})
}

type logrSink struct {
	lg     *logger.Logger
	name   string
	values []byte
	depth  int
}

var (
	_ logr.LogSink          = (*logrSink)(nil)
	_ logr.CallDepthLogSink = (*logrSink)(nil)
)

func (s *logrSink) Init(info logr.RuntimeInfo) {
	s.depth = info.CallDepth
}

func (s *logrSink) Enabled(v int) bool {
	return s.lg.Enabled(verbosityLevel(v))
}

func (s *logrSink) Info(v int, msg string, keysAndValues ...any) {
	s.emit(verbosityLevel(v), msg, nil, keysAndValues)
}

func (s *logrSink) Error(err error, msg string, keysAndValues ...any) {
	s.emit(logger.LevelError, msg, err, keysAndValues)
}

func (s *logrSink) WithValues(keysAndValues ...any) logr.LogSink {
	s2 := *s
	s2.values = appendKeysAndValues(append([]byte(nil), s.values...), keysAndValues)
	return &s2
}

func (s *logrSink) WithName(name string) logr.LogSink {
	s2 := *s
	s2.name = joinName(s.name, name, "/")
	return &s2
}

func (s *logrSink) WithCallDepth(depth int) logr.LogSink {
	s2 := *s
	s2.depth += depth
	return &s2
}

// emit is called directly from Info or Error, so the user's frame is
// depth+2 above it.
func (s *logrSink) emit(level logger.Level, msg string, err error, keysAndValues []any) {
	if !s.lg.Enabled(level) {
		return
	}
	buf := make([]byte, 0, len(msg)+len(s.values)+64)
	buf = append(buf, msg...)
	if err != nil {
		buf = appendKeysAndValues(buf, []any{"error", err.Error()})
	}
	buf = append(buf, s.values...)
	buf = appendKeysAndValues(buf, keysAndValues)

	var (
		file string
		line int
	)
	if s.lg.WantsCaller() {
		if _, f, l, ok := runtime.Caller(s.depth + 2); ok {
			file, line = logger.TrimPath(f), l
		}
	}
	s.lg.Emit(level, s.name, file, line, string(buf))
}

func verbosityLevel(v int) logger.Level {
	switch {
	case v <= 0:
		return logger.LevelInfo
	case v == 1:
		return logger.LevelDebug
	default:
		return logger.LevelTrace
	}
}
