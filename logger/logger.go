// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package logger

import (
	"fmt"
	"io"
	"os"
	"runtime"
	"sync/atomic"
	"time"
)

// Filter decides whether a record that passed level gating is written.
type Filter interface {
	Allow(rec Record) bool
}

// Observer is notified about every write attempt and every stopped timer.
// Implementations must be safe for concurrent use.
type Observer interface {
	LineWritten(level Level, bytes int)
	WriteFailed(level Level, err error)
	TimerStopped(label string, elapsed time.Duration)
}

type filterBox struct{ f Filter }

type observerBox struct{ o Observer }

// Logger is an independent logging instance. Configuration and sink are
// never shared with other instances. All methods are safe for concurrent
// use; configuration setters take effect for lines emitted afterwards.
type Logger struct {
	level        atomic.Uint32
	colorMode    atomic.Uint32
	showTime     atomic.Bool
	localTime    atomic.Bool
	showThreadID atomic.Bool
	showFileLine atomic.Bool
	showGroup    atomic.Bool

	sink     sink
	filter   atomic.Pointer[filterBox]
	observer atomic.Pointer[observerBox]

	bannerTemplate string
}

// New returns a logger with default settings: level Info, color Auto, group
// tag shown, every other prefix part hidden, writing to stderr until a
// target is chosen.
func New() *Logger {
	l := &Logger{}
	l.level.Store(uint32(LevelInfo))
	l.colorMode.Store(uint32(ColorAuto))
	l.showGroup.Store(true)
	return l
}

// SetLevel sets the runtime threshold.
func (l *Logger) SetLevel(level Level) { l.level.Store(uint32(level)) }

// Level returns the runtime threshold.
func (l *Logger) Level() Level { return Level(l.level.Load()) }

// SetColorMode sets the color policy.
func (l *Logger) SetColorMode(mode ColorMode) { l.colorMode.Store(uint32(mode)) }

// ColorMode returns the color policy.
func (l *Logger) ColorMode() ColorMode { return ColorMode(l.colorMode.Load()) }

// SetShowTime toggles the timestamp prefix.
func (l *Logger) SetShowTime(on bool) { l.showTime.Store(on) }

// SetLocalTime switches timestamps from UTC to the local zone.
func (l *Logger) SetLocalTime(on bool) { l.localTime.Store(on) }

// SetShowThreadID toggles the goroutine id prefix.
func (l *Logger) SetShowThreadID(on bool) { l.showThreadID.Store(on) }

// SetShowFileLine toggles the caller file:line prefix.
func (l *Logger) SetShowFileLine(on bool) { l.showFileLine.Store(on) }

// ShowFileLine reports whether the file:line prefix is on.
func (l *Logger) ShowFileLine() bool { return l.showFileLine.Load() }

// WantsCaller reports whether records need a call site, either for the
// file:line prefix or for the installed filter. Adapters calling Emit use
// it to skip resolving call sites nobody will read.
func (l *Logger) WantsCaller() bool {
	return l.showFileLine.Load() || l.filter.Load() != nil
}

// SetShowGroup toggles the group tag.
func (l *Logger) SetShowGroup(on bool) { l.showGroup.Store(on) }

// SetTarget selects the output target. Only the first selection takes
// effect; later calls are ignored.
func (l *Logger) SetTarget(t Target) { l.sink.setTarget(t) }

// Target returns the effective target. It is stderr while none is latched.
func (l *Logger) Target() Target { return l.sink.currentTarget() }

// SetWriter installs w as the custom writer and selects TargetWriter unless
// a target was already latched. Only the first writer is kept. A nil w is
// ignored and leaves the target unlatched.
func (l *Logger) SetWriter(w io.Writer) { l.sink.install(w, nil) }

// SetFile opens path for appending, creating it if needed, and installs it
// as the custom writer. It is a no-op when a writer is already installed.
func (l *Logger) SetFile(path string) error {
	if l.sink.hasWriter() {
		return nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644) //nolint:gosec // log file path is chosen by the operator
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	if !l.sink.install(f, f) {
		_ = f.Close()
	}
	return nil
}

// SetFilter replaces the record filter. A nil filter allows everything.
func (l *Logger) SetFilter(f Filter) {
	if f == nil {
		l.filter.Store(nil)
		return
	}
	l.filter.Store(&filterBox{f: f})
}

// Filter returns the current record filter, or nil.
func (l *Logger) Filter() Filter {
	if fb := l.filter.Load(); fb != nil {
		return fb.f
	}
	return nil
}

// SetObserver replaces the write observer. A nil observer disables it.
func (l *Logger) SetObserver(o Observer) {
	if o == nil {
		l.observer.Store(nil)
		return
	}
	l.observer.Store(&observerBox{o: o})
}

// Sync flushes the custom writer, if any.
func (l *Logger) Sync() error { return l.sink.sync() }

// Close flushes and closes a file opened by SetFile, Builder.File or
// Builder.RotatingFile. Lines logged afterwards are dropped and reported to
// the observer as ErrClosed.
func (l *Logger) Close() error { return l.sink.close() }

// Enabled reports whether a line at level would be emitted.
func (l *Logger) Enabled(level Level) bool {
	return StaticEnabled(level) && level >= l.Level()
}

// Emit writes msg at level with an explicit group and call site. It is the
// entry point for adapters that resolve their own caller.
func (l *Logger) Emit(level Level, group, file string, line int, msg string) {
	if !l.Enabled(level) {
		return
	}
	l.emit(level, group, file, line, msg, nil, false)
}

func (l *Logger) formatOptions() FormatOptions {
	return FormatOptions{
		Time:      l.showTime.Load(),
		LocalTime: l.localTime.Load(),
		ThreadID:  l.showThreadID.Load(),
		FileLine:  l.showFileLine.Load(),
		Group:     l.showGroup.Load(),
	}
}

func (l *Logger) useColor(t Target) bool {
	switch l.ColorMode() {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	default:
		return t != TargetWriter && isTerminal(t)
	}
}

// caller returns the trimmed file:line skip frames above its caller. It is
// resolved only when the file:line prefix is on or a filter may read it.
func (l *Logger) caller(skip int) (string, int) {
	if !l.WantsCaller() {
		return "", 0
	}
	_, file, line, ok := runtime.Caller(skip + 1)
	if !ok {
		return "???", 0
	}
	return TrimPath(file), line
}

// logf is shared by every leveled helper. Its depth relative to user code
// is fixed, so it always resolves the caller two frames up.
func (l *Logger) logf(level Level, group, format string, args []any, formatted bool) {
	if !l.Enabled(level) {
		return
	}
	file, line := l.caller(2)
	l.emit(level, group, file, line, format, args, formatted)
}

// emit builds the record, filters it and writes one line. When formatted is
// false, text is the literal message.
func (l *Logger) emit(level Level, group, file string, line int, text string, args []any, formatted bool) {
	opts := l.formatOptions()
	rec := Record{
		Time:  time.Now(),
		Level: level,
		Group: group,
		File:  file,
		Line:  line,
	}
	if opts.ThreadID {
		rec.GoroutineID = goroutineID()
	}

	if fb := l.filter.Load(); fb != nil {
		if formatted {
			text, formatted = fmt.Sprintf(text, args...), false
		}
		rec.Message = text
		if !fb.f.Allow(rec) {
			return
		}
	}

	color := l.useColor(l.sink.currentTarget())
	buf := make([]byte, 0, 96+len(text))
	buf = AppendPrefix(buf, rec, opts, color)
	buf = append(buf, ' ')
	if formatted {
		buf = fmt.Appendf(buf, text, args...)
	} else {
		buf = append(buf, text...)
	}
	for len(buf) > 0 && buf[len(buf)-1] == '\n' {
		buf = buf[:len(buf)-1]
	}
	buf = append(buf, '\n')
	l.write(level, buf)
}

func (l *Logger) write(level Level, buf []byte) {
	err := l.sink.write(buf)
	ob := l.observer.Load()
	if ob == nil {
		return
	}
	if err != nil {
		ob.o.WriteFailed(level, err)
		return
	}
	ob.o.LineWritten(level, len(buf))
}

// Trace logs msg at trace level.
func (l *Logger) Trace(msg string) {
	if StaticEnabled(LevelTrace) {
		l.logf(LevelTrace, "", msg, nil, false)
	}
}

// Tracef logs a formatted message at trace level.
func (l *Logger) Tracef(format string, args ...any) {
	if StaticEnabled(LevelTrace) {
		l.logf(LevelTrace, "", format, args, true)
	}
}

// Debug logs msg at debug level.
func (l *Logger) Debug(msg string) {
	if StaticEnabled(LevelDebug) {
		l.logf(LevelDebug, "", msg, nil, false)
	}
}

// Debugf logs a formatted message at debug level.
func (l *Logger) Debugf(format string, args ...any) {
	if StaticEnabled(LevelDebug) {
		l.logf(LevelDebug, "", format, args, true)
	}
}

// Info logs msg at info level.
func (l *Logger) Info(msg string) {
	l.logf(LevelInfo, "", msg, nil, false)
}

// Infof logs a formatted message at info level.
func (l *Logger) Infof(format string, args ...any) {
	l.logf(LevelInfo, "", format, args, true)
}

// Warn logs msg at warn level.
func (l *Logger) Warn(msg string) {
	l.logf(LevelWarn, "", msg, nil, false)
}

// Warnf logs a formatted message at warn level.
func (l *Logger) Warnf(format string, args ...any) {
	l.logf(LevelWarn, "", format, args, true)
}

// Error logs msg at error level.
func (l *Logger) Error(msg string) {
	l.logf(LevelError, "", msg, nil, false)
}

// Errorf logs a formatted message at error level.
func (l *Logger) Errorf(format string, args ...any) {
	l.logf(LevelError, "", format, args, true)
}

// Fatal logs msg at fatal level. It does not exit the process.
func (l *Logger) Fatal(msg string) {
	l.logf(LevelFatal, "", msg, nil, false)
}

// Fatalf logs a formatted message at fatal level. It does not exit the process.
func (l *Logger) Fatalf(format string, args ...any) {
	l.logf(LevelFatal, "", format, args, true)
}

// Group returns an Entry that tags every line with name.
func (l *Logger) Group(name string) Entry {
	return Entry{l: l, group: name}
}
