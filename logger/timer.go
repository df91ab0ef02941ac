// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package logger

import (
	"sync"
	"sync/atomic"
	"time"
)

// Timer measures a scope and reports it once, at Info level, when stopped.
type Timer struct {
	l     *Logger
	label string
	file  string
	line  int
	start time.Time

	once    sync.Once
	elapsed atomic.Int64
}

// StartTimer starts a timer labelled label. The label becomes the group tag
// of the report line. Typical use:
//
//	defer lg.StartTimer("load").Stop()
func (l *Logger) StartTimer(label string) *Timer {
	return l.startTimer(label, 2)
}

// Time runs fn and reports how long it took, even if fn panics.
func (l *Logger) Time(label string, fn func()) {
	t := l.startTimer(label, 2)
	defer t.Stop()
	fn()
}

// TimeErr runs fn, reports how long it took and returns fn's error.
func (l *Logger) TimeErr(label string, fn func() error) error {
	t := l.startTimer(label, 2)
	defer t.Stop()
	return fn()
}

func (l *Logger) startTimer(label string, skip int) *Timer {
	file, line := l.caller(skip)
	return &Timer{l: l, label: label, file: file, line: line, start: time.Now()}
}

// Stop emits "took <duration>" for the timer. Only the first call does
// anything.
func (t *Timer) Stop() {
	t.once.Do(func() {
		elapsed := time.Since(t.start)
		t.elapsed.Store(int64(elapsed))
		if ob := t.l.observer.Load(); ob != nil {
			ob.o.TimerStopped(t.label, elapsed)
		}
		if !t.l.Enabled(LevelInfo) {
			return
		}
		msg := AppendHumanDuration(append(make([]byte, 0, 32), "took "...), elapsed)
		t.l.emit(LevelInfo, t.label, t.file, t.line, string(msg), nil, false)
	})
}

// Elapsed returns the measured duration, or zero before Stop.
func (t *Timer) Elapsed() time.Duration {
	return time.Duration(t.elapsed.Load())
}
