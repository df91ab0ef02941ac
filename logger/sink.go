// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package logger

import (
	"errors"
	"io"
	"os"
	"sync"
	"sync/atomic"

	"go.uber.org/zap/zapcore"
	"golang.org/x/term"
)

// ErrNoWriter is reported to observers when the writer target is selected
// but no writer was ever installed. The line is dropped.
var ErrNoWriter = errors.New("writer target selected but no writer installed")

// ErrClosed is reported to observers for lines written after Close.
var ErrClosed = errors.New("log writer is closed")

// Standard streams are shared by every logger in the process, so each gets
// a single process-wide lock.
var (
	stdoutSyncer = zapcore.Lock(os.Stdout)
	stderrSyncer = zapcore.Lock(os.Stderr)

	isTerminal = func(t Target) bool {
		switch t {
		case TargetStdout:
			return term.IsTerminal(int(os.Stdout.Fd()))
		case TargetStderr:
			return term.IsTerminal(int(os.Stderr.Fd()))
		default:
			return false
		}
	}
)

// installedWriter is a custom writer behind its own lock. closer is set
// only when the logger opened the underlying file itself.
type installedWriter struct {
	ws     zapcore.WriteSyncer
	closer io.Closer
}

// sink owns the destination of one logger. target and writer are one-time
// cells: the first store wins and every later store is ignored.
type sink struct {
	mu     sync.Mutex
	target atomic.Uint32 // 0 while unset, otherwise Target+1
	writer atomic.Pointer[installedWriter]
	closed bool // guarded by mu
}

func (s *sink) setTarget(t Target) bool {
	return s.target.CompareAndSwap(0, uint32(t)+1)
}

// currentTarget returns the latched target, or stderr while none is latched.
// Reading does not latch.
func (s *sink) currentTarget() Target {
	v := s.target.Load()
	if v == 0 {
		return TargetStderr
	}
	return Target(v - 1)
}

func (s *sink) latched() bool {
	return s.target.Load() != 0
}

func (s *sink) hasWriter() bool {
	return s.writer.Load() != nil
}

// install stores w as the custom writer and selects TargetWriter if no
// target was latched yet. It reports whether w was installed. A nil w
// changes nothing.
func (s *sink) install(w io.Writer, closer io.Closer) bool {
	if w == nil {
		return false
	}
	iw := &installedWriter{ws: zapcore.Lock(zapcore.AddSync(w)), closer: closer}
	ok := s.writer.CompareAndSwap(nil, iw)
	s.setTarget(TargetWriter)
	return ok
}

// write sends p to the current destination in a single Write call while
// holding the sink lock.
func (s *sink) write(p []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var err error
	switch s.currentTarget() {
	case TargetStdout:
		_, err = stdoutSyncer.Write(p)
	case TargetStderr:
		_, err = stderrSyncer.Write(p)
	case TargetWriter:
		iw := s.writer.Load()
		if iw == nil {
			return ErrNoWriter
		}
		if s.closed {
			return ErrClosed
		}
		_, err = iw.ws.Write(p)
	}
	return err
}

func (s *sink) sync() error {
	iw := s.writer.Load()
	if iw == nil {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	return iw.ws.Sync()
}

func (s *sink) close() error {
	iw := s.writer.Load()
	if iw == nil || iw.closer == nil {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	return errors.Join(iw.ws.Sync(), iw.closer.Close())
}
