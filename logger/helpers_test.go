// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package logger

import (
	"bytes"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// lockedBuffer is a bytes.Buffer that can be read while loggers write to it.
type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *lockedBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func (b *lockedBuffer) Lines() []string {
	s := strings.TrimSuffix(b.String(), "\n")
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}

func (b *lockedBuffer) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.buf.Reset()
}

// newBufferLogger builds a logger writing into a fresh buffer. configure may
// adjust the builder before the writer is attached.
func newBufferLogger(t *testing.T, configure func(*Builder)) (*Logger, *lockedBuffer) {
	t.Helper()
	buf := &lockedBuffer{}
	b := NewBuilder()
	if configure != nil {
		configure(b)
	}
	lg, err := b.Writer(buf).Build()
	require.NoError(t, err)
	return lg, buf
}

type recordingObserver struct {
	mu      sync.Mutex
	written map[Level]int
	bytes   int
	failed  []error
	timers  map[string]time.Duration
}

func newRecordingObserver() *recordingObserver {
	return &recordingObserver{written: map[Level]int{}, timers: map[string]time.Duration{}}
}

func (o *recordingObserver) LineWritten(level Level, n int) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.written[level]++
	o.bytes += n
}

func (o *recordingObserver) WriteFailed(_ Level, err error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.failed = append(o.failed, err)
}

func (o *recordingObserver) TimerStopped(label string, elapsed time.Duration) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.timers[label] = elapsed
}

type filterFunc func(Record) bool

func (f filterFunc) Allow(rec Record) bool { return f(rec) }
