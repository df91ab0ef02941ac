// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package logger

import (
	"errors"
	"fmt"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tookLine = `^INFO  \[%s\] took \d+(\.\d{3})? (ns|us|ms|s)$`

func TestTimer_EmitsOnceOnScopeExit(t *testing.T) {
	t.Parallel()

	lg, buf := newBufferLogger(t, nil)

	func() {
		defer lg.StartTimer("work").Stop()
		lg.Info("inside")
		assert.Equal(t, []string{"INFO  inside"}, buf.Lines(), "nothing is emitted before release")
	}()

	lines := buf.Lines()
	require.Len(t, lines, 2)
	assert.Regexp(t, fmt.Sprintf(tookLine, "work"), lines[1])
}

func TestTimer_EarlyReturn(t *testing.T) {
	t.Parallel()

	lg, buf := newBufferLogger(t, nil)

	work := func(fail bool) error {
		defer lg.StartTimer("early").Stop()
		if fail {
			return errors.New("bail")
		}
		lg.Info("finished")
		return nil
	}

	require.Error(t, work(true))
	lines := buf.Lines()
	require.Len(t, lines, 1)
	assert.Regexp(t, fmt.Sprintf(tookLine, "early"), lines[0])
}

func TestTimer_StopIsIdempotent(t *testing.T) {
	t.Parallel()

	lg, buf := newBufferLogger(t, nil)
	timer := lg.StartTimer("twice")
	assert.Zero(t, timer.Elapsed())

	time.Sleep(time.Millisecond)
	timer.Stop()
	timer.Stop()

	assert.Len(t, buf.Lines(), 1)
	assert.GreaterOrEqual(t, timer.Elapsed(), time.Millisecond)
}

func TestLogger_Time(t *testing.T) {
	t.Parallel()

	lg, buf := newBufferLogger(t, nil)

	ran := false
	lg.Time("block", func() { ran = true })
	assert.True(t, ran)

	assert.Panics(t, func() {
		lg.Time("panicky", func() { panic("boom") })
	})

	lines := buf.Lines()
	require.Len(t, lines, 2)
	assert.Regexp(t, fmt.Sprintf(tookLine, "block"), lines[0])
	assert.Regexp(t, fmt.Sprintf(tookLine, "panicky"), lines[1])
}

func TestLogger_TimeErr(t *testing.T) {
	t.Parallel()

	lg, buf := newBufferLogger(t, nil)
	sentinel := errors.New("failed")

	err := lg.TimeErr("op", func() error { return sentinel })
	require.ErrorIs(t, err, sentinel)
	require.NoError(t, lg.TimeErr("op", func() error { return nil }))

	assert.Len(t, buf.Lines(), 2)
}

func TestTimer_RespectsLevelAndNotifiesObserver(t *testing.T) {
	t.Parallel()

	obs := newRecordingObserver()
	lg, buf := newBufferLogger(t, func(b *Builder) { b.Level(LevelWarn).Observer(obs) })

	lg.Time("quiet", func() { time.Sleep(time.Millisecond) })

	assert.Empty(t, buf.String())
	assert.GreaterOrEqual(t, obs.timers["quiet"], time.Millisecond)
}

func TestTimer_ReportsCreatorLocation(t *testing.T) {
	t.Parallel()

	lg, buf := newBufferLogger(t, func(b *Builder) { b.ShowFileLine(true) })

	_, _, line, _ := runtime.Caller(0)
	timer := lg.StartTimer("site")
	timer.Stop()

	assert.Contains(t, buf.String(), fmt.Sprintf("<logger/timer_test.go:%d> [site] took ", line+1))
}
