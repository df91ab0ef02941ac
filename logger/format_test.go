// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package logger

import (
	"math"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAppendRecord(t *testing.T) {
	t.Parallel()

	leapDay := time.Unix(951_782_400, 123_000_000) // 2000-02-29 00:00:00.123 UTC

	tests := []struct {
		name  string
		rec   Record
		opts  FormatOptions
		color bool
		want  string
	}{
		{
			name: "bare level tag",
			rec:  Record{Level: LevelInfo, Message: "hello"},
			want: "INFO  hello\n",
		},
		{
			name: "every part in fixed order",
			rec: Record{
				Time: leapDay, Level: LevelWarn, Group: "net",
				File: "pkg/f.go", Line: 7, GoroutineID: 42, Message: "slow",
			},
			opts: FormatOptions{Time: true, ThreadID: true, FileLine: true, Group: true},
			want: "2000-02-29 00:00:00.123Z WARN  [42] <pkg/f.go:7> [net] slow\n",
		},
		{
			name: "group hidden when toggle is off",
			rec:  Record{Level: LevelDebug, Group: "net", Message: "m"},
			want: "DEBUG m\n",
		},
		{
			name: "empty group omitted",
			rec:  Record{Level: LevelError, Message: "m"},
			opts: FormatOptions{Group: true},
			want: "ERROR m\n",
		},
		{
			name:  "color wraps tag and group",
			rec:   Record{Level: LevelError, Group: "db", Message: "boom"},
			opts:  FormatOptions{Group: true},
			color: true,
			want:  "\x1b[31mERROR\x1b[0m [\x1b[1m\x1b[31mdb\x1b[0m] boom\n",
		},
		{
			name: "trailing newlines collapse to one",
			rec:  Record{Level: LevelFatal, Message: "done\n\n\n"},
			want: "FATAL done\n",
		},
		{
			name: "empty message",
			rec:  Record{Level: LevelTrace},
			want: "TRACE \n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := AppendRecord(nil, tt.rec, tt.opts, tt.color)
			assert.Equal(t, tt.want, string(got))
		})
	}
}

func TestAppendPrefix_AppendsToExistingBuffer(t *testing.T) {
	t.Parallel()

	buf := []byte("keep:")
	buf = AppendPrefix(buf, Record{Level: LevelInfo}, FormatOptions{}, false)
	assert.Equal(t, "keep:INFO ", string(buf))
}

func TestAppendPrefix_LocalTime(t *testing.T) {
	t.Parallel()

	ts := time.Date(2024, 6, 1, 12, 30, 45, 250_000_000, time.UTC)
	got := string(AppendPrefix(nil, Record{Time: ts, Level: LevelInfo}, FormatOptions{Time: true, LocalTime: true}, false))

	want := ts.In(time.Local).Format("2006-01-02 15:04:05.000") + " INFO "
	assert.Equal(t, want, got)
	assert.NotContains(t, got, "Z ")
}

func TestAppendUTCTimestamp(t *testing.T) {
	t.Parallel()

	tests := []struct {
		secs   int64
		millis int
		want   string
	}{
		{0, 0, "1970-01-01 00:00:00.000Z "},
		{-1, 999, "1969-12-31 23:59:59.999Z "},
		{951_782_400, 5, "2000-02-29 00:00:00.005Z "},
		{1_700_000_000, 42, "2023-11-14 22:13:20.042Z "},
		{2_932_897 * secondsPerDay, 0, "10000-01-01 00:00:00.000Z "},
	}

	for _, tt := range tests {
		t.Run(strings.TrimSpace(tt.want), func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, string(appendUTCTimestamp(nil, tt.secs, tt.millis)))
		})
	}
}

func TestCivilFromDaysMatchesTimePackage(t *testing.T) {
	t.Parallel()

	for days := int64(-800_000); days <= 800_000; days += 997 {
		wantY, wantM, wantD := time.Unix(days*secondsPerDay, 0).UTC().Date()
		y, m, d := civilFromDays(days)
		if y != int64(wantY) || m != int(wantM) || d != wantD {
			t.Fatalf("civilFromDays(%d) = %d-%d-%d, want %d-%d-%d", days, y, m, d, wantY, wantM, wantD)
		}
	}
}

func TestCivilFromDaysExtremes(t *testing.T) {
	t.Parallel()

	// Must not panic anywhere in the int64 seconds range.
	assert.NotPanics(t, func() {
		appendUTCTimestamp(nil, math.MaxInt64, 0)
		appendUTCTimestamp(nil, math.MinInt64, 0)
	})
}

func TestAppendPadded(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "007", string(appendPadded(nil, 7, 3)))
	assert.Equal(t, "1234", string(appendPadded(nil, 1234, 2)))
	assert.Equal(t, "-05", string(appendPadded(nil, -5, 2)))
	assert.Equal(t, "-9223372036854775808", string(appendPadded(nil, math.MinInt64, 4)))
}

func TestTrimPath(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "logger/format.go", TrimPath("/src/linelog/logger/format.go"))
	assert.Equal(t, "a/b.go", TrimPath("a/b.go"))
	assert.Equal(t, "b.go", TrimPath("b.go"))
}
