// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package logger

import (
	"strconv"
	"strings"
	"time"
)

// Record is a single log event as seen by filters and the formatter.
type Record struct {
	Time        time.Time
	Level       Level
	Group       string
	File        string
	Line        int
	GoroutineID uint64
	Message     string
}

// FormatOptions selects the optional parts of the line prefix.
type FormatOptions struct {
	Time      bool
	LocalTime bool
	ThreadID  bool
	FileLine  bool
	Group     bool
}

// AppendPrefix appends the line prefix for rec to buf. Parts appear in a
// fixed order: timestamp, level tag, goroutine id, file:line, group.
func AppendPrefix(buf []byte, rec Record, opts FormatOptions, color bool) []byte {
	if opts.Time {
		buf = appendTimestamp(buf, rec.Time, opts.LocalTime)
	}

	if color {
		buf = append(buf, levelColor(rec.Level)...)
		buf = append(buf, rec.Level.tag()...)
		buf = append(buf, ansiReset...)
	} else {
		buf = append(buf, rec.Level.tag()...)
	}

	if opts.ThreadID {
		buf = append(buf, " ["...)
		buf = strconv.AppendUint(buf, rec.GoroutineID, 10)
		buf = append(buf, ']')
	}

	if opts.FileLine {
		buf = append(buf, " <"...)
		buf = append(buf, rec.File...)
		buf = append(buf, ':')
		buf = strconv.AppendInt(buf, int64(rec.Line), 10)
		buf = append(buf, '>')
	}

	if opts.Group && rec.Group != "" {
		buf = append(buf, " ["...)
		if color {
			buf = append(buf, ansiBold...)
			buf = append(buf, levelColor(rec.Level)...)
			buf = append(buf, rec.Group...)
			buf = append(buf, ansiReset...)
		} else {
			buf = append(buf, rec.Group...)
		}
		buf = append(buf, ']')
	}
	return buf
}

// AppendRecord appends the complete line for rec: prefix, one space, the
// message and exactly one newline. Trailing newlines in the message are
// dropped so a line never ends with a blank one.
func AppendRecord(buf []byte, rec Record, opts FormatOptions, color bool) []byte {
	buf = AppendPrefix(buf, rec, opts, color)
	buf = append(buf, ' ')
	buf = append(buf, strings.TrimRight(rec.Message, "\n")...)
	return append(buf, '\n')
}

func appendTimestamp(buf []byte, t time.Time, local bool) []byte {
	if !local {
		return appendUTCTimestamp(buf, t.Unix(), t.Nanosecond()/int(time.Millisecond))
	}
	t = t.In(time.Local)
	buf = t.AppendFormat(buf, "2006-01-02 15:04:05.000")
	return append(buf, ' ')
}
