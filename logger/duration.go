// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package logger

import (
	"strconv"
	"time"
)

// HumanDuration renders d at a scale that suits its magnitude:
//
//	500ns          -> "500 ns"
//	1.5µs          -> "1 us"
//	1.234ms        -> "1.234 ms"
//	1.234s         -> "1.234 s"
//	65s            -> "1m05.000s"
//	3h7m5s         -> "3h07m05.000s"
//	48h0m5s        -> "2d 00h00m05.000s"
//
// Negative durations are treated as zero.
func HumanDuration(d time.Duration) string {
	return string(AppendHumanDuration(make([]byte, 0, 24), d))
}

// AppendHumanDuration appends the HumanDuration rendering of d to buf.
func AppendHumanDuration(buf []byte, d time.Duration) []byte {
	if d < 0 {
		d = 0
	}
	ns := int64(d)
	secs := ns / int64(time.Second)
	sub := ns % int64(time.Second)
	ms := sub / int64(time.Millisecond)

	switch {
	case ns < 1_000:
		buf = strconv.AppendInt(buf, ns, 10)
		return append(buf, " ns"...)
	case ns < 1_000_000:
		buf = strconv.AppendInt(buf, ns/1_000, 10)
		return append(buf, " us"...)
	case secs == 0:
		buf = strconv.AppendInt(buf, ms, 10)
		buf = append(buf, '.')
		buf = appendPadded(buf, sub/1_000%1_000, 3)
		return append(buf, " ms"...)
	case secs < 60:
		buf = strconv.AppendInt(buf, secs, 10)
		buf = append(buf, '.')
		buf = appendPadded(buf, ms, 3)
		return append(buf, " s"...)
	case secs < 3_600:
		buf = strconv.AppendInt(buf, secs/60, 10)
		buf = append(buf, 'm')
		return appendSecondsMillis(buf, secs%60, ms)
	case secs < secondsPerDay:
		buf = strconv.AppendInt(buf, secs/3_600, 10)
		buf = append(buf, 'h')
		buf = appendPadded(buf, secs%3_600/60, 2)
		buf = append(buf, 'm')
		return appendSecondsMillis(buf, secs%60, ms)
	default:
		rem := secs % secondsPerDay
		buf = strconv.AppendInt(buf, secs/secondsPerDay, 10)
		buf = append(buf, "d "...)
		buf = appendPadded(buf, rem/3_600, 2)
		buf = append(buf, 'h')
		buf = appendPadded(buf, rem%3_600/60, 2)
		buf = append(buf, 'm')
		return appendSecondsMillis(buf, rem%60, ms)
	}
}

// appendSecondsMillis appends "SS.mmms".
func appendSecondsMillis(buf []byte, s, ms int64) []byte {
	buf = appendPadded(buf, s, 2)
	buf = append(buf, '.')
	buf = appendPadded(buf, ms, 3)
	return append(buf, 's')
}
