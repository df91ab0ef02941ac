// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package logger

import "strconv"

const secondsPerDay = 86_400

// civilFromDays converts days since 1970-01-01 into a proleptic Gregorian
// year, month and day. It is exact for every day count whose year fits in
// an int64 (Howard Hinnant's days_from_civil inverse).
func civilFromDays(days int64) (year int64, month, day int) {
	z := days + 719_468 // shift epoch to 0000-03-01
	era := z
	if z < 0 {
		era -= 146_096
	}
	era /= 146_097
	doe := z - era*146_097                                   // [0, 146096]
	yoe := (doe - doe/1_460 + doe/36_524 - doe/146_096) / 365 // [0, 399]
	doy := doe - (365*yoe + yoe/4 - yoe/100)                 // [0, 365]
	mp := (5*doy + 2) / 153                                  // [0, 11], March based
	d := doy - (153*mp+2)/5 + 1
	m := mp + 3
	if mp >= 10 {
		m = mp - 9
	}
	y := yoe + era*400
	if m <= 2 {
		y++
	}
	return y, int(m), int(d)
}

// floorDivMod returns the floored quotient and the non-negative remainder.
func floorDivMod(a, b int64) (q, r int64) {
	q, r = a/b, a%b
	if r < 0 {
		q--
		r += b
	}
	return q, r
}

// appendUTCTimestamp appends "YYYY-MM-DD HH:MM:SS.mmmZ " for the instant
// secs seconds plus millis milliseconds after the Unix epoch.
func appendUTCTimestamp(buf []byte, secs int64, millis int) []byte {
	days, sod := floorDivMod(secs, secondsPerDay)
	year, month, day := civilFromDays(days)

	buf = appendPadded(buf, year, 4)
	buf = append(buf, '-')
	buf = appendPadded(buf, int64(month), 2)
	buf = append(buf, '-')
	buf = appendPadded(buf, int64(day), 2)
	buf = append(buf, ' ')
	buf = appendPadded(buf, sod/3_600, 2)
	buf = append(buf, ':')
	buf = appendPadded(buf, sod%3_600/60, 2)
	buf = append(buf, ':')
	buf = appendPadded(buf, sod%60, 2)
	buf = append(buf, '.')
	buf = appendPadded(buf, int64(millis), 3)
	return append(buf, 'Z', ' ')
}

// appendPadded appends v in decimal, zero-padded to at least width digits.
// Negative values keep their sign in front of the padding.
func appendPadded(buf []byte, v int64, width int) []byte {
	u := uint64(v)
	if v < 0 {
		buf = append(buf, '-')
		u = uint64(-v)
	}
	var tmp [20]byte
	digits := strconv.AppendUint(tmp[:0], u, 10)
	for i := len(digits); i < width; i++ {
		buf = append(buf, '0')
	}
	return append(buf, digits...)
}
