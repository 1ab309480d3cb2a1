// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cell

import (
	"math"
	"time"
)

// unixEpochSerial is the serial of 1970-01-01T00:00:00.
const unixEpochSerial = 25569

const msPerDay = 24 * 60 * 60 * 1000

// Serial returns the serial number of the wall clock time of t:
// the number of days since 1899-12-30, with the time of day
// as the fractional part. This is the OLE automation date
// numbering used by spreadsheets.
// Precision is limited to milliseconds.
func Serial(t time.Time) float64 {
	y, mo, d := t.Date()
	h, mi, s := t.Clock()
	wall := time.Date(y, mo, d, h, mi, s, t.Nanosecond(), time.UTC)
	return float64(wall.UnixMilli())/msPerDay + unixEpochSerial
}

// FromSerial returns the UTC time for a serial number,
// rounded to the nearest millisecond.
func FromSerial(serial float64) time.Time {
	ms := math.Round((serial - unixEpochSerial) * msPerDay)
	return time.UnixMilli(int64(ms)).UTC()
}
