// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package autofilter

import (
	"cmp"
	"time"

	"golang.org/x/autofilter/internal/cell"
)

// compareValues reports whether cv op fv holds,
// comparing text with compareText.
// The rules are documented at [Filter.Evaluate].
func compareValues(cv cell.Value, op Operator, fv cell.Value, compareText func(a, b string) int) bool {
	if cv.IsBlank() {
		cv = cell.TextValue("")
	}
	if fv.IsBlank() {
		fv = cell.TextValue("")
	}
	if cv.Kind() != fv.Kind() && !(cv.IsUnifiedNumber() && fv.IsUnifiedNumber()) {
		return false
	}

	var c int
	switch cv.Kind() {
	case cell.Text:
		c = compareText(cv.Text(), fv.Text())
	case cell.Boolean:
		c = compareBool(cv.Bool(), fv.Bool())
	case cell.Error:
		c = cmp.Compare(cv.Error(), fv.Error())
	default:
		c = cmp.Compare(cv.UnifiedNumber(), fv.UnifiedNumber())
	}
	return op.holds(c)
}

func compareBool(x, y bool) int {
	switch {
	case x == y:
		return 0
	case y:
		return -1
	default:
		return +1
	}
}

// sameGroup reports whether a and b agree in every date and
// time component from the year down to the grouping g.
func sameGroup(a, b time.Time, g Grouping) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	switch {
	case ay != by:
		return false
	case g >= Month && am != bm:
		return false
	case g >= Day && ad != bd:
		return false
	case g >= Hour && a.Hour() != b.Hour():
		return false
	case g >= Minute && a.Minute() != b.Minute():
		return false
	case g >= Second && a.Second() != b.Second():
		return false
	}
	return true
}
