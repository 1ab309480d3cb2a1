// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package autofilter

// A ColumnContext holds statistics of a whole column that
// some filters compare cells with.
// Each statistic is unset until its Set method is called;
// a filter needing an unset statistic reports [ErrContextNotReady]
// rather than comparing with a default.
// A nil *ColumnContext has no statistics.
type ColumnContext struct {
	average      float64
	threshold    float64
	hasAverage   bool
	hasThreshold bool
}

// SetAverage sets the column average, used by above/below
// average filters.
func (c *ColumnContext) SetAverage(avg float64) {
	c.average = avg
	c.hasAverage = true
}

// Average returns the column average and whether it is set.
func (c *ColumnContext) Average() (float64, bool) {
	if c == nil {
		return 0, false
	}
	return c.average, c.hasAverage
}

// SetTopBottomThreshold sets the value that top filters
// compare at or above and bottom filters at or below.
func (c *ColumnContext) SetTopBottomThreshold(v float64) {
	c.threshold = v
	c.hasThreshold = true
}

// TopBottomThreshold returns the top/bottom threshold
// and whether it is set.
func (c *ColumnContext) TopBottomThreshold() (float64, bool) {
	if c == nil {
		return 0, false
	}
	return c.threshold, c.hasThreshold
}
