// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package autofilter

import (
	"iter"
	"slices"

	"golang.org/x/autofilter/internal/cell"
)

// A Column is the set of filters on one column of a table.
type Column struct {
	// Unit is how the amounts of top/bottom filters are counted.
	Unit Unit

	filters []*Filter
}

// NewColumn returns a column holding filters, in order.
func NewColumn(filters ...*Filter) *Column {
	return &Column{filters: slices.Clone(filters)}
}

// Add appends f to the filters of c.
func (c *Column) Add(f *Filter) {
	c.filters = append(c.filters, f)
}

// Filters returns the filters of c, in order.
func (c *Column) Filters() []*Filter {
	return slices.Clone(c.filters)
}

// needsContext reports whether some filter of c depends on
// column statistics.
func (c *Column) needsContext() bool {
	for _, f := range c.filters {
		switch f.Kind() {
		case TopBottom, Average:
			return true
		}
	}
	return false
}

// Prepare returns the [ColumnContext] that the filters of c need,
// computed from values, the values of every cell in the column.
// Only the statistics some filter uses are set.
// If c has more than one top/bottom filter, the first one
// determines the threshold.
func (c *Column) Prepare(values iter.Seq[cell.Value]) *ColumnContext {
	ctx := new(ColumnContext)
	if !c.needsContext() {
		return ctx
	}
	nums := numbers(values)
	thresholdSet := false
	for _, f := range c.filters {
		switch cond := f.cond.(type) {
		case *averageCond:
			ctx.SetAverage(average(nums))
		case *topBottomCond:
			if !thresholdSet {
				ctx.SetTopBottomThreshold(threshold(nums, cond.takeTop, cond.amount, c.Unit))
				thresholdSet = true
			}
		}
	}
	return ctx
}

// Match reports whether the filters of c accept cl.
// The filters are folded left to right: each filter after the
// first combines with the result so far using its own connector,
// so f1, And f2, Or f3 means (f1 && f2) || f3.
// A column with no filters accepts every cell.
// Filters whose result cannot change the outcome are not evaluated.
func (c *Column) Match(cl cell.Cell, ctx *ColumnContext) (bool, error) {
	ok := true
	for i, f := range c.filters {
		if i > 0 {
			switch f.Connector() {
			case And:
				if !ok {
					continue
				}
			case Or:
				if ok {
					continue
				}
			}
		}
		m, err := f.Evaluate(cl, ctx)
		if err != nil {
			return false, err
		}
		ok = m
	}
	return ok, nil
}
