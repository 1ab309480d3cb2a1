// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package autofilter

import (
	"context"
	"fmt"
	"log/slog"
	"maps"
	"slices"

	ometric "go.opentelemetry.io/otel/metric"
	"golang.org/x/autofilter/internal/cell"
)

// A Table is the range of cells an [AutoFilter] applies to.
// Rows are numbered from 0 and exclude any header row.
type Table interface {
	Rows() int
	Cell(row, col int) (cell.Cell, error)
}

// An AutoFilter is a set of filtered columns of a table.
type AutoFilter struct {
	slog    *slog.Logger
	columns map[int]*Column

	evaluated ometric.Int64Counter
	hidden    ometric.Int64Counter
}

// New returns an AutoFilter with no filtered columns.
// It logs to lg and counts evaluated and hidden rows with
// instruments created from meter.
// New panics if the instruments cannot be created.
func New(lg *slog.Logger, meter ometric.Meter) *AutoFilter {
	af := &AutoFilter{
		slog:    lg,
		columns: make(map[int]*Column),
	}
	af.evaluated = af.newCounter(meter, "rows-evaluated", "number of rows an autofilter evaluated")
	af.hidden = af.newCounter(meter, "rows-hidden", "number of rows an autofilter hid")
	return af
}

func (af *AutoFilter) newCounter(meter ometric.Meter, name, description string) ometric.Int64Counter {
	c, err := meter.Int64Counter("autofilter/"+name, ometric.WithDescription(description))
	if err != nil {
		af.slog.Error("counter creation failed", "name", name)
		panic(err)
	}
	return c
}

// SetColumn sets the filters of column col to c.
// A nil c removes the column's filters.
func (af *AutoFilter) SetColumn(col int, c *Column) {
	if c == nil {
		delete(af.columns, col)
		return
	}
	af.columns[col] = c
}

// Column returns the filters of column col, or nil.
func (af *AutoFilter) Column(col int) *Column {
	return af.columns[col]
}

// Columns returns the filtered column numbers in increasing order.
func (af *AutoFilter) Columns() []int {
	return slices.Sorted(maps.Keys(af.columns))
}

// A Result lists the rows an [AutoFilter] shows and hides,
// each in increasing order.
type Result struct {
	Visible []int
	Hidden  []int
}

// Apply evaluates af over t.
// The statistics of every filtered column are computed before
// any row is evaluated. A row is shown if every filtered column
// matches its cell in that row.
func (af *AutoFilter) Apply(ctx context.Context, t Table) (*Result, error) {
	cols := af.Columns()
	rows := t.Rows()

	contexts := make(map[int]*ColumnContext, len(cols))
	for _, col := range cols {
		c := af.columns[col]
		if !c.needsContext() {
			contexts[col] = new(ColumnContext)
			continue
		}
		values := make([]cell.Value, 0, rows)
		for row := range rows {
			cl, err := t.Cell(row, col)
			if err != nil {
				return nil, fmt.Errorf("autofilter: row %d column %d: %w", row, col, err)
			}
			values = append(values, cl.Value())
		}
		cctx := c.Prepare(slices.Values(values))
		contexts[col] = cctx
		avg, _ := cctx.Average()
		thr, _ := cctx.TopBottomThreshold()
		af.slog.Debug("autofilter column prepared", "column", col, "average", avg, "threshold", thr)
	}

	res := new(Result)
	for row := range rows {
		show := true
		for _, col := range cols {
			cl, err := t.Cell(row, col)
			if err != nil {
				return nil, fmt.Errorf("autofilter: row %d column %d: %w", row, col, err)
			}
			ok, err := af.columns[col].Match(cl, contexts[col])
			if err != nil {
				return nil, fmt.Errorf("autofilter: row %d column %d: %w", row, col, err)
			}
			if !ok {
				show = false
				break
			}
		}
		if show {
			res.Visible = append(res.Visible, row)
		} else {
			res.Hidden = append(res.Hidden, row)
		}
	}

	af.evaluated.Add(ctx, int64(rows))
	af.hidden.Add(ctx, int64(len(res.Hidden)))
	af.slog.Info("autofilter applied", "columns", len(cols), "rows", rows, "hidden", len(res.Hidden))
	return res, nil
}
