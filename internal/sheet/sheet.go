// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package sheet stores worksheet cells in a [storage.DB].
//
// Each non-blank cell is one database entry keyed by
// (sheet name, row, column), so a sheet scans in row-major order.
// Cells that were never set read as blank.
// A [Sheet] implements the table view that autofilters evaluate.
package sheet

import (
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/autofilter/internal/cell"
	"golang.org/x/autofilter/internal/storage"
	"rsc.io/ordered"
)

// ErrCorrupt is returned when a stored cell record cannot be decoded.
var ErrCorrupt = errors.New("corrupt cell record")

const cellKind = "sheet.Cell"

// o is short for ordered.Encode.
func o(list ...any) []byte { return ordered.Encode(list...) }

// A Sheet is a named worksheet in a database.
// Many sheets can share one database.
type Sheet struct {
	slog *slog.Logger
	db   storage.DB
	name string
}

// New returns the sheet with the given name in db.
// The sheet exists as soon as a cell is set in it.
func New(lg *slog.Logger, db storage.DB, name string) *Sheet {
	return &Sheet{slog: lg, db: db, name: name}
}

// Name returns the sheet's name.
func (s *Sheet) Name() string { return s.name }

func (s *Sheet) key(row, col int) []byte {
	if row < 0 || col < 0 {
		panic(fmt.Sprintf("sheet: negative cell address (%d, %d)", row, col))
	}
	return o(cellKind, s.name, row, col)
}

// encode returns the stored record for v.
// Every record has the same shape: kind, text, number, format.
func encode(v cell.Value, format string) []byte {
	var (
		text string
		num  float64
	)
	switch v.Kind() {
	case cell.Text:
		text = v.Text()
	case cell.Boolean:
		if v.Bool() {
			num = 1
		}
	case cell.Error:
		num = float64(v.Error())
	case cell.Number, cell.DateTime, cell.TimeSpan:
		num = v.UnifiedNumber()
	}
	return o(int64(v.Kind()), text, num, format)
}

func decode(rec []byte) (cell.Value, string, error) {
	var (
		kind   int64
		text   string
		num    float64
		format string
	)
	if err := ordered.Decode(rec, &kind, &text, &num, &format); err != nil {
		return cell.Value{}, "", fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	switch cell.Kind(kind) {
	case cell.Blank:
		return cell.BlankValue(), format, nil
	case cell.Text:
		return cell.TextValue(text), format, nil
	case cell.Boolean:
		return cell.BoolValue(num != 0), format, nil
	case cell.Number:
		return cell.NumberValue(num), format, nil
	case cell.Error:
		return cell.ErrorValue(cell.ErrorCode(num)), format, nil
	case cell.DateTime:
		return cell.SerialValue(num), format, nil
	case cell.TimeSpan:
		return cell.SpanDaysValue(num), format, nil
	}
	return cell.Value{}, "", fmt.Errorf("%w: unknown kind %d", ErrCorrupt, kind)
}

// Set stores v with the number format code format at (row, col).
// Setting a blank value with no format deletes the cell.
func (s *Sheet) Set(row, col int, v cell.Value, format string) {
	if v.IsBlank() && format == "" {
		s.db.Delete(s.key(row, col))
		return
	}
	s.db.Set(s.key(row, col), encode(v, format))
}

// Get returns the value and number format code at (row, col).
// A cell that was never set is blank with the General format.
func (s *Sheet) Get(row, col int) (cell.Value, string, error) {
	rec, ok := s.db.Get(s.key(row, col))
	if !ok {
		return cell.BlankValue(), cell.General, nil
	}
	v, format, err := decode(rec)
	if err != nil {
		return cell.Value{}, "", fmt.Errorf("sheet %s (%d, %d): %w", s.name, row, col, err)
	}
	return v, format, nil
}

// Cell returns the cell at (row, col).
func (s *Sheet) Cell(row, col int) (cell.Cell, error) {
	v, format, err := s.Get(row, col)
	if err != nil {
		return nil, err
	}
	return &sheetCell{s: s, row: row, col: col, v: v, format: format}, nil
}

// A sheetCell is a cell read from a sheet.
type sheetCell struct {
	s        *Sheet
	row, col int
	v        cell.Value
	format   string
}

func (c *sheetCell) Value() cell.Value { return c.v }

func (c *sheetCell) FormattedString() (string, error) {
	str, err := cell.Format(c.v, c.format)
	if err != nil {
		return "", fmt.Errorf("sheet %s (%d, %d): %w", c.s.name, c.row, c.col, err)
	}
	return str, nil
}

// Dims returns the number of rows and columns spanned by the
// stored cells, counting from row and column 0.
func (s *Sheet) Dims() (rows, cols int) {
	for key := range s.db.Scan(o(cellKind, s.name), o(cellKind, s.name, ordered.Inf)) {
		var row, col int
		if err := ordered.Decode(key, nil, nil, &row, &col); err != nil {
			s.db.Panic("sheet dims decode", "key", storage.Fmt(key), "err", err)
		}
		rows = max(rows, row+1)
		cols = max(cols, col+1)
	}
	return rows, cols
}

// Clear deletes every cell in the sheet.
func (s *Sheet) Clear() {
	s.db.DeleteRange(o(cellKind, s.name), o(cellKind, s.name, ordered.Inf))
}

// Row returns the cells of row in columns 0 through cols-1.
func (s *Sheet) Row(row, cols int) ([]cell.Cell, error) {
	cells := make([]cell.Cell, cols)
	for col := range cols {
		c, err := s.Cell(row, col)
		if err != nil {
			return nil, err
		}
		cells[col] = c
	}
	return cells, nil
}

// Table returns a view of the sheet starting at row first,
// so that row 0 of the table is row first of the sheet.
// Rows above first (a header, say) are not filtered.
// The view's extent is fixed when Table is called.
func (s *Sheet) Table(first int) *Table {
	rows, _ := s.Dims()
	return &Table{s: s, first: first, rows: max(rows-first, 0)}
}

// A Table is a range of rows of a [Sheet].
type Table struct {
	s     *Sheet
	first int
	rows  int
}

// Rows returns the number of rows in the table.
func (t *Table) Rows() int { return t.rows }

// Cell returns the cell at (row, col) of the table.
func (t *Table) Cell(row, col int) (cell.Cell, error) {
	return t.s.Cell(t.first+row, col)
}

// SheetRow returns the sheet row number of table row row.
func (t *Table) SheetRow(row int) int { return t.first + row }
