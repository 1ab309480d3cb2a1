// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sheet

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/autofilter/internal/cell"
	"golang.org/x/autofilter/internal/storage"
	"golang.org/x/autofilter/internal/testutil"
)

func TestSetGet(t *testing.T) {
	db := storage.MemDB()
	s := New(testutil.Slogger(t), db, "budget")

	vals := []struct {
		v      cell.Value
		format string
	}{
		{cell.TextValue("Apple"), cell.General},
		{cell.NumberValue(-12.5), "#,##0.00"},
		{cell.BoolValue(true), cell.General},
		{cell.BoolValue(false), cell.General},
		{cell.ErrorValue(cell.DivisionByZero), cell.General},
		{cell.DateTimeValue(time.Date(2024, 3, 15, 8, 30, 0, 0, time.UTC)), "yyyy-mm-dd hh:mm"},
		{cell.TimeSpanValue(90 * time.Minute), cell.General},
		{cell.BlankValue(), "0.00"},
	}
	for i, tt := range vals {
		s.Set(i, 1, tt.v, tt.format)
	}
	for i, tt := range vals {
		v, format, err := s.Get(i, 1)
		testutil.Check(t, err)
		if v != tt.v || format != tt.format {
			t.Errorf("Get(%d, 1) = %v, %q, want %v, %q", i, v, format, tt.v, tt.format)
		}
	}

	v, format, err := s.Get(100, 100)
	testutil.Check(t, err)
	if !v.IsBlank() || format != cell.General {
		t.Errorf("Get(unset) = %v, %q, want blank, General", v, format)
	}

	// Another sheet in the same database is independent.
	other := New(testutil.Slogger(t), db, "budget2")
	if rows, cols := other.Dims(); rows != 0 || cols != 0 {
		t.Errorf("other.Dims() = %d, %d, want 0, 0", rows, cols)
	}
	if rows, cols := s.Dims(); rows != len(vals) || cols != 2 {
		t.Errorf("Dims() = %d, %d, want %d, 2", rows, cols, len(vals))
	}

	// Setting a blank with no format deletes the cell.
	s.Set(len(vals)-1, 1, cell.BlankValue(), "")
	if rows, _ := s.Dims(); rows != len(vals)-1 {
		t.Errorf("Dims() rows after delete = %d, want %d", rows, len(vals)-1)
	}

	s.Clear()
	if rows, cols := s.Dims(); rows != 0 || cols != 0 {
		t.Errorf("Dims() after Clear = %d, %d, want 0, 0", rows, cols)
	}
}

func TestCell(t *testing.T) {
	s := New(testutil.Slogger(t), storage.MemDB(), "s")
	s.Set(0, 0, cell.NumberValue(0.125), "0.0%")
	s.Set(0, 1, cell.NumberValue(1), "bogus")

	c, err := s.Cell(0, 0)
	testutil.Check(t, err)
	if v := c.Value(); v != cell.NumberValue(0.125) {
		t.Errorf("Value() = %v, want 0.125", v)
	}
	str, err := c.FormattedString()
	testutil.Check(t, err)
	if str != "12.5%" {
		t.Errorf("FormattedString() = %q, want %q", str, "12.5%")
	}

	c, err = s.Cell(0, 1)
	testutil.Check(t, err)
	if _, err := c.FormattedString(); !errors.Is(err, cell.ErrUnsupportedFormat) {
		t.Errorf("FormattedString() error = %v, want %v", err, cell.ErrUnsupportedFormat)
	}
}

func TestCorrupt(t *testing.T) {
	db := storage.MemDB()
	s := New(testutil.Slogger(t), db, "s")
	db.Set(s.key(2, 3), []byte("garbage"))
	if _, _, err := s.Get(2, 3); !errors.Is(err, ErrCorrupt) {
		t.Errorf("Get(corrupt) error = %v, want %v", err, ErrCorrupt)
	}
	if _, err := s.Cell(2, 3); !errors.Is(err, ErrCorrupt) {
		t.Errorf("Cell(corrupt) error = %v, want %v", err, ErrCorrupt)
	}
	db.Set(s.key(2, 3), o(int64(99), "", 0.0, ""))
	if _, _, err := s.Get(2, 3); !errors.Is(err, ErrCorrupt) {
		t.Errorf("Get(unknown kind) error = %v, want %v", err, ErrCorrupt)
	}
}

func TestTable(t *testing.T) {
	s := New(testutil.Slogger(t), storage.MemDB(), "s")
	_, _, err := s.LoadCSV(strings.NewReader("Name,Qty\nApple,3\nPear,\n"))
	testutil.Check(t, err)

	tab := s.Table(1)
	if n := tab.Rows(); n != 2 {
		t.Fatalf("Rows() = %d, want 2", n)
	}
	var got []cell.Value
	for row := range tab.Rows() {
		for col := range 2 {
			c, err := tab.Cell(row, col)
			testutil.Check(t, err)
			got = append(got, c.Value())
		}
	}
	want := []cell.Value{
		cell.TextValue("Apple"), cell.NumberValue(3),
		cell.TextValue("Pear"), cell.BlankValue(),
	}
	if diff := cmp.Diff(want, got, cmp.Comparer(func(x, y cell.Value) bool { return x == y })); diff != "" {
		t.Errorf("table cells mismatch (-want +got):\n%s", diff)
	}
	if r := tab.SheetRow(1); r != 2 {
		t.Errorf("SheetRow(1) = %d, want 2", r)
	}
	if n := s.Table(10).Rows(); n != 0 {
		t.Errorf("Table(10).Rows() = %d, want 0", n)
	}

	cells, err := s.Row(0, 2)
	testutil.Check(t, err)
	if v := cells[1].Value(); v != cell.TextValue("Qty") {
		t.Errorf("Row(0)[1] = %v, want Qty", v)
	}
}

func TestLoadCSV(t *testing.T) {
	lg, buf := testutil.SlogBuffer()
	s := New(lg, storage.MemDB(), "fruit")
	s.Set(50, 50, cell.TextValue("stale"), "")

	rows, cols, err := s.LoadCSV(strings.NewReader(
		"Apple,10,2024-03-15,TRUE,#N/A,12.5%\n" +
			"\"Banana, ripe\",-1.5e2\n"))
	testutil.Check(t, err)
	if rows != 2 || cols != 6 {
		t.Errorf("LoadCSV = %d, %d, want 2, 6", rows, cols)
	}
	if r, c := s.Dims(); r != 2 || c != 6 {
		t.Errorf("Dims() = %d, %d, want 2, 6 (old contents not cleared?)", r, c)
	}
	testutil.ExpectLog(t, buf, "sheet loaded", 1)

	c, err := s.Cell(0, 5)
	testutil.Check(t, err)
	if str, _ := c.FormattedString(); str != "12.5%" {
		t.Errorf("percent cell displays %q, want %q", str, "12.5%")
	}
	c, err = s.Cell(0, 2)
	testutil.Check(t, err)
	if str, _ := c.FormattedString(); str != "2024-03-15" {
		t.Errorf("date cell displays %q, want %q", str, "2024-03-15")
	}
	c, err = s.Cell(1, 0)
	testutil.Check(t, err)
	if v := c.Value(); v != cell.TextValue("Banana, ripe") {
		t.Errorf("quoted cell = %v, want %q", v, "Banana, ripe")
	}

	if _, _, err := s.LoadCSV(strings.NewReader("a,\"b\n")); err == nil {
		t.Errorf("LoadCSV(unterminated quote) succeeded")
	}
}

func TestLoadCSVBadInputKeepsSheet(t *testing.T) {
	s := New(testutil.Slogger(t), storage.MemDB(), "fruit")
	_, _, err := s.LoadCSV(strings.NewReader("Apple,10\nBanana,5\n"))
	testutil.Check(t, err)

	// The first rows are valid; the error comes at the end.
	_, _, err = s.LoadCSV(strings.NewReader("Cherry,15\nDate,3\nFig,\"7\n"))
	if err == nil {
		t.Fatalf("LoadCSV(unterminated quote) succeeded")
	}
	if rows, cols := s.Dims(); rows != 2 || cols != 2 {
		t.Errorf("Dims() after failed load = %d, %d, want 2, 2", rows, cols)
	}
	v, _, err := s.Get(0, 0)
	testutil.Check(t, err)
	if v != cell.TextValue("Apple") {
		t.Errorf("Get(0, 0) after failed load = %v, want Apple", v)
	}
}

func TestInfer(t *testing.T) {
	for _, tt := range []struct {
		field  string
		v      cell.Value
		format string
	}{
		{"", cell.BlankValue(), cell.General},
		{"true", cell.BoolValue(true), cell.General},
		{"FALSE", cell.BoolValue(false), cell.General},
		{"#DIV/0!", cell.ErrorValue(cell.DivisionByZero), cell.General},
		{"42", cell.NumberValue(42), cell.General},
		{" 3.5 ", cell.NumberValue(3.5), cell.General},
		{"50%", cell.NumberValue(0.5), "0%"},
		{"2.25%", cell.NumberValue(0.0225), "0.00%"},
		{"2024-02-29", cell.DateTimeValue(time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC)), "yyyy-mm-dd"},
		{"2024-02-29 13:45:00", cell.DateTimeValue(time.Date(2024, 2, 29, 13, 45, 0, 0, time.UTC)), "yyyy-mm-dd hh:mm:ss"},
		{"NaN", cell.TextValue("NaN"), cell.General},
		{"Inf", cell.TextValue("Inf"), cell.General},
		{"0x1F", cell.TextValue("0x1F"), cell.General},
		{"2024-13-01", cell.TextValue("2024-13-01"), cell.General},
		{"hello", cell.TextValue("hello"), cell.General},
	} {
		v, format := Infer(tt.field)
		if v != tt.v || format != tt.format {
			t.Errorf("Infer(%q) = %v, %q, want %v, %q", tt.field, v, format, tt.v, tt.format)
		}
	}
}
