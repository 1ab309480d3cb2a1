// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sheet

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"golang.org/x/autofilter/internal/cell"
)

// LoadCSV replaces the contents of the sheet with the records read from r,
// one record per row, and returns the number of rows and columns loaded.
// Each field becomes the most specific value it parses as;
// see [Infer].
// The whole input is read before the sheet is changed, so if r
// is not valid CSV the sheet keeps its previous contents.
func (s *Sheet) LoadCSV(r io.Reader) (rows, cols int, err error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	recs, err := cr.ReadAll()
	if err != nil {
		return 0, 0, fmt.Errorf("sheet %s: load csv: %w", s.name, err)
	}

	s.Clear()
	b := s.db.Batch()
	for row, rec := range recs {
		for col, field := range rec {
			v, format := Infer(field)
			if v.IsBlank() {
				continue
			}
			b.Set(s.key(row, col), encode(v, format))
		}
		cols = max(cols, len(rec))
		b.MaybeApply()
	}
	rows = len(recs)
	b.Apply()
	s.slog.Info("sheet loaded", "sheet", s.name, "rows", rows, "cols", cols)
	return rows, cols, nil
}

// Date layouts recognized by [Infer], with the number format
// code used to display them.
var dateLayouts = []struct {
	layout string
	format string
}{
	{time.DateOnly, "yyyy-mm-dd"},
	{time.DateTime, "yyyy-mm-dd hh:mm:ss"},
	{"2006-01-02T15:04:05", "yyyy-mm-dd hh:mm:ss"},
}

// Infer returns the value a typed-in field would have,
// with the number format code it displays in.
// An empty field is blank; TRUE and FALSE are booleans;
// #N/A and the other error names are errors;
// ISO dates are date/times; numbers (optionally with a
// trailing percent sign) are numbers; anything else is text.
func Infer(field string) (cell.Value, string) {
	if field == "" {
		return cell.BlankValue(), cell.General
	}
	switch strings.ToUpper(field) {
	case "TRUE":
		return cell.BoolValue(true), cell.General
	case "FALSE":
		return cell.BoolValue(false), cell.General
	}
	if code, err := cell.ParseError(field); err == nil {
		return cell.ErrorValue(code), cell.General
	}
	for _, d := range dateLayouts {
		if t, err := time.Parse(d.layout, field); err == nil {
			return cell.DateTimeValue(t), d.format
		}
	}
	if pct, ok := strings.CutSuffix(field, "%"); ok {
		if f, err := parseNumber(pct); err == nil {
			return cell.NumberValue(f / 100), percentFormat(pct)
		}
	}
	if f, err := parseNumber(field); err == nil {
		return cell.NumberValue(f), cell.General
	}
	return cell.TextValue(field), cell.General
}

var errNotNumber = errors.New("not a number")

// parseNumber parses a decimal number, rejecting the
// special forms (Inf, NaN, hex) that strconv accepts.
func parseNumber(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.ContainsAny(s, "xXpPnNiI_") {
		return 0, errNotNumber
	}
	return strconv.ParseFloat(s, 64)
}

// percentFormat returns a percent format code showing
// as many decimal places as the text s has.
func percentFormat(s string) string {
	_, frac, ok := strings.Cut(s, ".")
	if !ok || frac == "" {
		return "0%"
	}
	return "0." + strings.Repeat("0", len(strings.TrimSpace(frac))) + "%"
}
