// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cell

import (
	"errors"
	"testing"
	"time"
)

func TestFormat(t *testing.T) {
	date := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)
	stamp := time.Date(2024, 3, 5, 7, 8, 9, 0, time.UTC)
	for _, tt := range []struct {
		v      Value
		format string
		want   string
	}{
		{BlankValue(), "0.00", ""},
		{TextValue("Apple"), "0.00", "Apple"},
		{BoolValue(true), "", "TRUE"},
		{BoolValue(false), General, "FALSE"},
		{ErrorValue(DivisionByZero), "", "#DIV/0!"},
		{NumberValue(3.5), "", "3.5"},
		{NumberValue(0.1 + 0.2), General, "0.3"},
		{NumberValue(-12), "general", "-12"},
		{NumberValue(1e15), "", "1000000000000000"},
		{NumberValue(42), "@", "42"},
		{NumberValue(3.25), "0", "3"},
		{NumberValue(1234.5), "0.00", "1234.50"},
		{NumberValue(1234567.891), "#,##0.00", "1,234,567.89"},
		{NumberValue(-1234567), "#,##0", "-1,234,567"},
		{NumberValue(0.125), "0.0%", "12.5%"},
		{NumberValue(0.25), "0%", "25%"},
		{DateTimeValue(date), "", "2024-03-05"},
		{DateTimeValue(stamp), "", "2024-03-05 07:08:09"},
		{DateTimeValue(date), "yyyy-mm-dd", "2024-03-05"},
		{DateTimeValue(date), "m/d/yyyy", "3/5/2024"},
		{DateTimeValue(date), "dd.mm.yy", "05.03.24"},
		{DateTimeValue(stamp), "hh:mm:ss", "07:08:09"},
		{DateTimeValue(stamp), "yyyy-mm-dd h:mm", "2024-03-05 7:08"},
		{NumberValue(45356), "yyyy-mm-dd", "2024-03-05"},
		{TimeSpanValue(26*time.Hour + 3*time.Minute), "", "26:03:00"},
		{TimeSpanValue(-90 * time.Second), "", "-0:01:30"},
	} {
		got, err := Format(tt.v, tt.format)
		if err != nil {
			t.Errorf("Format(%v, %q): %v", tt.v, tt.format, err)
			continue
		}
		if got != tt.want {
			t.Errorf("Format(%v, %q) = %q, want %q", tt.v, tt.format, got, tt.want)
		}
	}
}

func TestFormatUnsupported(t *testing.T) {
	for _, format := range []string{
		"0.0#",
		"00",
		"[Red]0",
		"dddd",
		"yyy",
		"mmmm",
		"q",
	} {
		_, err := Format(NumberValue(1), format)
		if !errors.Is(err, ErrUnsupportedFormat) {
			t.Errorf("Format(1, %q) error = %v, want ErrUnsupportedFormat", format, err)
		}
	}

	// Values that ignore the format never fail.
	if s, err := Format(TextValue("x"), "[Red]0"); err != nil || s != "x" {
		t.Errorf("Format(text, bad) = %q, %v, want %q, nil", s, err, "x")
	}
}

func TestConst(t *testing.T) {
	c := Const(NumberValue(0.5), "0%")
	if v := c.Value(); v != NumberValue(0.5) {
		t.Errorf("Value() = %v, want 0.5", v)
	}
	s, err := c.FormattedString()
	if err != nil || s != "50%" {
		t.Errorf("FormattedString() = %q, %v, want %q, nil", s, err, "50%")
	}
	if _, err := Const(NumberValue(1), "q").FormattedString(); err == nil {
		t.Errorf("FormattedString with bad format succeeded")
	}
}
