// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package cell defines the values held by spreadsheet cells
// and the contract a cell store offers to code that reads them.
package cell

import (
	"fmt"
	"strconv"
	"time"
)

// A Kind is the type tag of a [Value].
type Kind uint8

const (
	Blank Kind = iota
	Boolean
	Number
	Text
	Error
	DateTime
	TimeSpan
)

var kindNames = [...]string{
	Blank:    "blank",
	Boolean:  "boolean",
	Number:   "number",
	Text:     "text",
	Error:    "error",
	DateTime: "datetime",
	TimeSpan: "timespan",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Kind(" + strconv.Itoa(int(k)) + ")"
}

// ParseKind returns the kind named s, as printed by [Kind.String].
func ParseKind(s string) (Kind, error) {
	for k, name := range kindNames {
		if name == s {
			return Kind(k), nil
		}
	}
	return 0, fmt.Errorf("unknown cell kind %q", s)
}

// A Value is the computed value of a cell.
// It is one of blank, boolean, number, text, error,
// date/time or time span, as reported by [Value.Kind].
//
// Numbers, date/times and time spans share a numeric
// representation, the unified number, so that they can be
// ordered against each other.
// A date/time is stored as its serial (see [Serial]) and a
// time span as a (possibly fractional) number of days.
//
// The typed accessors panic if the value has a different kind.
// The zero Value is blank.
type Value struct {
	kind Kind
	num  float64 // Number, DateTime, TimeSpan, Boolean (0 or 1)
	text string  // Text
	code ErrorCode
}

// BlankValue returns the blank value.
func BlankValue() Value { return Value{} }

// TextValue returns a text value.
func TextValue(s string) Value { return Value{kind: Text, text: s} }

// BoolValue returns a boolean value.
func BoolValue(b bool) Value {
	v := Value{kind: Boolean}
	if b {
		v.num = 1
	}
	return v
}

// NumberValue returns a number value.
func NumberValue(f float64) Value { return Value{kind: Number, num: f} }

// ErrorValue returns an error value.
func ErrorValue(code ErrorCode) Value { return Value{kind: Error, code: code} }

// DateTimeValue returns a date/time value for t.
// Only the wall clock reading of t matters; its location is ignored.
func DateTimeValue(t time.Time) Value { return Value{kind: DateTime, num: Serial(t)} }

// SerialValue returns a date/time value for a serial number.
func SerialValue(serial float64) Value { return Value{kind: DateTime, num: serial} }

// TimeSpanValue returns a time span value.
func TimeSpanValue(d time.Duration) Value {
	return Value{kind: TimeSpan, num: d.Hours() / 24}
}

// SpanDaysValue returns a time span value of the given
// (possibly fractional) number of days.
func SpanDaysValue(days float64) Value { return Value{kind: TimeSpan, num: days} }

// Kind returns the type tag of v.
func (v Value) Kind() Kind { return v.kind }

// IsBlank reports whether v is blank.
func (v Value) IsBlank() bool { return v.kind == Blank }

// IsDateTime reports whether v is a date/time.
func (v Value) IsDateTime() bool { return v.kind == DateTime }

// IsUnifiedNumber reports whether v is a number, a date/time
// or a time span.
func (v Value) IsUnifiedNumber() bool {
	switch v.kind {
	case Number, DateTime, TimeSpan:
		return true
	}
	return false
}

func (v Value) mustBe(k Kind) {
	if v.kind != k {
		panic(fmt.Sprintf("cell: %s accessor called on %s value", k, v.kind))
	}
}

// Text returns the string held by a text value.
func (v Value) Text() string {
	v.mustBe(Text)
	return v.text
}

// Bool returns the boolean held by a boolean value.
func (v Value) Bool() bool {
	v.mustBe(Boolean)
	return v.num != 0
}

// Error returns the code held by an error value.
func (v Value) Error() ErrorCode {
	v.mustBe(Error)
	return v.code
}

// Number returns the number held by a number value.
func (v Value) Number() float64 {
	v.mustBe(Number)
	return v.num
}

// UnifiedNumber returns the numeric form of a number,
// date/time or time span.
func (v Value) UnifiedNumber() float64 {
	if !v.IsUnifiedNumber() {
		panic(fmt.Sprintf("cell: unified number accessor called on %s value", v.kind))
	}
	return v.num
}

// DateTime returns the time held by a date/time value, in UTC.
func (v Value) DateTime() time.Time {
	v.mustBe(DateTime)
	return FromSerial(v.num)
}

// TimeSpan returns the duration held by a time span value.
func (v Value) TimeSpan() time.Duration {
	v.mustBe(TimeSpan)
	return time.Duration(v.num * 24 * float64(time.Hour))
}

// String returns a debugging representation of v.
func (v Value) String() string {
	switch v.kind {
	case Blank:
		return "blank"
	case Boolean:
		return strconv.FormatBool(v.Bool())
	case Number:
		return strconv.FormatFloat(v.num, 'g', -1, 64)
	case Text:
		return strconv.Quote(v.text)
	case Error:
		return v.code.String()
	case DateTime:
		return v.DateTime().Format("2006-01-02T15:04:05")
	case TimeSpan:
		return v.TimeSpan().String()
	}
	return v.kind.String()
}
