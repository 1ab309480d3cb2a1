// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cell

import (
	"fmt"
	"strconv"
)

// An ErrorCode is the code of a cell error value.
// Codes are ordered in their declaration order.
type ErrorCode uint8

const (
	NullValue         ErrorCode = iota // #NULL!
	DivisionByZero                     // #DIV/0!
	IncompatibleValue                  // #VALUE!
	CellReference                      // #REF!
	NameNotRecognized                  // #NAME?
	NumberInvalid                      // #NUM!
	NoValueAvailable                   // #N/A
)

var errorNames = [...]string{
	NullValue:         "#NULL!",
	DivisionByZero:    "#DIV/0!",
	IncompatibleValue: "#VALUE!",
	CellReference:     "#REF!",
	NameNotRecognized: "#NAME?",
	NumberInvalid:     "#NUM!",
	NoValueAvailable:  "#N/A",
}

// String returns the code as a spreadsheet displays it.
func (c ErrorCode) String() string {
	if int(c) < len(errorNames) {
		return errorNames[c]
	}
	return "ErrorCode(" + strconv.Itoa(int(c)) + ")"
}

// ParseError returns the error code displayed as s.
func ParseError(s string) (ErrorCode, error) {
	for c, name := range errorNames {
		if name == s {
			return ErrorCode(c), nil
		}
	}
	return 0, fmt.Errorf("unknown error code %q", s)
}
