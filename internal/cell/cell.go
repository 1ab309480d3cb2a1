// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cell

// A Cell is a cell as seen by code that evaluates it.
type Cell interface {
	// Value returns the current computed value of the cell.
	Value() Value

	// FormattedString returns the text the cell displays.
	// Producing it may require work in the store holding
	// the cell, which can fail.
	FormattedString() (string, error)
}

// Const returns a detached [Cell] holding v displayed with
// the number format code format.
func Const(v Value, format string) Cell {
	return constCell{v, format}
}

type constCell struct {
	v      Value
	format string
}

func (c constCell) Value() Value { return c.v }

func (c constCell) FormattedString() (string, error) {
	return Format(c.v, c.format)
}
