// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package autofilter

import (
	"cmp"
	"fmt"
	"iter"
	"math"
	"slices"
	"strings"

	"golang.org/x/autofilter/internal/cell"
	"rsc.io/top"
)

// A Unit says how the amount of a top/bottom filter is counted.
type Unit uint8

const (
	Items   Unit = iota // the amount is a number of values
	Percent             // the amount is a percentage of the numeric values
)

func (u Unit) String() string {
	switch u {
	case Items:
		return "items"
	case Percent:
		return "percent"
	}
	return fmt.Sprintf("Unit(%d)", u)
}

// ParseUnit returns the unit named s, ignoring case.
func ParseUnit(s string) (Unit, error) {
	switch strings.ToLower(s) {
	case "items":
		return Items, nil
	case "percent":
		return Percent, nil
	}
	return 0, fmt.Errorf("unknown top/bottom unit %q", s)
}

// ColumnAverage returns the mean of the numbers, dates and time spans
// in values, ignoring values of other kinds.
// It returns NaN if there are none.
func ColumnAverage(values iter.Seq[cell.Value]) float64 {
	return average(numbers(values))
}

// TopBottomThreshold returns the smallest of the top amount values
// (takeTop) or the largest of the bottom amount values (!takeTop)
// among the numbers, dates and time spans in values.
// With unit Percent, amount is a percentage of the count of
// those values, rounded down. At least one and at most all of
// them are taken.
// It returns NaN if values has no numbers.
func TopBottomThreshold(values iter.Seq[cell.Value], takeTop bool, amount int, unit Unit) float64 {
	return threshold(numbers(values), takeTop, amount, unit)
}

func numbers(values iter.Seq[cell.Value]) []float64 {
	var nums []float64
	for v := range values {
		if v.IsUnifiedNumber() {
			nums = append(nums, v.UnifiedNumber())
		}
	}
	return nums
}

func average(nums []float64) float64 {
	if len(nums) == 0 {
		return math.NaN()
	}
	var sum float64
	for _, n := range nums {
		sum += n
	}
	return sum / float64(len(nums))
}

func threshold(nums []float64, takeTop bool, amount int, unit Unit) float64 {
	if len(nums) == 0 {
		return math.NaN()
	}
	k := amount
	if unit == Percent {
		k = len(nums) * amount / 100
	}
	k = max(1, min(k, len(nums)))

	order := cmp.Compare[float64]
	if !takeTop {
		order = func(x, y float64) int { return cmp.Compare(y, x) }
	}
	t := top.New(k, order)
	for _, n := range nums {
		t.Add(n)
	}
	taken := t.Take()
	if takeTop {
		return slices.Min(taken)
	}
	return slices.Max(taken)
}
