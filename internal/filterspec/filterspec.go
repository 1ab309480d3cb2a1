// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package filterspec reads and writes autofilter definitions in YAML.
//
// A definition lists filtered columns, each with its filters in order:
//
//	columns:
//	- column: 1
//	  unit: percent
//	  filters:
//	  - kind: top
//	    amount: 20
//	- column: 0
//	  filters:
//	  - kind: custom
//	    op: ">="
//	    value: 10
//	  - kind: pattern
//	    pattern: "A*"
//	    connector: or
//
// The filter kinds and their fields are:
//
//	custom          op, value, type, connector
//	pattern         pattern, match (default true), connector
//	regular         text
//	dategroup       date, group (year, month, day, hour, minute or second)
//	top, bottom     amount
//	above-average   average (the average when the filter was defined)
//	below-average   average
//
// The value of a custom filter is typed by its YAML form:
// a quoted or plain string is text, a number is a number,
// true and false are booleans, an unquoted ISO date is a date,
// and a missing or null value is blank.
// The type field overrides this with one of
// text, number, boolean, date (or datetime), timespan, error or blank.
package filterspec

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"
	"time"

	"golang.org/x/autofilter/internal/autofilter"
	"golang.org/x/autofilter/internal/cell"
	"gopkg.in/yaml.v3"
)

// A File is a parsed definition.
type File struct {
	Columns []ColumnSpec `yaml:"columns"`
}

// A ColumnSpec is the definition of one filtered column.
type ColumnSpec struct {
	Column  int          `yaml:"column"`
	Unit    string       `yaml:"unit,omitempty"`
	Filters []FilterSpec `yaml:"filters"`
}

// A FilterSpec is the definition of one filter.
// Which fields apply depends on Kind.
type FilterSpec struct {
	Kind      string     `yaml:"kind"`
	Op        string     `yaml:"op,omitempty"`
	Value     yaml.Node  `yaml:"value,omitempty"` // zero Kind if absent
	Type      string     `yaml:"type,omitempty"`
	Connector string     `yaml:"connector,omitempty"`
	Pattern   string     `yaml:"pattern,omitempty"`
	Match     *bool      `yaml:"match,omitempty"`
	Text      string     `yaml:"text,omitempty"`
	Date      string     `yaml:"date,omitempty"`
	Group     string     `yaml:"group,omitempty"`
	Amount    int        `yaml:"amount,omitempty"`
	Average   float64    `yaml:"average,omitempty"`
}

// Parse parses a YAML definition.
// It checks only the YAML structure; [Build] checks the contents.
func Parse(data []byte) ([]ColumnSpec, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("filterspec: %w", err)
	}
	return f.Columns, nil
}

// Build returns the autofilter columns defined by specs,
// keyed by column number.
func Build(specs []ColumnSpec) (map[int]*autofilter.Column, error) {
	cols := make(map[int]*autofilter.Column)
	for _, cs := range specs {
		if cs.Column < 0 {
			return nil, fmt.Errorf("filterspec: negative column %d", cs.Column)
		}
		if _, ok := cols[cs.Column]; ok {
			return nil, fmt.Errorf("filterspec: column %d defined twice", cs.Column)
		}
		col := autofilter.NewColumn()
		if cs.Unit != "" {
			u, err := autofilter.ParseUnit(cs.Unit)
			if err != nil {
				return nil, fmt.Errorf("filterspec: column %d: %w", cs.Column, err)
			}
			col.Unit = u
		}
		topBottom := 0
		for i, fs := range cs.Filters {
			f, err := buildFilter(&fs)
			if err != nil {
				return nil, fmt.Errorf("filterspec: column %d filter %d: %w", cs.Column, i, err)
			}
			if f.Kind() == autofilter.TopBottom {
				// The column has a single threshold.
				if topBottom++; topBottom > 1 {
					return nil, fmt.Errorf("filterspec: column %d filter %d: more than one top/bottom filter", cs.Column, i)
				}
			}
			col.Add(f)
		}
		cols[cs.Column] = col
	}
	return cols, nil
}

func buildFilter(fs *FilterSpec) (*autofilter.Filter, error) {
	conn := autofilter.And
	if fs.Connector != "" {
		c, err := autofilter.ParseConnector(fs.Connector)
		if err != nil {
			return nil, err
		}
		conn = c
	}

	switch fs.Kind {
	case "custom":
		op := autofilter.Equal
		if fs.Op != "" {
			o, err := autofilter.ParseOperator(fs.Op)
			if err != nil {
				return nil, err
			}
			op = o
		}
		v, err := parseValue(&fs.Value, fs.Type)
		if err != nil {
			return nil, err
		}
		return autofilter.NewCustom(v, op, conn), nil

	case "pattern":
		if fs.Pattern == "" {
			return nil, errors.New("pattern filter has no pattern")
		}
		match := fs.Match == nil || *fs.Match
		return autofilter.NewCustomPattern(fs.Pattern, match, conn), nil

	case "regular":
		return autofilter.NewRegular(fs.Text), nil

	case "dategroup":
		d, err := parseDate(fs.Date)
		if err != nil {
			return nil, err
		}
		g := autofilter.Day
		if fs.Group != "" {
			if g, err = autofilter.ParseGrouping(fs.Group); err != nil {
				return nil, err
			}
		}
		return autofilter.NewDateGroup(d, g), nil

	case "top", "bottom":
		if fs.Amount < 0 {
			return nil, fmt.Errorf("negative amount %d", fs.Amount)
		}
		return autofilter.NewTopBottom(fs.Kind == "top", fs.Amount), nil

	case "above-average", "below-average":
		return autofilter.NewAverage(fs.Average, fs.Kind == "above-average"), nil
	}
	return nil, fmt.Errorf("unknown filter kind %q", fs.Kind)
}

// dateLayouts are the accepted forms of dates, most specific last.
var dateLayouts = []string{time.DateOnly, time.DateTime, "2006-01-02T15:04:05", time.RFC3339Nano}

func parseDate(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q", s)
}

// parseValue returns the cell value written as n,
// of the kind named typ or, if typ is empty, of the kind
// implied by n's YAML tag.
// A zero n means the value was omitted.
func parseValue(n *yaml.Node, typ string) (cell.Value, error) {
	if n.Kind == 0 {
		if typ != "" && typ != "blank" {
			return cell.Value{}, fmt.Errorf("missing %s value", typ)
		}
		return cell.BlankValue(), nil
	}
	if n.Kind != yaml.ScalarNode {
		return cell.Value{}, fmt.Errorf("line %d: value is not a scalar", n.Line)
	}
	if typ == "" {
		switch n.ShortTag() {
		case "!!null":
			typ = "blank"
		case "!!bool":
			typ = "boolean"
		case "!!int", "!!float":
			typ = "number"
		case "!!timestamp":
			typ = "date"
		default:
			typ = "text"
		}
	}

	bad := func(err error) (cell.Value, error) {
		return cell.Value{}, fmt.Errorf("line %d: invalid %s value %q: %w", n.Line, typ, n.Value, err)
	}
	name := typ
	if name == "date" {
		name = cell.DateTime.String()
	}
	k, err := cell.ParseKind(name)
	if err != nil {
		return cell.Value{}, fmt.Errorf("line %d: %w", n.Line, err)
	}
	switch k {
	case cell.Blank:
		return cell.BlankValue(), nil
	case cell.Text:
		return cell.TextValue(n.Value), nil
	case cell.Boolean:
		b, err := strconv.ParseBool(n.Value)
		if err != nil {
			return bad(err)
		}
		return cell.BoolValue(b), nil
	case cell.Number:
		f, err := strconv.ParseFloat(strings.ReplaceAll(n.Value, "_", ""), 64)
		if err != nil {
			return bad(err)
		}
		return cell.NumberValue(f), nil
	case cell.DateTime:
		t, err := parseDate(n.Value)
		if err != nil {
			return bad(err)
		}
		return cell.DateTimeValue(t), nil
	case cell.TimeSpan:
		d, err := time.ParseDuration(n.Value)
		if err != nil {
			return bad(err)
		}
		return cell.TimeSpanValue(d), nil
	case cell.Error:
		code, err := cell.ParseError(n.Value)
		if err != nil {
			return bad(err)
		}
		return cell.ErrorValue(code), nil
	}
	panic("can't happen")
}

// Marshal returns the YAML definition of cols,
// in increasing column order.
// Parsing and building the result yields equivalent columns.
func Marshal(cols map[int]*autofilter.Column) ([]byte, error) {
	var f File
	keys := make([]int, 0, len(cols))
	for k := range cols {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		col := cols[k]
		cs := ColumnSpec{Column: k}
		if col.Unit != autofilter.Items {
			cs.Unit = col.Unit.String()
		}
		for _, flt := range col.Filters() {
			fs, err := specOf(flt)
			if err != nil {
				return nil, fmt.Errorf("filterspec: column %d: %w", k, err)
			}
			cs.Filters = append(cs.Filters, *fs)
		}
		f.Columns = append(f.Columns, cs)
	}
	return yaml.Marshal(&f)
}

func specOf(flt *autofilter.Filter) (*FilterSpec, error) {
	fs := new(FilterSpec)
	if flt.Connector() == autofilter.Or {
		fs.Connector = "or"
	}
	switch flt.Kind() {
	case autofilter.Custom:
		fs.Kind = "custom"
		fs.Op = flt.Operator().String()
		n, typ := valueNode(flt.CustomValue())
		if n != nil {
			fs.Value = *n
		}
		fs.Type = typ
	case autofilter.CustomPattern:
		fs.Kind = "pattern"
		fs.Pattern = flt.Pattern()
		if !flt.MatchWanted() {
			no := false
			fs.Match = &no
		}
	case autofilter.Regular:
		// Regular filters are always alternatives.
		fs.Connector = ""
		fs.Kind = "regular"
		fs.Text = flt.Text()
	case autofilter.DateGroup:
		fs.Connector = ""
		fs.Kind = "dategroup"
		fs.Date = formatDate(flt.Date())
		fs.Group = flt.Grouping().String()
	case autofilter.TopBottom:
		fs.Kind = "bottom"
		if flt.TakeTop() {
			fs.Kind = "top"
		}
		fs.Amount = flt.Amount()
	case autofilter.Average:
		fs.Kind = "below-average"
		if flt.AboveAverage() {
			fs.Kind = "above-average"
		}
		fs.Average = flt.InitialAverage()
		if math.IsNaN(fs.Average) || math.IsInf(fs.Average, 0) {
			return nil, fmt.Errorf("average filter has non-finite average %v", fs.Average)
		}
	default:
		return nil, fmt.Errorf("unknown filter kind %v", flt.Kind())
	}
	return fs, nil
}

func formatDate(t time.Time) string {
	if t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 && t.Nanosecond() == 0 {
		return t.Format(time.DateOnly)
	}
	return t.Format(time.RFC3339Nano)
}

// valueNode returns the YAML node and type name for v.
// The type name is empty when the node's tag implies it.
func valueNode(v cell.Value) (*yaml.Node, string) {
	scalar := func(tag, value string) *yaml.Node {
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: value}
	}
	switch v.Kind() {
	case cell.Blank:
		return nil, ""
	case cell.Text:
		return scalar("!!str", v.Text()), ""
	case cell.Boolean:
		return scalar("!!bool", strconv.FormatBool(v.Bool())), ""
	case cell.Number:
		f := v.Number()
		tag := "!!float"
		if f == math.Trunc(f) && math.Abs(f) < 1<<53 {
			tag = "!!int"
		}
		return scalar(tag, strconv.FormatFloat(f, 'f', -1, 64)), ""
	case cell.DateTime:
		return scalar("!!str", formatDate(v.DateTime())), "date"
	case cell.TimeSpan:
		return scalar("!!str", v.TimeSpan().String()), "timespan"
	case cell.Error:
		return scalar("!!str", v.Error().String()), "error"
	}
	panic("can't happen")
}
