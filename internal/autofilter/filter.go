// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package autofilter

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/autofilter/internal/cell"
	"golang.org/x/autofilter/internal/locale"
	"golang.org/x/autofilter/internal/wildcard"
)

// An Operator compares a cell value with a filter value.
type Operator uint8

const (
	Equal Operator = iota
	NotEqual
	GreaterThan
	LessThan
	EqualOrGreaterThan
	EqualOrLessThan
)

var operatorNames = [...]string{
	Equal:              "=",
	NotEqual:           "!=",
	GreaterThan:        ">",
	LessThan:           "<",
	EqualOrGreaterThan: ">=",
	EqualOrLessThan:    "<=",
}

func (op Operator) String() string {
	if int(op) < len(operatorNames) {
		return operatorNames[op]
	}
	return fmt.Sprintf("Operator(%d)", op)
}

// ParseOperator returns the operator written as s.
// It accepts the forms printed by [Operator.String],
// and also "==" and "<>".
func ParseOperator(s string) (Operator, error) {
	switch s {
	case "==":
		return Equal, nil
	case "<>":
		return NotEqual, nil
	}
	for op, name := range operatorNames {
		if name == s {
			return Operator(op), nil
		}
	}
	return 0, fmt.Errorf("unknown operator %q", s)
}

// holds reports whether a comparison result c satisfies op.
func (op Operator) holds(c int) bool {
	switch op {
	case Equal:
		return c == 0
	case NotEqual:
		return c != 0
	case GreaterThan:
		return c > 0
	case LessThan:
		return c < 0
	case EqualOrGreaterThan:
		return c >= 0
	case EqualOrLessThan:
		return c <= 0
	default:
		panic("can't happen")
	}
}

// A Connector says how a filter combines with the filters
// before it on the same column.
type Connector uint8

const (
	And Connector = iota
	Or
)

func (c Connector) String() string {
	switch c {
	case And:
		return "and"
	case Or:
		return "or"
	}
	return fmt.Sprintf("Connector(%d)", c)
}

// ParseConnector returns the connector named s, ignoring case.
func ParseConnector(s string) (Connector, error) {
	switch strings.ToLower(s) {
	case "and":
		return And, nil
	case "or":
		return Or, nil
	}
	return 0, fmt.Errorf("unknown connector %q", s)
}

// A Grouping is the precision at which a date group filter
// compares dates. Groupings are ordered from coarsest to finest.
type Grouping uint8

const (
	Year Grouping = iota
	Month
	Day
	Hour
	Minute
	Second
)

var groupingNames = [...]string{
	Year:   "year",
	Month:  "month",
	Day:    "day",
	Hour:   "hour",
	Minute: "minute",
	Second: "second",
}

func (g Grouping) String() string {
	if int(g) < len(groupingNames) {
		return groupingNames[g]
	}
	return fmt.Sprintf("Grouping(%d)", g)
}

// ParseGrouping returns the grouping named s, ignoring case.
func ParseGrouping(s string) (Grouping, error) {
	s = strings.ToLower(s)
	for g, name := range groupingNames {
		if name == s {
			return Grouping(g), nil
		}
	}
	return 0, fmt.Errorf("unknown date grouping %q", s)
}

// A Kind identifies how a [Filter] decides.
type Kind uint8

const (
	Custom        Kind = iota // typed comparison with a value
	CustomPattern             // wildcard match of the display text
	Regular                   // display text equals one of the listed values
	DateGroup                 // date within a year, month, ... bucket
	TopBottom                 // among the top or bottom N
	Average                   // above or below the column average
)

var kindNames = [...]string{
	Custom:        "custom",
	CustomPattern: "pattern",
	Regular:       "regular",
	DateGroup:     "dategroup",
	TopBottom:     "topbottom",
	Average:       "average",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", k)
}

// ErrContextNotReady is returned when a filter needs column
// statistics that the [ColumnContext] does not have.
var ErrContextNotReady = errors.New("autofilter: column context not prepared")

// A Filter is one condition on the cells of a column.
// Filters are built by the New functions and are immutable;
// a Filter may be evaluated from multiple goroutines.
type Filter struct {
	connector Connector
	op        Operator
	grouping  Grouping
	cond      condition
}

// A condition is the kind-specific part of a [Filter].
type condition interface {
	kind() Kind
	eval(c cell.Cell, ctx *ColumnContext) (bool, error)
}

type customCond struct {
	value cell.Value
	op    Operator
	cmp   *locale.Comparer
}

type patternCond struct {
	pattern     *wildcard.Pattern
	matchWanted bool
}

type regularCond struct {
	text string
}

type dateGroupCond struct {
	date     time.Time
	grouping Grouping
}

type topBottomCond struct {
	takeTop bool
	amount  int
}

type averageCond struct {
	initial float64
	above   bool
}

func (*customCond) kind() Kind    { return Custom }
func (*patternCond) kind() Kind   { return CustomPattern }
func (*regularCond) kind() Kind   { return Regular }
func (*dateGroupCond) kind() Kind { return DateGroup }
func (*topBottomCond) kind() Kind { return TopBottom }
func (*averageCond) kind() Kind   { return Average }

// NewCustom returns a filter that compares a cell's value with value
// using op; see [Filter.Evaluate] for the comparison rules.
// Text compares case-insensitively in the collation order of the
// current locale, which is determined once, here.
func NewCustom(value cell.Value, op Operator, conn Connector) *Filter {
	return &Filter{
		connector: conn,
		op:        op,
		cond: &customCond{
			value: value,
			op:    op,
			cmp:   locale.NewComparer(locale.Current()),
		},
	}
}

// NewCustomPattern returns a filter that matches a cell's display
// text against the wildcard pattern (see package [wildcard]).
// The pattern must match the whole text, ignoring case.
// If matchWanted is false, the filter accepts the cells the
// pattern does not match.
// The filter's operator is Equal or NotEqual accordingly,
// for the benefit of code that writes filters out.
func NewCustomPattern(pattern string, matchWanted bool, conn Connector) *Filter {
	op := Equal
	if !matchWanted {
		op = NotEqual
	}
	return &Filter{
		connector: conn,
		op:        op,
		cond: &patternCond{
			pattern:     wildcard.Compile(pattern),
			matchWanted: matchWanted,
		},
	}
}

// NewRegular returns a filter that accepts cells whose display text
// equals value, ignoring case.
// Regular filters list alternatives, so the connector is Or.
func NewRegular(value string) *Filter {
	return &Filter{
		connector: Or,
		cond:      &regularCond{text: value},
	}
}

// NewDateGroup returns a filter that accepts date/time cells
// in the same year as date, and also in the same month, day, hour,
// minute and second as date down to the precision of grouping.
// Dates compare by wall clock reading.
// Date groups list alternatives, so the connector is Or.
func NewDateGroup(date time.Time, grouping Grouping) *Filter {
	return &Filter{
		connector: Or,
		grouping:  grouping,
		cond:      &dateGroupCond{date: date, grouping: grouping},
	}
}

// NewTopBottom returns a filter that accepts numeric cells at or
// above (takeTop) or at or below (!takeTop) the column's top/bottom
// threshold. The amount, a count of items or a percentage, is what
// the threshold was derived from; the filter itself only compares
// with [ColumnContext.TopBottomThreshold].
// A column context holds a single threshold, so a [Column] should
// have at most one top/bottom filter; if it has more, the first one
// sets the threshold that all of them compare with.
func NewTopBottom(takeTop bool, amount int) *Filter {
	return &Filter{
		cond: &topBottomCond{takeTop: takeTop, amount: amount},
	}
}

// NewAverage returns a filter that accepts numeric cells strictly
// above (aboveAverage) or strictly below (!aboveAverage) the
// column average in [ColumnContext.Average].
// initialAverage records the average when the filter was defined.
func NewAverage(initialAverage float64, aboveAverage bool) *Filter {
	return &Filter{
		cond: &averageCond{initial: initialAverage, above: aboveAverage},
	}
}

// Kind returns the kind of f.
func (f *Filter) Kind() Kind { return f.cond.kind() }

// Connector returns how f combines with the filters before it.
func (f *Filter) Connector() Connector { return f.connector }

// Operator returns the operator of f.
// Filters other than custom ones report Equal,
// except that a pattern filter wanting no match reports NotEqual.
func (f *Filter) Operator() Operator { return f.op }

// Grouping returns the date grouping of a date group filter.
func (f *Filter) Grouping() Grouping { return f.grouping }

// CustomValue returns the value a custom filter compares with,
// or a blank value for other kinds.
func (f *Filter) CustomValue() cell.Value {
	if c, ok := f.cond.(*customCond); ok {
		return c.value
	}
	return cell.BlankValue()
}

// Pattern returns the wildcard pattern of a pattern filter.
func (f *Filter) Pattern() string {
	if c, ok := f.cond.(*patternCond); ok {
		return c.pattern.String()
	}
	return ""
}

// MatchWanted reports whether a pattern filter accepts matches
// (rather than non-matches).
func (f *Filter) MatchWanted() bool {
	if c, ok := f.cond.(*patternCond); ok {
		return c.matchWanted
	}
	return false
}

// Text returns the value of a regular filter.
func (f *Filter) Text() string {
	if c, ok := f.cond.(*regularCond); ok {
		return c.text
	}
	return ""
}

// Date returns the reference date of a date group filter.
func (f *Filter) Date() time.Time {
	if c, ok := f.cond.(*dateGroupCond); ok {
		return c.date
	}
	return time.Time{}
}

// TakeTop reports whether a top/bottom filter takes the top values.
func (f *Filter) TakeTop() bool {
	if c, ok := f.cond.(*topBottomCond); ok {
		return c.takeTop
	}
	return false
}

// Amount returns the item count or percentage of a top/bottom filter.
func (f *Filter) Amount() int {
	if c, ok := f.cond.(*topBottomCond); ok {
		return c.amount
	}
	return 0
}

// AboveAverage reports whether an average filter takes the values
// above the average.
func (f *Filter) AboveAverage() bool {
	if c, ok := f.cond.(*averageCond); ok {
		return c.above
	}
	return false
}

// InitialAverage returns the average recorded when an average
// filter was defined.
func (f *Filter) InitialAverage() float64 {
	if c, ok := f.cond.(*averageCond); ok {
		return c.initial
	}
	return 0
}

// Evaluate reports whether c satisfies f.
//
// ctx supplies the column statistics that top/bottom and average
// filters compare with; it may be nil for the other kinds.
// Pattern and regular filters read c's display text, and an error
// producing it is returned unchanged.
//
// A custom filter compares values as follows.
// A blank value on either side is treated as empty text, so that
// "not equal to empty" does not select blank cells.
// Values of different kinds never satisfy the filter, whatever the
// operator, except that numbers, dates and time spans all compare
// numerically with each other.
// Text compares case-insensitively in locale order, booleans order
// false before true, and errors in the order of [cell.ErrorCode].
// Equal is a typed equality test: unlike spreadsheet applications,
// it does not treat the filter value as a wildcard pattern against
// the display text. Use [NewCustomPattern] for that.
func (f *Filter) Evaluate(c cell.Cell, ctx *ColumnContext) (bool, error) {
	return f.cond.eval(c, ctx)
}

func (cc *customCond) eval(c cell.Cell, _ *ColumnContext) (bool, error) {
	return compareValues(c.Value(), cc.op, cc.value, cc.cmp.Compare), nil
}

func (pc *patternCond) eval(c cell.Cell, _ *ColumnContext) (bool, error) {
	s, err := c.FormattedString()
	if err != nil {
		return false, err
	}
	return pc.pattern.Match(s) == pc.matchWanted, nil
}

func (rc *regularCond) eval(c cell.Cell, _ *ColumnContext) (bool, error) {
	s, err := c.FormattedString()
	if err != nil {
		return false, err
	}
	return strings.EqualFold(s, rc.text), nil
}

func (dc *dateGroupCond) eval(c cell.Cell, _ *ColumnContext) (bool, error) {
	v := c.Value()
	if !v.IsDateTime() {
		return false, nil
	}
	return sameGroup(v.DateTime(), dc.date, dc.grouping), nil
}

func (tc *topBottomCond) eval(c cell.Cell, ctx *ColumnContext) (bool, error) {
	threshold, ok := ctx.TopBottomThreshold()
	if !ok {
		return false, ErrContextNotReady
	}
	v := c.Value()
	if !v.IsUnifiedNumber() {
		return false, nil
	}
	if tc.takeTop {
		return v.UnifiedNumber() >= threshold, nil
	}
	return v.UnifiedNumber() <= threshold, nil
}

func (ac *averageCond) eval(c cell.Cell, ctx *ColumnContext) (bool, error) {
	avg, ok := ctx.Average()
	if !ok {
		return false, ErrContextNotReady
	}
	v := c.Value()
	if !v.IsUnifiedNumber() {
		return false, nil
	}
	if ac.above {
		return v.UnifiedNumber() > avg, nil
	}
	return v.UnifiedNumber() < avg, nil
}
