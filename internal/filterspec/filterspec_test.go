// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package filterspec

import (
	"fmt"
	"math"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/autofilter/internal/autofilter"
	"golang.org/x/autofilter/internal/cell"
	"golang.org/x/autofilter/internal/testutil"
)

// describe returns a readable summary of the filters in cols,
// one line per filter.
func describe(cols map[int]*autofilter.Column) []string {
	var out []string
	for _, k := range []int{0, 1, 2, 3, 4, 5} {
		col := cols[k]
		if col == nil {
			continue
		}
		for _, f := range col.Filters() {
			var s string
			switch f.Kind() {
			case autofilter.Custom:
				s = f.Operator().String() + " " + f.CustomValue().Kind().String() + ":" + f.CustomValue().String()
			case autofilter.CustomPattern:
				s = f.Pattern()
				if !f.MatchWanted() {
					s = "not " + s
				}
			case autofilter.Regular:
				s = f.Text()
			case autofilter.DateGroup:
				s = f.Grouping().String() + " of " + f.Date().Format(time.RFC3339)
			case autofilter.TopBottom:
				s = "bottom"
				if f.TakeTop() {
					s = "top"
				}
				s = fmt.Sprintf("%s %d %v", s, f.Amount(), col.Unit)
			case autofilter.Average:
				s = "below"
				if f.AboveAverage() {
					s = "above"
				}
				s += " average"
			}
			out = append(out, fmt.Sprintf("%d %v %v %s", k, f.Connector(), f.Kind(), s))
		}
	}
	return out
}

func load(t *testing.T) map[int]*autofilter.Column {
	data, err := os.ReadFile("testdata/all.yaml")
	testutil.Check(t, err)
	specs, err := Parse(data)
	testutil.Check(t, err)
	cols, err := Build(specs)
	testutil.Check(t, err)
	return cols
}

func TestBuild(t *testing.T) {
	cols := load(t)
	want := []string{
		`0 and custom >= number:10`,
		`0 or custom != text:"10"`,
		`0 and custom = boolean:true`,
		`0 and custom < datetime:2024-03-15T00:00:00`,
		`0 and custom = error:#N/A`,
		`0 and custom > timespan:1h30m0s`,
		`0 and custom != blank:blank`,
		`0 or pattern A*`,
		`0 and pattern not *~?`,
		`1 and topbottom top 20 percent`,
		`2 or regular Red`,
		`2 or regular Green`,
		`3 or dategroup month of 2024-03-01T00:00:00Z`,
		`3 or dategroup hour of 2023-12-31T23:00:00Z`,
		`4 and average below average`,
		`4 and topbottom bottom 3 items`,
	}
	if diff := cmp.Diff(want, describe(cols)); diff != "" {
		t.Errorf("Build mismatch (-want +got):\n%s", diff)
	}
	if avg := cols[4].Filters()[0].InitialAverage(); avg != 12.5 {
		t.Errorf("InitialAverage() = %v, want 12.5", avg)
	}
}

func TestCustomValue(t *testing.T) {
	for _, tt := range []struct {
		value string // YAML text after "value:", or "" to omit
		want  cell.Value
	}{
		{"10", cell.NumberValue(10)},
		{"-2.5", cell.NumberValue(-2.5)},
		{`"10"`, cell.TextValue("10")},
		{"Apple", cell.TextValue("Apple")},
		{"false", cell.BoolValue(false)},
		{"2024-03-15", cell.DateTimeValue(time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC))},
		{"null", cell.BlankValue()},
		{"", cell.BlankValue()},
	} {
		y := "columns:\n- column: 0\n  filters:\n  - kind: custom\n    op: \">=\"\n"
		if tt.value != "" {
			y += "    value: " + tt.value + "\n"
		}
		specs, err := Parse([]byte(y))
		if err != nil {
			t.Errorf("Parse(value: %s): %v", tt.value, err)
			continue
		}
		cols, err := Build(specs)
		if err != nil {
			t.Errorf("Build(value: %s): %v", tt.value, err)
			continue
		}
		f := cols[0].Filters()[0]
		if v := f.CustomValue(); v != tt.want {
			t.Errorf("value: %s = %v, want %v", tt.value, v, tt.want)
		}
		if op := f.Operator(); op != autofilter.EqualOrGreaterThan {
			t.Errorf("value: %s: Operator() = %v, want >=", tt.value, op)
		}
	}
}

func TestMarshalBlankOmitsValue(t *testing.T) {
	data, err := Marshal(map[int]*autofilter.Column{
		0: autofilter.NewColumn(autofilter.NewCustom(cell.BlankValue(), autofilter.NotEqual, autofilter.And)),
	})
	testutil.Check(t, err)
	if strings.Contains(string(data), "value:") {
		t.Errorf("Marshal(blank value) wrote a value:\n%s", data)
	}
}

func TestMarshal(t *testing.T) {
	cols := load(t)
	data, err := Marshal(cols)
	testutil.Check(t, err)
	specs, err := Parse(data)
	testutil.Check(t, err)
	again, err := Build(specs)
	if err != nil {
		t.Fatalf("Build(Marshal(...)): %v\n%s", err, data)
	}
	if diff := cmp.Diff(describe(cols), describe(again)); diff != "" {
		t.Errorf("Marshal did not preserve filters (-want +got):\n%s\n%s", diff, data)
	}
	if avg := again[4].Filters()[0].InitialAverage(); avg != 12.5 {
		t.Errorf("InitialAverage() after Marshal = %v, want 12.5", avg)
	}

	// Text that looks like another type stays text.
	data, err = Marshal(map[int]*autofilter.Column{
		0: autofilter.NewColumn(autofilter.NewCustom(cell.TextValue("true"), autofilter.Equal, autofilter.And)),
	})
	testutil.Check(t, err)
	specs, err = Parse(data)
	testutil.Check(t, err)
	again, err = Build(specs)
	testutil.Check(t, err)
	if v := again[0].Filters()[0].CustomValue(); v != cell.TextValue("true") {
		t.Errorf("text %q became %v after Marshal:\n%s", "true", v, data)
	}
}

func TestBuildErrors(t *testing.T) {
	for _, tt := range []struct {
		yaml string
		err  string
	}{
		{"columns:\n- column: -1\n", "negative column"},
		{"columns:\n- column: 1\n- column: 1\n", "column 1 defined twice"},
		{"columns:\n- column: 1\n  unit: rows\n", "unknown top/bottom unit"},
		{"columns:\n- column: 1\n  filters:\n  - kind: fuzzy\n", `column 1 filter 0: unknown filter kind "fuzzy"`},
		{"columns:\n- column: 1\n  filters:\n  - kind: custom\n    op: '=~'\n", "unknown operator"},
		{"columns:\n- column: 1\n  filters:\n  - kind: custom\n    connector: xor\n", "unknown connector"},
		{"columns:\n- column: 1\n  filters:\n  - kind: custom\n    value: abc\n    type: number\n", `invalid number value "abc"`},
		{"columns:\n- column: 1\n  filters:\n  - kind: custom\n    value: x\n    type: colour\n", "unknown cell kind"},
		{"columns:\n- column: 1\n  filters:\n  - kind: custom\n    value: [1, 2]\n", "not a scalar"},
		{"columns:\n- column: 1\n  filters:\n  - kind: custom\n    type: number\n", "missing number value"},
		{"columns:\n- column: 1\n  filters:\n  - kind: custom\n    value: '#OOPS'\n    type: error\n", "invalid error value"},
		{"columns:\n- column: 1\n  filters:\n  - kind: pattern\n", "no pattern"},
		{"columns:\n- column: 1\n  filters:\n  - kind: dategroup\n    date: soon\n", `invalid date "soon"`},
		{"columns:\n- column: 1\n  filters:\n  - kind: dategroup\n    date: 2024-01-01\n    group: week\n", "unknown date grouping"},
		{"columns:\n- column: 1\n  filters:\n  - kind: top\n    amount: -1\n", "negative amount"},
		{"columns:\n- column: 1\n  filters:\n  - kind: top\n    amount: 2\n  - kind: bottom\n    amount: 2\n", "column 1 filter 1: more than one top/bottom filter"},
	} {
		specs, err := Parse([]byte(tt.yaml))
		testutil.Check(t, err)
		_, err = Build(specs)
		if err == nil || !strings.Contains(err.Error(), tt.err) {
			t.Errorf("Build(%q) error = %v, want %q", tt.yaml, err, tt.err)
		}
	}

	if _, err := Parse([]byte("columns: {")); err == nil {
		t.Errorf("Parse(bad yaml) succeeded")
	}
}

func TestMarshalNonFinite(t *testing.T) {
	_, err := Marshal(map[int]*autofilter.Column{
		2: autofilter.NewColumn(autofilter.NewAverage(math.NaN(), true)),
	})
	if err == nil || !strings.Contains(err.Error(), "column 2") {
		t.Errorf("Marshal(NaN average) error = %v, want column 2 error", err)
	}
}
