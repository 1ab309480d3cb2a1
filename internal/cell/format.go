// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cell

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// ErrUnsupportedFormat is returned by [Format] for a number
// format code it does not understand.
var ErrUnsupportedFormat = errors.New("unsupported number format")

// General is the default number format.
const General = "General"

// generalPlaces is the number of decimal places
// the General format shows at most.
const generalPlaces = 10

// Format returns the display text of v under the number format code.
// Text, booleans, errors and blanks ignore the format.
// Numbers, date/times and time spans honor it; see [ParseFormat]
// for the supported codes.
func Format(v Value, format string) (string, error) {
	switch v.kind {
	case Blank:
		return "", nil
	case Boolean:
		if v.Bool() {
			return "TRUE", nil
		}
		return "FALSE", nil
	case Error:
		return v.code.String(), nil
	case Text:
		return v.text, nil
	}

	nf, err := ParseFormat(format)
	if err != nil {
		return "", err
	}
	return nf.format(v), nil
}

// A NumberFormat is a parsed number format code.
type NumberFormat struct {
	code    string
	general bool
	date    []dateToken // non-nil for date/time formats
	places  int         // decimal places for fixed formats
	group   bool        // thousands separators
	percent bool
}

// ParseFormat parses a number format code.
// The supported codes are General (or empty), @,
// fixed formats such as 0, 0.00, #,##0.00 and 0.0%,
// and date/time formats built from the tokens
// yyyy yy mm m dd d hh h ss s and the separators - / : . , and space.
// As in spreadsheets, mm or m directly after an hour token
// means minutes.
func ParseFormat(code string) (*NumberFormat, error) {
	nf := &NumberFormat{code: code}
	switch {
	case code == "" || strings.EqualFold(code, General) || code == "@":
		nf.general = true
		return nf, nil
	case strings.ContainsAny(code, "0#"):
		if err := nf.parseFixed(code); err != nil {
			return nil, err
		}
		return nf, nil
	default:
		toks, err := parseDate(code)
		if err != nil {
			return nil, err
		}
		nf.date = toks
		return nf, nil
	}
}

// String returns the format code.
func (nf *NumberFormat) String() string { return nf.code }

func (nf *NumberFormat) parseFixed(code string) error {
	s := code
	if rest, ok := strings.CutSuffix(s, "%"); ok {
		nf.percent = true
		s = rest
	}
	if rest, ok := strings.CutPrefix(s, "#,##"); ok {
		nf.group = true
		s = rest
	}
	intPart, frac, hasFrac := strings.Cut(s, ".")
	if intPart != "0" {
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, code)
	}
	if hasFrac {
		if frac == "" || strings.Trim(frac, "0") != "" {
			return fmt.Errorf("%w: %q", ErrUnsupportedFormat, code)
		}
		nf.places = len(frac)
	}
	return nil
}

func (nf *NumberFormat) format(v Value) string {
	switch {
	case nf.date != nil:
		return formatDate(nf.date, FromSerial(v.num))
	case nf.general:
		switch v.kind {
		case DateTime:
			t := v.DateTime()
			if t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 {
				return t.Format(time.DateOnly)
			}
			return t.Format(time.DateTime)
		case TimeSpan:
			return formatSpan(v.TimeSpan())
		}
		return decimal.NewFromFloat(v.num).Round(generalPlaces).String()
	}

	d := decimal.NewFromFloat(v.num)
	if nf.percent {
		d = d.Mul(decimal.New(100, 0))
	}
	s := d.StringFixed(int32(nf.places))
	if nf.group {
		s = groupThousands(s)
	}
	if nf.percent {
		s += "%"
	}
	return s
}

// groupThousands inserts commas into the integer part of s.
func groupThousands(s string) string {
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	intPart, frac, hasFrac := strings.Cut(s, ".")
	var b strings.Builder
	b.WriteString(sign)
	for i, c := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(c)
	}
	if hasFrac {
		b.WriteByte('.')
		b.WriteString(frac)
	}
	return b.String()
}

func formatSpan(d time.Duration) string {
	sign := ""
	if d < 0 {
		sign, d = "-", -d
	}
	d = d.Round(time.Second)
	h := int64(d / time.Hour)
	m := int64(d/time.Minute) % 60
	s := int64(d/time.Second) % 60
	return fmt.Sprintf("%s%d:%02d:%02d", sign, h, m, s)
}

type dateToken struct {
	field   byte // 'y', 'M', 'd', 'h', 'm', 's', or 0 for a literal
	width   int
	literal string
}

func parseDate(code string) ([]dateToken, error) {
	var toks []dateToken
	lastHour := false
	for i := 0; i < len(code); {
		c := code[i]
		switch c {
		case '-', '/', ':', '.', ',', ' ':
			toks = append(toks, dateToken{literal: string(c)})
			i++
			continue
		}
		lc := c | 0x20 // lower case
		if lc != 'y' && lc != 'm' && lc != 'd' && lc != 'h' && lc != 's' {
			return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, code)
		}
		j := i
		for j < len(code) && code[j]|0x20 == lc {
			j++
		}
		width := j - i
		field := lc
		switch lc {
		case 'y':
			if width != 2 && width != 4 {
				return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, code)
			}
		case 'm':
			if width > 2 {
				return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, code)
			}
			if !lastHour {
				field = 'M'
			}
		default:
			if width > 2 {
				return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, code)
			}
		}
		lastHour = lc == 'h'
		toks = append(toks, dateToken{field: field, width: width})
		i = j
	}
	if len(toks) == 0 {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, code)
	}
	return toks, nil
}

func formatDate(toks []dateToken, t time.Time) string {
	var b strings.Builder
	for _, tok := range toks {
		var n int
		switch tok.field {
		case 0:
			b.WriteString(tok.literal)
			continue
		case 'y':
			n = t.Year()
			if tok.width == 2 {
				n %= 100
			}
		case 'M':
			n = int(t.Month())
		case 'd':
			n = t.Day()
		case 'h':
			n = t.Hour()
		case 'm':
			n = t.Minute()
		case 's':
			n = t.Second()
		}
		s := strconv.Itoa(n)
		for len(s) < tok.width {
			s = "0" + s
		}
		b.WriteString(s)
	}
	return b.String()
}
