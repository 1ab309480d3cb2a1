// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package wildcard implements spreadsheet wildcard patterns.
//
// In a pattern, * matches any sequence of characters (including none),
// ? matches exactly one character, and ~ makes the following character
// literal, so that ~*, ~? and ~~ match *, ? and ~.
// A ~ at the end of a pattern is a literal ~.
// All other characters match themselves, ignoring case.
package wildcard

import (
	"unicode"
	"unicode/utf8"
)

// A Pattern is a compiled wildcard pattern.
// It is safe for concurrent use.
type Pattern struct {
	src  string
	toks []token
}

type tokenKind uint8

const (
	tokLiteral tokenKind = iota
	tokOne               // ?
	tokStar              // *
)

type token struct {
	kind tokenKind
	r    rune // for tokLiteral
}

// Compile compiles a wildcard pattern.
// Every string is a valid pattern.
func Compile(pattern string) *Pattern {
	p := &Pattern{src: pattern}
	rs := []rune(pattern)
	for i := 0; i < len(rs); i++ {
		switch r := rs[i]; r {
		case '*':
			// Adjacent stars are equivalent to one.
			if n := len(p.toks); n > 0 && p.toks[n-1].kind == tokStar {
				continue
			}
			p.toks = append(p.toks, token{kind: tokStar})
		case '?':
			p.toks = append(p.toks, token{kind: tokOne})
		case '~':
			if i+1 < len(rs) {
				i++
				r = rs[i]
			}
			p.toks = append(p.toks, token{kind: tokLiteral, r: r})
		default:
			p.toks = append(p.toks, token{kind: tokLiteral, r: r})
		}
	}
	return p
}

// String returns the source text of the pattern.
func (p *Pattern) String() string { return p.src }

// Match reports whether the pattern matches all of text.
func (p *Pattern) Match(text string) bool {
	return match(p.toks, []rune(text), false)
}

// Search returns the byte offset in text of the first position
// at which the pattern matches, or -1 if there is none.
// Unlike [Pattern.Match], the pattern need not extend to the
// end of text.
func (p *Pattern) Search(text string) int {
	rs := []rune(text)
	off := 0
	for i := 0; i <= len(rs); i++ {
		if match(p.toks, rs[i:], true) {
			return off
		}
		if i < len(rs) {
			off += utf8.RuneLen(rs[i])
		}
	}
	return -1
}

// Match reports whether pattern matches all of text.
func Match(pattern, text string) bool {
	return Compile(pattern).Match(text)
}

// match reports whether toks matches s.
// If prefix is set, toks need only match a prefix of s.
// Mismatches backtrack to the most recent star,
// which then absorbs one more rune.
func match(toks []token, s []rune, prefix bool) bool {
	ti, si := 0, 0
	starT, starS := -1, 0
	for si < len(s) {
		if ti == len(toks) && prefix {
			return true
		}
		if ti < len(toks) {
			switch tok := toks[ti]; tok.kind {
			case tokStar:
				starT, starS = ti, si
				ti++
				continue
			case tokOne:
				ti++
				si++
				continue
			case tokLiteral:
				if equalFold(tok.r, s[si]) {
					ti++
					si++
					continue
				}
			}
		}
		if starT < 0 {
			return false
		}
		starS++
		si = starS
		ti = starT + 1
	}
	for ti < len(toks) && toks[ti].kind == tokStar {
		ti++
	}
	return ti == len(toks)
}

// equalFold reports whether a and b are equal under
// simple Unicode case folding.
func equalFold(a, b rune) bool {
	if a == b {
		return true
	}
	for f := unicode.SimpleFold(a); f != a; f = unicode.SimpleFold(f) {
		if f == b {
			return true
		}
	}
	return false
}
