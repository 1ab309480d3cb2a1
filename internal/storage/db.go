// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package storage defines the ordered key/value store that
// worksheets are kept in, along with an in-memory implementation.
//
// Keys and values are byte slices; callers encode them with
// [rsc.io/ordered] so that related keys sort together.
//
// Database operations do not return errors. An implementation
// that fails (a disk error, say) calls [DB.Panic], since there
// is nothing useful the caller could do to recover.
package storage

import (
	"bytes"
	"iter"
	"log/slog"
	"strconv"
	"strings"

	"rsc.io/ordered"
)

// A DB is an ordered key/value store.
type DB interface {
	// Get returns the value associated with the key.
	Get(key []byte) (val []byte, ok bool)

	// Set sets the value associated with key to val.
	Set(key, val []byte)

	// Delete deletes any entry with the given key.
	Delete(key []byte)

	// DeleteRange deletes all entries with start ≤ key ≤ end.
	DeleteRange(start, end []byte)

	// Scan returns an iterator over all key-value pairs
	// in the range start ≤ key ≤ end.
	// The value is returned as a function so that callers
	// that only need the keys do not pay to load values.
	Scan(start, end []byte) iter.Seq2[[]byte, func() []byte]

	// Batch returns a new batch.
	Batch() Batch

	// Flush flushes everything to persistent storage.
	Flush()

	// Close closes the database.
	Close()

	// Panic logs the error message and args using the database's
	// slog.Logger and then panics with the text formatting of its arguments.
	Panic(msg string, args ...any)
}

// A Batch accumulates database mutations that are applied
// to a [DB] as a unit.
type Batch interface {
	// Set sets the value associated with key to val.
	Set(key, val []byte)

	// Delete deletes any entry with the given key.
	Delete(key []byte)

	// DeleteRange deletes all entries with start ≤ key ≤ end.
	DeleteRange(start, end []byte)

	// MaybeApply applies the batch if it is large enough,
	// reporting whether it did.
	MaybeApply() bool

	// Apply applies all the pending mutations and clears the batch.
	Apply()
}

// Panic panics with the text formatting of its arguments.
// It is meant to be called for database errors or corruption,
// which have been defined to be impossible.
// The arguments are key, value pairs as in [log/slog].
func Panic(msg string, args ...any) {
	var b bytes.Buffer
	slog.New(slog.NewTextHandler(&b, nil)).Error(msg, args...)
	s := b.String()
	if _, rest, ok := strings.Cut(s, " level=ERROR msg="); ok {
		s = rest
	}
	panic(strings.TrimSpace(s))
}

// Fmt formats data for printing,
// first trying [ordered.DecodeFmt] in case data is an [ordered encoding],
// then trying a backquoted string if possible,
// and finally falling back to [strconv.Quote].
//
// [ordered encoding]: https://pkg.go.dev/rsc.io/ordered
func Fmt(data []byte) string {
	if s, err := ordered.DecodeFmt(data); err == nil {
		return s
	}
	s := string(data)
	if strconv.CanBackquote(s) {
		return "`" + s + "`"
	}
	return strconv.Quote(s)
}
