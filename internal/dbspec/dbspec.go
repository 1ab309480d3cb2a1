// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package dbspec implements a string notation for referring to
// a worksheet in a database.
// A specification can take one of these forms:
//
// pebble:DIR[#SHEET]
//
//	A Pebble database in the directory DIR.
//	DIR can be relative or absolute.
//	The database is created if DIR does not exist.
//
// mem[#SHEET]
//
//	An in-memory database, lost when the program exits.
//
// SHEET names the worksheet within the database.
// It defaults to [DefaultSheet].
package dbspec

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/autofilter/internal/pebble"
	"golang.org/x/autofilter/internal/sheet"
	"golang.org/x/autofilter/internal/storage"
)

// DefaultSheet is the sheet a specification without a #SHEET suffix refers to.
const DefaultSheet = "Sheet1"

// A Spec is the parsed representation of a specification string.
type Spec struct {
	Kind     string // "pebble" or "mem"
	Location string // directory, for pebble
	Sheet    string // worksheet name
}

func (s *Spec) String() string {
	var ss string
	if s.Sheet != DefaultSheet {
		ss = "#" + s.Sheet
	}
	switch s.Kind {
	case "mem":
		return "mem" + ss
	case "pebble":
		return "pebble:" + s.Location + ss
	default:
		return fmt.Sprintf("%#v", s)
	}
}

// Open opens the database described by the spec.
func (s *Spec) Open(lg *slog.Logger) (storage.DB, error) {
	switch s.Kind {
	case "mem":
		return storage.MemDB(), nil
	case "pebble":
		if _, err := os.Stat(s.Location); errors.Is(err, fs.ErrNotExist) {
			lg.Info("creating pebble database", "dir", s.Location)
			return pebble.Create(lg, s.Location)
		}
		return pebble.Open(lg, s.Location)
	default:
		return nil, fmt.Errorf("unknown DB kind %q", s.Kind)
	}
}

// OpenSheet opens the database described by the spec and
// returns the spec's sheet in it.
// The caller must close the database when done.
func (s *Spec) OpenSheet(lg *slog.Logger) (*sheet.Sheet, storage.DB, error) {
	db, err := s.Open(lg)
	if err != nil {
		return nil, nil, err
	}
	return sheet.New(lg, db, s.Sheet), db, nil
}

// Parse parses a specification string into a [Spec].
func Parse(s string) (_ *Spec, err error) {
	defer func() {
		if err != nil {
			err = fmt.Errorf("dbspec.Parse(%q): %v", s, err)
		}
	}()

	rest, name, hasHash := strings.Cut(s, "#")
	if hasHash && name == "" {
		return nil, errors.New("empty sheet name after '#'")
	}
	if !hasHash {
		name = DefaultSheet
	}
	kind, middle, hasColon := strings.Cut(rest, ":")

	spec := &Spec{Kind: kind, Sheet: name}

	switch kind {
	case "mem":
		if hasColon {
			return nil, errors.New("invalid 'mem' spec: should be mem[#SHEET]")
		}

	case "pebble":
		if len(middle) == 0 {
			return nil, errors.New("pebble spec missing directory; want pebble:DIR[#SHEET]")
		}
		spec.Location = filepath.Clean(middle)

	default:
		return nil, fmt.Errorf("unknown kind %q", kind)
	}
	return spec, nil
}
