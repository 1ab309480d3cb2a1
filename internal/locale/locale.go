// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package locale determines the user's collation locale
// and compares text the way that locale sorts it.
package locale

import (
	"os"
	"strings"
	"sync"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Current returns the collation locale of the process,
// taken from the environment as by [FromEnv].
func Current() language.Tag {
	return FromEnv(os.Getenv)
}

// FromEnv returns the collation locale named by the first of
// LC_ALL, LC_COLLATE and LANG that is set, using getenv to read them.
// POSIX names such as "de_DE.UTF-8@euro" are accepted.
// The C and POSIX locales, and names that do not parse,
// yield [language.Und], which collates by the root ordering.
func FromEnv(getenv func(string) string) language.Tag {
	for _, key := range []string{"LC_ALL", "LC_COLLATE", "LANG"} {
		if v := getenv(key); v != "" {
			return parsePOSIX(v)
		}
	}
	return language.Und
}

func parsePOSIX(name string) language.Tag {
	name, _, _ = strings.Cut(name, "@")
	name, _, _ = strings.Cut(name, ".")
	if name == "" || name == "C" || name == "POSIX" {
		return language.Und
	}
	tag, err := language.Parse(strings.ReplaceAll(name, "_", "-"))
	if err != nil {
		return language.Und
	}
	return tag
}

// A Comparer compares text case-insensitively in the
// collation order of a locale.
// It is safe for concurrent use.
type Comparer struct {
	tag  language.Tag
	pool sync.Pool // of *collate.Collator
}

// NewComparer returns a case-insensitive comparer for tag.
func NewComparer(tag language.Tag) *Comparer {
	c := &Comparer{tag: tag}
	c.pool.New = func() any {
		return collate.New(tag, collate.IgnoreCase)
	}
	return c
}

// Tag returns the locale of c.
func (c *Comparer) Tag() language.Tag { return c.tag }

// Compare returns -1, 0 or +1 depending on whether a sorts
// before, the same as, or after b.
func (c *Comparer) Compare(a, b string) int {
	// Collators keep scratch buffers; don't share them.
	col := c.pool.Get().(*collate.Collator)
	defer c.pool.Put(col)
	return col.CompareString(a, b)
}
