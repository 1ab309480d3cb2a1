// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package storage

import (
	"fmt"
	"slices"
	"testing"

	"rsc.io/ordered"
)

// TestDB runs basic tests on db.
// It should be empty when TestDB is called.
// Implementations of [DB] call it from their own tests.
func TestDB(t *testing.T, db DB) {
	db.Set([]byte("key"), []byte("value"))
	if val, ok := db.Get([]byte("key")); string(val) != "value" || !ok {
		t.Fatalf("Get(key) = %q, %v, want %q, true", val, ok, "value")
	}
	if val, ok := db.Get([]byte("missing")); val != nil || ok {
		t.Fatalf("Get(missing) = %v, %v, want nil, false", val, ok)
	}

	// Values returned by Get are owned by the caller.
	val, _ := db.Get([]byte("key"))
	val[0] = 'X'
	if val, _ := db.Get([]byte("key")); string(val) != "value" {
		t.Fatalf("Get(key) after modifying result = %q, want %q", val, "value")
	}

	db.Delete([]byte("key"))
	if val, ok := db.Get([]byte("key")); val != nil || ok {
		t.Fatalf("Get(key) after delete = %v, %v, want nil, false", val, ok)
	}

	// Keys shaped like worksheet cells: (sheet, row, col).
	cellKey := func(row, col int) []byte { return ordered.Encode("t", row, col) }

	b := db.Batch()
	for row := range 10 {
		for col := range 2 {
			b.Set(cellKey(row, col), []byte(fmt.Sprint(row*10+col)))
		}
		b.MaybeApply()
	}
	b.Apply()

	collect := func(lo, hi, stop int) []int {
		t.Helper()
		var list []int
		for key, val := range db.Scan(ordered.Encode("t", lo), ordered.Encode("t", hi, ordered.Inf)) {
			var row, col int
			if err := ordered.Decode(key, nil, &row, &col); err != nil {
				t.Fatalf("db.Scan malformed key %v", Fmt(key))
			}
			if sv, want := string(val()), fmt.Sprint(row*10+col); sv != want {
				t.Fatalf("db.Scan key %v val=%q, want %q", Fmt(key), sv, want)
			}
			if col == 0 {
				list = append(list, row)
			}
			if row == stop && col == 1 {
				break
			}
		}
		return list
	}

	if scan, want := collect(3, 6, -1), []int{3, 4, 5, 6}; !slices.Equal(scan, want) {
		t.Fatalf("Scan(rows 3-6) = %v, want %v", scan, want)
	}
	if scan, want := collect(3, 6, 5), []int{3, 4, 5}; !slices.Equal(scan, want) {
		t.Fatalf("Scan(rows 3-6) with break at 5 = %v, want %v", scan, want)
	}

	db.DeleteRange(ordered.Encode("t", 4), ordered.Encode("t", 7, ordered.Inf))
	if scan, want := collect(-1, 11, -1), []int{0, 1, 2, 3, 8, 9}; !slices.Equal(scan, want) {
		t.Fatalf("Scan(all) after DeleteRange(rows 4-7) = %v, want %v", scan, want)
	}

	b = db.Batch()
	for row := range 5 {
		b.Delete(cellKey(row, 0))
		b.Delete(cellKey(row, 1))
		b.Set(cellKey(2*row, 0), []byte(fmt.Sprint(20*row)))
		b.Set(cellKey(2*row, 1), []byte(fmt.Sprint(20*row+1)))
	}
	b.DeleteRange(ordered.Encode("t", 0), ordered.Encode("t", 0, ordered.Inf))
	b.Apply()
	if scan, want := collect(-1, 11, -1), []int{6, 8, 9}; !slices.Equal(scan, want) {
		t.Fatalf("Scan(all) after batch Delete+Set = %v, want %v", scan, want)
	}

	// The loop body may write to the database during a scan.
	for key := range db.Scan(ordered.Encode("t", 8), ordered.Encode("t", 8, ordered.Inf)) {
		db.Set(key, []byte("x"))
	}
	if val, _ := db.Get(cellKey(8, 1)); string(val) != "x" {
		t.Fatalf("Get(8, 1) after scan rewrite = %q, want %q", val, "x")
	}

	// Apply clears the batch.
	k := ordered.Encode("a")
	b = db.Batch()
	b.Set(k, []byte{0})
	b.Apply()
	db.Delete(k)
	b.Apply()
	if _, ok := db.Get(k); ok {
		t.Fatalf("empty Apply should be no-op, but got previous value")
	}

	// Can't test much, but check that it doesn't crash.
	db.Flush()
}
