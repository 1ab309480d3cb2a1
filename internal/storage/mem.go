// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package storage

import (
	"iter"
	"slices"
	"sync"

	"rsc.io/omap"
)

// MemDB returns an in-memory DB implementation.
// It is meant for tests and for worksheets that
// do not outlive the process.
func MemDB() DB {
	return new(memDB)
}

type memDB struct {
	mu   sync.RWMutex
	data omap.Map[string, []byte]
}

func (db *memDB) Close() {}

func (db *memDB) Flush() {}

func (db *memDB) Panic(msg string, args ...any) {
	Panic(msg, args...)
}

func (db *memDB) Get(key []byte) (val []byte, ok bool) {
	db.mu.RLock()
	v, ok := db.data.Get(string(key))
	db.mu.RUnlock()
	if ok {
		v = slices.Clone(v)
	}
	return v, ok
}

func (db *memDB) Set(key, val []byte) {
	if len(key) == 0 {
		db.Panic("memdb set: empty key")
	}
	db.mu.Lock()
	db.data.Set(string(key), slices.Clone(val))
	db.mu.Unlock()
}

func (db *memDB) Delete(key []byte) {
	db.mu.Lock()
	db.data.Delete(string(key))
	db.mu.Unlock()
}

func (db *memDB) DeleteRange(start, end []byte) {
	db.mu.Lock()
	db.data.DeleteRange(string(start), string(end))
	db.mu.Unlock()
}

// Scan holds the read lock only between yields,
// so the loop body may modify the database.
func (db *memDB) Scan(start, end []byte) iter.Seq2[[]byte, func() []byte] {
	lo := string(start)
	hi := string(end)
	return func(yield func(key []byte, val func() []byte) bool) {
		db.mu.RLock()
		locked := true
		defer func() {
			if locked {
				db.mu.RUnlock()
			}
		}()
		for k, v := range db.data.Scan(lo, hi) {
			key := []byte(k)
			val := func() []byte { return slices.Clone(v) }
			db.mu.RUnlock()
			locked = false
			if !yield(key, val) {
				return
			}
			db.mu.RLock()
			locked = true
		}
	}
}

func (db *memDB) Batch() Batch {
	return &memBatch{db: db}
}

// A memBatch is a Batch for a memDB.
type memBatch struct {
	db  *memDB
	ops []func()
}

func (b *memBatch) Set(key, val []byte) {
	if len(key) == 0 {
		b.db.Panic("memdb batch set: empty key")
	}
	k := string(key)
	v := slices.Clone(val)
	b.ops = append(b.ops, func() { b.db.data.Set(k, v) })
}

func (b *memBatch) Delete(key []byte) {
	k := string(key)
	b.ops = append(b.ops, func() { b.db.data.Delete(k) })
}

func (b *memBatch) DeleteRange(start, end []byte) {
	lo := string(start)
	hi := string(end)
	b.ops = append(b.ops, func() { b.db.data.DeleteRange(lo, hi) })
}

func (b *memBatch) MaybeApply() bool {
	return false
}

func (b *memBatch) Apply() {
	b.db.mu.Lock()
	defer b.db.mu.Unlock()

	for _, op := range b.ops {
		op()
	}
	b.ops = nil
}
