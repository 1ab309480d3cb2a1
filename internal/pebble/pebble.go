// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package pebble implements an on-disk [storage.DB]
// using [github.com/cockroachdb/pebble].
// Worksheets loaded into it persist between runs.
package pebble

import (
	"bytes"
	"errors"
	"fmt"
	"iter"
	"log/slog"

	"github.com/cockroachdb/pebble"
	"golang.org/x/autofilter/internal/storage"
)

// Open opens an existing Pebble database in the named directory.
// The database must already exist.
func Open(lg *slog.Logger, dir string) (storage.DB, error) {
	return open(lg, dir, &pebble.Options{ErrorIfNotExists: true})
}

// Create creates a new Pebble database in the named directory.
// The database must not already exist.
func Create(lg *slog.Logger, dir string) (storage.DB, error) {
	return open(lg, dir, &pebble.Options{ErrorIfExists: true})
}

func open(lg *slog.Logger, dir string, opts *pebble.Options) (storage.DB, error) {
	opts.Logger = &logger{lg}
	p, err := pebble.Open(dir, opts)
	if err != nil {
		lg.Error("pebble open", "dir", dir, "create", opts.ErrorIfExists, "err", err)
		return nil, err
	}
	return &db{p: p, slog: lg}, nil
}

// A logger forwards Pebble's internal log messages to an slog.Logger.
type logger struct {
	slog *slog.Logger
}

func (l *logger) Infof(format string, args ...any) {
	l.slog.Info("pebble", "msg", fmt.Sprintf(format, args...))
}

func (l *logger) Errorf(format string, args ...any) {
	l.slog.Error("pebble", "msg", fmt.Sprintf(format, args...))
}

func (l *logger) Fatalf(format string, args ...any) {
	storage.Panic("pebble fatal", "msg", fmt.Sprintf(format, args...))
}

type db struct {
	p    *pebble.DB
	slog *slog.Logger
}

func (d *db) Panic(msg string, args ...any) {
	d.slog.Error(msg, args...)
	storage.Panic(msg, args...)
}

func (d *db) Get(key []byte) (val []byte, ok bool) {
	v, c, err := d.p.Get(key)
	if errors.Is(err, pebble.ErrNotFound) {
		return nil, false
	}
	if err != nil {
		d.Panic("pebble get", "key", storage.Fmt(key), "err", err)
	}
	defer c.Close()
	return bytes.Clone(v), true
}

func (d *db) Set(key, val []byte) {
	if err := d.p.Set(key, val, pebble.Sync); err != nil {
		d.Panic("pebble set", "key", storage.Fmt(key), "err", err)
	}
}

func (d *db) Delete(key []byte) {
	if err := d.p.Delete(key, pebble.Sync); err != nil {
		d.Panic("pebble delete", "key", storage.Fmt(key), "err", err)
	}
}

// inclusive returns the smallest key after end,
// turning Pebble's half-open ranges into closed ones.
func inclusive(end []byte) []byte {
	return append(bytes.Clone(end), 0)
}

func (d *db) DeleteRange(start, end []byte) {
	if err := d.p.DeleteRange(start, inclusive(end), pebble.Sync); err != nil {
		d.Panic("pebble delete range", "start", storage.Fmt(start), "end", storage.Fmt(end), "err", err)
	}
}

func (d *db) Scan(start, end []byte) iter.Seq2[[]byte, func() []byte] {
	return func(yield func(key []byte, val func() []byte) bool) {
		it, err := d.p.NewIter(&pebble.IterOptions{
			LowerBound: start,
			UpperBound: inclusive(end),
		})
		if err != nil {
			d.Panic("pebble new iterator", "start", storage.Fmt(start), "err", err)
		}
		defer it.Close()
		for it.First(); it.Valid(); it.Next() {
			key := bytes.Clone(it.Key())
			val := func() []byte {
				v, err := it.ValueAndErr()
				if err != nil {
					d.Panic("pebble iterator value", "key", storage.Fmt(key), "err", err)
				}
				return bytes.Clone(v)
			}
			if !yield(key, val) {
				return
			}
		}
		if err := it.Error(); err != nil {
			d.Panic("pebble iterator", "start", storage.Fmt(start), "err", err)
		}
	}
}

func (d *db) Flush() {
	if err := d.p.Flush(); err != nil {
		d.Panic("pebble flush", "err", err)
	}
}

func (d *db) Close() {
	if err := d.p.Close(); err != nil {
		d.Panic("pebble close", "err", err)
	}
}

func (d *db) Batch() storage.Batch {
	return &batch{db: d, b: d.p.NewBatch()}
}

// maxBatch is the encoded size at which MaybeApply commits a batch.
const maxBatch = 100 << 20

type batch struct {
	db *db
	b  *pebble.Batch
}

func (b *batch) Set(key, val []byte) {
	if len(key) == 0 {
		b.db.Panic("pebble batch set: empty key")
	}
	if err := b.b.Set(key, val, nil); err != nil {
		b.db.Panic("pebble batch set", "key", storage.Fmt(key), "err", err)
	}
}

func (b *batch) Delete(key []byte) {
	if err := b.b.Delete(key, nil); err != nil {
		b.db.Panic("pebble batch delete", "key", storage.Fmt(key), "err", err)
	}
}

func (b *batch) DeleteRange(start, end []byte) {
	if err := b.b.DeleteRange(start, inclusive(end), nil); err != nil {
		b.db.Panic("pebble batch delete range", "start", storage.Fmt(start), "end", storage.Fmt(end), "err", err)
	}
}

func (b *batch) MaybeApply() bool {
	if b.b.Len() < maxBatch {
		return false
	}
	b.Apply()
	return true
}

func (b *batch) Apply() {
	if b.b.Empty() {
		return
	}
	if err := b.b.Commit(pebble.Sync); err != nil {
		b.db.Panic("pebble batch commit", "err", err)
	}
	b.b.Reset()
}
