// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package autofilter decides which rows of a spreadsheet
// table a column autofilter shows.
//
// A [Filter] is a single condition on a column's cells, built by one
// of the New functions. A [Column] combines the filters of one column
// using each filter's [Connector], and an [AutoFilter] applies the
// columns of a table, showing a row only when every filtered column
// accepts it.
//
// Top/bottom and above/below average filters depend on statistics of
// the whole column. Those are carried by a [ColumnContext], which
// [Column.Prepare] computes; evaluating such a filter without them
// fails with [ErrContextNotReady].
package autofilter
