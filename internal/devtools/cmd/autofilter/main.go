// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Autofilter applies autofilter definitions to a worksheet
and prints the rows that remain visible, as CSV.

Usage:

	autofilter [-db DBSPEC] [-csv FILE] [-header N] [-hidden] FILTERS.yaml

The worksheet is named by DBSPEC (see package dbspec), by default
an in-memory database. With -csv, FILE is first loaded into the
worksheet, replacing its contents; a Pebble worksheet keeps the
loaded cells for later runs.

FILTERS.yaml defines the filters of each column; see package
filterspec for the format. Columns are numbered from 0.

The first N rows (default 1) are a header: they are printed
but not filtered. With -hidden, the rows the filters hide are
printed instead of the visible ones.

Example:

	autofilter -db pebble:sales.db -csv sales.csv top10.yaml
*/
package main

import (
	"context"
	"encoding/csv"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"

	"go.opentelemetry.io/otel"
	"golang.org/x/autofilter/internal/autofilter"
	"golang.org/x/autofilter/internal/dbspec"
	"golang.org/x/autofilter/internal/filterspec"
	"golang.org/x/autofilter/internal/sheet"
)

var flags struct {
	db     string
	csv    string
	header int
	hidden bool
}

func init() {
	flag.StringVar(&flags.db, "db", "mem", "worksheet `spec`, as in pebble:DIR#SHEET")
	flag.StringVar(&flags.csv, "csv", "", "load worksheet from CSV `file`")
	flag.IntVar(&flags.header, "header", 1, "number of header rows, which are not filtered")
	flag.BoolVar(&flags.hidden, "hidden", false, "print hidden rows instead of visible ones")
}

func usage() {
	fmt.Fprintf(os.Stderr, "usage: autofilter [-db spec] [-csv file] [-header n] [-hidden] filters.yaml\n")
	flag.PrintDefaults()
	os.Exit(2)
}

func main() {
	log.SetFlags(0)
	log.SetPrefix("autofilter: ")
	flag.Usage = usage
	flag.Parse()
	if flag.NArg() != 1 {
		usage()
	}
	lg := slog.New(slog.NewTextHandler(os.Stderr, nil))
	if err := run(context.Background(), lg, flag.Arg(0), os.Stdout); err != nil {
		log.Fatal(err)
	}
}

func run(ctx context.Context, lg *slog.Logger, filterFile string, w io.Writer) error {
	if flags.header < 0 {
		return fmt.Errorf("negative -header %d", flags.header)
	}
	data, err := os.ReadFile(filterFile)
	if err != nil {
		return err
	}
	specs, err := filterspec.Parse(data)
	if err != nil {
		return err
	}
	cols, err := filterspec.Build(specs)
	if err != nil {
		return err
	}

	spec, err := dbspec.Parse(flags.db)
	if err != nil {
		return err
	}
	if spec.Kind == "mem" && flags.csv == "" {
		return errors.New("in-memory worksheet needs -csv")
	}
	s, db, err := spec.OpenSheet(lg)
	if err != nil {
		return err
	}
	defer db.Close()

	if flags.csv != "" {
		f, err := os.Open(flags.csv)
		if err != nil {
			return err
		}
		_, _, err = s.LoadCSV(f)
		f.Close()
		if err != nil {
			return err
		}
		db.Flush()
	}

	af := autofilter.New(lg, otel.Meter("golang.org/x/autofilter"))
	for col, c := range cols {
		af.SetColumn(col, c)
	}
	tab := s.Table(flags.header)
	res, err := af.Apply(ctx, tab)
	if err != nil {
		return err
	}

	rows := res.Visible
	if flags.hidden {
		rows = res.Hidden
	}
	nrow, ncol := s.Dims()
	cw := csv.NewWriter(w)
	for row := range min(flags.header, nrow) {
		if err := writeRow(cw, s, row, ncol); err != nil {
			return err
		}
	}
	for _, row := range rows {
		if err := writeRow(cw, s, tab.SheetRow(row), ncol); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// writeRow writes the display text of a sheet row as a CSV record.
func writeRow(cw *csv.Writer, s *sheet.Sheet, row, ncol int) error {
	cells, err := s.Row(row, ncol)
	if err != nil {
		return err
	}
	rec := make([]string, len(cells))
	for i, c := range cells {
		if rec[i], err = c.FormattedString(); err != nil {
			return err
		}
	}
	return cw.Write(rec)
}
