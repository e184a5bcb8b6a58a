// Copyright 2021, 2026 Tamás Gulácsi.
//
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterbourgon/ff/v3"
	"github.com/peterbourgon/ff/v3/ffcli"

	"github.com/UNO-SOFT/sheetcalc"
)

func mergeCmd(cfg *config, opts []ff.Option) *ffcli.Command {
	fs := flag.NewFlagSet("merge", flag.ContinueOnError)
	return &ffcli.Command{
		Name:       "merge",
		ShortUsage: "merge <output.xlsx|.pdf|.html> [name:]input.csv...",
		ShortHelp:  "collect CSV files as sheets of one document, the first row being a bold header",
		FlagSet:    fs,
		Options:    opts,
		Exec: func(ctx context.Context, args []string) error {
			if len(args) < 2 {
				return flag.ErrHelp
			}
			fn := args[0]
			fh := os.Stdout
			if !(fn == "" || fn == "-") {
				var err error
				if fh, err = os.Create(fn); err != nil {
					return err
				}
				defer fh.Close()
			}
			w, err := cfg.newWriter(fh, format(fn), strings.TrimSuffix(filepath.Base(fn), filepath.Ext(fn)))
			if err != nil {
				return err
			}
			for i, fn := range args[1:] {
				sheetName := fmt.Sprintf("Sheet%d", i+1)
				if i := strings.IndexByte(fn, ':'); i >= 0 {
					sheetName, fn = fn[:i], fn[i+1:]
				} else if fn != "" && fn != "-" {
					sheetName = strings.TrimSuffix(filepath.Base(fn), ".csv")
				}
				if err := cfg.copyFile(w, sheetName, fn); err != nil {
					w.Close()
					return fmt.Errorf("%q: %w", fn, err)
				}
			}
			if err := w.Close(); err != nil {
				return err
			}
			if fh == os.Stdout {
				return nil
			}
			return fh.Close()
		},
	}
}

// copyFile writes the CSV file as a new sheet of w, its first row as header.
func (cfg *config) copyFile(w sheetcalc.Writer, sheetName, fn string) error {
	grid, dims, err := sheetcalc.OpenCSV(fn, cfg.Charset)
	if err != nil {
		return err
	}
	cols := make([]sheetcalc.Column, dims.Cols)
	for i := range cols {
		cols[i].HeaderBold = true
		if c, ok := grid.Get(sheetcalc.Addr(1, i+1)); ok {
			cols[i].Name = c.Value.String()
		}
	}
	sheet, err := w.NewSheet(sheetName, cols)
	if err != nil {
		return err
	}
	row := make([]any, dims.Cols)
	for r := 2; r <= dims.Rows; r++ {
		for i := range row {
			row[i] = nil
			if c, ok := grid.Get(sheetcalc.Addr(r, i+1)); ok {
				row[i] = c.Value.Native()
			}
		}
		if err := sheet.AppendRow(row...); err != nil {
			return err
		}
	}
	return sheet.Close()
}
