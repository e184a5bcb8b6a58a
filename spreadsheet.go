// Copyright 2020, 2026 Tamás Gulácsi.
//
// SPDX-License-Identifier: Apache-2.0

// Package sheetcalc is the cell model of the spreadsheet engine:
// addresses, values, styles, the sparse Store and the file boundary.
package sheetcalc

import (
	"errors"
	"fmt"
	"io"
)

// Writer writes the spreadsheet consisting of the sheets created
// with NewSheet. The write finishes when Close is called.
type Writer interface {
	io.Closer
	NewSheet(name string, cols []Column) (Sheet, error)
}

// Sheet should be Closed when finished.
type Sheet interface {
	io.Closer
	AppendRow(values ...any) error
}

// Column contains the Name of the column and whether its header is bold.
// A sheet whose columns all have empty names has no header row.
type Column struct {
	Name       string
	HeaderBold bool
}

var ErrTooManyRows = errors.New("too many rows")

// Export writes every address of [1..dims.Rows]×[1..dims.Cols] row-major into a new sheet of w.
// Absent cells are written as nil; formulas and styles are not exported.
// It does not Close w.
func Export(w Writer, name string, grid GridData, dims Dimensions) error {
	if dims.Rows > MaxRows {
		return fmt.Errorf("%w: %d rows: %w", ErrExportFailed, dims.Rows, ErrTooManyRows)
	}
	sheet, err := w.NewSheet(name, make([]Column, max(0, dims.Cols)))
	if err != nil {
		return fmt.Errorf("%w: new sheet %q: %w", ErrExportFailed, name, err)
	}
	row := make([]any, max(0, dims.Cols))
	for r := 1; r <= dims.Rows; r++ {
		for c := range row {
			row[c] = nil
			if cell, ok := grid[Addr(r, c+1)]; ok {
				row[c] = cell.Value.Native()
			}
		}
		if err := sheet.AppendRow(row...); err != nil {
			return fmt.Errorf("%w: row %d: %w", ErrExportFailed, r, err)
		}
	}
	if err := sheet.Close(); err != nil {
		return fmt.Errorf("%w: %w", ErrExportFailed, err)
	}
	return nil
}
