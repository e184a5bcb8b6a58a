// Copyright 2020, 2026 Tamás Gulácsi.
//
// SPDX-License-Identifier: Apache-2.0

// Package xlsx reads and writes Office Open XML workbooks.
package xlsx

import (
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/UNO-SOFT/sheetcalc"
	"github.com/xuri/excelize/v2"
)

var _ = (sheetcalc.Writer)((*XLSXWriter)(nil))

type XLSXWriter struct {
	w      io.Writer
	xl     *excelize.File
	bold   int
	sheets []string
	mu     sync.Mutex
}

type XLSXSheet struct {
	xl   *excelize.File
	Name string
	row  int
	mu   sync.Mutex
}

// NewWriter returns a new sheetcalc.Writer.
//
// This writer allows concurrent writes to separate sheets.
//
// This writer collects everything in memory and writes the workbook on Close.
func NewWriter(w io.Writer) *XLSXWriter {
	return &XLSXWriter{w: w, xl: excelize.NewFile()}
}

func (xlw *XLSXWriter) Close() error {
	if xlw == nil {
		return nil
	}
	xlw.mu.Lock()
	defer xlw.mu.Unlock()
	xl, w := xlw.xl, xlw.w
	xlw.xl, xlw.w = nil, nil
	if xl == nil || w == nil {
		return nil
	}
	defer xl.Close()
	_, err := xl.WriteTo(w)
	return err
}

func (xlw *XLSXWriter) NewSheet(name string, columns []sheetcalc.Column) (sheetcalc.Sheet, error) {
	xlw.mu.Lock()
	defer xlw.mu.Unlock()
	if xlw.xl == nil {
		return nil, fmt.Errorf("%s: writer is closed", name)
	}
	xlw.sheets = append(xlw.sheets, name)
	if len(xlw.sheets) == 1 { // first
		if err := xlw.xl.SetSheetName("Sheet1", name); err != nil {
			return nil, err
		}
	} else if _, err := xlw.xl.NewSheet(name); err != nil {
		return nil, err
	}
	var hasHeader bool
	for i, c := range columns {
		if c.Name == "" {
			continue
		}
		hasHeader = true
		axis, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		if err = xlw.xl.SetCellStr(name, axis, c.Name); err != nil {
			return nil, err
		}
		if !c.HeaderBold {
			continue
		}
		s, err := xlw.boldStyle()
		if err != nil {
			return nil, err
		}
		if err = xlw.xl.SetCellStyle(name, axis, axis, s); err != nil {
			return nil, err
		}
	}
	xls := &XLSXSheet{xl: xlw.xl, Name: name}
	if hasHeader {
		xls.row++
	}
	return xls, nil
}

func (xlw *XLSXWriter) boldStyle() (int, error) {
	if xlw.bold != 0 {
		return xlw.bold, nil
	}
	s, err := xlw.xl.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return 0, err
	}
	xlw.bold = s
	return s, nil
}

// MaxRowCount is the number of maximum rows.
const MaxRowCount = sheetcalc.MaxRows

func (xls *XLSXSheet) Close() error { return nil }

// AppendRow writes the next row. nil values leave the cell blank.
func (xls *XLSXSheet) AppendRow(values ...any) error {
	xls.mu.Lock()
	defer xls.mu.Unlock()
	if xls.row >= MaxRowCount {
		return sheetcalc.ErrTooManyRows
	}
	xls.row++
	for i, v := range values {
		if v == nil {
			continue
		}
		axis, err := excelize.CoordinatesToCellName(i+1, xls.row)
		if err != nil {
			return fmt.Errorf("%d/%d: %w", i, xls.row, err)
		}
		switch x := v.(type) {
		case float64:
			if math.IsInf(x, 0) || math.IsNaN(x) {
				err = xls.xl.SetCellStr(xls.Name, axis, sheetcalc.FormatNumber(x))
			} else {
				err = xls.xl.SetCellFloat(xls.Name, axis, x, -1, 64)
			}
		case string:
			err = xls.xl.SetCellStr(xls.Name, axis, x)
		case bool:
			err = xls.xl.SetCellBool(xls.Name, axis, x)
		case time.Time:
			if !x.IsZero() {
				err = xls.xl.SetCellStr(xls.Name, axis, x.Format("2006-01-02"))
			}
		case fmt.Stringer:
			err = xls.xl.SetCellStr(xls.Name, axis, x.String())
		default:
			err = xls.xl.SetCellValue(xls.Name, axis, v)
		}
		if err != nil {
			return fmt.Errorf("%s[%s]: %w", xls.Name, axis, err)
		}
	}
	return nil
}

// Import reads the values of the first sheet of the workbook.
// Formulas are not imported, only their cached values.
func Import(r io.Reader) (sheetcalc.GridData, sheetcalc.Dimensions, error) {
	xl, err := excelize.OpenReader(r)
	if err != nil {
		return nil, sheetcalc.Dimensions{}, fmt.Errorf("%w: %w", sheetcalc.ErrImportFailed, err)
	}
	defer xl.Close()
	sheets := xl.GetSheetList()
	if len(sheets) == 0 {
		return sheetcalc.GridData{}, sheetcalc.Dimensions{}, nil
	}
	rows, err := xl.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, sheetcalc.Dimensions{}, fmt.Errorf("%w: %s: %w", sheetcalc.ErrImportFailed, sheets[0], err)
	}
	if len(rows) > sheetcalc.MaxRows {
		return nil, sheetcalc.Dimensions{}, fmt.Errorf("%w: %d rows: %w", sheetcalc.ErrImportFailed, len(rows), sheetcalc.ErrTooManyRows)
	}
	grid := make(sheetcalc.GridData)
	var dims sheetcalc.Dimensions
	for i, row := range rows {
		for j, s := range row {
			if s == "" {
				continue
			}
			a := sheetcalc.Addr(i+1, j+1)
			v := rawValue(s)
			if s == "1" || s == "0" {
				if typ, err := xl.GetCellType(sheets[0], a.A1()); err == nil && typ == excelize.CellTypeBool {
					v = sheetcalc.Bool(s == "1")
				}
			}
			grid[a] = sheetcalc.Cell{Addr: a, Value: v}
			dims = dims.Cover(a)
		}
	}
	return grid, dims, nil
}

// ImportFile is Import of the named file.
func ImportFile(fn string) (sheetcalc.GridData, sheetcalc.Dimensions, error) {
	fh, err := os.Open(fn)
	if err != nil {
		return nil, sheetcalc.Dimensions{}, fmt.Errorf("%w: %w", sheetcalc.ErrImportFailed, err)
	}
	defer fh.Close()
	return Import(fh)
}

// rawValue parses a raw cell value, which holds numbers in exponent form too.
func rawValue(s string) sheetcalc.CellValue {
	if f, err := strconv.ParseFloat(s, 64); err == nil && !math.IsInf(f, 0) && !math.IsNaN(f) {
		return sheetcalc.Number(f)
	}
	return sheetcalc.ParseValue(s)
}
