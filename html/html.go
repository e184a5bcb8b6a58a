// Copyright 2026, Tamás Gulácsi.
//
// SPDX-License-Identifier: Apache-2.0

// Package html renders sheets as an HTML page.
//
//go:generate qtc -file=table.qtpl
package html

import (
	"bytes"
	"fmt"
	"io"
	"sync"

	"github.com/UNO-SOFT/sheetcalc"
)

var _ = (sheetcalc.Writer)((*Writer)(nil))

// Writer collects sheets and writes the page on Close.
type Writer struct {
	w      io.Writer
	title  string
	tables []*Table
	mu     sync.Mutex
}

// NewWriter returns a sheetcalc.Writer producing one HTML page titled title.
func NewWriter(w io.Writer, title string) *Writer {
	return &Writer{w: w, title: title}
}

func (hw *Writer) NewSheet(name string, columns []sheetcalc.Column) (sheetcalc.Sheet, error) {
	hw.mu.Lock()
	defer hw.mu.Unlock()
	if hw.w == nil {
		return nil, fmt.Errorf("%s: writer is closed", name)
	}
	t := &Table{Name: name}
	for _, c := range columns {
		if c.Name != "" {
			t.Header = make([]string, len(columns))
			t.Bold = make([]bool, len(columns))
			for i, c := range columns {
				t.Header[i], t.Bold[i] = c.Name, c.HeaderBold
			}
			break
		}
	}
	hw.tables = append(hw.tables, t)
	return &sheet{t: t}, nil
}

func (hw *Writer) Close() error {
	hw.mu.Lock()
	defer hw.mu.Unlock()
	w := hw.w
	hw.w = nil
	if w == nil {
		return nil
	}
	var buf bytes.Buffer
	WriteDocument(&buf, hw.title, hw.tables)
	if _, err := w.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("%w: %w", sheetcalc.ErrExportFailed, err)
	}
	return nil
}

type sheet struct {
	t  *Table
	mu sync.Mutex
}

func (sh *sheet) Close() error { return nil }
func (sh *sheet) AppendRow(values ...any) error {
	sh.mu.Lock()
	defer sh.mu.Unlock()
	if len(sh.t.Rows) >= sheetcalc.MaxRows {
		return sheetcalc.ErrTooManyRows
	}
	row := make([]string, len(values))
	for i, v := range values {
		switch x := v.(type) {
		case nil:
		case float64:
			row[i] = sheetcalc.FormatNumber(x)
		case string:
			row[i] = x
		default:
			row[i] = fmt.Sprint(v)
		}
	}
	sh.t.Rows = append(sh.t.Rows, row)
	return nil
}
