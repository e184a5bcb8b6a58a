// Copyright 2026, Tamás Gulácsi.
//
// SPDX-License-Identifier: Apache-2.0

package sheetcalc_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/UNO-SOFT/sheetcalc"
)

type memWriter struct {
	sheets map[string]*memSheet
	closed bool
}

type memSheet struct {
	cols   []sheetcalc.Column
	rows   [][]any
	closed bool
	failAt int
}

func (w *memWriter) NewSheet(name string, cols []sheetcalc.Column) (sheetcalc.Sheet, error) {
	sh := &memSheet{cols: cols, failAt: -1}
	if w.sheets == nil {
		w.sheets = make(map[string]*memSheet)
	}
	w.sheets[name] = sh
	return sh, nil
}
func (w *memWriter) Close() error { w.closed = true; return nil }

func (sh *memSheet) AppendRow(values ...any) error {
	if len(sh.rows) == sh.failAt {
		return errors.New("disk full")
	}
	sh.rows = append(sh.rows, append([]any(nil), values...))
	return nil
}
func (sh *memSheet) Close() error { sh.closed = true; return nil }

func TestExport(t *testing.T) {
	g := cells(
		sheetcalc.Cell{Addr: sheetcalc.Addr(1, 2), Value: sheetcalc.Text("x")},
		sheetcalc.Cell{Addr: sheetcalc.Addr(2, 1), Value: sheetcalc.Number(2), Formula: "=1+1"},
		sheetcalc.Cell{Addr: sheetcalc.Addr(2, 3), Value: sheetcalc.Bool(false)},
		sheetcalc.Cell{Addr: sheetcalc.Addr(9, 9), Value: sheetcalc.Text("outside")},
	)
	var w memWriter
	if err := sheetcalc.Export(&w, "s", g, sheetcalc.Dimensions{Rows: 3, Cols: 3}); err != nil {
		t.Fatal(err)
	}
	sh := w.sheets["s"]
	if !sh.closed || w.closed {
		t.Errorf("sheet closed=%t writer closed=%t", sh.closed, w.closed)
	}
	want := [][]any{
		{nil, "x", nil},
		{2.0, nil, false},
		{nil, nil, nil},
	}
	if d := cmp.Diff(want, sh.rows); d != "" {
		t.Error(d)
	}
	if len(sh.cols) != 3 || sh.cols[0].Name != "" {
		t.Errorf("columns %v", sh.cols)
	}
}

func TestExportFailure(t *testing.T) {
	w := &failingWriter{}
	err := sheetcalc.Export(w, "s", nil, sheetcalc.Dimensions{Rows: 2, Cols: 1})
	if !errors.Is(err, sheetcalc.ErrExportFailed) {
		t.Errorf("got %v", err)
	}
	err = sheetcalc.Export(w, "s", nil, sheetcalc.Dimensions{Rows: sheetcalc.MaxRows + 1, Cols: 1})
	if !errors.Is(err, sheetcalc.ErrTooManyRows) || !errors.Is(err, sheetcalc.ErrExportFailed) {
		t.Errorf("too many rows: %v", err)
	}
}

type failingWriter struct{ memWriter }

func (w *failingWriter) NewSheet(name string, cols []sheetcalc.Column) (sheetcalc.Sheet, error) {
	sh, _ := w.memWriter.NewSheet(name, cols)
	sh.(*memSheet).failAt = 1
	return sh, nil
}
