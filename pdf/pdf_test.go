// Copyright 2026, Tamás Gulácsi.
//
// SPDX-License-Identifier: Apache-2.0

package pdf

import (
	"bytes"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/UNO-SOFT/sheetcalc"
)

func TestGridSizes(t *testing.T) {
	for _, tc := range []struct {
		widths []float64
		total  int
		want   []int
	}{
		{nil, 12, []int{}},
		{[]float64{1, 1, 1}, 12, []int{4, 4, 4}},
		{[]float64{3, 1}, 8, []int{6, 2}},
		{[]float64{0, 0}, 8, []int{1, 1}},
		{[]float64{10, 0, 0}, 12, []int{10, 1, 1}},
	} {
		got := gridSizes(tc.widths, tc.total)
		if d := cmp.Diff(tc.want, got); d != "" {
			t.Errorf("%v/%d: %s", tc.widths, tc.total, d)
		}
		var sum int
		for _, n := range got {
			sum += n
		}
		if sum > tc.total {
			t.Errorf("%v: %d > %d", tc.widths, sum, tc.total)
		}
	}
}

func TestWriter(t *testing.T) {
	grid := sheetcalc.GridData{
		sheetcalc.Addr(1, 1): {Addr: sheetcalc.Addr(1, 1), Value: sheetcalc.Text("name")},
		sheetcalc.Addr(2, 2): {Addr: sheetcalc.Addr(2, 2), Value: sheetcalc.Number(3.25)},
	}
	var buf bytes.Buffer
	w := NewWriter(&buf, Options{Landscape: true, Alternate: &props.Color{Red: 230, Green: 230, Blue: 230}})
	if err := sheetcalc.Export(w, "data", grid, sheetcalc.Dimensions{Rows: 3, Cols: 2}); err != nil {
		t.Fatalf("%+v", err)
	}
	sh := w.sheets[0]
	if d := cmp.Diff([][]string{{"name", ""}, {"", "3.25"}, {"", ""}}, sh.rows); d != "" {
		t.Error(d)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("%+v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF")) {
		t.Errorf("not a PDF: %q", buf.Bytes()[:min(16, buf.Len())])
	}
	if err := w.Close(); err != nil {
		t.Errorf("second close: %v", err)
	}
}

type brokenWriter struct{}

func (brokenWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestWriterWriteError(t *testing.T) {
	w := NewWriter(brokenWriter{}, Options{})
	grid := sheetcalc.GridData{sheetcalc.Addr(1, 1): {Addr: sheetcalc.Addr(1, 1), Value: sheetcalc.Number(1)}}
	if err := sheetcalc.Export(w, "data", grid, sheetcalc.Dimensions{Rows: 1, Cols: 1}); err != nil {
		t.Fatalf("%+v", err)
	}
	if err := w.Close(); !errors.Is(err, sheetcalc.ErrExportFailed) {
		t.Errorf("got %v, wanted %v", err, sheetcalc.ErrExportFailed)
	}
}
