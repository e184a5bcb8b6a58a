// Copyright 2026, Tamás Gulácsi.
//
// SPDX-License-Identifier: Apache-2.0

package sheetcalc_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/UNO-SOFT/sheetcalc"
)

func cells(cs ...sheetcalc.Cell) sheetcalc.GridData {
	g := make(sheetcalc.GridData, len(cs))
	for _, c := range cs {
		g[c.Addr] = c
	}
	return g
}

func TestReadCSV(t *testing.T) {
	grid, dims, err := sheetcalc.ReadCSV(strings.NewReader("a;b\n1;2.5\n;true\n"), "utf-8")
	if err != nil {
		t.Fatal(err)
	}
	want := cells(
		sheetcalc.Cell{Addr: sheetcalc.Addr(1, 1), Value: sheetcalc.Text("a")},
		sheetcalc.Cell{Addr: sheetcalc.Addr(1, 2), Value: sheetcalc.Text("b")},
		sheetcalc.Cell{Addr: sheetcalc.Addr(2, 1), Value: sheetcalc.Number(1)},
		sheetcalc.Cell{Addr: sheetcalc.Addr(2, 2), Value: sheetcalc.Number(2.5)},
		sheetcalc.Cell{Addr: sheetcalc.Addr(3, 2), Value: sheetcalc.Bool(true)},
	)
	if d := cmp.Diff(want, grid); d != "" {
		t.Error(d)
	}
	if dims != (sheetcalc.Dimensions{Rows: 3, Cols: 2}) {
		t.Errorf("dims %v", dims)
	}

	if grid, dims, err = sheetcalc.ReadCSV(strings.NewReader(""), ""); err != nil || len(grid) != 0 || dims.Rows != 0 {
		t.Errorf("empty: %v %v %v", grid, dims, err)
	}
}

func TestReadCSVCharset(t *testing.T) {
	grid, _, err := sheetcalc.ReadCSV(bytes.NewReader([]byte("\xe1rv\xedz,1\n")), "iso-8859-2")
	if err != nil {
		t.Fatal(err)
	}
	if c, _ := grid.Get(sheetcalc.Addr(1, 1)); !c.Value.Equal(sheetcalc.Text("árvíz")) {
		t.Errorf("got %q", c.Value)
	}
	if _, _, err = sheetcalc.ReadCSV(strings.NewReader("x"), "no-such-charset"); err == nil {
		t.Error("wanted error for unknown charset")
	}
}

func TestCSVWriter(t *testing.T) {
	var buf bytes.Buffer
	w, err := sheetcalc.NewCSVWriter(&buf, "iso-8859-2", ';')
	if err != nil {
		t.Fatal(err)
	}
	g := cells(
		sheetcalc.Cell{Addr: sheetcalc.Addr(1, 1), Value: sheetcalc.Text("árvíz")},
		sheetcalc.Cell{Addr: sheetcalc.Addr(2, 2), Value: sheetcalc.Number(0.5)},
	)
	if err = sheetcalc.Export(w, "x", g, sheetcalc.Dimensions{Rows: 2, Cols: 2}); err != nil {
		t.Fatal(err)
	}
	if _, err = w.NewSheet("second", nil); err == nil {
		t.Error("second sheet accepted")
	}
	if err = w.Close(); err != nil {
		t.Fatal(err)
	}
	if got, want := buf.String(), "\xe1rv\xedz;\n;0.5\n"; got != want {
		t.Errorf("got %q, wanted %q", got, want)
	}
	back, _, err := sheetcalc.ReadCSV(&buf, "iso-8859-2")
	if err != nil {
		t.Fatal(err)
	}
	if d := cmp.Diff(g, back); d != "" {
		t.Error(d)
	}
}

func TestCSVWriterLeavesFileOpen(t *testing.T) {
	g := cells(sheetcalc.Cell{Addr: sheetcalc.Addr(1, 1), Value: sheetcalc.Text("árvíz")})
	for _, encName := range []string{"utf-8", "iso-8859-2"} {
		fn := filepath.Join(t.TempDir(), "out.csv")
		fh, err := os.Create(fn)
		if err != nil {
			t.Fatal(err)
		}
		w, err := sheetcalc.NewCSVWriter(fh, encName, ',')
		if err != nil {
			t.Fatal(err)
		}
		if err = sheetcalc.Export(w, "x", g, sheetcalc.Dimensions{Rows: 1, Cols: 1}); err != nil {
			t.Fatal(err)
		}
		if err = w.Close(); err != nil {
			t.Fatalf("%s: %+v", encName, err)
		}
		if _, err = fh.WriteString("\n"); err != nil {
			t.Errorf("%s: file unusable after Close: %+v", encName, err)
		}
		if err = fh.Close(); err != nil {
			t.Errorf("%s: %+v", encName, err)
		}
		back, _, err := sheetcalc.OpenCSV(fn, encName)
		if err != nil {
			t.Fatal(err)
		}
		if d := cmp.Diff(g, back); d != "" {
			t.Errorf("%s: %s", encName, d)
		}
	}
}
