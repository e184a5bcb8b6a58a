// Copyright 2026, Tamás Gulácsi.
//
// SPDX-License-Identifier: Apache-2.0

package sheetcalc_test

import (
	"errors"
	"testing"

	"github.com/UNO-SOFT/sheetcalc"
)

func TestKey(t *testing.T) {
	for _, a := range []sheetcalc.CellAddress{
		sheetcalc.Addr(1, 1),
		sheetcalc.Addr(3, 7),
		sheetcalc.Addr(sheetcalc.MaxRows, sheetcalc.MaxCols),
	} {
		got, err := sheetcalc.ParseKey(a.Key())
		if err != nil {
			t.Fatalf("%s: %+v", a.Key(), err)
		}
		if got != a {
			t.Errorf("%s: got %v", a.Key(), got)
		}
	}
	if got := sheetcalc.MakeKey(3, 7); got != "R3C7" {
		t.Errorf("MakeKey(3,7)=%q", got)
	}
	for _, k := range []string{"", "R1", "C1", "r1c1", "R0C1", "R1C0", "R01C1", "R-1C1", "R1C+1", "R1C1x", "R1048577C1"} {
		if a, err := sheetcalc.ParseKey(k); !errors.Is(err, sheetcalc.ErrMalformedAddress) {
			t.Errorf("%q: got %v, %v", k, a, err)
		}
	}
}

func TestA1(t *testing.T) {
	for _, tc := range []struct {
		a sheetcalc.CellAddress
		s string
	}{
		{sheetcalc.Addr(1, 1), "A1"},
		{sheetcalc.Addr(2, 28), "AB2"},
		{sheetcalc.Addr(10, 26), "Z10"},
	} {
		if got := tc.a.A1(); got != tc.s {
			t.Errorf("%v.A1()=%q, wanted %q", tc.a, got, tc.s)
		}
		got, err := sheetcalc.ParseA1(tc.s)
		if err != nil {
			t.Fatal(err)
		}
		if got != tc.a {
			t.Errorf("ParseA1(%q)=%v, wanted %v", tc.s, got, tc.a)
		}
	}
	if _, err := sheetcalc.ParseA1("1A"); !errors.Is(err, sheetcalc.ErrMalformedAddress) {
		t.Errorf("1A: %v", err)
	}
}

func TestRange(t *testing.T) {
	r, err := sheetcalc.ParseRange("B3:A1")
	if err != nil {
		t.Fatal(err)
	}
	if r.Start != sheetcalc.Addr(1, 1) || r.End != sheetcalc.Addr(3, 2) {
		t.Errorf("got %v", r)
	}
	if r.Rows() != 3 || r.Cols() != 2 {
		t.Errorf("size %dx%d", r.Rows(), r.Cols())
	}
	var got []sheetcalc.CellAddress
	for a := range r.All() {
		got = append(got, a)
	}
	if len(got) != 6 || got[1] != sheetcalc.Addr(1, 2) || got[2] != sheetcalc.Addr(2, 1) {
		t.Errorf("not row-major: %v", got)
	}
	if !r.Contains(sheetcalc.Addr(2, 2)) || r.Contains(sheetcalc.Addr(4, 1)) {
		t.Error("Contains")
	}
}

func TestDimensionsCover(t *testing.T) {
	d := sheetcalc.Dimensions{Rows: 10, Cols: 5}
	if got := d.Cover(sheetcalc.Addr(3, 3)); got != d {
		t.Errorf("shrunk or grew: %v", got)
	}
	if got := d.Cover(sheetcalc.Addr(20, 2)); got != (sheetcalc.Dimensions{Rows: 20, Cols: 5}) {
		t.Errorf("got %v", got)
	}
}
