// Copyright 2026, Tamás Gulácsi.
//
// SPDX-License-Identifier: Apache-2.0

package viewport

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/UNO-SOFT/sheetcalc"
)

func defaultAxis(sizes map[int]float64) Axis {
	return Axis{Sizes: sizes, Default: 100, Header: 40, Max: 1000}
}

func TestWindow(t *testing.T) {
	for _, tc := range []struct {
		name         string
		axis         Axis
		scroll, size float64
		start, end   int
	}{
		{name: "top", axis: defaultAxis(nil), scroll: 0, size: 350, start: 1, end: 5},
		{name: "scrolled", axis: defaultAxis(nil), scroll: 150, size: 350, start: 2, end: 6},
		{name: "wide first", axis: defaultAxis(map[int]float64{1: 300}), scroll: 250, size: 100, start: 1, end: 3},
		{name: "narrow second", axis: defaultAxis(map[int]float64{2: 10}), scroll: 145, size: 0, start: 2, end: 3},
		{name: "ignores non-positive override", axis: defaultAxis(map[int]float64{1: -5}), scroll: 0, size: 99, start: 1, end: 2},
		{name: "capped", axis: Axis{Default: 100, Header: 40, Max: 3}, scroll: 1000, size: 500, start: 2, end: 3},
		{name: "single", axis: Axis{Default: 100, Max: 1}, scroll: 5000, size: 500, start: 1, end: 1},
	} {
		t.Run(tc.name, func(t *testing.T) {
			start, end := tc.axis.Window(tc.scroll, tc.size)
			if start != tc.start || end != tc.end {
				t.Errorf("got [%d, %d], wanted [%d, %d]", start, end, tc.start, tc.end)
			}
		})
	}
}

func TestWindowMonotonic(t *testing.T) {
	ax := Axis{
		Sizes:   map[int]float64{2: 15, 3: 400, 7: 1, 8: 60, 20: 250},
		Default: 24, Header: 24, Max: 200,
	}
	prevStart, prevEnd := 1, 1
	for scroll := 0.0; scroll < 8000; scroll += 7 {
		start, end := ax.Window(scroll, 300)
		if start < 1 || start > end || end > ax.Max {
			t.Fatalf("scroll=%v: bad window [%d, %d]", scroll, start, end)
		}
		if start < prevStart || end < prevEnd {
			t.Fatalf("scroll=%v: [%d, %d] went back from [%d, %d]", scroll, start, end, prevStart, prevEnd)
		}
		if p := ax.Position(start); p.Offset+p.Extent <= scroll && start < ax.Max-1 {
			t.Fatalf("scroll=%v: start %d ends at %v, before the scroll offset", scroll, start, p.Offset+p.Extent)
		}
		prevStart, prevEnd = start, end
	}
}

func TestPosition(t *testing.T) {
	ax := defaultAxis(map[int]float64{2: 50})
	want := []Span{{40, 100}, {140, 50}, {190, 100}}
	var got []Span
	for i := 1; i <= 3; i++ {
		got = append(got, ax.Position(i))
	}
	if d := cmp.Diff(want, got); d != "" {
		t.Error(d)
	}
	if total := ax.Total(3); total != 290 {
		t.Errorf("Total(3)=%v, wanted 290", total)
	}
}

func TestLayout(t *testing.T) {
	l := Layout{
		Cols: Axis{Default: 100, Header: 40, Max: sheetcalc.MaxCols},
		Rows: Axis{Default: 24, Header: 24, Max: sheetcalc.MaxRows},
	}
	got := l.VisibleRange(150, 0, 350, 100)
	want := sheetcalc.CellRange{Start: sheetcalc.Addr(1, 2), End: sheetcalc.Addr(5, 6)}
	if got != want {
		t.Errorf("got %v, wanted %v", got, want)
	}
	if r := l.Position(sheetcalc.Addr(2, 3)); r != (Rect{Left: 240, Top: 48, Width: 100, Height: 24}) {
		t.Errorf("got %+v", r)
	}
	w, h := l.Size(sheetcalc.Dimensions{Rows: 10, Cols: 2})
	if w != 240 || h != 264 {
		t.Errorf("size %vx%v", w, h)
	}
}
