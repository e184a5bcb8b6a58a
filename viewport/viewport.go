// Copyright 2026, Tamás Gulácsi.
//
// SPDX-License-Identifier: Apache-2.0

// Package viewport computes which cells a scrolled viewport has to render
// and where each cell is placed, from one shared notion of "extent of cell N".
//
// Extents are accumulated from index 1 on every call: there is no prefix-sum
// cache and no random seek.
package viewport

import "github.com/UNO-SOFT/sheetcalc"

// Axis describes one dimension of the grid.
type Axis struct {
	// Sizes holds sparse per-index overrides; a missing or non-positive entry means Default.
	Sizes   map[int]float64
	Default float64
	// Header is the extent of the fixed header before index 1.
	Header float64
	// Max is the highest index; the window never goes beyond it.
	Max int
}

// Extent returns the size of cell i.
func (ax Axis) Extent(i int) float64 {
	if s, ok := ax.Sizes[i]; ok && s > 0 {
		return s
	}
	return ax.Default
}

// Span is a placement along one axis.
type Span struct {
	Offset, Extent float64
}

// Position returns the offset (header included) and extent of cell i.
func (ax Axis) Position(i int) Span {
	return Span{Offset: ax.accumulate(1, i), Extent: ax.Extent(i)}
}

// Total returns the extent of the header plus cells 1..count.
func (ax Axis) Total(count int) float64 { return ax.accumulate(1, count+1) }

// accumulate returns Header plus the extents of cells [from, to).
func (ax Axis) accumulate(from, to int) float64 {
	acc := ax.Header
	for i := from; i < to; i++ {
		acc += ax.Extent(i)
	}
	return acc
}

// Window returns the first and last index to render for the given scroll
// offset and viewport size. One extra index is added after the last visible
// one. 1 <= start <= end <= max(Max, 1).
func (ax Axis) Window(scroll, size float64) (start, end int) {
	limit := max(ax.Max, 1)
	i, acc := 1, ax.Header
	for acc <= scroll && i < limit {
		acc += ax.Extent(i)
		i++
	}
	start = max(1, i-1)

	acc = ax.accumulate(1, start+1)
	end = start
	for acc <= scroll+size && end < limit {
		end++
		acc += ax.Extent(end)
	}
	return start, min(limit, end+1)
}

// Layout couples the column and row axes.
// The same Layout value must feed VisibleRange and Position for them to agree.
type Layout struct {
	Cols, Rows Axis
}

// VisibleRange returns the addresses to render; both axes are independent.
func (l Layout) VisibleRange(scrollX, scrollY, width, height float64) sheetcalc.CellRange {
	c0, c1 := l.Cols.Window(scrollX, width)
	r0, r1 := l.Rows.Window(scrollY, height)
	return sheetcalc.CellRange{
		Start: sheetcalc.Addr(r0, c0),
		End:   sheetcalc.Addr(r1, c1),
	}
}

// Rect is the pixel placement of a cell.
type Rect struct {
	Left, Top, Width, Height float64
}

// Position returns where the cell at a is drawn.
func (l Layout) Position(a sheetcalc.CellAddress) Rect {
	x, y := l.Cols.Position(a.Col), l.Rows.Position(a.Row)
	return Rect{Left: x.Offset, Top: y.Offset, Width: x.Extent, Height: y.Extent}
}

// Size returns the total pixel size of a sheet of the given dimensions.
func (l Layout) Size(dims sheetcalc.Dimensions) (width, height float64) {
	return l.Cols.Total(dims.Cols), l.Rows.Total(dims.Rows)
}
