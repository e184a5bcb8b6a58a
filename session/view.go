// Copyright 2026, Tamás Gulácsi.
//
// SPDX-License-Identifier: Apache-2.0

package session

import (
	"strings"

	"github.com/UNO-SOFT/sheetcalc"
	"github.com/UNO-SOFT/sheetcalc/viewport"
)

// Layout returns the geometry of the sheet with the current size overrides.
// The returned axes share the session's override maps; they are valid until
// the next resize.
func (s *Session) Layout() viewport.Layout {
	return viewport.Layout{
		Cols: viewport.Axis{
			Sizes: s.widths, Default: s.opts.ColumnWidth,
			Header: s.opts.HeaderWidth, Max: min(s.dims.Cols, sheetcalc.MaxCols),
		},
		Rows: viewport.Axis{
			Sizes: s.heights, Default: s.opts.RowHeight,
			Header: s.opts.HeaderHeight, Max: min(s.dims.Rows, sheetcalc.MaxRows),
		},
	}
}

// SetSearch sets the term to highlight; an empty term switches highlighting off.
func (s *Session) SetSearch(term string) { s.search = strings.ToLower(term) }

// Highlighted reports whether the value at a contains the search term,
// ignoring case.
func (s *Session) Highlighted(a sheetcalc.CellAddress) bool {
	if s.search == "" {
		return false
	}
	c, ok := s.store.Get(a)
	return ok && strings.Contains(strings.ToLower(c.Value.String()), s.search)
}

// DisplayCell is one cell to render.
type DisplayCell struct {
	// At is where the cell is drawn, Source is where its data lives.
	// They differ only when the rows are sorted.
	At, Source  sheetcalc.CellAddress
	Cell        sheetcalc.Cell
	Text        string
	Highlighted bool
	Rect        viewport.Rect
}

// Visible returns the cells to render for the given scroll offset and
// viewport size, in row-major display order. Rows are mapped through the
// sort order and cells failing their column's filter are left out.
func (s *Session) Visible(scrollX, scrollY, width, height float64) []DisplayCell {
	l := s.Layout()
	r := l.VisibleRange(scrollX, scrollY, width, height)
	cells := make([]DisplayCell, 0, r.Rows()*r.Cols())
	for at := range r.All() {
		src := sheetcalc.Addr(s.DataRow(at.Row), at.Col)
		if !s.Passes(src) {
			continue
		}
		c := s.store.OrEmpty(src)
		cells = append(cells, DisplayCell{
			At: at, Source: src, Cell: c,
			Text:        sheetcalc.Display(c),
			Highlighted: s.Highlighted(src),
			Rect:        l.Position(at),
		})
	}
	return cells
}
