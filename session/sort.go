// Copyright 2026, Tamás Gulácsi.
//
// SPDX-License-Identifier: Apache-2.0

package session

import (
	"cmp"
	"slices"
	"strings"

	"github.com/UNO-SOFT/sheetcalc"
)

// Direction of a sort.
type Direction string

const (
	Ascending  Direction = "asc"
	Descending Direction = "desc"
)

// SortSpec orders rows by the values of one column.
type SortSpec struct {
	Col       int       `json:"col"`
	Direction Direction `json:"direction"`
}

// SortBy orders the displayed rows by col. The store is not modified:
// rows keep all their cells and formulas keep their references.
func (s *Session) SortBy(col int, dir Direction) {
	if dir != Descending {
		dir = Ascending
	}
	s.sort = &SortSpec{Col: col, Direction: dir}
	s.order = nil
}

// ToggleSort sorts by col ascending, or flips the direction if already sorted by col.
func (s *Session) ToggleSort(col int) {
	if s.sort != nil && s.sort.Col == col && s.sort.Direction == Ascending {
		s.SortBy(col, Descending)
		return
	}
	s.SortBy(col, Ascending)
}

// ClearSort restores the natural row order.
func (s *Session) ClearSort() { s.sort, s.order = nil, nil }

// Sort returns the active sort, if any.
func (s *Session) Sort() (SortSpec, bool) {
	if s.sort == nil {
		return SortSpec{}, false
	}
	return *s.sort, true
}

// DataRow maps a displayed row to the row of the store it shows.
func (s *Session) DataRow(display int) int {
	order := s.rowOrder()
	if display < 1 || display > len(order) {
		return display
	}
	return order[display-1]
}

// rowOrder returns the data rows in display order, for the populated rows
// only; rows below them are never reordered.
func (s *Session) rowOrder() []int {
	if s.sort == nil {
		return nil
	}
	if s.order != nil {
		return s.order
	}
	n := s.store.Snapshot().Bounds().Rows
	rows := make([]int, n)
	for i := range rows {
		rows[i] = i + 1
	}
	col := s.sort.Col
	SortRows(rows, func(row int) sheetcalc.CellValue {
		c, _ := s.store.Get(sheetcalc.Addr(row, col))
		return c.Value
	}, s.sort.Direction)
	s.order = rows
	return rows
}

// SortRows stably orders rows by key. Numbers compare numerically, text
// case-insensitively, and null keys go last in either direction.
func SortRows(rows []int, key func(row int) sheetcalc.CellValue, dir Direction) {
	keys := make(map[int]sheetcalc.CellValue, len(rows))
	for _, r := range rows {
		keys[r] = key(r)
	}
	slices.SortStableFunc(rows, func(a, b int) int {
		ka, kb := keys[a], keys[b]
		if na, nb := ka.IsNull(), kb.IsNull(); na || nb {
			switch {
			case na && nb:
				return 0
			case na:
				return 1
			default:
				return -1
			}
		}
		c := compareValues(ka, kb)
		if dir == Descending {
			return -c
		}
		return c
	})
}

// rank groups kinds when they differ: numbers, booleans, text, errors.
func rank(v sheetcalc.CellValue) int {
	switch v.Kind() {
	case sheetcalc.KindNumber:
		return 0
	case sheetcalc.KindBool:
		return 1
	case sheetcalc.KindText:
		return 2
	}
	return 3
}

func compareValues(a, b sheetcalc.CellValue) int {
	if ra, rb := rank(a), rank(b); ra != rb {
		return cmp.Compare(ra, rb)
	}
	switch a.Kind() {
	case sheetcalc.KindNumber:
		return cmp.Compare(a.Num(), b.Num())
	case sheetcalc.KindBool:
		return cmp.Compare(boolInt(a.BoolVal()), boolInt(b.BoolVal()))
	}
	return strings.Compare(strings.ToLower(a.String()), strings.ToLower(b.String()))
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
