// Copyright 2026, Tamás Gulácsi.
//
// SPDX-License-Identifier: Apache-2.0

package history

import "github.com/UNO-SOFT/sheetcalc"

// Kind names a Command variant.
type Kind string

const (
	KindCellEdit     Kind = "cell-edit"
	KindCellsEdit    Kind = "cells-edit"
	KindStyleEdit    Kind = "style-edit"
	KindColumnResize Kind = "column-resize"
	KindRowResize    Kind = "row-resize"
)

// Target receives the effects of undo and redo.
type Target interface {
	// SetCell stores c at c.Addr; an empty cell clears the address.
	SetCell(c sheetcalc.Cell)
	// SetColumnWidth and SetRowHeight set an override; 0 removes it.
	SetColumnWidth(col int, width float64)
	SetRowHeight(row int, height float64)
}

// Command is a reversible edit. It carries its pre- and post-image,
// so applying it in either direction needs no recomputation.
type Command interface {
	Kind() Kind
	// AffectsValues reports whether formula values may change when the
	// command is undone or redone, so the caller has to recalculate.
	AffectsValues() bool

	apply(t Target, forward bool)
}

// CellEdit replaces one cell.
type CellEdit struct {
	Old sheetcalc.Cell `json:"old"`
	New sheetcalc.Cell `json:"new"`
}

func (CellEdit) Kind() Kind          { return KindCellEdit }
func (CellEdit) AffectsValues() bool { return true }
func (c CellEdit) apply(t Target, forward bool) {
	if forward {
		t.SetCell(c.New)
	} else {
		t.SetCell(c.Old)
	}
}

// CellsEdit replaces several cells at once, as a paste does.
// Old and New are parallel: Old[i] and New[i] share an address.
type CellsEdit struct {
	Old []sheetcalc.Cell `json:"old"`
	New []sheetcalc.Cell `json:"new"`
}

func (CellsEdit) Kind() Kind          { return KindCellsEdit }
func (CellsEdit) AffectsValues() bool { return true }
func (c CellsEdit) apply(t Target, forward bool) {
	cells := c.Old
	if forward {
		cells = c.New
	}
	for _, cell := range cells {
		t.SetCell(cell)
	}
}

// StyleEdit applies Patch to every cell of Old.
type StyleEdit struct {
	Old   []sheetcalc.Cell `json:"old"`
	Patch sheetcalc.Style  `json:"patch"`
}

func (StyleEdit) Kind() Kind          { return KindStyleEdit }
func (StyleEdit) AffectsValues() bool { return false }
func (c StyleEdit) apply(t Target, forward bool) {
	for _, cell := range c.Old {
		if forward {
			cell.Style = cell.Style.Merge(c.Patch)
		}
		t.SetCell(cell)
	}
}

// ColumnResize changes the width override of Col. A zero width means no override.
type ColumnResize struct {
	Col int     `json:"col"`
	Old float64 `json:"old"`
	New float64 `json:"new"`
}

func (ColumnResize) Kind() Kind          { return KindColumnResize }
func (ColumnResize) AffectsValues() bool { return false }
func (c ColumnResize) apply(t Target, forward bool) {
	if forward {
		t.SetColumnWidth(c.Col, c.New)
	} else {
		t.SetColumnWidth(c.Col, c.Old)
	}
}

// RowResize changes the height override of Row. A zero height means no override.
type RowResize struct {
	Row int     `json:"row"`
	Old float64 `json:"old"`
	New float64 `json:"new"`
}

func (RowResize) Kind() Kind          { return KindRowResize }
func (RowResize) AffectsValues() bool { return false }
func (c RowResize) apply(t Target, forward bool) {
	if forward {
		t.SetRowHeight(c.Row, c.New)
	} else {
		t.SetRowHeight(c.Row, c.Old)
	}
}
