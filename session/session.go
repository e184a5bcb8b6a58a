// Copyright 2026, Tamás Gulácsi.
//
// SPDX-License-Identifier: Apache-2.0

// Package session orchestrates one editable sheet: it applies edits to the
// cell store, recalculates formulas, records undoable commands and decides
// what of the visible window is displayed.
//
// A Session is not safe for concurrent use: every operation runs to
// completion before the next one is accepted.
package session

import (
	"fmt"
	"log/slog"
	"maps"

	"github.com/UNO-SOFT/sheetcalc"
	"github.com/UNO-SOFT/sheetcalc/formula"
	"github.com/UNO-SOFT/sheetcalc/history"
)

// Defaults used when the corresponding Options field is zero.
const (
	DefaultRows         = 10000
	DefaultCols         = 26
	DefaultColumnWidth  = 100
	DefaultRowHeight    = 24
	DefaultHeaderWidth  = 40
	DefaultHeaderHeight = 24
)

// Options configure a Session.
type Options struct {
	Logger     *slog.Logger
	Dimensions sheetcalc.Dimensions

	ColumnWidth, RowHeight    float64
	HeaderWidth, HeaderHeight float64

	// Memo enables the per-pass memo of the formula engine.
	Memo bool
}

func (o Options) withDefaults() Options {
	if o.Logger == nil {
		o.Logger = slog.New(slog.DiscardHandler)
	}
	if o.Dimensions.Rows <= 0 {
		o.Dimensions.Rows = DefaultRows
	}
	if o.Dimensions.Cols <= 0 {
		o.Dimensions.Cols = DefaultCols
	}
	if o.ColumnWidth <= 0 {
		o.ColumnWidth = DefaultColumnWidth
	}
	if o.RowHeight <= 0 {
		o.RowHeight = DefaultRowHeight
	}
	if o.HeaderWidth < 0 {
		o.HeaderWidth = 0
	} else if o.HeaderWidth == 0 {
		o.HeaderWidth = DefaultHeaderWidth
	}
	if o.HeaderHeight < 0 {
		o.HeaderHeight = 0
	} else if o.HeaderHeight == 0 {
		o.HeaderHeight = DefaultHeaderHeight
	}
	return o
}

// Session owns the cell store of one sheet.
type Session struct {
	opts   Options
	logger *slog.Logger
	store  *sheetcalc.Store
	engine *formula.Engine
	log    history.Log
	dims   sheetcalc.Dimensions

	widths, heights map[int]float64

	active    *sheetcalc.CellAddress
	selection *sheetcalc.CellRange

	filters map[int]Filter
	sort    *SortSpec
	order   []int // display row -> data row, nil when stale
	search  string
}

func New(opts Options) *Session {
	opts = opts.withDefaults()
	var engineOpts []formula.Option
	engineOpts = append(engineOpts, formula.WithLogger(opts.Logger))
	if opts.Memo {
		engineOpts = append(engineOpts, formula.WithMemo())
	}
	return &Session{
		opts:    opts,
		logger:  opts.Logger,
		store:   sheetcalc.NewStore(nil),
		engine:  formula.New(engineOpts...),
		dims:    opts.Dimensions,
		widths:  make(map[int]float64),
		heights: make(map[int]float64),
		filters: make(map[int]Filter),
	}
}

// Cell returns the stored cell at a.
func (s *Session) Cell(a sheetcalc.CellAddress) (sheetcalc.Cell, bool) { return s.store.Get(a) }

// Grid returns a snapshot of all stored cells.
func (s *Session) Grid() sheetcalc.GridData { return s.store.Snapshot() }

func (s *Session) Dimensions() sheetcalc.Dimensions { return s.dims }

// History gives read access to the undo log.
func (s *Session) History() *history.Log { return &s.log }

// Edit sets the content of a from raw input text. Text starting with '='
// is a formula; anything else is parsed as a literal. Style is kept.
func (s *Session) Edit(a sheetcalc.CellAddress, raw string) (sheetcalc.Cell, error) {
	if !a.Valid() {
		return sheetcalc.Cell{}, fmt.Errorf("edit %s: %w", a, sheetcalc.ErrMalformedAddress)
	}
	old := s.store.OrEmpty(a)
	s.store.Set(a, withContent(old, raw))
	if sheetcalc.IsFormula(raw) {
		c, _ := s.store.Get(a)
		c.Value = s.engine.Evaluate(raw, a, s.store)
		s.store.Set(a, c)
	}
	s.recalculate()
	nw := s.store.OrEmpty(a)
	s.log.Record(history.CellEdit{Old: old, New: nw})
	s.dims = s.dims.Cover(a)
	s.order = nil
	s.logger.Debug("edit", "cell", a.A1(), "raw", raw, "value", nw.Value.String())
	return nw, nil
}

// withContent replaces value and formula of c by the classification of raw.
// A formula's value stays null until it is evaluated.
func withContent(c sheetcalc.Cell, raw string) sheetcalc.Cell {
	c.Formula, c.Value = "", sheetcalc.Null()
	if sheetcalc.IsFormula(raw) {
		c.Formula = raw
	} else {
		c.Value = sheetcalc.ParseValue(raw)
	}
	return c
}

// Recalculate re-evaluates every formula cell.
func (s *Session) Recalculate() { s.recalculate() }

func (s *Session) recalculate() {
	s.store.Replace(s.engine.RecalculateAll(s.store.Snapshot()))
	s.order = nil
}

// SetActive makes a the active cell and drops the range selection.
func (s *Session) SetActive(a sheetcalc.CellAddress) {
	s.active, s.selection = &a, nil
}

// Select selects the rectangle spanned by two corners; from becomes active.
func (s *Session) Select(from, to sheetcalc.CellAddress) {
	r := sheetcalc.NewRange(from, to)
	s.active, s.selection = &from, &r
}

// ClearSelection drops both the active cell and the selection.
func (s *Session) ClearSelection() { s.active, s.selection = nil, nil }

// Selection returns the selected range, the active cell alone if there is
// no range, or false if nothing is selected.
func (s *Session) Selection() (sheetcalc.CellRange, bool) {
	if s.selection != nil {
		return *s.selection, true
	}
	if s.active != nil {
		return sheetcalc.SingleCell(*s.active), true
	}
	return sheetcalc.CellRange{}, false
}

// ApplyStyle merges patch into the style of every selected cell and records
// one StyleEdit. It returns false if nothing is selected.
func (s *Session) ApplyStyle(patch sheetcalc.Style) bool {
	r, ok := s.Selection()
	if !ok || patch.IsZero() {
		return false
	}
	old := make([]sheetcalc.Cell, 0, r.Rows()*r.Cols())
	for a := range r.All() {
		c := s.store.OrEmpty(a)
		old = append(old, c)
		c.Style = c.Style.Merge(patch)
		s.store.Set(a, c)
	}
	s.log.Record(history.StyleEdit{Old: old, Patch: patch})
	s.logger.Debug("style", "range", r.String(), "cells", len(old))
	return true
}

// Toolbar is the style state shown for the selection.
type Toolbar struct {
	Bold, Italic, Underline bool
	Align                   sheetcalc.Alignment
}

// Toolbar returns the style of the active cell, or the attributes common
// to every stored cell of the selected range.
func (s *Session) Toolbar() Toolbar {
	tb := Toolbar{Align: sheetcalc.AlignLeft}
	if s.selection == nil {
		if s.active == nil {
			return tb
		}
		st := s.store.OrEmpty(*s.active).Style
		tb.Bold, tb.Italic, tb.Underline = st.IsBold(), st.IsItalic(), st.IsUnderline()
		if st.Align != "" {
			tb.Align = st.Align
		}
		return tb
	}
	var styles []sheetcalc.Style
	for _, c := range s.store.Range(*s.selection) {
		if c != nil {
			styles = append(styles, c.Style)
		}
	}
	if len(styles) == 0 {
		return tb
	}
	tb.Bold, tb.Italic, tb.Underline = true, true, true
	align := styles[0].Align
	for _, st := range styles {
		tb.Bold = tb.Bold && st.IsBold()
		tb.Italic = tb.Italic && st.IsItalic()
		tb.Underline = tb.Underline && st.IsUnderline()
		if st.Align != align {
			align = ""
		}
	}
	if align != "" {
		tb.Align = align
	}
	return tb
}

// ResizeColumn sets the width of col; a non-positive width restores the default.
// A column outside [1..MaxCols] is rejected without recording anything.
func (s *Session) ResizeColumn(col int, width float64) error {
	if col < 1 || col > sheetcalc.MaxCols {
		return fmt.Errorf("resize column %d: %w", col, sheetcalc.ErrMalformedAddress)
	}
	width = max(0, width)
	s.log.Record(history.ColumnResize{Col: col, Old: s.widths[col], New: width})
	(*target)(s).SetColumnWidth(col, width)
	return nil
}

// ResizeRow sets the height of row; a non-positive height restores the default.
func (s *Session) ResizeRow(row int, height float64) error {
	if row < 1 || row > sheetcalc.MaxRows {
		return fmt.Errorf("resize row %d: %w", row, sheetcalc.ErrMalformedAddress)
	}
	height = max(0, height)
	s.log.Record(history.RowResize{Row: row, Old: s.heights[row], New: height})
	(*target)(s).SetRowHeight(row, height)
	return nil
}

// ColumnWidths and RowHeights return copies of the size overrides.
func (s *Session) ColumnWidths() map[int]float64 { return maps.Clone(s.widths) }
func (s *Session) RowHeights() map[int]float64   { return maps.Clone(s.heights) }

// Undo reverts the last command, recalculating formulas if it changed cells.
func (s *Session) Undo() (history.Command, bool) {
	return s.replay(s.log.Undo)
}

// Redo re-applies the last undone command.
func (s *Session) Redo() (history.Command, bool) {
	return s.replay(s.log.Redo)
}

func (s *Session) replay(step func(history.Target) (history.Command, bool)) (history.Command, bool) {
	c, ok := step((*target)(s))
	if !ok {
		return nil, false
	}
	if c.AffectsValues() {
		s.recalculate()
	}
	s.logger.Debug("replay", "kind", c.Kind())
	return c, true
}

// Import replaces the whole sheet; the undo log, selection and sort are reset.
func (s *Session) Import(grid sheetcalc.GridData, dims sheetcalc.Dimensions) {
	s.store.Replace(grid)
	b := grid.Bounds()
	s.dims = sheetcalc.Dimensions{Rows: max(dims.Rows, b.Rows), Cols: max(dims.Cols, b.Cols)}
	s.log.Clear()
	s.active, s.selection = nil, nil
	s.sort = nil
	s.recalculate()
	s.logger.Info("import", "cells", s.store.Len(), "rows", s.dims.Rows, "cols", s.dims.Cols)
}

// Evaluate evaluates a formula at a against the current cells without storing it.
func (s *Session) Evaluate(text string, a sheetcalc.CellAddress) (sheetcalc.CellValue, error) {
	return s.engine.Eval(text, a, s.store)
}

// Precedents returns the ranges the formula at a refers to.
func (s *Session) Precedents(a sheetcalc.CellAddress) []sheetcalc.CellRange {
	c, ok := s.store.Get(a)
	if !ok {
		return nil
	}
	return formula.References(c.Formula)
}

// target is the Session seen as the undo log's Target.
type target Session

func (t *target) SetCell(c sheetcalc.Cell) {
	t.store.Set(c.Addr, c)
	t.dims = t.dims.Cover(c.Addr)
	t.order = nil
}

func (t *target) SetColumnWidth(col int, width float64) { setSize(t.widths, col, width) }
func (t *target) SetRowHeight(row int, height float64)  { setSize(t.heights, row, height) }

func setSize(m map[int]float64, i int, v float64) {
	if v <= 0 {
		delete(m, i)
		return
	}
	m[i] = v
}
