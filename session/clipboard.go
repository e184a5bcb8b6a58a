// Copyright 2026, Tamás Gulácsi.
//
// SPDX-License-Identifier: Apache-2.0

package session

import (
	"fmt"
	"strings"

	"github.com/UNO-SOFT/sheetcalc"
	"github.com/UNO-SOFT/sheetcalc/history"
)

// SerializeRange writes the values of r as tab separated fields, one row
// per line. Absent cells are empty fields.
func SerializeRange(grid sheetcalc.GridData, r sheetcalc.CellRange) string {
	var buf strings.Builder
	for row := r.Start.Row; row <= r.End.Row; row++ {
		if row != r.Start.Row {
			buf.WriteByte('\n')
		}
		for col := r.Start.Col; col <= r.End.Col; col++ {
			if col != r.Start.Col {
				buf.WriteByte('\t')
			}
			if c, ok := grid.Get(sheetcalc.Addr(row, col)); ok {
				buf.WriteString(c.Value.String())
			}
		}
	}
	return buf.String()
}

// ParseClipboard splits clipboard text into rows of fields.
// Empty text yields no rows.
func ParseClipboard(text string) [][]string {
	text = strings.TrimRight(text, "\r\n")
	if text == "" {
		return nil
	}
	lines := strings.Split(text, "\n")
	rows := make([][]string, len(lines))
	for i, line := range lines {
		rows[i] = strings.Split(strings.TrimSuffix(line, "\r"), "\t")
	}
	return rows
}

// Copy returns the clipboard text of the selection.
func (s *Session) Copy() (string, bool) {
	r, ok := s.Selection()
	if !ok {
		return "", false
	}
	return s.CopyRange(r), true
}

// CopyRange returns the clipboard text of r.
func (s *Session) CopyRange(r sheetcalc.CellRange) string {
	grid := make(sheetcalc.GridData)
	for a, c := range s.store.Range(r) {
		if c != nil {
			grid[a] = *c
		}
	}
	return SerializeRange(grid, r)
}

// Paste writes the clipboard text with its top-left field at at.
// Every field is classified like an Edit. Formulas are recalculated once,
// the whole paste is one undoable command and the pasted rectangle becomes
// the selection. Empty text is a no-op and reports false.
func (s *Session) Paste(text string, at sheetcalc.CellAddress) (sheetcalc.CellRange, bool, error) {
	rows := ParseClipboard(text)
	if len(rows) == 0 {
		return sheetcalc.CellRange{}, false, nil
	}
	var width int
	for _, fields := range rows {
		width = max(width, len(fields))
	}
	r := sheetcalc.NewRange(at, sheetcalc.Addr(at.Row+len(rows)-1, at.Col+width-1))
	if !r.Start.Valid() || !r.End.Valid() {
		return sheetcalc.CellRange{}, false, fmt.Errorf("paste %s: %w", r, sheetcalc.ErrMalformedAddress)
	}

	var edit history.CellsEdit
	for i, fields := range rows {
		for j, raw := range fields {
			a := sheetcalc.Addr(at.Row+i, at.Col+j)
			old := s.store.OrEmpty(a)
			edit.Old = append(edit.Old, old)
			s.store.Set(a, withContent(old, raw))
		}
	}
	s.recalculate()
	for _, old := range edit.Old {
		edit.New = append(edit.New, s.store.OrEmpty(old.Addr))
	}
	s.log.Record(edit)
	s.dims = s.dims.Cover(r.End)
	s.Select(r.Start, r.End)
	s.logger.Debug("paste", "range", r.String(), "cells", len(edit.New))
	return r, true, nil
}
