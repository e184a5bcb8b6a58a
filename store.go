// Copyright 2026, Tamás Gulácsi.
//
// SPDX-License-Identifier: Apache-2.0

package sheetcalc

import "iter"

// Store is the sparse cell store: the single source of truth for content and style.
// It only holds non-empty cells.
type Store struct {
	cells GridData
}

// NewStore returns a store holding a copy of the non-empty cells of grid.
func NewStore(grid GridData) *Store {
	s := &Store{cells: make(GridData, len(grid))}
	s.Replace(grid)
	return s
}

// Get returns the stored cell, without materializing a default.
func (s *Store) Get(a CellAddress) (Cell, bool) {
	c, ok := s.cells[a]
	return c, ok
}

// OrEmpty returns the stored cell or an address-only cell; it never writes.
func (s *Store) OrEmpty(a CellAddress) Cell {
	if c, ok := s.cells[a]; ok {
		return c
	}
	return EmptyCell(a)
}

// Set stores c at a. An empty cell removes the address.
func (s *Store) Set(a CellAddress, c Cell) {
	c.Addr = a
	if c.IsEmpty() {
		delete(s.cells, a)
		return
	}
	s.cells[a] = c
}

// Delete clears the address.
func (s *Store) Delete(a CellAddress) { delete(s.cells, a) }

// Len returns the number of stored cells.
func (s *Store) Len() int { return len(s.cells) }

// Snapshot returns an independent copy of the stored cells.
func (s *Store) Snapshot() GridData { return s.cells.Clone() }

// Replace swaps in the non-empty cells of grid.
func (s *Store) Replace(grid GridData) {
	clear(s.cells)
	for a, c := range grid {
		s.Set(a, c)
	}
}

// Range yields every address of r in row-major order with its cell, or nil if absent.
// The sequence is restartable and never mutates the store.
func (s *Store) Range(r CellRange) iter.Seq2[CellAddress, *Cell] {
	return func(yield func(CellAddress, *Cell) bool) {
		for a := range r.All() {
			var p *Cell
			if c, ok := s.cells[a]; ok {
				p = &c
			}
			if !yield(a, p) {
				return
			}
		}
	}
}
