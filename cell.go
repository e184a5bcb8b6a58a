// Copyright 2026, Tamás Gulácsi.
//
// SPDX-License-Identifier: Apache-2.0

package sheetcalc

import (
	"encoding/json"
	"fmt"
	"iter"
	"maps"
	"strings"
)

// Cell is the record stored for one address.
type Cell struct {
	Addr  CellAddress `json:"addr"`
	Value CellValue   `json:"value"`
	// Formula is the raw formula text including the leading '='; empty if none.
	Formula string `json:"formula,omitempty"`
	Style   Style  `json:"style,omitzero"`
}

// EmptyCell returns an address-only cell.
func EmptyCell(a CellAddress) Cell { return Cell{Addr: a} }

// IsEmpty reports whether the cell is indistinguishable from absence.
func (c Cell) IsEmpty() bool {
	return c.Value.IsNull() && c.Formula == "" && c.Style.IsZero()
}

// HasFormula reports whether the cell owns a formula.
func (c Cell) HasFormula() bool { return c.Formula != "" }

func (c Cell) Equal(o Cell) bool {
	return c.Addr == o.Addr && c.Value.Equal(o.Value) && c.Formula == o.Formula && c.Style.Equal(o.Style)
}

// IsFormula reports whether raw input text is a formula.
func IsFormula(raw string) bool { return strings.HasPrefix(raw, "=") }

// GridData maps addresses to cells. Iteration order carries no meaning.
type GridData map[CellAddress]Cell

// Get implements the read side of a snapshot.
func (g GridData) Get(a CellAddress) (Cell, bool) {
	c, ok := g[a]
	return c, ok
}

// Clone returns a shallow copy; cells are values, so this is a full snapshot.
func (g GridData) Clone() GridData {
	if g == nil {
		return GridData{}
	}
	return maps.Clone(g)
}

// Bounds returns the dimensions actually populated.
func (g GridData) Bounds() Dimensions {
	var d Dimensions
	for a := range g {
		d.Rows, d.Cols = max(d.Rows, a.Row), max(d.Cols, a.Col)
	}
	return d
}

// CellRange is a normalized rectangle: Start.Row <= End.Row and Start.Col <= End.Col.
type CellRange struct {
	Start, End CellAddress
}

// NewRange builds a range from two arbitrary corners.
func NewRange(a, b CellAddress) CellRange {
	return CellRange{
		Start: CellAddress{Row: min(a.Row, b.Row), Col: min(a.Col, b.Col)},
		End:   CellAddress{Row: max(a.Row, b.Row), Col: max(a.Col, b.Col)},
	}
}

// SingleCell is the 1×1 range of a.
func SingleCell(a CellAddress) CellRange { return CellRange{Start: a, End: a} }

// ParseRange parses "A1:B3" (corners in any order) or a single "A1".
func ParseRange(s string) (CellRange, error) {
	from, to, ok := strings.Cut(s, ":")
	a, err := ParseA1(from)
	if err != nil {
		return CellRange{}, err
	}
	if !ok {
		return SingleCell(a), nil
	}
	b, err := ParseA1(to)
	if err != nil {
		return CellRange{}, err
	}
	return NewRange(a, b), nil
}

func (r CellRange) String() string {
	return fmt.Sprintf("%s:%s", r.Start.A1(), r.End.A1())
}

func (r CellRange) Rows() int { return r.End.Row - r.Start.Row + 1 }
func (r CellRange) Cols() int { return r.End.Col - r.Start.Col + 1 }

// Contains reports whether a lies inside the range.
func (r CellRange) Contains(a CellAddress) bool {
	return r.Start.Row <= a.Row && a.Row <= r.End.Row &&
		r.Start.Col <= a.Col && a.Col <= r.End.Col
}

// All yields every address of the range in row-major order.
func (r CellRange) All() iter.Seq[CellAddress] {
	return func(yield func(CellAddress) bool) {
		for row := r.Start.Row; row <= r.End.Row; row++ {
			for col := r.Start.Col; col <= r.End.Col; col++ {
				if !yield(CellAddress{Row: row, Col: col}) {
					return
				}
			}
		}
	}
}

// Dimensions are the soft bounds of the sheet used for its total extent.
type Dimensions struct {
	Rows int `json:"rows"`
	Cols int `json:"cols"`
}

// Cover returns d grown to include a. It never shrinks.
func (d Dimensions) Cover(a CellAddress) Dimensions {
	return Dimensions{
		Rows: min(MaxRows, max(d.Rows, a.Row)),
		Cols: min(MaxCols, max(d.Cols, a.Col)),
	}
}

// Range returns [1..Rows]×[1..Cols], or false for an empty sheet.
func (d Dimensions) Range() (CellRange, bool) {
	if d.Rows < 1 || d.Cols < 1 {
		return CellRange{}, false
	}
	return CellRange{Start: Addr(1, 1), End: Addr(d.Rows, d.Cols)}, true
}

// UnmarshalJSON restores each cell's Addr from its key.
func (g *GridData) UnmarshalJSON(b []byte) error {
	var m map[CellAddress]Cell
	if err := json.Unmarshal(b, &m); err != nil {
		return err
	}
	for a, c := range m {
		c.Addr = a
		m[a] = c
	}
	*g = m
	return nil
}
