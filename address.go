// Copyright 2026, Tamás Gulácsi.
//
// SPDX-License-Identifier: Apache-2.0

package sheetcalc

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// MaxRows and MaxCols bound every address the engine accepts:
// parsing, windowing and dimension growth all use these limits.
const (
	MaxRows = 1_048_576
	MaxCols = 16_384
)

// CellAddress is a 1-based (row, column) coordinate.
type CellAddress struct {
	Row, Col int
}

// Addr is a shorthand for CellAddress{Row: row, Col: col}.
func Addr(row, col int) CellAddress { return CellAddress{Row: row, Col: col} }

// MakeKey returns the canonical "R{row}C{col}" key.
func MakeKey(row, col int) string {
	return "R" + strconv.Itoa(row) + "C" + strconv.Itoa(col)
}

// Key returns the canonical key of the address.
func (a CellAddress) Key() string { return MakeKey(a.Row, a.Col) }

func (a CellAddress) String() string { return a.Key() }

// Valid reports whether the address is inside [1..MaxRows]×[1..MaxCols].
func (a CellAddress) Valid() bool {
	return 1 <= a.Row && a.Row <= MaxRows && 1 <= a.Col && a.Col <= MaxCols
}

// ParseKey is the inverse of MakeKey.
func ParseKey(key string) (CellAddress, error) {
	rest, ok := strings.CutPrefix(key, "R")
	if !ok {
		return CellAddress{}, fmt.Errorf("%q: %w", key, ErrMalformedAddress)
	}
	rs, cs, ok := strings.Cut(rest, "C")
	if !ok {
		return CellAddress{}, fmt.Errorf("%q: %w", key, ErrMalformedAddress)
	}
	row, ok := parsePositive(rs)
	if !ok {
		return CellAddress{}, fmt.Errorf("%q: bad row: %w", key, ErrMalformedAddress)
	}
	col, ok := parsePositive(cs)
	if !ok {
		return CellAddress{}, fmt.Errorf("%q: bad column: %w", key, ErrMalformedAddress)
	}
	a := CellAddress{Row: row, Col: col}
	if !a.Valid() {
		return CellAddress{}, fmt.Errorf("%q: out of bounds: %w", key, ErrMalformedAddress)
	}
	return a, nil
}

// MustParseKey is like ParseKey but panics on malformed keys.
// Keys produced by the engine itself are always well-formed.
func MustParseKey(key string) CellAddress {
	a, err := ParseKey(key)
	if err != nil {
		panic(err)
	}
	return a
}

// parsePositive accepts only plain decimal digits without sign or leading zero.
func parsePositive(s string) (int, bool) {
	if s == "" || s[0] == '0' || len(s) > 9 {
		return 0, false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return 0, false
		}
	}
	n, err := strconv.Atoi(s)
	return n, err == nil
}

// A1 returns the address in A1 notation ("B3").
func (a CellAddress) A1() string {
	s, err := excelize.CoordinatesToCellName(a.Col, a.Row)
	if err != nil {
		return a.Key()
	}
	return s
}

// ParseA1 parses an A1-notation reference such as "AB12".
func ParseA1(s string) (CellAddress, error) {
	col, row, err := excelize.CellNameToCoordinates(s)
	if err != nil {
		return CellAddress{}, fmt.Errorf("%q: %w: %w", s, ErrMalformedAddress, err)
	}
	return CellAddress{Row: row, Col: col}, nil
}

// ColumnName returns the letters of the 1-based column ("A", "AA").
func ColumnName(col int) string {
	s, err := excelize.ColumnNumberToName(col)
	if err != nil {
		return strconv.Itoa(col)
	}
	return s
}

// MarshalText encodes the address as its canonical key, so GridData
// can be used directly as a JSON object.
func (a CellAddress) MarshalText() ([]byte, error) { return []byte(a.Key()), nil }

func (a *CellAddress) UnmarshalText(b []byte) error {
	p, err := ParseKey(string(b))
	if err != nil {
		return err
	}
	*a = p
	return nil
}
