// Copyright 2026, Tamás Gulácsi.
//
// SPDX-License-Identifier: Apache-2.0

package session

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/UNO-SOFT/sheetcalc"
)

// Condition is the comparison a column filter applies.
type Condition string

const (
	Equals      Condition = "equals"
	Contains    Condition = "contains"
	StartsWith  Condition = "startsWith"
	EndsWith    Condition = "endsWith"
	GreaterThan Condition = "greaterThan"
	LessThan    Condition = "lessThan"
	Between     Condition = "between"
)

// Filter is a per-column predicate. String conditions compare the value's
// string form; numeric conditions coerce both sides to numbers.
// Between is inclusive and needs Second.
type Filter struct {
	Condition Condition `json:"condition"`
	Value     string    `json:"value"`
	Second    string    `json:"second,omitempty"`
}

// Validate checks that the filter is complete.
func (f Filter) Validate() error {
	switch f.Condition {
	case Equals, Contains, StartsWith, EndsWith, GreaterThan, LessThan:
		return nil
	case Between:
		if f.Value == "" || f.Second == "" {
			return fmt.Errorf("%q..%q: %w", f.Value, f.Second, sheetcalc.ErrFilterBounds)
		}
		return nil
	}
	return fmt.Errorf("unknown filter condition %q", f.Condition)
}

// Passes reports whether v satisfies the filter. Null never does.
func (f Filter) Passes(v sheetcalc.CellValue) bool {
	if v.IsNull() {
		return false
	}
	s := v.String()
	switch f.Condition {
	case Equals:
		return s == f.Value
	case Contains:
		return strings.Contains(s, f.Value)
	case StartsWith:
		return strings.HasPrefix(s, f.Value)
	case EndsWith:
		return strings.HasSuffix(s, f.Value)
	}
	n, ok := v.Float()
	if !ok {
		return false
	}
	lo := bound(f.Value)
	switch f.Condition {
	case GreaterThan:
		return n > lo
	case LessThan:
		return n < lo
	case Between:
		return lo <= n && n <= bound(f.Second)
	}
	return true
}

// bound parses a numeric bound; NaN makes every comparison false.
func bound(s string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return math.NaN()
	}
	return f
}

// SetFilter configures the filter of col.
func (s *Session) SetFilter(col int, f Filter) error {
	if err := f.Validate(); err != nil {
		return fmt.Errorf("column %d: %w", col, err)
	}
	s.filters[col] = f
	return nil
}

// ClearFilter removes the filter of col.
func (s *Session) ClearFilter(col int) { delete(s.filters, col) }

// ClearFilters removes every filter.
func (s *Session) ClearFilters() { clear(s.filters) }

// Filters returns the configured filters by column.
func (s *Session) Filters() map[int]Filter {
	m := make(map[int]Filter, len(s.filters))
	for k, v := range s.filters {
		m[k] = v
	}
	return m
}

// Passes reports whether the cell at a passes the filter of its column.
// A column without a filter passes everything.
func (s *Session) Passes(a sheetcalc.CellAddress) bool {
	f, ok := s.filters[a.Col]
	if !ok {
		return true
	}
	c, _ := s.store.Get(a)
	return f.Passes(c.Value)
}
