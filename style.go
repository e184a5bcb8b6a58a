// Copyright 2026, Tamás Gulácsi.
//
// SPDX-License-Identifier: Apache-2.0

package sheetcalc

// Alignment is the horizontal alignment of a cell.
type Alignment string

const (
	AlignUnset  Alignment = ""
	AlignLeft   Alignment = "left"
	AlignCenter Alignment = "center"
	AlignRight  Alignment = "right"
)

// NumberFormat is a display-only number format tag.
type NumberFormat string

const (
	FormatUnset      NumberFormat = ""
	FormatNone       NumberFormat = "none"
	FormatCurrency   NumberFormat = "currency"
	FormatPercentage NumberFormat = "percentage"
)

// Style holds optional per-cell attributes. Nil pointers and empty strings are unset.
type Style struct {
	Bold      *bool `json:"bold,omitempty"`
	Italic    *bool `json:"italic,omitempty"`
	Underline *bool `json:"underline,omitempty"`

	Align        Alignment    `json:"align,omitempty"`
	Background   string       `json:"background,omitempty"`
	Color        string       `json:"color,omitempty"`
	NumberFormat NumberFormat `json:"numberFormat,omitempty"`
}

// Flag returns a pointer to b, for building Style patches.
func Flag(b bool) *bool { return &b }

// IsZero reports whether no attribute is set.
func (s Style) IsZero() bool {
	return s.Bold == nil && s.Italic == nil && s.Underline == nil &&
		s.Align == "" && s.Background == "" && s.Color == "" && s.NumberFormat == ""
}

// Merge returns s overlaid with every attribute set in patch.
func (s Style) Merge(patch Style) Style {
	if patch.Bold != nil {
		s.Bold = Flag(*patch.Bold)
	}
	if patch.Italic != nil {
		s.Italic = Flag(*patch.Italic)
	}
	if patch.Underline != nil {
		s.Underline = Flag(*patch.Underline)
	}
	if patch.Align != "" {
		s.Align = patch.Align
	}
	if patch.Background != "" {
		s.Background = patch.Background
	}
	if patch.Color != "" {
		s.Color = patch.Color
	}
	if patch.NumberFormat != "" {
		s.NumberFormat = patch.NumberFormat
	}
	return s
}

// IsBold, IsItalic and IsUnderline treat unset as false.
func (s Style) IsBold() bool      { return s.Bold != nil && *s.Bold }
func (s Style) IsItalic() bool    { return s.Italic != nil && *s.Italic }
func (s Style) IsUnderline() bool { return s.Underline != nil && *s.Underline }

// Equal compares attribute values, not pointer identity.
func (s Style) Equal(o Style) bool {
	return eqFlag(s.Bold, o.Bold) && eqFlag(s.Italic, o.Italic) && eqFlag(s.Underline, o.Underline) &&
		s.Align == o.Align && s.Background == o.Background && s.Color == o.Color &&
		s.NumberFormat == o.NumberFormat
}

func eqFlag(a, b *bool) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
