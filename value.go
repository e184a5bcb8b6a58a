// Copyright 2026, Tamás Gulácsi.
//
// SPDX-License-Identifier: Apache-2.0

package sheetcalc

import (
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Kind is the tag of a CellValue.
type Kind uint8

const (
	KindNull Kind = iota
	KindNumber
	KindText
	KindBool
	// KindError is only produced by failing formulas.
	KindError
)

var kindNames = [...]string{"null", "number", "text", "bool", "error"}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", k)
}

// CellValue is a tagged union of null, number, text, boolean and error.
// The zero value is Null.
type CellValue struct {
	kind Kind
	num  float64
	str  string
	b    bool
}

func Null() CellValue                 { return CellValue{} }
func Number(f float64) CellValue      { return CellValue{kind: KindNumber, num: f} }
func Text(s string) CellValue         { return CellValue{kind: KindText, str: s} }
func Bool(b bool) CellValue           { return CellValue{kind: KindBool, b: b} }
func ErrorValue(msg string) CellValue { return CellValue{kind: KindError, str: msg} }

// Failed is the sentinel value displayed by a failing formula.
var Failed = ErrorValue(ErrorText)

func (v CellValue) Kind() Kind    { return v.kind }
func (v CellValue) IsNull() bool  { return v.kind == KindNull }
func (v CellValue) IsError() bool { return v.kind == KindError }
func (v CellValue) Num() float64  { return v.num }
func (v CellValue) Str() string   { return v.str }
func (v CellValue) BoolVal() bool { return v.b }

// Float coerces the value to a number.
// Booleans are 1 or 0, text must parse as a number; null and errors never coerce.
func (v CellValue) Float() (float64, bool) {
	switch v.kind {
	case KindNumber:
		return v.num, true
	case KindBool:
		if v.b {
			return 1, true
		}
		return 0, true
	case KindText:
		f, err := strconv.ParseFloat(strings.TrimSpace(v.str), 64)
		if err != nil || math.IsNaN(f) {
			return 0, false
		}
		return f, true
	}
	return 0, false
}

// String returns the natural string form: "" for null, "true"/"false" for booleans.
func (v CellValue) String() string {
	switch v.kind {
	case KindNumber:
		return FormatNumber(v.num)
	case KindText, KindError:
		return v.str
	case KindBool:
		return strconv.FormatBool(v.b)
	}
	return ""
}

// Native returns the value as nil, float64, string or bool.
func (v CellValue) Native() any {
	switch v.kind {
	case KindNumber:
		return v.num
	case KindText, KindError:
		return v.str
	case KindBool:
		return v.b
	}
	return nil
}

// FormatNumber prints a number without exponent or superfluous zeros.
func FormatNumber(f float64) string {
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return strconv.FormatFloat(f, 'g', -1, 64)
	}
	if a := math.Abs(f); a >= 1e21 || (a != 0 && a < 1e-7) {
		return strconv.FormatFloat(f, 'g', -1, 64)
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

var rxNumeric = regexp.MustCompile(`^-?\d+(\.\d+)?$`)

// ParseValue classifies raw literal text: "" is null, numeric literals are
// numbers, "true"/"false" (any case) are booleans, anything else is text.
func ParseValue(s string) CellValue {
	if s == "" {
		return Null()
	}
	if rxNumeric.MatchString(s) {
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return Number(f)
		}
	}
	switch strings.ToLower(s) {
	case "true":
		return Bool(true)
	case "false":
		return Bool(false)
	}
	return Text(s)
}

type jsonValue struct {
	Kind Kind    `json:"k"`
	Num  float64 `json:"n,omitempty"`
	Str  string  `json:"s,omitempty"`
	Bool bool    `json:"b,omitempty"`
}

func (v CellValue) MarshalJSON() ([]byte, error) {
	return json.Marshal(jsonValue{Kind: v.kind, Num: v.num, Str: v.str, Bool: v.b})
}

func (v *CellValue) UnmarshalJSON(b []byte) error {
	var j jsonValue
	if err := json.Unmarshal(b, &j); err != nil {
		return err
	}
	if j.Kind > KindError {
		return fmt.Errorf("unknown value kind %d", j.Kind)
	}
	*v = CellValue{kind: j.Kind, num: j.Num, str: j.Str, b: j.Bool}
	return nil
}

// Equal reports whether both values have the same kind and payload.
func (v CellValue) Equal(o CellValue) bool { return v == o }
