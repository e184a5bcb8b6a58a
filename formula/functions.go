// Copyright 2026, Tamás Gulácsi.
//
// SPDX-License-Identifier: Apache-2.0

package formula

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/UNO-SOFT/sheetcalc"
)

var (
	rxName  = regexp.MustCompile(`^[A-Z]+$`)
	rxRef   = regexp.MustCompile(`^[A-Z]+[0-9]+$`)
	rxRange = regexp.MustCompile(`^([A-Z]+[0-9]+):([A-Z]+[0-9]+)$`)
	rxNum   = regexp.MustCompile(`^[-+]?(\d+\.?\d*|\.\d+)([eE][-+]?\d+)?$`)
)

// MaxRangeCells limits the area a single range argument may expand to.
const MaxRangeCells = 1 << 22

type builtin func([]sheetcalc.CellValue) float64

var builtins = map[string]builtin{
	"SUM":     sum,
	"AVERAGE": average,
	"COUNT":   count,
	"MAX":     maximum,
	"MIN":     minimum,
}

// splitCall matches NAME(args) where the parenthesis opened after NAME
// is the one closing the expression.
func splitCall(expr string) (name, args string, ok bool) {
	i := strings.IndexByte(expr, '(')
	if i <= 0 || !strings.HasSuffix(expr, ")") || !rxName.MatchString(expr[:i]) {
		return "", "", false
	}
	depth := 0
	for j := i; j < len(expr); j++ {
		switch expr[j] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 && j != len(expr)-1 {
				return "", "", false
			}
		}
	}
	return expr[:i], expr[i+1 : len(expr)-1], depth == 0
}

func (p *pass) call(name, args string) (sheetcalc.CellValue, error) {
	fn, ok := builtins[name]
	if !ok {
		return sheetcalc.Null(), fmt.Errorf("%s: %w", name, sheetcalc.ErrUnknownFunction)
	}
	var values []sheetcalc.CellValue
	if strings.TrimSpace(args) != "" {
		for _, arg := range strings.Split(args, ",") {
			var err error
			if values, err = p.argument(values, strings.TrimSpace(arg)); err != nil {
				return sheetcalc.Null(), err
			}
		}
	}
	return sheetcalc.Number(fn(values)), nil
}

// argument appends the values of one argument: a range expands row-major,
// a reference yields its cell (null if absent), anything else is a literal.
func (p *pass) argument(values []sheetcalc.CellValue, arg string) ([]sheetcalc.CellValue, error) {
	if m := rxRange.FindStringSubmatch(arg); m != nil {
		from, err := parseRef(m[1])
		if err != nil {
			return values, err
		}
		to, err := parseRef(m[2])
		if err != nil {
			return values, err
		}
		r := sheetcalc.NewRange(from, to)
		if r.Rows()*r.Cols() > MaxRangeCells {
			return values, fmt.Errorf("%s is too large: %w", r, sheetcalc.ErrInvalidExpression)
		}
		for a := range r.All() {
			v, err := p.resolve(a)
			if err != nil {
				return values, err
			}
			values = append(values, v)
		}
		return values, nil
	}
	if rxRef.MatchString(arg) {
		a, err := parseRef(arg)
		if err != nil {
			return values, err
		}
		v, err := p.resolve(a)
		return append(values, v), err
	}
	if arg == "" {
		return append(values, sheetcalc.Null()), nil
	}
	if rxNum.MatchString(arg) {
		if f, err := strconv.ParseFloat(arg, 64); err == nil {
			return append(values, sheetcalc.Number(f)), nil
		}
	}
	return append(values, sheetcalc.Text(arg)), nil
}

func parseRef(s string) (sheetcalc.CellAddress, error) {
	a, err := sheetcalc.ParseA1(s)
	if err != nil {
		return a, fmt.Errorf("%w: %w", sheetcalc.ErrInvalidExpression, err)
	}
	return a, nil
}

// sum treats null and non-numeric values as 0.
func sum(values []sheetcalc.CellValue) float64 {
	var s float64
	for _, v := range values {
		if f, ok := v.Float(); ok {
			s += f
		}
	}
	return s
}

// average divides by the number of non-null values only,
// so absent cells lower COUNT but not SUM.
func average(values []sheetcalc.CellValue) float64 {
	n := count(values)
	if n == 0 {
		return 0
	}
	return sum(values) / n
}

func count(values []sheetcalc.CellValue) float64 {
	var n float64
	for _, v := range values {
		if !v.IsNull() {
			n++
		}
	}
	return n
}

func maximum(values []sheetcalc.CellValue) float64 { return extreme(values, math.Max) }
func minimum(values []sheetcalc.CellValue) float64 { return extreme(values, math.Min) }

// extreme counts null as 0 and silently drops other values that are not
// numeric-coercible; 0 if none is left.
func extreme(values []sheetcalc.CellValue, pick func(a, b float64) float64) float64 {
	var res float64
	var seen bool
	for _, v := range values {
		f, ok := v.Float()
		if v.IsNull() {
			f, ok = 0, true
		}
		if !ok {
			continue
		}
		if !seen {
			res, seen = f, true
			continue
		}
		res = pick(res, f)
	}
	return res
}
