// Copyright 2026, Tamás Gulácsi.
//
// SPDX-License-Identifier: Apache-2.0

package formula

import (
	"fmt"
	"strconv"

	"github.com/UNO-SOFT/sheetcalc"
)

// arithmetic evaluates +, -, *, / with parentheses and unary signs.
// Cell references are replaced by their resolved value (0 if absent).
func (p *pass) arithmetic(expr string) (float64, error) {
	ar := arith{pass: p, s: expr}
	ar.skipSpace()
	if ar.eof() {
		return 0, fmt.Errorf("empty expression: %w", sheetcalc.ErrInvalidExpression)
	}
	f, err := ar.sum()
	if err != nil {
		return 0, err
	}
	if ar.skipSpace(); !ar.eof() {
		return 0, ar.errorf("unexpected %q", ar.s[ar.i:])
	}
	return f, nil
}

type arith struct {
	*pass
	s string
	i int
}

func (ar *arith) eof() bool { return ar.i >= len(ar.s) }

func (ar *arith) skipSpace() {
	for !ar.eof() && (ar.s[ar.i] == ' ' || ar.s[ar.i] == '\t') {
		ar.i++
	}
}

func (ar *arith) peek() byte {
	ar.skipSpace()
	if ar.eof() {
		return 0
	}
	return ar.s[ar.i]
}

func (ar *arith) errorf(format string, args ...any) error {
	return fmt.Errorf("%s at %d: %w", fmt.Sprintf(format, args...), ar.i, sheetcalc.ErrInvalidExpression)
}

func (ar *arith) sum() (float64, error) {
	acc, err := ar.product()
	if err != nil {
		return 0, err
	}
	for {
		op := ar.peek()
		if op != '+' && op != '-' {
			return acc, nil
		}
		ar.i++
		f, err := ar.product()
		if err != nil {
			return 0, err
		}
		if op == '+' {
			acc += f
		} else {
			acc -= f
		}
	}
}

func (ar *arith) product() (float64, error) {
	acc, err := ar.unary()
	if err != nil {
		return 0, err
	}
	for {
		op := ar.peek()
		if op != '*' && op != '/' {
			return acc, nil
		}
		ar.i++
		f, err := ar.unary()
		if err != nil {
			return 0, err
		}
		if op == '*' {
			acc *= f
			continue
		}
		if f == 0 {
			return 0, fmt.Errorf("%g/0: %w", acc, sheetcalc.ErrDivisionByZero)
		}
		acc /= f
	}
}

func (ar *arith) unary() (float64, error) {
	switch ar.peek() {
	case '-':
		ar.i++
		f, err := ar.unary()
		return -f, err
	case '+':
		ar.i++
		return ar.unary()
	}
	return ar.primary()
}

func (ar *arith) primary() (float64, error) {
	c := ar.peek()
	switch {
	case c == '(':
		ar.i++
		f, err := ar.sum()
		if err != nil {
			return 0, err
		}
		if ar.peek() != ')' {
			return 0, ar.errorf("missing )")
		}
		ar.i++
		return f, nil
	case isDigit(c) || c == '.':
		return ar.number()
	case 'A' <= c && c <= 'Z':
		return ar.reference()
	case c == 0:
		return 0, ar.errorf("unexpected end")
	}
	return 0, ar.errorf("unexpected %q", c)
}

func (ar *arith) number() (float64, error) {
	start := ar.i
	for !ar.eof() && (isDigit(ar.s[ar.i]) || ar.s[ar.i] == '.') {
		ar.i++
	}
	if !ar.eof() && (ar.s[ar.i] == 'e' || ar.s[ar.i] == 'E') {
		j := ar.i + 1
		if j < len(ar.s) && (ar.s[j] == '+' || ar.s[j] == '-') {
			j++
		}
		if j < len(ar.s) && isDigit(ar.s[j]) {
			for ar.i = j; !ar.eof() && isDigit(ar.s[ar.i]); ar.i++ {
			}
		}
	}
	f, err := strconv.ParseFloat(ar.s[start:ar.i], 64)
	if err != nil {
		return 0, ar.errorf("bad number %q", ar.s[start:ar.i])
	}
	return f, nil
}

// reference substitutes the value of a [A-Z]+[0-9]+ token.
func (ar *arith) reference() (float64, error) {
	start := ar.i
	for !ar.eof() && 'A' <= ar.s[ar.i] && ar.s[ar.i] <= 'Z' {
		ar.i++
	}
	digits := ar.i
	for !ar.eof() && isDigit(ar.s[ar.i]) {
		ar.i++
	}
	if digits == ar.i {
		return 0, ar.errorf("%q is not a cell reference", ar.s[start:ar.i])
	}
	a, err := parseRef(ar.s[start:ar.i])
	if err != nil {
		return 0, err
	}
	v, err := ar.resolve(a)
	if err != nil {
		return 0, err
	}
	if v.IsNull() {
		return 0, nil
	}
	f, ok := v.Float()
	if !ok {
		return 0, fmt.Errorf("%s holds %s %q: %w", a.A1(), v.Kind(), v.String(), sheetcalc.ErrInvalidExpression)
	}
	return f, nil
}

func isDigit(c byte) bool { return '0' <= c && c <= '9' }
