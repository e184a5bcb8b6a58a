// Copyright 2026, Tamás Gulácsi.
//
// SPDX-License-Identifier: Apache-2.0

// Package formula evaluates formula text against a fixed grid snapshot.
//
// There is no dependency graph: RecalculateAll re-evaluates every formula cell
// from scratch on every call, recursing into referenced formula cells.
// A recursion guard (the set of addresses on the active evaluation stack)
// detects circular references. Every failure is folded into sheetcalc.Failed.
package formula

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/UNO-SOFT/sheetcalc"
)

// Snapshot is the read side of a grid. It must not change during an evaluation.
type Snapshot interface {
	Get(sheetcalc.CellAddress) (sheetcalc.Cell, bool)
}

// Engine evaluates formulas. The zero value is not usable, call New.
type Engine struct {
	logger *slog.Logger
	memo   bool
}

type Option func(*Engine)

// WithLogger sets the logger used for formula failures (Debug level).
func WithLogger(lgr *slog.Logger) Option {
	return func(e *Engine) {
		if lgr != nil {
			e.logger = lgr
		}
	}
}

// WithMemo makes RecalculateAll share evaluated results between the
// formulas of one pass. Results are identical to the unmemoized engine:
// a cell that fails inside another cell's evaluation lies on the same cycle,
// so it fails on its own as well.
func WithMemo() Option { return func(e *Engine) { e.memo = true } }

func New(opts ...Option) *Engine {
	e := &Engine{logger: slog.New(slog.DiscardHandler)}
	for _, o := range opts {
		o(e)
	}
	return e
}

// Evaluate returns the value of formula text located at origin,
// or sheetcalc.Failed if evaluation fails for any reason.
func (e *Engine) Evaluate(text string, origin sheetcalc.CellAddress, snap Snapshot) sheetcalc.CellValue {
	v, err := e.Eval(text, origin, snap)
	if err != nil {
		return sheetcalc.Failed
	}
	return v
}

// Eval is like Evaluate, but returns the cause of the failure.
func (e *Engine) Eval(text string, origin sheetcalc.CellAddress, snap Snapshot) (sheetcalc.CellValue, error) {
	p := newPass(snap, nil)
	return e.top(p, text, origin)
}

func (e *Engine) top(p *pass, text string, origin sheetcalc.CellAddress) (sheetcalc.CellValue, error) {
	v, err := p.formula(text, origin)
	if err != nil {
		e.logger.Debug("formula", "cell", origin.A1(), "formula", text, "error", err)
		return sheetcalc.Failed, err
	}
	return v, nil
}

// RecalculateAll returns a new grid in which every formula cell has its
// Value refreshed. The input grid is not modified and is the only snapshot
// read during the pass. A failing cell never stops the others.
func (e *Engine) RecalculateAll(grid sheetcalc.GridData) sheetcalc.GridData {
	out := grid.Clone()
	var memo map[sheetcalc.CellAddress]result
	if e.memo {
		memo = make(map[sheetcalc.CellAddress]result)
	}
	var n, failed int
	for a, c := range grid {
		if !c.HasFormula() {
			continue
		}
		n++
		// Each top-level evaluation gets its own guard.
		v, err := e.top(newPass(grid, memo), c.Formula, a)
		if err != nil {
			failed++
		}
		c.Value = v
		out[a] = c
	}
	e.logger.Debug("recalculated", "formulas", n, "failed", failed)
	return out
}

type result struct {
	v   sheetcalc.CellValue
	err error
}

type pass struct {
	snap  Snapshot
	guard map[sheetcalc.CellAddress]struct{}
	memo  map[sheetcalc.CellAddress]result
}

func newPass(snap Snapshot, memo map[sheetcalc.CellAddress]result) *pass {
	return &pass{snap: snap, guard: make(map[sheetcalc.CellAddress]struct{}), memo: memo}
}

// formula evaluates text owned by the cell at a, holding a in the guard meanwhile.
func (p *pass) formula(text string, a sheetcalc.CellAddress) (sheetcalc.CellValue, error) {
	expr, ok := strings.CutPrefix(text, "=")
	if !ok {
		return sheetcalc.Null(), fmt.Errorf("%q: %w", text, sheetcalc.ErrInvalidExpression)
	}
	if _, busy := p.guard[a]; busy {
		return sheetcalc.Null(), fmt.Errorf("%s: %w", a.A1(), sheetcalc.ErrCircularReference)
	}
	p.guard[a] = struct{}{}
	defer delete(p.guard, a)
	return p.expression(strings.TrimSpace(expr))
}

// resolve returns the value of a referenced cell: null if absent,
// the recursively evaluated result if it holds a formula.
func (p *pass) resolve(a sheetcalc.CellAddress) (sheetcalc.CellValue, error) {
	c, ok := p.snap.Get(a)
	if !ok {
		return sheetcalc.Null(), nil
	}
	if !c.HasFormula() {
		return c.Value, nil
	}
	if p.memo != nil {
		if r, ok := p.memo[a]; ok {
			return r.v, r.err
		}
	}
	v, err := p.formula(c.Formula, a)
	if p.memo != nil && !errors.Is(err, sheetcalc.ErrCircularReference) {
		p.memo[a] = result{v: v, err: err}
	}
	return v, err
}

func (p *pass) expression(expr string) (sheetcalc.CellValue, error) {
	if name, args, ok := splitCall(expr); ok {
		return p.call(name, args)
	}
	if rxRef.MatchString(expr) {
		a, err := parseRef(expr)
		if err != nil {
			return sheetcalc.Null(), err
		}
		v, err := p.resolve(a)
		if err != nil || !v.IsNull() {
			return v, err
		}
		return sheetcalc.Number(0), nil
	}
	f, err := p.arithmetic(expr)
	if err != nil {
		return sheetcalc.Null(), err
	}
	return sheetcalc.Number(f), nil
}
