// Copyright 2026, Tamás Gulácsi.
//
// SPDX-License-Identifier: Apache-2.0

// Package history is the undo/redo log of reversible edits.
// Commands are plain data replayed against a Target; the log never
// recalculates formulas, that is left to the caller.
package history

import (
	"encoding/json"
	"fmt"
	"slices"
)

// Log holds the past (most recent last) and future stacks.
// The zero value is an empty log.
type Log struct {
	past, future []Command
}

// Record appends c to the past and clears the future.
func (l *Log) Record(c Command) {
	l.past = append(l.past, c)
	clear(l.future)
	l.future = l.future[:0]
}

// Undo reverts the most recent command on t and moves it to the future.
// It returns false, changing nothing, if there is nothing to undo.
func (l *Log) Undo(t Target) (Command, bool) {
	c, ok := pop(&l.past)
	if !ok {
		return nil, false
	}
	c.apply(t, false)
	l.future = append(l.future, c)
	return c, true
}

// Redo re-applies the most recently undone command on t.
func (l *Log) Redo(t Target) (Command, bool) {
	c, ok := pop(&l.future)
	if !ok {
		return nil, false
	}
	c.apply(t, true)
	l.past = append(l.past, c)
	return c, true
}

func pop(stack *[]Command) (Command, bool) {
	n := len(*stack)
	if n == 0 {
		return nil, false
	}
	c := (*stack)[n-1]
	(*stack)[n-1] = nil
	*stack = (*stack)[:n-1]
	return c, true
}

func (l *Log) CanUndo() bool { return len(l.past) != 0 }
func (l *Log) CanRedo() bool { return len(l.future) != 0 }

// Len returns the sizes of the past and future stacks.
func (l *Log) Len() (past, future int) { return len(l.past), len(l.future) }

// Past and Future return copies of the stacks, oldest first.
func (l *Log) Past() []Command   { return slices.Clone(l.past) }
func (l *Log) Future() []Command { return slices.Clone(l.future) }

// Clear drops both stacks.
func (l *Log) Clear() { l.past, l.future = nil, nil }

type envelope struct {
	Kind    Kind            `json:"kind"`
	Command json.RawMessage `json:"command"`
}

type jsonLog struct {
	Past   []envelope `json:"past"`
	Future []envelope `json:"future"`
}

func (l *Log) MarshalJSON() ([]byte, error) {
	var j jsonLog
	var err error
	if j.Past, err = wrap(l.past); err != nil {
		return nil, err
	}
	if j.Future, err = wrap(l.future); err != nil {
		return nil, err
	}
	return json.Marshal(j)
}

func (l *Log) UnmarshalJSON(b []byte) error {
	var j jsonLog
	if err := json.Unmarshal(b, &j); err != nil {
		return err
	}
	past, err := unwrap(j.Past)
	if err != nil {
		return fmt.Errorf("past: %w", err)
	}
	future, err := unwrap(j.Future)
	if err != nil {
		return fmt.Errorf("future: %w", err)
	}
	l.past, l.future = past, future
	return nil
}

func wrap(cmds []Command) ([]envelope, error) {
	out := make([]envelope, 0, len(cmds))
	for _, c := range cmds {
		b, err := json.Marshal(c)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", c.Kind(), err)
		}
		out = append(out, envelope{Kind: c.Kind(), Command: b})
	}
	return out, nil
}

func unwrap(envs []envelope) ([]Command, error) {
	out := make([]Command, 0, len(envs))
	for i, e := range envs {
		var c Command
		var err error
		switch e.Kind {
		case KindCellEdit:
			c, err = decode[CellEdit](e.Command)
		case KindCellsEdit:
			c, err = decode[CellsEdit](e.Command)
		case KindStyleEdit:
			c, err = decode[StyleEdit](e.Command)
		case KindColumnResize:
			c, err = decode[ColumnResize](e.Command)
		case KindRowResize:
			c, err = decode[RowResize](e.Command)
		default:
			err = fmt.Errorf("unknown command kind %q", e.Kind)
		}
		if err != nil {
			return nil, fmt.Errorf("%d: %w", i, err)
		}
		out = append(out, c)
	}
	return out, nil
}

func decode[T Command](b []byte) (Command, error) {
	var c T
	err := json.Unmarshal(b, &c)
	return c, err
}
