// Copyright 2026, Tamás Gulácsi.
//
// SPDX-License-Identifier: Apache-2.0

package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"maps"

	"github.com/klauspost/compress/zstd"

	"github.com/UNO-SOFT/sheetcalc"
	"github.com/UNO-SOFT/sheetcalc/history"
)

type snapshot struct {
	Cells      sheetcalc.GridData   `json:"cells"`
	Dimensions sheetcalc.Dimensions `json:"dimensions"`
	Widths     map[int]float64      `json:"widths,omitempty"`
	Heights    map[int]float64      `json:"heights,omitempty"`
	Filters    map[int]Filter       `json:"filters,omitempty"`
	Sort       *SortSpec            `json:"sort,omitempty"`
	History    *history.Log         `json:"history"`
}

// Save writes the sheet, its layout, filters, sort and undo log as
// zstd compressed JSON.
func (s *Session) Save(w io.Writer) error {
	zw, err := zstd.NewWriter(w)
	if err != nil {
		return err
	}
	err = json.NewEncoder(zw).Encode(snapshot{
		Cells: s.store.Snapshot(), Dimensions: s.dims,
		Widths: s.widths, Heights: s.heights,
		Filters: s.filters, Sort: s.sort,
		History: &s.log,
	})
	if closeErr := zw.Close(); closeErr != nil && err == nil {
		err = closeErr
	}
	if err != nil {
		return fmt.Errorf("save: %w: %w", sheetcalc.ErrExportFailed, err)
	}
	return nil
}

// Load replaces the session state by what Save wrote.
// On error the session is left untouched.
func (s *Session) Load(r io.Reader) error {
	zr, err := zstd.NewReader(r)
	if err != nil {
		return fmt.Errorf("load: %w: %w", sheetcalc.ErrImportFailed, err)
	}
	defer zr.Close()
	snap := snapshot{History: new(history.Log)}
	if err := json.NewDecoder(zr).Decode(&snap); err != nil {
		return fmt.Errorf("load: %w: %w", sheetcalc.ErrImportFailed, err)
	}
	for _, f := range snap.Filters {
		if err := f.Validate(); err != nil {
			return fmt.Errorf("load: %w: %w", sheetcalc.ErrImportFailed, err)
		}
	}
	for a := range snap.Cells {
		if !a.Valid() {
			return fmt.Errorf("load %s: %w", a, errors.Join(sheetcalc.ErrImportFailed, sheetcalc.ErrMalformedAddress))
		}
	}

	s.store.Replace(snap.Cells)
	b := snap.Cells.Bounds()
	s.dims = sheetcalc.Dimensions{Rows: max(snap.Dimensions.Rows, b.Rows), Cols: max(snap.Dimensions.Cols, b.Cols)}
	s.widths, s.heights = orEmpty(snap.Widths), orEmpty(snap.Heights)
	s.filters = make(map[int]Filter, len(snap.Filters))
	maps.Copy(s.filters, snap.Filters)
	s.sort = snap.Sort
	s.log = *snap.History
	s.active, s.selection = nil, nil
	s.recalculate()
	s.logger.Info("load", "cells", s.store.Len(), "undo", len(s.log.Past()))
	return nil
}

func orEmpty(m map[int]float64) map[int]float64 {
	if m == nil {
		return make(map[int]float64)
	}
	return m
}
