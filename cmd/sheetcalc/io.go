// Copyright 2026, Tamás Gulácsi.
//
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/UNO-SOFT/sheetcalc"
	"github.com/UNO-SOFT/sheetcalc/html"
	"github.com/UNO-SOFT/sheetcalc/pdf"
	"github.com/UNO-SOFT/sheetcalc/session"
	"github.com/UNO-SOFT/sheetcalc/xlsx"
)

func format(fn string) string {
	if fn == "" || fn == "-" {
		return "csv"
	}
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(fn), "."))
	switch ext {
	case "htm":
		return "html"
	case "zst":
		return "sheetcalc"
	}
	return ext
}

// load imports fn into s by its extension; anything unknown is read as CSV.
func (cfg *config) load(s *session.Session, fn string) error {
	switch format(fn) {
	case "xlsx":
		grid, dims, err := xlsx.ImportFile(fn)
		if err != nil {
			return fmt.Errorf("%s: %w", fn, err)
		}
		s.Import(grid, dims)
	case "sheetcalc":
		fh, err := os.Open(fn)
		if err != nil {
			return fmt.Errorf("%w: %w", sheetcalc.ErrImportFailed, err)
		}
		defer fh.Close()
		if err = s.Load(fh); err != nil {
			return fmt.Errorf("%s: %w", fn, err)
		}
	default:
		grid, dims, err := sheetcalc.OpenCSV(fn, cfg.Charset)
		if err != nil {
			return fmt.Errorf("%s: %w", fn, err)
		}
		s.Import(grid, dims)
	}
	logger.Debug("loaded", "file", fn, "dims", s.Dimensions())
	return nil
}

// save writes the values of s to fn ("-" is stdout) in the format of its extension.
func (cfg *config) save(s *session.Session, fn, sheetName string) error {
	var fh *os.File = os.Stdout
	if !(fn == "" || fn == "-") {
		var err error
		if fh, err = os.Create(fn); err != nil {
			return fmt.Errorf("%w: %w", sheetcalc.ErrExportFailed, err)
		}
		defer fh.Close()
	}
	if err := cfg.write(fh, s, format(fn), sheetName); err != nil {
		return fmt.Errorf("%s: %w", fn, err)
	}
	if fh == os.Stdout {
		return nil
	}
	return fh.Close()
}

func (cfg *config) write(w io.Writer, s *session.Session, format, sheetName string) error {
	if format == "sheetcalc" {
		return s.Save(w)
	}
	sw, err := cfg.newWriter(w, format, sheetName)
	if err != nil {
		return err
	}
	grid := s.Grid()
	dims := grid.Bounds()
	if cfg.Full {
		dims = s.Dimensions()
	}
	if err = sheetcalc.Export(sw, sheetName, grid, dims); err != nil {
		sw.Close()
		return err
	}
	return sw.Close()
}

func (cfg *config) newWriter(w io.Writer, format, title string) (sheetcalc.Writer, error) {
	switch format {
	case "xlsx":
		return xlsx.NewWriter(w), nil
	case "pdf":
		return pdf.NewWriter(w, pdf.Options{Landscape: cfg.Landscape, FontSize: cfg.FontSize}), nil
	case "html":
		return html.NewWriter(w, title), nil
	case "csv", "txt":
		return sheetcalc.NewCSVWriter(w, cfg.Charset, ',')
	}
	return nil, fmt.Errorf("%w: unknown format %q", sheetcalc.ErrExportFailed, format)
}
