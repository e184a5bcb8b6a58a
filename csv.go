// Copyright 2020, 2026 Tamás Gulácsi.
//
// SPDX-License-Identifier: Apache-2.0

package sheetcalc

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"unicode"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/transform"
)

var EncName = "utf-8"

func init() {
	EncName = os.Getenv("LANG")
	if i := strings.IndexByte(EncName, '.'); i >= 0 {
		EncName = strings.ToLower(EncName[i+1:])
	}
	if EncName == "" {
		EncName = "utf-8"
	}
}

func GetEncoding(encName string) (encoding.Encoding, error) {
	encName = strings.ToLower(encName)
	if encName == "" || encName == "utf-8" || encName == "utf8" {
		return nil, nil
	}
	enc, err := htmlindex.Get(encName)
	if err != nil {
		err = fmt.Errorf("%q: %w", encName, err)
	}
	return enc, err
}

// ReadCSV imports the values of a CSV stream, row 1 being the first record.
// The separator is sniffed from the first non-letter, non-digit rune.
// Every field goes through ParseValue; formulas are not interpreted.
func ReadCSV(r io.Reader, encName string) (GridData, Dimensions, error) {
	enc, err := GetEncoding(encName)
	if err != nil {
		return nil, Dimensions{}, fmt.Errorf("%w: %w", ErrImportFailed, err)
	}
	if enc != nil {
		r = enc.NewDecoder().Reader(r)
	}
	br := bufio.NewReaderSize(r, 1<<20)
	b, err := br.Peek(1024)
	if err != nil && len(b) == 0 {
		if errors.Is(err, io.EOF) {
			return GridData{}, Dimensions{}, nil
		}
		return nil, Dimensions{}, fmt.Errorf("%w: %w", ErrImportFailed, err)
	}
	cr := csv.NewReader(br)
	cr.ReuseRecord = true
	cr.FieldsPerRecord = -1
	cr.Comma = sniffSeparator(b)

	grid := make(GridData)
	var dims Dimensions
	for row := 1; ; row++ {
		rec, err := cr.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, Dimensions{}, fmt.Errorf("%w: line %d: %w", ErrImportFailed, row, err)
		}
		if row > MaxRows {
			return nil, Dimensions{}, fmt.Errorf("%w: %w", ErrImportFailed, ErrTooManyRows)
		}
		for i, s := range rec {
			if s == "" {
				continue
			}
			a := Addr(row, i+1)
			if !a.Valid() {
				return nil, Dimensions{}, fmt.Errorf("%w: %s: %w", ErrImportFailed, a, ErrMalformedAddress)
			}
			grid[a] = Cell{Addr: a, Value: ParseValue(s)}
			dims = dims.Cover(a)
		}
	}
	return grid, dims, nil
}

// OpenCSV reads the named file ("-" or "" is stdin) with ReadCSV.
func OpenCSV(fn, encName string) (GridData, Dimensions, error) {
	fh := os.Stdin
	if !(fn == "" || fn == "-") {
		var err error
		if fh, err = os.Open(fn); err != nil {
			return nil, Dimensions{}, fmt.Errorf("%w: %w", ErrImportFailed, err)
		}
		defer fh.Close()
	}
	return ReadCSV(fh, encName)
}

func sniffSeparator(b []byte) rune {
	sep := rune(',')
	for _, r := range string(b) {
		if r == '"' || r == '_' || r == '.' || r == '-' || unicode.IsLetter(r) || unicode.IsNumber(r) {
			continue
		}
		sep = r
		break
	}
	if sep == '\n' || sep == '\r' || sep == ' ' {
		return ','
	}
	return sep
}

var _ = (Writer)((*CSVWriter)(nil))

// CSVWriter is a Writer of exactly one sheet as CSV.
type CSVWriter struct {
	cw *csv.Writer
	// flush is the encoder's Close, nil without an encoder; w itself is never closed.
	flush  func() error
	hasOne bool
	mu     sync.Mutex
}

// NewCSVWriter returns a Writer encoding to encName, with comma as the separator.
func NewCSVWriter(w io.Writer, encName string, comma rune) (*CSVWriter, error) {
	enc, err := GetEncoding(encName)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExportFailed, err)
	}
	var flush func() error
	if enc != nil {
		tw := transform.NewWriter(w, enc.NewEncoder())
		w, flush = tw, tw.Close
	}
	cw := csv.NewWriter(w)
	if comma != 0 {
		cw.Comma = comma
	}
	return &CSVWriter{cw: cw, flush: flush}, nil
}

func (cw *CSVWriter) NewSheet(name string, cols []Column) (Sheet, error) {
	cw.mu.Lock()
	defer cw.mu.Unlock()
	if cw.hasOne {
		return nil, fmt.Errorf("%s: csv holds only one sheet", name)
	}
	cw.hasOne = true
	for _, c := range cols {
		if c.Name == "" {
			continue
		}
		header := make([]string, len(cols))
		for i, c := range cols {
			header[i] = c.Name
		}
		if err := cw.cw.Write(header); err != nil {
			return nil, err
		}
		break
	}
	return csvSheet{cw}, nil
}

func (cw *CSVWriter) Close() error {
	cw.mu.Lock()
	defer cw.mu.Unlock()
	cw.cw.Flush()
	err := cw.cw.Error()
	if cw.flush != nil {
		if flushErr := cw.flush(); err == nil {
			err = flushErr
		}
		cw.flush = nil
	}
	return err
}

type csvSheet struct{ *CSVWriter }

func (csvSheet) Close() error { return nil }
func (sh csvSheet) AppendRow(values ...any) error {
	rec := make([]string, len(values))
	for i, v := range values {
		switch x := v.(type) {
		case nil:
		case float64:
			rec[i] = FormatNumber(x)
		case string:
			rec[i] = x
		default:
			rec[i] = fmt.Sprint(v)
		}
	}
	sh.mu.Lock()
	defer sh.mu.Unlock()
	return sh.cw.Write(rec)
}
