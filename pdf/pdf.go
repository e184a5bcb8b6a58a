// Copyright 2021, 2026 Tamás Gulácsi.
//
// SPDX-License-Identifier: Apache-2.0

// Package pdf renders sheets as PDF tables.
package pdf

import (
	"fmt"
	"io"
	"math"
	"sync"
	"time"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/page"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontfamily"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/UNO-SOFT/sheetcalc"
)

var _ = (sheetcalc.Writer)((*Writer)(nil))

// Options of the rendering.
type Options struct {
	Landscape bool
	FontSize  float64
	// Alternate is the background of every second row; nil means none.
	Alternate *props.Color
}

// Writer collects the sheets in memory and renders them on Close,
// as the column widths depend on every row.
type Writer struct {
	w      io.Writer
	opts   Options
	sheets []*Sheet
	mu     sync.Mutex
}

// Sheet is one table; each sheet starts on a new page.
type Sheet struct {
	Name   string
	header []sheetcalc.Column
	rows   [][]string
	mu     sync.Mutex
}

// NewWriter returns a sheetcalc.Writer producing PDF.
func NewWriter(w io.Writer, opts Options) *Writer {
	if opts.FontSize <= 0 {
		opts.FontSize = 8
	}
	return &Writer{w: w, opts: opts}
}

func (pw *Writer) NewSheet(name string, columns []sheetcalc.Column) (sheetcalc.Sheet, error) {
	pw.mu.Lock()
	defer pw.mu.Unlock()
	if pw.w == nil {
		return nil, fmt.Errorf("%s: writer is closed", name)
	}
	sh := &Sheet{Name: name}
	for _, c := range columns {
		if c.Name != "" {
			sh.header = columns
			break
		}
	}
	pw.sheets = append(pw.sheets, sh)
	return sh, nil
}

func (sh *Sheet) Close() error { return nil }

// AppendRow adds a row of values; nil is a blank field.
func (sh *Sheet) AppendRow(values ...any) error {
	sh.mu.Lock()
	defer sh.mu.Unlock()
	if len(sh.rows) >= sheetcalc.MaxRows {
		return sheetcalc.ErrTooManyRows
	}
	row := make([]string, len(values))
	for i, v := range values {
		switch x := v.(type) {
		case nil:
		case string:
			row[i] = x
		case float64:
			row[i] = sheetcalc.FormatNumber(x)
		case time.Time:
			if !x.IsZero() {
				row[i] = x.Format("2006-01-02")
			}
		default:
			row[i] = fmt.Sprintf("%v", v)
		}
	}
	sh.rows = append(sh.rows, row)
	return nil
}

// Close renders every sheet and writes the document.
func (pw *Writer) Close() error {
	pw.mu.Lock()
	defer pw.mu.Unlock()
	w := pw.w
	pw.w = nil
	if w == nil {
		return nil
	}

	var width int
	for _, sh := range pw.sheets {
		width = max(width, sh.width())
	}
	gridSize := max(12, 4*width)

	b := config.NewBuilder().
		WithMaxGridSize(gridSize).
		WithDefaultFont(&props.Font{Family: fontfamily.Courier, Size: pw.opts.FontSize})
	if pw.opts.Landscape {
		b = b.WithOrientation(orientation.Horizontal)
	}
	m := maroto.New(b.Build())
	for _, sh := range pw.sheets {
		m.AddPages(pw.page(sh, gridSize))
	}
	doc, err := m.Generate()
	if err != nil {
		return fmt.Errorf("%w: %w", sheetcalc.ErrExportFailed, err)
	}
	if _, err = w.Write(doc.GetBytes()); err != nil {
		return fmt.Errorf("%w: %w", sheetcalc.ErrExportFailed, err)
	}
	return nil
}

func (pw *Writer) page(sh *Sheet, gridSize int) core.Page {
	sh.mu.Lock()
	defer sh.mu.Unlock()
	sizes := gridSizes(sh.widths(), gridSize)
	lineHeight := pw.opts.FontSize * 0.6
	p := page.New()
	if sh.header != nil {
		cols := make([]core.Col, len(sizes))
		for i := range sizes {
			var name string
			st := props.Text{Size: pw.opts.FontSize * 1.375, Family: fontfamily.Arial, Align: align.Center}
			if i < len(sh.header) {
				name = sh.header[i].Name
				if sh.header[i].HeaderBold {
					st.Style = fontstyle.Bold
				}
			}
			cols[i] = text.NewCol(sizes[i], name, st)
		}
		p.Add(row.New(lineHeight * 1.375 * 1.2).Add(cols...))
	}
	for n, values := range sh.rows {
		cols := make([]core.Col, len(sizes))
		for i := range sizes {
			var s string
			if i < len(values) {
				s = values[i]
			}
			cols[i] = text.NewCol(sizes[i], s, props.Text{Align: align.Center})
		}
		r := row.New(lineHeight).Add(cols...)
		if pw.opts.Alternate != nil && n%2 == 1 {
			r = r.WithStyle(&props.Cell{BackgroundColor: pw.opts.Alternate})
		}
		p.Add(r)
	}
	return p
}

func (sh *Sheet) width() int {
	n := len(sh.header)
	for _, r := range sh.rows {
		n = max(n, len(r))
	}
	return n
}

// widths returns the average text length per column, headers included.
func (sh *Sheet) widths() []float64 {
	widths := make([]float64, sh.width())
	for i, c := range sh.header {
		widths[i] += float64(len(c.Name))
	}
	for _, r := range sh.rows {
		for i, s := range r {
			widths[i] += float64(len(s))
		}
	}
	n := float64(len(sh.rows) + 1)
	for i := range widths {
		widths[i] /= n
	}
	return widths
}

// gridSizes distributes total grid units proportionally to widths,
// each column getting at least one.
func gridSizes(widths []float64, total int) []int {
	sizes := make([]int, len(widths))
	if len(widths) == 0 {
		return sizes
	}
	var sum float64
	for _, w := range widths {
		sum += w
	}
	free := total - len(widths)
	used := 0
	for i, w := range widths {
		sizes[i] = 1
		if sum > 0 {
			extra := int(math.Floor(w / sum * float64(free)))
			sizes[i] += extra
			used += extra
		}
	}
	for i := 0; used < free && sum > 0; i = (i + 1) % len(sizes) {
		sizes[i]++
		used++
	}
	return sizes
}
