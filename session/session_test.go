// Copyright 2026, Tamás Gulácsi.
//
// SPDX-License-Identifier: Apache-2.0

package session_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/UNO-SOFT/sheetcalc"
	"github.com/UNO-SOFT/sheetcalc/session"
	"github.com/UNO-SOFT/sheetcalc/viewport"
)

func at(t *testing.T, ref string) sheetcalc.CellAddress {
	t.Helper()
	a, err := sheetcalc.ParseA1(ref)
	if err != nil {
		t.Fatal(err)
	}
	return a
}

func edit(t *testing.T, s *session.Session, cells ...string) {
	t.Helper()
	for i := 0; i+1 < len(cells); i += 2 {
		if _, err := s.Edit(at(t, cells[i]), cells[i+1]); err != nil {
			t.Fatalf("%s=%q: %+v", cells[i], cells[i+1], err)
		}
	}
}

func value(t *testing.T, s *session.Session, ref string) sheetcalc.CellValue {
	t.Helper()
	c, _ := s.Cell(at(t, ref))
	return c.Value
}

func TestEditRecalculates(t *testing.T) {
	s := session.New(session.Options{})
	edit(t, s, "A1", "2", "A2", "3", "A3", "=SUM(A1:A2)", "B1", "=A3*2")
	if got := value(t, s, "A3"); !got.Equal(sheetcalc.Number(5)) {
		t.Errorf("A3=%v, wanted 5", got)
	}
	edit(t, s, "A1", "10")
	if got := value(t, s, "A3"); !got.Equal(sheetcalc.Number(13)) {
		t.Errorf("A3=%v, wanted 13", got)
	}
	if got := value(t, s, "B1"); !got.Equal(sheetcalc.Number(26)) {
		t.Errorf("B1=%v, wanted 26", got)
	}

	if _, err := s.Edit(sheetcalc.Addr(0, 1), "1"); !errors.Is(err, sheetcalc.ErrMalformedAddress) {
		t.Errorf("edit R0C1: got %v", err)
	}
}

func TestCircular(t *testing.T) {
	s := session.New(session.Options{})
	c, err := s.Edit(at(t, "A1"), "=A1")
	if err != nil {
		t.Fatal(err)
	}
	if !c.Value.Equal(sheetcalc.Failed) {
		t.Errorf("got %v, wanted %v", c.Value, sheetcalc.Failed)
	}
	edit(t, s, "B1", "=C1+1", "C1", "=B1+1", "D1", "7")
	for _, ref := range []string{"B1", "C1"} {
		if got := value(t, s, ref); !got.IsError() {
			t.Errorf("%s=%v, wanted an error", ref, got)
		}
	}
	if got := value(t, s, "D1"); !got.Equal(sheetcalc.Number(7)) {
		t.Errorf("D1=%v", got)
	}
}

func TestUndoRedo(t *testing.T) {
	s := session.New(session.Options{})
	edit(t, s, "A1", "1", "B1", "=A1+1")
	before := s.Grid()
	edit(t, s, "A1", "5")
	if got := value(t, s, "B1"); !got.Equal(sheetcalc.Number(6)) {
		t.Fatalf("B1=%v", got)
	}

	if _, ok := s.Undo(); !ok {
		t.Fatal("nothing to undo")
	}
	if d := cmp.Diff(before, s.Grid()); d != "" {
		t.Errorf("undo: %s", d)
	}
	if _, ok := s.Redo(); !ok {
		t.Fatal("nothing to redo")
	}
	if got := value(t, s, "B1"); !got.Equal(sheetcalc.Number(6)) {
		t.Errorf("redo: B1=%v", got)
	}

	s.Undo()
	if !s.History().CanRedo() {
		t.Fatal("redo stack is empty after undo")
	}
	edit(t, s, "C1", "x")
	if s.History().CanRedo() {
		t.Error("a new edit must clear the redo stack")
	}

	for s.History().CanUndo() {
		s.Undo()
	}
	if g := s.Grid(); len(g) != 0 {
		t.Errorf("all undone, still got %v", g)
	}
	if _, ok := s.Undo(); ok {
		t.Error("undo on empty log succeeded")
	}
}

func TestCopyPaste(t *testing.T) {
	s := session.New(session.Options{Dimensions: sheetcalc.Dimensions{Rows: 2, Cols: 2}})
	edit(t, s, "A1", "1", "B1", "2", "A2", "3", "B2", "four")
	s.Select(at(t, "A1"), at(t, "B2"))
	text, ok := s.Copy()
	if !ok {
		t.Fatal("nothing copied")
	}
	if want := "1\t2\n3\tfour"; text != want {
		t.Errorf("copy: got %q, wanted %q", text, want)
	}

	r, ok, err := s.Paste(text, at(t, "D5"))
	if err != nil || !ok {
		t.Fatalf("paste: %t %+v", ok, err)
	}
	if want := sheetcalc.NewRange(at(t, "D5"), at(t, "E6")); r != want {
		t.Errorf("pasted %s, wanted %s", r, want)
	}
	if got := s.CopyRange(r); got != text {
		t.Errorf("round trip: got %q, wanted %q", got, text)
	}
	if d := s.Dimensions(); d.Rows < 6 || d.Cols < 5 {
		t.Errorf("dimensions %+v do not cover %s", d, r)
	}
	if sel, _ := s.Selection(); sel != r {
		t.Errorf("selection %s, wanted %s", sel, r)
	}

	s.Undo()
	if _, ok := s.Cell(at(t, "D5")); ok {
		t.Error("undo of paste left D5")
	}

	if _, ok, err := s.Paste("", at(t, "A1")); ok || err != nil {
		t.Errorf("empty paste: %t %v", ok, err)
	}
	if _, _, err := s.Paste("a\tb", sheetcalc.Addr(1, sheetcalc.MaxCols)); !errors.Is(err, sheetcalc.ErrMalformedAddress) {
		t.Errorf("paste past the last column: %v", err)
	}
	if _, ok := s.Cell(sheetcalc.Addr(1, sheetcalc.MaxCols)); ok {
		t.Error("failed paste wrote a cell")
	}
}

func TestPasteFormula(t *testing.T) {
	s := session.New(session.Options{})
	edit(t, s, "A1", "4")
	if _, _, err := s.Paste("=A1*2\t\r\n3\r\n", at(t, "B1")); err != nil {
		t.Fatal(err)
	}
	if got := value(t, s, "B1"); !got.Equal(sheetcalc.Number(8)) {
		t.Errorf("B1=%v", got)
	}
	if got := value(t, s, "B2"); !got.Equal(sheetcalc.Number(3)) {
		t.Errorf("B2=%v", got)
	}
	if _, ok := s.Cell(at(t, "C1")); ok {
		t.Error("empty field stored a cell")
	}
}

func TestParseClipboard(t *testing.T) {
	for _, tc := range []struct {
		in   string
		want [][]string
	}{
		{"", nil},
		{"\r\n", nil},
		{"a", [][]string{{"a"}}},
		{"a\tb\nc", [][]string{{"a", "b"}, {"c"}}},
		{"a\tb\r\nc\td\r\n", [][]string{{"a", "b"}, {"c", "d"}}},
	} {
		if d := cmp.Diff(tc.want, session.ParseClipboard(tc.in)); d != "" {
			t.Errorf("%q: %s", tc.in, d)
		}
	}
}

func TestFilter(t *testing.T) {
	between := session.Filter{Condition: session.Between, Value: "10", Second: "20"}
	for _, tc := range []struct {
		f    session.Filter
		v    sheetcalc.CellValue
		want bool
	}{
		{between, sheetcalc.Number(15), true},
		{between, sheetcalc.Number(25), false},
		{between, sheetcalc.Number(10), true},
		{between, sheetcalc.Text("15"), true},
		{between, sheetcalc.Text("abc"), false},
		{between, sheetcalc.Null(), false},
		{session.Filter{Condition: session.Equals, Value: "x"}, sheetcalc.Text("x"), true},
		{session.Filter{Condition: session.Equals, Value: "x"}, sheetcalc.Text("X"), false},
		{session.Filter{Condition: session.Contains, Value: "ell"}, sheetcalc.Text("hello"), true},
		{session.Filter{Condition: session.StartsWith, Value: "he"}, sheetcalc.Text("hello"), true},
		{session.Filter{Condition: session.EndsWith, Value: "he"}, sheetcalc.Text("hello"), false},
		{session.Filter{Condition: session.GreaterThan, Value: "1.5"}, sheetcalc.Number(2), true},
		{session.Filter{Condition: session.LessThan, Value: "1.5"}, sheetcalc.Number(2), false},
		{session.Filter{Condition: session.LessThan, Value: "x"}, sheetcalc.Number(2), false},
	} {
		if got := tc.f.Passes(tc.v); got != tc.want {
			t.Errorf("%+v(%v): got %t", tc.f, tc.v, got)
		}
	}

	s := session.New(session.Options{})
	if err := s.SetFilter(1, session.Filter{Condition: session.Between, Value: "10"}); !errors.Is(err, sheetcalc.ErrFilterBounds) {
		t.Errorf("between without second bound: %v", err)
	}
	edit(t, s, "A1", "15", "A2", "25", "B2", "25")
	if err := s.SetFilter(1, between); err != nil {
		t.Fatal(err)
	}
	for ref, want := range map[string]bool{"A1": true, "A2": false, "A3": false, "B2": true} {
		if got := s.Passes(at(t, ref)); got != want {
			t.Errorf("%s: got %t", ref, got)
		}
	}
	s.ClearFilters()
	if !s.Passes(at(t, "A2")) {
		t.Error("A2 filtered after ClearFilters")
	}
}

func TestSort(t *testing.T) {
	s := session.New(session.Options{})
	edit(t, s,
		"A1", "3", "B1", "three",
		"B2", "none",
		"A3", "1", "B3", "one",
		"A4", "2", "B4", "two",
	)
	rows := func() []int {
		out := make([]int, 4)
		for i := range out {
			out[i] = s.DataRow(i + 1)
		}
		return out
	}

	s.SortBy(1, session.Ascending)
	if d := cmp.Diff([]int{3, 4, 1, 2}, rows()); d != "" {
		t.Errorf("ascending: %s", d)
	}
	s.SortBy(1, session.Descending)
	if d := cmp.Diff([]int{1, 4, 3, 2}, rows()); d != "" {
		t.Errorf("descending: %s", d)
	}
	s.SortBy(2, session.Ascending)
	if d := cmp.Diff([]int{2, 3, 1, 4}, rows()); d != "" {
		t.Errorf("by text: %s", d)
	}
	if got := value(t, s, "B1"); !got.Equal(sheetcalc.Text("three")) {
		t.Errorf("sort moved data: B1=%v", got)
	}

	s.ClearSort()
	if d := cmp.Diff([]int{1, 2, 3, 4}, rows()); d != "" {
		t.Errorf("cleared: %s", d)
	}
}

func TestSortRowsMixed(t *testing.T) {
	keys := map[int]sheetcalc.CellValue{
		1: sheetcalc.Text("b"),
		2: sheetcalc.Null(),
		3: sheetcalc.Number(2),
		4: sheetcalc.Text("A"),
		5: sheetcalc.Bool(true),
		6: sheetcalc.Number(-1),
	}
	rows := []int{1, 2, 3, 4, 5, 6}
	session.SortRows(rows, func(r int) sheetcalc.CellValue { return keys[r] }, session.Ascending)
	if d := cmp.Diff([]int{6, 3, 5, 4, 1, 2}, rows); d != "" {
		t.Error(d)
	}
}

func TestStyle(t *testing.T) {
	s := session.New(session.Options{})
	edit(t, s, "A1", "x")
	if s.ApplyStyle(sheetcalc.Style{Bold: sheetcalc.Flag(true)}) {
		t.Error("style applied without a selection")
	}
	s.Select(at(t, "A1"), at(t, "B1"))
	if !s.ApplyStyle(sheetcalc.Style{Bold: sheetcalc.Flag(true), Align: sheetcalc.AlignCenter}) {
		t.Fatal("style not applied")
	}
	if tb := s.Toolbar(); !tb.Bold || tb.Italic || tb.Align != sheetcalc.AlignCenter {
		t.Errorf("toolbar %+v", tb)
	}
	if c, _ := s.Cell(at(t, "A1")); !c.Value.Equal(sheetcalc.Text("x")) {
		t.Errorf("style changed the value: %v", c.Value)
	}

	s.Undo()
	if tb := s.Toolbar(); tb.Bold {
		t.Errorf("undo: toolbar %+v", tb)
	}
	if _, ok := s.Cell(at(t, "B1")); ok {
		t.Error("undo left the styled empty B1")
	}
	s.Redo()
	if c, _ := s.Cell(at(t, "B1")); !c.Style.IsBold() {
		t.Errorf("redo: B1 %+v", c.Style)
	}
}

func TestResize(t *testing.T) {
	s := session.New(session.Options{})
	if err := s.ResizeColumn(2, 150); err != nil {
		t.Fatal(err)
	}
	if err := s.ResizeRow(3, 40); err != nil {
		t.Fatal(err)
	}
	for _, err := range []error{
		s.ResizeColumn(0, 10),
		s.ResizeColumn(sheetcalc.MaxCols+1, 10),
		s.ResizeRow(-1, 10),
		s.ResizeRow(sheetcalc.MaxRows+1, 10),
	} {
		if !errors.Is(err, sheetcalc.ErrMalformedAddress) {
			t.Errorf("got %v, wanted %v", err, sheetcalc.ErrMalformedAddress)
		}
	}
	if past, _ := s.History().Len(); past != 2 {
		t.Errorf("rejected resizes recorded: %d commands", past)
	}
	if _, ok := s.ColumnWidths()[0]; ok {
		t.Errorf("column 0 got a width: %v", s.ColumnWidths())
	}
	if got := s.Layout().Cols.Extent(2); got != 150 {
		t.Errorf("column 2: %v", got)
	}
	s.Undo()
	if got := s.Layout().Rows.Extent(3); got != session.DefaultRowHeight {
		t.Errorf("undo row 3: %v", got)
	}
	s.Undo()
	if len(s.ColumnWidths()) != 0 {
		t.Errorf("undo column 2: %v", s.ColumnWidths())
	}
}

func TestSearch(t *testing.T) {
	s := session.New(session.Options{})
	edit(t, s, "A1", "Hello", "A2", "world", "A3", "=LEN(A1)")
	s.SetSearch("ELL")
	for ref, want := range map[string]bool{"A1": true, "A2": false, "A4": false} {
		if got := s.Highlighted(at(t, ref)); got != want {
			t.Errorf("%s: got %t", ref, got)
		}
	}
	s.SetSearch("#error")
	if !s.Highlighted(at(t, "A3")) {
		t.Error("error value not matched")
	}
	s.SetSearch("")
	if s.Highlighted(at(t, "A1")) {
		t.Error("empty search highlights")
	}
}

func TestVisible(t *testing.T) {
	s := session.New(session.Options{})
	edit(t, s, "A1", "1", "A2", "2", "B1", "1234.5")
	s.SortBy(1, session.Descending)

	cells := s.Visible(0, 0, 250, 60)
	if len(cells) != 3*4 {
		t.Fatalf("got %d cells, wanted 12", len(cells))
	}
	first := cells[0]
	if first.At != at(t, "A1") || first.Source != at(t, "A2") || first.Text != "2" {
		t.Errorf("first cell %+v", first)
	}
	if d := cmp.Diff(viewport.Rect{
		Left: session.DefaultHeaderWidth, Top: session.DefaultHeaderHeight,
		Width: session.DefaultColumnWidth, Height: session.DefaultRowHeight,
	}, first.Rect); d != "" {
		t.Errorf("rect: %s", d)
	}

	if err := s.SetFilter(1, session.Filter{Condition: session.GreaterThan, Value: "1"}); err != nil {
		t.Fatal(err)
	}
	var sources []string
	for _, c := range s.Visible(0, 0, 250, 60) {
		if c.At.Col == 1 {
			sources = append(sources, c.Source.A1())
		}
	}
	if d := cmp.Diff([]string{"A2"}, sources); d != "" {
		t.Errorf("filtered: %s", d)
	}
}

func TestImport(t *testing.T) {
	s := session.New(session.Options{})
	edit(t, s, "A1", "1")
	g := sheetcalc.GridData{
		sheetcalc.Addr(1, 1):  {Addr: sheetcalc.Addr(1, 1), Value: sheetcalc.Number(2)},
		sheetcalc.Addr(3, 30): {Addr: sheetcalc.Addr(3, 30), Formula: "=A1*3"},
	}
	s.Import(g, sheetcalc.Dimensions{Rows: 1, Cols: 1})
	if s.History().CanUndo() {
		t.Error("import kept the undo log")
	}
	if d := s.Dimensions(); d.Rows != 3 || d.Cols != 30 {
		t.Errorf("dimensions %+v", d)
	}
	if got := value(t, s, "AD3"); !got.Equal(sheetcalc.Number(6)) {
		t.Errorf("AD3=%v", got)
	}
	if d := cmp.Diff([]sheetcalc.CellRange{sheetcalc.SingleCell(at(t, "A1"))}, s.Precedents(at(t, "AD3"))); d != "" {
		t.Errorf("precedents: %s", d)
	}
}

func TestSaveLoad(t *testing.T) {
	s := session.New(session.Options{})
	edit(t, s, "A1", "1", "B1", "=A1+1", "A2", "two")
	if err := s.ResizeColumn(2, 120); err != nil {
		t.Fatal(err)
	}
	if err := s.SetFilter(1, session.Filter{Condition: session.Contains, Value: "t"}); err != nil {
		t.Fatal(err)
	}
	s.SortBy(1, session.Descending)

	var buf bytes.Buffer
	if err := s.Save(&buf); err != nil {
		t.Fatalf("save: %+v", err)
	}
	saved := bytes.Clone(buf.Bytes())

	l := session.New(session.Options{})
	if err := l.Load(&buf); err != nil {
		t.Fatalf("load: %+v", err)
	}
	if d := cmp.Diff(s.Grid(), l.Grid()); d != "" {
		t.Errorf("grid: %s", d)
	}
	if d := cmp.Diff(s.ColumnWidths(), l.ColumnWidths()); d != "" {
		t.Errorf("widths: %s", d)
	}
	if d := cmp.Diff(s.Filters(), l.Filters()); d != "" {
		t.Errorf("filters: %s", d)
	}
	if sp, ok := l.Sort(); !ok || sp.Direction != session.Descending {
		t.Errorf("sort %+v %t", sp, ok)
	}

	l.Undo() // column resize
	l.Undo() // A2
	if _, ok := l.Cell(at(t, "A2")); ok {
		t.Error("undo after load did not clear A2")
	}

	if err := l.Load(bytes.NewReader(saved[:len(saved)/2])); !errors.Is(err, sheetcalc.ErrImportFailed) {
		t.Errorf("truncated load: %v", err)
	}
	if _, ok := l.Cell(at(t, "A2")); ok {
		t.Error("failed load changed the session")
	}
}
