// Copyright 2026, Tamás Gulácsi.
//
// SPDX-License-Identifier: Apache-2.0

package html_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/UNO-SOFT/sheetcalc"
	"github.com/UNO-SOFT/sheetcalc/html"
)

func TestWriter(t *testing.T) {
	var buf strings.Builder
	w := html.NewWriter(&buf, "a<b")
	sh, err := w.NewSheet("s1", []sheetcalc.Column{{Name: "x", HeaderBold: true}, {Name: "y"}})
	if err != nil {
		t.Fatal(err)
	}
	if err = sh.AppendRow(1.5, "<i>", nil); err != nil {
		t.Fatal(err)
	}
	if err = sh.AppendRow(true); err != nil {
		t.Fatal(err)
	}
	if err = w.Close(); err != nil {
		t.Fatal(err)
	}
	got := buf.String()
	for _, want := range []string{
		"<title>a&lt;b</title>",
		"<h2>s1</h2>",
		"<tr><th><b>x</b></th><th>y</th></tr>",
		"<tr><td>1.5</td><td>&lt;i&gt;</td><td></td></tr>",
		"<tr><td>true</td></tr>",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("%q not found in\n%s", want, got)
		}
	}
}

func TestDocumentEmpty(t *testing.T) {
	got := html.Document("t", nil)
	if !strings.HasPrefix(got, "<!DOCTYPE html>") || strings.Contains(got, "<table>") {
		t.Errorf("got %s", got)
	}
}

type brokenWriter struct{}

func (brokenWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestWriterWriteError(t *testing.T) {
	w := html.NewWriter(brokenWriter{}, "t")
	if _, err := w.NewSheet("s1", nil); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); !errors.Is(err, sheetcalc.ErrExportFailed) {
		t.Errorf("got %v, wanted %v", err, sheetcalc.ErrExportFailed)
	}
}
