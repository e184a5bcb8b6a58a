// Copyright 2026, Tamás Gulácsi.
//
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/peterbourgon/ff/v3"
	"github.com/peterbourgon/ff/v3/ffcli"

	"github.com/UNO-SOFT/sheetcalc"
	"github.com/UNO-SOFT/sheetcalc/session"
)

func windowCmd(cfg *config, opts []ff.Option) *ffcli.Command {
	fs := flag.NewFlagSet("window", flag.ContinueOnError)
	flagX := fs.Float64("x", 0, "horizontal scroll offset")
	flagY := fs.Float64("y", 0, "vertical scroll offset")
	flagWidth := fs.Float64("width", 800, "viewport width")
	flagHeight := fs.Float64("height", 600, "viewport height")
	flagSort := fs.String("sort", "", "sort by this column (A, B, ...); prefix with - for descending")
	flagSearch := fs.String("search", "", "highlight cells containing this text")
	flagFilter := fs.String("filter", "", "column filter as COL:condition:value[:second], e.g. B:between:10:20")
	return &ffcli.Command{
		Name:       "window",
		ShortUsage: "window [-x 0 -y 0 -width 800 -height 600] <input>",
		ShortHelp:  "print the cells a viewport would render",
		FlagSet:    fs,
		Options:    opts,
		Exec: func(ctx context.Context, args []string) error {
			if len(args) != 1 {
				return flag.ErrHelp
			}
			s := cfg.newSession()
			if err := cfg.load(s, args[0]); err != nil {
				return err
			}
			if *flagSort != "" {
				col, desc, err := parseSort(*flagSort)
				if err != nil {
					return err
				}
				dir := session.Ascending
				if desc {
					dir = session.Descending
				}
				s.SortBy(col, dir)
			}
			if *flagFilter != "" {
				col, f, err := parseFilter(*flagFilter)
				if err != nil {
					return err
				}
				if err = s.SetFilter(col, f); err != nil {
					return err
				}
			}
			s.SetSearch(*flagSearch)

			r := s.Layout().VisibleRange(*flagX, *flagY, *flagWidth, *flagHeight)
			logger.Info("window", "range", r.Start.A1()+":"+r.End.A1())
			tw := tabwriter.NewWriter(os.Stdout, 4, 8, 1, ' ', 0)
			defer tw.Flush()
			for _, c := range s.Visible(*flagX, *flagY, *flagWidth, *flagHeight) {
				if c.Cell.IsEmpty() {
					continue
				}
				var mark string
				if c.Highlighted {
					mark = "*"
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\t%.0f,%.0f\t%s\n",
					c.At.A1(), c.Source.A1(), mark, c.Rect.Left, c.Rect.Top, c.Text)
			}
			return nil
		},
	}
}

func parseColumn(s string) (int, error) {
	a, err := sheetcalc.ParseA1(strings.ToUpper(s) + "1")
	if err != nil {
		return 0, fmt.Errorf("column %q: %w", s, err)
	}
	return a.Col, nil
}

func parseSort(s string) (col int, desc bool, err error) {
	if desc = strings.HasPrefix(s, "-"); desc {
		s = s[1:]
	}
	col, err = parseColumn(s)
	return col, desc, err
}

func parseFilter(s string) (int, session.Filter, error) {
	parts := strings.SplitN(s, ":", 4)
	if len(parts) < 3 {
		return 0, session.Filter{}, fmt.Errorf("filter %q: wanted COL:condition:value[:second]", s)
	}
	col, err := parseColumn(parts[0])
	if err != nil {
		return 0, session.Filter{}, err
	}
	f := session.Filter{Condition: session.Condition(parts[1]), Value: parts[2]}
	if len(parts) == 4 {
		f.Second = parts[3]
	}
	return col, f, f.Validate()
}
