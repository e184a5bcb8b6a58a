// Copyright 2021, 2026 Tamás Gulácsi.
//
// SPDX-License-Identifier: Apache-2.0

// Command sheetcalc recalculates, converts and inspects sheets.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/UNO-SOFT/zlog/v2"
	"github.com/peterbourgon/ff/v3"
	"github.com/peterbourgon/ff/v3/ffcli"

	"github.com/UNO-SOFT/sheetcalc"
	"github.com/UNO-SOFT/sheetcalc/session"
)

var verbose zlog.VerboseVar
var logger = zlog.NewLogger(zlog.MaybeConsoleHandler(&verbose, os.Stderr)).SLog()

func main() {
	if err := Main(); err != nil {
		logger.Error("MAIN", "error", err)
		os.Exit(1)
	}
}

type config struct {
	Charset   string
	Memo      bool
	Landscape bool
	FontSize  float64
	// Full exports the whole sheet dimensions, not only the populated bounds.
	Full bool
}

func (cfg *config) newSession() *session.Session {
	return session.New(session.Options{Logger: logger, Memo: cfg.Memo})
}

func Main() error {
	var cfg config
	fs := flag.NewFlagSet("sheetcalc", flag.ContinueOnError)
	fs.Var(&verbose, "v", "logging verbosity")
	fs.String("config", "", "config file (one flag per line)")
	fs.StringVar(&cfg.Charset, "charset", sheetcalc.EncName, "csv charset name")
	fs.BoolVar(&cfg.Memo, "memo", false, "memoize formula values within a recalculation")
	fs.BoolVar(&cfg.Landscape, "L", false, "landscape orientation for PDF output (default: portrait)")
	fs.Float64Var(&cfg.FontSize, "font-size", 8, "font size for PDF output")
	fs.BoolVar(&cfg.Full, "full", false, "export every row and column of the sheet dimensions, not only the populated ones")

	opts := []ff.Option{
		ff.WithEnvVarPrefix("SHEETCALC"),
		ff.WithConfigFileFlag("config"),
		ff.WithConfigFileParser(ff.PlainParser),
		ff.WithAllowMissingConfigFile(true),
	}
	app := ffcli.Command{
		Name:       "sheetcalc",
		ShortUsage: "sheetcalc [flags] <subcommand> [flags] <input>",
		FlagSet:    fs,
		Options:    opts,
		Subcommands: []*ffcli.Command{
			recalcCmd(&cfg, opts),
			evalCmd(&cfg, opts),
			windowCmd(&cfg, opts),
			copyCmd(&cfg, opts),
			pasteCmd(&cfg, opts),
			mergeCmd(&cfg, opts),
		},
		Exec: func(ctx context.Context, args []string) error {
			return flag.ErrHelp
		},
	}

	ctx, cancel := signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGTERM)
	defer cancel()
	err := app.ParseAndRun(ctx, os.Args[1:])
	if errors.Is(err, flag.ErrHelp) {
		return nil
	}
	return err
}

// edits collects repeated -set A1=raw flags.
type edits []string

func (e *edits) String() string { return strings.Join(*e, " ") }
func (e *edits) Set(s string) error {
	if ref, _, ok := strings.Cut(s, "="); !ok || ref == "" {
		return fmt.Errorf("%q: wanted ADDR=content", s)
	}
	*e = append(*e, s)
	return nil
}

func (e edits) apply(s *session.Session) error {
	for _, kv := range e {
		ref, raw, _ := strings.Cut(kv, "=")
		a, err := sheetcalc.ParseA1(ref)
		if err != nil {
			return fmt.Errorf("%q: %w", ref, err)
		}
		if _, err = s.Edit(a, raw); err != nil {
			return err
		}
	}
	return nil
}

func recalcCmd(cfg *config, opts []ff.Option) *ffcli.Command {
	fs := flag.NewFlagSet("recalc", flag.ContinueOnError)
	flagOut := fs.String("o", "-", "output file; the extension selects the format (csv, xlsx, pdf, html, sheetcalc)")
	flagSheet := fs.String("sheet", "Sheet1", "sheet name in the output")
	var set edits
	fs.Var(&set, "set", "set a cell before recalculation, as ADDR=content (repeatable)")
	return &ffcli.Command{
		Name:       "recalc",
		ShortUsage: "recalc [-set A1=content...] [-o output] <input>",
		ShortHelp:  "recalculate a sheet and write it in another format",
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
			if err := set.apply(s); err != nil {
				return err
			}
			return cfg.save(s, *flagOut, *flagSheet)
		},
	}
}

func evalCmd(cfg *config, opts []ff.Option) *ffcli.Command {
	fs := flag.NewFlagSet("eval", flag.ContinueOnError)
	flagAt := fs.String("at", "A1", "address the formula is evaluated at")
	return &ffcli.Command{
		Name:       "eval",
		ShortUsage: "eval [-at A1] <input> <formula>",
		ShortHelp:  "evaluate a formula against a sheet without changing it",
		FlagSet:    fs,
		Options:    opts,
		Exec: func(ctx context.Context, args []string) error {
			if len(args) != 2 {
				return flag.ErrHelp
			}
			at, err := sheetcalc.ParseA1(*flagAt)
			if err != nil {
				return err
			}
			s := cfg.newSession()
			if err = cfg.load(s, args[0]); err != nil {
				return err
			}
			text := args[1]
			if !sheetcalc.IsFormula(text) {
				text = "=" + text
			}
			v, err := s.Evaluate(text, at)
			if err != nil {
				logger.Warn("eval", "formula", text, "error", err)
			}
			fmt.Println(v.String())
			return nil
		},
	}
}
