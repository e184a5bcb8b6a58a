// Copyright 2026, Tamás Gulácsi.
//
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/atotto/clipboard"
	"github.com/peterbourgon/ff/v3"
	"github.com/peterbourgon/ff/v3/ffcli"

	"github.com/UNO-SOFT/sheetcalc"
)

func copyCmd(cfg *config, opts []ff.Option) *ffcli.Command {
	fs := flag.NewFlagSet("copy", flag.ContinueOnError)
	flagRange := fs.String("range", "A1", "range to copy, as A1:B2")
	flagStdout := fs.Bool("stdout", false, "print instead of writing the system clipboard")
	return &ffcli.Command{
		Name:       "copy",
		ShortUsage: "copy -range A1:B2 <input>",
		ShortHelp:  "copy a range as tab separated text",
		FlagSet:    fs,
		Options:    opts,
		Exec: func(ctx context.Context, args []string) error {
			if len(args) != 1 {
				return flag.ErrHelp
			}
			r, err := sheetcalc.ParseRange(*flagRange)
			if err != nil {
				return err
			}
			s := cfg.newSession()
			if err = cfg.load(s, args[0]); err != nil {
				return err
			}
			text := s.CopyRange(r)
			if *flagStdout {
				_, err = fmt.Println(text)
				return err
			}
			logger.Debug("copy", "range", *flagRange, "bytes", len(text))
			return clipboard.WriteAll(text)
		},
	}
}

func pasteCmd(cfg *config, opts []ff.Option) *ffcli.Command {
	fs := flag.NewFlagSet("paste", flag.ContinueOnError)
	flagAt := fs.String("at", "A1", "top-left cell of the paste")
	flagOut := fs.String("o", "", "output file (default: overwrite the input)")
	flagStdin := fs.Bool("stdin", false, "read the text from stdin instead of the system clipboard")
	return &ffcli.Command{
		Name:       "paste",
		ShortUsage: "paste [-at A1] [-o output] <input>",
		ShortHelp:  "paste tab separated text into a sheet",
		FlagSet:    fs,
		Options:    opts,
		Exec: func(ctx context.Context, args []string) error {
			if len(args) != 1 {
				return flag.ErrHelp
			}
			at, err := sheetcalc.ParseA1(*flagAt)
			if err != nil {
				return err
			}
			var text string
			if *flagStdin {
				b, err := io.ReadAll(os.Stdin)
				if err != nil {
					return err
				}
				text = string(b)
			} else if text, err = clipboard.ReadAll(); err != nil {
				// An unreadable clipboard is an empty paste.
				logger.Warn("clipboard", "error", err)
				text = ""
			}
			s := cfg.newSession()
			if err = cfg.load(s, args[0]); err != nil {
				return err
			}
			r, ok, err := s.Paste(text, at)
			if err != nil {
				return err
			}
			if !ok {
				logger.Info("nothing to paste")
				return nil
			}
			logger.Info("pasted", "range", r.Start.A1()+":"+r.End.A1())
			out := *flagOut
			if out == "" {
				out = args[0]
			}
			return cfg.save(s, out, "Sheet1")
		},
	}
}
