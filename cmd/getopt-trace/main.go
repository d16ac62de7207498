// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// getopt-trace parses an argument vector against an option table file and
// prints how every argument was classified.
//
// Usage:
//
//	getopt-trace -t table.toml [-l line] [--color=auto|always|never] [-q] [--] ARGS...
//
// ARGS (or the words of -l) form the traced vector; its first element is the
// program name and is never parsed. getopt-trace stops reading its own
// options at the first positional argument, so "--" is only needed when that
// program name itself begins with a dash.
package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/google/shlex"
	"github.com/yeetrun/getopt/pkg/getopt"
	"github.com/yeetrun/getopt/pkg/optfile"
	"golang.org/x/term"
	"tailscale.com/util/must"
)

type config struct {
	Table string `flag:"table" short:"t" help:"Option table file (.toml, .yaml or .yml)"`
	Line  string `flag:"line" short:"l" help:"Trace this shell-quoted line instead of ARGS"`
	Color string `flag:"color" default:"auto" help:"Colorize output: auto, always or never"`
	Quiet bool   `flag:"quiet" short:"q" help:"Only print the trace"`
	Help  bool   `flag:"help" short:"h" help:"Show this help"`
	// Args holds the positional argument that ended option parsing.
	Args []string `pos:"*"`
}

var (
	errColor  = color.New(color.FgRed, color.Bold)
	posColor  = color.New(color.FgHiBlack)
	optColor  = color.New(color.FgCyan)
	markColor = color.New(color.FgYellow)
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("getopt-trace: ")

	cfg, opts, traced, ok := parseFlags(os.Args, getopt.ColorErrors(os.Stderr))
	if !ok {
		usage(os.Stderr, opts)
		os.Exit(2)
	}
	if cfg.Help {
		usage(os.Stdout, opts)
		return
	}
	if err := setColor(cfg.Color, os.Stdout); err != nil {
		log.Fatalf("%v", err)
	}

	ok, err := run(os.Stdout, cfg, traced)
	if err != nil {
		log.Fatalf("%v", err)
	}
	if !ok {
		os.Exit(1)
	}
}

// parseFlags reads getopt-trace's own options from args and returns the
// traced vector that follows them. The table has a catch-all so nothing is
// reordered; parsing stops at the first positional argument.
func parseFlags(args []string, errOut getopt.ErrorFunc) (cfg config, opts []*getopt.Option, traced []string, ok bool) {
	opts = must.Get(getopt.Bind(&cfg))
	p := getopt.New(opts)
	p.ErrorOutput = errOut
	p.Init(args)
	for {
		m, more := p.Next()
		if m.Positional {
			return cfg, opts, args[m.Index:], true
		}
		if !more {
			return cfg, opts, nil, !p.Failed()
		}
	}
}

func usage(w io.Writer, opts []*getopt.Option) {
	fmt.Fprintln(w, "USAGE:")
	fmt.Fprintln(w, "    getopt-trace -t TABLE [-l LINE] [--color=WHEN] [-q] [--] ARGS...")
	fmt.Fprintln(w)
	fmt.Fprint(w, getopt.Usage(opts))
}

func setColor(mode string, out *os.File) error {
	switch mode {
	case "auto":
		color.NoColor = os.Getenv("NO_COLOR") != "" || !term.IsTerminal(int(out.Fd()))
	case "always":
		color.NoColor = false
	case "never":
		color.NoColor = true
	default:
		return fmt.Errorf("invalid --color %q, want auto, always or never", mode)
	}
	return nil
}

// run traces one session and reports whether it finished without errors.
func run(w io.Writer, cfg config, args []string) (bool, error) {
	if cfg.Table == "" {
		return false, errors.New("no option table, use -t")
	}
	tbl, err := optfile.Load(cfg.Table)
	if err != nil {
		return false, err
	}
	if cfg.Line != "" {
		if len(args) > 0 {
			return false, errors.New("-l and ARGS are mutually exclusive")
		}
		if args, err = shlex.Split(cfg.Line); err != nil {
			return false, fmt.Errorf("failed to split -l: %w", err)
		}
	}
	if len(args) == 0 {
		return false, errors.New("nothing to trace")
	}

	p := tbl.NewParser()
	var pending []string
	p.ErrorOutput = func(option, message string) {
		pending = append(pending, fmt.Sprintf("    %s %s: %s\n", errColor.Sprint("error"), option, message))
	}
	p.Init(args)
	for {
		m, ok := p.Next()
		exhausted := !ok && m.Option == nil && !m.Positional && m.AsEntered == ""
		if !exhausted {
			traceMatch(w, m)
		}
		for _, line := range pending {
			io.WriteString(w, line)
		}
		pending = pending[:0]
		if !ok {
			break
		}
	}
	if !cfg.Quiet {
		fmt.Fprintln(w)
		printOptions(w, tbl.Options)
		fmt.Fprintln(w)
		printArgs(w, p.Args(), p.Index())
	}
	return !p.Failed(), nil
}

func traceMatch(w io.Writer, m getopt.Match) {
	switch {
	case m.Positional && m.Option == nil:
		fmt.Fprintf(w, "%3d %s\n", m.Index, posColor.Sprintf("%-16s positional", quote(m.AsEntered)))
	case m.Option == nil:
		fmt.Fprintf(w, "%3d %-16s\n", m.Index, m.AsEntered)
	case m.Positional:
		fmt.Fprintf(w, "%3d %-16s %s %s\n", m.Index, quote(m.AsEntered), optColor.Sprint(m.Option), m.Option.Value)
	default:
		fmt.Fprintf(w, "%3d %-16s %s %s", m.Index, m.AsEntered, optColor.Sprint(m.Option), m.Option.Found)
		if !m.Option.Value.IsZero() {
			fmt.Fprintf(w, " %s", m.Option.Value)
		}
		fmt.Fprintln(w)
	}
}

func printOptions(w io.Writer, opts []*getopt.Option) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "OPTION\tFOUND\tVALUE")
	for _, o := range opts {
		v := ""
		if !o.Value.IsZero() {
			v = o.Value.String()
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", o, o.Found, v)
	}
	tw.Flush()
}

// printArgs prints the reordered vector with a marker before the first
// argument not consumed as an option.
func printArgs(w io.Writer, args []string, index int) {
	var b strings.Builder
	for i, a := range args {
		if i > 0 {
			b.WriteByte(' ')
		}
		if i == index {
			b.WriteString(markColor.Sprint("|") + " ")
		}
		b.WriteString(quote(a))
	}
	if index >= len(args) {
		b.WriteString(" " + markColor.Sprint("|"))
	}
	fmt.Fprintf(w, "args:  %s\n", b.String())
	fmt.Fprintf(w, "index: %d\n", index)
}

func quote(s string) string {
	if s == "" || strings.ContainsAny(s, " \t\n\"'\\") {
		return fmt.Sprintf("%q", s)
	}
	return s
}
