// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package getopt scans a command line against a table of options.
//
// The parser walks the argument vector one logical unit at a time. Each call
// to Next classifies the next argument as a long option, a short option
// (possibly part of a bundle such as -abc) or a positional argument, matches
// it against the table, and hands any attached value to the option's
// Consumer.
//
// # Option Syntax
//
//   - Short options: -v, bundled as -abc
//   - Short options with values: -n5 (adjacent), -n=5, -n 5
//   - Long options: --verbose, abbreviated per dash-separated segment (--verb,
//     --foo-b for --foo-bar)
//   - Long options with values: --output=file, --output file
//   - A bare "--" ends option processing
//
// Options may appear anywhere. Unless the table has a catch-all entry, the
// parser moves options ahead of positional arguments in place, keeping the
// relative order within each group, so that after Process everything from the
// returned index onward is positional:
//
//	var verbose bool
//	var output string
//	opts := []*getopt.Option{
//	    {Short: 'v', Long: "verbose", Consumer: getopt.Flag(&verbose)},
//	    {Short: 'o', Long: "output", NeedArg: true, Consumer: getopt.String(&output)},
//	}
//	p := getopt.New(opts)
//	p.ErrorOutput = getopt.PrintErrors(os.Stderr)
//	args := os.Args
//	n := p.Process(args)
//	if p.Failed() {
//	    os.Exit(2)
//	}
//	files := args[n:]
//
// # Errors
//
// Errors never panic or exit. They are forwarded to ErrorOutput and recorded
// on the Parser, and the call to Next that raised one returns false. Failed
// reports whether any occurred since the last Init. Repeated "unrecognized
// option" noise is suppressed once an error is pending.
//
// A Parser is not safe for concurrent use. Separate Parsers with separate
// tables share nothing.
package getopt
