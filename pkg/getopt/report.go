// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package getopt

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// ErrorFunc receives every error forwarded by a Parser: the option as the
// user entered it and a human-readable message.
type ErrorFunc func(option, message string)

// ReportError records an error on the session and forwards it to ErrorOutput.
// Consumers call it to report conversion problems through the same path the
// Parser uses. The error flag stays set until the next Init.
func (p *Parser) ReportError(option, message string, err error) {
	p.record(&OptionError{Option: option, Message: message, Err: err}, false)
}

// record stores oe and forwards it. With quiet set the sink is skipped when
// an earlier error is already pending, which keeps one typo from producing a
// cascade of "unrecognized option" lines.
func (p *Parser) record(oe *OptionError, quiet bool) {
	pending := len(p.errs) > 0
	p.errs = append(p.errs, oe)
	if quiet && pending {
		return
	}
	if p.ErrorOutput != nil {
		p.ErrorOutput(oe.Option, oe.Message)
	}
}

// Failed reports whether any error was recorded since the last Init.
func (p *Parser) Failed() bool {
	return len(p.errs) > 0
}

// Err returns the most recent error of the session, or nil.
func (p *Parser) Err() error {
	if len(p.errs) == 0 {
		return nil
	}
	return p.errs[len(p.errs)-1]
}

// Errors returns every error recorded since the last Init, including the ones
// that were not forwarded to ErrorOutput.
func (p *Parser) Errors() []error {
	out := make([]error, len(p.errs))
	for i, e := range p.errs {
		out[i] = e
	}
	return out
}

// PrintErrors returns an ErrorFunc writing "option: message" lines to w.
func PrintErrors(w io.Writer) ErrorFunc {
	return func(option, message string) {
		if option == "" {
			fmt.Fprintln(w, message)
			return
		}
		fmt.Fprintf(w, "%s: %s\n", option, message)
	}
}

// ColorErrors is like PrintErrors but highlights the option in red when w is a
// terminal and NO_COLOR is unset.
func ColorErrors(w io.Writer) ErrorFunc {
	return colorErrors(w, isTerminal(w))
}

func colorErrors(w io.Writer, enabled bool) ErrorFunc {
	opt := color.New(color.FgRed, color.Bold)
	msg := color.New(color.FgYellow)
	if enabled && os.Getenv("NO_COLOR") == "" {
		opt.EnableColor()
		msg.EnableColor()
	} else {
		opt.DisableColor()
		msg.DisableColor()
	}
	return func(option, message string) {
		if option != "" {
			opt.Fprint(w, option)
			fmt.Fprint(w, ": ")
		}
		msg.Fprint(w, message)
		fmt.Fprintln(w)
	}
}

// LogErrors returns an ErrorFunc that logs through l, or the standard logger
// when l is nil.
func LogErrors(l *log.Logger) ErrorFunc {
	return func(option, message string) {
		if l == nil {
			log.Printf("getopt: %s: %s", option, message)
			return
		}
		l.Printf("getopt: %s: %s", option, message)
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}
