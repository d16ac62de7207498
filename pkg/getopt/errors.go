// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package getopt

import (
	"errors"
	"strings"
)

// Sentinel errors identifying the kind of an OptionError.
var (
	ErrUnrecognizedOption = errors.New("unrecognized option")
	ErrAmbiguousOption    = errors.New("ambiguous option")
	ErrMissingArgument    = errors.New("option requires an argument")
	ErrRepeatedOption     = errors.New("option may not be repeated")
	ErrInvalidValue       = errors.New("invalid option value")
)

// OptionError is recorded on the Parser for every reported problem.
// Message is the user-facing text handed to the error sink; Err carries the
// sentinel (and for conversion failures the underlying parse error).
type OptionError struct {
	Option     string   // the option as entered, e.g. "-n" or "--foo-b"
	Message    string   // user-facing message
	Candidates []string // for ambiguous abbreviations, the names it could mean
	Err        error
}

func (e *OptionError) Error() string {
	if e.Option == "" {
		return e.Message
	}
	return e.Option + ": " + e.Message
}

func (e *OptionError) Unwrap() error {
	return e.Err
}

func ambiguousMessage(candidates []string) string {
	return "ambiguous option (could be " + strings.Join(candidates, ", ") + ")"
}
