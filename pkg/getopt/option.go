// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package getopt

import (
	"fmt"
	"strconv"
	"strings"
)

// Found records whether and how an option was matched during a session.
type Found int

const (
	NotFound     Found = iota // not seen since Init
	FoundNoArg                // seen without consuming a value
	FoundWithArg              // seen and its Consumer accepted a value
)

func (f Found) String() string {
	switch f {
	case NotFound:
		return "not-found"
	case FoundNoArg:
		return "no-arg"
	case FoundWithArg:
		return "with-arg"
	default:
		return "Found(" + strconv.Itoa(int(f)) + ")"
	}
}

// Connection describes how a value was attached to an option.
type Connection int

const (
	// NextArgument means the value, if any, is the following argument.
	NextArgument Connection = iota
	// WithEquals means an "=" separated the option from its value.
	WithEquals
	// Adjacent means the value follows a short option in the same argument.
	Adjacent
)

func (c Connection) String() string {
	switch c {
	case NextArgument:
		return "next-argument"
	case WithEquals:
		return "with-equals"
	case Adjacent:
		return "adjacent"
	default:
		return "Connection(" + strconv.Itoa(int(c)) + ")"
	}
}

// Option describes one recognized option.
//
// An Option with neither Short nor Long set is the catch-all: it receives
// every positional argument and disables reordering. It must be the last
// entry of the table and must have a Consumer.
type Option struct {
	Short      rune   // single-character name, 0 for none
	Long       string // long name without the leading dashes, "" for none
	NeedArg    bool   // a missing value is an error
	Repeatable bool   // may be matched more than once per session
	// Consumer receives the attached value. A nil Consumer makes the option
	// a presence flag.
	Consumer Consumer
	// Data is passed through to the Consumer untouched.
	Data any
	// Help is for callers that print usage.
	Help string

	// Found and Value are written by the Parser.
	Found Found
	Value Value
}

// IsCatchAll reports whether o is the catch-all entry.
func (o *Option) IsCatchAll() bool {
	return o.Short == 0 && o.Long == ""
}

// Name returns the option as a user would type it, preferring the long form.
func (o *Option) Name() string {
	switch {
	case o.Long != "":
		return "--" + o.Long
	case o.Short != 0:
		return "-" + string(o.Short)
	default:
		return "ARG"
	}
}

func (o *Option) String() string {
	var names []string
	if o.Short != 0 {
		names = append(names, "-"+string(o.Short))
	}
	if o.Long != "" {
		names = append(names, "--"+o.Long)
	}
	if len(names) == 0 {
		return "catch-all"
	}
	return strings.Join(names, "/")
}

// Kind is the type held by a Value.
type Kind int

const (
	KindNone Kind = iota
	KindBool
	KindInt
	KindFloat
	KindString
)

func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	default:
		return "Kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Value is the typed result produced by a Consumer. Only the field selected by
// Kind is meaningful.
type Value struct {
	Kind  Kind
	Bool  bool
	Int   int64
	Float float64
	Str   string
}

func BoolValue(b bool) Value { return Value{Kind: KindBool, Bool: b} }
func IntValue(i int64) Value { return Value{Kind: KindInt, Int: i} }
func FloatValue(f float64) Value { return Value{Kind: KindFloat, Float: f} }
func StringValue(s string) Value { return Value{Kind: KindString, Str: s} }
func (v Value) IsZero() bool { return v.Kind == KindNone }

func (v Value) String() string {
	switch v.Kind {
	case KindBool:
		return strconv.FormatBool(v.Bool)
	case KindInt:
		return strconv.FormatInt(v.Int, 10)
	case KindFloat:
		return strconv.FormatFloat(v.Float, 'g', -1, 64)
	case KindString:
		return v.Str
	case KindNone:
		return ""
	default:
		return fmt.Sprintf("Value(%d)", int(v.Kind))
	}
}
