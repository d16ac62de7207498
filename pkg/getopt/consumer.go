// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package getopt

import (
	"fmt"
	"strconv"
)

// Input describes one occurrence of an option handed to a Consumer.
type Input struct {
	AsEntered  string     // the option as typed, e.g. "-n" or "--name"
	Connection Connection // how Arg is attached
	Arg        string     // candidate value, valid when HasArg
	HasArg     bool
	// MayClaim is set for values attached to a short option. The Consumer may
	// then claim only a prefix of Arg through Result.Used and the rest of the
	// bundle is scanned for more options.
	MayClaim bool
	// Positional is set when the option is the catch-all and Arg is a
	// positional argument.
	Positional bool
}

// Result is what a Consumer reports back.
type Result struct {
	// Value is stored in Option.Value when its Kind is not KindNone, even
	// when OK is false.
	Value Value
	// Used is the number of bytes of Arg claimed. Zero, or a count covering
	// all of Arg, claims everything. Only honored when Input.MayClaim is set.
	Used int
	// OK reports that the value was accepted. A Consumer returns false when
	// there was no usable value; if it also reports an error it should do so
	// with Parser.ReportError, which leaves the option NotFound and makes
	// Next return false. Declining a value attached with "=" is an error
	// too.
	OK bool
}

// A Consumer accepts the value attached to an option.
type Consumer interface {
	Consume(p *Parser, opt *Option, in Input) Result
}

// ConsumerFunc adapts a function to the Consumer interface.
type ConsumerFunc func(p *Parser, opt *Option, in Input) Result

func (f ConsumerFunc) Consume(p *Parser, opt *Option, in Input) Result {
	return f(p, opt, in)
}

// attached picks the text a standard consumer should convert. A value in the
// next argument is only taken when the option requires one, so an optional
// value never swallows an unrelated positional argument. For adjacent values
// prefix returns how many bytes to claim; zero means there is no value.
func attached(opt *Option, in Input, prefix func(string) int) (text string, used int, ok bool) {
	if !in.HasArg {
		return "", 0, false
	}
	if in.Connection == NextArgument && !opt.NeedArg && !in.Positional {
		return "", 0, false
	}
	if in.Connection != Adjacent || prefix == nil {
		return in.Arg, 0, true
	}
	n := prefix(in.Arg)
	if n == 0 {
		if !opt.NeedArg {
			return "", 0, false
		}
		return in.Arg, 0, true
	}
	return in.Arg[:n], n, true
}

// Flag sets *target to true whenever the option is seen. It never consumes a
// value, so it is safe inside bundles.
func Flag(target *bool) Consumer {
	return ConsumerFunc(func(p *Parser, opt *Option, in Input) Result {
		if target != nil {
			*target = true
		}
		return Result{Value: BoolValue(true)}
	})
}

// Count increments *target for every occurrence, as in -vvv. The option
// should be Repeatable.
func Count(target *int) Consumer {
	return ConsumerFunc(func(p *Parser, opt *Option, in Input) Result {
		n := int64(1)
		if opt.Value.Kind == KindInt {
			n = opt.Value.Int + 1
		}
		if target != nil {
			*target = int(n)
		}
		return Result{Value: IntValue(n)}
	})
}

// Bool is a flag that also accepts an explicit value with "=", as in
// --color=false. A value in the next argument is only read when the option
// requires one.
func Bool(target *bool) Consumer {
	return ConsumerFunc(func(p *Parser, opt *Option, in Input) Result {
		if in.Connection != WithEquals && !(opt.NeedArg && in.HasArg) {
			if target != nil {
				*target = true
			}
			return Result{Value: BoolValue(true)}
		}
		b, err := strconv.ParseBool(in.Arg)
		if err != nil {
			p.ReportError(in.AsEntered, fmt.Sprintf("invalid boolean %q", in.Arg), fmt.Errorf("%w: %w", ErrInvalidValue, err))
			return Result{}
		}
		if target != nil {
			*target = b
		}
		return Result{Value: BoolValue(b), OK: true}
	})
}

// Int converts the value to a base 10 integer. An adjacent value may be
// followed by more bundled options, as in -j4v.
func Int(target *int64) Consumer {
	return ConsumerFunc(func(p *Parser, opt *Option, in Input) Result {
		text, used, ok := attached(opt, in, intPrefix)
		if !ok {
			return Result{}
		}
		n, err := strconv.ParseInt(text, 10, 64)
		if err != nil {
			p.ReportError(in.AsEntered, fmt.Sprintf("invalid integer %q", in.Arg), fmt.Errorf("%w: %w", ErrInvalidValue, err))
			return Result{}
		}
		if target != nil {
			*target = n
		}
		return Result{Value: IntValue(n), Used: used, OK: true}
	})
}

// Float converts the value to a float64. Like Int, an adjacent value only
// claims its numeric prefix.
func Float(target *float64) Consumer {
	return ConsumerFunc(func(p *Parser, opt *Option, in Input) Result {
		text, used, ok := attached(opt, in, floatPrefix)
		if !ok {
			return Result{}
		}
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			p.ReportError(in.AsEntered, fmt.Sprintf("invalid number %q", in.Arg), fmt.Errorf("%w: %w", ErrInvalidValue, err))
			return Result{}
		}
		if target != nil {
			*target = f
		}
		return Result{Value: FloatValue(f), Used: used, OK: true}
	})
}

// String stores the value verbatim. An adjacent value takes the rest of the
// argument.
func String(target *string) Consumer {
	return ConsumerFunc(func(p *Parser, opt *Option, in Input) Result {
		text, _, ok := attached(opt, in, nil)
		if !ok {
			return Result{}
		}
		if target != nil {
			*target = text
		}
		return Result{Value: StringValue(text), OK: true}
	})
}

// Strings appends every value to *target. Use it with Repeatable options or
// as the catch-all.
func Strings(target *[]string) Consumer {
	return ConsumerFunc(func(p *Parser, opt *Option, in Input) Result {
		text, _, ok := attached(opt, in, nil)
		if !ok {
			return Result{}
		}
		if target != nil {
			*target = append(*target, text)
		}
		return Result{Value: StringValue(text), OK: true}
	})
}

func digits(s string) int {
	n := 0
	for n < len(s) && s[n] >= '0' && s[n] <= '9' {
		n++
	}
	return n
}

func sign(s string) int {
	if len(s) > 0 && (s[0] == '-' || s[0] == '+') {
		return 1
	}
	return 0
}

// intPrefix returns the length of the leading [+-]digits run of s, or 0.
func intPrefix(s string) int {
	i := sign(s)
	d := digits(s[i:])
	if d == 0 {
		return 0
	}
	return i + d
}

// floatPrefix returns the length of the leading decimal floating point number
// in s, or 0.
func floatPrefix(s string) int {
	i := sign(s)
	mant := digits(s[i:])
	i += mant
	if i < len(s) && s[i] == '.' {
		frac := digits(s[i+1:])
		if mant == 0 && frac == 0 {
			return 0
		}
		i += 1 + frac
	} else if mant == 0 {
		return 0
	}
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		j += sign(s[j:])
		if d := digits(s[j:]); d > 0 {
			i = j + d
		}
	}
	return i
}
