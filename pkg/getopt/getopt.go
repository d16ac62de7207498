// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package getopt

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Parser holds one option table and the state of the current session.
type Parser struct {
	// OptionStart lists the characters that introduce an option. It must
	// contain '-' for long options to be recognized. Defaults to "-".
	OptionStart string
	// IgnoreCase compares long option names case-insensitively.
	IgnoreCase bool
	// ErrorOutput receives every forwarded error. When nil errors are only
	// recorded.
	ErrorOutput ErrorFunc

	opts     []*Option
	catchAll *Option
	args     []string
	cur      cursor
	errs     []*OptionError
}

// New returns a Parser for opts. The table is not copied; the Parser writes
// the Found and Value fields of its entries.
//
// New panics if the table is malformed: a nil entry, a catch-all that is not
// the last entry, or a catch-all without a Consumer.
func New(opts []*Option) *Parser {
	p := &Parser{
		OptionStart: "-",
		opts:        opts,
	}
	for i, o := range opts {
		if o == nil {
			panic(fmt.Sprintf("getopt: option %d is nil", i))
		}
		if !o.IsCatchAll() {
			continue
		}
		if i != len(opts)-1 {
			panic(fmt.Sprintf("getopt: catch-all option %d must be the last entry", i))
		}
		if o.Consumer == nil {
			panic("getopt: catch-all option has no Consumer")
		}
		p.catchAll = o
	}
	return p
}

// Options returns the option table.
func (p *Parser) Options() []*Option {
	return p.opts
}

// Init starts a new session over args. args[0] is skipped. Every option's
// Found and Value are reset and the error state is cleared.
func (p *Parser) Init(args []string) {
	p.args = args
	p.cur = cursor{}
	p.errs = nil
	for _, o := range p.opts {
		o.Found = NotFound
		o.Value = Value{}
	}
}

// Args returns the argument vector of the session, in its current order.
func (p *Parser) Args() []string {
	return p.args
}

// Index returns the index of the argument currently being processed. After
// Process it is the first argument not consumed as an option.
func (p *Parser) Index() int {
	return min(p.cur.arg, len(p.args))
}

// Done reports whether the argument vector is exhausted.
func (p *Parser) Done() bool {
	return p.cur.arg >= len(p.args)
}

// Match is the result of one call to Next.
type Match struct {
	// Option is the matched table entry. It is nil for an unrecognized option
	// and for a positional argument when the table has no catch-all.
	Option *Option
	// AsEntered is the option as the user typed it ("-n", "--name") or the
	// positional argument itself.
	AsEntered  string
	Index      int  // argument index the token came from
	Positional bool // the token was a positional argument
}

// Next processes one option, bundle member or positional argument.
//
// It returns false when nothing more was processed: the arguments are
// exhausted, a positional argument was reached and the table has no
// catch-all, or an error was reported. In the positional case Index points at
// that argument and everything from there on is positional. Callers may keep
// calling Next after an error.
func (p *Parser) Next() (Match, bool) {
	tok, ok := p.scan()
	if !ok {
		return Match{Index: p.Index()}, false
	}
	m := Match{Index: p.cur.arg}
	switch tok.kind {
	case tokShort:
		r, _ := utf8.DecodeRuneInString(tok.text)
		m.AsEntered = p.args[p.cur.arg][:1] + string(r)
		m.Option = p.findShort(r)
		if m.Option == nil {
			p.unrecognized(m.AsEntered)
			return m, false
		}
	case tokLong:
		name, _, _ := strings.Cut(tok.text, "=")
		m.AsEntered = longOptionStart + name
		var candidates []string
		m.Option, candidates = p.findLong(name)
		if len(candidates) > 0 {
			p.record(&OptionError{
				Option:     m.AsEntered,
				Message:    ambiguousMessage(candidates),
				Candidates: candidates,
				Err:        ErrAmbiguousOption,
			}, true)
			return m, false
		}
		if m.Option == nil {
			p.unrecognized(m.AsEntered)
			return m, false
		}
	case tokPositional:
		m.AsEntered = tok.text
		m.Positional = true
		if p.catchAll == nil {
			return m, false
		}
		m.Option = p.catchAll
	}
	return m, p.dispatch(tok, m)
}

func (p *Parser) unrecognized(option string) {
	p.record(&OptionError{
		Option:  option,
		Message: "unrecognized option",
		Err:     ErrUnrecognizedOption,
	}, true)
}

// dispatch works out how a value is attached to m.Option, runs its Consumer
// and moves the cursor past whatever was consumed.
func (p *Parser) dispatch(tok token, m Match) bool {
	opt := m.Option
	if opt.Found != NotFound && !opt.Repeatable && opt != p.catchAll {
		p.record(&OptionError{
			Option:  m.AsEntered,
			Message: "may not be repeated",
			Err:     ErrRepeatedOption,
		}, false)
		return false
	}
	if opt.Consumer == nil {
		opt.Found = FoundNoArg
		return true
	}

	in := Input{AsEntered: m.AsEntered, Connection: NextArgument}
	valueStart := 0
	switch tok.kind {
	case tokShort:
		arg := p.args[p.cur.arg]
		if p.cur.next < len(arg) {
			valueStart = p.cur.next
			in.Connection = Adjacent
			if arg[valueStart] == '=' {
				valueStart++
				in.Connection = WithEquals
			}
			in.Arg, in.HasArg, in.MayClaim = arg[valueStart:], true, true
		}
	case tokLong:
		if _, v, ok := strings.Cut(tok.text, "="); ok {
			in.Arg, in.HasArg, in.Connection = v, true, WithEquals
		}
	case tokPositional:
		in.Arg, in.HasArg, in.Positional = tok.text, true, true
	}
	if tok.kind != tokPositional && in.Connection == NextArgument {
		if i := p.cur.from + 1; i < len(p.args) {
			in.Arg, in.HasArg = p.args[i], true
		}
	}

	reported := len(p.errs)
	res := opt.Consumer.Consume(p, opt, in)
	if !res.Value.IsZero() {
		opt.Value = res.Value
	}

	if res.OK {
		opt.Found = FoundWithArg
		switch {
		case tok.kind == tokPositional:
		case in.MayClaim && res.Used > 0 && res.Used < len(in.Arg):
			p.cur.next = valueStart + res.Used
		case in.Connection == NextArgument && in.HasArg:
			p.cur.endBundle()
			p.takeNext()
		default:
			p.cur.endBundle()
		}
		return true
	}

	// A rejected "-n=..." or a required value that failed to convert owns
	// the rest of the argument; nothing after it is another option.
	if in.MayClaim && (opt.NeedArg || in.Connection == WithEquals) {
		p.cur.endBundle()
	}
	if len(p.errs) > reported {
		// The Consumer reported the problem itself.
		return false
	}
	switch {
	case opt.NeedArg && !in.HasArg:
		p.record(&OptionError{
			Option:  m.AsEntered,
			Message: "requires an argument",
			Err:     ErrMissingArgument,
		}, true)
		return false
	case opt.NeedArg:
		p.record(&OptionError{
			Option:  m.AsEntered,
			Message: fmt.Sprintf("invalid argument %q", in.Arg),
			Err:     ErrInvalidValue,
		}, false)
		return false
	case in.Connection == WithEquals:
		p.record(&OptionError{
			Option:  m.AsEntered,
			Message: fmt.Sprintf("does not take an argument (got %q)", in.Arg),
			Err:     ErrInvalidValue,
		}, false)
		return false
	}

	opt.Found = FoundNoArg
	return true
}

// takeNext consumes the argument following the current option. When the
// option was rotated into place its value still sits after the option's
// original slot, so it is rotated along to keep the pair together.
func (p *Parser) takeNext() {
	c := &p.cur
	if v := c.from + 1; v > c.arg+1 {
		rotate(p.args[c.arg+1 : v+1])
	}
	c.arg++
	c.from = c.arg
}

// Process runs a whole session over args and returns the index of the first
// argument not consumed as an option. Unless the table has a catch-all,
// args[Process(args):] are the positional arguments in their original
// relative order.
//
// Process stops at the first call to Next that returns false, so after an
// error the returned index points at the offending argument.
func (p *Parser) Process(args []string) int {
	p.Init(args)
	for {
		if _, ok := p.Next(); !ok {
			break
		}
	}
	return p.Index()
}
