// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package getopt

import (
	"strings"
	"unicode/utf8"
)

const longOptionStart = "--"

type tokenKind int

const (
	tokPositional tokenKind = iota
	tokLong
	tokShort
)

func (k tokenKind) String() string {
	switch k {
	case tokLong:
		return "long"
	case tokShort:
		return "short"
	default:
		return "positional"
	}
}

// token is one classified unit of the command line. For tokShort text starts
// at the option character, for tokLong it follows the "--", and for
// tokPositional it is the whole argument.
type token struct {
	kind tokenKind
	text string
}

// cursor is the scan position of a session.
type cursor struct {
	arg  int // index of the argument being scanned
	char int // byte offset of the current short option in args[arg], 0 outside a bundle
	next int // byte offset where the bundle continues
	// from is where args[arg] was before it was rotated into place. It equals
	// arg when no rotation happened.
	from           int
	positionalOnly bool
}

func (c *cursor) endBundle() {
	c.char, c.next = 0, 0
}

func (p *Parser) isOption(arg string) bool {
	return len(arg) > 1 && strings.IndexByte(p.OptionStart, arg[0]) >= 0
}

// nextOption returns the index of the first option-looking argument at or
// after start, or -1.
func (p *Parser) nextOption(start int) int {
	for i := start; i < len(p.args); i++ {
		if p.isOption(p.args[i]) {
			return i
		}
	}
	return -1
}

// scan advances the cursor to the next token. It returns false once the
// argument vector is exhausted.
func (p *Parser) scan() (token, bool) {
	c := &p.cur
	if c.char > 0 {
		arg := p.args[c.arg]
		if c.next < len(arg) {
			c.char = c.next
			_, size := utf8.DecodeRuneInString(arg[c.char:])
			c.next = c.char + size
			return token{kind: tokShort, text: arg[c.char:]}, true
		}
		c.endBundle()
	}

	for {
		if c.arg >= len(p.args) {
			return token{}, false
		}
		c.arg++
		if c.arg >= len(p.args) {
			return token{}, false
		}
		c.from = c.arg
		arg := p.args[c.arg]
		if c.positionalOnly {
			return token{kind: tokPositional, text: arg}, true
		}

		if !p.isOption(arg) {
			if p.catchAll != nil {
				return token{kind: tokPositional, text: arg}, true
			}
			i := p.nextOption(c.arg + 1)
			if i < 0 {
				c.positionalOnly = true
				return token{kind: tokPositional, text: arg}, true
			}
			rotate(p.args[c.arg : i+1])
			c.from = i
			arg = p.args[c.arg]
		}

		if strings.HasPrefix(arg, longOptionStart) {
			if arg == longOptionStart {
				c.positionalOnly = true
				continue
			}
			return token{kind: tokLong, text: arg[len(longOptionStart):]}, true
		}
		_, size := utf8.DecodeRuneInString(arg[1:])
		c.char, c.next = 1, 1+size
		return token{kind: tokShort, text: arg[1:]}, true
	}
}

// rotate moves the last element of s to the front, shifting the rest one
// slot to the right.
func rotate(s []string) {
	if len(s) < 2 {
		return
	}
	last := s[len(s)-1]
	copy(s[1:], s[:len(s)-1])
	s[0] = last
}
