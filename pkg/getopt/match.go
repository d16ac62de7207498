// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package getopt

import "strings"

func (p *Parser) findShort(r rune) *Option {
	for _, o := range p.opts {
		if o.Short != 0 && o.Short == r {
			return o
		}
	}
	return nil
}

// findLong resolves a long option name (without dashes or "=value"). An exact
// match always wins. Otherwise name may abbreviate an option segment by
// segment; when it abbreviates more than one option the candidates are
// returned and the option is nil.
func (p *Parser) findLong(name string) (*Option, []string) {
	if name == "" {
		return nil, nil
	}
	for _, o := range p.opts {
		if o.Long != "" && p.equal(o.Long, name) {
			return o, nil
		}
	}

	var matches []*Option
	for _, o := range p.opts {
		if o.Long != "" && p.abbreviates(name, o.Long) {
			matches = append(matches, o)
		}
	}
	switch len(matches) {
	case 0:
		return nil, nil
	case 1:
		return matches[0], nil
	}
	candidates := make([]string, len(matches))
	for i, o := range matches {
		candidates[i] = "--" + o.Long
	}
	return nil, candidates
}

// abbreviates reports whether typed is a segment-wise prefix of name: both are
// split on "-", typed has no more segments than name, and each typed segment
// is a prefix of the matching name segment. Trailing name segments may be
// dropped, so "foo-b" abbreviates "foo-bar-baz".
func (p *Parser) abbreviates(typed, name string) bool {
	ts := strings.Split(typed, "-")
	ns := strings.Split(name, "-")
	if len(ts) > len(ns) {
		return false
	}
	for i, t := range ts {
		if len(t) > len(ns[i]) || !p.equal(ns[i][:len(t)], t) {
			return false
		}
	}
	return true
}

func (p *Parser) equal(a, b string) bool {
	if p.IgnoreCase {
		return strings.EqualFold(a, b)
	}
	return a == b
}
