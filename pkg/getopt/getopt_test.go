// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package getopt

import (
	"errors"
	"slices"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

type errSink struct {
	lines []string
}

func (s *errSink) add(option, message string) {
	s.lines = append(s.lines, option+": "+message)
}

func newTestParser(opts ...*Option) (*Parser, *errSink) {
	p := New(opts)
	s := &errSink{}
	p.ErrorOutput = s.add
	return p, s
}

func TestProcessOnlyPositionals(t *testing.T) {
	tests := [][]string{
		{"prog"},
		{"prog", "a"},
		{"prog", "a", "b", "c"},
		{"prog", "-", "", "plain"},
	}
	for _, args := range tests {
		p, _ := newTestParser(&Option{Short: 'v', Long: "verbose"})
		orig := slices.Clone(args)
		if n := p.Process(args); n != 1 {
			t.Errorf("Process(%q) = %d, want 1", orig, n)
		}
		if diff := cmp.Diff(orig, args); diff != "" {
			t.Errorf("Process(%q) changed args (-want +got):\n%s", orig, diff)
		}
		if p.Failed() {
			t.Errorf("Process(%q) failed: %v", orig, p.Err())
		}
	}
}

func TestProcessStablePartition(t *testing.T) {
	var out string
	a := &Option{Short: 'a'}
	b := &Option{Short: 'b'}
	o := &Option{Short: 'o', NeedArg: true, Consumer: String(&out)}

	tests := []struct {
		name  string
		args  []string
		want  []string
		wantN int
	}{
		{
			name:  "options already first",
			args:  []string{"prog", "-a", "-o", "out", "x"},
			want:  []string{"prog", "-a", "-o", "out", "x"},
			wantN: 4,
		},
		{
			name:  "options interleaved",
			args:  []string{"prog", "x", "-a", "y", "-o", "out", "z", "-b"},
			want:  []string{"prog", "-a", "-o", "out", "-b", "x", "y", "z"},
			wantN: 5,
		},
		{
			name:  "options last",
			args:  []string{"prog", "x", "y", "-b", "-a"},
			want:  []string{"prog", "-b", "-a", "x", "y"},
			wantN: 3,
		},
		{
			name:  "bundle with value in next argument",
			args:  []string{"prog", "file", "-ao", "out"},
			want:  []string{"prog", "-ao", "out", "file"},
			wantN: 3,
		},
		{
			name:  "terminator moved with options",
			args:  []string{"prog", "x", "-a", "--", "-b"},
			want:  []string{"prog", "-a", "--", "x", "-b"},
			wantN: 3,
		},
		{
			name:  "lone dash is positional",
			args:  []string{"prog", "-", "-a"},
			want:  []string{"prog", "-a", "-"},
			wantN: 2,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, sink := newTestParser(a, b, o)
			n := p.Process(tt.args)
			if n != tt.wantN {
				t.Errorf("Process() = %d, want %d", n, tt.wantN)
			}
			if diff := cmp.Diff(tt.want, tt.args); diff != "" {
				t.Errorf("args mismatch (-want +got):\n%s", diff)
			}
			if len(sink.lines) != 0 {
				t.Errorf("unexpected errors: %q", sink.lines)
			}
		})
	}
}

type step struct {
	AsEntered  string
	Index      int
	Positional bool
	Option     string
}

func drain(p *Parser, args []string) []step {
	p.Init(args)
	var steps []step
	for {
		m, ok := p.Next()
		s := step{AsEntered: m.AsEntered, Index: m.Index, Positional: m.Positional}
		if m.Option != nil {
			s.Option = m.Option.String()
		}
		steps = append(steps, s)
		if !ok {
			return steps
		}
	}
}

// permute calls visit with every ordering of 0..n-1.
func permute(n int, visit func([]int)) {
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	var gen func(k int)
	gen = func(k int) {
		if k == n {
			visit(idx)
			return
		}
		for i := k; i < n; i++ {
			idx[k], idx[i] = idx[i], idx[k]
			gen(k + 1)
			idx[k], idx[i] = idx[i], idx[k]
		}
	}
	gen(0)
}

func TestProcessStablePartitionAllOrders(t *testing.T) {
	p, sink := newTestParser(
		&Option{Short: 'a'},
		&Option{Short: 'b'},
		&Option{Long: "cee"},
		&Option{Short: 'o', NeedArg: true, Consumer: String(nil)},
	)
	units := [][]string{{"-a"}, {"-b"}, {"--cee"}, {"-o", "out"}, {"p1"}, {"p2"}, {"p3"}}
	isPositional := func(u []string) bool { return !strings.HasPrefix(u[0], "-") }

	orders := 0
	permute(len(units), func(order []int) {
		orders++
		args := []string{"prog"}
		var opts, positionals []string
		for _, i := range order {
			args = append(args, units[i]...)
			if isPositional(units[i]) {
				positionals = append(positionals, units[i]...)
			} else {
				opts = append(opts, units[i]...)
			}
		}
		orig := slices.Clone(args)
		want := append(append([]string{"prog"}, opts...), positionals...)

		n := p.Process(args)
		if p.Failed() {
			t.Fatalf("Process(%q) failed: %q", orig, sink.lines)
		}
		if n != 1+len(opts) {
			t.Fatalf("Process(%q) = %d, want %d", orig, n, 1+len(opts))
		}
		if diff := cmp.Diff(want, args); diff != "" {
			t.Fatalf("Process(%q) args mismatch (-want +got):\n%s", orig, diff)
		}
	})
	if orders != 5040 {
		t.Errorf("visited %d orders, want 5040", orders)
	}
}

func TestProcessIdempotent(t *testing.T) {
	p, _ := newTestParser(
		&Option{Short: 'a', Long: "all"},
		&Option{Short: 'o', Long: "output", NeedArg: true, Consumer: String(nil)},
	)
	args := []string{"prog", "x", "-a", "y", "--output", "out", "z"}

	first := drain(p, args)
	reordered := slices.Clone(args)
	second := drain(p, args)

	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("second run classified differently (-first +second):\n%s", diff)
	}
	if diff := cmp.Diff(reordered, args); diff != "" {
		t.Errorf("second run reordered args (-want +got):\n%s", diff)
	}
	want := []string{"prog", "-a", "--output", "out", "x", "y", "z"}
	if diff := cmp.Diff(want, args); diff != "" {
		t.Errorf("args mismatch (-want +got):\n%s", diff)
	}
}

func TestLongAbbreviations(t *testing.T) {
	tests := []struct {
		name           string
		table          []string
		arg            string
		want           string
		wantCandidates []string
		wantErr        error
	}{
		{
			name:           "ambiguous segment prefix",
			table:          []string{"foo-bar", "foo-baz"},
			arg:            "--foo-b",
			wantCandidates: []string{"--foo-bar", "--foo-baz"},
			wantErr:        ErrAmbiguousOption,
		},
		{
			name:  "exact match skips ambiguity",
			table: []string{"foo-bar", "foo-baz"},
			arg:   "--foo-bar",
			want:  "foo-bar",
		},
		{
			name:           "first segment only",
			table:          []string{"foo-bar", "foo-baz"},
			arg:            "--foo",
			wantCandidates: []string{"--foo-bar", "--foo-baz"},
			wantErr:        ErrAmbiguousOption,
		},
		{
			name:  "exact match beats longer prefix match",
			table: []string{"foo", "foo-bar"},
			arg:   "--foo",
			want:  "foo",
		},
		{
			name:           "abbreviation of both",
			table:          []string{"foo", "foo-bar"},
			arg:            "--fo",
			wantCandidates: []string{"--foo", "--foo-bar"},
			wantErr:        ErrAmbiguousOption,
		},
		{
			name:  "second segment picks one",
			table: []string{"foo", "foo-bar"},
			arg:   "--foo-b",
			want:  "foo-bar",
		},
		{
			name:  "trailing segments dropped",
			table: []string{"foo-bar-baz", "frob"},
			arg:   "--fo-ba",
			want:  "foo-bar-baz",
		},
		{
			name:  "unique prefix",
			table: []string{"verbose", "version-file"},
			arg:   "--verb",
			want:  "verbose",
		},
		{
			name:  "value after equals is ignored for matching",
			table: []string{"foo-bar", "foo-baz"},
			arg:   "--foo-bar=x-y",
			want:  "foo-bar",
		},
		{
			name:    "more segments than the option",
			table:   []string{"foo"},
			arg:     "--foo-bar",
			wantErr: ErrUnrecognizedOption,
		},
		{
			name:    "no match",
			table:   []string{"foo"},
			arg:     "--bar",
			wantErr: ErrUnrecognizedOption,
		},
		{
			name:    "empty name",
			table:   []string{"foo"},
			arg:     "--=x",
			wantErr: ErrUnrecognizedOption,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var opts []*Option
			for _, name := range tt.table {
				opts = append(opts, &Option{Long: name})
			}
			p, sink := newTestParser(opts...)
			p.Init([]string{"prog", tt.arg})
			m, ok := p.Next()
			if tt.wantErr != nil {
				if ok {
					t.Fatalf("Next() ok, matched %v; want error %v", m.Option, tt.wantErr)
				}
				if !errors.Is(p.Err(), tt.wantErr) {
					t.Fatalf("Err() = %v, want %v", p.Err(), tt.wantErr)
				}
				var oe *OptionError
				if !errors.As(p.Err(), &oe) {
					t.Fatalf("Err() = %T, want *OptionError", p.Err())
				}
				if diff := cmp.Diff(tt.wantCandidates, oe.Candidates); diff != "" {
					t.Errorf("Candidates mismatch (-want +got):\n%s", diff)
				}
				if len(sink.lines) != 1 {
					t.Errorf("sink got %q, want one line", sink.lines)
				}
				return
			}
			if !ok {
				t.Fatalf("Next() failed: %v", p.Err())
			}
			if m.Option.Long != tt.want {
				t.Errorf("matched %q, want %q", m.Option.Long, tt.want)
			}
			if m.Option.Found != FoundNoArg {
				t.Errorf("Found = %v, want %v", m.Option.Found, FoundNoArg)
			}
		})
	}
}

func TestLongIgnoreCase(t *testing.T) {
	verbose := &Option{Long: "verbose"}
	p, _ := newTestParser(verbose)
	p.Process([]string{"prog", "--VERB"})
	if !errors.Is(p.Err(), ErrUnrecognizedOption) {
		t.Fatalf("Err() = %v, want %v", p.Err(), ErrUnrecognizedOption)
	}

	p.IgnoreCase = true
	p.Process([]string{"prog", "--VERB"})
	if p.Failed() {
		t.Fatalf("Process failed: %v", p.Err())
	}
	if verbose.Found != FoundNoArg {
		t.Errorf("Found = %v, want %v", verbose.Found, FoundNoArg)
	}
}

func recordInput(c Consumer, got *[]Input) Consumer {
	return ConsumerFunc(func(p *Parser, opt *Option, in Input) Result {
		*got = append(*got, in)
		return c.Consume(p, opt, in)
	})
}

func TestBundledShortOptions(t *testing.T) {
	var n int64
	var inputs []Input
	a := &Option{Short: 'a'}
	b := &Option{Short: 'b'}
	nOpt := &Option{Short: 'n', NeedArg: true, Consumer: recordInput(Int(&n), &inputs)}
	p, sink := newTestParser(a, b, nOpt)

	idx := p.Process([]string{"prog", "-abn5"})
	if idx != 2 {
		t.Errorf("Process() = %d, want 2", idx)
	}
	if len(sink.lines) != 0 {
		t.Fatalf("unexpected errors: %q", sink.lines)
	}
	if a.Found != FoundNoArg || b.Found != FoundNoArg {
		t.Errorf("a.Found = %v, b.Found = %v, want %v", a.Found, b.Found, FoundNoArg)
	}
	if nOpt.Found != FoundWithArg {
		t.Errorf("n.Found = %v, want %v", nOpt.Found, FoundWithArg)
	}
	if n != 5 || nOpt.Value != IntValue(5) {
		t.Errorf("n = %d, Value = %v, want 5", n, nOpt.Value)
	}
	want := []Input{{AsEntered: "-n", Connection: Adjacent, Arg: "5", HasArg: true, MayClaim: true}}
	if diff := cmp.Diff(want, inputs); diff != "" {
		t.Errorf("inputs mismatch (-want +got):\n%s", diff)
	}
}

func TestConnectionModes(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		wantConn Connection
		wantArg  string
		wantN    int
	}{
		{"short adjacent", []string{"prog", "-nvalue"}, Adjacent, "value", 2},
		{"short equals", []string{"prog", "-n=value"}, WithEquals, "value", 2},
		{"short next argument", []string{"prog", "-n", "value"}, NextArgument, "value", 3},
		{"long equals", []string{"prog", "--name=value"}, WithEquals, "value", 2},
		{"long equals empty", []string{"prog", "--name="}, WithEquals, "", 2},
		{"long next argument", []string{"prog", "--name", "value"}, NextArgument, "value", 3},
		{"long abbreviated", []string{"prog", "--na", "value"}, NextArgument, "value", 3},
		{"next argument looks like an option", []string{"prog", "--name", "-x"}, NextArgument, "-x", 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got string
			var inputs []Input
			opt := &Option{Short: 'n', Long: "name", NeedArg: true, Consumer: recordInput(String(&got), &inputs)}
			p, sink := newTestParser(opt)
			n := p.Process(tt.args)
			if len(sink.lines) != 0 {
				t.Fatalf("unexpected errors: %q", sink.lines)
			}
			if n != tt.wantN {
				t.Errorf("Process() = %d, want %d", n, tt.wantN)
			}
			if len(inputs) != 1 {
				t.Fatalf("consumer called %d times, want 1", len(inputs))
			}
			if inputs[0].Connection != tt.wantConn {
				t.Errorf("Connection = %v, want %v", inputs[0].Connection, tt.wantConn)
			}
			if got != tt.wantArg {
				t.Errorf("value = %q, want %q", got, tt.wantArg)
			}
			if opt.Found != FoundWithArg {
				t.Errorf("Found = %v, want %v", opt.Found, FoundWithArg)
			}
		})
	}
}

func TestPartialClaimContinuesBundle(t *testing.T) {
	var jobs int64
	var verbose bool
	j := &Option{Short: 'j', NeedArg: true, Consumer: Int(&jobs)}
	v := &Option{Short: 'v', Consumer: Flag(&verbose)}
	p, sink := newTestParser(j, v)

	p.Process([]string{"prog", "-j4v"})
	if len(sink.lines) != 0 {
		t.Fatalf("unexpected errors: %q", sink.lines)
	}
	if jobs != 4 {
		t.Errorf("jobs = %d, want 4", jobs)
	}
	if !verbose || v.Found != FoundNoArg {
		t.Errorf("verbose = %v, Found = %v; want true, %v", verbose, v.Found, FoundNoArg)
	}
}

func TestMissingRequiredArgument(t *testing.T) {
	var got string
	n := &Option{Short: 'n', NeedArg: true, Consumer: String(&got)}
	p, sink := newTestParser(n)

	idx := p.Process([]string{"prog", "-n"})
	if idx != 1 {
		t.Errorf("Process() = %d, want 1", idx)
	}
	if !errors.Is(p.Err(), ErrMissingArgument) {
		t.Fatalf("Err() = %v, want %v", p.Err(), ErrMissingArgument)
	}
	if n.Found != NotFound {
		t.Errorf("Found = %v, want %v", n.Found, NotFound)
	}
	if diff := cmp.Diff([]string{"-n: requires an argument"}, sink.lines); diff != "" {
		t.Errorf("sink mismatch (-want +got):\n%s", diff)
	}
}

func TestMissingArgumentSuppressedWhilePending(t *testing.T) {
	n := &Option{Short: 'n', NeedArg: true, Consumer: String(nil)}
	p, sink := newTestParser(n)

	p.Init([]string{"prog", "-x", "-n"})
	for !p.Done() {
		p.Next()
	}
	if got := len(p.Errors()); got != 2 {
		t.Fatalf("len(Errors()) = %d, want 2", got)
	}
	if diff := cmp.Diff([]string{"-x: unrecognized option"}, sink.lines); diff != "" {
		t.Errorf("sink mismatch (-want +got):\n%s", diff)
	}
}

func TestExplicitTerminator(t *testing.T) {
	x := &Option{Short: 'x'}
	p, sink := newTestParser(&Option{Short: 'v'}, x)

	args := []string{"prog", "--", "-x"}
	idx := p.Process(args)
	if idx != 2 {
		t.Errorf("Process() = %d, want 2", idx)
	}
	if args[idx] != "-x" {
		t.Errorf("args[%d] = %q, want %q", idx, args[idx], "-x")
	}
	if x.Found != NotFound {
		t.Errorf("x.Found = %v, want %v", x.Found, NotFound)
	}
	if len(sink.lines) != 0 {
		t.Errorf("unexpected errors: %q", sink.lines)
	}
}

func TestEndToEnd(t *testing.T) {
	var verbose bool
	var output string
	v := &Option{Short: 'v', Long: "verbose", Consumer: Flag(&verbose)}
	o := &Option{Short: 'o', Long: "output", NeedArg: true, Consumer: String(&output)}
	p, sink := newTestParser(v, o)

	args := []string{"prog", "file1", "-v", "--output=out.txt", "file2"}
	k := p.Process(args)
	if len(sink.lines) != 0 {
		t.Fatalf("unexpected errors: %q", sink.lines)
	}
	if k != 3 {
		t.Errorf("Process() = %d, want 3", k)
	}
	if v.Found != FoundNoArg || !verbose {
		t.Errorf("verbose: Found = %v, value = %v", v.Found, verbose)
	}
	if o.Found != FoundWithArg || output != "out.txt" || o.Value != StringValue("out.txt") {
		t.Errorf("output: Found = %v, value = %q, Value = %v", o.Found, output, o.Value)
	}
	want := []string{"prog", "-v", "--output=out.txt", "file1", "file2"}
	if diff := cmp.Diff(want, args); diff != "" {
		t.Errorf("args mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"file1", "file2"}, args[k:]); diff != "" {
		t.Errorf("positionals mismatch (-want +got):\n%s", diff)
	}
}

func TestRepeatedOption(t *testing.T) {
	calls := 0
	counting := ConsumerFunc(func(p *Parser, opt *Option, in Input) Result {
		calls++
		return Result{}
	})

	v := &Option{Short: 'v', Consumer: counting}
	p, sink := newTestParser(v)
	idx := p.Process([]string{"prog", "-v", "-v"})
	if !errors.Is(p.Err(), ErrRepeatedOption) {
		t.Fatalf("Err() = %v, want %v", p.Err(), ErrRepeatedOption)
	}
	if calls != 1 {
		t.Errorf("consumer called %d times, want 1", calls)
	}
	if idx != 2 {
		t.Errorf("Process() = %d, want 2", idx)
	}
	if diff := cmp.Diff([]string{"-v: may not be repeated"}, sink.lines); diff != "" {
		t.Errorf("sink mismatch (-want +got):\n%s", diff)
	}

	calls = 0
	v.Repeatable = true
	p.Process([]string{"prog", "-vv", "-v"})
	if p.Failed() {
		t.Fatalf("Process failed: %v", p.Err())
	}
	if calls != 3 {
		t.Errorf("consumer called %d times, want 3", calls)
	}
}

func TestUnrecognizedSuppressedWhilePending(t *testing.T) {
	v := &Option{Short: 'v'}
	p, sink := newTestParser(v)

	p.Init([]string{"prog", "-x", "--bogus", "-v"})
	for !p.Done() {
		p.Next()
	}
	if diff := cmp.Diff([]string{"-x: unrecognized option"}, sink.lines); diff != "" {
		t.Errorf("sink mismatch (-want +got):\n%s", diff)
	}
	if got := len(p.Errors()); got != 2 {
		t.Errorf("len(Errors()) = %d, want 2", got)
	}
	if v.Found != FoundNoArg {
		t.Errorf("v.Found = %v, want %v", v.Found, FoundNoArg)
	}

	p.Init([]string{"prog", "-v"})
	if p.Failed() || p.Err() != nil {
		t.Errorf("Init did not clear errors: %v", p.Err())
	}
}

func TestOptionalValueNotSwallowed(t *testing.T) {
	var level int64 = -1
	c := &Option{Short: 'c', Consumer: Int(&level)}
	p, sink := newTestParser(c)

	args := []string{"prog", "-c", "5"}
	idx := p.Process(args)
	if len(sink.lines) != 0 {
		t.Fatalf("unexpected errors: %q", sink.lines)
	}
	if idx != 2 {
		t.Errorf("Process() = %d, want 2", idx)
	}
	if c.Found != FoundNoArg || level != -1 {
		t.Errorf("Found = %v, level = %d; want %v, -1", c.Found, level, FoundNoArg)
	}

	p.Process([]string{"prog", "-c9"})
	if c.Found != FoundWithArg || level != 9 {
		t.Errorf("Found = %v, level = %d; want %v, 9", c.Found, level, FoundWithArg)
	}
}

func TestValueConversionError(t *testing.T) {
	n := &Option{Short: 'n', NeedArg: true, Consumer: Int(nil)}
	p, sink := newTestParser(n)

	idx := p.Process([]string{"prog", "-n", "abc"})
	if idx != 1 {
		t.Errorf("Process() = %d, want 1", idx)
	}
	if !errors.Is(p.Err(), ErrInvalidValue) {
		t.Fatalf("Err() = %v, want %v", p.Err(), ErrInvalidValue)
	}
	if n.Found != NotFound {
		t.Errorf("Found = %v, want %v", n.Found, NotFound)
	}
	if diff := cmp.Diff([]string{`-n: invalid integer "abc"`}, sink.lines); diff != "" {
		t.Errorf("sink mismatch (-want +got):\n%s", diff)
	}
}

func TestOptionalValueConversionError(t *testing.T) {
	tests := []struct {
		name     string
		opt      *Option
		args     []string
		wantLine string
	}{
		{
			name:     "int",
			opt:      &Option{Long: "count", Consumer: Int(nil)},
			args:     []string{"prog", "--count=abc", "x"},
			wantLine: `--count: invalid integer "abc"`,
		},
		{
			name:     "bool",
			opt:      &Option{Long: "color", Consumer: Bool(nil)},
			args:     []string{"prog", "--color=maybe", "x"},
			wantLine: `--color: invalid boolean "maybe"`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, sink := newTestParser(tt.opt)
			p.Init(tt.args)
			if m, ok := p.Next(); ok {
				t.Fatalf("Next() = %+v, true; want false", m)
			}
			if tt.opt.Found != NotFound {
				t.Errorf("Found = %v, want %v", tt.opt.Found, NotFound)
			}
			if !errors.Is(p.Err(), ErrInvalidValue) {
				t.Errorf("Err() = %v, want %v", p.Err(), ErrInvalidValue)
			}
			if diff := cmp.Diff([]string{tt.wantLine}, sink.lines); diff != "" {
				t.Errorf("sink mismatch (-want +got):\n%s", diff)
			}

			if n := p.Process(slices.Clone(tt.args)); n != 1 {
				t.Errorf("Process() = %d, want 1", n)
			}
		})
	}
}

func TestFlagRejectsAttachedValue(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		wantLine string
	}{
		{"short", []string{"prog", "-a=5", "-b"}, `-a: does not take an argument (got "5")`},
		{"short in a bundle", []string{"prog", "-ba=5"}, `-a: does not take an argument (got "5")`},
		{"long", []string{"prog", "--all=yes", "-b"}, `--all: does not take an argument (got "yes")`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var all bool
			a := &Option{Short: 'a', Long: "all", Consumer: Flag(&all)}
			b := &Option{Short: 'b'}
			p, sink := newTestParser(a, b)
			if n := p.Process(tt.args); n != 1 {
				t.Errorf("Process() = %d, want 1", n)
			}
			if a.Found != NotFound {
				t.Errorf("Found = %v, want %v", a.Found, NotFound)
			}
			if !errors.Is(p.Err(), ErrInvalidValue) {
				t.Errorf("Err() = %v, want %v", p.Err(), ErrInvalidValue)
			}
			if diff := cmp.Diff([]string{tt.wantLine}, sink.lines); diff != "" {
				t.Errorf("sink mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDeclinedRequiredValueIsReported(t *testing.T) {
	decline := ConsumerFunc(func(p *Parser, opt *Option, in Input) Result { return Result{} })
	p, _ := newTestParser(&Option{Long: "mode", NeedArg: true, Consumer: decline})

	p.Process([]string{"prog", "--mode=fast"})
	if !errors.Is(p.Err(), ErrInvalidValue) {
		t.Fatalf("Err() = %v, want %v", p.Err(), ErrInvalidValue)
	}
}

func TestCatchAll(t *testing.T) {
	var rest []string
	v := &Option{Short: 'v'}
	all := &Option{Consumer: Strings(&rest)}
	p, sink := newTestParser(v, all)

	args := []string{"prog", "a", "-v", "b", "--", "-v"}
	orig := slices.Clone(args)
	idx := p.Process(args)
	if len(sink.lines) != 0 {
		t.Fatalf("unexpected errors: %q", sink.lines)
	}
	if idx != len(args) {
		t.Errorf("Process() = %d, want %d", idx, len(args))
	}
	if diff := cmp.Diff(orig, args); diff != "" {
		t.Errorf("catch-all reordered args (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"a", "b", "-v"}, rest); diff != "" {
		t.Errorf("rest mismatch (-want +got):\n%s", diff)
	}
	if v.Found != FoundNoArg {
		t.Errorf("v.Found = %v, want %v", v.Found, FoundNoArg)
	}
	if all.Found != FoundWithArg {
		t.Errorf("catch-all Found = %v, want %v", all.Found, FoundWithArg)
	}
}

func TestOptionStart(t *testing.T) {
	plus := &Option{Short: 'p'}
	var inputs []Input
	n := &Option{Short: 'n', NeedArg: true, Consumer: recordInput(String(nil), &inputs)}
	p, sink := newTestParser(plus, n)
	p.OptionStart = "-+"

	args := []string{"prog", "x", "+p", "+n", "v"}
	idx := p.Process(args)
	if len(sink.lines) != 0 {
		t.Fatalf("unexpected errors: %q", sink.lines)
	}
	if idx != 4 {
		t.Errorf("Process() = %d, want 4", idx)
	}
	if plus.Found != FoundNoArg {
		t.Errorf("p.Found = %v, want %v", plus.Found, FoundNoArg)
	}
	if len(inputs) != 1 || inputs[0].AsEntered != "+n" {
		t.Errorf("inputs = %+v, want one with AsEntered +n", inputs)
	}
	want := []string{"prog", "+p", "+n", "v", "x"}
	if diff := cmp.Diff(want, args); diff != "" {
		t.Errorf("args mismatch (-want +got):\n%s", diff)
	}
}

func TestMatchReportsPositional(t *testing.T) {
	p, _ := newTestParser(&Option{Short: 'v'})
	p.Init([]string{"prog", "file", "-v"})

	m, ok := p.Next()
	if !ok || m.Option == nil || m.AsEntered != "-v" || m.Index != 1 {
		t.Fatalf("first Next() = %+v, %v", m, ok)
	}
	m, ok = p.Next()
	if ok {
		t.Fatalf("second Next() ok, want false")
	}
	if !m.Positional || m.AsEntered != "file" || m.Index != 2 || m.Option != nil {
		t.Errorf("second Next() = %+v", m)
	}
	if p.Failed() {
		t.Errorf("positional reported as error: %v", p.Err())
	}
}

func TestNewPanics(t *testing.T) {
	tests := []struct {
		name string
		opts []*Option
	}{
		{"nil entry", []*Option{nil}},
		{"catch-all not last", []*Option{{Consumer: Strings(nil)}, {Short: 'v'}}},
		{"catch-all without consumer", []*Option{{Short: 'v'}, {}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				if r := recover(); r == nil {
					t.Error("New did not panic")
				}
			}()
			New(tt.opts)
		})
	}
}
