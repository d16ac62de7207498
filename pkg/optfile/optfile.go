// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package optfile loads getopt option tables from TOML or YAML files.
//
// A table file looks like:
//
//	schema = "1.0"
//	option_start = "-"
//
//	[[option]]
//	short = "v"
//	long = "verbose"
//	kind = "flag"
//
//	[[option]]
//	short = "o"
//	long = "output"
//	kind = "string"
//	help = "Output file"
//
// Options built from a file have no target variables; parsed values land in
// each Option's Value.
package optfile

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/BurntSushi/toml"
	"github.com/Masterminds/semver/v3"
	"github.com/yeetrun/getopt/pkg/getopt"
	"gopkg.in/yaml.v3"
	"tailscale.com/util/mak"
	"tailscale.com/util/must"
	"tailscale.com/util/set"
)

const schemaVersion = "1.0"

// schemaConstraint is the range of schema versions this package reads.
var schemaConstraint = must.Get(semver.NewConstraint("^1"))

// Format is the encoding of a table file.
type Format int

const (
	TOML Format = iota
	YAML
)

func (f Format) String() string {
	switch f {
	case TOML:
		return "toml"
	case YAML:
		return "yaml"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

// FormatOf picks the format from the file extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return TOML, nil
	case ".yaml", ".yml":
		return YAML, nil
	}
	return 0, fmt.Errorf("unknown table format for %s", path)
}

// File is the on-disk layout of a table file.
type File struct {
	Schema      string  `toml:"schema" yaml:"schema"`
	OptionStart string  `toml:"option_start,omitempty" yaml:"option_start,omitempty"`
	IgnoreCase  bool    `toml:"ignore_case,omitempty" yaml:"ignore_case,omitempty"`
	Options     []Entry `toml:"option" yaml:"option"`
}

// Entry describes one option.
type Entry struct {
	Short string `toml:"short,omitempty" yaml:"short,omitempty"`
	Long  string `toml:"long,omitempty" yaml:"long,omitempty"`
	// Kind is one of flag, count, bool, int, float, string, strings or rest.
	Kind string `toml:"kind" yaml:"kind"`
	// NeedArg overrides the kind's default.
	NeedArg    *bool  `toml:"need_arg,omitempty" yaml:"need_arg,omitempty"`
	Repeatable bool   `toml:"repeatable,omitempty" yaml:"repeatable,omitempty"`
	Help       string `toml:"help,omitempty" yaml:"help,omitempty"`
}

// Table is a loaded option table.
type Table struct {
	Options     []*getopt.Option
	OptionStart string
	IgnoreCase  bool
}

// NewParser returns a Parser for the table.
func (t *Table) NewParser() *getopt.Parser {
	p := getopt.New(t.Options)
	if t.OptionStart != "" {
		p.OptionStart = t.OptionStart
	}
	p.IgnoreCase = t.IgnoreCase
	return p
}

// Load reads and builds the table at path.
func Load(path string) (*Table, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	t, err := Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return t, nil
}

// Parse decodes data and builds the table. Unknown keys are rejected.
func Parse(data []byte, format Format) (*Table, error) {
	var f File
	switch format {
	case TOML:
		md, err := toml.Decode(string(data), &f)
		if err != nil {
			return nil, err
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, fmt.Errorf("unknown key %q", undecoded[0].String())
		}
	case YAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unsupported format %v", format)
	}
	return f.Table()
}

// Table validates f and builds the option table.
func (f *File) Table() (*Table, error) {
	if f.Schema == "" {
		f.Schema = schemaVersion
	}
	v, err := semver.NewVersion(f.Schema)
	if err != nil {
		return nil, fmt.Errorf("invalid schema %q: %w", f.Schema, err)
	}
	if !schemaConstraint.Check(v) {
		return nil, fmt.Errorf("unsupported schema %s, want %s", v, schemaConstraint)
	}
	if f.OptionStart != "" && !strings.HasPrefix(f.OptionStart, "-") {
		return nil, fmt.Errorf("option_start %q must begin with '-'", f.OptionStart)
	}

	t := &Table{OptionStart: f.OptionStart, IgnoreCase: f.IgnoreCase}
	var (
		shorts set.Set[rune]
		longs  map[string]int
		rest   *getopt.Option
	)
	for i, e := range f.Options {
		o, err := e.option()
		if err != nil {
			return nil, fmt.Errorf("option %d: %w", i+1, err)
		}
		if o.IsCatchAll() {
			if rest != nil {
				return nil, fmt.Errorf("option %d: only one rest option is allowed", i+1)
			}
			rest = o
			continue
		}
		if o.Short != 0 {
			if shorts.Contains(o.Short) {
				return nil, fmt.Errorf("option %d: duplicate short name -%c", i+1, o.Short)
			}
			if shorts == nil {
				shorts = make(set.Set[rune])
			}
			shorts.Add(o.Short)
		}
		if o.Long != "" {
			key := o.Long
			if f.IgnoreCase {
				key = strings.ToLower(key)
			}
			if prev, dup := longs[key]; dup {
				return nil, fmt.Errorf("option %d: --%s duplicates option %d", i+1, o.Long, prev)
			}
			mak.Set(&longs, key, i+1)
		}
		t.Options = append(t.Options, o)
	}
	if rest != nil {
		t.Options = append(t.Options, rest)
	}
	return t, nil
}

func (e Entry) option() (*getopt.Option, error) {
	o := &getopt.Option{
		Long:       strings.TrimPrefix(e.Long, "--"),
		Repeatable: e.Repeatable,
		Help:       e.Help,
	}
	if e.Short != "" {
		r, size := utf8.DecodeRuneInString(e.Short)
		if size != len(e.Short) || r == '-' || r == '=' {
			return nil, fmt.Errorf("invalid short name %q", e.Short)
		}
		o.Short = r
	}
	if strings.Contains(o.Long, "=") {
		return nil, fmt.Errorf("invalid long name %q", e.Long)
	}

	switch e.Kind {
	case "flag", "":
		o.Consumer = getopt.Flag(nil)
	case "count":
		o.Consumer = getopt.Count(nil)
		o.Repeatable = true
	case "bool":
		o.Consumer = getopt.Bool(nil)
	case "int":
		o.Consumer = getopt.Int(nil)
		o.NeedArg = true
	case "float":
		o.Consumer = getopt.Float(nil)
		o.NeedArg = true
	case "string":
		o.Consumer = getopt.String(nil)
		o.NeedArg = true
	case "strings":
		o.Consumer = getopt.Strings(nil)
		o.NeedArg = true
		o.Repeatable = true
	case "rest":
		if o.Short != 0 || o.Long != "" {
			return nil, errors.New("a rest option takes no names")
		}
		o.Consumer = getopt.Strings(nil)
		o.Data = e.Kind
		return o, nil
	default:
		return nil, fmt.Errorf("unknown kind %q", e.Kind)
	}
	if o.IsCatchAll() {
		return nil, fmt.Errorf("a %s option needs a short or long name", e.Kind)
	}
	if e.NeedArg != nil {
		o.NeedArg = *e.NeedArg
	}
	o.Data = e.Kind
	return o, nil
}
