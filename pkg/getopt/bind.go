// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package getopt

import (
	"fmt"
	"net/url"
	"reflect"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"
)

// Bind builds an option table from the exported fields of the struct v
// points to. Parsed values are written straight into the fields.
//
// Struct tags:
//   - flag:"name"     long name (defaults to the lowercased field name, "-" skips the field)
//   - short:"n"       single-character name
//   - help:"text"     stored in Option.Help
//   - default:"value" assigned before parsing
//   - optional:"true" the value may only be attached (-n5, --name=v)
//   - repeat:"true"   the option may be given more than once
//   - pos:"*"         on a []string field, collects every positional argument
//
// Bool fields are flags that also accept --name=false. []string fields are
// repeatable and append every value. Every other supported type requires a
// value: string, ints, uints, floats, time.Duration, url.URL, *url.URL, and
// pointers to these.
//
// Example:
//
//	type Flags struct {
//	    Verbose bool          `flag:"verbose" short:"v" help:"Enable verbose output"`
//	    Output  string        `flag:"output" short:"o" help:"Output file"`
//	    Timeout time.Duration `flag:"timeout" default:"5s"`
//	    Files   []string      `pos:"*"`
//	}
//
//	var f Flags
//	opts, err := getopt.Bind(&f)
func Bind(v any) ([]*Option, error) {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.Elem().Kind() != reflect.Struct {
		return nil, fmt.Errorf("getopt: Bind needs a pointer to a struct, got %T", v)
	}
	rv = rv.Elem()
	t := rv.Type()

	var opts []*Option
	var rest *Option
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		field := rv.Field(i)
		if !field.CanSet() {
			continue
		}

		if pos := sf.Tag.Get("pos"); pos != "" {
			if pos != "*" || sf.Type != reflect.TypeOf([]string(nil)) {
				return nil, fmt.Errorf("getopt: field %s: pos:%q needs pos:\"*\" on a []string", sf.Name, pos)
			}
			if rest != nil {
				return nil, fmt.Errorf("getopt: field %s: only one pos:\"*\" field is allowed", sf.Name)
			}
			rest = &Option{
				Consumer: fieldConsumer{field: field},
				Help:     sf.Tag.Get("help"),
				Data:     sf.Name,
			}
			continue
		}

		name := sf.Tag.Get("flag")
		if name == "-" {
			continue
		}
		if name == "" {
			name = strings.ToLower(sf.Name)
		}
		o := &Option{
			Long:     name,
			Help:     sf.Tag.Get("help"),
			Data:     sf.Name,
			Consumer: fieldConsumer{field: field},
		}
		if short := sf.Tag.Get("short"); short != "" {
			r, size := utf8.DecodeRuneInString(short)
			if size != len(short) {
				return nil, fmt.Errorf("getopt: field %s: short name %q must be one character", sf.Name, short)
			}
			o.Short = r
		}

		switch {
		case isBoolField(field):
		case field.Kind() == reflect.Slice:
			if field.Type().Elem().Kind() != reflect.String {
				return nil, fmt.Errorf("getopt: field %s: unsupported slice type %s", sf.Name, field.Type())
			}
			o.NeedArg = true
			o.Repeatable = true
		default:
			if err := checkFieldType(field.Type()); err != nil {
				return nil, fmt.Errorf("getopt: field %s: %w", sf.Name, err)
			}
			o.NeedArg = true
		}
		if sf.Tag.Get("optional") == "true" {
			o.NeedArg = false
		}
		if sf.Tag.Get("repeat") == "true" {
			o.Repeatable = true
		}

		if def := sf.Tag.Get("default"); def != "" {
			if field.Kind() == reflect.Slice {
				return nil, fmt.Errorf("getopt: field %s: default is not supported on slices", sf.Name)
			}
			if err := setFieldValue(field, def); err != nil {
				return nil, fmt.Errorf("getopt: field %s: default: %w", sf.Name, err)
			}
		}
		opts = append(opts, o)
	}
	if rest != nil {
		opts = append(opts, rest)
	}
	return opts, nil
}

// fieldConsumer writes values into a struct field found by Bind.
type fieldConsumer struct {
	field reflect.Value
}

func (c fieldConsumer) Consume(p *Parser, opt *Option, in Input) Result {
	if isBoolField(c.field) && in.Connection != WithEquals {
		// Setting "true" on a bool cannot fail.
		_ = setFieldValue(c.field, "true")
		return Result{Value: BoolValue(true)}
	}
	text, _, ok := attached(opt, in, nil)
	if !ok {
		return Result{}
	}
	if err := setFieldValue(c.field, text); err != nil {
		p.ReportError(in.AsEntered, err.Error(), fmt.Errorf("%w: %w", ErrInvalidValue, err))
		return Result{}
	}
	return Result{Value: fieldValue(c.field, text), OK: true}
}

func isBoolField(field reflect.Value) bool {
	t := field.Type()
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t.Kind() == reflect.Bool
}

var (
	durationType = reflect.TypeOf(time.Duration(0))
	urlType      = reflect.TypeOf(url.URL{})
	urlPtrType   = reflect.TypeOf((*url.URL)(nil))
)

func checkFieldType(t reflect.Type) error {
	if t == urlPtrType {
		return nil
	}
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	switch t.Kind() {
	case reflect.String, reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return nil
	case reflect.Struct:
		if t == urlType {
			return nil
		}
	}
	return fmt.Errorf("unsupported field type %s", t)
}

// fieldValue reports the typed Value of a field after text was assigned to it.
func fieldValue(field reflect.Value, text string) Value {
	if field.Kind() == reflect.Pointer {
		if field.IsNil() {
			return StringValue(text)
		}
		field = field.Elem()
	}
	if field.Type() == durationType {
		return StringValue(text)
	}
	switch field.Kind() {
	case reflect.Bool:
		return BoolValue(field.Bool())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return IntValue(field.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return IntValue(int64(field.Uint()))
	case reflect.Float32, reflect.Float64:
		return FloatValue(field.Float())
	default:
		return StringValue(text)
	}
}

// setFieldValue sets a struct field from a string value. Slices get the value
// appended.
func setFieldValue(field reflect.Value, value string) error {
	switch field.Kind() {
	case reflect.Slice:
		if field.Type().Elem().Kind() != reflect.String {
			return fmt.Errorf("unsupported slice type %s", field.Type())
		}
		field.Set(reflect.Append(field, reflect.ValueOf(value).Convert(field.Type().Elem())))
		return nil

	case reflect.String:
		field.SetString(value)
		return nil

	case reflect.Bool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid bool value %q", value)
		}
		field.SetBool(b)
		return nil

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if field.Type() == durationType {
			d, err := time.ParseDuration(value)
			if err != nil {
				return fmt.Errorf("invalid duration %q", value)
			}
			field.SetInt(int64(d))
			return nil
		}
		i, err := strconv.ParseInt(value, 10, field.Type().Bits())
		if err != nil {
			return fmt.Errorf("invalid int value %q", value)
		}
		field.SetInt(i)
		return nil

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		u, err := strconv.ParseUint(value, 10, field.Type().Bits())
		if err != nil {
			return fmt.Errorf("invalid uint value %q", value)
		}
		field.SetUint(u)
		return nil

	case reflect.Float32, reflect.Float64:
		f, err := strconv.ParseFloat(value, field.Type().Bits())
		if err != nil {
			return fmt.Errorf("invalid float value %q", value)
		}
		field.SetFloat(f)
		return nil

	case reflect.Pointer:
		if field.Type() == urlPtrType {
			u, err := url.Parse(value)
			if err != nil {
				return fmt.Errorf("invalid URL %q", value)
			}
			field.Set(reflect.ValueOf(u))
			return nil
		}
		newValue := reflect.New(field.Type().Elem())
		if err := setFieldValue(newValue.Elem(), value); err != nil {
			return err
		}
		field.Set(newValue)
		return nil

	case reflect.Struct:
		if field.Type() == urlType {
			u, err := url.Parse(value)
			if err != nil {
				return fmt.Errorf("invalid URL %q", value)
			}
			field.Set(reflect.ValueOf(*u))
			return nil
		}
		return fmt.Errorf("unsupported struct type %s", field.Type())

	default:
		return fmt.Errorf("unsupported field type %s", field.Kind())
	}
}
