// Package native compiles property and method access on plain Go values:
// maps with string keys, structs and their methods.
package native

import (
	"fmt"
	"reflect"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/robbyt/go-bindexpr/ast"
)

// Property returns the accessor for name. Reads resolve, in order, a map
// entry, a zero-argument method, then a struct field matched by name or
// json tag. A name starting with a lower case letter also matches the
// exported Go identifier, so user.name reads User.Name. Missing map entries
// read as nil.
func Property(name string) ast.Accessor {
	return property{name: name, exported: exportedName(name)}
}

type property struct {
	name     string
	exported string
}

func (p property) Get(receiver any) (any, error) {
	switch r := receiver.(type) {
	case nil:
		return nil, fmt.Errorf("%w: cannot read %q of nil", ErrNoSuchProperty, p.name)
	case map[string]any:
		return r[p.name], nil
	}

	val := reflect.ValueOf(receiver)
	if m, ok := p.getter(val); ok {
		return callReflect(m, nil)
	}

	val, err := indirect(val, p.name)
	if err != nil {
		return nil, err
	}
	switch val.Kind() {
	case reflect.Map:
		if val.Type().Key().Kind() != reflect.String {
			break
		}
		elem := val.MapIndex(reflect.ValueOf(p.name).Convert(val.Type().Key()))
		if !elem.IsValid() {
			return nil, nil
		}
		return elem.Interface(), nil
	case reflect.Struct:
		if f, ok := p.field(val); ok {
			return f.Interface(), nil
		}
	}
	return nil, fmt.Errorf("%w: %q on %T", ErrNoSuchProperty, p.name, receiver)
}

func (p property) Set(receiver, value any) (any, error) {
	switch r := receiver.(type) {
	case nil:
		return nil, fmt.Errorf("%w: cannot assign %q on nil", ErrNoSuchProperty, p.name)
	case map[string]any:
		r[p.name] = value
		return value, nil
	}

	val, err := indirect(reflect.ValueOf(receiver), p.name)
	if err != nil {
		return nil, err
	}
	switch val.Kind() {
	case reflect.Map:
		if val.Type().Key().Kind() != reflect.String || val.IsNil() {
			break
		}
		v, err := convertArg(value, val.Type().Elem())
		if err != nil {
			return nil, fmt.Errorf("assigning %q: %w", p.name, err)
		}
		val.SetMapIndex(reflect.ValueOf(p.name).Convert(val.Type().Key()), v)
		return value, nil
	case reflect.Struct:
		f, ok := p.field(val)
		if !ok {
			break
		}
		if !f.CanSet() {
			return nil, fmt.Errorf("%w: %q on %T is not settable", ErrNoSuchProperty, p.name, receiver)
		}
		v, err := convertArg(value, f.Type())
		if err != nil {
			return nil, fmt.Errorf("assigning %q: %w", p.name, err)
		}
		f.Set(v)
		return value, nil
	}
	return nil, fmt.Errorf("%w: cannot assign %q on %T", ErrNoSuchProperty, p.name, receiver)
}

// getter returns a method of val usable as a property: no arguments and
// one result, optionally followed by an error.
func (p property) getter(val reflect.Value) (reflect.Value, bool) {
	m, ok := method(val, p.name, p.exported)
	if !ok {
		return reflect.Value{}, false
	}
	t := m.Type()
	if t.NumIn() != 0 {
		return reflect.Value{}, false
	}
	switch t.NumOut() {
	case 1:
		return m, true
	case 2:
		return m, t.Out(1) == errorType
	}
	return reflect.Value{}, false
}

func (p property) field(val reflect.Value) (reflect.Value, bool) {
	t := val.Type()
	for i := range t.NumField() {
		sf := t.Field(i)
		if !sf.IsExported() {
			continue
		}
		if sf.Name == p.name || sf.Name == p.exported || jsonName(sf) == p.name {
			return val.Field(i), true
		}
	}
	return reflect.Value{}, false
}

// indirect follows pointers and interfaces down to a concrete value.
func indirect(val reflect.Value, name string) (reflect.Value, error) {
	for val.Kind() == reflect.Pointer || val.Kind() == reflect.Interface {
		if val.IsNil() {
			return reflect.Value{}, fmt.Errorf("%w: cannot access %q of nil %s", ErrNoSuchProperty, name, val.Type())
		}
		val = val.Elem()
	}
	return val, nil
}

// method looks name up on val and, failing that, on the value it points to.
func method(val reflect.Value, names ...string) (reflect.Value, bool) {
	for val.IsValid() {
		if (val.Kind() == reflect.Pointer || val.Kind() == reflect.Interface) && val.IsNil() {
			break
		}
		for _, n := range names {
			if n == "" {
				continue
			}
			if m := val.MethodByName(n); m.IsValid() {
				return m, true
			}
		}
		if val.Kind() != reflect.Pointer && val.Kind() != reflect.Interface {
			break
		}
		val = val.Elem()
	}
	return reflect.Value{}, false
}

func jsonName(sf reflect.StructField) string {
	tag := sf.Tag.Get("json")
	if tag == "" || tag == "-" {
		return ""
	}
	name, _, _ := strings.Cut(tag, ",")
	return name
}

// exportedName upper-cases the first letter of name, or returns "" if it
// already starts with an upper case letter or is not a letter.
func exportedName(name string) string {
	r, size := utf8.DecodeRuneInString(name)
	if r == utf8.RuneError || !unicode.IsLower(r) {
		return ""
	}
	return string(unicode.ToUpper(r)) + name[size:]
}
