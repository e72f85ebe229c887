// Package starlark compiles property and method access on Starlark values,
// so module globals, dicts and structs produced by Starlark code can serve
// as expression scopes.
package starlark

import (
	"fmt"

	starlarkLib "go.starlark.net/starlark"

	"github.com/robbyt/go-bindexpr/ast"
	"github.com/robbyt/go-bindexpr/hosts/native"
)

const threadName = "bindexpr"

// Property returns the accessor for name. Module globals and dicts read
// their string keys, other Starlark values their attributes. Receivers that
// are not Starlark values are handled by native.Property.
func Property(name string) ast.Accessor {
	return property{name: name, fallback: native.Property(name)}
}

type property struct {
	name     string
	fallback ast.Accessor
}

func (p property) Get(receiver any) (any, error) {
	switch r := receiver.(type) {
	case starlarkLib.StringDict:
		return fromStarlark(r[p.name])
	case starlarkLib.Mapping:
		v, found, err := r.Get(starlarkLib.String(p.name))
		if err != nil {
			return nil, fmt.Errorf("%w: %q: %w", ErrNoSuchProperty, p.name, err)
		}
		if !found {
			return nil, nil
		}
		return fromStarlark(v)
	case starlarkLib.HasAttrs:
		v, err := r.Attr(p.name)
		if err != nil {
			return nil, fmt.Errorf("%w: %q: %w", ErrNoSuchProperty, p.name, err)
		}
		if v == nil {
			return nil, fmt.Errorf("%w: %s has no attribute %q", ErrNoSuchProperty, r.Type(), p.name)
		}
		return fromStarlark(v)
	}
	return p.fallback.Get(receiver)
}

func (p property) Set(receiver, value any) (any, error) {
	switch receiver.(type) {
	case starlarkLib.StringDict, starlarkLib.HasSetKey, starlarkLib.HasSetField:
	default:
		return p.fallback.Set(receiver, value)
	}

	sv, err := FromGo(value)
	if err != nil {
		return nil, fmt.Errorf("assigning %q: %w", p.name, err)
	}
	switch r := receiver.(type) {
	case starlarkLib.StringDict:
		r[p.name] = sv
	case starlarkLib.HasSetKey:
		err = r.SetKey(starlarkLib.String(p.name), sv)
	case starlarkLib.HasSetField:
		err = r.SetField(p.name, sv)
	}
	if err != nil {
		return nil, fmt.Errorf("assigning %q: %w", p.name, err)
	}
	return value, nil
}

// Method returns the invoker for name. It calls a callable attribute of a
// Starlark receiver, or a callable stored under name in module globals or a
// dict. Other receivers are handled by native.Method.
func Method(name string) ast.Invoker {
	fallback := native.Method(name)
	return ast.InvokerFunc(func(receiver any, args []any) (any, error) {
		var fn starlarkLib.Value
		switch r := receiver.(type) {
		case starlarkLib.StringDict:
			fn = r[name]
		case starlarkLib.HasAttrs:
			attr, err := r.Attr(name)
			if err != nil {
				return nil, fmt.Errorf("%w: %q: %w", ErrNoSuchProperty, name, err)
			}
			fn = attr
			if m, ok := r.(starlarkLib.Mapping); ok && fn == nil {
				if fn, _, err = m.Get(starlarkLib.String(name)); err != nil {
					return nil, fmt.Errorf("%w: %q: %w", ErrNoSuchProperty, name, err)
				}
			}
		case starlarkLib.Mapping:
			v, _, err := r.Get(starlarkLib.String(name))
			if err != nil {
				return nil, fmt.Errorf("%w: %q: %w", ErrNoSuchProperty, name, err)
			}
			fn = v
		default:
			return fallback.Invoke(receiver, args)
		}

		c, ok := fn.(starlarkLib.Callable)
		if !ok {
			return nil, fmt.Errorf("%w: %q is %v", ast.ErrNotAFunction, name, fn)
		}
		return call(c, args)
	})
}

// Callable wraps a Starlark function so it can be bound in a scope and
// called from an expression. Each call runs on its own thread.
func Callable(fn starlarkLib.Callable) ast.Callable {
	return &callable{fn: fn}
}

type callable struct {
	fn starlarkLib.Callable
}

func (c *callable) Call(args []any) (any, error) {
	return call(c.fn, args)
}

func (c *callable) String() string {
	return c.fn.Name()
}

func call(fn starlarkLib.Callable, args []any) (any, error) {
	in := make(starlarkLib.Tuple, len(args))
	for i, a := range args {
		v, err := FromGo(a)
		if err != nil {
			return nil, fmt.Errorf("%s: argument %d: %w", fn.Name(), i, err)
		}
		in[i] = v
	}

	thread := &starlarkLib.Thread{Name: threadName}
	out, err := starlarkLib.Call(thread, fn, in, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCallFailed, err)
	}
	return fromStarlark(out)
}
