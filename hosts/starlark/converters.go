package starlark

import (
	"fmt"

	starlarkLib "go.starlark.net/starlark"

	"github.com/robbyt/go-bindexpr/ast"
)

// ToGo converts a Starlark value to plain Go data. Integers become int64,
// lists, tuples and sets become []any, dicts and structs become
// map[string]any and callables become ast.Callable.
func ToGo(v starlarkLib.Value) (any, error) {
	switch v := v.(type) {
	case nil, starlarkLib.NoneType:
		return nil, nil
	case starlarkLib.Bool:
		return bool(v), nil
	case starlarkLib.Int:
		i, ok := v.Int64()
		if !ok {
			return nil, fmt.Errorf("%w: integer %s overflows int64", ErrUnsupportedType, v)
		}
		return i, nil
	case starlarkLib.Float:
		return float64(v), nil
	case starlarkLib.String:
		return string(v), nil
	case *starlarkLib.List:
		return iterableToGo(v, v.Len())
	case starlarkLib.Tuple:
		return iterableToGo(v, v.Len())
	case *starlarkLib.Set:
		return iterableToGo(v, v.Len())
	case *starlarkLib.Dict:
		out := make(map[string]any, v.Len())
		for _, item := range v.Items() {
			key, ok := starlarkLib.AsString(item[0])
			if !ok {
				key = item[0].String()
			}
			val, err := ToGo(item[1])
			if err != nil {
				return nil, fmt.Errorf("dict value %q: %w", key, err)
			}
			out[key] = val
		}
		return out, nil
	case starlarkLib.Callable:
		return Callable(v), nil
	case starlarkLib.HasAttrs:
		names := v.AttrNames()
		out := make(map[string]any, len(names))
		for _, name := range names {
			attr, err := v.Attr(name)
			if err != nil {
				return nil, fmt.Errorf("attribute %q: %w", name, err)
			}
			val, err := ToGo(attr)
			if err != nil {
				return nil, fmt.Errorf("attribute %q: %w", name, err)
			}
			out[name] = val
		}
		return out, nil
	}
	return nil, fmt.Errorf("%w: starlark %s", ErrUnsupportedType, v.Type())
}

func iterableToGo(v starlarkLib.Iterable, n int) ([]any, error) {
	out := make([]any, 0, n)
	iter := v.Iterate()
	defer iter.Done()
	var elem starlarkLib.Value
	for iter.Next(&elem) {
		val, err := ToGo(elem)
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", len(out), err)
		}
		out = append(out, val)
	}
	return out, nil
}

// FromGo converts a Go value to a Starlark value. Starlark values pass
// through unchanged and ast.Callable values become builtins.
func FromGo(v any) (starlarkLib.Value, error) {
	switch val := v.(type) {
	case nil:
		return starlarkLib.None, nil
	case starlarkLib.Value:
		return val, nil
	case bool:
		return starlarkLib.Bool(val), nil
	case int:
		return starlarkLib.MakeInt(val), nil
	case int32:
		return starlarkLib.MakeInt64(int64(val)), nil
	case int64:
		return starlarkLib.MakeInt64(val), nil
	case uint:
		return starlarkLib.MakeUint(val), nil
	case uint64:
		return starlarkLib.MakeUint64(val), nil
	case float32:
		return starlarkLib.Float(val), nil
	case float64:
		return starlarkLib.Float(val), nil
	case string:
		return starlarkLib.String(val), nil
	case []string:
		elems := make([]starlarkLib.Value, len(val))
		for i, s := range val {
			elems[i] = starlarkLib.String(s)
		}
		return starlarkLib.NewList(elems), nil
	case []any:
		elems := make([]starlarkLib.Value, len(val))
		for i, elem := range val {
			sv, err := FromGo(elem)
			if err != nil {
				return nil, fmt.Errorf("list element %d: %w", i, err)
			}
			elems[i] = sv
		}
		return starlarkLib.NewList(elems), nil
	case map[string]struct{}:
		set := starlarkLib.NewSet(len(val))
		for k := range val {
			if err := set.Insert(starlarkLib.String(k)); err != nil {
				return nil, fmt.Errorf("set element %q: %w", k, err)
			}
		}
		return set, nil
	case map[string][]string:
		dict := starlarkLib.NewDict(len(val))
		for k, values := range val {
			list, _ := FromGo(values)
			if err := dict.SetKey(starlarkLib.String(k), list); err != nil {
				return nil, fmt.Errorf("dict key %q: %w", k, err)
			}
		}
		return dict, nil
	case map[string]any:
		dict := starlarkLib.NewDict(len(val))
		for k, elem := range val {
			sv, err := FromGo(elem)
			if err != nil {
				return nil, fmt.Errorf("dict value %q: %w", k, err)
			}
			if err := dict.SetKey(starlarkLib.String(k), sv); err != nil {
				return nil, fmt.Errorf("dict key %q: %w", k, err)
			}
		}
		return dict, nil
	case *callable:
		return val.fn, nil
	case ast.Callable:
		return builtin(val), nil
	case func([]any) (any, error):
		return builtin(ast.Func(val)), nil
	}
	return nil, fmt.Errorf("%w: %T", ErrUnsupportedType, v)
}

func builtin(c ast.Callable) *starlarkLib.Builtin {
	name := fmt.Sprintf("%T", c)
	if s, ok := c.(fmt.Stringer); ok {
		name = s.String()
	}
	return starlarkLib.NewBuiltin(name, func(_ *starlarkLib.Thread, b *starlarkLib.Builtin, args starlarkLib.Tuple, kwargs []starlarkLib.Tuple) (starlarkLib.Value, error) {
		if len(kwargs) > 0 {
			return nil, fmt.Errorf("%s: %w", b.Name(), ErrKeywordArgs)
		}
		in := make([]any, len(args))
		for i, a := range args {
			v, err := ToGo(a)
			if err != nil {
				return nil, fmt.Errorf("%s: argument %d: %w", b.Name(), i, err)
			}
			in[i] = v
		}
		out, err := c.Call(in)
		if err != nil {
			return nil, err
		}
		return FromGo(out)
	})
}

// fromStarlark converts a result for use in an expression. Dicts and
// attribute-bearing values are returned as is so that further property
// access and assignment reach the original.
func fromStarlark(v starlarkLib.Value) (any, error) {
	switch v := v.(type) {
	case nil, starlarkLib.NoneType, starlarkLib.Bool, starlarkLib.Int, starlarkLib.Float, starlarkLib.String,
		*starlarkLib.List, starlarkLib.Tuple, *starlarkLib.Set:
		return ToGo(v)
	case starlarkLib.Callable:
		return Callable(v), nil
	case starlarkLib.Mapping, starlarkLib.HasAttrs:
		return v, nil
	}
	return ToGo(v)
}
