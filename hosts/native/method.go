package native

import (
	"fmt"
	"reflect"

	"github.com/robbyt/go-bindexpr/ast"
)

var errorType = reflect.TypeFor[error]()

// Method returns the invoker for name. It calls a method of the receiver
// (matched like Property matches names) or, for map receivers, the function
// stored under name.
func Method(name string) ast.Invoker {
	exported := exportedName(name)
	return ast.InvokerFunc(func(receiver any, args []any) (any, error) {
		if receiver == nil {
			return nil, fmt.Errorf("%w: cannot call %q on nil", ErrNoSuchMethod, name)
		}

		val := reflect.ValueOf(receiver)
		if m, ok := method(val, name, exported); ok {
			return callReflect(m, args)
		}

		entry, err := Property(name).Get(receiver)
		if err != nil {
			return nil, fmt.Errorf("%w: %q on %T", ErrNoSuchMethod, name, receiver)
		}
		if fn, ok := ast.AsCallable(entry); ok {
			return fn.Call(args)
		}
		if fv := reflect.ValueOf(entry); fv.Kind() == reflect.Func && !fv.IsNil() {
			return callReflect(fv, args)
		}
		return nil, fmt.Errorf("%w: %q on %T is %T", ast.ErrNotAFunction, name, receiver, entry)
	})
}

// Func wraps any Go function as a Callable. Arguments are converted to the
// parameter types; a trailing error result is returned as the error. If fn
// is not a function every call fails with ErrArgument.
func Func(fn any) ast.Callable {
	if c, ok := ast.AsCallable(fn); ok {
		return c
	}
	fv := reflect.ValueOf(fn)
	if fv.Kind() != reflect.Func || fv.IsNil() {
		return ast.Func(func([]any) (any, error) {
			return nil, fmt.Errorf("%w: %T is not a function", ErrArgument, fn)
		})
	}
	return ast.Func(func(args []any) (any, error) {
		return callReflect(fv, args)
	})
}

func callReflect(fn reflect.Value, args []any) (any, error) {
	in, err := convertArgs(fn.Type(), args)
	if err != nil {
		return nil, err
	}

	out := fn.Call(in)
	t := fn.Type()
	if n := t.NumOut(); n > 0 && t.Out(n-1) == errorType {
		if e := out[n-1]; !e.IsNil() {
			return nil, e.Interface().(error)
		}
		out = out[:n-1]
	}

	switch len(out) {
	case 0:
		return nil, nil
	case 1:
		return out[0].Interface(), nil
	}
	results := make([]any, len(out))
	for i, o := range out {
		results[i] = o.Interface()
	}
	return results, nil
}

func convertArgs(t reflect.Type, args []any) ([]reflect.Value, error) {
	n := t.NumIn()
	if t.IsVariadic() {
		if len(args) < n-1 {
			return nil, fmt.Errorf("%w: want at least %d arguments, got %d", ErrArgument, n-1, len(args))
		}
	} else if len(args) != n {
		return nil, fmt.Errorf("%w: want %d arguments, got %d", ErrArgument, n, len(args))
	}

	in := make([]reflect.Value, len(args))
	for i, a := range args {
		var pt reflect.Type
		if t.IsVariadic() && i >= n-1 {
			pt = t.In(n - 1).Elem()
		} else {
			pt = t.In(i)
		}
		v, err := convertArg(a, pt)
		if err != nil {
			return nil, fmt.Errorf("argument %d: %w", i, err)
		}
		in[i] = v
	}
	return in, nil
}

// convertArg converts v to type t. Numeric kinds convert freely among each
// other; any other conversion needs matching kinds.
func convertArg(v any, t reflect.Type) (reflect.Value, error) {
	if v == nil {
		switch t.Kind() {
		case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface, reflect.Func, reflect.Chan:
			return reflect.Zero(t), nil
		}
		return reflect.Value{}, fmt.Errorf("%w: cannot use nil as %s", ErrArgument, t)
	}

	val := reflect.ValueOf(v)
	if val.Type().AssignableTo(t) {
		return val, nil
	}
	if (isNumeric(val.Kind()) && isNumeric(t.Kind())) || (val.Kind() == t.Kind() && val.CanConvert(t)) {
		return val.Convert(t), nil
	}
	if val.Kind() == reflect.Slice && t.Kind() == reflect.Slice {
		out := reflect.MakeSlice(t, val.Len(), val.Len())
		for i := range val.Len() {
			e, err := convertArg(val.Index(i).Interface(), t.Elem())
			if err != nil {
				return reflect.Value{}, err
			}
			out.Index(i).Set(e)
		}
		return out, nil
	}
	return reflect.Value{}, fmt.Errorf("%w: cannot use %T as %s", ErrArgument, v, t)
}

func isNumeric(k reflect.Kind) bool {
	return k >= reflect.Int && k <= reflect.Float64
}
