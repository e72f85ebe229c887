package ast

import (
	"cmp"
	"fmt"
	"math"
)

// Callable is a value that can be called from a MethodCall binding or a
// FunctionCall.
type Callable interface {
	Call(args []any) (any, error)
}

// Func adapts a function to Callable.
type Func func(args []any) (any, error)

func (f Func) Call(args []any) (any, error) { return f(args) }

// AsCallable reports whether v can be called and returns it as a Callable.
func AsCallable(v any) (Callable, bool) {
	switch fn := v.(type) {
	case Callable:
		return fn, true
	case func([]any) (any, error):
		return Func(fn), true
	default:
		return nil, false
	}
}

func call(fn any, args []any) (any, error) {
	c, ok := AsCallable(fn)
	if !ok {
		return nil, fmt.Errorf("%w: %v", ErrNotAFunction, fn)
	}
	return c.Call(args)
}

// IsAbsent reports whether v carries no value. Only the nil interface is
// absent: typed nil pointers, false, zero and "" are values.
func IsAbsent(v any) bool {
	return v == nil
}

// Truthy converts v to a boolean for conditions and logical operators.
func Truthy(v any) bool {
	switch x := v.(type) {
	case nil:
		return false
	case bool:
		return x
	case string:
		return x != ""
	case float32:
		return x != 0 && !math.IsNaN(float64(x))
	case float64:
		return x != 0 && !math.IsNaN(x)
	}
	if n, ok := toInt64(v); ok {
		return n != 0
	}
	return true
}

func toInt64(v any) (int64, bool) {
	switch x := v.(type) {
	case int:
		return int64(x), true
	case int8:
		return int64(x), true
	case int16:
		return int64(x), true
	case int32:
		return int64(x), true
	case int64:
		return x, true
	case uint:
		return int64(x), uint64(x) <= math.MaxInt64
	case uint8:
		return int64(x), true
	case uint16:
		return int64(x), true
	case uint32:
		return int64(x), true
	case uint64:
		return int64(x), x <= math.MaxInt64
	}
	return 0, false
}

// largeUint returns v when it is an unsigned integer above math.MaxInt64.
func largeUint(v any) (uint64, bool) {
	var u uint64
	switch x := v.(type) {
	case uint:
		u = uint64(x)
	case uint64:
		u = x
	default:
		return 0, false
	}
	return u, u > math.MaxInt64
}

// compareInts orders two integer operands exactly, including unsigned values
// that do not fit in an int64.
func compareInts(left, right any) (int, bool) {
	lu, lbig := largeUint(left)
	ru, rbig := largeUint(right)
	switch {
	case lbig && rbig:
		return cmp.Compare(lu, ru), true
	case lbig:
		_, ok := toInt64(right)
		return 1, ok
	case rbig:
		_, ok := toInt64(left)
		return -1, ok
	}
	l, lok := toInt64(left)
	r, rok := toInt64(right)
	if !lok || !rok {
		return 0, false
	}
	return cmp.Compare(l, r), true
}

func toFloat64(v any) (float64, bool) {
	switch x := v.(type) {
	case float32:
		return float64(x), true
	case float64:
		return x, true
	}
	if u, ok := largeUint(v); ok {
		return float64(u), true
	}
	if n, ok := toInt64(v); ok {
		return float64(n), true
	}
	return 0, false
}
