package ast

import (
	"fmt"
	"reflect"
)

// Indexable is implemented by host values that handle obj[key] themselves.
type Indexable interface {
	GetIndex(key any) (any, error)
	SetIndex(key, value any) error
}

func indexGet(obj, key any) (any, error) {
	switch o := obj.(type) {
	case nil:
		return nil, fmt.Errorf("%w: cannot index nil with %v", ErrIndex, key)
	case Indexable:
		return o.GetIndex(key)
	case map[string]any:
		return o[fmt.Sprint(key)], nil
	case []any:
		i, err := sliceIndex(key, len(o))
		if err != nil {
			return nil, err
		}
		return o[i], nil
	}

	val := reflect.ValueOf(obj)
	for val.Kind() == reflect.Pointer || val.Kind() == reflect.Interface {
		if val.IsNil() {
			return nil, fmt.Errorf("%w: cannot index nil %T", ErrIndex, obj)
		}
		val = val.Elem()
	}
	switch val.Kind() {
	case reflect.Map:
		k, err := convertTo(key, val.Type().Key())
		if err != nil {
			return nil, err
		}
		elem := val.MapIndex(k)
		if !elem.IsValid() {
			return nil, nil
		}
		return elem.Interface(), nil
	case reflect.String:
		runes := []rune(val.String())
		i, err := sliceIndex(key, len(runes))
		if err != nil {
			return nil, err
		}
		return string(runes[i]), nil
	case reflect.Slice, reflect.Array:
		i, err := sliceIndex(key, val.Len())
		if err != nil {
			return nil, err
		}
		return val.Index(i).Interface(), nil
	}
	return nil, fmt.Errorf("%w: cannot index %T", ErrIndex, obj)
}

func indexSet(obj, key, value any) error {
	switch o := obj.(type) {
	case nil:
		return fmt.Errorf("%w: cannot assign index %v on nil", ErrIndex, key)
	case Indexable:
		return o.SetIndex(key, value)
	case map[string]any:
		o[fmt.Sprint(key)] = value
		return nil
	case []any:
		i, err := sliceIndex(key, len(o))
		if err != nil {
			return err
		}
		o[i] = value
		return nil
	}

	val := reflect.ValueOf(obj)
	for val.Kind() == reflect.Pointer || val.Kind() == reflect.Interface {
		if val.IsNil() {
			return fmt.Errorf("%w: cannot assign index on nil %T", ErrIndex, obj)
		}
		val = val.Elem()
	}
	switch val.Kind() {
	case reflect.Map:
		if val.IsNil() {
			return fmt.Errorf("%w: cannot assign index on nil map %T", ErrIndex, obj)
		}
		k, err := convertTo(key, val.Type().Key())
		if err != nil {
			return err
		}
		v, err := convertTo(value, val.Type().Elem())
		if err != nil {
			return err
		}
		val.SetMapIndex(k, v)
		return nil
	case reflect.Slice, reflect.Array:
		i, err := sliceIndex(key, val.Len())
		if err != nil {
			return err
		}
		elem := val.Index(i)
		if !elem.CanSet() {
			return fmt.Errorf("%w: element %d of %T is not addressable", ErrIndex, i, obj)
		}
		v, err := convertTo(value, elem.Type())
		if err != nil {
			return err
		}
		elem.Set(v)
		return nil
	}
	return fmt.Errorf("%w: cannot assign index on %T", ErrIndex, obj)
}

func sliceIndex(key any, length int) (int, error) {
	if isFloat(key) {
		f, _ := toFloat64(key)
		if f != float64(int64(f)) {
			return 0, fmt.Errorf("%w: non-integer index %v", ErrIndex, key)
		}
		key = int64(f)
	}
	n, ok := toInt64(key)
	if !ok {
		return 0, fmt.Errorf("%w: index must be an integer, got %T", ErrIndex, key)
	}
	if n < 0 || n >= int64(length) {
		return 0, fmt.Errorf("%w: index %d out of range [0:%d]", ErrIndex, n, length)
	}
	return int(n), nil
}

// convertTo converts v to a value assignable to t, using Go conversion rules
// for numeric and string kinds.
func convertTo(v any, t reflect.Type) (reflect.Value, error) {
	if v == nil {
		switch t.Kind() {
		case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface, reflect.Func, reflect.Chan:
			return reflect.Zero(t), nil
		}
		return reflect.Value{}, fmt.Errorf("%w: cannot use nil as %s", ErrInvalidOperand, t)
	}
	val := reflect.ValueOf(v)
	if val.Type().AssignableTo(t) {
		return val, nil
	}
	if val.CanConvert(t) && convertibleKinds(val.Kind(), t.Kind()) {
		return val.Convert(t), nil
	}
	return reflect.Value{}, fmt.Errorf("%w: cannot use %T as %s", ErrInvalidOperand, v, t)
}

// convertibleKinds rejects conversions Go allows but that lose meaning here,
// such as int to string.
func convertibleKinds(from, to reflect.Kind) bool {
	numeric := func(k reflect.Kind) bool {
		return k >= reflect.Int && k <= reflect.Float64
	}
	if numeric(from) && numeric(to) {
		return true
	}
	return from == to
}
