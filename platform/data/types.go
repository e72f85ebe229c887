package data

import "reflect"

// Types classifies an evaluation result.
type Types string

const (
	BOOL     Types = "bool"
	ERROR    Types = "error"
	FUNCTION Types = "function"
	INT      Types = "int"
	MAP      Types = "map"
	STRING   Types = "string"
	NONE     Types = "none"
	FLOAT    Types = "float"
	LIST     Types = "list"
	OBJECT   Types = "object"
)

// callable matches ast.Callable without importing it.
type callable interface {
	Call(args []any) (any, error)
}

// TypeOf classifies a Go value produced by an evaluation.
func TypeOf(v any) Types {
	switch v.(type) {
	case nil:
		return NONE
	case bool:
		return BOOL
	case string:
		return STRING
	case error:
		return ERROR
	case callable:
		return FUNCTION
	}

	val := reflect.ValueOf(v)
	switch val.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return INT
	case reflect.Float32, reflect.Float64:
		return FLOAT
	case reflect.Map:
		return MAP
	case reflect.Slice, reflect.Array:
		return LIST
	case reflect.Func:
		return FUNCTION
	}
	return OBJECT
}
