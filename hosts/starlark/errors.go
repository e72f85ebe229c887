package starlark

import "errors"

var (
	ErrNoSuchProperty  = errors.New("no such starlark attribute")
	ErrUnsupportedType = errors.New("unsupported type")
	ErrKeywordArgs     = errors.New("keyword arguments are not supported")
	ErrCallFailed      = errors.New("starlark call failed")
	ErrLoadFailed      = errors.New("starlark module failed to load")
)
