package native

import "errors"

var (
	ErrNoSuchProperty = errors.New("no such property")
	ErrNoSuchMethod   = errors.New("no such method")
	ErrArgument       = errors.New("invalid argument")
)
