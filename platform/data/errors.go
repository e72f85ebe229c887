package data

import "errors"

var (
	// ErrStaticProviderNoRuntimeUpdates is returned by StaticProvider when
	// asked to store runtime data.
	ErrStaticProviderNoRuntimeUpdates = errors.New("static provider does not accept runtime data")

	ErrEmptyContextKey = errors.New("context key is empty")
	ErrEmptyKey        = errors.New("empty keys are not allowed")
	ErrInvalidData     = errors.New("invalid data in context")
	ErrNoProvider      = errors.New("no data provider available")
)
