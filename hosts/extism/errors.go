package extism

import "errors"

var (
	ErrContentNil       = errors.New("wasm content is empty")
	ErrInvalidBinary    = errors.New("invalid WASM binary (must be base64 encoded)")
	ErrCompileFailed    = errors.New("failed to compile wasm plugin")
	ErrNilPlugin        = errors.New("plugin is nil")
	ErrEmptyExport      = errors.New("export name is empty")
	ErrFunctionNotFound = errors.New("export not found in plugin")
	ErrEncodeArgs       = errors.New("failed to encode arguments")
	ErrCallFailed       = errors.New("plugin call failed")
)
