package ast

import "errors"

var (
	ErrUnsupportedOperation  = errors.New("unsupported operation")
	ErrCannotReassignBinding = errors.New("cannot reassign a variable binding")
	ErrNotAFunction          = errors.New("not a function")
	ErrInvalidOperand        = errors.New("invalid operand")
	ErrIndex                 = errors.New("invalid index")
)

// ErrInternalInvariant is carried by the panic raised when a node holds state
// that the parser should never have produced, such as an unknown operator.
var ErrInternalInvariant = errors.New("internal invariant violation")
