package ast

import "fmt"

// Accessor reads and writes one named property. Accessors are produced by a
// compile step and bound to a MemberAccess node; the receiver they see has
// already been unwrapped from any binding frames.
type Accessor interface {
	Get(receiver any) (any, error)
	Set(receiver, value any) (any, error)
}

// Invoker calls one named method on a receiver.
type Invoker interface {
	Invoke(receiver any, args []any) (any, error)
}

// AccessorFuncs adapts a pair of functions to Accessor. SetFunc may be nil,
// in which case the property is read-only.
type AccessorFuncs struct {
	GetFunc func(receiver any) (any, error)
	SetFunc func(receiver, value any) (any, error)
}

func (a AccessorFuncs) Get(receiver any) (any, error) {
	if a.GetFunc == nil {
		return nil, fmt.Errorf("%w: no getter", ErrUnsupportedOperation)
	}
	return a.GetFunc(receiver)
}

func (a AccessorFuncs) Set(receiver, value any) (any, error) {
	if a.SetFunc == nil {
		return nil, fmt.Errorf("%w: no setter", ErrUnsupportedOperation)
	}
	return a.SetFunc(receiver, value)
}

// InvokerFunc adapts a function to Invoker.
type InvokerFunc func(receiver any, args []any) (any, error)

func (f InvokerFunc) Invoke(receiver any, args []any) (any, error) {
	return f(receiver, args)
}
