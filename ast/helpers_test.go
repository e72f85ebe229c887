package ast

import (
	"fmt"
)

// mapProperty is a stand-in for the compiled accessor of name on
// map[string]any receivers.
func mapProperty(name string) Accessor {
	return AccessorFuncs{
		GetFunc: func(receiver any) (any, error) {
			m, ok := receiver.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("receiver %T is not a map", receiver)
			}
			return m[name], nil
		},
		SetFunc: func(receiver, value any) (any, error) {
			m, ok := receiver.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("receiver %T is not a map", receiver)
			}
			m[name] = value
			return value, nil
		},
	}
}

// mapMethod invokes the callable stored under name in a map receiver.
func mapMethod(name string) Invoker {
	return InvokerFunc(func(receiver any, args []any) (any, error) {
		m, ok := receiver.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("receiver %T is not a map", receiver)
		}
		return call(m[name], args)
	})
}

func lit(v any) *LiteralPrimitive { return NewLiteralPrimitive(v) }

func ident(name string) *MemberAccess {
	return NewMemberAccess(NewImplicitReceiver(), name, mapProperty(name))
}

// recorder is an expression that logs each evaluation and returns value.
type recorder struct {
	readOnly
	log   *[]any
	tag   any
	value any
}

func record(log *[]any, tag, value any) *recorder {
	return &recorder{log: log, tag: tag, value: value}
}

func (r *recorder) Eval(scope any) (any, error) {
	*r.log = append(*r.log, r.tag)
	return r.value, nil
}

func (r *recorder) Visit(v Visitor) any { return nil }

// failing is an expression whose evaluation always fails.
type failing struct {
	readOnly
	err error
}

func (f failing) Eval(scope any) (any, error) { return nil, f.err }

func (f failing) Visit(v Visitor) any { return nil }
