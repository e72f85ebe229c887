package ast

import "fmt"

// MemberAccess reads Name from the value of Receiver.
type MemberAccess struct {
	Receiver Expression
	Name     string
	Accessor Accessor
}

// NewMemberAccess returns a MemberAccess using accessor for the fallback
// property lookup.
func NewMemberAccess(receiver Expression, name string, accessor Accessor) *MemberAccess {
	return &MemberAccess{Receiver: receiver, Name: name, Accessor: accessor}
}

// Eval returns the innermost binding of Name in the receiver's frames, or the
// property read through the accessor when no frame binds it.
func (m *MemberAccess) Eval(scope any) (any, error) {
	receiver, err := m.Receiver.Eval(scope)
	if err != nil {
		return nil, err
	}
	value, found, target := resolve(receiver, m.Name)
	if found {
		return value, nil
	}
	if m.Accessor == nil {
		return nil, fmt.Errorf("%w: no accessor for %q", ErrUnsupportedOperation, m.Name)
	}
	return m.Accessor.Get(target)
}

func (m *MemberAccess) IsAssignable() bool { return true }

// Assign fails if any frame binds Name; otherwise it writes through the
// accessor.
func (m *MemberAccess) Assign(scope, value any) (any, error) {
	receiver, err := m.Receiver.Eval(scope)
	if err != nil {
		return nil, err
	}
	_, found, target := resolve(receiver, m.Name)
	if found {
		return nil, fmt.Errorf("%w %s", ErrCannotReassignBinding, m.Name)
	}
	if m.Accessor == nil {
		return nil, fmt.Errorf("%w: no accessor for %q", ErrUnsupportedOperation, m.Name)
	}
	return m.Accessor.Set(target, value)
}

func (m *MemberAccess) Visit(v Visitor) any { return v.VisitMemberAccess(m) }

// IndexAccess is obj[key].
type IndexAccess struct {
	Object Expression
	Key    Expression
}

// NewIndexAccess returns an IndexAccess.
func NewIndexAccess(object, key Expression) *IndexAccess {
	return &IndexAccess{Object: object, Key: key}
}

func (k *IndexAccess) operands(scope any) (any, any, error) {
	obj, err := k.Object.Eval(scope)
	if err != nil {
		return nil, nil, err
	}
	key, err := k.Key.Eval(scope)
	if err != nil {
		return nil, nil, err
	}
	return obj, key, nil
}

func (k *IndexAccess) Eval(scope any) (any, error) {
	obj, key, err := k.operands(scope)
	if err != nil {
		return nil, err
	}
	return indexGet(obj, key)
}

func (k *IndexAccess) IsAssignable() bool { return true }

func (k *IndexAccess) Assign(scope, value any) (any, error) {
	obj, key, err := k.operands(scope)
	if err != nil {
		return nil, err
	}
	if err := indexSet(obj, key, value); err != nil {
		return nil, err
	}
	return value, nil
}

func (k *IndexAccess) Visit(v Visitor) any { return v.VisitIndexAccess(k) }

// MethodCall is receiver.name(args...).
type MethodCall struct {
	readOnly
	Receiver Expression
	Name     string
	Invoker  Invoker
	Args     []Expression
}

// NewMethodCall returns a MethodCall using invoker for the fallback method
// lookup.
func NewMethodCall(receiver Expression, name string, invoker Invoker, args ...Expression) *MethodCall {
	return &MethodCall{Receiver: receiver, Name: name, Invoker: invoker, Args: args}
}

// Eval evaluates the receiver, then the arguments, then calls either the
// innermost binding of Name or the compiled invoker.
func (m *MethodCall) Eval(scope any) (any, error) {
	receiver, err := m.Receiver.Eval(scope)
	if err != nil {
		return nil, err
	}
	args, err := evalArgs(scope, m.Args)
	if err != nil {
		return nil, err
	}
	fn, found, target := resolve(receiver, m.Name)
	if found {
		return call(fn, args)
	}
	if m.Invoker == nil {
		return nil, fmt.Errorf("%w: no invoker for %q", ErrUnsupportedOperation, m.Name)
	}
	return m.Invoker.Invoke(target, args)
}

func (m *MethodCall) Visit(v Visitor) any { return v.VisitMethodCall(m) }

// FunctionCall calls the value of Target.
type FunctionCall struct {
	readOnly
	Target Expression
	Args   []Expression
}

// NewFunctionCall returns a FunctionCall.
func NewFunctionCall(target Expression, args ...Expression) *FunctionCall {
	return &FunctionCall{Target: target, Args: args}
}

// Eval fails with ErrNotAFunction before touching the arguments when the
// target is not callable.
func (f *FunctionCall) Eval(scope any) (any, error) {
	obj, err := f.Target.Eval(scope)
	if err != nil {
		return nil, err
	}
	fn, ok := AsCallable(obj)
	if !ok {
		return nil, fmt.Errorf("%w: %v", ErrNotAFunction, obj)
	}
	args, err := evalArgs(scope, f.Args)
	if err != nil {
		return nil, err
	}
	return fn.Call(args)
}

func (f *FunctionCall) Visit(v Visitor) any { return v.VisitFunctionCall(f) }

// evalArgs evaluates exps in order into a freshly allocated slice. Call sites
// may be reentered by the callee, so the slice is never shared.
func evalArgs(scope any, exps []Expression) ([]any, error) {
	result := make([]any, len(exps))
	for i, exp := range exps {
		val, err := exp.Eval(scope)
		if err != nil {
			return nil, err
		}
		result[i] = val
	}
	return result, nil
}
