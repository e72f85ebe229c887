package ast

import (
	"maps"
	"slices"
)

// Bindings is a scope frame that declares local names. Member access and
// method calls consult the frames of a scope, innermost first, before falling
// back to the compiled accessor.
type Bindings interface {
	HasBinding(name string) bool
	Get(name string) any
	// Parent is the next outer scope: another frame or a plain value.
	Parent() any
}

// Locals is the standard Bindings frame. It is created by the construct that
// introduces the names (for example a repeated item) and only referenced by
// the evaluator.
type Locals struct {
	parent any
	values map[string]any
}

// NewLocals returns a frame over parent. values is copied.
func NewLocals(parent any, values map[string]any) *Locals {
	l := &Locals{
		parent: parent,
		values: make(map[string]any, len(values)),
	}
	maps.Copy(l.values, values)
	return l
}

// Parent returns the outer scope. A nil frame has no parent.
func (l *Locals) Parent() any {
	if l == nil {
		return nil
	}
	return l.parent
}

func (l *Locals) HasBinding(name string) bool {
	if l == nil {
		return false
	}
	_, ok := l.values[name]
	return ok
}

// Get returns the bound value, or nil if name is not bound here.
func (l *Locals) Get(name string) any {
	if l == nil {
		return nil
	}
	return l.values[name]
}

// Set binds name in this frame. It is meant for the owner of the frame;
// expressions cannot rebind locals.
func (l *Locals) Set(name string, value any) {
	l.values[name] = value
}

// ClearValues resets every bound name to nil while keeping it bound.
func (l *Locals) ClearValues() {
	for k := range l.values {
		l.values[k] = nil
	}
}

// Names returns the bound names in sorted order.
func (l *Locals) Names() []string {
	if l == nil {
		return nil
	}
	return slices.Sorted(maps.Keys(l.values))
}

// resolve walks the frames of scope looking for name. If a frame binds it,
// found is true and value holds the binding. Otherwise target is the first
// value in the chain that is not a frame.
func resolve(scope any, name string) (value any, found bool, target any) {
	for {
		frame, ok := scope.(Bindings)
		if !ok {
			return nil, false, scope
		}
		if frame.HasBinding(name) {
			return frame.Get(name), true, nil
		}
		scope = frame.Parent()
	}
}

// Unwrap returns the first value in the chain of scope that is not a frame.
func Unwrap(scope any) any {
	for {
		frame, ok := scope.(Bindings)
		if !ok {
			return scope
		}
		scope = frame.Parent()
	}
}
