// Package ast defines the expression tree of the binding language and its
// evaluation semantics.
//
// A tree is produced upstream by a parser and a compile pass that attaches
// property accessors and method invokers to the nodes that need them. Once
// built, a tree is immutable and may be evaluated any number of times, against
// any number of scopes, from any number of goroutines. Every effect of an
// evaluation happens through the scope value or the attached accessors.
package ast

import "fmt"

// Expression is implemented by every node of the tree.
type Expression interface {
	// Eval evaluates the node against scope and returns the result.
	Eval(scope any) (any, error)

	// Assign writes value through the node into scope and returns the value
	// that was stored. Only nodes reporting IsAssignable support it.
	Assign(scope, value any) (any, error)

	// IsAssignable reports whether Assign is supported.
	IsAssignable() bool

	// Visit dispatches to the matching method of v, exactly once, and returns
	// its result. Children are not visited.
	Visit(v Visitor) any
}

// readOnly supplies the default assignment behaviour.
type readOnly struct{}

func (readOnly) Assign(scope, value any) (any, error) {
	return nil, fmt.Errorf("%w: expression is not assignable", ErrUnsupportedOperation)
}

func (readOnly) IsAssignable() bool { return false }

// EmptyExpression stands for a missing expression, such as an elided branch.
type EmptyExpression struct {
	readOnly
}

// NewEmptyExpression returns an EmptyExpression.
func NewEmptyExpression() *EmptyExpression {
	return &EmptyExpression{}
}

func (e *EmptyExpression) Eval(scope any) (any, error) { return nil, nil }

// Visit does not dispatch.
func (e *EmptyExpression) Visit(v Visitor) any { return nil }

// ImplicitReceiver is the receiver of a bare identifier: the scope itself.
type ImplicitReceiver struct {
	readOnly
}

// NewImplicitReceiver returns an ImplicitReceiver.
func NewImplicitReceiver() *ImplicitReceiver {
	return &ImplicitReceiver{}
}

func (i *ImplicitReceiver) Eval(scope any) (any, error) { return scope, nil }

func (i *ImplicitReceiver) Visit(v Visitor) any { return v.VisitImplicitReceiver(i) }

// Chain is a sequence of expressions separated by semicolons.
type Chain struct {
	readOnly
	Expressions []Expression
}

// NewChain returns a Chain of the given expressions.
func NewChain(expressions ...Expression) *Chain {
	return &Chain{Expressions: expressions}
}

// Eval evaluates every expression in order. The result is the last result
// that was not absent.
func (c *Chain) Eval(scope any) (any, error) {
	var result any
	for _, exp := range c.Expressions {
		last, err := exp.Eval(scope)
		if err != nil {
			return nil, err
		}
		if !IsAbsent(last) {
			result = last
		}
	}
	return result, nil
}

func (c *Chain) Visit(v Visitor) any { return v.VisitChain(c) }

// Conditional is the ternary operator.
type Conditional struct {
	readOnly
	Condition Expression
	TrueExp   Expression
	FalseExp  Expression
}

// NewConditional returns a Conditional.
func NewConditional(condition, trueExp, falseExp Expression) *Conditional {
	return &Conditional{Condition: condition, TrueExp: trueExp, FalseExp: falseExp}
}

// Eval evaluates exactly one branch.
func (c *Conditional) Eval(scope any) (any, error) {
	cond, err := c.Condition.Eval(scope)
	if err != nil {
		return nil, err
	}
	if Truthy(cond) {
		return c.TrueExp.Eval(scope)
	}
	return c.FalseExp.Eval(scope)
}

func (c *Conditional) Visit(v Visitor) any { return v.VisitConditional(c) }

// Pipe marks the application of a named transform. Pipes are replaced by a
// later compile pass and cannot be evaluated.
type Pipe struct {
	readOnly
	Exp  Expression
	Name string
	Args []Expression
}

// NewPipe returns a Pipe.
func NewPipe(exp Expression, name string, args ...Expression) *Pipe {
	return &Pipe{Exp: exp, Name: name, Args: args}
}

func (p *Pipe) Eval(scope any) (any, error) {
	return nil, fmt.Errorf("%w: pipe %q must be lowered before evaluation", ErrUnsupportedOperation, p.Name)
}

func (p *Pipe) Visit(v Visitor) any { return v.VisitPipe(p) }

// LiteralPrimitive is a constant.
type LiteralPrimitive struct {
	readOnly
	Value any
}

// NewLiteralPrimitive returns a LiteralPrimitive holding value.
func NewLiteralPrimitive(value any) *LiteralPrimitive {
	return &LiteralPrimitive{Value: value}
}

func (l *LiteralPrimitive) Eval(scope any) (any, error) { return l.Value, nil }

func (l *LiteralPrimitive) Visit(v Visitor) any { return v.VisitLiteralPrimitive(l) }

// LiteralArray evaluates to a []any.
type LiteralArray struct {
	readOnly
	Expressions []Expression
}

// NewLiteralArray returns a LiteralArray.
func NewLiteralArray(expressions ...Expression) *LiteralArray {
	return &LiteralArray{Expressions: expressions}
}

func (l *LiteralArray) Eval(scope any) (any, error) {
	return evalArgs(scope, l.Expressions)
}

func (l *LiteralArray) Visit(v Visitor) any { return v.VisitLiteralArray(l) }

// LiteralMap evaluates to a map[string]any. Keys and Values are parallel.
type LiteralMap struct {
	readOnly
	Keys   []string
	Values []Expression
}

// NewLiteralMap returns a LiteralMap. It panics if the slices differ in
// length.
func NewLiteralMap(keys []string, values []Expression) *LiteralMap {
	if len(keys) != len(values) {
		panic(fmt.Errorf("%w: literal map has %d keys and %d values",
			ErrInternalInvariant, len(keys), len(values)))
	}
	return &LiteralMap{Keys: keys, Values: values}
}

func (l *LiteralMap) Eval(scope any) (any, error) {
	res := make(map[string]any, len(l.Keys))
	for i, key := range l.Keys {
		val, err := l.Values[i].Eval(scope)
		if err != nil {
			return nil, err
		}
		res[key] = val
	}
	return res, nil
}

func (l *LiteralMap) Visit(v Visitor) any { return v.VisitLiteralMap(l) }

// Interpolation interleaves literal text with expressions:
// len(Strings) == len(Expressions)+1. It is lowered into string
// concatenation elsewhere and cannot be evaluated.
type Interpolation struct {
	readOnly
	Strings     []string
	Expressions []Expression
}

// NewInterpolation returns an Interpolation. It panics if the segment count
// does not match the expression count.
func NewInterpolation(strings []string, expressions []Expression) *Interpolation {
	if len(strings) != len(expressions)+1 {
		panic(fmt.Errorf("%w: interpolation has %d segments for %d expressions",
			ErrInternalInvariant, len(strings), len(expressions)))
	}
	return &Interpolation{Strings: strings, Expressions: expressions}
}

func (i *Interpolation) Eval(scope any) (any, error) {
	return nil, fmt.Errorf("%w: evaluating an interpolation", ErrUnsupportedOperation)
}

// Visit dispatches for side effects only; the visitor's result is dropped.
func (i *Interpolation) Visit(v Visitor) any {
	v.VisitInterpolation(i)
	return nil
}

// LogicalNot is the prefix ! operator.
type LogicalNot struct {
	readOnly
	Expression Expression
}

// NewLogicalNot returns a LogicalNot.
func NewLogicalNot(expression Expression) *LogicalNot {
	return &LogicalNot{Expression: expression}
}

func (n *LogicalNot) Eval(scope any) (any, error) {
	val, err := n.Expression.Eval(scope)
	if err != nil {
		return nil, err
	}
	return !Truthy(val), nil
}

func (n *LogicalNot) Visit(v Visitor) any { return v.VisitLogicalNot(n) }

// Assignment writes the result of Value through Target.
type Assignment struct {
	readOnly
	Target Expression
	Value  Expression
}

// NewAssignment returns an Assignment.
func NewAssignment(target, value Expression) *Assignment {
	return &Assignment{Target: target, Value: value}
}

func (a *Assignment) Eval(scope any) (any, error) {
	val, err := a.Value.Eval(scope)
	if err != nil {
		return nil, err
	}
	return a.Target.Assign(scope, val)
}

func (a *Assignment) Visit(v Visitor) any { return v.VisitAssignment(a) }
