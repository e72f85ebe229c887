package ast

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// typeVisitor returns the name of the visited node type.
type typeVisitor struct{}

func (typeVisitor) VisitMemberAccess(*MemberAccess) any         { return "MemberAccess" }
func (typeVisitor) VisitAssignment(*Assignment) any             { return "Assignment" }
func (typeVisitor) VisitBinaryOp(*BinaryOp) any                 { return "BinaryOp" }
func (typeVisitor) VisitChain(*Chain) any                       { return "Chain" }
func (typeVisitor) VisitConditional(*Conditional) any           { return "Conditional" }
func (typeVisitor) VisitPipe(*Pipe) any                         { return "Pipe" }
func (typeVisitor) VisitFunctionCall(*FunctionCall) any         { return "FunctionCall" }
func (typeVisitor) VisitImplicitReceiver(*ImplicitReceiver) any { return "ImplicitReceiver" }
func (typeVisitor) VisitIndexAccess(*IndexAccess) any           { return "IndexAccess" }
func (typeVisitor) VisitInterpolation(*Interpolation) any       { return "Interpolation" }
func (typeVisitor) VisitLiteralArray(*LiteralArray) any         { return "LiteralArray" }
func (typeVisitor) VisitLiteralMap(*LiteralMap) any             { return "LiteralMap" }
func (typeVisitor) VisitLiteralPrimitive(*LiteralPrimitive) any { return "LiteralPrimitive" }
func (typeVisitor) VisitMethodCall(*MethodCall) any             { return "MethodCall" }
func (typeVisitor) VisitLogicalNot(*LogicalNot) any             { return "LogicalNot" }

func TestVisitDispatch(t *testing.T) {
	t.Parallel()

	tests := []struct {
		exp  Expression
		want any
	}{
		{ident("a"), "MemberAccess"},
		{NewAssignment(ident("a"), lit(1)), "Assignment"},
		{NewBinaryOp("+", lit(1), lit(2)), "BinaryOp"},
		{NewChain(lit(1)), "Chain"},
		{NewConditional(lit(true), lit(1), lit(2)), "Conditional"},
		{NewPipe(lit(1), "p"), "Pipe"},
		{NewFunctionCall(ident("f")), "FunctionCall"},
		{NewImplicitReceiver(), "ImplicitReceiver"},
		{NewIndexAccess(ident("a"), lit(0)), "IndexAccess"},
		{NewLiteralArray(), "LiteralArray"},
		{NewLiteralMap(nil, nil), "LiteralMap"},
		{lit(1), "LiteralPrimitive"},
		{NewMethodCall(NewImplicitReceiver(), "m", nil), "MethodCall"},
		{NewLogicalNot(lit(true)), "LogicalNot"},
		{NewSourceWrapped(lit(1), "1", "test"), "LiteralPrimitive"},
		{NewEmptyExpression(), nil},
		{NewInterpolation([]string{"a"}, nil), nil},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%T", tt.exp), func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.exp.Visit(typeVisitor{}))
			assert.Nil(t, tt.exp.Visit(BaseVisitor{}))
		})
	}
}

// countingVisitor counts interpolation visits and nothing else.
type countingVisitor struct {
	BaseVisitor
	interpolations int
}

func (c *countingVisitor) VisitInterpolation(*Interpolation) any {
	c.interpolations++
	return "ignored"
}

func TestInterpolationVisitDispatches(t *testing.T) {
	t.Parallel()

	v := &countingVisitor{}
	res := NewInterpolation([]string{"a", "b"}, []Expression{ident("x")}).Visit(v)
	assert.Nil(t, res)
	assert.Equal(t, 1, v.interpolations)
}

func TestInspect(t *testing.T) {
	t.Parallel()

	// a ? f(b, 1) : !c
	tree := NewConditional(
		ident("a"),
		NewFunctionCall(ident("f"), ident("b"), lit(int64(1))),
		NewLogicalNot(ident("c")),
	)

	var names []string
	Inspect(tree, func(e Expression) bool {
		if m, ok := e.(*MemberAccess); ok {
			names = append(names, m.Name)
		}
		return true
	})
	assert.Equal(t, []string{"a", "f", "b", "c"}, names)

	var visited int
	Inspect(tree, func(e Expression) bool {
		visited++
		_, isCall := e.(*FunctionCall)
		return !isCall
	})
	// Conditional, a, receiver of a, FunctionCall, LogicalNot, c, receiver of c.
	assert.Equal(t, 7, visited)
}

func TestCollectPipes(t *testing.T) {
	t.Parallel()

	inner := NewPipe(ident("name"), "lower")
	outer := NewPipe(inner, "slice", lit(int64(0)), NewPipe(ident("n"), "number"))
	tree := NewChain(outer, ident("other"))

	pipes := CollectPipes(NewSourceWrapped(tree, "", "test"))
	require.Len(t, pipes, 3)
	assert.Same(t, outer, pipes[0])
	assert.Same(t, inner, pipes[1])
	assert.Equal(t, "number", pipes[2].Name)

	assert.Empty(t, CollectPipes(ident("a")))
}

func TestInterpolationExpressions(t *testing.T) {
	t.Parallel()

	a, b := ident("a"), ident("b")
	tree := NewChain(
		NewInterpolation([]string{"x", "y"}, []Expression{a}),
		NewInterpolation([]string{"", "", ""}, []Expression{b, lit(int64(1))}),
	)

	exps := InterpolationExpressions(tree)
	require.Len(t, exps, 3)
	assert.Same(t, a, exps[0])
	assert.Same(t, b, exps[1])
}

func TestUnparse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		exp  Expression
		want string
	}{
		{"identifier", ident("a"), "a"},
		{"property chain", NewMemberAccess(ident("user"), "name", nil), "user.name"},
		{"literals", NewLiteralArray(lit(int64(1)), lit("s"), lit(nil), lit(true)), `[1, "s", null, true]`},
		{"map", NewLiteralMap([]string{"k"}, []Expression{lit(2.5)}), `{"k": 2.5}`},
		{"binary", NewBinaryOp("+", ident("a"), NewBinaryOp("*", ident("b"), lit(int64(2)))), "a + (b * 2)"},
		{"conditional", NewConditional(ident("a"), lit(int64(1)), lit(int64(2))), "a ? 1 : 2"},
		{"not", NewLogicalNot(NewBinaryOp("&&", ident("a"), ident("b"))), "!(a && b)"},
		{"assignment", NewAssignment(ident("a"), lit(int64(1))), "a = 1"},
		{"chain", NewChain(ident("a"), ident("b")), "a; b"},
		{"method call", NewMethodCall(ident("obj"), "m", nil, lit(int64(1)), ident("x")), "obj.m(1, x)"},
		{"implicit method call", NewMethodCall(NewImplicitReceiver(), "m", nil), "m()"},
		{"function call", NewFunctionCall(ident("f"), lit("x")), `f("x")`},
		{"index", NewIndexAccess(ident("xs"), lit(int64(0))), "xs[0]"},
		{"pipe", NewPipe(ident("d"), "date", lit("short")), `(d | date:"short")`},
		{"interpolation", NewInterpolation([]string{"Hi ", "!"}, []Expression{ident("name")}), "Hi {{name}}!"},
		{"wrapped", NewSourceWrapped(ident("a"), "a", "test"), "a"},
		{"empty", NewEmptyExpression(), ""},
		{"nil", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Unparse(tt.exp))
		})
	}
}
