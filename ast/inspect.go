package ast

// Inspect traverses the tree rooted at e in depth-first order. It calls fn for
// a node and then, if fn returns true, for each of its children. Wrappers are
// looked through and EmptyExpression nodes are never reported, since neither
// dispatches to a visitor.
func Inspect(e Expression, fn func(Expression) bool) {
	in := &inspector{fn: fn}
	in.walk(e)
}

type inspector struct {
	fn func(Expression) bool
}

func (in *inspector) walk(exps ...Expression) {
	for _, e := range exps {
		if e != nil {
			e.Visit(in)
		}
	}
}

func (in *inspector) VisitMemberAccess(ast *MemberAccess) any {
	if in.fn(ast) {
		in.walk(ast.Receiver)
	}
	return nil
}

func (in *inspector) VisitAssignment(ast *Assignment) any {
	if in.fn(ast) {
		in.walk(ast.Target, ast.Value)
	}
	return nil
}

func (in *inspector) VisitBinaryOp(ast *BinaryOp) any {
	if in.fn(ast) {
		in.walk(ast.Left, ast.Right)
	}
	return nil
}

func (in *inspector) VisitChain(ast *Chain) any {
	if in.fn(ast) {
		in.walk(ast.Expressions...)
	}
	return nil
}

func (in *inspector) VisitConditional(ast *Conditional) any {
	if in.fn(ast) {
		in.walk(ast.Condition, ast.TrueExp, ast.FalseExp)
	}
	return nil
}

func (in *inspector) VisitPipe(ast *Pipe) any {
	if in.fn(ast) {
		in.walk(ast.Exp)
		in.walk(ast.Args...)
	}
	return nil
}

func (in *inspector) VisitFunctionCall(ast *FunctionCall) any {
	if in.fn(ast) {
		in.walk(ast.Target)
		in.walk(ast.Args...)
	}
	return nil
}

func (in *inspector) VisitImplicitReceiver(ast *ImplicitReceiver) any {
	in.fn(ast)
	return nil
}

func (in *inspector) VisitIndexAccess(ast *IndexAccess) any {
	if in.fn(ast) {
		in.walk(ast.Object, ast.Key)
	}
	return nil
}

func (in *inspector) VisitInterpolation(ast *Interpolation) any {
	if in.fn(ast) {
		in.walk(ast.Expressions...)
	}
	return nil
}

func (in *inspector) VisitLiteralArray(ast *LiteralArray) any {
	if in.fn(ast) {
		in.walk(ast.Expressions...)
	}
	return nil
}

func (in *inspector) VisitLiteralMap(ast *LiteralMap) any {
	if in.fn(ast) {
		in.walk(ast.Values...)
	}
	return nil
}

func (in *inspector) VisitLiteralPrimitive(ast *LiteralPrimitive) any {
	in.fn(ast)
	return nil
}

func (in *inspector) VisitMethodCall(ast *MethodCall) any {
	if in.fn(ast) {
		in.walk(ast.Receiver)
		in.walk(ast.Args...)
	}
	return nil
}

func (in *inspector) VisitLogicalNot(ast *LogicalNot) any {
	if in.fn(ast) {
		in.walk(ast.Expression)
	}
	return nil
}

// CollectPipes returns every Pipe in the tree, outermost first.
func CollectPipes(e Expression) []*Pipe {
	var pipes []*Pipe
	Inspect(e, func(n Expression) bool {
		if p, ok := n.(*Pipe); ok {
			pipes = append(pipes, p)
		}
		return true
	})
	return pipes
}

// InterpolationExpressions returns the embedded expressions of every
// Interpolation in the tree, in source order.
func InterpolationExpressions(e Expression) []Expression {
	var collector interpolationCollector
	Inspect(e, func(n Expression) bool {
		n.Visit(&collector)
		return true
	})
	return collector.expressions
}

type interpolationCollector struct {
	BaseVisitor
	expressions []Expression
}

func (c *interpolationCollector) VisitInterpolation(ast *Interpolation) any {
	c.expressions = append(c.expressions, ast.Expressions...)
	return nil
}
