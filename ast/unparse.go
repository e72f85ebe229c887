package ast

import (
	"fmt"
	"strconv"
	"strings"
)

// Unparse renders e back to expression source. The output parses to an
// equivalent tree but is not byte-identical to the original text.
func Unparse(e Expression) string {
	for {
		sw, ok := e.(*SourceWrapped)
		if !ok {
			break
		}
		e = sw.AST
	}
	if e == nil {
		return ""
	}
	// Interpolation.Visit drops the visitor result.
	if in, ok := e.(*Interpolation); ok {
		return printer{}.VisitInterpolation(in).(string)
	}
	s, _ := e.Visit(printer{}).(string)
	return s
}

type printer struct{}

func (p printer) list(exps []Expression) string {
	parts := make([]string, len(exps))
	for i, e := range exps {
		parts[i] = Unparse(e)
	}
	return strings.Join(parts, ", ")
}

// operand parenthesizes compound operands of an operator.
func (p printer) operand(e Expression) string {
	switch e.(type) {
	case *BinaryOp, *Conditional, *Assignment:
		return "(" + Unparse(e) + ")"
	}
	return Unparse(e)
}

func (p printer) receiver(e Expression) string {
	if _, ok := e.(*ImplicitReceiver); ok {
		return ""
	}
	return p.operand(e) + "."
}

func (p printer) VisitMemberAccess(ast *MemberAccess) any {
	return p.receiver(ast.Receiver) + ast.Name
}

func (p printer) VisitAssignment(ast *Assignment) any {
	return Unparse(ast.Target) + " = " + Unparse(ast.Value)
}

func (p printer) VisitBinaryOp(ast *BinaryOp) any {
	return p.operand(ast.Left) + " " + ast.Operation + " " + p.operand(ast.Right)
}

func (p printer) VisitChain(ast *Chain) any {
	parts := make([]string, len(ast.Expressions))
	for i, e := range ast.Expressions {
		parts[i] = Unparse(e)
	}
	return strings.Join(parts, "; ")
}

func (p printer) VisitConditional(ast *Conditional) any {
	return p.operand(ast.Condition) + " ? " + p.operand(ast.TrueExp) + " : " + p.operand(ast.FalseExp)
}

func (p printer) VisitPipe(ast *Pipe) any {
	var sb strings.Builder
	sb.WriteString("(")
	sb.WriteString(Unparse(ast.Exp))
	sb.WriteString(" | ")
	sb.WriteString(ast.Name)
	for _, arg := range ast.Args {
		sb.WriteString(":")
		sb.WriteString(p.operand(arg))
	}
	sb.WriteString(")")
	return sb.String()
}

func (p printer) VisitFunctionCall(ast *FunctionCall) any {
	return p.operand(ast.Target) + "(" + p.list(ast.Args) + ")"
}

func (p printer) VisitImplicitReceiver(*ImplicitReceiver) any { return "" }

func (p printer) VisitIndexAccess(ast *IndexAccess) any {
	return p.operand(ast.Object) + "[" + Unparse(ast.Key) + "]"
}

func (p printer) VisitInterpolation(ast *Interpolation) any {
	var sb strings.Builder
	for i, s := range ast.Strings {
		sb.WriteString(s)
		if i < len(ast.Expressions) {
			sb.WriteString("{{")
			sb.WriteString(Unparse(ast.Expressions[i]))
			sb.WriteString("}}")
		}
	}
	return sb.String()
}

func (p printer) VisitLiteralArray(ast *LiteralArray) any {
	return "[" + p.list(ast.Expressions) + "]"
}

func (p printer) VisitLiteralMap(ast *LiteralMap) any {
	parts := make([]string, len(ast.Keys))
	for i, k := range ast.Keys {
		parts[i] = strconv.Quote(k) + ": " + Unparse(ast.Values[i])
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

func (p printer) VisitLiteralPrimitive(ast *LiteralPrimitive) any {
	switch v := ast.Value.(type) {
	case nil:
		return "null"
	case string:
		return strconv.Quote(v)
	}
	return fmt.Sprint(ast.Value)
}

func (p printer) VisitMethodCall(ast *MethodCall) any {
	return p.receiver(ast.Receiver) + ast.Name + "(" + p.list(ast.Args) + ")"
}

func (p printer) VisitLogicalNot(ast *LogicalNot) any {
	return "!" + p.operand(ast.Expression)
}
