package ast

// Visitor receives one call per Visit, for the concrete type of the node.
type Visitor interface {
	VisitMemberAccess(ast *MemberAccess) any
	VisitAssignment(ast *Assignment) any
	VisitBinaryOp(ast *BinaryOp) any
	VisitChain(ast *Chain) any
	VisitConditional(ast *Conditional) any
	VisitPipe(ast *Pipe) any
	VisitFunctionCall(ast *FunctionCall) any
	VisitImplicitReceiver(ast *ImplicitReceiver) any
	VisitIndexAccess(ast *IndexAccess) any
	VisitInterpolation(ast *Interpolation) any
	VisitLiteralArray(ast *LiteralArray) any
	VisitLiteralMap(ast *LiteralMap) any
	VisitLiteralPrimitive(ast *LiteralPrimitive) any
	VisitMethodCall(ast *MethodCall) any
	VisitLogicalNot(ast *LogicalNot) any
}

// BaseVisitor implements every Visitor method as a no-op. Embed it and
// override the methods of interest.
type BaseVisitor struct{}

func (BaseVisitor) VisitMemberAccess(*MemberAccess) any         { return nil }
func (BaseVisitor) VisitAssignment(*Assignment) any             { return nil }
func (BaseVisitor) VisitBinaryOp(*BinaryOp) any                 { return nil }
func (BaseVisitor) VisitChain(*Chain) any                       { return nil }
func (BaseVisitor) VisitConditional(*Conditional) any           { return nil }
func (BaseVisitor) VisitPipe(*Pipe) any                         { return nil }
func (BaseVisitor) VisitFunctionCall(*FunctionCall) any         { return nil }
func (BaseVisitor) VisitImplicitReceiver(*ImplicitReceiver) any { return nil }
func (BaseVisitor) VisitIndexAccess(*IndexAccess) any           { return nil }
func (BaseVisitor) VisitInterpolation(*Interpolation) any       { return nil }
func (BaseVisitor) VisitLiteralArray(*LiteralArray) any         { return nil }
func (BaseVisitor) VisitLiteralMap(*LiteralMap) any             { return nil }
func (BaseVisitor) VisitLiteralPrimitive(*LiteralPrimitive) any { return nil }
func (BaseVisitor) VisitMethodCall(*MethodCall) any             { return nil }
func (BaseVisitor) VisitLogicalNot(*LogicalNot) any             { return nil }

var _ Visitor = BaseVisitor{}
