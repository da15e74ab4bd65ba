package ast

// ExpressionVisitor offers one method per Expression variant.
type ExpressionVisitor interface {
	VisitBinary(n *Binary)
	VisitUnary(n *Unary)
	VisitBool(n *Bool)
	VisitNil(n *Nil)
	VisitNumber(n *Number)
	VisitString(n *String)
	VisitRef(n *Ref)
	VisitVarArgs(n *VarArgs)
	VisitFunction(n *Function)
	VisitFunctionCall(n *FunctionCall)
	VisitMethodCall(n *MethodCall)
	VisitIndex(n *Index)
	VisitMember(n *Member)
	VisitTable(n *Table)
}

// StatementVisitor offers one method per Statement variant.
type StatementVisitor interface {
	VisitAssignment(n *Assignment)
	VisitBreak(n *Break)
	VisitContinue(n *Continue)
	VisitDo(n *Do)
	VisitWhile(n *While)
	VisitRepeatUntil(n *RepeatUntil)
	VisitIfElse(n *IfElse)
	VisitFor(n *For)
	VisitForIn(n *ForIn)
	VisitFunctionDef(n *FunctionDef)
	VisitFunctionCallStat(n *FunctionCallStat)
	VisitMethodCallStat(n *MethodCallStat)
	VisitReturn(n *Return)
	VisitVarDef(n *VarDef)
	VisitGoto(n *Goto)
	VisitLabel(n *Label)
	VisitNone(n *None)
}

// Visitor is the full traversal interface over both expression and
// statement variants.
type Visitor interface {
	ExpressionVisitor
	StatementVisitor
}

// WalkExpression dispatches e to its Accept method.
func WalkExpression(v ExpressionVisitor, e Expression) {
	e.Accept(v)
}

// WalkStatement dispatches s to its Accept method.
func WalkStatement(v StatementVisitor, s Statement) {
	s.Accept(v)
}

// WalkBlock visits every statement of block in order.
func WalkBlock(v StatementVisitor, block Block) {
	for _, s := range block {
		WalkStatement(v, s)
	}
}

// The Walk<Variant> functions implement the standard child-visit
// order for each variant; they are what DefaultVisitor's methods
// delegate to, and are exported so a concrete visitor that overrides
// one method can still invoke the default traversal for its children.

func WalkBinary(v Visitor, n *Binary) {
	WalkExpression(v, n.Lhs)
	WalkExpression(v, n.Rhs)
}

func WalkUnary(v Visitor, n *Unary) {
	WalkExpression(v, n.Exp)
}

func WalkFunction(v Visitor, n *Function) {
	WalkBlock(v, n.Body)
}

// WalkFunctionCall visits arguments before the callee, per the
// visitor contract.
func WalkFunctionCall(v Visitor, n *FunctionCall) {
	for _, a := range n.Args {
		WalkExpression(v, a)
	}
	WalkExpression(v, n.Lhs)
}

// WalkMethodCall visits arguments before the receiver.
func WalkMethodCall(v Visitor, n *MethodCall) {
	for _, a := range n.Args {
		WalkExpression(v, a)
	}
	WalkExpression(v, n.Lhs)
}

func WalkIndex(v Visitor, n *Index) {
	WalkExpression(v, n.Lhs)
	WalkExpression(v, n.Exp)
}

func WalkMember(v Visitor, n *Member) {
	WalkExpression(v, n.Lhs)
}

// WalkTable visits each field's value, then its key if present.
func WalkTable(v Visitor, n *Table) {
	for _, f := range n.Fields {
		WalkExpression(v, f.Value)
		if f.Key != nil {
			WalkExpression(v, f.Key)
		}
	}
}

// WalkAssignment visits vars before expressions, per the visitor
// contract.
func WalkAssignment(v Visitor, n *Assignment) {
	for _, e := range n.Vars {
		WalkExpression(v, e)
	}
	for _, e := range n.Exps {
		WalkExpression(v, e)
	}
}

func WalkDo(v Visitor, n *Do) {
	WalkBlock(v, n.Body)
}

func WalkWhile(v Visitor, n *While) {
	WalkExpression(v, n.Cond)
	WalkBlock(v, n.Body)
}

func WalkRepeatUntil(v Visitor, n *RepeatUntil) {
	WalkBlock(v, n.Body)
	WalkExpression(v, n.Cond)
}

func WalkIfElse(v Visitor, n *IfElse) {
	WalkExpression(v, n.Cond)
	WalkBlock(v, n.Body)
	for _, ei := range n.ElseIfs {
		WalkExpression(v, ei.Cond)
		WalkBlock(v, ei.Body)
	}
	if n.Else != nil {
		WalkBlock(v, n.Else)
	}
}

// WalkFor visits the body, then the init expression, then the test,
// then the optional update, per the visitor contract.
func WalkFor(v Visitor, n *For) {
	WalkBlock(v, n.Body)
	WalkExpression(v, n.InitExp)
	WalkExpression(v, n.Test)
	if n.Update != nil {
		WalkExpression(v, n.Update)
	}
}

func WalkForIn(v Visitor, n *ForIn) {
	for _, e := range n.Exps {
		WalkExpression(v, e)
	}
	WalkBlock(v, n.Body)
}

func WalkFunctionDef(v Visitor, n *FunctionDef) {
	WalkExpression(v, n.Body)
}

func WalkFunctionCallStat(v Visitor, n *FunctionCallStat) {
	WalkExpression(v, n.Call)
}

func WalkMethodCallStat(v Visitor, n *MethodCallStat) {
	WalkExpression(v, n.Call)
}

func WalkReturn(v Visitor, n *Return) {
	for _, e := range n.Exps {
		WalkExpression(v, e)
	}
}

func WalkVarDef(v Visitor, n *VarDef) {
	for _, e := range n.Init {
		WalkExpression(v, e)
	}
}

// DefaultVisitor implements Visitor by walking every composite
// variant's children in the standard order and doing nothing for leaf
// variants. A concrete visitor embeds DefaultVisitor, sets Self to its
// own address so that recursion dispatches back through its own
// overrides rather than through DefaultVisitor's no-ops, and then
// overrides only the Visit methods it cares about:
//
//	type Printer struct {
//		ast.DefaultVisitor
//		...
//	}
//	func NewPrinter() *Printer {
//		p := &Printer{}
//		p.Self = p
//		return p
//	}
type DefaultVisitor struct {
	// Self is the outermost visitor; Go's embedding has no virtual
	// self-dispatch, so the default child walkers recurse through
	// Self rather than through the DefaultVisitor receiver.
	Self Visitor
}

func (d DefaultVisitor) self() Visitor {
	if d.Self != nil {
		return d.Self
	}
	return d
}

func (d DefaultVisitor) VisitBinary(n *Binary) { WalkBinary(d.self(), n) }
func (d DefaultVisitor) VisitUnary(n *Unary)   { WalkUnary(d.self(), n) }
func (DefaultVisitor) VisitBool(n *Bool)       {}
func (DefaultVisitor) VisitNil(n *Nil)         {}
func (DefaultVisitor) VisitNumber(n *Number)   {}
func (DefaultVisitor) VisitString(n *String)   {}
func (DefaultVisitor) VisitRef(n *Ref)         {}
func (DefaultVisitor) VisitVarArgs(n *VarArgs) {}

func (d DefaultVisitor) VisitFunctionCall(n *FunctionCall) { WalkFunctionCall(d.self(), n) }
func (d DefaultVisitor) VisitMethodCall(n *MethodCall)     { WalkMethodCall(d.self(), n) }
func (d DefaultVisitor) VisitIndex(n *Index)               { WalkIndex(d.self(), n) }
func (d DefaultVisitor) VisitMember(n *Member)             { WalkMember(d.self(), n) }
func (d DefaultVisitor) VisitTable(n *Table)               { WalkTable(d.self(), n) }
func (d DefaultVisitor) VisitFunction(n *Function)         { WalkFunction(d.self(), n) }

func (d DefaultVisitor) VisitAssignment(n *Assignment)   { WalkAssignment(d.self(), n) }
func (DefaultVisitor) VisitBreak(n *Break)               {}
func (DefaultVisitor) VisitContinue(n *Continue)         {}
func (d DefaultVisitor) VisitDo(n *Do)                   { WalkDo(d.self(), n) }
func (d DefaultVisitor) VisitWhile(n *While)             { WalkWhile(d.self(), n) }
func (d DefaultVisitor) VisitRepeatUntil(n *RepeatUntil) { WalkRepeatUntil(d.self(), n) }
func (d DefaultVisitor) VisitIfElse(n *IfElse)           { WalkIfElse(d.self(), n) }
func (d DefaultVisitor) VisitFor(n *For)                 { WalkFor(d.self(), n) }
func (d DefaultVisitor) VisitForIn(n *ForIn)             { WalkForIn(d.self(), n) }
func (d DefaultVisitor) VisitFunctionDef(n *FunctionDef) { WalkFunctionDef(d.self(), n) }
func (d DefaultVisitor) VisitFunctionCallStat(n *FunctionCallStat) {
	WalkFunctionCallStat(d.self(), n)
}
func (d DefaultVisitor) VisitMethodCallStat(n *MethodCallStat) { WalkMethodCallStat(d.self(), n) }
func (d DefaultVisitor) VisitReturn(n *Return)                 { WalkReturn(d.self(), n) }
func (d DefaultVisitor) VisitVarDef(n *VarDef)                 { WalkVarDef(d.self(), n) }
func (DefaultVisitor) VisitGoto(n *Goto)                       {}
func (DefaultVisitor) VisitLabel(n *Label)                     {}
func (DefaultVisitor) VisitNone(n *None)                       {}
