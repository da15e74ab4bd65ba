package ast

import "github.com/luadx-lang/luadx/token"

// Assignment is `vars = exps`.
type Assignment struct {
	SpanVal token.Span
	Vars    []Expression
	Exps    []Expression
}

func (n *Assignment) Span() token.Span          { return n.SpanVal }
func (n *Assignment) Accept(v StatementVisitor) { v.VisitAssignment(n) }
func (*Assignment) statementNode()              {}

// Break is the `break` statement.
type Break struct {
	SpanVal token.Span
}

func (n *Break) Span() token.Span          { return n.SpanVal }
func (n *Break) Accept(v StatementVisitor) { v.VisitBreak(n) }
func (*Break) statementNode()              {}

// Continue is the `continue` statement.
type Continue struct {
	SpanVal token.Span
}

func (n *Continue) Span() token.Span          { return n.SpanVal }
func (n *Continue) Accept(v StatementVisitor) { v.VisitContinue(n) }
func (*Continue) statementNode()              {}

// Do is `do body end`.
type Do struct {
	SpanVal token.Span
	Body    Block
}

func (n *Do) Span() token.Span          { return n.SpanVal }
func (n *Do) Accept(v StatementVisitor) { v.VisitDo(n) }
func (*Do) statementNode()              {}

// While is `while cond do body end`.
type While struct {
	SpanVal token.Span
	Cond    Expression
	Body    Block
}

func (n *While) Span() token.Span          { return n.SpanVal }
func (n *While) Accept(v StatementVisitor) { v.VisitWhile(n) }
func (*While) statementNode()              {}

// RepeatUntil is `repeat body until cond`.
type RepeatUntil struct {
	SpanVal token.Span
	Body    Block
	Cond    Expression
}

func (n *RepeatUntil) Span() token.Span          { return n.SpanVal }
func (n *RepeatUntil) Accept(v StatementVisitor) { v.VisitRepeatUntil(n) }
func (*RepeatUntil) statementNode()              {}

// IfElse is `if cond then body (elseif cond then body)* (else block)? end`.
// Else is nil when no `else` clause is present.
type IfElse struct {
	SpanVal token.Span
	Cond    Expression
	Body    Block
	ElseIfs []ElseIf
	Else    Block
}

func (n *IfElse) Span() token.Span          { return n.SpanVal }
func (n *IfElse) Accept(v StatementVisitor) { v.VisitIfElse(n) }
func (*IfElse) statementNode()              {}

// For is the numeric for loop: `for InitName = InitExp, Test[, Update] do
// Body end`. Update is nil when the step clause is absent.
type For struct {
	SpanVal  token.Span
	InitName []byte
	InitExp  Expression
	Test     Expression
	Update   Expression
	Body     Block
}

func (n *For) Span() token.Span          { return n.SpanVal }
func (n *For) Accept(v StatementVisitor) { v.VisitFor(n) }
func (*For) statementNode()              {}

// ForIn is the generic for loop: `for Names in Exps do Body end`.
type ForIn struct {
	SpanVal token.Span
	Names   [][]byte
	Exps    []Expression
	Body    Block
}

func (n *ForIn) Span() token.Span          { return n.SpanVal }
func (n *ForIn) Accept(v StatementVisitor) { v.VisitForIn(n) }
func (*ForIn) statementNode()              {}

// FunctionDef is `[local] function Name Body` (or `local function name(...)`,
// where Name.Path has a single element and Name.Method is nil).
type FunctionDef struct {
	SpanVal token.Span
	Local   bool
	Name    FunctionName
	Body    *Function
}

func (n *FunctionDef) Span() token.Span          { return n.SpanVal }
func (n *FunctionDef) Accept(v StatementVisitor) { v.VisitFunctionDef(n) }
func (*FunctionDef) statementNode()              {}

// FunctionCallStat is a FunctionCall expression used as a statement.
type FunctionCallStat struct {
	SpanVal token.Span
	Call    *FunctionCall
}

func (n *FunctionCallStat) Span() token.Span          { return n.SpanVal }
func (n *FunctionCallStat) Accept(v StatementVisitor) { v.VisitFunctionCallStat(n) }
func (*FunctionCallStat) statementNode()              {}

// MethodCallStat is a MethodCall expression used as a statement.
type MethodCallStat struct {
	SpanVal token.Span
	Call    *MethodCall
}

func (n *MethodCallStat) Span() token.Span          { return n.SpanVal }
func (n *MethodCallStat) Accept(v StatementVisitor) { v.VisitMethodCallStat(n) }
func (*MethodCallStat) statementNode()              {}

// Return is `return exps`. It may only terminate a block.
type Return struct {
	SpanVal token.Span
	Exps    []Expression
}

func (n *Return) Span() token.Span          { return n.SpanVal }
func (n *Return) Accept(v StatementVisitor) { v.VisitReturn(n) }
func (*Return) statementNode()              {}

// VarDef is `local Names [= Init]`. Init is nil when the declaration
// has no initializer list.
type VarDef struct {
	SpanVal token.Span
	Names   [][]byte
	Init    []Expression
}

func (n *VarDef) Span() token.Span          { return n.SpanVal }
func (n *VarDef) Accept(v StatementVisitor) { v.VisitVarDef(n) }
func (*VarDef) statementNode()              {}

// Goto is `goto Label`.
type Goto struct {
	SpanVal token.Span
	Label   []byte
}

func (n *Goto) Span() token.Span          { return n.SpanVal }
func (n *Goto) Accept(v StatementVisitor) { v.VisitGoto(n) }
func (*Goto) statementNode()              {}

// Label is `::Name::`, a goto target.
type Label struct {
	SpanVal token.Span
	Name    []byte
}

func (n *Label) Span() token.Span          { return n.SpanVal }
func (n *Label) Accept(v StatementVisitor) { v.VisitLabel(n) }
func (*Label) statementNode()              {}

// None is a synthetic empty statement, never produced by the parser.
// Its span is always empty, the one exception to every other node's
// non-empty-span invariant.
type None struct{}

func (n *None) Span() token.Span          { return token.Span{} }
func (n *None) Accept(v StatementVisitor) { v.VisitNone(n) }
func (*None) statementNode()              {}
