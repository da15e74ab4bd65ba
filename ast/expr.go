package ast

import "github.com/luadx-lang/luadx/token"

// Binary is `lhs op rhs`. Invariant: span(Lhs).Start <= Span().Start,
// span(op) < span(Rhs).Start <= Span().End == span(Rhs).End.
type Binary struct {
	SpanVal token.Span
	Lhs     Expression
	Op      token.Op
	Rhs     Expression
}

func (n *Binary) Span() token.Span               { return n.SpanVal }
func (n *Binary) Accept(v ExpressionVisitor)     { v.VisitBinary(n) }
func (*Binary) expressionNode()                  {}

// Unary is `op exp`, one of `-`, `not`, `#`.
type Unary struct {
	SpanVal token.Span
	Op      token.Op
	Exp     Expression
}

func (n *Unary) Span() token.Span           { return n.SpanVal }
func (n *Unary) Accept(v ExpressionVisitor) { v.VisitUnary(n) }
func (*Unary) expressionNode()              {}

// Bool is a `true`/`false` literal.
type Bool struct {
	SpanVal token.Span
	Value   bool
}

func (n *Bool) Span() token.Span           { return n.SpanVal }
func (n *Bool) Accept(v ExpressionVisitor) { v.VisitBool(n) }
func (*Bool) expressionNode()              {}

// Nil is the `nil` literal.
type Nil struct {
	SpanVal token.Span
}

func (n *Nil) Span() token.Span           { return n.SpanVal }
func (n *Nil) Accept(v ExpressionVisitor) { v.VisitNil(n) }
func (*Nil) expressionNode()              {}

// Number is a decimal or hexadecimal numeric literal, decoded to f64.
type Number struct {
	SpanVal token.Span
	Value   float64
}

func (n *Number) Span() token.Span           { return n.SpanVal }
func (n *Number) Accept(v ExpressionVisitor) { v.VisitNumber(n) }
func (*Number) expressionNode()              {}

// String is a decoded short-string or long-bracket string literal.
type String struct {
	SpanVal token.Span
	Value   []byte
}

func (n *String) Span() token.Span           { return n.SpanVal }
func (n *String) Accept(v ExpressionVisitor) { v.VisitString(n) }
func (*String) expressionNode()              {}

// Ref is a bare name reference, e.g. a local or global variable.
type Ref struct {
	SpanVal token.Span
	Name    []byte
}

func (n *Ref) Span() token.Span           { return n.SpanVal }
func (n *Ref) Accept(v ExpressionVisitor) { v.VisitRef(n) }
func (*Ref) expressionNode()              {}

// VarArgs is the `...` expression, valid only inside a variadic
// function body.
type VarArgs struct {
	SpanVal token.Span
}

func (n *VarArgs) Span() token.Span           { return n.SpanVal }
func (n *VarArgs) Accept(v ExpressionVisitor) { v.VisitVarArgs(n) }
func (*VarArgs) expressionNode()              {}

// Function is a function literal. Params may end with the sentinel
// "..." naming it variadic.
type Function struct {
	SpanVal token.Span
	Params  [][]byte
	Body    Block
}

func (n *Function) Span() token.Span           { return n.SpanVal }
func (n *Function) Accept(v ExpressionVisitor) { v.VisitFunction(n) }
func (*Function) expressionNode()              {}

// IsVariadic reports whether the function's final parameter is "...".
func (n *Function) IsVariadic() bool {
	if len(n.Params) == 0 {
		return false
	}
	return string(n.Params[len(n.Params)-1]) == "..."
}

// FunctionCall is `lhs(args...)`.
type FunctionCall struct {
	SpanVal token.Span
	Lhs     Expression
	Args    []Expression
}

func (n *FunctionCall) Span() token.Span           { return n.SpanVal }
func (n *FunctionCall) Accept(v ExpressionVisitor) { v.VisitFunctionCall(n) }
func (*FunctionCall) expressionNode()              {}

// MethodCall is `lhs:name(args...)`.
type MethodCall struct {
	SpanVal token.Span
	Lhs     Expression
	Name    []byte
	Args    []Expression
}

func (n *MethodCall) Span() token.Span           { return n.SpanVal }
func (n *MethodCall) Accept(v ExpressionVisitor) { v.VisitMethodCall(n) }
func (*MethodCall) expressionNode()              {}

// Index is `lhs[exp]`.
type Index struct {
	SpanVal token.Span
	Lhs     Expression
	Exp     Expression
}

func (n *Index) Span() token.Span           { return n.SpanVal }
func (n *Index) Accept(v ExpressionVisitor) { v.VisitIndex(n) }
func (*Index) expressionNode()              {}

// Member is `lhs.name`.
type Member struct {
	SpanVal token.Span
	Lhs     Expression
	Name    []byte
}

func (n *Member) Span() token.Span           { return n.SpanVal }
func (n *Member) Accept(v ExpressionVisitor) { v.VisitMember(n) }
func (*Member) expressionNode()              {}

// Table is a `{ fields... }` constructor.
type Table struct {
	SpanVal token.Span
	Fields  []Field
}

func (n *Table) Span() token.Span           { return n.SpanVal }
func (n *Table) Accept(v ExpressionVisitor) { v.VisitTable(n) }
func (*Table) expressionNode()              {}
