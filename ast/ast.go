// Package ast defines the syntax tree produced by package parser: one
// concrete struct per Expression/Statement variant, each implementing
// a shared Node interface, plus a Visitor framework for traversing
// them. Go has no sum type with per-variant payloads, so the tagged
// Expression/Statement enums of the data model are rendered as
// interfaces with one implementing struct per variant -- a double
// dispatch through Accept plays the role a match expression would in
// the source this was distilled from.
package ast

import "github.com/luadx-lang/luadx/token"

// Node is implemented by every Expression and Statement variant.
type Node interface {
	Span() token.Span
}

// Expression is the tagged union of expression variants: Binary,
// Unary, Bool, Nil, Number, String, Ref, VarArgs, Function,
// FunctionCall, MethodCall, Index, Member, Table.
type Expression interface {
	Node
	Accept(v ExpressionVisitor)
	expressionNode()
}

// Statement is the tagged union of statement variants: Assignment,
// Break, Continue, Do, While, RepeatUntil, IfElse, For, ForIn,
// FunctionDef, FunctionCallStat, MethodCallStat, Return, VarDef, Goto,
// Label, None.
type Statement interface {
	Node
	Accept(v StatementVisitor)
	statementNode()
}

// Block is an ordered sequence of statements.
type Block []Statement

// Field is a table constructor field. A nil Key means the field is
// positional; spec.md calls this Option<Exp> with an absent key.
type Field struct {
	Key   Expression
	Value Expression
}

// ElseIf is one `elseif cond then body` clause of an IfElse statement.
type ElseIf struct {
	Cond Expression
	Body Block
}

// FunctionName is the dotted-path-plus-optional-method target of a
// `function a.b.c:d() ... end` definition. Method is nil for the
// plain `function a.b.c()` form.
type FunctionName struct {
	Path   [][]byte
	Method []byte
}
