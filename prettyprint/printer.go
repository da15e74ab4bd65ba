// Package prettyprint renders an ast.Block back to dialect source
// text. It implements ast.Visitor directly (every variant needs its
// own rendering rule, so there is no default traversal to inherit),
// grounded on the indent/buffer state machine of
// _examples/akashmaji946-go-mix's PrintingVisitor and on the exact
// per-construct rendering rules of
// _examples/original_source/src/ast/visitors/renderer.rs.
package prettyprint

import (
	"bytes"
	"strconv"
	"unicode/utf8"

	"github.com/luadx-lang/luadx/ast"
	"github.com/luadx-lang/luadx/token"
)

// Printer walks a Block and accumulates its rendered source in buf.
// began tracks whether any line has been emitted yet, so the very
// first statement isn't preceded by a spurious blank line -- the same
// "line" flag the grounding renderer uses.
type Printer struct {
	buf    bytes.Buffer
	indent int
	began  bool
}

// Print renders block as dialect source text.
func Print(block ast.Block) []byte {
	p := &Printer{}
	p.visitBlock(block)
	return p.buf.Bytes()
}

func (p *Printer) line() {
	if !p.began {
		p.began = true
		return
	}
	p.buf.WriteByte('\n')
	for i := 0; i < p.indent; i++ {
		p.buf.WriteString("    ")
	}
}

func (p *Printer) indented(fn func()) {
	p.indent++
	fn()
	p.indent--
}

func (p *Printer) visitBlock(b ast.Block) {
	for _, s := range b {
		s.Accept(p)
	}
}

func (p *Printer) list(exps []ast.Expression) {
	for i, e := range exps {
		ast.WalkExpression(p, e)
		if i < len(exps)-1 {
			p.buf.WriteString(", ")
		}
	}
}

func (p *Printer) names(names [][]byte) {
	for i, n := range names {
		p.buf.Write(n)
		if i < len(names)-1 {
			p.buf.WriteString(", ")
		}
	}
}

func (p *Printer) writeFunctionName(name ast.FunctionName) {
	for i, part := range name.Path {
		if i > 0 {
			p.buf.WriteByte('.')
		}
		p.buf.Write(part)
	}
	if name.Method != nil {
		p.buf.WriteByte(':')
		p.buf.Write(name.Method)
	}
}

// --- expressions ----------------------------------------------------

// Binary expressions are always fully parenthesized on output: this
// sidesteps reproducing the precedence table in reverse and still
// round-trips (property 3), at the cost of noisier output than a
// minimal-parens renderer would give. A unary left operand of `^` is
// parenthesized as well, since `- a ^ b` would reparse as `-(a ^ b)`.
func (p *Printer) VisitBinary(n *ast.Binary) {
	p.buf.WriteByte('(')
	if _, isUnary := n.Lhs.(*ast.Unary); isUnary && n.Op == token.OpExp {
		p.buf.WriteByte('(')
		ast.WalkExpression(p, n.Lhs)
		p.buf.WriteByte(')')
	} else {
		ast.WalkExpression(p, n.Lhs)
	}
	p.buf.WriteByte(' ')
	p.buf.WriteString(n.Op.String())
	p.buf.WriteByte(' ')
	ast.WalkExpression(p, n.Rhs)
	p.buf.WriteByte(')')
}

func (p *Printer) VisitUnary(n *ast.Unary) {
	p.buf.WriteString(n.Op.String())
	p.buf.WriteByte(' ')
	ast.WalkExpression(p, n.Exp)
}

func (p *Printer) VisitBool(n *ast.Bool) {
	if n.Value {
		p.buf.WriteString("true")
	} else {
		p.buf.WriteString("false")
	}
}

func (p *Printer) VisitNil(*ast.Nil) { p.buf.WriteString("nil") }

func (p *Printer) VisitNumber(n *ast.Number) {
	p.buf.WriteString(strconv.FormatFloat(n.Value, 'g', -1, 64))
}

func (p *Printer) VisitString(n *ast.String) {
	writeQuotedString(&p.buf, n.Value)
}

// writeQuotedString escapes embedded `"` as `\"`, a backslash as `\\`,
// a newline as `\n`, and any byte that isn't part of a valid UTF-8
// sequence as a `\NNN` decimal escape, matching the dialect's own
// decode rule (spec.md 4.2) run in reverse.
func writeQuotedString(buf *bytes.Buffer, s []byte) {
	buf.WriteByte('"')
	for i := 0; i < len(s); {
		b := s[i]
		if b == '\n' {
			buf.WriteString(`\n`)
			i++
			continue
		}
		if b == '"' {
			buf.WriteString(`\"`)
			i++
			continue
		}
		if b == '\\' {
			buf.WriteString(`\\`)
			i++
			continue
		}
		r, size := utf8.DecodeRune(s[i:])
		if r == utf8.RuneError && size == 1 {
			buf.WriteByte('\\')
			buf.WriteString(strconv.Itoa(int(b)))
			i++
			continue
		}
		buf.Write(s[i : i+size])
		i += size
	}
	buf.WriteByte('"')
}

func (p *Printer) VisitRef(n *ast.Ref) { p.buf.Write(n.Name) }

func (p *Printer) VisitVarArgs(*ast.VarArgs) { p.buf.WriteString("...") }

// VisitFunction renders an anonymous function literal (an expression
// nud). An empty body collapses to the single-line "function() end";
// FunctionDef (the named statement form) never takes this shortcut,
// matching the grounding renderer's asymmetry between the two.
func (p *Printer) VisitFunction(n *ast.Function) {
	p.buf.WriteString("function(")
	p.names(n.Params)
	p.buf.WriteByte(')')
	if len(n.Body) == 0 {
		p.buf.WriteString(" end")
		return
	}
	p.indented(func() { p.visitBlock(n.Body) })
	p.line()
	p.buf.WriteString("end")
}

func (p *Printer) VisitFunctionCall(n *ast.FunctionCall) {
	ast.WalkExpression(p, n.Lhs)
	p.buf.WriteByte('(')
	p.list(n.Args)
	p.buf.WriteByte(')')
}

func (p *Printer) VisitMethodCall(n *ast.MethodCall) {
	ast.WalkExpression(p, n.Lhs)
	p.buf.WriteByte(':')
	p.buf.Write(n.Name)
	p.buf.WriteByte('(')
	p.list(n.Args)
	p.buf.WriteByte(')')
}

func (p *Printer) VisitIndex(n *ast.Index) {
	ast.WalkExpression(p, n.Lhs)
	p.buf.WriteByte('[')
	ast.WalkExpression(p, n.Exp)
	p.buf.WriteByte(']')
}

func (p *Printer) VisitMember(n *ast.Member) {
	ast.WalkExpression(p, n.Lhs)
	p.buf.WriteByte('.')
	p.buf.Write(n.Name)
}

func (p *Printer) VisitTable(n *ast.Table) {
	p.buf.WriteByte('{')
	if len(n.Fields) == 0 {
		p.buf.WriteByte('}')
		return
	}
	p.indented(func() {
		for i, f := range n.Fields {
			p.line()
			if f.Key != nil {
				p.writeTableKey(f.Key)
				p.buf.WriteString(" = ")
			}
			ast.WalkExpression(p, f.Value)
			if i < len(n.Fields)-1 {
				p.buf.WriteString(", ")
			}
		}
	})
	p.line()
	p.buf.WriteByte('}')
}

// writeTableKey prints an identifier-shaped string key bare (`name =
// ...`), the form the `Name = exp` field sugar actually produces, and
// falls back to the always-valid `[key] = ...` bracketed form for
// every other key shape (Number, Bool, a non-identifier string, or
// any computed expression). Either form reparses to the identical
// Field, so this choice is purely cosmetic.
func (p *Printer) writeTableKey(key ast.Expression) {
	if s, ok := key.(*ast.String); ok && isBareKey(s.Value) {
		p.buf.Write(s.Value)
		return
	}
	p.buf.WriteByte('[')
	ast.WalkExpression(p, key)
	p.buf.WriteByte(']')
}

func isBareKey(s []byte) bool {
	if len(s) == 0 || !isIdentStart(s[0]) {
		return false
	}
	for _, b := range s[1:] {
		if !isIdentCont(b) {
			return false
		}
	}
	if kw, ok := token.Keywords[string(s)]; ok && kw != token.KwGoto {
		return false
	}
	switch string(s) {
	case "true", "false", "nil", "and", "or", "not":
		return false
	}
	return true
}

func isIdentStart(b byte) bool {
	return b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || b >= 0x80
}

func isIdentCont(b byte) bool {
	return isIdentStart(b) || (b >= '0' && b <= '9')
}

// --- statements -------------------------------------------------------

func (p *Printer) VisitAssignment(n *ast.Assignment) {
	p.line()
	p.list(n.Vars)
	p.buf.WriteString(" = ")
	p.list(n.Exps)
	p.buf.WriteByte(';')
}

func (p *Printer) VisitBreak(*ast.Break) {
	p.line()
	p.buf.WriteString("break;")
}

func (p *Printer) VisitContinue(*ast.Continue) {
	p.line()
	p.buf.WriteString("continue;")
}

func (p *Printer) VisitDo(n *ast.Do) {
	p.line()
	if len(n.Body) == 0 {
		p.buf.WriteString("do end")
		return
	}
	p.buf.WriteString("do")
	p.indented(func() { p.visitBlock(n.Body) })
	p.line()
	p.buf.WriteString("end")
}

func (p *Printer) VisitWhile(n *ast.While) {
	p.line()
	p.buf.WriteString("while ")
	ast.WalkExpression(p, n.Cond)
	p.buf.WriteString(" do")
	p.indented(func() { p.visitBlock(n.Body) })
	p.line()
	p.buf.WriteString("end")
}

func (p *Printer) VisitRepeatUntil(n *ast.RepeatUntil) {
	p.line()
	p.buf.WriteString("repeat")
	if len(n.Body) == 0 {
		p.buf.WriteString(" until ")
	} else {
		p.indented(func() { p.visitBlock(n.Body) })
		p.line()
		p.buf.WriteString("until ")
	}
	ast.WalkExpression(p, n.Cond)
}

// VisitIfElse renders the else clause the grounding renderer omits
// entirely (an apparent oversight there that would silently drop data
// on re-parse, breaking the pretty-print round-trip property).
func (p *Printer) VisitIfElse(n *ast.IfElse) {
	p.line()
	p.buf.WriteString("if ")
	ast.WalkExpression(p, n.Cond)
	p.buf.WriteString(" then")
	p.indented(func() { p.visitBlock(n.Body) })

	for _, ei := range n.ElseIfs {
		p.line()
		p.buf.WriteString("elseif ")
		ast.WalkExpression(p, ei.Cond)
		p.buf.WriteString(" then")
		p.indented(func() { p.visitBlock(ei.Body) })
	}

	if n.Else != nil {
		p.line()
		p.buf.WriteString("else")
		p.indented(func() { p.visitBlock(n.Else) })
	}

	p.line()
	p.buf.WriteString("end")
}

func (p *Printer) VisitFor(n *ast.For) {
	p.line()
	p.buf.WriteString("for ")
	p.buf.Write(n.InitName)
	p.buf.WriteString(" = ")
	ast.WalkExpression(p, n.InitExp)
	p.buf.WriteString(", ")
	ast.WalkExpression(p, n.Test)
	if n.Update != nil {
		p.buf.WriteString(", ")
		ast.WalkExpression(p, n.Update)
	}
	if len(n.Body) == 0 {
		p.buf.WriteString(" do end")
		return
	}
	p.buf.WriteString(" do")
	p.indented(func() { p.visitBlock(n.Body) })
	p.line()
	p.buf.WriteString("end")
}

func (p *Printer) VisitForIn(n *ast.ForIn) {
	p.line()
	p.buf.WriteString("for ")
	p.names(n.Names)
	p.buf.WriteString(" in ")
	p.list(n.Exps)
	if len(n.Body) == 0 {
		p.buf.WriteString(" do end")
		return
	}
	p.buf.WriteString(" do")
	p.indented(func() { p.visitBlock(n.Body) })
	p.line()
	p.buf.WriteString("end")
}

func (p *Printer) VisitFunctionDef(n *ast.FunctionDef) {
	p.line()
	if n.Local {
		p.buf.WriteString("local ")
	}
	p.buf.WriteString("function ")
	p.writeFunctionName(n.Name)
	p.buf.WriteByte('(')
	p.names(n.Body.Params)
	p.buf.WriteByte(')')
	p.indented(func() { p.visitBlock(n.Body.Body) })
	p.line()
	p.buf.WriteString("end")
}

func (p *Printer) VisitFunctionCallStat(n *ast.FunctionCallStat) {
	p.line()
	ast.WalkExpression(p, n.Call)
	p.buf.WriteByte(';')
}

func (p *Printer) VisitMethodCallStat(n *ast.MethodCallStat) {
	p.line()
	ast.WalkExpression(p, n.Call)
	p.buf.WriteByte(';')
}

func (p *Printer) VisitReturn(n *ast.Return) {
	p.line()
	p.buf.WriteString("return")
	if len(n.Exps) > 0 {
		p.buf.WriteByte(' ')
		p.list(n.Exps)
	}
	p.buf.WriteByte(';')
}

func (p *Printer) VisitVarDef(n *ast.VarDef) {
	p.line()
	p.buf.WriteString("local ")
	p.names(n.Names)
	if n.Init != nil {
		p.buf.WriteString(" = ")
		p.list(n.Init)
	}
	p.buf.WriteByte(';')
}

func (p *Printer) VisitGoto(n *ast.Goto) {
	p.line()
	p.buf.WriteString("goto ")
	p.buf.Write(n.Label)
	p.buf.WriteByte(';')
}

func (p *Printer) VisitLabel(n *ast.Label) {
	p.line()
	p.buf.WriteString("::")
	p.buf.Write(n.Name)
	p.buf.WriteString("::")
}

func (p *Printer) VisitNone(*ast.None) {}
