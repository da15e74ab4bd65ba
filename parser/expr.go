package parser

import (
	"github.com/luadx-lang/luadx/arena"
	"github.com/luadx-lang/luadx/ast"
	"github.com/luadx-lang/luadx/token"
)

// tokKey identifies a token for dispatch-table lookup. token.Token
// itself holds a []byte payload and so is not comparable (not usable
// as a map key); tokKey extracts just the discriminant fields that
// matter for parselet dispatch.
type tokKey struct {
	kind token.Kind
	kw   token.Keyword
	op   token.Op
}

func keyOf(t token.Token) tokKey {
	return tokKey{kind: t.Kind, kw: t.Keyword, op: t.Op}
}

func keyKind(k token.Kind) tokKey          { return tokKey{kind: k} }
func keyKeyword(k token.Keyword) tokKey    { return tokKey{kind: token.KindKeyword, kw: k} }
func keyOp(o token.Op) tokKey              { return tokKey{kind: token.KindOp, op: o} }

// --- nud: expressions that don't need a left operand -------------------

type nudFunc func(p *Parser) (ast.Expression, error)

// nudTable is filled in by init: nudUnary and nudFunction reach back
// into parseNud, which reads nudTable, so a composite-literal
// initializer would form an initialization cycle.
var nudTable map[tokKey]nudFunc

func init() {
	nudTable = nudEntries()
}

func nudEntries() map[tokKey]nudFunc {
	return map[tokKey]nudFunc{
	keyKind(token.KindEllipsis):   nudVarArgs,
	keyKeyword(token.KwFunction):  nudFunction,
	keyKind(token.KindLBrace):     nudTableCtor,
	keyKind(token.KindBool):       nudBool,
	keyKind(token.KindNil):        nudNil,
	keyKind(token.KindNumber):     nudNumber,
	keyKind(token.KindString):     nudString,
	keyOp(token.OpLen):            nudUnary(token.OpLen),
	keyOp(token.OpNot):            nudUnary(token.OpNot),
	keyOp(token.OpSub):            nudUnary(token.OpSub),
	}
}

func nudVarArgs(p *Parser) (ast.Expression, error) {
	tok, _ := p.peek(0)
	p.pos++
	return arena.Alloc(p.arena, ast.VarArgs{SpanVal: tok.Span}), nil
}

func nudBool(p *Parser) (ast.Expression, error) {
	tok, _ := p.peek(0)
	p.pos++
	return arena.Alloc(p.arena, ast.Bool{SpanVal: tok.Span, Value: tok.Bool}), nil
}

func nudNil(p *Parser) (ast.Expression, error) {
	tok, _ := p.peek(0)
	p.pos++
	return arena.Alloc(p.arena, ast.Nil{SpanVal: tok.Span}), nil
}

func nudNumber(p *Parser) (ast.Expression, error) {
	tok, _ := p.peek(0)
	p.pos++
	return arena.Alloc(p.arena, ast.Number{SpanVal: tok.Span, Value: tok.Number}), nil
}

func nudString(p *Parser) (ast.Expression, error) {
	tok, _ := p.peek(0)
	p.pos++
	return arena.Alloc(p.arena, ast.String{SpanVal: tok.Span, Value: tok.Str}), nil
}

// nudUnary parses operand at Unary precedence, so e.g. `-a^b` parses
// as `-(a^b)` (exponentiation binds tighter than unary) while
// `not a and b` parses as `(not a) and b`.
func nudUnary(o token.Op) nudFunc {
	return func(p *Parser) (ast.Expression, error) {
		tok, _ := p.peek(0)
		start := tok.Span.Start
		p.pos++
		operand, err := p.parseExpPrec(PrecUnary)
		if err != nil {
			return nil, err
		}
		return arena.Alloc(p.arena, ast.Unary{SpanVal: token.NewSpan(start, p.lastSpanEnd()), Op: o, Exp: operand}), nil
	}
}

func nudFunction(p *Parser) (ast.Expression, error) {
	tok, _ := p.peek(0)
	start := tok.Span.Start
	p.pos++ // 'function'
	fn, err := p.parseFunctionBody()
	if err != nil {
		return nil, err
	}
	fn.SpanVal = token.NewSpan(start, p.lastSpanEnd())
	return fn, nil
}

func nudTableCtor(p *Parser) (ast.Expression, error) {
	return p.parseTableConstructor()
}

// --- led: binary operators ----------------------------------------------

// ledEntry carries a binary operator's precedence and the precedence
// its right operand is parsed at: its own level for left-associative
// operators, one level below for the two right-associative ones
// (Concat, Exponentiation).
type ledEntry struct {
	prec    Precedence
	reenter Precedence
	op      token.Op
}

var ledTable = map[tokKey]ledEntry{
	keyOp(token.OpExp):    {PrecExponentiation, PrecUnary, token.OpExp},
	keyOp(token.OpMul):    {PrecMultiplicative, PrecMultiplicative, token.OpMul},
	keyOp(token.OpDiv):    {PrecMultiplicative, PrecMultiplicative, token.OpDiv},
	keyOp(token.OpMod):    {PrecMultiplicative, PrecMultiplicative, token.OpMod},
	keyOp(token.OpAdd):    {PrecAdditive, PrecAdditive, token.OpAdd},
	keyOp(token.OpSub):    {PrecAdditive, PrecAdditive, token.OpSub},
	keyOp(token.OpDotDot): {PrecConcat, PrecComparative, token.OpDotDot},
	keyOp(token.OpLt):     {PrecComparative, PrecComparative, token.OpLt},
	keyOp(token.OpLtEq):   {PrecComparative, PrecComparative, token.OpLtEq},
	keyOp(token.OpGt):     {PrecComparative, PrecComparative, token.OpGt},
	keyOp(token.OpGtEq):   {PrecComparative, PrecComparative, token.OpGtEq},
	keyOp(token.OpNe):     {PrecComparative, PrecComparative, token.OpNe},
	keyOp(token.OpEqEq):   {PrecComparative, PrecComparative, token.OpEqEq},
	keyOp(token.OpAnd):    {PrecAnd, PrecAnd, token.OpAnd},
	keyOp(token.OpOr):     {PrecOr, PrecOr, token.OpOr},
}

// --- Pratt driver --------------------------------------------------------

// parseExp parses a full expression at the loosest precedence.
func (p *Parser) parseExp() (ast.Expression, error) {
	return p.parseExpPrec(PrecNone)
}

// parseExpPrec is the Pratt loop: parse a nud, then keep consuming led
// operators whose precedence exceeds min.
func (p *Parser) parseExpPrec(min Precedence) (ast.Expression, error) {
	lhs, err := p.parseNud()
	if err != nil {
		return nil, err
	}
	for {
		tok, ok := p.peek(0)
		if !ok {
			break
		}
		entry, hasLed := ledTable[keyOf(tok)]
		if !hasLed || entry.prec <= min {
			break
		}
		start := lhs.Span().Start
		p.pos++
		rhs, err := p.parseExpPrec(entry.reenter)
		if err != nil {
			return nil, err
		}
		lhs = arena.Alloc(p.arena, ast.Binary{SpanVal: token.NewSpan(start, p.lastSpanEnd()), Lhs: lhs, Op: entry.op, Rhs: rhs})
	}
	return lhs, nil
}

// parseNud consults the nud table at the lookahead; a token with no
// nud entry instead begins a prefix expression (Name, `(`, and their
// chained index/member/call/method-call extensions).
func (p *Parser) parseNud() (ast.Expression, error) {
	tok, ok := p.peek(0)
	if !ok {
		return nil, errUnexpectedEOF(ExpectationOf(ExpectExpression))
	}
	if fn, ok2 := nudTable[keyOf(tok)]; ok2 {
		return fn(p)
	}
	return p.parsePrefixExp()
}

// --- prefix expressions (Name/`(` plus chained extensions) -------------

// parsePrefixExp parses a prefix-nud (Name/goto or a parenthesised
// expression) then repeatedly applies prefix-led extensions: index,
// member access, call (including the sugared `f{...}`/`f"..."`
// forms), method call.
func (p *Parser) parsePrefixExp() (ast.Expression, error) {
	lhs, err := p.parsePrefixNud()
	if err != nil {
		return nil, err
	}
	for {
		tok, ok := p.peek(0)
		if !ok || !isPrefixLedStart(tok) {
			break
		}
		lhs, err = p.parsePrefixLed(lhs, tok)
		if err != nil {
			return nil, err
		}
	}
	return lhs, nil
}

func isPrefixLedStart(tok token.Token) bool {
	switch tok.Kind {
	case token.KindLBracket, token.KindLParen, token.KindLBrace, token.KindString:
		return true
	}
	return tok.IsOp(token.OpDot) || tok.IsOp(token.OpColon)
}

func (p *Parser) parsePrefixNud() (ast.Expression, error) {
	tok, ok := p.peek(0)
	if !ok {
		return nil, errUnexpectedEOF(ExpectationOf(ExpectPrefixExp))
	}
	if tok.Kind == token.KindName {
		p.pos++
		return arena.Alloc(p.arena, ast.Ref{SpanVal: tok.Span, Name: tok.Str}), nil
	}
	if tok.IsKeyword(token.KwGoto) {
		p.pos++
		return arena.Alloc(p.arena, ast.Ref{SpanVal: tok.Span, Name: []byte("goto")}), nil
	}
	if tok.Kind == token.KindLParen {
		p.pos++
		inner, err := p.parseExp()
		if err != nil {
			return nil, err
		}
		if _, err := p.expectKind(token.KindRParen, expectationForKind(token.KindRParen)); err != nil {
			return nil, err
		}
		// Parentheses are transparent: there is no distinct Paren node,
		// so the inner expression's own span is preserved.
		return inner, nil
	}
	return nil, errUnexpectedToken(tok.Span, ExpectationOf(ExpectPrefixExp), tok)
}

func (p *Parser) parsePrefixLed(lhs ast.Expression, tok token.Token) (ast.Expression, error) {
	start := lhs.Span().Start
	switch {
	case tok.Kind == token.KindLBracket:
		p.pos++
		idx, err := p.parseExp()
		if err != nil {
			return nil, err
		}
		if _, err := p.expectKind(token.KindRBracket, expectationForKind(token.KindRBracket)); err != nil {
			return nil, err
		}
		return arena.Alloc(p.arena, ast.Index{SpanVal: token.NewSpan(start, p.lastSpanEnd()), Lhs: lhs, Exp: idx}), nil

	case tok.IsOp(token.OpDot):
		p.pos++
		name, err := p.parseName()
		if err != nil {
			return nil, err
		}
		return arena.Alloc(p.arena, ast.Member{SpanVal: token.NewSpan(start, p.lastSpanEnd()), Lhs: lhs, Name: name}), nil

	case tok.Kind == token.KindLParen, tok.Kind == token.KindLBrace, tok.Kind == token.KindString:
		args, err := p.parseArgs()
		if err != nil {
			return nil, err
		}
		return arena.Alloc(p.arena, ast.FunctionCall{SpanVal: token.NewSpan(start, p.lastSpanEnd()), Lhs: lhs, Args: args}), nil

	case tok.IsOp(token.OpColon):
		p.pos++
		name, err := p.parseName()
		if err != nil {
			return nil, err
		}
		args, err := p.parseArgs()
		if err != nil {
			return nil, err
		}
		return arena.Alloc(p.arena, ast.MethodCall{SpanVal: token.NewSpan(start, p.lastSpanEnd()), Lhs: lhs, Name: name, Args: args}), nil

	default:
		return nil, errUnexpectedToken(tok.Span, ExpectationOf(ExpectPrefixExp), tok)
	}
}

// parseArgs parses a call's argument list: `(exp-list?)`, a single
// table constructor, or a single string literal.
func (p *Parser) parseArgs() ([]ast.Expression, error) {
	tok, ok := p.peek(0)
	if !ok {
		return nil, errUnexpectedEOF(ExpectationOf(ExpectArgs))
	}
	switch {
	case tok.Kind == token.KindLParen:
		p.pos++
		if p.tryConsumeKind(token.KindRParen) {
			return nil, nil
		}
		exps, err := p.parseExpList()
		if err != nil {
			return nil, err
		}
		if _, err := p.expectKind(token.KindRParen, expectationForKind(token.KindRParen)); err != nil {
			return nil, err
		}
		return exps, nil

	case tok.Kind == token.KindLBrace:
		tbl, err := p.parseTableConstructor()
		if err != nil {
			return nil, err
		}
		return []ast.Expression{tbl}, nil

	case tok.Kind == token.KindString:
		p.pos++
		return []ast.Expression{arena.Alloc(p.arena, ast.String{SpanVal: tok.Span, Value: tok.Str})}, nil

	default:
		return nil, errUnexpectedToken(tok.Span, ExpectationOf(ExpectArgs), tok)
	}
}

// parseTableConstructor parses `{ field (,|; field)* (,|;)? }`.
func (p *Parser) parseTableConstructor() (ast.Expression, error) {
	start := p.startSpan()
	if _, err := p.expectKind(token.KindLBrace, expectationForKind(token.KindLBrace)); err != nil {
		return nil, err
	}
	fields := arena.NewBuilder[ast.Field](p.arena)
	for !p.nextIsKind(token.KindRBrace) {
		f, err := p.parseTableField()
		if err != nil {
			return nil, err
		}
		fields.Push(f)
		if !p.tryConsumeKind(token.KindComma) && !p.tryConsumeKind(token.KindSemicolon) {
			break
		}
	}
	if _, err := p.expectKind(token.KindRBrace, expectationForKind(token.KindRBrace)); err != nil {
		return nil, err
	}
	return arena.Alloc(p.arena, ast.Table{SpanVal: token.NewSpan(start, p.lastSpanEnd()), Fields: fields.Build()}), nil
}

// parseTableField parses one field: `Name = exp` (`goto = exp`
// accepted too), `[exp] = exp`, or a bare positional `exp`.
func (p *Parser) parseTableField() (ast.Field, error) {
	tok, ok := p.peek(0)
	if !ok {
		return ast.Field{}, errUnexpectedEOF(ExpectationOf(ExpectExpression))
	}

	if tok.Kind == token.KindLBracket {
		p.pos++
		key, err := p.parseExp()
		if err != nil {
			return ast.Field{}, err
		}
		if _, err := p.expectKind(token.KindRBracket, expectationForKind(token.KindRBracket)); err != nil {
			return ast.Field{}, err
		}
		if _, err := p.expectOp(token.OpEq); err != nil {
			return ast.Field{}, err
		}
		value, err := p.parseExp()
		if err != nil {
			return ast.Field{}, err
		}
		return ast.Field{Key: key, Value: value}, nil
	}

	if tok.Kind == token.KindName || tok.IsKeyword(token.KwGoto) {
		if next, ok := p.peek(1); ok && next.IsOp(token.OpEq) {
			name, err := p.parseName()
			if err != nil {
				return ast.Field{}, err
			}
			if _, err := p.expectOp(token.OpEq); err != nil {
				return ast.Field{}, err
			}
			value, err := p.parseExp()
			if err != nil {
				return ast.Field{}, err
			}
			return ast.Field{Key: arena.Alloc(p.arena, ast.String{SpanVal: tok.Span, Value: name}), Value: value}, nil
		}
	}

	value, err := p.parseExp()
	if err != nil {
		return ast.Field{}, err
	}
	return ast.Field{Value: value}, nil
}
