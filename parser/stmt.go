package parser

import (
	"github.com/luadx-lang/luadx/arena"
	"github.com/luadx-lang/luadx/ast"
	"github.com/luadx-lang/luadx/token"
)

// ParseBlock repeats parseStatAttempt under the generic rewind primitive
// until a non-statement is reached (a block terminator keyword, or
// EOF), then optionally parses one terminal statement
// (break/continue/return).
func (p *Parser) ParseBlock() (ast.Block, error) {
	stmts := arena.NewBuilder[ast.Statement](p.arena)

	for {
		if p.blockShouldStopForTerminal() {
			break
		}
		stmt, ok, err := withRewind(p, p.parseStatAttempt)
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		stmts.Push(stmt)
		p.tryConsumeKind(token.KindSemicolon)
	}

	if tok, ok := p.peek(0); ok && isTerminalKeyword(tok) {
		stmt, err := p.parseTerminalStat()
		if err != nil {
			return nil, err
		}
		stmts.Push(stmt)
		p.tryConsumeKind(token.KindSemicolon)
	}

	return ast.Block(stmts.Build()), nil
}

func isTerminalKeyword(tok token.Token) bool {
	return tok.IsKeyword(token.KwBreak) || tok.IsKeyword(token.KwContinue) || tok.IsKeyword(token.KwReturn)
}

// blockShouldStopForTerminal reports whether the loop over
// parseStatAttempt should stop because the lookahead is a terminal
// statement, which is only ever parsed once, at block end, unless
// AllowMidBlockBreakContinue widens break/continue to ordinary
// statement position.
func (p *Parser) blockShouldStopForTerminal() bool {
	tok, ok := p.peek(0)
	if !ok {
		return false
	}
	if tok.IsKeyword(token.KwReturn) {
		return true
	}
	if !p.options.AllowMidBlockBreakContinue {
		return tok.IsKeyword(token.KwBreak) || tok.IsKeyword(token.KwContinue)
	}
	return false
}

func (p *Parser) parseTerminalStat() (ast.Statement, error) {
	tok, _ := p.peek(0)
	switch {
	case tok.IsKeyword(token.KwBreak):
		p.pos++
		return arena.Alloc(p.arena, ast.Break{SpanVal: tok.Span}), nil
	case tok.IsKeyword(token.KwContinue):
		p.pos++
		return arena.Alloc(p.arena, ast.Continue{SpanVal: tok.Span}), nil
	default:
		return p.parseReturnStat()
	}
}

func (p *Parser) parseReturnStat() (ast.Statement, error) {
	start := p.startSpan()
	if _, err := p.expectKeyword(token.KwReturn); err != nil {
		return nil, err
	}
	var exps []ast.Expression
	if !p.atEOF() {
		list, ok, err := withRewindExtra(p, p.parseExpList, isRewindableEmptyReturn)
		if err != nil {
			return nil, err
		}
		if ok {
			exps = list
		}
	}
	return arena.Alloc(p.arena, ast.Return{SpanVal: token.NewSpan(start, p.lastSpanEnd()), Exps: exps}), nil
}

// parseStatAttempt dispatches on the lookahead to one concrete
// statement parser. Its failures are the ones ParseBlock's rewind
// loop may convert into "no more statements here".
func (p *Parser) parseStatAttempt() (ast.Statement, error) {
	tok, ok := p.peek(0)
	if !ok {
		return nil, errUnexpectedEOF(ExpectationOf(ExpectStat))
	}

	if tok.Kind == token.KindLabel {
		p.pos++
		return arena.Alloc(p.arena, ast.Label{SpanVal: tok.Span, Name: tok.Str}), nil
	}

	if p.options.AllowMidBlockBreakContinue {
		if tok.IsKeyword(token.KwBreak) {
			p.pos++
			return arena.Alloc(p.arena, ast.Break{SpanVal: tok.Span}), nil
		}
		if tok.IsKeyword(token.KwContinue) {
			p.pos++
			return arena.Alloc(p.arena, ast.Continue{SpanVal: tok.Span}), nil
		}
	}

	if tok.Kind == token.KindKeyword {
		switch tok.Keyword {
		case token.KwDo:
			return p.parseDoStat()
		case token.KwWhile:
			return p.parseWhileStat()
		case token.KwRepeat:
			return p.parseRepeatStat()
		case token.KwIf:
			return p.parseIfStat()
		case token.KwFor:
			return p.parseForStat()
		case token.KwFunction:
			return p.parseFunctionDefStat()
		case token.KwLocal:
			return p.parseLocalStat()
		case token.KwGoto:
			if next, ok := p.peek(1); ok && next.Kind == token.KindName {
				return p.parseGotoStat()
			}
			// Falls through: goto is accepted here as an identifier.
		default:
			return nil, errUnexpectedToken(tok.Span, ExpectationOf(ExpectStat), tok)
		}
	}

	if tok.Kind == token.KindName || tok.Kind == token.KindLParen || tok.IsKeyword(token.KwGoto) {
		return p.parseAssignmentOrCallStat()
	}

	return nil, errUnexpectedToken(tok.Span, ExpectationOf(ExpectStat), tok)
}

// parseAssignmentOrCallStat implements the assignment/call
// disambiguation: a prefix expression is ambiguous between a Var
// (possibly the start of an Assignment) and a standalone call
// statement, and the choice can only be made after seeing what
// follows it.
func (p *Parser) parseAssignmentOrCallStat() (ast.Statement, error) {
	start := p.startSpan()
	save := p.pos

	varExpr, varErr := p.parseVar()
	if varErr == nil && (p.nextIsKind(token.KindComma) || p.nextIsOp(token.OpEq)) {
		vars := arena.NewBuilder[ast.Expression](p.arena)
		vars.Push(varExpr)
		for p.tryConsumeKind(token.KindComma) {
			v, err := p.parseVar()
			if err != nil {
				return nil, err
			}
			vars.Push(v)
		}
		if _, err := p.expectOp(token.OpEq); err != nil {
			return nil, err
		}
		exps, err := p.parseExpList()
		if err != nil {
			return nil, err
		}
		return arena.Alloc(p.arena, ast.Assignment{SpanVal: token.NewSpan(start, p.lastSpanEnd()), Vars: vars.Build(), Exps: exps}), nil
	}

	p.pos = save
	exp, err := p.parsePrefixExp()
	if err != nil {
		return nil, err
	}
	switch call := exp.(type) {
	case *ast.FunctionCall:
		return arena.Alloc(p.arena, ast.FunctionCallStat{SpanVal: token.NewSpan(start, p.lastSpanEnd()), Call: call}), nil
	case *ast.MethodCall:
		return arena.Alloc(p.arena, ast.MethodCallStat{SpanVal: token.NewSpan(start, p.lastSpanEnd()), Call: call}), nil
	default:
		return nil, errUnexpectedExp(exp.Span(), ExpectationOf(ExpectFunctionCall), "non-call expression")
	}
}

// parseVar requires a prefix expression that is a Ref, Member, or
// Index -- the restricted set valid as an assignment target or loop
// variable.
func (p *Parser) parseVar() (ast.Expression, error) {
	exp, err := p.parsePrefixExp()
	if err != nil {
		return nil, err
	}
	switch exp.(type) {
	case *ast.Ref, *ast.Member, *ast.Index:
		return exp, nil
	default:
		return nil, errUnexpectedExp(exp.Span(), ExpectationOf(ExpectVar), "non-var expression")
	}
}

func (p *Parser) parseDoStat() (ast.Statement, error) {
	start := p.startSpan()
	if _, err := p.expectKeyword(token.KwDo); err != nil {
		return nil, err
	}
	body, err := p.ParseBlock()
	if err != nil {
		return nil, err
	}
	if _, err := p.expectKeyword(token.KwEnd); err != nil {
		return nil, err
	}
	return arena.Alloc(p.arena, ast.Do{SpanVal: token.NewSpan(start, p.lastSpanEnd()), Body: body}), nil
}

func (p *Parser) parseWhileStat() (ast.Statement, error) {
	start := p.startSpan()
	if _, err := p.expectKeyword(token.KwWhile); err != nil {
		return nil, err
	}
	cond, err := p.parseExp()
	if err != nil {
		return nil, err
	}
	if _, err := p.expectKeyword(token.KwDo); err != nil {
		return nil, err
	}
	body, err := p.ParseBlock()
	if err != nil {
		return nil, err
	}
	if _, err := p.expectKeyword(token.KwEnd); err != nil {
		return nil, err
	}
	return arena.Alloc(p.arena, ast.While{SpanVal: token.NewSpan(start, p.lastSpanEnd()), Cond: cond, Body: body}), nil
}

func (p *Parser) parseRepeatStat() (ast.Statement, error) {
	start := p.startSpan()
	if _, err := p.expectKeyword(token.KwRepeat); err != nil {
		return nil, err
	}
	body, err := p.ParseBlock()
	if err != nil {
		return nil, err
	}
	if _, err := p.expectKeyword(token.KwUntil); err != nil {
		return nil, err
	}
	cond, err := p.parseExp()
	if err != nil {
		return nil, err
	}
	return arena.Alloc(p.arena, ast.RepeatUntil{SpanVal: token.NewSpan(start, p.lastSpanEnd()), Body: body, Cond: cond}), nil
}

func (p *Parser) parseIfStat() (ast.Statement, error) {
	start := p.startSpan()
	if _, err := p.expectKeyword(token.KwIf); err != nil {
		return nil, err
	}
	cond, err := p.parseExp()
	if err != nil {
		return nil, err
	}
	if _, err := p.expectKeyword(token.KwThen); err != nil {
		return nil, err
	}
	body, err := p.ParseBlock()
	if err != nil {
		return nil, err
	}

	elseIfs := arena.NewBuilder[ast.ElseIf](p.arena)
	for p.nextIsKeyword(token.KwElseif) {
		p.pos++
		c, err := p.parseExp()
		if err != nil {
			return nil, err
		}
		if _, err := p.expectKeyword(token.KwThen); err != nil {
			return nil, err
		}
		b, err := p.ParseBlock()
		if err != nil {
			return nil, err
		}
		elseIfs.Push(ast.ElseIf{Cond: c, Body: b})
	}

	var elseBlock ast.Block
	if p.nextIsKeyword(token.KwElse) {
		p.pos++
		b, err := p.ParseBlock()
		if err != nil {
			return nil, err
		}
		elseBlock = b
	}

	if _, err := p.expectKeyword(token.KwEnd); err != nil {
		return nil, err
	}
	return arena.Alloc(p.arena, ast.IfElse{
		SpanVal: token.NewSpan(start, p.lastSpanEnd()),
		Cond:    cond, Body: body, ElseIfs: elseIfs.Build(), Else: elseBlock,
	}), nil
}

func (p *Parser) parseForStat() (ast.Statement, error) {
	start := p.startSpan()
	if _, err := p.expectKeyword(token.KwFor); err != nil {
		return nil, err
	}
	nameTok, err := p.expectKind(token.KindName, ExpectationOf(ExpectName))
	if err != nil {
		return nil, err
	}
	if p.nextIsOp(token.OpEq) {
		return p.parseNumericForStat(start, nameTok.Str)
	}
	return p.parseGenericForStat(start, nameTok.Str)
}

func (p *Parser) parseNumericForStat(start int, name []byte) (ast.Statement, error) {
	if _, err := p.expectOp(token.OpEq); err != nil {
		return nil, err
	}
	initExp, err := p.parseExp()
	if err != nil {
		return nil, err
	}
	if _, err := p.expectKind(token.KindComma, expectationForKind(token.KindComma)); err != nil {
		return nil, err
	}
	testExp, err := p.parseExp()
	if err != nil {
		return nil, err
	}
	var updateExp ast.Expression
	if p.tryConsumeKind(token.KindComma) {
		u, err := p.parseExp()
		if err != nil {
			return nil, err
		}
		updateExp = u
	}
	if _, err := p.expectKeyword(token.KwDo); err != nil {
		return nil, err
	}
	body, err := p.ParseBlock()
	if err != nil {
		return nil, err
	}
	if _, err := p.expectKeyword(token.KwEnd); err != nil {
		return nil, err
	}
	return arena.Alloc(p.arena, ast.For{
		SpanVal: token.NewSpan(start, p.lastSpanEnd()),
		InitName: name, InitExp: initExp, Test: testExp, Update: updateExp, Body: body,
	}), nil
}

func (p *Parser) parseGenericForStat(start int, firstName []byte) (ast.Statement, error) {
	names := arena.NewBuilder[[]byte](p.arena)
	names.Push(firstName)
	for p.tryConsumeKind(token.KindComma) {
		n, err := p.expectKind(token.KindName, ExpectationOf(ExpectName))
		if err != nil {
			return nil, err
		}
		names.Push(n.Str)
	}
	if _, err := p.expectKeyword(token.KwIn); err != nil {
		return nil, err
	}
	exps, err := p.parseExpList()
	if err != nil {
		return nil, err
	}
	if _, err := p.expectKeyword(token.KwDo); err != nil {
		return nil, err
	}
	body, err := p.ParseBlock()
	if err != nil {
		return nil, err
	}
	if _, err := p.expectKeyword(token.KwEnd); err != nil {
		return nil, err
	}
	return arena.Alloc(p.arena, ast.ForIn{SpanVal: token.NewSpan(start, p.lastSpanEnd()), Names: names.Build(), Exps: exps, Body: body}), nil
}

func (p *Parser) parseFunctionDefStat() (ast.Statement, error) {
	start := p.startSpan()
	if _, err := p.expectKeyword(token.KwFunction); err != nil {
		return nil, err
	}
	name, err := p.parseFunctionName()
	if err != nil {
		return nil, err
	}
	fn, err := p.parseFunctionBody()
	if err != nil {
		return nil, err
	}
	return arena.Alloc(p.arena, ast.FunctionDef{SpanVal: token.NewSpan(start, p.lastSpanEnd()), Local: false, Name: name, Body: fn}), nil
}

// parseFunctionName parses the dotted-path-plus-optional-method target
// of `function a.b.c:d() ... end`.
func (p *Parser) parseFunctionName() (ast.FunctionName, error) {
	first, err := p.parseName()
	if err != nil {
		return ast.FunctionName{}, err
	}
	path := arena.NewBuilder[[]byte](p.arena)
	path.Push(first)
	for p.tryConsumeOp(token.OpDot) {
		n, err := p.parseName()
		if err != nil {
			return ast.FunctionName{}, err
		}
		path.Push(n)
	}
	var method []byte
	if p.tryConsumeOp(token.OpColon) {
		n, err := p.parseName()
		if err != nil {
			return ast.FunctionName{}, err
		}
		method = n
	}
	return ast.FunctionName{Path: path.Build(), Method: method}, nil
}

// parseName accepts a Name token, or -- the goto-as-identifier
// concession -- the `goto` keyword, returning its spelling.
func (p *Parser) parseName() ([]byte, error) {
	tok, ok := p.peek(0)
	if !ok {
		return nil, errUnexpectedEOF(ExpectationOf(ExpectName))
	}
	if tok.Kind == token.KindName {
		p.pos++
		return tok.Str, nil
	}
	if tok.IsKeyword(token.KwGoto) {
		p.pos++
		return []byte("goto"), nil
	}
	return nil, errUnexpectedToken(tok.Span, ExpectationOf(ExpectName), tok)
}

func (p *Parser) parseLocalStat() (ast.Statement, error) {
	start := p.startSpan()
	if _, err := p.expectKeyword(token.KwLocal); err != nil {
		return nil, err
	}
	if p.nextIsKeyword(token.KwFunction) {
		p.pos++
		nameBytes, err := p.parseName()
		if err != nil {
			return nil, err
		}
		fn, err := p.parseFunctionBody()
		if err != nil {
			return nil, err
		}
		return arena.Alloc(p.arena, ast.FunctionDef{
			SpanVal: token.NewSpan(start, p.lastSpanEnd()),
			Local:   true,
			Name:    ast.FunctionName{Path: [][]byte{nameBytes}},
			Body:    fn,
		}), nil
	}

	names := arena.NewBuilder[[]byte](p.arena)
	for {
		n, err := p.expectKind(token.KindName, ExpectationOf(ExpectName))
		if err != nil {
			return nil, err
		}
		names.Push(n.Str)
		if !p.tryConsumeKind(token.KindComma) {
			break
		}
	}
	var init []ast.Expression
	if p.tryConsumeOp(token.OpEq) {
		exps, err := p.parseExpList()
		if err != nil {
			return nil, err
		}
		init = exps
	}
	return arena.Alloc(p.arena, ast.VarDef{SpanVal: token.NewSpan(start, p.lastSpanEnd()), Names: names.Build(), Init: init}), nil
}

func (p *Parser) parseGotoStat() (ast.Statement, error) {
	start := p.startSpan()
	if _, err := p.expectKeyword(token.KwGoto); err != nil {
		return nil, err
	}
	n, err := p.expectKind(token.KindName, ExpectationOf(ExpectName))
	if err != nil {
		return nil, err
	}
	return arena.Alloc(p.arena, ast.Goto{SpanVal: token.NewSpan(start, p.lastSpanEnd()), Label: n.Str}), nil
}

// parseExpList parses one or more comma-separated expressions. A
// lookahead token that cannot begin an expression surfaces as an
// UnexpectedToken{expected: Expression}, which is the shape
// parseReturnStat's rewind needs to recognise an empty return list.
func (p *Parser) parseExpList() ([]ast.Expression, error) {
	if tok, ok := p.peek(0); ok {
		if _, hasNud := nudTable[keyOf(tok)]; !hasNud && tok.Kind != token.KindName && tok.Kind != token.KindLParen && !tok.IsKeyword(token.KwGoto) {
			return nil, errUnexpectedToken(tok.Span, ExpectationOf(ExpectExpression), tok)
		}
	}
	first, err := p.parseExp()
	if err != nil {
		return nil, err
	}
	exps := arena.NewBuilder[ast.Expression](p.arena)
	exps.Push(first)
	for p.tryConsumeKind(token.KindComma) {
		e, err := p.parseExp()
		if err != nil {
			return nil, err
		}
		exps.Push(e)
	}
	return exps.Build(), nil
}
