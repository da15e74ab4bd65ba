// Package parser turns a token stream into an ast.Block via a
// recursive-descent statement parser and a Pratt expression parser,
// with a bounded-lookahead speculative "rewind" primitive for the
// handful of statement forms that share a prefix.
package parser

import (
	"github.com/luadx-lang/luadx/arena"
	"github.com/luadx-lang/luadx/ast"
	"github.com/luadx-lang/luadx/lexer"
	"github.com/luadx-lang/luadx/token"
)

// Options toggles behaviours the source this was distilled from left
// ambiguous or host-dependent.
type Options struct {
	// AllowMidBlockBreakContinue permits `break`/`continue` anywhere in
	// a block. When false (the default, matching the observed
	// behaviour), they are only accepted as the final statement.
	AllowMidBlockBreakContinue bool
}

// Parser holds an immutable token slice and a cursor over it.
type Parser struct {
	tokens  []token.Token
	pos     int
	arena   *arena.Arena
	options Options
}

// New builds a Parser over a pre-scanned token slice (comments
// already filtered out by package lexer).
func New(tokens []token.Token, a *arena.Arena, opts Options) *Parser {
	return &Parser{tokens: tokens, arena: a, options: opts}
}

// ParseChunk scans src, then parses it as a complete chunk: a block
// followed by a required EOF.
func ParseChunk(src []byte, a *arena.Arena, opts Options) (ast.Block, error) {
	toks, err := lexer.Scan(src, a)
	if err != nil {
		var lexErr *lexer.LexerError
		if ok := asLexerError(err, &lexErr); ok {
			return nil, errLexer(lexErr.Span)
		}
		return nil, err
	}
	p := New(toks, a, opts)
	return p.ParseChunk()
}

func asLexerError(err error, target **lexer.LexerError) bool {
	if le, ok := err.(*lexer.LexerError); ok {
		*target = le
		return true
	}
	return false
}

// ParseChunk parses the entire token stream as a block and requires
// EOF to follow.
func (p *Parser) ParseChunk() (ast.Block, error) {
	block, err := p.ParseBlock()
	if err != nil {
		return nil, err
	}
	if !p.atEOF() {
		tok, _ := p.peek(0)
		return nil, errUnexpectedToken(tok.Span, ExpectationOf(ExpectEOF), tok)
	}
	return block, nil
}

// --- token navigation -------------------------------------------------

func (p *Parser) atEOF() bool { return p.pos >= len(p.tokens) }

// peek returns the token k positions beyond pos without advancing.
func (p *Parser) peek(k int) (token.Token, bool) {
	idx := p.pos + k
	if idx < 0 || idx >= len(p.tokens) {
		return token.Token{}, false
	}
	return p.tokens[idx], true
}

// consume advances past and returns the current token, or an
// UnexpectedEof error if the stream is exhausted.
func (p *Parser) consume(expected Expectation) (token.Token, error) {
	tok, ok := p.peek(0)
	if !ok {
		return token.Token{}, errUnexpectedEOF(expected)
	}
	p.pos++
	return tok, nil
}

// expectKind requires the current token to have the given Kind,
// consuming it on success.
func (p *Parser) expectKind(kind token.Kind, expected Expectation) (token.Token, error) {
	tok, ok := p.peek(0)
	if !ok {
		return token.Token{}, errUnexpectedEOF(expected)
	}
	if tok.Kind != kind {
		return token.Token{}, errUnexpectedToken(tok.Span, expected, tok)
	}
	p.pos++
	return tok, nil
}

// expectKeyword requires the current token to be keyword k.
func (p *Parser) expectKeyword(k token.Keyword) (token.Token, error) {
	tok, ok := p.peek(0)
	if !ok {
		return token.Token{}, errUnexpectedEOF(ExpectationKeyword(k))
	}
	if !tok.IsKeyword(k) {
		return token.Token{}, errUnexpectedToken(tok.Span, ExpectationKeyword(k), tok)
	}
	p.pos++
	return tok, nil
}

// expectOp requires the current token to be operator o.
func (p *Parser) expectOp(o token.Op) (token.Token, error) {
	tok, ok := p.peek(0)
	if !ok {
		return token.Token{}, errUnexpectedEOF(ExpectationOp(o))
	}
	if !tok.IsOp(o) {
		return token.Token{}, errUnexpectedToken(tok.Span, ExpectationOp(o), tok)
	}
	p.pos++
	return tok, nil
}

// expectationForKind builds an Expectation that renders as the
// punctuation/keyword spelling of kind, e.g. "," or ")", by reusing
// token.Token's own String method.
func expectationForKind(kind token.Kind) Expectation {
	return ExpectationToken(token.Token{Kind: kind})
}

func (p *Parser) nextIsKind(kind token.Kind) bool {
	tok, ok := p.peek(0)
	return ok && tok.Kind == kind
}

func (p *Parser) nextIsKeyword(k token.Keyword) bool {
	tok, ok := p.peek(0)
	return ok && tok.IsKeyword(k)
}

func (p *Parser) nextIsOp(o token.Op) bool {
	tok, ok := p.peek(0)
	return ok && tok.IsOp(o)
}

// tryConsumeOp consumes the current token if it is operator o.
func (p *Parser) tryConsumeOp(o token.Op) bool {
	if p.nextIsOp(o) {
		p.pos++
		return true
	}
	return false
}

// tryConsumeKind consumes the current token if it has the given Kind.
func (p *Parser) tryConsumeKind(kind token.Kind) bool {
	if p.nextIsKind(kind) {
		p.pos++
		return true
	}
	return false
}

// lastSpanEnd is the End of the most recently consumed token; used to
// close out a node's span once its closing token has been consumed.
func (p *Parser) lastSpanEnd() int {
	if p.pos == 0 {
		return 0
	}
	return p.tokens[p.pos-1].Span.End
}

func (p *Parser) startSpan() int {
	if tok, ok := p.peek(0); ok {
		return tok.Span.Start
	}
	return p.lastSpanEnd()
}

// --- rewind primitive ---------------------------------------------------

// withRewind runs fn speculatively. If fn succeeds, ok is true and
// value holds the result. If fn fails with a rewindable error (see
// isRewindable), pos is restored, ok is false, and err is nil --
// signalling "try the next alternative". Any other error is an abort:
// ok is false and err is the error to propagate, with pos left
// wherever fn left it (no alternative should be tried).
func withRewind[T any](p *Parser, fn func() (T, error)) (value T, ok bool, err error) {
	return withRewindExtra(p, fn, nil)
}

// withRewindExtra is withRewind with an additional rewindable-error
// predicate layered on for call sites (empty `return`) where an
// UnexpectedToken expecting an Expression is also rewindable.
func withRewindExtra[T any](p *Parser, fn func() (T, error), extra func(*Error) bool) (value T, ok bool, err error) {
	save := p.pos
	v, ferr := fn()
	if ferr == nil {
		return v, true, nil
	}
	if isRewindable(ferr, extra) {
		p.pos = save
		var zero T
		return zero, false, nil
	}
	var zero T
	return zero, false, ferr
}

// isRewindable reports whether err belongs to the fixed whitelist of
// rewindable shapes. This is a type/field check on the structured
// Error, never a match on an error message string.
func isRewindable(err error, extra func(*Error) bool) bool {
	e, ok := err.(*Error)
	if !ok {
		return false
	}
	switch e.Kind {
	case ErrUnexpectedEOF:
		if e.Expected.Kind == ExpectStat {
			return true
		}
		if extra != nil && extra(e) {
			return true
		}
	case ErrUnexpectedToken:
		if e.Expected.Kind == ExpectStat {
			return true
		}
		if extra != nil && extra(e) {
			return true
		}
	}
	return false
}

func isRewindableEmptyReturn(e *Error) bool {
	return e.Kind == ErrUnexpectedToken && e.Expected.Kind == ExpectExpression
}

// --- span-tracking node wrapper -----------------------------------------

// spanned runs fn, then stamps the returned span as
// [start-of-first-consumed-token, end-of-last-consumed-token). The
// parse methods in this package do not call it; each computes its
// span inline from startSpan and lastSpanEnd.
func spanned[T any](p *Parser, fn func() (T, error)) (T, token.Span, error) {
	start := p.startSpan()
	v, err := fn()
	if err != nil {
		var zero T
		return zero, token.Span{}, err
	}
	return v, token.NewSpan(start, p.lastSpanEnd()), nil
}
