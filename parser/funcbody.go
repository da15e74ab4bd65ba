package parser

import (
	"github.com/luadx-lang/luadx/arena"
	"github.com/luadx-lang/luadx/ast"
	"github.com/luadx-lang/luadx/token"
)

// parseFunctionBody parses `(paramlist?) block end`, shared by the
// `function` nud parselet and the two statement forms
// (`function name...` and `local function name`) that wrap it with
// their own name handling. The returned Function's SpanVal covers
// only the parameter list through `end`; the `function` expression
// parselet extends it to include the leading keyword, while the
// statement forms leave it as is and span the keyword and name in
// their own FunctionDef node.
func (p *Parser) parseFunctionBody() (*ast.Function, error) {
	start := p.startSpan()
	if _, err := p.expectKind(token.KindLParen, expectationForKind(token.KindLParen)); err != nil {
		return nil, err
	}

	params := arena.NewBuilder[[]byte](p.arena)
	if !p.nextIsKind(token.KindRParen) {
		for {
			if p.tryConsumeKind(token.KindEllipsis) {
				params.Push([]byte("..."))
				break
			}
			n, err := p.expectKind(token.KindName, ExpectationOf(ExpectName))
			if err != nil {
				return nil, err
			}
			params.Push(n.Str)
			if !p.tryConsumeKind(token.KindComma) {
				break
			}
		}
	}

	if _, err := p.expectKind(token.KindRParen, expectationForKind(token.KindRParen)); err != nil {
		return nil, err
	}

	body, err := p.ParseBlock()
	if err != nil {
		return nil, err
	}
	if _, err := p.expectKeyword(token.KwEnd); err != nil {
		return nil, err
	}

	return arena.Alloc(p.arena, ast.Function{SpanVal: token.NewSpan(start, p.lastSpanEnd()), Params: params.Build(), Body: body}), nil
}
