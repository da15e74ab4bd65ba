package parser

import (
	"fmt"
	"strings"

	"github.com/luadx-lang/luadx/token"
)

// ExpectationKind classifies what a parse step wanted when it failed,
// mirroring the taxonomy of the original implementation's Expectation
// enum: either a specific token/operator/keyword, a syntactic
// category, or a set of token alternatives.
type ExpectationKind int

const (
	ExpectArgs ExpectationKind = iota
	ExpectEOF
	ExpectExpression
	ExpectFunctionCall
	ExpectKeyword
	ExpectName
	ExpectOp
	ExpectPrefixExp
	ExpectStat
	ExpectToken
	ExpectTokens
	ExpectVar
)

func (k ExpectationKind) String() string {
	switch k {
	case ExpectArgs:
		return "argument list"
	case ExpectEOF:
		return "end of input"
	case ExpectExpression:
		return "expression"
	case ExpectFunctionCall:
		return "function call"
	case ExpectKeyword:
		return "keyword"
	case ExpectName:
		return "name"
	case ExpectOp:
		return "operator"
	case ExpectPrefixExp:
		return "prefix expression"
	case ExpectStat:
		return "statement"
	case ExpectToken:
		return "token"
	case ExpectTokens:
		return "one of several tokens"
	case ExpectVar:
		return "var"
	default:
		return "?"
	}
}

// Expectation describes what a failed parse step wanted. Exactly the
// payload field matching Kind is meaningful.
type Expectation struct {
	Kind    ExpectationKind
	Keyword token.Keyword
	Op      token.Op
	Token   token.Token
	Tokens  []token.Token
}

func ExpectationOf(kind ExpectationKind) Expectation { return Expectation{Kind: kind} }

func ExpectationKeyword(k token.Keyword) Expectation {
	return Expectation{Kind: ExpectKeyword, Keyword: k}
}

func ExpectationOp(o token.Op) Expectation {
	return Expectation{Kind: ExpectOp, Op: o}
}

func ExpectationToken(t token.Token) Expectation {
	return Expectation{Kind: ExpectToken, Token: t}
}

func ExpectationTokens(ts ...token.Token) Expectation {
	return Expectation{Kind: ExpectTokens, Tokens: ts}
}

func (e Expectation) String() string {
	switch e.Kind {
	case ExpectKeyword:
		return fmt.Sprintf("keyword %q", e.Keyword.String())
	case ExpectOp:
		return fmt.Sprintf("operator %q", e.Op.String())
	case ExpectToken:
		return e.Token.String()
	case ExpectTokens:
		parts := make([]string, len(e.Tokens))
		for i, t := range e.Tokens {
			parts[i] = t.String()
		}
		return strings.Join(parts, " or ")
	default:
		return e.Kind.String()
	}
}

// ErrorKind discriminates the shape of a parser-surfaced error.
type ErrorKind int

const (
	ErrLexer ErrorKind = iota
	ErrUnexpectedEOF
	ErrUnexpectedToken
	ErrUnexpectedExp
)

// Error is the parser's single user-visible error type: a lexer
// failure at a span, the token stream running out with an
// expectation, an unexpected token at a span, or a structurally valid
// expression that was the wrong kind (e.g. not a Var).
type Error struct {
	Kind     ErrorKind
	Span     token.Span
	Expected Expectation
	Got      token.Token
	GotExp   string
}

func (e *Error) Error() string {
	switch e.Kind {
	case ErrLexer:
		return fmt.Sprintf("lex error at %s", e.Span)
	case ErrUnexpectedEOF:
		return fmt.Sprintf("unexpected end of input, expected %s", e.Expected)
	case ErrUnexpectedToken:
		return fmt.Sprintf("unexpected %s at %s, expected %s", e.Got, e.Span, e.Expected)
	case ErrUnexpectedExp:
		return fmt.Sprintf("unexpected %s at %s, expected %s", e.GotExp, e.Span, e.Expected)
	default:
		return "parse error"
	}
}

func errLexer(span token.Span) *Error {
	return &Error{Kind: ErrLexer, Span: span}
}

func errUnexpectedEOF(expected Expectation) *Error {
	return &Error{Kind: ErrUnexpectedEOF, Expected: expected}
}

func errUnexpectedToken(span token.Span, expected Expectation, got token.Token) *Error {
	return &Error{Kind: ErrUnexpectedToken, Span: span, Expected: expected, Got: got}
}

func errUnexpectedExp(span token.Span, expected Expectation, gotExp string) *Error {
	return &Error{Kind: ErrUnexpectedExp, Span: span, Expected: expected, GotExp: gotExp}
}
