// Package token defines the lexical categories the scanner produces:
// structural punctuation, keywords, operators, literals, names, labels
// and comments, each carrying a byte Span into the source buffer.
package token

import "fmt"

// Kind discriminates the variant of a Token. Go has no sum type with
// per-variant payloads, so Kind plus the payload fields on Token
// together render spec.md's tagged Token enum.
type Kind int

const (
	KindEOF Kind = iota

	// Structural punctuation.
	KindLBrace
	KindRBrace
	KindLParen
	KindRParen
	KindLBracket
	KindRBracket
	KindComma
	KindSemicolon
	KindEllipsis

	KindKeyword
	KindOp

	// Literal payloads.
	KindBool
	KindNil
	KindNumber
	KindString

	KindName
	KindLabel
	KindComment
)

func (k Kind) String() string {
	switch k {
	case KindEOF:
		return "eof"
	case KindLBrace:
		return "{"
	case KindRBrace:
		return "}"
	case KindLParen:
		return "("
	case KindRParen:
		return ")"
	case KindLBracket:
		return "["
	case KindRBracket:
		return "]"
	case KindComma:
		return ","
	case KindSemicolon:
		return ";"
	case KindEllipsis:
		return "..."
	case KindKeyword:
		return "keyword"
	case KindOp:
		return "operator"
	case KindBool:
		return "bool"
	case KindNil:
		return "nil"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindName:
		return "name"
	case KindLabel:
		return "label"
	case KindComment:
		return "comment"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Keyword enumerates the dialect's reserved words, including the
// continue/goto dialect extensions.
type Keyword int

const (
	KwBreak Keyword = iota
	KwDo
	KwElse
	KwElseif
	KwEnd
	KwFor
	KwFunction
	KwIf
	KwIn
	KwLocal
	KwRepeat
	KwReturn
	KwThen
	KwUntil
	KwWhile
	KwContinue
	KwGoto
)

var keywordText = map[Keyword]string{
	KwBreak:    "break",
	KwDo:       "do",
	KwElse:     "else",
	KwElseif:   "elseif",
	KwEnd:      "end",
	KwFor:      "for",
	KwFunction: "function",
	KwIf:       "if",
	KwIn:       "in",
	KwLocal:    "local",
	KwRepeat:   "repeat",
	KwReturn:   "return",
	KwThen:     "then",
	KwUntil:    "until",
	KwWhile:    "while",
	KwContinue: "continue",
	KwGoto:     "goto",
}

// Keywords maps the literal spelling to its Keyword constant. The
// scanner consults this once an identifier has been fully scanned.
var Keywords = func() map[string]Keyword {
	m := make(map[string]Keyword, len(keywordText))
	for k, s := range keywordText {
		m[s] = k
	}
	return m
}()

func (k Keyword) String() string {
	if s, ok := keywordText[k]; ok {
		return s
	}
	return fmt.Sprintf("Keyword(%d)", int(k))
}

// Op enumerates binary/unary operator spellings. Ne, Not, And and Or
// each have two dialect spellings (stock Lua and the C-style
// extensions) that scan to the same Op.
type Op int

const (
	OpAdd Op = iota
	OpAnd
	OpColon
	OpDiv
	OpDot
	OpDotDot
	OpEq
	OpEqEq
	OpExp
	OpGt
	OpGtEq
	OpLen
	OpLt
	OpLtEq
	OpMod
	OpMul
	OpNe
	OpNot
	OpOr
	OpSub
)

var opText = map[Op]string{
	OpAdd:   "+",
	OpAnd:   "and",
	OpColon: ":",
	OpDiv:   "/",
	OpDot:   ".",
	OpDotDot: "..",
	OpEq:    "=",
	OpEqEq:  "==",
	OpExp:   "^",
	OpGt:    ">",
	OpGtEq:  ">=",
	OpLen:   "#",
	OpLt:    "<",
	OpLtEq:  "<=",
	OpMod:   "%",
	OpMul:   "*",
	OpNe:    "~=",
	OpNot:   "not",
	OpOr:    "or",
	OpSub:   "-",
}

func (o Op) String() string {
	if s, ok := opText[o]; ok {
		return s
	}
	return fmt.Sprintf("Op(%d)", int(o))
}

// Token is a single lexical token together with its source span.
// Exactly the payload fields relevant to Kind are meaningful; the rest
// are zero.
type Token struct {
	Kind Kind
	Span Span

	Keyword Keyword
	Op      Op
	Bool    bool
	Number  float64
	// Str holds the decoded bytes of a string literal, a comment body,
	// a Name, or a Label -- whichever Kind applies. It is a direct
	// subslice of the source when no escape decoding was required, or
	// arena-owned bytes otherwise (see package lexer and package
	// arena).
	Str []byte
}

// IsOp reports whether t is the operator o.
func (t Token) IsOp(o Op) bool {
	return t.Kind == KindOp && t.Op == o
}

// IsKeyword reports whether t is the keyword k.
func (t Token) IsKeyword(k Keyword) bool {
	return t.Kind == KindKeyword && t.Keyword == k
}

// String renders a human-readable form of the token for error messages.
func (t Token) String() string {
	switch t.Kind {
	case KindKeyword:
		return t.Keyword.String()
	case KindOp:
		return t.Op.String()
	case KindBool:
		if t.Bool {
			return "true"
		}
		return "false"
	case KindNil:
		return "nil"
	case KindNumber:
		return fmt.Sprintf("%v", t.Number)
	case KindString:
		return fmt.Sprintf("%q", string(t.Str))
	case KindName:
		return string(t.Str)
	case KindLabel:
		return fmt.Sprintf("::%s::", t.Str)
	case KindComment:
		return "comment"
	default:
		return t.Kind.String()
	}
}
