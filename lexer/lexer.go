// Package lexer scans a UTF-8 source buffer into a stream of
// token.Token values: structural punctuation, keywords, operators,
// literals, names, labels and comments. Scan filters comments out
// before returning, since the parser never sees them.
package lexer

import (
	"fmt"
	"math"
	"strconv"

	"github.com/luadx-lang/luadx/arena"
	"github.com/luadx-lang/luadx/token"
)

// LexerError reports a span the scanner could not turn into a valid
// token.
type LexerError struct {
	Span token.Span
}

func (e *LexerError) Error() string {
	return fmt.Sprintf("lexer: invalid input at %s", e.Span)
}

// Lexer scans one source buffer. The zero value is not usable; build
// one with New.
type Lexer struct {
	src   []byte
	pos   int
	arena *arena.Arena
}

// New returns a Lexer over src. Decoded string literals that require
// escape processing are interned on a.
func New(src []byte, a *arena.Arena) *Lexer {
	return &Lexer{src: src, arena: a}
}

// Scan runs l to completion and returns every non-comment token in
// source order, or the first LexerError encountered.
func Scan(src []byte, a *arena.Arena) ([]token.Token, error) {
	l := New(src, a)
	toks := arena.NewBuilder[token.Token](a)
	for {
		tok, ok, err := l.Next()
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		if tok.Kind == token.KindComment {
			continue
		}
		toks.Push(tok)
	}
	return toks.Build(), nil
}

// Next scans and returns the next token. ok is false once the input
// is exhausted; callers should stop calling Next once ok is false or
// err is non-nil.
func (l *Lexer) Next() (token.Token, bool, error) {
	l.skipWhitespace()
	if l.pos >= len(l.src) {
		return token.Token{}, false, nil
	}

	start := l.pos
	c := l.src[l.pos]

	switch {
	case c == '{':
		l.pos++
		return l.structural(token.KindLBrace, start), true, nil
	case c == '}':
		l.pos++
		return l.structural(token.KindRBrace, start), true, nil
	case c == '(':
		l.pos++
		return l.structural(token.KindLParen, start), true, nil
	case c == ')':
		l.pos++
		return l.structural(token.KindRParen, start), true, nil
	case c == ']':
		l.pos++
		return l.structural(token.KindRBracket, start), true, nil
	case c == ',':
		l.pos++
		return l.structural(token.KindComma, start), true, nil
	case c == ';':
		l.pos++
		return l.structural(token.KindSemicolon, start), true, nil
	case c == '[':
		return l.scanBracket(start)
	case c == ':':
		return l.scanColonOrLabel(start)
	case c == '.':
		return l.scanDotOrNumber(start)
	case c == '-':
		return l.scanMinusOrComment(start)
	case c == '/':
		return l.scanSlashOrComment(start)
	case c == '=':
		return l.scanTwoByte(start, '=', token.OpEqEq, token.OpEq)
	case c == '>':
		return l.scanTwoByte(start, '=', token.OpGtEq, token.OpGt)
	case c == '<':
		return l.scanTwoByte(start, '=', token.OpLtEq, token.OpLt)
	case c == '~':
		return l.scanRequiredTwoByte(start, '=', token.OpNe)
	case c == '!':
		return l.scanBang(start)
	case c == '&':
		return l.scanRequiredTwoByte(start, '&', token.OpAnd)
	case c == '|':
		return l.scanRequiredTwoByte(start, '|', token.OpOr)
	case c == '+':
		l.pos++
		return l.opTok(token.OpAdd, start), true, nil
	case c == '^':
		l.pos++
		return l.opTok(token.OpExp, start), true, nil
	case c == '#':
		l.pos++
		return l.opTok(token.OpLen, start), true, nil
	case c == '%':
		l.pos++
		return l.opTok(token.OpMod, start), true, nil
	case c == '*':
		l.pos++
		return l.opTok(token.OpMul, start), true, nil
	case c == '"' || c == '\'':
		return l.scanShortString(start, c)
	case isDigit(c):
		return l.scanNumber(start)
	case isIdentStart(c):
		return l.scanIdentifier(start)
	default:
		l.pos++
		return token.Token{}, false, l.errAt(start)
	}
}

func (l *Lexer) skipWhitespace() {
	for l.pos < len(l.src) {
		switch l.src[l.pos] {
		case ' ', '\t', '\r', '\n', '\f':
			l.pos++
			continue
		}
		if l.pos+2 < len(l.src) && l.src[l.pos] == 0xEF && l.src[l.pos+1] == 0xBB && l.src[l.pos+2] == 0xBF {
			l.pos += 3
			continue
		}
		return
	}
}

// scanTwoByte handles an operator whose one-byte spelling shortens to
// oneByte, or lengthens to twoByte when followed by second.
func (l *Lexer) scanTwoByte(start int, second byte, twoByte, oneByte token.Op) (token.Token, bool, error) {
	if l.pos+1 < len(l.src) && l.src[l.pos+1] == second {
		l.pos += 2
		return l.opTok(twoByte, start), true, nil
	}
	l.pos++
	return l.opTok(oneByte, start), true, nil
}

// scanRequiredTwoByte handles an operator that has no one-byte
// spelling: the current byte must be followed by second.
func (l *Lexer) scanRequiredTwoByte(start int, second byte, op token.Op) (token.Token, bool, error) {
	if l.pos+1 < len(l.src) && l.src[l.pos+1] == second {
		l.pos += 2
		return l.opTok(op, start), true, nil
	}
	l.pos++
	return token.Token{}, false, l.errAt(start)
}

// scanBang handles '!': "!=" is Ne, bare "!" is the C-style spelling
// of Not.
func (l *Lexer) scanBang(start int) (token.Token, bool, error) {
	if l.pos+1 < len(l.src) && l.src[l.pos+1] == '=' {
		l.pos += 2
		return l.opTok(token.OpNe, start), true, nil
	}
	l.pos++
	return l.opTok(token.OpNot, start), true, nil
}

// scanColonOrLabel handles ':': "::name::" is a Label, bare ":" is
// the Colon operator used by method-call syntax.
func (l *Lexer) scanColonOrLabel(start int) (token.Token, bool, error) {
	if l.pos+1 < len(l.src) && l.src[l.pos+1] == ':' {
		p := l.pos + 2
		nameStart := p
		for p < len(l.src) && isIdentCont(l.src[p]) {
			p++
		}
		if p > nameStart && p+1 < len(l.src) && l.src[p] == ':' && l.src[p+1] == ':' {
			name := l.src[nameStart:p]
			l.pos = p + 2
			tok := token.Token{Kind: token.KindLabel, Str: name}
			tok.Span = l.spanFrom(start)
			return tok, true, nil
		}
	}
	l.pos++
	return l.opTok(token.OpColon, start), true, nil
}

// scanDotOrNumber handles '.': "..." is Ellipsis, ".<digit>" begins a
// leading-dot number literal, ".." is DotDot, bare "." is Dot.
func (l *Lexer) scanDotOrNumber(start int) (token.Token, bool, error) {
	if l.pos+2 < len(l.src) && l.src[l.pos+1] == '.' && l.src[l.pos+2] == '.' {
		l.pos += 3
		return l.structural(token.KindEllipsis, start), true, nil
	}
	if l.pos+1 < len(l.src) && isDigit(l.src[l.pos+1]) {
		return l.scanNumber(start)
	}
	if l.pos+1 < len(l.src) && l.src[l.pos+1] == '.' {
		l.pos += 2
		return l.opTok(token.OpDotDot, start), true, nil
	}
	l.pos++
	return l.opTok(token.OpDot, start), true, nil
}

// scanMinusOrComment handles '-': "--" opens a line or long comment,
// bare "-" is the Sub operator.
func (l *Lexer) scanMinusOrComment(start int) (token.Token, bool, error) {
	if l.pos+1 < len(l.src) && l.src[l.pos+1] == '-' {
		l.pos += 2
		return l.scanLineOrLongComment(start)
	}
	l.pos++
	return l.opTok(token.OpSub, start), true, nil
}

// scanSlashOrComment handles '/': "//" opens a line comment, "/*"
// opens a C-style block comment, bare "/" is the Div operator.
func (l *Lexer) scanSlashOrComment(start int) (token.Token, bool, error) {
	if l.pos+1 < len(l.src) && l.src[l.pos+1] == '/' {
		l.pos += 2
		bodyStart := l.pos
		for l.pos < len(l.src) && l.src[l.pos] != '\n' {
			l.pos++
		}
		return l.comment(start, l.src[bodyStart:l.pos]), true, nil
	}
	if l.pos+1 < len(l.src) && l.src[l.pos+1] == '*' {
		l.pos += 2
		bodyStart := l.pos
		for {
			if l.pos >= len(l.src) {
				return token.Token{}, false, &LexerError{Span: token.NewSpan(start, len(l.src))}
			}
			if l.src[l.pos] == '*' && l.pos+1 < len(l.src) && l.src[l.pos+1] == '/' {
				body := l.src[bodyStart:l.pos]
				l.pos += 2
				return l.comment(start, body), true, nil
			}
			l.pos++
		}
	}
	l.pos++
	return l.opTok(token.OpDiv, start), true, nil
}

// scanLineOrLongComment handles the body of a "--"-introduced comment.
// The ambiguous "--[" case: a long comment opens only if "=*[" follows
// immediately; otherwise this is a single-line comment whose body
// starts right here (offset 2 past "--").
func (l *Lexer) scanLineOrLongComment(start int) (token.Token, bool, error) {
	if level, next, ok := tryLongOpen(l.src, l.pos); ok {
		l.pos = next
		bodyStart := l.pos
		for {
			if l.pos >= len(l.src) {
				return token.Token{}, false, &LexerError{Span: token.NewSpan(start, len(l.src))}
			}
			if l.src[l.pos] == ']' {
				if _, nxt, ok2 := tryLongClose(l.src, l.pos, level); ok2 {
					body := l.src[bodyStart:l.pos]
					l.pos = nxt
					return l.comment(start, body), true, nil
				}
			}
			l.pos++
		}
	}
	bodyStart := l.pos
	for l.pos < len(l.src) && l.src[l.pos] != '\n' {
		l.pos++
	}
	return l.comment(start, l.src[bodyStart:l.pos]), true, nil
}

// scanBracket handles '[': a long-bracket string opens when "=*["
// follows immediately, otherwise this is the structural LBracket.
func (l *Lexer) scanBracket(start int) (token.Token, bool, error) {
	if level, next, ok := tryLongOpen(l.src, l.pos); ok {
		l.pos = next
		return l.scanLongString(start, level)
	}
	l.pos++
	return l.structural(token.KindLBracket, start), true, nil
}

// scanLongString reads a long-bracket string's contents verbatim
// until the matching "]=*]" close. A newline immediately following
// the opening bracket is skipped, matching the original dialect's
// convention.
func (l *Lexer) scanLongString(start, level int) (token.Token, bool, error) {
	if l.pos < len(l.src) && l.src[l.pos] == '\r' {
		l.pos++
	}
	if l.pos < len(l.src) && l.src[l.pos] == '\n' {
		l.pos++
	}
	contentStart := l.pos
	for {
		if l.pos >= len(l.src) {
			return token.Token{}, false, &LexerError{Span: token.NewSpan(start, len(l.src))}
		}
		if l.src[l.pos] == ']' {
			if _, next, ok := tryLongClose(l.src, l.pos, level); ok {
				content := l.src[contentStart:l.pos]
				l.pos = next
				tok := token.Token{Kind: token.KindString, Str: content}
				tok.Span = l.spanFrom(start)
				return tok, true, nil
			}
		}
		l.pos++
	}
}

// tryLongOpen reports whether src[pos:] begins a long-bracket opening
// "[=*[", returning its nesting level and the position right after
// the opening.
func tryLongOpen(src []byte, pos int) (level, next int, ok bool) {
	if pos >= len(src) || src[pos] != '[' {
		return 0, 0, false
	}
	p := pos + 1
	for p < len(src) && src[p] == '=' {
		level++
		p++
	}
	if p < len(src) && src[p] == '[' {
		return level, p + 1, true
	}
	return 0, 0, false
}

// tryLongClose reports whether src[pos:] is a long-bracket close
// "]=*]" at the given nesting level.
func tryLongClose(src []byte, pos, level int) (closedLevel, next int, ok bool) {
	if pos >= len(src) || src[pos] != ']' {
		return 0, 0, false
	}
	p := pos + 1
	n := 0
	for p < len(src) && src[p] == '=' {
		n++
		p++
	}
	if n == level && p < len(src) && src[p] == ']' {
		return level, p + 1, true
	}
	return 0, 0, false
}

// scanShortString scans a '"'- or '\''-delimited string, decoding
// escapes as it goes. The result is a direct subslice of src when no
// escape was encountered, or arena-interned decoded bytes otherwise.
func (l *Lexer) scanShortString(start int, quote byte) (token.Token, bool, error) {
	l.pos++ // opening quote
	bodyStart := l.pos
	hasEscape := false
	var buf []byte

	for {
		if l.pos >= len(l.src) {
			return token.Token{}, false, &LexerError{Span: token.NewSpan(start, len(l.src))}
		}
		c := l.src[l.pos]
		if c == quote {
			break
		}
		if c == '\n' {
			return token.Token{}, false, l.errAt(l.pos)
		}
		if c != '\\' {
			if hasEscape {
				buf = append(buf, c)
			}
			l.pos++
			continue
		}

		if !hasEscape {
			hasEscape = true
			buf = append(buf, l.src[bodyStart:l.pos]...)
		}
		l.pos++ // backslash
		if l.pos >= len(l.src) {
			return token.Token{}, false, &LexerError{Span: token.NewSpan(start, len(l.src))}
		}
		decoded, n, err := decodeEscape(l.src, l.pos)
		if err != nil {
			return token.Token{}, false, err
		}
		buf = append(buf, decoded...)
		l.pos += n
	}

	var value []byte
	if hasEscape {
		value = l.arena.Intern(buf)
	} else {
		value = l.src[bodyStart:l.pos]
	}
	l.pos++ // closing quote

	tok := token.Token{Kind: token.KindString, Str: value}
	tok.Span = l.spanFrom(start)
	return tok, true, nil
}

// decodeEscape decodes a single escape sequence starting at pos,
// which is the character immediately following the backslash. It
// returns the decoded bytes and how many source bytes (from pos) the
// escape consumed.
func decodeEscape(src []byte, pos int) ([]byte, int, error) {
	c := src[pos]
	switch {
	case c == 'a':
		return []byte{7}, 1, nil
	case c == 'b':
		return []byte{8}, 1, nil
	case c == 'f':
		return []byte{12}, 1, nil
	case c == 'n':
		return []byte{10}, 1, nil
	case c == 'r':
		return []byte{13}, 1, nil
	case c == 't':
		return []byte{9}, 1, nil
	case c == 'v':
		return []byte{11}, 1, nil
	case c == '\\':
		return []byte{'\\'}, 1, nil
	case c == '"':
		return []byte{'"'}, 1, nil
	case c == '\'':
		return []byte{'\''}, 1, nil
	case c == '\n':
		return []byte{'\n'}, 1, nil
	case c == '\r':
		if pos+1 < len(src) && src[pos+1] == '\n' {
			return []byte{'\n'}, 2, nil
		}
		return []byte{'\n'}, 1, nil
	case c == 'x':
		if pos+2 >= len(src) || !isHexDigit(src[pos+1]) || !isHexDigit(src[pos+2]) {
			return nil, 0, &LexerError{Span: token.NewSpan(pos, pos+1)}
		}
		v := hexDigitValue(src[pos+1])*16 + hexDigitValue(src[pos+2])
		return []byte{byte(v)}, 3, nil
	case isDigit(c):
		n, v := 0, 0
		for n < 3 && pos+n < len(src) && isDigit(src[pos+n]) {
			v = v*10 + int(src[pos+n]-'0')
			n++
		}
		if v > 255 {
			return nil, 0, &LexerError{Span: token.NewSpan(pos, pos+1)}
		}
		return []byte{byte(v)}, n, nil
	default:
		return nil, 0, &LexerError{Span: token.NewSpan(pos, pos+1)}
	}
}

// scanNumber scans a decimal literal (standard or leading-dot form)
// or, via scanHexNumber, a hexadecimal one.
func (l *Lexer) scanNumber(start int) (token.Token, bool, error) {
	if l.src[l.pos] == '0' && l.pos+1 < len(l.src) && (l.src[l.pos+1] == 'x' || l.src[l.pos+1] == 'X') {
		return l.scanHexNumber(start)
	}

	for l.pos < len(l.src) && isDigit(l.src[l.pos]) {
		l.pos++
	}
	if l.pos < len(l.src) && l.src[l.pos] == '.' {
		l.pos++
		for l.pos < len(l.src) && isDigit(l.src[l.pos]) {
			l.pos++
		}
	}
	if l.pos < len(l.src) && (l.src[l.pos] == 'e' || l.src[l.pos] == 'E') {
		save := l.pos
		l.pos++
		if l.pos < len(l.src) && (l.src[l.pos] == '+' || l.src[l.pos] == '-') {
			l.pos++
		}
		if l.pos < len(l.src) && isDigit(l.src[l.pos]) {
			for l.pos < len(l.src) && isDigit(l.src[l.pos]) {
				l.pos++
			}
		} else {
			l.pos = save
		}
	}

	v, err := strconv.ParseFloat(string(l.src[start:l.pos]), 64)
	if err != nil {
		return token.Token{}, false, l.errAt(start)
	}
	tok := token.Token{Kind: token.KindNumber, Number: v}
	tok.Span = l.spanFrom(start)
	return tok, true, nil
}

// scanHexNumber scans "0x"-prefixed hex digits, decoding through an
// int64 the way the original implementation does: overflow of that
// cast is a lex error.
func (l *Lexer) scanHexNumber(start int) (token.Token, bool, error) {
	l.pos += 2
	digitsStart := l.pos
	var v uint64
	overflow := false
	for l.pos < len(l.src) && isHexDigit(l.src[l.pos]) {
		nv := v*16 + uint64(hexDigitValue(l.src[l.pos]))
		if nv < v {
			overflow = true
		}
		v = nv
		l.pos++
	}
	if l.pos == digitsStart {
		return token.Token{}, false, l.errAt(start)
	}
	if overflow || v > math.MaxInt64 {
		return token.Token{}, false, l.errAt(start)
	}
	tok := token.Token{Kind: token.KindNumber, Number: float64(int64(v))}
	tok.Span = l.spanFrom(start)
	return tok, true, nil
}

// scanIdentifier scans a maximal identifier run and classifies it as
// a keyword, a true/false/nil literal, a word-spelled operator
// (and/or/not), or a plain Name.
func (l *Lexer) scanIdentifier(start int) (token.Token, bool, error) {
	for l.pos < len(l.src) && isIdentCont(l.src[l.pos]) {
		l.pos++
	}
	text := l.src[start:l.pos]

	if kw, ok := token.Keywords[string(text)]; ok {
		tok := token.Token{Kind: token.KindKeyword, Keyword: kw}
		tok.Span = l.spanFrom(start)
		return tok, true, nil
	}

	switch string(text) {
	case "true":
		tok := token.Token{Kind: token.KindBool, Bool: true}
		tok.Span = l.spanFrom(start)
		return tok, true, nil
	case "false":
		tok := token.Token{Kind: token.KindBool, Bool: false}
		tok.Span = l.spanFrom(start)
		return tok, true, nil
	case "nil":
		tok := token.Token{Kind: token.KindNil}
		tok.Span = l.spanFrom(start)
		return tok, true, nil
	case "and":
		return l.opTok(token.OpAnd, start), true, nil
	case "or":
		return l.opTok(token.OpOr, start), true, nil
	case "not":
		return l.opTok(token.OpNot, start), true, nil
	}

	tok := token.Token{Kind: token.KindName, Str: text}
	tok.Span = l.spanFrom(start)
	return tok, true, nil
}

func (l *Lexer) structural(kind token.Kind, start int) token.Token {
	tok := token.Token{Kind: kind}
	tok.Span = l.spanFrom(start)
	return tok
}

func (l *Lexer) opTok(o token.Op, start int) token.Token {
	tok := token.Token{Kind: token.KindOp, Op: o}
	tok.Span = l.spanFrom(start)
	return tok
}

func (l *Lexer) comment(start int, body []byte) token.Token {
	tok := token.Token{Kind: token.KindComment, Str: body}
	tok.Span = l.spanFrom(start)
	return tok
}

func (l *Lexer) spanFrom(start int) token.Span {
	return token.NewSpan(start, l.pos)
}

func (l *Lexer) errAt(pos int) error {
	end := pos + 1
	if end > len(l.src) {
		end = len(l.src)
	}
	return &LexerError{Span: token.NewSpan(pos, end)}
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isHexDigit(c byte) bool {
	return isDigit(c) || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

func hexDigitValue(c byte) int {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0')
	case c >= 'a' && c <= 'f':
		return int(c-'a') + 10
	default:
		return int(c-'A') + 10
	}
}

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c >= 0x80
}

func isIdentCont(c byte) bool {
	return isIdentStart(c) || isDigit(c)
}
