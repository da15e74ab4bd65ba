package lexer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luadx-lang/luadx/arena"
	"github.com/luadx-lang/luadx/lexer"
	"github.com/luadx-lang/luadx/token"
)

func scan(t *testing.T, src string) []token.Token {
	t.Helper()
	toks, err := lexer.Scan([]byte(src), arena.New())
	require.NoError(t, err)
	return toks
}

func TestScan_Structural(t *testing.T) {
	toks := scan(t, "{}()[],;...")
	kinds := make([]token.Kind, len(toks))
	for i, tok := range toks {
		kinds[i] = tok.Kind
	}
	assert.Equal(t, []token.Kind{
		token.KindLBrace, token.KindRBrace, token.KindLParen, token.KindRParen,
		token.KindLBracket, token.KindRBracket, token.KindComma, token.KindSemicolon,
		token.KindEllipsis,
	}, kinds)
}

func TestScan_OperatorLongestMatch(t *testing.T) {
	cases := []struct {
		src string
		op  token.Op
	}{
		{"==", token.OpEqEq},
		{"=", token.OpEq},
		{">=", token.OpGtEq},
		{">", token.OpGt},
		{"<=", token.OpLtEq},
		{"<", token.OpLt},
		{"~=", token.OpNe},
		{"!=", token.OpNe},
		{"..", token.OpDotDot},
		{".", token.OpDot},
		{"&&", token.OpAnd},
		{"||", token.OpOr},
		{"!", token.OpNot},
	}
	for _, c := range cases {
		toks := scan(t, c.src)
		require.Len(t, toks, 1, "src %q", c.src)
		assert.Equal(t, token.KindOp, toks[0].Kind, "src %q", c.src)
		assert.Equal(t, c.op, toks[0].Op, "src %q", c.src)
	}
}

func TestScan_WordOperatorsAndLiterals(t *testing.T) {
	toks := scan(t, "and or not true false nil")
	require.Len(t, toks, 6)
	assert.True(t, toks[0].IsOp(token.OpAnd))
	assert.True(t, toks[1].IsOp(token.OpOr))
	assert.True(t, toks[2].IsOp(token.OpNot))
	assert.Equal(t, token.KindBool, toks[3].Kind)
	assert.True(t, toks[3].Bool)
	assert.Equal(t, token.KindBool, toks[4].Kind)
	assert.False(t, toks[4].Bool)
	assert.Equal(t, token.KindNil, toks[5].Kind)
}

func TestScan_KeywordsAndIdentifiers(t *testing.T) {
	toks := scan(t, "if continue goto fooBar")
	require.Len(t, toks, 4)
	assert.True(t, toks[0].IsKeyword(token.KwIf))
	assert.True(t, toks[1].IsKeyword(token.KwContinue))
	assert.True(t, toks[2].IsKeyword(token.KwGoto))
	assert.Equal(t, token.KindName, toks[3].Kind)
	assert.Equal(t, "fooBar", string(toks[3].Str))
}

func TestScan_Label(t *testing.T) {
	toks := scan(t, "::loop::")
	require.Len(t, toks, 1)
	assert.Equal(t, token.KindLabel, toks[0].Kind)
	assert.Equal(t, "loop", string(toks[0].Str))
}

func TestScan_DecimalAndHexNumbers(t *testing.T) {
	cases := []struct {
		src  string
		want float64
	}{
		{"42", 42},
		{"3.14", 3.14},
		{".5", 0.5},
		{"1e3", 1000},
		{"1.5e-2", 0.015},
		{"0xFF", 255},
		{"0x10", 16},
	}
	for _, c := range cases {
		toks := scan(t, c.src)
		require.Len(t, toks, 1, "src %q", c.src)
		assert.Equal(t, token.KindNumber, toks[0].Kind, "src %q", c.src)
		assert.InDelta(t, c.want, toks[0].Number, 1e-9, "src %q", c.src)
	}
}

func TestScan_HexOverflowIsLexError(t *testing.T) {
	_, err := lexer.Scan([]byte("0xFFFFFFFFFFFFFFFFF"), arena.New())
	assert.Error(t, err)
	var lexErr *lexer.LexerError
	assert.ErrorAs(t, err, &lexErr)
}

func TestScan_ShortStringNoEscapes(t *testing.T) {
	toks := scan(t, `"hello"`)
	require.Len(t, toks, 1)
	assert.Equal(t, "hello", string(toks[0].Str))
}

func TestScan_ShortStringEscapes(t *testing.T) {
	cases := []struct {
		src  string
		want string
	}{
		{`"\n"`, "\n"},
		{`"\t"`, "\t"},
		{`"\\"`, "\\"},
		{`"\""`, "\""},
		{`"\65"`, "A"},
		{`"\x41"`, "A"},
	}
	for _, c := range cases {
		toks := scan(t, c.src)
		require.Len(t, toks, 1, "src %q", c.src)
		assert.Equal(t, c.want, string(toks[0].Str), "src %q", c.src)
	}
}

func TestScan_ShortStringDecimalEscapeOverflowIsError(t *testing.T) {
	_, err := lexer.Scan([]byte(`"\999"`), arena.New())
	assert.Error(t, err)
}

func TestScan_ShortStringRawNewlineIsError(t *testing.T) {
	_, err := lexer.Scan([]byte("\"a\nb\""), arena.New())
	assert.Error(t, err)
}

func TestScan_LongBracketString(t *testing.T) {
	toks := scan(t, "[==[hello [=[ world ]==]")
	require.Len(t, toks, 1)
	assert.Equal(t, token.KindString, toks[0].Kind)
	assert.Equal(t, "hello [=[ world ", string(toks[0].Str))
}

func TestScan_LongBracketStringSkipsLeadingNewline(t *testing.T) {
	toks := scan(t, "[[\nhello]]")
	require.Len(t, toks, 1)
	assert.Equal(t, "hello", string(toks[0].Str))
}

func TestScan_SingleLineComments(t *testing.T) {
	toks := scan(t, "-- comment\n1\n// comment too\n2")
	require.Len(t, toks, 2)
	assert.Equal(t, float64(1), toks[0].Number)
	assert.Equal(t, float64(2), toks[1].Number)
}

func TestScan_CStyleBlockComment(t *testing.T) {
	toks := scan(t, "1 /* multi\nline */ 2")
	require.Len(t, toks, 2)
	assert.Equal(t, float64(1), toks[0].Number)
	assert.Equal(t, float64(2), toks[1].Number)
}

func TestScan_DoubleDashBracketAmbiguity(t *testing.T) {
	// "--[" not followed by "=*[" is a line comment, not a long comment.
	toks := scan(t, "--[not a long comment\n1")
	require.Len(t, toks, 1)
	assert.Equal(t, float64(1), toks[0].Number)
}

func TestScan_DoubleDashLongComment(t *testing.T) {
	toks := scan(t, "--[[ this spans\nlines ]]1")
	require.Len(t, toks, 1)
	assert.Equal(t, float64(1), toks[0].Number)
}

func TestScan_WhitespaceAndBOMSkipped(t *testing.T) {
	toks := scan(t, "\xEF\xBB\xBF  \t\r\n 42")
	require.Len(t, toks, 1)
	assert.Equal(t, float64(42), toks[0].Number)
}

func TestScan_NonAsciiIdentifier(t *testing.T) {
	toks := scan(t, "café")
	require.Len(t, toks, 1)
	assert.Equal(t, token.KindName, toks[0].Kind)
	assert.Equal(t, "café", string(toks[0].Str))
}

func TestScan_InvalidByteIsLexError(t *testing.T) {
	_, err := lexer.Scan([]byte("@"), arena.New())
	assert.Error(t, err)
}

func TestScan_EmptySourceProducesNoTokens(t *testing.T) {
	toks := scan(t, "")
	assert.Empty(t, toks)
}

func TestScan_SpansCoverSourceText(t *testing.T) {
	src := "local x = 42"
	toks := scan(t, src)
	for _, tok := range toks {
		if tok.Kind == token.KindNumber {
			assert.Equal(t, "42", string(tok.Span.Slice([]byte(src))))
		}
	}
}
