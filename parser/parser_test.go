package parser_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luadx-lang/luadx/arena"
	"github.com/luadx-lang/luadx/ast"
	"github.com/luadx-lang/luadx/ast/astest"
	"github.com/luadx-lang/luadx/parser"
)

func parseBlock(t *testing.T, src string) ast.Block {
	t.Helper()
	a := arena.New()
	block, err := parser.ParseChunk([]byte(src), a, parser.Options{})
	require.NoError(t, err)
	return block
}

func parseExpOf(t *testing.T, src string) ast.Expression {
	t.Helper()
	block := parseBlock(t, "return "+src)
	require.Len(t, block, 1)
	ret, ok := block[0].(*ast.Return)
	require.True(t, ok)
	require.Len(t, ret.Exps, 1)
	return ret.Exps[0]
}

func diff(want, got any) string {
	return cmp.Diff(want, got, astest.Options())
}

// --- boundary behaviours (spec.md 8) -------------------------------------

func TestEmptySourceParsesToEmptyBlock(t *testing.T) {
	block := parseBlock(t, "")
	assert.Empty(t, block)
}

func TestReturnNoExpressions(t *testing.T) {
	for _, src := range []string{"return", "return;", "do return end"} {
		a := arena.New()
		_, err := parser.ParseChunk([]byte(src), a, parser.Options{})
		assert.NoError(t, err, src)
	}
	block := parseBlock(t, "return")
	require.Len(t, block, 1)
	ret := block[0].(*ast.Return)
	assert.Empty(t, ret.Exps)
}

func TestReturnMultipleExpressions(t *testing.T) {
	block := parseBlock(t, "return a, b")
	ret := block[0].(*ast.Return)
	want := []ast.Expression{
		&ast.Ref{Name: []byte("a")},
		&ast.Ref{Name: []byte("b")},
	}
	if d := diff(want, ret.Exps); d != "" {
		t.Errorf("mismatch (-want +got):\n%s", d)
	}
}

func TestReturnParenthesizedExpression(t *testing.T) {
	exp := parseExpOf(t, "(a)")
	ref, ok := exp.(*ast.Ref)
	require.True(t, ok)
	assert.Equal(t, "a", string(ref.Name))
}

func TestAssignmentTwoVarsTwoExps(t *testing.T) {
	block := parseBlock(t, "a, b = 1, 2")
	require.Len(t, block, 1)
	asn, ok := block[0].(*ast.Assignment)
	require.True(t, ok)
	assert.Len(t, asn.Vars, 2)
	assert.Len(t, asn.Exps, 2)
}

func TestFunctionDefDottedNameAndMethod(t *testing.T) {
	block := parseBlock(t, "function a.b.c:d() end")
	require.Len(t, block, 1)
	def, ok := block[0].(*ast.FunctionDef)
	require.True(t, ok)
	assert.False(t, def.Local)
	want := [][]byte{[]byte("a"), []byte("b"), []byte("c")}
	assert.Equal(t, want, def.Name.Path)
	assert.Equal(t, "d", string(def.Name.Method))
}

func TestLocalFunctionVsFunction(t *testing.T) {
	block := parseBlock(t, "local function f() end")
	def := block[0].(*ast.FunctionDef)
	assert.True(t, def.Local)
	assert.Equal(t, [][]byte{[]byte("f")}, def.Name.Path)
	assert.Nil(t, def.Name.Method)

	block2 := parseBlock(t, "function f() end")
	def2 := block2[0].(*ast.FunctionDef)
	assert.False(t, def2.Local)
}

func TestCallArgFormsStringTableParens(t *testing.T) {
	cases := []struct {
		src     string
		nargs   int
	}{
		{`f"x"`, 1},
		{`f{}`, 1},
		{`f()`, 0},
	}
	for _, c := range cases {
		block := parseBlock(t, c.src)
		require.Len(t, block, 1, c.src)
		stat, ok := block[0].(*ast.FunctionCallStat)
		require.True(t, ok, c.src)
		assert.Len(t, stat.Call.Args, c.nargs, c.src)
	}
}

func TestMethodCallStringSugar(t *testing.T) {
	block := parseBlock(t, `a:b"x"`)
	require.Len(t, block, 1)
	stat, ok := block[0].(*ast.MethodCallStat)
	require.True(t, ok)
	ref, ok := stat.Call.Lhs.(*ast.Ref)
	require.True(t, ok)
	assert.Equal(t, "a", string(ref.Name))
	assert.Equal(t, "b", string(stat.Call.Name))
	require.Len(t, stat.Call.Args, 1)
	str, ok := stat.Call.Args[0].(*ast.String)
	require.True(t, ok)
	assert.Equal(t, "x", string(str.Value))
}

func TestEmptyBodyForms(t *testing.T) {
	for _, src := range []string{"do end", "while true do end", "for i=1,10 do end"} {
		block := parseBlock(t, src)
		require.Len(t, block, 1, src)
	}
}

func TestTableConstructorThreeFieldForms(t *testing.T) {
	block := parseBlock(t, `t = { [1]=a; b=c, d }`)
	asn := block[0].(*ast.Assignment)
	tbl, ok := asn.Exps[0].(*ast.Table)
	require.True(t, ok)
	require.Len(t, tbl.Fields, 3)

	// computed key 1
	assert.NotNil(t, tbl.Fields[0].Key)
	num, ok := tbl.Fields[0].Key.(*ast.Number)
	require.True(t, ok)
	assert.Equal(t, float64(1), num.Value)

	// string key "b"
	str, ok := tbl.Fields[1].Key.(*ast.String)
	require.True(t, ok)
	assert.Equal(t, "b", string(str.Value))

	// bare positional
	assert.Nil(t, tbl.Fields[2].Key)
	ref, ok := tbl.Fields[2].Value.(*ast.Ref)
	require.True(t, ok)
	assert.Equal(t, "d", string(ref.Name))
}

// --- end-to-end scenarios (spec.md 8) ------------------------------------

func TestScenario_PrecedenceAdditiveOverMultiplicative(t *testing.T) {
	block := parseBlock(t, "local x = 1 + 2 * 3")
	def := block[0].(*ast.VarDef)
	assert.Equal(t, [][]byte{[]byte("x")}, def.Names)
	add, ok := def.Init[0].(*ast.Binary)
	require.True(t, ok)
	assert.Equal(t, "+", add.Op.String())
	_, ok = add.Lhs.(*ast.Number)
	require.True(t, ok)
	mul, ok := add.Rhs.(*ast.Binary)
	require.True(t, ok)
	assert.Equal(t, "*", mul.Op.String())
}

func TestScenario_OrAndPrecedence(t *testing.T) {
	exp := parseExpOf(t, "b or c and d")
	orNode, ok := exp.(*ast.Binary)
	require.True(t, ok)
	assert.Equal(t, "or", orNode.Op.String())
	andNode, ok := orNode.Rhs.(*ast.Binary)
	require.True(t, ok)
	assert.Equal(t, "and", andNode.Op.String())
}

func TestScenario_ConcatRightAssociative(t *testing.T) {
	exp := parseExpOf(t, "1 .. 2 .. 3")
	outer, ok := exp.(*ast.Binary)
	require.True(t, ok)
	assert.Equal(t, "..", outer.Op.String())
	_, ok = outer.Lhs.(*ast.Number)
	require.True(t, ok, "left-skewed tree would put a Binary on the left")
	inner, ok := outer.Rhs.(*ast.Binary)
	require.True(t, ok, "right-associative .. should nest on the right")
	assert.Equal(t, "..", inner.Op.String())
}

func TestScenario_ForInPairsCall(t *testing.T) {
	block := parseBlock(t, "for k,v in pairs(t) do print(k) end")
	forIn, ok := block[0].(*ast.ForIn)
	require.True(t, ok)
	assert.Equal(t, [][]byte{[]byte("k"), []byte("v")}, forIn.Names)
	require.Len(t, forIn.Exps, 1)
	call, ok := forIn.Exps[0].(*ast.FunctionCall)
	require.True(t, ok)
	ref := call.Lhs.(*ast.Ref)
	assert.Equal(t, "pairs", string(ref.Name))
	require.Len(t, forIn.Body, 1)
}

func TestScenario_LabelAndGoto(t *testing.T) {
	block := parseBlock(t, "::L:: goto L")
	require.Len(t, block, 2)
	label, ok := block[0].(*ast.Label)
	require.True(t, ok)
	assert.Equal(t, "L", string(label.Name))
	gotoStat, ok := block[1].(*ast.Goto)
	require.True(t, ok)
	assert.Equal(t, "L", string(gotoStat.Label))
}

func TestScenario_DecimalEscapeProducesThreeByteString(t *testing.T) {
	block := parseBlock(t, `s = "a\110b"`)
	asn := block[0].(*ast.Assignment)
	str, ok := asn.Exps[0].(*ast.String)
	require.True(t, ok)
	assert.Equal(t, []byte("anb"), str.Value)
}

// --- associativity property (spec.md 8 property 4) -----------------------

func TestLeftAssociativeAdditiveSkewsLeft(t *testing.T) {
	exp := parseExpOf(t, "1 - 2 - 3")
	outer, ok := exp.(*ast.Binary)
	require.True(t, ok)
	assert.Equal(t, "-", outer.Op.String())
	inner, ok := outer.Lhs.(*ast.Binary)
	require.True(t, ok, "left-associative - should nest on the left")
	assert.Equal(t, "-", inner.Op.String())
	_, ok = outer.Rhs.(*ast.Number)
	require.True(t, ok)
}

func TestExponentiationRightAssociative(t *testing.T) {
	exp := parseExpOf(t, "2 ^ 3 ^ 4")
	outer, ok := exp.(*ast.Binary)
	require.True(t, ok)
	assert.Equal(t, "^", outer.Op.String())
	_, ok = outer.Lhs.(*ast.Number)
	require.True(t, ok)
	inner, ok := outer.Rhs.(*ast.Binary)
	require.True(t, ok)
	assert.Equal(t, "^", inner.Op.String())
}

func TestUnaryBindsLooserThanExponentiation(t *testing.T) {
	// -a^b parses as -(a^b): exponentiation binds tighter than unary minus.
	exp := parseExpOf(t, "-a^b")
	unary, ok := exp.(*ast.Unary)
	require.True(t, ok)
	assert.Equal(t, "-", unary.Op.String())
	_, ok = unary.Exp.(*ast.Binary)
	require.True(t, ok, "operand of unary - should be the ^ expression")
}

// --- structural grounding (Index/Member/VarArgs/Table nud) ---------------

func TestIndexAndMemberChaining(t *testing.T) {
	exp := parseExpOf(t, "a.b[1]")
	idx, ok := exp.(*ast.Index)
	require.True(t, ok)
	member, ok := idx.Lhs.(*ast.Member)
	require.True(t, ok)
	assert.Equal(t, "b", string(member.Name))
	ref, ok := member.Lhs.(*ast.Ref)
	require.True(t, ok)
	assert.Equal(t, "a", string(ref.Name))
}

func TestVarArgsExpression(t *testing.T) {
	exp := parseExpOf(t, "...")
	_, ok := exp.(*ast.VarArgs)
	assert.True(t, ok)
}

func TestFunctionLiteralVariadic(t *testing.T) {
	exp := parseExpOf(t, "function(a, ...) end")
	fn, ok := exp.(*ast.Function)
	require.True(t, ok)
	assert.True(t, fn.IsVariadic())
	assert.Equal(t, [][]byte{[]byte("a"), []byte("...")}, fn.Params)
}
