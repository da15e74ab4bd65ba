package prettyprint_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/luadx-lang/luadx/arena"
	"github.com/luadx-lang/luadx/ast/astest"
	"github.com/luadx-lang/luadx/parser"
)

// roundTrip parses src, pretty-prints the result, reparses that, and
// asserts the two trees are structurally equal ignoring spans -- the
// pretty-print round-trip property (spec.md 8, property 3).
func roundTrip(t *testing.T, src string) {
	t.Helper()
	a := arena.New()
	block, err := parser.ParseChunk([]byte(src), a, parser.Options{})
	require.NoError(t, err, src)

	printed := astest.Unparse(block)

	a2 := arena.New()
	reparsed, err := parser.ParseChunk(printed, a2, parser.Options{})
	require.NoError(t, err, "reparsing printed output of %q:\n%s", src, printed)

	if d := cmp.Diff(block, reparsed, astest.Options()); d != "" {
		t.Errorf("round-trip mismatch for %q:\nprinted:\n%s\ndiff (-want +got):\n%s", src, printed, d)
	}
}

func TestRoundTripBasics(t *testing.T) {
	cases := []string{
		"",
		"local x = 1 + 2 * 3",
		"a, b = 1, 2",
		"return",
		"return a, b",
		"do end",
		"while true do end",
		"for i = 1, 10 do end",
		"for i = 1, 10, 2 do x = x + i end",
		"for k, v in pairs(t) do print(k) end",
		"function a.b.c:d() end",
		"local function f(a, ...) return a end",
		`s = "a\110b\"c"`,
		"t = { [1] = a; b = c, d }",
		"t = { [5] = v }",
		"t = { [true] = v }",
		"::L:: goto L",
		"if a then x = 1 elseif b then x = 2 else x = 3 end",
		"repeat x = x - 1 until x == 0",
		"local f = function(a, ...) return a end",
		"return 1 .. 2 .. 3",
		"return 2 ^ 3 ^ 4",
		"return -a^b",
		"return not a and b or c",
		"a.b[1]:m()",
		"continue",
		"break",
	}
	for _, src := range cases {
		roundTrip(t, src)
	}
}

// TestIfElseRendersElseClause guards against reproducing the grounding
// source's omission of the else clause: without it, a round trip would
// silently drop the else body.
func TestIfElseRendersElseClause(t *testing.T) {
	roundTrip(t, "if a then x = 1 else x = 2 end")
}

// TestNumericTableKeyUsesBracketForm guards against emitting invalid,
// non-reparseable syntax like `5 = v` for a non-identifier key.
func TestNumericTableKeyUsesBracketForm(t *testing.T) {
	roundTrip(t, "t = { [5] = v, [true] = w }")
}
