package prettyprint_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/luadx-lang/luadx/arena"
	"github.com/luadx-lang/luadx/ast/astest"
	"github.com/luadx-lang/luadx/parser"
)

// FuzzRoundTrip is property 3 (spec.md 8): pretty-print(parse(src))
// parses again without error and produces an AST equal up to span
// locations. Inputs that fail to parse at all are skipped -- only
// successfully-parsed chunks are required to survive the round trip.
func FuzzRoundTrip(f *testing.F) {
	seeds := []string{
		"",
		"local x = 1 + 2 * 3",
		"if a then x = 1 elseif b then x = 2 else x = 3 end",
		"for k, v in pairs(t) do print(k) end",
		"function a.b.c:d() end",
		"t = { [5] = v, [true] = w, name = 1, 2 }",
		`s = "a\110b\"c"`,
		"::L:: goto L",
		"repeat x = x - 1 until x == 0",
		"local f = function(a, ...) return a end",
		"1 .. 2 .. 3",
	}
	for _, s := range seeds {
		f.Add([]byte(s))
	}

	f.Fuzz(func(t *testing.T, src []byte) {
		defer func() {
			if r := recover(); r != nil {
				t.Fatalf("pretty-printing panicked on %q: %v", src, r)
			}
		}()

		a := arena.New()
		block, err := parser.ParseChunk(src, a, parser.Options{})
		if err != nil {
			return
		}

		printed := astest.Unparse(block)

		a2 := arena.New()
		reparsed, err := parser.ParseChunk(printed, a2, parser.Options{})
		if err != nil {
			t.Fatalf("reparsing printed output of %q failed: %v\nprinted:\n%s", src, err, printed)
		}

		if d := cmp.Diff(block, reparsed, astest.Options()); d != "" {
			t.Fatalf("round-trip mismatch for %q:\nprinted:\n%s\ndiff (-want +got):\n%s", src, printed, d)
		}
	})
}
