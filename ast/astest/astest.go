// Package astest provides test-only helpers for comparing syntax
// trees produced by package parser, used by the round-trip and
// structural-equality properties.
package astest

import (
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/luadx-lang/luadx/ast"
	"github.com/luadx-lang/luadx/prettyprint"
	"github.com/luadx-lang/luadx/token"
)

// IgnoreSpans is a cmp.Option that treats every token.Span as equal,
// so two trees parsed from differently-offset sources (or a tree and
// its pretty-printed-then-reparsed twin) can be compared on shape
// alone.
var IgnoreSpans = cmp.Comparer(func(token.Span, token.Span) bool { return true })

// Options bundles the cmp.Options this package's tests use: ignore
// spans and allow comparing unexported fields is deliberately NOT
// included here, since every AST field that matters is exported.
func Options() cmp.Options {
	return cmp.Options{IgnoreSpans, cmpopts.EquateEmpty()}
}

// Unparse renders block as source text via package prettyprint, so a
// round-trip test can feed the result straight back into the parser.
func Unparse(block ast.Block) []byte {
	return prettyprint.Print(block)
}
