package ast

import (
	"fmt"

	"github.com/luadx-lang/luadx/token"
)

// Walk is the single top-level traversal entry point: visit every
// statement of block in order, dispatching each to v via Accept.
// WalkStatement and WalkExpression handle the single-node case when a
// caller already holds one node rather than a block.
func Walk(v Visitor, block Block) {
	WalkBlock(v, block)
}

// DescribeSpan renders span as "line:col-line:col" (or a single
// "line:col" when it starts and ends on the same position), computed
// on demand from src via token.LineCol. The core data model stores
// only byte spans; this exists purely so callers formatting
// diagnostics don't have to walk src themselves.
func DescribeSpan(src []byte, span token.Span) string {
	startLine, startCol := token.LineCol(src, span.Start)
	endLine, endCol := token.LineCol(src, span.End)
	if startLine == endLine && startCol == endCol {
		return fmt.Sprintf("%d:%d", startLine, startCol)
	}
	return fmt.Sprintf("%d:%d-%d:%d", startLine, startCol, endLine, endCol)
}
