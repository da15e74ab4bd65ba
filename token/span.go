package token

import "fmt"

// Span is a byte half-open interval [Start, End) into a source buffer.
// Every AST node and every scanned token carries one.
type Span struct {
	Start int
	End   int
}

// NewSpan builds a Span, panicking if it is malformed (end before
// start). Empty spans (Start == End) are allowed only for the
// synthetic ast.None statement; scanned tokens and parsed nodes must
// never construct one that way.
func NewSpan(start, end int) Span {
	if end < start {
		panic(fmt.Sprintf("token: invalid span [%d, %d)", start, end))
	}
	return Span{Start: start, End: end}
}

// Cover returns the smallest span containing both s and other.
func (s Span) Cover(other Span) Span {
	start := s.Start
	if other.Start < start {
		start = other.Start
	}
	end := s.End
	if other.End > end {
		end = other.End
	}
	return Span{Start: start, End: end}
}

// Slice returns the bytes of src covered by s.
func (s Span) Slice(src []byte) []byte {
	return src[s.Start:s.End]
}

// String renders the span as "[start:end)", used in error messages.
func (s Span) String() string {
	return fmt.Sprintf("[%d:%d)", s.Start, s.End)
}

// LineCol computes the 1-indexed line and column of offset within src.
// This is a derived, on-demand convenience for error formatting: the
// core data model stores only byte spans, never line/column state.
func LineCol(src []byte, offset int) (line, col int) {
	line, col = 1, 1
	if offset > len(src) {
		offset = len(src)
	}
	for _, b := range src[:offset] {
		if b == '\n' {
			line++
			col = 1
		} else {
			col++
		}
	}
	return line, col
}
