package peglr

import "fmt"

// eof is returned by Input.At when the cursor has reached the end of
// the rune sequence.
const eof rune = -1

// Input is a restartable code-point source.  It makes no assumption
// about the original encoding beyond having already been decoded into
// runes; the engine only ever compares code points.
type Input []rune

// At returns the rune at cursor i, or eof if i is at or past the end.
func (in Input) At(i int) rune {
	if i < 0 || i >= len(in) {
		return eof
	}
	return in[i]
}

// End returns the end-of-input cursor, one past the last rune.
func (in Input) End() int {
	return len(in)
}

// Position is a triple (cursor, line, column).  The cursor is an
// index into the Input; line and column are 1-based.  Context.advance
// is the only way a Position moves forward through input; Context.newLine
// only updates line/column, since the line-break characters themselves
// were already consumed by whatever expression matched them.
type Position struct {
	Cursor int
	Line   int
	Column int
}

// StartPosition returns the position at the beginning of input.
func StartPosition() Position {
	return Position{Cursor: 0, Line: 1, Column: 1}
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Before reports whether p comes strictly before other in the input,
// comparing only the cursor (line/column are not consulted).
func (p Position) Before(other Position) bool {
	return p.Cursor < other.Cursor
}

// Span is a half-open range [Begin, End) tagged by the two positions
// that delimit it, used both for match records and for error ranges.
type Span struct {
	Begin Position
	End   Position
}

func NewSpan(begin, end Position) Span {
	return Span{Begin: begin, End: end}
}

func (s Span) String() string {
	if s.Begin == s.End {
		return s.Begin.String()
	}
	return fmt.Sprintf("%s..%s", s.Begin, s.End)
}

// Text returns the substring of input delimited by the span.
func (s Span) Text(input Input) string {
	return string(input[s.Begin.Cursor:s.End.Cursor])
}
