package peglr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshotRestoreIsExact(t *testing.T) {
	ctx := newContext(Input([]rune("abcdef")), nil, nil, nil)
	ctx.advance()
	ctx.advance()
	st := ctx.snapshot()
	ctx.advance()
	ctx.advance()
	require.Equal(t, 4, ctx.pos.Cursor)

	ctx.restore(st)
	assert.Equal(t, 2, ctx.pos.Cursor)
	assert.Equal(t, 0, len(ctx.matches))
}

func TestFurthestErrorIsMonotonicAcrossBacktracking(t *testing.T) {
	ctx := newContext(Input([]rune("abc")), nil, nil, nil)
	ctx.setErrorPos(Position{Cursor: 2, Line: 1, Column: 3})
	require.Equal(t, 2, ctx.furthest.Cursor)

	// a shallower failure afterwards must not roll the watermark back
	ctx.setErrorPos(Position{Cursor: 1, Line: 1, Column: 2})
	assert.Equal(t, 2, ctx.furthest.Cursor)

	// a deeper failure still advances it
	ctx.setErrorPos(Position{Cursor: 3, Line: 1, Column: 4})
	assert.Equal(t, 3, ctx.furthest.Cursor)
}

func TestMatchLogTruncatesOnRestore(t *testing.T) {
	r := NewRule("x")
	r.BindAction(func(begin, end Position, userData any) {})
	ctx := newContext(Input([]rune("aa")), nil, nil, nil)

	ctx.matches = append(ctx.matches, Match{Rule: r, Begin: ctx.pos, End: ctx.pos})
	st := ctx.snapshot()
	ctx.matches = append(ctx.matches, Match{Rule: r, Begin: ctx.pos, End: ctx.pos})
	require.Len(t, ctx.matches, 2)

	ctx.restore(st)
	assert.Len(t, ctx.matches, 1)
}

func TestSkipWhitespaceIsOptionalWhenNoRuleGiven(t *testing.T) {
	ctx := newContext(Input([]rune("   x")), nil, nil, nil)
	ctx.skipWhitespace()
	assert.Equal(t, 0, ctx.pos.Cursor)
}

func TestSkipWhitespaceConsumesARun(t *testing.T) {
	ws := NewRule("ws")
	ws.Define(ZeroOrMore(SetExpr(' ', '\t')))
	ctx := newContext(Input([]rune("  \tx")), ws, nil, nil)
	ctx.skipWhitespace()
	assert.Equal(t, 3, ctx.pos.Cursor)
}
