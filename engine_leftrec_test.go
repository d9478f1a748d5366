package peglr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestDirectLeftRecursionGrows exercises a single rule that is
// directly left-recursive: List = List "," Item | Item. Each
// successful grow iteration should record one more List match, one
// per comma-separated item beyond the first.
func TestDirectLeftRecursionGrows(t *testing.T) {
	item := NewRule("item")
	item.Define(Range('a', 'z'))
	item.BindAction(func(begin, end Position, userData any) {})

	list := NewRule("list")
	list.Define(Choice(
		Seq(RuleRef(list), Ch(','), RuleRef(item)),
		RuleRef(item),
	))
	list.BindAction(func(begin, end Position, userData any) {})

	input := Input([]rune("a,b,c,d"))
	resetRuleGraph(list)
	ctx := newContext(input, nil, nil, nil)
	out := ctx.parseNonTerm(list)
	require.True(t, out.ok)
	assert.Equal(t, input.End(), ctx.pos.Cursor)

	itemMatches := 0
	listMatches := 0
	for _, m := range ctx.matches {
		switch m.Rule {
		case item:
			itemMatches++
		case list:
			listMatches++
		}
	}
	assert.Equal(t, 4, itemMatches, "a, b, c, d")
	assert.Equal(t, 4, listMatches, "one List match per grow iteration plus the seed")
}

// TestIndirectLeftRecursionThroughASiblingRule covers the case where
// the rule re-entered at the pivot position (A) is not the rule
// holding the recursive alternative (B).
func TestIndirectLeftRecursionThroughASiblingRule(t *testing.T) {
	a := NewRule("a")
	b := NewRule("b")
	b.Define(Choice(Seq(RuleRef(a), Ch('x')), Ch('y')))
	a.Define(RuleRef(b))

	input := Input([]rune("yxxx"))
	var sink errCollector
	ok := Parse(input, a, &sink, nil)
	require.True(t, ok, "%v", sink.errs)
}

// TestMutualLeftRecursionIsolation checks that two mutually
// left-recursive rules each track their own seed/grow state without
// one rule's activation corrupting the other's, and that the parse
// terminates rather than looping.
func TestMutualLeftRecursionIsolation(t *testing.T) {
	id := NewRule("id")
	id.Define(Range('0', '9'))

	a := NewRule("A")
	b := NewRule("B")
	a.Define(Choice(Seq(RuleRef(b), Ch('+'), RuleRef(a)), RuleRef(b)))
	b.Define(Choice(Seq(RuleRef(a), Ch('*'), RuleRef(b)), RuleRef(id)))

	input := Input([]rune("1*2+3"))
	var sink errCollector
	ok := Parse(input, a, &sink, nil)
	require.True(t, ok, "%v", sink.errs)
}

// TestUnproductiveLeftRecursionFails covers a rule whose only
// alternative is itself: the seed phase can never succeed, so the
// whole activation must fail cleanly instead of looping forever.
func TestUnproductiveLeftRecursionFails(t *testing.T) {
	a := NewRule("a")
	a.Define(RuleRef(a))

	var sink errCollector
	ok := Parse(Input([]rune("x")), a, &sink, nil)
	require.False(t, ok)
	require.Len(t, sink.errs, 1)
	assert.Equal(t, SYNTAX, sink.errs[0].Kind)
}

// TestLeftRecursionProgressInvariant ensures a grow iteration that
// makes no progress halts the loop instead of spinning: Same = Same |
// "" would accept zero-width forever without the check.
func TestLeftRecursionProgressInvariant(t *testing.T) {
	same := NewRule("same")
	same.Define(Choice(RuleRef(same), Optional(Ch('z'))))

	var sink errCollector
	ok := Parse(Input([]rune("")), same, &sink, nil)
	require.True(t, ok, "%v", sink.errs)
}

type errCollector struct{ errs []*SyntaxError }

func (c *errCollector) Report(e *SyntaxError) { c.errs = append(c.errs, e) }
