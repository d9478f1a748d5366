package peglr

import "sort"

// step is the outcome of evaluating one Expr node. unwind, when
// non-nil, identifies the Rule whose left-recursion seed-and-grow
// cycle is completing; it must propagate unexamined through every
// enclosing Expr frame — no restore, no alternative branch, no loop
// continuation — exactly as far as the Context.parseNonTerm activation
// for that same Rule, and no further. This is the engine's explicit,
// inspectable substitute for a thrown exception: every frame that
// receives a non-nil unwind returns it immediately.
type step struct {
	ok     bool
	unwind *Rule
}

func okStep() step           { return step{ok: true} }
func failStep() step         { return step{ok: false} }
func (s step) unwinding() bool { return s.unwind != nil }

// Expr is the closed expression algebra every grammar is built from.
// It is a tagged union in spirit: the only implementations are the
// ones in this file, and the only way to extend the set of parse
// operators is to add a case here. Two entry points mirror the
// whitespace contract: parseTerm never skips whitespace, while
// parseNonTerm skips it between the items of a Seq. The repetition
// operators (ZeroOrMore/OneOrMore) skip no whitespace between
// iterations in either mode.
type Expr interface {
	parseTerm(ctx *Context) step
	parseNonTerm(ctx *Context) step
}

// -- Char --------------------------------------------------------------

type charExpr struct{ r rune }

// Ch matches a single literal rune.
func Ch(r rune) Expr { return charExpr{r: r} }

func (e charExpr) parseTerm(ctx *Context) step {
	if ctx.peek() == e.r {
		ctx.advance()
		return okStep()
	}
	ctx.setErrorPos(ctx.pos)
	return failStep()
}
func (e charExpr) parseNonTerm(ctx *Context) step { return e.parseTerm(ctx) }

// -- String --------------------------------------------------------------

type stringExpr struct{ s []rune }

// Str matches a literal sequence of runes.
func Str(s string) Expr { return stringExpr{s: []rune(s)} }

func (e stringExpr) parseTerm(ctx *Context) step {
	st := ctx.snapshot()
	for _, r := range e.s {
		if ctx.peek() != r {
			ctx.setErrorPos(ctx.pos)
			ctx.restore(st)
			return failStep()
		}
		ctx.advance()
	}
	return okStep()
}
func (e stringExpr) parseNonTerm(ctx *Context) step { return e.parseTerm(ctx) }

// -- Set -----------------------------------------------------------------

// setExpr matches any rune present in ranges, a sorted slice of
// disjoint [lo, hi] rune intervals.
type setExpr struct{ ranges [][2]rune }

// SetExpr matches any one of the given runes.
func SetExpr(runes ...rune) Expr {
	ranges := make([][2]rune, 0, len(runes))
	for _, r := range runes {
		ranges = append(ranges, [2]rune{r, r})
	}
	return normalizeSet(ranges)
}

// Range matches any rune in [lo, hi], inclusive. It is a constructor
// function, not a distinct Expression variant: it builds a Set.
func Range(lo, hi rune) Expr {
	return normalizeSet([][2]rune{{lo, hi}})
}

// Union merges several Set expressions (or single-rune ranges built
// by Range/SetExpr) into one Set.
func Union(sets ...Expr) Expr {
	var ranges [][2]rune
	for _, s := range sets {
		if se, ok := s.(setExpr); ok {
			ranges = append(ranges, se.ranges...)
		}
	}
	return normalizeSet(ranges)
}

func normalizeSet(ranges [][2]rune) setExpr {
	sort.Slice(ranges, func(i, j int) bool { return ranges[i][0] < ranges[j][0] })
	merged := ranges[:0]
	for _, r := range ranges {
		if n := len(merged); n > 0 && r[0] <= merged[n-1][1]+1 {
			if r[1] > merged[n-1][1] {
				merged[n-1][1] = r[1]
			}
			continue
		}
		merged = append(merged, r)
	}
	return setExpr{ranges: merged}
}

func (e setExpr) contains(r rune) bool {
	i := sort.Search(len(e.ranges), func(i int) bool { return e.ranges[i][1] >= r })
	return i < len(e.ranges) && e.ranges[i][0] <= r
}

func (e setExpr) parseTerm(ctx *Context) step {
	r := ctx.peek()
	if r != eof && e.contains(r) {
		ctx.advance()
		return okStep()
	}
	ctx.setErrorPos(ctx.pos)
	return failStep()
}
func (e setExpr) parseNonTerm(ctx *Context) step { return e.parseTerm(ctx) }

// -- Any -------------------------------------------------------------------

type anyExpr struct{}

// AnyChar matches exactly one rune, failing only at end of input.
func AnyChar() Expr { return anyExpr{} }

func (e anyExpr) parseTerm(ctx *Context) step {
	r := ctx.peek()
	if r == eof {
		ctx.setErrorPos(ctx.pos)
		return failStep()
	}
	ctx.advance()
	return okStep()
}
func (e anyExpr) parseNonTerm(ctx *Context) step { return e.parseTerm(ctx) }

// -- Eof ---------------------------------------------------------------

type eofExpr struct{}

// EofExpr matches only at the end of input, consuming nothing.
func EofExpr() Expr { return eofExpr{} }

func (e eofExpr) parseTerm(ctx *Context) step {
	if ctx.eof() {
		return okStep()
	}
	ctx.setErrorPos(ctx.pos)
	return failStep()
}
func (e eofExpr) parseNonTerm(ctx *Context) step { return e.parseTerm(ctx) }

// -- Newline ---------------------------------------------------------------

// newlineExpr wraps an expression that matches a line-break sequence;
// on a successful match it bumps the line counter, since plain rune
// advancement only tracks column, never line.
type newlineExpr struct{ inner Expr }

// Newline wraps e — typically Ch('\n'), or a Choice matching "\r\n"
// and "\r" too — so that a successful match of e also advances the
// line counter and resets the column.
func Newline(e Expr) Expr { return newlineExpr{inner: e} }

func (e newlineExpr) parseNonTerm(ctx *Context) step {
	r := e.inner.parseNonTerm(ctx)
	if r.unwinding() || !r.ok {
		return r
	}
	ctx.newLine()
	return r
}
func (e newlineExpr) parseTerm(ctx *Context) step {
	r := e.inner.parseTerm(ctx)
	if r.unwinding() || !r.ok {
		return r
	}
	ctx.newLine()
	return r
}

// -- Terminal ----------------------------------------------------------

// terminalExpr forces its child to be evaluated in whitespace-
// suppressed (term) mode regardless of the caller's own mode. This is
// how a grammar marks "this subtree is one lexical token" — no
// whitespace may appear inside it.
type terminalExpr struct{ inner Expr }

// Term wraps e so that, wherever it is referenced, it is scanned as a
// single lexical unit with no internal whitespace skipping.
func Term(e Expr) Expr { return terminalExpr{inner: e} }

func (e terminalExpr) parseTerm(ctx *Context) step    { return e.inner.parseTerm(ctx) }
func (e terminalExpr) parseNonTerm(ctx *Context) step { return e.inner.parseTerm(ctx) }

// -- Optional ------------------------------------------------------------

type optionalExpr struct{ inner Expr }

// Optional matches e zero or one times, never failing itself.
func Optional(e Expr) Expr { return optionalExpr{inner: e} }

func (e optionalExpr) parseNonTerm(ctx *Context) step {
	st := ctx.snapshot()
	r := e.inner.parseNonTerm(ctx)
	if r.unwinding() {
		return r
	}
	if !r.ok {
		ctx.restore(st)
	}
	return okStep()
}
func (e optionalExpr) parseTerm(ctx *Context) step {
	st := ctx.snapshot()
	r := e.inner.parseTerm(ctx)
	if r.unwinding() {
		return r
	}
	if !r.ok {
		ctx.restore(st)
	}
	return okStep()
}

// -- ZeroOrMore / OneOrMore ----------------------------------------------

type repeatExpr struct {
	inner Expr
	atLeastOne bool
}

// ZeroOrMore matches e zero or more times, greedily, never failing.
// No whitespace is skipped before or between iterations.
func ZeroOrMore(e Expr) Expr { return repeatExpr{inner: e} }

// OneOrMore matches e one or more times, greedily, failing if the
// first attempt fails.
func OneOrMore(e Expr) Expr { return repeatExpr{inner: e, atLeastOne: true} }

func (e repeatExpr) run(ctx *Context, term bool) step {
	count := 0
	for {
		st := ctx.snapshot()
		var r step
		if term {
			r = e.inner.parseTerm(ctx)
		} else {
			r = e.inner.parseNonTerm(ctx)
		}
		if r.unwinding() {
			return r
		}
		if !r.ok {
			ctx.restore(st)
			break
		}
		if ctx.pos.Cursor == st.pos.Cursor {
			// no progress: stop instead of looping forever.
			break
		}
		count++
	}
	if e.atLeastOne && count == 0 {
		return failStep()
	}
	return okStep()
}

func (e repeatExpr) parseNonTerm(ctx *Context) step { return e.run(ctx, false) }
func (e repeatExpr) parseTerm(ctx *Context) step    { return e.run(ctx, true) }

// -- And / Not (predicates) -----------------------------------------------

type andExpr struct{ inner Expr }

// And is a positive lookahead: succeeds if e matches, consuming
// nothing either way.
func And(e Expr) Expr { return andExpr{inner: e} }

func (e andExpr) parseNonTerm(ctx *Context) step {
	st := ctx.snapshot()
	r := e.inner.parseNonTerm(ctx)
	if r.unwinding() {
		return r
	}
	ctx.restore(st)
	if !r.ok {
		ctx.setErrorPos(st.pos)
	}
	return step{ok: r.ok}
}
func (e andExpr) parseTerm(ctx *Context) step {
	st := ctx.snapshot()
	r := e.inner.parseTerm(ctx)
	if r.unwinding() {
		return r
	}
	ctx.restore(st)
	if !r.ok {
		ctx.setErrorPos(st.pos)
	}
	return step{ok: r.ok}
}

type notExpr struct{ inner Expr }

// Not is a negative lookahead: succeeds only if e fails to match,
// consuming nothing either way.
func Not(e Expr) Expr { return notExpr{inner: e} }

func (e notExpr) parseNonTerm(ctx *Context) step {
	st := ctx.snapshot()
	r := e.inner.parseNonTerm(ctx)
	if r.unwinding() {
		return r
	}
	ctx.restore(st)
	if r.ok {
		ctx.setErrorPos(st.pos)
		return failStep()
	}
	return okStep()
}
func (e notExpr) parseTerm(ctx *Context) step {
	st := ctx.snapshot()
	r := e.inner.parseTerm(ctx)
	if r.unwinding() {
		return r
	}
	ctx.restore(st)
	if r.ok {
		ctx.setErrorPos(st.pos)
		return failStep()
	}
	return okStep()
}

// -- Seq -------------------------------------------------------------------

type seqExpr struct{ items []Expr }

// Seq matches each item in order, failing (and restoring) if any
// item fails. In non-terminal mode, whitespace is skipped between
// items; in terminal mode it is not.
func Seq(items ...Expr) Expr { return seqExpr{items: items} }

func (e seqExpr) parseNonTerm(ctx *Context) step {
	st := ctx.snapshot()
	for i, item := range e.items {
		if i > 0 {
			ctx.skipWhitespace()
		}
		r := item.parseNonTerm(ctx)
		if r.unwinding() {
			return r
		}
		if !r.ok {
			ctx.restore(st)
			return failStep()
		}
	}
	return okStep()
}

func (e seqExpr) parseTerm(ctx *Context) step {
	st := ctx.snapshot()
	for _, item := range e.items {
		r := item.parseTerm(ctx)
		if r.unwinding() {
			return r
		}
		if !r.ok {
			ctx.restore(st)
			return failStep()
		}
	}
	return okStep()
}

// -- Choice ------------------------------------------------------------

type choiceExpr struct{ alts []Expr }

// Choice tries each alternative in order, committing to the first
// that succeeds (ordered choice, not ambiguity resolution).
func Choice(alts ...Expr) Expr { return choiceExpr{alts: alts} }

func (e choiceExpr) parseNonTerm(ctx *Context) step {
	for _, alt := range e.alts {
		st := ctx.snapshot()
		r := alt.parseNonTerm(ctx)
		if r.unwinding() {
			// an unwind skips restore entirely, matching the
			// original exception-based implementation: whatever
			// position the completing left-recursion cycle left
			// behind is the position that survives.
			return r
		}
		if r.ok {
			return r
		}
		ctx.restore(st)
	}
	return failStep()
}

func (e choiceExpr) parseTerm(ctx *Context) step {
	for _, alt := range e.alts {
		st := ctx.snapshot()
		r := alt.parseTerm(ctx)
		if r.unwinding() {
			return r
		}
		if r.ok {
			return r
		}
		ctx.restore(st)
	}
	return failStep()
}

// -- RuleRef -----------------------------------------------------------

type ruleRefExpr struct{ rule *Rule }

// RuleRef refers to another rule by identity. Grammars are built by
// constructing Rules first (possibly with NewRule placeholders for
// forward/mutual references) and wiring RuleRef(r) wherever one rule
// invokes another.
func RuleRef(r *Rule) Expr { return ruleRefExpr{rule: r} }

func (e ruleRefExpr) parseNonTerm(ctx *Context) step { return ctx.parseNonTerm(e.rule) }
func (e ruleRefExpr) parseTerm(ctx *Context) step    { return ctx.parseTerm(e.rule) }
