package peglr

// evalBody runs r's own expression once, in the requested mode, and
// records a match for r if — and only if — that evaluation both
// succeeded and returned normally (no unwind in flight). begin is the
// position the recorded match starts at: ctx.pos for a plain,
// non-growing activation, but the seed-and-grow cycle's original entry
// position for every seed/grow call growLeftRecursive makes, so a
// growing rule's match always spans everything matched so far rather
// than just the latest increment. A match recorded here may later be
// discarded by a restore() if the caller backtracks past it; that is
// the same append-then-maybe-truncate discipline every other Expr uses.
func (ctx *Context) evalBody(r *Rule, term bool, begin Position) step {
	var out step
	if term {
		out = r.Expr.parseTerm(ctx)
	} else {
		out = r.Expr.parseNonTerm(ctx)
	}
	if !out.unwinding() && out.ok && r.action != nil {
		ctx.matches = append(ctx.matches, Match{Rule: r, Begin: begin, End: ctx.pos})
	}
	return out
}

// parseNonTerm and parseTerm are the two faces of the same dispatcher:
// the left-recursion seed-and-grow protocol, run once per Rule
// activation. The only difference between them is which of Expr's two
// entry points evalBody calls.
func (ctx *Context) parseNonTerm(r *Rule) step { return ctx.dispatch(r, false) }
func (ctx *Context) parseTerm(r *Rule) step    { return ctx.dispatch(r, true) }

func (ctx *Context) dispatch(r *Rule, term bool) step {
	ctx.tracer.Enter(r, ctx.pos)

	old := r.state
	curPos := ctx.pos.Cursor
	lr := curPos == old.lastAttemptPos
	r.state.lastAttemptPos = curPos

	switch old.mode {
	case modeParse:
		if lr {
			out := ctx.growLeftRecursive(r, term)
			ctx.tracer.Exit(r, out.ok, ctx.pos)
			return out
		}
		// This is the one frame with an actual "catch": a completion
		// signal for r ends here and is consumed as a plain success.
		// A completion signal for any other rule (a cycle pivoted
		// somewhere above us, e.g. through a sibling rule in an
		// indirect-LR chain) restores our own state and keeps
		// propagating unexamined — we are not who it is for.
		out := ctx.evalBody(r, term, ctx.pos)
		if out.unwind == r {
			out = okStep()
		} else if out.unwinding() {
			r.state = old
			ctx.tracer.Exit(r, false, ctx.pos)
			return out
		}
		r.state = old
		ctx.tracer.Exit(r, out.ok, ctx.pos)
		return out

	case modeReject:
		if lr {
			r.state = old
			ctx.tracer.Exit(r, false, ctx.pos)
			return failStep()
		}
		r.state.mode = modeParse
		out := ctx.evalBody(r, term, ctx.pos)
		if out.unwinding() {
			// no catch at this mode: propagate as-is, leaving
			// r.state exactly where the unwind left it — only a
			// modeParse frame further up restores anything.
			ctx.tracer.Exit(r, false, ctx.pos)
			return out
		}
		r.state = old
		ctx.tracer.Exit(r, out.ok, ctx.pos)
		return out

	case modeAccept:
		if lr {
			r.state = old
			ctx.tracer.Exit(r, true, ctx.pos)
			return okStep()
		}
		r.state.mode = modeParse
		out := ctx.evalBody(r, term, ctx.pos)
		if out.unwinding() {
			ctx.tracer.Exit(r, false, ctx.pos)
			return out
		}
		r.state = old
		ctx.tracer.Exit(r, out.ok, ctx.pos)
		return out
	}

	panic("unreachable rule mode")
}

// growLeftRecursive implements the seed-and-grow cycle: first reject
// the recursive alternative entirely to force a non-recursive seed
// match, then repeatedly re-evaluate the rule body — now letting the
// self-reference resolve instantly to "whatever has been matched so
// far" — for as long as each iteration both succeeds and advances the
// cursor. Every seed/grow evaluation is told to begin its match record
// at entry, the position r was originally activated at, not at
// whichever position the previous iteration happened to stop at — so
// the recorded match for a growing rule always spans the whole of what
// it has matched so far, and a grown record properly contains every
// child match recorded inside it. The cycle's completion is reported
// via the unwind signal so every enclosing Expr frame between here and
// the originating, non-left-recursive activation of r propagates it
// untouched.
func (ctx *Context) growLeftRecursive(r *Rule, term bool) step {
	old := r.state
	entry := ctx.pos

	r.state.mode = modeReject
	seed := ctx.evalBody(r, term, entry)
	if seed.unwinding() {
		// no catch here either: an unrelated cycle's completion
		// signal, surfacing from deep inside the seed attempt,
		// passes straight through with r.state left wherever it is.
		return seed
	}
	if !seed.ok {
		r.state = old
		return failStep()
	}

	r.state.mode = modeAccept
	limit := ctx.config.maxGrowIterations()
	for i := 0; limit <= 0 || i < limit; i++ {
		st := ctx.snapshot()
		r.state.lastAttemptPos = ctx.pos.Cursor

		grown := ctx.evalBody(r, term, entry)
		if grown.unwinding() {
			return grown
		}
		if !grown.ok {
			ctx.restore(st)
			break
		}
		if ctx.pos.Cursor <= st.pos.Cursor {
			// no progress: an iteration that doesn't advance past
			// the previous one can only repeat forever.
			ctx.restore(st)
			break
		}
	}

	r.state = old
	return step{ok: true, unwind: r}
}
