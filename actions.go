package peglr

// runActions replays the match log in recorded (post-order) order,
// invoking each match's rule's bound action. It only ever runs after
// a whole Parse call has succeeded, so every match in the log is
// final — nothing here needs to consult positions or backtrack.
func (ctx *Context) runActions(userData any) {
	for _, m := range ctx.matches {
		if m.Rule.action == nil {
			continue
		}
		m.Rule.action(m.Begin, m.End, userData)
	}
}

// Matches exposes the recorded match log for callers that want to
// inspect it directly instead of (or in addition to) running bound
// actions — useful for tests and tooling.
func (ctx *Context) Matches() []Match {
	out := make([]Match, len(ctx.matches))
	copy(out, ctx.matches)
	return out
}
