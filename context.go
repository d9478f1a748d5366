package peglr

// Match is a single recorded application of an action-bound Rule:
// the rule matched the half-open span [Begin, End) of the input.
// Matches are appended in post-order — a rule's children are recorded
// before the rule itself — so replaying them in log order replays a
// bottom-up traversal of the (implicit) parse tree.
type Match struct {
	Rule  *Rule
	Begin Position
	End   Position
}

func (m Match) Span() Span { return NewSpan(m.Begin, m.End) }

// snapshot is a speculative checkpoint: restoring it undoes every
// position advance and every match appended since it was taken. This
// is the only state backtracking ever needs to unwind — expressions
// themselves hold no state of their own.
type snapshot struct {
	pos      Position
	matchLen int
}

// Context is the mutable state threaded through a single parse. It is
// not safe for concurrent use and does not outlive one call to Parse.
type Context struct {
	input Input

	pos       Position
	furthest  Position
	sawInput  bool // whether setErrorPos has ever run, disambiguating cursor 0 from "never failed"

	whitespace *Rule // nil means no whitespace skipping

	matches []Match

	tracer Tracer
	config *Config
}

func newContext(input Input, whitespace *Rule, cfg *Config, tracer Tracer) *Context {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if tracer == nil {
		tracer = NopTracer{}
	}
	return &Context{
		input:      input,
		pos:        StartPosition(),
		furthest:   StartPosition(),
		whitespace: whitespace,
		tracer:     tracer,
		config:     cfg,
	}
}

func (ctx *Context) snapshot() snapshot {
	return snapshot{pos: ctx.pos, matchLen: len(ctx.matches)}
}

// restore rewinds position and truncates the match log back to a
// prior snapshot. It never touches furthest-error tracking — that
// position is monotonic by design.
func (ctx *Context) restore(s snapshot) {
	ctx.pos = s.pos
	ctx.matches = ctx.matches[:s.matchLen]
}

// advance moves the cursor over a single rune already confirmed to be
// at the current position. It only tracks column, never line: nothing
// about the character itself marks it as a line break, so line
// counting is left entirely to Newline, the one Expr that bumps it.
// furthest-error tracking is untouched here too — it moves only on
// failure, via setErrorPos.
func (ctx *Context) advance() {
	ctx.pos.Cursor++
	ctx.pos.Column++
}

// newLine bumps the line counter and resets the column. It is called
// only by the Newline wrapper Expr, once its child has successfully
// matched a line-break sequence.
func (ctx *Context) newLine() {
	ctx.pos.Line++
	ctx.pos.Column = 1
}

// setErrorPos records a failure at the current position as a
// candidate furthest-error location. It only ever moves forward:
// backtracking to an earlier position must never erase a deeper
// failure another branch already reached.
func (ctx *Context) setErrorPos(p Position) {
	if !ctx.sawInput || ctx.furthest.Cursor < p.Cursor {
		ctx.furthest = p
		ctx.sawInput = true
	}
}

// skipWhitespace runs the whitespace rule once, if one is configured.
// A rule bound to whitespace is expected to itself be a ZeroOrMore
// (or equivalent) over the whitespace character set, so one call
// consumes an entire run; a rule that fails to match simply leaves
// the cursor untouched, since whitespace is always optional.
func (ctx *Context) skipWhitespace() {
	if ctx.whitespace == nil {
		return
	}
	ctx.parseNonTerm(ctx.whitespace)
}

func (ctx *Context) eof() bool {
	return ctx.pos.Cursor >= ctx.input.End()
}

func (ctx *Context) peek() rune {
	return ctx.input.At(ctx.pos.Cursor)
}
