package peglr

// ParseOption customizes a single Parse call.
type ParseOption func(*parseOptions)

type parseOptions struct {
	whitespace *Rule
	config     *Config
	tracer     Tracer
}

// WithWhitespace sets the rule used to skip whitespace between
// sequence elements in non-terminal mode. Without it, no whitespace
// skipping happens anywhere in the grammar.
func WithWhitespace(r *Rule) ParseOption {
	return func(o *parseOptions) { o.whitespace = r }
}

// WithConfig overrides the engine's default knobs.
func WithConfig(c *Config) ParseOption {
	return func(o *parseOptions) { o.config = c }
}

// WithTracer installs an observer for rule enter/exit events.
func WithTracer(t Tracer) ParseOption {
	return func(o *parseOptions) { o.tracer = t }
}

// Parse runs grammarRule against the full contents of input. On
// success it runs every bound action, in match order, passing
// userData through to each, and returns true. On failure it reports
// exactly one error to sink and returns false: a SYNTAX error at the
// furthest position any branch reached, unless the grammar matched a
// proper prefix whose furthest-reaching (but ultimately abandoned)
// attempt ran all the way to the true end of input, in which case it
// is reported as InvalidEOF instead.
//
// Every rule transitively reachable from grammarRule (and from the
// whitespace rule, if one is given) has its left-recursion state
// reset before parsing begins; Parse is not reentrant for a grammar
// already mid-parse, per the single-parse-at-a-time contract.
func Parse(input Input, grammarRule *Rule, sink ErrorSink, userData any, opts ...ParseOption) bool {
	var o parseOptions
	for _, opt := range opts {
		opt(&o)
	}
	if o.config == nil {
		o.config = DefaultConfig()
	}

	resetRuleGraph(grammarRule)
	if o.whitespace != nil {
		resetRuleGraph(o.whitespace)
	}

	ctx := newContext(input, o.whitespace, o.config, o.tracer)

	ctx.skipWhitespace()
	out := ctx.parseNonTerm(grammarRule)
	if !out.ok {
		report(sink, ctx, SYNTAX)
		return false
	}
	ctx.skipWhitespace()

	if !ctx.eof() {
		// input remains: the furthest failure any branch ever reached
		// tells us whether the grammar simply stopped short of
		// something it needed (SYNTAX) or ran every attempt all the
		// way to the true end without ever backing off before it
		// (InvalidEOF).
		kind := SYNTAX
		if ctx.furthest.Cursor >= ctx.input.End() {
			kind = InvalidEOF
		}
		report(sink, ctx, kind)
		return false
	}

	ctx.runActions(userData)
	return true
}

func report(sink ErrorSink, ctx *Context, kind ErrorKind) {
	if sink == nil {
		return
	}
	sink.Report(&SyntaxError{Kind: kind, At: ctx.furthest})
}

// resetRuleGraph walks every rule reachable from root through RuleRef
// and resets its per-parse left-recursion state. Rules form a DAG
// except through RuleRef cycles, so this is a plain visited-set walk.
func resetRuleGraph(root *Rule) {
	seen := make(map[*Rule]bool)
	var walk func(r *Rule)
	walk = func(r *Rule) {
		if r == nil || seen[r] {
			return
		}
		seen[r] = true
		r.reset()
		walkExpr(r.Expr, seen, walk)
	}
	walk(root)
}

func walkExpr(e Expr, seen map[*Rule]bool, visitRule func(*Rule)) {
	switch v := e.(type) {
	case ruleRefExpr:
		visitRule(v.rule)
	case seqExpr:
		for _, it := range v.items {
			walkExpr(it, seen, visitRule)
		}
	case choiceExpr:
		for _, it := range v.alts {
			walkExpr(it, seen, visitRule)
		}
	case optionalExpr:
		walkExpr(v.inner, seen, visitRule)
	case repeatExpr:
		walkExpr(v.inner, seen, visitRule)
	case andExpr:
		walkExpr(v.inner, seen, visitRule)
	case notExpr:
		walkExpr(v.inner, seen, visitRule)
	case terminalExpr:
		walkExpr(v.inner, seen, visitRule)
	case newlineExpr:
		walkExpr(v.inner, seen, visitRule)
	}
}
