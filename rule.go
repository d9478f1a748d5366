package peglr

// mode is a Rule's left-recursion detection state for the activation
// currently in flight. It has no meaning outside of a single call to
// Parse; the driver resets every rule's state before each run.
type mode int

const (
	modeParse mode = iota
	modeReject
	modeAccept
)

func (m mode) String() string {
	switch m {
	case modeParse:
		return "PARSE"
	case modeReject:
		return "REJECT"
	case modeAccept:
		return "ACCEPT"
	default:
		return "?"
	}
}

// ruleState is the per-parse left-recursion bookkeeping for a Rule:
// the current mode and the cursor at which this rule was last
// attempted. lastAttemptPos starts at -1, a cursor no real attempt
// ever has, so the very first activation of a rule is never mistaken
// for a left-recursive re-entry.
type ruleState struct {
	mode           mode
	lastAttemptPos int
}

func freshRuleState() ruleState {
	return ruleState{mode: modeParse, lastAttemptPos: -1}
}

// Action is invoked once per recorded match, in post-order, after an
// entire Parse call has succeeded. userData is whatever the caller
// passed to Parse; actions typically use it to carry a value stack or
// AST-builder the host language owns.
type Action func(begin, end Position, userData any)

// Rule is a named, possibly left-recursive non-terminal. Its
// identity is the pointer: two Rules with identical bodies are still
// distinct rules, and RuleRef always refers to a Rule by pointer so
// that mutual/indirect recursion can be wired up before every rule in
// a cycle has been fully constructed.
//
// Rule is not safe to copy; always construct with NewRule and pass
// Rules around by pointer.
type Rule struct {
	Name   string
	Expr   Expr
	action Action

	state ruleState
}

// NewRule allocates a named rule with no body. Set Expr before using
// it in a parse; this two-step construction is what makes mutually
// recursive grammars possible — RuleRef(r) can be written before r.Expr
// is assigned.
func NewRule(name string) *Rule {
	r := &Rule{Name: name}
	r.state = freshRuleState()
	return r
}

// Define assigns the rule's body. It returns the rule so grammar
// construction can be written as a flat list of NewRule().Define(...)
// calls.
func (r *Rule) Define(e Expr) *Rule {
	r.Expr = e
	return r
}

// BindAction attaches a semantic action to the rule. Every successful
// match of this rule during a parse becomes one match record, and
// bound actions run over the recorded matches in post-order once the
// overall parse succeeds. A rule with no bound action still
// participates in matching; it simply never appears in the match log.
func (r *Rule) BindAction(fn Action) *Rule {
	r.action = fn
	return r
}

// reset reinitializes the rule's per-parse state. The driver calls this
// on every rule reachable from the grammar root before each Parse.
func (r *Rule) reset() {
	r.state = freshRuleState()
}
