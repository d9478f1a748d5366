package peglr

import "github.com/sirupsen/logrus"

// Tracer observes rule activations as the engine runs. It exists
// purely for diagnostics: nothing in the engine's control flow
// depends on a Tracer being present, and the default is a silent
// no-op so tracing costs nothing unless a caller opts in.
type Tracer interface {
	Enter(r *Rule, at Position)
	Exit(r *Rule, ok bool, at Position)
}

// NopTracer discards every event. It is the Context default.
type NopTracer struct{}

func (NopTracer) Enter(*Rule, Position)     {}
func (NopTracer) Exit(*Rule, bool, Position) {}

// LogrusTracer emits one structured log entry per rule enter/exit at
// logrus.TraceLevel, carrying the rule name and position (plus, on
// enter, the rule's current mode; on exit, whether it matched) — useful for diagnosing left-recursion grow
// cycles without instrumenting the engine itself.
type LogrusTracer struct {
	Log *logrus.Logger
}

// NewLogrusTracer builds a Tracer backed by log, or by a fresh
// logrus.New() if log is nil. It does not change the logger's level;
// callers that want output must enable TraceLevel themselves, matching
// logrus's own opt-in defaults.
func NewLogrusTracer(log *logrus.Logger) *LogrusTracer {
	if log == nil {
		log = logrus.New()
	}
	return &LogrusTracer{Log: log}
}

func (t *LogrusTracer) Enter(r *Rule, at Position) {
	t.Log.WithFields(logrus.Fields{
		"rule": r.Name,
		"mode": r.state.mode.String(),
		"at":   at.String(),
	}).Trace("enter")
}

func (t *LogrusTracer) Exit(r *Rule, ok bool, at Position) {
	t.Log.WithFields(logrus.Fields{
		"rule": r.Name,
		"ok":   ok,
		"at":   at.String(),
	}).Trace("exit")
}
