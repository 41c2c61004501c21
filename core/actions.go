package core

// ActionKind names the executable-content element an Action was
// parsed from (spec.md §4.1's "Recognized elements").
type ActionKind int

const (
	ActionLog ActionKind = iota
	ActionRaise
)

func (k ActionKind) String() string {
	switch k {
	case ActionLog:
		return "log"
	case ActionRaise:
		return "raise"
	default:
		return "unknown"
	}
}

// Action is one piece of executable content attached to a State's
// onentry/onexit block or to a Transition: a parsed <log> or <raise>
// element. Which fields are meaningful depends on Kind.
type Action struct {
	Kind ActionKind

	// Label and Expr are <log>'s `label` and `expr` attributes.
	Label string
	Expr  string

	// Event is <raise>'s `event` attribute.
	Event string
}

// ActionResult is what an ActionExecutor hands back from one of its
// three call points. Per spec.md §9 Open Question (a), action
// execution itself is delegated entirely to this collaborator; the
// interpreter only calls it at the documented points and folds the
// result back into the macrostep.
type ActionResult struct {
	// Raised are events to push onto the internal queue (from
	// <raise>). Processed FIFO, ahead of the eventless fixpoint
	// (spec.md §5).
	Raised []Event

	// Log holds <log> trace messages. Never written to a live
	// logger by this package: the interpreter drops Log when it
	// folds a result into the macrostep, so only the
	// ActionExecutor that produced the messages can act on them.
	Log []string
}

// ActionExecutor runs onentry/onexit/transition actions. It is the
// pluggable "action-executor collaborator" from spec.md §9 Open
// Question (a). A nil ActionExecutor is equivalent to one that does
// nothing at every call point. actions is the parsed executable
// content declared on that state's onentry/onexit block, or on that
// transition, in document order.
type ActionExecutor interface {
	// OnExit runs a state's onexit actions. Called after the exit
	// set for the current microstep has been computed but before
	// those states are removed from the Configuration.
	OnExit(ctx EvalContext, stateId string, actions []Action) (*ActionResult, error)

	// OnEntry runs a state's onentry actions. Called after the
	// entry set has been installed into the Configuration.
	OnEntry(ctx EvalContext, stateId string, actions []Action) (*ActionResult, error)

	// OnTransition runs a transition's own actions (distinct from
	// the source's onexit and the target's onentry). Called once
	// per selected transition, targeted or not.
	OnTransition(ctx EvalContext, sourceId, targetId string, actions []Action) (*ActionResult, error)
}

// NoopExecutor implements ActionExecutor by doing nothing, including
// ignoring any <log>/<raise> actions it is handed. Useful for tests
// that only care about configuration transitions and want to opt out
// of action execution entirely.
type NoopExecutor struct{}

func (NoopExecutor) OnExit(EvalContext, string, []Action) (*ActionResult, error) { return nil, nil }
func (NoopExecutor) OnEntry(EvalContext, string, []Action) (*ActionResult, error) {
	return nil, nil
}
func (NoopExecutor) OnTransition(EvalContext, string, string, []Action) (*ActionResult, error) {
	return nil, nil
}

// BasicExecutor implements ActionExecutor by actually running <log>
// and <raise>: a <raise> is turned into an Event pushed onto the
// internal queue (spec.md §4.3's supplemented "<raise> pushes a
// synthesized event onto the internal queue"), and a <log> is
// formatted and appended to ActionResult.Log, never written to a live
// logger directly (spec.md §4.3's "<log> ... appends a formatted
// message to the trace list"). Use this as the default executor for a
// caller that wants SCXML's executable content to actually run; see
// NoopExecutor for a true no-op.
type BasicExecutor struct{}

func (BasicExecutor) OnExit(ctx EvalContext, stateId string, actions []Action) (*ActionResult, error) {
	return runActions(ctx, actions)
}

func (BasicExecutor) OnEntry(ctx EvalContext, stateId string, actions []Action) (*ActionResult, error) {
	return runActions(ctx, actions)
}

func (BasicExecutor) OnTransition(ctx EvalContext, sourceId, targetId string, actions []Action) (*ActionResult, error) {
	return runActions(ctx, actions)
}

// runActions is the shared body behind BasicExecutor's three call
// points: <raise> actions become Raised events, <log> actions become
// formatted trace lines.
func runActions(ctx EvalContext, actions []Action) (*ActionResult, error) {
	if len(actions) == 0 {
		return nil, nil
	}
	res := &ActionResult{}
	for _, a := range actions {
		switch a.Kind {
		case ActionRaise:
			res.Raised = append(res.Raised, Event{Name: a.Event})
		case ActionLog:
			res.Log = append(res.Log, formatLog(a))
		}
	}
	return res, nil
}

func formatLog(a Action) string {
	if a.Label != "" {
		return a.Label + ": " + a.Expr
	}
	return a.Expr
}
