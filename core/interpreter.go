package core

// Phase is the engine-level state machine from spec.md §4.13.
type Phase int

const (
	Uninitialized Phase = iota
	Running
	Stopped
)

func (p Phase) String() string {
	switch p {
	case Uninitialized:
		return "uninitialized"
	case Running:
		return "running"
	case Stopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// DefaultEventlessLimit is the cycle guard from spec.md §4.7: at most
// this many consecutive eventless microsteps run before the fixpoint
// loop gives up and freezes the configuration (CycleOverflow, §4.12).
var DefaultEventlessLimit = 100

// StateChart is the mutable runtime value described in spec.md §3:
// an OptimizedDocument reference (shared, read-only) plus the
// Configuration and internal event queue that belong to this chart
// alone.
type StateChart struct {
	Doc           *OptimizedDocument
	Configuration Configuration
	Phase         Phase

	// EventlessLimit overrides DefaultEventlessLimit for this
	// chart. Zero means "use DefaultEventlessLimit".
	EventlessLimit int

	internal []Event
}

func (sc *StateChart) limit() int {
	if sc.EventlessLimit > 0 {
		return sc.EventlessLimit
	}
	return DefaultEventlessLimit
}

// Copy makes a deep copy of the StateChart. The OptimizedDocument
// reference is shared (it is immutable), matching spec.md §5's
// sharing model.
func (sc *StateChart) Copy() *StateChart {
	internal := make([]Event, len(sc.internal))
	copy(internal, sc.internal)
	return &StateChart{
		Doc:            sc.Doc,
		Configuration:  sc.Configuration.Copy(),
		Phase:          sc.Phase,
		EventlessLimit: sc.EventlessLimit,
		internal:       internal,
	}
}

// Initialize validates and optimizes doc, then calls InitializeOptimized.
//
// oracle may be nil if no transition declares a cond.
func Initialize(doc *Document, oracle ConditionOracle, executor ActionExecutor) (*StateChart, *Diagnostics, error) {
	opt, diags := Validate(doc, oracle)
	if diags.HasErrors() {
		return nil, diags, &ValidationError{Diagnostics: diags}
	}
	return InitializeOptimized(opt, executor), diags, nil
}

// InitializeOptimized computes the initial Configuration of an
// already-validated OptimizedDocument by entering its initial state
// (or the first top-level state), runs the eventless fixpoint, and
// returns the resulting StateChart. Exported so a caller managing
// many charts over one shared, already-validated document (see the
// host package's Fleet) doesn't have to re-validate per chart.
func InitializeOptimized(opt *OptimizedDocument, executor ActionExecutor) *StateChart {
	sc := &StateChart{
		Doc:           opt,
		Configuration: NewConfiguration(),
		Phase:         Running,
	}

	for _, leaf := range enterLeaves(opt, opt.InitialStateId()) {
		sc.Configuration.add(leaf)
	}
	if executor == nil {
		executor = NoopExecutor{}
	}
	for _, leaf := range sc.Configuration.Leaves() {
		res, _ := executor.OnEntry(sc.evalContext(nil), leaf, opt.MustState(leaf).OnEntry)
		sc.absorb(res)
	}

	for 0 < len(sc.internal) {
		e := sc.internal[0]
		sc.internal = sc.internal[1:]
		sc.runMicrostep(&e, executor)
	}

	sc.runEventlessFixpoint(executor)
	sc.updatePhase()

	return sc
}

// SendEvent is a pure transformation from (StateChart, Event) to
// StateChart (spec.md §5): it never mutates sc, always returns a new
// value, and a no-op send (no enabled transition, or the chart is
// already Stopped) returns a StateChart equal to sc.
func SendEvent(sc *StateChart, ev Event, executor ActionExecutor) *StateChart {
	next := sc.Copy()

	if next.Phase == Stopped {
		return next
	}
	if executor == nil {
		executor = NoopExecutor{}
	}

	next.internal = append(next.internal, ev)
	for 0 < len(next.internal) {
		e := next.internal[0]
		next.internal = next.internal[1:]
		next.runMicrostep(&e, executor)
	}

	next.runEventlessFixpoint(executor)
	next.updatePhase()

	return next
}

// updatePhase applies spec.md §4.13's terminal condition: the
// configuration consists solely of top-level final states.
func (sc *StateChart) updatePhase() {
	if sc.Phase == Stopped {
		return
	}
	if len(sc.Configuration) == 0 {
		return
	}
	for leaf := range sc.Configuration {
		s, have := sc.Doc.State(leaf)
		if !have || s.Parent != "" || s.Kind != KindFinal {
			return
		}
	}
	sc.Phase = Stopped
}

func (sc *StateChart) evalContext(ev *Event) EvalContext {
	active := sc.Configuration.WithAncestors(sc.Doc)
	ctx := EvalContext{In: func(id string) bool { return active[id] }}
	if ev != nil {
		ctx.HasEvent = true
		ctx.EventName = ev.Name
		ctx.EventData = ev.Payload
	}
	return ctx
}

// ActiveLeaves returns the Configuration's leaf ids, sorted.
func ActiveLeaves(sc *StateChart) []string {
	return sc.Configuration.Leaves()
}

// ActiveWithAncestors returns the union of every active leaf's
// ancestor chain with the leaves themselves (spec.md §8 property 4).
func ActiveWithAncestors(sc *StateChart) map[string]bool {
	return sc.Configuration.WithAncestors(sc.Doc)
}

// IsActive reports whether id is an active leaf.
func IsActive(sc *StateChart, id string) bool {
	return sc.Configuration.Has(id)
}
