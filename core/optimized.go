package core

// StateKind classifies an OState once its structural position in the
// tree is known, which the raw ElementKind alone cannot determine (a
// <state> with children is compound; one without is atomic).
type StateKind int

const (
	KindAtomic StateKind = iota
	KindCompound
	KindFinal
	KindParallel
	KindInitialPseudo
)

func (k StateKind) String() string {
	switch k {
	case KindAtomic:
		return "atomic"
	case KindCompound:
		return "compound"
	case KindFinal:
		return "final"
	case KindParallel:
		return "parallel"
	case KindInitialPseudo:
		return "initial-pseudo"
	default:
		return "unknown"
	}
}

// OState is a validated, optimized state: document order, parent, and
// kind are all precomputed so the interpreter never has to re-derive
// them per event.
type OState struct {
	Id       string
	Kind     StateKind
	Parent   string // "" for a top-level state
	Children []string // document order, includes any initial-pseudo child
	DocOrder int

	// Initial is the resolved id of the child to descend into
	// first: the `initial` attribute if present, else the target
	// of an <initial> pseudo-child, else the first non-pseudo
	// child in document order. Empty for atomic/final/parallel
	// states and for a compound state with no resolvable child.
	Initial string

	// OnEntry and OnExit are this state's <log>/<raise> executable
	// content, handed to an ActionExecutor's OnEntry/OnExit calls.
	OnEntry []Action
	OnExit  []Action
}

// OTransition is a validated, optimized transition.
type OTransition struct {
	Source    string
	Event     string // "" means eventless
	Eventless bool
	HasTarget bool
	Target    string // meaningful only if HasTarget
	CondSrc   string
	Cond      CompiledCondition // nil means conditionTrue
	Actions   []Action
	DocOrder  int
}

// OptimizedDocument is the validated form of a Document: O(1) lookups
// by id, a precomputed transition-by-source index (values in document
// order), and resolved state kinds/parents/initial children.
type OptimizedDocument struct {
	Name    string
	Initial string // resolved top-level initial state id, or "" to mean "first top-level state"

	TopLevel []string // top-level state ids, in document order

	byId              map[string]*OState
	transitionsBySrc  map[string][]*OTransition
	transitionCount   int
}

// State looks up a state by id.
func (d *OptimizedDocument) State(id string) (*OState, bool) {
	s, have := d.byId[id]
	return s, have
}

// MustState is State, panicking if the id is unknown. Only safe to
// call with ids already known to resolve (e.g. ids drawn from a
// Configuration built by this same document).
func (d *OptimizedDocument) MustState(id string) *OState {
	s, have := d.byId[id]
	if !have {
		panic(&UnknownStateError{id})
	}
	return s
}

// TransitionsFrom returns the transitions declared directly on the
// given state, in document order.
func (d *OptimizedDocument) TransitionsFrom(id string) []*OTransition {
	return d.transitionsBySrc[id]
}

// InitialStateId returns the document's declared initial state, or
// the first top-level state if none was declared.
func (d *OptimizedDocument) InitialStateId() string {
	if d.Initial != "" {
		return d.Initial
	}
	if 0 < len(d.TopLevel) {
		return d.TopLevel[0]
	}
	return ""
}

// IsDescendant reports whether `id` is a proper descendant of
// `ancestor` by walking parent pointers. O(depth).
func (d *OptimizedDocument) IsDescendant(id, ancestor string) bool {
	s, have := d.byId[id]
	if !have {
		return false
	}
	for s.Parent != "" {
		if s.Parent == ancestor {
			return true
		}
		s = d.byId[s.Parent]
	}
	return false
}

// Ancestors returns the chain of parent ids from `id` up to (but not
// including) the root, nearest ancestor first.
func (d *OptimizedDocument) Ancestors(id string) []string {
	var acc []string
	s, have := d.byId[id]
	if !have {
		return acc
	}
	for s.Parent != "" {
		acc = append(acc, s.Parent)
		s = d.byId[s.Parent]
	}
	return acc
}

// eventMatches implements spec.md §4.4's segment-prefix event match.
func eventMatches(descriptor, eventName string) bool {
	if descriptor == "*" {
		return true
	}
	if descriptor == eventName {
		return true
	}
	return len(eventName) > len(descriptor) &&
		eventName[:len(descriptor)] == descriptor &&
		eventName[len(descriptor)] == '.'
}
