package core

// Document is the raw tree a parser builds from an SCXML byte stream.
//
// A Document has not been checked for structural soundness and
// carries no derived data (parent pointers, document-order indices on
// the optimized side, state kinds). See Validate.
type Document struct {
	Name     string  `json:"name,omitempty" yaml:",omitempty"`
	Initial  string  `json:"initial,omitempty" yaml:",omitempty"`
	States   []*State `json:"states,omitempty" yaml:",omitempty"`
	Datamodel []DataItem `json:"datamodel,omitempty" yaml:",omitempty"`

	// Params documents the startup parameters this document
	// declares. Advisory: Validate checks each ParamSpec's shape,
	// but Initialize takes no parameter values and nothing in this
	// package enforces that a caller supplies them.
	Params []ParamSpec `json:"params,omitempty" yaml:",omitempty"`
}

// DataItem is one <data> declaration under <datamodel>.
//
// The expression language behind Expr is out of scope for this
// package; DataItem is carried through unevaluated.
type DataItem struct {
	Id   string `json:"id"`
	Expr string `json:"expr,omitempty" yaml:",omitempty"`
}

// ElementKind names the SCXML element a raw State was parsed from.
// Validate turns this into a StateKind, which also accounts for
// structural position (a <state> with no children is atomic; one
// with children is compound).
type ElementKind int

const (
	ElementState ElementKind = iota
	ElementParallel
	ElementFinal
	ElementInitial
)

// State is a node in the raw, unvalidated Document tree.
type State struct {
	Id      string  `json:"id,omitempty" yaml:",omitempty"`
	Element ElementKind `json:"element,omitempty" yaml:",omitempty"`

	// Initial names a direct child to enter first, when this
	// state is a compound state. Mutually exclusive with an
	// <initial> pseudo-child; see Validate check 5.
	Initial string `json:"initial,omitempty" yaml:",omitempty"`

	Children    []*State      `json:"children,omitempty" yaml:",omitempty"`
	Transitions []*Transition `json:"transitions,omitempty" yaml:",omitempty"`

	// OnEntryActions and OnExitActions are the <log>/<raise>
	// executable content declared directly under this state's
	// <onentry>/<onexit>, in document order (spec.md §4.1, §4.3).
	OnEntryActions []Action `json:"onEntryActions,omitempty" yaml:",omitempty"`
	OnExitActions  []Action `json:"onExitActions,omitempty" yaml:",omitempty"`

	// DocOrder is assigned by the parser at start-tag time. It is
	// carried on the raw tree so Validate doesn't need a second
	// walk just to recover ordering.
	DocOrder int `json:"-" yaml:"-"`
}

// Transition is a raw <transition> element.
type Transition struct {
	// Event is the transition's event descriptor. An empty string
	// means eventless (the parser collapses an absent or
	// empty-string "event" attribute to "").
	Event string `json:"event,omitempty" yaml:",omitempty"`

	// Target is the target state id, or "" for an internal,
	// targetless transition.
	Target string `json:"target,omitempty" yaml:",omitempty"`

	// Cond is the raw, uncompiled condition source, or "" if the
	// transition is unconditional.
	Cond string `json:"cond,omitempty" yaml:",omitempty"`

	// Actions are the <log>/<raise> executable content declared
	// directly under this transition, in document order.
	Actions []Action `json:"actions,omitempty" yaml:",omitempty"`

	DocOrder int `json:"-" yaml:"-"`
}

// AssignDocumentOrder walks the Document depth-first, assigning each
// State and Transition a monotonically increasing DocOrder in the
// order: a state, then its own transitions, then its children in
// order. This equals start-tag order only when each state's
// transitions precede its child states in the source.
//
// The parser assigns DocOrder itself at start-tag time; a Document
// built by hand (as in tests) can call this instead of
// hand-numbering every node.
func AssignDocumentOrder(doc *Document) {
	counter := 0
	var walk func(s *State)
	walk = func(s *State) {
		counter++
		s.DocOrder = counter
		for _, t := range s.Transitions {
			counter++
			t.DocOrder = counter
		}
		for _, c := range s.Children {
			walk(c)
		}
	}
	for _, s := range doc.States {
		walk(s)
	}
}

// Copy makes a deep copy of the Document.
func (d *Document) Copy() *Document {
	if d == nil {
		return nil
	}
	states := make([]*State, len(d.States))
	for i, s := range d.States {
		states[i] = s.Copy()
	}
	dm := make([]DataItem, len(d.Datamodel))
	copy(dm, d.Datamodel)
	params := make([]ParamSpec, len(d.Params))
	copy(params, d.Params)
	return &Document{
		Name:      d.Name,
		Initial:   d.Initial,
		States:    states,
		Datamodel: dm,
		Params:    params,
	}
}

// Copy makes a deep copy of the State, including its subtree.
func (s *State) Copy() *State {
	if s == nil {
		return nil
	}
	children := make([]*State, len(s.Children))
	for i, c := range s.Children {
		children[i] = c.Copy()
	}
	ts := make([]*Transition, len(s.Transitions))
	for i, t := range s.Transitions {
		ts[i] = t.Copy()
	}
	onEntry := make([]Action, len(s.OnEntryActions))
	copy(onEntry, s.OnEntryActions)
	onExit := make([]Action, len(s.OnExitActions))
	copy(onExit, s.OnExitActions)
	return &State{
		Id:             s.Id,
		Element:        s.Element,
		Initial:        s.Initial,
		Children:       children,
		Transitions:    ts,
		OnEntryActions: onEntry,
		OnExitActions:  onExit,
		DocOrder:       s.DocOrder,
	}
}

// Copy makes a copy of the Transition.
func (t *Transition) Copy() *Transition {
	if t == nil {
		return nil
	}
	cp := *t
	return &cp
}
