package core

import (
	"reflect"
	"sort"
	"strings"
	"testing"
)

func leaves(sc *StateChart) []string {
	ls := ActiveLeaves(sc)
	sort.Strings(ls)
	return ls
}

func mustInit(t *testing.T, doc *Document, oracle ConditionOracle) *StateChart {
	t.Helper()
	AssignDocumentOrder(doc)
	sc, diags, err := Initialize(doc, oracle, nil)
	if err != nil {
		t.Fatalf("Initialize: %v; diagnostics: %+v", err, diags)
	}
	return sc
}

// S1 — simple transition.
func TestS1SimpleTransition(t *testing.T) {
	doc := &Document{
		Initial: "a",
		States: []*State{
			{Id: "a", Transitions: []*Transition{{Event: "go", Target: "b"}}},
			{Id: "b"},
		},
	}
	sc := mustInit(t, doc, nil)

	if got := leaves(sc); !reflect.DeepEqual(got, []string{"a"}) {
		t.Fatalf("after init: got %v, want [a]", got)
	}

	sc = SendEvent(sc, Event{Name: "go"}, nil)
	if got := leaves(sc); !reflect.DeepEqual(got, []string{"b"}) {
		t.Fatalf("after go: got %v, want [b]", got)
	}

	again := SendEvent(sc, Event{Name: "go"}, nil)
	if got := leaves(again); !reflect.DeepEqual(got, []string{"b"}) {
		t.Fatalf("after second go: got %v, want [b] (silent no-op)", got)
	}
}

// S2 — compound initial.
func TestS2CompoundInitial(t *testing.T) {
	doc := &Document{
		Initial: "p",
		States: []*State{
			{
				Id:      "p",
				Initial: "c1",
				Children: []*State{
					{Id: "c1"},
					{Id: "c2"},
				},
			},
		},
	}
	sc := mustInit(t, doc, nil)
	if got := leaves(sc); !reflect.DeepEqual(got, []string{"c1"}) {
		t.Fatalf("got %v, want [c1]", got)
	}
}

// S3 — parallel entry.
func TestS3ParallelEntry(t *testing.T) {
	doc := &Document{
		Initial: "par",
		States: []*State{
			{
				Id:      "par",
				Element: ElementParallel,
				Children: []*State{
					{Id: "A", Initial: "a1", Children: []*State{{Id: "a1"}}},
					{Id: "B", Initial: "b1", Children: []*State{{Id: "b1"}}},
				},
			},
		},
	}
	sc := mustInit(t, doc, nil)
	if got := leaves(sc); !reflect.DeepEqual(got, []string{"a1", "b1"}) {
		t.Fatalf("got %v, want [a1 b1]", got)
	}
}

// S4 — eventless fixpoint.
func TestS4EventlessFixpoint(t *testing.T) {
	doc := &Document{
		Initial: "a",
		States: []*State{
			{Id: "a", Transitions: []*Transition{{Target: "b"}}},
			{Id: "b", Transitions: []*Transition{{Target: "c"}}},
			{Id: "c"},
		},
	}
	sc := mustInit(t, doc, nil)
	if got := leaves(sc); !reflect.DeepEqual(got, []string{"c"}) {
		t.Fatalf("got %v, want [c]", got)
	}
}

// S5 — descendant priority.
func TestS5DescendantPriority(t *testing.T) {
	doc := &Document{
		Initial: "p",
		States: []*State{
			{
				Id:          "p",
				Initial:     "child",
				Transitions: []*Transition{{Event: "e", Target: "ancestor-target"}},
				Children: []*State{
					{Id: "child", Transitions: []*Transition{{Event: "e", Target: "child-target"}}},
				},
			},
			{Id: "ancestor-target"},
			{Id: "child-target"},
		},
	}
	sc := mustInit(t, doc, nil)
	if got := leaves(sc); !reflect.DeepEqual(got, []string{"child"}) {
		t.Fatalf("setup: got %v, want [child]", got)
	}

	sc = SendEvent(sc, Event{Name: "e"}, nil)
	if got := leaves(sc); !reflect.DeepEqual(got, []string{"child-target"}) {
		t.Fatalf("got %v, want [child-target] (descendant priority)", got)
	}
}

type jsLikeBoolOracle struct{}

type scoreCond struct {
	min float64
}

func (c scoreCond) Eval(ctx EvalContext) (bool, error) {
	score, _ := ctx.EventData["score"].(float64)
	return score > c.min, nil
}

func (jsLikeBoolOracle) Compile(source string) (CompiledCondition, error) {
	// Minimal stand-in for a real oracle: this test only ever
	// compiles "score>80".
	return scoreCond{min: 80}, nil
}

// S6 — conditional transition.
func TestS6ConditionalTransition(t *testing.T) {
	doc := &Document{
		Initial: "start",
		States: []*State{
			{
				Id: "start",
				Transitions: []*Transition{
					{Event: "submit", Target: "approved", Cond: "score>80"},
					{Event: "submit", Target: "rejected"},
				},
			},
			{Id: "approved"},
			{Id: "rejected"},
		},
	}
	sc := mustInit(t, doc, jsLikeBoolOracle{})

	approved := SendEvent(sc, Event{Name: "submit", Payload: map[string]interface{}{"score": 90.0}}, nil)
	if got := leaves(approved); !reflect.DeepEqual(got, []string{"approved"}) {
		t.Fatalf("got %v, want [approved]", got)
	}

	rejected := SendEvent(sc, Event{Name: "submit", Payload: map[string]interface{}{"score": 50.0}}, nil)
	if got := leaves(rejected); !reflect.DeepEqual(got, []string{"rejected"}) {
		t.Fatalf("got %v, want [rejected]", got)
	}
}

func TestEventMatchingSegmentPrefix(t *testing.T) {
	doc := &Document{
		Initial: "a",
		States: []*State{
			{Id: "a", Transitions: []*Transition{{Event: "error", Target: "b"}}},
			{Id: "b"},
		},
	}
	sc := mustInit(t, doc, nil)

	sc2 := SendEvent(sc, Event{Name: "error.network.timeout"}, nil)
	if got := leaves(sc2); !reflect.DeepEqual(got, []string{"b"}) {
		t.Fatalf("segment-prefix match failed: got %v", got)
	}

	sc3 := SendEvent(sc, Event{Name: "errorish"}, nil)
	if got := leaves(sc3); !reflect.DeepEqual(got, []string{"a"}) {
		t.Fatalf("non-segment prefix must not match: got %v", got)
	}
}

func TestWildcardEventMatch(t *testing.T) {
	doc := &Document{
		Initial: "a",
		States: []*State{
			{Id: "a", Transitions: []*Transition{{Event: "*", Target: "b"}}},
			{Id: "b"},
		},
	}
	sc := mustInit(t, doc, nil)
	sc2 := SendEvent(sc, Event{Name: "anything"}, nil)
	if got := leaves(sc2); !reflect.DeepEqual(got, []string{"b"}) {
		t.Fatalf("wildcard match failed: got %v", got)
	}
}

func TestTerminationOnFinal(t *testing.T) {
	doc := &Document{
		Initial: "a",
		States: []*State{
			{Id: "a", Transitions: []*Transition{{Event: "done", Target: "z"}}},
			{Id: "z", Element: ElementFinal},
		},
	}
	sc := mustInit(t, doc, nil)
	if sc.Phase != Running {
		t.Fatalf("expected Running, got %s", sc.Phase)
	}
	sc = SendEvent(sc, Event{Name: "done"}, nil)
	if sc.Phase != Stopped {
		t.Fatalf("expected Stopped, got %s", sc.Phase)
	}
	again := SendEvent(sc, Event{Name: "done"}, nil)
	if got := leaves(again); !reflect.DeepEqual(got, []string{"z"}) {
		t.Fatalf("stopped chart must ignore further events: got %v", got)
	}
}

func TestTargetlessTransitionIsNoOp(t *testing.T) {
	doc := &Document{
		Initial: "a",
		States: []*State{
			{Id: "a", Transitions: []*Transition{{Event: "ping"}}},
		},
	}
	sc := mustInit(t, doc, nil)
	sc2 := SendEvent(sc, Event{Name: "ping"}, nil)
	if got := leaves(sc2); !reflect.DeepEqual(got, []string{"a"}) {
		t.Fatalf("got %v, want [a] unchanged", got)
	}
}

// inAncestorOracle compiles a cond of the form "In('id')" into a
// CompiledCondition that calls ctx.In with the quoted id, the same
// shape a real JS oracle would produce for SCXML's In() predicate.
type inAncestorOracle struct{}

type inCond struct{ id string }

func (c inCond) Eval(ctx EvalContext) (bool, error) { return ctx.In(c.id), nil }

func (inAncestorOracle) Compile(source string) (CompiledCondition, error) {
	id := strings.TrimSuffix(strings.TrimPrefix(source, "In('"), "')")
	return inCond{id: id}, nil
}

// In('A') must see a compound/parallel ancestor of an active leaf as
// active even though the ancestor is never a Configuration leaf
// itself (spec.md §6 point 3, §8 property 2).
func TestInPredicateSeesActiveAncestors(t *testing.T) {
	doc := &Document{
		Initial: "par",
		States: []*State{
			{
				Id:      "par",
				Element: ElementParallel,
				Children: []*State{
					{Id: "A", Initial: "a1", Children: []*State{
						{Id: "a1", Transitions: []*Transition{
							{Event: "go", Target: "a2", Cond: "In('A')"},
						}},
						{Id: "a2"},
					}},
					{Id: "B", Initial: "b1", Children: []*State{{Id: "b1"}}},
				},
			},
		},
	}
	sc := mustInit(t, doc, inAncestorOracle{})

	sc2 := SendEvent(sc, Event{Name: "go"}, nil)
	if got := leaves(sc2); !reflect.DeepEqual(got, []string{"a2", "b1"}) {
		t.Fatalf("got %v, want [a2 b1]: In('A') should hold while region A is active", got)
	}
}

func TestCrossRegionIndependence(t *testing.T) {
	doc := &Document{
		Initial: "par",
		States: []*State{
			{
				Id:      "par",
				Element: ElementParallel,
				Children: []*State{
					{Id: "A", Initial: "a1", Children: []*State{
						{Id: "a1", Transitions: []*Transition{{Event: "go", Target: "a2"}}},
						{Id: "a2"},
					}},
					{Id: "B", Initial: "b1", Children: []*State{
						{Id: "b1", Transitions: []*Transition{{Event: "go", Target: "b2"}}},
						{Id: "b2"},
					}},
				},
			},
		},
	}
	sc := mustInit(t, doc, nil)
	sc2 := SendEvent(sc, Event{Name: "go"}, nil)
	if got := leaves(sc2); !reflect.DeepEqual(got, []string{"a2", "b2"}) {
		t.Fatalf("got %v, want [a2 b2] (both regions fire)", got)
	}
}
