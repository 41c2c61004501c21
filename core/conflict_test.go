package core

import "testing"

func findTransition(opt *OptimizedDocument, source, event string) *OTransition {
	for _, t := range opt.TransitionsFrom(source) {
		if t.Event == event {
			return t
		}
	}
	return nil
}

// Rule 1: a transition whose source is an ancestor of another
// candidate's source is dropped outright, regardless of document
// order.
func TestResolveConflictsDescendantPriority(t *testing.T) {
	doc := &Document{
		Initial: "p",
		States: []*State{
			{
				Id:      "p",
				Initial: "child",
				Transitions: []*Transition{
					{Event: "e", Target: "ancestor-target"},
				},
				Children: []*State{
					{Id: "child", Transitions: []*Transition{
						{Event: "e", Target: "child-target"},
					}},
				},
			},
			{Id: "ancestor-target"},
			{Id: "child-target"},
		},
	}
	opt := buildOptimized(t, doc)
	config := Configuration{"child": true}

	ancestor := findTransition(opt, "p", "e")
	descendant := findTransition(opt, "child", "e")
	got := resolveConflicts(opt, config, []*OTransition{ancestor, descendant})

	if len(got) != 1 || got[0] != descendant {
		t.Fatalf("expected only the descendant's transition to survive, got %+v", got)
	}
}

// Rule 2: two transitions from the same source are never both
// selected; the earliest in document order wins.
func TestResolveConflictsPerSourceDocOrder(t *testing.T) {
	doc := &Document{
		Initial: "a",
		States: []*State{
			{Id: "a", Transitions: []*Transition{
				{Event: "e", Target: "first"},
				{Event: "e", Target: "second"},
			}},
			{Id: "first"},
			{Id: "second"},
		},
	}
	opt := buildOptimized(t, doc)
	config := Configuration{"a": true}

	ts := opt.TransitionsFrom("a")
	got := resolveConflicts(opt, config, []*OTransition{ts[0], ts[1]})

	if len(got) != 1 || got[0].Target != "first" {
		t.Fatalf("expected only the first-in-document-order transition to survive, got %+v", got)
	}
}

// Rule 3: two transitions from independent parallel regions whose
// exit sets don't overlap both survive; document order breaks ties
// only when exit sets actually collide.
func TestResolveConflictsCrossRegionIndependence(t *testing.T) {
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
	opt := buildOptimized(t, doc)
	config := Configuration{"a1": true, "b1": true}

	a := findTransition(opt, "a1", "go")
	b := findTransition(opt, "b1", "go")
	got := resolveConflicts(opt, config, []*OTransition{a, b})

	if len(got) != 2 {
		t.Fatalf("expected both independent-region transitions to survive, got %+v", got)
	}
}

// Two transitions in different parallel regions whose targets both
// leave the parallel state entirely have overlapping exit sets (the
// whole region tears down for each), so only the one earlier in
// document order survives.
func TestResolveConflictsOverlappingExitSetsCollide(t *testing.T) {
	doc := &Document{
		Initial: "par",
		States: []*State{
			{
				Id:      "par",
				Element: ElementParallel,
				Children: []*State{
					{Id: "A", Initial: "a1", Children: []*State{
						{Id: "a1", Transitions: []*Transition{{Event: "e", Target: "outside"}}},
					}},
					{Id: "B", Initial: "b1", Children: []*State{
						{Id: "b1", Transitions: []*Transition{{Event: "e", Target: "outside"}}},
					}},
				},
			},
			{Id: "outside"},
		},
	}
	opt := buildOptimized(t, doc)
	config := Configuration{"a1": true, "b1": true}

	a := findTransition(opt, "a1", "e")
	b := findTransition(opt, "b1", "e")
	got := resolveConflicts(opt, config, []*OTransition{a, b})

	if len(got) != 1 || got[0] != a {
		t.Fatalf("expected only the earlier-in-document-order transition to survive, got %+v", got)
	}
}
