package core

import "sort"

// runMicrostep implements spec.md §4.7's microstep: select enabled
// transitions, resolve conflicts, exit, enter, install. Returns
// whether any transition was selected (a selected targetless
// transition counts even though the configuration is unchanged).
func (sc *StateChart) runMicrostep(ev *Event, executor ActionExecutor) bool {
	candidates := selectEnabledTransitions(sc.Doc, sc.Configuration, ev)
	selected := resolveConflicts(sc.Doc, sc.Configuration, candidates)
	if len(selected) == 0 {
		return false
	}

	ctx := sc.evalContext(ev)

	exitLeaves := make(map[string]bool)
	for _, t := range selected {
		if !t.HasTarget {
			continue
		}
		l := lcca(sc.Doc, t.Source, t.Target)
		for _, leaf := range exitSet(sc.Doc, sc.Configuration, t.Source, l) {
			exitLeaves[leaf] = true
		}
	}

	exitOrdered := make([]string, 0, len(exitLeaves))
	for id := range exitLeaves {
		exitOrdered = append(exitOrdered, id)
	}
	sort.Slice(exitOrdered, func(i, j int) bool {
		return sc.Doc.MustState(exitOrdered[i]).DocOrder > sc.Doc.MustState(exitOrdered[j]).DocOrder
	})

	for _, id := range exitOrdered {
		res, _ := executor.OnExit(ctx, id, sc.Doc.MustState(id).OnExit)
		sc.absorb(res)
	}

	for id := range exitLeaves {
		sc.Configuration.remove(id)
	}

	var entryLeaves []string
	for _, t := range selected {
		res, _ := executor.OnTransition(ctx, t.Source, t.Target, t.Actions)
		sc.absorb(res)

		if !t.HasTarget {
			continue
		}
		l := lcca(sc.Doc, t.Source, t.Target)
		entryLeaves = append(entryLeaves, entrySet(sc.Doc, t.Target, l)...)
	}
	entryLeaves = dedupeStrings(entryLeaves)
	sort.Slice(entryLeaves, func(i, j int) bool {
		return sc.Doc.MustState(entryLeaves[i]).DocOrder < sc.Doc.MustState(entryLeaves[j]).DocOrder
	})

	for _, id := range entryLeaves {
		sc.Configuration.add(id)
	}

	for _, id := range entryLeaves {
		res, _ := executor.OnEntry(ctx, id, sc.Doc.MustState(id).OnEntry)
		sc.absorb(res)
	}

	return true
}

// absorb folds an ActionResult's raised events onto the internal
// queue. Log messages are intentionally dropped here: this package
// never writes to a logger on an action executor's behalf (spec.md
// §5's "the condition oracle must be pure" extends to actions not
// having side effects this package is responsible for). A caller
// that wants the log trail should capture it in its own
// ActionExecutor implementation instead of relying on the core to
// surface it.
func (sc *StateChart) absorb(res *ActionResult) {
	if res == nil {
		return
	}
	sc.internal = append(sc.internal, res.Raised...)
}

// runEventlessFixpoint repeatedly runs eventless microsteps until
// none is enabled or the chart's limit (EventlessLimit, else
// DefaultEventlessLimit) of consecutive iterations has run (spec.md §4.7, §4.12: CycleOverflow is absorbed silently).
func (sc *StateChart) runEventlessFixpoint(executor ActionExecutor) {
	for i := 0; i < sc.limit(); i++ {
		if !sc.runMicrostep(nil, executor) {
			return
		}
	}
}
