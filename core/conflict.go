package core

import "sort"

// resolveConflicts implements spec.md §4.8's three-rule conflict
// resolution over a set of enabled transitions already sorted by
// document order.
func resolveConflicts(d *OptimizedDocument, config Configuration, candidates []*OTransition) []*OTransition {
	// Rule 1: descendant priority. A transition whose source is a
	// proper ancestor of another candidate's source is dropped,
	// regardless of document order.
	dropped := make(map[*OTransition]bool, len(candidates))
	for _, a := range candidates {
		for _, b := range candidates {
			if a == b {
				continue
			}
			if d.IsDescendant(a.Source, b.Source) {
				dropped[b] = true
			}
		}
	}

	survivors := make([]*OTransition, 0, len(candidates))
	for _, t := range candidates {
		if !dropped[t] {
			survivors = append(survivors, t)
		}
	}

	// Rule 2: per-source document order. Keep only the earliest
	// transition for any source that still has more than one.
	bestBySource := make(map[string]*OTransition, len(survivors))
	for _, t := range survivors {
		cur, have := bestBySource[t.Source]
		if !have || t.DocOrder < cur.DocOrder {
			bestBySource[t.Source] = t
		}
	}
	perSource := make([]*OTransition, 0, len(bestBySource))
	for _, t := range bestBySource {
		perSource = append(perSource, t)
	}
	sort.Slice(perSource, func(i, j int) bool {
		return perSource[i].DocOrder < perSource[j].DocOrder
	})

	// Rule 3: cross-region independence. Two transitions conflict
	// only if their exit sets overlap; ties broken by global
	// document order (perSource is already in that order, so a
	// greedy scan suffices).
	selected := make([]*OTransition, 0, len(perSource))
	claimed := make(map[string]bool, len(config))
	for _, t := range perSource {
		var exit []string
		if t.HasTarget {
			l := lcca(d, t.Source, t.Target)
			exit = exitSet(d, config, t.Source, l)
		}

		conflicted := false
		for _, leaf := range exit {
			if claimed[leaf] {
				conflicted = true
				break
			}
		}
		if conflicted {
			continue
		}
		for _, leaf := range exit {
			claimed[leaf] = true
		}
		selected = append(selected, t)
	}

	return selected
}
