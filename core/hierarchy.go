package core

import "sort"

// lcca computes the Least Common Compound Ancestor of s and t
// (spec.md §4.9 point 1 / GLOSSARY). It marks s's ancestors (not
// including s itself), then walks t's ancestors (not including t)
// until it hits a marked state. "" represents the virtual root above
// every top-level state.
func lcca(d *OptimizedDocument, s, t string) string {
	marked := make(map[string]bool)
	for _, a := range d.Ancestors(s) {
		marked[a] = true
	}
	for _, a := range d.Ancestors(t) {
		if marked[a] {
			return a
		}
	}
	return ""
}

// enterLeaves implements spec.md §4.6: the ordered list of leaf ids
// that entering `id` resolves to.
func enterLeaves(d *OptimizedDocument, id string) []string {
	s, have := d.State(id)
	if !have {
		return nil
	}
	switch s.Kind {
	case KindAtomic, KindFinal:
		return []string{id}
	case KindInitialPseudo:
		return nil
	case KindCompound:
		if s.Initial == "" {
			return nil
		}
		return enterLeaves(d, s.Initial)
	case KindParallel:
		var acc []string
		for _, c := range s.Children {
			acc = append(acc, enterLeaves(d, c)...)
		}
		return acc
	default:
		return nil
	}
}

// ancestorPathExcluding returns the chain of ids from the child of
// `lccaId` down to (and including) `id`, top-down. If id == lccaId,
// the result is empty.
func ancestorPathExcluding(d *OptimizedDocument, id, lccaId string) []string {
	var chain []string
	cur := id
	for cur != "" && cur != lccaId {
		chain = append(chain, cur)
		s, have := d.State(cur)
		if !have {
			break
		}
		cur = s.Parent
	}
	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}
	return chain
}

// exitSet computes the leaves to remove from the Configuration when
// firing a transition sourced at `source` whose LCCA with its target
// is `lccaId` (spec.md §4.9).
//
// The region actually torn down is rooted not at `source` itself but
// at the child of the LCCA lying on source's ancestor path: if that
// child is a parallel state, every one of its regions is exited
// together (crossing the parallel boundary); otherwise only the
// branch containing `source` is disturbed.
func exitSet(d *OptimizedDocument, config Configuration, source, lccaId string) []string {
	root := source
	for {
		s, have := d.State(root)
		if !have || s.Parent == lccaId {
			break
		}
		if s.Parent == "" {
			break
		}
		root = s.Parent
	}

	var acc []string
	for leaf := range config {
		if leaf == root || d.IsDescendant(leaf, root) {
			acc = append(acc, leaf)
		}
	}
	sort.Slice(acc, func(i, j int) bool {
		return d.MustState(acc[i]).DocOrder > d.MustState(acc[j]).DocOrder
	})
	return acc
}

// entrySet computes the leaves to add to the Configuration when
// firing a transition to `target` whose LCCA with its source is
// `lccaId` (spec.md §4.10). Every parallel ancestor strictly between
// the LCCA and the target has its other regions entered in full.
func entrySet(d *OptimizedDocument, target, lccaId string) []string {
	path := ancestorPathExcluding(d, target, lccaId)

	var acc []string
	for i, node := range path {
		s, have := d.State(node)
		if !have || s.Kind != KindParallel || node == target {
			continue
		}
		next := ""
		if i+1 < len(path) {
			next = path[i+1]
		}
		for _, child := range s.Children {
			if child == next {
				continue
			}
			acc = append(acc, enterLeaves(d, child)...)
		}
	}
	acc = append(acc, enterLeaves(d, target)...)

	sort.Slice(acc, func(i, j int) bool {
		return d.MustState(acc[i]).DocOrder < d.MustState(acc[j]).DocOrder
	})
	return dedupeStrings(acc)
}

func dedupeStrings(xs []string) []string {
	seen := make(map[string]bool, len(xs))
	acc := make([]string, 0, len(xs))
	for _, x := range xs {
		if seen[x] {
			continue
		}
		seen[x] = true
		acc = append(acc, x)
	}
	return acc
}
