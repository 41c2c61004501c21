package tools

import (
	"fmt"
	"io"
	"strings"

	"github.com/scxmlgo/scxml/core"
)

// Dot writes a Graphviz dot rendering of doc's structure: one node
// per state, containment shown via a dashed edge from parent to
// child, and transitions shown via labeled edges. If config is
// non-nil, states it contains are filled green.
func Dot(doc *core.OptimizedDocument, w io.Writer, config core.Configuration) error {
	fmt.Fprintf(w, "digraph G {\n")
	fmt.Fprintf(w, "  graph [rankdir=TB, nodesep=0.3, ranksep=0.5]\n")
	fmt.Fprintf(w, "  node [shape=\"box\", style=\"rounded,filled\", fillcolor=\"#eeeeee\"]\n")

	for _, id := range doc.TopLevel {
		walkDot(doc, id, config, w)
	}

	fmt.Fprintf(w, "}\n")
	return nil
}

func walkDot(doc *core.OptimizedDocument, id string, config core.Configuration, w io.Writer) {
	s := doc.MustState(id)

	fillcolor := kindColor(s.Kind)
	if config != nil && config.Has(id) {
		fillcolor = "#99ddc8"
	}
	fmt.Fprintf(w, "  %q [label=%q, fillcolor=%q]\n", id, dotLabel(id, s.Kind), fillcolor)

	for _, child := range s.Children {
		fmt.Fprintf(w, "  %q -> %q [style=dashed, color=gray]\n", id, child)
		walkDot(doc, child, config, w)
	}

	for _, t := range doc.TransitionsFrom(id) {
		if !t.HasTarget {
			continue
		}
		label := t.Event
		if label == "" {
			label = "ε"
		}
		if t.CondSrc != "" {
			label += " [" + escapeDot(t.CondSrc) + "]"
		}
		fmt.Fprintf(w, "  %q -> %q [label=%q]\n", id, t.Target, label)
	}
}

func dotLabel(id string, kind core.StateKind) string {
	return id + "\\n(" + kind.String() + ")"
}

func kindColor(kind core.StateKind) string {
	switch kind {
	case core.KindParallel:
		return "#2d93ad"
	case core.KindFinal:
		return "#f98b8b"
	default:
		return "#eeeeee"
	}
}

func escapeDot(s string) string {
	s = strings.ReplaceAll(s, `"`, `\"`)
	return s
}
