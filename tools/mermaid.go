package tools

import (
	"fmt"
	"io"

	"github.com/scxmlgo/scxml/core"
)

// Mermaid writes a Mermaid stateDiagram-v2 rendering of doc, the same
// format GitHub and most Markdown viewers render inline. If config is
// non-nil, its leaves are marked active with a trailing note.
func Mermaid(doc *core.OptimizedDocument, w io.Writer, config core.Configuration) error {
	fmt.Fprintf(w, "stateDiagram-v2\n")

	for _, id := range doc.TopLevel {
		writeMermaidState(doc, id, w, 1)
	}

	for _, id := range doc.TopLevel {
		writeMermaidTransitions(doc, id, w)
	}

	if config != nil {
		for _, leaf := range config.Leaves() {
			fmt.Fprintf(w, "    note right of %s : active\n", mermaidId(leaf))
		}
	}

	return nil
}

func writeMermaidState(doc *core.OptimizedDocument, id string, w io.Writer, depth int) {
	s := doc.MustState(id)
	indent := indentOf(depth)

	if len(s.Children) == 0 {
		fmt.Fprintf(w, "%sstate %q as %s\n", indent, id, mermaidId(id))
		return
	}

	fmt.Fprintf(w, "%sstate %q as %s {\n", indent, id, mermaidId(id))
	for _, child := range s.Children {
		writeMermaidState(doc, child, w, depth+1)
	}
	fmt.Fprintf(w, "%s}\n", indent)
}

func writeMermaidTransitions(doc *core.OptimizedDocument, id string, w io.Writer) {
	s := doc.MustState(id)
	for _, t := range doc.TransitionsFrom(id) {
		if !t.HasTarget {
			continue
		}
		label := t.Event
		if label == "" {
			label = "always"
		}
		fmt.Fprintf(w, "    %s --> %s : %s\n", mermaidId(id), mermaidId(t.Target), label)
	}
	for _, child := range s.Children {
		writeMermaidTransitions(doc, child, w)
	}
}

func indentOf(depth int) string {
	out := ""
	for i := 0; i < depth; i++ {
		out += "    "
	}
	return out
}

// mermaidId sanitizes a state id into an identifier Mermaid accepts
// as a diagram node name (it forbids '.', among other characters,
// which SCXML ids can legally contain).
func mermaidId(id string) string {
	out := make([]rune, 0, len(id))
	for _, r := range id {
		switch {
		case 'a' <= r && r <= 'z', 'A' <= r && r <= 'Z', '0' <= r && r <= '9', r == '_':
			out = append(out, r)
		default:
			out = append(out, '_')
		}
	}
	return string(out)
}
