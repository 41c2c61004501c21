package parser

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"github.com/scxmlgo/scxml/core"
)

type frame struct {
	state   *core.State // nil while inside <scxml>, <datamodel>, <onentry>, <onexit>
	section string      // "" | "datamodel" | "onentry" | "onexit" | "transition"

	// actions, if non-nil, is where a direct <log>/<raise> child of
	// this frame's element appends its parsed core.Action: the
	// enclosing state's OnEntryActions/OnExitActions, or the
	// enclosing transition's Actions.
	actions *[]core.Action
}

// Parse reads an SCXML document from r and returns the raw
// core.Document tree, with document order already assigned.
//
// <log> and <raise> directly inside <onentry>, <onexit>, or
// <transition> are parsed into core.Action values on the enclosing
// State or Transition. Parse otherwise tolerates elements and
// attributes it doesn't recognize: an unrecognized child of
// <state>/<parallel>/<final> (including <send>, <invoke>, or a
// <log>/<raise> in a position this package doesn't model) is skipped
// along with its subtree, so a caller can feed it documents using
// SCXML features this package doesn't model without the parse failing
// outright.
func Parse(r io.Reader) (*core.Document, error) {
	dec := xml.NewDecoder(r)

	doc := &core.Document{}
	var stack []frame
	order := 0

	genInitialId := func(parent *core.State) string {
		return parent.Id + "__initial"
	}

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parser: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			name := t.Name.Local
			if n := len(stack); 0 < n && strings.HasPrefix(stack[n-1].section, "skip:") {
				stack = append(stack, frame{section: "skip:" + name})
				continue
			}
			switch name {
			case "scxml":
				doc.Name = attr(t, "name")
				doc.Initial = attr(t, "initial")
				stack = append(stack, frame{})

			case "state", "parallel", "final":
				s := &core.State{Id: attr(t, "id")}
				switch name {
				case "parallel":
					s.Element = core.ElementParallel
				case "final":
					s.Element = core.ElementFinal
				default:
					s.Element = core.ElementState
				}
				s.Initial = attr(t, "initial")
				order++
				s.DocOrder = order
				attachChild(&stack, doc, s)
				stack = append(stack, frame{state: s})

			case "initial":
				parent := currentState(stack)
				if parent == nil {
					return nil, fmt.Errorf("parser: <initial> outside any state")
				}
				order++
				s := &core.State{Id: genInitialId(parent), Element: core.ElementInitial, DocOrder: order}
				parent.Children = append(parent.Children, s)
				stack = append(stack, frame{state: s})

			case "transition":
				parent := currentState(stack)
				if parent == nil {
					return nil, fmt.Errorf("parser: <transition> outside any state")
				}
				order++
				trans := &core.Transition{
					Event:    attr(t, "event"),
					Target:   attr(t, "target"),
					Cond:     attr(t, "cond"),
					DocOrder: order,
				}
				parent.Transitions = append(parent.Transitions, trans)
				stack = append(stack, frame{section: "transition", actions: &trans.Actions})

			case "datamodel":
				stack = append(stack, frame{section: "datamodel"})

			case "data":
				doc.Datamodel = append(doc.Datamodel, core.DataItem{
					Id:   attr(t, "id"),
					Expr: attr(t, "expr"),
				})

			case "onentry":
				parent := currentState(stack)
				if parent == nil {
					return nil, fmt.Errorf("parser: <onentry> outside any state")
				}
				stack = append(stack, frame{section: name, actions: &parent.OnEntryActions})

			case "onexit":
				parent := currentState(stack)
				if parent == nil {
					return nil, fmt.Errorf("parser: <onexit> outside any state")
				}
				stack = append(stack, frame{section: name, actions: &parent.OnExitActions})

			case "log", "raise":
				if target := currentActions(stack); target != nil {
					*target = append(*target, parseAction(name, t))
					stack = append(stack, frame{section: "action:" + name})
					break
				}
				// A <log>/<raise> outside any onentry/onexit/
				// transition isn't a shape this package models:
				// fall through to the generic skip path.
				stack = append(stack, frame{section: "skip:" + name})

			default:
				// <send>, <invoke>, and anything else this
				// package doesn't model: push a placeholder
				// frame so the matching EndElement pops
				// cleanly, and skip the subtree's text.
				stack = append(stack, frame{section: "skip:" + name})
			}

		case xml.EndElement:
			if 0 < len(stack) {
				stack = stack[:len(stack)-1]
			}
		}
	}

	return doc, nil
}

func attr(t xml.StartElement, name string) string {
	for _, a := range t.Attr {
		if a.Name.Local == name {
			return a.Value
		}
	}
	return ""
}

// currentState returns the nearest enclosing state on the stack, or
// nil if none (e.g. directly under <scxml>).
func currentState(stack []frame) *core.State {
	for i := len(stack) - 1; 0 <= i; i-- {
		if stack[i].state != nil {
			return stack[i].state
		}
	}
	return nil
}

// currentActions returns the nearest enclosing frame's action target,
// or nil if <log>/<raise> isn't directly inside an <onentry>,
// <onexit>, or <transition> element.
func currentActions(stack []frame) *[]core.Action {
	if len(stack) == 0 {
		return nil
	}
	return stack[len(stack)-1].actions
}

// parseAction builds a core.Action from a <log> or <raise> start tag.
func parseAction(name string, t xml.StartElement) core.Action {
	switch name {
	case "raise":
		return core.Action{Kind: core.ActionRaise, Event: attr(t, "event")}
	default: // "log"
		return core.Action{Kind: core.ActionLog, Label: attr(t, "label"), Expr: attr(t, "expr")}
	}
}

// attachChild appends s either to the top-level Document or to the
// innermost open state, whichever the stack currently points at.
func attachChild(stack *[]frame, doc *core.Document, s *core.State) {
	if parent := currentState(*stack); parent != nil {
		parent.Children = append(parent.Children, s)
		return
	}
	doc.States = append(doc.States, s)
}
