package parser

import (
	"strings"
	"testing"

	"github.com/scxmlgo/scxml/core"
)

func TestParseSimpleTransition(t *testing.T) {
	src := `<scxml initial="a">
  <state id="a">
    <transition event="go" target="b"/>
  </state>
  <state id="b"/>
</scxml>`

	doc, err := Parse(strings.NewReader(src))
	if err != nil {
		t.Fatal(err)
	}
	if doc.Initial != "a" {
		t.Fatalf("got initial %q, want a", doc.Initial)
	}
	if len(doc.States) != 2 {
		t.Fatalf("got %d top-level states, want 2", len(doc.States))
	}
	if doc.States[0].Id != "a" || len(doc.States[0].Transitions) != 1 {
		t.Fatalf("state a malformed: %+v", doc.States[0])
	}
	tr := doc.States[0].Transitions[0]
	if tr.Event != "go" || tr.Target != "b" {
		t.Fatalf("got transition %+v, want event=go target=b", tr)
	}

	opt, diags := core.Validate(doc, nil)
	if diags.HasErrors() {
		t.Fatalf("unexpected validation errors: %+v", diags.Errors)
	}
	if opt.InitialStateId() != "a" {
		t.Fatalf("opt.InitialStateId() = %q, want a", opt.InitialStateId())
	}
}

func TestParseNestedCompoundAndParallel(t *testing.T) {
	src := `<scxml initial="par">
  <parallel id="par">
    <state id="A" initial="a1">
      <state id="a1"/>
      <state id="a2"/>
    </state>
    <state id="B" initial="b1">
      <state id="b1"/>
    </state>
  </parallel>
</scxml>`

	doc, err := Parse(strings.NewReader(src))
	if err != nil {
		t.Fatal(err)
	}
	opt, diags := core.Validate(doc, nil)
	if diags.HasErrors() {
		t.Fatalf("unexpected validation errors: %+v", diags.Errors)
	}
	par, have := opt.State("par")
	if !have || par.Kind != core.KindParallel {
		t.Fatalf("par not resolved as parallel: %+v", par)
	}
	if len(par.Children) != 2 {
		t.Fatalf("got %d parallel children, want 2", len(par.Children))
	}
}

func TestParseInitialPseudoState(t *testing.T) {
	src := `<scxml initial="p">
  <state id="p">
    <initial>
      <transition target="c2"/>
    </initial>
    <state id="c1"/>
    <state id="c2"/>
  </state>
</scxml>`

	doc, err := Parse(strings.NewReader(src))
	if err != nil {
		t.Fatal(err)
	}
	opt, diags := core.Validate(doc, nil)
	if diags.HasErrors() {
		t.Fatalf("unexpected validation errors: %+v", diags.Errors)
	}
	p, _ := opt.State("p")
	if p.Initial != "c2" {
		t.Fatalf("got initial %q, want c2", p.Initial)
	}
}

func TestParseCondAttribute(t *testing.T) {
	src := `<scxml initial="a">
  <state id="a">
    <transition event="submit" target="approved" cond="score&gt;80"/>
  </state>
  <state id="approved"/>
</scxml>`

	doc, err := Parse(strings.NewReader(src))
	if err != nil {
		t.Fatal(err)
	}
	tr := doc.States[0].Transitions[0]
	if tr.Cond != "score>80" {
		t.Fatalf("got cond %q, want score>80", tr.Cond)
	}
}

func TestParseCapturesOnEntryOnExitAndTransitionActions(t *testing.T) {
	src := `<scxml initial="a">
  <state id="a">
    <onentry>
      <log label="entering a" expr="'hi'"/>
      <raise event="internal.ping"/>
    </onentry>
    <onexit>
      <log expr="'bye'"/>
    </onexit>
    <transition event="go" target="b">
      <log label="firing"/>
    </transition>
  </state>
  <state id="b"/>
</scxml>`

	doc, err := Parse(strings.NewReader(src))
	if err != nil {
		t.Fatal(err)
	}

	a := doc.States[0]
	if len(a.Transitions) != 1 {
		t.Fatalf("got %d transitions, want 1 despite nested executable content", len(a.Transitions))
	}

	if len(a.OnEntryActions) != 2 {
		t.Fatalf("got %d onentry actions, want 2", len(a.OnEntryActions))
	}
	if got := a.OnEntryActions[0]; got.Kind != core.ActionLog || got.Label != "entering a" || got.Expr != "'hi'" {
		t.Fatalf("got onentry action 0 = %+v, want log{entering a, 'hi'}", got)
	}
	if got := a.OnEntryActions[1]; got.Kind != core.ActionRaise || got.Event != "internal.ping" {
		t.Fatalf("got onentry action 1 = %+v, want raise{internal.ping}", got)
	}

	if len(a.OnExitActions) != 1 || a.OnExitActions[0].Kind != core.ActionLog || a.OnExitActions[0].Expr != "'bye'" {
		t.Fatalf("got onexit actions %+v, want one log{'bye'}", a.OnExitActions)
	}

	tr := a.Transitions[0]
	if len(tr.Actions) != 1 || tr.Actions[0].Kind != core.ActionLog || tr.Actions[0].Label != "firing" {
		t.Fatalf("got transition actions %+v, want one log{firing}", tr.Actions)
	}

	_, diags := core.Validate(doc, nil)
	if diags.HasErrors() {
		t.Fatalf("unexpected validation errors: %+v", diags.Errors)
	}
}

func TestParseSkipsLogRaiseOutsideActionScope(t *testing.T) {
	src := `<scxml initial="a">
  <state id="a">
    <log expr="'stray'"/>
    <transition event="go" target="b"/>
  </state>
  <state id="b"/>
</scxml>`

	doc, err := Parse(strings.NewReader(src))
	if err != nil {
		t.Fatal(err)
	}
	a := doc.States[0]
	if len(a.OnEntryActions) != 0 || len(a.OnExitActions) != 0 {
		t.Fatalf("stray <log> should not attach to onentry/onexit, got entry=%+v exit=%+v", a.OnEntryActions, a.OnExitActions)
	}
	if len(a.Transitions) != 1 {
		t.Fatalf("got %d transitions, want 1 despite stray <log>", len(a.Transitions))
	}
}
