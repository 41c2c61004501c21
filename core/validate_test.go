package core

import "testing"

func TestValidateInitialPseudoState(t *testing.T) {
	doc := &Document{
		Initial: "p",
		States: []*State{
			{
				Id: "p",
				Children: []*State{
					{Id: "init", Element: ElementInitial, Transitions: []*Transition{{Target: "c2"}}},
					{Id: "c1"},
					{Id: "c2"},
				},
			},
		},
	}
	AssignDocumentOrder(doc)
	opt, diags := Validate(doc, nil)
	if diags.HasErrors() {
		t.Fatalf("unexpected errors: %+v", diags.Errors)
	}
	p, _ := opt.State("p")
	if p.Initial != "c2" {
		t.Fatalf("got initial %q, want c2", p.Initial)
	}
}

func TestValidateDuplicateId(t *testing.T) {
	doc := &Document{
		States: []*State{
			{Id: "a"},
			{Id: "a"},
		},
	}
	AssignDocumentOrder(doc)
	_, diags := Validate(doc, nil)
	if !diags.HasErrors() {
		t.Fatal("expected a duplicate-id error")
	}
}

func TestValidateMissingTransitionTarget(t *testing.T) {
	doc := &Document{
		States: []*State{
			{Id: "a", Transitions: []*Transition{{Target: "nowhere"}}},
		},
	}
	AssignDocumentOrder(doc)
	_, diags := Validate(doc, nil)
	if !diags.HasErrors() {
		t.Fatal("expected a missing-target error")
	}
	errs := diags.AsErrors()
	if len(errs) != 1 {
		t.Fatalf("got %d typed errors, want 1", len(errs))
	}
	tte, ok := errs[0].(*TransitionTargetError)
	if !ok {
		t.Fatalf("got %T, want *TransitionTargetError", errs[0])
	}
	if tte.StateId != "a" {
		t.Fatalf("got StateId %q, want a", tte.StateId)
	}
}

func TestValidateBothInitialAttributeAndPseudoState(t *testing.T) {
	doc := &Document{
		States: []*State{
			{
				Id:      "p",
				Initial: "c1",
				Children: []*State{
					{Id: "init", Element: ElementInitial, Transitions: []*Transition{{Target: "c1"}}},
					{Id: "c1"},
				},
			},
		},
	}
	AssignDocumentOrder(doc)
	_, diags := Validate(doc, nil)
	if !diags.HasErrors() {
		t.Fatal("expected an error for both initial attribute and <initial> child")
	}
}

func TestValidateUnreachableStateIsWarningOnly(t *testing.T) {
	doc := &Document{
		Initial: "a",
		States: []*State{
			{Id: "a"},
			{Id: "orphan"},
		},
	}
	AssignDocumentOrder(doc)
	opt, diags := Validate(doc, nil)
	if diags.HasErrors() {
		t.Fatalf("unreachable state must only warn: %+v", diags.Errors)
	}
	if opt == nil {
		t.Fatal("expected an OptimizedDocument despite the warning")
	}
	if len(diags.Warnings) == 0 {
		t.Fatal("expected a reachability warning")
	}
}

func TestValidateNonTopLevelDocumentInitialWarns(t *testing.T) {
	doc := &Document{
		Initial: "child",
		States: []*State{
			{Id: "p", Initial: "child", Children: []*State{{Id: "child"}}},
		},
	}
	AssignDocumentOrder(doc)
	opt, diags := Validate(doc, nil)
	if diags.HasErrors() {
		t.Fatalf("unexpected errors: %+v", diags.Errors)
	}
	if len(diags.Warnings) == 0 {
		t.Fatal("expected a warning for a non-top-level document initial")
	}
	if opt.InitialStateId() != "child" {
		t.Fatalf("InitialStateId() = %q, want child", opt.InitialStateId())
	}
}

func TestValidateParamSpecUnknownTypeErrors(t *testing.T) {
	doc := &Document{
		States: []*State{{Id: "a"}},
		Params: []ParamSpec{{Name: "count", PrimitiveType: "integer"}},
	}
	AssignDocumentOrder(doc)
	_, diags := Validate(doc, nil)
	if !diags.HasErrors() {
		t.Fatal("expected an error for an unknown primitiveType")
	}
}

func TestValidateParamSpecRequiredWithoutDefaultWarns(t *testing.T) {
	doc := &Document{
		States: []*State{{Id: "a"}},
		Params: []ParamSpec{{Name: "count", PrimitiveType: "number"}},
	}
	AssignDocumentOrder(doc)
	_, diags := Validate(doc, nil)
	if diags.HasErrors() {
		t.Fatalf("unexpected errors: %+v", diags.Errors)
	}
	if len(diags.Warnings) == 0 {
		t.Fatal("expected a warning for a required param with no default")
	}
}

func TestValidateParamSpecDuplicateNameErrors(t *testing.T) {
	doc := &Document{
		States: []*State{{Id: "a"}},
		Params: []ParamSpec{
			{Name: "count", PrimitiveType: "number", Optional: true},
			{Name: "count", PrimitiveType: "string", Optional: true},
		},
	}
	AssignDocumentOrder(doc)
	_, diags := Validate(doc, nil)
	if !diags.HasErrors() {
		t.Fatal("expected a duplicate-param-name error")
	}
}

func TestValidateParamSpecRequiredWithDefaultOK(t *testing.T) {
	doc := &Document{
		States: []*State{{Id: "a"}},
		Params: []ParamSpec{{Name: "count", PrimitiveType: "number", Default: 1.0}},
	}
	AssignDocumentOrder(doc)
	_, diags := Validate(doc, nil)
	if diags.HasErrors() {
		t.Fatalf("unexpected errors: %+v", diags.Errors)
	}
	if len(diags.Warnings) != 0 {
		t.Fatalf("unexpected warnings: %+v", diags.Warnings)
	}
}
