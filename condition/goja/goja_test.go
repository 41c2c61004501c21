package goja

import (
	"testing"

	"github.com/scxmlgo/scxml/core"
)

func TestEvalSimpleComparison(t *testing.T) {
	o := NewOracle()
	cc, err := o.Compile("score > 80")
	if err != nil {
		t.Fatal(err)
	}

	ok, err := cc.Eval(core.EvalContext{
		EventName: "submit",
		EventData: map[string]interface{}{"score": 90},
	})
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		t.Fatal("expected score>80 with score=90 to be true")
	}

	ok, err = cc.Eval(core.EvalContext{
		EventName: "submit",
		EventData: map[string]interface{}{"score": 50},
	})
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Fatal("expected score>80 with score=50 to be false")
	}
}

func TestEvalUsesInPredicate(t *testing.T) {
	o := NewOracle()
	cc, err := o.Compile(`_in("ready")`)
	if err != nil {
		t.Fatal(err)
	}

	ok, err := cc.Eval(core.EvalContext{
		In: func(id string) bool { return id == "ready" },
	})
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		t.Fatal("expected _in(\"ready\") to be true when In reports ready")
	}
}

func TestEvalUsesEventName(t *testing.T) {
	o := NewOracle()
	cc, err := o.Compile(`_event.name == "go"`)
	if err != nil {
		t.Fatal(err)
	}

	ok, err := cc.Eval(core.EvalContext{EventName: "go"})
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		t.Fatal("expected _event.name==\"go\" to be true")
	}
}

func TestCompileSyntaxError(t *testing.T) {
	o := NewOracle()
	if _, err := o.Compile("this is not ) valid js(("); err == nil {
		t.Fatal("expected a compile error for malformed source")
	}
}
