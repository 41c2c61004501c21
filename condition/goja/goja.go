// Package goja implements a core.ConditionOracle backed by Goja, a
// pure-Go ECMAScript 5.1+ runtime. A cond source is a JavaScript
// boolean expression; it is compiled once (at validate time) and
// evaluated once per candidate transition.
package goja

import (
	"fmt"

	"github.com/dop251/goja"

	"github.com/scxmlgo/scxml/core"
)

// Oracle compiles cond expressions with Goja.
type Oracle struct{}

// NewOracle makes an Oracle.
func NewOracle() *Oracle {
	return &Oracle{}
}

type compiled struct {
	program *goja.Program
	source  string
}

// Compile parses source as a JavaScript expression wrapped in a
// `return`, so a cond like `score > 80 && _in("approved")` compiles
// the same way a <transition cond="..."> body would.
func (o *Oracle) Compile(source string) (core.CompiledCondition, error) {
	wrapped := "(function(){ return (" + source + "); }())"
	prog, err := goja.Compile("", wrapped, true)
	if err != nil {
		return nil, fmt.Errorf("goja: compiling cond %q: %w", source, err)
	}
	return &compiled{program: prog, source: source}, nil
}

// Eval runs the compiled expression in a fresh Goja runtime, with the
// current state configuration and the triggering event's data exposed
// as globals.
//
// Available at evaluation time:
//
//	In(id)       reports whether state id is in the active configuration
//	_in(id)      same as In(id)
//	<key>        each key of the triggering event's payload, as a global
//	_event.name  the triggering event's name, "" during the eventless fixpoint
//	_event.data  the triggering event's payload, or {} if none
func (c *compiled) Eval(ctx core.EvalContext) (bool, error) {
	rt := goja.New()

	in := func(id string) bool {
		if ctx.In == nil {
			return false
		}
		return ctx.In(id)
	}
	if err := rt.Set("_in", in); err != nil {
		return false, err
	}
	if err := rt.Set("In", in); err != nil {
		return false, err
	}

	data := ctx.EventData
	if data == nil {
		data = map[string]interface{}{}
	}
	for k, v := range data {
		if err := rt.Set(k, v); err != nil {
			return false, err
		}
	}
	if err := rt.Set("_event", map[string]interface{}{
		"name": ctx.EventName,
		"data": data,
	}); err != nil {
		return false, err
	}

	v, err := rt.RunProgram(c.program)
	if err != nil {
		return false, fmt.Errorf("goja: evaluating cond %q: %w", c.source, err)
	}
	return v.ToBoolean(), nil
}
