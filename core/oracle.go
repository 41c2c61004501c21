package core

// EvalContext is the evaluation context a CompiledCondition receives:
// the In(id) predicate over the current Configuration, the event
// being processed, and its payload. During the eventless fixpoint
// HasEvent is false, EventName is "" and EventData is nil.
//
// This is the concrete shape of spec.md §6.3's
// "{ in, event_name, event_data }".
type EvalContext struct {
	In        func(stateId string) bool
	EventName string
	HasEvent  bool
	EventData map[string]interface{}
}

// CompiledCondition is a cond expression that has already been
// compiled once by a ConditionOracle.
type CompiledCondition interface {
	Eval(ctx EvalContext) (bool, error)
}

// ConditionOracle compiles `cond` attribute sources into
// CompiledConditions once, at validation time. This package never
// looks inside a CompiledCondition or a ConditionOracle: both are
// supplied by a caller (the condition/goja, condition/pattern and
// condition/noop packages hold three implementations), keeping the interpreter agnostic to any
// particular expression language.
type ConditionOracle interface {
	Compile(source string) (CompiledCondition, error)
}

// alwaysTrue is used for unconditional transitions (cond == "");
// spec.md §4.5 point 3: "A nil condition is treated as true."
type alwaysTrue struct{}

func (alwaysTrue) Eval(EvalContext) (bool, error) { return true, nil }

var conditionTrue CompiledCondition = alwaysTrue{}

// evalCond implements the "condition errors are treated as
// false" policy (spec.md §4.12): it wraps a CompiledCondition whose
// Compile succeeded but whose Eval we want to defend against a
// panicking or misbehaving oracle implementation.
func evalCond(c CompiledCondition, ctx EvalContext) (ok bool) {
	if c == nil {
		return true
	}
	defer func() {
		if r := recover(); r != nil {
			ok = false
		}
	}()
	res, err := c.Eval(ctx)
	if err != nil {
		return false
	}
	return res
}
