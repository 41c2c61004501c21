// Package noop provides a core.ConditionOracle that compiles every
// cond source to an unconditionally true condition. Useful for
// documents that declare cond attributes a caller doesn't yet want to
// evaluate, and for tests that only care about structural behavior.
package noop

import (
	"log"

	"github.com/scxmlgo/scxml/core"
)

// Oracle never actually evaluates a cond's source; it only logs that
// it was asked to compile one.
type Oracle struct {
	// Silent, if false, logs a warning every time Compile is
	// called with a non-empty source.
	Silent bool
}

// NewOracle makes an Oracle.
func NewOracle() *Oracle {
	return &Oracle{}
}

type alwaysTrue struct{}

func (alwaysTrue) Eval(core.EvalContext) (bool, error) { return true, nil }

// Compile ignores source and returns a condition that always
// evaluates true.
func (o *Oracle) Compile(source string) (core.CompiledCondition, error) {
	if !o.Silent && source != "" {
		log.Printf("warning: noop condition oracle ignoring cond %q", source)
	}
	return alwaysTrue{}, nil
}
