package tools

import (
	"fmt"
	"sort"

	"github.com/scxmlgo/scxml/core"
)

// Step is one entry in a Scenario: an event to send (or the zero
// Event to send nothing and only check the current chart), and the
// resulting active leaf configuration it must produce.
type Step struct {
	// Doc is an opaque documentation string, surfaced in failure
	// messages.
	Doc string `json:"doc,omitempty" yaml:"doc,omitempty"`

	// Send is the event to deliver via core.SendEvent. A zero
	// value (empty Name, nil Payload) sends nothing and only
	// checks the configuration reached by Initialize/the prior
	// step.
	Send core.Event `json:"send,omitempty" yaml:"send,omitempty"`

	// ExpectConfiguration, if non-nil, is the exact set of active
	// leaf ids the chart must be in after Send is processed.
	ExpectConfiguration []string `json:"expectConfiguration,omitempty" yaml:"expectConfiguration,omitempty"`

	// ExpectPhase, if non-empty, is the Phase the chart must be
	// in after Send is processed.
	ExpectPhase string `json:"expectPhase,omitempty" yaml:"expectPhase,omitempty"`
}

// Scenario is a named sequence of Steps run against one StateChart.
type Scenario struct {
	Doc   string `json:"doc,omitempty" yaml:"doc,omitempty"`
	Name  string `json:"name" yaml:"name"`
	Steps []Step `json:"steps" yaml:"steps"`
}

// Run drives sc through the scenario's steps in order, sending each
// Step.Send and checking ExpectConfiguration/ExpectPhase against the
// resulting chart. It stops at the first failing step. sc itself is
// never mutated (core.SendEvent is pure); Run returns the final
// chart reached.
func Run(sc *core.StateChart, executor core.ActionExecutor, scenario Scenario) (*core.StateChart, error) {
	for i, step := range scenario.Steps {
		if step.Send.Name != "" || step.Send.Payload != nil {
			sc = core.SendEvent(sc, step.Send, executor)
		}

		if step.ExpectConfiguration != nil {
			got := core.ActiveLeaves(sc)
			want := append([]string{}, step.ExpectConfiguration...)
			sort.Strings(want)
			if !equalStrings(got, want) {
				return sc, fmt.Errorf("scenario %q step %d (%s): configuration = %v, want %v",
					scenario.Name, i, step.Doc, got, want)
			}
		}

		if step.ExpectPhase != "" && sc.Phase.String() != step.ExpectPhase {
			return sc, fmt.Errorf("scenario %q step %d (%s): phase = %s, want %s",
				scenario.Name, i, step.Doc, sc.Phase, step.ExpectPhase)
		}
	}
	return sc, nil
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
