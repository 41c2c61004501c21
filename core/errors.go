package core

import "strings"

// CheckKind names one of Validate's fixed structural checks (spec.md
// §4.2). Each has its own typed error below, returned by
// Diagnostic.AsError.
type CheckKind string

const (
	CheckDocument            CheckKind = "document"
	CheckStateID             CheckKind = "state-id"
	CheckInitialPseudoShape  CheckKind = "initial-pseudo-shape"
	CheckCompoundInitial     CheckKind = "compound-initial"
	CheckDocumentInitial     CheckKind = "document-initial"
	CheckTransitionTarget    CheckKind = "transition-target"
	CheckTransitionCond      CheckKind = "transition-cond"
	CheckParamSpec           CheckKind = "param-spec"
	CheckReachability        CheckKind = "reachability"
)

// Diagnostics accumulates the Validator's findings. Errors are fatal
// to optimization; Warnings are advisory and never block it.
//
// Mirrors the "two ordered lists of strings" contract in the external
// interfaces (errors, warnings), but keeps the underlying typed
// diagnostic around too, so a caller that wants structure (which
// state id? which check?) doesn't have to re-parse a message.
type Diagnostics struct {
	Errors   []Diagnostic `json:"errors,omitempty" yaml:",omitempty"`
	Warnings []Diagnostic `json:"warnings,omitempty" yaml:",omitempty"`
}

// Diagnostic is one finding from a Validate check.
type Diagnostic struct {
	Check   CheckKind `json:"check"`
	StateId string    `json:"stateId,omitempty" yaml:",omitempty"`
	Message string    `json:"message"`
}

func (d Diagnostic) String() string {
	if d.StateId == "" {
		return string(d.Check) + ": " + d.Message
	}
	return string(d.Check) + ": " + d.StateId + ": " + d.Message
}

// AsError converts the Diagnostic into the concrete error type for
// its Check, so a caller that wants a real Go error (rather than a
// string or a Check-tagged struct) can type-switch or errors.As on
// the specific failure instead of comparing Check strings.
func (d Diagnostic) AsError() error {
	switch d.Check {
	case CheckDocument:
		return &DocumentError{Message: d.Message}
	case CheckStateID:
		return &StateIDError{StateId: d.StateId, Message: d.Message}
	case CheckInitialPseudoShape:
		return &InitialPseudoShapeError{StateId: d.StateId, Message: d.Message}
	case CheckCompoundInitial:
		return &CompoundInitialError{StateId: d.StateId, Message: d.Message}
	case CheckDocumentInitial:
		return &DocumentInitialError{StateId: d.StateId, Message: d.Message}
	case CheckTransitionTarget:
		return &TransitionTargetError{StateId: d.StateId, Message: d.Message}
	case CheckTransitionCond:
		return &TransitionCondError{StateId: d.StateId, Message: d.Message}
	case CheckParamSpec:
		return &ParamSpecError{Name: d.StateId, Message: d.Message}
	case CheckReachability:
		return &ReachabilityError{StateId: d.StateId, Message: d.Message}
	default:
		return genericCheckError{d}
	}
}

// DocumentError reports that no Document was given to Validate.
type DocumentError struct{ Message string }

func (e *DocumentError) Error() string { return "scxml: document: " + e.Message }

// StateIDError reports an empty or duplicate state id.
type StateIDError struct{ StateId, Message string }

func (e *StateIDError) Error() string {
	return `scxml: state "` + e.StateId + `": ` + e.Message
}

// InitialPseudoShapeError reports a malformed <initial> pseudo-state:
// more than one per parent, a missing or multi-transition body, or a
// transition that doesn't target a direct sibling.
type InitialPseudoShapeError struct{ StateId, Message string }

func (e *InitialPseudoShapeError) Error() string {
	return `scxml: <initial> under "` + e.StateId + `": ` + e.Message
}

// CompoundInitialError reports a compound state whose `initial`
// attribute and <initial> child disagree or don't resolve.
type CompoundInitialError struct{ StateId, Message string }

func (e *CompoundInitialError) Error() string {
	return `scxml: initial state of "` + e.StateId + `": ` + e.Message
}

// DocumentInitialError reports a problem with the document's own
// top-level `initial` attribute.
type DocumentInitialError struct{ StateId, Message string }

func (e *DocumentInitialError) Error() string {
	return `scxml: document initial "` + e.StateId + `": ` + e.Message
}

// TransitionTargetError reports a transition whose target id does not
// resolve to any known state.
type TransitionTargetError struct{ StateId, Message string }

func (e *TransitionTargetError) Error() string {
	return `scxml: transition from "` + e.StateId + `": ` + e.Message
}

// TransitionCondError reports a `cond` attribute that failed to
// compile, or that was present with no ConditionOracle to compile it.
type TransitionCondError struct{ StateId, Message string }

func (e *TransitionCondError) Error() string {
	return `scxml: transition from "` + e.StateId + `": ` + e.Message
}

// ParamSpecError reports a malformed or duplicate ParamSpec.
type ParamSpecError struct{ Name, Message string }

func (e *ParamSpecError) Error() string {
	return `scxml: param "` + e.Name + `": ` + e.Message
}

// ReachabilityError reports a state unreachable from the document's
// initial state. Always carried as a Diagnostics.Warning, never an
// Error, but still gets its own typed shape for consistency with the
// other checks.
type ReachabilityError struct{ StateId, Message string }

func (e *ReachabilityError) Error() string {
	return `scxml: state "` + e.StateId + `": ` + e.Message
}

// genericCheckError is AsError's fallback for a Check value this
// package doesn't otherwise recognize (e.g. one a future check adds
// without updating the switch above).
type genericCheckError struct{ d Diagnostic }

func (e genericCheckError) Error() string { return e.d.String() }

func (ds *Diagnostics) addError(check CheckKind, stateId, message string) {
	ds.Errors = append(ds.Errors, Diagnostic{Check: check, StateId: stateId, Message: message})
}

func (ds *Diagnostics) addWarning(check CheckKind, stateId, message string) {
	ds.Warnings = append(ds.Warnings, Diagnostic{Check: check, StateId: stateId, Message: message})
}

// HasErrors reports whether any fatal diagnostic was recorded.
func (ds *Diagnostics) HasErrors() bool {
	return ds != nil && 0 < len(ds.Errors)
}

// ErrorStrings renders the error diagnostics as plain strings, for
// callers that just want spec.md §6.4's "errors" list.
func (ds *Diagnostics) ErrorStrings() []string {
	return diagnosticStrings(ds.Errors)
}

// AsErrors renders the error diagnostics as their concrete, typed
// error values (see Diagnostic.AsError), for a caller that wants to
// type-switch on the specific failing check instead of comparing
// Check strings.
func (ds *Diagnostics) AsErrors() []error {
	errs := make([]error, len(ds.Errors))
	for i, d := range ds.Errors {
		errs[i] = d.AsError()
	}
	return errs
}

// WarningStrings renders the warning diagnostics as plain strings.
func (ds *Diagnostics) WarningStrings() []string {
	return diagnosticStrings(ds.Warnings)
}

func diagnosticStrings(ds []Diagnostic) []string {
	acc := make([]string, len(ds))
	for i, d := range ds {
		acc[i] = d.String()
	}
	return acc
}

// ValidationError is returned by Initialize when the Document fails
// validation. The raw Document is not optimized in this case.
type ValidationError struct {
	Diagnostics *Diagnostics
}

func (e *ValidationError) Error() string {
	return "scxml: validation failed: " + strings.Join(e.Diagnostics.ErrorStrings(), "; ")
}

// UnknownStateError occurs when something (a transition target, an
// initial attribute, a configuration id) names a state that does not
// resolve in the OptimizedDocument.
type UnknownStateError struct {
	StateId string
}

func (e *UnknownStateError) Error() string {
	return `scxml: unknown state "` + e.StateId + `"`
}

// NotCompiledError occurs when a StateChart operation is attempted
// against an OptimizedDocument whose conditions were never compiled
// (i.e. Validate was never called with the oracle that owns them).
type NotCompiledError struct {
	StateId string
}

func (e *NotCompiledError) Error() string {
	return `scxml: condition at state "` + e.StateId + `" was never compiled`
}
