package core

// Validate runs the fixed pipeline of structural checks (spec.md
// §4.2) against a raw Document and, if no check produced an error,
// returns an OptimizedDocument. If any check produced an error, the
// returned OptimizedDocument is nil and the caller should inspect
// Diagnostics.Errors.
//
// oracle may be nil when no transition declares a cond. A transition
// with a cond and no oracle is reported as a CheckTransitionCond
// error.
func Validate(doc *Document, oracle ConditionOracle) (*OptimizedDocument, *Diagnostics) {
	diags := &Diagnostics{}

	if doc == nil {
		diags.addError(CheckDocument, "", "document is nil")
		return nil, diags
	}

	byId := make(map[string]*OState)
	var walkErr bool

	// Check 2 (ids unique/non-empty) and structural assembly
	// happen in the same depth-first walk so we only traverse the
	// raw tree once.
	var docOrderSeen = make(map[int]bool)
	var walk func(s *State, parent string)
	walk = func(s *State, parent string) {
		if s.Id == "" {
			diags.addError(CheckStateID, "", "state has empty id")
			walkErr = true
			return
		}
		if _, dup := byId[s.Id]; dup {
			diags.addError(CheckStateID, s.Id, "duplicate state id")
			walkErr = true
			return
		}
		if docOrderSeen[s.DocOrder] && s.DocOrder != 0 {
			// Not fatal: a parser that didn't assign
			// distinct orders is a parser bug, but we can
			// still optimize deterministically by falling
			// back to insertion order elsewhere.
		}
		docOrderSeen[s.DocOrder] = true

		kind := classify(s)

		children := make([]string, 0, len(s.Children))
		var initialPseudo *State
		for _, c := range s.Children {
			if c.Element == ElementInitial {
				if initialPseudo != nil {
					diags.addError(CheckInitialPseudoShape, s.Id, "more than one <initial> child")
					walkErr = true
				}
				initialPseudo = c
			}
			children = append(children, c.Id)
		}

		ostate := &OState{
			Id:       s.Id,
			Kind:     kind,
			Parent:   parent,
			Children: children,
			DocOrder: s.DocOrder,
			OnEntry:  s.OnEntryActions,
			OnExit:   s.OnExitActions,
		}
		byId[s.Id] = ostate

		for _, c := range s.Children {
			walk(c, s.Id)
		}
	}
	for _, s := range doc.States {
		walk(s, "")
	}

	if walkErr {
		return nil, diags
	}

	// Check 5: compound initial consistency, and resolving each
	// compound/parallel state's Initial field (spec.md §4.6).
	var resolveInitial func(s *State) error
	resolveInitial = func(s *State) error {
		ostate := byId[s.Id]

		var initialPseudo *State
		for _, c := range s.Children {
			if c.Element == ElementInitial {
				initialPseudo = c
			}
		}

		if s.Initial != "" && initialPseudo != nil {
			diags.addError(CheckCompoundInitial, s.Id, "state declares both an `initial` attribute and an <initial> child")
		}

		switch ostate.Kind {
		case KindCompound:
			switch {
			case s.Initial != "":
				if !isDirectChild(s, s.Initial) {
					diags.addError(CheckCompoundInitial, s.Id, `initial attribute "`+s.Initial+`" is not a direct child`)
				} else {
					ostate.Initial = s.Initial
				}
			case initialPseudo != nil:
				if len(initialPseudo.Transitions) != 1 {
					diags.addError(CheckInitialPseudoShape, s.Id, "<initial> child must have exactly one transition")
				} else {
					t := initialPseudo.Transitions[0]
					if t.Target == "" {
						diags.addError(CheckInitialPseudoShape, s.Id, "<initial> transition has no target")
					} else if !isDirectChild(s, t.Target) {
						diags.addError(CheckInitialPseudoShape, s.Id, "<initial> transition target is not a direct sibling")
					} else if targetState, have := byId[t.Target]; have && targetState.Kind == KindInitialPseudo {
						diags.addError(CheckInitialPseudoShape, s.Id, "<initial> transition may not target another <initial> pseudo-state")
					} else {
						ostate.Initial = t.Target
					}
				}
			default:
				// Fall back to the first non-pseudo child
				// in document order (spec.md §4.6).
				for _, c := range s.Children {
					if c.Element != ElementInitial {
						ostate.Initial = c.Id
						break
					}
				}
			}
		case KindParallel:
			// Parallel states enter every child; Initial is
			// unused.
		}

		for _, c := range s.Children {
			resolveInitial(c)
		}
		return nil
	}
	for _, s := range doc.States {
		resolveInitial(s)
	}

	// Check 1: document initial target exists / is top-level.
	if doc.Initial != "" {
		target, have := byId[doc.Initial]
		if !have {
			diags.addError(CheckDocumentInitial, doc.Initial, "document initial target does not exist")
		} else if target.Parent != "" {
			diags.addWarning(CheckDocumentInitial, doc.Initial, "document initial target is not a top-level state")
		}
	}

	// Check 3: transition targets resolve; also assemble the
	// transition-by-source index and compile conditions.
	transitionsBySrc := make(map[string][]*OTransition)
	transitionCount := 0
	var compileErr bool
	var walkTransitions func(s *State)
	walkTransitions = func(s *State) {
		for _, t := range s.Transitions {
			if t.Target != "" {
				if _, have := byId[t.Target]; !have {
					diags.addError(CheckTransitionTarget, s.Id, `target "`+t.Target+`" does not exist`)
				}
			}
			var compiled CompiledCondition
			if t.Cond != "" {
				if oracle == nil {
					diags.addError(CheckTransitionCond, s.Id, "condition present but no ConditionOracle was given to Validate")
					compileErr = true
				} else {
					c, err := oracle.Compile(t.Cond)
					if err != nil {
						diags.addError(CheckTransitionCond, s.Id, "failed to compile cond: "+err.Error())
						compileErr = true
					} else {
						compiled = c
					}
				}
			}
			ot := &OTransition{
				Source:    s.Id,
				Event:     t.Event,
				Eventless: t.Event == "",
				HasTarget: t.Target != "",
				Target:    t.Target,
				CondSrc:   t.Cond,
				Cond:      compiled,
				Actions:   t.Actions,
				DocOrder:  t.DocOrder,
			}
			transitionsBySrc[s.Id] = append(transitionsBySrc[s.Id], ot)
			transitionCount++
		}
		for _, c := range s.Children {
			walkTransitions(c)
		}
	}
	for _, s := range doc.States {
		walkTransitions(s)
	}

	if diags.HasErrors() {
		return nil, diags
	}
	_ = compileErr // already folded into diags.HasErrors() above

	// Check 6: ParamSpec shape — name present, PrimitiveType known,
	// a required (non-Optional) param either has a Default or is
	// genuinely meant to be supplied by every caller.
	seenParam := make(map[string]bool)
	for _, p := range doc.Params {
		if p.Name == "" {
			diags.addError(CheckParamSpec, "", "param has empty name")
			continue
		}
		if seenParam[p.Name] {
			diags.addError(CheckParamSpec, p.Name, "duplicate param name")
		}
		seenParam[p.Name] = true
		if !paramPrimitiveTypes[p.PrimitiveType] {
			diags.addError(CheckParamSpec, p.Name, `unknown primitiveType "`+p.PrimitiveType+`"`)
		}
		if !p.Optional && p.Default == nil {
			diags.addWarning(CheckParamSpec, p.Name, "required param has no default; every Initialize caller must supply it")
		}
	}
	if diags.HasErrors() {
		return nil, diags
	}

	// Check 4: reachability, advisory only.
	reachable := make(map[string]bool)
	var markContainment func(s *State)
	markContainment = func(s *State) {
		for _, c := range s.Children {
			reachable[c.Id] = true
			markContainment(c)
		}
	}
	start := doc.Initial
	if start == "" && 0 < len(doc.States) {
		start = doc.States[0].Id
	}
	if start != "" {
		reachable[start] = true
	}
	for id, ts := range transitionsBySrc {
		_ = id
		for _, t := range ts {
			if t.HasTarget {
				reachable[t.Target] = true
			}
		}
	}
	for _, s := range doc.States {
		markContainment(s)
	}
	for id := range byId {
		if !reachable[id] {
			diags.addWarning(CheckReachability, id, "state is not reachable from the document initial state")
		}
	}

	topLevel := make([]string, len(doc.States))
	for i, s := range doc.States {
		topLevel[i] = s.Id
	}

	opt := &OptimizedDocument{
		Name:             doc.Name,
		Initial:          doc.Initial,
		TopLevel:         topLevel,
		byId:             byId,
		transitionsBySrc: transitionsBySrc,
		transitionCount:  transitionCount,
	}

	return opt, diags
}

func classify(s *State) StateKind {
	switch s.Element {
	case ElementParallel:
		return KindParallel
	case ElementFinal:
		return KindFinal
	case ElementInitial:
		return KindInitialPseudo
	default:
		if 0 < len(nonPseudoChildren(s)) {
			return KindCompound
		}
		return KindAtomic
	}
}

func nonPseudoChildren(s *State) []*State {
	acc := make([]*State, 0, len(s.Children))
	for _, c := range s.Children {
		if c.Element != ElementInitial {
			acc = append(acc, c)
		}
	}
	return acc
}

func isDirectChild(parent *State, childId string) bool {
	for _, c := range parent.Children {
		if c.Id == childId {
			return true
		}
	}
	return false
}
