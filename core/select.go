package core

import "sort"

// selectEnabledTransitions implements spec.md §4.5: the surviving,
// document-order-sorted set of transitions enabled for the given
// event (nil means the eventless sentinel).
func selectEnabledTransitions(d *OptimizedDocument, config Configuration, ev *Event) []*OTransition {
	active := config.WithAncestors(d)

	ctx := EvalContext{In: func(id string) bool { return active[id] }}
	if ev != nil {
		ctx.HasEvent = true
		ctx.EventName = ev.Name
		ctx.EventData = ev.Payload
	}

	var enabled []*OTransition
	for stateId := range active {
		for _, t := range d.TransitionsFrom(stateId) {
			if ev == nil {
				if !t.Eventless {
					continue
				}
			} else {
				if t.Eventless || !eventMatches(t.Event, ev.Name) {
					continue
				}
			}
			if !evalCond(t.Cond, ctx) {
				continue
			}
			enabled = append(enabled, t)
		}
	}

	sort.Slice(enabled, func(i, j int) bool {
		return enabled[i].DocOrder < enabled[j].DocOrder
	})

	return enabled
}
