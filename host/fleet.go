package host

import (
	"fmt"
	"sync"

	"github.com/scxmlgo/scxml/core"
	"github.com/scxmlgo/scxml/util"
)

// Chart is a named, independently-running StateChart: the id/document
// reference/state triple a Fleet manages. Grounded on the same shape
// the original sheens crew used for its id/spec/state triple, with
// the spec replaced by a shared OptimizedDocument reference (core's
// Copy-on-SendEvent design means Doc can be shared safely across every
// Chart built from it).
type Chart struct {
	Id  string `json:"id"`
	Doc *core.OptimizedDocument `json:"-"`

	// Audit, if set, receives a record of every Send call.
	Audit *AuditLog `json:"-"`

	mu sync.Mutex
	sc *core.StateChart
}

// Snapshot returns the chart's current StateChart. Safe for
// concurrent use; the returned value is never mutated in place.
func (c *Chart) Snapshot() *core.StateChart {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sc
}

// Send delivers ev to the chart, stores the resulting StateChart, and
// (if c.Audit is set) appends an AuditRecord for the delivery.
func (c *Chart) Send(ev core.Event, executor core.ActionExecutor) *core.StateChart {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sc = core.SendEvent(c.sc, ev, executor)
	if c.Audit != nil {
		if err := c.Audit.RecordSend(c.Id, ev, c.sc); err != nil {
			util.Logf("host: audit: %v", err)
		}
	}
	return c.sc
}

// Fleet manages a set of independently-running Charts that all share
// one OptimizedDocument, keyed by id.
type Fleet struct {
	Doc      *core.OptimizedDocument
	Oracle   core.ConditionOracle
	Executor core.ActionExecutor

	// Audit, if set, is attached to every Chart this Fleet spawns.
	Audit *AuditLog

	mu     sync.RWMutex
	charts map[string]*Chart
}

// NewFleet makes a Fleet over doc. doc should already be Validate'd
// (or produced by core.Initialize) with oracle.
func NewFleet(doc *core.OptimizedDocument, oracle core.ConditionOracle, executor core.ActionExecutor) *Fleet {
	return &Fleet{
		Doc:      doc,
		Oracle:   oracle,
		Executor: executor,
		charts:   make(map[string]*Chart),
	}
}

// Spawn creates a new Chart with the given id, initialized into doc's
// initial configuration. Returns an error if id is already in use.
func (f *Fleet) Spawn(id string) (*Chart, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, have := f.charts[id]; have {
		return nil, fmt.Errorf("host: chart %q already exists", id)
	}

	sc := core.InitializeOptimized(f.Doc, f.Executor)

	c := &Chart{Id: id, Doc: f.Doc, Audit: f.Audit, sc: sc}
	f.charts[id] = c
	return c, nil
}

// Get looks up a Chart by id.
func (f *Fleet) Get(id string) (*Chart, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	c, have := f.charts[id]
	return c, have
}

// Remove deletes a Chart from the Fleet.
func (f *Fleet) Remove(id string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.charts, id)
}

// Ids returns every Chart id currently managed, in no particular
// order.
func (f *Fleet) Ids() []string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	ids := make([]string, 0, len(f.charts))
	for id := range f.charts {
		ids = append(ids, id)
	}
	return ids
}
