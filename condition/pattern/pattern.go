// Package pattern implements a core.ConditionOracle backed by the
// structural pattern matcher in the match package: a cond source is a
// YAML document describing a pattern, matched against the triggering
// event's data. The transition is enabled whenever the pattern
// matches at least once.
//
// A pattern variable ("?x") binds to whatever value occupies its
// position; this oracle discards the bindings and reports only
// whether a match was found, since core has no mechanism to feed
// bindings back into a subsequent action.
package pattern

import (
	"fmt"

	"gopkg.in/yaml.v2"

	"github.com/scxmlgo/scxml/core"
	"github.com/scxmlgo/scxml/match"
)

// Oracle compiles cond expressions as match patterns.
type Oracle struct {
	Matcher *match.Matcher
}

// NewOracle makes an Oracle using match.DefaultMatcher.
func NewOracle() *Oracle {
	return &Oracle{Matcher: match.DefaultMatcher}
}

type compiled struct {
	o       *Oracle
	pattern interface{}
	source  string
}

type alwaysMatch struct{}

func (alwaysMatch) Eval(core.EvalContext) (bool, error) { return true, nil }

// Compile parses source as YAML. An empty source matches anything.
func (o *Oracle) Compile(source string) (core.CompiledCondition, error) {
	if source == "" {
		return alwaysMatch{}, nil
	}
	var pat interface{}
	if err := yaml.Unmarshal([]byte(source), &pat); err != nil {
		return nil, fmt.Errorf("pattern: parsing cond %q: %w", source, err)
	}
	pat = stringifyKeys(pat)
	return &compiled{o: o, pattern: pat, source: source}, nil
}

// Eval matches the compiled pattern against ctx.EventData.
func (c *compiled) Eval(ctx core.EvalContext) (bool, error) {
	fact := make(map[string]interface{}, len(ctx.EventData)+1)
	for k, v := range ctx.EventData {
		fact[k] = v
	}
	fact["_event"] = ctx.EventName

	m := c.o.Matcher
	if m == nil {
		m = match.DefaultMatcher
	}
	bss, err := m.Matches(c.pattern, fact)
	if err != nil {
		return false, fmt.Errorf("pattern: matching cond %q: %w", c.source, err)
	}
	return 0 < len(bss), nil
}

// stringifyKeys recursively converts the map[interface{}]interface{}
// that gopkg.in/yaml.v2 produces into map[string]interface{}, which is
// what match.Matcher expects.
func stringifyKeys(v interface{}) interface{} {
	switch vv := v.(type) {
	case map[interface{}]interface{}:
		m := make(map[string]interface{}, len(vv))
		for k, val := range vv {
			m[fmt.Sprintf("%v", k)] = stringifyKeys(val)
		}
		return m
	case []interface{}:
		for i, e := range vv {
			vv[i] = stringifyKeys(e)
		}
		return vv
	default:
		return v
	}
}
