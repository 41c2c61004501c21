package host

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/scxmlgo/scxml/core"
	"github.com/scxmlgo/scxml/util"
	"github.com/scxmlgo/scxml/util/testutil"
)

// Stdio is a line-delimited-JSON transport: one JSON object per line
// read from In is delivered to Chart as a core.Event, and the
// resulting active configuration is written to Out as a line
// "config <JSON array>" (preceded, when EchoInput is set, by a line
// "input <JSON event>").
//
// Grounded on sheens's own stdio coupling: a line starting with '#' is
// a comment and is skipped, and "quit" on its own line ends the
// session.
type Stdio struct {
	In     io.Reader
	Out    io.Writer
	Chart  *Chart

	Executor core.ActionExecutor

	// Timestamps prepends a UTC timestamp to each output line.
	Timestamps bool

	// EchoInput writes each parsed input event back to Out before
	// processing it.
	EchoInput bool
}

// wireEvent is the line-delimited wire format: {"name": "...",
// "payload": {...}}. A bare JSON string is also accepted as
// shorthand for an event with that name and no payload.
type wireEvent struct {
	Name    string                 `json:"name"`
	Payload map[string]interface{} `json:"payload,omitempty"`
}

func parseWireEvent(line []byte) (core.Event, error) {
	var we wireEvent
	if err := json.Unmarshal(line, &we); err == nil && we.Name != "" {
		return core.Event{Name: we.Name, Payload: we.Payload}, nil
	}
	var name string
	if err := json.Unmarshal(line, &name); err != nil {
		return core.Event{}, fmt.Errorf("host: bad event line %q: %w", line, err)
	}
	return core.Event{Name: name}, nil
}

// Run reads events from s.In until EOF, ctx is done, or a line is
// exactly "quit".
func (s *Stdio) Run(ctx context.Context) error {
	printf := func(format string, args ...interface{}) {
		if s.Timestamps {
			format = time.Now().UTC().Format(time.RFC3339Nano) + " " + format
		}
		fmt.Fprintf(s.Out, format, args...)
	}

	scanner := bufio.NewScanner(s.In)
	for scanner.Scan() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if line == "quit" {
			return nil
		}

		ev, err := parseWireEvent([]byte(line))
		if err != nil {
			util.Logf("host: %s", err)
			continue
		}

		if s.EchoInput {
			printf("input %s\n", testutil.JS(ev))
		}

		sc := s.Chart.Send(ev, s.Executor)
		printf("config %s\n", testutil.JS(core.ActiveLeaves(sc)))
	}
	return scanner.Err()
}
