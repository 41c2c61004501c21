package host

import (
	"context"
	"strings"
	"testing"
)

func TestStdioRunProcessesEventsAndQuits(t *testing.T) {
	opt := buildTestOpt(t)
	fleet := NewFleet(opt, nil, nil)
	chart, err := fleet.Spawn("one")
	if err != nil {
		t.Fatal(err)
	}

	in := strings.NewReader("# a comment\n\"go\"\nquit\nnever reached\n")
	var out strings.Builder

	s := &Stdio{In: in, Out: &out, Chart: chart, EchoInput: true}
	if err := s.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}

	got := out.String()
	if !strings.Contains(got, `input {"name":"go"}`) {
		t.Fatalf("missing echoed input: %s", got)
	}
	if !strings.Contains(got, `config ["b"]`) {
		t.Fatalf("missing resulting configuration: %s", got)
	}
	if strings.Contains(got, "never reached") {
		t.Fatalf("lines after quit were processed: %s", got)
	}
}

func TestParseWireEventAcceptsBareName(t *testing.T) {
	ev, err := parseWireEvent([]byte(`"go"`))
	if err != nil {
		t.Fatal(err)
	}
	if ev.Name != "go" || ev.Payload != nil {
		t.Fatalf("got %+v", ev)
	}
}

func TestParseWireEventAcceptsNameAndPayload(t *testing.T) {
	ev, err := parseWireEvent([]byte(`{"name":"go","payload":{"x":1}}`))
	if err != nil {
		t.Fatal(err)
	}
	if ev.Name != "go" {
		t.Fatalf("got %+v", ev)
	}
	if v, _ := ev.Payload["x"].(float64); v != 1 {
		t.Fatalf("payload = %+v", ev.Payload)
	}
}

func TestParseWireEventRejectsGarbage(t *testing.T) {
	if _, err := parseWireEvent([]byte(`not json`)); err == nil {
		t.Fatal("expected an error")
	}
}
