// scxmlrun loads an SCXML document, validates it, and runs it against
// stdin/stdout, plus a WebSocket transport when -ws is given,
// optionally recording every step to a bbolt audit log. It has no
// MQTT option.
//
// Grounded on sheens's own cmd/msimple: a single-binary, flag-driven
// process that reads a document, builds an interpreter, and drives it
// from stdin.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"

	"github.com/scxmlgo/scxml/condition/goja"
	"github.com/scxmlgo/scxml/condition/noop"
	"github.com/scxmlgo/scxml/condition/pattern"
	"github.com/scxmlgo/scxml/core"
	"github.com/scxmlgo/scxml/host"
	"github.com/scxmlgo/scxml/parser"
	"github.com/scxmlgo/scxml/tools"
)

func main() {
	var (
		docFilename = flag.String("f", "", "SCXML document filename")
		oracleName  = flag.String("cond", "goja", "condition oracle: goja, pattern, or noop")

		chartId = flag.String("id", "default", "chart id for the stdin/stdout session")
		echo    = flag.Bool("e", false, "echo input events")
		ts      = flag.Bool("t", false, "timestamp output lines")

		dot     = flag.Bool("dot", false, "print a Graphviz rendering of the document and exit")
		mermaid = flag.Bool("mermaid", false, "print a Mermaid rendering of the document and exit")
		report  = flag.Bool("report", false, "print a Markdown diagnostics report and exit")

		wsAddr   = flag.String("ws", "", "also serve a WebSocket transport on this address (e.g. :8080)")
		wsPath   = flag.String("ws-path", "/scxml", "path for the WebSocket transport")
		auditDB  = flag.String("audit", "", "bbolt filename to record every processed event")
	)
	flag.Parse()

	if *docFilename == "" {
		fmt.Fprintln(os.Stderr, "scxmlrun: -f is required")
		os.Exit(1)
	}

	f, err := os.Open(*docFilename)
	if err != nil {
		log.Fatalf("scxmlrun: %v", err)
	}
	doc, err := parser.Parse(f)
	f.Close()
	if err != nil {
		log.Fatalf("scxmlrun: parsing %s: %v", *docFilename, err)
	}

	oracle, err := buildOracle(*oracleName)
	if err != nil {
		log.Fatalf("scxmlrun: %v", err)
	}

	opt, diags := core.Validate(doc, oracle)
	if *report {
		md := tools.DiagnosticsMarkdown(doc.Name, diags)
		fmt.Println(md)
		return
	}
	if diags.HasErrors() {
		log.Fatalf("scxmlrun: %s has validation errors:\n%s", *docFilename, tools.DiagnosticsMarkdown(doc.Name, diags))
	}

	if *dot {
		if err := tools.Dot(opt, os.Stdout, nil); err != nil {
			log.Fatalf("scxmlrun: %v", err)
		}
		return
	}
	if *mermaid {
		if err := tools.Mermaid(opt, os.Stdout, nil); err != nil {
			log.Fatalf("scxmlrun: %v", err)
		}
		return
	}

	executor := core.BasicExecutor{}
	fleet := host.NewFleet(opt, oracle, executor)

	if *auditDB != "" {
		al, err := host.OpenAuditLog(*auditDB)
		if err != nil {
			log.Fatalf("scxmlrun: opening audit log: %v", err)
		}
		defer al.Close()
		fleet.Audit = al
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt)
		<-sig
		cancel()
	}()

	if *wsAddr != "" {
		mux := http.NewServeMux()
		mux.HandleFunc(*wsPath, host.WebSocketHandler(fleet))
		srv := &http.Server{Addr: *wsAddr, Handler: mux}
		go func() {
			log.Printf("scxmlrun: websocket transport listening on %s%s", *wsAddr, *wsPath)
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Printf("scxmlrun: websocket server: %v", err)
			}
		}()
		go func() {
			<-ctx.Done()
			srv.Close()
		}()
	}

	chart, err := fleet.Spawn(*chartId)
	if err != nil {
		log.Fatalf("scxmlrun: %v", err)
	}

	stdio := &host.Stdio{
		In:         os.Stdin,
		Out:        os.Stdout,
		Chart:      chart,
		Executor:   executor,
		Timestamps: *ts,
		EchoInput:  *echo,
	}
	if err := stdio.Run(ctx); err != nil && err != context.Canceled {
		log.Fatalf("scxmlrun: %v", err)
	}
}

func buildOracle(name string) (core.ConditionOracle, error) {
	switch name {
	case "goja":
		return goja.NewOracle(), nil
	case "pattern":
		return pattern.NewOracle(), nil
	case "noop":
		return noop.NewOracle(), nil
	default:
		return nil, fmt.Errorf("unknown condition oracle %q", name)
	}
}
