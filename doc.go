// Package scxml is the root of an SCXML 1.0 state-chart interpreter:
// 'core' holds the pure Document/Configuration/StateChart model and
// its microstep/macrostep semantics, 'parser' turns SCXML markup into
// a core.Document, 'condition' supplies pluggable cond-expression
// oracles (goja, pattern, noop), 'host' wires many running charts up
// to stdin/stdout, WebSocket, and MQTT transports, and 'tools' renders
// a document or a run as Graphviz, Mermaid, or a diagnostics report.
//
// See cmd/scxmlrun for a single-binary driver over all of the above.
package scxml
