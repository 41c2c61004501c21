// Package tools provides diagnostics for an OptimizedDocument and a
// running StateChart: Graphviz/Mermaid visualizations, a Markdown
// diagnostics report, and a scenario harness for asserting expected
// configurations after a scripted sequence of events.
package tools
