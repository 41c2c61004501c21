// Package host wires core.StateChart up to the outside world: a
// Fleet manages many named charts, and the transports (stdio,
// WebSocket, MQTT) turn wire messages into core.SendEvent calls and
// chart output back into wire messages. A bbolt-backed audit log
// records every event a Fleet processes, and a YAML config loader
// describes which transport(s) to start.
package host
