// Package log provides the structured event trace for fairing shielding.
//
// This package defines the Logger interface and Event types for capturing
// what a fairing controller decided during a shielding episode. It is
// separate from operational logging (slog): the trace is a complete,
// machine-readable record that can be replayed, filtered and summarised
// with the fairing-log tool.
//
// # Basic Usage
//
// Controllers accept any Logger implementation:
//
//	// For development: log to console via slog
//	ctrl.SetTraceLogger(log.NewSlogAdapter(slog.Default()))
//
//	// For analysis: write to a binary trace file
//	trace, _ := log.NewFileLogger("run.flog")
//	ctrl.SetTraceLogger(trace)
//
//	// Both: use MultiLogger
//	ctrl.SetTraceLogger(log.NewMultiLogger(
//	    log.NewSlogAdapter(slog.Default()),
//	    trace,
//	))
//
// # Event Types
//
// Every event belongs to one category:
//   - State: controller state transitions (StateChangeEvent)
//   - Shield: a part joined the shielded set (ShieldEvent)
//   - Expose: the payload was exposed and flags restored (ExposeEvent)
//   - Diagnostic: informational, warning and error lines (DiagnosticEvent)
//
// # File Format
//
// Trace files are a stream of CBOR-encoded events with the .flog extension.
package log
