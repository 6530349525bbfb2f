// Package fairing implements the fairing lifecycle controller.
//
// A fairing part sits on a decoupler. When the vessel is initialised the
// controller finds the decoupler, optionally steps through an intermediate
// structure part, then shields everything attached to the decoupler's
// payload node(s) and everything radially attached to that payload.
//
// # States
//
//	IDLE ──Start (decoupler and payload node found)──▶ SHIELDING
//	SHIELDING ──decoupler fired / Destroy──▶ IDLE
//
// A controller runs at most one shielding episode. Leaving SHIELDING
// restores every flag the episode set (skipping parts that no longer exist)
// and discards the shielded set; the controller never shields again.
//
// # Diagnostics
//
// Configuration problems never fail the host. They are reported as
// diagnostics on the operational slog logger and on the trace logger, and
// the controller stays IDLE or skips the affected payload group.
// Informational diagnostics are only emitted when Config.EnableLogging is
// set; warnings and errors always are.
//
// # Shared Flags
//
// Several fairing sections on one vessel may shield overlapping payloads.
// Payload parts that are already shielded when a controller starts are
// assumed to belong to another section and are skipped; the part flag
// setter is idempotent so concurrent sections never fight over it.
package fairing
