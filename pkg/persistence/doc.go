// Package persistence stores fairing simulation run reports.
//
// A report is a JSON snapshot of a vessel after a simulation run: the state
// of every fairing controller and the shielded flag of every part. Reports
// are written by fairing-sim and can be diffed between runs.
package persistence
