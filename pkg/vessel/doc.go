// Package vessel implements the in-memory vehicle graph the fairing module
// operates on.
//
// # Graph Structure
//
// A Vessel is an ordered collection of Parts. Parts are connected in two
// distinct ways:
//
//	Part ──node "top"──▶ Part      (stack attachment, many per part)
//	Part ──surface────▶ Part       (radial attachment, at most one parent)
//
// Node attachments are directed: each part lists its own attach nodes and
// the part (if any) sitting on each of them. Several nodes may share a
// label, which is how multi-node decouplers expose more than one payload
// mount. Surface attachment is recorded on the child only, pointing at its
// single parent.
//
// # Shielded Flag
//
// Every part carries a mutable "shielded from airstream" flag. The flag may
// be written by more than one fairing controller on the same vessel, so the
// setter is idempotent: setting the value it already holds is a no-op and
// reports no change. Readers treat the flag as consistent within one
// simulation step.
//
// # Events
//
// Controllers do not poll. They register for decouple notifications with
// OnDecoupled and the vessel invokes the callbacks synchronously when
// Decouple is called. DestroyPart removes a part, clears every link that
// pointed at it and fires OnDestroyed callbacks. References to destroyed
// parts stay valid Go pointers but report Alive() == false.
//
// A Vessel is not safe for concurrent use. The host serialises all
// callbacks on one thread.
package vessel
