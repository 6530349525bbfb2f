// Package shield implements the traversal that marks parts as shielded from
// the airstream.
//
// Shielding happens in two phases:
//
//  1. Propagate flood-fills the shielded flag across node attachments
//     starting at a payload part. The walk uses an explicit work-list and a
//     visited set keyed by part ID, so cycles and deep stacks are safe.
//  2. CloseRadial repeatedly scans every vessel part and extends the set
//     across surface (radial) attachments until a pass changes nothing or
//     the iteration cap is reached.
//
// Parts whose name is in the ExemptSet are never shielded and act as
// traversal barriers. Parts passed to Block are barriers too, but they are
// tracked separately from the shielded set: a blocked part (typically the
// decoupler under the fairing) is never flagged and never counts as
// shielded during radial closure.
package shield
