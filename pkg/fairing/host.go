package fairing

import "github.com/kwcargobay/fairing-go/pkg/vessel"

// Host is the vessel-side interface a controller needs.
// *vessel.Vessel implements it.
type Host interface {
	// Parts returns the vessel's live parts in order.
	Parts() []*vessel.Part

	// OnDecoupled registers fn to run when the part's decoupler fires and
	// returns a function cancelling the registration. fn is not called for
	// a part that already fired; the controller checks Part.Decoupled.
	OnDecoupled(partID string, fn func()) func()
}

var _ Host = (*vessel.Vessel)(nil)
