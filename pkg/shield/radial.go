package shield

import "github.com/kwcargobay/fairing-go/pkg/vessel"

// DefaultMaxRadialIterations bounds radial closure on malformed graphs.
const DefaultMaxRadialIterations = 100

// RadialResult summarises one CloseRadial run.
type RadialResult struct {
	// Passes is the number of full scans performed.
	Passes int

	// Added is the number of parts shielded by the closure.
	Added int

	// Converged is true when a pass completed without any change.
	Converged bool
}

// CloseRadial extends the shielded set across surface attachments.
//
// Each pass scans parts in reverse order. A part whose surface parent is
// shielded gets shielded, and a shielded part shields its surface parent;
// either way the propagation continues through node attachments. A pass
// only counts as a change when parts were actually added. Scanning stops
// after the first unchanged pass or after maxIterations passes, whichever
// comes first. A non-positive maxIterations uses DefaultMaxRadialIterations.
func (p *Propagator) CloseRadial(parts []*vessel.Part, maxIterations int) RadialResult {
	if maxIterations <= 0 {
		maxIterations = DefaultMaxRadialIterations
	}

	p.radial = true
	defer func() { p.radial = false }()

	var res RadialResult
	for res.Passes < maxIterations {
		res.Passes++
		added := p.radialPass(parts)
		if added == 0 {
			res.Converged = true
			break
		}
		res.Added += added
	}
	return res
}

func (p *Propagator) radialPass(parts []*vessel.Part) int {
	added := 0
	for i := len(parts) - 1; i >= 0; i-- {
		radial := parts[i]
		if !radial.Alive() {
			continue
		}
		parent := radial.SurfaceParent()
		if !parent.Alive() {
			continue
		}

		radialIn := p.shielded.Contains(radial)
		parentIn := p.shielded.Contains(parent)
		switch {
		case radialIn && !parentIn:
			added += p.propagate(parent, radial)
		case parentIn && !radialIn:
			added += p.propagate(radial, parent)
		}
	}
	return added
}
