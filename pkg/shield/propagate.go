package shield

import "github.com/kwcargobay/fairing-go/pkg/vessel"

// ShieldFunc is called for every part newly added to the shielded set.
// via is the part it was reached from (nil for a propagation start) and
// radial reports whether the propagation was started by radial closure.
type ShieldFunc func(part, via *vessel.Part, radial bool)

// Propagator owns the shielded set of one shielding episode.
type Propagator struct {
	exempt   ExemptSet
	blocked  map[string]struct{}
	shielded *Set

	onShield ShieldFunc
	radial   bool
}

// NewPropagator creates a propagator with an empty shielded set.
func NewPropagator(exempt ExemptSet) *Propagator {
	return &Propagator{
		exempt:   exempt,
		blocked:  make(map[string]struct{}),
		shielded: NewSet(),
	}
}

// OnShield sets a callback invoked for each newly shielded part.
func (p *Propagator) OnShield(fn ShieldFunc) {
	p.onShield = fn
}

// Block marks a part as already seen so traversal never enters it. The
// part's shielded flag is not touched and it is not added to the set.
func (p *Propagator) Block(part *vessel.Part) {
	if part != nil {
		p.blocked[part.ID()] = struct{}{}
	}
}

// IsBlocked reports whether part was passed to Block.
func (p *Propagator) IsBlocked(part *vessel.Part) bool {
	if part == nil {
		return false
	}
	_, ok := p.blocked[part.ID()]
	return ok
}

// Shielded returns the episode's shielded set.
func (p *Propagator) Shielded() *Set {
	return p.shielded
}

type visit struct {
	part *vessel.Part
	via  *vessel.Part
}

// Propagate shields start and everything reachable from it through node
// attachments, and returns the number of parts added to the set.
//
// Exempt, blocked, destroyed and already shielded parts are skipped and
// not traversed through. Nodes with nothing attached are ignored.
func (p *Propagator) Propagate(start *vessel.Part) int {
	return p.propagate(start, nil)
}

func (p *Propagator) propagate(start, via *vessel.Part) int {
	added := 0
	stack := []visit{{part: start, via: via}}

	for len(stack) > 0 {
		v := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if !p.enterable(v.part) {
			continue
		}

		v.part.SetShielded(true)
		p.shielded.Add(v.part)
		added++
		if p.onShield != nil {
			p.onShield(v.part, v.via, p.radial)
		}

		// Push in reverse so children pop in declaration order.
		nodes := v.part.Nodes()
		for i := len(nodes) - 1; i >= 0; i-- {
			child := nodes[i].Attached()
			if child == nil || p.shielded.Contains(child) {
				continue
			}
			stack = append(stack, visit{part: child, via: v.part})
		}
	}

	return added
}

func (p *Propagator) enterable(part *vessel.Part) bool {
	switch {
	case !part.Alive():
		return false
	case p.exempt.Contains(part.Name()):
		return false
	case p.IsBlocked(part):
		return false
	case p.shielded.Contains(part):
		return false
	}
	return true
}
