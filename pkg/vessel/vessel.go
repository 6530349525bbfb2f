package vessel

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// Vessel errors.
var (
	ErrPartNotFound  = errors.New("part not found")
	ErrDuplicatePart = errors.New("duplicate part ID")
	ErrInvalidPart   = errors.New("invalid part")
)

type handler struct {
	id uint64
	fn func()
}

// Vessel is an ordered set of parts and the links between them.
type Vessel struct {
	id   string
	name string

	parts []*Part
	byID  map[string]*Part

	nextHandlerID uint64
	onDecoupled   map[string][]handler
	onDestroyed   map[string][]handler
}

// New creates an empty vessel. An empty id is replaced with a random UUID.
func New(id, name string) *Vessel {
	if id == "" {
		id = uuid.NewString()
	}
	return &Vessel{
		id:          id,
		name:        name,
		byID:        make(map[string]*Part),
		onDecoupled: make(map[string][]handler),
		onDestroyed: make(map[string][]handler),
	}
}

// ID returns the vessel identifier.
func (v *Vessel) ID() string {
	return v.id
}

// Name returns the vessel name.
func (v *Vessel) Name() string {
	return v.name
}

// AddPart appends a part to the vessel.
func (v *Vessel) AddPart(p *Part) error {
	if p == nil || p.id == "" {
		return ErrInvalidPart
	}
	if _, exists := v.byID[p.id]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicatePart, p.id)
	}
	v.parts = append(v.parts, p)
	v.byID[p.id] = p
	return nil
}

// Part returns the part with the given ID, or nil.
func (v *Vessel) Part(id string) *Part {
	return v.byID[id]
}

// Parts returns the live parts in vessel order.
func (v *Vessel) Parts() []*Part {
	result := make([]*Part, len(v.parts))
	copy(result, v.parts)
	return result
}

// PartCount returns the number of live parts.
func (v *Vessel) PartCount() int {
	return len(v.parts)
}

// Attach adds a node labelled label on from with to mounted on it.
// The link is one-directional; use Link for a stack joint.
func (v *Vessel) Attach(fromID, label, toID string) error {
	from, err := v.lookup(fromID)
	if err != nil {
		return err
	}
	var to *Part
	if toID != "" {
		if to, err = v.lookup(toID); err != nil {
			return err
		}
	}
	from.AddNode(label).attached = to
	return nil
}

// Link joins two parts at the given nodes in both directions.
func (v *Vessel) Link(aID, aLabel, bID, bLabel string) error {
	if err := v.Attach(aID, aLabel, bID); err != nil {
		return err
	}
	return v.Attach(bID, bLabel, aID)
}

// SurfaceAttach records child as radially attached to parent.
func (v *Vessel) SurfaceAttach(childID, parentID string) error {
	child, err := v.lookup(childID)
	if err != nil {
		return err
	}
	parent, err := v.lookup(parentID)
	if err != nil {
		return err
	}
	child.surfaceParent = parent
	return nil
}

// OnDecoupled registers fn to run when the part's decoupler fires.
// The returned function cancels the registration.
func (v *Vessel) OnDecoupled(partID string, fn func()) func() {
	return v.register(v.onDecoupled, partID, fn)
}

// OnDestroyed registers fn to run when the part is destroyed.
// The returned function cancels the registration.
func (v *Vessel) OnDestroyed(partID string, fn func()) func() {
	return v.register(v.onDestroyed, partID, fn)
}

// Decouple fires the part's decoupler. Node links at label are cut in both
// directions; an empty label cuts every node link of the part. Decoupled
// callbacks run once, in registration order. Decoupling an already
// decoupled part is a no-op.
func (v *Vessel) Decouple(partID, label string) error {
	p, err := v.lookup(partID)
	if err != nil {
		return err
	}
	if p.decoupled {
		return nil
	}

	for _, n := range p.nodes {
		if label != "" && n.label != label {
			continue
		}
		other := n.attached
		n.attached = nil
		if other == nil {
			continue
		}
		for _, back := range other.nodes {
			if back.attached == p {
				back.attached = nil
			}
		}
	}
	p.decoupled = true

	v.fire(v.onDecoupled, partID)
	delete(v.onDecoupled, partID)
	return nil
}

// DestroyPart removes the part from the vessel. Every node or surface link
// pointing at it is cleared and destroyed callbacks run once.
func (v *Vessel) DestroyPart(partID string) error {
	p, err := v.lookup(partID)
	if err != nil {
		return err
	}

	for i, candidate := range v.parts {
		if candidate == p {
			v.parts = append(v.parts[:i], v.parts[i+1:]...)
			break
		}
	}
	delete(v.byID, partID)

	for _, other := range v.parts {
		for _, n := range other.nodes {
			if n.attached == p {
				n.attached = nil
			}
		}
		if other.surfaceParent == p {
			other.surfaceParent = nil
		}
	}
	p.destroyed = true

	v.fire(v.onDestroyed, partID)
	delete(v.onDestroyed, partID)
	delete(v.onDecoupled, partID)
	return nil
}

func (v *Vessel) lookup(id string) (*Part, error) {
	p, ok := v.byID[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrPartNotFound, id)
	}
	return p, nil
}

func (v *Vessel) register(table map[string][]handler, partID string, fn func()) func() {
	v.nextHandlerID++
	id := v.nextHandlerID
	table[partID] = append(table[partID], handler{id: id, fn: fn})

	return func() {
		hs := table[partID]
		for i, h := range hs {
			if h.id == id {
				table[partID] = append(hs[:i], hs[i+1:]...)
				return
			}
		}
	}
}

func (v *Vessel) fire(table map[string][]handler, partID string) {
	hs := make([]handler, len(table[partID]))
	copy(hs, table[partID])
	for _, h := range hs {
		h.fn()
	}
}
