package vessel

// AttachNode is a named stack attachment point on a part.
type AttachNode struct {
	label    string
	attached *Part
}

// Label returns the node identifier (e.g. "top", "top2", "bottom").
func (n *AttachNode) Label() string {
	return n.label
}

// Attached returns the part mounted on this node, or nil.
func (n *AttachNode) Attached() *Part {
	if n == nil {
		return nil
	}
	return n.attached
}

// Part is a node in the vessel graph.
type Part struct {
	id   string
	name string

	nodes         []*AttachNode
	surfaceParent *Part

	shielded  bool
	decoupled bool
	destroyed bool
}

// NewPart creates a detached part. The id must be unique within a vessel;
// name is the part type name used for exemption lookups.
func NewPart(id, name string) *Part {
	return &Part{id: id, name: name}
}

// ID returns the stable part identifier.
func (p *Part) ID() string {
	return p.id
}

// Name returns the part type name.
func (p *Part) Name() string {
	return p.name
}

// String returns "name(id)" for diagnostics.
func (p *Part) String() string {
	if p == nil {
		return "<nil>"
	}
	return p.name + "(" + p.id + ")"
}

// AddNode appends an attach node with the given label and returns it.
// Labels need not be unique.
func (p *Part) AddNode(label string) *AttachNode {
	n := &AttachNode{label: label}
	p.nodes = append(p.nodes, n)
	return n
}

// Nodes returns the part's attach nodes in declaration order.
func (p *Part) Nodes() []*AttachNode {
	result := make([]*AttachNode, len(p.nodes))
	copy(result, p.nodes)
	return result
}

// FindAttachNode returns the first node with the given label, or nil.
func (p *Part) FindAttachNode(label string) *AttachNode {
	for _, n := range p.nodes {
		if n.label == label {
			return n
		}
	}
	return nil
}

// FindAttachNodes returns every node with the given label in declaration
// order. It returns nil when the part has no node with that label.
func (p *Part) FindAttachNodes(label string) []*AttachNode {
	var result []*AttachNode
	for _, n := range p.nodes {
		if n.label == label {
			result = append(result, n)
		}
	}
	return result
}

// SurfaceParent returns the part this part is surface attached to, or nil.
func (p *Part) SurfaceParent() *Part {
	return p.surfaceParent
}

// Shielded reports whether the part is shielded from the airstream.
func (p *Part) Shielded() bool {
	return p.shielded
}

// SetShielded sets the shielded flag and reports whether the value changed.
// Setting the value the flag already holds is a no-op.
func (p *Part) SetShielded(shielded bool) bool {
	if p.shielded == shielded {
		return false
	}
	p.shielded = shielded
	return true
}

// Alive reports whether the part still exists on its vessel.
func (p *Part) Alive() bool {
	return p != nil && !p.destroyed
}

// Decoupled reports whether the part's decoupler has fired.
func (p *Part) Decoupled() bool {
	return p.decoupled
}
