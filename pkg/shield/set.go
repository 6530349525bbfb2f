package shield

import "github.com/kwcargobay/fairing-go/pkg/vessel"

// Set is an insertion-ordered set of parts keyed by part ID.
type Set struct {
	parts []*vessel.Part
	index map[string]struct{}
}

// NewSet creates an empty set.
func NewSet() *Set {
	return &Set{index: make(map[string]struct{})}
}

// Add inserts p and reports whether it was not already present.
func (s *Set) Add(p *vessel.Part) bool {
	if _, ok := s.index[p.ID()]; ok {
		return false
	}
	s.index[p.ID()] = struct{}{}
	s.parts = append(s.parts, p)
	return true
}

// Contains reports whether p is in the set.
func (s *Set) Contains(p *vessel.Part) bool {
	if p == nil {
		return false
	}
	_, ok := s.index[p.ID()]
	return ok
}

// Len returns the number of parts in the set.
func (s *Set) Len() int {
	return len(s.parts)
}

// Parts returns the members in insertion order.
func (s *Set) Parts() []*vessel.Part {
	result := make([]*vessel.Part, len(s.parts))
	copy(result, s.parts)
	return result
}

// IDs returns the member IDs in insertion order.
func (s *Set) IDs() []string {
	ids := make([]string, len(s.parts))
	for i, p := range s.parts {
		ids[i] = p.ID()
	}
	return ids
}

// ExemptSet holds part names that are never shielded.
type ExemptSet struct {
	names map[string]struct{}
}

// NewExemptSet creates an exemption set from part names. Empty names are
// ignored.
func NewExemptSet(names ...string) ExemptSet {
	s := ExemptSet{names: make(map[string]struct{}, len(names))}
	for _, n := range names {
		if n != "" {
			s.names[n] = struct{}{}
		}
	}
	return s
}

// Contains reports whether the part name is exempt.
func (s ExemptSet) Contains(name string) bool {
	_, ok := s.names[name]
	return ok
}

// Len returns the number of exempt names.
func (s ExemptSet) Len() int {
	return len(s.names)
}
