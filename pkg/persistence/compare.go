package persistence

import "sort"

// Shielding states reported by PartChange.
const (
	PartAbsent     = "absent"
	PartShielded   = "shielded"
	PartUnshielded = "unshielded"
)

// PartChange describes a part whose shielding differs between two reports.
type PartChange struct {
	ID     string
	Name   string
	Before string
	After  string
}

// CompareShielding lists the parts whose shielding changed from prev to
// cur, sorted by part ID. A part missing from one report is PartAbsent
// there. A nil report counts as empty.
func CompareShielding(prev, cur *RunReport) []PartChange {
	before := shieldingByID(prev)
	after := shieldingByID(cur)

	var changes []PartChange
	for id, a := range after {
		b, ok := before[id]
		if !ok {
			b = partState{state: PartAbsent}
		}
		if a.state != b.state {
			changes = append(changes, PartChange{ID: id, Name: a.name, Before: b.state, After: a.state})
		}
	}
	for id, b := range before {
		if _, ok := after[id]; !ok {
			changes = append(changes, PartChange{ID: id, Name: b.name, Before: b.state, After: PartAbsent})
		}
	}

	sort.Slice(changes, func(i, j int) bool { return changes[i].ID < changes[j].ID })
	return changes
}

type partState struct {
	name  string
	state string
}

func shieldingByID(r *RunReport) map[string]partState {
	m := make(map[string]partState)
	if r == nil {
		return m
	}
	for _, p := range r.Parts {
		state := PartUnshielded
		if p.Shielded {
			state = PartShielded
		}
		m[p.ID] = partState{name: p.Name, state: state}
	}
	return m
}
