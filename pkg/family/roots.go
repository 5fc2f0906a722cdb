package family

// Index maps member ids to members for constant-time lookups.
type Index map[string]Member

// NewIndex builds an index over members. On duplicate ids the first
// occurrence wins.
func NewIndex(members []Member) Index {
	idx := make(Index, len(members))
	for _, m := range members {
		if _, dup := idx[m.ID]; !dup {
			idx[m.ID] = m
		}
	}
	return idx
}

// Has reports whether id resolves to a member. The empty id never resolves.
func (idx Index) Has(id string) bool {
	if id == "" {
		return false
	}
	_, ok := idx[id]
	return ok
}

// HasParent reports whether m's father or mother resolves to a member.
// Dangling pointers do not count.
func (idx Index) HasParent(m Member) bool {
	return idx.Has(m.FatherID) || idx.Has(m.MotherID)
}

// Roots returns the traversal entry points: members without a resolvable
// parent, in collection order. The spouse of an accepted root is marked as
// reached and never becomes a root of its own, so each couple starts at most
// one tree.
func Roots(members []Member) []Member {
	idx := NewIndex(members)
	reached := make(map[string]bool, len(members))

	var roots []Member
	for _, m := range members {
		if idx.HasParent(m) || reached[m.ID] {
			continue
		}
		roots = append(roots, m)
		reached[m.ID] = true
		if m.SpouseID != "" {
			reached[m.SpouseID] = true
		}
	}
	return roots
}
