package layout

import (
	"github.com/matzehuels/kintree/pkg/family"
)

// Node is one couple (or single member) and the children of that couple.
type Node struct {
	Member   family.Member
	Spouse   *family.Member
	Children []*Node
}

// UnitKey returns the family unit key of the couple.
func (n *Node) UnitKey() string {
	if n.Spouse == nil {
		return n.Member.ID
	}
	return family.UnitKey(n.Member.ID, n.Spouse.ID)
}

// IDs returns the member id followed by the spouse id, if any.
func (n *Node) IDs() []string {
	if n.Spouse == nil {
		return []string{n.Member.ID}
	}
	return []string{n.Member.ID, n.Spouse.ID}
}

// Forest is the result of [Build].
type Forest struct {
	// Roots holds one tree per root that produced any output, in root order.
	Roots []*Node
	// Unplaced lists ids of members no root reaches, in collection order.
	Unplaced []string
}

// Build lays out members as nested couples, starting at each of
// family.Roots in order. Every member appears at most once in the result.
func Build(members []family.Member) Forest {
	w := walker{
		members: members,
		index:   family.NewIndex(members),
		visited: make(map[string]bool, len(members)),
	}

	var f Forest
	for _, r := range family.Roots(members) {
		if n := w.walk(r.ID); n != nil {
			f.Roots = append(f.Roots, n)
		}
	}
	for _, m := range members {
		if !w.visited[m.ID] {
			f.Unplaced = append(f.Unplaced, m.ID)
			w.visited[m.ID] = true
		}
	}
	return f
}

type walker struct {
	members []family.Member
	index   family.Index
	visited map[string]bool
}

// walk returns nil when id has already been placed.
func (w *walker) walk(id string) *Node {
	if w.visited[id] {
		return nil
	}
	m, ok := w.index[id]
	if !ok {
		return nil
	}
	w.visited[id] = true
	n := &Node{Member: m}

	if s, ok := w.index[m.SpouseID]; ok && !w.visited[s.ID] {
		w.visited[s.ID] = true
		n.Spouse = &s
	}

	for _, c := range w.members {
		if !n.isParentOf(c) {
			continue
		}
		if child := w.walk(c.ID); child != nil {
			n.Children = append(n.Children, child)
		}
	}
	return n
}

func (n *Node) isParentOf(c family.Member) bool {
	for _, id := range n.IDs() {
		if c.FatherID == id || c.MotherID == id {
			return true
		}
	}
	return false
}

// Walk calls fn for every node depth first, in layout order. Roots have
// depth 0.
func (f Forest) Walk(fn func(n *Node, depth int)) {
	var visit func(n *Node, depth int)
	visit = func(n *Node, depth int) {
		fn(n, depth)
		for _, c := range n.Children {
			visit(c, depth+1)
		}
	}
	for _, r := range f.Roots {
		visit(r, 0)
	}
}

// Placed returns the ids of every member in the forest, in layout order.
func (f Forest) Placed() []string {
	var ids []string
	f.Walk(func(n *Node, _ int) { ids = append(ids, n.IDs()...) })
	return ids
}

// Depth returns the number of generations in the deepest tree.
func (f Forest) Depth() int {
	depth := 0
	f.Walk(func(_ *Node, d int) { depth = max(depth, d+1) })
	return depth
}
