// Package family holds the family-tree data model and the editor operations
// that mutate it.
//
// A family tree is a flat, ordered list of [Member] records. Relationships are
// plain id pointers (father, mother, spouse) into the same list; there is no
// separate edge table. The list order is significant: it decides which member
// wins when two candidates tie during [Roots] and the sibling order produced by
// the layout.
//
// # Editing
//
// [Tree] wraps the member list and implements the editor actions:
//
//	t := family.NewTree(family.Seed())
//	child, _ := t.AddChild(parentID)
//	child.FirstName = "Ada"
//	if err := t.Save(child); err != nil {
//	    // validation failed; nothing was changed
//	}
//	_ = t.Delete(oldID) // clears every pointer to oldID
//
// Dangling references (ids that no longer exist) are tolerated everywhere and
// behave as "no relationship".
//
// # Persistence
//
// [TreeData] is the unit that gets persisted. It is serialized as a single
// JSON blob; see pkg/storage.
package family
