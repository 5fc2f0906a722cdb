package family

import (
	"slices"
	"strings"

	"github.com/google/uuid"

	"github.com/matzehuels/kintree/pkg/errors"
)

// Default values for members created by the quick-connect actions.
const (
	NewFirstName = "New"
)

// Tree is the in-memory member list and the single source of truth for the
// editor. A Tree is not safe for concurrent use.
type Tree struct {
	members []Member
	newID   func() string
}

// TreeOption configures a [Tree].
type TreeOption func(*Tree)

// WithIDFunc replaces the uuid generator used for new members.
func WithIDFunc(fn func() string) TreeOption {
	return func(t *Tree) { t.newID = fn }
}

// NewTree creates a tree holding a copy of data's members.
func NewTree(data TreeData, opts ...TreeOption) *Tree {
	t := &Tree{
		members: slices.Clone(data.Members),
		newID:   uuid.NewString,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Clone returns an independent copy of t that shares its id generator.
func (t *Tree) Clone() *Tree {
	return &Tree{members: slices.Clone(t.members), newID: t.newID}
}

// Data returns a copy of the tree suitable for persisting.
func (t *Tree) Data() TreeData {
	return TreeData{Members: t.Members()}
}

// Members returns a copy of the member list in order.
func (t *Tree) Members() []Member {
	if t.members == nil {
		return []Member{}
	}
	return slices.Clone(t.members)
}

// Len returns the number of members.
func (t *Tree) Len() int { return len(t.members) }

// Get returns the member with the given id.
func (t *Tree) Get(id string) (Member, bool) {
	if i := t.index(id); i >= 0 {
		return t.members[i], true
	}
	return Member{}, false
}

// Find resolves ref to a member: an exact id, or else a prefix matching
// exactly one id.
func (t *Tree) Find(ref string) (Member, error) {
	if m, ok := t.Get(ref); ok {
		return m, nil
	}
	var matches []Member
	if ref != "" {
		for _, m := range t.members {
			if strings.HasPrefix(m.ID, ref) {
				matches = append(matches, m)
			}
		}
	}
	switch len(matches) {
	case 0:
		return Member{}, errors.New(errors.ErrCodeMemberNotFound, "member %q not found", ref)
	case 1:
		return matches[0], nil
	}
	return Member{}, errors.New(errors.ErrCodeInvalidInput, "id prefix %q matches %d members", ref, len(matches))
}

func (t *Tree) index(id string) int {
	if id == "" {
		return -1
	}
	return slices.IndexFunc(t.members, func(m Member) bool { return m.ID == id })
}

func (t *Tree) mustGet(id string) (int, error) {
	i := t.index(id)
	if i < 0 {
		return -1, errors.New(errors.ErrCodeMemberNotFound, "member %q not found", id)
	}
	return i, nil
}

// AddRoot appends a new unrelated member.
func (t *Tree) AddRoot() Member {
	m := Member{ID: t.newID(), FirstName: NewFirstName, Gender: Male}
	t.members = append(t.members, m)
	return m
}

// AddChild appends a new child of parentID. A female parent fills the mother
// slot, any other parent the father slot. The parent's spouse fills the
// remaining slot when their gender fits it.
func (t *Tree) AddChild(parentID string) (Member, error) {
	i, err := t.mustGet(parentID)
	if err != nil {
		return Member{}, err
	}
	parent := t.members[i]

	child := Member{ID: t.newID(), FirstName: NewFirstName, LastName: parent.LastName, Gender: Male}
	if parent.Gender == Female {
		child.MotherID = parent.ID
	} else {
		child.FatherID = parent.ID
	}
	if spouse, ok := t.Get(parent.SpouseID); ok {
		switch {
		case child.FatherID == "" && spouse.Gender == Male:
			child.FatherID = spouse.ID
		case child.MotherID == "" && spouse.Gender == Female:
			child.MotherID = spouse.ID
		}
	}

	t.members = append(t.members, child)
	return child, nil
}

// AddFather creates a father for childID.
func (t *Tree) AddFather(childID string) (Member, error) {
	return t.addParent(childID, Male)
}

// AddMother creates a mother for childID.
func (t *Tree) AddMother(childID string) (Member, error) {
	return t.addParent(childID, Female)
}

func (t *Tree) addParent(childID string, g Gender) (Member, error) {
	ci, err := t.mustGet(childID)
	if err != nil {
		return Member{}, err
	}
	child := t.members[ci]

	slot, other := &child.FatherID, child.MotherID
	if g == Female {
		slot, other = &child.MotherID, child.FatherID
	}
	if _, exists := t.Get(*slot); exists {
		return Member{}, errors.New(errors.ErrCodeInvalidRelation, "%s already has a %s", child.FullName(), parentWord(g))
	}

	parent := Member{ID: t.newID(), FirstName: NewFirstName, LastName: child.LastName, Gender: g}
	if oi := t.index(other); oi >= 0 {
		if _, married := t.Get(t.members[oi].SpouseID); !married {
			parent.SpouseID = t.members[oi].ID
			t.members[oi].SpouseID = parent.ID
		}
	}

	*slot = parent.ID
	t.members[ci] = child
	t.members = append(t.members, parent)
	return parent, nil
}

func parentWord(g Gender) string {
	if g == Female {
		return "mother"
	}
	return "father"
}

// Save replaces the stored member with the same id.
//
// The member is validated first; on error nothing changes. A father or
// mother that exists must be male or female respectively. Dangling ids are
// stored as given.
//
// Spouse links are kept symmetric: the referenced spouse gets a pointer back,
// and any other member whose spouse pointer would become one-sided (the
// previous partner of either side) is cleared.
func (t *Tree) Save(m Member) error {
	i, err := t.mustGet(m.ID)
	if err != nil {
		return err
	}
	if err := m.Validate(); err != nil {
		return err
	}
	if f, ok := t.Get(m.FatherID); ok && f.Gender != Male {
		return errors.New(errors.ErrCodeInvalidRelation, "father %s is not male", f.FullName())
	}
	if mo, ok := t.Get(m.MotherID); ok && mo.Gender != Female {
		return errors.New(errors.ErrCodeInvalidRelation, "mother %s is not female", mo.FullName())
	}

	t.members[i] = m

	si := t.index(m.SpouseID)
	if si >= 0 {
		if prev := t.members[si].SpouseID; prev != "" && prev != m.ID {
			if pi := t.index(prev); pi >= 0 && t.members[pi].SpouseID == m.SpouseID {
				t.members[pi].SpouseID = ""
			}
		}
		t.members[si].SpouseID = m.ID
	}
	for j := range t.members {
		if t.members[j].SpouseID == m.ID && j != si {
			t.members[j].SpouseID = ""
		}
	}
	return nil
}

// Delete removes the member and clears every father, mother and spouse
// pointer that referenced it.
func (t *Tree) Delete(id string) error {
	i, err := t.mustGet(id)
	if err != nil {
		return err
	}
	t.members = slices.Delete(t.members, i, i+1)
	for j := range t.members {
		m := &t.members[j]
		if m.FatherID == id {
			m.FatherID = ""
		}
		if m.MotherID == id {
			m.MotherID = ""
		}
		if m.SpouseID == id {
			m.SpouseID = ""
		}
	}
	return nil
}

// PotentialSpouses lists every member other than id.
func (t *Tree) PotentialSpouses(id string) []Member {
	return t.filter(func(m Member) bool { return m.ID != id })
}

// PotentialFathers lists male members other than id.
func (t *Tree) PotentialFathers(id string) []Member {
	return t.filter(func(m Member) bool { return m.ID != id && m.Gender == Male })
}

// PotentialMothers lists female members other than id.
func (t *Tree) PotentialMothers(id string) []Member {
	return t.filter(func(m Member) bool { return m.ID != id && m.Gender == Female })
}

func (t *Tree) filter(keep func(Member) bool) []Member {
	var out []Member
	for _, m := range t.members {
		if keep(m) {
			out = append(out, m)
		}
	}
	return out
}
