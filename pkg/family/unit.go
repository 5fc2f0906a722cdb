package family

import "strings"

// UnitSeparator joins the two parent ids of a family unit key.
const UnitSeparator = "+"

// keyEscaper keeps keys unambiguous for ids that contain the separator.
var keyEscaper = strings.NewReplacer("%", "%25", UnitSeparator, "%2B")

// UnitKey returns the family unit key for a parent pair. The ids are sorted
// so the key does not depend on which parent is passed first. Empty ids are
// ignored; a single parent's key is its own id. A "%" or "+" inside an id is
// percent-encoded, so distinct parent sets never share a key.
func UnitKey(a, b string) string {
	switch {
	case a == "" && b == "":
		return ""
	case a == "" || a == b:
		return keyEscaper.Replace(b)
	case b == "":
		return keyEscaper.Replace(a)
	case b < a:
		a, b = b, a
	}
	return keyEscaper.Replace(a) + UnitSeparator + keyEscaper.Replace(b)
}

// Parents returns the ids of child's family unit: both parents, or a single
// parent together with that parent's recorded spouse when the spouse exists.
// Ids are sorted and dangling references are dropped; the result is nil when
// neither parent resolves.
func (idx Index) Parents(child Member) []string {
	father, mother := "", ""
	if idx.Has(child.FatherID) {
		father = child.FatherID
	}
	if idx.Has(child.MotherID) {
		mother = child.MotherID
	}
	switch {
	case father != "" && mother == "":
		mother = idx.spouseOf(father)
	case mother != "" && father == "":
		father = idx.spouseOf(mother)
	}
	switch {
	case father == "" && mother == "":
		return nil
	case father == "" || father == mother:
		return []string{mother}
	case mother == "":
		return []string{father}
	case mother < father:
		return []string{mother, father}
	}
	return []string{father, mother}
}

// ParentUnit returns the family unit key for child, or "" when neither
// parent resolves. It is the [UnitKey] of [Index.Parents].
func (idx Index) ParentUnit(child Member) string {
	switch p := idx.Parents(child); len(p) {
	case 0:
		return ""
	case 1:
		return UnitKey(p[0], "")
	default:
		return UnitKey(p[0], p[1])
	}
}

func (idx Index) spouseOf(id string) string {
	if s := idx[id].SpouseID; idx.Has(s) {
		return s
	}
	return ""
}
