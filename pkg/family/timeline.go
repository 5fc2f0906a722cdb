package family

import (
	"cmp"
	"slices"
)

// Timeline returns the members ordered by birth date. Members without a
// birth date come last; ties keep collection order.
func Timeline(members []Member) []Member {
	out := slices.Clone(members)
	slices.SortStableFunc(out, func(a, b Member) int {
		switch {
		case a.BirthDate == "" && b.BirthDate == "":
			return 0
		case a.BirthDate == "":
			return 1
		case b.BirthDate == "":
			return -1
		}
		return cmp.Compare(a.BirthDate, b.BirthDate)
	})
	return out
}
