package layout

import (
	"fmt"
	"math/rand/v2"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/kintree/pkg/family"
)

// outline renders a forest as "id[+spouse](children...)" for compact assertions.
func outline(f Forest) []string {
	var render func(n *Node) string
	render = func(n *Node) string {
		s := n.Member.ID
		if n.Spouse != nil {
			s += "+" + n.Spouse.ID
		}
		if len(n.Children) > 0 {
			s += "("
			for i, c := range n.Children {
				if i > 0 {
					s += " "
				}
				s += render(c)
			}
			s += ")"
		}
		return s
	}
	out := []string{}
	for _, r := range f.Roots {
		out = append(out, render(r))
	}
	return out
}

func TestBuild(t *testing.T) {
	tests := []struct {
		name     string
		members  []family.Member
		want     []string
		unplaced []string
	}{
		{
			name:    "empty",
			members: nil,
			want:    []string{},
		},
		{
			name: "parent and child",
			members: []family.Member{
				{ID: "A"},
				{ID: "B", FatherID: "A"},
			},
			want: []string{"A(B)"},
		},
		{
			name: "couple with child",
			members: []family.Member{
				{ID: "A", Gender: family.Male, SpouseID: "B"},
				{ID: "B", Gender: family.Female, SpouseID: "A"},
				{ID: "C", FatherID: "A", MotherID: "B"},
			},
			want: []string{"A+B(C)"},
		},
		{
			name: "children of either partner are united",
			members: []family.Member{
				{ID: "A", SpouseID: "B"},
				{ID: "B", SpouseID: "A"},
				{ID: "C", MotherID: "B"},
				{ID: "D", FatherID: "A"},
				{ID: "E", FatherID: "A", MotherID: "B"},
			},
			want: []string{"A+B(C D E)"},
		},
		{
			name: "sibling order follows collection order",
			members: []family.Member{
				{ID: "Z"},
				{ID: "b", FatherID: "Z"},
				{ID: "a", FatherID: "Z"},
				{ID: "c", FatherID: "Z"},
			},
			want: []string{"Z(b a c)"},
		},
		{
			name: "married-in spouse root renders nothing",
			members: []family.Member{
				{ID: "A"},
				{ID: "B", FatherID: "A", SpouseID: "C"},
				{ID: "C", SpouseID: "B"},
				{ID: "D", FatherID: "B", MotherID: "C"},
			},
			want: []string{"A(B+C(D))"},
		},
		{
			name: "remarriage chain places each member once",
			members: []family.Member{
				{ID: "A", SpouseID: "B"},
				{ID: "B", SpouseID: "C"},
				{ID: "C", SpouseID: "B"},
				{ID: "K", FatherID: "C"},
			},
			want: []string{"A+B", "C(K)"},
		},
		{
			name: "child reachable through two couples",
			members: []family.Member{
				{ID: "F1"},
				{ID: "M1"},
				{ID: "K", FatherID: "F1", MotherID: "M1"},
			},
			want: []string{"F1(K)", "M1"},
		},
		{
			name: "dangling parent treated as root",
			members: []family.Member{
				{ID: "A", FatherID: "gone", SpouseID: "gone-too"},
				{ID: "B", MotherID: "A"},
			},
			want: []string{"A(B)"},
		},
		{
			name: "cycle below a root terminates",
			members: []family.Member{
				{ID: "R"},
				{ID: "A", FatherID: "R", MotherID: "B"},
				{ID: "B", FatherID: "A"},
			},
			want: []string{"R(A(B))"},
		},
		{
			name: "unreachable cycle is unplaced",
			members: []family.Member{
				{ID: "R"},
				{ID: "A", FatherID: "B"},
				{ID: "B", FatherID: "A"},
			},
			want:     []string{"R"},
			unplaced: []string{"A", "B"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := Build(tt.members)
			if diff := cmp.Diff(tt.want, outline(f)); diff != "" {
				t.Errorf("Build() mismatch (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(tt.unplaced, f.Unplaced); diff != "" {
				t.Errorf("Unplaced mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestBuildVisitsEachMemberAtMostOnce(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	for round := 0; round < 200; round++ {
		n := 1 + rng.IntN(25)
		members := make([]family.Member, n)
		pick := func() string {
			if rng.IntN(3) == 0 {
				return ""
			}
			return fmt.Sprintf("m%d", rng.IntN(n+2)) // may dangle
		}
		for i := range members {
			members[i] = family.Member{
				ID:       fmt.Sprintf("m%d", i),
				FatherID: pick(),
				MotherID: pick(),
				SpouseID: pick(),
			}
		}

		f := Build(members)
		seen := map[string]int{}
		for _, id := range f.Placed() {
			seen[id]++
		}
		for _, id := range f.Unplaced {
			seen[id]++
		}
		for _, m := range members {
			if seen[m.ID] != 1 {
				t.Fatalf("round %d: member %s accounted %d times\nmembers: %+v", round, m.ID, seen[m.ID], members)
			}
		}
		if len(seen) != n {
			t.Fatalf("round %d: %d ids accounted for, want %d", round, len(seen), n)
		}
	}
}

func TestForestDepth(t *testing.T) {
	f := Build(family.Seed().Members)
	if got := f.Depth(); got != 3 {
		t.Errorf("Depth() = %d, want 3", got)
	}
	if got := (Forest{}).Depth(); got != 0 {
		t.Errorf("empty Depth() = %d", got)
	}
}
