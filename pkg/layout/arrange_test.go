package layout

import (
	"testing"

	"github.com/matzehuels/kintree/pkg/family"
	"github.com/matzehuels/kintree/pkg/geom"
)

func overlaps(a, b geom.Rect) bool {
	return a.Left() < b.Right() && b.Left() < a.Right() && a.Top() < b.Bottom() && b.Top() < a.Bottom()
}

func TestArrangeEmpty(t *testing.T) {
	m := DefaultMetrics()
	f := Arrange(Build(nil), m)
	if f.Width != 2*m.Margin || f.Height != 2*m.Margin {
		t.Errorf("empty frame = %vx%v", f.Width, f.Height)
	}
	if len(f.Cards) != 0 || len(f.Unions) != 0 {
		t.Error("empty frame should have no anchors")
	}
}

func TestArrangeCouple(t *testing.T) {
	m := DefaultMetrics()
	f := Arrange(Build([]family.Member{
		{ID: "A", SpouseID: "B"},
		{ID: "B", SpouseID: "A"},
		{ID: "C", FatherID: "A", MotherID: "B"},
	}), m)

	a, b, c := f.Cards["A"], f.Cards["B"], f.Cards["C"]
	union, ok := f.Unions["A+B"]
	if !ok {
		t.Fatal("missing union marker for A+B")
	}

	if a.Top() != b.Top() {
		t.Error("partners should share a row")
	}
	if union.Left() < a.Right() || union.Right() > b.Left() {
		t.Errorf("union %v not between partners %v and %v", union, a, b)
	}
	if union.CenterY() != a.CenterY() {
		t.Error("union marker should be vertically centred on the cards")
	}
	if c.Top() != a.Bottom()+m.LevelGap {
		t.Errorf("child top = %v, want %v", c.Top(), a.Bottom()+m.LevelGap)
	}
	if c.CenterX() != union.CenterX() {
		t.Errorf("single child not centred under the couple: %v vs %v", c.CenterX(), union.CenterX())
	}
}

func TestArrangeNoOverlap(t *testing.T) {
	members := append(family.Seed().Members,
		family.Member{ID: "x"},
		family.Member{ID: "x1", FatherID: "x"},
		family.Member{ID: "x2", FatherID: "x"},
		family.Member{ID: "x3", FatherID: "x", SpouseID: "y"},
		family.Member{ID: "y", SpouseID: "x3"},
	)
	f := Arrange(Build(members), DefaultMetrics())

	if len(f.Cards) != len(members) {
		t.Fatalf("placed %d cards, want %d", len(f.Cards), len(members))
	}
	var ids []string
	for id := range f.Cards {
		ids = append(ids, id)
	}
	for i := range ids {
		for j := i + 1; j < len(ids); j++ {
			if overlaps(f.Cards[ids[i]], f.Cards[ids[j]]) {
				t.Errorf("cards %s %v and %s %v overlap", ids[i], f.Cards[ids[i]], ids[j], f.Cards[ids[j]])
			}
		}
	}
	for id, r := range f.Cards {
		if r.Right() > f.Width || r.Bottom() > f.Height || r.Left() < 0 || r.Top() < 0 {
			t.Errorf("card %s %v outside frame %vx%v", id, r, f.Width, f.Height)
		}
	}
}

func TestFrameAnchor(t *testing.T) {
	f := Arrange(Build(family.Seed().Members), DefaultMetrics())

	if _, ok := f.Anchor(MemberAnchor("seed-arthur")); !ok {
		t.Error("member anchor not resolved")
	}
	if _, ok := f.Anchor(UnionAnchor(family.UnitKey("seed-arthur", "seed-edith"))); !ok {
		t.Error("union anchor not resolved")
	}
	if _, ok := f.Anchor(MemberAnchor("nobody")); ok {
		t.Error("unknown member resolved")
	}
	if _, ok := f.Anchor("seed-arthur"); ok {
		t.Error("anchor without prefix resolved")
	}
}
