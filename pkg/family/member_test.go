package family

import "testing"

func TestParseGender(t *testing.T) {
	for _, g := range Genders {
		got, err := ParseGender(string(g))
		if err != nil || got != g {
			t.Errorf("ParseGender(%q) = %q, %v", g, got, err)
		}
	}
	if _, err := ParseGender("MALE"); err == nil {
		t.Error("ParseGender should be case sensitive")
	}
}

func TestMemberNames(t *testing.T) {
	tests := []struct {
		m        Member
		display  string
		full     string
		lifespan string
	}{
		{Member{}, "Unnamed", "Unnamed", ""},
		{Member{FirstName: "Ada", LastName: "Hale", BirthDate: "1815-12-10", DeathDate: "1852-11-27"}, "Ada", "Ada Hale", "1815 – 1852"},
		{Member{LastName: "Hale", BirthDate: "1950-01-01"}, "Unnamed", "Unnamed Hale", "b. 1950"},
		{Member{FirstName: "Old", DeathDate: "1900-01-01"}, "Old", "Old", "d. 1900"},
	}
	for _, tt := range tests {
		if got := tt.m.DisplayName(); got != tt.display {
			t.Errorf("DisplayName() = %q, want %q", got, tt.display)
		}
		if got := tt.m.FullName(); got != tt.full {
			t.Errorf("FullName() = %q, want %q", got, tt.full)
		}
		if got := tt.m.Lifespan(); got != tt.lifespan {
			t.Errorf("Lifespan() = %q, want %q", got, tt.lifespan)
		}
	}
}

func TestShortID(t *testing.T) {
	m := Member{ID: "3f2a9c1e-8b7d-4c6a-9e2f-1a2b3c4d5e6f"}
	if got := m.ShortID(); got != "3f2a9c1e" {
		t.Errorf("ShortID() = %q", got)
	}
	if got := (Member{ID: "seed-arthur"}).ShortID(); got != "seed-arthur" {
		t.Errorf("ShortID() = %q", got)
	}
}
