package family

import (
	"time"

	"github.com/matzehuels/kintree/pkg/errors"
)

// Gender is one of a small fixed set of values.
type Gender string

const (
	Male   Gender = "male"
	Female Gender = "female"
	Other  Gender = "other"
)

// Genders lists every valid [Gender] in display order.
var Genders = []Gender{Male, Female, Other}

// ParseGender converts s into a Gender, rejecting unknown values.
func ParseGender(s string) (Gender, error) {
	g := Gender(s)
	if !g.Valid() {
		return "", errors.New(errors.ErrCodeInvalidGender, "unknown gender %q (want male, female or other)", s)
	}
	return g, nil
}

// Valid reports whether g is one of [Genders].
func (g Gender) Valid() bool {
	switch g {
	case Male, Female, Other:
		return true
	}
	return false
}

// DateLayout is the layout used for birth and death dates.
const DateLayout = "2006-01-02"

// Member is a single person in the tree.
type Member struct {
	ID        string `json:"id" yaml:"id"`
	FirstName string `json:"firstName" yaml:"firstName"`
	LastName  string `json:"lastName" yaml:"lastName"`
	Gender    Gender `json:"gender" yaml:"gender"`
	BirthDate string `json:"birthDate,omitempty" yaml:"birthDate,omitempty"`
	DeathDate string `json:"deathDate,omitempty" yaml:"deathDate,omitempty"`
	Bio       string `json:"bio,omitempty" yaml:"bio,omitempty"`
	Avatar    string `json:"avatar,omitempty" yaml:"avatar,omitempty"`
	FatherID  string `json:"fatherId,omitempty" yaml:"fatherId,omitempty"`
	MotherID  string `json:"motherId,omitempty" yaml:"motherId,omitempty"`
	SpouseID  string `json:"spouseId,omitempty" yaml:"spouseId,omitempty"`
}

// TreeData is the persisted unit: every member, in order.
type TreeData struct {
	Members []Member `json:"members" yaml:"members"`
}

// DisplayName returns the member's first name, or "Unnamed" when empty.
func (m Member) DisplayName() string {
	if m.FirstName == "" {
		return "Unnamed"
	}
	return m.FirstName
}

// FullName joins first and last name.
func (m Member) FullName() string {
	if m.LastName == "" {
		return m.DisplayName()
	}
	return m.DisplayName() + " " + m.LastName
}

// ShortIDLen is the length ids are shortened to for display.
const ShortIDLen = 8

// ShortID returns a display prefix of the id. Ids of up to 12 characters
// are returned whole.
func (m Member) ShortID() string {
	if len(m.ID) <= 12 {
		return m.ID
	}
	return m.ID[:ShortIDLen]
}

// Lifespan formats the birth and death years, e.g. "1901 – 1978" or "b. 1950".
func (m Member) Lifespan() string {
	birth, death := year(m.BirthDate), year(m.DeathDate)
	switch {
	case birth != "" && death != "":
		return birth + " – " + death
	case birth != "":
		return "b. " + birth
	case death != "":
		return "d. " + death
	}
	return ""
}

func year(date string) string {
	if len(date) >= 4 {
		return date[:4]
	}
	return date
}

// Validate checks the member's own fields. Relationship checks that need the
// rest of the tree happen in [Tree.Save].
func (m Member) Validate() error {
	if m.ID == "" {
		return errors.New(errors.ErrCodeInvalidInput, "member id cannot be empty")
	}
	if err := errors.ValidateName("first name", m.FirstName); err != nil {
		return err
	}
	if err := errors.ValidateName("last name", m.LastName); err != nil {
		return err
	}
	if !m.Gender.Valid() {
		return errors.New(errors.ErrCodeInvalidGender, "unknown gender %q", m.Gender)
	}
	birth, err := parseDate("birth date", m.BirthDate)
	if err != nil {
		return err
	}
	death, err := parseDate("death date", m.DeathDate)
	if err != nil {
		return err
	}
	if !birth.IsZero() && !death.IsZero() && death.Before(birth) {
		return errors.New(errors.ErrCodeInvalidDate, "death date %s is before birth date %s", m.DeathDate, m.BirthDate)
	}
	for _, rel := range m.relations() {
		if rel.id == m.ID {
			return errors.New(errors.ErrCodeInvalidRelation, "member cannot be their own %s", rel.name)
		}
	}
	return nil
}

func parseDate(field, s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, errors.Wrap(errors.ErrCodeInvalidDate, err, "%s %q is not YYYY-MM-DD", field, s)
	}
	return t, nil
}

type relation struct {
	name string
	id   string
}

func (m Member) relations() []relation {
	return []relation{{"father", m.FatherID}, {"mother", m.MotherID}, {"spouse", m.SpouseID}}
}
