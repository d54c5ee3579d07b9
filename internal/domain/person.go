package domain

import "strings"

// Role identifies which person table a name belongs to. Authors, narrators,
// and translators share the same identity rule but live in separate tables.
type Role string

const (
	RoleAuthor     Role = "author"
	RoleNarrator   Role = "narrator"
	RoleTranslator Role = "translator"
)

// Person is an author, narrator, or translator. Identity is the
// (surname, forename) pair; Surname is nil for single-name persons
// such as "Homer".
type Person struct {
	ID       int64
	Surname  *string
	Forename string
}

// DisplayName returns "forename surname", or just the forename when the
// person has a single name.
func (p Person) DisplayName() string {
	if p.Surname == nil {
		return p.Forename
	}
	return p.Forename + " " + *p.Surname
}

// ReverseName returns "surname, forename", or just the forename when the
// person has a single name.
func (p Person) ReverseName() string {
	if p.Surname == nil {
		return p.Forename
	}
	return *p.Surname + ", " + p.Forename
}

// SortKey returns an uppercased "surname forename" key, or the uppercased
// forename when the person has a single name.
func (p Person) SortKey() string {
	if p.Surname == nil {
		return strings.ToUpper(p.Forename)
	}
	return strings.ToUpper(*p.Surname + " " + p.Forename)
}

// PersonName is an unresolved name as parsed from a CSV field.
type PersonName struct {
	Surname  *string
	Forename string
}
