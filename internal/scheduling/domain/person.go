package domain

// Person identifies a party to the schedule — a teacher or a student.
// Identity equality is by ID; DisplayName/Contact are descriptive only.
type Person struct {
	ID          string
	DisplayName string
	Contact     string
}

// NewPerson validates and constructs a Person.
func NewPerson(id, displayName, contact string) (Person, error) {
	if id == "" {
		return Person{}, ErrEmptyPersonID
	}
	return Person{ID: id, DisplayName: displayName, Contact: contact}, nil
}

// Equals compares two people by identity.
func (p Person) Equals(other Person) bool {
	return p.ID == other.ID
}
