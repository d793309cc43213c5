package domain

import "strings"

// Contact is a single address-book entry. The pair (Surname, FirstName) is
// the key and must be unique within one owner's directory.
type Contact struct {
	Surname   string `json:"surname"`
	FirstName string `json:"first_name"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
	Email     string `json:"email"`
}

// ContactKey identifies a contact within a directory.
type ContactKey struct {
	Surname   string `json:"surname"`
	FirstName string `json:"first_name"`
}

// Key returns the contact's identifying key.
func (c Contact) Key() ContactKey {
	return ContactKey{Surname: c.Surname, FirstName: c.FirstName}
}

// Matches reports whether term is a case-insensitive substring of any field.
// The empty term matches every contact.
func (c Contact) Matches(term string) bool {
	t := strings.ToLower(term)
	return strings.Contains(strings.ToLower(c.Surname), t) ||
		strings.Contains(strings.ToLower(c.FirstName), t) ||
		strings.Contains(strings.ToLower(c.Phone), t) ||
		strings.Contains(strings.ToLower(c.Address), t) ||
		strings.Contains(strings.ToLower(c.Email), t)
}
