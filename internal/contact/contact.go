package contact

import "regexp"

// Type of a contact string
const (
	TypeEmail = "email"
	TypePhone = "phone"
)

var (
	emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phoneRe = regexp.MustCompile(`^\+?[\d\s\-\(\)]{10,}$`)
)

// Valid reports whether the string is a usable email address or phone number.
func Valid(contact string) bool {
	return emailRe.MatchString(contact) || phoneRe.MatchString(contact)
}

// Classify returns TypeEmail when the string looks like an email address,
// TypePhone otherwise. Call Valid first; anything non-email falls through
// to phone.
func Classify(contact string) string {
	if emailRe.MatchString(contact) {
		return TypeEmail
	}
	return TypePhone
}
