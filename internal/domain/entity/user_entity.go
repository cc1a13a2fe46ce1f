package entity

import "strings"

// User is the aggregate root for user domain
// Passwords are stored as bcrypt hashes in Password field and never leave the
// service layer.
type User struct {
	ID       int64
	Email    string
	Name     string
	Phone    string
	Address  string
	Password string
}

// NormalizeEmail trims surrounding whitespace and lower-cases the address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
