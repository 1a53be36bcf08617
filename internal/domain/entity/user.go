package entity

import (
	"time"
)

// User is the credential record and the anchor of the following graph.
// Username is the primary handle and is immutable after registration.
// PasswordHash is empty for accounts created through federated login;
// GoogleID is the federated-identity marker.
type User struct {
	Username     string
	Email        string
	PasswordHash string
	GoogleID     string
	Following    []string
	CreatedAt    time.Time
}

// Follows reports whether the user already follows target.
func (u *User) Follows(target string) bool {
	for _, f := range u.Following {
		if f == target {
			return true
		}
	}
	return false
}
