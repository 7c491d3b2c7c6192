// Package auth does the client-side credential match and keeps the session
// alive across restarts. It is deliberately not a security boundary: users
// carry plaintext credential fields and the check is an exact field match
// against the seeded accounts.
package auth

import (
	"dentalcenter.org/internal/clinic"
)

// Authenticate finds the user whose email and password both match. The
// returned user is a value copy suitable for use as a session.
func Authenticate(users []clinic.User, email, password string) (clinic.User, error) {
	for _, u := range users {
		if u.Email == email && u.Password == password {
			return u, nil
		}
	}
	return clinic.User{}, ErrNoMatchingUser
}
