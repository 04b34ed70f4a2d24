package users

import "time"

// User is the identity subject for authentication. PasswordHash is a salted
// bcrypt hash; the plaintext password is never persisted.
type User struct {
	ID           string
	Username     string
	PasswordHash string
	CreatedAt    time.Time
}
