package domain

import "time"

// User represents a registered account. PasswordHash is a bcrypt hash and
// never leaves the service layer.
type User struct {
	ID           int64
	Name         string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
