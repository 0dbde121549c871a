package domain

import "time"

// User represents a registered account. Accounts are created at registration
// and never mutated or deleted afterwards.
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}
