// Package model defines the data structures used throughout the application.
package model

import "time"

// User represents a registered user account.
//
// Identity is email/password. The email is unique among registered users and
// is normalized (trimmed, lowercased) before it reaches this struct. The
// password is stored only as a bcrypt hash — PasswordHash is excluded from
// JSON (`json:"-"`) so no handler can leak it by accident.
//
// ID is an internal xid string, consistent with ProjectKit IDs.
type User struct {
	ID           string    `json:"id"        db:"id"`
	Email        string    `json:"email"     db:"email"`
	PasswordHash string    `json:"-"         db:"password_hash"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time `json:"updatedAt" db:"updated_at"`
}
