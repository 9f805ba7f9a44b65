package model

import "time"

// UserID uniquely identifies a registered user
type UserID int64

// User is a registered account
type User struct {
	ID           UserID
	Username     string // always lower-case
	Email        string // always lower-case
	PasswordHash string // bcrypt hash, never the plaintext
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
