package models

import "time"

// User represents a registered account. The password hash never leaves the
// backend; it is excluded from JSON serialization.
type User struct {
	ID           int64     `json:"id" db:"id"`
	Username     string    `json:"username" db:"username"`
	PasswordHash string    `json:"-" db:"password_hash"`
	Name         string    `json:"name" db:"name"`
	Age          *int      `json:"age" db:"age"`
	About        *string   `json:"about" db:"about"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

// UserSummary is a user row augmented with the number of events they own,
// used by the public user directory.
type UserSummary struct {
	User
	EventCount int64 `json:"event_count"`
}
