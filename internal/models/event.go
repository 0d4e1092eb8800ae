package models

import "time"

// Event is a dated occasion (birthday, wedding, ...) owned by exactly one
// user. Wishes hang off events; only the owner may manage either.
type Event struct {
	ID          int64     `json:"id" db:"id"`
	UserID      int64     `json:"user_id" db:"user_id"`
	Title       string    `json:"title" db:"title"`
	Date        Date      `json:"date" db:"date"`
	Description *string   `json:"description" db:"description"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	Wishes      []Wish    `json:"wishes"`
}
