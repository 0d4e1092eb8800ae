package models

import "time"

// Wish is a desired item listed under an event. Reserved reports whether a
// reservation exists, but the reserver's identity is deliberately absent:
// owners must never learn who claimed their wish. Reservation detail is only
// exposed through the my-reservations view.
type Wish struct {
	ID          int64     `json:"id" db:"id"`
	EventID     int64     `json:"event_id" db:"event_id"`
	Description string    `json:"description" db:"description"`
	Link        *string   `json:"link" db:"link"`
	Reserved    bool      `json:"reserved"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}
