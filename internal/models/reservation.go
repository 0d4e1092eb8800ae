package models

import "time"

// Reservation is an exclusive claim by one user on one wish. The UNIQUE
// constraint on wish_id is the sole mechanism that keeps claims exclusive
// under concurrent attempts.
type Reservation struct {
	ID         int64     `json:"id" db:"id"`
	WishID     int64     `json:"wish_id" db:"wish_id"`
	ReservedBy int64     `json:"reserved_by" db:"reserved_by"`
	ReservedAt time.Time `json:"reserved_at" db:"reserved_at"`
}

// ReservationDetail is one row of the my-reservations view: the reservation
// joined to its wish, the wish's event and the event's owner. This is the one
// place a non-owner sees full reservation detail, and only for their own
// claims.
type ReservationDetail struct {
	Reservation Reservation `json:"reservation"`
	Wish        Wish        `json:"wish"`
	Event       Event       `json:"event"`
	EventOwner  User        `json:"event_owner"`
}
