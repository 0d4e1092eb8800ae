package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/wishlist-santa/backend/internal/models"
	"github.com/wishlist-santa/backend/internal/repository"
)

type reservationRepository struct {
	db *sql.DB
}

// NewReservationRepository creates a new reservation repository
func NewReservationRepository(db *sql.DB) repository.ReservationRepository {
	return &reservationRepository{db: db}
}

func (r *reservationRepository) Create(ctx context.Context, reservation *models.Reservation) (*models.Reservation, error) {
	// The UNIQUE constraint on wish_id decides concurrent reservation races:
	// exactly one insert commits, the rest fail here with ErrDuplicate.
	query := `
		INSERT INTO reservations (wish_id, reserved_by, reserved_at)
		VALUES ($1, $2, $3)
		RETURNING id, reserved_at`

	reservation.ReservedAt = time.Now()

	err := r.db.QueryRowContext(ctx, query,
		reservation.WishID,
		reservation.ReservedBy,
		reservation.ReservedAt,
	).Scan(&reservation.ID, &reservation.ReservedAt)

	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("wish %d already reserved: %w", reservation.WishID, repository.ErrDuplicate)
		}
		return nil, fmt.Errorf("failed to create reservation: %w", err)
	}

	return reservation, nil
}

func (r *reservationRepository) GetByWishID(ctx context.Context, wishID int64) (*models.Reservation, error) {
	query := `
		SELECT id, wish_id, reserved_by, reserved_at
		FROM reservations
		WHERE wish_id = $1`

	reservation := &models.Reservation{}
	err := r.db.QueryRowContext(ctx, query, wishID).Scan(
		&reservation.ID,
		&reservation.WishID,
		&reservation.ReservedBy,
		&reservation.ReservedAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get reservation by wish ID: %w", err)
	}

	return reservation, nil
}

func (r *reservationRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM reservations WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete reservation: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("reservation with ID %d not found", id)
	}

	return nil
}

func (r *reservationRepository) ListByUser(ctx context.Context, userID int64) ([]*models.ReservationDetail, error) {
	query := `
		SELECT res.id, res.wish_id, res.reserved_by, res.reserved_at,
		       w.id, w.event_id, w.description, w.link, w.created_at,
		       e.id, e.user_id, e.title, e.date, e.description, e.created_at,
		       u.id, u.username, u.name, u.age, u.about, u.created_at
		FROM reservations res
		JOIN wishes w ON w.id = res.wish_id
		JOIN events e ON e.id = w.event_id
		JOIN users u ON u.id = e.user_id
		WHERE res.reserved_by = $1
		ORDER BY res.reserved_at DESC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query reservations by user: %w", err)
	}
	defer rows.Close()

	var details []*models.ReservationDetail
	for rows.Next() {
		d := &models.ReservationDetail{}
		if err := rows.Scan(
			&d.Reservation.ID,
			&d.Reservation.WishID,
			&d.Reservation.ReservedBy,
			&d.Reservation.ReservedAt,
			&d.Wish.ID,
			&d.Wish.EventID,
			&d.Wish.Description,
			&d.Wish.Link,
			&d.Wish.CreatedAt,
			&d.Event.ID,
			&d.Event.UserID,
			&d.Event.Title,
			&d.Event.Date,
			&d.Event.Description,
			&d.Event.CreatedAt,
			&d.EventOwner.ID,
			&d.EventOwner.Username,
			&d.EventOwner.Name,
			&d.EventOwner.Age,
			&d.EventOwner.About,
			&d.EventOwner.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan reservation detail: %w", err)
		}
		d.Wish.Reserved = true
		d.Event.Wishes = []models.Wish{}
		details = append(details, d)
	}

	return details, rows.Err()
}
