package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/wishlist-santa/backend/internal/models"
	"github.com/wishlist-santa/backend/internal/repository"
)

type eventRepository struct {
	db *sql.DB
}

// NewEventRepository creates a new event repository
func NewEventRepository(db *sql.DB) repository.EventRepository {
	return &eventRepository{db: db}
}

func (r *eventRepository) Create(ctx context.Context, event *models.Event) (*models.Event, error) {
	query := `
		INSERT INTO events (user_id, title, date, description, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`

	event.CreatedAt = time.Now()

	err := r.db.QueryRowContext(ctx, query,
		event.UserID,
		event.Title,
		event.Date,
		event.Description,
		event.CreatedAt,
	).Scan(&event.ID, &event.CreatedAt)

	if err != nil {
		return nil, fmt.Errorf("failed to create event: %w", err)
	}

	return event, nil
}

func (r *eventRepository) GetByID(ctx context.Context, id int64) (*models.Event, error) {
	query := `
		SELECT id, user_id, title, date, description, created_at
		FROM events
		WHERE id = $1`

	event := &models.Event{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&event.ID,
		&event.UserID,
		&event.Title,
		&event.Date,
		&event.Description,
		&event.CreatedAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get event by ID: %w", err)
	}

	return event, nil
}

func (r *eventRepository) ListByOwner(ctx context.Context, ownerID int64) ([]*models.Event, error) {
	query := `
		SELECT id, user_id, title, date, description, created_at
		FROM events
		WHERE user_id = $1
		ORDER BY created_at ASC`

	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query events by owner: %w", err)
	}
	defer rows.Close()

	var events []*models.Event
	for rows.Next() {
		event := &models.Event{}
		if err := rows.Scan(
			&event.ID,
			&event.UserID,
			&event.Title,
			&event.Date,
			&event.Description,
			&event.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		events = append(events, event)
	}

	return events, rows.Err()
}

func (r *eventRepository) Update(ctx context.Context, event *models.Event) (*models.Event, error) {
	query := `
		UPDATE events
		SET title = $2, date = $3, description = $4
		WHERE id = $1
		RETURNING created_at`

	err := r.db.QueryRowContext(ctx, query,
		event.ID,
		event.Title,
		event.Date,
		event.Description,
	).Scan(&event.CreatedAt)

	if err != nil {
		return nil, fmt.Errorf("failed to update event: %w", err)
	}

	return event, nil
}

func (r *eventRepository) Delete(ctx context.Context, id int64) error {
	// Wishes and reservations under the event go with it via ON DELETE
	// CASCADE, all inside the statement's own transaction.
	query := `DELETE FROM events WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("event with ID %d not found", id)
	}

	return nil
}
