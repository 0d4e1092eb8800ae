package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/wishlist-santa/backend/internal/models"
	"github.com/wishlist-santa/backend/internal/repository"
)

type wishRepository struct {
	db *sql.DB
}

// NewWishRepository creates a new wish repository
func NewWishRepository(db *sql.DB) repository.WishRepository {
	return &wishRepository{db: db}
}

func (r *wishRepository) Create(ctx context.Context, wish *models.Wish) (*models.Wish, error) {
	query := `
		INSERT INTO wishes (event_id, description, link, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`

	wish.Reserved = false
	wish.CreatedAt = time.Now()

	err := r.db.QueryRowContext(ctx, query,
		wish.EventID,
		wish.Description,
		wish.Link,
		wish.CreatedAt,
	).Scan(&wish.ID, &wish.CreatedAt)

	if err != nil {
		return nil, fmt.Errorf("failed to create wish: %w", err)
	}

	return wish, nil
}

func (r *wishRepository) GetByID(ctx context.Context, id int64) (*models.Wish, error) {
	query := `
		SELECT w.id, w.event_id, w.description, w.link, w.created_at,
		       EXISTS (SELECT 1 FROM reservations res WHERE res.wish_id = w.id) AS reserved
		FROM wishes w
		WHERE w.id = $1`

	wish := &models.Wish{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&wish.ID,
		&wish.EventID,
		&wish.Description,
		&wish.Link,
		&wish.CreatedAt,
		&wish.Reserved,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get wish by ID: %w", err)
	}

	return wish, nil
}

func (r *wishRepository) ListByEvent(ctx context.Context, eventID int64) ([]*models.Wish, error) {
	query := `
		SELECT w.id, w.event_id, w.description, w.link, w.created_at,
		       EXISTS (SELECT 1 FROM reservations res WHERE res.wish_id = w.id) AS reserved
		FROM wishes w
		WHERE w.event_id = $1
		ORDER BY w.created_at ASC`

	rows, err := r.db.QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to query wishes by event: %w", err)
	}
	defer rows.Close()

	var wishes []*models.Wish
	for rows.Next() {
		wish := &models.Wish{}
		if err := rows.Scan(
			&wish.ID,
			&wish.EventID,
			&wish.Description,
			&wish.Link,
			&wish.CreatedAt,
			&wish.Reserved,
		); err != nil {
			return nil, fmt.Errorf("failed to scan wish: %w", err)
		}
		wishes = append(wishes, wish)
	}

	return wishes, rows.Err()
}

func (r *wishRepository) Update(ctx context.Context, wish *models.Wish) (*models.Wish, error) {
	query := `
		UPDATE wishes
		SET description = $2, link = $3
		WHERE id = $1
		RETURNING created_at`

	err := r.db.QueryRowContext(ctx, query,
		wish.ID,
		wish.Description,
		wish.Link,
	).Scan(&wish.CreatedAt)

	if err != nil {
		return nil, fmt.Errorf("failed to update wish: %w", err)
	}

	return wish, nil
}

func (r *wishRepository) Delete(ctx context.Context, id int64) error {
	// Any reservation on the wish is removed by the cascade rule.
	query := `DELETE FROM wishes WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete wish: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("wish with ID %d not found", id)
	}

	return nil
}
