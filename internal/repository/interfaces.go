package repository

import (
	"context"
	"errors"

	"github.com/wishlist-santa/backend/internal/models"
)

// ErrDuplicate reports a unique-constraint violation (duplicate username,
// second reservation on the same wish). Implementations must return it so the
// service layer can surface a Conflict instead of an internal error.
var ErrDuplicate = errors.New("duplicate row")

// Lookups return (nil, nil) when the entity does not exist; only real storage
// failures produce an error.

// UserRepository defines the interface for user data operations
type UserRepository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	List(ctx context.Context) ([]*models.UserSummary, error)
	Update(ctx context.Context, user *models.User) (*models.User, error)
	Delete(ctx context.Context, id int64) error
}

// EventRepository defines the interface for event data operations
type EventRepository interface {
	Create(ctx context.Context, event *models.Event) (*models.Event, error)
	GetByID(ctx context.Context, id int64) (*models.Event, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]*models.Event, error)
	Update(ctx context.Context, event *models.Event) (*models.Event, error)
	// Delete removes the event; child wishes and their reservations go with
	// it atomically via the storage engine's cascade rules.
	Delete(ctx context.Context, id int64) error
}

// WishRepository defines the interface for wish data operations. Loaded
// wishes carry a computed Reserved flag but never the reserver's identity.
type WishRepository interface {
	Create(ctx context.Context, wish *models.Wish) (*models.Wish, error)
	GetByID(ctx context.Context, id int64) (*models.Wish, error)
	ListByEvent(ctx context.Context, eventID int64) ([]*models.Wish, error)
	Update(ctx context.Context, wish *models.Wish) (*models.Wish, error)
	Delete(ctx context.Context, id int64) error
}

// ReservationRepository defines the interface for reservation operations
type ReservationRepository interface {
	// Create inserts the reservation. When the wish is already reserved the
	// unique constraint on wish_id rejects the insert and ErrDuplicate is
	// returned; this, not any precheck, is what decides concurrent races.
	Create(ctx context.Context, reservation *models.Reservation) (*models.Reservation, error)
	GetByWishID(ctx context.Context, wishID int64) (*models.Reservation, error)
	Delete(ctx context.Context, id int64) error
	ListByUser(ctx context.Context, userID int64) ([]*models.ReservationDetail, error)
}
