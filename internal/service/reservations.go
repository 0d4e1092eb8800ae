package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/wishlist-santa/backend/internal/apperr"
	"github.com/wishlist-santa/backend/internal/models"
	"github.com/wishlist-santa/backend/internal/repository"
)

// Reserve claims an unreserved wish for the actor. Preconditions, each a
// distinct failure: the wish must exist, the actor must not own its event,
// and no reservation may exist yet. The reserved-state check is only a
// courtesy; the storage uniqueness constraint on wish_id is what actually
// decides concurrent attempts, so a loser of that race also surfaces as a
// Conflict here.
func (s *Service) Reserve(ctx context.Context, actorID, wishID int64) (*models.Wish, error) {
	wish, err := s.wishes.GetByID(ctx, wishID)
	if err != nil {
		return nil, fmt.Errorf("failed to get wish %d: %w", wishID, err)
	}
	if wish == nil {
		return nil, apperr.New(apperr.NotFound, "Wish not found")
	}

	event, err := s.events.GetByID(ctx, wish.EventID)
	if err != nil {
		return nil, fmt.Errorf("failed to get event %d: %w", wish.EventID, err)
	}
	if event != nil && event.UserID == actorID {
		return nil, apperr.New(apperr.Forbidden, "Cannot reserve your own wish")
	}

	if wish.Reserved {
		return nil, apperr.New(apperr.Conflict, "Wish already reserved")
	}

	_, err = s.reservations.Create(ctx, &models.Reservation{
		WishID:     wishID,
		ReservedBy: actorID,
	})
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperr.New(apperr.Conflict, "Wish already reserved")
		}
		return nil, fmt.Errorf("failed to reserve wish %d: %w", wishID, err)
	}

	s.logger.Infof("User %d reserved wish %d", actorID, wishID)
	wish.Reserved = true
	return wish, nil
}

// Unreserve releases the actor's own claim on a wish.
func (s *Service) Unreserve(ctx context.Context, actorID, wishID int64) (*models.Wish, error) {
	wish, err := s.wishes.GetByID(ctx, wishID)
	if err != nil {
		return nil, fmt.Errorf("failed to get wish %d: %w", wishID, err)
	}
	if wish == nil {
		return nil, apperr.New(apperr.NotFound, "Wish not found")
	}

	reservation, err := s.reservations.GetByWishID(ctx, wishID)
	if err != nil {
		return nil, fmt.Errorf("failed to get reservation for wish %d: %w", wishID, err)
	}
	if reservation == nil {
		return nil, apperr.New(apperr.Conflict, "Wish is not reserved")
	}
	if reservation.ReservedBy != actorID {
		return nil, apperr.New(apperr.Forbidden, "Not authorized")
	}

	if err := s.reservations.Delete(ctx, reservation.ID); err != nil {
		return nil, fmt.Errorf("failed to delete reservation %d: %w", reservation.ID, err)
	}

	s.logger.Infof("User %d unreserved wish %d", actorID, wishID)
	wish.Reserved = false
	return wish, nil
}

// MyReservations lists the actor's claims, each joined to its wish, event and
// event owner. This is the single view exposing reservation detail, and only
// for the actor's own claims.
func (s *Service) MyReservations(ctx context.Context, actorID int64) ([]*models.ReservationDetail, error) {
	details, err := s.reservations.ListByUser(ctx, actorID)
	if err != nil {
		return nil, fmt.Errorf("failed to list reservations for user %d: %w", actorID, err)
	}
	if details == nil {
		details = []*models.ReservationDetail{}
	}
	return details, nil
}
