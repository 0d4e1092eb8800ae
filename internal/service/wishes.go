package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/wishlist-santa/backend/internal/apperr"
	"github.com/wishlist-santa/backend/internal/models"
)

// AddWishInput carries the fields of a wish creation request.
type AddWishInput struct {
	Description string
	Link        *string
}

// WishPatch carries a partial wish update. Nil fields are untouched; a
// present empty link clears it, a present empty description is rejected.
type WishPatch struct {
	Description *string
	Link        *string
}

// AddWish attaches a wish to one of the actor's own events.
func (s *Service) AddWish(ctx context.Context, actorID, eventID int64, in AddWishInput) (*models.Wish, error) {
	if _, err := s.ownedEvent(ctx, actorID, eventID); err != nil {
		return nil, err
	}

	if strings.TrimSpace(in.Description) == "" {
		return nil, apperr.New(apperr.Validation, "Description is required")
	}

	wish := &models.Wish{
		EventID:     eventID,
		Description: in.Description,
		Link:        in.Link,
	}

	wish, err := s.wishes.Create(ctx, wish)
	if err != nil {
		return nil, fmt.Errorf("failed to add wish to event %d: %w", eventID, err)
	}

	s.logger.Infof("User %d added wish %d to event %d", actorID, wish.ID, eventID)
	return wish, nil
}

// UpdateWish applies a partial update; authorization walks wish -> event ->
// owner.
func (s *Service) UpdateWish(ctx context.Context, actorID, wishID int64, patch WishPatch) (*models.Wish, error) {
	wish, err := s.ownedWish(ctx, actorID, wishID)
	if err != nil {
		return nil, err
	}

	if patch.Description != nil {
		if strings.TrimSpace(*patch.Description) == "" {
			return nil, apperr.New(apperr.Validation, "Description is required")
		}
		wish.Description = *patch.Description
	}
	if patch.Link != nil {
		wish.Link = patch.Link
	}

	wish, err = s.wishes.Update(ctx, wish)
	if err != nil {
		return nil, fmt.Errorf("failed to update wish %d: %w", wishID, err)
	}
	return wish, nil
}

// DeleteWish removes the wish and any reservation on it.
func (s *Service) DeleteWish(ctx context.Context, actorID, wishID int64) error {
	if _, err := s.ownedWish(ctx, actorID, wishID); err != nil {
		return err
	}

	if err := s.wishes.Delete(ctx, wishID); err != nil {
		return fmt.Errorf("failed to delete wish %d: %w", wishID, err)
	}

	s.logger.Infof("User %d deleted wish %d", actorID, wishID)
	return nil
}

// ownedWish loads the wish and verifies the actor owns its event.
func (s *Service) ownedWish(ctx context.Context, actorID, wishID int64) (*models.Wish, error) {
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
	if event == nil || event.UserID != actorID {
		return nil, apperr.New(apperr.Forbidden, "Not authorized")
	}
	return wish, nil
}
