package service

import (
	"context"
	"fmt"

	"github.com/wishlist-santa/backend/internal/models"
)

// ProfilePatch carries a partial profile update. Nil fields are untouched; a
// present empty string overwrites (clears) the stored value.
type ProfilePatch struct {
	Name  *string
	Age   *int
	About *string
}

// ListUsers returns the public user directory with per-user event counts.
func (s *Service) ListUsers(ctx context.Context) ([]*models.UserSummary, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	if users == nil {
		users = []*models.UserSummary{}
	}
	return users, nil
}

// GetUserProfile is the public sharing view: any viewer sees the user's
// events and wishes. Wishes carry only their reserved flag; the reserver's
// identity is withheld here regardless of who is asking.
func (s *Service) GetUserProfile(ctx context.Context, userID int64) (*models.User, []*models.Event, error) {
	user, err := s.GetUser(ctx, userID)
	if err != nil {
		return nil, nil, err
	}

	events, err := s.events.ListByOwner(ctx, userID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list events for user %d: %w", userID, err)
	}
	if err := s.attachWishes(ctx, events); err != nil {
		return nil, nil, err
	}
	if events == nil {
		events = []*models.Event{}
	}
	return user, events, nil
}

// UpdateProfile applies a partial update to the actor's own profile.
func (s *Service) UpdateProfile(ctx context.Context, actorID int64, patch ProfilePatch) (*models.User, error) {
	user, err := s.GetUser(ctx, actorID)
	if err != nil {
		return nil, err
	}

	if patch.Name != nil {
		user.Name = *patch.Name
	}
	if patch.Age != nil {
		user.Age = patch.Age
	}
	if patch.About != nil {
		user.About = patch.About
	}

	user, err = s.users.Update(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("failed to update profile of user %d: %w", actorID, err)
	}
	return user, nil
}
