package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/wishlist-santa/backend/internal/apperr"
	"github.com/wishlist-santa/backend/internal/models"
)

// CreateEventInput carries the fields of an event creation request.
type CreateEventInput struct {
	Title       string
	Date        string
	Description *string
}

// EventPatch carries a partial event update. Nil fields are untouched.
type EventPatch struct {
	Title       *string
	Date        *string
	Description *string
}

// CreateEvent creates an event owned by the actor.
func (s *Service) CreateEvent(ctx context.Context, actorID int64, in CreateEventInput) (*models.Event, error) {
	if strings.TrimSpace(in.Title) == "" || in.Date == "" {
		return nil, apperr.New(apperr.Validation, "Title and date are required")
	}

	date, err := models.ParseDate(in.Date)
	if err != nil {
		return nil, apperr.New(apperr.Validation, "Invalid date format. Use YYYY-MM-DD")
	}

	event := &models.Event{
		UserID:      actorID,
		Title:       in.Title,
		Date:        date,
		Description: in.Description,
	}

	event, err = s.events.Create(ctx, event)
	if err != nil {
		return nil, fmt.Errorf("failed to create event: %w", err)
	}

	s.logger.Infof("User %d created event %d (%q)", actorID, event.ID, event.Title)
	event.Wishes = []models.Wish{}
	return event, nil
}

// UpdateEvent applies a partial update after the ownership check.
func (s *Service) UpdateEvent(ctx context.Context, actorID, eventID int64, patch EventPatch) (*models.Event, error) {
	event, err := s.ownedEvent(ctx, actorID, eventID)
	if err != nil {
		return nil, err
	}

	if patch.Title != nil {
		if strings.TrimSpace(*patch.Title) == "" {
			return nil, apperr.New(apperr.Validation, "Title and date are required")
		}
		event.Title = *patch.Title
	}
	if patch.Date != nil {
		date, err := models.ParseDate(*patch.Date)
		if err != nil {
			return nil, apperr.New(apperr.Validation, "Invalid date format. Use YYYY-MM-DD")
		}
		event.Date = date
	}
	if patch.Description != nil {
		event.Description = patch.Description
	}

	event, err = s.events.Update(ctx, event)
	if err != nil {
		return nil, fmt.Errorf("failed to update event %d: %w", eventID, err)
	}

	if err := s.attachWishes(ctx, []*models.Event{event}); err != nil {
		return nil, err
	}
	return event, nil
}

// DeleteEvent removes the event with all child wishes and reservations.
func (s *Service) DeleteEvent(ctx context.Context, actorID, eventID int64) error {
	if _, err := s.ownedEvent(ctx, actorID, eventID); err != nil {
		return err
	}

	if err := s.events.Delete(ctx, eventID); err != nil {
		return fmt.Errorf("failed to delete event %d: %w", eventID, err)
	}

	s.logger.Infof("User %d deleted event %d", actorID, eventID)
	return nil
}

// ListEvents returns the actor's own events with embedded wishes.
func (s *Service) ListEvents(ctx context.Context, actorID int64) ([]*models.Event, error) {
	events, err := s.events.ListByOwner(ctx, actorID)
	if err != nil {
		return nil, fmt.Errorf("failed to list events for user %d: %w", actorID, err)
	}
	if err := s.attachWishes(ctx, events); err != nil {
		return nil, err
	}
	if events == nil {
		events = []*models.Event{}
	}
	return events, nil
}

// ownedEvent loads the event and verifies the actor owns it. The existence
// check runs first so a non-owner probing a missing id still sees NotFound.
func (s *Service) ownedEvent(ctx context.Context, actorID, eventID int64) (*models.Event, error) {
	event, err := s.events.GetByID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to get event %d: %w", eventID, err)
	}
	if event == nil {
		return nil, apperr.New(apperr.NotFound, "Event not found")
	}
	if event.UserID != actorID {
		return nil, apperr.New(apperr.Forbidden, "Not authorized")
	}
	return event, nil
}

// attachWishes populates Wishes on each event, always as a non-nil slice.
func (s *Service) attachWishes(ctx context.Context, events []*models.Event) error {
	for _, event := range events {
		wishes, err := s.wishes.ListByEvent(ctx, event.ID)
		if err != nil {
			return fmt.Errorf("failed to list wishes for event %d: %w", event.ID, err)
		}
		event.Wishes = make([]models.Wish, len(wishes))
		for i, w := range wishes {
			event.Wishes[i] = *w
		}
	}
	return nil
}
