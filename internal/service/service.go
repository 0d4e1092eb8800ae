// Package service is the business-logic layer. Every operation takes the
// acting user explicitly, evaluates the ownership/visibility predicate
// against the target entity, and only then touches storage.
package service

import (
	"github.com/sirupsen/logrus"

	"github.com/wishlist-santa/backend/internal/repository"
)

// Service holds all repositories and provides the high-level operations the
// HTTP layer exposes.
type Service struct {
	logger       *logrus.Logger
	users        repository.UserRepository
	events       repository.EventRepository
	wishes       repository.WishRepository
	reservations repository.ReservationRepository
}

// New creates a new Service with all required dependencies.
func New(logger *logrus.Logger,
	users repository.UserRepository,
	events repository.EventRepository,
	wishes repository.WishRepository,
	reservations repository.ReservationRepository,
) *Service {
	return &Service{
		logger:       logger,
		users:        users,
		events:       events,
		wishes:       wishes,
		reservations: reservations,
	}
}
