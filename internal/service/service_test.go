package service_test

import (
	"context"
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/wishlist-santa/backend/internal/models"
	"github.com/wishlist-santa/backend/internal/repository/memory"
	"github.com/wishlist-santa/backend/internal/service"
)

func newTestService(t *testing.T) *service.Service {
	t.Helper()
	l := logrus.New()
	l.SetOutput(io.Discard)
	store := memory.NewStore()
	return service.New(l,
		store.UserRepository(),
		store.EventRepository(),
		store.WishRepository(),
		store.ReservationRepository(),
	)
}

func registerUser(t *testing.T, svc *service.Service, username string) *models.User {
	t.Helper()
	user, err := svc.Register(context.Background(), service.RegisterInput{
		Username: username,
		Password: "hunter2secret",
		Name:     username,
	})
	require.NoError(t, err)
	return user
}

func createEvent(t *testing.T, svc *service.Service, ownerID int64, title string) *models.Event {
	t.Helper()
	event, err := svc.CreateEvent(context.Background(), ownerID, service.CreateEventInput{
		Title: title,
		Date:  "2025-12-01",
	})
	require.NoError(t, err)
	return event
}

func addWish(t *testing.T, svc *service.Service, ownerID, eventID int64, description string) *models.Wish {
	t.Helper()
	wish, err := svc.AddWish(context.Background(), ownerID, eventID, service.AddWishInput{
		Description: description,
	})
	require.NoError(t, err)
	return wish
}

func strptr(s string) *string { return &s }
