// Package memory implements the repository interfaces on plain maps. It
// mirrors the PostgreSQL behavior ((nil, nil) lookups, ErrDuplicate on
// uniqueness violations, cascading deletes) and backs the service and API
// tests without a database.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/wishlist-santa/backend/internal/models"
	"github.com/wishlist-santa/backend/internal/repository"
)

// Store holds all entity tables behind one mutex, which stands in for the
// storage engine's transactional guarantees.
type Store struct {
	mu           sync.Mutex
	users        map[int64]*models.User
	events       map[int64]*models.Event
	wishes       map[int64]*models.Wish
	reservations map[int64]*models.Reservation
	nextID       int64
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		users:        make(map[int64]*models.User),
		events:       make(map[int64]*models.Event),
		wishes:       make(map[int64]*models.Wish),
		reservations: make(map[int64]*models.Reservation),
	}
}

func (s *Store) id() int64 {
	s.nextID++
	return s.nextID
}

// UserRepository returns the user table view of the store.
func (s *Store) UserRepository() repository.UserRepository { return &userRepo{s} }

// EventRepository returns the event table view of the store.
func (s *Store) EventRepository() repository.EventRepository { return &eventRepo{s} }

// WishRepository returns the wish table view of the store.
func (s *Store) WishRepository() repository.WishRepository { return &wishRepo{s} }

// ReservationRepository returns the reservation table view of the store.
func (s *Store) ReservationRepository() repository.ReservationRepository {
	return &reservationRepo{s}
}

// reservedLocked reports whether a reservation row exists for the wish.
// Callers must hold s.mu.
func (s *Store) reservedLocked(wishID int64) bool {
	for _, res := range s.reservations {
		if res.WishID == wishID {
			return true
		}
	}
	return false
}

func copyUser(u *models.User) *models.User {
	c := *u
	return &c
}

func copyEvent(e *models.Event) *models.Event {
	c := *e
	c.Wishes = nil
	return &c
}

func copyWish(w *models.Wish) *models.Wish {
	c := *w
	return &c
}

// ---------------------------------------------------------------------------
// Users
// ---------------------------------------------------------------------------

type userRepo struct{ s *Store }

func (r *userRepo) Create(ctx context.Context, user *models.User) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, u := range r.s.users {
		if u.Username == user.Username {
			return nil, fmt.Errorf("username %q taken: %w", user.Username, repository.ErrDuplicate)
		}
	}

	user.ID = r.s.id()
	user.CreatedAt = time.Now()
	r.s.users[user.ID] = copyUser(user)
	return user, nil
}

func (r *userRepo) GetByID(ctx context.Context, id int64) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	u, ok := r.s.users[id]
	if !ok {
		return nil, nil
	}
	return copyUser(u), nil
}

func (r *userRepo) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, u := range r.s.users {
		if u.Username == username {
			return copyUser(u), nil
		}
	}
	return nil, nil
}

func (r *userRepo) List(ctx context.Context) ([]*models.UserSummary, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var users []*models.UserSummary
	for _, u := range r.s.users {
		summary := &models.UserSummary{User: *copyUser(u)}
		for _, e := range r.s.events {
			if e.UserID == u.ID {
				summary.EventCount++
			}
		}
		users = append(users, summary)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}

func (r *userRepo) Update(ctx context.Context, user *models.User) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	stored, ok := r.s.users[user.ID]
	if !ok {
		return nil, fmt.Errorf("user with ID %d not found", user.ID)
	}
	stored.Name = user.Name
	stored.Age = user.Age
	stored.About = user.About
	return copyUser(stored), nil
}

func (r *userRepo) Delete(ctx context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.users[id]; !ok {
		return fmt.Errorf("user with ID %d not found", id)
	}
	delete(r.s.users, id)
	for eid, e := range r.s.events {
		if e.UserID == id {
			r.s.deleteEventLocked(eid)
		}
	}
	for rid, res := range r.s.reservations {
		if res.ReservedBy == id {
			delete(r.s.reservations, rid)
		}
	}
	return nil
}

// ---------------------------------------------------------------------------
// Events
// ---------------------------------------------------------------------------

type eventRepo struct{ s *Store }

func (r *eventRepo) Create(ctx context.Context, event *models.Event) (*models.Event, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	event.ID = r.s.id()
	event.CreatedAt = time.Now()
	r.s.events[event.ID] = copyEvent(event)
	return event, nil
}

func (r *eventRepo) GetByID(ctx context.Context, id int64) (*models.Event, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	e, ok := r.s.events[id]
	if !ok {
		return nil, nil
	}
	return copyEvent(e), nil
}

func (r *eventRepo) ListByOwner(ctx context.Context, ownerID int64) ([]*models.Event, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var events []*models.Event
	for _, e := range r.s.events {
		if e.UserID == ownerID {
			events = append(events, copyEvent(e))
		}
	}
	sort.Slice(events, func(i, j int) bool { return events[i].ID < events[j].ID })
	return events, nil
}

func (r *eventRepo) Update(ctx context.Context, event *models.Event) (*models.Event, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	stored, ok := r.s.events[event.ID]
	if !ok {
		return nil, fmt.Errorf("event with ID %d not found", event.ID)
	}
	stored.Title = event.Title
	stored.Date = event.Date
	stored.Description = event.Description
	return copyEvent(stored), nil
}

func (r *eventRepo) Delete(ctx context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.events[id]; !ok {
		return fmt.Errorf("event with ID %d not found", id)
	}
	r.s.deleteEventLocked(id)
	return nil
}

// deleteEventLocked removes the event plus its wishes and their reservations,
// matching the FK cascade. Callers must hold s.mu.
func (s *Store) deleteEventLocked(id int64) {
	delete(s.events, id)
	for wid, w := range s.wishes {
		if w.EventID == id {
			s.deleteWishLocked(wid)
		}
	}
}

// ---------------------------------------------------------------------------
// Wishes
// ---------------------------------------------------------------------------

type wishRepo struct{ s *Store }

func (r *wishRepo) Create(ctx context.Context, wish *models.Wish) (*models.Wish, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	wish.ID = r.s.id()
	wish.Reserved = false
	wish.CreatedAt = time.Now()
	r.s.wishes[wish.ID] = copyWish(wish)
	return wish, nil
}

func (r *wishRepo) GetByID(ctx context.Context, id int64) (*models.Wish, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	w, ok := r.s.wishes[id]
	if !ok {
		return nil, nil
	}
	out := copyWish(w)
	out.Reserved = r.s.reservedLocked(id)
	return out, nil
}

func (r *wishRepo) ListByEvent(ctx context.Context, eventID int64) ([]*models.Wish, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var wishes []*models.Wish
	for _, w := range r.s.wishes {
		if w.EventID == eventID {
			out := copyWish(w)
			out.Reserved = r.s.reservedLocked(w.ID)
			wishes = append(wishes, out)
		}
	}
	sort.Slice(wishes, func(i, j int) bool { return wishes[i].ID < wishes[j].ID })
	return wishes, nil
}

func (r *wishRepo) Update(ctx context.Context, wish *models.Wish) (*models.Wish, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	stored, ok := r.s.wishes[wish.ID]
	if !ok {
		return nil, fmt.Errorf("wish with ID %d not found", wish.ID)
	}
	stored.Description = wish.Description
	stored.Link = wish.Link
	out := copyWish(stored)
	out.Reserved = r.s.reservedLocked(out.ID)
	return out, nil
}

func (r *wishRepo) Delete(ctx context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.wishes[id]; !ok {
		return fmt.Errorf("wish with ID %d not found", id)
	}
	r.s.deleteWishLocked(id)
	return nil
}

// deleteWishLocked removes the wish and any reservation on it. Callers must
// hold s.mu.
func (s *Store) deleteWishLocked(id int64) {
	delete(s.wishes, id)
	for rid, res := range s.reservations {
		if res.WishID == id {
			delete(s.reservations, rid)
		}
	}
}

// ---------------------------------------------------------------------------
// Reservations
// ---------------------------------------------------------------------------

type reservationRepo struct{ s *Store }

func (r *reservationRepo) Create(ctx context.Context, reservation *models.Reservation) (*models.Reservation, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if r.s.reservedLocked(reservation.WishID) {
		return nil, fmt.Errorf("wish %d already reserved: %w", reservation.WishID, repository.ErrDuplicate)
	}

	reservation.ID = r.s.id()
	reservation.ReservedAt = time.Now()
	c := *reservation
	r.s.reservations[reservation.ID] = &c
	return reservation, nil
}

func (r *reservationRepo) GetByWishID(ctx context.Context, wishID int64) (*models.Reservation, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, res := range r.s.reservations {
		if res.WishID == wishID {
			c := *res
			return &c, nil
		}
	}
	return nil, nil
}

func (r *reservationRepo) Delete(ctx context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.reservations[id]; !ok {
		return fmt.Errorf("reservation with ID %d not found", id)
	}
	delete(r.s.reservations, id)
	return nil
}

func (r *reservationRepo) ListByUser(ctx context.Context, userID int64) ([]*models.ReservationDetail, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var details []*models.ReservationDetail
	for _, res := range r.s.reservations {
		if res.ReservedBy != userID {
			continue
		}
		wish, ok := r.s.wishes[res.WishID]
		if !ok {
			continue
		}
		event, ok := r.s.events[wish.EventID]
		if !ok {
			continue
		}
		owner, ok := r.s.users[event.UserID]
		if !ok {
			continue
		}

		d := &models.ReservationDetail{
			Reservation: *res,
			Wish:        *copyWish(wish),
			Event:       *copyEvent(event),
			EventOwner:  *copyUser(owner),
		}
		d.Wish.Reserved = true
		d.Event.Wishes = []models.Wish{}
		details = append(details, d)
	}
	sort.Slice(details, func(i, j int) bool {
		return details[i].Reservation.ID < details[j].Reservation.ID
	})
	return details, nil
}
