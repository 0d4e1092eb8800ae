package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wishlist-santa/backend/internal/api"
	"github.com/wishlist-santa/backend/internal/models"
	"github.com/wishlist-santa/backend/internal/repository/memory"
	"github.com/wishlist-santa/backend/internal/service"
	"github.com/wishlist-santa/backend/internal/session"
)

func newTestServer(t *testing.T) http.Handler {
	t.Helper()
	l := logrus.New()
	l.SetOutput(io.Discard)
	store := memory.NewStore()
	svc := service.New(l,
		store.UserRepository(),
		store.EventRepository(),
		store.WishRepository(),
		store.ReservationRepository(),
	)
	sessions := session.NewManager("test-secret", time.Hour)
	return api.NewServer(svc, sessions, l, "http://localhost:5173").Handler()
}

// client is one browser-like actor: it keeps the session cookie between
// requests.
type client struct {
	t       *testing.T
	handler http.Handler
	cookie  *http.Cookie
}

func newClient(t *testing.T, handler http.Handler) *client {
	return &client{t: t, handler: handler}
}

func (c *client) do(method, path string, body any) *httptest.ResponseRecorder {
	c.t.Helper()
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(c.t, err)
		reader = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.cookie != nil {
		req.AddCookie(c.cookie)
	}

	w := httptest.NewRecorder()
	c.handler.ServeHTTP(w, req)

	for _, ck := range w.Result().Cookies() {
		if ck.Name == "session" {
			if ck.Value == "" {
				c.cookie = nil
			} else {
				c.cookie = ck
			}
		}
	}
	return w
}

func (c *client) register(username string) map[string]any {
	c.t.Helper()
	w := c.do(http.MethodPost, "/api/auth/register", map[string]any{
		"username": username,
		"password": "hunter2secret",
		"name":     strings.ToUpper(username[:1]) + username[1:],
	})
	require.Equal(c.t, http.StatusCreated, w.Code, w.Body.String())
	return decodeBody(c.t, w)
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func objID(t *testing.T, body map[string]any, key string) int64 {
	t.Helper()
	obj, ok := body[key].(map[string]any)
	require.True(t, ok, "missing %q in %v", key, body)
	id, ok := obj["id"].(float64)
	require.True(t, ok, "missing id in %v", obj)
	return int64(id)
}

func TestRegisterValidation(t *testing.T) {
	handler := newTestServer(t)
	c := newClient(t, handler)

	w := c.do(http.MethodPost, "/api/auth/register", map[string]any{
		"username": "alice",
		"password": "hunter2secret",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	body := decodeBody(t, w)
	assert.Contains(t, body, "details")

	w = c.do(http.MethodPost, "/api/auth/register", map[string]any{
		"username": "alice",
		"password": "hunter2secret",
		"name":     "Alice",
		"age":      -1,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRegisterDuplicateUsername(t *testing.T) {
	handler := newTestServer(t)
	newClient(t, handler).register("alice")

	w := newClient(t, handler).do(http.MethodPost, "/api/auth/register", map[string]any{
		"username": "alice",
		"password": "otherpass",
		"name":     "Another Alice",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Username already exists", decodeBody(t, w)["error"])
}

func TestAuthFlow(t *testing.T) {
	handler := newTestServer(t)
	c := newClient(t, handler)

	// Registration establishes the session immediately.
	c.register("alice")
	w := c.do(http.MethodGet, "/api/auth/me", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = c.do(http.MethodGet, "/api/auth/check", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, decodeBody(t, w)["authenticated"])

	// Logout clears the cookie.
	w = c.do(http.MethodPost, "/api/auth/logout", nil)
	require.Equal(t, http.StatusOK, w.Code)
	w = c.do(http.MethodGet, "/api/auth/me", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = c.do(http.MethodGet, "/api/auth/check", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, false, decodeBody(t, w)["authenticated"])

	// Wrong credentials.
	w = c.do(http.MethodPost, "/api/auth/login", map[string]any{
		"username": "alice", "password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Valid login restores the session.
	w = c.do(http.MethodPost, "/api/auth/login", map[string]any{
		"username": "alice", "password": "hunter2secret",
	})
	require.Equal(t, http.StatusOK, w.Code)
	w = c.do(http.MethodGet, "/api/auth/me", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestSessionCookieAttributes(t *testing.T) {
	handler := newTestServer(t)
	c := newClient(t, handler)

	w := c.do(http.MethodPost, "/api/auth/register", map[string]any{
		"username": "alice", "password": "hunter2secret", "name": "Alice",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var found bool
	for _, ck := range w.Result().Cookies() {
		if ck.Name == "session" {
			found = true
			assert.True(t, ck.HttpOnly)
			assert.True(t, ck.Secure)
			assert.Equal(t, http.SameSiteNoneMode, ck.SameSite)
		}
	}
	require.True(t, found, "register must set the session cookie")
}

func TestProtectedRoutesRequireAuth(t *testing.T) {
	handler := newTestServer(t)
	c := newClient(t, handler)

	for _, route := range []struct{ method, path string }{
		{http.MethodGet, "/api/events"},
		{http.MethodGet, "/api/auth/me"},
		{http.MethodGet, "/api/my-reservations"},
		{http.MethodPost, "/api/events"},
		{http.MethodPut, "/api/users/profile"},
		{http.MethodPost, "/api/wishes/1/reserve"},
	} {
		w := c.do(route.method, route.path, nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code, "%s %s", route.method, route.path)
	}
}

func TestPublicRoutes(t *testing.T) {
	handler := newTestServer(t)
	owner := newClient(t, handler)
	body := owner.register("alice")
	ownerID := objID(t, body, "user")

	anon := newClient(t, handler)

	w := anon.do(http.MethodGet, "/api/users", nil)
	require.Equal(t, http.StatusOK, w.Code)
	users := decodeBody(t, w)["users"].([]any)
	require.Len(t, users, 1)
	assert.Equal(t, float64(0), users[0].(map[string]any)["event_count"])

	w = anon.do(http.MethodGet, fmt.Sprintf("/api/users/%d", ownerID), nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = anon.do(http.MethodGet, "/api/users/9999", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

// TestReservationScenario follows the full coordination flow: A owns the
// event and wish, B reserves and releases it, with every failure branch
// checked along the way.
func TestReservationScenario(t *testing.T) {
	handler := newTestServer(t)
	a := newClient(t, handler)
	b := newClient(t, handler)
	aID := objID(t, a.register("alice"), "user")
	b.register("bob")

	// A creates the Birthday event and adds a wish.
	w := a.do(http.MethodPost, "/api/events", map[string]any{
		"title": "Birthday", "date": "2025-12-01",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	eventID := objID(t, decodeBody(t, w), "event")

	// Profile shows the event with an empty wishes list.
	w = a.do(http.MethodGet, fmt.Sprintf("/api/users/%d", aID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	events := decodeBody(t, w)["events"].([]any)
	require.Len(t, events, 1)
	assert.Len(t, events[0].(map[string]any)["wishes"], 0)

	w = a.do(http.MethodPost, fmt.Sprintf("/api/events/%d/wishes", eventID), map[string]any{
		"description": "Book",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	wishID := objID(t, decodeBody(t, w), "wish")

	// A cannot reserve their own wish.
	w = a.do(http.MethodPost, fmt.Sprintf("/api/wishes/%d/reserve", wishID), nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// B reserves it.
	w = b.do(http.MethodPost, fmt.Sprintf("/api/wishes/%d/reserve", wishID), nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	wish := decodeBody(t, w)["wish"].(map[string]any)
	assert.Equal(t, true, wish["reserved"])

	// A second reserve attempt conflicts.
	carol := newClient(t, handler)
	carol.register("carol")
	w = carol.do(http.MethodPost, fmt.Sprintf("/api/wishes/%d/reserve", wishID), nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Wish already reserved", decodeBody(t, w)["error"])

	// B sees the claim in my-reservations, joined to wish, event and owner.
	w = b.do(http.MethodGet, "/api/my-reservations", nil)
	require.Equal(t, http.StatusOK, w.Code)
	reservations := decodeBody(t, w)["reservations"].([]any)
	require.Len(t, reservations, 1)
	detail := reservations[0].(map[string]any)
	assert.Equal(t, "Birthday", detail["event"].(map[string]any)["title"])
	assert.Equal(t, "alice", detail["event_owner"].(map[string]any)["username"])

	// Only the reserver may release the claim.
	w = carol.do(http.MethodDelete, fmt.Sprintf("/api/wishes/%d/unreserve", wishID), nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = b.do(http.MethodDelete, fmt.Sprintf("/api/wishes/%d/unreserve", wishID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	wish = decodeBody(t, w)["wish"].(map[string]any)
	assert.Equal(t, false, wish["reserved"])

	// Releasing an unreserved wish conflicts.
	w = a.do(http.MethodDelete, fmt.Sprintf("/api/wishes/%d/unreserve", wishID), nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Wish is not reserved", decodeBody(t, w)["error"])

	// Missing wish is NotFound for both transitions.
	w = b.do(http.MethodPost, "/api/wishes/9999/reserve", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	w = b.do(http.MethodDelete, "/api/wishes/9999/unreserve", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

// TestOwnerNeverSeesReserverIdentity checks the visibility invariant on
// every view addressed to the owner: the reserved flag is present, the
// reserver's identity is not.
func TestOwnerNeverSeesReserverIdentity(t *testing.T) {
	handler := newTestServer(t)
	a := newClient(t, handler)
	b := newClient(t, handler)
	aID := objID(t, a.register("alice"), "user")
	b.register("bob")

	w := a.do(http.MethodPost, "/api/events", map[string]any{
		"title": "Birthday", "date": "2025-12-01",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	eventID := objID(t, decodeBody(t, w), "event")

	w = a.do(http.MethodPost, fmt.Sprintf("/api/events/%d/wishes", eventID), map[string]any{
		"description": "Book",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	wishID := objID(t, decodeBody(t, w), "wish")

	w = b.do(http.MethodPost, fmt.Sprintf("/api/wishes/%d/reserve", wishID), nil)
	require.Equal(t, http.StatusOK, w.Code)

	ownerViews := []struct{ name, path string }{
		{"own events list", "/api/events"},
		{"public profile", fmt.Sprintf("/api/users/%d", aID)},
	}
	for _, view := range ownerViews {
		t.Run(view.name, func(t *testing.T) {
			w := a.do(http.MethodGet, view.path, nil)
			require.Equal(t, http.StatusOK, w.Code)
			raw := w.Body.String()
			assert.Contains(t, raw, `"reserved":true`)
			assert.NotContains(t, raw, "reserved_by")
			assert.NotContains(t, raw, "bob")
		})
	}
}

func TestEventOwnershipOverHTTP(t *testing.T) {
	handler := newTestServer(t)
	a := newClient(t, handler)
	b := newClient(t, handler)
	a.register("alice")
	b.register("bob")

	w := a.do(http.MethodPost, "/api/events", map[string]any{
		"title": "Birthday", "date": "2025-12-01",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	eventID := objID(t, decodeBody(t, w), "event")

	// Non-owner gets 403 on update/delete, 404 for missing events.
	w = b.do(http.MethodPut, fmt.Sprintf("/api/events/%d", eventID), map[string]any{"title": "Hijacked"})
	assert.Equal(t, http.StatusForbidden, w.Code)
	w = b.do(http.MethodDelete, fmt.Sprintf("/api/events/%d", eventID), nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
	w = b.do(http.MethodPut, "/api/events/9999", map[string]any{"title": "Ghost"})
	assert.Equal(t, http.StatusNotFound, w.Code)
	w = b.do(http.MethodPost, fmt.Sprintf("/api/events/%d/wishes", eventID), map[string]any{"description": "Book"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	// Bad date on create.
	w = a.do(http.MethodPost, "/api/events", map[string]any{"title": "X", "date": "01.12.2025"})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid date format. Use YYYY-MM-DD", decodeBody(t, w)["error"])

	// Owner updates and deletes.
	w = a.do(http.MethodPut, fmt.Sprintf("/api/events/%d", eventID), map[string]any{"title": "Name day"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Name day", decodeBody(t, w)["event"].(map[string]any)["title"])

	w = a.do(http.MethodDelete, fmt.Sprintf("/api/events/%d", eventID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	w = a.do(http.MethodGet, "/api/events", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decodeBody(t, w)["events"], 0)
}

func TestUpdateProfile(t *testing.T) {
	handler := newTestServer(t)
	c := newClient(t, handler)
	c.register("alice")

	w := c.do(http.MethodPut, "/api/users/profile", map[string]any{
		"name": "Alice B.", "age": 30, "about": "loves books",
	})
	require.Equal(t, http.StatusOK, w.Code)
	user := decodeBody(t, w)["user"].(map[string]any)
	assert.Equal(t, "Alice B.", user["name"])
	assert.Equal(t, float64(30), user["age"])

	// Absent fields stay put; a present empty string clears.
	w = c.do(http.MethodPut, "/api/users/profile", map[string]any{"about": ""})
	require.Equal(t, http.StatusOK, w.Code)
	user = decodeBody(t, w)["user"].(map[string]any)
	assert.Equal(t, "Alice B.", user["name"])
	assert.Equal(t, "", user["about"])
}

// TestRequiredFieldMessages pins the exact error strings for missing fields
// on the routes whose checks live in the service layer rather than behind
// validate tags.
func TestRequiredFieldMessages(t *testing.T) {
	handler := newTestServer(t)
	c := newClient(t, handler)
	c.register("alice")

	w := newClient(t, handler).do(http.MethodPost, "/api/auth/login", map[string]any{
		"username": "alice",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Username and password are required", decodeBody(t, w)["error"])

	w = c.do(http.MethodPost, "/api/events", map[string]any{"date": "2025-12-01"})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Title and date are required", decodeBody(t, w)["error"])

	w = c.do(http.MethodPost, "/api/events", map[string]any{
		"title": "Birthday", "date": "2025-12-01",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	eventID := objID(t, decodeBody(t, w), "event")

	w = c.do(http.MethodPost, fmt.Sprintf("/api/events/%d/wishes", eventID), map[string]any{})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Description is required", decodeBody(t, w)["error"])
}

var errStorageDown = errors.New("storage down")

// brokenUserRepo fails every operation, standing in for a database outage.
type brokenUserRepo struct{}

func (brokenUserRepo) Create(context.Context, *models.User) (*models.User, error) {
	return nil, errStorageDown
}

func (brokenUserRepo) GetByID(context.Context, int64) (*models.User, error) {
	return nil, errStorageDown
}

func (brokenUserRepo) GetByUsername(context.Context, string) (*models.User, error) {
	return nil, errStorageDown
}

func (brokenUserRepo) List(context.Context) ([]*models.UserSummary, error) {
	return nil, errStorageDown
}

func (brokenUserRepo) Update(context.Context, *models.User) (*models.User, error) {
	return nil, errStorageDown
}

func (brokenUserRepo) Delete(context.Context, int64) error { return errStorageDown }

// TestMeStaleSessionVsStorageError: a valid token whose account is gone is
// unauthenticated, but a storage failure must surface as a server error, not
// as a login prompt.
func TestMeStaleSessionVsStorageError(t *testing.T) {
	l := logrus.New()
	l.SetOutput(io.Discard)
	sessions := session.NewManager("test-secret", time.Hour)

	store := memory.NewStore()
	svc := service.New(l,
		store.UserRepository(),
		store.EventRepository(),
		store.WishRepository(),
		store.ReservationRepository(),
	)
	handler := api.NewServer(svc, sessions, l, "http://localhost:5173").Handler()

	c := newClient(t, handler)
	userID := objID(t, c.register("alice"), "user")
	require.NoError(t, store.UserRepository().Delete(context.Background(), userID))

	w := c.do(http.MethodGet, "/api/auth/me", nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Login required", decodeBody(t, w)["error"])

	brokenSvc := service.New(l,
		brokenUserRepo{},
		store.EventRepository(),
		store.WishRepository(),
		store.ReservationRepository(),
	)
	brokenHandler := api.NewServer(brokenSvc, sessions, l, "http://localhost:5173").Handler()

	token, err := sessions.Issue(1)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.AddCookie(&http.Cookie{Name: "session", Value: token})
	rec := httptest.NewRecorder()
	brokenHandler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotEqual(t, "Login required", decodeBody(t, rec)["error"])
}

func TestDateSerialization(t *testing.T) {
	handler := newTestServer(t)
	c := newClient(t, handler)
	c.register("alice")

	w := c.do(http.MethodPost, "/api/events", map[string]any{
		"title": "Birthday", "date": "2025-12-01",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"date":"2025-12-01"`)
}
