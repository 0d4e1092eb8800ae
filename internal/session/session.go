// Package session issues and verifies the opaque tokens that bind a browser
// session to a user id. Tokens are HS256-signed claims carried in a cookie;
// each request resolves its own token, there is no server-side session state.
package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken reports a token that is missing, malformed, expired or
// signed with the wrong key.
var ErrInvalidToken = errors.New("invalid session token")

// Manager signs and parses session tokens.
type Manager struct {
	secret []byte
	ttl    time.Duration
}

type claims struct {
	UserID int64 `json:"uid"`
	jwt.RegisteredClaims
}

// NewManager creates a Manager with the given signing secret and token
// lifetime.
func NewManager(secret string, ttl time.Duration) *Manager {
	return &Manager{secret: []byte(secret), ttl: ttl}
}

// TTL returns the configured token lifetime, used to set cookie expiry.
func (m *Manager) TTL() time.Duration {
	return m.ttl
}

// Issue creates a signed token bound to the user id.
func (m *Manager) Issue(userID int64) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	})

	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}
	return signed, nil
}

// Parse verifies the token and returns the bound user id.
func (m *Manager) Parse(tokenString string) (int64, error) {
	var c claims
	token, err := jwt.ParseWithClaims(tokenString, &c, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil || !token.Valid {
		return 0, ErrInvalidToken
	}
	return c.UserID, nil
}
