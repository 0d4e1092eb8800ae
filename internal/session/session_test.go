package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueAndParse(t *testing.T) {
	m := NewManager("test-secret", time.Hour)

	token, err := m.Issue(42)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	userID, err := m.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), userID)
}

func TestParseExpiredToken(t *testing.T) {
	m := NewManager("test-secret", -time.Minute)

	token, err := m.Issue(42)
	require.NoError(t, err)

	_, err = m.Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseWrongSecret(t *testing.T) {
	token, err := NewManager("secret-one", time.Hour).Issue(42)
	require.NoError(t, err)

	_, err = NewManager("secret-two", time.Hour).Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseGarbage(t *testing.T) {
	m := NewManager("test-secret", time.Hour)

	for _, token := range []string{"", "not-a-token", "a.b.c"} {
		_, err := m.Parse(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	}
}
