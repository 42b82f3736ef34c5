package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arkadem/startup-board/database/models"
)

func TestSessionManager_RoundTrip(t *testing.T) {
	m := NewSessionManager("test-secret", time.Hour)
	user := &models.User{ID: 42, Username: "ada"}

	token, err := m.Issue(user)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	userID, err := m.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), userID)
}

func TestSessionManager_RejectsTampering(t *testing.T) {
	m := NewSessionManager("test-secret", time.Hour)
	other := NewSessionManager("other-secret", time.Hour)

	token, err := m.Issue(&models.User{ID: 42, Username: "ada"})
	require.NoError(t, err)

	_, err = other.Parse(token)
	assert.ErrorIs(t, err, ErrInvalidSession)

	_, err = m.Parse(token + "x")
	assert.ErrorIs(t, err, ErrInvalidSession)

	_, err = m.Parse("")
	assert.ErrorIs(t, err, ErrInvalidSession)
}

func TestSessionManager_RejectsExpired(t *testing.T) {
	m := NewSessionManager("test-secret", -time.Minute)

	token, err := m.Issue(&models.User{ID: 42, Username: "ada"})
	require.NoError(t, err)

	_, err = m.Parse(token)
	assert.ErrorIs(t, err, ErrInvalidSession)
}
