// internal/auth/session_test.go
package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGuestSessionRoundTrip(t *testing.T) {
	Init()

	s, token, err := NewGuestSession("ayse")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.Equal(t, "ayse", s.Name)

	got, err := AuthenticateJWT(token)
	require.NoError(t, err)
	assert.Equal(t, s.PlayerID, got.PlayerID)
	assert.Equal(t, s.Name, got.Name)
}

func TestGuestSessionDefaultName(t *testing.T) {
	Init()

	s, _, err := NewGuestSession("")
	require.NoError(t, err)
	assert.Equal(t, "Guest", s.Name)
}

func TestAuthenticateJWTRejectsGarbage(t *testing.T) {
	Init()

	_, err := AuthenticateJWT("not-a-token")
	assert.Error(t, err)
}

func TestAuthenticateJWTRejectsForeignKey(t *testing.T) {
	Init()
	_, token, err := NewGuestSession("ayse")
	require.NoError(t, err)

	// Re-keying invalidates all outstanding tokens.
	Init()
	_, err = AuthenticateJWT(token)
	assert.Error(t, err)
}
