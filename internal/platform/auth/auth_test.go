package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestJWTManager_GenerateAndValidate(t *testing.T) {
	m := NewJWTManager("test-secret", time.Minute)
	userID := uuid.New()

	token, expiresAt, err := m.GenerateAccessToken(userID, "jane@example.com", RoleAdopter)
	require.NoError(t, err)
	assert.True(t, expiresAt.After(time.Now()))

	claims, err := m.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, RoleAdopter, claims.Role)
}

func TestJWTManager_RejectsForeignSignature(t *testing.T) {
	issuer := NewJWTManager("secret-a", time.Minute)
	verifier := NewJWTManager("secret-b", time.Minute)

	token, _, err := issuer.GenerateAccessToken(uuid.New(), "a@example.com", RoleAdmin)
	require.NoError(t, err)

	_, err = verifier.ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTManager_RejectsExpired(t *testing.T) {
	m := NewJWTManager("test-secret", -time.Minute)

	token, _, err := m.GenerateAccessToken(uuid.New(), "a@example.com", RoleAdmin)
	require.NoError(t, err)

	_, err = m.ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestBcryptHasher(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)

	hash, err := h.Hash("secret1")
	require.NoError(t, err)
	assert.NotEqual(t, "secret1", hash)
	assert.True(t, h.Matches("secret1", hash))
	assert.False(t, h.Matches("wrong", hash))
}
