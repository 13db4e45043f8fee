package auth

import (
	"testing"
	"time"

	"github.com/boutikla/backend/internal/infrastructure/config"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(expiration time.Duration) *JWTService {
	return NewJWTService(config.JWTConfig{
		Secret:          "test-secret-key-for-jwt-signing-0001",
		TokenExpiration: expiration,
		Issuer:          "boutikla-test",
	})
}

func TestGenerateAndValidateToken(t *testing.T) {
	svc := newTestService(time.Hour)
	userID := uuid.New()
	roleID := uuid.New()

	token, err := svc.GenerateToken(GenerateTokenInput{
		UserID:    userID,
		Email:     "marie@boutikla.ht",
		FirstName: "Marie",
		LastName:  "Petit-Frere",
		RoleIDs:   []uuid.UUID{roleID},
	})
	require.NoError(t, err)
	assert.Equal(t, "Bearer", token.TokenType)

	claims, err := svc.ValidateToken(token.AccessToken)
	require.NoError(t, err)

	gotUser, err := claims.GetUserUUID()
	require.NoError(t, err)
	assert.Equal(t, userID, gotUser)
	assert.Equal(t, "Marie", claims.FirstName)
	assert.Equal(t, "Petit-Frere", claims.LastName)

	roles, err := claims.GetRoleUUIDs()
	require.NoError(t, err)
	require.Len(t, roles, 1)
	assert.Equal(t, roleID, roles[0])
}

func TestValidateTokenErrors(t *testing.T) {
	t.Run("rejects garbage", func(t *testing.T) {
		svc := newTestService(time.Hour)
		_, err := svc.ValidateToken("not-a-token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("rejects token signed with another secret", func(t *testing.T) {
		svc := newTestService(time.Hour)
		other := NewJWTService(config.JWTConfig{
			Secret:          "another-secret-key-for-jwt-signing",
			TokenExpiration: time.Hour,
			Issuer:          "boutikla-test",
		})

		token, err := other.GenerateToken(GenerateTokenInput{UserID: uuid.New()})
		require.NoError(t, err)

		_, err = svc.ValidateToken(token.AccessToken)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("rejects expired token", func(t *testing.T) {
		svc := newTestService(-time.Minute)
		token, err := svc.GenerateToken(GenerateTokenInput{UserID: uuid.New()})
		require.NoError(t, err)

		_, err = svc.ValidateToken(token.AccessToken)
		assert.ErrorIs(t, err, ErrExpiredToken)
	})
}
