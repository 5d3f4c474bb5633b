package service

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func TestTokenService_ValidateToken(t *testing.T) {
	svc := NewTokenService("secret")
	userID := uuid.New()

	t.Run("accepts a valid token", func(t *testing.T) {
		tokenStr := signToken(t, "secret", jwt.MapClaims{
			"user_id":  userID.String(),
			"username": "cook",
			"exp":      time.Now().Add(time.Hour).Unix(),
		})

		claims, err := svc.ValidateToken(tokenStr)
		require.NoError(t, err)
		assert.Equal(t, userID, claims.UserID)
		assert.Equal(t, "cook", claims.Username)
	})

	t.Run("rejects a token signed with the wrong secret", func(t *testing.T) {
		tokenStr := signToken(t, "other-secret", jwt.MapClaims{
			"user_id": userID.String(),
			"exp":     time.Now().Add(time.Hour).Unix(),
		})

		_, err := svc.ValidateToken(tokenStr)
		assert.Error(t, err)
	})

	t.Run("rejects an expired token", func(t *testing.T) {
		tokenStr := signToken(t, "secret", jwt.MapClaims{
			"user_id": userID.String(),
			"exp":     time.Now().Add(-time.Hour).Unix(),
		})

		_, err := svc.ValidateToken(tokenStr)
		assert.Error(t, err)
	})

	t.Run("rejects a token without a user_id claim", func(t *testing.T) {
		tokenStr := signToken(t, "secret", jwt.MapClaims{
			"exp": time.Now().Add(time.Hour).Unix(),
		})

		_, err := svc.ValidateToken(tokenStr)
		assert.Error(t, err)
	})
}
