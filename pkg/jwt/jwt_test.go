package jwt

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseUnverified(t *testing.T) {
	exp := time.Now().Add(24 * time.Hour).Truncate(time.Second)
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": "0b7c1f4e",
		"exp":     exp.Unix(),
	}).SignedString([]byte("not-the-backend-secret"))
	require.NoError(t, err)

	claims, err := ParseUnverified(token)
	require.NoError(t, err)
	assert.Equal(t, "0b7c1f4e", claims.UserID)
	assert.True(t, exp.Equal(claims.ExpiresAt))
}

func TestParseUnverifiedFallsBackToSubject(t *testing.T) {
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "user-9",
	}).SignedString([]byte("k"))
	require.NoError(t, err)

	claims, err := ParseUnverified(token)
	require.NoError(t, err)
	assert.Equal(t, "user-9", claims.UserID)
	assert.True(t, claims.ExpiresAt.IsZero())
}

func TestParseUnverifiedGarbage(t *testing.T) {
	_, err := ParseUnverified("definitely.not.ajwt")
	assert.Error(t, err)
}
