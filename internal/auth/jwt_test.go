package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront_back_end/internal/models"
)

func TestGenerateAndParseToken(t *testing.T) {
	secret := []byte("test_secret")
	user := models.User{ID: "u1", Email: "a@b.c", Role: models.RoleAdmin}

	token, err := GenerateToken(secret, user)
	require.NoError(t, err)

	claims, err := ParseToken(secret, token)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UserID)
	assert.Equal(t, "a@b.c", claims.Email)
	assert.Equal(t, models.RoleAdmin, claims.Role)
}

func TestParseTokenRejects(t *testing.T) {
	secret := []byte("test_secret")

	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		UserID: "u1",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	})
	expiredStr, err := expired.SignedString(secret)
	require.NoError(t, err)

	noUser := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{})
	noUserStr, err := noUser.SignedString(secret)
	require.NoError(t, err)

	otherSecret, err := GenerateToken([]byte("other"), models.User{ID: "u1"})
	require.NoError(t, err)

	testCases := []struct {
		name  string
		token string
	}{
		{name: "token expiré", token: expiredStr},
		{name: "user_id manquant", token: noUserStr},
		{name: "mauvaise signature", token: otherSecret},
		{name: "format invalide", token: "not.a.token"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseToken(secret, tc.token)
			assert.True(t, errors.Is(err, ErrInvalidToken))
		})
	}
}
