package auth_test

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/dressshop/pkg/auth"
	"github.com/shashiranjanraj/dressshop/config"
)

func TestTokenRoundTrip(t *testing.T) {
	token, err := auth.GenerateToken("64f0c0ffee0000000000abcd", auth.KindUser)
	require.NoError(t, err)

	claims, err := auth.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "64f0c0ffee0000000000abcd", claims.Subject)
	assert.Equal(t, auth.KindUser, claims.Kind)
}

func TestTokenCarriesAdminKind(t *testing.T) {
	token, err := auth.GenerateToken("64f0c0ffee0000000000beef", auth.KindAdmin)
	require.NoError(t, err)

	claims, err := auth.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, auth.KindAdmin, claims.Kind)
}

func TestExpiredToken(t *testing.T) {
	claims := auth.Claims{
		Kind: auth.KindUser,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "64f0c0ffee0000000000abcd",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-8 * 24 * time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).
		SignedString([]byte(config.JWTSecret()))
	require.NoError(t, err)

	_, err = auth.ValidateToken(token)
	assert.ErrorIs(t, err, auth.ErrTokenExpired)
}

func TestTokenWrongSecret(t *testing.T) {
	claims := auth.Claims{
		Kind: auth.KindUser,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "64f0c0ffee0000000000abcd",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).
		SignedString([]byte("some-other-secret"))
	require.NoError(t, err)

	_, err = auth.ValidateToken(token)
	assert.ErrorIs(t, err, auth.ErrTokenInvalid)
}

func TestTokenRejectsNonHMAC(t *testing.T) {
	// alg=none style tokens must never validate.
	token := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{Subject: "x"})
	signed, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = auth.ValidateToken(signed)
	assert.ErrorIs(t, err, auth.ErrTokenInvalid)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := auth.HashPassword("Secret@123")
	require.NoError(t, err)
	assert.NotEqual(t, "Secret@123", hash)

	assert.True(t, auth.CheckPassword(hash, "Secret@123"))
	assert.False(t, auth.CheckPassword(hash, "wrong"))
}
