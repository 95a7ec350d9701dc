package token

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
)

func TestGenerateAndParseJWT(t *testing.T) {
	tokenStr, err := GenerateJWT("user-123", "api_server")
	assert.NoError(t, err)
	assert.NotEmpty(t, tokenStr)

	claims, err := ParseJWT(tokenStr)
	assert.NoError(t, err)
	assert.Equal(t, "user-123", claims.UserID)
	assert.Equal(t, "api_server", claims.Issuer)
	assert.True(t, claims.ExpiresAt.After(time.Now()))
}

func TestParseJWTRejectsExpired(t *testing.T) {
	claims := Claims{
		UserID: "user-123",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
		},
	}
	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(JWTSecret)
	assert.NoError(t, err)

	_, err = ParseJWT(expired)
	assert.Error(t, err)
}

func TestParseJWTRejectsBadSignature(t *testing.T) {
	claims := Claims{UserID: "user-123"}
	forged, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("other_secret"))
	assert.NoError(t, err)

	_, err = ParseJWT(forged)
	assert.Error(t, err)
}

func TestStripBearer(t *testing.T) {
	got, err := StripBearer("Bearer abc.def.ghi")
	assert.NoError(t, err)
	assert.Equal(t, "abc.def.ghi", got)

	_, err = StripBearer("abc.def.ghi")
	assert.Error(t, err)

	_, err = StripBearer("")
	assert.Error(t, err)
}
