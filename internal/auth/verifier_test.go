package auth_test

import (
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"notification-gateway/internal/auth"
)

const (
	testSecret = "test-secret"
	testIssuer = "hr-portal"
)

func signToken(t *testing.T, method jwt.SigningMethod, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(method, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func TestVerifier_ValidToken(t *testing.T) {
	v := auth.NewVerifier([]byte(testSecret), testIssuer)

	token := signToken(t, jwt.SigningMethodHS256, testSecret, jwt.MapClaims{
		"sub": "u1",
		"iss": testIssuer,
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	claims, err := v.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.Subject)
}

func TestVerifier_ExpiredToken(t *testing.T) {
	v := auth.NewVerifier([]byte(testSecret), testIssuer)

	token := signToken(t, jwt.SigningMethodHS256, testSecret, jwt.MapClaims{
		"sub": "u1",
		"iss": testIssuer,
		"exp": time.Now().Add(-time.Hour).Unix(),
	})

	_, err := v.Verify(token)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestVerifier_MissingExpiry(t *testing.T) {
	v := auth.NewVerifier([]byte(testSecret), testIssuer)

	token := signToken(t, jwt.SigningMethodHS256, testSecret, jwt.MapClaims{
		"sub": "u1",
		"iss": testIssuer,
	})

	_, err := v.Verify(token)
	assert.Error(t, err)
}

func TestVerifier_BadSignature(t *testing.T) {
	v := auth.NewVerifier([]byte(testSecret), testIssuer)

	token := signToken(t, jwt.SigningMethodHS256, "other-secret", jwt.MapClaims{
		"sub": "u1",
		"iss": testIssuer,
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	_, err := v.Verify(token)
	assert.ErrorIs(t, err, jwt.ErrTokenSignatureInvalid)
}

func TestVerifier_WrongIssuer(t *testing.T) {
	v := auth.NewVerifier([]byte(testSecret), testIssuer)

	token := signToken(t, jwt.SigningMethodHS256, testSecret, jwt.MapClaims{
		"sub": "u1",
		"iss": "someone-else",
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	_, err := v.Verify(token)
	assert.Error(t, err)
}

func TestVerifier_MissingSubject(t *testing.T) {
	v := auth.NewVerifier([]byte(testSecret), testIssuer)

	token := signToken(t, jwt.SigningMethodHS256, testSecret, jwt.MapClaims{
		"iss": testIssuer,
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	_, err := v.Verify(token)
	assert.Error(t, err)
}

func TestVerifier_MalformedToken(t *testing.T) {
	v := auth.NewVerifier([]byte(testSecret), testIssuer)

	_, err := v.Verify("not-a-jwt")
	assert.Error(t, err)
}
