package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var secret = []byte("test-secret")

func TestGenerateAndParseToken(t *testing.T) {
	token, err := GenerateToken("ci-bot", secret, time.Minute)
	require.NoError(t, err)

	subject, err := ParseToken(token, secret)
	require.NoError(t, err)
	assert.Equal(t, "ci-bot", subject)
}

func TestParseToken_Rejects(t *testing.T) {
	expired, err := GenerateToken("ci-bot", secret, -time.Minute)
	require.NoError(t, err)

	wrongKey, err := GenerateToken("ci-bot", []byte("other"), time.Minute)
	require.NoError(t, err)

	noExp, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "x"}).SignedString(secret)
	require.NoError(t, err)

	noSub, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
	}).SignedString(secret)
	require.NoError(t, err)

	tests := map[string]string{
		"expired":    expired,
		"wrong key":  wrongKey,
		"no expiry":  noExp,
		"no subject": noSub,
		"garbage":    "not.a.token",
	}
	for name, token := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := ParseToken(token, secret)
			assert.True(t, errors.Is(err, ErrInvalidToken), "got %v", err)
		})
	}
}

func TestGenerateToken_EmptySecret(t *testing.T) {
	_, err := GenerateToken("x", nil, time.Minute)
	assert.Error(t, err)
}

func TestTokenFromHeader(t *testing.T) {
	token, err := TokenFromHeader("Bearer abc.def")
	require.NoError(t, err)
	assert.Equal(t, "abc.def", token)

	_, err = TokenFromHeader("Basic abc")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
