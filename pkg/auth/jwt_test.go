package auth

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSigningKey = []byte("test-signing-key")

func signToken(t *testing.T, claims jwt.MapClaims, key []byte) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(key)
	require.NoError(t, err)
	return signed
}

func TestJWTAuthenticate(t *testing.T) {
	a, err := NewJWTAuthenticator(JWTConfig{Issuer: "https://issuer.example", SigningKey: testSigningKey})
	require.NoError(t, err)

	token := signToken(t, jwt.MapClaims{
		"iss":   "https://issuer.example",
		"sub":   "user-1",
		"email": "user@example.com",
		"roles": []any{"dataset.viewer", "dataset.editor"},
		"exp":   time.Now().Add(time.Hour).Unix(),
	}, testSigningKey)

	uc, err := a.Authenticate(WithToken(context.Background(), token))
	require.NoError(t, err)
	assert.Equal(t, "user-1", uc.UserID)
	assert.Equal(t, "user@example.com", uc.Email)
	assert.Equal(t, []string{"dataset.viewer", "dataset.editor"}, uc.Roles)
	assert.Equal(t, "jwt", uc.AuthType)
}

func TestJWTAuthenticateFailures(t *testing.T) {
	a, err := NewJWTAuthenticator(JWTConfig{Issuer: "https://issuer.example", SigningKey: testSigningKey})
	require.NoError(t, err)

	base := jwt.MapClaims{
		"iss": "https://issuer.example",
		"sub": "user-1",
		"exp": time.Now().Add(time.Hour).Unix(),
	}

	t.Run("no token", func(t *testing.T) {
		_, err := a.Authenticate(context.Background())
		assert.Error(t, err)
	})

	t.Run("wrong signing key", func(t *testing.T) {
		token := signToken(t, base, []byte("other-key"))
		_, err := a.Authenticate(WithToken(context.Background(), token))
		assert.Error(t, err)
	})

	t.Run("expired", func(t *testing.T) {
		token := signToken(t, jwt.MapClaims{
			"iss": "https://issuer.example",
			"sub": "user-1",
			"exp": time.Now().Add(-time.Hour).Unix(),
		}, testSigningKey)
		_, err := a.Authenticate(WithToken(context.Background(), token))
		assert.Error(t, err)
	})

	t.Run("wrong issuer", func(t *testing.T) {
		token := signToken(t, jwt.MapClaims{
			"iss": "https://evil.example",
			"sub": "user-1",
			"exp": time.Now().Add(time.Hour).Unix(),
		}, testSigningKey)
		_, err := a.Authenticate(WithToken(context.Background(), token))
		assert.Error(t, err)
	})

	t.Run("missing sub", func(t *testing.T) {
		token := signToken(t, jwt.MapClaims{
			"iss": "https://issuer.example",
			"exp": time.Now().Add(time.Hour).Unix(),
		}, testSigningKey)
		_, err := a.Authenticate(WithToken(context.Background(), token))
		assert.Error(t, err)
	})
}

func TestNewJWTAuthenticatorValidation(t *testing.T) {
	_, err := NewJWTAuthenticator(JWTConfig{SigningKey: testSigningKey})
	assert.Error(t, err)

	_, err = NewJWTAuthenticator(JWTConfig{Issuer: "https://issuer.example"})
	assert.Error(t, err)
}
