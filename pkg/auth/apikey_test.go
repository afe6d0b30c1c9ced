package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAPIKeyAuthenticate(t *testing.T) {
	hash, err := HashKey("s3cret")
	require.NoError(t, err)

	a := NewAPIKeyAuthenticator(APIKeyConfig{Keys: []APIKey{
		{Name: "ingest-worker", Hash: hash, Roles: []string{"dataset.editor"}},
	}})

	uc, err := a.Authenticate(WithToken(context.Background(), "s3cret"))
	require.NoError(t, err)
	assert.Equal(t, "apikey:ingest-worker", uc.UserID)
	assert.Equal(t, []string{"dataset.editor"}, uc.Roles)
	assert.Equal(t, "apikey", uc.AuthType)
}

func TestAPIKeyAuthenticateRejectsUnknownKey(t *testing.T) {
	hash, err := HashKey("s3cret")
	require.NoError(t, err)

	a := NewAPIKeyAuthenticator(APIKeyConfig{Keys: []APIKey{{Name: "ingest-worker", Hash: hash}}})

	_, err = a.Authenticate(WithToken(context.Background(), "wrong"))
	assert.Error(t, err)

	_, err = a.Authenticate(context.Background())
	assert.Error(t, err)
}

func TestUserContextRoundTrip(t *testing.T) {
	assert.Nil(t, GetUserContext(context.Background()))

	uc := &UserContext{UserID: "user-1", AuthType: "jwt"}
	ctx := WithUserContext(context.Background(), uc)
	assert.Equal(t, uc, GetUserContext(ctx))
}
