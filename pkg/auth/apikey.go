package auth

import (
	"context"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// APIKey is one configured API key. Hash is a bcrypt hash of the key
// value; plaintext keys are never stored in config.
type APIKey struct {
	Name  string   `yaml:"name"`
	Hash  string   `yaml:"hash"`
	Roles []string `yaml:"roles"`
}

// APIKeyConfig holds the configured API keys.
type APIKeyConfig struct {
	Keys []APIKey `yaml:"keys"`
}

// APIKeyAuthenticator authenticates against bcrypt-hashed API keys.
type APIKeyAuthenticator struct {
	keys []APIKey
}

// NewAPIKeyAuthenticator creates an API key authenticator.
func NewAPIKeyAuthenticator(cfg APIKeyConfig) *APIKeyAuthenticator {
	return &APIKeyAuthenticator{keys: cfg.Keys}
}

// Authenticate compares the presented key against every configured hash.
func (a *APIKeyAuthenticator) Authenticate(ctx context.Context) (*UserContext, error) {
	presented := GetToken(ctx)
	if presented == "" {
		return nil, fmt.Errorf("no API key found in context")
	}

	for i := range a.keys {
		key := &a.keys[i]
		if bcrypt.CompareHashAndPassword([]byte(key.Hash), []byte(presented)) == nil {
			return &UserContext{
				UserID:   "apikey:" + key.Name,
				Roles:    key.Roles,
				AuthType: "apikey",
			}, nil
		}
	}
	return nil, fmt.Errorf("invalid API key")
}

// HashKey produces a bcrypt hash suitable for the Hash config field.
func HashKey(key string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(key), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hashing api key: %w", err)
	}
	return string(hash), nil
}
