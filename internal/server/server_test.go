package server

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ryansupak-avanade-001/osdu-dataset/pkg/auth"
	"github.com/ryansupak-avanade-001/osdu-dataset/pkg/dms"
	"github.com/ryansupak-avanade-001/osdu-dataset/pkg/platform"
	"github.com/ryansupak-avanade-001/osdu-dataset/pkg/storage"
)

func testConfig() *platform.Config {
	return &platform.Config{
		Server: platform.ServerConfig{
			Name:    "dataset-service",
			Version: "test",
			Address: "127.0.0.1:0",
		},
		Storage: storage.Config{BaseURL: "http://storage.example"},
		Dms: platform.DmsConfig{
			Backends: map[string]dms.ServiceProperties{
				"dataset--File.*": {BaseURL: "http://file-dms.example", AllowStorage: true},
			},
		},
		Validation: platform.ValidationConfig{Mode: "partition"},
	}
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestNewWithStaticRegistry(t *testing.T) {
	srv, err := New(testConfig(), testLogger())
	require.NoError(t, err)
	assert.NotNil(t, srv)
}

func TestNewRejectsBadBackend(t *testing.T) {
	cfg := testConfig()
	cfg.Dms.Backends["dataset--Broken.*"] = dms.ServiceProperties{}

	_, err := New(cfg, testLogger())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "registering dms backend")
}

func TestNewRejectsBadValidationMode(t *testing.T) {
	cfg := testConfig()
	cfg.Validation.Mode = "strict"

	_, err := New(cfg, testLogger())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "creating validator")
}

func TestNewRejectsBadJWTConfig(t *testing.T) {
	cfg := testConfig()
	cfg.Auth.JWT.Enabled = true

	_, err := New(cfg, testLogger())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "creating jwt authenticator")
}

func TestBuildAuthenticators(t *testing.T) {
	cfg := testConfig()
	authenticators, err := buildAuthenticators(cfg)
	require.NoError(t, err)
	assert.Empty(t, authenticators)

	cfg.Auth.JWT = platform.JWTAuthConfig{Enabled: true, Issuer: "https://issuer.example", SigningKey: "key"}
	cfg.Auth.APIKeys = platform.APIKeyAuthConfig{Enabled: true, Keys: []auth.APIKey{{Name: "worker", Hash: "hash"}}}

	authenticators, err = buildAuthenticators(cfg)
	require.NoError(t, err)
	assert.Len(t, authenticators, 2)
}
