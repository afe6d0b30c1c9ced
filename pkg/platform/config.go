// Package platform provides the dataset service configuration.
package platform

import (
	"fmt"
	"os"
	"regexp"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/ryansupak-avanade-001/osdu-dataset/pkg/auth"
	"github.com/ryansupak-avanade-001/osdu-dataset/pkg/dms"
	"github.com/ryansupak-avanade-001/osdu-dataset/pkg/storage"
)

// Config holds the complete service configuration.
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Auth       AuthConfig       `yaml:"auth"`
	Database   DatabaseConfig   `yaml:"database"`
	Storage    storage.Config   `yaml:"storage"`
	Dms        DmsConfig        `yaml:"dms"`
	Validation ValidationConfig `yaml:"validation"`
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	Name    string `yaml:"name"`
	Version string `yaml:"version"`
	Address string `yaml:"address"`
}

// AuthConfig configures request authentication.
type AuthConfig struct {
	JWT            JWTAuthConfig    `yaml:"jwt"`
	APIKeys        APIKeyAuthConfig `yaml:"api_keys"`
	AllowAnonymous bool             `yaml:"allow_anonymous"` // default: false
}

// JWTAuthConfig configures bearer token validation.
type JWTAuthConfig struct {
	Enabled    bool   `yaml:"enabled"`
	Issuer     string `yaml:"issuer"`
	SigningKey string `yaml:"signing_key"`
}

// APIKeyAuthConfig configures API key authentication.
type APIKeyAuthConfig struct {
	Enabled bool          `yaml:"enabled"`
	Keys    []auth.APIKey `yaml:"keys"`
}

// DatabaseConfig configures the optional PostgreSQL registration store.
type DatabaseConfig struct {
	Enabled      bool          `yaml:"enabled"`
	URL          string        `yaml:"url"`
	MaxOpenConns int           `yaml:"max_open_conns"`
	CacheTTL     time.Duration `yaml:"cache_ttl"`
}

// DmsConfig configures backend resolution and the DMS clients.
type DmsConfig struct {
	Client dms.ClientConfig `yaml:"client"`

	// Backends maps resource type patterns to backend descriptors.
	// Used when the database registration store is disabled.
	Backends map[string]dms.ServiceProperties `yaml:"backends"`
}

// ValidationConfig selects the registry validation mode.
type ValidationConfig struct {
	Mode string `yaml:"mode"` // "partition" or "kind"
}

// LoadConfig reads, env-expands and parses a YAML config file.
func LoadConfig(path string) (*Config, error) {
	// #nosec G304 -- path is from CLI args, controlled by admin
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	return ParseConfig(data)
}

// ParseConfig parses YAML config bytes after env expansion.
func ParseConfig(data []byte) (*Config, error) {
	data = []byte(expandEnvVars(string(data)))

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	applyDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// expandEnvVars expands ${VAR} patterns in the string.
func expandEnvVars(s string) string {
	re := regexp.MustCompile(`\$\{([^}]+)\}`)
	return re.ReplaceAllStringFunc(s, func(match string) string {
		varName := match[2 : len(match)-1]
		return os.Getenv(varName)
	})
}

// applyDefaults applies default values to the config.
func applyDefaults(cfg *Config) {
	if cfg.Server.Name == "" {
		cfg.Server.Name = "dataset-service"
	}
	if cfg.Server.Version == "" {
		cfg.Server.Version = "1.0.0"
	}
	if cfg.Server.Address == "" {
		cfg.Server.Address = ":8080"
	}
	if cfg.Database.MaxOpenConns == 0 {
		cfg.Database.MaxOpenConns = 25
	}
	if cfg.Database.CacheTTL == 0 {
		cfg.Database.CacheTTL = 5 * time.Minute
	}
	if cfg.Storage.Timeout == 0 {
		cfg.Storage.Timeout = 30 * time.Second
	}
	if cfg.Dms.Client.Timeout == 0 {
		cfg.Dms.Client.Timeout = 30 * time.Second
	}
	if cfg.Validation.Mode == "" {
		cfg.Validation.Mode = "partition"
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	var errs []string

	if c.Storage.BaseURL == "" {
		errs = append(errs, "storage.base_url is required")
	}
	if c.Database.Enabled && c.Database.URL == "" {
		errs = append(errs, "database.url is required when the database is enabled")
	}
	if !c.Database.Enabled && len(c.Dms.Backends) == 0 {
		errs = append(errs, "dms.backends is required when the database is disabled")
	}
	if c.Auth.JWT.Enabled && c.Auth.JWT.Issuer == "" {
		errs = append(errs, "auth.jwt.issuer is required when JWT auth is enabled")
	}
	if c.Auth.JWT.Enabled && c.Auth.JWT.SigningKey == "" {
		errs = append(errs, "auth.jwt.signing_key is required when JWT auth is enabled")
	}
	if c.Auth.APIKeys.Enabled && len(c.Auth.APIKeys.Keys) == 0 {
		errs = append(errs, "auth.api_keys.keys is required when API key auth is enabled")
	}
	switch c.Validation.Mode {
	case "partition", "kind":
	default:
		errs = append(errs, fmt.Sprintf("validation.mode %q is not one of: partition, kind", c.Validation.Mode))
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid configuration:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}
