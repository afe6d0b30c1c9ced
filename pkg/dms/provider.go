// Package dms defines the Data Management Service backend contract and
// the REST client that fulfills it.
package dms

import (
	"context"

	"github.com/ryansupak-avanade-001/osdu-dataset/pkg/model"
)

// ServiceProperties describes one registered DMS backend. Backends are
// keyed in the registry by a resource type pattern such as
// "dataset--File.*" or an exact kind subtype.
type ServiceProperties struct {
	BaseURL                  string `yaml:"base_url" json:"baseUrl"`
	Route                    string `yaml:"route" json:"route,omitempty"`
	AllowStorage             bool   `yaml:"allow_storage" json:"allowStorage"`
	APIKey                   string `yaml:"api_key" json:"-"`
	StagingLocationSupported bool   `yaml:"staging_location_supported" json:"stagingLocationSupported"`
	SupportsCopy             bool   `yaml:"supports_copy" json:"supportsCopy"`
}

// Provider is the capability contract every DMS backend fulfills.
// Callers must check AllowStorage on the resolved ServiceProperties
// before invoking GetStorageInstructions, and SupportsCopy before
// invoking CopyToPersistentStorage; an unsupported capability is not a
// backend failure.
type Provider interface {
	// GetStorageInstructions returns upload instructions for new
	// datasets of this backend's resource type family.
	GetStorageInstructions(ctx context.Context, hdr model.Headers) (*model.StorageInstructionsResponse, error)

	// GetRetrievalInstructions returns one delivery item per dataset
	// registry id, for ids whose records resolve to this backend.
	GetRetrievalInstructions(ctx context.Context, hdr model.Headers, ids []string) (*model.RetrievalInstructionsResponse, error)

	// CopyToPersistentStorage moves staged datasets to persistent
	// storage.
	CopyToPersistentStorage(ctx context.Context, hdr model.Headers, req model.CopyRequest) ([]model.CopyResult, error)

	// SupportsCopy reports whether the backend implements
	// CopyToPersistentStorage.
	SupportsCopy() bool
}

// Factory creates a Provider for a resolved backend descriptor.
type Factory interface {
	Create(props ServiceProperties) (Provider, error)
}

// ClientFactory builds REST providers.
type ClientFactory struct {
	cfg ClientConfig
}

// NewClientFactory creates a factory producing REST clients with shared
// client configuration.
func NewClientFactory(cfg ClientConfig) *ClientFactory {
	return &ClientFactory{cfg: cfg}
}

// Create builds a REST provider for the descriptor.
func (f *ClientFactory) Create(props ServiceProperties) (Provider, error) {
	return NewClient(props, f.cfg)
}

// Verify interface compliance.
var _ Factory = (*ClientFactory)(nil)
