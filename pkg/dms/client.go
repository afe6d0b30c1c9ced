package dms

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/ryansupak-avanade-001/osdu-dataset/pkg/apperror"
	"github.com/ryansupak-avanade-001/osdu-dataset/pkg/model"
)

// Subsystem is the name prefixed onto errors forwarded from a DMS
// backend.
const Subsystem = "DMS Service"

// ClientConfig holds settings shared by all DMS REST clients.
type ClientConfig struct {
	Timeout time.Duration `yaml:"timeout"`
}

// Client is a REST adapter for one DMS backend. One instance is created
// per resolved backend descriptor.
type Client struct {
	props ServiceProperties
	base  string
	http  *http.Client
}

// NewClient creates a REST client for a backend descriptor.
func NewClient(props ServiceProperties, cfg ClientConfig) (*Client, error) {
	if props.BaseURL == "" {
		return nil, fmt.Errorf("dms backend base URL is required")
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}

	return &Client{
		props: props,
		base:  strings.TrimRight(props.BaseURL, "/") + props.Route,
		http:  &http.Client{Timeout: cfg.Timeout},
	}, nil
}

// GetStorageInstructions returns upload instructions from the backend.
func (c *Client) GetStorageInstructions(ctx context.Context, hdr model.Headers) (*model.StorageInstructionsResponse, error) {
	var out model.StorageInstructionsResponse
	if err := c.do(ctx, hdr, http.MethodGet, "/getStorageInstructions", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetRetrievalInstructions returns delivery items for a batch of ids.
func (c *Client) GetRetrievalInstructions(ctx context.Context, hdr model.Headers, ids []string) (*model.RetrievalInstructionsResponse, error) {
	body := model.GetDatasetRegistryRequest{DatasetRegistryIDs: ids}
	var out model.RetrievalInstructionsResponse
	if err := c.do(ctx, hdr, http.MethodPost, "/getRetrievalInstructions", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CopyToPersistentStorage moves staged datasets to persistent storage.
func (c *Client) CopyToPersistentStorage(ctx context.Context, hdr model.Headers, req model.CopyRequest) ([]model.CopyResult, error) {
	if !c.props.SupportsCopy {
		return nil, apperror.MethodNotAllowed("DMS - Copy Not Supported",
			"the resolved DMS backend does not support copy to persistent storage")
	}
	var out []model.CopyResult
	if err := c.do(ctx, hdr, http.MethodPost, "/copy", req, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// SupportsCopy reports the backend's copy capability.
func (c *Client) SupportsCopy() bool {
	return c.props.SupportsCopy
}

func (c *Client) do(ctx context.Context, hdr model.Headers, method, path string, body, out any) error {
	var req *http.Request
	var err error

	if body != nil {
		encoded, marshalErr := json.Marshal(body)
		if marshalErr != nil {
			return fmt.Errorf("encoding %s request: %w", path, marshalErr)
		}
		req, err = http.NewRequestWithContext(ctx, method, c.base+path, bytes.NewReader(encoded))
	} else {
		req, err = http.NewRequestWithContext(ctx, method, c.base+path, nil)
	}
	if err != nil {
		return fmt.Errorf("building %s request: %w", path, err)
	}
	req.Header.Set("Content-Type", "application/json")
	hdr.Apply(req.Header)
	if c.props.APIKey != "" {
		req.Header.Set(model.HeaderAppKey, c.props.APIKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return apperror.Internal(fmt.Sprintf("%s: %v", Subsystem, err))
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var upstream apperror.Error
		if decodeErr := json.NewDecoder(resp.Body).Decode(&upstream); decodeErr != nil || upstream.Code == 0 {
			return apperror.Unparseable(Subsystem)
		}
		return apperror.Upstream(Subsystem, upstream.Code, upstream.Reason, upstream.Message)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return apperror.Unparseable(Subsystem)
	}
	return nil
}

// Verify interface compliance.
var _ Provider = (*Client)(nil)
