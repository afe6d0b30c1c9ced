package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ryansupak-avanade-001/osdu-dataset/pkg/apperror"
	"github.com/ryansupak-avanade-001/osdu-dataset/pkg/model"
)

// Subsystem is the name prefixed onto errors forwarded from the record
// store.
const Subsystem = "Storage Service"

// Config holds record store client configuration.
type Config struct {
	BaseURL string        `yaml:"base_url"`
	APIKey  string        `yaml:"api_key"`
	Timeout time.Duration `yaml:"timeout"`
}

// Client is the REST record store client.
type Client struct {
	cfg  Config
	http *http.Client
}

// NewClient creates a record store client.
func NewClient(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("record store base URL is required")
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")

	return &Client{
		cfg:  cfg,
		http: &http.Client{Timeout: cfg.Timeout},
	}, nil
}

// CreateOrUpdateRecords upserts a batch of registry records.
func (c *Client) CreateOrUpdateRecords(ctx context.Context, hdr model.Headers, records []model.Record) (*CreateUpdateRecordsResponse, error) {
	var out CreateUpdateRecordsResponse
	if err := c.do(ctx, hdr, http.MethodPut, "/records", records, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetRecords fetches a batch of records by id.
func (c *Client) GetRecords(ctx context.Context, hdr model.Headers, ids MultiRecordIDs) (*GetRecordsResponse, error) {
	var out GetRecordsResponse
	if err := c.do(ctx, hdr, http.MethodPost, "/query/records", ids, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetSchema fetches the schema registered for a kind.
func (c *Client) GetSchema(ctx context.Context, hdr model.Headers, kind string) (*model.Schema, error) {
	var out model.Schema
	if err := c.do(ctx, hdr, http.MethodGet, "/schemas/"+url.PathEscape(kind), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteRecord removes a record by id.
func (c *Client) DeleteRecord(ctx context.Context, hdr model.Headers, id string) error {
	return c.do(ctx, hdr, http.MethodDelete, "/records/"+url.PathEscape(id), nil, nil)
}

func (c *Client) do(ctx context.Context, hdr model.Headers, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding %s request: %w", path, err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.cfg.BaseURL+path, reader)
	if err != nil {
		return fmt.Errorf("building %s request: %w", path, err)
	}
	req.Header.Set("Content-Type", "application/json")
	hdr.Apply(req.Header)
	if c.cfg.APIKey != "" {
		req.Header.Set(model.HeaderAppKey, c.cfg.APIKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return apperror.Internal(fmt.Sprintf("%s: %v", Subsystem, err))
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return parseErrorBody(resp)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return apperror.Unparseable(Subsystem)
	}
	return nil
}

// parseErrorBody decodes a structured error response, preserving the
// upstream code, reason and message. A body that cannot be decoded is
// reported as its own error class.
func parseErrorBody(resp *http.Response) error {
	var body apperror.Error
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil || body.Code == 0 {
		return apperror.Unparseable(Subsystem)
	}
	return apperror.Upstream(Subsystem, body.Code, body.Reason, body.Message)
}

// Verify interface compliance.
var _ Provider = (*Client)(nil)
