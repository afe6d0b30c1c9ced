package storage

import (
	"context"

	"github.com/ryansupak-avanade-001/osdu-dataset/pkg/model"
)

// Provider is the record store capability consumed by the dataset
// services. The REST client implements it; tests substitute fakes.
type Provider interface {
	// CreateOrUpdateRecords upserts a batch of registry records.
	CreateOrUpdateRecords(ctx context.Context, hdr model.Headers, records []model.Record) (*CreateUpdateRecordsResponse, error)

	// GetRecords fetches a batch of records by id.
	GetRecords(ctx context.Context, hdr model.Headers, ids MultiRecordIDs) (*GetRecordsResponse, error)

	// GetSchema fetches the schema registered for a kind. A missing
	// schema is an error: nothing can be validated or persisted
	// without one.
	GetSchema(ctx context.Context, hdr model.Headers, kind string) (*model.Schema, error)

	// DeleteRecord removes a record by id.
	DeleteRecord(ctx context.Context, hdr model.Headers, id string) error
}
