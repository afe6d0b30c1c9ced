// Package storage provides the record store client used to persist and
// query dataset registry records.
package storage

import "github.com/ryansupak-avanade-001/osdu-dataset/pkg/model"

// MultiRecordIDs is the body of a batched record query.
type MultiRecordIDs struct {
	Records    []string `json:"records"`
	Attributes []string `json:"attributes,omitempty"`
}

// GetRecordsResponse is the result of a batched record query. A non-empty
// InvalidRecords or RetryRecords list is a hard failure for callers:
// nothing downstream may proceed on a partial batch.
type GetRecordsResponse struct {
	Records        []model.Record `json:"records"`
	InvalidRecords []string       `json:"invalidRecords"`
	RetryRecords   []string       `json:"retryRecords"`
}

// CreateUpdateRecordsResponse is the result of a record upsert. The
// record store may populate server-side fields, so callers re-fetch by
// RecordIDs for hydrated records.
type CreateUpdateRecordsResponse struct {
	RecordCount    int      `json:"recordCount"`
	RecordIDs      []string `json:"recordIds"`
	SkippedRecords []string `json:"skippedRecordIds,omitempty"`
}
