package dataset

import (
	"context"
	"encoding/json"

	"github.com/ryansupak-avanade-001/osdu-dataset/pkg/apperror"
	"github.com/ryansupak-avanade-001/osdu-dataset/pkg/model"
	"github.com/ryansupak-avanade-001/osdu-dataset/pkg/storage"
)

// RegistryService coordinates validation, persistence and re-fetch of
// dataset registry records.
type RegistryService struct {
	records   storage.Provider
	validator *Validator
}

// NewRegistryService creates the registry orchestration service.
func NewRegistryService(records storage.Provider, validator *Validator) *RegistryService {
	return &RegistryService{records: records, validator: validator}
}

// CreateOrUpdate validates the whole batch, persists it, then re-fetches
// the persisted records so the response carries server-populated fields.
// Validation fully precedes the write: on bad input nothing is persisted.
func (s *RegistryService) CreateOrUpdate(ctx context.Context, hdr model.Headers, registries []model.Record) (*model.GetCreateUpdateDatasetRegistryResponse, error) {
	if err := s.validator.Validate(ctx, hdr, registries); err != nil {
		return nil, err
	}

	upserted, err := s.records.CreateOrUpdateRecords(ctx, hdr, registries)
	if err != nil {
		return nil, err
	}

	// The upsert response only carries ids; a second round trip returns
	// the hydrated records.
	fetched, err := s.getRecordsStrict(ctx, hdr, upserted.RecordIDs)
	if err != nil {
		return nil, err
	}

	return &model.GetCreateUpdateDatasetRegistryResponse{DatasetRegistries: fetched.Records}, nil
}

// GetDatasetRegistries fetches a batch of registry records by id.
func (s *RegistryService) GetDatasetRegistries(ctx context.Context, hdr model.Headers, ids []string) (*model.GetCreateUpdateDatasetRegistryResponse, error) {
	if len(ids) == 0 {
		return nil, apperror.BadRequest(msgEmptyRegistryIDs)
	}

	fetched, err := s.getRecordsStrict(ctx, hdr, ids)
	if err != nil {
		return nil, err
	}
	return &model.GetCreateUpdateDatasetRegistryResponse{DatasetRegistries: fetched.Records}, nil
}

// Delete removes a dataset registry record.
func (s *RegistryService) Delete(_ context.Context, _ model.Headers, _ string) error {
	// TODO(delete): needs a soft-delete story in the record store
	// before this can be wired to Provider.DeleteRecord.
	return apperror.NotImplemented("Delete is Not Yet Implemented")
}

func (s *RegistryService) getRecordsStrict(ctx context.Context, hdr model.Headers, ids []string) (*storage.GetRecordsResponse, error) {
	fetched, err := s.records.GetRecords(ctx, hdr, storage.MultiRecordIDs{Records: ids})
	if err != nil {
		return nil, err
	}

	if len(fetched.InvalidRecords) > 0 || len(fetched.RetryRecords) > 0 {
		message := msgInvalidRecordGet
		if encoded, jsonErr := json.Marshal(fetched); jsonErr == nil {
			message = string(encoded)
		}
		return nil, apperror.New(400, msgInvalidRecordGet, message)
	}
	return fetched, nil
}
