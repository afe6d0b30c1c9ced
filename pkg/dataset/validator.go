package dataset

import (
	"context"
	"fmt"

	"github.com/ryansupak-avanade-001/osdu-dataset/pkg/apperror"
	"github.com/ryansupak-avanade-001/osdu-dataset/pkg/model"
	"github.com/ryansupak-avanade-001/osdu-dataset/pkg/storage"
)

// ValidationMode selects how registry records are validated.
type ValidationMode string

const (
	// ModePartition validates every record against the partition's
	// single dataset-registry schema.
	ModePartition ValidationMode = "partition"

	// ModeKind validates each record against the schema registered for
	// its own kind.
	ModeKind ValidationMode = "kind"
)

// Registry validation messages.
const (
	datasetRegistrySchemaFormat = "%s:osdu:dataset-registry:0.0.1"

	msgMissingDatasetProperties = "DatasetProperties cannot be null"
	msgMissingRegistries        = "datasetRegistries cannot be empty"
	msgMaxRegistriesExceeded    = "Only 20 Dataset Registries can be ingested at a time"
	msgMissingSchemaFormat      = "No schema for Dataset Registry was found: Expecting '%s'. It must be registered first."
	msgMissingPropertyFormat    = "Dataset Registry Schema Validation Failed: Expected property '%s' is missing"
	msgInvalidSchemaKindFormat  = "Dataset Registry Schema Validation Failed: Kind must be '%s'"
	msgInvalidKindFormat        = "Dataset Registry '%s' is not a valid dataset kind"
	msgInvalidRecordIDFormat    = "Dataset Registry id '%s' does not match tenant '%s' and kind '%s'"
)

// Validator checks a batch of incoming dataset registry records before
// anything is persisted. All-or-nothing: one failing record rejects the
// whole batch.
type Validator struct {
	mode    ValidationMode
	records storage.Provider
}

// NewValidator creates a validator in the given mode.
func NewValidator(mode ValidationMode, records storage.Provider) (*Validator, error) {
	switch mode {
	case ModePartition, ModeKind:
	case "":
		mode = ModePartition
	default:
		return nil, fmt.Errorf("unknown validation mode %q", mode)
	}
	return &Validator{mode: mode, records: records}, nil
}

// Validate checks the batch. It does not mutate its input; validating
// the same batch twice yields the same decision.
func (v *Validator) Validate(ctx context.Context, hdr model.Headers, registries []model.Record) error {
	if len(registries) == 0 {
		return apperror.BadRequest(msgMissingRegistries)
	}
	if len(registries) > model.MaxDatasetRegistries {
		return apperror.BadRequest(msgMaxRegistriesExceeded)
	}

	if v.mode == ModeKind {
		return v.validateByKind(ctx, hdr, registries)
	}
	return v.validateByPartition(ctx, hdr, registries)
}

// validateByPartition fetches the partition's dataset-registry schema
// once and validates every record against it.
func (v *Validator) validateByPartition(ctx context.Context, hdr model.Headers, registries []model.Record) error {
	schemaName := fmt.Sprintf(datasetRegistrySchemaFormat, hdr.Partition)

	schema, err := v.records.GetSchema(ctx, hdr, schemaName)
	if err != nil || schema == nil || schema.Kind == "" {
		return apperror.BadRequest(fmt.Sprintf(msgMissingSchemaFormat, schemaName))
	}

	for _, record := range registries {
		if record.Kind != schema.Kind {
			return apperror.BadRequest(fmt.Sprintf(msgInvalidSchemaKindFormat, schema.Kind))
		}
		if err := validateRequiredProperties(record, schema); err != nil {
			return err
		}
		if !model.HasPath(record.Data, model.DatasetPropertiesProperty) {
			return apperror.BadRequest(msgMissingDatasetProperties)
		}
	}
	return nil
}

// validateByKind validates each record against the schema registered
// for its own kind. Schemas are cached per distinct kind for the
// duration of this call only.
func (v *Validator) validateByKind(ctx context.Context, hdr model.Headers, registries []model.Record) error {
	schemas := make(map[string]*model.Schema)

	for _, record := range registries {
		if !model.IsDatasetKind(record.Kind) {
			return apperror.BadRequest(fmt.Sprintf(msgInvalidKindFormat, record.Kind))
		}

		if record.ID != "" && !model.IsRecordIDValid(record.ID, hdr.Partition, record.Kind) {
			return apperror.BadRequest(fmt.Sprintf(msgInvalidRecordIDFormat, record.ID, hdr.Partition, record.Kind))
		}

		schema, cached := schemas[record.Kind]
		if !cached {
			fetched, err := v.records.GetSchema(ctx, hdr, record.Kind)
			if err != nil {
				return err
			}
			if fetched == nil || fetched.Kind == "" {
				return apperror.BadRequest(fmt.Sprintf(msgMissingSchemaFormat, record.Kind))
			}
			schemas[record.Kind] = fetched
			schema = fetched
		}

		if err := validateRequiredProperties(record, schema); err != nil {
			return err
		}
	}
	return nil
}

func validateRequiredProperties(record model.Record, schema *model.Schema) error {
	for _, item := range schema.Schema {
		if !model.HasPath(record.Data, item.Path) {
			return apperror.BadRequest(fmt.Sprintf(msgMissingPropertyFormat, item.Path))
		}
	}
	return nil
}
