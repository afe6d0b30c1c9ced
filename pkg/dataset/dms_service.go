// Package dataset implements the dataset service orchestration: DMS
// backend resolution, batched retrieval fan-out, and registry
// validation and persistence.
package dataset

import (
	"context"
	"encoding/json"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/ryansupak-avanade-001/osdu-dataset/pkg/apperror"
	"github.com/ryansupak-avanade-001/osdu-dataset/pkg/dms"
	"github.com/ryansupak-avanade-001/osdu-dataset/pkg/model"
	"github.com/ryansupak-avanade-001/osdu-dataset/pkg/registry"
	"github.com/ryansupak-avanade-001/osdu-dataset/pkg/storage"
)

// Validation messages surfaced to callers.
const (
	msgResourceTypeNotRegistered = "DMS route for resource type '%s' does not exist or is not registered"
	msgStorageNotSupported       = "Storage operations are not supported for resource type '%s'"
	msgCopyNotSupported          = "Copy operations are not supported for resource type '%s'"
	msgMissingResourceTypeID     = "Dataset Registry '%s': Missing Resource Type ID"
	msgInvalidRecordGet          = "Storage Service: Invalid or Failed Record Get"
	msgEmptyRegistryIDs          = "datasetRegistryIds cannot be empty"
)

// DmsService resolves dataset registry records to DMS backends and
// brokers storage and retrieval instructions.
type DmsService struct {
	records  storage.Provider
	resolver registry.Resolver
	factory  dms.Factory
}

// NewDmsService creates the DMS orchestration service.
func NewDmsService(records storage.Provider, resolver registry.Resolver, factory dms.Factory) *DmsService {
	return &DmsService{records: records, resolver: resolver, factory: factory}
}

// GetStorageInstructions resolves a resource type to its backend and
// returns that backend's upload instructions. Backends whose descriptor
// disallows storage are rejected before any network call.
func (s *DmsService) GetStorageInstructions(ctx context.Context, hdr model.Headers, resourceType string) (*model.StorageInstructionsResponse, error) {
	props, err := s.resolveResourceType(ctx, resourceType)
	if err != nil {
		return nil, err
	}

	if !props.AllowStorage {
		return nil, apperror.MethodNotAllowed("DMS - Storage Not Supported",
			fmt.Sprintf(msgStorageNotSupported, resourceType))
	}

	provider, err := s.factory.Create(props)
	if err != nil {
		return nil, apperror.Internal(fmt.Sprintf("creating DMS client: %v", err))
	}
	return provider.GetStorageInstructions(ctx, hdr)
}

// retrievalGroup batches the registry ids that resolved to one resource
// type, preserving record-store return order within the group.
type retrievalGroup struct {
	resourceType string
	props        dms.ServiceProperties
	ids          []string
}

// GetRetrievalInstructions fetches the records for a batch of dataset
// registry ids, groups them by resolved resource type, issues one
// backend call per group, and merges the delivery items. Any failure
// fails the whole batch; no partial merge is returned.
//
//  1. Pull down all dataset registry records in one batched query and
//     fail if the store reports invalid or retryable ids.
//  2. Extract and resolve every record's resource type before any
//     backend is called.
//  3. One retrieval call per distinct resource type, then merge.
func (s *DmsService) GetRetrievalInstructions(ctx context.Context, hdr model.Headers, datasetRegistryIDs []string) (*model.RetrievalInstructionsResponse, error) {
	if len(datasetRegistryIDs) == 0 {
		return nil, apperror.BadRequest(msgEmptyRegistryIDs)
	}

	recordsResp, err := s.records.GetRecords(ctx, hdr, storage.MultiRecordIDs{Records: datasetRegistryIDs})
	if err != nil {
		return nil, err
	}

	if len(recordsResp.InvalidRecords) > 0 || len(recordsResp.RetryRecords) > 0 {
		message := msgInvalidRecordGet
		if encoded, jsonErr := json.Marshal(recordsResp); jsonErr == nil {
			message = string(encoded)
		}
		return nil, apperror.New(400, msgInvalidRecordGet, message)
	}

	groups, err := s.groupByResourceType(ctx, recordsResp.Records)
	if err != nil {
		return nil, err
	}

	// One backend round trip per distinct resource type. Calls run
	// concurrently; the first failure cancels the rest and the merge
	// only happens once every call has succeeded.
	results := make([][]model.DeliveryItem, len(groups))
	g, gctx := errgroup.WithContext(ctx)
	for i, group := range groups {
		g.Go(func() error {
			provider, err := s.factory.Create(group.props)
			if err != nil {
				return apperror.Internal(fmt.Sprintf("creating DMS client: %v", err))
			}
			resp, err := provider.GetRetrievalInstructions(gctx, hdr, group.ids)
			if err != nil {
				return err
			}
			results[i] = resp.Delivery
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	merged := &model.RetrievalInstructionsResponse{Delivery: make([]model.DeliveryItem, 0, len(datasetRegistryIDs))}
	for _, delivery := range results {
		merged.Delivery = append(merged.Delivery, delivery...)
	}
	return merged, nil
}

// CopyToPersistentStorage asks the backend registered for a resource
// type to move staged datasets to persistent storage.
func (s *DmsService) CopyToPersistentStorage(ctx context.Context, hdr model.Headers, resourceType string, req model.CopyRequest) ([]model.CopyResult, error) {
	props, err := s.resolveResourceType(ctx, resourceType)
	if err != nil {
		return nil, err
	}

	if !props.SupportsCopy {
		return nil, apperror.MethodNotAllowed("DMS - Copy Not Supported",
			fmt.Sprintf(msgCopyNotSupported, resourceType))
	}

	provider, err := s.factory.Create(props)
	if err != nil {
		return nil, apperror.Internal(fmt.Sprintf("creating DMS client: %v", err))
	}
	return provider.CopyToPersistentStorage(ctx, hdr, req)
}

func (s *DmsService) resolveResourceType(ctx context.Context, resourceType string) (dms.ServiceProperties, error) {
	props, found, err := s.resolver.Resolve(ctx, resourceType)
	if err != nil {
		return dms.ServiceProperties{}, apperror.Internal(fmt.Sprintf("resolving resource type: %v", err))
	}
	if !found {
		return dms.ServiceProperties{}, apperror.BadRequest(fmt.Sprintf(msgResourceTypeNotRegistered, resourceType))
	}
	return props, nil
}

// groupByResourceType resolves every record's resource type and groups
// the record ids by it, first-occurrence order. Missing and malformed
// resource type ids share one failure path; any unregistered type
// aborts before a single backend call is dispatched.
func (s *DmsService) groupByResourceType(ctx context.Context, records []model.Record) ([]retrievalGroup, error) {
	var groups []retrievalGroup
	index := make(map[string]int)

	for _, record := range records {
		resourceType, ok := record.ResourceTypeID()
		if !ok {
			return nil, apperror.BadRequest(fmt.Sprintf(msgMissingResourceTypeID, record.ID))
		}

		pos, seen := index[resourceType]
		if !seen {
			props, err := s.resolveResourceType(ctx, resourceType)
			if err != nil {
				return nil, err
			}
			index[resourceType] = len(groups)
			groups = append(groups, retrievalGroup{resourceType: resourceType, props: props})
			pos = index[resourceType]
		}
		groups[pos].ids = append(groups[pos].ids, record.ID)
	}
	return groups, nil
}
