package dataset

import (
	"context"
	"fmt"
	"sync"

	"github.com/ryansupak-avanade-001/osdu-dataset/pkg/dms"
	"github.com/ryansupak-avanade-001/osdu-dataset/pkg/model"
	"github.com/ryansupak-avanade-001/osdu-dataset/pkg/storage"
)

// fakeRecords is an in-test storage.Provider with per-call hooks.
type fakeRecords struct {
	getRecordsFn     func(storage.MultiRecordIDs) (*storage.GetRecordsResponse, error)
	createRecordsFn  func([]model.Record) (*storage.CreateUpdateRecordsResponse, error)
	getSchemaFn      func(kind string) (*model.Schema, error)
	getRecordsCalls  int
	createCalls      int
	getSchemaCalls   int
	getSchemaKinds   []string
	deleteRecordFn   func(id string) error
	deleteCalls      int
}

func (f *fakeRecords) GetRecords(_ context.Context, _ model.Headers, ids storage.MultiRecordIDs) (*storage.GetRecordsResponse, error) {
	f.getRecordsCalls++
	if f.getRecordsFn == nil {
		return &storage.GetRecordsResponse{}, nil
	}
	return f.getRecordsFn(ids)
}

func (f *fakeRecords) CreateOrUpdateRecords(_ context.Context, _ model.Headers, records []model.Record) (*storage.CreateUpdateRecordsResponse, error) {
	f.createCalls++
	if f.createRecordsFn == nil {
		return &storage.CreateUpdateRecordsResponse{}, nil
	}
	return f.createRecordsFn(records)
}

func (f *fakeRecords) GetSchema(_ context.Context, _ model.Headers, kind string) (*model.Schema, error) {
	f.getSchemaCalls++
	f.getSchemaKinds = append(f.getSchemaKinds, kind)
	if f.getSchemaFn == nil {
		return nil, fmt.Errorf("no schema configured")
	}
	return f.getSchemaFn(kind)
}

func (f *fakeRecords) DeleteRecord(_ context.Context, _ model.Headers, id string) error {
	f.deleteCalls++
	if f.deleteRecordFn == nil {
		return nil
	}
	return f.deleteRecordFn(id)
}

var _ storage.Provider = (*fakeRecords)(nil)

// fakeResolver maps exact resource types to descriptors.
type fakeResolver struct {
	backends map[string]dms.ServiceProperties
	err      error
	calls    int
}

func (r *fakeResolver) Resolve(_ context.Context, resourceType string) (dms.ServiceProperties, bool, error) {
	r.calls++
	if r.err != nil {
		return dms.ServiceProperties{}, false, r.err
	}
	props, ok := r.backends[resourceType]
	return props, ok, nil
}

// fakeProvider records calls made against one backend descriptor.
type fakeProvider struct {
	props dms.ServiceProperties

	mu             sync.Mutex
	retrievalIDs   [][]string
	retrievalErr   error
	storageCalls   int
	copyCalls      int
	copyErr        error
	copyResults    []model.CopyResult
	storageResp    *model.StorageInstructionsResponse
}

func (p *fakeProvider) GetStorageInstructions(context.Context, model.Headers) (*model.StorageInstructionsResponse, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.storageCalls++
	if p.storageResp != nil {
		return p.storageResp, nil
	}
	return &model.StorageInstructionsResponse{ProviderKey: "TEST"}, nil
}

func (p *fakeProvider) GetRetrievalInstructions(_ context.Context, _ model.Headers, ids []string) (*model.RetrievalInstructionsResponse, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.retrievalIDs = append(p.retrievalIDs, ids)
	if p.retrievalErr != nil {
		return nil, p.retrievalErr
	}
	resp := &model.RetrievalInstructionsResponse{}
	for _, id := range ids {
		resp.Delivery = append(resp.Delivery, model.DeliveryItem{
			DatasetRegistryID: id,
			ProviderKey:       p.props.BaseURL,
		})
	}
	return resp, nil
}

func (p *fakeProvider) CopyToPersistentStorage(context.Context, model.Headers, model.CopyRequest) ([]model.CopyResult, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.copyCalls++
	if p.copyErr != nil {
		return nil, p.copyErr
	}
	return p.copyResults, nil
}

func (p *fakeProvider) SupportsCopy() bool {
	return p.props.SupportsCopy
}

var _ dms.Provider = (*fakeProvider)(nil)

// fakeFactory hands out one recording provider per base URL so tests can
// assert which backends were exercised.
type fakeFactory struct {
	mu        sync.Mutex
	providers map[string]*fakeProvider
	createErr error
}

func newFakeFactory() *fakeFactory {
	return &fakeFactory{providers: make(map[string]*fakeProvider)}
}

func (f *fakeFactory) Create(props dms.ServiceProperties) (dms.Provider, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return nil, f.createErr
	}
	provider, ok := f.providers[props.BaseURL]
	if !ok {
		provider = &fakeProvider{props: props}
		f.providers[props.BaseURL] = provider
	}
	return provider, nil
}

var _ dms.Factory = (*fakeFactory)(nil)

// registryRecord builds a stored dataset registry record pointing at a
// resource type.
func registryRecord(id, resourceType string) model.Record {
	return model.Record{
		ID:   id,
		Kind: "osdu:wks:dataset--File.Generic:1.0.0",
		Data: map[string]any{
			model.ResourceTypeIDProperty: resourceType,
		},
	}
}
