package model

// MaxDatasetRegistries caps how many registry records one request may
// carry; larger batches need pagination support in the record store.
const MaxDatasetRegistries = 20

// GetDatasetRegistryRequest is the body of a batched retrieval or
// registry-get request.
type GetDatasetRegistryRequest struct {
	DatasetRegistryIDs []string `json:"datasetRegistryIds"`
}

// CreateDatasetRegistryRequest is the body of a registry create/update.
type CreateDatasetRegistryRequest struct {
	DatasetRegistries []Record `json:"datasetRegistries"`
}

// GetCreateUpdateDatasetRegistryResponse returns fully hydrated registry
// records after a create/update or a registry get.
type GetCreateUpdateDatasetRegistryResponse struct {
	DatasetRegistries []Record `json:"datasetRegistries"`
}
