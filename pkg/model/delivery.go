package model

// DeliveryItem carries one dataset's retrieval instructions as produced
// by a DMS backend, e.g. a signed download URL under RetrievalProperties.
type DeliveryItem struct {
	DatasetRegistryID   string         `json:"datasetRegistryId"`
	RetrievalProperties map[string]any `json:"retrievalProperties"`
	ProviderKey         string         `json:"providerKey"`
}

// RetrievalInstructionsResponse is the merged response for a batch of
// dataset registry ids, one DeliveryItem per valid input id.
type RetrievalInstructionsResponse struct {
	Delivery []DeliveryItem `json:"delivery"`
}

// StorageInstructionsResponse carries backend-specific upload
// instructions such as a signed URL or a staging location.
type StorageInstructionsResponse struct {
	StorageLocation map[string]any `json:"storageLocation"`
	ProviderKey     string         `json:"providerKey"`
}

// CopyRequest asks a DMS backend to move datasets from their staging
// location to persistent storage.
type CopyRequest struct {
	DatasetSources []Record `json:"datasetSources"`
}

// CopyResult reports the outcome of one dataset copy.
type CopyResult struct {
	Success                bool   `json:"success"`
	DatasetBlobStoragePath string `json:"datasetBlobStoragePath,omitempty"`
}
