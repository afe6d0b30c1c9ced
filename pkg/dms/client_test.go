package dms

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ryansupak-avanade-001/osdu-dataset/pkg/apperror"
	"github.com/ryansupak-avanade-001/osdu-dataset/pkg/model"
)

var testHeaders = model.Headers{
	Partition:     "osdu",
	Authorization: "Bearer token",
	CorrelationID: "corr-1",
}

func TestClientGetStorageInstructions(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/dms/file/v1/getStorageInstructions", r.URL.Path)
		assert.Equal(t, "osdu", r.Header.Get(model.HeaderPartitionID))
		assert.Equal(t, "backend-key", r.Header.Get(model.HeaderAppKey))
		_, _ = w.Write([]byte(`{"storageLocation": {"signedUrl": "https://blob/upload"}, "providerKey": "AZURE"}`))
	}))
	defer server.Close()

	client, err := NewClient(ServiceProperties{
		BaseURL: server.URL,
		Route:   "/api/dms/file/v1",
		APIKey:  "backend-key",
	}, ClientConfig{})
	require.NoError(t, err)

	resp, err := client.GetStorageInstructions(context.Background(), testHeaders)
	require.NoError(t, err)
	assert.Equal(t, "AZURE", resp.ProviderKey)
	assert.Equal(t, "https://blob/upload", resp.StorageLocation["signedUrl"])
}

func TestClientGetRetrievalInstructions(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/getRetrievalInstructions", r.URL.Path)

		var body model.GetDatasetRegistryRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, []string{"osdu:File.Generic:1", "osdu:File.Generic:2"}, body.DatasetRegistryIDs)

		_, _ = w.Write([]byte(`{"delivery": [
			{"datasetRegistryId": "osdu:File.Generic:1", "providerKey": "AZURE"},
			{"datasetRegistryId": "osdu:File.Generic:2", "providerKey": "AZURE"}
		]}`))
	}))
	defer server.Close()

	client, err := NewClient(ServiceProperties{BaseURL: server.URL}, ClientConfig{})
	require.NoError(t, err)

	resp, err := client.GetRetrievalInstructions(context.Background(), testHeaders,
		[]string{"osdu:File.Generic:1", "osdu:File.Generic:2"})
	require.NoError(t, err)
	require.Len(t, resp.Delivery, 2)
	assert.Equal(t, "osdu:File.Generic:1", resp.Delivery[0].DatasetRegistryID)
}

func TestClientCopyNotSupported(t *testing.T) {
	called := false
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		called = true
	}))
	defer server.Close()

	client, err := NewClient(ServiceProperties{BaseURL: server.URL, SupportsCopy: false}, ClientConfig{})
	require.NoError(t, err)

	_, err = client.CopyToPersistentStorage(context.Background(), testHeaders, model.CopyRequest{})
	require.Error(t, err)

	appErr := apperror.As(err)
	assert.Equal(t, http.StatusMethodNotAllowed, appErr.Code)
	assert.Equal(t, "DMS - Copy Not Supported", appErr.Reason)
	assert.False(t, called, "backend must not be called when copy is unsupported")
}

func TestClientCopySupported(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/copy", r.URL.Path)
		_, _ = w.Write([]byte(`[{"success": true, "datasetBlobStoragePath": "persistent/path/1"}]`))
	}))
	defer server.Close()

	client, err := NewClient(ServiceProperties{BaseURL: server.URL, SupportsCopy: true}, ClientConfig{})
	require.NoError(t, err)

	results, err := client.CopyToPersistentStorage(context.Background(), testHeaders, model.CopyRequest{})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.True(t, results[0].Success)
	assert.Equal(t, "persistent/path/1", results[0].DatasetBlobStoragePath)
}

func TestClientForwardsUpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"code": 401, "reason": "Unauthorized", "message": "token expired"}`))
	}))
	defer server.Close()

	client, err := NewClient(ServiceProperties{BaseURL: server.URL}, ClientConfig{})
	require.NoError(t, err)

	_, err = client.GetStorageInstructions(context.Background(), testHeaders)
	require.Error(t, err)

	appErr := apperror.As(err)
	assert.Equal(t, 401, appErr.Code)
	assert.Equal(t, "DMS Service: Unauthorized", appErr.Reason)
	assert.Equal(t, "token expired", appErr.Message)
}

func TestClientUnparseableErrorBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte(`upstream exploded`))
	}))
	defer server.Close()

	client, err := NewClient(ServiceProperties{BaseURL: server.URL}, ClientConfig{})
	require.NoError(t, err)

	_, err = client.GetStorageInstructions(context.Background(), testHeaders)
	require.Error(t, err)

	appErr := apperror.As(err)
	assert.Equal(t, http.StatusInternalServerError, appErr.Code)
	assert.Contains(t, appErr.Message, "DMS Service")
}

func TestNewClientRequiresBaseURL(t *testing.T) {
	_, err := NewClient(ServiceProperties{}, ClientConfig{})
	assert.Error(t, err)
}

func TestClientFactory(t *testing.T) {
	factory := NewClientFactory(ClientConfig{})

	provider, err := factory.Create(ServiceProperties{BaseURL: "http://dms.example", SupportsCopy: true})
	require.NoError(t, err)
	assert.True(t, provider.SupportsCopy())

	_, err = factory.Create(ServiceProperties{})
	assert.Error(t, err)
}
