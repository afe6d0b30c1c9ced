package model

import "net/http"

// Header names forwarded to the record store and DMS backends.
const (
	HeaderPartitionID   = "data-partition-id"
	HeaderCorrelationID = "correlation-id"
	HeaderAuthorization = "Authorization"
	HeaderAppKey        = "AppKey"
)

// Headers carries the per-request identity forwarded on every outbound
// call. Values originate from the inbound HTTP request.
type Headers struct {
	Partition     string
	Authorization string
	CorrelationID string
}

// Apply sets the forwarded headers on an outbound request.
func (h Headers) Apply(header http.Header) {
	if h.Partition != "" {
		header.Set(HeaderPartitionID, h.Partition)
	}
	if h.Authorization != "" {
		header.Set(HeaderAuthorization, h.Authorization)
	}
	if h.CorrelationID != "" {
		header.Set(HeaderCorrelationID, h.CorrelationID)
	}
}
