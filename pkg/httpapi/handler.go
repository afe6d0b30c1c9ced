package httpapi

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/ryansupak-avanade-001/osdu-dataset/pkg/apperror"
	"github.com/ryansupak-avanade-001/osdu-dataset/pkg/audit"
	"github.com/ryansupak-avanade-001/osdu-dataset/pkg/dataset"
	"github.com/ryansupak-avanade-001/osdu-dataset/pkg/model"
)

// Handler serves the dataset service API.
type Handler struct {
	dms      *dataset.DmsService
	registry *dataset.RegistryService
	audit    *audit.Logger
	log      *slog.Logger
}

// NewHandler creates the API handler.
func NewHandler(dmsService *dataset.DmsService, registryService *dataset.RegistryService, auditLogger *audit.Logger, log *slog.Logger) *Handler {
	if log == nil {
		log = slog.Default()
	}
	return &Handler{dms: dmsService, registry: registryService, audit: auditLogger, log: log}
}

// Register wires the API routes onto a mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /getStorageInstructions", h.getStorageInstructions)
	mux.HandleFunc("GET /getRetrievalInstructions", h.getRetrievalInstructionsByID)
	mux.HandleFunc("POST /getRetrievalInstructions", h.getRetrievalInstructions)
	mux.HandleFunc("POST /copy", h.copyToPersistentStorage)
	mux.HandleFunc("PUT /registry", h.createOrUpdateRegistry)
	mux.HandleFunc("POST /registry/query", h.getRegistry)
	mux.HandleFunc("DELETE /registry/{id}", h.deleteRegistry)
}

func (h *Handler) getStorageInstructions(w http.ResponseWriter, r *http.Request) {
	hdr, ok := h.requireHeaders(w, r)
	if !ok {
		return
	}

	kindSubType := r.URL.Query().Get("kindSubType")
	if kindSubType == "" {
		h.writeError(w, hdr, apperror.BadRequest("kindSubType is required"))
		return
	}

	resp, err := h.dms.GetStorageInstructions(r.Context(), hdr, kindSubType)
	h.audit.Record(r.Context(), hdr.CorrelationID, hdr.Partition, audit.ActionReadStorageInstructions, err)
	if err != nil {
		h.writeError(w, hdr, err)
		return
	}
	h.writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) getRetrievalInstructionsByID(w http.ResponseWriter, r *http.Request) {
	hdr, ok := h.requireHeaders(w, r)
	if !ok {
		return
	}

	id := r.URL.Query().Get("id")
	if id == "" {
		h.writeError(w, hdr, apperror.BadRequest("id is required"))
		return
	}
	h.serveRetrieval(w, r, hdr, []string{id})
}

func (h *Handler) getRetrievalInstructions(w http.ResponseWriter, r *http.Request) {
	hdr, ok := h.requireHeaders(w, r)
	if !ok {
		return
	}

	var req model.GetDatasetRegistryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, hdr, apperror.BadRequest("request body could not be parsed"))
		return
	}
	h.serveRetrieval(w, r, hdr, req.DatasetRegistryIDs)
}

func (h *Handler) serveRetrieval(w http.ResponseWriter, r *http.Request, hdr model.Headers, ids []string) {
	resp, err := h.dms.GetRetrievalInstructions(r.Context(), hdr, ids)
	h.audit.Record(r.Context(), hdr.CorrelationID, hdr.Partition, audit.ActionReadRetrievalInstructions, err)
	if err != nil {
		h.writeError(w, hdr, err)
		return
	}
	h.writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) copyToPersistentStorage(w http.ResponseWriter, r *http.Request) {
	hdr, ok := h.requireHeaders(w, r)
	if !ok {
		return
	}

	kindSubType := r.URL.Query().Get("kindSubType")
	if kindSubType == "" {
		h.writeError(w, hdr, apperror.BadRequest("kindSubType is required"))
		return
	}

	var req model.CopyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, hdr, apperror.BadRequest("request body could not be parsed"))
		return
	}

	results, err := h.dms.CopyToPersistentStorage(r.Context(), hdr, kindSubType, req)
	h.audit.Record(r.Context(), hdr.CorrelationID, hdr.Partition, audit.ActionCopyToPersistentStorage, err)
	if err != nil {
		h.writeError(w, hdr, err)
		return
	}
	h.writeJSON(w, http.StatusOK, results)
}

func (h *Handler) createOrUpdateRegistry(w http.ResponseWriter, r *http.Request) {
	hdr, ok := h.requireHeaders(w, r)
	if !ok {
		return
	}

	var req model.CreateDatasetRegistryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, hdr, apperror.BadRequest("request body could not be parsed"))
		return
	}

	resp, err := h.registry.CreateOrUpdate(r.Context(), hdr, req.DatasetRegistries)
	h.audit.Record(r.Context(), hdr.CorrelationID, hdr.Partition, audit.ActionCreateDatasetRegistry, err)
	if err != nil {
		h.writeError(w, hdr, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, resp)
}

func (h *Handler) getRegistry(w http.ResponseWriter, r *http.Request) {
	hdr, ok := h.requireHeaders(w, r)
	if !ok {
		return
	}

	var req model.GetDatasetRegistryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, hdr, apperror.BadRequest("request body could not be parsed"))
		return
	}

	resp, err := h.registry.GetDatasetRegistries(r.Context(), hdr, req.DatasetRegistryIDs)
	h.audit.Record(r.Context(), hdr.CorrelationID, hdr.Partition, audit.ActionReadDatasetRegistry, err)
	if err != nil {
		h.writeError(w, hdr, err)
		return
	}
	h.writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) deleteRegistry(w http.ResponseWriter, r *http.Request) {
	hdr, ok := h.requireHeaders(w, r)
	if !ok {
		return
	}

	err := h.registry.Delete(r.Context(), hdr, r.PathValue("id"))
	h.audit.Record(r.Context(), hdr.CorrelationID, hdr.Partition, audit.ActionDeleteDatasetRegistry, err)
	if err != nil {
		h.writeError(w, hdr, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// requireHeaders extracts the forwarded identity headers; the partition
// id is mandatory on every business route.
func (h *Handler) requireHeaders(w http.ResponseWriter, r *http.Request) (model.Headers, bool) {
	hdr := model.Headers{
		Partition:     r.Header.Get(model.HeaderPartitionID),
		Authorization: r.Header.Get(model.HeaderAuthorization),
		CorrelationID: r.Header.Get(model.HeaderCorrelationID),
	}
	if hdr.Partition == "" {
		h.writeError(w, hdr, apperror.BadRequest("data-partition-id header is required"))
		return hdr, false
	}
	return hdr, true
}

func (h *Handler) writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.log.Error("writing response", "error", err)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, hdr model.Headers, err error) {
	appErr := apperror.As(err)
	h.log.Warn("request failed",
		"correlation_id", hdr.CorrelationID,
		"partition", hdr.Partition,
		"code", appErr.Code,
		"reason", appErr.Reason,
	)
	h.writeJSON(w, appErr.Code, appErr)
}
