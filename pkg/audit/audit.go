// Package audit records the outcome of every dataset service operation.
package audit

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/ryansupak-avanade-001/osdu-dataset/pkg/auth"
)

// Actions recorded by the service.
const (
	ActionReadStorageInstructions   = "read_storage_instructions"
	ActionReadRetrievalInstructions = "read_retrieval_instructions"
	ActionCreateDatasetRegistry     = "create_dataset_registry"
	ActionReadDatasetRegistry       = "read_dataset_registry"
	ActionDeleteDatasetRegistry     = "delete_dataset_registry"
	ActionCopyToPersistentStorage   = "copy_to_persistent_storage"
)

// Event is one auditable operation outcome.
type Event struct {
	ID        string
	Timestamp time.Time
	RequestID string
	Partition string
	UserID    string
	Action    string
	Success   bool
	Error     string
}

// Logger writes audit events.
type Logger struct {
	log *slog.Logger
}

// NewLogger creates an audit logger writing through slog.
func NewLogger(log *slog.Logger) *Logger {
	if log == nil {
		log = slog.Default()
	}
	return &Logger{log: log.With("component", "audit")}
}

// Record writes one event, filling in the event id, timestamp and the
// authenticated user from the context.
func (l *Logger) Record(ctx context.Context, requestID, partition, action string, opErr error) {
	event := Event{
		ID:        uuid.NewString(),
		Timestamp: time.Now().UTC(),
		RequestID: requestID,
		Partition: partition,
		Action:    action,
		Success:   opErr == nil,
	}
	if opErr != nil {
		event.Error = opErr.Error()
	}
	if uc := auth.GetUserContext(ctx); uc != nil {
		event.UserID = uc.UserID
	}

	attrs := []any{
		"event_id", event.ID,
		"request_id", event.RequestID,
		"partition", event.Partition,
		"user_id", event.UserID,
		"action", event.Action,
		"success", event.Success,
	}
	if event.Success {
		l.log.Info("audit", attrs...)
		return
	}
	attrs = append(attrs, "error", event.Error)
	l.log.Warn("audit", attrs...)
}
