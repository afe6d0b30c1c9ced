package audit

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ryansupak-avanade-001/osdu-dataset/pkg/auth"
)

func captureLogger() (*Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return NewLogger(slog.New(slog.NewJSONHandler(&buf, nil))), &buf
}

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	return entry
}

func TestRecordSuccess(t *testing.T) {
	logger, buf := captureLogger()

	ctx := auth.WithUserContext(context.Background(), &auth.UserContext{UserID: "user-1"})
	logger.Record(ctx, "req-1", "osdu", ActionReadDatasetRegistry, nil)

	entry := decodeLine(t, buf)
	assert.Equal(t, "INFO", entry["level"])
	assert.Equal(t, "audit", entry["component"])
	assert.Equal(t, "req-1", entry["request_id"])
	assert.Equal(t, "osdu", entry["partition"])
	assert.Equal(t, "user-1", entry["user_id"])
	assert.Equal(t, ActionReadDatasetRegistry, entry["action"])
	assert.Equal(t, true, entry["success"])
	assert.NotEmpty(t, entry["event_id"])
	assert.NotContains(t, entry, "error")
}

func TestRecordFailure(t *testing.T) {
	logger, buf := captureLogger()

	logger.Record(context.Background(), "req-2", "osdu", ActionCreateDatasetRegistry, errors.New("validation failed"))

	entry := decodeLine(t, buf)
	assert.Equal(t, "WARN", entry["level"])
	assert.Equal(t, false, entry["success"])
	assert.Equal(t, "validation failed", entry["error"])
	assert.Empty(t, entry["user_id"], "anonymous callers have no user id")
}
