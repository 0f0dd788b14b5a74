package diag_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abaplab/adtbridge/internal/adapter/inbound/diag"
	"github.com/abaplab/adtbridge/internal/telemetry"
)

func TestHandleStats(t *testing.T) {
	recorder := telemetry.NewRecorder()
	recorder.Observe(context.Background(), "searchObject", time.Now().Add(-5*time.Millisecond), true)
	recorder.Observe(context.Background(), "searchObject", time.Now(), false)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	mux := http.NewServeMux()
	diag.NewHandlers(recorder, logger).RegisterRoutes(mux)

	req := httptest.NewRequest(http.MethodGet, "/debug/stats", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.EqualValues(t, 2, body["attempted"])
	assert.EqualValues(t, 1, body["succeeded"])
	assert.EqualValues(t, 1, body["failed"])
	assert.Contains(t, body, "average_latency_ms")
}
