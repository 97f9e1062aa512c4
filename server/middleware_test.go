package server

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogRequests_RecordsStatusAndRequestID(t *testing.T) {
	// GIVEN a server whose logger is captured
	logger, hook := logtest.NewNullLogger()
	logger.SetOutput(io.Discard)
	srv := New(logger)

	// WHEN a missing simulation is requested
	req := httptest.NewRequest(http.MethodGet, "/api/v1/simulations/sim_missing", nil)
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)

	// THEN one Info entry carries the status, path and the echoed request ID
	require.Equal(t, http.StatusNotFound, w.Code)
	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, logrus.InfoLevel, entry.Level)
	assert.Equal(t, http.StatusNotFound, entry.Data["status"])
	assert.Equal(t, "/api/v1/simulations/sim_missing", entry.Data["path"])
	assert.Equal(t, w.Header().Get("X-Request-ID"), entry.Data["request_id"])
	assert.Positive(t, entry.Data["bytes"])
}
