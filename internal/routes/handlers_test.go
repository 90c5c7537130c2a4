package routes

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Dorschm/stellar-sub001/internal/tick"
	"github.com/Dorschm/stellar-sub001/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer() *Server {
	log := logger.NewStdLogger("test", "")

	return &Server{
		processor: tick.Processor{},
		log:       log,
	}
}

func TestTick_InvalidBodyReturnsBadRequest(t *testing.T) {
	s := newTestServer()

	req := httptest.NewRequest(http.MethodPost, "/tick", strings.NewReader("not json"))
	rec := httptest.NewRecorder()

	s.tick()(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var resp errorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "invalid request body", resp.Error)
}

func TestTick_InvalidGameIDReturnsBadRequest(t *testing.T) {
	s := newTestServer()

	body := `{"gameId": "not-a-uuid"}`
	req := httptest.NewRequest(http.MethodPost, "/tick", strings.NewReader(body))
	rec := httptest.NewRecorder()

	s.tick()(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var resp errorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "invalid gameId", resp.Error)
}

func TestMarkInactive_InvalidBodyReturnsBadRequest(t *testing.T) {
	s := newTestServer()

	req := httptest.NewRequest(http.MethodPost, "/mark-inactive", strings.NewReader("not json"))
	rec := httptest.NewRecorder()

	s.markInactive()(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMarkInactive_InvalidIDsReturnsBadRequest(t *testing.T) {
	s := newTestServer()

	body := `{"gameId": "not-a-uuid", "playerId": "also-not-a-uuid"}`
	req := httptest.NewRequest(http.MethodPost, "/mark-inactive", strings.NewReader(body))
	rec := httptest.NewRecorder()

	s.markInactive()(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var resp errorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "invalid gameId or playerId", resp.Error)
}
