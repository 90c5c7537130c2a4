package dispatcher

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Dorschm/stellar-sub001/pkg/logger"
	"github.com/stretchr/testify/assert"
)

func TestRouter_DispatchesToMatchingRoute(t *testing.T) {
	log := logger.NewStdLogger("test", "")
	router := NewRouter(log)

	router.HandleFunc("tick", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ticked"))
	}).Methods("POST")

	req := httptest.NewRequest(http.MethodPost, "/tick", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ticked", rec.Body.String())
}

func TestRouter_UnknownRouteReturnsNotFound(t *testing.T) {
	log := logger.NewStdLogger("test", "")
	router := NewRouter(log)

	router.HandleFunc("tick", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}).Methods("POST")

	req := httptest.NewRequest(http.MethodGet, "/does-not-exist", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRouter_WrongMethodReturnsNotAllowed(t *testing.T) {
	log := logger.NewStdLogger("test", "")
	router := NewRouter(log)

	router.HandleFunc("tick", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}).Methods("POST")

	req := httptest.NewRequest(http.MethodGet, "/tick", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestWithSafetyNet_RecoversFromPanic(t *testing.T) {
	log := logger.NewStdLogger("test", "")

	handler := WithSafetyNet(log, func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	})

	req := httptest.NewRequest(http.MethodPost, "/tick", nil)
	rec := httptest.NewRecorder()

	assert.NotPanics(t, func() {
		handler(rec, req)
	})

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestNoOp_ReturnsOK(t *testing.T) {
	log := logger.NewStdLogger("test", "")

	req := httptest.NewRequest(http.MethodOptions, "/tick", nil)
	rec := httptest.NewRecorder()

	NoOp(log)(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}
