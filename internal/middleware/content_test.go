package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRequireJSON(t *testing.T) {
	reached := false
	guarded := RequireJSON(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		reached = true
		w.WriteHeader(http.StatusNoContent)
	}))

	t.Run("missing content type answers 415", func(t *testing.T) {
		reached = false
		req := httptest.NewRequest(http.MethodPost, "/api/authserver/authenticate", nil)
		rec := httptest.NewRecorder()
		guarded.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)
		assert.Equal(t, "Unsupported Media Type", rec.Body.String())
		assert.False(t, reached)
	})

	t.Run("non-JSON content type answers 415", func(t *testing.T) {
		reached = false
		req := httptest.NewRequest(http.MethodPost, "/api/authserver/authenticate", nil)
		req.Header.Set("Content-Type", "text/plain")
		rec := httptest.NewRecorder()
		guarded.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)
		assert.False(t, reached)
	})

	t.Run("JSON content type passes through", func(t *testing.T) {
		reached = false
		req := httptest.NewRequest(http.MethodPost, "/api/authserver/authenticate", nil)
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		guarded.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.True(t, reached)
	})

	t.Run("charset parameter is tolerated", func(t *testing.T) {
		reached = false
		req := httptest.NewRequest(http.MethodPost, "/api/authserver/authenticate", nil)
		req.Header.Set("Content-Type", "application/json; charset=utf-8")
		rec := httptest.NewRecorder()
		guarded.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.True(t, reached)
	})
}

func TestMethodNotAllowed(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/authserver/nope", nil)
	rec := httptest.NewRecorder()
	MethodNotAllowed(rec, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, "Method Not Allowed", rec.Body.String())
}
