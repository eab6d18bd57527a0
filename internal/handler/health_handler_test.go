package handler_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"yggdrasil-server/internal/handler"
)

type stubChecker struct {
	err error
}

func (s stubChecker) Health(context.Context) error { return s.err }

func TestHealthHandler(t *testing.T) {
	t.Run("no checker answers ok", func(t *testing.T) {
		fixture := newServerFixture(t)

		rec := fixture.get(t, "/health")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "ok", rec.Body.String())
	})

	t.Run("healthy store answers ok", func(t *testing.T) {
		h := handler.NewHealthHandler(stubChecker{})

		rec := httptest.NewRecorder()
		h.Check(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "ok", rec.Body.String())
	})

	t.Run("unreachable store answers 503", func(t *testing.T) {
		h := handler.NewHealthHandler(stubChecker{err: errors.New("connection refused")})

		rec := httptest.NewRecorder()
		h.Check(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
		assert.Contains(t, rec.Body.String(), "ServiceUnavailableException")
	})
}
