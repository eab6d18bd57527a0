package handler

import (
	"context"
	"log/slog"
	"net/http"

	"yggdrasil-server/pkg/apierror"
)

// HealthChecker reports whether the backing store can serve requests.
type HealthChecker interface {
	Health(ctx context.Context) error
}

// HealthHandler answers /health. Without a checker (in-memory mode) the
// process being up is the whole story; with one, the store must answer too.
type HealthHandler struct {
	checker HealthChecker
}

func NewHealthHandler(checker HealthChecker) *HealthHandler {
	return &HealthHandler{checker: checker}
}

func (h *HealthHandler) Check(w http.ResponseWriter, r *http.Request) {
	if h.checker != nil {
		if err := h.checker.Health(r.Context()); err != nil {
			slog.Error("health check failed", "error", err.Error())
			writeJSON(w, http.StatusServiceUnavailable,
				apierror.New("ServiceUnavailableException", "Backing store unavailable", http.StatusServiceUnavailable))
			return
		}
	}

	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}
