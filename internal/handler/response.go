package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"yggdrasil-server/internal/model"
	"yggdrasil-server/pkg/apierror"
)

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeNoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

func writeError(w http.ResponseWriter, err error) {
	var apiErr *apierror.APIError
	if errors.As(err, &apiErr) {
		writeJSON(w, apiErr.HTTPStatus, apiErr)
		return
	}

	switch {
	case errors.Is(err, model.ErrInvalidCredentials):
		writeJSON(w, http.StatusForbidden, apierror.Forbidden("Invalid credentials. Invalid username or password."))
	case errors.Is(err, model.ErrTokenMismatch):
		writeJSON(w, http.StatusForbidden, apierror.Forbidden("Invalid token."))
	case errors.Is(err, model.ErrProfileAlreadySelected):
		writeJSON(w, http.StatusBadRequest, apierror.InvalidRequest("Access token already has a profile assigned."))
	default:
		slog.Error("unhandled error in writeError", "error", err.Error())
		writeJSON(w, http.StatusInternalServerError, apierror.New("InternalServerError", "Unexpected server error", http.StatusInternalServerError))
	}
}
