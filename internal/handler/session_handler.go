package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"yggdrasil-server/internal/model"
	"yggdrasil-server/internal/service"
	"yggdrasil-server/pkg/apierror"
)

// SessionHandler exposes the /api/sessionserver endpoints game servers call
// during the join handshake.
type SessionHandler struct {
	join     *service.JoinService
	profiles *service.ProfileService
}

func NewSessionHandler(join *service.JoinService, profiles *service.ProfileService) *SessionHandler {
	return &SessionHandler{join: join, profiles: profiles}
}

func (h *SessionHandler) Join(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var payload model.JoinRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, apierror.InvalidRequest("invalid JSON body"))
		return
	}

	if err := h.join.Join(r.Context(), payload.AccessToken, payload.SelectedProfile, payload.ServerID); err != nil {
		writeError(w, err)
		return
	}

	writeNoContent(w)
}

// HasJoined answers 204 for any absence: unknown username, unknown or
// malformed server id, expired ticket. Absence is not an error here.
func (h *SessionHandler) HasJoined(w http.ResponseWriter, r *http.Request) {
	serverID := r.URL.Query().Get("serverId")
	username := r.URL.Query().Get("username")

	profile, err := h.join.HasJoined(r.Context(), serverID, username)
	if err != nil {
		if errors.Is(err, model.ErrTicketNotFound) {
			writeNoContent(w)
			return
		}
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, profile.PublicIdentity())
}

func (h *SessionHandler) ProfileByID(w http.ResponseWriter, r *http.Request) {
	profile, err := h.profiles.ByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, model.ErrProfileNotFound) {
			writeNoContent(w)
			return
		}
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, profile.PublicIdentity())
}
