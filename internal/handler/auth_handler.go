package handler

import (
	"encoding/json"
	"net/http"

	"yggdrasil-server/internal/model"
	"yggdrasil-server/internal/service"
	"yggdrasil-server/pkg/apierror"
)

// AuthHandler exposes the /api/authserver endpoints: the session lifecycle
// as launchers drive it.
type AuthHandler struct {
	sessions *service.SessionService
}

func NewAuthHandler(sessions *service.SessionService) *AuthHandler {
	return &AuthHandler{sessions: sessions}
}

func (h *AuthHandler) Authenticate(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var payload model.AuthenticateRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, apierror.InvalidRequest("invalid JSON body"))
		return
	}

	result, err := h.sessions.Authenticate(r.Context(), payload.Username, payload.Password, payload.ClientToken)
	if err != nil {
		writeError(w, err)
		return
	}

	resp := model.AuthenticateResponse{
		AccessToken:       result.Session.AccessToken,
		ClientToken:       result.Session.ClientToken,
		AvailableProfiles: identities(result.AvailableProfiles),
	}
	if result.SelectedProfile != nil {
		identity := result.SelectedProfile.PublicIdentity()
		resp.SelectedProfile = &identity
	}
	if payload.RequestUser {
		resp.User = &model.ResponseUser{ID: result.User.ID, Username: result.User.Username}
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var payload model.RefreshRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, apierror.InvalidRequest("invalid JSON body"))
		return
	}

	result, err := h.sessions.Refresh(r.Context(), payload.AccessToken, payload.ClientToken,
		payload.RequestedProfileID(), payload.ReselectRequested())
	if err != nil {
		writeError(w, err)
		return
	}

	resp := model.RefreshResponse{
		AccessToken: result.Session.AccessToken,
		ClientToken: result.Session.ClientToken,
	}
	if result.SelectedProfile != nil {
		identity := result.SelectedProfile.PublicIdentity()
		resp.SelectedProfile = &identity
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *AuthHandler) Validate(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var payload model.TokenRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, apierror.InvalidRequest("invalid JSON body"))
		return
	}

	if err := h.sessions.Validate(r.Context(), payload.AccessToken, payload.ClientToken); err != nil {
		writeError(w, err)
		return
	}

	writeNoContent(w)
}

func (h *AuthHandler) Invalidate(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	// A body that does not parse is treated like a token that does not
	// match: the operation succeeds without revealing anything.
	var payload model.TokenRequest
	_ = json.NewDecoder(r.Body).Decode(&payload)

	if err := h.sessions.Invalidate(r.Context(), payload.AccessToken, payload.ClientToken); err != nil {
		writeError(w, err)
		return
	}

	writeNoContent(w)
}

func (h *AuthHandler) SignOut(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var payload model.SignOutRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, apierror.InvalidRequest("invalid JSON body"))
		return
	}

	if err := h.sessions.SignOut(r.Context(), payload.Username, payload.Password); err != nil {
		writeError(w, err)
		return
	}

	writeNoContent(w)
}

func identities(profiles []model.Profile) []model.ProfileIdentity {
	out := make([]model.ProfileIdentity, 0, len(profiles))
	for _, p := range profiles {
		out = append(out, p.PublicIdentity())
	}
	return out
}
