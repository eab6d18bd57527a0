package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"yggdrasil-server/internal/service"
)

// ProfilesHandler serves bulk name resolution for game servers doing
// best-effort display-name enrichment.
type ProfilesHandler struct {
	profiles *service.ProfileService
}

func NewProfilesHandler(profiles *service.ProfileService) *ProfilesHandler {
	return &ProfilesHandler{profiles: profiles}
}

// Resolve accepts an array of names and returns the resolvable subset.
// A missing or empty body yields an empty array; unknown names are dropped
// silently, and the operation never reports an error outcome for them.
func (h *ProfilesHandler) Resolve(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var names []string
	if err := json.NewDecoder(r.Body).Decode(&names); err != nil && !errors.Is(err, io.EOF) {
		writeJSON(w, http.StatusOK, []any{})
		return
	}

	identities, err := h.profiles.ResolveBatch(r.Context(), names)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, identities)
}
