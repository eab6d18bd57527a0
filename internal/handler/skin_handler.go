package handler

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"yggdrasil-server/internal/model"
	"yggdrasil-server/internal/service"
)

// SkinHandler serves texture lookups. Texture bytes live on external hosts;
// every texture endpoint is a redirect, never a file response.
type SkinHandler struct {
	profiles *service.ProfileService
}

func NewSkinHandler(profiles *service.ProfileService) *SkinHandler {
	return &SkinHandler{profiles: profiles}
}

// Descriptor answers /api/skin/{name}.json. Unknown names answer 401 here
// rather than 404; existing launcher clients depend on it.
func (h *SkinHandler) Descriptor(w http.ResponseWriter, r *http.Request) {
	descriptor, err := h.profiles.SkinDescriptor(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		if errors.Is(err, model.ErrProfileNotFound) {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, descriptor)
}

func (h *SkinHandler) Cape(w http.ResponseWriter, r *http.Request) {
	h.redirect(w, r, service.TextureCape, chi.URLParam(r, "name"))
}

func (h *SkinHandler) Skin(w http.ResponseWriter, r *http.Request) {
	h.redirect(w, r, service.TextureSkin, chi.URLParam(r, "name"))
}

func (h *SkinHandler) UUIDSkin(w http.ResponseWriter, r *http.Request) {
	h.redirect(w, r, service.TextureUUIDSkin, chi.URLParam(r, "id"))
}

func (h *SkinHandler) Texture(w http.ResponseWriter, r *http.Request) {
	h.redirect(w, r, service.TextureGeneric, chi.URLParam(r, "id"))
}

func (h *SkinHandler) redirect(w http.ResponseWriter, r *http.Request, kind service.TextureKind, identifier string) {
	url, err := h.profiles.TextureRedirect(r.Context(), kind, identifier)
	if err != nil {
		if errors.Is(err, model.ErrTextureNotFound) {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		writeError(w, err)
		return
	}

	http.Redirect(w, r, url, http.StatusFound)
}
