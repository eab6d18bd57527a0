package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"yggdrasil-server/internal/config"
	"yggdrasil-server/internal/handler"
	"yggdrasil-server/internal/middleware"
)

type Handlers struct {
	Auth     *handler.AuthHandler
	Session  *handler.SessionHandler
	Profiles *handler.ProfilesHandler
	Skin     *handler.SkinHandler
	Health   *handler.HealthHandler
}

func New(cfg *config.Config, h Handlers) http.Handler {
	r := chi.NewRouter()
	rateLimit := middleware.NewRateLimitMiddleware(cfg.RateLimitRPM, cfg.AuthRateLimitRPM)

	r.Use(middleware.Recovery)
	r.Use(middleware.Logging)
	r.Use(middleware.CORS(cfg.CORSOrigins))
	r.Use(rateLimit.Handler)
	r.Use(middleware.Timeout(cfg.RequestTimeout))

	r.Get("/health", h.Health.Check)

	// The auth server speaks JSON only: wrong media type is 415 before
	// routing, anything else unmatched under the subtree is 405.
	r.Route("/api/authserver", func(auth chi.Router) {
		auth.Use(middleware.RequireJSON)
		auth.NotFound(middleware.MethodNotAllowed)
		auth.MethodNotAllowed(middleware.MethodNotAllowed)

		auth.Post("/authenticate", h.Auth.Authenticate)
		auth.Post("/refresh", h.Auth.Refresh)
		auth.Post("/validate", h.Auth.Validate)
		auth.Post("/invalidate", h.Auth.Invalidate)
		auth.Post("/signout", h.Auth.SignOut)
	})

	r.Route("/api/sessionserver/session/minecraft", func(session chi.Router) {
		session.With(middleware.RequireJSON).Post("/join", h.Session.Join)
		session.Get("/hasJoined", h.Session.HasJoined)
		session.Get("/profile/{id}", h.Session.ProfileByID)
	})

	r.With(middleware.RequireJSON).Post("/api/api/profiles/minecraft", h.Profiles.Resolve)

	r.Route("/api/skin", func(skin chi.Router) {
		skin.Get("/cap/{name}.png", h.Skin.Cape)
		skin.Get("/skin/{name}.png", h.Skin.Skin)
		skin.Get("/uskin/{id}.png", h.Skin.UUIDSkin)
		skin.Get("/textures/{id}", h.Skin.Texture)
		skin.Get("/{name}.json", h.Skin.Descriptor)
	})

	return r
}
