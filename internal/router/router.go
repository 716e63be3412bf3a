package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/trivixa/listings-api/internal/api/auth"
	"github.com/trivixa/listings-api/internal/api/mediatags"
	"github.com/trivixa/listings-api/internal/api/ownerinfo"
	"github.com/trivixa/listings-api/internal/api/profiles"
)

// Config contains dependencies needed for the router setup
type Config struct {
	AuthHandler            *auth.HandlerImpl
	ProfileHandler         *profiles.HandlerImpl
	MediaTagsHandler       *mediatags.HandlerImpl
	OwnerInfoHandler       *ownerinfo.HandlerImpl
	AuthenticateMiddleware func(http.Handler) http.Handler
	RequireAdminMiddleware func(http.Handler) http.Handler
}

// SetupRouter initializes and configures the main application router.
// Server-wide middleware (logger, requestID, recoverer) are expected to be
// applied before mounting this router in main.go.
func SetupRouter(cfg *Config) chi.Router {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{
			"http://localhost:5173",
			"http://localhost:5174",
			"https://trivixa.com",
			"https://www.trivixa.com",
			"https://admin.trivixa.com",
		},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/ping", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("pong"))
	})
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api/v1", func(r chi.Router) {

		// --- Public routes ---
		r.Group(func(r chi.Router) {
			r.Post("/auth/login", cfg.AuthHandler.Login)

			r.Get("/profiles", cfg.ProfileHandler.GetAllProfiles)
			r.Get("/profiles/locations", cfg.ProfileHandler.GetLocations)
			r.Get("/profiles/{profileID}", cfg.ProfileHandler.GetProfile)

			r.Get("/media-tags", cfg.MediaTagsHandler.GetTags)
			r.Get("/owner-info", cfg.OwnerInfoHandler.GetOwnerInfo)
		})

		// --- Admin routes ---
		r.Group(func(r chi.Router) {
			r.Use(cfg.AuthenticateMiddleware)
			r.Use(cfg.RequireAdminMiddleware)

			r.Post("/profiles", cfg.ProfileHandler.CreateProfile)
			r.Patch("/profiles/{profileID}", cfg.ProfileHandler.UpdateProfile)
			r.Delete("/profiles/{profileID}", cfg.ProfileHandler.DeleteProfile)

			r.Post("/media-tags", cfg.MediaTagsHandler.CreateTag)
			r.Patch("/media-tags/{tagID}", cfg.MediaTagsHandler.UpdateTag)
			r.Delete("/media-tags/{tagID}", cfg.MediaTagsHandler.DeleteTag)

			r.Put("/owner-info", cfg.OwnerInfoHandler.UpdateOwnerInfo)
		})
	})

	return r
}
