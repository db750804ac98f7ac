package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/skillswaphq/skillswap/internal/api/auth"
	"github.com/skillswaphq/skillswap/internal/api/profile"
	"github.com/skillswaphq/skillswap/internal/api/skills"
)

// Config contains dependencies needed for the router setup.
type Config struct {
	AuthHandler            *auth.AuthHandler
	ProfileHandler         *profile.ProfileHandler
	SkillsHandler          *skills.SkillsHandler
	AuthenticateMiddleware func(http.Handler) http.Handler
}

// SetupRouter initializes and configures the main application router.
// Server-wide middleware (logger, requestID, recoverer) are expected to be
// applied before mounting this router in main.go.
func SetupRouter(cfg *Config) chi.Router {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173", "http://localhost:3000"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Health check endpoint
	r.Get("/ping", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("pong"))
	})

	r.Route("/api", func(r chi.Router) {

		// --- Public routes ---
		r.Group(func(r chi.Router) {
			r.Post("/auth/register", cfg.AuthHandler.Register)
			r.Post("/auth/login", cfg.AuthHandler.Login)
			r.Get("/skills", cfg.SkillsHandler.ListSkills)
			// Static segments ("me", "swap") win over {id}, so the protected
			// routes below never collide with the public profile read.
			r.Get("/profile/{id}", cfg.ProfileHandler.GetPublicProfile)
		})

		// --- Protected routes ---
		r.Group(func(r chi.Router) {
			r.Use(cfg.AuthenticateMiddleware)

			r.Get("/profile/me", cfg.ProfileHandler.GetOwnProfile)
			r.Put("/profile/me", cfg.ProfileHandler.UpdateOwnProfile)
			r.Get("/profile/swap/match", cfg.ProfileHandler.FindMatches)
			r.Post("/profile/{id}/rate", cfg.ProfileHandler.RateUser)
		})
	})

	return r
}
