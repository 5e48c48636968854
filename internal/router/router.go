package router

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/finsight-app/finsight/internal/api"
	"github.com/finsight-app/finsight/internal/api/asset"
	"github.com/finsight-app/finsight/internal/api/auth"
	"github.com/finsight-app/finsight/internal/api/notebook"
)

const apiVersion = "2.0.0"

// Config contains dependencies needed for the router setup.
type Config struct {
	Logger          *slog.Logger
	AuthHandler     *auth.Handler
	AssetHandler    *asset.Handler
	NotebookHandler *notebook.Handler

	// AuthenticateMiddleware guards every protected route.
	AuthenticateMiddleware func(http.Handler) http.Handler

	// AllowedOrigins for CORS; typically the frontend URL.
	AllowedOrigins []string
}

// SetupRouter initializes and configures the main application router.
// Server-wide middleware (request ID, logging, recoverer) are applied before
// mounting this router in main.go.
func SetupRouter(cfg *Config) chi.Router {
	r := chi.NewRouter()

	allowedOrigins := cfg.AllowedOrigins
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"http://localhost:3000"}
	}

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	cfg.Logger.Debug("CORS configured", slog.Any("allowed_origins", allowedOrigins))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		api.WriteJSONResponse(w, r, http.StatusOK, map[string]interface{}{
			"status":    "healthy",
			"timestamp": time.Now().Format(time.RFC3339),
			"version":   apiVersion,
		})
	})

	r.Route("/api", func(r chi.Router) {
		// Public auth routes
		r.Group(func(r chi.Router) {
			r.Post("/auth/register", cfg.AuthHandler.Register)
			r.Post("/auth/login", cfg.AuthHandler.Login)
		})

		// Protected routes: everything below requires a valid bearer token.
		r.Group(func(r chi.Router) {
			r.Use(cfg.AuthenticateMiddleware)

			r.Get("/auth/me", cfg.AuthHandler.Me)

			r.Route("/assets", func(r chi.Router) {
				r.Get("/", cfg.AssetHandler.List)
				r.Post("/", cfg.AssetHandler.Add)
				r.Put("/{assetID}", cfg.AssetHandler.Update)
				r.Delete("/{assetID}", cfg.AssetHandler.Delete)
			})

			r.Route("/notebook", func(r chi.Router) {
				r.Get("/", cfg.NotebookHandler.List)
				r.Post("/", cfg.NotebookHandler.Create)
				r.Put("/{entryID}", cfg.NotebookHandler.Update)
				r.Delete("/{entryID}", cfg.NotebookHandler.Delete)
			})
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		api.ErrorResponse(w, r, http.StatusNotFound, "Resource not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		api.ErrorResponse(w, r, http.StatusMethodNotAllowed, "Method not allowed")
	})

	return r
}
