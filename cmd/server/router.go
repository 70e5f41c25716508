package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/gatewaylabs/gateway-api/internal/api"
	apiMiddleware "github.com/gatewaylabs/gateway-api/internal/api/middleware"
)

// setupRouter creates and configures the application router with all
// routes and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware)

	authHandler := api.NewAuthHandler(
		app.jwtService,
		app.secretVerifier,
		app.config.Auth.OperatorPrincipal,
		app.config.Auth.OperatorSecretHash,
		app.logger,
	)
	authMiddleware := apiMiddleware.NewAuthMiddleware(app.jwtService)

	tokenHandler := api.NewTokenHandler(app.mintService, app.logger)
	taskHandler := api.NewTaskHandler(app.taskService, app.logger)
	metadataHandler := api.NewMetadataHandler(app.metadataService, app.logger)

	r.Route("/api", func(r chi.Router) {
		// Token issuance (public)
		r.Post("/auth/token", authHandler.IssueToken)

		// Read-side queries (public, like the source ledger's queries)
		r.Get("/tokens/{id}/tasks/remaining", taskHandler.RemainingTasks)
		r.Get("/projects/incomplete", metadataHandler.IncompleteProjects)

		// Mutating operations require an authenticated principal
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)

			r.Post("/tokens", tokenHandler.MintToken)
			r.Post("/tokens/{id}/tasks", taskHandler.RequestTask)
			r.Put("/tokens/{id}/tasks/{taskID}/output", taskHandler.RespondTask)
			r.Put("/tokens/{id}/metadata", metadataHandler.UpdateMetadata)
		})
	})

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("Failed to write health check response", "error", err)
		}
	})

	return r
}
