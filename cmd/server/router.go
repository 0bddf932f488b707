package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/phrazzld/servicehub-api/internal/api"
	apiMiddleware "github.com/phrazzld/servicehub-api/internal/api/middleware"
	"github.com/phrazzld/servicehub-api/internal/metrics"
	"github.com/rs/cors"
)

// setupRouter creates the application router: shared middleware first, then
// the policy-driven API routes and the metrics endpoint.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	if app.config.Server.TrustProxyHeaders {
		r.Use(chimw.RealIP)
	}
	r.Use(chimw.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware(app.logger))
	r.Use(apiMiddleware.Instrument(app.metrics))
	r.Use(apiMiddleware.SecurityHeaders)
	r.Use(cors.New(cors.Options{
		AllowedOrigins:   app.config.Server.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Content-Type", apiMiddleware.TraceHeader},
		ExposedHeaders:   []string{apiMiddleware.TraceHeader},
		AllowCredentials: true,
		MaxAge:           300,
	}).Handler)
	r.Use(app.limiter.Middleware)

	api.Register(r, api.RouterDeps{
		Stores:            app.backend.stores,
		Tokens:            app.tokens,
		Cookies:           app.cookies,
		GateBookingWrites: app.config.Auth.GateBookingWrites,
		Recorder:          app.metrics,
	})
	r.Method(http.MethodGet, "/metrics", metrics.Handler(app.registry))

	return r
}
