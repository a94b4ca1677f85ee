package admin

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/WebSolutionsGroup/esqrt-sub001/telemetry"
)

// RegisterRoutes registers all workbench API routes using chi router
func RegisterRoutes(mux *http.ServeMux, handlers *Handlers) {
	r := chi.NewRouter()
	r.Use(requestLogger)

	r.Post("/query", handlers.handleQuery)
	r.Get("/history", handlers.handleHistory)
	r.Get("/health", handlers.handleHealth)

	mux.Handle("/api/", http.StripPrefix("/api", r))

	if metricsHandler := telemetry.GetMetricsHandler(); metricsHandler != nil {
		mux.Handle("/metrics", metricsHandler)
	}

	log.Info().Msg("Workbench endpoints enabled at /api/*")
}

// requestLogger logs each API request at debug level
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log.Debug().Str("method", r.Method).Str("path", r.URL.Path).Msg("API request")
		next.ServeHTTP(w, r)
	})
}
