package rest

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// RouterDeps holds everything NewRouter wires together.
// Middleware fields may be nil.
type RouterDeps struct {
	Health      *HealthHandler
	Generations *GenerationHandler
	Flashcards  *FlashcardHandler

	// Middleware wraps every route, see middleware.Chain.
	Middleware func(http.Handler) http.Handler
	// GenerationLimit guards POST /generations.
	GenerationLimit func(http.Handler) http.Handler
	// Metrics is mounted at MetricsPath when non-nil.
	Metrics     http.Handler
	MetricsPath string
}

// NewRouter builds the HTTP handler for the API.
func NewRouter(d RouterDeps) http.Handler {
	r := chi.NewRouter()
	if d.Middleware != nil {
		r.Use(d.Middleware)
	}

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "Not found", "Route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed", "")
	})

	r.Get("/live", d.Health.Live)
	r.Get("/ready", d.Health.Ready)
	r.Get("/health", d.Health.Health)
	if d.Metrics != nil {
		r.Method(http.MethodGet, d.MetricsPath, d.Metrics)
	}

	r.Group(func(r chi.Router) {
		if d.GenerationLimit != nil {
			r.Use(d.GenerationLimit)
		}
		r.Post("/generations", d.Generations.Create)
	})

	r.Route("/flashcards", func(r chi.Router) {
		r.Get("/", d.Flashcards.List)
		r.Post("/", d.Flashcards.Create)
		r.Post("/batch-delete", d.Flashcards.DeleteBatch)
		r.Get("/{id}", d.Flashcards.Get)
		r.Patch("/{id}", d.Flashcards.Update)
		r.Delete("/{id}", d.Flashcards.Delete)
	})

	return r
}
