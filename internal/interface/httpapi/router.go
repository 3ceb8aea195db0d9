package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRouter creates a new Chi router and registers the flightboard routes
func NewRouter(h *Handler) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("Healthy"))
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/flights", func(r chi.Router) {
			r.Post("/", h.handleCreateFlight)
			r.Get("/", h.handleListFlights)
			r.Get("/{id}", h.handleGetFlight)
			r.Put("/{id}", h.handleUpdateFlight)
			r.Patch("/{id}/status", h.handlePatchStatus)
			r.Delete("/{id}", h.handleDeleteFlight)
		})

		r.Route("/users", func(r chi.Router) {
			r.Post("/", h.handleCreateUser)
			r.Get("/{id}", h.handleGetUser)
			r.Delete("/{id}", h.handleDeleteUser)
		})

		r.Route("/stream", func(r chi.Router) {
			r.Get("/", h.handleStream)
			r.Post("/{connID}/join", h.handleJoinGroup)
			r.Post("/{connID}/leave", h.handleLeaveGroup)
		})
	})

	return r
}
