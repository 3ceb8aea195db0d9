package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"flightboard-service/internal/domain/entity"
	"flightboard-service/internal/interface/hub"
	"flightboard-service/internal/usecase"
	"flightboard-service/pkg/logger"
	"flightboard-service/pkg/metrics"

	"github.com/go-chi/chi/v5"
)

// FlightAPI is the slice of the flight service the handlers need
type FlightAPI interface {
	CreateFlight(ctx context.Context, input usecase.FlightInput) (*entity.Flight, error)
	UpdateFlight(ctx context.Context, id string, input usecase.FlightInput) (*entity.Flight, error)
	PatchStatus(ctx context.Context, id, status string) (*entity.Flight, error)
	DeleteFlight(ctx context.Context, id string) error
	GetFlight(ctx context.Context, id string) (*entity.FlightSnapshot, error)
	ListFlights(ctx context.Context, flightType *entity.FlightType) ([]entity.FlightSnapshot, error)
}

// UserAPI is the slice of the user service the handlers need
type UserAPI interface {
	CreateUser(ctx context.Context, email, displayName, password, role string) (*entity.User, error)
	GetUser(ctx context.Context, id string) (*entity.User, error)
	DeleteUser(ctx context.Context, id string) error
}

// Handler holds the services the HTTP surface fronts
type Handler struct {
	flights FlightAPI
	users   UserAPI
	hub     *hub.Hub
	logger  logger.Logger
	metrics *metrics.Metrics
}

// NewHandler creates a new Handler
func NewHandler(flights FlightAPI, users UserAPI, h *hub.Hub, log logger.Logger, m *metrics.Metrics) *Handler {
	return &Handler{
		flights: flights,
		users:   users,
		hub:     h,
		logger:  log,
		metrics: m,
	}
}

func (h *Handler) handleCreateFlight(w http.ResponseWriter, r *http.Request) {
	var req flightRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, entity.NewValidationError("body", "invalid JSON"))
		return
	}

	flight, err := h.flights.CreateFlight(r.Context(), req.toInput())
	if err != nil {
		h.respondError(w, err)
		return
	}
	snapshot, err := h.flights.GetFlight(r.Context(), flight.ID)
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respondJSON(w, http.StatusCreated, snapshot)
}

func (h *Handler) handleListFlights(w http.ResponseWriter, r *http.Request) {
	var flightType *entity.FlightType
	if t := r.URL.Query().Get("type"); t != "" {
		if t != string(entity.TypeDeparture) && t != string(entity.TypeArrival) {
			h.respondError(w, entity.NewValidationError("type", "must be Departure or Arrival"))
			return
		}
		ft := entity.FlightType(t)
		flightType = &ft
	}

	snapshots, err := h.flights.ListFlights(r.Context(), flightType)
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, snapshots)
}

func (h *Handler) handleGetFlight(w http.ResponseWriter, r *http.Request) {
	snapshot, err := h.flights.GetFlight(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, snapshot)
}

func (h *Handler) handleUpdateFlight(w http.ResponseWriter, r *http.Request) {
	var req flightRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, entity.NewValidationError("body", "invalid JSON"))
		return
	}

	id := chi.URLParam(r, "id")
	if _, err := h.flights.UpdateFlight(r.Context(), id, req.toInput()); err != nil {
		h.respondError(w, err)
		return
	}
	snapshot, err := h.flights.GetFlight(r.Context(), id)
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, snapshot)
}

func (h *Handler) handlePatchStatus(w http.ResponseWriter, r *http.Request) {
	var req statusPatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, entity.NewValidationError("body", "invalid JSON"))
		return
	}

	id := chi.URLParam(r, "id")
	if _, err := h.flights.PatchStatus(r.Context(), id, req.Status); err != nil {
		h.respondError(w, err)
		return
	}
	snapshot, err := h.flights.GetFlight(r.Context(), id)
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, snapshot)
}

func (h *Handler) handleDeleteFlight(w http.ResponseWriter, r *http.Request) {
	if err := h.flights.DeleteFlight(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	var req userRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, entity.NewValidationError("body", "invalid JSON"))
		return
	}

	user, err := h.users.CreateUser(r.Context(), req.Email, req.DisplayName, req.Password, req.Role)
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respondJSON(w, http.StatusCreated, toUserResponse(user))
}

func (h *Handler) handleGetUser(w http.ResponseWriter, r *http.Request) {
	user, err := h.users.GetUser(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, toUserResponse(user))
}

func (h *Handler) handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	if err := h.users.DeleteUser(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleStream attaches an SSE connection to the hub. The first event
// carries the connection id the client uses on the join/leave routes; after
// that the stream relays whatever groups the connection has joined.
func (h *Handler) handleStream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	conn := h.hub.Attach()
	defer h.hub.Detach(conn.ID)

	if h.metrics != nil {
		h.metrics.ConnectionsOpen.Inc()
		defer h.metrics.ConnectionsOpen.Dec()
	}

	// Convenience: ?clientType=departures joins the matching groups at
	// attach time so a board needs no second round trip
	if clientType := r.URL.Query().Get("clientType"); clientType != "" {
		if err := h.hub.JoinFlightGroups(conn.ID, clientType); err != nil {
			h.respondError(w, err)
			return
		}
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	fmt.Fprintf(w, "event: connected\ndata: {\"connectionId\":%q}\n\n", conn.ID)
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case env, open := <-conn.Receive():
			if !open {
				return
			}
			data, err := json.Marshal(env.Payload)
			if err != nil {
				h.logger.Error("Failed to marshal event payload", "event", env.Event, "error", err)
				continue
			}
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", env.Event, data)
			flusher.Flush()
		}
	}
}

func (h *Handler) handleJoinGroup(w http.ResponseWriter, r *http.Request) {
	var req groupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, entity.NewValidationError("body", "invalid JSON"))
		return
	}

	connID := chi.URLParam(r, "connID")
	var err error
	if req.Group != "" {
		err = h.hub.JoinGroup(connID, req.Group)
	} else {
		err = h.hub.JoinFlightGroups(connID, req.ClientType)
	}
	if err != nil {
		h.respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleLeaveGroup(w http.ResponseWriter, r *http.Request) {
	var req groupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, entity.NewValidationError("body", "invalid JSON"))
		return
	}

	connID := chi.URLParam(r, "connID")
	if req.Group != "" {
		if err := h.hub.LeaveGroup(connID, req.Group); err != nil {
			h.respondError(w, err)
			return
		}
	} else {
		h.hub.LeaveFlightGroups(connID)
	}
	w.WriteHeader(http.StatusNoContent)
}

func toUserResponse(user *entity.User) userResponse {
	return userResponse{
		ID:          user.ID,
		Email:       user.Email,
		DisplayName: user.DisplayName,
		Role:        user.Role,
		CreatedAt:   user.CreatedAt,
	}
}

func (h *Handler) respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("Failed to encode response", "error", err)
	}
}

// respondError maps the domain error taxonomy to HTTP statuses
func (h *Handler) respondError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case entity.IsValidation(err):
		status = http.StatusBadRequest
	case errors.Is(err, entity.ErrNotFound):
		status = http.StatusNotFound
	}
	if status == http.StatusInternalServerError {
		h.logger.Error("Request failed", "error", err)
	}
	h.respondJSON(w, status, errorResponse{Error: err.Error()})
}
