package usecase

import (
	"context"
	"time"

	"flightboard-service/internal/domain/entity"
	"flightboard-service/internal/domain/repository"
	"flightboard-service/pkg/logger"
	"flightboard-service/pkg/metrics"
)

// FlightInput carries the mutable fields of a flight for create and update
type FlightInput struct {
	FlightNumber       string
	AirlineCode        string
	Origin             string
	Destination        string
	Type               string
	ScheduledDeparture time.Time
	ScheduledArrival   time.Time
	ActualDeparture    *time.Time
	ActualArrival      *time.Time
	DelayMinutes       int
	Gate               string
	Terminal           string
}

// FlightService sequences persistence then notification for every flight
// use case. Validation failures abort before any side effect, persistence
// failures abort before notification, and notification failures never reach
// the caller: once the write committed the use case succeeded.
type FlightService struct {
	flightRepo repository.FlightRepository
	notifier   *ChangeNotifier
	logger     logger.Logger
	metrics    *metrics.Metrics
}

// NewFlightService creates a new flight service
func NewFlightService(
	flightRepo repository.FlightRepository,
	notifier *ChangeNotifier,
	log logger.Logger,
	m *metrics.Metrics,
) *FlightService {
	return &FlightService{
		flightRepo: flightRepo,
		notifier:   notifier,
		logger:     log,
		metrics:    m,
	}
}

// CreateFlight registers a new flight and announces it to the board groups
func (s *FlightService) CreateFlight(ctx context.Context, input FlightInput) (*entity.Flight, error) {
	if err := validateFlightInput(input, true); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	flight := &entity.Flight{
		FlightNumber:       input.FlightNumber,
		AirlineCode:        input.AirlineCode,
		Origin:             input.Origin,
		Destination:        input.Destination,
		Type:               entity.FlightType(input.Type),
		ScheduledDeparture: input.ScheduledDeparture.UTC(),
		ScheduledArrival:   input.ScheduledArrival.UTC(),
		ActualDeparture:    input.ActualDeparture,
		ActualArrival:      input.ActualArrival,
		DelayMinutes:       input.DelayMinutes,
		Gate:               input.Gate,
		Terminal:           input.Terminal,
		// Seed only: read paths always re-derive
		StoredStatus: entity.DeriveStatus(input.ScheduledDeparture, input.ActualDeparture, now),
	}

	created, err := s.flightRepo.Create(ctx, flight)
	if err != nil {
		s.logger.Error("Failed to persist flight", "flightNumber", input.FlightNumber, "error", err)
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.FlightMutations.WithLabelValues("create").Inc()
	}
	s.logger.Info("Flight created", "flightId", created.ID, "flightNumber", created.FlightNumber)

	s.notifier.NotifyCreated(ctx, created)
	return created, nil
}

// UpdateFlight rewrites a flight's fields. The pre-mutation snapshot is
// captured first so the notifier can detect a status transition.
func (s *FlightService) UpdateFlight(ctx context.Context, id string, input FlightInput) (*entity.Flight, error) {
	if err := validateFlightInput(input, false); err != nil {
		return nil, err
	}

	previous, err := s.flightRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	flight := *previous
	flight.FlightNumber = input.FlightNumber
	flight.AirlineCode = input.AirlineCode
	flight.Origin = input.Origin
	flight.Destination = input.Destination
	flight.Type = entity.FlightType(input.Type)
	flight.ScheduledDeparture = input.ScheduledDeparture.UTC()
	flight.ScheduledArrival = input.ScheduledArrival.UTC()
	flight.ActualDeparture = input.ActualDeparture
	flight.ActualArrival = input.ActualArrival
	flight.DelayMinutes = input.DelayMinutes
	flight.Gate = input.Gate
	flight.Terminal = input.Terminal

	updated, err := s.flightRepo.Update(ctx, &flight)
	if err != nil {
		s.logger.Error("Failed to update flight", "flightId", id, "error", err)
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.FlightMutations.WithLabelValues("update").Inc()
	}
	s.logger.Info("Flight updated", "flightId", id)

	s.notifier.NotifyUpdated(ctx, updated, previous)
	return updated, nil
}

// PatchStatus overwrites the stored status seed. The board keeps deriving
// its displayed value from timestamps; the patch surfaces to clients as a
// FlightUpdated followed by a FlightStatusChanged broadcast.
func (s *FlightService) PatchStatus(ctx context.Context, id, status string) (*entity.Flight, error) {
	if !entity.IsKnownStatus(status) {
		return nil, entity.NewValidationError("status", "unknown status "+status)
	}

	previous, err := s.flightRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	flight := *previous
	flight.StoredStatus = entity.FlightStatus(status)

	updated, err := s.flightRepo.Update(ctx, &flight)
	if err != nil {
		s.logger.Error("Failed to patch flight status", "flightId", id, "error", err)
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.FlightMutations.WithLabelValues("patch_status").Inc()
	}
	s.logger.Info("Flight status patched", "flightId", id, "oldStatus", previous.StoredStatus, "newStatus", status)

	s.notifier.NotifyUpdated(ctx, updated, previous)
	return updated, nil
}

// DeleteFlight soft-deletes a flight and announces the removal
func (s *FlightService) DeleteFlight(ctx context.Context, id string) error {
	deleted, err := s.flightRepo.SoftDelete(ctx, id)
	if err != nil {
		s.logger.Error("Failed to delete flight", "flightId", id, "error", err)
		return err
	}
	if !deleted {
		return entity.ErrNotFound
	}

	if s.metrics != nil {
		s.metrics.FlightMutations.WithLabelValues("delete").Inc()
	}
	s.logger.Info("Flight deleted", "flightId", id)

	s.notifier.NotifyDeleted(ctx, id)
	return nil
}

// GetFlight returns one flight with its status derived at read time
func (s *FlightService) GetFlight(ctx context.Context, id string) (*entity.FlightSnapshot, error) {
	flight, err := s.flightRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	snapshot := entity.SnapshotFlight(flight, time.Now().UTC())
	return &snapshot, nil
}

// ListFlights returns the board rows, optionally filtered by type, with
// statuses derived at read time
func (s *FlightService) ListFlights(ctx context.Context, flightType *entity.FlightType) ([]entity.FlightSnapshot, error) {
	flights, err := s.flightRepo.List(ctx, flightType)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	snapshots := make([]entity.FlightSnapshot, 0, len(flights))
	for _, flight := range flights {
		snapshots = append(snapshots, entity.SnapshotFlight(flight, now))
	}
	return snapshots, nil
}

func validateFlightInput(input FlightInput, requireFutureDeparture bool) error {
	if input.FlightNumber == "" {
		return entity.NewValidationError("flightNumber", "required")
	}
	if input.AirlineCode == "" {
		return entity.NewValidationError("airlineCode", "required")
	}
	if !isAirportCode(input.Origin) {
		return entity.NewValidationError("origin", "must be a 3-letter IATA code")
	}
	if !isAirportCode(input.Destination) {
		return entity.NewValidationError("destination", "must be a 3-letter IATA code")
	}
	if input.Origin == input.Destination {
		return entity.NewValidationError("destination", "must differ from origin")
	}
	if input.Type != string(entity.TypeDeparture) && input.Type != string(entity.TypeArrival) {
		return entity.NewValidationError("type", "must be Departure or Arrival")
	}
	if input.ScheduledDeparture.IsZero() || input.ScheduledArrival.IsZero() {
		return entity.NewValidationError("scheduledDeparture", "departure and arrival times are required")
	}
	if !input.ScheduledArrival.After(input.ScheduledDeparture) {
		return entity.NewValidationError("scheduledArrival", "must be after scheduled departure")
	}
	if requireFutureDeparture && !input.ScheduledDeparture.After(time.Now()) {
		return entity.NewValidationError("scheduledDeparture", "must be in the future")
	}
	return nil
}

func isAirportCode(code string) bool {
	if len(code) != 3 {
		return false
	}
	for _, c := range code {
		if c < 'A' || c > 'Z' {
			return false
		}
	}
	return true
}
