package usecase

import (
	"context"
	"time"

	"flightboard-service/internal/domain/entity"
	"flightboard-service/internal/domain/repository"
	"flightboard-service/pkg/logger"
	"flightboard-service/pkg/metrics"
)

// ChangeNotifier fans flight lifecycle events out to subscribed clients.
// Delivery is best-effort and at-most-once: a transport failure is logged,
// counted and swallowed, because the write it announces has already
// committed. Clients that miss a push reconcile on their next fetch.
type ChangeNotifier struct {
	broadcaster repository.Broadcaster
	logger      logger.Logger
	metrics     *metrics.Metrics
	timeout     time.Duration
}

// NewChangeNotifier creates a new change notifier. The timeout bounds each
// broadcast so mutation latency stays dominated by persistence, not fan-out.
func NewChangeNotifier(
	broadcaster repository.Broadcaster,
	log logger.Logger,
	m *metrics.Metrics,
	timeout time.Duration,
) *ChangeNotifier {
	if timeout <= 0 {
		timeout = 2 * time.Second
	}
	return &ChangeNotifier{
		broadcaster: broadcaster,
		logger:      log,
		metrics:     m,
		timeout:     timeout,
	}
}

// NotifyCreated broadcasts FlightCreated to AllFlights, then FlightAdded to
// the board group matching the flight's type.
func (n *ChangeNotifier) NotifyCreated(ctx context.Context, flight *entity.Flight) {
	snapshot := entity.SnapshotFlight(flight, time.Now().UTC())
	n.broadcast(ctx, entity.GroupAllFlights, entity.EventFlightCreated, snapshot)

	group := entity.GroupDepartures
	if flight.Type == entity.TypeArrival {
		group = entity.GroupArrivals
	}
	n.broadcast(ctx, group, entity.EventFlightAdded, snapshot)
}

// NotifyUpdated broadcasts FlightUpdated to AllFlights. When the previous
// snapshot is supplied and its status differs, a FlightStatusChanged
// broadcast follows.
func (n *ChangeNotifier) NotifyUpdated(ctx context.Context, flight, previous *entity.Flight) {
	snapshot := entity.SnapshotFlight(flight, time.Now().UTC())
	n.broadcast(ctx, entity.GroupAllFlights, entity.EventFlightUpdated, snapshot)

	if previous != nil && previous.StoredStatus != flight.StoredStatus {
		n.NotifyStatusChanged(ctx, flight.ID, string(previous.StoredStatus), string(flight.StoredStatus))
	}
}

// NotifyStatusChanged broadcasts a FlightStatusChanged event to AllFlights
func (n *ChangeNotifier) NotifyStatusChanged(ctx context.Context, flightID, oldStatus, newStatus string) {
	n.broadcast(ctx, entity.GroupAllFlights, entity.EventFlightStatusChanged, entity.StatusChange{
		FlightID:  flightID,
		OldStatus: oldStatus,
		NewStatus: newStatus,
		Timestamp: time.Now().UTC(),
	})
}

// NotifyDeleted broadcasts a FlightDeleted event carrying only the id
func (n *ChangeNotifier) NotifyDeleted(ctx context.Context, flightID string) {
	n.broadcast(ctx, entity.GroupAllFlights, entity.EventFlightDeleted, flightID)
}

// broadcast sends one event to one group under the notifier's timeout.
// Failures never escape this method.
func (n *ChangeNotifier) broadcast(ctx context.Context, group, event string, payload interface{}) {
	sendCtx, cancel := context.WithTimeout(ctx, n.timeout)
	defer cancel()

	start := time.Now()
	err := n.broadcaster.SendToGroup(sendCtx, group, event, payload)
	if n.metrics != nil {
		n.metrics.BroadcastLatency.Observe(time.Since(start).Seconds())
	}

	if err != nil {
		n.logger.Error("Broadcast failed", "event", event, "group", group, "error", err)
		if n.metrics != nil {
			n.metrics.BroadcastErrors.WithLabelValues(event).Inc()
		}
		return
	}

	if n.metrics != nil {
		n.metrics.BroadcastsSent.WithLabelValues(event).Inc()
	}
}
