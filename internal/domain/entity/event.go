// internal/domain/entity/event.go
package entity

import (
	"time"
)

// Hub group names. Exact strings, case-sensitive: server broadcasts and
// client join/leave calls must use them identically.
const (
	GroupAllFlights = "AllFlights"
	GroupDepartures = "Departures"
	GroupArrivals   = "Arrivals"
)

// Client-facing event names
const (
	EventFlightCreated       = "FlightCreated"
	EventFlightAdded         = "FlightAdded"
	EventFlightUpdated       = "FlightUpdated"
	EventFlightStatusChanged = "FlightStatusChanged"
	EventFlightDeleted       = "FlightDeleted"
)

// FlightSnapshot is the flight view carried on Created/Added/Updated events.
// Status is always the derived display status.
type FlightSnapshot struct {
	ID                 string     `json:"id"`
	FlightNumber       string     `json:"flightNumber"`
	AirlineCode        string     `json:"airlineCode"`
	Origin             string     `json:"origin"`
	Destination        string     `json:"destination"`
	Type               FlightType `json:"type"`
	ScheduledDeparture time.Time  `json:"scheduledDeparture"`
	ScheduledArrival   time.Time  `json:"scheduledArrival"`
	ActualDeparture    *time.Time `json:"actualDeparture,omitempty"`
	ActualArrival      *time.Time `json:"actualArrival,omitempty"`
	Status             string     `json:"status"`
	DelayMinutes       int        `json:"delayMinutes"`
	Gate               string     `json:"gate,omitempty"`
	Terminal           string     `json:"terminal,omitempty"`
}

// SnapshotFlight builds the event/DTO view of a flight with its status
// derived at now.
func SnapshotFlight(f *Flight, now time.Time) FlightSnapshot {
	return FlightSnapshot{
		ID:                 f.ID,
		FlightNumber:       f.FlightNumber,
		AirlineCode:        f.AirlineCode,
		Origin:             f.Origin,
		Destination:        f.Destination,
		Type:               f.Type,
		ScheduledDeparture: f.ScheduledDeparture,
		ScheduledArrival:   f.ScheduledArrival,
		ActualDeparture:    f.ActualDeparture,
		ActualArrival:      f.ActualArrival,
		Status:             string(f.DisplayStatus(now)),
		DelayMinutes:       f.DelayMinutes,
		Gate:               f.Gate,
		Terminal:           f.Terminal,
	}
}

// StatusChange is the payload of a FlightStatusChanged event
type StatusChange struct {
	FlightID  string    `json:"flightId"`
	OldStatus string    `json:"oldStatus"`
	NewStatus string    `json:"newStatus"`
	Timestamp time.Time `json:"timestamp"`
}

// ChangeEnvelope wraps a single broadcast as it travels from the notifier
// through the transport to a connection. Ephemeral: built and consumed
// within one notification cycle, never persisted.
type ChangeEnvelope struct {
	Event     string      `json:"event"`
	Group     string      `json:"group,omitempty"`
	Payload   interface{} `json:"payload"`
	Timestamp time.Time   `json:"timestamp"`
}
