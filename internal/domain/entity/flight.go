// internal/domain/entity/flight.go
package entity

import (
	"time"
)

// FlightStatus is the display status of a flight
type FlightStatus string

const (
	StatusScheduled FlightStatus = "Scheduled"
	StatusBoarding  FlightStatus = "Boarding"
	StatusDeparted  FlightStatus = "Departed"
	StatusLanded    FlightStatus = "Landed"
	StatusDelayed   FlightStatus = "Delayed"
	StatusCancelled FlightStatus = "Cancelled"
)

// KnownStatuses lists every status accepted on a status patch
var KnownStatuses = []FlightStatus{
	StatusScheduled,
	StatusBoarding,
	StatusDeparted,
	StatusLanded,
	StatusDelayed,
	StatusCancelled,
}

// IsKnownStatus reports whether s is one of the accepted status strings
func IsKnownStatus(s string) bool {
	for _, known := range KnownStatuses {
		if string(known) == s {
			return true
		}
	}
	return false
}

// FlightType routes a flight to the Departures or Arrivals board.
// It is set at creation and authoritative for group routing.
type FlightType string

const (
	TypeDeparture FlightType = "Departure"
	TypeArrival   FlightType = "Arrival"
)

// Flight is a board entry. StoredStatus is a write-time seed only; every
// read path recomputes the display status from the timestamps.
type Flight struct {
	ID                 string
	FlightNumber       string
	AirlineCode        string
	Origin             string
	Destination        string
	Type               FlightType
	ScheduledDeparture time.Time
	ScheduledArrival   time.Time
	ActualDeparture    *time.Time
	ActualArrival      *time.Time
	StoredStatus       FlightStatus
	DelayMinutes       int
	Gate               string
	Terminal           string
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// DisplayStatus recomputes the status shown to clients from the flight's
// timestamps. The stored column never reaches a read path directly.
func (f *Flight) DisplayStatus(now time.Time) FlightStatus {
	return DeriveStatus(f.ScheduledDeparture, f.ActualDeparture, now)
}
