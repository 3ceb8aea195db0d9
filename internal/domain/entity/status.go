// internal/domain/entity/status.go
package entity

import (
	"time"
)

const (
	boardingWindow = 30 * time.Minute
	departedWindow = 60 * time.Minute
)

// DeriveStatus maps a flight's timestamps to its display status. Pure and
// total: safe to call from any number of concurrent readers.
//
// When an actual departure is recorded, the flight is Departed for the first
// 60 minutes after it and Landed afterwards. Otherwise the scheduled
// departure partitions the timeline:
//
//	remaining > 30m          Scheduled
//	0 < remaining <= 30m     Boarding
//	-60m < remaining <= 0    Departed
//	remaining <= -60m        Landed
//
// Boundaries are inclusive on the lower branch, so exactly 30 minutes out is
// Boarding and exactly at departure time is Departed.
func DeriveStatus(scheduledDeparture time.Time, actualDeparture *time.Time, now time.Time) FlightStatus {
	if actualDeparture != nil {
		elapsed := now.Sub(*actualDeparture)
		if elapsed <= departedWindow {
			return StatusDeparted
		}
		return StatusLanded
	}

	remaining := scheduledDeparture.Sub(now)
	switch {
	case remaining > boardingWindow:
		return StatusScheduled
	case remaining > 0:
		return StatusBoarding
	case remaining > -departedWindow:
		return StatusDeparted
	default:
		return StatusLanded
	}
}
