package entity

import (
	"testing"
	"time"
)

func TestDeriveStatusScheduledOnly(t *testing.T) {
	departure := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		now  time.Time
		want FlightStatus
	}{
		{"well before departure", departure.Add(-3 * time.Hour), StatusScheduled},
		{"just outside boarding window", departure.Add(-30*time.Minute - time.Second), StatusScheduled},
		{"exactly 30 minutes out", departure.Add(-30 * time.Minute), StatusBoarding},
		{"inside boarding window", departure.Add(-10 * time.Minute), StatusBoarding},
		{"one second before departure", departure.Add(-time.Second), StatusBoarding},
		{"exactly at departure", departure, StatusDeparted},
		{"shortly after departure", departure.Add(45 * time.Minute), StatusDeparted},
		{"one second under landing", departure.Add(59*time.Minute + 59*time.Second), StatusDeparted},
		{"exactly 60 minutes after", departure.Add(60 * time.Minute), StatusLanded},
		{"long after departure", departure.Add(6 * time.Hour), StatusLanded},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DeriveStatus(departure, nil, tt.now)
			if got != tt.want {
				t.Fatalf("DeriveStatus(%v) = %q, want %q", tt.now, got, tt.want)
			}
		})
	}
}

func TestDeriveStatusWithActualDeparture(t *testing.T) {
	scheduled := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	actual := scheduled.Add(25 * time.Minute)

	tests := []struct {
		name string
		now  time.Time
		want FlightStatus
	}{
		{"right after takeoff", actual.Add(time.Minute), StatusDeparted},
		{"exactly 60 minutes elapsed", actual.Add(60 * time.Minute), StatusDeparted},
		{"one second past the window", actual.Add(60*time.Minute + time.Second), StatusLanded},
		// Actual wins over scheduled: by schedule alone this would be Landed
		{"actual overrides schedule", scheduled.Add(70 * time.Minute), StatusDeparted},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DeriveStatus(scheduled, &actual, tt.now)
			if got != tt.want {
				t.Fatalf("DeriveStatus(%v) = %q, want %q", tt.now, got, tt.want)
			}
		})
	}
}

// The four schedule branches must partition the timeline: every instant maps
// to exactly one of the four statuses, with no gaps at the boundaries.
func TestDeriveStatusPartitionsTimeline(t *testing.T) {
	departure := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	allowed := map[FlightStatus]bool{
		StatusScheduled: true,
		StatusBoarding:  true,
		StatusDeparted:  true,
		StatusLanded:    true,
	}

	for offset := -4 * time.Hour; offset <= 4*time.Hour; offset += 15 * time.Second {
		now := departure.Add(offset)
		got := DeriveStatus(departure, nil, now)
		if !allowed[got] {
			t.Fatalf("DeriveStatus at offset %v returned unexpected status %q", offset, got)
		}
	}
}

func TestDeriveStatusIsPure(t *testing.T) {
	departure := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	now := departure.Add(-20 * time.Minute)

	first := DeriveStatus(departure, nil, now)
	second := DeriveStatus(departure, nil, now)
	if first != second {
		t.Fatalf("repeated calls disagree: %q then %q", first, second)
	}
}

func TestDisplayStatusNeverReadsStoredColumn(t *testing.T) {
	departure := time.Now().Add(2 * time.Hour)
	flight := &Flight{
		ScheduledDeparture: departure,
		StoredStatus:       StatusCancelled,
	}

	if got := flight.DisplayStatus(time.Now()); got != StatusScheduled {
		t.Fatalf("DisplayStatus = %q, want %q regardless of stored value", got, StatusScheduled)
	}
}
