package httpapi

import (
	"time"

	"flightboard-service/internal/usecase"
)

// flightRequest is the JSON body for flight create and update
type flightRequest struct {
	FlightNumber       string     `json:"flightNumber"`
	AirlineCode        string     `json:"airlineCode"`
	Origin             string     `json:"origin"`
	Destination        string     `json:"destination"`
	Type               string     `json:"type"`
	ScheduledDeparture time.Time  `json:"scheduledDeparture"`
	ScheduledArrival   time.Time  `json:"scheduledArrival"`
	ActualDeparture    *time.Time `json:"actualDeparture,omitempty"`
	ActualArrival      *time.Time `json:"actualArrival,omitempty"`
	DelayMinutes       int        `json:"delayMinutes"`
	Gate               string     `json:"gate,omitempty"`
	Terminal           string     `json:"terminal,omitempty"`
}

func (r flightRequest) toInput() usecase.FlightInput {
	return usecase.FlightInput{
		FlightNumber:       r.FlightNumber,
		AirlineCode:        r.AirlineCode,
		Origin:             r.Origin,
		Destination:        r.Destination,
		Type:               r.Type,
		ScheduledDeparture: r.ScheduledDeparture,
		ScheduledArrival:   r.ScheduledArrival,
		ActualDeparture:    r.ActualDeparture,
		ActualArrival:      r.ActualArrival,
		DelayMinutes:       r.DelayMinutes,
		Gate:               r.Gate,
		Terminal:           r.Terminal,
	}
}

// statusPatchRequest is the JSON body for PATCH /flights/{id}/status
type statusPatchRequest struct {
	Status string `json:"status"`
}

// userRequest is the JSON body for user creation
type userRequest struct {
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
	Password    string `json:"password"`
	Role        string `json:"role"`
}

// userResponse never echoes the password hash
type userResponse struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	DisplayName string    `json:"displayName"`
	Role        string    `json:"role"`
	CreatedAt   time.Time `json:"createdAt"`
}

// groupRequest is the JSON body for stream join/leave. Either a single
// canonical group name or a clientType for the convenience variants.
type groupRequest struct {
	Group      string `json:"group,omitempty"`
	ClientType string `json:"clientType,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}
