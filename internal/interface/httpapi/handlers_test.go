package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"flightboard-service/internal/domain/entity"
	"flightboard-service/internal/interface/hub"
	"flightboard-service/internal/usecase"
	"flightboard-service/pkg/logger"
)

// nopLogger keeps handler tests quiet
type nopLogger struct{}

func (nopLogger) Debug(string, ...interface{})        {}
func (nopLogger) Info(string, ...interface{})         {}
func (nopLogger) Warn(string, ...interface{})         {}
func (nopLogger) Error(string, ...interface{})        {}
func (nopLogger) Fatal(string, ...interface{})        {}
func (l nopLogger) With(...interface{}) logger.Logger { return l }

// mockFlightAPI implements FlightAPI over an in-memory map
type mockFlightAPI struct {
	flights map[string]*entity.Flight
}

func newMockFlightAPI() *mockFlightAPI {
	return &mockFlightAPI{flights: make(map[string]*entity.Flight)}
}

func (m *mockFlightAPI) CreateFlight(ctx context.Context, input usecase.FlightInput) (*entity.Flight, error) {
	if input.FlightNumber == "" {
		return nil, entity.NewValidationError("flightNumber", "required")
	}
	flight := &entity.Flight{
		ID:                 "f-1",
		FlightNumber:       input.FlightNumber,
		AirlineCode:        input.AirlineCode,
		Origin:             input.Origin,
		Destination:        input.Destination,
		Type:               entity.FlightType(input.Type),
		ScheduledDeparture: input.ScheduledDeparture,
		ScheduledArrival:   input.ScheduledArrival,
		StoredStatus:       entity.StatusScheduled,
	}
	m.flights[flight.ID] = flight
	return flight, nil
}

func (m *mockFlightAPI) UpdateFlight(ctx context.Context, id string, input usecase.FlightInput) (*entity.Flight, error) {
	flight, ok := m.flights[id]
	if !ok {
		return nil, entity.ErrNotFound
	}
	flight.Gate = input.Gate
	return flight, nil
}

func (m *mockFlightAPI) PatchStatus(ctx context.Context, id, status string) (*entity.Flight, error) {
	if !entity.IsKnownStatus(status) {
		return nil, entity.NewValidationError("status", "unknown status")
	}
	flight, ok := m.flights[id]
	if !ok {
		return nil, entity.ErrNotFound
	}
	flight.StoredStatus = entity.FlightStatus(status)
	return flight, nil
}

func (m *mockFlightAPI) DeleteFlight(ctx context.Context, id string) error {
	if _, ok := m.flights[id]; !ok {
		return entity.ErrNotFound
	}
	delete(m.flights, id)
	return nil
}

func (m *mockFlightAPI) GetFlight(ctx context.Context, id string) (*entity.FlightSnapshot, error) {
	flight, ok := m.flights[id]
	if !ok {
		return nil, entity.ErrNotFound
	}
	snapshot := entity.SnapshotFlight(flight, time.Now().UTC())
	return &snapshot, nil
}

func (m *mockFlightAPI) ListFlights(ctx context.Context, flightType *entity.FlightType) ([]entity.FlightSnapshot, error) {
	now := time.Now().UTC()
	var snapshots []entity.FlightSnapshot
	for _, flight := range m.flights {
		snapshots = append(snapshots, entity.SnapshotFlight(flight, now))
	}
	return snapshots, nil
}

// mockUserAPI implements UserAPI
type mockUserAPI struct {
	users map[string]*entity.User
}

func newMockUserAPI() *mockUserAPI {
	return &mockUserAPI{users: make(map[string]*entity.User)}
}

func (m *mockUserAPI) CreateUser(ctx context.Context, email, displayName, password, role string) (*entity.User, error) {
	user := &entity.User{ID: "u-1", Email: email, DisplayName: displayName, Role: role}
	m.users[user.ID] = user
	return user, nil
}

func (m *mockUserAPI) GetUser(ctx context.Context, id string) (*entity.User, error) {
	user, ok := m.users[id]
	if !ok {
		return nil, entity.ErrNotFound
	}
	return user, nil
}

func (m *mockUserAPI) DeleteUser(ctx context.Context, id string) error {
	if _, ok := m.users[id]; !ok {
		return entity.ErrNotFound
	}
	delete(m.users, id)
	return nil
}

func newTestServer(t *testing.T) (*httptest.Server, *mockFlightAPI, *hub.Hub) {
	t.Helper()
	flights := newMockFlightAPI()
	boardHub := hub.NewHub(hub.NewSubscriptionRegistry(), nopLogger{}, 8)
	handler := NewHandler(flights, newMockUserAPI(), boardHub, nopLogger{}, nil)
	server := httptest.NewServer(NewRouter(handler))
	t.Cleanup(server.Close)
	return server, flights, boardHub
}

func createFlightBody() string {
	departure := time.Now().Add(3 * time.Hour).UTC().Format(time.RFC3339)
	arrival := time.Now().Add(15 * time.Hour).UTC().Format(time.RFC3339)
	return `{
		"flightNumber": "LY001",
		"airlineCode": "LY",
		"origin": "TLV",
		"destination": "JFK",
		"type": "Departure",
		"scheduledDeparture": "` + departure + `",
		"scheduledArrival": "` + arrival + `"
	}`
}

func TestCreateFlightEndpoint(t *testing.T) {
	server, _, _ := newTestServer(t)

	resp, err := http.Post(server.URL+"/api/v1/flights", "application/json", strings.NewReader(createFlightBody()))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("status = %d, want 201", resp.StatusCode)
	}

	var snapshot entity.FlightSnapshot
	if err := json.NewDecoder(resp.Body).Decode(&snapshot); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if snapshot.FlightNumber != "LY001" {
		t.Fatalf("unexpected body %+v", snapshot)
	}
	if snapshot.Status != "Scheduled" {
		t.Fatalf("status = %q, want derived Scheduled", snapshot.Status)
	}
}

func TestCreateFlightRejectsBadJSON(t *testing.T) {
	server, _, _ := newTestServer(t)

	resp, err := http.Post(server.URL+"/api/v1/flights", "application/json", strings.NewReader("{nope"))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
}

func TestValidationErrorMapsTo400(t *testing.T) {
	server, _, _ := newTestServer(t)

	body := strings.Replace(createFlightBody(), "LY001", "", 1)
	resp, err := http.Post(server.URL+"/api/v1/flights", "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
}

func TestGetMissingFlightMapsTo404(t *testing.T) {
	server, _, _ := newTestServer(t)

	resp, err := http.Get(server.URL + "/api/v1/flights/missing")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", resp.StatusCode)
	}
}

func TestPatchStatusEndpoint(t *testing.T) {
	server, flights, _ := newTestServer(t)
	flights.flights["f-1"] = &entity.Flight{
		ID:                 "f-1",
		FlightNumber:       "LY001",
		ScheduledDeparture: time.Now().Add(2 * time.Hour),
		StoredStatus:       entity.StatusScheduled,
	}

	req, _ := http.NewRequest(http.MethodPatch, server.URL+"/api/v1/flights/f-1/status", strings.NewReader(`{"status":"Delayed"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if flights.flights["f-1"].StoredStatus != entity.StatusDelayed {
		t.Fatalf("stored status not patched: %+v", flights.flights["f-1"])
	}
}

func TestDeleteFlightEndpoint(t *testing.T) {
	server, flights, _ := newTestServer(t)
	flights.flights["f-1"] = &entity.Flight{ID: "f-1"}

	req, _ := http.NewRequest(http.MethodDelete, server.URL+"/api/v1/flights/f-1", nil)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("status = %d, want 204", resp.StatusCode)
	}
}

func TestJoinGroupEndpoint(t *testing.T) {
	server, _, boardHub := newTestServer(t)
	conn := boardHub.Attach()

	resp, err := http.Post(
		server.URL+"/api/v1/stream/"+conn.ID+"/join",
		"application/json",
		strings.NewReader(`{"group":"Departures"}`),
	)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("status = %d, want 204", resp.StatusCode)
	}

	// A group broadcast now reaches the joined connection
	boardHub.DeliverGroup(entity.GroupDepartures, entity.ChangeEnvelope{Event: entity.EventFlightAdded})
	select {
	case env := <-conn.Receive():
		if env.Event != entity.EventFlightAdded {
			t.Fatalf("unexpected event %q", env.Event)
		}
	default:
		t.Fatal("expected a delivered event after join")
	}
}

func TestJoinGroupUnknownGroup(t *testing.T) {
	server, _, boardHub := newTestServer(t)
	conn := boardHub.Attach()

	resp, err := http.Post(
		server.URL+"/api/v1/stream/"+conn.ID+"/join",
		"application/json",
		strings.NewReader(`{"group":"Cargo"}`),
	)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
}
