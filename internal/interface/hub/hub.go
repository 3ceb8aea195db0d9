package hub

import (
	"strings"
	"sync"

	"flightboard-service/internal/domain/entity"
	"flightboard-service/pkg/logger"

	"github.com/google/uuid"
)

// canonicalGroups are the only groups clients may join
var canonicalGroups = map[string]struct{}{
	entity.GroupAllFlights: {},
	entity.GroupDepartures: {},
	entity.GroupArrivals:   {},
}

// Hub owns connection lifecycle and group membership for one process. It is
// created at startup and torn down at shutdown; there is no ambient static
// state, so the core stays testable without a real transport.
type Hub struct {
	registry *SubscriptionRegistry
	logger   logger.Logger
	buffer   int

	mu          sync.RWMutex
	connections map[string]*Connection
}

// NewHub creates a hub delivering through per-connection buffers of the
// given size
func NewHub(registry *SubscriptionRegistry, log logger.Logger, buffer int) *Hub {
	if buffer <= 0 {
		buffer = 16
	}
	return &Hub{
		registry:    registry,
		logger:      log,
		buffer:      buffer,
		connections: make(map[string]*Connection),
	}
}

// Attach registers a new connection after transport handshake. The
// connection is Connected but belongs to no group until it joins one.
func (h *Hub) Attach() *Connection {
	conn := newConnection(uuid.NewString(), h.buffer)

	h.mu.Lock()
	h.connections[conn.ID] = conn
	h.mu.Unlock()

	h.logger.Info("Connection attached", "connectionId", conn.ID)
	return conn
}

// Detach is the terminal transition for a connection: it is closed and
// removed from every group. There is no way back.
func (h *Hub) Detach(connectionID string) {
	h.mu.Lock()
	conn, ok := h.connections[connectionID]
	delete(h.connections, connectionID)
	h.mu.Unlock()

	h.registry.LeaveAll(connectionID)
	if ok {
		conn.Close()
		h.logger.Info("Connection detached", "connectionId", connectionID)
	}
}

// JoinGroup subscribes a connection to one of the canonical groups
func (h *Hub) JoinGroup(connectionID, group string) error {
	if _, ok := canonicalGroups[group]; !ok {
		return entity.NewValidationError("group", "unknown group "+group)
	}

	h.mu.RLock()
	_, ok := h.connections[connectionID]
	h.mu.RUnlock()
	if !ok {
		return entity.ErrNotFound
	}

	h.registry.Join(connectionID, group)
	h.logger.Debug("Joined group", "connectionId", connectionID, "group", group)
	return nil
}

// LeaveGroup unsubscribes a connection from a group
func (h *Hub) LeaveGroup(connectionID, group string) error {
	if _, ok := canonicalGroups[group]; !ok {
		return entity.NewValidationError("group", "unknown group "+group)
	}
	h.registry.Leave(connectionID, group)
	return nil
}

// JoinFlightGroups is the convenience join: a departures board gets
// AllFlights+Departures, an arrivals board AllFlights+Arrivals, and any
// other client type all three canonical groups. AllFlights is always
// requested explicitly here, never implied elsewhere.
func (h *Hub) JoinFlightGroups(connectionID, clientType string) error {
	groups := []string{entity.GroupAllFlights}
	switch strings.ToLower(clientType) {
	case "departures", "departure":
		groups = append(groups, entity.GroupDepartures)
	case "arrivals", "arrival":
		groups = append(groups, entity.GroupArrivals)
	default:
		groups = append(groups, entity.GroupDepartures, entity.GroupArrivals)
	}

	for _, group := range groups {
		if err := h.JoinGroup(connectionID, group); err != nil {
			return err
		}
	}
	return nil
}

// LeaveFlightGroups removes a connection from all three canonical groups
func (h *Hub) LeaveFlightGroups(connectionID string) {
	h.registry.LeaveAll(connectionID)
}

// DeliverGroup fans an envelope out to the current members of a group.
// Closed or saturated connections drop silently.
func (h *Hub) DeliverGroup(group string, env entity.ChangeEnvelope) {
	for _, id := range h.registry.Members(group) {
		h.mu.RLock()
		conn, ok := h.connections[id]
		h.mu.RUnlock()
		if !ok {
			continue
		}
		if !conn.Deliver(env) {
			h.logger.Debug("Dropped event for connection", "connectionId", id, "event", env.Event)
		}
	}
}

// DeliverAll fans an envelope out to every attached connection
func (h *Hub) DeliverAll(env entity.ChangeEnvelope) {
	h.mu.RLock()
	conns := make([]*Connection, 0, len(h.connections))
	for _, conn := range h.connections {
		conns = append(conns, conn)
	}
	h.mu.RUnlock()

	for _, conn := range conns {
		if !conn.Deliver(env) {
			h.logger.Debug("Dropped event for connection", "connectionId", conn.ID, "event", env.Event)
		}
	}
}

// Close detaches every connection, used during graceful shutdown
func (h *Hub) Close() {
	h.mu.Lock()
	ids := make([]string, 0, len(h.connections))
	for id := range h.connections {
		ids = append(ids, id)
	}
	h.mu.Unlock()

	for _, id := range ids {
		h.Detach(id)
	}
}
