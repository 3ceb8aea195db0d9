package hub

import (
	"sync"

	"flightboard-service/internal/domain/entity"
)

// Connection is one attached client. Events are handed over through a
// buffered channel the transport goroutine drains; delivery to a slow or
// closed connection drops rather than blocks, matching the hub's
// best-effort contract.
type Connection struct {
	ID string

	mu     sync.Mutex
	send   chan entity.ChangeEnvelope
	closed bool
}

func newConnection(id string, buffer int) *Connection {
	return &Connection{
		ID:   id,
		send: make(chan entity.ChangeEnvelope, buffer),
	}
}

// Deliver queues an envelope for the client. Returns false when the event
// was dropped because the connection is closed or its buffer is full.
func (c *Connection) Deliver(env entity.ChangeEnvelope) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return false
	}
	select {
	case c.send <- env:
		return true
	default:
		return false
	}
}

// Receive exposes the delivery channel to the transport goroutine. The
// channel is closed when the connection closes.
func (c *Connection) Receive() <-chan entity.ChangeEnvelope {
	return c.send
}

// Close transitions the connection to its terminal state. Safe to call
// more than once.
func (c *Connection) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}
	c.closed = true
	close(c.send)
}
