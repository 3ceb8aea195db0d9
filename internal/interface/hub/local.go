package hub

import (
	"context"
	"time"

	"flightboard-service/internal/domain/entity"
	"flightboard-service/internal/domain/repository"
)

// LocalBroadcaster implements the Broadcaster interface against the
// in-process hub. Used when no NATS url is configured (single instance) and
// by tests that need the full delivery path without a transport.
type LocalBroadcaster struct {
	hub *Hub
}

// NewLocalBroadcaster wraps a hub as a broadcaster
func NewLocalBroadcaster(h *Hub) repository.Broadcaster {
	return &LocalBroadcaster{hub: h}
}

// SendToAll delivers to every attached connection
func (b *LocalBroadcaster) SendToAll(ctx context.Context, event string, payload interface{}) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	b.hub.DeliverAll(entity.ChangeEnvelope{
		Event:     event,
		Payload:   payload,
		Timestamp: time.Now().UTC(),
	})
	return nil
}

// SendToGroup delivers to the members of one group
func (b *LocalBroadcaster) SendToGroup(ctx context.Context, group, event string, payload interface{}) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	b.hub.DeliverGroup(group, entity.ChangeEnvelope{
		Event:     event,
		Group:     group,
		Payload:   payload,
		Timestamp: time.Now().UTC(),
	})
	return nil
}
