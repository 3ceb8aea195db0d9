// internal/infrastructure/hub/nats_broadcaster.go
package hub

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"flightboard-service/internal/domain/entity"
	"flightboard-service/pkg/logger"

	"github.com/nats-io/nats.go"
)

const (
	subjectAll         = "flightboard.broadcast.all"
	subjectGroupPrefix = "flightboard.broadcast.group."
)

// NatsBroadcaster implements the Broadcaster interface over NATS subjects,
// so fan-out reaches every service instance's hub, not just the local one.
type NatsBroadcaster struct {
	conn   *nats.Conn
	logger logger.Logger
}

// NewNatsBroadcaster connects to NATS and returns a broadcaster
func NewNatsBroadcaster(url string, log logger.Logger) (*NatsBroadcaster, error) {
	conn, err := nats.Connect(url,
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			log.Warn("NATS disconnected", "error", err)
		}),
		nats.ReconnectHandler(func(c *nats.Conn) {
			log.Info("NATS reconnected", "url", c.ConnectedUrl())
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}
	return &NatsBroadcaster{conn: conn, logger: log}, nil
}

// SendToAll publishes an envelope on the all-connections subject
func (b *NatsBroadcaster) SendToAll(ctx context.Context, event string, payload interface{}) error {
	return b.publish(ctx, subjectAll, entity.ChangeEnvelope{
		Event:     event,
		Payload:   payload,
		Timestamp: time.Now().UTC(),
	})
}

// SendToGroup publishes an envelope on the group's subject
func (b *NatsBroadcaster) SendToGroup(ctx context.Context, group, event string, payload interface{}) error {
	return b.publish(ctx, subjectGroupPrefix+group, entity.ChangeEnvelope{
		Event:     event,
		Group:     group,
		Payload:   payload,
		Timestamp: time.Now().UTC(),
	})
}

func (b *NatsBroadcaster) publish(ctx context.Context, subject string, env entity.ChangeEnvelope) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("failed to marshal envelope: %w", err)
	}
	if err := b.conn.Publish(subject, data); err != nil {
		return fmt.Errorf("failed to publish to %s: %w", subject, err)
	}
	return nil
}

// Close drains the connection
func (b *NatsBroadcaster) Close() {
	if err := b.conn.Drain(); err != nil {
		b.logger.Error("NATS drain error", "error", err)
	}
}

// LocalDeliverer is the hub-side sink the relay forwards envelopes into
type LocalDeliverer interface {
	DeliverAll(env entity.ChangeEnvelope)
	DeliverGroup(group string, env entity.ChangeEnvelope)
}

// Relay subscribes to the broadcast subjects and forwards envelopes to the
// local hub's connections. Every instance runs one, which is what turns a
// single Publish into a cluster-wide fan-out.
type Relay struct {
	conn   *nats.Conn
	hub    LocalDeliverer
	logger logger.Logger
	subs   []*nats.Subscription
}

// NewRelay builds a relay on an existing broadcaster connection
func NewRelay(b *NatsBroadcaster, hub LocalDeliverer, log logger.Logger) *Relay {
	return &Relay{conn: b.conn, hub: hub, logger: log}
}

// Start subscribes to the all and group subjects
func (r *Relay) Start() error {
	allSub, err := r.conn.Subscribe(subjectAll, func(msg *nats.Msg) {
		env, ok := r.decode(msg.Data)
		if !ok {
			return
		}
		r.hub.DeliverAll(env)
	})
	if err != nil {
		return fmt.Errorf("failed to subscribe to %s: %w", subjectAll, err)
	}
	r.subs = append(r.subs, allSub)

	groupSub, err := r.conn.Subscribe(subjectGroupPrefix+">", func(msg *nats.Msg) {
		env, ok := r.decode(msg.Data)
		if !ok {
			return
		}
		r.hub.DeliverGroup(env.Group, env)
	})
	if err != nil {
		return fmt.Errorf("failed to subscribe to group subjects: %w", err)
	}
	r.subs = append(r.subs, groupSub)

	return nil
}

// Stop unsubscribes from the broadcast subjects
func (r *Relay) Stop() {
	for _, sub := range r.subs {
		if err := sub.Unsubscribe(); err != nil {
			r.logger.Error("Failed to unsubscribe", "subject", sub.Subject, "error", err)
		}
	}
	r.subs = nil
}

func (r *Relay) decode(data []byte) (entity.ChangeEnvelope, bool) {
	var env entity.ChangeEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		r.logger.Error("Failed to decode broadcast envelope", "error", err)
		return env, false
	}
	return env, true
}
