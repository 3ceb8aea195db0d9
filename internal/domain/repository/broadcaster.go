package repository

import (
	"context"
)

// Broadcaster is the transport the change notifier pushes events through.
// Implementations deliver to every attached client (SendToAll) or to the
// members of one named group (SendToGroup). The core never opens sockets
// itself, so the transport is swappable without touching the notifier or
// the flight service.
type Broadcaster interface {
	SendToAll(ctx context.Context, event string, payload interface{}) error
	SendToGroup(ctx context.Context, group, event string, payload interface{}) error
}
