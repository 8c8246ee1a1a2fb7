// Package notifier implements the NotificationEmitter port on top of Redis
// pub/sub channels. Each room maps to a channel under the "orders:" prefix,
// so socket gateways can subscribe to "orders:admin", "orders:labour" or a
// per-buyer channel and fan events out to connected clients.
package notifier

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"agromarket/internal/core/ports"
	"agromarket/internal/pkg/errs"
)

const channelPrefix = "orders:"

// eventMessage is the wire shape published to subscribers.
type eventMessage struct {
	OrderID    string    `json:"order_id"`
	Status     string    `json:"status"`
	OccurredAt time.Time `json:"occurred_at"`
}

// RedisEmitter publishes order events to room-scoped Redis channels.
type RedisEmitter struct {
	client *redis.Client
}

// NewRedisEmitter creates an emitter backed by the given Redis client.
func NewRedisEmitter(client *redis.Client) (*RedisEmitter, error) {
	if client == nil {
		return nil, errs.NewValueIsRequiredError("client")
	}
	return &RedisEmitter{client: client}, nil
}

// Publish sends the event to the room's channel. A room with no subscribers
// is not an error: the publish simply reaches nobody.
func (e *RedisEmitter) Publish(ctx context.Context, room string, event ports.OrderEvent) error {
	if room == "" {
		return errs.NewValueIsRequiredError("room")
	}

	payload, err := json.Marshal(eventMessage{
		OrderID:    event.OrderID.String(),
		Status:     event.Status,
		OccurredAt: event.OccurredAt,
	})
	if err != nil {
		return err
	}

	return e.client.Publish(ctx, Channel(room), payload).Err()
}

// Channel returns the Redis channel name for a room.
func Channel(room string) string {
	return channelPrefix + room
}
