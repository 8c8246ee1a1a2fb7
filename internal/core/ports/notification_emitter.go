package ports

import (
	"context"
	"time"

	"agromarket/internal/core/domain/model/kernel"
)

// Notification rooms. Buyers get per-buyer rooms via BuyerRoom; labourers and
// admins share role-wide rooms.
const (
	RoomAdmin  = "admin"
	RoomLabour = "labour"
)

// BuyerRoom returns the room key scoped to a single buyer.
func BuyerRoom(buyerID kernel.UUID) string {
	return "buyer:" + buyerID.String()
}

// OrderEvent is the payload published to interested parties after a
// successful order state transition.
type OrderEvent struct {
	OrderID    kernel.UUID
	Status     string
	OccurredAt time.Time
}

// NotificationEmitter pushes order events to role-scoped rooms.
//
// Publication is fire-and-forget from the order core's perspective: emitters
// may fail (and callers log those failures), but delivery problems never
// propagate into the result of the order operation that triggered them.
type NotificationEmitter interface {
	// Publish sends an event to a room. Implementations should not block
	// longer than the context allows.
	Publish(ctx context.Context, room string, event OrderEvent) error
}
