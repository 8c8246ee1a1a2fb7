package commands

import (
	"context"
	"log/slog"

	"agromarket/internal/core/domain/model/order"
	"agromarket/internal/core/ports"
)

// notifier publishes order events after successful commits. Publication is
// fire-and-forget: failures are logged and never propagated back into the
// result of the command that triggered them.
type notifier struct {
	emitter ports.NotificationEmitter
	logger  *slog.Logger
}

func newNotifier(emitter ports.NotificationEmitter, logger *slog.Logger) notifier {
	return notifier{
		emitter: emitter,
		logger:  logger.With("component", "order_notifier"),
	}
}

// orderChanged pushes the order's latest transition to the admin room, the
// buyer's room, and the shared labour room.
func (n notifier) orderChanged(ctx context.Context, o *order.Order) {
	current := o.CurrentStatus()
	event := ports.OrderEvent{
		OrderID:    o.ID(),
		Status:     current.Status().String(),
		OccurredAt: current.ChangedAt(),
	}

	rooms := []string{ports.RoomAdmin, ports.BuyerRoom(o.BuyerID()), ports.RoomLabour}
	for _, room := range rooms {
		if err := n.emitter.Publish(ctx, room, event); err != nil {
			n.logger.WarnContext(ctx, "failed to publish order event",
				"room", room, "order_id", o.ID().String(), "error", err)
		}
	}
}
