package commands

import (
	"context"
	"log/slog"
	"time"

	"agromarket/internal/core/domain/model/order"
	"agromarket/internal/core/ports"
)

// UpdateOrderStatusCommandHandler handles forward status progression by the
// assigned labourer. The aggregate rejects requests from anyone but the
// assignee, backward moves, and any mutation of terminal orders. Advancing
// to Delivered frees the labourer's single active-order slot.
type UpdateOrderStatusCommandHandler struct {
	uowFactory OrderUoWFactory
	notifier   notifier
}

// NewUpdateOrderStatusCommandHandler creates a handler for status updates.
func NewUpdateOrderStatusCommandHandler(
	uowFactory OrderUoWFactory,
	emitter ports.NotificationEmitter,
	logger *slog.Logger,
) UpdateOrderStatusCommandHandler {
	return UpdateOrderStatusCommandHandler{
		uowFactory: uowFactory,
		notifier:   newNotifier(emitter, logger),
	}
}

// Handle processes the status update command and returns the updated order.
func (h UpdateOrderStatusCommandHandler) Handle(
	ctx context.Context,
	cmd UpdateOrderStatusCommand,
) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	aggregate, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	if err = aggregate.AdvanceStatus(cmd.LabourerID(), cmd.Target(), time.Now().UTC()); err != nil {
		return nil, err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.notifier.orderChanged(ctx, aggregate)
	return aggregate, nil
}
