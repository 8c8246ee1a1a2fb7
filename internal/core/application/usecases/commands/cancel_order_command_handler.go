package commands

import (
	"context"
	"log/slog"
	"time"

	"agromarket/internal/core/domain/model/order"
	"agromarket/internal/core/ports"
)

// CancelOrderCommandHandler handles buyer-initiated order cancellation.
// Restores the stock of every line and marks the order Cancelled within a
// single transaction. Cancelling an already cancelled or delivered order
// fails before any stock mutation, and a cancellation racing another write
// is rejected by the conditional order update, rolling its stock release
// back with the transaction — stock is restored at most once.
type CancelOrderCommandHandler struct {
	uowFactory UoWFactory
	notifier   notifier
}

// NewCancelOrderCommandHandler creates a handler for order cancellation.
func NewCancelOrderCommandHandler(
	uowFactory UoWFactory,
	emitter ports.NotificationEmitter,
	logger *slog.Logger,
) CancelOrderCommandHandler {
	return CancelOrderCommandHandler{
		uowFactory: uowFactory,
		notifier:   newNotifier(emitter, logger),
	}
}

// Handle processes the cancellation command and returns the cancelled order.
//
// The aggregate enforces ownership (order.ErrNotOrderOwner) and the terminal
// rules (order.ErrOrderIsTerminal for Delivered or already Cancelled orders).
// Stock release clamps the sold counter at zero, defending against prior
// manual counter adjustments.
func (h CancelOrderCommandHandler) Handle(ctx context.Context, cmd CancelOrderCommand) (*order.Order, error) {
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

	if err = aggregate.Cancel(cmd.BuyerID(), time.Now().UTC()); err != nil {
		return nil, err
	}

	productRepo := uow.ProductRepository()
	for _, line := range aggregate.Lines() {
		if err = productRepo.Release(ctx, line.ProductID(), line.Quantity()); err != nil {
			return nil, err
		}
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
