package commands

import (
	"context"
	"log/slog"
	"time"

	"agromarket/internal/core/domain/model/order"
	"agromarket/internal/core/ports"
)

// CreateOrderCommandHandler handles the business logic for order placement.
// Reserves stock for every line and persists the order in "Order Placed"
// status within a single transaction: if any line's reservation fails (the
// product is missing or has insufficient stock), every prior decrement is
// rolled back, so stock adjustment is all-or-nothing.
//
// Example:
//
//	handler := NewCreateOrderCommandHandler(uowFactory, emitter, logger)
//	created, err := handler.Handle(ctx, cmd)
//	if errors.Is(err, product.ErrInsufficientStock) {
//	    // not enough stock for one of the lines
//	}
type CreateOrderCommandHandler struct {
	uowFactory UoWFactory
	notifier   notifier
}

// NewCreateOrderCommandHandler creates a handler for order placement.
// Requires a UoWFactory spanning order and product repositories, the
// notification emitter, and a logger.
func NewCreateOrderCommandHandler(
	uowFactory UoWFactory,
	emitter ports.NotificationEmitter,
	logger *slog.Logger,
) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		notifier:   newNotifier(emitter, logger),
	}
}

// Handle processes the order placement command and returns the created order.
//
// For each line the product stock is reserved through a conditional update;
// the order is then persisted with its initial history entry. All of it runs
// inside one transaction. After a successful commit the transition is
// published to interested rooms (fire-and-forget).
func (h CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (*order.Order, error) {
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

	productRepo := uow.ProductRepository()
	for _, line := range cmd.Lines() {
		if err := productRepo.Reserve(ctx, line.ProductID(), line.Quantity()); err != nil {
			return nil, err
		}
	}

	newOrder, err := order.NewOrder(cmd.OrderID(), cmd.BuyerID(), cmd.Lines(), cmd.Address(), time.Now().UTC())
	if err != nil {
		return nil, err
	}

	if err = uow.OrderRepository().Add(ctx, newOrder); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.notifier.orderChanged(ctx, newOrder)
	return newOrder, nil
}
