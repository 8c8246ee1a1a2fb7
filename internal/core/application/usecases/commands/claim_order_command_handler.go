package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"agromarket/internal/core/domain/model/order"
	"agromarket/internal/core/ports"
)

// ErrLabourerHasActiveOrder is returned when a labourer who already holds an
// active (not Delivered, not Cancelled) order attempts to claim another one.
var ErrLabourerHasActiveOrder = errors.New("labourer already has an active order")

// ClaimOrderCommandHandler orchestrates the "take order" flow, the contended
// path of the whole system. It enforces two invariants under concurrency:
//
//   - single assignee: the repository persists the claim with a conditional
//     write that succeeds only while the order is still unassigned, so two
//     labourers racing for the same order resolve to exactly one winner and
//     one order.ErrOrderAlreadyAssigned
//   - one active order per labourer: claims by the same labourer are
//     serialized with a per-labourer lock held for the transaction, so the
//     active-order count cannot change between the check and the claim write
//
// Example:
//
//	handler := NewClaimOrderCommandHandler(uowFactory, emitter, logger)
//	claimed, err := handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, order.ErrOrderAlreadyAssigned):
//	    // another labourer won the race; retry with a different order
//	case errors.Is(err, ErrLabourerHasActiveOrder):
//	    // finish the current delivery first
//	}
type ClaimOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	notifier   notifier
}

// NewClaimOrderCommandHandler creates a handler for order claiming.
func NewClaimOrderCommandHandler(
	uowFactory OrderUoWFactory,
	emitter ports.NotificationEmitter,
	logger *slog.Logger,
) ClaimOrderCommandHandler {
	return ClaimOrderCommandHandler{
		uowFactory: uowFactory,
		notifier:   newNotifier(emitter, logger),
	}
}

// Handle processes the claim command and returns the claimed order, now in
// Confirmed status and assigned to the requesting labourer.
func (h ClaimOrderCommandHandler) Handle(ctx context.Context, cmd ClaimOrderCommand) (*order.Order, error) {
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

	// Serialize this labourer's claims for the rest of the transaction,
	// then recompute the active-order count under the lock.
	if err := orderRepo.LockAssignee(ctx, cmd.LabourerID()); err != nil {
		return nil, err
	}

	active, err := orderRepo.CountActiveByAssignee(ctx, cmd.LabourerID())
	if err != nil {
		return nil, err
	}
	if active > 0 {
		return nil, ErrLabourerHasActiveOrder
	}

	aggregate, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	if err = aggregate.Claim(cmd.LabourerID(), time.Now().UTC()); err != nil {
		return nil, err
	}

	if err = orderRepo.Claim(ctx, aggregate); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.notifier.orderChanged(ctx, aggregate)
	return aggregate, nil
}
