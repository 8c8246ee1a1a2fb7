// Package ports defines repository and outbound interfaces for the marketplace
// order core. These interfaces establish contracts between the domain layer and
// infrastructure, enabling dependency inversion and testability.
package ports

import (
	"context"

	"agromarket/internal/core/domain/model/kernel"
	"agromarket/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// Provides methods for storing, retrieving, and mutating order entities
// together with their append-only status history.
type OrderRepository interface {
	// Add persists a new order aggregate with its initial history entry.
	// The order must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate and appends any
	// new status history entries. The order must exist and be valid.
	//
	// The write is conditional on the status the aggregate was read at. If
	// the stored order moved on in the meantime the write is rejected with
	// order.ErrOrderIsTerminal (the row reached a terminal status) or
	// order.ErrOrderChanged, so read-then-write callers cannot overwrite a
	// concurrent transition or restore stock twice.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier, including
	// line items and the full status history.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// Claim persists a labourer claim atomically: the write succeeds only if
	// the stored order still has no assignee and still holds the status it
	// was read at, so two concurrent claims resolve to exactly one winner and
	// a claim racing a cancellation leaves the terminal row untouched. The
	// loser receives order.ErrOrderAlreadyAssigned or order.ErrOrderIsTerminal.
	//
	// The aggregate passed in must already hold the claim (Order.Claim applied).
	Claim(ctx context.Context, aggregate *order.Order) error

	// LockAssignee serializes claim attempts of a single labourer for the
	// duration of the surrounding transaction, so the one-active-order check
	// and the claim write cannot interleave with the same labourer's
	// concurrent claims on other orders.
	LockAssignee(ctx context.Context, labourerID kernel.UUID) error

	// CountActiveByAssignee returns the number of orders assigned to the
	// labourer whose status is not Delivered or Cancelled. The one-active-order
	// invariant holds when this never exceeds one.
	CountActiveByAssignee(ctx context.Context, labourerID kernel.UUID) (int64, error)
}
