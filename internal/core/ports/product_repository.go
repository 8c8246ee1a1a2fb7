package ports

import (
	"context"

	"agromarket/internal/core/domain/model/kernel"
	"agromarket/internal/core/domain/model/product"
)

// ProductRepository defines the persistence contract for product aggregates,
// acting as the stock ledger for order placement and cancellation.
type ProductRepository interface {
	// Add persists a new product aggregate to storage.
	Add(ctx context.Context, aggregate *product.Product) error

	// Update persists changes to an existing product aggregate.
	Update(ctx context.Context, aggregate *product.Product) error

	// Get retrieves a product aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*product.Product, error)

	// Reserve atomically decrements available stock and increments the sold
	// counter by qty. The decrement is conditional on sufficient stock, so
	// concurrent reservations against the last units cannot both succeed:
	// the loser receives product.ErrInsufficientStock. Returns a not-found
	// error if the product does not exist.
	Reserve(ctx context.Context, id kernel.UUID, qty int) error

	// Release atomically restores qty units of stock and reduces the sold
	// counter, clamping sold at zero.
	Release(ctx context.Context, id kernel.UUID, qty int) error
}
