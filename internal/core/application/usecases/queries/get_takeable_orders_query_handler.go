package queries

import (
	"context"

	"agromarket/internal/core/domain/model/order"

	"gorm.io/gorm"
)

// GetTakeableOrdersQueryHandler retrieves the claimable order pool for the
// labour view. An order is takeable while it has no assignee and its status
// is neither Delivered nor Cancelled.
//
// Example:
//
//	handler := NewGetTakeableOrdersQueryHandler(db)
//	pool, err := handler.Handle(ctx, NewGetTakeableOrdersQuery())
//	if err != nil {
//	    return fmt.Errorf("failed to list takeable orders: %w", err)
//	}
type GetTakeableOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetTakeableOrdersQueryHandler creates a handler for the claimable pool.
func NewGetTakeableOrdersQueryHandler(db *gorm.DB) GetTakeableOrdersQueryHandler {
	return GetTakeableOrdersQueryHandler{db: db}
}

// Handle executes the query. Returns unassigned, non-terminal orders,
// newest first.
func (h GetTakeableOrdersQueryHandler) Handle(ctx context.Context, query GetTakeableOrdersQuery) ([]OrderView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	return fetchOrderViews(ctx, h.db,
		"assigned_to IS NULL AND status NOT IN ?",
		[]int{int(order.Delivered), int(order.Cancelled)},
	)
}
