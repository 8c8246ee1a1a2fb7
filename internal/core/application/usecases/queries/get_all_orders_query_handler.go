package queries

import (
	"context"

	"gorm.io/gorm"
)

// GetAllOrdersQueryHandler retrieves every order for the admin view.
//
// Example:
//
//	handler := NewGetAllOrdersQueryHandler(db)
//	orders, err := handler.Handle(ctx, NewGetAllOrdersQuery())
//	if err != nil {
//	    return fmt.Errorf("failed to list orders: %w", err)
//	}
type GetAllOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetAllOrdersQueryHandler creates a handler for the admin order list.
// Requires a GORM database connection for query execution.
func NewGetAllOrdersQueryHandler(db *gorm.DB) GetAllOrdersQueryHandler {
	return GetAllOrdersQueryHandler{db: db}
}

// Handle executes the query. Returns all orders, newest first, with buyer,
// assignee and product fields resolved for display.
func (h GetAllOrdersQueryHandler) Handle(ctx context.Context, query GetAllOrdersQuery) ([]OrderView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	return fetchOrderViews(ctx, h.db, "")
}
