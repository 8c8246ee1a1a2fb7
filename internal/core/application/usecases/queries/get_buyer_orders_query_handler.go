package queries

import (
	"context"

	"gorm.io/gorm"
)

// GetBuyerOrdersQueryHandler retrieves a buyer's own orders.
type GetBuyerOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetBuyerOrdersQueryHandler creates a handler for the buyer order list.
func NewGetBuyerOrdersQueryHandler(db *gorm.DB) GetBuyerOrdersQueryHandler {
	return GetBuyerOrdersQueryHandler{db: db}
}

// Handle executes the query. Returns the buyer's orders, newest first,
// in the same display shape as the admin view.
func (h GetBuyerOrdersQueryHandler) Handle(ctx context.Context, query GetBuyerOrdersQuery) ([]OrderView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	return fetchOrderViews(ctx, h.db, "buyer_id = ?", query.BuyerID().Bytes())
}
