package queries

import (
	"context"

	"agromarket/internal/core/domain/model/order"

	"gorm.io/gorm"
)

// GetAssignedOrdersQueryHandler retrieves the labour "mine" view: orders
// assigned to the labourer, united with orders where the labourer appears as
// the actor of any history entry, plus the finished-count aggregate.
type GetAssignedOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetAssignedOrdersQueryHandler creates a handler for the labour order list.
func NewGetAssignedOrdersQueryHandler(db *gorm.DB) GetAssignedOrdersQueryHandler {
	return GetAssignedOrdersQueryHandler{db: db}
}

// Handle executes the query. Returns the labourer's orders newest first
// (Delivered hidden unless requested) and the count of own delivered orders.
func (h GetAssignedOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetAssignedOrdersQuery,
) (GetAssignedOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetAssignedOrdersQueryResponse{}, err
	}

	labourerID := query.LabourerID().Bytes()

	where := `(assigned_to = ? OR id IN (
		SELECT order_id FROM order_status_history WHERE changed_by = ?
	))`
	args := []any{labourerID, labourerID}

	if !query.IncludeDelivered() {
		where += " AND status != ?"
		args = append(args, int(order.Delivered))
	}

	views, err := fetchOrderViews(ctx, h.db, where, args...)
	if err != nil {
		return GetAssignedOrdersQueryResponse{}, err
	}

	var finished int64
	err = h.db.WithContext(ctx).Raw(`
		SELECT COUNT(*) FROM orders WHERE assigned_to = ? AND status = ?
	`, labourerID, int(order.Delivered)).Scan(&finished).Error
	if err != nil {
		return GetAssignedOrdersQueryResponse{}, err
	}

	return GetAssignedOrdersQueryResponse{
		Orders:        views,
		FinishedCount: finished,
	}, nil
}
