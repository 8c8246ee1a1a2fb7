package queries

import (
	"errors"

	"agromarket/internal/core/domain/model/kernel"
	"agromarket/internal/pkg/guard"
)

var ErrGetAssignedOrdersQueryIsNotConstructed = errors.New(
	"GetAssignedOrdersQuery must be created via NewGetAssignedOrdersQuery constructor",
)

// GetAssignedOrdersQuery retrieves a labourer's own orders: those currently
// assigned to them, plus orders whose status history records them as the
// actor of a transition. The history union keeps the view complete even for
// records written before assignment data was reliable.
//
// Delivered orders are hidden by default; set includeDelivered to show them.
type GetAssignedOrdersQuery struct { //nolint:recvcheck //using for validation
	labourerID       kernel.UUID
	includeDelivered bool

	guard guard.ConstructorGuard
}

// NewGetAssignedOrdersQuery creates a query for a labourer's own orders.
func NewGetAssignedOrdersQuery(labourerID kernel.UUID, includeDelivered bool) (GetAssignedOrdersQuery, error) {
	query := GetAssignedOrdersQuery{
		includeDelivered: includeDelivered,
		guard:            guard.NewConstructorGuard(),
	}

	if err := query.setLabourerID(labourerID); err != nil {
		return GetAssignedOrdersQuery{}, err
	}

	return query, nil
}

// Validate ensures the query was created through the constructor.
func (q GetAssignedOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetAssignedOrdersQueryIsNotConstructed)
}

// LabourerID returns the labourer whose orders are listed.
func (q GetAssignedOrdersQuery) LabourerID() kernel.UUID {
	return q.labourerID
}

// IncludeDelivered reports whether Delivered orders appear in the result.
func (q GetAssignedOrdersQuery) IncludeDelivered() bool {
	return q.includeDelivered
}

func (q *GetAssignedOrdersQuery) setLabourerID(labourerID kernel.UUID) error {
	if err := labourerID.Validate(); err != nil {
		return err
	}

	q.labourerID = labourerID
	return nil
}

// GetAssignedOrdersQueryResponse carries the labourer's order list together
// with the finished-count aggregate (own orders delivered so far).
type GetAssignedOrdersQueryResponse struct {
	Orders        []OrderView
	FinishedCount int64
}
