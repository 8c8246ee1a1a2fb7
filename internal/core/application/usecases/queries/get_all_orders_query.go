package queries

import (
	"errors"
	"time"

	"agromarket/internal/core/domain/model/kernel"
	"agromarket/internal/pkg/guard"
)

var ErrGetAllOrdersQueryIsNotConstructed = errors.New(
	"GetAllOrdersQuery must be created via NewGetAllOrdersQuery constructor",
)

// GetAllOrdersQuery retrieves every order in the marketplace for the admin
// view, with buyer, product and assignee fields resolved for display.
// Results are sorted newest-first.
type GetAllOrdersQuery struct {
	guard guard.ConstructorGuard
}

// NewGetAllOrdersQuery creates a query to retrieve all orders.
// This is a parameterless query.
func NewGetAllOrdersQuery() GetAllOrdersQuery {
	return GetAllOrdersQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetAllOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetAllOrdersQueryIsNotConstructed)
}

// OrderLineView is a display row for one order line with the product name
// resolved from the catalog.
type OrderLineView struct {
	ProductID   kernel.UUID
	ProductName string
	Quantity    int
	Price       int64
}

// OrderView is a display row for one order, shared by the admin and buyer
// list views.
type OrderView struct {
	ID         kernel.UUID
	BuyerID    kernel.UUID
	Status     string
	Total      int64
	Street     string
	City       string
	AssignedTo *kernel.UUID
	CreatedAt  time.Time
	Lines      []OrderLineView
}
