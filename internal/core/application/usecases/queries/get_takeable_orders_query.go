package queries

import (
	"errors"

	"agromarket/internal/pkg/guard"
)

var ErrGetTakeableOrdersQueryIsNotConstructed = errors.New(
	"GetTakeableOrdersQuery must be created via NewGetTakeableOrdersQuery constructor",
)

// GetTakeableOrdersQuery retrieves the pool of orders a labourer can claim:
// unassigned and not in a terminal status.
type GetTakeableOrdersQuery struct {
	guard guard.ConstructorGuard
}

// NewGetTakeableOrdersQuery creates a query for the claimable order pool.
// This is a parameterless query; the pool is the same for every labourer.
func NewGetTakeableOrdersQuery() GetTakeableOrdersQuery {
	return GetTakeableOrdersQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetTakeableOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetTakeableOrdersQueryIsNotConstructed)
}
