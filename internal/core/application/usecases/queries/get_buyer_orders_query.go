package queries

import (
	"errors"

	"agromarket/internal/core/domain/model/kernel"
	"agromarket/internal/pkg/guard"
)

var ErrGetBuyerOrdersQueryIsNotConstructed = errors.New(
	"GetBuyerOrdersQuery must be created via NewGetBuyerOrdersQuery constructor",
)

// GetBuyerOrdersQuery retrieves the orders placed by one buyer,
// sorted newest-first.
type GetBuyerOrdersQuery struct { //nolint:recvcheck //using for validation
	buyerID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetBuyerOrdersQuery creates a query for a buyer's own orders.
func NewGetBuyerOrdersQuery(buyerID kernel.UUID) (GetBuyerOrdersQuery, error) {
	query := GetBuyerOrdersQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := query.setBuyerID(buyerID); err != nil {
		return GetBuyerOrdersQuery{}, err
	}

	return query, nil
}

// Validate ensures the query was created through the constructor.
func (q GetBuyerOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetBuyerOrdersQueryIsNotConstructed)
}

// BuyerID returns the buyer whose orders are listed.
func (q GetBuyerOrdersQuery) BuyerID() kernel.UUID {
	return q.buyerID
}

func (q *GetBuyerOrdersQuery) setBuyerID(buyerID kernel.UUID) error {
	if err := buyerID.Validate(); err != nil {
		return err
	}

	q.buyerID = buyerID
	return nil
}
