package order

import (
	"fmt"

	"agromarket/internal/core/domain/model/kernel"
	"agromarket/internal/pkg/errs"
	"agromarket/internal/pkg/guard"
)

// Line is a value object representing a single order line item.
// It snapshots the product reference, the requested quantity and the unit
// price at the moment the order is placed; later product price changes do
// not affect existing orders.
type Line struct {
	productID kernel.UUID
	quantity  int
	price     int64

	guard guard.ConstructorGuard
}

// ErrLineIsNotConstructed is returned when a Line was not created via NewLine.
var ErrLineIsNotConstructed = errs.NewValueIsRequiredError("Line must be created via NewLine constructor")

// NewLine creates a validated order line.
//
// Rules:
//   - productID must be a valid UUID
//   - quantity must be positive
//   - price must not be negative
func NewLine(productID kernel.UUID, quantity int, price int64) (Line, error) {
	if err := productID.Validate(); err != nil {
		return Line{}, err
	}

	if quantity <= 0 {
		return Line{}, errs.NewValueIsInvalidErrorWithCause("quantity is invalid",
			fmt.Errorf("%d is not greater than 0", quantity))
	}

	if price < 0 {
		return Line{}, errs.NewValueIsInvalidErrorWithCause("price is invalid",
			fmt.Errorf("%d is negative", price))
	}

	return Line{
		productID: productID,
		quantity:  quantity,
		price:     price,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the line was created through NewLine.
func (l Line) Validate() error {
	return l.guard.Validate(ErrLineIsNotConstructed)
}

// ProductID returns the referenced product's identifier.
func (l Line) ProductID() kernel.UUID {
	return l.productID
}

// Quantity returns the ordered quantity in units.
func (l Line) Quantity() int {
	return l.quantity
}

// Price returns the unit price snapshot in currency units.
func (l Line) Price() int64 {
	return l.price
}

// Subtotal returns quantity times unit price.
func (l Line) Subtotal() int64 {
	return int64(l.quantity) * l.price
}
