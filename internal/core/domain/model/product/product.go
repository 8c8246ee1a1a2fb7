package product

import (
	"errors"
	"fmt"

	"agromarket/internal/core/domain/model/kernel"
	"agromarket/internal/pkg/errs"
)

// Domain errors for product operations.
var (
	// ErrProductIsNotConstructed is returned when using an improperly initialized Product.
	ErrProductIsNotConstructed = errors.New("Product must be created via NewProduct constructor")
	// ErrNameIsRequired is returned when attempting to create a product without a name.
	ErrNameIsRequired = errs.NewValueIsRequiredError("name")
	// ErrInsufficientStock is returned when a reservation exceeds available stock.
	ErrInsufficientStock = errors.New("insufficient stock")
)

// Product represents a seller's listed product with its available stock.
// It is an aggregate root tracking two counters mutated by the order
// lifecycle: quantity (units still available) and sold (cumulative units
// sold). Placing an order reserves stock; cancelling releases it.
//
// Business rules:
//   - quantity never goes negative: a reservation that exceeds the available
//     stock fails with ErrInsufficientStock
//   - sold never goes negative: releases clamp it at zero, which defends
//     against prior manual adjustments of the counter
type Product struct {
	// id uniquely identifies the product
	id kernel.UUID

	// name is the display name of the product
	name string

	// price is the current listed unit price in currency units
	price int64

	// quantity is the available stock in units
	quantity int

	// sold is the cumulative number of units sold
	sold int

	// isConstructed ensures the product was created via a constructor
	isConstructed bool
}

// NewProduct creates a new Product with validation.
// Price must not be negative and quantity must not be negative.
func NewProduct(id kernel.UUID, name string, price int64, quantity int) (*Product, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	if name == "" {
		return nil, ErrNameIsRequired
	}

	if price < 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("price is invalid",
			fmt.Errorf("%d is negative", price))
	}

	if quantity < 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("quantity is invalid",
			fmt.Errorf("%d is negative", quantity))
	}

	return &Product{
		id:            id,
		name:          name,
		price:         price,
		quantity:      quantity,
		isConstructed: true,
	}, nil
}

// RestoreProduct reconstructs a Product from persisted state.
func RestoreProduct(id kernel.UUID, name string, price int64, quantity, sold int) (*Product, error) {
	p, err := NewProduct(id, name, price, quantity)
	if err != nil {
		return nil, err
	}

	if sold < 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("sold is invalid",
			fmt.Errorf("%d is negative", sold))
	}

	p.sold = sold
	return p, nil
}

// Validate ensures the Product instance was properly constructed.
func (p *Product) Validate() error {
	if p == nil || !p.isConstructed {
		return ErrProductIsNotConstructed
	}
	return nil
}

// ID returns the product's unique identifier.
func (p *Product) ID() kernel.UUID {
	return p.id
}

// Name returns the product's display name.
func (p *Product) Name() string {
	return p.name
}

// Price returns the current listed unit price.
func (p *Product) Price() int64 {
	return p.price
}

// Quantity returns the available stock in units.
func (p *Product) Quantity() int {
	return p.quantity
}

// Sold returns the cumulative number of units sold.
func (p *Product) Sold() int {
	return p.sold
}

// Reserve decrements available stock and increments the sold counter by qty.
//
// Fails with ErrInsufficientStock if qty exceeds the available quantity.
// The persistence layer performs the same check as a conditional update so
// concurrent reservations against the last units cannot both succeed.
func (p *Product) Reserve(qty int) error {
	if qty <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity is invalid",
			fmt.Errorf("%d is not greater than 0", qty))
	}

	if qty > p.quantity {
		return fmt.Errorf("%w: requested %d, available %d", ErrInsufficientStock, qty, p.quantity)
	}

	p.quantity -= qty
	p.sold += qty
	return nil
}

// Release restores qty units of stock and reduces the sold counter,
// clamping sold at zero.
func (p *Product) Release(qty int) error {
	if qty <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity is invalid",
			fmt.Errorf("%d is not greater than 0", qty))
	}

	p.quantity += qty
	p.sold -= qty
	if p.sold < 0 {
		p.sold = 0
	}
	return nil
}
