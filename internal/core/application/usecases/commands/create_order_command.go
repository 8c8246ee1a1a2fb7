package commands

import (
	"errors"

	"agromarket/internal/core/domain/model/kernel"
	"agromarket/internal/core/domain/model/order"
	"agromarket/internal/pkg/guard"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
	ErrLinesAreRequired = errors.New("at least one order line is required")
)

// CreateOrderCommand represents a buyer's request to place a new order.
// Encapsulates the order identity, the buyer, the product lines with their
// price snapshots, and the shipping address.
//
// Example:
//
//	line, _ := order.NewLine(productID, 3, 120)
//	address, _ := order.NewAddress("12 Farm Road", "Nashik", "MH", "422001")
//	cmd, err := NewCreateOrderCommand(kernel.NewUUID(), buyerID, []order.Line{line}, address)
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	buyerID kernel.UUID
	lines   []order.Line
	address order.Address

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to place a new order.
// Validates that the IDs are valid, at least one line is present, every line
// was properly constructed, and the address is valid.
func NewCreateOrderCommand(
	orderID kernel.UUID,
	buyerID kernel.UUID,
	lines []order.Line,
	address order.Address,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setBuyerID(buyerID),
		cmd.setLines(lines),
		cmd.setAddress(address),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrCreateOrderCommandIsNotConstructed if validation fails.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// OrderID returns the identifier assigned to the new order.
func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// BuyerID returns the buyer placing the order.
func (c CreateOrderCommand) BuyerID() kernel.UUID {
	return c.buyerID
}

// Lines returns the order line snapshots.
func (c CreateOrderCommand) Lines() []order.Line {
	return c.lines
}

// Address returns the shipping address.
func (c CreateOrderCommand) Address() order.Address {
	return c.address
}

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setBuyerID(buyerID kernel.UUID) error {
	if err := buyerID.Validate(); err != nil {
		return err
	}

	c.buyerID = buyerID
	return nil
}

func (c *CreateOrderCommand) setLines(lines []order.Line) error {
	if len(lines) == 0 {
		return ErrLinesAreRequired
	}

	for _, line := range lines {
		if err := line.Validate(); err != nil {
			return err
		}
	}

	c.lines = lines
	return nil
}

func (c *CreateOrderCommand) setAddress(address order.Address) error {
	if err := address.Validate(); err != nil {
		return err
	}

	c.address = address
	return nil
}
