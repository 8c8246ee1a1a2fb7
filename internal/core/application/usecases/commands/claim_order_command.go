package commands

import (
	"errors"

	"agromarket/internal/core/domain/model/kernel"
	"agromarket/internal/pkg/guard"
)

var ErrClaimOrderCommandIsNotConstructed = errors.New(
	"ClaimOrderCommand must be created via NewClaimOrderCommand constructor",
)

// ClaimOrderCommand represents a labourer's request to take an unassigned
// order for delivery.
type ClaimOrderCommand struct { //nolint:recvcheck //using for validation
	orderID    kernel.UUID
	labourerID kernel.UUID

	guard guard.ConstructorGuard
}

// NewClaimOrderCommand creates a command to claim an order.
// Validates that both identifiers are valid.
func NewClaimOrderCommand(orderID, labourerID kernel.UUID) (ClaimOrderCommand, error) {
	cmd := ClaimOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setLabourerID(labourerID),
	); err != nil {
		return ClaimOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ClaimOrderCommand) Validate() error {
	return c.guard.Validate(ErrClaimOrderCommandIsNotConstructed)
}

// OrderID returns the order to claim.
func (c ClaimOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// LabourerID returns the requesting labourer.
func (c ClaimOrderCommand) LabourerID() kernel.UUID {
	return c.labourerID
}

func (c *ClaimOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *ClaimOrderCommand) setLabourerID(labourerID kernel.UUID) error {
	if err := labourerID.Validate(); err != nil {
		return err
	}

	c.labourerID = labourerID
	return nil
}
