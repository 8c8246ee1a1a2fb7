package commands

import (
	"errors"

	"agromarket/internal/core/domain/model/kernel"
	"agromarket/internal/core/domain/model/order"
	"agromarket/internal/pkg/guard"
)

var ErrUpdateOrderStatusCommandIsNotConstructed = errors.New(
	"UpdateOrderStatusCommand must be created via NewUpdateOrderStatusCommand constructor",
)

// UpdateOrderStatusCommand represents an assigned labourer's request to move
// an order forward along the fulfilment flow (Confirmed, Shipped, Delivered).
type UpdateOrderStatusCommand struct { //nolint:recvcheck //using for validation
	orderID    kernel.UUID
	labourerID kernel.UUID
	target     order.Status

	guard guard.ConstructorGuard
}

// NewUpdateOrderStatusCommand creates a command to progress an order's status.
// Validates the identifiers and that the target is a valid status; whether
// the transition itself is permitted is decided by the Order aggregate.
func NewUpdateOrderStatusCommand(
	orderID, labourerID kernel.UUID,
	target order.Status,
) (UpdateOrderStatusCommand, error) {
	cmd := UpdateOrderStatusCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setLabourerID(labourerID),
		cmd.setTarget(target),
	); err != nil {
		return UpdateOrderStatusCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateOrderStatusCommand) Validate() error {
	return c.guard.Validate(ErrUpdateOrderStatusCommandIsNotConstructed)
}

// OrderID returns the order to progress.
func (c UpdateOrderStatusCommand) OrderID() kernel.UUID {
	return c.orderID
}

// LabourerID returns the requesting labourer.
func (c UpdateOrderStatusCommand) LabourerID() kernel.UUID {
	return c.labourerID
}

// Target returns the requested target status.
func (c UpdateOrderStatusCommand) Target() order.Status {
	return c.target
}

func (c *UpdateOrderStatusCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *UpdateOrderStatusCommand) setLabourerID(labourerID kernel.UUID) error {
	if err := labourerID.Validate(); err != nil {
		return err
	}

	c.labourerID = labourerID
	return nil
}

func (c *UpdateOrderStatusCommand) setTarget(target order.Status) error {
	if err := target.Validate(); err != nil {
		return err
	}

	c.target = target
	return nil
}
