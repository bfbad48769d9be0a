package commands

import (
	"errors"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/pkg/guard"
)

var ErrUpdateOrderStatusCommandIsNotConstructed = errors.New(
	"UpdateOrderStatusCommand must be created via NewUpdateOrderStatusCommand constructor",
)

// UpdateOrderStatusCommand represents an admin/shipper request to move an
// order to a new lifecycle status. Allowed transitions are enforced by the
// Order aggregate, not by this command.
type UpdateOrderStatusCommand struct { //nolint:recvcheck //using for validation
	orderID      kernel.UUID
	targetStatus order.Status

	guard guard.ConstructorGuard
}

// NewUpdateOrderStatusCommand creates a command to change an order's status.
// Validates the order id and that the target status is a valid status value;
// whether the transition is allowed is decided against the loaded order.
func NewUpdateOrderStatusCommand(orderID kernel.UUID, targetStatus order.Status) (UpdateOrderStatusCommand, error) {
	cmd := UpdateOrderStatusCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		orderID.Validate(),
		targetStatus.Validate(),
	); err != nil {
		return UpdateOrderStatusCommand{}, err
	}

	cmd.orderID = orderID
	cmd.targetStatus = targetStatus
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateOrderStatusCommand) Validate() error {
	return c.guard.Validate(ErrUpdateOrderStatusCommandIsNotConstructed)
}

// OrderID returns the identifier of the order to update.
func (c UpdateOrderStatusCommand) OrderID() kernel.UUID {
	return c.orderID
}

// TargetStatus returns the requested new status.
func (c UpdateOrderStatusCommand) TargetStatus() order.Status {
	return c.targetStatus
}
