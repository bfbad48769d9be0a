package commands

import (
	"errors"
	"fmt"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/guard"
)

var (
	ErrRequestCancelOrderCommandIsNotConstructed = errors.New(
		"RequestCancelOrderCommand must be created via NewRequestCancelOrderCommand constructor",
	)
	ErrReasonIsRequired = errors.New("cancellation reason is required")
)

// RequestCancelOrderCommand represents a customer's request to cancel an
// order. The requesting customer id is carried as the raw string taken from
// the authenticated session; the handler resolves it, so an unresolvable
// identity fails as an authentication problem rather than a bad request.
//
// Example:
//
//	cmd, err := NewRequestCancelOrderCommand(orderID, identity.CustomerID, "Changed my mind", "found it cheaper")
//	if err != nil {
//	    return err
//	}
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return err
//	}
type RequestCancelOrderCommand struct { //nolint:recvcheck //using for validation
	orderID      kernel.UUID
	customerID   string
	reason       string
	detailReason string

	guard guard.ConstructorGuard
}

// NewRequestCancelOrderCommand creates a command to request order cancellation.
// Validates the order id and that a reason is present. The detail reason is
// optional and folded into the composed reason when supplied.
func NewRequestCancelOrderCommand(
	orderID kernel.UUID,
	customerID string,
	reason string,
	detailReason string,
) (RequestCancelOrderCommand, error) {
	cmd := RequestCancelOrderCommand{
		customerID:   customerID,
		detailReason: detailReason,
		guard:        guard.NewConstructorGuard(),
	}

	if err := orderID.Validate(); err != nil {
		return RequestCancelOrderCommand{}, err
	}
	if reason == "" {
		return RequestCancelOrderCommand{}, ErrReasonIsRequired
	}

	cmd.orderID = orderID
	cmd.reason = reason
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c RequestCancelOrderCommand) Validate() error {
	return c.guard.Validate(ErrRequestCancelOrderCommandIsNotConstructed)
}

// OrderID returns the identifier of the order to cancel.
func (c RequestCancelOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// CustomerID returns the raw identity string of the requesting customer.
func (c RequestCancelOrderCommand) CustomerID() string {
	return c.customerID
}

// Reason returns the primary cancellation reason.
func (c RequestCancelOrderCommand) Reason() string {
	return c.reason
}

// DetailReason returns the optional free-text detail.
func (c RequestCancelOrderCommand) DetailReason() string {
	return c.detailReason
}

// ComposedReason returns the reason string that gets recorded on the order:
// the primary reason, with the detail appended in parentheses when present.
func (c RequestCancelOrderCommand) ComposedReason() string {
	if c.detailReason == "" {
		return c.reason
	}
	return fmt.Sprintf("%s (%s)", c.reason, c.detailReason)
}
