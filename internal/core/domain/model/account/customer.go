package account

import (
	"errors"

	"ordering/internal/core/domain/model/kernel"
)

// ErrCustomerIsNotConstructed is returned when a Customer instance was not
// created through the RestoreCustomer factory method.
var ErrCustomerIsNotConstructed = errors.New("Customer must be created via RestoreCustomer constructor")

// Customer links an order-owning customer identity to exactly one user
// account. Customer lifecycle is managed by account management; this service
// only reads the link for ownership checks and notification texts.
type Customer struct {
	id     kernel.UUID
	userID kernel.UUID

	isConstructed bool
}

// RestoreCustomer reconstructs a Customer from persisted state.
func RestoreCustomer(id kernel.UUID, userID kernel.UUID) (*Customer, error) {
	if err := errors.Join(id.Validate(), userID.Validate()); err != nil {
		return nil, err
	}

	return &Customer{
		id:            id,
		userID:        userID,
		isConstructed: true,
	}, nil
}

// Validate ensures the Customer instance was properly constructed through RestoreCustomer.
func (c *Customer) Validate() error {
	if c == nil || !c.isConstructed {
		return ErrCustomerIsNotConstructed
	}
	return nil
}

// ID returns the customer's unique identifier.
func (c *Customer) ID() kernel.UUID {
	return c.id
}

// UserID returns the identifier of the linked user account.
func (c *Customer) UserID() kernel.UUID {
	return c.userID
}
