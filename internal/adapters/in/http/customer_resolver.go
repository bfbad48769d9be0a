package http

import (
	"context"
	"errors"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/ports"
)

// ErrNoCustomerIdentity is returned when the caller cannot be mapped to a
// customer, neither through the token claim nor through the account link.
var ErrNoCustomerIdentity = errors.New("caller has no customer identity")

// CustomerResolver maps an authenticated identity to its customer id.
// Customer tokens normally carry the customer claim directly; tokens issued
// with only a user id fall back to the persisted user-to-customer link.
type CustomerResolver struct {
	users ports.UserRepository
}

// NewCustomerResolver creates a resolver over the given user repository.
func NewCustomerResolver(users ports.UserRepository) CustomerResolver {
	return CustomerResolver{users: users}
}

// Resolve returns the caller's customer id, or ErrNoCustomerIdentity when the
// identity does not belong to a customer.
func (r CustomerResolver) Resolve(ctx context.Context, identity Identity) (kernel.UUID, error) {
	if identity.CustomerID != "" {
		customerID, err := kernel.UUIDFromString(identity.CustomerID)
		if err != nil {
			return kernel.UUID{}, ErrNoCustomerIdentity
		}
		return customerID, nil
	}

	userID, err := kernel.UUIDFromString(identity.UserID)
	if err != nil {
		return kernel.UUID{}, ErrNoCustomerIdentity
	}

	customer, err := r.users.GetCustomerByUserID(ctx, userID)
	if err != nil {
		return kernel.UUID{}, ErrNoCustomerIdentity
	}

	return customer.ID(), nil
}
