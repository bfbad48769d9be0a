package ports

import (
	"context"

	"ordering/internal/core/domain/model/account"
	"ordering/internal/core/domain/model/kernel"
)

// UserRepository defines the read-side contract over user accounts and their
// customer links. Account data is owned elsewhere; order management only
// reads it for authorization, ownership checks, and notification fan-out.
type UserRepository interface {
	// GetByCustomerID retrieves the user account linked to the given customer.
	GetByCustomerID(ctx context.Context, customerID kernel.UUID) (*account.User, error)

	// GetCustomerByUserID retrieves the customer record linked to the given user account.
	GetCustomerByUserID(ctx context.Context, userID kernel.UUID) (*account.Customer, error)

	// GetAllInRole retrieves every user holding the given role, with their
	// role assignments and registered device tokens loaded.
	GetAllInRole(ctx context.Context, role account.Role) ([]*account.User, error)
}
