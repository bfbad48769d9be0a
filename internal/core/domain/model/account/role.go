package account

import (
	"fmt"

	"ordering/internal/pkg/errs"
)

// Role is a named authorization role assigned to a user account.
type Role string

const (
	// RoleAdmin can manage orders and receives cancellation-request notifications.
	RoleAdmin Role = "Admin"

	// RoleShipper can update order statuses along the shipping path.
	RoleShipper Role = "Shipper"

	// RoleCustomer can place orders and request cancellation of their own orders.
	RoleCustomer Role = "Customer"
)

// Validate checks that the role is one of the known roles.
func (r Role) Validate() error {
	switch r {
	case RoleAdmin, RoleShipper, RoleCustomer:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("role is invalid",
			fmt.Errorf("%q is not a known role", string(r)))
	}
}

// String returns the role name as stored and matched in route role lists.
func (r Role) String() string {
	return string(r)
}
