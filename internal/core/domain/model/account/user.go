package account

import (
	"errors"

	"ordering/internal/core/domain/model/kernel"
)

// ErrUserIsNotConstructed is returned when a User instance was not created
// through the RestoreUser factory method.
var ErrUserIsNotConstructed = errors.New("User must be created via RestoreUser constructor")

// User represents a user account as read by this service. Account management
// lives elsewhere; orders only need identity, display information, role
// assignments for authorization, and registered notification-device tokens
// for push fan-out.
//
// User is read-only here: no mutating behavior is exposed.
type User struct {
	id           kernel.UUID
	username     string
	email        string
	roles        []Role
	deviceTokens []string

	isConstructed bool
}

// RestoreUser reconstructs a User from persisted state.
// Username and email may be empty; DisplayName falls back accordingly.
func RestoreUser(id kernel.UUID, username, email string, roles []Role, deviceTokens []string) (*User, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	for _, role := range roles {
		if err := role.Validate(); err != nil {
			return nil, err
		}
	}

	return &User{
		id:            id,
		username:      username,
		email:         email,
		roles:         roles,
		deviceTokens:  deviceTokens,
		isConstructed: true,
	}, nil
}

// Validate ensures the User instance was properly constructed through RestoreUser.
func (u *User) Validate() error {
	if u == nil || !u.isConstructed {
		return ErrUserIsNotConstructed
	}
	return nil
}

// ID returns the user's unique identifier.
func (u *User) ID() kernel.UUID {
	return u.id
}

// Username returns the user's login name. May be empty.
func (u *User) Username() string {
	return u.username
}

// Email returns the user's email address. May be empty.
func (u *User) Email() string {
	return u.email
}

// Roles returns the user's role assignments.
func (u *User) Roles() []Role {
	return u.roles
}

// DeviceTokens returns the user's registered notification-device tokens.
func (u *User) DeviceTokens() []string {
	return u.deviceTokens
}

// HasRole reports whether the user holds the given role.
func (u *User) HasRole(role Role) bool {
	for _, r := range u.roles {
		if r == role {
			return true
		}
	}
	return false
}

// HasDeviceTokens reports whether the user has at least one registered device
// token, i.e. whether a push notification can reach them.
func (u *User) HasDeviceTokens() bool {
	return len(u.deviceTokens) > 0
}

// DisplayName returns the best available human-readable identification of the
// user: username, then email, then the user id.
func (u *User) DisplayName() string {
	if u.username != "" {
		return u.username
	}
	if u.email != "" {
		return u.email
	}
	return u.id.String()
}
