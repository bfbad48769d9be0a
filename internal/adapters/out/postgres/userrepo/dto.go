// Package userrepo provides read-only access to user accounts, their role
// assignments, device tokens and customer links. Account data is written by
// the account-management system; order management only reads it.
package userrepo

import (
	"ordering/internal/core/domain/model/account"
	"ordering/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// UserDTO represents the database structure of a user account.
type UserDTO struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Username     string
	Email        string
	Roles        []RoleDTO        `gorm:"many2many:user_roles;foreignKey:ID;joinForeignKey:UserID;references:Name;joinReferences:RoleName"`
	DeviceTokens []DeviceTokenDTO `gorm:"foreignKey:UserID"`
}

// TableName specifies the database table name for user entities.
func (UserDTO) TableName() string {
	return "users"
}

// RoleDTO represents a named authorization role.
type RoleDTO struct {
	Name string `gorm:"primaryKey"`
}

// TableName specifies the database table name for role entities.
func (RoleDTO) TableName() string {
	return "roles"
}

// DeviceTokenDTO represents a registered notification-device token.
type DeviceTokenDTO struct {
	ID     uint      `gorm:"primaryKey;autoIncrement"`
	UserID uuid.UUID `gorm:"type:uuid;index"`
	Token  string
}

// TableName specifies the database table name for device token entities.
func (DeviceTokenDTO) TableName() string {
	return "device_tokens"
}

// CustomerDTO links a customer identity to its user account.
type CustomerDTO struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID uuid.UUID `gorm:"type:uuid;uniqueIndex"`
}

// TableName specifies the database table name for customer entities.
func (CustomerDTO) TableName() string {
	return "customers"
}

// toDomain converts a user DTO with preloaded roles and device tokens into
// the account read model.
func toDomain(dto UserDTO) (*account.User, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	roles := make([]account.Role, 0, len(dto.Roles))
	for _, role := range dto.Roles {
		roles = append(roles, account.Role(role.Name))
	}

	tokens := make([]string, 0, len(dto.DeviceTokens))
	for _, token := range dto.DeviceTokens {
		tokens = append(tokens, token.Token)
	}

	return account.RestoreUser(id, dto.Username, dto.Email, roles, tokens)
}

// customerToDomain converts a customer DTO into the account read model.
func customerToDomain(dto CustomerDTO) (*account.Customer, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	userID, err := kernel.UUIDFromBytes(dto.UserID[:])
	if err != nil {
		return nil, err
	}

	return account.RestoreCustomer(id, userID)
}
