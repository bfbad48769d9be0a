package userrepo

import (
	"context"
	"errors"

	"ordering/internal/core/domain/model/account"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormUserRepository implements UserRepository using GORM.
// All operations are reads; this repository never participates in the
// order unit of work.
type GormUserRepository struct {
	db *gorm.DB
}

// NewGormUserRepository creates a new GORM user repository.
func NewGormUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

// GetByCustomerID retrieves the user account linked to the given customer,
// with roles and device tokens loaded.
func (r *GormUserRepository) GetByCustomerID(ctx context.Context, customerID kernel.UUID) (*account.User, error) {
	if err := customerID.Validate(); err != nil {
		return nil, err
	}

	var customer CustomerDTO
	if err := r.db.WithContext(ctx).First(&customer, "id = ?", customerID.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("customer", customerID.String())
		}
		return nil, err
	}

	var dto UserDTO
	err := r.db.WithContext(ctx).
		Preload("Roles").
		Preload("DeviceTokens").
		First(&dto, "id = ?", customer.UserID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("user", customer.UserID.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetCustomerByUserID retrieves the customer record linked to the given user account.
func (r *GormUserRepository) GetCustomerByUserID(ctx context.Context, userID kernel.UUID) (*account.Customer, error) {
	if err := userID.Validate(); err != nil {
		return nil, err
	}

	var dto CustomerDTO
	if err := r.db.WithContext(ctx).First(&dto, "user_id = ?", userID.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("customer by user", userID.String())
		}
		return nil, err
	}

	return customerToDomain(dto)
}

// GetAllInRole retrieves every user holding the given role, with their role
// assignments and registered device tokens loaded.
func (r *GormUserRepository) GetAllInRole(ctx context.Context, role account.Role) ([]*account.User, error) {
	if err := role.Validate(); err != nil {
		return nil, err
	}

	var dtos []UserDTO
	err := r.db.WithContext(ctx).
		Preload("Roles").
		Preload("DeviceTokens").
		Joins("JOIN user_roles ON user_roles.user_id = users.id").
		Where("user_roles.role_name = ?", role.String()).
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	users := make([]*account.User, 0, len(dtos))
	for _, dto := range dtos {
		user, mapErr := toDomain(dto)
		if mapErr != nil {
			return nil, mapErr
		}
		users = append(users, user)
	}

	return users, nil
}
