package ports

import (
	"context"
	"time"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// Provides methods for storing, retrieving, and querying order entities.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	// The order must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate using an
	// optimistic concurrency check on the aggregate version. Returns a
	// version error when the row was changed concurrently since the load.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetAllAwaitingCancelReviewSince retrieves orders that have been sitting
	// in RequestCancel status since before the given time. Used by the
	// cancel-review reminder job.
	GetAllAwaitingCancelReviewSince(ctx context.Context, before time.Time) ([]*order.Order, error)
}
