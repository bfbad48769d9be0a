package ports

import (
	"context"

	"ordering/internal/core/domain/model/kernel"
)

// ReminderDeduplicator prevents the cancel-review reminder job from nagging
// admins about the same order on every run. MarkReminded returns true exactly
// once per order within the deduplication window.
type ReminderDeduplicator interface {
	MarkReminded(ctx context.Context, orderID kernel.UUID) (bool, error)
}
