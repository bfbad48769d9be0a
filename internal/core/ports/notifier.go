package ports

import (
	"context"

	"ordering/internal/core/domain/services"
)

// Notifier sends push notifications to user accounts. The implementation is a
// client of an external notification service that resolves the recipient's
// registered device tokens and fans out across them; this port addresses
// accounts, never individual devices.
//
// Delivery is best-effort: callers log failures and never roll back business
// state because of them.
type Notifier interface {
	// SendToUser delivers the notification to every registered device of the
	// recipient account.
	SendToUser(ctx context.Context, notification services.Notification) error
}
