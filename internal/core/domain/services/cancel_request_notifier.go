package services

import (
	"errors"
	"fmt"

	"ordering/internal/core/domain/model/account"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
)

// ActionReviewCancelRequest is the action tag carried in the notification
// payload so admin clients can deep-link into the cancellation review screen.
const ActionReviewCancelRequest = "review_cancel_request"

// ErrOrderIsNotCancelRequested is returned when notifications are composed for
// an order that is not awaiting cancellation review.
var ErrOrderIsNotCancelRequested = errors.New("order has no pending cancellation request")

// Notification is a single push message addressed to one recipient account.
// The notification service fans it out across all of that account's
// registered devices; this service never addresses individual device tokens.
type Notification struct {
	// RecipientID is the account the message is addressed to.
	RecipientID kernel.UUID

	// Title and Body are the human-readable message parts.
	Title string
	Body  string

	// Data is the structured payload delivered alongside the message.
	Data map[string]string
}

// CancelRequestNotificationComposer is a domain service that plans the
// notification fan-out for a cancellation request: one message per admin
// with at least one registered device token.
//
// Key responsibilities:
//   - Validating the order and admin accounts before composing
//   - Building the message text from order, customer and reason
//   - Separating reachable admins from those without device tokens
//
// Business rules:
//   - Only orders in RequestCancel status produce notifications
//   - Admins without device tokens are skipped, never failed
//   - The customer is identified by username, then email, then account id
//
// Example usage:
//
//	composer := NewCancelRequestNotificationComposer()
//	notifications, skipped, err := composer.Compose(o, customerUser, admins)
//	if err != nil {
//	    return err
//	}
//	for _, n := range notifications {
//	    _ = notifier.SendToUser(ctx, n)
//	}
type CancelRequestNotificationComposer struct{}

// NewCancelRequestNotificationComposer creates a new composer instance.
func NewCancelRequestNotificationComposer() CancelRequestNotificationComposer {
	return CancelRequestNotificationComposer{}
}

// Compose builds one notification per reachable admin for the given
// cancellation-requested order.
//
// Parameters:
//   - o: the order awaiting cancellation review (must be in RequestCancel status)
//   - customerUser: the user account linked to the order's customer; may be nil,
//     in which case the customer is identified by the customer id
//   - admins: the admin accounts to notify
//
// Returns:
//   - notifications for every admin with at least one device token
//   - the ids of admins skipped because they have no device token
//   - an error if the order or any admin fails validation
func (CancelRequestNotificationComposer) Compose(
	o *order.Order,
	customerUser *account.User,
	admins []*account.User,
) ([]Notification, []kernel.UUID, error) {
	if err := o.Validate(); err != nil {
		return nil, nil, err
	}
	if o.Status() != order.RequestCancel {
		return nil, nil, ErrOrderIsNotCancelRequested
	}

	customerInfo := o.CustomerID().String()
	if customerUser != nil {
		if err := customerUser.Validate(); err != nil {
			return nil, nil, err
		}
		customerInfo = customerUser.DisplayName()
	}

	title := "New order cancellation request"
	body := fmt.Sprintf("Customer %s requested cancellation of order #%s. Reason: %s",
		customerInfo, o.ID(), o.ReasonCancel())

	notifications := make([]Notification, 0, len(admins))
	var skipped []kernel.UUID

	for _, admin := range admins {
		if err := admin.Validate(); err != nil {
			return nil, nil, err
		}

		if !admin.HasDeviceTokens() {
			skipped = append(skipped, admin.ID())
			continue
		}

		notifications = append(notifications, Notification{
			RecipientID: admin.ID(),
			Title:       title,
			Body:        body,
			Data: map[string]string{
				"orderId":    o.ID().String(),
				"action":     ActionReviewCancelRequest,
				"customerId": o.CustomerID().String(),
			},
		})
	}

	return notifications, skipped, nil
}
