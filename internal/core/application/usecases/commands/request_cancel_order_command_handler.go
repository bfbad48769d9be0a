package commands

import (
	"context"
	"errors"

	"ordering/internal/core/domain/model/account"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/domain/services"
	"ordering/internal/core/ports"

	"go.uber.org/zap"
)

var (
	// ErrUnresolvableCustomerIdentity is returned when the authenticated
	// session does not resolve to a known customer identifier.
	ErrUnresolvableCustomerIdentity = errors.New("customer identity could not be resolved")

	// ErrNotOrderOwner is returned when a customer requests cancellation of an
	// order that belongs to a different customer.
	ErrNotOrderOwner = errors.New("order does not belong to the requesting customer")
)

// RequestCancelOrderCommandHandler handles customer cancellation requests.
// Moves the order into RequestCancel status, then notifies admin accounts so
// a human can review and accept or reject the request.
//
// The notification fan-out happens after the transaction commits and is
// best-effort: a failed or skipped notification is logged and never rolls
// back the status change.
type RequestCancelOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	userRepo   ports.UserRepository
	notifier   ports.Notifier
	publisher  ports.OrderEventPublisher
	composer   services.CancelRequestNotificationComposer
	logger     *zap.Logger
}

// NewRequestCancelOrderCommandHandler creates a handler for cancellation requests.
func NewRequestCancelOrderCommandHandler(
	uowFactory OrderUoWFactory,
	userRepo ports.UserRepository,
	notifier ports.Notifier,
	publisher ports.OrderEventPublisher,
	composer services.CancelRequestNotificationComposer,
	logger *zap.Logger,
) RequestCancelOrderCommandHandler {
	return RequestCancelOrderCommandHandler{
		uowFactory: uowFactory,
		userRepo:   userRepo,
		notifier:   notifier,
		publisher:  publisher,
		composer:   composer,
		logger:     logger,
	}
}

// Handle processes the cancellation request command.
//
// The order must exist, belong to the requesting customer, and be in a status
// that still allows cancellation (Pending, Confirmed or Processing). The
// checks run in that order: a missing order answers not-found even when the
// caller identity is broken. On success the order is persisted in
// RequestCancel status with the composed reason, and every admin with
// registered device tokens receives a push notification asking for review.
//
// Returns the repository's not-found error for a missing order,
// ErrUnresolvableCustomerIdentity when the customer id cannot be parsed,
// ErrNotOrderOwner on an ownership mismatch, and the domain's transition
// error when the current status forbids a cancellation request.
func (h RequestCancelOrderCommandHandler) Handle(ctx context.Context, cmd RequestCancelOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	aggregate, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	customerID, err := kernel.UUIDFromString(cmd.CustomerID())
	if err != nil {
		return ErrUnresolvableCustomerIdentity
	}

	if !aggregate.IsOwnedBy(customerID) {
		return ErrNotOrderOwner
	}

	if err = aggregate.RequestCancel(cmd.ComposedReason()); err != nil {
		return err
	}

	if err = uow.OrderRepository().Update(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.notifyAdmins(ctx, aggregate, customerID)

	if err = h.publisher.Publish(ctx, ports.NewOrderEvent(ports.OrderCancelRequested, aggregate)); err != nil {
		h.logger.Warn("failed to publish order.cancel_requested event",
			zap.String("orderId", aggregate.ID().String()), zap.Error(err))
	}

	return nil
}

// notifyAdmins fans the cancellation request out to admin accounts. Runs after
// commit; every failure here is logged and swallowed.
func (h RequestCancelOrderCommandHandler) notifyAdmins(
	ctx context.Context,
	aggregate *order.Order,
	customerID kernel.UUID,
) {
	customerUser, err := h.userRepo.GetByCustomerID(ctx, customerID)
	if err != nil {
		h.logger.Warn("failed to load customer account for cancellation notification",
			zap.String("customerId", customerID.String()), zap.Error(err))
		customerUser = nil
	}

	admins, err := h.userRepo.GetAllInRole(ctx, account.RoleAdmin)
	if err != nil {
		h.logger.Warn("failed to load admin accounts for cancellation notification",
			zap.String("orderId", aggregate.ID().String()), zap.Error(err))
		return
	}

	notifications, skipped, err := h.composer.Compose(aggregate, customerUser, admins)
	if err != nil {
		h.logger.Warn("failed to compose cancellation notifications",
			zap.String("orderId", aggregate.ID().String()), zap.Error(err))
		return
	}

	for _, adminID := range skipped {
		h.logger.Info("admin has no registered device tokens, skipping notification",
			zap.String("adminId", adminID.String()), zap.String("orderId", aggregate.ID().String()))
	}

	for _, notification := range notifications {
		if err = h.notifier.SendToUser(ctx, notification); err != nil {
			h.logger.Warn("failed to send cancellation notification",
				zap.String("adminId", notification.RecipientID.String()),
				zap.String("orderId", aggregate.ID().String()), zap.Error(err))
		}
	}
}
