package commands

import (
	"context"

	"ordering/internal/core/ports"

	"go.uber.org/zap"
)

// UpdateOrderStatusCommandHandler handles admin/shipper status updates.
// Loads the order, applies the transition through the aggregate, and persists
// with an optimistic concurrency check so concurrent updates to the same
// order surface as version errors instead of lost updates.
type UpdateOrderStatusCommandHandler struct {
	uowFactory OrderUoWFactory
	publisher  ports.OrderEventPublisher
	logger     *zap.Logger
}

// NewUpdateOrderStatusCommandHandler creates a handler for status update operations.
func NewUpdateOrderStatusCommandHandler(
	uowFactory OrderUoWFactory,
	publisher ports.OrderEventPublisher,
	logger *zap.Logger,
) UpdateOrderStatusCommandHandler {
	return UpdateOrderStatusCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		logger:     logger,
	}
}

// Handle processes the status update command.
// Returns the repository's not-found error when the order does not exist and
// the domain's transition error when the target status is not reachable from
// the current one. Publishes order.status_changed after commit, best-effort.
func (h UpdateOrderStatusCommandHandler) Handle(ctx context.Context, cmd UpdateOrderStatusCommand) error {
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

	orderRepo := uow.OrderRepository()

	aggregate, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if err = aggregate.ChangeStatus(cmd.TargetStatus()); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	if err = h.publisher.Publish(ctx, ports.NewOrderEvent(ports.OrderStatusChanged, aggregate)); err != nil {
		h.logger.Warn("failed to publish order.status_changed event",
			zap.String("orderId", aggregate.ID().String()), zap.Error(err))
	}

	return nil
}
