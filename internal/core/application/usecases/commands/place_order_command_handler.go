package commands

import (
	"context"

	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/ports"

	"go.uber.org/zap"
)

// PlaceOrderCommandHandler handles the business logic for order placement.
// Creates new orders in Pending status and announces them on the order
// events topic once persisted.
//
// Example:
//
//	handler := NewPlaceOrderCommandHandler(uowFactory, publisher, logger)
//	cmd, _ := NewPlaceOrderCommand(kernel.NewUUID(), customerID, "12 Main Street", "")
//
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("order placement failed: %w", err)
//	}
type PlaceOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	publisher  ports.OrderEventPublisher
	logger     *zap.Logger
}

// NewPlaceOrderCommandHandler creates a handler for order placement operations.
func NewPlaceOrderCommandHandler(
	uowFactory OrderUoWFactory,
	publisher ports.OrderEventPublisher,
	logger *zap.Logger,
) PlaceOrderCommandHandler {
	return PlaceOrderCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		logger:     logger,
	}
}

// Handle processes the order placement command.
// Creates the order in Pending status inside a transaction, then publishes
// an order.placed event. Event publication is best-effort and logged on failure.
func (h PlaceOrderCommandHandler) Handle(ctx context.Context, cmd PlaceOrderCommand) error {
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

	newOrder, err := order.NewOrder(cmd.OrderID(), cmd.CustomerID(), cmd.Street(), cmd.Note())
	if err != nil {
		return err
	}

	if err = uow.OrderRepository().Add(ctx, newOrder); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	if err = h.publisher.Publish(ctx, ports.NewOrderEvent(ports.OrderPlaced, newOrder)); err != nil {
		h.logger.Warn("failed to publish order.placed event",
			zap.String("orderId", newOrder.ID().String()), zap.Error(err))
	}

	return nil
}
