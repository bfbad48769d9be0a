package commands_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"ordering/internal/core/application/usecases/commands"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type MockPlaceOrderRepository struct{ mock.Mock }

func (m *MockPlaceOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockPlaceOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockPlaceOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockPlaceOrderRepository) GetAllAwaitingCancelReviewSince(
	ctx context.Context,
	before time.Time,
) ([]*order.Order, error) {
	args := m.Called(ctx, before)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

type MockPlaceUoW struct{ mock.Mock }

func (m *MockPlaceUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockPlaceUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockPlaceUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockPlaceUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

type MockPlaceUoWFactory struct{ mock.Mock }

func (m *MockPlaceUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockPlaceEventPublisher struct{ mock.Mock }

func (m *MockPlaceEventPublisher) Publish(ctx context.Context, event ports.OrderEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func TestPlaceOrderCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()

	orderID := kernel.NewUUID()
	customerID := kernel.NewUUID()
	cmd, err := commands.NewPlaceOrderCommand(orderID, customerID, "12 Main Street", "")
	require.NoError(t, err)

	orderRepo := new(MockPlaceOrderRepository)
	uow := new(MockPlaceUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Add", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockPlaceUoWFactory)
	factory.On("Create").Return(uow).Once()

	publisher := new(MockPlaceEventPublisher)
	publisher.On("Publish", ctx, mock.AnythingOfType("ports.OrderEvent")).Return(nil).Once()

	handler := commands.NewPlaceOrderCommandHandler(factory, publisher, zap.NewNop())
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)

	added := orderRepo.Calls[0].Arguments[1].(*order.Order)
	assert.Equal(t, orderID, added.ID())
	assert.Equal(t, customerID, added.CustomerID())
	assert.Equal(t, order.Pending, added.Status())

	event := publisher.Calls[0].Arguments[1].(ports.OrderEvent)
	assert.Equal(t, ports.OrderPlaced, event.Kind)
	assert.Equal(t, orderID.String(), event.OrderID)

	orderRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
	publisher.AssertExpectations(t)
}

func TestPlaceOrderCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	cmd := commands.PlaceOrderCommand{} // not constructed properly

	factory := new(MockPlaceUoWFactory)
	handler := commands.NewPlaceOrderCommandHandler(factory, new(MockPlaceEventPublisher), zap.NewNop())
	err := handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, commands.ErrPlaceOrderCommandIsNotConstructed)
	factory.AssertNotCalled(t, "Create")
}

func TestPlaceOrderCommandHandler_Handle_AddError(t *testing.T) {
	ctx := t.Context()

	cmd, err := commands.NewPlaceOrderCommand(kernel.NewUUID(), kernel.NewUUID(), "12 Main Street", "")
	require.NoError(t, err)

	orderRepo := new(MockPlaceOrderRepository)
	uow := new(MockPlaceUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Add", ctx, mock.AnythingOfType("*order.Order")).Return(errors.New("insert error")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockPlaceUoWFactory)
	factory.On("Create").Return(uow).Once()

	publisher := new(MockPlaceEventPublisher)
	handler := commands.NewPlaceOrderCommandHandler(factory, publisher, zap.NewNop())
	err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.EqualError(t, err, "insert error")
	publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
}

func TestPlaceOrderCommandHandler_Handle_PublishFailureDoesNotFail(t *testing.T) {
	ctx := t.Context()

	cmd, err := commands.NewPlaceOrderCommand(kernel.NewUUID(), kernel.NewUUID(), "12 Main Street", "")
	require.NoError(t, err)

	orderRepo := new(MockPlaceOrderRepository)
	uow := new(MockPlaceUoW)

	uow.On("Begin", ctx).Return(nil)
	uow.On("OrderRepository").Return(orderRepo)
	orderRepo.On("Add", ctx, mock.AnythingOfType("*order.Order")).Return(nil)
	uow.On("Commit", ctx).Return(nil)
	uow.On("Rollback", ctx).Return(nil)

	factory := new(MockPlaceUoWFactory)
	factory.On("Create").Return(uow)

	publisher := new(MockPlaceEventPublisher)
	publisher.On("Publish", ctx, mock.AnythingOfType("ports.OrderEvent")).
		Return(errors.New("broker unavailable"))

	handler := commands.NewPlaceOrderCommandHandler(factory, publisher, zap.NewNop())
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
}
