package commands_test

import (
	"testing"
	"time"

	"agromarket/internal/core/application/usecases/commands"
	"agromarket/internal/core/domain/model/kernel"
	"agromarket/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCancelOrderCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	buyerID := kernel.NewUUID()
	existing := placedTestOrder(t, buyerID)
	lines := existing.Lines()
	cmd, err := commands.NewCancelOrderCommand(existing.ID(), buyerID)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	productRepo := new(MockProductRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", mock.Anything, existing.ID()).Return(existing, nil).Once(),
		uow.On("ProductRepository").Return(productRepo).Once(),
		productRepo.On("Release", mock.Anything, lines[0].ProductID(), lines[0].Quantity()).Return(nil).Once(),
		productRepo.On("Release", mock.Anything, lines[1].ProductID(), lines[1].Quantity()).Return(nil).Once(),
		orderRepo.On("Update", mock.Anything, existing).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	emitter := new(MockNotificationEmitter)
	expectAllRoomsPublished(emitter, buyerID)

	h := commands.NewCancelOrderCommandHandler(factory, emitter, testLogger())
	cancelled, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	require.NotNil(t, cancelled)
	assert.Equal(t, order.Cancelled, cancelled.Status())
	assert.NotNil(t, cancelled.CancelledAt())
	orderRepo.AssertExpectations(t)
	productRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
	emitter.AssertExpectations(t)
}

func TestCancelOrderCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	cmd := commands.CancelOrderCommand{} // not constructed properly

	h := commands.NewCancelOrderCommandHandler(new(MockUoWFactory), new(MockNotificationEmitter), testLogger())
	_, err := h.Handle(ctx, cmd)

	require.Error(t, err)
}

func TestCancelOrderCommandHandler_Handle_NotOwner(t *testing.T) {
	ctx := t.Context()
	existing := placedTestOrder(t, kernel.NewUUID())
	otherBuyer := kernel.NewUUID()
	cmd, err := commands.NewCancelOrderCommand(existing.ID(), otherBuyer)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", mock.Anything, existing.ID()).Return(existing, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCancelOrderCommandHandler(factory, new(MockNotificationEmitter), testLogger())
	cancelled, err := h.Handle(ctx, cmd)

	require.Error(t, err)
	assert.ErrorIs(t, err, order.ErrNotOrderOwner)
	assert.Nil(t, cancelled)
	uow.AssertNotCalled(t, "ProductRepository")
}

func TestCancelOrderCommandHandler_Handle_AlreadyCancelled(t *testing.T) {
	ctx := t.Context()
	buyerID := kernel.NewUUID()
	existing := placedTestOrder(t, buyerID)
	require.NoError(t, existing.Cancel(buyerID, time.Now().UTC()))
	cmd, err := commands.NewCancelOrderCommand(existing.ID(), buyerID)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", mock.Anything, existing.ID()).Return(existing, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCancelOrderCommandHandler(factory, new(MockNotificationEmitter), testLogger())
	_, err = h.Handle(ctx, cmd)

	// Cancelling twice fails, so stock is never released a second time.
	require.Error(t, err)
	assert.ErrorIs(t, err, order.ErrOrderIsTerminal)
	uow.AssertNotCalled(t, "ProductRepository")
}

func TestCancelOrderCommandHandler_Handle_ConcurrentCancel_RollsBackRelease(t *testing.T) {
	ctx := t.Context()
	buyerID := kernel.NewUUID()
	existing := placedTestOrder(t, buyerID)
	lines := existing.Lines()
	cmd, err := commands.NewCancelOrderCommand(existing.ID(), buyerID)
	require.NoError(t, err)

	// Another cancellation committed between this transaction's read and
	// its write: the conditional update rejects the stale aggregate and
	// the rollback takes the stock release with it.
	orderRepo := new(MockOrderRepository)
	productRepo := new(MockProductRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", mock.Anything, existing.ID()).Return(existing, nil).Once(),
		uow.On("ProductRepository").Return(productRepo).Once(),
		productRepo.On("Release", mock.Anything, lines[0].ProductID(), lines[0].Quantity()).Return(nil).Once(),
		productRepo.On("Release", mock.Anything, lines[1].ProductID(), lines[1].Quantity()).Return(nil).Once(),
		orderRepo.On("Update", mock.Anything, existing).Return(order.ErrOrderIsTerminal).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	emitter := new(MockNotificationEmitter)

	h := commands.NewCancelOrderCommandHandler(factory, emitter, testLogger())
	_, err = h.Handle(ctx, cmd)

	require.Error(t, err)
	assert.ErrorIs(t, err, order.ErrOrderIsTerminal)
	uow.AssertNotCalled(t, "Commit")
	emitter.AssertNotCalled(t, "Publish")
	uow.AssertExpectations(t)
}

func TestCancelOrderCommandHandler_Handle_GetError(t *testing.T) {
	ctx := t.Context()
	orderID := kernel.NewUUID()
	cmd, err := commands.NewCancelOrderCommand(orderID, kernel.NewUUID())
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", mock.Anything, orderID).Return(nil, assert.AnError).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCancelOrderCommandHandler(factory, new(MockNotificationEmitter), testLogger())
	_, err = h.Handle(ctx, cmd)

	require.Error(t, err)
}
