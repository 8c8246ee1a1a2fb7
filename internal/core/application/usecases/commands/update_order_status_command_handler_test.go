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

func claimedTestOrder(t *testing.T, buyerID, labourerID kernel.UUID) *order.Order {
	t.Helper()

	o := placedTestOrder(t, buyerID)
	require.NoError(t, o.Claim(labourerID, time.Now().UTC()))
	return o
}

func TestUpdateOrderStatusCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	buyerID := kernel.NewUUID()
	labourerID := kernel.NewUUID()
	existing := claimedTestOrder(t, buyerID, labourerID)
	cmd, err := commands.NewUpdateOrderStatusCommand(existing.ID(), labourerID, order.Shipped)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", mock.Anything, existing.ID()).Return(existing, nil).Once(),
		orderRepo.On("Update", mock.Anything, existing).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	emitter := new(MockNotificationEmitter)
	expectAllRoomsPublished(emitter, buyerID)

	h := commands.NewUpdateOrderStatusCommandHandler(factory, emitter, testLogger())
	updated, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, order.Shipped, updated.Status())
	orderRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
	emitter.AssertExpectations(t)
}

func TestUpdateOrderStatusCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	cmd := commands.UpdateOrderStatusCommand{} // not constructed properly

	h := commands.NewUpdateOrderStatusCommandHandler(
		new(MockOrderUoWFactory), new(MockNotificationEmitter), testLogger())
	_, err := h.Handle(ctx, cmd)

	require.Error(t, err)
}

func TestUpdateOrderStatusCommandHandler_Handle_NotAssignee(t *testing.T) {
	ctx := t.Context()
	existing := claimedTestOrder(t, kernel.NewUUID(), kernel.NewUUID())
	otherLabourer := kernel.NewUUID()
	cmd, err := commands.NewUpdateOrderStatusCommand(existing.ID(), otherLabourer, order.Shipped)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", mock.Anything, existing.ID()).Return(existing, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	emitter := new(MockNotificationEmitter)

	h := commands.NewUpdateOrderStatusCommandHandler(factory, emitter, testLogger())
	updated, err := h.Handle(ctx, cmd)

	require.Error(t, err)
	assert.ErrorIs(t, err, order.ErrNotAssignee)
	assert.Nil(t, updated)
	orderRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	emitter.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateOrderStatusCommandHandler_Handle_BackwardMove(t *testing.T) {
	ctx := t.Context()
	labourerID := kernel.NewUUID()
	existing := claimedTestOrder(t, kernel.NewUUID(), labourerID)
	require.NoError(t, existing.AdvanceStatus(labourerID, order.Shipped, time.Now().UTC()))
	cmd, err := commands.NewUpdateOrderStatusCommand(existing.ID(), labourerID, order.Confirmed)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", mock.Anything, existing.ID()).Return(existing, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewUpdateOrderStatusCommandHandler(factory, new(MockNotificationEmitter), testLogger())
	_, err = h.Handle(ctx, cmd)

	require.Error(t, err)
	assert.ErrorIs(t, err, order.ErrBackwardTransition)
}

func TestUpdateOrderStatusCommandHandler_Handle_TerminalOrder(t *testing.T) {
	ctx := t.Context()
	labourerID := kernel.NewUUID()
	existing := claimedTestOrder(t, kernel.NewUUID(), labourerID)
	require.NoError(t, existing.AdvanceStatus(labourerID, order.Delivered, time.Now().UTC()))
	cmd, err := commands.NewUpdateOrderStatusCommand(existing.ID(), labourerID, order.Delivered)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", mock.Anything, existing.ID()).Return(existing, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewUpdateOrderStatusCommandHandler(factory, new(MockNotificationEmitter), testLogger())
	_, err = h.Handle(ctx, cmd)

	require.Error(t, err)
	assert.ErrorIs(t, err, order.ErrOrderIsTerminal)
}
