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

func placedTestOrder(t *testing.T, buyerID kernel.UUID) *order.Order {
	t.Helper()

	o, err := order.NewOrder(kernel.NewUUID(), buyerID, testLines(t), testAddress(t), time.Now().UTC())
	require.NoError(t, err)
	return o
}

func TestClaimOrderCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	buyerID := kernel.NewUUID()
	labourerID := kernel.NewUUID()
	existing := placedTestOrder(t, buyerID)
	cmd, err := commands.NewClaimOrderCommand(existing.ID(), labourerID)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("LockAssignee", mock.Anything, labourerID).Return(nil).Once(),
		orderRepo.On("CountActiveByAssignee", mock.Anything, labourerID).Return(int64(0), nil).Once(),
		orderRepo.On("Get", mock.Anything, existing.ID()).Return(existing, nil).Once(),
		orderRepo.On("Claim", mock.Anything, existing).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	emitter := new(MockNotificationEmitter)
	expectAllRoomsPublished(emitter, buyerID)

	h := commands.NewClaimOrderCommandHandler(factory, emitter, testLogger())
	claimed, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	require.NotNil(t, claimed)
	assert.Equal(t, order.Confirmed, claimed.Status())
	require.NotNil(t, claimed.AssignedTo())
	assert.True(t, claimed.AssignedTo().IsEqual(labourerID))
	orderRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
	emitter.AssertExpectations(t)
}

func TestClaimOrderCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	cmd := commands.ClaimOrderCommand{} // not constructed properly

	h := commands.NewClaimOrderCommandHandler(new(MockOrderUoWFactory), new(MockNotificationEmitter), testLogger())
	_, err := h.Handle(ctx, cmd)

	require.Error(t, err)
}

func TestClaimOrderCommandHandler_Handle_LabourerHasActiveOrder(t *testing.T) {
	ctx := t.Context()
	labourerID := kernel.NewUUID()
	cmd, err := commands.NewClaimOrderCommand(kernel.NewUUID(), labourerID)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("LockAssignee", mock.Anything, labourerID).Return(nil).Once(),
		orderRepo.On("CountActiveByAssignee", mock.Anything, labourerID).Return(int64(1), nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	emitter := new(MockNotificationEmitter)

	h := commands.NewClaimOrderCommandHandler(factory, emitter, testLogger())
	claimed, err := h.Handle(ctx, cmd)

	require.Error(t, err)
	assert.ErrorIs(t, err, commands.ErrLabourerHasActiveOrder)
	assert.Nil(t, claimed)
	orderRepo.AssertExpectations(t)
	orderRepo.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
	emitter.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything)
}

func TestClaimOrderCommandHandler_Handle_AlreadyAssignedAggregate(t *testing.T) {
	ctx := t.Context()
	labourerID := kernel.NewUUID()
	existing := placedTestOrder(t, kernel.NewUUID())
	require.NoError(t, existing.Claim(kernel.NewUUID(), time.Now().UTC()))
	cmd, err := commands.NewClaimOrderCommand(existing.ID(), labourerID)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("LockAssignee", mock.Anything, labourerID).Return(nil).Once(),
		orderRepo.On("CountActiveByAssignee", mock.Anything, labourerID).Return(int64(0), nil).Once(),
		orderRepo.On("Get", mock.Anything, existing.ID()).Return(existing, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewClaimOrderCommandHandler(factory, new(MockNotificationEmitter), testLogger())
	_, err = h.Handle(ctx, cmd)

	require.Error(t, err)
	assert.ErrorIs(t, err, order.ErrOrderAlreadyAssigned)
	orderRepo.AssertNotCalled(t, "Claim", mock.Anything, mock.Anything)
}

func TestClaimOrderCommandHandler_Handle_RepositoryClaimConflict(t *testing.T) {
	ctx := t.Context()
	labourerID := kernel.NewUUID()
	existing := placedTestOrder(t, kernel.NewUUID())
	cmd, err := commands.NewClaimOrderCommand(existing.ID(), labourerID)
	require.NoError(t, err)

	// The aggregate read saw no assignee, but another transaction claimed the
	// order in between: the conditional write reports the conflict.
	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("LockAssignee", mock.Anything, labourerID).Return(nil).Once(),
		orderRepo.On("CountActiveByAssignee", mock.Anything, labourerID).Return(int64(0), nil).Once(),
		orderRepo.On("Get", mock.Anything, existing.ID()).Return(existing, nil).Once(),
		orderRepo.On("Claim", mock.Anything, existing).Return(order.ErrOrderAlreadyAssigned).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	emitter := new(MockNotificationEmitter)

	h := commands.NewClaimOrderCommandHandler(factory, emitter, testLogger())
	_, err = h.Handle(ctx, cmd)

	require.Error(t, err)
	assert.ErrorIs(t, err, order.ErrOrderAlreadyAssigned)
	emitter.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything)
}
