package commands_test

import (
	"testing"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/domain/model/actor"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// One bad order in a batch must not stop the rest: the missing id is
// reported as a failure while both real orders still move forward.
func TestBulkUpdateOrderStatusCommandHandler_Handle_PartialFailure(t *testing.T) {
	ctx := t.Context()
	admin := mustActor(t, actor.RoleAdmin)

	first := mustOrder(t, kernel.NewUUID(), order.StatusPending)
	second := mustOrder(t, kernel.NewUUID(), order.StatusPending)
	missingID := kernel.NewUUID()

	orderRepo := new(MockOrderRepository)
	orderRepo.On("Get", mock.Anything, first.ID()).Return(first, nil).Once()
	orderRepo.On("Get", mock.Anything, missingID).
		Return(nil, errs.NewObjectNotFoundError("orderId", missingID)).Once()
	orderRepo.On("Get", mock.Anything, second.ID()).Return(second, nil).Once()
	orderRepo.On("Update", mock.Anything, mock.AnythingOfType("*order.Order")).Return(nil).Twice()

	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil)
	uow.On("Commit", ctx).Return(nil)
	uow.On("Rollback", ctx).Return(nil)
	uow.On("OrderRepository").Return(orderRepo)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Times(3)

	cmd, err := commands.NewBulkUpdateOrderStatusCommand(
		[]kernel.UUID{first.ID(), missingID, second.ID()}, order.StatusConfirmed, admin)
	require.NoError(t, err)

	h := commands.NewBulkUpdateOrderStatusCommandHandler(
		commands.NewUpdateOrderStatusCommandHandler(factory))
	result, err := h.Handle(ctx, cmd)
	require.NoError(t, err)

	require.Equal(t, 2, result.Updated)
	require.Len(t, result.Failures, 1)
	require.True(t, result.Failures[0].OrderID.IsEqual(missingID))
	require.ErrorIs(t, result.Failures[0].Err, errs.ErrObjectNotFound)

	require.Equal(t, order.StatusConfirmed, first.Status())
	require.Equal(t, order.StatusConfirmed, second.Status())
	orderRepo.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func TestBulkUpdateOrderStatusCommandHandler_Handle_AllSucceed(t *testing.T) {
	ctx := t.Context()
	admin := mustActor(t, actor.RoleAdmin)

	first := mustOrder(t, kernel.NewUUID(), order.StatusConfirmed)
	second := mustOrder(t, kernel.NewUUID(), order.StatusConfirmed)

	orderRepo := new(MockOrderRepository)
	orderRepo.On("Get", mock.Anything, first.ID()).Return(first, nil).Once()
	orderRepo.On("Get", mock.Anything, second.ID()).Return(second, nil).Once()
	orderRepo.On("Update", mock.Anything, mock.AnythingOfType("*order.Order")).Return(nil).Twice()

	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil)
	uow.On("Commit", ctx).Return(nil)
	uow.On("Rollback", ctx).Return(nil)
	uow.On("OrderRepository").Return(orderRepo)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Twice()

	cmd, err := commands.NewBulkUpdateOrderStatusCommand(
		[]kernel.UUID{first.ID(), second.ID()}, order.StatusProcessing, admin)
	require.NoError(t, err)

	h := commands.NewBulkUpdateOrderStatusCommandHandler(
		commands.NewUpdateOrderStatusCommandHandler(factory))
	result, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	require.Equal(t, 2, result.Updated)
	require.Empty(t, result.Failures)
}

func TestBulkUpdateOrderStatusCommand_RequiresIDs(t *testing.T) {
	admin := mustActor(t, actor.RoleAdmin)
	_, err := commands.NewBulkUpdateOrderStatusCommand(nil, order.StatusConfirmed, admin)
	require.ErrorIs(t, err, errs.ErrValueIsRequired)
}
