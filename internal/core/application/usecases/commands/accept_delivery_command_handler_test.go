package commands_test

import (
	"testing"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/domain/model/delivery"
	"marketplace/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestAcceptDeliveryCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	driverID := kernel.NewUUID()
	target := mustPendingDelivery(t, kernel.NewUUID())
	cmd, err := commands.NewAcceptDeliveryCommand(target.ID(), driverID)
	require.NoError(t, err)

	repo := new(MockDeliveryRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("DeliveryRepository").Return(repo).Once(),
		repo.On("Get", mock.Anything, target.ID()).Return(target, nil).Once(),
		repo.On("Accept", mock.Anything, target).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockDeliveryUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewAcceptDeliveryCommandHandler(factory)
	accepted, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	require.Equal(t, delivery.StatusPendingPickup, accepted.Status())
	require.True(t, accepted.IsAssignedTo(driverID))
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestAcceptDeliveryCommandHandler_Handle_AlreadyAssigned(t *testing.T) {
	ctx := t.Context()
	holder := kernel.NewUUID()
	target := mustAssignedDelivery(t, kernel.NewUUID(), holder, delivery.StatusPendingPickup)
	cmd, err := commands.NewAcceptDeliveryCommand(target.ID(), kernel.NewUUID())
	require.NoError(t, err)

	repo := new(MockDeliveryRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("DeliveryRepository").Return(repo).Once(),
		repo.On("Get", mock.Anything, target.ID()).Return(target, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockDeliveryUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewAcceptDeliveryCommandHandler(factory)
	_, err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, delivery.ErrAlreadyAssigned)
	require.True(t, target.IsAssignedTo(holder))
	repo.AssertNotCalled(t, "Accept", mock.Anything, mock.Anything)
}

// The in-memory read can be stale: a rival driver may claim the delivery
// between Get and the conditional write. The repository reports the lost
// race and nothing is committed.
func TestAcceptDeliveryCommandHandler_Handle_LostRace(t *testing.T) {
	ctx := t.Context()
	target := mustPendingDelivery(t, kernel.NewUUID())
	cmd, err := commands.NewAcceptDeliveryCommand(target.ID(), kernel.NewUUID())
	require.NoError(t, err)

	repo := new(MockDeliveryRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("DeliveryRepository").Return(repo).Once(),
		repo.On("Get", mock.Anything, target.ID()).Return(target, nil).Once(),
		repo.On("Accept", mock.Anything, target).Return(delivery.ErrAlreadyAssigned).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockDeliveryUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewAcceptDeliveryCommandHandler(factory)
	_, err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, delivery.ErrAlreadyAssigned)
	uow.AssertNotCalled(t, "Commit", ctx)
}
