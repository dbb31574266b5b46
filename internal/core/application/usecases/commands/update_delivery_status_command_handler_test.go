package commands_test

import (
	"testing"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/domain/model/actor"
	"marketplace/internal/core/domain/model/delivery"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/services"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestUpdateDeliveryStatusCommandHandler_Handle_DriverAdvances(t *testing.T) {
	ctx := t.Context()
	driver := mustActor(t, actor.RoleDriver)
	target := mustAssignedDelivery(t, kernel.NewUUID(), driver.ID(), delivery.StatusPendingPickup)
	cmd, err := commands.NewUpdateDeliveryStatusCommand(
		target.ID(), delivery.StatusOutForDelivery, driver)
	require.NoError(t, err)

	repo := new(MockDeliveryRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("DeliveryRepository").Return(repo).Once(),
		repo.On("Get", mock.Anything, target.ID()).Return(target, nil).Once(),
		repo.On("Update", mock.Anything, target).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewUpdateDeliveryStatusCommandHandler(factory)
	updated, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	require.Equal(t, delivery.StatusOutForDelivery, updated.Status())
	uow.AssertNotCalled(t, "OrderRepository")
	repo.AssertExpectations(t)
}

func TestUpdateDeliveryStatusCommandHandler_Handle_DeliveredCascadesIntoOrder(t *testing.T) {
	ctx := t.Context()
	driver := mustActor(t, actor.RoleDriver)
	parent := mustOrder(t, kernel.NewUUID(), order.StatusShipped)
	target := mustAssignedDelivery(t, parent.ID(), driver.ID(), delivery.StatusOutForDelivery)
	cmd, err := commands.NewUpdateDeliveryStatusCommand(
		target.ID(), delivery.StatusDelivered, driver)
	require.NoError(t, err)

	repo := new(MockDeliveryRepository)
	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("DeliveryRepository").Return(repo).Once(),
		repo.On("Get", mock.Anything, target.ID()).Return(target, nil).Once(),
		repo.On("Update", mock.Anything, target).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", mock.Anything, parent.ID()).Return(parent, nil).Once(),
		orderRepo.On("Update", mock.Anything, parent).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewUpdateDeliveryStatusCommandHandler(factory)
	updated, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	require.Equal(t, delivery.StatusDelivered, updated.Status())
	require.Equal(t, order.StatusDelivered, parent.Status())
	orderRepo.AssertExpectations(t)
}

// The parcel reached the buyer even though fulfillment paperwork lagged at
// CONFIRMED. The cascade still forces the order to DELIVERED.
func TestUpdateDeliveryStatusCommandHandler_Handle_DeliveredOutranksLaggingOrder(t *testing.T) {
	ctx := t.Context()
	admin := mustActor(t, actor.RoleAdmin)
	parent := mustOrder(t, kernel.NewUUID(), order.StatusConfirmed)
	target := mustAssignedDelivery(t, parent.ID(), kernel.NewUUID(), delivery.StatusOutForDelivery)
	cmd, err := commands.NewUpdateDeliveryStatusCommand(
		target.ID(), delivery.StatusDelivered, admin)
	require.NoError(t, err)

	repo := new(MockDeliveryRepository)
	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("DeliveryRepository").Return(repo).Once()
	uow.On("OrderRepository").Return(orderRepo).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	repo.On("Get", mock.Anything, target.ID()).Return(target, nil).Once()
	repo.On("Update", mock.Anything, target).Return(nil).Once()
	orderRepo.On("Get", mock.Anything, parent.ID()).Return(parent, nil).Once()
	orderRepo.On("Update", mock.Anything, parent).Return(nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewUpdateDeliveryStatusCommandHandler(factory)
	_, err = h.Handle(ctx, cmd)
	require.NoError(t, err)
	require.Equal(t, order.StatusDelivered, parent.Status())
}

func TestUpdateDeliveryStatusCommandHandler_Handle_UnassignedDriverForbidden(t *testing.T) {
	ctx := t.Context()
	rival := mustActor(t, actor.RoleDriver)
	target := mustAssignedDelivery(t, kernel.NewUUID(), kernel.NewUUID(), delivery.StatusPendingPickup)
	cmd, err := commands.NewUpdateDeliveryStatusCommand(
		target.ID(), delivery.StatusOutForDelivery, rival)
	require.NoError(t, err)

	repo := new(MockDeliveryRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("DeliveryRepository").Return(repo).Once(),
		repo.On("Get", mock.Anything, target.ID()).Return(target, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewUpdateDeliveryStatusCommandHandler(factory)
	_, err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, services.ErrForbidden)
	require.Equal(t, delivery.StatusPendingPickup, target.Status())
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestUpdateDeliveryStatusCommandHandler_Handle_TerminalDelivery(t *testing.T) {
	ctx := t.Context()
	admin := mustActor(t, actor.RoleAdmin)
	driverID := kernel.NewUUID()
	target := mustAssignedDelivery(t, kernel.NewUUID(), driverID, delivery.StatusDelivered)
	cmd, err := commands.NewUpdateDeliveryStatusCommand(
		target.ID(), delivery.StatusFailed, admin)
	require.NoError(t, err)

	repo := new(MockDeliveryRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("DeliveryRepository").Return(repo).Once(),
		repo.On("Get", mock.Anything, target.ID()).Return(target, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewUpdateDeliveryStatusCommandHandler(factory)
	_, err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, delivery.ErrAlreadyTerminal)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}
