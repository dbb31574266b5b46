package commands_test

import (
	"testing"
	"time"

	"marketplace/internal/core/domain/model/actor"
	"marketplace/internal/core/domain/model/delivery"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"

	"github.com/stretchr/testify/require"
)

func mustActor(t *testing.T, role actor.Role) actor.Actor {
	t.Helper()
	a, err := actor.NewActor(kernel.NewUUID(), role)
	require.NoError(t, err)
	return a
}

func mustOrder(t *testing.T, sellerID kernel.UUID, status order.Status) *order.Order {
	t.Helper()
	item, err := order.NewItem(kernel.NewUUID(), sellerID, 2, 19.99)
	require.NoError(t, err)
	totals, err := order.NewTotals(item.Subtotal(), 5, 3.5)
	require.NoError(t, err)

	now := time.Now().UTC()
	o, err := order.RestoreOrder(
		kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
		[]order.Item{item}, totals, status, now, now)
	require.NoError(t, err)
	return o
}

func mustPendingDelivery(t *testing.T, orderID kernel.UUID) *delivery.Delivery {
	t.Helper()
	d, err := delivery.NewDelivery(kernel.NewUUID(), orderID)
	require.NoError(t, err)
	return d
}

func mustAssignedDelivery(
	t *testing.T,
	orderID, driverID kernel.UUID,
	status delivery.Status,
) *delivery.Delivery {
	t.Helper()
	now := time.Now().UTC()
	d, err := delivery.RestoreDelivery(kernel.NewUUID(), orderID, &driverID, status, now, now)
	require.NoError(t, err)
	return d
}
