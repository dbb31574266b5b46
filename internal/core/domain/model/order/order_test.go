package order_test

import (
	"testing"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustItem(t *testing.T, sellerID kernel.UUID, quantity int, price float64) order.Item {
	t.Helper()
	item, err := order.NewItem(kernel.NewUUID(), sellerID, quantity, price)
	require.NoError(t, err)
	return item
}

func mustTotals(t *testing.T, subtotal, shipping, taxes float64) order.Totals {
	t.Helper()
	totals, err := order.NewTotals(subtotal, shipping, taxes)
	require.NoError(t, err)
	return totals
}

func newTestOrder(t *testing.T) *order.Order {
	t.Helper()
	item := mustItem(t, kernel.NewUUID(), 2, 49.99)
	o, err := order.NewOrder(
		kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
		[]order.Item{item},
		mustTotals(t, item.Subtotal(), 5, 9.99),
	)
	require.NoError(t, err)
	return o
}

func TestNewOrder(t *testing.T) {
	t.Run("valid order starts pending", func(t *testing.T) {
		o := newTestOrder(t)

		require.NoError(t, o.Validate())
		assert.Equal(t, order.StatusPending, o.Status())
		assert.Len(t, o.Items(), 1)
		assert.False(t, o.CreatedAt().IsZero())
		assert.Equal(t, o.CreatedAt(), o.UpdatedAt())
	})

	t.Run("requires at least one item", func(t *testing.T) {
		_, err := order.NewOrder(
			kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
			nil, mustTotals(t, 10, 0, 0),
		)
		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("rejects zero-value identifiers", func(t *testing.T) {
		item := mustItem(t, kernel.NewUUID(), 1, 10)
		_, err := order.NewOrder(
			kernel.UUID{}, kernel.NewUUID(), kernel.NewUUID(),
			[]order.Item{item}, mustTotals(t, 10, 0, 0),
		)
		require.Error(t, err)
	})

	t.Run("rejects unconstructed totals", func(t *testing.T) {
		item := mustItem(t, kernel.NewUUID(), 1, 10)
		_, err := order.NewOrder(
			kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
			[]order.Item{item}, order.Totals{},
		)
		require.Error(t, err)
	})

	t.Run("zero value fails validation", func(t *testing.T) {
		var o order.Order
		assert.Equal(t, order.ErrOrderIsNotConstructed, o.Validate())
	})
}

func TestNewItem(t *testing.T) {
	t.Run("quantity must be positive", func(t *testing.T) {
		_, err := order.NewItem(kernel.NewUUID(), kernel.NewUUID(), 0, 10)
		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)

		_, err = order.NewItem(kernel.NewUUID(), kernel.NewUUID(), -1, 10)
		require.Error(t, err)
	})

	t.Run("price must not be negative", func(t *testing.T) {
		_, err := order.NewItem(kernel.NewUUID(), kernel.NewUUID(), 1, -0.01)
		require.Error(t, err)
	})

	t.Run("subtotal is quantity times locked price", func(t *testing.T) {
		item, err := order.NewItem(kernel.NewUUID(), kernel.NewUUID(), 2, 49.99)
		require.NoError(t, err)
		assert.InDelta(t, 99.98, item.Subtotal(), 0.001)
	})
}

func TestTotals(t *testing.T) {
	t.Run("final amount derived from components", func(t *testing.T) {
		totals, err := order.NewTotals(99.98, 5, 9.99)
		require.NoError(t, err)
		assert.InDelta(t, 114.97, totals.FinalAmount(), 0.001)
	})

	t.Run("restore verifies the sum invariant", func(t *testing.T) {
		_, err := order.RestoreTotals(99.98, 5, 9.99, 120)
		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)

		totals, err := order.RestoreTotals(99.98, 5, 9.99, 114.97)
		require.NoError(t, err)
		assert.InDelta(t, 114.97, totals.FinalAmount(), 0.001)
	})

	t.Run("negative components rejected", func(t *testing.T) {
		_, err := order.NewTotals(-1, 0, 0)
		require.Error(t, err)
		_, err = order.NewTotals(0, -1, 0)
		require.Error(t, err)
		_, err = order.NewTotals(0, 0, -1)
		require.Error(t, err)
	})
}

func TestOrder_ChangeStatus(t *testing.T) {
	t.Run("forward progression", func(t *testing.T) {
		o := newTestOrder(t)

		require.NoError(t, o.ChangeStatus(order.StatusConfirmed))
		require.NoError(t, o.ChangeStatus(order.StatusProcessing))
		require.NoError(t, o.ChangeStatus(order.StatusShipped))
		require.NoError(t, o.ChangeStatus(order.StatusDelivered))
		assert.Equal(t, order.StatusDelivered, o.Status())
	})

	t.Run("skipping is rejected", func(t *testing.T) {
		o := newTestOrder(t)

		err := o.ChangeStatus(order.StatusShipped)

		require.Error(t, err)
		assert.ErrorIs(t, err, order.ErrInvalidTransition)
		assert.Equal(t, order.StatusPending, o.Status())
	})

	t.Run("refresh of updatedAt", func(t *testing.T) {
		o := newTestOrder(t)
		before := o.UpdatedAt()
		time.Sleep(time.Millisecond)

		require.NoError(t, o.ChangeStatus(order.StatusConfirmed))

		assert.True(t, o.UpdatedAt().After(before))
	})

	t.Run("cancel from any non-terminal state", func(t *testing.T) {
		o := newTestOrder(t)
		require.NoError(t, o.ChangeStatus(order.StatusConfirmed))

		require.NoError(t, o.ChangeStatus(order.StatusCancelled))
		assert.Equal(t, order.StatusCancelled, o.Status())

		err := o.ChangeStatus(order.StatusCancelled)
		require.Error(t, err)
	})

	t.Run("refund only after delivery or cancellation", func(t *testing.T) {
		o := newTestOrder(t)

		err := o.ChangeStatus(order.StatusRefunded)
		require.ErrorIs(t, err, order.ErrInvalidTransition)

		require.NoError(t, o.ChangeStatus(order.StatusCancelled))
		require.NoError(t, o.ChangeStatus(order.StatusRefunded))
	})
}

func TestOrder_MarkDelivered(t *testing.T) {
	t.Run("forces delivered from mid-fulfillment", func(t *testing.T) {
		o := newTestOrder(t)
		require.NoError(t, o.ChangeStatus(order.StatusConfirmed))

		require.NoError(t, o.MarkDelivered())
		assert.Equal(t, order.StatusDelivered, o.Status())
	})

	t.Run("idempotent when already delivered", func(t *testing.T) {
		o := newTestOrder(t)
		require.NoError(t, o.MarkDelivered())
		require.NoError(t, o.MarkDelivered())
	})

	t.Run("cannot revive cancelled order", func(t *testing.T) {
		o := newTestOrder(t)
		require.NoError(t, o.ChangeStatus(order.StatusCancelled))

		err := o.MarkDelivered()
		require.ErrorIs(t, err, order.ErrInvalidTransition)
	})
}

func TestOrder_ContainsSeller(t *testing.T) {
	sellerA := kernel.NewUUID()
	sellerB := kernel.NewUUID()
	itemA := mustItem(t, sellerA, 1, 10)
	itemB := mustItem(t, sellerB, 3, 7.5)

	o, err := order.NewOrder(
		kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
		[]order.Item{itemA, itemB},
		mustTotals(t, itemA.Subtotal()+itemB.Subtotal(), 0, 0),
	)
	require.NoError(t, err)

	assert.True(t, o.ContainsSeller(sellerA))
	assert.True(t, o.ContainsSeller(sellerB))
	assert.False(t, o.ContainsSeller(kernel.NewUUID()))
}

func TestRestoreOrder(t *testing.T) {
	item := mustItem(t, kernel.NewUUID(), 2, 49.99)
	created := time.Now().UTC().Add(-time.Hour)
	updated := time.Now().UTC().Add(-time.Minute)

	o, err := order.RestoreOrder(
		kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
		[]order.Item{item},
		mustTotals(t, item.Subtotal(), 5, 9.99),
		order.StatusShipped,
		created, updated,
	)

	require.NoError(t, err)
	assert.Equal(t, order.StatusShipped, o.Status())
	assert.Equal(t, created, o.CreatedAt())
	assert.Equal(t, updated, o.UpdatedAt())

	t.Run("invalid stored status rejected", func(t *testing.T) {
		_, err := order.RestoreOrder(
			kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
			[]order.Item{item},
			mustTotals(t, item.Subtotal(), 0, 0),
			order.StatusUnknown,
			created, updated,
		)
		require.Error(t, err)
	})
}

func TestOrder_RecordStatusNote(t *testing.T) {
	o := newTestOrder(t)

	t.Run("note annotates the current status", func(t *testing.T) {
		require.NoError(t, o.ChangeStatus(order.StatusConfirmed))
		o.RecordStatusNote("payment verified")

		assert.Equal(t, "payment verified", o.StatusNote())
	})

	t.Run("next change without a note clears it", func(t *testing.T) {
		require.NoError(t, o.ChangeStatus(order.StatusProcessing))
		o.RecordStatusNote("")

		assert.Empty(t, o.StatusNote())
	})

	t.Run("note does not refresh the update timestamp", func(t *testing.T) {
		before := o.UpdatedAt()
		o.RecordStatusNote("picking stock")
		assert.Equal(t, before, o.UpdatedAt())
	})
}
