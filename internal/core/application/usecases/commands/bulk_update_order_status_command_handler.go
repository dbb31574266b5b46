package commands

import (
	"context"

	"marketplace/internal/core/domain/model/kernel"
)

// BulkUpdateFailure reports one order that could not be transitioned.
type BulkUpdateFailure struct {
	OrderID kernel.UUID
	Err     error
}

// BulkUpdateResult summarizes a bulk transition: how many orders were
// updated and which ones failed, with the reason per order.
type BulkUpdateResult struct {
	Updated  int
	Failures []BulkUpdateFailure
}

// BulkUpdateOrderStatusCommandHandler fans a bulk request out into
// independent single-order transitions. Each order commits in its own
// transaction; there is no batch-wide lock or rollback.
type BulkUpdateOrderStatusCommandHandler struct {
	updateHandler UpdateOrderStatusCommandHandler
}

// NewBulkUpdateOrderStatusCommandHandler creates a handler delegating each
// order to the single-order transition handler.
func NewBulkUpdateOrderStatusCommandHandler(
	updateHandler UpdateOrderStatusCommandHandler,
) BulkUpdateOrderStatusCommandHandler {
	return BulkUpdateOrderStatusCommandHandler{updateHandler: updateHandler}
}

// Handle applies the transition to every order independently and reports
// the per-order outcome.
func (h BulkUpdateOrderStatusCommandHandler) Handle(
	ctx context.Context,
	command BulkUpdateOrderStatusCommand,
) (BulkUpdateResult, error) {
	if err := command.Validate(); err != nil {
		return BulkUpdateResult{}, err
	}

	result := BulkUpdateResult{}
	for _, orderID := range command.OrderIDs() {
		singleCmd, err := NewUpdateOrderStatusCommand(orderID, command.Target(), command.Caller(), "")
		if err != nil {
			result.Failures = append(result.Failures, BulkUpdateFailure{OrderID: orderID, Err: err})
			continue
		}

		if _, err := h.updateHandler.Handle(ctx, singleCmd); err != nil {
			result.Failures = append(result.Failures, BulkUpdateFailure{OrderID: orderID, Err: err})
			continue
		}
		result.Updated++
	}

	return result, nil
}
