package queries

import (
	"errors"
	"time"

	"marketplace/internal/core/domain/model/actor"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/guard"
)

var ErrExportOrdersQueryIsNotConstructed = errors.New(
	"ExportOrdersQuery must be created via NewExportOrdersQuery constructor",
)

// ExportOrdersQuery retrieves the flat order rows backing the admin export.
// The HTTP layer renders the rows as csv or json; the query itself is
// format-agnostic.
type ExportOrdersQuery struct {
	caller actor.Actor

	guard guard.ConstructorGuard
}

// NewExportOrdersQuery creates a validated export request.
func NewExportOrdersQuery(caller actor.Actor) (ExportOrdersQuery, error) {
	if err := caller.Validate(); err != nil {
		return ExportOrdersQuery{}, err
	}

	return ExportOrdersQuery{
		caller: caller,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

// Caller returns the actor requesting the export.
func (q ExportOrdersQuery) Caller() actor.Actor {
	return q.caller
}

// Validate ensures the query was created through the constructor.
func (q ExportOrdersQuery) Validate() error {
	return q.guard.Validate(ErrExportOrdersQueryIsNotConstructed)
}

// ExportOrdersQueryResponse is one flat export row.
type ExportOrdersQueryResponse struct {
	ID          kernel.UUID
	BuyerID     kernel.UUID
	Status      string
	ItemCount   int
	FinalAmount float64
	CreatedAt   time.Time
}
