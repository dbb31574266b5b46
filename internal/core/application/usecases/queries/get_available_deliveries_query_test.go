package queries_test

import (
	"testing"

	"marketplace/internal/core/application/usecases/queries"

	"github.com/stretchr/testify/require"
)

func TestNewGetAvailableDeliveriesQuery(t *testing.T) {
	q := queries.NewGetAvailableDeliveriesQuery()
	require.NoError(t, q.Validate())
}

func TestGetAvailableDeliveriesQuery_ZeroValue(t *testing.T) {
	require.Error(t, queries.GetAvailableDeliveriesQuery{}.Validate())
}
