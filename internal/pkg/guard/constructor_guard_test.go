package guard_test

import (
	"errors"
	"testing"

	"marketplace/internal/pkg/guard"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConstructorGuard(t *testing.T) {
	g := guard.NewConstructorGuard()

	customError := errors.New("test object not constructed")
	require.NoError(t, g.Validate(customError))
	require.NoError(t, g.Validate(nil))
}

func TestConstructorGuard_Validate(t *testing.T) {
	t.Run("properly_constructed_guard_returns_nil", func(t *testing.T) {
		g := guard.NewConstructorGuard()
		require.NoError(t, g.Validate(errors.New("not constructed")))
	})

	t.Run("zero_value_guard_returns_custom_error", func(t *testing.T) {
		var g guard.ConstructorGuard // zero value
		expectedError := errors.New("entity not constructed")

		err := g.Validate(expectedError)

		require.Error(t, err)
		assert.Equal(t, expectedError, err)
	})

	t.Run("zero_value_guard_returns_default_error_when_nil", func(t *testing.T) {
		var g guard.ConstructorGuard // zero value

		err := g.Validate(nil)

		require.Error(t, err)
		assert.Equal(t, guard.ErrDefaultConstructorGuard, err)
	})
}

// TestConstructorGuardUsageExample demonstrates how a guarded domain object
// enforces constructor usage.
func TestConstructorGuardUsageExample(t *testing.T) {
	type Totals struct {
		subtotal float64
		guard    guard.ConstructorGuard
	}

	var errTotalsNotConstructed = errors.New("Totals must be created via NewTotals")

	newTotals := func(subtotal float64) (Totals, error) {
		if subtotal < 0 {
			return Totals{}, errors.New("subtotal cannot be negative")
		}
		return Totals{subtotal: subtotal, guard: guard.NewConstructorGuard()}, nil
	}

	validateTotals := func(tt Totals) error {
		return tt.guard.Validate(errTotalsNotConstructed)
	}

	t.Run("valid_construction_through_constructor", func(t *testing.T) {
		totals, err := newTotals(100)

		require.NoError(t, err)
		require.NoError(t, validateTotals(totals))
		assert.Equal(t, 100.0, totals.subtotal)
	})

	t.Run("zero_value_construction_fails_validation", func(t *testing.T) {
		var totals Totals // zero value

		err := validateTotals(totals)

		require.Error(t, err)
		assert.Equal(t, errTotalsNotConstructed, err)
	})

	t.Run("constructor_validates_business_rules", func(t *testing.T) {
		_, err := newTotals(-1)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "subtotal cannot be negative")
	})
}

func TestConstructorGuardDefaultError(t *testing.T) {
	require.Error(t, guard.ErrDefaultConstructorGuard)
	assert.Equal(t, "object must be created via its constructor", guard.ErrDefaultConstructorGuard.Error())
}

// TestConstructorGuardConcurrency verifies the guard is safe for concurrent reads.
func TestConstructorGuardConcurrency(t *testing.T) {
	g := guard.NewConstructorGuard()
	validationError := errors.New("not constructed")

	done := make(chan bool)
	for range 100 {
		go func() {
			for range 1000 {
				err := g.Validate(validationError)
				assert.NoError(t, err)
			}
			done <- true
		}()
	}

	for range 100 {
		<-done
	}
}
