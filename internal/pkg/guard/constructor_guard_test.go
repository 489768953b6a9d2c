package guard_test

import (
	"errors"
	"testing"

	"ordering/internal/pkg/guard"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConstructorGuard(t *testing.T) {
	t.Run("creates_properly_constructed_guard", func(t *testing.T) {
		g := guard.NewConstructorGuard()

		customError := errors.New("test object not constructed")
		require.NoError(t, g.Validate(customError))
		require.NoError(t, g.Validate(nil))
	})
}

func TestConstructorGuard_Validate(t *testing.T) {
	t.Run("properly_constructed_guard_returns_nil", func(t *testing.T) {
		g := guard.NewConstructorGuard()

		require.NoError(t, g.Validate(errors.New("not constructed")))
	})

	t.Run("zero_value_guard_returns_custom_error", func(t *testing.T) {
		var g guard.ConstructorGuard
		expectedError := errors.New("entity not constructed")

		err := g.Validate(expectedError)

		require.Error(t, err)
		assert.Equal(t, expectedError, err)
	})

	t.Run("zero_value_guard_returns_default_error_when_nil", func(t *testing.T) {
		var g guard.ConstructorGuard

		err := g.Validate(nil)

		require.Error(t, err)
		assert.Equal(t, guard.ErrDefaultConstructorGuard, err)
	})
}

func TestConstructorGuardDefaultError(t *testing.T) {
	t.Run("default_error_constant_has_meaningful_message", func(t *testing.T) {
		require.Error(t, guard.ErrDefaultConstructorGuard)
		assert.Equal(t, "object must be created via its constructor", guard.ErrDefaultConstructorGuard.Error())
	})
}

// TestConstructorGuardUsageExample demonstrates how ConstructorGuard is used
// in a command value object to enforce constructor usage.
func TestConstructorGuardUsageExample(t *testing.T) {
	type statusChange struct {
		orderNumber string
		guard       guard.ConstructorGuard
	}

	var errStatusChangeNotConstructed = errors.New("statusChange must be created via its constructor")

	newStatusChange := func(orderNumber string) (statusChange, error) {
		if orderNumber == "" {
			return statusChange{}, errors.New("order number is required")
		}
		return statusChange{
			orderNumber: orderNumber,
			guard:       guard.NewConstructorGuard(),
		}, nil
	}

	t.Run("valid_construction_through_constructor", func(t *testing.T) {
		sc, err := newStatusChange("ORD-1")

		require.NoError(t, err)
		require.NoError(t, sc.guard.Validate(errStatusChangeNotConstructed))
		assert.Equal(t, "ORD-1", sc.orderNumber)
	})

	t.Run("zero_value_fails_validation", func(t *testing.T) {
		var sc statusChange

		err := sc.guard.Validate(errStatusChangeNotConstructed)

		require.Error(t, err)
		assert.Equal(t, errStatusChangeNotConstructed, err)
	})
}
