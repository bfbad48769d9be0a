package order_test

import (
	"fmt"
	"testing"

	"ordering/internal/core/domain/model/order"
	"ordering/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus_Constants(t *testing.T) {
	t.Run("should have correct enum values", func(t *testing.T) {
		assert.Equal(t, 0, int(order.Unknown))
		assert.Equal(t, 1, int(order.Pending))
		assert.Equal(t, 2, int(order.Confirmed))
		assert.Equal(t, 3, int(order.Processing))
		assert.Equal(t, 4, int(order.Shipping))
		assert.Equal(t, 5, int(order.Completed))
		assert.Equal(t, 6, int(order.RequestCancel))
		assert.Equal(t, 7, int(order.Cancelled))
	})
}

func TestStatus_Validate(t *testing.T) {
	t.Run("should validate valid statuses", func(t *testing.T) {
		validStatuses := []order.Status{
			order.Pending,
			order.Confirmed,
			order.Processing,
			order.Shipping,
			order.Completed,
			order.RequestCancel,
			order.Cancelled,
		}

		for _, status := range validStatuses {
			t.Run(fmt.Sprintf("should validate %s status", status.String()), func(t *testing.T) {
				require.NoError(t, status.Validate())
			})
		}
	})

	t.Run("should reject Unknown status", func(t *testing.T) {
		err := order.Unknown.Validate()

		require.Error(t, err)
		assert.IsType(t, &errs.ValueIsInvalidError{}, err)
		assert.Contains(t, err.Error(), "status is invalid")
		assert.Contains(t, err.Error(), "0 is not a valid status")
	})

	t.Run("should reject invalid status values", func(t *testing.T) {
		invalidStatuses := []order.Status{
			order.Status(-1),
			order.Status(8),
			order.Status(100),
		}

		for _, status := range invalidStatuses {
			t.Run(fmt.Sprintf("should reject status value %d", int(status)), func(t *testing.T) {
				err := status.Validate()

				require.Error(t, err)
				assert.IsType(t, &errs.ValueIsInvalidError{}, err)
				assert.Contains(t, err.Error(), fmt.Sprintf("%d is not a valid status", int(status)))
			})
		}
	})
}

func TestStatus_String(t *testing.T) {
	t.Run("should return correct string for valid statuses", func(t *testing.T) {
		testCases := []struct {
			status   order.Status
			expected string
		}{
			{order.Pending, "Pending"},
			{order.Confirmed, "Confirmed"},
			{order.Processing, "Processing"},
			{order.Shipping, "Shipping"},
			{order.Completed, "Completed"},
			{order.RequestCancel, "RequestCancel"},
			{order.Cancelled, "Cancelled"},
		}

		for _, tc := range testCases {
			assert.Equal(t, tc.expected, tc.status.String())
		}
	})

	t.Run("should return Unknown for invalid values", func(t *testing.T) {
		assert.Equal(t, "Unknown", order.Unknown.String())
		assert.Equal(t, "Unknown", order.Status(42).String())
	})
}

func TestStatusFromString(t *testing.T) {
	t.Run("should parse valid status names", func(t *testing.T) {
		status, err := order.StatusFromString("Processing")

		require.NoError(t, err)
		assert.Equal(t, order.Processing, status)
	})

	t.Run("should reject unknown names", func(t *testing.T) {
		for _, name := range []string{"", "Unknown", "processing", "Done"} {
			status, err := order.StatusFromString(name)

			require.Error(t, err)
			assert.Equal(t, order.Unknown, status)
		}
	})
}

func TestStatus_ValidateTransitionTo(t *testing.T) {
	t.Run("should allow transitions from the table", func(t *testing.T) {
		allowed := []struct {
			from order.Status
			to   order.Status
		}{
			{order.Pending, order.Confirmed},
			{order.Pending, order.Cancelled},
			{order.Confirmed, order.Processing},
			{order.Confirmed, order.Cancelled},
			{order.Processing, order.Shipping},
			{order.Processing, order.Cancelled},
			{order.Shipping, order.Completed},
			{order.RequestCancel, order.Cancelled},
			{order.RequestCancel, order.Processing},
		}

		for _, tc := range allowed {
			t.Run(fmt.Sprintf("%s to %s", tc.from, tc.to), func(t *testing.T) {
				require.NoError(t, tc.from.ValidateTransitionTo(tc.to))
			})
		}
	})

	t.Run("should reject transitions outside the table", func(t *testing.T) {
		forbidden := []struct {
			from order.Status
			to   order.Status
		}{
			{order.Pending, order.Shipping},
			{order.Pending, order.Completed},
			{order.Confirmed, order.Pending},
			{order.Shipping, order.Cancelled},
			{order.Completed, order.Cancelled},
			{order.Cancelled, order.Pending},
			{order.RequestCancel, order.Completed},
		}

		for _, tc := range forbidden {
			t.Run(fmt.Sprintf("%s to %s", tc.from, tc.to), func(t *testing.T) {
				err := tc.from.ValidateTransitionTo(tc.to)

				require.Error(t, err)
				assert.Contains(t, err.Error(), tc.from.String())
				assert.Contains(t, err.Error(), tc.to.String())
			})
		}
	})

	t.Run("should reject invalid target status", func(t *testing.T) {
		err := order.Pending.ValidateTransitionTo(order.Unknown)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "0 is not a valid status")
	})
}

func TestStatus_ValidateRequestCancel(t *testing.T) {
	t.Run("should allow cancellation request from Pending, Confirmed and Processing", func(t *testing.T) {
		for _, status := range []order.Status{order.Pending, order.Confirmed, order.Processing} {
			require.NoError(t, status.ValidateRequestCancel())
		}
	})

	t.Run("should reject cancellation request from any other status", func(t *testing.T) {
		for _, status := range []order.Status{
			order.Shipping,
			order.Completed,
			order.RequestCancel,
			order.Cancelled,
		} {
			t.Run(status.String(), func(t *testing.T) {
				err := status.ValidateRequestCancel()

				require.Error(t, err)
				assert.Contains(t, err.Error(), status.String())
			})
		}
	})
}

func TestStatus_IsTerminal(t *testing.T) {
	assert.True(t, order.Completed.IsTerminal())
	assert.True(t, order.Cancelled.IsTerminal())
	assert.False(t, order.Pending.IsTerminal())
	assert.False(t, order.RequestCancel.IsTerminal())
}
