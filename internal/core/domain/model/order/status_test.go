package order_test

import (
	"testing"

	"agromarket/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus_Validate(t *testing.T) {
	t.Run("should accept all defined statuses", func(t *testing.T) {
		statuses := []order.Status{
			order.Placed,
			order.Confirmed,
			order.Shipped,
			order.Delivered,
			order.Cancelled,
		}

		for _, s := range statuses {
			require.NoError(t, s.Validate())
		}
	})

	t.Run("should reject unknown status", func(t *testing.T) {
		err := order.Unknown.Validate()

		require.Error(t, err)
		assert.Contains(t, err.Error(), "status is invalid")
	})

	t.Run("should reject out of range status", func(t *testing.T) {
		err := order.Status(42).Validate()

		require.Error(t, err)
		assert.Contains(t, err.Error(), "42 is not a valid status")
	})
}

func TestStatus_String(t *testing.T) {
	testCases := []struct {
		status   order.Status
		expected string
	}{
		{order.Unknown, "Unknown"},
		{order.Placed, "Order Placed"},
		{order.Confirmed, "Confirmed"},
		{order.Shipped, "Shipped"},
		{order.Delivered, "Delivered"},
		{order.Cancelled, "Cancelled"},
		{order.Status(99), "Unknown"},
	}

	for _, tc := range testCases {
		t.Run(tc.expected, func(t *testing.T) {
			assert.Equal(t, tc.expected, tc.status.String())
		})
	}
}

func TestStatusFromString(t *testing.T) {
	t.Run("should parse all display names", func(t *testing.T) {
		testCases := []struct {
			input    string
			expected order.Status
		}{
			{"Order Placed", order.Placed},
			{"Confirmed", order.Confirmed},
			{"Shipped", order.Shipped},
			{"Delivered", order.Delivered},
			{"Cancelled", order.Cancelled},
		}

		for _, tc := range testCases {
			status, err := order.StatusFromString(tc.input)

			require.NoError(t, err)
			assert.Equal(t, tc.expected, status)
		}
	})

	t.Run("should reject unrecognized values", func(t *testing.T) {
		for _, input := range []string{"", "Unknown", "placed", "PLACED", "Order placed"} {
			_, err := order.StatusFromString(input)

			require.Error(t, err, "input %q", input)
			assert.Contains(t, err.Error(), "is not a valid status")
		}
	})
}

func TestStatus_IsTerminal(t *testing.T) {
	assert.False(t, order.Placed.IsTerminal())
	assert.False(t, order.Confirmed.IsTerminal())
	assert.False(t, order.Shipped.IsTerminal())
	assert.True(t, order.Delivered.IsTerminal())
	assert.True(t, order.Cancelled.IsTerminal())
}

func TestStatus_TransitionTo(t *testing.T) {
	t.Run("should allow forward transitions", func(t *testing.T) {
		testCases := []struct {
			from, to order.Status
		}{
			{order.Placed, order.Confirmed},
			{order.Placed, order.Shipped},
			{order.Placed, order.Delivered},
			{order.Confirmed, order.Shipped},
			{order.Confirmed, order.Delivered},
			{order.Shipped, order.Delivered},
		}

		for _, tc := range testCases {
			newStatus, err := tc.from.TransitionTo(tc.to)

			require.NoError(t, err, "%s -> %s", tc.from, tc.to)
			assert.Equal(t, tc.to, newStatus)
		}
	})

	t.Run("should allow transition to same status", func(t *testing.T) {
		newStatus, err := order.Shipped.TransitionTo(order.Shipped)

		require.NoError(t, err)
		assert.Equal(t, order.Shipped, newStatus)
	})

	t.Run("should reject backward transitions", func(t *testing.T) {
		testCases := []struct {
			from, to order.Status
		}{
			{order.Confirmed, order.Placed},
			{order.Shipped, order.Confirmed},
			{order.Shipped, order.Placed},
		}

		for _, tc := range testCases {
			_, err := tc.from.TransitionTo(tc.to)

			require.Error(t, err, "%s -> %s", tc.from, tc.to)
			assert.ErrorIs(t, err, order.ErrBackwardTransition)
		}
	})

	t.Run("should reject transitions out of terminal statuses", func(t *testing.T) {
		for _, from := range []order.Status{order.Delivered, order.Cancelled} {
			_, err := from.TransitionTo(order.Delivered)

			require.Error(t, err, "from %s", from)
			assert.ErrorIs(t, err, order.ErrOrderIsTerminal)
		}
	})

	t.Run("should reject Cancelled as a forward target", func(t *testing.T) {
		_, err := order.Placed.TransitionTo(order.Cancelled)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "Cancelled is not a valid target status")
	})

	t.Run("should reject Unknown as a target", func(t *testing.T) {
		_, err := order.Placed.TransitionTo(order.Unknown)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "Unknown is not a valid target status")
	})

	t.Run("should reject transitions from invalid status", func(t *testing.T) {
		_, err := order.Unknown.TransitionTo(order.Confirmed)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "status is invalid")
	})
}

func TestStatus_Cancel(t *testing.T) {
	t.Run("should cancel from any non-terminal status", func(t *testing.T) {
		for _, from := range []order.Status{order.Placed, order.Confirmed, order.Shipped} {
			newStatus, err := from.Cancel()

			require.NoError(t, err, "from %s", from)
			assert.Equal(t, order.Cancelled, newStatus)
		}
	})

	t.Run("should reject cancelling delivered order", func(t *testing.T) {
		_, err := order.Delivered.Cancel()

		require.Error(t, err)
		assert.ErrorIs(t, err, order.ErrOrderIsTerminal)
	})

	t.Run("should reject cancelling twice", func(t *testing.T) {
		_, err := order.Cancelled.Cancel()

		require.Error(t, err)
		assert.ErrorIs(t, err, order.ErrOrderIsTerminal)
	})
}

func TestStatus_ValidateCanHaveAssignee(t *testing.T) {
	t.Run("placed order must not have an assignee", func(t *testing.T) {
		require.NoError(t, order.Placed.ValidateCanHaveAssignee(false))

		err := order.Placed.ValidateCanHaveAssignee(true)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not a valid status to have an assignee")
	})

	t.Run("progressed orders must have an assignee", func(t *testing.T) {
		for _, s := range []order.Status{order.Confirmed, order.Shipped, order.Delivered} {
			require.NoError(t, s.ValidateCanHaveAssignee(true), "status %s", s)

			err := s.ValidateCanHaveAssignee(false)
			require.Error(t, err, "status %s", s)
			assert.Contains(t, err.Error(), "not a valid status to have no assignee")
		}
	})

	t.Run("cancelled order may have either", func(t *testing.T) {
		require.NoError(t, order.Cancelled.ValidateCanHaveAssignee(true))
		require.NoError(t, order.Cancelled.ValidateCanHaveAssignee(false))
	})
}
