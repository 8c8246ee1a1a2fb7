package commands_test

import (
	"testing"

	"agromarket/internal/core/application/usecases/commands"
	"agromarket/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCancelOrderCommand(t *testing.T) {
	orderID := kernel.NewUUID()
	buyerID := kernel.NewUUID()

	t.Run("should create valid command", func(t *testing.T) {
		cmd, err := commands.NewCancelOrderCommand(orderID, buyerID)

		require.NoError(t, err)
		require.NoError(t, cmd.Validate())
		assert.True(t, cmd.OrderID().IsEqual(orderID))
		assert.True(t, cmd.BuyerID().IsEqual(buyerID))
	})

	t.Run("should fail with invalid order ID", func(t *testing.T) {
		var invalidID kernel.UUID

		_, err := commands.NewCancelOrderCommand(invalidID, buyerID)

		require.Error(t, err)
	})

	t.Run("should fail with invalid buyer ID", func(t *testing.T) {
		var invalidID kernel.UUID

		_, err := commands.NewCancelOrderCommand(orderID, invalidID)

		require.Error(t, err)
	})

	t.Run("should fail validation for zero value command", func(t *testing.T) {
		var cmd commands.CancelOrderCommand

		err := cmd.Validate()

		require.Error(t, err)
		assert.Equal(t, commands.ErrCancelOrderCommandIsNotConstructed, err)
	})
}
