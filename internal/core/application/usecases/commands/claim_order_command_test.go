package commands_test

import (
	"testing"

	"agromarket/internal/core/application/usecases/commands"
	"agromarket/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClaimOrderCommand(t *testing.T) {
	orderID := kernel.NewUUID()
	labourerID := kernel.NewUUID()

	t.Run("should create valid command", func(t *testing.T) {
		cmd, err := commands.NewClaimOrderCommand(orderID, labourerID)

		require.NoError(t, err)
		require.NoError(t, cmd.Validate())
		assert.True(t, cmd.OrderID().IsEqual(orderID))
		assert.True(t, cmd.LabourerID().IsEqual(labourerID))
	})

	t.Run("should fail with invalid order ID", func(t *testing.T) {
		var invalidID kernel.UUID

		_, err := commands.NewClaimOrderCommand(invalidID, labourerID)

		require.Error(t, err)
	})

	t.Run("should fail with invalid labourer ID", func(t *testing.T) {
		var invalidID kernel.UUID

		_, err := commands.NewClaimOrderCommand(orderID, invalidID)

		require.Error(t, err)
	})

	t.Run("should fail validation for zero value command", func(t *testing.T) {
		var cmd commands.ClaimOrderCommand

		err := cmd.Validate()

		require.Error(t, err)
		assert.Equal(t, commands.ErrClaimOrderCommandIsNotConstructed, err)
	})
}
