package commands_test

import (
	"testing"

	"orderintegration/internal/core/application/usecases/commands"
	"orderintegration/internal/core/domain/model/kernel"
	"orderintegration/internal/core/domain/model/order"
	"orderintegration/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewChangeOrderStatusCommand_Success(t *testing.T) {
	id := kernel.NewUUID()
	cmd, err := commands.NewChangeOrderStatusCommand(id, order.Prepared, "bob", "corr-2")
	require.NoError(t, err)

	assert.NoError(t, cmd.Validate())
	assert.True(t, cmd.OrderID().IsEqual(id))
	assert.Equal(t, order.Prepared, cmd.NewStatus())
	assert.Equal(t, "bob", cmd.Actor())
	assert.Equal(t, "corr-2", cmd.CorrelationID())
}

func TestNewChangeOrderStatusCommand_InvalidID(t *testing.T) {
	_, err := commands.NewChangeOrderStatusCommand(kernel.UUID{}, order.Prepared, "", "")
	require.Error(t, err)
}

func TestNewChangeOrderStatusCommand_InvalidStatus(t *testing.T) {
	_, err := commands.NewChangeOrderStatusCommand(kernel.NewUUID(), order.Unknown, "", "")
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestChangeOrderStatusCommand_Validate_NotConstructed(t *testing.T) {
	var cmd commands.ChangeOrderStatusCommand
	assert.ErrorIs(t, cmd.Validate(), commands.ErrChangeOrderStatusCommandIsNotConstructed)
}
