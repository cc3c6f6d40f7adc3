package commands_test

import (
	"testing"

	"orderintegration/internal/core/application/usecases/commands"
	"orderintegration/internal/core/domain/model/kernel"
	"orderintegration/internal/core/domain/model/order"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testItems(t *testing.T) []order.Item {
	t.Helper()
	item, err := order.NewItem("SKU-1", "Widget", 2, decimal.NewFromFloat(10.50))
	require.NoError(t, err)
	return []order.Item{item}
}

func TestNewCreateOrderCommand_Success(t *testing.T) {
	id := kernel.NewUUID()
	cmd, err := commands.NewCreateOrderCommand(id, "ORD-1001", "CUST-7", testItems(t), "alice", "corr-1")
	require.NoError(t, err)

	assert.NoError(t, cmd.Validate())
	assert.True(t, cmd.OrderID().IsEqual(id))
	assert.Equal(t, "ORD-1001", cmd.OrderNumber())
	assert.Equal(t, "CUST-7", cmd.CustomerCode())
	assert.Len(t, cmd.Items(), 1)
	assert.Equal(t, "alice", cmd.Actor())
	assert.Equal(t, "corr-1", cmd.CorrelationID())
}

func TestNewCreateOrderCommand_OptionalFieldsMayBeEmpty(t *testing.T) {
	cmd, err := commands.NewCreateOrderCommand(kernel.NewUUID(), "ORD-1001", "CUST-7", testItems(t), "", "")
	require.NoError(t, err)
	assert.Empty(t, cmd.Actor())
	assert.Empty(t, cmd.CorrelationID())
}

func TestNewCreateOrderCommand_ValidationErrors(t *testing.T) {
	tests := []struct {
		name         string
		orderID      kernel.UUID
		orderNumber  string
		customerCode string
		items        []order.Item
		wantErr      error
	}{
		{"empty order id", kernel.UUID{}, "ORD-1", "CUST-1", testItems(t), nil},
		{"empty order number", kernel.NewUUID(), "", "CUST-1", testItems(t), commands.ErrOrderNumberIsRequired},
		{"empty customer code", kernel.NewUUID(), "ORD-1", "", testItems(t), commands.ErrCustomerCodeIsRequired},
		{"no items", kernel.NewUUID(), "ORD-1", "CUST-1", nil, commands.ErrItemsAreRequired},
		{"unconstructed item", kernel.NewUUID(), "ORD-1", "CUST-1", []order.Item{{}}, order.ErrItemIsNotConstructed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := commands.NewCreateOrderCommand(
				tt.orderID, tt.orderNumber, tt.customerCode, tt.items, "", "",
			)
			require.Error(t, err)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestCreateOrderCommand_Validate_NotConstructed(t *testing.T) {
	var cmd commands.CreateOrderCommand
	assert.ErrorIs(t, cmd.Validate(), commands.ErrCreateOrderCommandIsNotConstructed)
}
