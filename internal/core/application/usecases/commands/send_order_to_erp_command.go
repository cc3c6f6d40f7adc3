package commands

import (
	"errors"

	"orderintegration/internal/core/domain/model/kernel"
	"orderintegration/internal/pkg/guard"
)

var ErrSendOrderToErpCommandIsNotConstructed = errors.New(
	"SendOrderToErpCommand must be created via NewSendOrderToErpCommand constructor",
)

// SendOrderToErpCommand represents a request to forward an order to the ERP
// system. Each handling creates a fresh integration attempt regardless of how
// earlier attempts for the same order ended.
type SendOrderToErpCommand struct { //nolint:recvcheck //using for validation
	orderID       kernel.UUID
	actor         string
	correlationID string

	guard guard.ConstructorGuard
}

// NewSendOrderToErpCommand creates a command to send an order to the ERP.
// Validates that the order ID is valid. The actor and correlation id are optional.
func NewSendOrderToErpCommand(orderID kernel.UUID, actor, correlationID string) (SendOrderToErpCommand, error) {
	sendCommand := SendOrderToErpCommand{
		actor:         actor,
		correlationID: correlationID,
		guard:         guard.NewConstructorGuard(),
	}

	if err := sendCommand.setOrderID(orderID); err != nil {
		return SendOrderToErpCommand{}, err
	}

	return sendCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrSendOrderToErpCommandIsNotConstructed if validation fails.
func (c SendOrderToErpCommand) Validate() error {
	return c.guard.Validate(ErrSendOrderToErpCommandIsNotConstructed)
}

// OrderID returns the identifier of the order to send.
func (c SendOrderToErpCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Actor returns the optional identity of the caller, or an empty string.
func (c SendOrderToErpCommand) Actor() string {
	return c.actor
}

// CorrelationID returns the optional correlation id of the request.
func (c SendOrderToErpCommand) CorrelationID() string {
	return c.correlationID
}

func (c *SendOrderToErpCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}
