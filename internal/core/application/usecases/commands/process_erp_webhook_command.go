package commands

import (
	"errors"

	"orderintegration/internal/pkg/guard"
)

var (
	ErrProcessErpWebhookCommandIsNotConstructed = errors.New(
		"ProcessErpWebhookCommand must be created via NewProcessErpWebhookCommand constructor",
	)
	ErrWebhookOrderNumberIsRequired = errors.New("webhook order number is required")
)

// ProcessErpWebhookCommand represents an asynchronous confirmation received
// from the ERP about an earlier send. It targets an order by order number, the
// only identity the ERP knows.
type ProcessErpWebhookCommand struct { //nolint:recvcheck //using for validation
	orderNumber   string
	success       bool
	erpReference  string
	message       string
	correlationID string

	guard guard.ConstructorGuard
}

// NewProcessErpWebhookCommand creates a command from a webhook notification.
// Validates that the order number is not empty. The reference, message, and
// correlation id are optional.
func NewProcessErpWebhookCommand(
	orderNumber string,
	success bool,
	erpReference, message, correlationID string,
) (ProcessErpWebhookCommand, error) {
	webhookCommand := ProcessErpWebhookCommand{
		success:       success,
		erpReference:  erpReference,
		message:       message,
		correlationID: correlationID,
		guard:         guard.NewConstructorGuard(),
	}

	if err := webhookCommand.setOrderNumber(orderNumber); err != nil {
		return ProcessErpWebhookCommand{}, err
	}

	return webhookCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrProcessErpWebhookCommandIsNotConstructed if validation fails.
func (c ProcessErpWebhookCommand) Validate() error {
	return c.guard.Validate(ErrProcessErpWebhookCommandIsNotConstructed)
}

// OrderNumber returns the order number the confirmation is about.
func (c ProcessErpWebhookCommand) OrderNumber() string {
	return c.orderNumber
}

// Success reports whether the ERP confirmed or rejected the order.
func (c ProcessErpWebhookCommand) Success() bool {
	return c.success
}

// ErpReference returns the identifier the ERP assigned, or an empty string.
func (c ProcessErpWebhookCommand) ErpReference() string {
	return c.erpReference
}

// Message returns the ERP's optional message, typically a rejection reason.
func (c ProcessErpWebhookCommand) Message() string {
	return c.message
}

// CorrelationID returns the optional correlation id of the notification.
func (c ProcessErpWebhookCommand) CorrelationID() string {
	return c.correlationID
}

func (c *ProcessErpWebhookCommand) setOrderNumber(orderNumber string) error {
	if orderNumber == "" {
		return ErrWebhookOrderNumberIsRequired
	}

	c.orderNumber = orderNumber
	return nil
}
