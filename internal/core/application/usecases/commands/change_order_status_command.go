package commands

import (
	"errors"

	"orderintegration/internal/core/domain/model/kernel"
	"orderintegration/internal/core/domain/model/order"
	"orderintegration/internal/pkg/guard"
)

var ErrChangeOrderStatusCommandIsNotConstructed = errors.New(
	"ChangeOrderStatusCommand must be created via NewChangeOrderStatusCommand constructor",
)

// ChangeOrderStatusCommand represents a request to move an order to a new
// lifecycle status. Whether the transition is allowed is decided by the order
// status state machine at handling time, not at command construction.
type ChangeOrderStatusCommand struct { //nolint:recvcheck //using for validation
	orderID       kernel.UUID
	newStatus     order.Status
	actor         string
	correlationID string

	guard guard.ConstructorGuard
}

// NewChangeOrderStatusCommand creates a command to change an order's status.
// Validates that the order ID is valid and the target status is a known one.
// The actor and correlation id are optional.
func NewChangeOrderStatusCommand(
	orderID kernel.UUID,
	newStatus order.Status,
	actor, correlationID string,
) (ChangeOrderStatusCommand, error) {
	statusCommand := ChangeOrderStatusCommand{
		actor:         actor,
		correlationID: correlationID,
		guard:         guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		statusCommand.setOrderID(orderID),
		statusCommand.setNewStatus(newStatus),
	); err != nil {
		return ChangeOrderStatusCommand{}, err
	}

	return statusCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrChangeOrderStatusCommandIsNotConstructed if validation fails.
func (c ChangeOrderStatusCommand) Validate() error {
	return c.guard.Validate(ErrChangeOrderStatusCommandIsNotConstructed)
}

// OrderID returns the identifier of the order to transition.
func (c ChangeOrderStatusCommand) OrderID() kernel.UUID {
	return c.orderID
}

// NewStatus returns the target status of the transition.
func (c ChangeOrderStatusCommand) NewStatus() order.Status {
	return c.newStatus
}

// Actor returns the optional identity of the caller, or an empty string.
func (c ChangeOrderStatusCommand) Actor() string {
	return c.actor
}

// CorrelationID returns the optional correlation id of the request.
func (c ChangeOrderStatusCommand) CorrelationID() string {
	return c.correlationID
}

func (c *ChangeOrderStatusCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *ChangeOrderStatusCommand) setNewStatus(newStatus order.Status) error {
	if err := newStatus.Validate(); err != nil {
		return err
	}

	c.newStatus = newStatus
	return nil
}
