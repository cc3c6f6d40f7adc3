package commands

import (
	"errors"

	"orderintegration/internal/core/domain/model/kernel"
	"orderintegration/internal/core/domain/model/order"
	"orderintegration/internal/pkg/guard"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
	ErrOrderNumberIsRequired  = errors.New("order number is required")
	ErrCustomerCodeIsRequired = errors.New("customer code is required")
	ErrItemsAreRequired       = errors.New("at least one order item is required")
)

// CreateOrderCommand represents a request to register a new customer order.
// Encapsulates the order identity, customer, and validated line items.
//
// Example:
//
//	orderID := kernel.NewUUID()
//	item, _ := order.NewItem("SKU-1", "Widget", 2, decimal.NewFromInt(10))
//	cmd, err := NewCreateOrderCommand(orderID, "ORD-1001", "CUST-7", []order.Item{item}, "alice", corrID)
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	handler := NewCreateOrderCommandHandler(uowFactory)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to create order: %w", err)
//	}
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID       kernel.UUID
	orderNumber   string
	customerCode  string
	items         []order.Item
	actor         string
	correlationID string

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to register a new order.
// Validates that the order ID is valid, order number and customer code are not
// empty, and at least one valid item is present. The actor and correlation id
// are optional. Returns an error if any validation fails.
func NewCreateOrderCommand(
	orderID kernel.UUID,
	orderNumber, customerCode string,
	items []order.Item,
	actor, correlationID string,
) (CreateOrderCommand, error) {
	orderCommand := CreateOrderCommand{
		actor:         actor,
		correlationID: correlationID,
		guard:         guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		orderCommand.setOrderID(orderID),
		orderCommand.setOrderNumber(orderNumber),
		orderCommand.setCustomerCode(customerCode),
		orderCommand.setItems(items),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return orderCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrCreateOrderCommandIsNotConstructed if validation fails.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// OrderID returns the unique identifier for the order.
func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// OrderNumber returns the unique human-readable order number.
func (c CreateOrderCommand) OrderNumber() string {
	return c.orderNumber
}

// CustomerCode returns the code of the customer placing the order.
func (c CreateOrderCommand) CustomerCode() string {
	return c.customerCode
}

// Items returns the validated line items of the order.
func (c CreateOrderCommand) Items() []order.Item {
	return c.items
}

// Actor returns the optional identity of the caller, or an empty string.
func (c CreateOrderCommand) Actor() string {
	return c.actor
}

// CorrelationID returns the optional correlation id of the request.
func (c CreateOrderCommand) CorrelationID() string {
	return c.correlationID
}

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setOrderNumber(orderNumber string) error {
	if orderNumber == "" {
		return ErrOrderNumberIsRequired
	}

	c.orderNumber = orderNumber
	return nil
}

func (c *CreateOrderCommand) setCustomerCode(customerCode string) error {
	if customerCode == "" {
		return ErrCustomerCodeIsRequired
	}

	c.customerCode = customerCode
	return nil
}

func (c *CreateOrderCommand) setItems(items []order.Item) error {
	if len(items) == 0 {
		return ErrItemsAreRequired
	}

	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
	}

	c.items = items
	return nil
}
