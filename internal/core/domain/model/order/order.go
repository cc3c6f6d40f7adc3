package order

import (
	"errors"
	"time"

	"orderintegration/internal/core/domain/model/kernel"
	"orderintegration/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created
	// through the NewOrder factory method. This ensures all orders are properly validated.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")
)

// Order is the aggregate root for a customer order. It manages the order's
// identity, line items, derived total, and lifecycle status.
//
// Order follows these invariants:
//   - Must have a valid unique identifier and a non-empty order number
//   - The order number is globally unique (enforced by the persistence layer,
//     which callers consult before construction)
//   - Must have at least one line item, each individually valid
//   - Total amount always equals the sum of line totals
//   - Status only changes via transitions validated by the status state machine
//   - Can only be created through NewOrder or RestoreOrder
//
// Timestamps are kept in UTC. ChangeStatus bumps the updated timestamp on every
// successful transition and leaves the aggregate untouched on a rejected one.
type Order struct {
	id            kernel.UUID
	orderNumber   string
	customerCode  string
	status        Status
	createdAt     time.Time
	updatedAt     time.Time
	totalAmount   decimal.Decimal
	items         []Item
	isConstructed bool
}

// NewOrder creates a new Order in Created status with validation.
// Requires at least one item; the total amount is computed as the sum of the
// items' line totals. Order-number uniqueness is the caller's responsibility
// (checked against the order store before construction).
func NewOrder(id kernel.UUID, orderNumber, customerCode string, items []Item) (*Order, error) {
	now := time.Now().UTC()
	return restore(id, orderNumber, customerCode, Created, now, now, items)
}

// RestoreOrder reconstructs an Order from persistence. The total amount is
// recomputed from the items rather than trusted from storage, preserving the
// derived-total invariant.
func RestoreOrder(
	id kernel.UUID,
	orderNumber, customerCode string,
	status Status,
	createdAt, updatedAt time.Time,
	items []Item,
) (*Order, error) {
	if err := status.Validate(); err != nil {
		return nil, err
	}
	return restore(id, orderNumber, customerCode, status, createdAt, updatedAt, items)
}

func restore(
	id kernel.UUID,
	orderNumber, customerCode string,
	status Status,
	createdAt, updatedAt time.Time,
	items []Item,
) (*Order, error) {
	order := &Order{
		status:        status,
		createdAt:     createdAt.UTC(),
		updatedAt:     updatedAt.UTC(),
		isConstructed: true,
	}

	if err := errors.Join(
		order.setID(id),
		order.setOrderNumber(orderNumber),
		order.setCustomerCode(customerCode),
		order.setItems(items),
	); err != nil {
		return nil, err
	}

	order.RecalculateTotal()
	return order, nil
}

// Validate ensures the Order instance was properly constructed through
// NewOrder or RestoreOrder. This prevents bypassing validation by directly
// instantiating the struct, and should be called when reconstructing orders
// from persistence.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// OrderNumber returns the unique human-readable order number.
func (o *Order) OrderNumber() string {
	return o.orderNumber
}

// CustomerCode returns the code of the customer that placed the order.
func (o *Order) CustomerCode() string {
	return o.customerCode
}

// Status returns the current status of the order.
func (o *Order) Status() Status {
	return o.status
}

// CreatedAt returns the UTC creation timestamp.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// UpdatedAt returns the UTC timestamp of the last successful mutation.
func (o *Order) UpdatedAt() time.Time {
	return o.updatedAt
}

// TotalAmount returns the order total, the sum of all line totals.
func (o *Order) TotalAmount() decimal.Decimal {
	return o.totalAmount
}

// Items returns a copy of the order's line items.
func (o *Order) Items() []Item {
	items := make([]Item, len(o.items))
	copy(items, o.items)
	return items
}

// AllowedTransitions returns the statuses this order may move to next.
func (o *Order) AllowedTransitions() []Status {
	return AllowedTransitions(o.status)
}

// ChangeStatus moves the order to newStatus if the state machine allows it.
//
// On success the status is mutated and the updated timestamp is bumped.
// On failure the order is left untouched and the *InvalidTransitionError from
// ValidateTransition is returned.
func (o *Order) ChangeStatus(newStatus Status) error {
	if err := ValidateTransition(o.status, newStatus); err != nil {
		return err
	}

	o.status = newStatus
	o.updatedAt = time.Now().UTC()
	return nil
}

// RecalculateTotal recomputes the total amount from the current items.
// A missing or empty item collection yields a zero total without failure.
func (o *Order) RecalculateTotal() {
	total := decimal.Zero
	for _, item := range o.items {
		total = total.Add(item.LineTotal())
	}
	o.totalAmount = total
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setOrderNumber(orderNumber string) error {
	if orderNumber == "" {
		return errs.NewValueIsRequiredError("order number")
	}
	o.orderNumber = orderNumber
	return nil
}

func (o *Order) setCustomerCode(customerCode string) error {
	if customerCode == "" {
		return errs.NewValueIsRequiredError("customer code")
	}
	o.customerCode = customerCode
	return nil
}

func (o *Order) setItems(items []Item) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("order must have at least one item")
	}

	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
	}

	o.items = make([]Item, len(items))
	copy(o.items, items)
	return nil
}
