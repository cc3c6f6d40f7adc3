package order

import (
	"errors"
	"fmt"

	"orderintegration/internal/core/domain/model/kernel"
	"orderintegration/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

var (
	// ErrItemIsNotConstructed is returned when an Item instance was not created
	// through the NewItem factory method.
	ErrItemIsNotConstructed = errors.New("Item must be created via NewItem constructor")
)

// Item is a line of an order: a SKU with a quantity and a unit price.
// The line total is always derived from quantity and unit price and is never
// stored independently of them. Items are owned exclusively by their Order and
// share its lifecycle.
//
// Item follows these invariants:
//   - Must have a valid unique identifier and a non-empty SKU
//   - Quantity must be greater than 0
//   - Unit price must be greater than 0
//   - Can only be created through NewItem or RestoreItem
type Item struct {
	id            kernel.UUID
	sku           string
	description   string
	quantity      int
	unitPrice     decimal.Decimal
	isConstructed bool
}

// NewItem creates a new order line with a fresh identifier.
// The description is optional and may be empty; sku, quantity, and unitPrice are
// validated against the invariants above.
func NewItem(sku, description string, quantity int, unitPrice decimal.Decimal) (Item, error) {
	return RestoreItem(kernel.NewUUID(), sku, description, quantity, unitPrice)
}

// RestoreItem reconstructs an order line from persistence with its original
// identifier. The same invariants as NewItem apply.
func RestoreItem(id kernel.UUID, sku, description string, quantity int, unitPrice decimal.Decimal) (Item, error) {
	item := Item{
		description:   description,
		isConstructed: true,
	}

	if err := errors.Join(
		item.setID(id),
		item.setSku(sku),
		item.setQuantity(quantity),
		item.setUnitPrice(unitPrice),
	); err != nil {
		return Item{}, err
	}

	return item, nil
}

// Validate ensures the Item instance was properly constructed through NewItem
// or RestoreItem.
func (i Item) Validate() error {
	if !i.isConstructed {
		return ErrItemIsNotConstructed
	}
	return nil
}

// ID returns the item's unique identifier.
func (i Item) ID() kernel.UUID {
	return i.id
}

// Sku returns the stock-keeping unit of the ordered product.
func (i Item) Sku() string {
	return i.sku
}

// Description returns the optional human-readable description of the line.
func (i Item) Description() string {
	return i.description
}

// Quantity returns the ordered quantity.
func (i Item) Quantity() int {
	return i.quantity
}

// UnitPrice returns the price of a single unit.
func (i Item) UnitPrice() decimal.Decimal {
	return i.unitPrice
}

// LineTotal returns quantity × unit price.
func (i Item) LineTotal() decimal.Decimal {
	return i.unitPrice.Mul(decimal.NewFromInt(int64(i.quantity)))
}

func (i *Item) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	i.id = id
	return nil
}

func (i *Item) setSku(sku string) error {
	if sku == "" {
		return errs.NewValueIsRequiredError("sku")
	}
	i.sku = sku
	return nil
}

func (i *Item) setQuantity(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity is invalid",
			fmt.Errorf("%d is not greater than 0", quantity))
	}
	i.quantity = quantity
	return nil
}

func (i *Item) setUnitPrice(unitPrice decimal.Decimal) error {
	if !unitPrice.IsPositive() {
		return errs.NewValueIsInvalidErrorWithCause("unit price is invalid",
			fmt.Errorf("%s is not greater than 0", unitPrice))
	}
	i.unitPrice = unitPrice
	return nil
}
