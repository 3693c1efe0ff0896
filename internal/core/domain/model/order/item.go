package order

import (
	"errors"
	"fmt"

	"quickbite/internal/core/domain/model/kernel"
	"quickbite/internal/pkg/errs"
	"quickbite/internal/pkg/guard"
)

// ErrLineItemIsNotConstructed is returned when validating a LineItem that
// was not created via NewLineItem.
var ErrLineItemIsNotConstructed = errs.NewValueIsRequiredError(
	"line item must be created via NewLineItem constructor")

// LineItem is an immutable value object describing one menu item position
// within an order: what was ordered, how many, and at which unit price.
type LineItem struct { //nolint:recvcheck //using for validation
	menuItemID kernel.UUID
	name       string
	quantity   int
	unitPrice  kernel.Money

	guard guard.ConstructorGuard
}

// NewLineItem creates a validated line item. Quantity must be at least 1 and
// the unit price must be positive.
func NewLineItem(menuItemID kernel.UUID, name string, quantity int, unitPrice kernel.Money) (LineItem, error) {
	item := LineItem{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		item.setMenuItemID(menuItemID),
		item.setName(name),
		item.setQuantity(quantity),
		item.setUnitPrice(unitPrice),
	); err != nil {
		return LineItem{}, err
	}

	return item, nil
}

// Validate checks the item was created via NewLineItem.
func (i LineItem) Validate() error {
	return i.guard.Validate(ErrLineItemIsNotConstructed)
}

// MenuItemID returns the identifier of the ordered menu item.
func (i LineItem) MenuItemID() kernel.UUID {
	return i.menuItemID
}

// Name returns the display name of the menu item.
func (i LineItem) Name() string {
	return i.name
}

// Quantity returns how many units were ordered.
func (i LineItem) Quantity() int {
	return i.quantity
}

// UnitPrice returns the price per unit.
func (i LineItem) UnitPrice() kernel.Money {
	return i.unitPrice
}

// Subtotal returns quantity times unit price.
func (i LineItem) Subtotal() kernel.Money {
	return i.unitPrice.MultiplyInt(i.quantity)
}

func (i *LineItem) setMenuItemID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	i.menuItemID = id
	return nil
}

func (i *LineItem) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	i.name = name
	return nil
}

func (i *LineItem) setQuantity(quantity int) error {
	if quantity < 1 {
		return errs.NewValueIsInvalidErrorWithCause("quantity",
			fmt.Errorf("%d is less than 1", quantity))
	}
	i.quantity = quantity
	return nil
}

func (i *LineItem) setUnitPrice(price kernel.Money) error {
	if !price.IsPositive() {
		return errs.NewValueIsInvalidErrorWithCause("unitPrice",
			fmt.Errorf("%d is not greater than 0", price.Amount()))
	}
	i.unitPrice = price
	return nil
}
