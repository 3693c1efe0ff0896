package commands

import (
	"errors"

	"quickbite/internal/core/domain/model/kernel"
	"quickbite/internal/core/domain/model/order"
	"quickbite/internal/pkg/errs"
	"quickbite/internal/pkg/guard"
)

var ErrRateOrderCommandIsNotConstructed = errors.New(
	"RateOrderCommand must be created via NewRateOrderCommand constructor",
)

// RateOrderCommand represents the customer rating a delivered order.
type RateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	rating  int

	guard guard.ConstructorGuard
}

// NewRateOrderCommand creates a command to rate an order from 1 to 5.
func NewRateOrderCommand(orderID kernel.UUID, rating int) (RateOrderCommand, error) {
	cmd := RateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setRating(rating),
	); err != nil {
		return RateOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c RateOrderCommand) Validate() error {
	return c.guard.Validate(ErrRateOrderCommandIsNotConstructed)
}

// OrderID returns the identifier of the rated order.
func (c RateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Rating returns the star rating.
func (c RateOrderCommand) Rating() int {
	return c.rating
}

func (c *RateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *RateOrderCommand) setRating(rating int) error {
	if rating < order.RatingMin || rating > order.RatingMax {
		return errs.NewValueIsOutOfRangeError("rating", rating, order.RatingMin, order.RatingMax)
	}

	c.rating = rating
	return nil
}
