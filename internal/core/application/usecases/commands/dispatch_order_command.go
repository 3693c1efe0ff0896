package commands

import (
	"errors"

	"quickbite/internal/core/domain/model/kernel"
	"quickbite/internal/pkg/guard"
)

var ErrDispatchOrderCommandIsNotConstructed = errors.New(
	"DispatchOrderCommand must be created via NewDispatchOrderCommand constructor",
)

// DispatchOrderCommand represents a candidate search round for an order in
// rider search. A non-positive radius selects the default search radius.
type DispatchOrderCommand struct { //nolint:recvcheck //using for validation
	orderID      kernel.UUID
	radiusMeters float64

	guard guard.ConstructorGuard
}

// NewDispatchOrderCommand creates a command to run a dispatch round.
func NewDispatchOrderCommand(orderID kernel.UUID, radiusMeters float64) (DispatchOrderCommand, error) {
	cmd := DispatchOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := cmd.setOrderID(orderID); err != nil {
		return DispatchOrderCommand{}, err
	}

	cmd.radiusMeters = radiusMeters
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c DispatchOrderCommand) Validate() error {
	return c.guard.Validate(ErrDispatchOrderCommandIsNotConstructed)
}

// OrderID returns the identifier of the order being dispatched.
func (c DispatchOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// RadiusMeters returns the requested search radius in meters.
func (c DispatchOrderCommand) RadiusMeters() float64 {
	return c.radiusMeters
}

func (c *DispatchOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}
