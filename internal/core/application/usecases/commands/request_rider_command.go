package commands

import (
	"errors"

	"quickbite/internal/core/domain/model/kernel"
	"quickbite/internal/pkg/guard"
)

var ErrRequestRiderCommandIsNotConstructed = errors.New(
	"RequestRiderCommand must be created via NewRequestRiderCommand constructor",
)

// RequestRiderCommand represents the restaurant marking an order ready for
// pickup, which starts the rider search. A non-positive radius selects the
// default search radius.
type RequestRiderCommand struct { //nolint:recvcheck //using for validation
	orderID      kernel.UUID
	radiusMeters float64

	guard guard.ConstructorGuard
}

// NewRequestRiderCommand creates a command to start the rider search.
func NewRequestRiderCommand(orderID kernel.UUID, radiusMeters float64) (RequestRiderCommand, error) {
	cmd := RequestRiderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := cmd.setOrderID(orderID); err != nil {
		return RequestRiderCommand{}, err
	}

	cmd.radiusMeters = radiusMeters
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c RequestRiderCommand) Validate() error {
	return c.guard.Validate(ErrRequestRiderCommandIsNotConstructed)
}

// OrderID returns the identifier of the order awaiting a rider.
func (c RequestRiderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// RadiusMeters returns the requested search radius in meters.
func (c RequestRiderCommand) RadiusMeters() float64 {
	return c.radiusMeters
}

func (c *RequestRiderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}
