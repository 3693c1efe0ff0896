package commands

import (
	"errors"

	"quickbite/internal/pkg/guard"
)

var ErrSweepDispatchCommandIsNotConstructed = errors.New(
	"SweepDispatchCommand must be created via NewSweepDispatchCommand constructor",
)

// SweepDispatchCommand represents one sweep over every order stuck in
// rider search, re-offering each with the given radius. A non-positive
// radius selects the default.
type SweepDispatchCommand struct { //nolint:recvcheck //using for validation
	radiusMeters float64

	guard guard.ConstructorGuard
}

// NewSweepDispatchCommand creates a command to sweep stalled dispatches.
func NewSweepDispatchCommand(radiusMeters float64) (SweepDispatchCommand, error) {
	cmd := SweepDispatchCommand{
		guard: guard.NewConstructorGuard(),
	}

	cmd.radiusMeters = radiusMeters
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c SweepDispatchCommand) Validate() error {
	return c.guard.Validate(ErrSweepDispatchCommandIsNotConstructed)
}

// RadiusMeters returns the search radius for this sweep.
func (c SweepDispatchCommand) RadiusMeters() float64 {
	return c.radiusMeters
}
