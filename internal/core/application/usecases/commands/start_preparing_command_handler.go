package commands

import (
	"context"

	"quickbite/internal/core/domain/model/order"
	"quickbite/internal/core/ports"
)

// StartPreparingCommandHandler moves an accepted order to "preparing".
type StartPreparingCommandHandler struct {
	uowFactory OrderUoWFactory
	bus        ports.EventBus
	feed       ports.LifecycleFeed
}

// NewStartPreparingCommandHandler creates a handler for the preparation step.
func NewStartPreparingCommandHandler(
	uowFactory OrderUoWFactory,
	bus ports.EventBus,
	feed ports.LifecycleFeed,
) StartPreparingCommandHandler {
	return StartPreparingCommandHandler{
		uowFactory: uowFactory,
		bus:        bus,
		feed:       feed,
	}
}

// Handle processes the preparation command.
func (h StartPreparingCommandHandler) Handle(ctx context.Context, cmd StartPreparingCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return applyOrderTransition(ctx, h.uowFactory, h.bus, h.feed, cmd.OrderID(),
		func(o *order.Order) error { return o.StartPreparing() })
}
