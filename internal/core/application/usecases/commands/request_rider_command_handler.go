package commands

import (
	"context"
	"log/slog"

	"quickbite/internal/core/domain/model/order"
	"quickbite/internal/core/domain/services"
	"quickbite/internal/core/ports"
)

// RequestRiderCommandHandler moves a preparing order to "looking_for_rider"
// and immediately runs the first dispatch round with the requested radius.
// A fruitless first round is logged and left to the dispatch sweep.
type RequestRiderCommandHandler struct {
	uowFactory OrderUoWFactory
	dispatcher DispatchOrderCommandHandler
	bus        ports.EventBus
	feed       ports.LifecycleFeed
	logger     *slog.Logger
}

// NewRequestRiderCommandHandler creates a handler for starting rider search.
func NewRequestRiderCommandHandler(
	uowFactory OrderUoWFactory,
	dispatcher DispatchOrderCommandHandler,
	bus ports.EventBus,
	feed ports.LifecycleFeed,
	logger *slog.Logger,
) RequestRiderCommandHandler {
	return RequestRiderCommandHandler{
		uowFactory: uowFactory,
		dispatcher: dispatcher,
		bus:        bus,
		feed:       feed,
		logger:     logger,
	}
}

// Handle processes the rider request. The status transition commits first;
// the dispatch round runs after, so offer fan-out never holds the order
// transaction open.
func (h RequestRiderCommandHandler) Handle(ctx context.Context, cmd RequestRiderCommand) ([]services.CandidateOffer, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	err := applyOrderTransition(ctx, h.uowFactory, h.bus, h.feed, cmd.OrderID(),
		func(o *order.Order) error { return o.StartRiderSearch() })
	if err != nil {
		return nil, err
	}

	dispatchCmd, err := NewDispatchOrderCommand(cmd.OrderID(), cmd.RadiusMeters())
	if err != nil {
		return nil, err
	}

	offers, err := h.dispatcher.Handle(ctx, dispatchCmd)
	if err != nil {
		return nil, err
	}
	if len(offers) == 0 {
		h.logger.WarnContext(ctx, "no couriers in range, leaving order to dispatch sweep",
			slog.String("order_id", cmd.OrderID().String()))
	}

	return offers, nil
}
