package commands

import (
	"context"
	"errors"
	"fmt"

	"quickbite/internal/core/application/events"
	"quickbite/internal/core/domain/model/courier"
	"quickbite/internal/core/domain/model/kernel"
	"quickbite/internal/core/domain/model/order"
	"quickbite/internal/core/domain/services"
	"quickbite/internal/core/ports"
)

// ErrOrderNotInRiderSearch is returned when a dispatch round is requested
// for an order that is not currently looking for a rider.
var ErrOrderNotInRiderSearch = errors.New("order is not looking for a rider")

// DispatchOrderCommandHandler runs a candidate search round: it ranks
// dispatchable couriers around the restaurant pickup point and offers them
// the delivery. Offers are recorded on the offer board so they can be
// withdrawn once a courier wins the assignment or the order is cancelled.
//
// A round with zero candidates is not an error; the dispatch sweep retries
// stuck orders with a widened radius.
type DispatchOrderCommandHandler struct {
	uowFactory UoWFactory
	directory  ports.RestaurantDirectory
	planner    services.DispatchPlanner
	board      *services.OfferBoard
	bus        ports.EventBus
	notifier   ports.Notifier
}

// NewDispatchOrderCommandHandler creates a handler for dispatch rounds.
func NewDispatchOrderCommandHandler(
	uowFactory UoWFactory,
	directory ports.RestaurantDirectory,
	planner services.DispatchPlanner,
	board *services.OfferBoard,
	bus ports.EventBus,
	notifier ports.Notifier,
) DispatchOrderCommandHandler {
	return DispatchOrderCommandHandler{
		uowFactory: uowFactory,
		directory:  directory,
		planner:    planner,
		board:      board,
		bus:        bus,
		notifier:   notifier,
	}
}

// Handle processes a dispatch round and returns the offers that were made.
// Returns ErrOrderNotInRiderSearch when the order is not in rider search.
func (h DispatchOrderCommandHandler) Handle(
	ctx context.Context,
	cmd DispatchOrderCommand,
) ([]services.CandidateOffer, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	o, couriers, err := h.loadOrderAndCouriers(ctx, cmd)
	if err != nil {
		return nil, err
	}

	restaurant, err := h.directory.Get(ctx, o.RestaurantID())
	if err != nil {
		return nil, err
	}

	offers, err := h.planner.PlanOffers(o, restaurant.Pickup, couriers,
		cmd.RadiusMeters(), services.DefaultCandidateLimit)
	if err != nil {
		return nil, err
	}
	if len(offers) == 0 {
		return nil, nil
	}

	ids := make([]kernel.UUID, 0, len(offers))
	for _, offer := range offers {
		ids = append(ids, offer.CourierID)
	}
	h.board.Record(o.ID(), ids)

	for _, offer := range offers {
		payload := events.OfferPayload{
			OrderID:          o.ID().String(),
			RestaurantName:   restaurant.Name,
			PickupAddress:    restaurant.Address,
			DeliveryLat:      o.DeliveryPoint().Latitude(),
			DeliveryLon:      o.DeliveryPoint().Longitude(),
			TotalAmount:      o.TotalAmount().Amount(),
			DistanceKm:       offer.DistanceKm,
			EstimatedEarning: offer.EstimatedEarning.Amount(),
		}
		h.bus.Publish(ctx, events.CourierRoom(offer.CourierID), events.TypeOffer, payload)

		courierID := offer.CourierID
		go h.notifier.Notify(context.WithoutCancel(ctx), courierID,
			"New delivery offer",
			fmt.Sprintf("%s, %.1f km away", restaurant.Name, offer.DistanceKm),
			map[string]string{"order_id": o.ID().String()})
	}

	return offers, nil
}

func (h DispatchOrderCommandHandler) loadOrderAndCouriers(
	ctx context.Context,
	cmd DispatchOrderCommand,
) (*order.Order, []*courier.Courier, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	o, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, nil, err
	}
	if o.Status() != order.LookingForRider {
		return nil, nil, ErrOrderNotInRiderSearch
	}

	couriers, err := uow.CourierRepository().GetAllDispatchable(ctx)
	if err != nil {
		return nil, nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, nil, err
	}

	return o, couriers, nil
}
