package commands

import (
	"context"

	"quickbite/internal/core/application/events"
	"quickbite/internal/core/domain/services"
	"quickbite/internal/core/ports"
)

// AcceptOfferCommandHandler resolves the first-accept-wins race. The
// assignment itself is a single conditional update at the store, so when N
// couriers accept concurrently exactly one succeeds and the rest get
// order.ErrAlreadyAssigned.
//
// After the winning assignment commits, the handler withdraws the order's
// outstanding offers from the losing couriers and announces the assignment
// on the order room.
type AcceptOfferCommandHandler struct {
	uowFactory UoWFactory
	board      *services.OfferBoard
	bus        ports.EventBus
	notifier   ports.Notifier
	feed       ports.LifecycleFeed
}

// NewAcceptOfferCommandHandler creates a handler for offer acceptance.
func NewAcceptOfferCommandHandler(
	uowFactory UoWFactory,
	board *services.OfferBoard,
	bus ports.EventBus,
	notifier ports.Notifier,
	feed ports.LifecycleFeed,
) AcceptOfferCommandHandler {
	return AcceptOfferCommandHandler{
		uowFactory: uowFactory,
		board:      board,
		bus:        bus,
		notifier:   notifier,
		feed:       feed,
	}
}

// Handle processes the acceptance. Returns order.ErrAlreadyAssigned for
// every courier except the first one whose conditional update lands, and
// errs.ErrObjectNotFound when the order does not exist.
func (h AcceptOfferCommandHandler) Handle(ctx context.Context, cmd AcceptOfferCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	// The winner lookup must precede the assignment: the conditional update
	// takes effect at the store level, so a failure after it would leave the
	// order assigned to a courier that does not exist.
	winner, err := uow.CourierRepository().Get(ctx, cmd.CourierID())
	if err != nil {
		return err
	}

	orderRepo := uow.OrderRepository()

	if err := orderRepo.AssignCourier(ctx, cmd.OrderID(), cmd.CourierID()); err != nil {
		return err
	}

	o, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	assigned := events.AssignedPayload{
		OrderID:     o.ID().String(),
		CourierID:   winner.ID().String(),
		CourierName: winner.Name(),
	}
	h.bus.Publish(ctx, events.OrderRoom(o.ID()), events.TypeAssigned, assigned)
	h.bus.Publish(ctx, events.RestaurantRoom(o.RestaurantID()), events.TypeAssigned, assigned)
	h.feed.Publish(ctx, o.ID(), events.TypeAssigned, assigned)

	withdrawn := events.OfferWithdrawnPayload{
		OrderID: o.ID().String(),
		Reason:  "taken by another courier",
	}
	for _, loserID := range h.board.Take(o.ID()) {
		if loserID.IsEqual(cmd.CourierID()) {
			continue
		}
		h.bus.Publish(ctx, events.CourierRoom(loserID), events.TypeOfferWithdrawn, withdrawn)
	}

	go h.notifier.Notify(context.WithoutCancel(ctx), o.CustomerID(),
		"Courier assigned",
		winner.Name()+" is picking up your order",
		map[string]string{"order_id": o.ID().String()})

	return nil
}
