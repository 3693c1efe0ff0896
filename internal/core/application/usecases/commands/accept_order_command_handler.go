package commands

import (
	"context"

	"quickbite/internal/core/application/events"
	"quickbite/internal/core/domain/model/kernel"
	"quickbite/internal/core/domain/model/order"
	"quickbite/internal/core/ports"
)

// AcceptOrderCommandHandler moves a pending order to "accepted".
// Publishes a status_changed event to the order and restaurant rooms once
// the transition is committed.
type AcceptOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	bus        ports.EventBus
	feed       ports.LifecycleFeed
}

// NewAcceptOrderCommandHandler creates a handler for order acceptance.
func NewAcceptOrderCommandHandler(
	uowFactory OrderUoWFactory,
	bus ports.EventBus,
	feed ports.LifecycleFeed,
) AcceptOrderCommandHandler {
	return AcceptOrderCommandHandler{
		uowFactory: uowFactory,
		bus:        bus,
		feed:       feed,
	}
}

// Handle processes the acceptance command. Returns
// errs.ErrInvalidStateTransition (wrapped with the from/to pair) when the
// order is not pending.
func (h AcceptOrderCommandHandler) Handle(ctx context.Context, cmd AcceptOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return applyOrderTransition(ctx, h.uowFactory, h.bus, h.feed, cmd.OrderID(),
		func(o *order.Order) error { return o.Accept() })
}

// applyOrderTransition loads the order, applies a lifecycle step, persists
// it, and fans the resulting status change out to the order and restaurant
// rooms. Shared by the plain transition handlers.
func applyOrderTransition(
	ctx context.Context,
	uowFactory OrderUoWFactory,
	bus ports.EventBus,
	feed ports.LifecycleFeed,
	orderID kernel.UUID,
	step func(*order.Order) error,
) error {
	uow := uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()

	o, err := orderRepo.Get(ctx, orderID)
	if err != nil {
		return err
	}

	from := o.Status()
	if err = step(o); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	payload := events.StatusChangedPayload{
		OrderID: o.ID().String(),
		From:    from.String(),
		To:      o.Status().String(),
	}
	bus.Publish(ctx, events.OrderRoom(o.ID()), events.TypeStatusChanged, payload)
	bus.Publish(ctx, events.RestaurantRoom(o.RestaurantID()), events.TypeStatusChanged, payload)
	feed.Publish(ctx, o.ID(), events.TypeStatusChanged, payload)

	return nil
}
