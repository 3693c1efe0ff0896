package commands

import (
	"context"
	"errors"
	"time"

	"quickbite/internal/core/application/events"
	"quickbite/internal/core/domain/model/kernel"
	"quickbite/internal/core/domain/model/wallet"
	"quickbite/internal/core/domain/services"
	"quickbite/internal/core/ports"
	"quickbite/internal/pkg/errs"
)

// CompleteDeliveryCommandHandler finishes a delivery: the order moves to
// "delivered", the delivery timestamp is recorded, and the courier's wallet
// is credited with the delivery earning, all in one transaction. A courier
// completing their first delivery gets a wallet created on the spot.
type CompleteDeliveryCommandHandler struct {
	uowFactory OrderWalletUoWFactory
	bus        ports.EventBus
	notifier   ports.Notifier
	feed       ports.LifecycleFeed
}

// NewCompleteDeliveryCommandHandler creates a handler for delivery completion.
func NewCompleteDeliveryCommandHandler(
	uowFactory OrderWalletUoWFactory,
	bus ports.EventBus,
	notifier ports.Notifier,
	feed ports.LifecycleFeed,
) CompleteDeliveryCommandHandler {
	return CompleteDeliveryCommandHandler{
		uowFactory: uowFactory,
		bus:        bus,
		notifier:   notifier,
		feed:       feed,
	}
}

// Handle processes the completion command.
// Returns errs.ErrInvalidStateTransition when the order is not out for
// delivery.
func (h CompleteDeliveryCommandHandler) Handle(ctx context.Context, cmd CompleteDeliveryCommand) error {
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

	orderRepo := uow.OrderRepository()

	o, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if err = o.MarkDelivered(); err != nil {
		return err
	}

	earning := o.TotalAmount().MultiplyRounded(services.EarningRate)
	if err = h.creditCourier(ctx, uow, o.Courier(), earning, o.ID().String()); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	deliveredAt := time.Now().UTC()
	if o.ActualDeliveryTime() != nil {
		deliveredAt = *o.ActualDeliveryTime()
	}

	payload := events.DeliveredPayload{
		OrderID:     o.ID().String(),
		CourierID:   o.Courier().String(),
		DeliveredAt: deliveredAt.Format(time.RFC3339),
		Earning:     earning.Amount(),
	}
	h.bus.Publish(ctx, events.OrderRoom(o.ID()), events.TypeDelivered, payload)
	h.bus.Publish(ctx, events.RestaurantRoom(o.RestaurantID()), events.TypeDelivered, payload)
	h.feed.Publish(ctx, o.ID(), events.TypeDelivered, payload)

	go h.notifier.Notify(context.WithoutCancel(ctx), o.CustomerID(),
		"Order delivered",
		"Enjoy your meal! You can rate your order now.",
		map[string]string{"order_id": o.ID().String()})

	return nil
}

func (h CompleteDeliveryCommandHandler) creditCourier(
	ctx context.Context,
	uow OrderWalletUoW,
	courierID *kernel.UUID,
	earning kernel.Money,
	orderID string,
) error {
	walletRepo := uow.WalletRepository()

	courierWallet, err := walletRepo.Get(ctx, *courierID)
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		courierWallet, err = wallet.NewWallet(*courierID)
		if err != nil {
			return err
		}
		if err = courierWallet.Credit(earning, "delivery earning for order "+orderID); err != nil {
			return err
		}
		return walletRepo.Add(ctx, courierWallet)
	case err != nil:
		return err
	}

	if err = courierWallet.Credit(earning, "delivery earning for order "+orderID); err != nil {
		return err
	}

	return walletRepo.Update(ctx, courierWallet)
}
