package commands

import (
	"context"

	"quickbite/internal/core/application/events"
	"quickbite/internal/core/domain/services"
	"quickbite/internal/core/ports"
)

// CancelOrderCommandHandler cancels an order and, for wallet payments that
// were already debited, refunds the full amount back to the customer's
// wallet. The order's refund flag makes the refund idempotent: a second
// cancellation attempt fails on the state machine before any money moves.
type CancelOrderCommandHandler struct {
	uowFactory OrderWalletUoWFactory
	board      *services.OfferBoard
	bus        ports.EventBus
	feed       ports.LifecycleFeed
}

// NewCancelOrderCommandHandler creates a handler for order cancellation.
func NewCancelOrderCommandHandler(
	uowFactory OrderWalletUoWFactory,
	board *services.OfferBoard,
	bus ports.EventBus,
	feed ports.LifecycleFeed,
) CancelOrderCommandHandler {
	return CancelOrderCommandHandler{
		uowFactory: uowFactory,
		board:      board,
		bus:        bus,
		feed:       feed,
	}
}

// Handle processes the cancellation command.
// Returns errs.ErrInvalidStateTransition when the order is already past the
// cancellable statuses (looking_for_rider and later).
func (h CancelOrderCommandHandler) Handle(ctx context.Context, cmd CancelOrderCommand) error {
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

	if err = o.Cancel(cmd.Reason()); err != nil {
		return err
	}

	refunded := false
	if o.RefundDue() {
		walletRepo := uow.WalletRepository()

		customerWallet, err := walletRepo.Get(ctx, o.CustomerID())
		if err != nil {
			return err
		}

		if err = customerWallet.Credit(o.TotalAmount(), "refund for order "+o.ID().String()); err != nil {
			return err
		}

		if err = walletRepo.Update(ctx, customerWallet); err != nil {
			return err
		}

		if err = o.MarkRefundIssued(); err != nil {
			return err
		}
		refunded = true
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	payload := events.CancelledPayload{
		OrderID:      o.ID().String(),
		Reason:       cmd.Reason(),
		RefundIssued: refunded,
	}
	if refunded {
		payload.RefundedAmount = o.TotalAmount().Amount()
	}
	h.bus.Publish(ctx, events.OrderRoom(o.ID()), events.TypeCancelled, payload)
	h.bus.Publish(ctx, events.RestaurantRoom(o.RestaurantID()), events.TypeCancelled, payload)
	h.feed.Publish(ctx, o.ID(), events.TypeCancelled, payload)

	withdrawn := events.OfferWithdrawnPayload{
		OrderID: o.ID().String(),
		Reason:  "order cancelled",
	}
	for _, courierID := range h.board.Take(o.ID()) {
		h.bus.Publish(ctx, events.CourierRoom(courierID), events.TypeOfferWithdrawn, withdrawn)
	}

	return nil
}
