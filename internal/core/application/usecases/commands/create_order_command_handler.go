package commands

import (
	"context"

	"quickbite/internal/core/application/events"
	"quickbite/internal/core/domain/model/kernel"
	"quickbite/internal/core/domain/model/order"
	"quickbite/internal/core/ports"
)

// CreateOrderCommandHandler handles the business logic for placing orders.
// For wallet payments the customer's wallet is debited in the same
// transaction that persists the order, so a failed persist never leaves the
// customer charged for an order that does not exist.
//
// Example:
//
//	handler := NewCreateOrderCommandHandler(uowFactory, bus, feed)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    switch {
//	    case errors.Is(err, wallet.ErrInsufficientFunds):
//	        // surface a payment-required error to the customer
//	    default:
//	        return err
//	    }
//	}
type CreateOrderCommandHandler struct {
	uowFactory OrderWalletUoWFactory
	bus        ports.EventBus
	feed       ports.LifecycleFeed
}

// NewCreateOrderCommandHandler creates a handler for order placement.
// Requires an OrderWalletUoWFactory so that the wallet debit and the order
// insert share a transaction.
func NewCreateOrderCommandHandler(
	uowFactory OrderWalletUoWFactory,
	bus ports.EventBus,
	feed ports.LifecycleFeed,
) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		bus:        bus,
		feed:       feed,
	}
}

// Handle processes the order placement command.
// Computes the order total from the line items, debits the customer's wallet
// when the payment method is wallet, and persists the order in "pending".
// The total is always derived server-side; a client-supplied total is never
// accepted, so the amount charged cannot disagree with the items ordered.
// Returns wallet.ErrInsufficientFunds when the balance does not cover the
// total; the wallet is left untouched in that case.
func (h CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	var total kernel.Money
	for _, item := range cmd.Items() {
		total = total.Add(item.Subtotal())
	}

	newOrder, err := order.NewOrder(
		cmd.OrderID(),
		cmd.CustomerID(),
		cmd.RestaurantID(),
		cmd.Items(),
		total,
		cmd.DeliveryPoint(),
		cmd.PaymentMethod(),
	)
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if cmd.PaymentMethod() == order.PaymentMethodWallet {
		walletRepo := uow.WalletRepository()

		customerWallet, err := walletRepo.Get(ctx, cmd.CustomerID())
		if err != nil {
			return err
		}

		if err = customerWallet.Debit(total, "order "+cmd.OrderID().String()); err != nil {
			return err
		}

		if err = walletRepo.Update(ctx, customerWallet); err != nil {
			return err
		}

		newOrder.MarkPaymentCompleted()
	}

	if err = uow.OrderRepository().Add(ctx, newOrder); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	payload := events.StatusChangedPayload{
		OrderID: newOrder.ID().String(),
		To:      newOrder.Status().String(),
	}
	h.bus.Publish(ctx, events.RestaurantRoom(newOrder.RestaurantID()), events.TypeStatusChanged, payload)
	h.feed.Publish(ctx, newOrder.ID(), events.TypeStatusChanged, payload)

	return nil
}
