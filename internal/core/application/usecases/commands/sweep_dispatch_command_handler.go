package commands

import (
	"context"
	"errors"
	"log/slog"

	"quickbite/internal/core/domain/model/order"
)

// SweepDispatchCommandHandler re-runs a dispatch round for every order
// still looking for a rider. An order that gets assigned while the sweep
// is running is skipped; empty rounds are a normal outcome.
type SweepDispatchCommandHandler struct {
	uowFactory OrderUoWFactory
	dispatcher DispatchOrderCommandHandler
	logger     *slog.Logger
}

// NewSweepDispatchCommandHandler creates a handler for dispatch sweeps.
func NewSweepDispatchCommandHandler(
	uowFactory OrderUoWFactory,
	dispatcher DispatchOrderCommandHandler,
	logger *slog.Logger,
) SweepDispatchCommandHandler {
	return SweepDispatchCommandHandler{
		uowFactory: uowFactory,
		dispatcher: dispatcher,
		logger:     logger,
	}
}

// Handle processes one sweep. Returns the number of orders that received
// at least one offer.
func (h SweepDispatchCommandHandler) Handle(ctx context.Context, cmd SweepDispatchCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	stuck, err := h.loadStuckOrders(ctx)
	if err != nil {
		return 0, err
	}
	if len(stuck) == 0 {
		return 0, nil
	}

	offered := 0
	for _, o := range stuck {
		dispatchCmd, cmdErr := NewDispatchOrderCommand(o.ID(), cmd.RadiusMeters())
		if cmdErr != nil {
			return offered, cmdErr
		}

		offers, dispatchErr := h.dispatcher.Handle(ctx, dispatchCmd)
		if dispatchErr != nil {
			// The order may have been assigned or cancelled since it was
			// listed; that is the race working as intended.
			if errors.Is(dispatchErr, ErrOrderNotInRiderSearch) {
				continue
			}
			h.logger.ErrorContext(ctx, "dispatch sweep round failed",
				slog.String("order_id", o.ID().String()),
				slog.Any("error", dispatchErr))
			continue
		}

		if len(offers) > 0 {
			offered++
		}
	}

	return offered, nil
}

func (h SweepDispatchCommandHandler) loadStuckOrders(ctx context.Context) ([]*order.Order, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	stuck, err := uow.OrderRepository().GetAllInStatus(ctx, order.LookingForRider)
	if err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return stuck, nil
}
