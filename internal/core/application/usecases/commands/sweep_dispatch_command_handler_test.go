package commands_test

import (
	"log/slog"
	"testing"

	"quickbite/internal/core/application/usecases/commands"
	"quickbite/internal/core/domain/model/courier"
	"quickbite/internal/core/domain/model/order"
	"quickbite/internal/core/domain/services"
	"quickbite/internal/core/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestSweepDispatchCommandHandler_Handle(t *testing.T) {
	ctx := t.Context()

	o := makeOrder(order.PaymentMethodCard)
	require.NoError(t, o.Accept())
	require.NoError(t, o.StartPreparing())
	require.NoError(t, o.StartRiderSearch())

	near := dispatchableCourier(t, "Bilal", 31.5249, 74.3587)

	directory := FakeRestaurantDirectory{restaurant: &ports.Restaurant{
		ID:     o.RestaurantID(),
		Name:   "Karachi Biryani House",
		Pickup: mustPoint(31.5204, 74.3587),
	}}

	// The sweep lists stuck orders in one transaction.
	listRepo := new(MockOrderRepository)
	listUoW := new(MockUoW)
	mock.InOrder(
		listUoW.On("Begin", ctx).Return(nil).Once(),
		listUoW.On("OrderRepository").Return(listRepo).Once(),
		listRepo.On("GetAllInStatus", mock.Anything, order.LookingForRider).
			Return([]*order.Order{o}, nil).Once(),
		listUoW.On("Commit", ctx).Return(nil).Once(),
		listUoW.On("Rollback", ctx).Return(nil).Once(),
	)
	listFactory := new(MockOrderUoWFactory)
	listFactory.On("Create").Return(listUoW).Once()

	// Each dispatch round then reloads the order and the courier pool.
	roundRepo := new(MockOrderRepository)
	courierRepo := new(MockCourierRepository)
	roundUoW := new(MockUoW)
	mock.InOrder(
		roundUoW.On("Begin", ctx).Return(nil).Once(),
		roundUoW.On("OrderRepository").Return(roundRepo).Once(),
		roundRepo.On("Get", mock.Anything, o.ID()).Return(o, nil).Once(),
		roundUoW.On("CourierRepository").Return(courierRepo).Once(),
		courierRepo.On("GetAllDispatchable", mock.Anything).
			Return([]*courier.Courier{near}, nil).Once(),
		roundUoW.On("Commit", ctx).Return(nil).Once(),
		roundUoW.On("Rollback", ctx).Return(nil).Once(),
	)
	roundFactory := new(MockUoWFactory)
	roundFactory.On("Create").Return(roundUoW).Once()

	board := services.NewOfferBoard()
	bus := new(FakeEventBus)
	dispatcher := commands.NewDispatchOrderCommandHandler(
		roundFactory, directory, services.NewDispatchPlanner(), board, bus, FakeNotifier{},
	)

	h := commands.NewSweepDispatchCommandHandler(
		listFactory, dispatcher, slog.New(slog.DiscardHandler))

	cmd, err := commands.NewSweepDispatchCommand(2 * services.DefaultRadiusMeters)
	require.NoError(t, err)

	offered, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.Equal(t, 1, offered)
	assert.Equal(t, 1, board.Outstanding(o.ID()))

	listUoW.AssertExpectations(t)
	roundUoW.AssertExpectations(t)
}

func TestSweepDispatchCommandHandler_Handle_NothingStuck(t *testing.T) {
	ctx := t.Context()

	listRepo := new(MockOrderRepository)
	listUoW := new(MockUoW)
	mock.InOrder(
		listUoW.On("Begin", ctx).Return(nil).Once(),
		listUoW.On("OrderRepository").Return(listRepo).Once(),
		listRepo.On("GetAllInStatus", mock.Anything, order.LookingForRider).
			Return([]*order.Order{}, nil).Once(),
		listUoW.On("Commit", ctx).Return(nil).Once(),
		listUoW.On("Rollback", ctx).Return(nil).Once(),
	)
	listFactory := new(MockOrderUoWFactory)
	listFactory.On("Create").Return(listUoW).Once()

	h := commands.NewSweepDispatchCommandHandler(
		listFactory, commands.DispatchOrderCommandHandler{}, slog.New(slog.DiscardHandler))

	cmd, err := commands.NewSweepDispatchCommand(0)
	require.NoError(t, err)

	offered, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.Zero(t, offered)
}
