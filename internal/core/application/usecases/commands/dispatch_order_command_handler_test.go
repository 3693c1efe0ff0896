package commands_test

import (
	"context"
	"testing"

	"quickbite/internal/core/application/events"
	"quickbite/internal/core/application/usecases/commands"
	"quickbite/internal/core/domain/model/courier"
	"quickbite/internal/core/domain/model/kernel"
	"quickbite/internal/core/domain/model/order"
	"quickbite/internal/core/domain/services"
	"quickbite/internal/core/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type FakeRestaurantDirectory struct {
	restaurant *ports.Restaurant
}

func (d FakeRestaurantDirectory) Get(_ context.Context, _ kernel.UUID) (*ports.Restaurant, error) {
	return d.restaurant, nil
}

func dispatchableCourier(t *testing.T, name string, lat, lon float64) *courier.Courier {
	t.Helper()
	c, err := courier.NewCourier(kernel.NewUUID(), name, mustPoint(lat, lon))
	require.NoError(t, err)
	c.SetOnline(true)
	c.MarkVerified(true)
	return c
}

func TestDispatchOrderCommandHandler_Handle_OffersNearbyCouriersOnly(t *testing.T) {
	ctx := t.Context()

	o := makeOrder(order.PaymentMethodCard)
	require.NoError(t, o.Accept())
	require.NoError(t, o.StartPreparing())
	require.NoError(t, o.StartRiderSearch())

	// restaurant at Lahore center; near is ~0.5 km out, far is ~6 km out
	near := dispatchableCourier(t, "Bilal", 31.5249, 74.3587)
	far := dispatchableCourier(t, "Imran", 31.5744, 74.3587)
	offline := dispatchableCourier(t, "Asif", 31.5210, 74.3590)
	offline.SetOnline(false)

	directory := FakeRestaurantDirectory{restaurant: &ports.Restaurant{
		ID:      o.RestaurantID(),
		Name:    "Karachi Biryani House",
		Address: "52 Mall Road",
		Pickup:  mustPoint(31.5204, 74.3587),
	}}

	orderRepo := new(MockOrderRepository)
	courierRepo := new(MockCourierRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", mock.Anything, o.ID()).Return(o, nil).Once(),
		uow.On("CourierRepository").Return(courierRepo).Once(),
		courierRepo.On("GetAllDispatchable", mock.Anything).
			Return([]*courier.Courier{near, far, offline}, nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	board := services.NewOfferBoard()
	bus := new(FakeEventBus)
	h := commands.NewDispatchOrderCommandHandler(
		factory, directory, services.NewDispatchPlanner(), board, bus, FakeNotifier{},
	)

	cmd, err := commands.NewDispatchOrderCommand(o.ID(), services.DefaultRadiusMeters)
	require.NoError(t, err)

	offers, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	require.Len(t, offers, 1)
	assert.Equal(t, near.ID(), offers[0].CourierID)

	offered := bus.EventsTo(events.CourierRoom(near.ID()))
	require.Len(t, offered, 1)
	assert.Equal(t, events.TypeOffer, offered[0].Type)
	payload := offered[0].Payload.(events.OfferPayload)
	assert.Equal(t, o.ID().String(), payload.OrderID)
	assert.Equal(t, "Karachi Biryani House", payload.RestaurantName)
	assert.Equal(t, "52 Mall Road", payload.PickupAddress)
	assert.Equal(t, o.DeliveryPoint().Latitude(), payload.DeliveryLat)
	assert.Equal(t, o.DeliveryPoint().Longitude(), payload.DeliveryLon)
	assert.Equal(t, int64(1000), payload.TotalAmount)
	assert.Equal(t, int64(150), payload.EstimatedEarning)

	assert.Empty(t, bus.EventsTo(events.CourierRoom(far.ID())))
	assert.Empty(t, bus.EventsTo(events.CourierRoom(offline.ID())))
	assert.Equal(t, 1, board.Outstanding(o.ID()))
}

func TestDispatchOrderCommandHandler_Handle_EmptyRoundIsNotAnError(t *testing.T) {
	ctx := t.Context()

	o := makeOrder(order.PaymentMethodCard)
	require.NoError(t, o.Accept())
	require.NoError(t, o.StartPreparing())
	require.NoError(t, o.StartRiderSearch())

	directory := FakeRestaurantDirectory{restaurant: &ports.Restaurant{
		ID:     o.RestaurantID(),
		Name:   "Karachi Biryani House",
		Pickup: mustPoint(31.5204, 74.3587),
	}}

	orderRepo := new(MockOrderRepository)
	courierRepo := new(MockCourierRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", mock.Anything, o.ID()).Return(o, nil).Once(),
		uow.On("CourierRepository").Return(courierRepo).Once(),
		courierRepo.On("GetAllDispatchable", mock.Anything).
			Return([]*courier.Courier{}, nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	bus := new(FakeEventBus)
	h := commands.NewDispatchOrderCommandHandler(
		factory, directory, services.NewDispatchPlanner(), services.NewOfferBoard(), bus, FakeNotifier{},
	)

	cmd, err := commands.NewDispatchOrderCommand(o.ID(), 0)
	require.NoError(t, err)

	offers, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.Empty(t, offers)
	assert.Empty(t, bus.Events())
}

func TestDispatchOrderCommandHandler_Handle_OrderNotInRiderSearch(t *testing.T) {
	ctx := t.Context()

	o := makeOrder(order.PaymentMethodCard)

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", mock.Anything, o.ID()).Return(o, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewDispatchOrderCommandHandler(
		factory, FakeRestaurantDirectory{}, services.NewDispatchPlanner(),
		services.NewOfferBoard(), new(FakeEventBus), FakeNotifier{},
	)

	cmd, err := commands.NewDispatchOrderCommand(o.ID(), services.DefaultRadiusMeters)
	require.NoError(t, err)

	_, err = h.Handle(ctx, cmd)
	require.Error(t, err)
	assert.ErrorIs(t, err, commands.ErrOrderNotInRiderSearch)
}
