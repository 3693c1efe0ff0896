package commands_test

import (
	"testing"

	"quickbite/internal/core/application/events"
	"quickbite/internal/core/application/usecases/commands"
	"quickbite/internal/core/domain/model/courier"
	"quickbite/internal/core/domain/model/kernel"
	"quickbite/internal/core/domain/model/order"
	"quickbite/internal/core/domain/services"
	"quickbite/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestAcceptOfferCommandHandler_Handle_WinnerFansOut(t *testing.T) {
	ctx := t.Context()
	winnerID := kernel.NewUUID()
	loserID := kernel.NewUUID()

	o := makeOrder(order.PaymentMethodCard)
	require.NoError(t, o.Accept())
	require.NoError(t, o.StartPreparing())
	require.NoError(t, o.StartRiderSearch())
	require.NoError(t, o.Assign(winnerID))

	winner, err := courier.NewCourier(winnerID, "Bilal", mustPoint(31.52, 74.35))
	require.NoError(t, err)

	cmd, err := commands.NewAcceptOfferCommand(o.ID(), winnerID)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	courierRepo := new(MockCourierRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("CourierRepository").Return(courierRepo).Once(),
		courierRepo.On("Get", mock.Anything, winnerID).Return(winner, nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("AssignCourier", mock.Anything, o.ID(), winnerID).Return(nil).Once(),
		orderRepo.On("Get", mock.Anything, o.ID()).Return(o, nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	board := services.NewOfferBoard()
	board.Record(o.ID(), []kernel.UUID{winnerID, loserID})

	bus := new(FakeEventBus)
	h := commands.NewAcceptOfferCommandHandler(factory, board, bus, FakeNotifier{}, new(FakeLifecycleFeed))
	require.NoError(t, h.Handle(ctx, cmd))

	assigned := bus.EventsTo(events.OrderRoom(o.ID()))
	require.Len(t, assigned, 1)
	assert.Equal(t, events.TypeAssigned, assigned[0].Type)

	withdrawn := bus.EventsTo(events.CourierRoom(loserID))
	require.Len(t, withdrawn, 1)
	assert.Equal(t, events.TypeOfferWithdrawn, withdrawn[0].Type)

	// the winner never sees a withdrawal for the order they just took
	assert.Empty(t, bus.EventsTo(events.CourierRoom(winnerID)))
	assert.Zero(t, board.Outstanding(o.ID()))

	orderRepo.AssertExpectations(t)
	courierRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestAcceptOfferCommandHandler_Handle_AlreadyAssigned(t *testing.T) {
	ctx := t.Context()
	orderID := kernel.NewUUID()
	courierID := kernel.NewUUID()

	cmd, err := commands.NewAcceptOfferCommand(orderID, courierID)
	require.NoError(t, err)

	loser, err := courier.NewCourier(courierID, "Imran", mustPoint(31.52, 74.35))
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	courierRepo := new(MockCourierRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("CourierRepository").Return(courierRepo).Once(),
		courierRepo.On("Get", mock.Anything, courierID).Return(loser, nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("AssignCourier", mock.Anything, orderID, courierID).
			Return(order.ErrAlreadyAssigned).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	bus := new(FakeEventBus)
	h := commands.NewAcceptOfferCommandHandler(factory, services.NewOfferBoard(), bus, FakeNotifier{}, new(FakeLifecycleFeed))

	err = h.Handle(ctx, cmd)
	require.Error(t, err)
	assert.ErrorIs(t, err, order.ErrAlreadyAssigned)
	assert.Empty(t, bus.Events())

	orderRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestAcceptOfferCommandHandler_Handle_UnknownCourierLeavesOrderUntouched(t *testing.T) {
	ctx := t.Context()
	orderID := kernel.NewUUID()
	ghostID := kernel.NewUUID()

	cmd, err := commands.NewAcceptOfferCommand(orderID, ghostID)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	courierRepo := new(MockCourierRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("CourierRepository").Return(courierRepo).Once(),
		courierRepo.On("Get", mock.Anything, ghostID).
			Return(nil, errs.NewObjectNotFoundError("courier", ghostID.String())).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	bus := new(FakeEventBus)
	h := commands.NewAcceptOfferCommandHandler(factory, services.NewOfferBoard(), bus, FakeNotifier{}, new(FakeLifecycleFeed))

	err = h.Handle(ctx, cmd)
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrObjectNotFound)
	assert.Empty(t, bus.Events())

	// the conditional assignment must never run for a courier that does not
	// exist; otherwise the order would be handed to a ghost.
	orderRepo.AssertNotCalled(t, "AssignCourier", mock.Anything, mock.Anything, mock.Anything)
	courierRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}
