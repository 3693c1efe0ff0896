package commands_test

import (
	"testing"

	"quickbite/internal/core/application/events"
	"quickbite/internal/core/application/usecases/commands"
	"quickbite/internal/core/domain/model/kernel"
	"quickbite/internal/core/domain/model/order"
	"quickbite/internal/core/domain/model/wallet"
	"quickbite/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func deliverableOrder(t *testing.T, courierID kernel.UUID) *order.Order {
	t.Helper()
	o := makeOrder(order.PaymentMethodCard)
	require.NoError(t, o.Accept())
	require.NoError(t, o.StartPreparing())
	require.NoError(t, o.StartRiderSearch())
	require.NoError(t, o.Assign(courierID))
	return o
}

func TestCompleteDeliveryCommandHandler_Handle_CreditsCourier(t *testing.T) {
	ctx := t.Context()
	courierID := kernel.NewUUID()
	o := deliverableOrder(t, courierID)

	courierWallet, err := wallet.NewWallet(courierID)
	require.NoError(t, err)

	cmd, err := commands.NewCompleteDeliveryCommand(o.ID())
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	walletRepo := new(MockWalletRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", mock.Anything, o.ID()).Return(o, nil).Once(),
		uow.On("WalletRepository").Return(walletRepo).Once(),
		walletRepo.On("Get", mock.Anything, courierID).Return(courierWallet, nil).Once(),
		walletRepo.On("Update", mock.Anything, courierWallet).Return(nil).Once(),
		orderRepo.On("Update", mock.Anything, o).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderWalletUoWFactory)
	factory.On("Create").Return(uow).Once()

	bus := new(FakeEventBus)
	h := commands.NewCompleteDeliveryCommandHandler(factory, bus, FakeNotifier{}, new(FakeLifecycleFeed))
	require.NoError(t, h.Handle(ctx, cmd))

	assert.Equal(t, order.Delivered, o.Status())
	assert.NotNil(t, o.ActualDeliveryTime())

	// 15% of 1000, rounded
	assert.Equal(t, int64(150), courierWallet.Balance().Amount())

	delivered := bus.EventsTo(events.OrderRoom(o.ID()))
	require.Len(t, delivered, 1)
	assert.Equal(t, events.TypeDelivered, delivered[0].Type)

	orderRepo.AssertExpectations(t)
	walletRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestCompleteDeliveryCommandHandler_Handle_FirstDeliveryCreatesWallet(t *testing.T) {
	ctx := t.Context()
	courierID := kernel.NewUUID()
	o := deliverableOrder(t, courierID)

	cmd, err := commands.NewCompleteDeliveryCommand(o.ID())
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	walletRepo := new(MockWalletRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", mock.Anything, o.ID()).Return(o, nil).Once(),
		uow.On("WalletRepository").Return(walletRepo).Once(),
		walletRepo.On("Get", mock.Anything, courierID).
			Return(nil, errs.NewObjectNotFoundError("wallet", courierID.String())).Once(),
		walletRepo.On("Add", mock.Anything, mock.AnythingOfType("*wallet.Wallet")).Return(nil).Once(),
		orderRepo.On("Update", mock.Anything, o).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderWalletUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCompleteDeliveryCommandHandler(factory, new(FakeEventBus), FakeNotifier{}, new(FakeLifecycleFeed))
	require.NoError(t, h.Handle(ctx, cmd))

	added := walletRepo.Calls[1].Arguments.Get(1).(*wallet.Wallet)
	assert.Equal(t, int64(150), added.Balance().Amount())

	orderRepo.AssertExpectations(t)
	walletRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestCompleteDeliveryCommandHandler_Handle_NotOutForDelivery(t *testing.T) {
	ctx := t.Context()
	o := makeOrder(order.PaymentMethodCard)

	cmd, err := commands.NewCompleteDeliveryCommand(o.ID())
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", mock.Anything, o.ID()).Return(o, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderWalletUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCompleteDeliveryCommandHandler(factory, new(FakeEventBus), FakeNotifier{}, new(FakeLifecycleFeed))
	err = h.Handle(ctx, cmd)
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrInvalidStateTransition)

	orderRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}
