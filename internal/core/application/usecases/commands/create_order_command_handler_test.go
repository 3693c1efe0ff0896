package commands_test

import (
	"testing"

	"quickbite/internal/core/application/events"
	"quickbite/internal/core/application/usecases/commands"
	"quickbite/internal/core/domain/model/kernel"
	"quickbite/internal/core/domain/model/order"
	"quickbite/internal/core/domain/model/wallet"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCreateOrderCommandHandler_Handle_CardSuccess(t *testing.T) {
	ctx := t.Context()
	restaurantID := kernel.NewUUID()
	cmd, err := commands.NewCreateOrderCommand(
		kernel.NewUUID(), kernel.NewUUID(), restaurantID,
		makeItems(500, 2), mustPoint(31.5204, 74.3587), order.PaymentMethodCard,
	)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Add", mock.Anything, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderWalletUoWFactory)
	factory.On("Create").Return(uow).Once()

	bus := new(FakeEventBus)
	feed := new(FakeLifecycleFeed)

	h := commands.NewCreateOrderCommandHandler(factory, bus, feed)
	require.NoError(t, h.Handle(ctx, cmd))

	added := orderRepo.Calls[0].Arguments.Get(1).(*order.Order)
	assert.Equal(t, order.Pending, added.Status())
	assert.Equal(t, order.PaymentPending, added.PaymentStatus())
	assert.Equal(t, int64(1000), added.TotalAmount().Amount())

	published := bus.EventsTo(events.RestaurantRoom(restaurantID))
	require.Len(t, published, 1)
	assert.Equal(t, events.TypeStatusChanged, published[0].Type)

	orderRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestCreateOrderCommandHandler_Handle_WalletDebitsBeforePersist(t *testing.T) {
	ctx := t.Context()
	customerID := kernel.NewUUID()
	cmd, err := commands.NewCreateOrderCommand(
		kernel.NewUUID(), customerID, kernel.NewUUID(),
		makeItems(1000, 1), mustPoint(31.5204, 74.3587), order.PaymentMethodWallet,
	)
	require.NoError(t, err)

	customerWallet, err := wallet.NewWallet(customerID)
	require.NoError(t, err)
	require.NoError(t, customerWallet.Credit(mustMoney(1500), "top-up"))

	orderRepo := new(MockOrderRepository)
	walletRepo := new(MockWalletRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("WalletRepository").Return(walletRepo).Once(),
		walletRepo.On("Get", mock.Anything, customerID).Return(customerWallet, nil).Once(),
		walletRepo.On("Update", mock.Anything, customerWallet).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Add", mock.Anything, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderWalletUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreateOrderCommandHandler(factory, new(FakeEventBus), new(FakeLifecycleFeed))
	require.NoError(t, h.Handle(ctx, cmd))

	assert.Equal(t, int64(500), customerWallet.Balance().Amount())

	added := orderRepo.Calls[0].Arguments.Get(1).(*order.Order)
	assert.Equal(t, order.PaymentCompleted, added.PaymentStatus())

	walletRepo.AssertExpectations(t)
	orderRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestCreateOrderCommandHandler_Handle_InsufficientFunds(t *testing.T) {
	ctx := t.Context()
	customerID := kernel.NewUUID()
	cmd, err := commands.NewCreateOrderCommand(
		kernel.NewUUID(), customerID, kernel.NewUUID(),
		makeItems(1000, 1), mustPoint(31.5204, 74.3587), order.PaymentMethodWallet,
	)
	require.NoError(t, err)

	customerWallet, err := wallet.NewWallet(customerID)
	require.NoError(t, err)
	require.NoError(t, customerWallet.Credit(mustMoney(500), "top-up"))

	walletRepo := new(MockWalletRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("WalletRepository").Return(walletRepo).Once(),
		walletRepo.On("Get", mock.Anything, customerID).Return(customerWallet, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderWalletUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreateOrderCommandHandler(factory, new(FakeEventBus), new(FakeLifecycleFeed))
	err = h.Handle(ctx, cmd)
	require.Error(t, err)
	assert.ErrorIs(t, err, wallet.ErrInsufficientFunds)

	// rejected debit leaves the wallet untouched
	assert.Equal(t, int64(500), customerWallet.Balance().Amount())
	assert.Len(t, customerWallet.Transactions(), 1)

	walletRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestCreateOrderCommandHandler_Handle_ValidationError(t *testing.T) {
	var cmd commands.CreateOrderCommand
	h := commands.NewCreateOrderCommandHandler(new(MockOrderWalletUoWFactory), new(FakeEventBus), new(FakeLifecycleFeed))
	require.Error(t, h.Handle(t.Context(), cmd))
}
