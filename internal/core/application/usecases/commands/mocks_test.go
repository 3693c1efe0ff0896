package commands_test

import (
	"context"
	"sync"

	"quickbite/internal/core/application/usecases/commands"
	"quickbite/internal/core/domain/model/courier"
	"quickbite/internal/core/domain/model/kernel"
	"quickbite/internal/core/domain/model/order"
	"quickbite/internal/core/domain/model/wallet"
	"quickbite/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) AssignCourier(ctx context.Context, orderID, courierID kernel.UUID) error {
	args := m.Called(ctx, orderID, courierID)
	return args.Error(0)
}

func (m *MockOrderRepository) GetAllInStatus(ctx context.Context, status order.Status) ([]*order.Order, error) {
	args := m.Called(ctx, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

type MockWalletRepository struct{ mock.Mock }

func (m *MockWalletRepository) Add(ctx context.Context, w *wallet.Wallet) error {
	args := m.Called(ctx, w)
	return args.Error(0)
}

func (m *MockWalletRepository) Update(ctx context.Context, w *wallet.Wallet) error {
	args := m.Called(ctx, w)
	return args.Error(0)
}

func (m *MockWalletRepository) Get(ctx context.Context, ownerID kernel.UUID) (*wallet.Wallet, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*wallet.Wallet), args.Error(1)
}

type MockCourierRepository struct{ mock.Mock }

func (m *MockCourierRepository) Add(ctx context.Context, c *courier.Courier) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCourierRepository) Update(ctx context.Context, c *courier.Courier) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCourierRepository) Get(ctx context.Context, id kernel.UUID) (*courier.Courier, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*courier.Courier), args.Error(1)
}

func (m *MockCourierRepository) GetAllDispatchable(ctx context.Context) ([]*courier.Courier, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*courier.Courier), args.Error(1)
}

// MockUoW satisfies every narrowed unit-of-work interface in the package.
type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockUoW) WalletRepository() ports.WalletRepository {
	args := m.Called()
	return args.Get(0).(ports.WalletRepository)
}

func (m *MockUoW) CourierRepository() ports.CourierRepository {
	args := m.Called()
	return args.Get(0).(ports.CourierRepository)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockOrderWalletUoWFactory struct{ mock.Mock }

func (m *MockOrderWalletUoWFactory) Create() commands.OrderWalletUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderWalletUoW)
}

type MockCourierUoWFactory struct{ mock.Mock }

func (m *MockCourierUoWFactory) Create() commands.CourierUoW {
	args := m.Called()
	return args.Get(0).(commands.CourierUoW)
}

// recordedEvent captures one bus publish for assertions.
type recordedEvent struct {
	Room    string
	Type    string
	Payload any
}

// FakeEventBus records publishes; Subscribe is unused in handler tests.
type FakeEventBus struct {
	mu     sync.Mutex
	events []recordedEvent
}

func (b *FakeEventBus) Publish(_ context.Context, room, eventType string, payload any) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, recordedEvent{Room: room, Type: eventType, Payload: payload})
}

func (b *FakeEventBus) Subscribe(_ string) ports.Subscription { return nil }

func (b *FakeEventBus) Events() []recordedEvent {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]recordedEvent, len(b.events))
	copy(out, b.events)
	return out
}

func (b *FakeEventBus) EventsTo(room string) []recordedEvent {
	var out []recordedEvent
	for _, e := range b.Events() {
		if e.Room == room {
			out = append(out, e)
		}
	}
	return out
}

// FakeNotifier swallows notifications; handlers call it in goroutines.
type FakeNotifier struct{}

func (FakeNotifier) Notify(context.Context, kernel.UUID, string, string, map[string]string) {}

// FakeLifecycleFeed records feed publishes.
type FakeLifecycleFeed struct {
	mu      sync.Mutex
	records []recordedEvent
}

func (f *FakeLifecycleFeed) Publish(_ context.Context, orderID kernel.UUID, eventType string, payload any) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.records = append(f.records, recordedEvent{Room: orderID.String(), Type: eventType, Payload: payload})
}

func (f *FakeLifecycleFeed) Close() error { return nil }

func mustMoney(amount int64) kernel.Money {
	m, err := kernel.NewMoney(amount)
	if err != nil {
		panic(err)
	}
	return m
}

func mustPoint(lat, lon float64) kernel.GeoPoint {
	p, err := kernel.NewGeoPoint(lat, lon)
	if err != nil {
		panic(err)
	}
	return p
}

func makeItems(unitPrice int64, quantity int) []order.LineItem {
	item, err := order.NewLineItem(kernel.NewUUID(), "Chicken Karahi", quantity, mustMoney(unitPrice))
	if err != nil {
		panic(err)
	}
	return []order.LineItem{item}
}

func makeOrder(method order.PaymentMethod) *order.Order {
	o, err := order.NewOrder(
		kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
		makeItems(1000, 1), mustMoney(1000), mustPoint(31.5204, 74.3587), method,
	)
	if err != nil {
		panic(err)
	}
	return o
}
