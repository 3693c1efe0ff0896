package inmemory

import (
	"context"
	"errors"
	"sync"

	"quickbite/internal/core/domain/model/courier"
	"quickbite/internal/core/domain/model/order"
	"quickbite/internal/core/domain/model/wallet"
	"quickbite/internal/core/ports"

	"github.com/google/uuid"
)

// ErrNoActiveTransaction is returned by Commit and Rollback when Begin was
// never called, or the transaction already finished.
var ErrNoActiveTransaction = errors.New("no active transaction")

// UnitOfWorkFactory creates in-memory unit of work instances over a shared
// store.
type UnitOfWorkFactory struct {
	store *Store
}

// NewUnitOfWorkFactory creates a factory bound to the given store.
func NewUnitOfWorkFactory(store *Store) *UnitOfWorkFactory {
	return &UnitOfWorkFactory{store: store}
}

// Create produces a new UnitOfWork for one business transaction.
func (f *UnitOfWorkFactory) Create() ports.UnitOfWork {
	return &UnitOfWork{store: f.store}
}

// UnitOfWork buffers writes until Commit, which applies them to the store
// under its lock; Rollback discards them. Touching a wallet takes that
// owner's lock for the rest of the transaction, the in-memory analogue of
// SELECT ... FOR UPDATE row locking.
type UnitOfWork struct {
	store *Store

	active        bool
	stagedOrders  map[uuid.UUID]*order.Order
	stagedWallets map[uuid.UUID]*wallet.Wallet
	stagedCourier map[uuid.UUID]*courier.Courier
	lockedWallets map[uuid.UUID]*sync.Mutex
}

// Begin starts the transaction. Calling Begin on an active unit of work is
// a no-op.
func (uow *UnitOfWork) Begin(_ context.Context) error {
	if uow.active {
		return nil
	}
	uow.active = true
	uow.stagedOrders = make(map[uuid.UUID]*order.Order)
	uow.stagedWallets = make(map[uuid.UUID]*wallet.Wallet)
	uow.stagedCourier = make(map[uuid.UUID]*courier.Courier)
	uow.lockedWallets = make(map[uuid.UUID]*sync.Mutex)
	return nil
}

// lockWallet takes the per-owner lock, unless this transaction already
// holds it. Held locks are released by Commit or Rollback.
func (uow *UnitOfWork) lockWallet(ownerID uuid.UUID) {
	if _, held := uow.lockedWallets[ownerID]; held {
		return
	}
	l := uow.store.walletLock(ownerID)
	l.Lock()
	uow.lockedWallets[ownerID] = l
}

// Commit applies the buffered writes atomically under the store lock.
func (uow *UnitOfWork) Commit(_ context.Context) error {
	if !uow.active {
		return ErrNoActiveTransaction
	}

	uow.store.mu.Lock()
	for id, o := range uow.stagedOrders {
		uow.store.orders[id] = o
	}
	for id, w := range uow.stagedWallets {
		uow.store.wallets[id] = w
	}
	for id, c := range uow.stagedCourier {
		uow.store.couriers[id] = c
	}
	uow.store.mu.Unlock()

	uow.finish()
	return nil
}

// Rollback discards the buffered writes.
func (uow *UnitOfWork) Rollback(_ context.Context) error {
	if !uow.active {
		return ErrNoActiveTransaction
	}

	uow.finish()
	return nil
}

func (uow *UnitOfWork) finish() {
	uow.active = false
	uow.stagedOrders = nil
	uow.stagedWallets = nil
	uow.stagedCourier = nil

	for _, l := range uow.lockedWallets {
		l.Unlock()
	}
	uow.lockedWallets = nil
}

// OrderRepository returns an order repository bound to this transaction.
func (uow *UnitOfWork) OrderRepository() ports.OrderRepository {
	return &OrderRepository{uow: uow}
}

// WalletRepository returns a wallet repository bound to this transaction.
func (uow *UnitOfWork) WalletRepository() ports.WalletRepository {
	return &WalletRepository{uow: uow}
}

// CourierRepository returns a courier repository bound to this transaction.
func (uow *UnitOfWork) CourierRepository() ports.CourierRepository {
	return &CourierRepository{uow: uow}
}
