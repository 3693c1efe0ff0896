// Package inmemory implements the persistence ports on plain maps for
// local runs and concurrency tests. The store gives the same guarantees
// the postgres adapters get from the database: assignment is a
// compare-and-swap under the store lock, and wallets serialize per owner.
package inmemory

import (
	"sync"

	"quickbite/internal/core/domain/model/courier"
	"quickbite/internal/core/domain/model/kernel"
	"quickbite/internal/core/domain/model/order"
	"quickbite/internal/core/domain/model/wallet"

	"github.com/google/uuid"
)

// Store is the shared in-memory state behind every unit of work. Aggregates
// are stored canonically; reads hand out clones so uncommitted mutations
// never leak between transactions.
type Store struct {
	mu       sync.Mutex
	orders   map[uuid.UUID]*order.Order
	wallets  map[uuid.UUID]*wallet.Wallet
	couriers map[uuid.UUID]*courier.Courier

	lockMu      sync.Mutex
	walletLocks map[uuid.UUID]*sync.Mutex
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		orders:      make(map[uuid.UUID]*order.Order),
		wallets:     make(map[uuid.UUID]*wallet.Wallet),
		couriers:    make(map[uuid.UUID]*courier.Courier),
		walletLocks: make(map[uuid.UUID]*sync.Mutex),
	}
}

// walletLock returns the per-owner mutex, creating it on first use.
func (s *Store) walletLock(ownerID uuid.UUID) *sync.Mutex {
	s.lockMu.Lock()
	defer s.lockMu.Unlock()

	l, ok := s.walletLocks[ownerID]
	if !ok {
		l = &sync.Mutex{}
		s.walletLocks[ownerID] = l
	}
	return l
}

// assignCourier is the in-memory counterpart of the conditional UPDATE: the
// check and the swap happen under one lock acquisition, so of any number of
// concurrent calls exactly one succeeds. The mutation is applied
// immediately, mirroring how the row version becomes authoritative the
// moment the database accepts the statement.
func (s *Store) assignCourier(orderID kernel.UUID, courierID kernel.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	o, ok := s.orders[orderID.Bytes()]
	if !ok {
		return orderNotFound(orderID)
	}
	if o.Courier() != nil || o.Status() != order.LookingForRider {
		return order.ErrAlreadyAssigned
	}

	assigned, err := cloneOrder(o)
	if err != nil {
		return err
	}
	if err = assigned.Assign(courierID); err != nil {
		return err
	}

	s.orders[orderID.Bytes()] = assigned
	return nil
}

func cloneOrder(o *order.Order) (*order.Order, error) {
	return order.RestoreOrder(
		o.ID(), o.CustomerID(), o.RestaurantID(), o.Courier(),
		o.Items(), o.TotalAmount(), o.DeliveryPoint(),
		o.PaymentMethod(), o.PaymentStatus(), o.Status(),
		o.CancellationReason(), o.RefundIssued(), o.Rating(),
		o.ActualDeliveryTime(), o.CreatedAt(), o.UpdatedAt(),
	)
}

func cloneWallet(w *wallet.Wallet) (*wallet.Wallet, error) {
	return wallet.RestoreWallet(w.OwnerID(), w.Balance(), w.Transactions())
}

func cloneCourier(c *courier.Courier) (*courier.Courier, error) {
	return courier.RestoreCourier(c.ID(), c.Name(), c.Location(), c.IsOnline(), c.IsVerified())
}
