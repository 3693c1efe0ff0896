package inmemory

import (
	"context"
	"sort"

	"quickbite/internal/core/domain/model/courier"
	"quickbite/internal/core/domain/model/kernel"
	"quickbite/internal/core/domain/model/order"
	"quickbite/internal/core/domain/model/wallet"
	"quickbite/internal/pkg/errs"
)

func orderNotFound(id kernel.UUID) error {
	return errs.NewObjectNotFoundError("order", id.String())
}

// OrderRepository implements ports.OrderRepository over the in-memory
// store. Add and Update stage snapshots that land on Commit.
type OrderRepository struct {
	uow *UnitOfWork
}

// Add stages a new order aggregate.
func (r *OrderRepository) Add(_ context.Context, aggregate *order.Order) error {
	snapshot, err := cloneOrder(aggregate)
	if err != nil {
		return err
	}

	r.uow.stagedOrders[aggregate.ID().Bytes()] = snapshot
	return nil
}

// Update stages changes to an existing order aggregate.
func (r *OrderRepository) Update(_ context.Context, aggregate *order.Order) error {
	key := aggregate.ID().Bytes()

	if _, staged := r.uow.stagedOrders[key]; !staged {
		r.uow.store.mu.Lock()
		_, exists := r.uow.store.orders[key]
		r.uow.store.mu.Unlock()
		if !exists {
			return orderNotFound(aggregate.ID())
		}
	}

	snapshot, err := cloneOrder(aggregate)
	if err != nil {
		return err
	}

	r.uow.stagedOrders[key] = snapshot
	return nil
}

// Get retrieves an order aggregate by ID. Writes staged in this
// transaction are visible; everything else comes from the committed state.
func (r *OrderRepository) Get(_ context.Context, id kernel.UUID) (*order.Order, error) {
	if staged, ok := r.uow.stagedOrders[id.Bytes()]; ok {
		return cloneOrder(staged)
	}

	r.uow.store.mu.Lock()
	o, ok := r.uow.store.orders[id.Bytes()]
	r.uow.store.mu.Unlock()
	if !ok {
		return nil, orderNotFound(id)
	}

	return cloneOrder(o)
}

// AssignCourier performs the first-accept-wins compare-and-swap. The
// mutation applies to the store immediately, not on Commit, matching how a
// conditional UPDATE becomes authoritative the moment the database accepts
// it.
func (r *OrderRepository) AssignCourier(_ context.Context, orderID kernel.UUID, courierID kernel.UUID) error {
	return r.uow.store.assignCourier(orderID, courierID)
}

// GetAllInStatus retrieves committed orders in the given status, oldest
// first.
func (r *OrderRepository) GetAllInStatus(_ context.Context, status order.Status) ([]*order.Order, error) {
	r.uow.store.mu.Lock()
	defer r.uow.store.mu.Unlock()

	var result []*order.Order
	for _, o := range r.uow.store.orders {
		if o.Status() != status {
			continue
		}
		clone, err := cloneOrder(o)
		if err != nil {
			return nil, err
		}
		result = append(result, clone)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt().Before(result[j].CreatedAt())
	})

	return result, nil
}

// WalletRepository implements ports.WalletRepository over the in-memory
// store. Get and Add take the owner's lock for the rest of the
// transaction, so concurrent operations on one wallet serialize while
// different owners proceed in parallel.
type WalletRepository struct {
	uow *UnitOfWork
}

// Add stages a new wallet aggregate under the owner's lock.
func (r *WalletRepository) Add(_ context.Context, aggregate *wallet.Wallet) error {
	r.uow.lockWallet(aggregate.OwnerID().Bytes())

	snapshot, err := cloneWallet(aggregate)
	if err != nil {
		return err
	}

	r.uow.stagedWallets[aggregate.OwnerID().Bytes()] = snapshot
	return nil
}

// Update stages the wallet's new balance and ledger.
func (r *WalletRepository) Update(_ context.Context, aggregate *wallet.Wallet) error {
	r.uow.lockWallet(aggregate.OwnerID().Bytes())

	snapshot, err := cloneWallet(aggregate)
	if err != nil {
		return err
	}

	r.uow.stagedWallets[aggregate.OwnerID().Bytes()] = snapshot
	return nil
}

// Get retrieves the wallet owned by ownerID, locking it for the rest of
// the transaction.
func (r *WalletRepository) Get(_ context.Context, ownerID kernel.UUID) (*wallet.Wallet, error) {
	r.uow.lockWallet(ownerID.Bytes())

	if staged, ok := r.uow.stagedWallets[ownerID.Bytes()]; ok {
		return cloneWallet(staged)
	}

	r.uow.store.mu.Lock()
	w, ok := r.uow.store.wallets[ownerID.Bytes()]
	r.uow.store.mu.Unlock()
	if !ok {
		return nil, errs.NewObjectNotFoundError("wallet", ownerID.String())
	}

	return cloneWallet(w)
}

// CourierRepository implements ports.CourierRepository over the in-memory
// store.
type CourierRepository struct {
	uow *UnitOfWork
}

// Add stages a new courier record.
func (r *CourierRepository) Add(_ context.Context, aggregate *courier.Courier) error {
	snapshot, err := cloneCourier(aggregate)
	if err != nil {
		return err
	}

	r.uow.stagedCourier[aggregate.ID().Bytes()] = snapshot
	return nil
}

// Update stages changes to an existing courier record.
func (r *CourierRepository) Update(_ context.Context, aggregate *courier.Courier) error {
	key := aggregate.ID().Bytes()

	if _, staged := r.uow.stagedCourier[key]; !staged {
		r.uow.store.mu.Lock()
		_, exists := r.uow.store.couriers[key]
		r.uow.store.mu.Unlock()
		if !exists {
			return errs.NewObjectNotFoundError("courier", aggregate.ID().String())
		}
	}

	snapshot, err := cloneCourier(aggregate)
	if err != nil {
		return err
	}

	r.uow.stagedCourier[key] = snapshot
	return nil
}

// Get retrieves a courier record by ID.
func (r *CourierRepository) Get(_ context.Context, id kernel.UUID) (*courier.Courier, error) {
	if staged, ok := r.uow.stagedCourier[id.Bytes()]; ok {
		return cloneCourier(staged)
	}

	r.uow.store.mu.Lock()
	c, ok := r.uow.store.couriers[id.Bytes()]
	r.uow.store.mu.Unlock()
	if !ok {
		return nil, errs.NewObjectNotFoundError("courier", id.String())
	}

	return cloneCourier(c)
}

// GetAllDispatchable retrieves couriers that are online and verified.
func (r *CourierRepository) GetAllDispatchable(_ context.Context) ([]*courier.Courier, error) {
	r.uow.store.mu.Lock()
	defer r.uow.store.mu.Unlock()

	var result []*courier.Courier
	for _, c := range r.uow.store.couriers {
		if !c.IsDispatchable() {
			continue
		}
		clone, err := cloneCourier(c)
		if err != nil {
			return nil, err
		}
		result = append(result, clone)
	}

	return result, nil
}
