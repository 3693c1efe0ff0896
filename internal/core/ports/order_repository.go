// Package ports defines the contracts between the domain/application core
// and infrastructure adapters, enabling dependency inversion and
// testability.
package ports

import (
	"context"

	"quickbite/internal/core/domain/model/kernel"
	"quickbite/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// Add persists a new order aggregate.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// AssignCourier performs the atomic conditional assignment that
	// resolves the first-accept-wins race: it sets the order's courier and
	// moves it to out_for_delivery only if the order currently has no
	// courier and is in looking_for_rider. Implementations MUST express
	// this as a compare-and-swap at the store (a conditional UPDATE, a
	// mutation under the store lock), never as read-then-write.
	//
	// Returns order.ErrAlreadyAssigned when the order was already taken,
	// and errs.ErrObjectNotFound when the order does not exist.
	AssignCourier(ctx context.Context, orderID kernel.UUID, courierID kernel.UUID) error

	// GetAllInStatus retrieves all orders currently in the given status,
	// oldest first. Used by the dispatch sweep to find orders stuck in
	// looking_for_rider.
	GetAllInStatus(ctx context.Context, status order.Status) ([]*order.Order, error)
}
