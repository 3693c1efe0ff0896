package ports

import (
	"context"

	"quickbite/internal/core/domain/model/courier"
	"quickbite/internal/core/domain/model/kernel"
)

// CourierRepository defines the persistence contract for courier
// availability records.
type CourierRepository interface {
	// Add persists a new courier record.
	Add(ctx context.Context, aggregate *courier.Courier) error

	// Update persists changes to an existing courier record.
	Update(ctx context.Context, aggregate *courier.Courier) error

	// Get retrieves a courier record by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*courier.Courier, error)

	// GetAllDispatchable retrieves couriers visible to candidate searches:
	// online and verified. Radius filtering and ranking happen in the
	// dispatch planner; this only narrows the population.
	GetAllDispatchable(ctx context.Context) ([]*courier.Courier, error)
}
