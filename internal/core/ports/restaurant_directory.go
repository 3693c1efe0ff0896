package ports

import (
	"context"

	"quickbite/internal/core/domain/model/kernel"
)

// Restaurant is a read model for a merchant profile. The directory is
// maintained by the merchant platform; the dispatch engine only needs the
// pickup location and display metadata.
type Restaurant struct {
	ID      kernel.UUID
	Name    string
	Address string
	Pickup  kernel.GeoPoint
}

// RestaurantDirectory resolves restaurant profiles referenced by orders.
type RestaurantDirectory interface {
	// Get retrieves a restaurant profile by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*Restaurant, error)
}
