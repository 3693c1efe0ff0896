package inmemory

import (
	"context"
	"sync"

	"quickbite/internal/core/domain/model/kernel"
	"quickbite/internal/core/ports"
	"quickbite/internal/pkg/errs"

	"github.com/google/uuid"
)

// RestaurantDirectory implements ports.RestaurantDirectory on a seeded map.
// Profiles are immutable once seeded, so reads need no lock beyond the map
// guard.
type RestaurantDirectory struct {
	mu          sync.RWMutex
	restaurants map[uuid.UUID]ports.Restaurant
}

// NewRestaurantDirectory creates a directory seeded with the given
// profiles.
func NewRestaurantDirectory(seed ...ports.Restaurant) *RestaurantDirectory {
	d := &RestaurantDirectory{
		restaurants: make(map[uuid.UUID]ports.Restaurant, len(seed)),
	}
	for _, r := range seed {
		d.restaurants[r.ID.Bytes()] = r
	}
	return d
}

// Seed adds or replaces a restaurant profile.
func (d *RestaurantDirectory) Seed(r ports.Restaurant) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.restaurants[r.ID.Bytes()] = r
}

// Get retrieves a restaurant profile by ID.
func (d *RestaurantDirectory) Get(_ context.Context, id kernel.UUID) (*ports.Restaurant, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	r, ok := d.restaurants[id.Bytes()]
	if !ok {
		return nil, errs.NewObjectNotFoundError("restaurant", id.String())
	}

	return &r, nil
}
