// Package restaurantrepo reads restaurant profiles from the merchant
// platform's table. The dispatch engine only consumes this data; the
// merchant platform owns writes.
package restaurantrepo

import (
	"context"
	"errors"

	"quickbite/internal/core/domain/model/kernel"
	"quickbite/internal/core/ports"
	"quickbite/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RestaurantDTO represents the restaurant profile row.
type RestaurantDTO struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name    string
	Address string
	Lat     float64
	Lon     float64
}

// TableName overrides GORM's default naming convention.
func (RestaurantDTO) TableName() string {
	return "restaurants"
}

// GormRestaurantDirectory implements ports.RestaurantDirectory using GORM.
type GormRestaurantDirectory struct {
	db *gorm.DB
}

// NewGormRestaurantDirectory creates a new GORM restaurant directory.
func NewGormRestaurantDirectory(db *gorm.DB) *GormRestaurantDirectory {
	return &GormRestaurantDirectory{db: db}
}

// Get retrieves a restaurant profile by ID.
func (d *GormRestaurantDirectory) Get(ctx context.Context, id kernel.UUID) (*ports.Restaurant, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto RestaurantDTO
	if err := d.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("restaurant", id.String())
		}
		return nil, err
	}

	restaurantID, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	pickup, err := kernel.NewGeoPoint(dto.Lat, dto.Lon)
	if err != nil {
		return nil, err
	}

	return &ports.Restaurant{
		ID:      restaurantID,
		Name:    dto.Name,
		Address: dto.Address,
		Pickup:  pickup,
	}, nil
}
