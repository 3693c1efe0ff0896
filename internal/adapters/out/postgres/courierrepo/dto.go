// Package courierrepo persists courier availability records.
package courierrepo

import (
	"quickbite/internal/core/domain/model/courier"
	"quickbite/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// CourierDTO represents the database structure for courier availability
// records. The online/verified pair is indexed because dispatch scans it on
// every round.
type CourierDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name       string
	Lat        float64
	Lon        float64
	IsOnline   bool `gorm:"index:idx_couriers_dispatchable"`
	IsVerified bool `gorm:"index:idx_couriers_dispatchable"`
}

// TableName overrides GORM's default naming convention to use "couriers".
func (CourierDTO) TableName() string {
	return "couriers"
}

func fromDomain(aggregate *courier.Courier) CourierDTO {
	return CourierDTO{
		ID:         aggregate.ID().Bytes(),
		Name:       aggregate.Name(),
		Lat:        aggregate.Location().Latitude(),
		Lon:        aggregate.Location().Longitude(),
		IsOnline:   aggregate.IsOnline(),
		IsVerified: aggregate.IsVerified(),
	}
}

func toDomain(dto CourierDTO) (*courier.Courier, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	location, err := kernel.NewGeoPoint(dto.Lat, dto.Lon)
	if err != nil {
		return nil, err
	}

	return courier.RestoreCourier(id, dto.Name, location, dto.IsOnline, dto.IsVerified)
}
