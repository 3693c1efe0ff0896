// Package orderrepo provides data transfer objects and mapping functions for
// order persistence. It implements the repository pattern for the order
// aggregate, handling conversion between the domain model and the relational
// representation.
package orderrepo

import (
	"encoding/json"
	"time"

	"quickbite/internal/core/domain/model/kernel"
	"quickbite/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order
// aggregates. The basket is serialized to a jsonb column; status and
// payment fields are stored under their wire names so the rows stay
// readable in ad-hoc queries.
type OrderDTO struct {
	ID                 uuid.UUID  `gorm:"type:uuid;primaryKey"`
	CustomerID         uuid.UUID  `gorm:"type:uuid;index"`
	RestaurantID       uuid.UUID  `gorm:"type:uuid;index"`
	CourierID          *uuid.UUID `gorm:"type:uuid;index"`
	Items              []byte     `gorm:"type:jsonb"`
	TotalAmount        int64
	DeliveryLat        float64
	DeliveryLon        float64
	PaymentMethod      string `gorm:"type:varchar(16)"`
	PaymentStatus      string `gorm:"type:varchar(16)"`
	Status             string `gorm:"type:varchar(32);index"`
	CancellationReason string
	RefundIssued       bool
	Rating             *int
	ActualDeliveryTime *time.Time
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// TableName overrides GORM's default naming convention to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// itemDTO is the jsonb shape of one basket line.
type itemDTO struct {
	MenuItemID string `json:"menu_item_id"`
	Name       string `json:"name"`
	Quantity   int    `json:"quantity"`
	UnitPrice  int64  `json:"unit_price"`
}

func fromDomain(aggregate *order.Order) (OrderDTO, error) {
	var courierID *uuid.UUID
	if id := aggregate.Courier(); id != nil {
		raw := id.Bytes()
		courierID = &raw
	}

	items := make([]itemDTO, 0, len(aggregate.Items()))
	for _, item := range aggregate.Items() {
		items = append(items, itemDTO{
			MenuItemID: item.MenuItemID().String(),
			Name:       item.Name(),
			Quantity:   item.Quantity(),
			UnitPrice:  item.UnitPrice().Amount(),
		})
	}
	itemsJSON, err := json.Marshal(items)
	if err != nil {
		return OrderDTO{}, err
	}

	return OrderDTO{
		ID:                 aggregate.ID().Bytes(),
		CustomerID:         aggregate.CustomerID().Bytes(),
		RestaurantID:       aggregate.RestaurantID().Bytes(),
		CourierID:          courierID,
		Items:              itemsJSON,
		TotalAmount:        aggregate.TotalAmount().Amount(),
		DeliveryLat:        aggregate.DeliveryPoint().Latitude(),
		DeliveryLon:        aggregate.DeliveryPoint().Longitude(),
		PaymentMethod:      aggregate.PaymentMethod().String(),
		PaymentStatus:      aggregate.PaymentStatus().String(),
		Status:             aggregate.Status().String(),
		CancellationReason: aggregate.CancellationReason(),
		RefundIssued:       aggregate.RefundIssued(),
		Rating:             aggregate.Rating(),
		ActualDeliveryTime: aggregate.ActualDeliveryTime(),
		CreatedAt:          aggregate.CreatedAt(),
		UpdatedAt:          aggregate.UpdatedAt(),
	}, nil
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return nil, err
	}
	restaurantID, err := kernel.UUIDFromBytes(dto.RestaurantID[:])
	if err != nil {
		return nil, err
	}

	var courierID *kernel.UUID
	if dto.CourierID != nil {
		cID, courierErr := kernel.UUIDFromBytes((*dto.CourierID)[:])
		if courierErr != nil {
			return nil, courierErr
		}
		courierID = &cID
	}

	var rawItems []itemDTO
	if err = json.Unmarshal(dto.Items, &rawItems); err != nil {
		return nil, err
	}
	items := make([]order.LineItem, 0, len(rawItems))
	for _, raw := range rawItems {
		menuItemID, itemErr := kernel.UUIDFromString(raw.MenuItemID)
		if itemErr != nil {
			return nil, itemErr
		}
		unitPrice, itemErr := kernel.NewMoney(raw.UnitPrice)
		if itemErr != nil {
			return nil, itemErr
		}
		item, itemErr := order.NewLineItem(menuItemID, raw.Name, raw.Quantity, unitPrice)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	totalAmount, err := kernel.NewMoney(dto.TotalAmount)
	if err != nil {
		return nil, err
	}
	deliveryPoint, err := kernel.NewGeoPoint(dto.DeliveryLat, dto.DeliveryLon)
	if err != nil {
		return nil, err
	}
	paymentMethod, err := order.PaymentMethodFromString(dto.PaymentMethod)
	if err != nil {
		return nil, err
	}
	paymentStatus, err := order.PaymentStatusFromString(dto.PaymentStatus)
	if err != nil {
		return nil, err
	}
	status, err := order.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(
		id, customerID, restaurantID, courierID,
		items, totalAmount, deliveryPoint,
		paymentMethod, paymentStatus, status,
		dto.CancellationReason, dto.RefundIssued, dto.Rating,
		dto.ActualDeliveryTime, dto.CreatedAt, dto.UpdatedAt,
	)
}
