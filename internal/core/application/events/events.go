package events

import "quickbite/internal/core/domain/model/kernel"

// Event types carried over the realtime bus and the lifecycle feed.
const (
	TypeOffer          = "offer"
	TypeOfferWithdrawn = "offer_withdrawn"
	TypeAssigned       = "assigned"
	TypeStatusChanged  = "status_changed"
	TypeCancelled      = "cancelled"
	TypeDelivered      = "delivered"
)

// OrderRoom names the room carrying events about a single order.
func OrderRoom(orderID kernel.UUID) string {
	return "order:" + orderID.String()
}

// CourierRoom names the room carrying events addressed to a single courier.
func CourierRoom(courierID kernel.UUID) string {
	return "courier:" + courierID.String()
}

// RestaurantRoom names the room carrying events addressed to a restaurant.
func RestaurantRoom(restaurantID kernel.UUID) string {
	return "restaurant:" + restaurantID.String()
}

// OfferPayload is sent to a courier room when the courier is selected as a
// delivery candidate. It carries everything a courier needs to judge the
// job: where to pick up, where to drop off, the order value, and the
// earning on offer.
type OfferPayload struct {
	OrderID          string  `json:"order_id"`
	RestaurantName   string  `json:"restaurant_name"`
	PickupAddress    string  `json:"pickup_address"`
	DeliveryLat      float64 `json:"delivery_lat"`
	DeliveryLon      float64 `json:"delivery_lon"`
	TotalAmount      int64   `json:"total_amount"`
	DistanceKm       float64 `json:"distance_km"`
	EstimatedEarning int64   `json:"estimated_earning"`
}

// OfferWithdrawnPayload is sent to the couriers whose outstanding offer is
// no longer valid, either because another courier accepted first or because
// the order was cancelled.
type OfferWithdrawnPayload struct {
	OrderID string `json:"order_id"`
	Reason  string `json:"reason"`
}

// AssignedPayload is sent to the order room once a courier wins the
// assignment race.
type AssignedPayload struct {
	OrderID     string `json:"order_id"`
	CourierID   string `json:"courier_id"`
	CourierName string `json:"courier_name"`
}

// StatusChangedPayload is sent to the order and restaurant rooms on every
// lifecycle transition.
type StatusChangedPayload struct {
	OrderID string `json:"order_id"`
	From    string `json:"from"`
	To      string `json:"to"`
}

// CancelledPayload is sent to the order and restaurant rooms when an order
// is cancelled.
type CancelledPayload struct {
	OrderID        string `json:"order_id"`
	Reason         string `json:"reason"`
	RefundIssued   bool   `json:"refund_issued"`
	RefundedAmount int64  `json:"refunded_amount,omitempty"`
}

// DeliveredPayload is sent to the order room when the courier completes the
// delivery.
type DeliveredPayload struct {
	OrderID     string `json:"order_id"`
	CourierID   string `json:"courier_id"`
	DeliveredAt string `json:"delivered_at"`
	Earning     int64  `json:"earning"`
}
