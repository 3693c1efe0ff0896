package queries

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"quickbite/internal/core/domain/model/kernel"
	"quickbite/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOrderQueryHandler reads one order row, including the serialized basket.
type GetOrderQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderQueryHandler creates a handler for single-order queries.
func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db}
}

// Handle executes the query.
// Returns errs.ErrObjectNotFound when the order does not exist.
func (h GetOrderQueryHandler) Handle(
	ctx context.Context,
	query GetOrderQuery,
) (GetOrderQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderQueryResponse{}, err
	}

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			customer_id,
			restaurant_id,
			courier_id,
			items,
			total_amount,
			delivery_lat,
			delivery_lon,
			payment_method,
			payment_status,
			status,
			cancellation_reason,
			refund_issued,
			rating,
			actual_delivery_time,
			created_at,
			updated_at
		FROM orders
		WHERE id = ?
	`, query.OrderID().Bytes()).Row()

	var (
		resp      GetOrderQueryResponse
		id        uuid.UUID
		customer  uuid.UUID
		rest      uuid.UUID
		courierID uuid.NullUUID
		itemsJSON []byte
		reason    sql.NullString
	)

	err := row.Scan(
		&id, &customer, &rest, &courierID, &itemsJSON,
		&resp.TotalAmount, &resp.DeliveryLat, &resp.DeliveryLon,
		&resp.PaymentMethod, &resp.PaymentStatus, &resp.Status,
		&reason, &resp.RefundIssued, &resp.Rating,
		&resp.ActualDeliveryTime, &resp.CreatedAt, &resp.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return GetOrderQueryResponse{}, errs.NewObjectNotFoundError("order", query.OrderID().String())
	}
	if err != nil {
		return GetOrderQueryResponse{}, err
	}

	if resp.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
		return GetOrderQueryResponse{}, err
	}
	if resp.CustomerID, err = kernel.UUIDFromBytes(customer[:]); err != nil {
		return GetOrderQueryResponse{}, err
	}
	if resp.RestaurantID, err = kernel.UUIDFromBytes(rest[:]); err != nil {
		return GetOrderQueryResponse{}, err
	}
	if courierID.Valid {
		cid, idErr := kernel.UUIDFromBytes(courierID.UUID[:])
		if idErr != nil {
			return GetOrderQueryResponse{}, idErr
		}
		resp.CourierID = &cid
	}
	if reason.Valid {
		resp.CancellationReason = reason.String
	}

	if err = json.Unmarshal(itemsJSON, &resp.Items); err != nil {
		return GetOrderQueryResponse{}, err
	}

	return resp, nil
}
