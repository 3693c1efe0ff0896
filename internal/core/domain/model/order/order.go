package order

import (
	"errors"
	"fmt"
	"time"

	"quickbite/internal/core/domain/model/kernel"
	"quickbite/internal/pkg/errs"
	"quickbite/internal/pkg/guard"
)

const (
	// RatingMin and RatingMax bound customer ratings.
	RatingMin = 1
	RatingMax = 5
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not
	// created through NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

	// ErrAlreadyAssigned is returned when assigning a courier to an order
	// that already has one. The courier field moves nil -> non-nil exactly
	// once per order; the losing side of an acceptance race sees this error.
	ErrAlreadyAssigned = errors.New("order is already assigned to a courier")

	// ErrRefundAlreadyIssued is returned when a refund is recorded twice for
	// the same order. Guarding this explicitly makes refund-on-cancel
	// idempotent under duplicate cancel requests.
	ErrRefundAlreadyIssued = errors.New("refund has already been issued for this order")

	// ErrOrderNotDelivered is returned when rating an order that has not
	// reached the delivered state.
	ErrOrderNotDelivered = errors.New("only delivered orders can be rated")
)

// Order is the aggregate root for a marketplace order. It owns the
// multi-party lifecycle: placed by a customer, accepted and prepared by a
// restaurant, offered to couriers, delivered or cancelled.
//
// Invariants:
//   - totalAmount, customerID, and restaurantID are immutable after creation
//   - courierID transitions nil -> non-nil exactly once
//   - status only moves forward through the Status transition table
//   - a wallet refund is recorded at most once
//
// All mutation goes through the transition methods below; there are no
// setters for lifecycle fields.
type Order struct {
	id           kernel.UUID
	customerID   kernel.UUID
	restaurantID kernel.UUID

	// courierID is nil until a courier wins the acceptance race.
	courierID *kernel.UUID

	items         []LineItem
	totalAmount   kernel.Money
	deliveryPoint kernel.GeoPoint

	paymentMethod PaymentMethod
	paymentStatus PaymentStatus

	status             Status
	cancellationReason string
	refundIssued       bool

	rating             *int
	actualDeliveryTime *time.Time

	createdAt time.Time
	updatedAt time.Time

	guard guard.ConstructorGuard
}

// NewOrder creates a new Order in Pending status.
//
// Parameters:
//   - id, customerID, restaurantID: valid UUIDs
//   - items: at least one validated line item
//   - totalAmount: positive, immutable afterwards
//   - deliveryPoint: validated destination coordinates
//   - paymentMethod: card, wallet, or cash
//
// Wallet payments are debited before the order is persisted, so callers
// creating a wallet-paid order mark the payment completed via
// MarkPaymentCompleted once the debit succeeded.
func NewOrder(
	id kernel.UUID,
	customerID kernel.UUID,
	restaurantID kernel.UUID,
	items []LineItem,
	totalAmount kernel.Money,
	deliveryPoint kernel.GeoPoint,
	paymentMethod PaymentMethod,
) (*Order, error) {
	now := time.Now().UTC()
	o := &Order{
		status:        Pending,
		paymentStatus: PaymentPending,
		createdAt:     now,
		updatedAt:     now,
		guard:         guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(id),
		o.setCustomerID(customerID),
		o.setRestaurantID(restaurantID),
		o.setItems(items),
		o.setTotalAmount(totalAmount),
		o.setDeliveryPoint(deliveryPoint),
		o.setPaymentMethod(paymentMethod),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// RestoreOrder reconstructs an Order aggregate from persistence. Unlike
// NewOrder it accepts the full persisted state, including the lifecycle
// fields, and re-validates the status/courier consistency rules.
func RestoreOrder(
	id kernel.UUID,
	customerID kernel.UUID,
	restaurantID kernel.UUID,
	courierID *kernel.UUID,
	items []LineItem,
	totalAmount kernel.Money,
	deliveryPoint kernel.GeoPoint,
	paymentMethod PaymentMethod,
	paymentStatus PaymentStatus,
	status Status,
	cancellationReason string,
	refundIssued bool,
	rating *int,
	actualDeliveryTime *time.Time,
	createdAt time.Time,
	updatedAt time.Time,
) (*Order, error) {
	o := &Order{
		cancellationReason: cancellationReason,
		refundIssued:       refundIssued,
		actualDeliveryTime: actualDeliveryTime,
		createdAt:          createdAt,
		updatedAt:          updatedAt,
		guard:              guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(id),
		o.setCustomerID(customerID),
		o.setRestaurantID(restaurantID),
		o.setItems(items),
		o.setTotalAmount(totalAmount),
		o.setDeliveryPoint(deliveryPoint),
		o.setPaymentMethod(paymentMethod),
		paymentStatus.Validate(),
		status.Validate(),
	); err != nil {
		return nil, err
	}

	o.paymentStatus = paymentStatus
	o.status = status

	if courierID != nil {
		if err := courierID.Validate(); err != nil {
			return nil, err
		}
		cid := *courierID
		o.courierID = &cid
	}

	if err := o.validateCourierConsistency(); err != nil {
		return nil, err
	}

	if rating != nil {
		if err := o.setRating(*rating); err != nil {
			return nil, err
		}
	}

	return o, nil
}

// validateCourierConsistency enforces that only orders at or past assignment
// carry a courier.
func (o *Order) validateCourierConsistency() error {
	hasCourier := o.courierID != nil
	pastAssignment := o.status == OutForDelivery || o.status == Delivered
	if hasCourier && !pastAssignment {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%s is not a valid status to have a courier", o.status))
	}
	if !hasCourier && pastAssignment {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%s is not a valid status to have no courier", o.status))
	}
	return nil
}

// Validate ensures the Order was constructed through NewOrder/RestoreOrder.
func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

// IsEqual compares two orders by identifier.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// CustomerID returns the ordering customer's identifier.
func (o *Order) CustomerID() kernel.UUID {
	return o.customerID
}

// RestaurantID returns the restaurant's identifier.
func (o *Order) RestaurantID() kernel.UUID {
	return o.restaurantID
}

// Courier returns the assigned courier's ID, or nil before assignment.
func (o *Order) Courier() *kernel.UUID {
	return o.courierID
}

// Items returns a copy of the order's line items.
func (o *Order) Items() []LineItem {
	out := make([]LineItem, len(o.items))
	copy(out, o.items)
	return out
}

// TotalAmount returns the immutable order total.
func (o *Order) TotalAmount() kernel.Money {
	return o.totalAmount
}

// DeliveryPoint returns the delivery destination.
func (o *Order) DeliveryPoint() kernel.GeoPoint {
	return o.deliveryPoint
}

// PaymentMethod returns how the order is paid.
func (o *Order) PaymentMethod() PaymentMethod {
	return o.paymentMethod
}

// PaymentStatus returns the settlement state of the payment.
func (o *Order) PaymentStatus() PaymentStatus {
	return o.paymentStatus
}

// Status returns the current lifecycle status.
func (o *Order) Status() Status {
	return o.status
}

// CancellationReason returns the recorded reason, empty unless cancelled.
func (o *Order) CancellationReason() string {
	return o.cancellationReason
}

// RefundIssued reports whether a wallet refund was recorded for this order.
func (o *Order) RefundIssued() bool {
	return o.refundIssued
}

// Rating returns the customer rating, or nil if not rated.
func (o *Order) Rating() *int {
	return o.rating
}

// ActualDeliveryTime returns when the order was delivered, nil beforehand.
func (o *Order) ActualDeliveryTime() *time.Time {
	return o.actualDeliveryTime
}

// CreatedAt returns the creation timestamp.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// UpdatedAt returns the last mutation timestamp.
func (o *Order) UpdatedAt() time.Time {
	return o.updatedAt
}

// MarkPaymentCompleted records a successful capture of the payment.
// For wallet orders this happens right after the synchronous debit.
func (o *Order) MarkPaymentCompleted() {
	o.paymentStatus = PaymentCompleted
	o.touch()
}

// MarkPaymentFailed records a failed capture.
func (o *Order) MarkPaymentFailed() {
	o.paymentStatus = PaymentFailed
	o.touch()
}

// Accept moves the order from Pending to Accepted (restaurant confirmed).
func (o *Order) Accept() error {
	return o.transition(Accepted)
}

// StartPreparing moves the order from Accepted to Preparing.
func (o *Order) StartPreparing() error {
	return o.transition(Preparing)
}

// StartRiderSearch moves the order from Preparing to LookingForRider,
// opening it up for dispatch rounds.
func (o *Order) StartRiderSearch() error {
	return o.transition(LookingForRider)
}

// Assign records the winning courier and moves the order to OutForDelivery.
//
// The nil -> non-nil courier transition happens exactly once: a second call
// fails with ErrAlreadyAssigned regardless of the courier. Concurrent
// acceptance races are resolved before this by the store's conditional
// assignment; this method enforces the same invariant on the aggregate.
func (o *Order) Assign(courierID kernel.UUID) error {
	if err := courierID.Validate(); err != nil {
		return err
	}
	if o.courierID != nil {
		return ErrAlreadyAssigned
	}

	newStatus, err := o.status.TransitionTo(OutForDelivery)
	if err != nil {
		return err
	}

	o.status = newStatus
	o.courierID = &courierID
	o.touch()
	return nil
}

// MarkDelivered completes the delivery. Sets the actual delivery time and,
// for wallet payments, settles the payment status (the wallet was already
// debited at creation).
func (o *Order) MarkDelivered() error {
	if err := o.transition(Delivered); err != nil {
		return err
	}

	now := time.Now().UTC()
	o.actualDeliveryTime = &now
	if o.paymentMethod == PaymentMethodWallet {
		o.paymentStatus = PaymentCompleted
	}
	return nil
}

// Cancel terminates the order with a reason. Only orders that have not yet
// entered the rider search can be cancelled (see the transition table).
// Whether a refund is due is decided by RefundDue; recording it happens via
// MarkRefundIssued so the credit is issued exactly once.
func (o *Order) Cancel(reason string) error {
	if reason == "" {
		return errs.NewValueIsRequiredError("cancellationReason")
	}
	if err := o.transition(Cancelled); err != nil {
		return err
	}
	o.cancellationReason = reason
	return nil
}

// RefundDue reports whether cancelling this order requires a wallet credit:
// wallet-paid, captured, and not refunded yet.
func (o *Order) RefundDue() bool {
	return o.paymentMethod == PaymentMethodWallet &&
		o.paymentStatus == PaymentCompleted &&
		!o.refundIssued
}

// MarkRefundIssued records that the wallet credit for this order was made.
// A second call fails with ErrRefundAlreadyIssued.
func (o *Order) MarkRefundIssued() error {
	if o.refundIssued {
		return ErrRefundAlreadyIssued
	}
	o.refundIssued = true
	o.paymentStatus = PaymentRefunded
	o.touch()
	return nil
}

// Rate records the customer rating for a delivered order.
func (o *Order) Rate(rating int) error {
	if o.status != Delivered {
		return ErrOrderNotDelivered
	}
	return o.setRating(rating)
}

// transition applies a lifecycle move through the status table and bumps
// updatedAt.
func (o *Order) transition(target Status) error {
	newStatus, err := o.status.TransitionTo(target)
	if err != nil {
		return err
	}
	o.status = newStatus
	o.touch()
	return nil
}

func (o *Order) touch() {
	o.updatedAt = time.Now().UTC()
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setCustomerID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("customerId", err)
	}
	o.customerID = id
	return nil
}

func (o *Order) setRestaurantID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("restaurantId", err)
	}
	o.restaurantID = id
	return nil
}

func (o *Order) setItems(items []LineItem) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("items")
	}
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
	}
	o.items = make([]LineItem, len(items))
	copy(o.items, items)
	return nil
}

func (o *Order) setTotalAmount(total kernel.Money) error {
	if !total.IsPositive() {
		return errs.NewValueIsInvalidErrorWithCause("totalAmount",
			fmt.Errorf("%d is not greater than 0", total.Amount()))
	}
	o.totalAmount = total
	return nil
}

func (o *Order) setDeliveryPoint(point kernel.GeoPoint) error {
	if err := point.Validate(); err != nil {
		return err
	}
	o.deliveryPoint = point
	return nil
}

func (o *Order) setPaymentMethod(method PaymentMethod) error {
	if err := method.Validate(); err != nil {
		return err
	}
	o.paymentMethod = method
	return nil
}

func (o *Order) setRating(rating int) error {
	if rating < RatingMin || rating > RatingMax {
		return errs.NewValueIsOutOfRangeError("rating", rating, RatingMin, RatingMax)
	}
	o.rating = &rating
	o.touch()
	return nil
}
