package order

import (
	"fmt"

	"quickbite/internal/pkg/errs"
)

// PaymentMethod is how the customer pays for an order.
type PaymentMethod int

const (
	// PaymentMethodUnknown is the invalid zero value.
	PaymentMethodUnknown PaymentMethod = iota

	// PaymentMethodCard is card payment through the external gateway.
	PaymentMethodCard

	// PaymentMethodWallet is payment from the customer's in-app wallet.
	// The wallet is debited synchronously at order creation.
	PaymentMethodWallet

	// PaymentMethodCash is cash on delivery.
	PaymentMethodCash
)

func getPaymentMethodStrings() map[PaymentMethod]string {
	return map[PaymentMethod]string{
		PaymentMethodCard:   "card",
		PaymentMethodWallet: "wallet",
		PaymentMethodCash:   "cash",
	}
}

// Validate checks the method is one of card, wallet, or cash.
func (m PaymentMethod) Validate() error {
	if _, ok := getPaymentMethodStrings()[m]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("paymentMethod",
			fmt.Errorf("%d is not a valid payment method", m))
	}
	return nil
}

// String returns the wire name of the method.
func (m PaymentMethod) String() string {
	if str, ok := getPaymentMethodStrings()[m]; ok {
		return str
	}
	return "unknown"
}

// PaymentMethodFromString parses a wire name into a PaymentMethod.
func PaymentMethodFromString(raw string) (PaymentMethod, error) {
	for m, str := range getPaymentMethodStrings() {
		if str == raw {
			return m, nil
		}
	}
	return PaymentMethodUnknown, errs.NewValueIsInvalidErrorWithCause("paymentMethod",
		fmt.Errorf("%q is not a valid payment method", raw))
}

// PaymentStatus tracks the settlement state of an order's payment.
type PaymentStatus int

const (
	// PaymentStatusUnknown is the invalid zero value.
	PaymentStatusUnknown PaymentStatus = iota

	// PaymentPending means the payment has not settled yet (card in flight,
	// or cash not collected).
	PaymentPending

	// PaymentCompleted means the funds were captured.
	PaymentCompleted

	// PaymentFailed means capture failed.
	PaymentFailed

	// PaymentRefunded means a completed payment was returned to the customer.
	PaymentRefunded
)

func getPaymentStatusStrings() map[PaymentStatus]string {
	return map[PaymentStatus]string{
		PaymentPending:   "pending",
		PaymentCompleted: "completed",
		PaymentFailed:    "failed",
		PaymentRefunded:  "refunded",
	}
}

// Validate checks the payment status is a defined value.
func (s PaymentStatus) Validate() error {
	if _, ok := getPaymentStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("paymentStatus",
			fmt.Errorf("%d is not a valid payment status", s))
	}
	return nil
}

// String returns the wire name of the payment status.
func (s PaymentStatus) String() string {
	if str, ok := getPaymentStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// PaymentStatusFromString parses a wire name into a PaymentStatus.
func PaymentStatusFromString(raw string) (PaymentStatus, error) {
	for s, str := range getPaymentStatusStrings() {
		if str == raw {
			return s, nil
		}
	}
	return PaymentStatusUnknown, errs.NewValueIsInvalidErrorWithCause("paymentStatus",
		fmt.Errorf("%q is not a valid payment status", raw))
}
