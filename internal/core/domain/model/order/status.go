package order

import (
	"fmt"

	"quickbite/internal/pkg/errs"
)

// Status represents the lifecycle state of an order. It implements a state
// machine that only moves forward through the allowed transition table:
//
//	Pending ──> Accepted ──> Preparing ──> LookingForRider ──> OutForDelivery ──> Delivered
//	   │            │            │
//	   └────────────┴────────────┴──> Cancelled
//
// Delivered and Cancelled are terminal. Cancellation is only reachable
// before the rider search starts.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Pending is the initial status after the customer places the order.
	Pending

	// Accepted indicates the restaurant has accepted the order.
	Accepted

	// Preparing indicates the kitchen is preparing the order.
	Preparing

	// LookingForRider indicates the order is being offered to couriers.
	// An order may stay here indefinitely until a courier accepts.
	LookingForRider

	// OutForDelivery indicates a courier has been assigned and is delivering.
	OutForDelivery

	// Delivered indicates successful delivery. Terminal.
	Delivered

	// Cancelled indicates the order was cancelled before dispatch completed.
	// Terminal.
	Cancelled
)

// getStatusStrings returns wire/storage names for all statuses, including
// the invalid Unknown.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:         "unknown",
		Pending:         "pending",
		Accepted:        "accepted",
		Preparing:       "preparing",
		LookingForRider: "looking_for_rider",
		OutForDelivery:  "out_for_delivery",
		Delivered:       "delivered",
		Cancelled:       "cancelled",
	}
}

// getAllowedTransitions returns the full transition table. A transition is
// legal iff the target appears in the slice keyed by the current status.
func getAllowedTransitions() map[Status][]Status {
	return map[Status][]Status{
		Pending:         {Accepted, Cancelled},
		Accepted:        {Preparing, Cancelled},
		Preparing:       {LookingForRider, Cancelled},
		LookingForRider: {OutForDelivery},
		OutForDelivery:  {Delivered},
		Delivered:       {},
		Cancelled:       {},
	}
}

// Validate checks that the Status is one of the defined lifecycle states.
// Unknown and out-of-range values are invalid.
func (s Status) Validate() error {
	if _, ok := getAllowedTransitions()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the wire name of the status ("looking_for_rider" etc).
// Implements fmt.Stringer and is safe on any value.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// StatusFromString parses a wire name back into a Status.
func StatusFromString(raw string) (Status, error) {
	for s, str := range getStatusStrings() {
		if str == raw && s != Unknown {
			return s, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status",
		fmt.Errorf("%q is not a valid status", raw))
}

// IsTerminal reports whether the status admits no further transitions.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Cancelled
}

// CanTransitionTo reports whether the (s, target) pair is in the allowed
// transition table.
func (s Status) CanTransitionTo(target Status) bool {
	for _, allowed := range getAllowedTransitions()[s] {
		if allowed == target {
			return true
		}
	}
	return false
}

// TransitionTo validates and performs a lifecycle transition. Returns the
// target status on success, or an InvalidStateTransitionError naming the
// rejected pair so callers can surface it to clients.
func (s Status) TransitionTo(target Status) (Status, error) {
	if err := target.Validate(); err != nil {
		return Unknown, err
	}
	if !s.CanTransitionTo(target) {
		return Unknown, errs.NewInvalidStateTransitionError(s.String(), target.String())
	}
	return target, nil
}
