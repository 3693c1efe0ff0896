// Package order implements the Order aggregate and its lifecycle state
// machine.
//
// An order moves forward only: pending -> accepted -> preparing ->
// looking_for_rider -> out_for_delivery -> delivered, with cancellation
// reachable from pending, accepted, or preparing. Transition side effects
// (delivery timestamp, wallet settlement, refund bookkeeping) are applied by
// the aggregate together with the status change, so no caller can observe a
// half-applied transition.
//
// The courier assignment invariant — courierID set exactly once per order —
// is enforced twice: here on the aggregate, and by the order store's
// conditional assignment that resolves concurrent acceptance races.
package order
