// Package services provides domain services that orchestrate business
// operations across multiple aggregates.
//
// The package includes:
//   - DispatchPlanner: ranks eligible couriers around a pickup point for
//     an order's dispatch round
//   - OfferBoard: tracks outstanding offers so losing couriers can be
//     notified when an acceptance race resolves
//
// Domain services hold logic that does not belong to a single aggregate
// root, following Domain-Driven Design conventions.
package services
