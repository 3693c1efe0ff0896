// Package kernel provides core domain primitives shared across the
// marketplace engine. It implements fundamental building blocks following
// Domain-Driven Design principles.
//
// The package includes:
//   - UUID: a value object for unique identifiers with validation and comparison
//   - GeoPoint: a validated latitude/longitude pair with haversine distance
//   - Money: an amount in minor currency units guarded against negatives
//
// All primitives are immutable and thread-safe. Invalid states are
// unrepresentable for properly constructed values; zero values fail
// validation so bypassed constructors are detected at the boundary.
package kernel
