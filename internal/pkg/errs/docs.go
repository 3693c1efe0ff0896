// Package errs provides standardized error types for the marketplace engine.
// It implements a consistent pattern for error creation, formatting, and
// unwrapping that is used throughout the application.
//
// Each error type follows the same shape:
//   - a sentinel error variable (e.g. ErrObjectNotFound) for errors.Is checks
//   - a struct type carrying the error details and an optional cause
//   - constructor functions with and without cause
//   - Error() for formatting and Unwrap() for classification
//
// The sentinels double as the engine's error taxonomy: validation failures
// unwrap to ErrValueIsInvalid/ErrValueIsRequired/ErrValueIsOutOfRange,
// missing aggregates to ErrObjectNotFound, and rejected lifecycle moves to
// ErrInvalidStateTransition. Transport adapters map these to status codes
// without inspecting message text.
package errs
