// Package errs provides standardized error types for the marketplace application.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// Each error type follows the same shape:
//   - A sentinel error variable (e.g. ErrObjectNotFound) used with errors.Is
//   - A struct type carrying the offending parameter and an optional cause
//   - Constructor functions with and without cause
//   - Error() for formatting and Unwrap() returning the sentinel
//
// Domain-specific sentinels (invalid transitions, lost acceptance races, ...)
// live next to the code that raises them; this package only holds the kinds
// shared by every layer.
package errs
