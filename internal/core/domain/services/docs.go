// Package services contains stateless domain services that coordinate rules
// across aggregates. TransitionPolicy is the single permission table mapping
// (role, transition) to allowed/denied; route handlers and command handlers
// consult it instead of scattering role checks per endpoint.
package services
