// Package actor models the authenticated caller: a user identity paired with
// one of the closed marketplace roles. Lifecycle managers receive the actor
// explicitly on every call; there is no ambient session lookup inside
// business logic.
package actor

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
)

// ErrActorIsNotConstructed is returned when an Actor was not created through
// the NewActor factory function.
var ErrActorIsNotConstructed = errors.New("Actor must be created via NewActor constructor")

// Actor is the caller identity resolved by the HTTP auth middleware and
// threaded through commands and queries.
type Actor struct {
	id   kernel.UUID
	role Role

	isConstructed bool
}

// NewActor creates a validated actor from an identity and a role.
func NewActor(id kernel.UUID, role Role) (Actor, error) {
	if err := id.Validate(); err != nil {
		return Actor{}, err
	}
	if err := role.Validate(); err != nil {
		return Actor{}, err
	}
	return Actor{id: id, role: role, isConstructed: true}, nil
}

// Validate ensures the actor was built via NewActor.
func (a Actor) Validate() error {
	if !a.isConstructed {
		return ErrActorIsNotConstructed
	}
	return nil
}

// ID returns the caller's user identifier.
func (a Actor) ID() kernel.UUID {
	return a.id
}

// Role returns the caller's role.
func (a Actor) Role() Role {
	return a.role
}

// IsAdmin reports whether the caller holds the ADMIN role.
func (a Actor) IsAdmin() bool {
	return a.role == RoleAdmin
}
