package actor_test

import (
	"testing"

	"marketplace/internal/core/domain/model/actor"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoleFromString(t *testing.T) {
	cases := map[string]actor.Role{
		"ADMIN":  actor.RoleAdmin,
		"SELLER": actor.RoleSeller,
		"DRIVER": actor.RoleDriver,
		"BUYER":  actor.RoleBuyer,
	}

	for s, want := range cases {
		role, err := actor.RoleFromString(s)
		require.NoError(t, err)
		assert.Equal(t, want, role)
		assert.Equal(t, s, role.String())
	}

	t.Run("unrecognized string", func(t *testing.T) {
		_, err := actor.RoleFromString("SUPERUSER")
		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("case sensitive", func(t *testing.T) {
		_, err := actor.RoleFromString("admin")
		require.Error(t, err)
	})
}

func TestRole_Validate(t *testing.T) {
	require.NoError(t, actor.RoleAdmin.Validate())
	require.NoError(t, actor.RoleBuyer.Validate())
	require.Error(t, actor.RoleUnknown.Validate())
	require.Error(t, actor.Role(42).Validate())
	assert.Equal(t, "UNKNOWN", actor.Role(42).String())
}

func TestNewActor(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		id := kernel.NewUUID()

		a, err := actor.NewActor(id, actor.RoleDriver)

		require.NoError(t, err)
		require.NoError(t, a.Validate())
		assert.True(t, a.ID().IsEqual(id))
		assert.Equal(t, actor.RoleDriver, a.Role())
		assert.False(t, a.IsAdmin())
	})

	t.Run("admin flag", func(t *testing.T) {
		a, err := actor.NewActor(kernel.NewUUID(), actor.RoleAdmin)
		require.NoError(t, err)
		assert.True(t, a.IsAdmin())
	})

	t.Run("zero identity rejected", func(t *testing.T) {
		_, err := actor.NewActor(kernel.UUID{}, actor.RoleBuyer)
		require.Error(t, err)
	})

	t.Run("invalid role rejected", func(t *testing.T) {
		_, err := actor.NewActor(kernel.NewUUID(), actor.RoleUnknown)
		require.Error(t, err)
	})

	t.Run("zero value actor fails validation", func(t *testing.T) {
		var a actor.Actor
		assert.Equal(t, actor.ErrActorIsNotConstructed, a.Validate())
	})
}
