package actor

import (
	"fmt"

	"marketplace/internal/pkg/errs"
)

// Role is the closed set of caller roles recognized by the marketplace.
// Permission decisions consult this enum through the transition policy
// instead of comparing ad-hoc role strings per route.
type Role int

const (
	// RoleUnknown represents an invalid or undefined role.
	RoleUnknown Role = iota

	// RoleAdmin may perform any order or delivery operation.
	RoleAdmin

	// RoleSeller may advance fulfillment of orders containing their items.
	RoleSeller

	// RoleDriver accepts deliveries and advances their status.
	RoleDriver

	// RoleBuyer places orders and reads their own.
	RoleBuyer
)

func getRoleStrings() map[Role]string {
	return map[Role]string{
		RoleUnknown: "UNKNOWN",
		RoleAdmin:   "ADMIN",
		RoleSeller:  "SELLER",
		RoleDriver:  "DRIVER",
		RoleBuyer:   "BUYER",
	}
}

func getValidRoleStrings() map[Role]string {
	//nolint:exhaustive // RoleUnknown is intentionally excluded as it's invalid
	return map[Role]string{
		RoleAdmin:  "ADMIN",
		RoleSeller: "SELLER",
		RoleDriver: "DRIVER",
		RoleBuyer:  "BUYER",
	}
}

// RoleFromString maps the wire representation (JWT "role" claim) to a Role.
// Returns an invalid-value error for anything outside the closed set.
func RoleFromString(s string) (Role, error) {
	for role, str := range getValidRoleStrings() {
		if str == s {
			return role, nil
		}
	}
	return RoleUnknown, errs.NewValueIsInvalidErrorWithCause(
		"role", fmt.Errorf("%q is not a recognized role", s))
}

// Validate checks that the role belongs to the closed set.
func (r Role) Validate() error {
	if _, ok := getValidRoleStrings()[r]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"role", fmt.Errorf("%d is not a valid role", r))
	}
	return nil
}

// String implements fmt.Stringer.
func (r Role) String() string {
	if str, ok := getRoleStrings()[r]; ok {
		return str
	}
	return "UNKNOWN"
}
