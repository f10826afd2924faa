// Copyright (c) 2026 UILove. All rights reserved.

package sec

// # User Roles

// UserRole represents the authorization level granted to an account.
type UserRole string

const (
	// Unrestricted system access: full catalog curation
	RoleAdmin UserRole = "admin"

	// Can edit entries but not hard-delete them
	RoleCurator UserRole = "curator"

	// Default role for standard registered users
	RoleMember UserRole = "member"
)

// # Role Hierarchy

// AtLeast checks if the current role meets or exceeds the required target role.
func (r UserRole) AtLeast(target UserRole) bool {
	return r.level() >= target.level()
}

// level maps a role to a numeric hierarchy level for comparison logic.
func (r UserRole) level() int {

	// Linear scale (10-30) allows for future intermediate roles
	switch r {
	case RoleAdmin:
		return 30
	case RoleCurator:
		return 20
	case RoleMember:
		return 10
	default:
		return 0
	}
}
