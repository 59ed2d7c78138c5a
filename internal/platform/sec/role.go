// Copyright (c) 2026 ScholarHub. All rights reserved.

package sec

// # User Roles

// UserRole represents the authorization level granted to an account.
type UserRole string

const (
	// Unrestricted access across every college
	RoleSuperAdmin UserRole = "super_admin"

	// Manages users and reviews publications within their own college
	RoleCampusAdmin UserRole = "campus_admin"

	// Submits and maintains their own publication records
	RoleFaculty UserRole = "faculty"
)

// AllRoles lists every valid role in descending privilege order. It doubles
// as the canonical role axis for statistics distributions.
var AllRoles = []UserRole{RoleSuperAdmin, RoleCampusAdmin, RoleFaculty}

// IsValidRole reports whether the value is an exact member of the role enum.
func IsValidRole(value string) bool {
	switch UserRole(value) {
	case RoleSuperAdmin, RoleCampusAdmin, RoleFaculty:
		return true
	}
	return false
}

// # Role Hierarchy

// AtLeast checks if the current role meets or exceeds the required target role.
func (r UserRole) AtLeast(target UserRole) bool {
	return r.level() >= target.level()
}

// level maps a role to a numeric hierarchy level for comparison logic.
func (r UserRole) level() int {

	// Linear scale (10-30) allows for future intermediate roles
	switch r {
	case RoleSuperAdmin:
		return 30
	case RoleCampusAdmin:
		return 20
	case RoleFaculty:
		return 10
	default:
		return 0
	}
}
