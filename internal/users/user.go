// Copyright (c) 2026 ScholarHub. All rights reserved.

/*
Package users manages faculty and administrator accounts across the
college → institute → department hierarchy.

# Roles

  - super_admin: manages every account on the platform.
  - campus_admin: manages faculty within their own college only.
  - faculty: owns their profile and publication records.

Campus-admin visibility is enforced in the service layer: a campus admin can
never list, read, or modify accounts outside their college, and super_admin
accounts are invisible to them entirely.
*/
package users

import (
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/scholarhub/api/internal/platform/sec"
)

// User represents a registered member of the ScholarHub platform.
type User struct {
	ID         string       `json:"id"`
	FacultyID  string       `json:"faculty_id"`
	FullName   string       `json:"full_name"`
	Email      string       `json:"email"`
	Password   string       `json:"-"`
	Role       sec.UserRole `json:"role"`
	College    string       `json:"college"`
	Institute  string       `json:"institute"`
	Department string       `json:"department"`
	IsActive   bool         `json:"is_active"`
	CreatedAt  time.Time    `json:"created_at"`
	UpdatedAt  time.Time    `json:"updated_at"`
}

// # List Filtering

// AllowedSortFields is the sort allow-list for user listings. Anything else
// falls back to [DefaultSortField].
var AllowedSortFields = []string{"createdat", "fullname", "email", "facultyid", "role", "college"}

// DefaultSortField orders listings by newest account first.
const DefaultSortField = "createdat"

// Filter holds the validated listing criteria for user queries.
//
// A zero-value field means "no constraint". ExcludeSuperAdmins is never set
// from client input; the service layer raises it when scoping campus-admin
// requests.
type Filter struct {
	Role               string
	College            string
	Institute          string
	Department         string
	IsActive           *bool
	Search             string
	ExcludeSuperAdmins bool
}

// FilterFromQuery resolves the user-listing filter from an untrusted
// query-parameter bag.
//
// # Allow-List Semantics
//
// Only role, college, institute, department, isactive, and search are
// recognized. An invalid role enum value or unparseable isactive flag is
// dropped silently rather than rejected; free-text search is trimmed and
// empty searches are discarded. This never returns an error.
func FilterFromQuery(values url.Values) Filter {
	filter := Filter{
		College:    strings.TrimSpace(values.Get("college")),
		Institute:  strings.TrimSpace(values.Get("institute")),
		Department: strings.TrimSpace(values.Get("department")),
		Search:     strings.TrimSpace(values.Get("search")),
	}

	if role := values.Get("role"); sec.IsValidRole(role) {
		filter.Role = role
	}

	if raw := values.Get("isactive"); raw != "" {
		if isActive, err := strconv.ParseBool(raw); err == nil {
			filter.IsActive = &isActive
		}
	}

	return filter
}

// Scoped returns a copy of the filter restricted to the viewer's authority.
//
// Campus admins are pinned to their own college and never see super_admin
// accounts, regardless of what the request asked for. Super admins pass
// through unchanged.
func (f Filter) Scoped(viewer *sec.AuthClaims) Filter {
	if viewer == nil || sec.UserRole(viewer.Role) == sec.RoleSuperAdmin {
		return f
	}

	scoped := f
	scoped.College = viewer.College
	scoped.ExcludeSuperAdmins = true

	if scoped.Role == string(sec.RoleSuperAdmin) {
		scoped.Role = ""
	}

	return scoped
}
