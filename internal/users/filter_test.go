// Copyright (c) 2026 ScholarHub. All rights reserved.

package users_test

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/scholarhub/api/internal/platform/sec"
	"github.com/scholarhub/api/internal/users"
	"github.com/scholarhub/api/pkg/pointer"
)

/*
TestFilterFromQuery_AllowList verifies that only recognized keys with valid
values survive filter resolution; everything else is dropped silently.
*/
func TestFilterFromQuery_AllowList(t *testing.T) {
	values := url.Values{
		"role":       {"faculty"},
		"college":    {"College of Engineering and Technology"},
		"institute":  {"Institute of Computer Science"},
		"department": {"Data Science"},
		"isactive":   {"true"},
		"search":     {"  nguyen  "},
		"password":   {"ignored-key"},
	}

	filter := users.FilterFromQuery(values)

	assert.Equal(t, "faculty", filter.Role)
	assert.Equal(t, "College of Engineering and Technology", filter.College)
	assert.Equal(t, "Institute of Computer Science", filter.Institute)
	assert.Equal(t, "Data Science", filter.Department)
	assert.Equal(t, pointer.To(true), filter.IsActive)
	assert.Equal(t, "nguyen", filter.Search)
	assert.False(t, filter.ExcludeSuperAdmins)
}

/*
TestFilterFromQuery_DropsInvalidValues verifies silent coercion: invalid enum
members and unparseable flags vanish instead of erroring.
*/
func TestFilterFromQuery_DropsInvalidValues(t *testing.T) {
	tests := []struct {
		name   string
		values url.Values
		check  func(t *testing.T, filter users.Filter)
	}{
		{
			"bogus_role",
			url.Values{"role": {"emperor"}},
			func(t *testing.T, filter users.Filter) { assert.Empty(t, filter.Role) },
		},
		{
			"bogus_isactive",
			url.Values{"isactive": {"maybe"}},
			func(t *testing.T, filter users.Filter) { assert.Nil(t, filter.IsActive) },
		},
		{
			"blank_search",
			url.Values{"search": {"   "}},
			func(t *testing.T, filter users.Filter) { assert.Empty(t, filter.Search) },
		},
		{
			"empty_bag",
			url.Values{},
			func(t *testing.T, filter users.Filter) { assert.Equal(t, users.Filter{}, filter) },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.check(t, users.FilterFromQuery(tt.values))
		})
	}
}

/*
TestFilter_Scoped verifies campus-admin scoping: the filter is pinned to the
viewer's college and super_admin records become invisible.
*/
func TestFilter_Scoped(t *testing.T) {
	campusAdmin := &sec.AuthClaims{
		UserID:  "admin-1",
		Role:    string(sec.RoleCampusAdmin),
		College: "College of Business Administration",
	}

	requested := users.Filter{
		College: "College of Engineering and Technology",
		Role:    string(sec.RoleSuperAdmin),
		Search:  "tran",
	}

	scoped := requested.Scoped(campusAdmin)

	assert.Equal(t, "College of Business Administration", scoped.College)
	assert.True(t, scoped.ExcludeSuperAdmins)
	assert.Empty(t, scoped.Role, "super_admin role filter must not survive scoping")
	assert.Equal(t, "tran", scoped.Search)
}

/*
TestFilter_Scoped_SuperAdminPassthrough verifies that super admins are not
restricted by scoping.
*/
func TestFilter_Scoped_SuperAdminPassthrough(t *testing.T) {
	superAdmin := &sec.AuthClaims{UserID: "root", Role: string(sec.RoleSuperAdmin)}

	requested := users.Filter{College: "College of Engineering and Technology", Role: "campus_admin"}
	scoped := requested.Scoped(superAdmin)

	assert.Equal(t, requested, scoped)
}
