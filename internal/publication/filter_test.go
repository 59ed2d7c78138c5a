// Copyright (c) 2026 ScholarHub. All rights reserved.

package publication_test

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/scholarhub/api/internal/platform/sec"
	"github.com/scholarhub/api/internal/publication"
)

/*
TestFilterFromQuery_ValidValues verifies that recognized keys with valid
values are resolved into the filter.
*/
func TestFilterFromQuery_ValidValues(t *testing.T) {
	values := url.Values{
		"year":            {"2024"},
		"years":           {"2022,2023,nope"},
		"qrating":         {"Q2"},
		"publicationtype": {"scopus"},
		"subjectarea":     {"Computer Science"},
		"search":          {"  deep learning "},
		"college":         {"College of Engineering and Technology"},
	}

	filter := publication.FilterFromQuery(values)

	assert.Equal(t, 2024, filter.Year)
	assert.Equal(t, []int{2022, 2023}, filter.Years)
	assert.Equal(t, "Q2", filter.QRating)
	assert.Equal(t, "scopus", filter.Type)
	assert.Equal(t, "Computer Science", filter.SubjectArea)
	assert.Equal(t, "deep learning", filter.Search)
	assert.Equal(t, "College of Engineering and Technology", filter.College)
}

/*
TestFilterFromQuery_DropsInvalidValues verifies silent coercion: values that
fail to parse or fall outside an enum vanish instead of erroring.
*/
func TestFilterFromQuery_DropsInvalidValues(t *testing.T) {
	tests := []struct {
		name   string
		values url.Values
		check  func(t *testing.T, filter publication.Filter)
	}{
		{
			"unparseable_year",
			url.Values{"year": {"twenty24"}},
			func(t *testing.T, filter publication.Filter) { assert.Zero(t, filter.Year) },
		},
		{
			"bogus_qrating",
			url.Values{"qrating": {"Q5"}},
			func(t *testing.T, filter publication.Filter) { assert.Empty(t, filter.QRating) },
		},
		{
			"lowercase_qrating",
			url.Values{"qrating": {"q1"}},
			func(t *testing.T, filter publication.Filter) { assert.Empty(t, filter.QRating) },
		},
		{
			"bogus_type",
			url.Values{"publicationtype": {"arxiv"}},
			func(t *testing.T, filter publication.Filter) { assert.Empty(t, filter.Type) },
		},
		{
			"empty_bag",
			url.Values{},
			func(t *testing.T, filter publication.Filter) { assert.Equal(t, publication.Filter{}, filter) },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.check(t, publication.FilterFromQuery(tt.values))
		})
	}
}

/*
TestFilter_Scoped verifies that non-super viewers are pinned to their own
college no matter what the query string requested.
*/
func TestFilter_Scoped(t *testing.T) {
	campusAdmin := &sec.AuthClaims{
		UserID:  "admin-1",
		Role:    string(sec.RoleCampusAdmin),
		College: "College of Business Administration",
	}

	requested := publication.Filter{
		College: "College of Engineering and Technology",
		QRating: "Q1",
	}

	scoped := requested.Scoped(campusAdmin)

	assert.Equal(t, "College of Business Administration", scoped.College)
	assert.Equal(t, "Q1", scoped.QRating)
}

/*
TestFilter_Scoped_SuperAdminPassthrough verifies that super admins are not
restricted by scoping.
*/
func TestFilter_Scoped_SuperAdminPassthrough(t *testing.T) {
	superAdmin := &sec.AuthClaims{UserID: "root", Role: string(sec.RoleSuperAdmin)}

	requested := publication.Filter{College: "College of Engineering and Technology", Year: 2023}
	scoped := requested.Scoped(superAdmin)

	assert.Equal(t, requested, scoped)
}

/*
TestIsValidQRating and TestIsValidType pin the enum member sets.
*/
func TestIsValidQRating(t *testing.T) {
	for _, rating := range publication.AllQRatings {
		assert.True(t, publication.IsValidQRating(string(rating)))
	}
	assert.False(t, publication.IsValidQRating("Q0"))
	assert.False(t, publication.IsValidQRating(""))
}

func TestIsValidType(t *testing.T) {
	for _, pubType := range publication.AllTypes {
		assert.True(t, publication.IsValidType(string(pubType)))
	}
	assert.False(t, publication.IsValidType("WebOfScience"))
	assert.False(t, publication.IsValidType(""))
}
