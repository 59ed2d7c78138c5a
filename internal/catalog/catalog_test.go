// Copyright (c) 2026 ScholarHub. All rights reserved.

package catalog_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scholarhub/api/internal/catalog"
)

func testCatalog() *catalog.Catalog {
	return catalog.New([]catalog.College{
		{
			Name:          "College of Engineering",
			HasInstitutes: true,
			Institutes: []catalog.Institute{
				{Name: "Institute of Computing", Departments: []string{"Software Engineering", "N/A"}},
				{Name: "Institute of Mechanics", Departments: []string{"Mechanical Engineering"}},
			},
		},
		{
			Name:          "College of Business",
			HasInstitutes: false,
			Departments:   []string{"Accounting", "Finance"},
		},
	})
}

/*
TestInstitutesFor verifies institute resolution for both hierarchy shapes
and for unknown colleges.
*/
func TestInstitutesFor(t *testing.T) {
	c := testCatalog()

	tests := []struct {
		name    string
		college string
		want    []string
	}{
		{
			"with_institutes",
			"College of Engineering",
			[]string{"Institute of Computing", "Institute of Mechanics", "N/A"},
		},
		{"without_institutes", "College of Business", []string{"N/A"}},
		{"unknown_college", "College of Magic", []string{"N/A"}},
		{"empty_college", "", []string{"N/A"}},
		{"case_insensitive", "college of engineering", []string{"Institute of Computing", "Institute of Mechanics", "N/A"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.InstitutesFor(tt.college))
		})
	}
}

/*
TestInstitutesFor_AlwaysContainsSentinel verifies that every college with
institutes still offers the "N/A" selection.
*/
func TestInstitutesFor_AlwaysContainsSentinel(t *testing.T) {
	c := catalog.Default()

	for _, college := range c.Colleges() {
		institutes := c.InstitutesFor(college.Name)
		assert.Contains(t, institutes, catalog.NotApplicable, "college %q", college.Name)

		if !college.HasInstitutes {
			assert.Equal(t, []string{catalog.NotApplicable}, institutes)
		}
	}
}

/*
TestDepartmentsFor verifies the resolution rules for every combination of
hierarchy shape and institute argument.
*/
func TestDepartmentsFor(t *testing.T) {
	c := testCatalog()

	tests := []struct {
		name      string
		college   string
		institute string
		want      []string
	}{
		{
			"flat_college_ignores_institute",
			"College of Business", "Institute of Computing",
			[]string{"Accounting", "Finance", "N/A"},
		},
		{
			"flat_college_empty_institute",
			"College of Business", "",
			[]string{"Accounting", "Finance", "N/A"},
		},
		{
			"institute_lookup",
			"College of Engineering", "Institute of Computing",
			[]string{"Software Engineering", "N/A"},
		},
		{
			"sentinel_appended_when_missing",
			"College of Engineering", "Institute of Mechanics",
			[]string{"Mechanical Engineering", "N/A"},
		},
		{"na_institute", "College of Engineering", "N/A", []string{"N/A"}},
		{"omitted_institute", "College of Engineering", "", []string{"N/A"}},
		{"unknown_institute", "College of Engineering", "Institute of Alchemy", []string{"N/A"}},
		{"unknown_college", "Nowhere", "Institute of Computing", []string{"N/A"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.DepartmentsFor(tt.college, tt.institute))
		})
	}
}

/*
TestIsValidDepartment verifies hierarchy membership checks used by the user
and publication write paths.
*/
func TestIsValidDepartment(t *testing.T) {
	c := testCatalog()

	assert.True(t, c.IsValidDepartment("College of Engineering", "Institute of Computing", "Software Engineering"))
	assert.True(t, c.IsValidDepartment("College of Engineering", "Institute of Computing", "software engineering"))
	assert.True(t, c.IsValidDepartment("College of Business", "", "Finance"))
	assert.True(t, c.IsValidDepartment("College of Engineering", "N/A", "N/A"))
	assert.True(t, c.IsValidDepartment("Unknown College", "", "N/A"))

	assert.False(t, c.IsValidDepartment("College of Engineering", "Institute of Computing", "Finance"))
	assert.False(t, c.IsValidDepartment("College of Business", "", "Software Engineering"))
	assert.False(t, c.IsValidDepartment("Unknown College", "", "Accounting"))
}

/*
TestCanonicalAxes verifies the label lists that drive chart distributions.
*/
func TestCanonicalAxes(t *testing.T) {
	c := testCatalog()

	assert.Equal(t, []string{"College of Engineering", "College of Business"}, c.CollegeNames())
	assert.Equal(t, []string{"College of Engineering", "College of Business", "N/A"}, c.CollegeLabels())
	assert.Equal(t, []string{"Institute of Computing", "Institute of Mechanics", "N/A"}, c.AllInstituteNames())

	departments := c.AllDepartmentNames()
	assert.Contains(t, departments, "Software Engineering")
	assert.Contains(t, departments, "Accounting")
	assert.Contains(t, departments, "N/A")

	// No duplicates across colleges/institutes.
	seen := map[string]int{}
	for _, d := range departments {
		seen[d]++
	}
	for d, n := range seen {
		assert.Equal(t, 1, n, "department %q duplicated", d)
	}
}

/*
TestDefaultCatalog_Shape pins the shipped catalog's canonical college axis:
four colleges plus the "N/A" bucket.
*/
func TestDefaultCatalog_Shape(t *testing.T) {
	c := catalog.Default()

	labels := c.CollegeLabels()
	require.Len(t, labels, 5)
	assert.Equal(t, catalog.NotApplicable, labels[4])

	for _, college := range c.Colleges() {
		if college.HasInstitutes {
			assert.NotEmpty(t, college.Institutes)
			assert.Empty(t, college.Departments)
			for _, institute := range college.Institutes {
				assert.Contains(t, institute.Departments, catalog.NotApplicable)
			}
		} else {
			assert.Empty(t, college.Institutes)
			assert.Contains(t, college.Departments, catalog.NotApplicable)
		}
	}
}
