// Copyright (c) 2026 ScholarHub. All rights reserved.

package filterstate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/scholarhub/api/internal/catalog"
	"github.com/scholarhub/api/internal/filterstate"
	"github.com/scholarhub/api/internal/platform/sec"
)

func testCatalog() *catalog.Catalog {
	return catalog.New([]catalog.College{
		{
			Name:          "College of Engineering",
			HasInstitutes: true,
			Institutes: []catalog.Institute{
				{Name: "Institute of Computing", Departments: []string{"Software"}},
			},
		},
		{
			Name:        "College of Business",
			Departments: []string{"Finance"},
		},
	})
}

/*
TestReduce_CascadeResets verifies that narrowing a parent dimension resets
its children: college clears institute and department, institute clears
department.
*/
func TestReduce_CascadeResets(t *testing.T) {
	state := filterstate.NewState(nil)

	state = filterstate.Reduce(state, filterstate.SetFilter{Key: filterstate.KeyCollege, Value: "College of Engineering"})
	state = filterstate.Reduce(state, filterstate.SetFilter{Key: filterstate.KeyInstitute, Value: "Institute of Computing"})
	state = filterstate.Reduce(state, filterstate.SetFilter{Key: filterstate.KeyDepartment, Value: "Software"})

	assert.Equal(t, "College of Engineering", state.College)
	assert.Equal(t, "Institute of Computing", state.Institute)
	assert.Equal(t, "Software", state.Department)

	state = filterstate.Reduce(state, filterstate.SetFilter{Key: filterstate.KeyInstitute, Value: "Institute of Mechanics"})
	assert.Equal(t, filterstate.All, state.Department, "changing institute resets department")

	state = filterstate.Reduce(state, filterstate.SetFilter{Key: filterstate.KeyCollege, Value: "College of Business"})
	assert.Equal(t, filterstate.All, state.Institute, "changing college resets institute")
	assert.Equal(t, filterstate.All, state.Department)
}

/*
TestReduce_ToggleDeselect verifies click-to-deselect: re-selecting the
active value returns the dimension to its default.
*/
func TestReduce_ToggleDeselect(t *testing.T) {
	state := filterstate.NewState(nil)

	state = filterstate.Reduce(state, filterstate.SetFilter{Key: filterstate.KeyRole, Value: "faculty"})
	assert.Equal(t, "faculty", state.Role)

	state = filterstate.Reduce(state, filterstate.SetFilter{Key: filterstate.KeyRole, Value: "FACULTY"})
	assert.Equal(t, filterstate.All, state.Role, "matching ignores case")

	state = filterstate.Reduce(state, filterstate.SetFilter{Key: filterstate.KeySearch, Value: "nguyen"})
	assert.Equal(t, "nguyen", state.Search)
	state = filterstate.Reduce(state, filterstate.SetFilter{Key: filterstate.KeySearch, Value: "nguyen"})
	assert.Empty(t, state.Search, "search toggles back to empty, not to \"all\"")
}

/*
TestReduce_CampusAdminPinning verifies that a campus admin's college is
locked: selections on the college dimension are ignored and Reset keeps it.
*/
func TestReduce_CampusAdminPinning(t *testing.T) {
	campusAdmin := &sec.AuthClaims{
		UserID:  "admin-1",
		Role:    string(sec.RoleCampusAdmin),
		College: "College of Business",
	}

	state := filterstate.NewState(campusAdmin)
	assert.Equal(t, "College of Business", state.College)

	state = filterstate.Reduce(state, filterstate.SetFilter{Key: filterstate.KeyCollege, Value: "College of Engineering"})
	assert.Equal(t, "College of Business", state.College, "pinned college ignores selections")

	state = filterstate.Reduce(state, filterstate.SetFilter{Key: filterstate.KeyInstitute, Value: "Institute of Computing"})
	state = filterstate.Reduce(state, filterstate.Reset{})
	assert.Equal(t, "College of Business", state.College, "pinned college survives reset")
	assert.Equal(t, filterstate.All, state.Institute)
}

/*
TestReduce_Reset verifies that Reset returns every dimension to its default
for unpinned viewers.
*/
func TestReduce_Reset(t *testing.T) {
	state := filterstate.NewState(nil)
	state = filterstate.Reduce(state, filterstate.SetFilter{Key: filterstate.KeyCollege, Value: "College of Engineering"})
	state = filterstate.Reduce(state, filterstate.SetFilter{Key: filterstate.KeySearch, Value: "deep learning"})

	state = filterstate.Reduce(state, filterstate.Reset{})

	assert.Equal(t, filterstate.NewState(nil), state)
}

/*
TestState_QueryValues verifies the query projection: "all" selections are
omitted, active ones are encoded.
*/
func TestState_QueryValues(t *testing.T) {
	state := filterstate.NewState(nil)
	values := state.QueryValues()
	assert.Empty(t, values, "default state encodes to no parameters")

	state = filterstate.Reduce(state, filterstate.SetFilter{Key: filterstate.KeyCollege, Value: "College of Business"})
	state = filterstate.Reduce(state, filterstate.SetFilter{Key: filterstate.KeySearch, Value: "nguyen"})

	values = state.QueryValues()
	assert.Equal(t, "College of Business", values.Get("college"))
	assert.Equal(t, "nguyen", values.Get("search"))
	assert.Empty(t, values.Get("institute"))
	assert.Empty(t, values.Get("role"))
}

/*
TestState_ShowInstituteChart verifies the drill-down visibility rule.
*/
func TestState_ShowInstituteChart(t *testing.T) {
	cat := testCatalog()
	state := filterstate.NewState(nil)

	assert.True(t, state.ShowInstituteChart(cat), "no college selected shows the chart")

	withInstitutes := filterstate.Reduce(state, filterstate.SetFilter{Key: filterstate.KeyCollege, Value: "College of Engineering"})
	assert.True(t, withInstitutes.ShowInstituteChart(cat))

	flat := filterstate.Reduce(state, filterstate.SetFilter{Key: filterstate.KeyCollege, Value: "College of Business"})
	assert.False(t, flat.ShowInstituteChart(cat), "flat colleges have no institute level")
}

/*
TestState_IsActive verifies the highlight helper.
*/
func TestState_IsActive(t *testing.T) {
	state := filterstate.Reduce(filterstate.NewState(nil),
		filterstate.SetFilter{Key: filterstate.KeyCollege, Value: "College of Business"})

	assert.True(t, state.IsActive(filterstate.KeyCollege, "college of business"))
	assert.False(t, state.IsActive(filterstate.KeyCollege, "College of Engineering"))
	assert.True(t, state.IsActive(filterstate.KeyInstitute, filterstate.All))
}
