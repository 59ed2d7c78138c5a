// Copyright (c) 2026 ScholarHub. All rights reserved.

/*
Package filterstate models the dashboard filter panel as a small state
machine.

Chart filters interact: picking a college narrows the institute choices,
picking an institute narrows the departments, and clicking an already-active
selection clears it. Encoding those rules as a pure reducer keeps every
transition deterministic and testable, and the [Controller] adds the
debounced, superseding fetch behavior the dashboards need.
*/
package filterstate

import (
	"net/url"

	"github.com/scholarhub/api/internal/catalog"
	"github.com/scholarhub/api/internal/platform/sec"
	"github.com/scholarhub/api/pkg/textutil"
)

// Key identifies one filter dimension on the dashboard.
type Key string

const (
	KeyRole       Key = "role"
	KeyCollege    Key = "college"
	KeyInstitute  Key = "institute"
	KeyDepartment Key = "department"
	KeySearch     Key = "search"
)

// All is the "no selection" value for every dimension except search, whose
// empty selection is the empty string.
const All = "all"

// State is one snapshot of the filter panel. The zero value is not valid;
// use [NewState].
type State struct {
	Role       string
	College    string
	Institute  string
	Department string
	Search     string

	// collegePinned locks the college dimension for campus admins.
	collegePinned bool
}

// NewState returns the initial filter state for a viewer. Campus admins
// start pinned to their own college and cannot move off it.
func NewState(viewer *sec.AuthClaims) State {
	state := State{
		Role:       All,
		College:    All,
		Institute:  All,
		Department: All,
	}

	if viewer != nil && sec.UserRole(viewer.Role) == sec.RoleCampusAdmin {
		state.College = viewer.College
		state.collegePinned = true
	}

	return state
}

// # Actions

// Action is a filter panel transition.
type Action interface{ isAction() }

// SetFilter selects a value on one dimension. Selecting the currently
// active value deselects it (back to the dimension's default).
type SetFilter struct {
	Key   Key
	Value string
}

// Reset returns every unpinned dimension to its default.
type Reset struct{}

func (SetFilter) isAction() {}
func (Reset) isAction()     {}

// # Reducer

/*
Reduce applies an action and returns the next state.

# Transition Rules

  - Selecting a college resets institute and department; selecting an
    institute resets department. The narrower dimensions can no longer be
    valid once their parent changes.
  - Selecting the value that is already active toggles the dimension back
    to its default ([All], or "" for search).
  - A pinned college ignores college selections and survives [Reset].
  - Unknown keys leave the state untouched.

Value matching ignores case, whitespace, and diacritics.
*/
func Reduce(state State, action Action) State {
	switch action := action.(type) {
	case Reset:
		next := NewState(nil)
		next.collegePinned = state.collegePinned
		if state.collegePinned {
			next.College = state.College
		}
		return next

	case SetFilter:
		return reduceSet(state, action)
	}

	return state
}

func reduceSet(state State, action SetFilter) State {
	toggle := func(current, value, fallback string) string {
		if textutil.EqualFold(current, value) {
			return fallback
		}
		return value
	}

	switch action.Key {
	case KeyRole:
		state.Role = toggle(state.Role, action.Value, All)

	case KeyCollege:
		if state.collegePinned {
			return state
		}
		state.College = toggle(state.College, action.Value, All)
		state.Institute = All
		state.Department = All

	case KeyInstitute:
		state.Institute = toggle(state.Institute, action.Value, All)
		state.Department = All

	case KeyDepartment:
		state.Department = toggle(state.Department, action.Value, All)

	case KeySearch:
		state.Search = toggle(state.Search, action.Value, "")
	}

	return state
}

// # Projections

// QueryValues encodes the state as listing/statistics query parameters,
// omitting dimensions with no active selection.
func (state State) QueryValues() url.Values {
	values := url.Values{}

	set := func(key, value string) {
		if value != "" && !textutil.EqualFold(value, All) {
			values.Set(key, value)
		}
	}

	set(string(KeyRole), state.Role)
	set(string(KeyCollege), state.College)
	set(string(KeyInstitute), state.Institute)
	set(string(KeyDepartment), state.Department)
	if state.Search != "" {
		values.Set(string(KeySearch), state.Search)
	}

	return values
}

// ShowInstituteChart reports whether the institute drill-down is meaningful
// for the current selection: with no college selected it always is, and
// with one selected it depends on that college having an institute level.
func (state State) ShowInstituteChart(cat *catalog.Catalog) bool {
	if textutil.EqualFold(state.College, All) {
		return true
	}
	return cat.HasInstitutes(state.College)
}

// IsActive reports whether the given value is the current selection on a
// dimension, for highlighting chart segments.
func (state State) IsActive(key Key, value string) bool {
	switch key {
	case KeyRole:
		return textutil.EqualFold(state.Role, value)
	case KeyCollege:
		return textutil.EqualFold(state.College, value)
	case KeyInstitute:
		return textutil.EqualFold(state.Institute, value)
	case KeyDepartment:
		return textutil.EqualFold(state.Department, value)
	case KeySearch:
		return state.Search == value
	}
	return false
}
