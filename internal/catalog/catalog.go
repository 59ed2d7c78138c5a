// Copyright (c) 2026 ScholarHub. All rights reserved.

/*
Package catalog is the single source of truth for the college → institute →
department hierarchy.

# Architecture

The catalog is constructed once from static configuration and never mutated
afterwards, so it can be shared freely across goroutines without locking.
Changing the hierarchy means redeploying updated configuration, not a runtime
admin operation.

# Totality

Every lookup accepts arbitrary string input and resolves unknown names to the
"N/A" fallback node instead of failing. Callers never need to guard against
unrecognized colleges or institutes.
*/
package catalog

import (
	"github.com/scholarhub/api/pkg/textutil"
)

// NotApplicable is the sentinel for "unspecified / not applicable". It is a
// valid member of every department axis and of the institute axis for
// colleges that have institutes.
const NotApplicable = "N/A"

// Institute is a second-level unit nested under a college.
type Institute struct {
	// Name is unique within its parent college.
	Name string `json:"name"`
	// Departments always includes the [NotApplicable] sentinel.
	Departments []string `json:"departments"`
}

// College is a top-level organizational unit.
//
// Exactly one of Institutes or Departments is populated, depending on
// HasInstitutes. Some colleges skip the institute level entirely.
type College struct {
	Name          string      `json:"name"`
	HasInstitutes bool        `json:"has_institutes"`
	Institutes    []Institute `json:"institutes,omitempty"`
	Departments   []string    `json:"departments,omitempty"`
}

// Catalog indexes the college hierarchy for constant-time name lookups.
type Catalog struct {
	colleges []College
	byName   map[string]int
	fallback College
}

// New builds an immutable [Catalog] from static college configuration.
//
// Department lists are normalized to always contain the [NotApplicable]
// sentinel so that records with no department recorded have a valid bucket.
func New(colleges []College) *Catalog {
	indexed := make([]College, len(colleges))
	byName := make(map[string]int, len(colleges))

	for i, college := range colleges {
		normalized := college

		if college.HasInstitutes {
			normalized.Departments = nil
			normalized.Institutes = make([]Institute, len(college.Institutes))
			for j, institute := range college.Institutes {
				normalized.Institutes[j] = Institute{
					Name:        institute.Name,
					Departments: ensureSentinel(institute.Departments),
				}
			}
		} else {
			normalized.Institutes = nil
			normalized.Departments = ensureSentinel(college.Departments)
		}

		indexed[i] = normalized
		byName[textutil.Fold(college.Name)] = i
	}

	return &Catalog{
		colleges: indexed,
		byName:   byName,
		fallback: College{
			Name:        NotApplicable,
			Departments: []string{NotApplicable},
		},
	}
}

// # Canonical Axes

// CollegeNames returns the configured college names in catalog order.
func (c *Catalog) CollegeNames() []string {
	names := make([]string, len(c.colleges))
	for i, college := range c.colleges {
		names[i] = college.Name
	}
	return names
}

// CollegeLabels returns the canonical college axis for chart distributions:
// every configured college in catalog order plus the [NotApplicable] bucket.
func (c *Catalog) CollegeLabels() []string {
	return append(c.CollegeNames(), NotApplicable)
}

// AllInstituteNames returns the union of institute names across every college
// that has institutes, in catalog order, plus the [NotApplicable] sentinel.
func (c *Catalog) AllInstituteNames() []string {
	var names []string
	seen := map[string]bool{}

	for _, college := range c.colleges {
		for _, institute := range college.Institutes {
			key := textutil.Fold(institute.Name)
			if !seen[key] {
				seen[key] = true
				names = append(names, institute.Name)
			}
		}
	}

	return append(names, NotApplicable)
}

// AllDepartmentNames returns every department name reachable from any
// college/institute combination, in catalog order, deduplicated.
func (c *Catalog) AllDepartmentNames() []string {
	var names []string
	seen := map[string]bool{}

	add := func(departments []string) {
		for _, department := range departments {
			key := textutil.Fold(department)
			if !seen[key] {
				seen[key] = true
				names = append(names, department)
			}
		}
	}

	for _, college := range c.colleges {
		add(college.Departments)
		for _, institute := range college.Institutes {
			add(institute.Departments)
		}
	}

	return names
}

// # Scoped Lookups

// Colleges returns the configured colleges in catalog order.
//
// The returned slice is shared; callers must treat it as read-only.
func (c *Catalog) Colleges() []College {
	return c.colleges
}

// CollegeFor resolves a college by name, falling back to the
// [NotApplicable] node for unknown input. Lookup ignores case, surrounding
// whitespace, and diacritics.
func (c *Catalog) CollegeFor(name string) College {
	if i, ok := c.byName[textutil.Fold(name)]; ok {
		return c.colleges[i]
	}
	return c.fallback
}

// HasInstitutes reports whether the named college carries an institute level.
// Unknown colleges report false.
func (c *Catalog) HasInstitutes(college string) bool {
	return c.CollegeFor(college).HasInstitutes
}

// InstitutesFor returns the valid institute selections for a college.
//
// Colleges with institutes yield their institute names plus [NotApplicable];
// colleges without institutes (and unknown colleges) yield only the sentinel.
func (c *Catalog) InstitutesFor(college string) []string {
	node := c.CollegeFor(college)
	if !node.HasInstitutes {
		return []string{NotApplicable}
	}

	names := make([]string, 0, len(node.Institutes)+1)
	for _, institute := range node.Institutes {
		names = append(names, institute.Name)
	}
	return append(names, NotApplicable)
}

// DepartmentsFor returns the valid department selections for a
// college/institute pair.
//
// # Resolution Rules
//
//   - A college without institutes returns its flat department list and
//     ignores the institute argument entirely.
//   - A college with institutes returns the named institute's departments;
//     an empty or "N/A" institute (or an unknown institute name) yields
//     only the [NotApplicable] sentinel.
func (c *Catalog) DepartmentsFor(college, institute string) []string {
	node := c.CollegeFor(college)

	if !node.HasInstitutes {
		return node.Departments
	}

	if institute == "" || textutil.EqualFold(institute, NotApplicable) {
		return []string{NotApplicable}
	}

	for _, candidate := range node.Institutes {
		if textutil.EqualFold(candidate.Name, institute) {
			return candidate.Departments
		}
	}

	return []string{NotApplicable}
}

// IsValidDepartment reports whether the department is a valid member of the
// college/institute pair's department list.
func (c *Catalog) IsValidDepartment(college, institute, department string) bool {
	for _, candidate := range c.DepartmentsFor(college, institute) {
		if textutil.EqualFold(candidate, department) {
			return true
		}
	}
	return false
}

// ensureSentinel appends [NotApplicable] to a department list if absent.
func ensureSentinel(departments []string) []string {
	normalized := make([]string, 0, len(departments)+1)
	hasSentinel := false

	for _, department := range departments {
		if textutil.EqualFold(department, NotApplicable) {
			hasSentinel = true
		}
		normalized = append(normalized, department)
	}

	if !hasSentinel {
		normalized = append(normalized, NotApplicable)
	}

	return normalized
}
