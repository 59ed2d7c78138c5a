// Copyright (c) 2026 ScholarHub. All rights reserved.

/*
Package stats computes the aggregate figures behind the portal dashboards.

# Architecture

The aggregation core is pure: it takes fully-hydrated record slices and a
catalog, and produces JSON-ready envelopes. All datastore access and caching
lives in the service layer, which keeps these functions trivially testable.

# Canonical Ordering

Every distribution is seeded from a canonical label axis (catalog order for
hierarchy labels, enum order for ratings and types) so charts render with a
stable shape even when a bucket is empty. Labels encountered in the data but
absent from the axis are appended in first-encountered order.
*/
package stats

import (
	"math"

	"github.com/scholarhub/api/internal/catalog"
	"github.com/scholarhub/api/internal/platform/sec"
	"github.com/scholarhub/api/pkg/textutil"
)

// # Distributions

// Entry is a single labeled bucket in a distribution.
type Entry struct {
	Label   string  `json:"label"`
	Count   int     `json:"count"`
	Percent float64 `json:"percent"`
}

// Distribution is an ordered list of labeled buckets.
type Distribution []Entry

// Percent returns part/total as a percentage rounded to one decimal place.
// A zero or negative total yields 0 rather than NaN.
func Percent(part, total int) float64 {
	if total <= 0 {
		return 0
	}
	return math.Round(float64(part)/float64(total)*1000) / 10
}

/*
DistributionBy buckets items by a string key over a canonical label axis.

Every canonical label appears in the result, in axis order, even with a zero
count. Keys outside the axis are appended as extra buckets in the order they
are first encountered. Empty keys fall into the "N/A" bucket; key matching
ignores case, whitespace, and diacritics. Percentages are computed against
the full item count.
*/
func DistributionBy[T any](items []T, key func(T) string, canonical []string) Distribution {
	result := make(Distribution, len(canonical))
	index := make(map[string]int, len(canonical))

	for i, label := range canonical {
		result[i] = Entry{Label: label}
		index[textutil.Fold(label)] = i
	}

	for _, item := range items {
		label := key(item)
		if label == "" {
			label = catalog.NotApplicable
		}

		folded := textutil.Fold(label)
		i, ok := index[folded]
		if !ok {
			i = len(result)
			index[folded] = i
			result = append(result, Entry{Label: label})
		}
		result[i].Count++
	}

	for i := range result {
		result[i].Percent = Percent(result[i].Count, len(items))
	}

	return result
}

// # Role Tallies

// RoleStats counts accounts per role.
type RoleStats struct {
	SuperAdmin  int `json:"super_admin"`
	CampusAdmin int `json:"campus_admin"`
	Faculty     int `json:"faculty"`
	Total       int `json:"total"`
}

// TallyRoles counts items per role. Unrecognized role values contribute to
// no bucket, including Total.
func TallyRoles[T any](items []T, role func(T) sec.UserRole) RoleStats {
	var tally RoleStats
	for _, item := range items {
		switch role(item) {
		case sec.RoleSuperAdmin:
			tally.SuperAdmin++
		case sec.RoleCampusAdmin:
			tally.CampusAdmin++
		case sec.RoleFaculty:
			tally.Faculty++
		default:
			continue
		}
		tally.Total++
	}
	return tally
}

// LocationRoles is a per-location role breakdown.
type LocationRoles struct {
	Label string    `json:"label"`
	Roles RoleStats `json:"roles"`
}

/*
RolesByLocation produces a role tally per location label, following the same
canonical-axis ordering rules as [DistributionBy]: every axis label appears
with a (possibly zero) tally, extra labels are appended first-encountered,
and empty location keys fall into the "N/A" bucket.
*/
func RolesByLocation[T any](items []T, location func(T) string, role func(T) sec.UserRole, canonical []string) []LocationRoles {
	result := make([]LocationRoles, len(canonical))
	index := make(map[string]int, len(canonical))

	for i, label := range canonical {
		result[i] = LocationRoles{Label: label}
		index[textutil.Fold(label)] = i
	}

	for _, item := range items {
		label := location(item)
		if label == "" {
			label = catalog.NotApplicable
		}

		folded := textutil.Fold(label)
		i, ok := index[folded]
		if !ok {
			i = len(result)
			index[folded] = i
			result = append(result, LocationRoles{Label: label})
		}

		switch role(item) {
		case sec.RoleSuperAdmin:
			result[i].Roles.SuperAdmin++
		case sec.RoleCampusAdmin:
			result[i].Roles.CampusAdmin++
		case sec.RoleFaculty:
			result[i].Roles.Faculty++
		default:
			continue
		}
		result[i].Roles.Total++
	}

	return result
}

// # Cross Tabulation

// CrossRow is one row of a two-axis tabulation. Counts is keyed by the
// canonical column labels and is always fully populated.
type CrossRow struct {
	Label  string         `json:"label"`
	Counts map[string]int `json:"counts"`
	Total  int            `json:"total"`
}

/*
CrossTab tabulates items over a row axis and a fixed column enumeration.

Rows follow the canonical-axis rules of [DistributionBy]. Columns are a
closed set: every row carries a zero-filled count per canonical column, and
items whose column key falls outside the set still count toward the row
total but land in no column.
*/
func CrossTab[T any](items []T, rowKey, colKey func(T) string, canonicalRows, canonicalCols []string) []CrossRow {
	colIndex := make(map[string]string, len(canonicalCols))
	for _, col := range canonicalCols {
		colIndex[textutil.Fold(col)] = col
	}

	newRow := func(label string) CrossRow {
		counts := make(map[string]int, len(canonicalCols))
		for _, col := range canonicalCols {
			counts[col] = 0
		}
		return CrossRow{Label: label, Counts: counts}
	}

	result := make([]CrossRow, len(canonicalRows))
	index := make(map[string]int, len(canonicalRows))
	for i, label := range canonicalRows {
		result[i] = newRow(label)
		index[textutil.Fold(label)] = i
	}

	for _, item := range items {
		label := rowKey(item)
		if label == "" {
			label = catalog.NotApplicable
		}

		folded := textutil.Fold(label)
		i, ok := index[folded]
		if !ok {
			i = len(result)
			index[folded] = i
			result = append(result, newRow(label))
		}

		result[i].Total++
		if col, ok := colIndex[textutil.Fold(colKey(item))]; ok {
			result[i].Counts[col]++
		}
	}

	return result
}

// # Hierarchy Tree

// DepartmentNode is a leaf of the hierarchy tree.
type DepartmentNode struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// InstituteNode groups department counts under one institute.
type InstituteNode struct {
	Name        string           `json:"name"`
	Count       int              `json:"count"`
	Departments []DepartmentNode `json:"departments"`
}

// CollegeNode is the root level of the hierarchy tree.
type CollegeNode struct {
	Name       string          `json:"name"`
	Count      int             `json:"count"`
	Institutes []InstituteNode `json:"institutes"`
}

/*
BuildHierarchyTree rolls item counts up the college → institute → department
hierarchy for drill-down charts.

The tree shape comes from the catalog, not the data: every configured
college appears, colleges with institutes list each institute plus an "N/A"
branch, and colleges without institutes get a single branch named after the
college itself holding the flat department list. A trailing "N/A" college
node collects items whose college is not in the catalog; it is included only
when non-empty. Unknown institute and department names degrade into the
enclosing "N/A" branch and leaf, so child sums always match parent counts.
*/
func BuildHierarchyTree[T any](cat *catalog.Catalog, items []T, place func(T) (college, institute, department string)) []CollegeNode {
	colleges := cat.Colleges()
	tree := make([]CollegeNode, 0, len(colleges)+1)

	for _, college := range colleges {
		node := CollegeNode{Name: college.Name}

		if college.HasInstitutes {
			for _, institute := range college.Institutes {
				node.Institutes = append(node.Institutes, newInstituteNode(institute.Name, institute.Departments))
			}
			node.Institutes = append(node.Institutes, newInstituteNode(catalog.NotApplicable, []string{catalog.NotApplicable}))
		} else {
			node.Institutes = []InstituteNode{newInstituteNode(college.Name, college.Departments)}
		}

		tree = append(tree, node)
	}

	fallback := CollegeNode{
		Name:       catalog.NotApplicable,
		Institutes: []InstituteNode{newInstituteNode(catalog.NotApplicable, []string{catalog.NotApplicable})},
	}

	for _, item := range items {
		college, institute, department := place(item)

		node := &fallback
		for i := range tree {
			if textutil.EqualFold(tree[i].Name, college) {
				node = &tree[i]
				break
			}
		}
		node.Count++

		// Flat colleges carry a single self-named branch.
		if len(node.Institutes) == 1 && textutil.EqualFold(node.Institutes[0].Name, node.Name) {
			institute = node.Name
		}

		branch := claimBranch(node, institute)
		branch.Count++
		claimLeaf(branch, department).Count++
	}

	if fallback.Count > 0 {
		tree = append(tree, fallback)
	}

	return tree
}

// claimBranch resolves an institute name to a branch of the college node,
// falling back to the node's "N/A" branch.
func claimBranch(node *CollegeNode, institute string) *InstituteNode {
	if institute == "" {
		institute = catalog.NotApplicable
	}
	for i := range node.Institutes {
		if textutil.EqualFold(node.Institutes[i].Name, institute) {
			return &node.Institutes[i]
		}
	}
	// Every node ends with an N/A branch by construction.
	return &node.Institutes[len(node.Institutes)-1]
}

// claimLeaf resolves a department name to a leaf of the branch, degrading
// empty and unknown names into the "N/A" leaf so leaf sums always match the
// branch count.
func claimLeaf(branch *InstituteNode, department string) *DepartmentNode {
	if department == "" {
		department = catalog.NotApplicable
	}
	for i := range branch.Departments {
		if textutil.EqualFold(branch.Departments[i].Name, department) {
			return &branch.Departments[i]
		}
	}
	for i := range branch.Departments {
		if textutil.EqualFold(branch.Departments[i].Name, catalog.NotApplicable) {
			return &branch.Departments[i]
		}
	}
	// Every department list carries the sentinel by construction.
	return &branch.Departments[len(branch.Departments)-1]
}

func newInstituteNode(name string, departments []string) InstituteNode {
	node := InstituteNode{Name: name, Departments: make([]DepartmentNode, len(departments))}
	for i, department := range departments {
		node.Departments[i] = DepartmentNode{Name: department}
	}
	return node
}
