// Copyright (c) 2026 ScholarHub. All rights reserved.

/*
Package publication defines the research-publication records at the heart of
the portal.

Faculty submit their own publication records; campus admins review and manage
the records of their college; super admins see everything. Every record
carries its hierarchy placement (college/institute/department) so the
analytics dashboards can aggregate without joins.
*/
package publication

import (
	"net/url"
	"strings"
	"time"

	"github.com/scholarhub/api/internal/platform/sec"
	"github.com/scholarhub/api/pkg/convert"
	"github.com/scholarhub/api/pkg/query"
)

// # Enumerations

// QRating is the four-tier publication quality classification, Q1 highest.
type QRating string

const (
	Q1 QRating = "Q1"
	Q2 QRating = "Q2"
	Q3 QRating = "Q3"
	Q4 QRating = "Q4"
)

// AllQRatings is the canonical Q-rating axis for statistics distributions.
var AllQRatings = []QRating{Q1, Q2, Q3, Q4}

// IsValidQRating reports whether the value is an exact member of the enum.
func IsValidQRating(value string) bool {
	switch QRating(value) {
	case Q1, Q2, Q3, Q4:
		return true
	}
	return false
}

// Type is the indexing service a publication is registered with.
type Type string

const (
	TypeScopus       Type = "scopus"
	TypeSCI          Type = "sci"
	TypeWebOfScience Type = "webOfScience"
)

// AllTypes is the canonical publication-type axis for statistics distributions.
var AllTypes = []Type{TypeScopus, TypeSCI, TypeWebOfScience}

// IsValidType reports whether the value is an exact member of the enum.
func IsValidType(value string) bool {
	switch Type(value) {
	case TypeScopus, TypeSCI, TypeWebOfScience:
		return true
	}
	return false
}

// # Entities

// Author is one contributor on a publication record.
type Author struct {
	Name        string `json:"name"`
	Affiliation string `json:"affiliation,omitempty"`
	IsPrimary   bool   `json:"is_primary,omitempty"`
}

// Publication is a single research-publication record.
type Publication struct {
	ID              string    `json:"id"`
	OwnerID         string    `json:"owner_id"`
	Title           string    `json:"title"`
	Journal         string    `json:"journal"`
	Authors         []Author  `json:"authors"`
	Year            int       `json:"year"`
	QRating         QRating   `json:"q_rating"`
	Type            Type      `json:"type"`
	SubjectArea     string    `json:"subject_area"`
	SubjectCategory string    `json:"subject_category"`
	College         string    `json:"college"`
	Institute       string    `json:"institute"`
	Department      string    `json:"department"`
	DOI             *string   `json:"doi"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// # List Filtering

// AllowedSortFields is the sort allow-list for publication listings.
var AllowedSortFields = []string{"createdat", "title", "journal", "year", "qrating"}

// DefaultSortField orders listings by newest record first.
const DefaultSortField = "createdat"

// Filter holds the validated listing criteria for publication queries.
//
// A zero-value field means "no constraint". The hierarchy fields serve the
// dashboard's cascading filters and the service layer's campus scoping.
type Filter struct {
	Year        int
	Years       []int
	QRating     string
	Type        string
	SubjectArea string
	Search      string
	College     string
	Institute   string
	Department  string
	OwnerID     string
}

// FilterFromQuery resolves the publication-listing filter from an untrusted
// query-parameter bag.
//
// # Allow-List Semantics
//
// Recognized keys: year, years (comma-separated), qrating, publicationtype,
// subjectarea, search, plus the cascading hierarchy keys college, institute,
// and department. Numeric values that fail to parse and enum values outside
// their member set are dropped silently. This never returns an error.
func FilterFromQuery(values url.Values) Filter {
	filter := Filter{
		SubjectArea: strings.TrimSpace(values.Get("subjectarea")),
		Search:      strings.TrimSpace(values.Get("search")),
		College:     strings.TrimSpace(values.Get("college")),
		Institute:   strings.TrimSpace(values.Get("institute")),
		Department:  strings.TrimSpace(values.Get("department")),
	}

	filter.Year = convert.ToInt(values.Get("year"))

	filter.Years = query.IntSlice(query.StringSlice(values.Get("years")))

	if rating := values.Get("qrating"); IsValidQRating(rating) {
		filter.QRating = rating
	}

	if pubType := values.Get("publicationtype"); IsValidType(pubType) {
		filter.Type = pubType
	}

	return filter
}

// Scoped returns a copy of the filter constrained to the viewer's authority.
//
// Super admins pass through untouched. Everyone else is pinned to their own
// college regardless of what the query string asked for.
func (filter Filter) Scoped(viewer *sec.AuthClaims) Filter {
	if viewer == nil || sec.UserRole(viewer.Role) == sec.RoleSuperAdmin {
		return filter
	}

	filter.College = viewer.College
	return filter
}
