// Copyright (c) 2026 ScholarHub. All rights reserved.

// Package pagination provides shared types and helpers for API list endpoints.
//
// # Overview
//
// It standardizes how page-based navigation and sorting are requested via
// query parameters and how the resulting metadata is delivered in the API
// response envelope.
//
// # Robustness
//
// Every resolver in this package is a total function over arbitrary query
// input: malformed, missing, or out-of-range values are replaced by safe
// defaults and never surface as an error. Silent correction beats hard
// failure for an admin-facing filter UI.
package pagination

import (
	"net/http"
	"net/url"

	"github.com/scholarhub/api/pkg/convert"
)

const (
	// DefaultLimit is the number of items per page if not specified.
	DefaultLimit = 15
	// MaxLimit is the upper bound for items per page to prevent system abuse.
	MaxLimit = 100
	// DefaultPage is the starting page (1-indexed).
	DefaultPage = 1
)

// Params holds the parsed page and limit from a request's query string.
type Params struct {
	Page  int
	Limit int
}

// Offset returns the SQL OFFSET value derived from [Page] and [Limit].
//
// The invariant Offset >= 0 always holds because [FromValues] never yields
// a page or limit below 1.
func (p Params) Offset() int {
	if p.Page <= 1 {
		return 0
	}
	return (p.Page - 1) * p.Limit
}

// Meta is the pagination metadata included in API list responses.
type Meta struct {
	Page        int  `json:"page"`
	Limit       int  `json:"limit"`
	Total       int  `json:"total"`
	TotalPages  int  `json:"total_pages"`
	HasNextPage bool `json:"has_next_page"`
	HasPrevPage bool `json:"has_prev_page"`
}

// NewMeta constructs pagination metadata for a response.
//
// TotalPages is ceil(total/limit). An empty result set yields zero pages
// and both navigation flags false, regardless of the requested page.
func NewMeta(page, limit, total int) Meta {
	meta := Meta{
		Page:  page,
		Limit: limit,
		Total: total,
	}

	if total <= 0 || limit <= 0 {
		return meta
	}

	meta.TotalPages = (total + limit - 1) / limit
	meta.HasNextPage = page < meta.TotalPages
	meta.HasPrevPage = page > 1

	return meta
}

// FromRequest parses "page" and "limit" query parameters from an HTTP request
// using the package-level defaults.
func FromRequest(r *http.Request) Params {
	return FromValues(r.URL.Query(), DefaultLimit, MaxLimit)
}

// FromValues parses "page" and "limit" from a raw query-parameter bag.
//
// # Clamping
//
// Non-numeric or sub-1 values are replaced by [DefaultPage] / defaultLimit.
// A limit above maxLimit is clamped down to maxLimit rather than rejected.
func FromValues(values url.Values, defaultLimit, maxLimit int) Params {
	page := parseIntParam(values, "page", DefaultPage)
	limit := parseIntParam(values, "limit", defaultLimit)

	if page < 1 {
		page = DefaultPage
	}

	if limit < 1 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	return Params{Page: page, Limit: limit}
}

// # Sorting

// Direction is the ordering direction of a [Sort] directive.
type Direction string

const (
	// Ascending sorts smallest-first. Selected only by sortorder=asc (exact match).
	Ascending Direction = "ASC"
	// Descending is the default ordering for every other sortorder value.
	Descending Direction = "DESC"
)

// Sort is a validated single-field ordering directive.
type Sort struct {
	Field     string
	Direction Direction
}

// OrderBy renders the directive as a SQL ORDER BY fragment.
//
// Safe by construction: Field can only ever be a member of the allow-list
// handed to [ResolveSort], never raw client input.
func (s Sort) OrderBy() string {
	return s.Field + " " + string(s.Direction)
}

// ResolveSort validates "sortby" and "sortorder" query parameters against a
// caller-supplied field allow-list.
//
// A field outside the allow-list silently falls back to defaultField.
// Direction is [Ascending] only when sortorder equals "asc" exactly; any
// other value (including absent) yields [Descending].
func ResolveSort(values url.Values, allowedFields []string, defaultField string) Sort {
	field := defaultField
	requested := values.Get("sortby")

	for _, allowed := range allowedFields {
		if requested == allowed {
			field = requested
			break
		}
	}

	direction := Descending
	if values.Get("sortorder") == "asc" {
		direction = Ascending
	}

	return Sort{Field: field, Direction: direction}
}

// parseIntParam parses a single integer query parameter with a fallback default.
func parseIntParam(values url.Values, key string, defaultVal int) int {
	return convert.ToIntD(values.Get(key), defaultVal)
}
