// Copyright (c) 2026 ScholarHub. All rights reserved.

/*
Package textutil provides Unicode-aware text normalization helpers.

Organizational unit names arrive from many sources (seed data, CSV imports,
query parameters) with inconsistent casing, stray whitespace, and diacritics.
Fold collapses those differences so that name lookups behave predictably.
*/
package textutil

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Fold normalizes a name for case- and diacritic-insensitive comparison.
//
// # Pipeline
//
//  1. Decompose to NFD so combining marks become separate runes.
//  2. Strip all nonspacing marks (the diacritics).
//  3. Recompose to NFC.
//  4. Trim surrounding whitespace and lowercase.
func Fold(value string) string {
	chain := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

	folded, _, err := transform.String(chain, value)
	if err != nil {
		// Normalization failure is not worth surfacing; compare the raw value.
		folded = value
	}

	return strings.ToLower(strings.TrimSpace(folded))
}

// EqualFold reports whether two names are equal under [Fold] normalization.
func EqualFold(a, b string) bool {
	return Fold(a) == Fold(b)
}
