// Copyright (c) 2026 ScholarHub. All rights reserved.

package textutil_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/scholarhub/api/pkg/textutil"
)

/*
TestFold verifies case, whitespace, and diacritic normalization.
*/
func TestFold(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"lowercases", "College Of Engineering", "college of engineering"},
		{"trims", "  N/A  ", "n/a"},
		{"strips_diacritics", "Institut Génie Électrique", "institut genie electrique"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, textutil.Fold(tt.input))
		})
	}
}

/*
TestEqualFold verifies that comparisons ignore casing and diacritics.
*/
func TestEqualFold(t *testing.T) {
	assert.True(t, textutil.EqualFold("Instituto de Investigación", "instituto de investigacion"))
	assert.True(t, textutil.EqualFold(" N/A", "n/a "))
	assert.False(t, textutil.EqualFold("College of Business", "College of Engineering"))
}
