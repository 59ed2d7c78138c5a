// Copyright (c) 2026 ScholarHub. All rights reserved.

package stats_test

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scholarhub/api/internal/platform/sec"
	"github.com/scholarhub/api/internal/publication"
	"github.com/scholarhub/api/internal/stats"
	"github.com/scholarhub/api/internal/users"
)

type fakeUserSource struct {
	lastFilter users.Filter
	accounts   []*users.User
}

func (f *fakeUserSource) ListAll(_ context.Context, filter users.Filter) ([]*users.User, error) {
	f.lastFilter = filter
	return f.accounts, nil
}

type fakePublicationSource struct {
	lastFilter publication.Filter
	records    []*publication.Publication
}

func (f *fakePublicationSource) ListAll(_ context.Context, filter publication.Filter) ([]*publication.Publication, error) {
	f.lastFilter = filter
	return f.records, nil
}

func newTestService(userSource *fakeUserSource, publicationSource *fakePublicationSource) *stats.Service {
	return stats.NewService(userSource, publicationSource, testCatalog(), nil, 0, slog.Default())
}

/*
TestUserStatistics_CampusAdminScoping verifies that a campus admin's
dashboard only sees their own college with super admins excluded, no matter
what filter the request carried.
*/
func TestUserStatistics_CampusAdminScoping(t *testing.T) {
	userSource := &fakeUserSource{accounts: []*users.User{
		{Role: sec.RoleFaculty, College: "College of Business", IsActive: true},
		{Role: sec.RoleCampusAdmin, College: "College of Business", IsActive: true},
		{Role: sec.RoleFaculty, College: "College of Business", IsActive: false},
	}}
	service := newTestService(userSource, &fakePublicationSource{})

	campusAdmin := &sec.AuthClaims{
		UserID:  "admin-1",
		Role:    string(sec.RoleCampusAdmin),
		College: "College of Business",
	}

	envelope, err := service.UserStatistics(context.Background(), campusAdmin,
		users.Filter{College: "College of Engineering"})
	require.NoError(t, err)

	assert.Equal(t, "College of Business", userSource.lastFilter.College)
	assert.True(t, userSource.lastFilter.ExcludeSuperAdmins)

	assert.Equal(t, 3, envelope.TotalUsers)
	assert.Equal(t, 2, envelope.ActiveUsers)
	assert.Equal(t, stats.RoleStats{CampusAdmin: 1, Faculty: 2, Total: 3}, envelope.Roles)
}

/*
TestUserStatistics_EmptyDataset verifies that an empty account set produces
a fully-shaped envelope: every canonical axis present with zero counts, no
nil slices.
*/
func TestUserStatistics_EmptyDataset(t *testing.T) {
	service := newTestService(&fakeUserSource{}, &fakePublicationSource{})
	superAdmin := &sec.AuthClaims{UserID: "root", Role: string(sec.RoleSuperAdmin)}

	envelope, err := service.UserStatistics(context.Background(), superAdmin, users.Filter{})
	require.NoError(t, err)

	assert.Zero(t, envelope.TotalUsers)
	require.Len(t, envelope.CollegeDistribution, 3)
	assert.NotEmpty(t, envelope.InstituteDistribution)
	assert.NotEmpty(t, envelope.DepartmentDistribution)
	assert.Len(t, envelope.RolesByCollege, 3)
	assert.Len(t, envelope.Hierarchy, 2)
}

/*
TestPublicationStatistics verifies the research envelope: enum axes are
fully populated, the year axis is contiguous and ascending, and the cross
tabulation matches the data.
*/
func TestPublicationStatistics(t *testing.T) {
	publicationSource := &fakePublicationSource{records: []*publication.Publication{
		{College: "College of Business", QRating: publication.Q1, Type: publication.TypeScopus, Year: 2022},
		{College: "College of Business", QRating: publication.Q1, Type: publication.TypeSCI, Year: 2024},
		{College: "College of Engineering", QRating: publication.Q3, Type: publication.TypeScopus, Year: 2024},
	}}
	service := newTestService(&fakeUserSource{}, publicationSource)
	superAdmin := &sec.AuthClaims{UserID: "root", Role: string(sec.RoleSuperAdmin)}

	envelope, err := service.PublicationStatistics(context.Background(), superAdmin, publication.Filter{})
	require.NoError(t, err)

	assert.Equal(t, 3, envelope.TotalPublications)

	require.Len(t, envelope.QRatingDistribution, 4)
	assert.Equal(t, 2, envelope.QRatingDistribution[0].Count)
	assert.Equal(t, 66.7, envelope.QRatingDistribution[0].Percent)

	require.Len(t, envelope.YearDistribution, 3, "gap year 2023 renders as a zero bucket")
	assert.Equal(t, "2022", envelope.YearDistribution[0].Label)
	assert.Equal(t, 0, envelope.YearDistribution[1].Count)
	assert.Equal(t, 2, envelope.YearDistribution[2].Count)

	require.Len(t, envelope.QRatingByCollege, 3)
	assert.Equal(t, 1, envelope.QRatingByCollege[0].Counts["Q3"])
	assert.Equal(t, 2, envelope.QRatingByCollege[1].Counts["Q1"])
}

/*
TestPublicationStatistics_FilterPassthrough verifies that listing filters
reach the datastore query for scoped dashboard views.
*/
func TestPublicationStatistics_FilterPassthrough(t *testing.T) {
	publicationSource := &fakePublicationSource{}
	service := newTestService(&fakeUserSource{}, publicationSource)
	superAdmin := &sec.AuthClaims{UserID: "root", Role: string(sec.RoleSuperAdmin)}

	_, err := service.PublicationStatistics(context.Background(), superAdmin,
		publication.Filter{QRating: "Q2", Year: 2023})
	require.NoError(t, err)

	assert.Equal(t, "Q2", publicationSource.lastFilter.QRating)
	assert.Equal(t, 2023, publicationSource.lastFilter.Year)
}
