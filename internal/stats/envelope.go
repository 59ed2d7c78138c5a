// Copyright (c) 2026 ScholarHub. All rights reserved.

package stats

import (
	"strconv"

	"github.com/scholarhub/api/internal/catalog"
	"github.com/scholarhub/api/internal/platform/sec"
	"github.com/scholarhub/api/internal/publication"
	"github.com/scholarhub/api/internal/users"
	"github.com/scholarhub/api/pkg/slice"
)

// # Dashboard Envelopes

// UserStatistics is the JSON envelope behind the account dashboard.
type UserStatistics struct {
	TotalUsers  int       `json:"total_users"`
	ActiveUsers int       `json:"active_users"`
	Roles       RoleStats `json:"roles"`

	CollegeDistribution    Distribution `json:"college_distribution"`
	InstituteDistribution  Distribution `json:"institute_distribution"`
	DepartmentDistribution Distribution `json:"department_distribution"`

	RolesByCollege    []LocationRoles `json:"roles_by_college"`
	RolesByInstitute  []LocationRoles `json:"roles_by_institute"`
	RolesByDepartment []LocationRoles `json:"roles_by_department"`

	Hierarchy []CollegeNode `json:"hierarchy"`
}

// PublicationStatistics is the JSON envelope behind the research dashboard.
type PublicationStatistics struct {
	TotalPublications int `json:"total_publications"`

	QRatingDistribution Distribution `json:"q_rating_distribution"`
	TypeDistribution    Distribution `json:"type_distribution"`
	YearDistribution    Distribution `json:"year_distribution"`

	CollegeDistribution    Distribution `json:"college_distribution"`
	InstituteDistribution  Distribution `json:"institute_distribution"`
	DepartmentDistribution Distribution `json:"department_distribution"`

	QRatingByCollege []CrossRow `json:"q_rating_by_college"`
	TypeByCollege    []CrossRow `json:"type_by_college"`

	Hierarchy []CollegeNode `json:"hierarchy"`
}

// # Envelope Builders

/*
BuildUserStatistics aggregates an account slice into the dashboard envelope.

The input is assumed to be pre-scoped to the viewer's authority; this
function never filters.
*/
func BuildUserStatistics(cat *catalog.Catalog, accounts []*users.User) UserStatistics {
	envelope := UserStatistics{
		TotalUsers: len(accounts),
		Roles:      TallyRoles(accounts, func(u *users.User) sec.UserRole { return u.Role }),
	}

	for _, account := range accounts {
		if account.IsActive {
			envelope.ActiveUsers++
		}
	}

	college := func(u *users.User) string { return u.College }
	institute := func(u *users.User) string { return u.Institute }
	department := func(u *users.User) string { return u.Department }
	role := func(u *users.User) sec.UserRole { return u.Role }

	envelope.CollegeDistribution = DistributionBy(accounts, college, cat.CollegeLabels())
	envelope.InstituteDistribution = DistributionBy(accounts, institute, cat.AllInstituteNames())
	envelope.DepartmentDistribution = DistributionBy(accounts, department, cat.AllDepartmentNames())

	envelope.RolesByCollege = RolesByLocation(accounts, college, role, cat.CollegeLabels())
	envelope.RolesByInstitute = RolesByLocation(accounts, institute, role, cat.AllInstituteNames())
	envelope.RolesByDepartment = RolesByLocation(accounts, department, role, cat.AllDepartmentNames())

	envelope.Hierarchy = BuildHierarchyTree(cat, accounts, func(u *users.User) (string, string, string) {
		return u.College, u.Institute, u.Department
	})

	return envelope
}

/*
BuildPublicationStatistics aggregates a publication slice into the dashboard
envelope. Year buckets are data-driven (ascending), everything else follows
a canonical axis.
*/
func BuildPublicationStatistics(cat *catalog.Catalog, records []*publication.Publication) PublicationStatistics {
	envelope := PublicationStatistics{
		TotalPublications: len(records),
	}

	college := func(p *publication.Publication) string { return p.College }

	envelope.QRatingDistribution = DistributionBy(records,
		func(p *publication.Publication) string { return string(p.QRating) }, qRatingLabels())
	envelope.TypeDistribution = DistributionBy(records,
		func(p *publication.Publication) string { return string(p.Type) }, typeLabels())
	envelope.YearDistribution = DistributionBy(records,
		func(p *publication.Publication) string { return yearLabel(p.Year) }, yearAxis(records))

	envelope.CollegeDistribution = DistributionBy(records, college, cat.CollegeLabels())
	envelope.InstituteDistribution = DistributionBy(records,
		func(p *publication.Publication) string { return p.Institute }, cat.AllInstituteNames())
	envelope.DepartmentDistribution = DistributionBy(records,
		func(p *publication.Publication) string { return p.Department }, cat.AllDepartmentNames())

	envelope.QRatingByCollege = CrossTab(records, college,
		func(p *publication.Publication) string { return string(p.QRating) },
		cat.CollegeLabels(), qRatingLabels())
	envelope.TypeByCollege = CrossTab(records, college,
		func(p *publication.Publication) string { return string(p.Type) },
		cat.CollegeLabels(), typeLabels())

	envelope.Hierarchy = BuildHierarchyTree(cat, records, func(p *publication.Publication) (string, string, string) {
		return p.College, p.Institute, p.Department
	})

	return envelope
}

// # Axis Helpers

func qRatingLabels() []string {
	return slice.Map(publication.AllQRatings, func(rating publication.QRating) string {
		return string(rating)
	})
}

func typeLabels() []string {
	return slice.Map(publication.AllTypes, func(pubType publication.Type) string {
		return string(pubType)
	})
}

// yearAxis builds an ascending contiguous year axis spanning the data so
// gap years render as zero bars instead of disappearing.
func yearAxis(records []*publication.Publication) []string {
	minYear, maxYear := 0, 0
	for _, record := range records {
		if record.Year == 0 {
			continue
		}
		if minYear == 0 || record.Year < minYear {
			minYear = record.Year
		}
		if record.Year > maxYear {
			maxYear = record.Year
		}
	}
	if minYear == 0 {
		return nil
	}

	axis := make([]string, 0, maxYear-minYear+1)
	for year := minYear; year <= maxYear; year++ {
		axis = append(axis, yearLabel(year))
	}
	return axis
}

func yearLabel(year int) string {
	if year == 0 {
		return catalog.NotApplicable
	}
	return strconv.Itoa(year)
}
