// Copyright (c) 2026 ScholarHub. All rights reserved.

package catalog

// defaultColleges is the shipped organizational hierarchy. It is plain static
// configuration: updating it requires a redeploy, by contract.
var defaultColleges = []College{
	{
		Name:          "College of Engineering and Technology",
		HasInstitutes: true,
		Institutes: []Institute{
			{
				Name: "Institute of Computer Science",
				Departments: []string{
					"Software Engineering",
					"Information Systems",
					"Data Science",
					NotApplicable,
				},
			},
			{
				Name: "Institute of Electrical Engineering",
				Departments: []string{
					"Electronics Engineering",
					"Telecommunications",
					NotApplicable,
				},
			},
			{
				Name: "Institute of Civil Engineering",
				Departments: []string{
					"Structural Engineering",
					"Environmental Engineering",
					NotApplicable,
				},
			},
		},
	},
	{
		Name:          "College of Business Administration",
		HasInstitutes: false,
		Departments: []string{
			"Accounting",
			"Finance",
			"Marketing",
			"Management",
			NotApplicable,
		},
	},
	{
		Name:          "College of Arts and Sciences",
		HasInstitutes: true,
		Institutes: []Institute{
			{
				Name: "Institute of Natural Sciences",
				Departments: []string{
					"Biology",
					"Chemistry",
					"Physics",
					"Mathematics",
					NotApplicable,
				},
			},
			{
				Name: "Institute of Social Sciences",
				Departments: []string{
					"Psychology",
					"Sociology",
					"Economics",
					NotApplicable,
				},
			},
		},
	},
	{
		Name:          "College of Medicine and Health Sciences",
		HasInstitutes: false,
		Departments: []string{
			"Nursing",
			"Pharmacy",
			"Public Health",
			NotApplicable,
		},
	},
}

var defaultCatalog = New(defaultColleges)

// Default returns the shipped catalog instance.
func Default() *Catalog {
	return defaultCatalog
}
