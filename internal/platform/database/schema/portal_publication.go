package schema

// PortalPublicationTable represents the 'portal.publication' table
type PortalPublicationTable struct {
	Table           string
	ID              string
	OwnerID         string
	Title           string
	Journal         string
	Authors         string
	Year            string
	QRating         string
	Type            string
	SubjectArea     string
	SubjectCategory string
	College         string
	Institute       string
	Department      string
	DOI             string
	CreatedAt       string
	UpdatedAt       string
	DeletedAt       string
}

// PortalPublication is the schema definition for portal.publication
var PortalPublication = PortalPublicationTable{
	Table:           "portal.publication",
	ID:              "id",
	OwnerID:         "ownerid",
	Title:           "title",
	Journal:         "journal",
	Authors:         "authors",
	Year:            "year",
	QRating:         "qrating",
	Type:            "pubtype",
	SubjectArea:     "subjectarea",
	SubjectCategory: "subjectcategory",
	College:         "college",
	Institute:       "institute",
	Department:      "department",
	DOI:             "doi",
	CreatedAt:       "createdat",
	UpdatedAt:       "updatedat",
	DeletedAt:       "deletedat",
}

// Columns returns all standard column names
func (t PortalPublicationTable) Columns() []string {
	return []string{
		t.ID, t.OwnerID, t.Title, t.Journal, t.Authors, t.Year, t.QRating,
		t.Type, t.SubjectArea, t.SubjectCategory, t.College, t.Institute,
		t.Department, t.DOI, t.CreatedAt, t.UpdatedAt, t.DeletedAt,
	}
}
