package schema

// PortalAccountTable represents the 'portal.account' table
type PortalAccountTable struct {
	Table      string
	ID         string
	FacultyID  string
	FullName   string
	Email      string
	Password   string
	Role       string
	College    string
	Institute  string
	Department string
	IsActive   string
	CreatedAt  string
	UpdatedAt  string
	DeletedAt  string
}

// PortalAccount is the schema definition for portal.account
var PortalAccount = PortalAccountTable{
	Table:      "portal.account",
	ID:         "id",
	FacultyID:  "facultyid",
	FullName:   "fullname",
	Email:      "email",
	Password:   "passwordhash",
	Role:       "role",
	College:    "college",
	Institute:  "institute",
	Department: "department",
	IsActive:   "isactive",
	CreatedAt:  "createdat",
	UpdatedAt:  "updatedat",
	DeletedAt:  "deletedat",
}

// Columns returns all standard column names
func (t PortalAccountTable) Columns() []string {
	return []string{
		t.ID, t.FacultyID, t.FullName, t.Email, t.Password, t.Role,
		t.College, t.Institute, t.Department, t.IsActive,
		t.CreatedAt, t.UpdatedAt, t.DeletedAt,
	}
}
