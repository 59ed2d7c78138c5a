// Copyright (c) 2026 ScholarHub. All rights reserved.

package publication

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/scholarhub/api/internal/catalog"
	"github.com/scholarhub/api/internal/platform/apperr"
	"github.com/scholarhub/api/internal/platform/dberr"
	"github.com/scholarhub/api/internal/platform/sec"
	"github.com/scholarhub/api/internal/platform/validate"
	"github.com/scholarhub/api/pkg/pagination"
	"github.com/scholarhub/api/pkg/textutil"
)

// Service implements the publication use cases.
type Service struct {
	repo    Repository
	catalog *catalog.Catalog
	logger  *slog.Logger
}

// NewService constructs the publication [Service].
func NewService(repo Repository, cat *catalog.Catalog, logger *slog.Logger) *Service {
	return &Service{repo: repo, catalog: cat, logger: logger}
}

// # Input DTOs

// CreateInput carries the write-path fields for a new publication record.
type CreateInput struct {
	Title           string   `json:"title"`
	Journal         string   `json:"journal"`
	Authors         []Author `json:"authors"`
	Year            int      `json:"year"`
	QRating         string   `json:"q_rating"`
	Type            string   `json:"type"`
	SubjectArea     string   `json:"subject_area"`
	SubjectCategory string   `json:"subject_category"`
	College         string   `json:"college"`
	Institute       string   `json:"institute"`
	Department      string   `json:"department"`
	DOI             *string  `json:"doi"`
}

// UpdateInput carries the mutable fields of an existing record.
// Nil pointers mean "leave unchanged".
type UpdateInput struct {
	Title           *string   `json:"title"`
	Journal         *string   `json:"journal"`
	Authors         *[]Author `json:"authors"`
	Year            *int      `json:"year"`
	QRating         *string   `json:"q_rating"`
	Type            *string   `json:"type"`
	SubjectArea     *string   `json:"subject_area"`
	SubjectCategory *string   `json:"subject_category"`
	College         *string   `json:"college"`
	Institute       *string   `json:"institute"`
	Department      *string   `json:"department"`
	DOI             *string   `json:"doi"`
}

// # Queries

// ListPublications returns a paginated, viewer-scoped publication listing.
func (service *Service) ListPublications(context context.Context, viewer *sec.AuthClaims, filter Filter, sort pagination.Sort, limit, offset int) ([]*Publication, int, error) {
	return service.repo.List(context, filter.Scoped(viewer), sort, limit, offset)
}

// GetPublication returns a single record if it lies within the viewer's scope.
//
// Out-of-scope records are reported as not found rather than forbidden, so
// callers cannot probe for the existence of records in other colleges.
func (service *Service) GetPublication(context context.Context, viewer *sec.AuthClaims, id string) (*Publication, error) {
	record, err := service.repo.FindByID(context, id)
	if err != nil {
		return nil, err
	}

	if !service.inScope(viewer, record) {
		return nil, dberr.ErrNotFound
	}

	return record, nil
}

// # Mutations

// CreatePublication validates and persists a new record owned by the caller.
//
// Faculty records are pinned to the caller's own hierarchy placement; admins
// may place a record anywhere inside their authority. Placement names are
// rewritten to their canonical catalog spelling before storage.
func (service *Service) CreatePublication(context context.Context, viewer *sec.AuthClaims, input CreateInput) (*Publication, error) {
	if err := service.validateCore(input.Title, input.Journal, input.Authors, input.Year, input.QRating, input.Type); err != nil {
		return nil, err
	}

	college := input.College
	institute := input.Institute
	department := input.Department
	if sec.UserRole(viewer.Role) == sec.RoleFaculty || college == "" {
		college = viewer.College
	}
	if sec.UserRole(viewer.Role) == sec.RoleCampusAdmin && !textutil.EqualFold(college, viewer.College) {
		return nil, apperr.Forbidden("Campus admins can only create records in their own college")
	}

	placement, err := service.resolvePlacement(college, institute, department)
	if err != nil {
		return nil, err
	}

	record := &Publication{
		OwnerID:         viewer.UserID,
		Title:           strings.TrimSpace(input.Title),
		Journal:         strings.TrimSpace(input.Journal),
		Authors:         input.Authors,
		Year:            input.Year,
		QRating:         QRating(input.QRating),
		Type:            Type(input.Type),
		SubjectArea:     strings.TrimSpace(input.SubjectArea),
		SubjectCategory: strings.TrimSpace(input.SubjectCategory),
		College:         placement.college,
		Institute:       placement.institute,
		Department:      placement.department,
		DOI:             input.DOI,
	}
	if record.Authors == nil {
		record.Authors = []Author{}
	}

	if err := service.repo.Create(context, record); err != nil {
		return nil, err
	}

	service.logger.InfoContext(context, "publication_created",
		slog.String("publication_id", record.ID),
		slog.String("owner_id", record.OwnerID),
		slog.String("college", record.College),
	)

	return record, nil
}

// UpdatePublication applies a partial update to an in-scope record.
func (service *Service) UpdatePublication(context context.Context, viewer *sec.AuthClaims, id string, input UpdateInput) (*Publication, error) {
	record, err := service.repo.FindByID(context, id)
	if err != nil {
		return nil, err
	}
	if !service.canMutate(viewer, record) {
		return nil, dberr.ErrNotFound
	}

	if input.Title != nil {
		record.Title = strings.TrimSpace(*input.Title)
	}
	if input.Journal != nil {
		record.Journal = strings.TrimSpace(*input.Journal)
	}
	if input.Authors != nil {
		record.Authors = *input.Authors
		if record.Authors == nil {
			record.Authors = []Author{}
		}
	}
	if input.Year != nil {
		record.Year = *input.Year
	}
	if input.QRating != nil {
		record.QRating = QRating(*input.QRating)
	}
	if input.Type != nil {
		record.Type = Type(*input.Type)
	}
	if input.SubjectArea != nil {
		record.SubjectArea = strings.TrimSpace(*input.SubjectArea)
	}
	if input.SubjectCategory != nil {
		record.SubjectCategory = strings.TrimSpace(*input.SubjectCategory)
	}
	if input.DOI != nil {
		record.DOI = input.DOI
	}

	if err := service.validateCore(record.Title, record.Journal, record.Authors, record.Year, string(record.QRating), string(record.Type)); err != nil {
		return nil, err
	}

	if input.College != nil || input.Institute != nil || input.Department != nil {
		college := record.College
		institute := record.Institute
		department := record.Department
		if input.College != nil {
			college = *input.College
		}
		if input.Institute != nil {
			institute = *input.Institute
		}
		if input.Department != nil {
			department = *input.Department
		}

		if sec.UserRole(viewer.Role) != sec.RoleSuperAdmin && !textutil.EqualFold(college, viewer.College) {
			return nil, apperr.Forbidden("Records cannot be moved to another college")
		}

		placement, err := service.resolvePlacement(college, institute, department)
		if err != nil {
			return nil, err
		}
		record.College = placement.college
		record.Institute = placement.institute
		record.Department = placement.department
	}

	if err := service.repo.Update(context, record); err != nil {
		return nil, err
	}

	return record, nil
}

// DeletePublication soft-deletes an in-scope record.
func (service *Service) DeletePublication(context context.Context, viewer *sec.AuthClaims, id string) error {
	record, err := service.repo.FindByID(context, id)
	if err != nil {
		return err
	}
	if !service.canMutate(viewer, record) {
		return dberr.ErrNotFound
	}

	service.logger.InfoContext(context, "publication_deleted",
		slog.String("publication_id", record.ID),
		slog.String("deleted_by", viewer.UserID),
	)

	return service.repo.SoftDelete(context, id)
}

// # Scope & Validation Helpers

// inScope reports whether the viewer may read the record.
//
// Reads are broad: admins see their authority, faculty see their own college's
// records so the dashboards work for everyone.
func (service *Service) inScope(viewer *sec.AuthClaims, record *Publication) bool {
	if viewer == nil {
		return false
	}
	if sec.UserRole(viewer.Role) == sec.RoleSuperAdmin {
		return true
	}
	return textutil.EqualFold(record.College, viewer.College)
}

// canMutate reports whether the viewer may modify or delete the record.
//
// Faculty may only touch their own records; campus admins any record in their
// college; super admins everything.
func (service *Service) canMutate(viewer *sec.AuthClaims, record *Publication) bool {
	if viewer == nil {
		return false
	}
	switch sec.UserRole(viewer.Role) {
	case sec.RoleSuperAdmin:
		return true
	case sec.RoleCampusAdmin:
		return textutil.EqualFold(record.College, viewer.College)
	default:
		return record.OwnerID == viewer.UserID
	}
}

// validateCore checks the fields shared by create and update.
func (service *Service) validateCore(title, journal string, authors []Author, year int, qRating, pubType string) error {
	v := &validate.Validator{}
	v.Required("title", title).
		MaxLen("title", title, 500).
		Required("journal", journal).
		MaxLen("journal", journal, 300).
		Range("year", year, 1900, time.Now().Year()+1).
		OneOf("q_rating", qRating, string(Q1), string(Q2), string(Q3), string(Q4)).
		OneOf("type", pubType, string(TypeScopus), string(TypeSCI), string(TypeWebOfScience)).
		Custom("authors", len(authors) == 0, "At least one author is required")

	for _, author := range authors {
		if strings.TrimSpace(author.Name) == "" {
			v.Custom("authors", true, "Author names cannot be blank")
			break
		}
	}

	return v.Err()
}

type placement struct {
	college    string
	institute  string
	department string
}

// resolvePlacement validates a college/institute/department triple against
// the catalog and normalizes it to canonical catalog spelling.
//
// Empty institute/department values resolve to the "N/A" sentinel. Unknown
// colleges are rejected on the write path.
func (service *Service) resolvePlacement(college, institute, department string) (placement, error) {
	if institute == "" {
		institute = catalog.NotApplicable
	}
	if department == "" {
		department = catalog.NotApplicable
	}

	node := service.catalog.CollegeFor(college)
	if node.Name == catalog.NotApplicable && !textutil.EqualFold(college, catalog.NotApplicable) {
		return placement{}, apperr.ValidationError("Unknown college", apperr.FieldError{
			Field: "college", Message: "Must be a configured college",
		})
	}

	if !service.catalog.IsValidDepartment(node.Name, institute, department) {
		return placement{}, apperr.ValidationError("Invalid hierarchy placement", apperr.FieldError{
			Field: "department", Message: "Department does not belong to the selected college/institute",
		})
	}

	resolved := placement{college: node.Name, institute: catalog.NotApplicable, department: catalog.NotApplicable}

	for _, name := range service.catalog.InstitutesFor(node.Name) {
		if textutil.EqualFold(name, institute) {
			resolved.institute = name
			break
		}
	}
	for _, name := range service.catalog.DepartmentsFor(node.Name, resolved.institute) {
		if textutil.EqualFold(name, department) {
			resolved.department = name
			break
		}
	}

	return resolved, nil
}
