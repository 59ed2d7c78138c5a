// Copyright (c) 2026 ScholarHub. All rights reserved.

package users

import (
	"context"
	"log/slog"
	"strings"

	"github.com/scholarhub/api/internal/catalog"
	"github.com/scholarhub/api/internal/platform/apperr"
	"github.com/scholarhub/api/internal/platform/dberr"
	"github.com/scholarhub/api/internal/platform/sec"
	"github.com/scholarhub/api/internal/platform/validate"
	"github.com/scholarhub/api/pkg/pagination"
	"github.com/scholarhub/api/pkg/textutil"
)

// Service implements the user-management use cases.
type Service struct {
	repo    Repository
	catalog *catalog.Catalog
	logger  *slog.Logger
}

// NewService constructs the users [Service].
func NewService(repo Repository, cat *catalog.Catalog, logger *slog.Logger) *Service {
	return &Service{repo: repo, catalog: cat, logger: logger}
}

// # Input DTOs

// CreateUserInput carries the write-path fields for a new account.
type CreateUserInput struct {
	FacultyID  string `json:"faculty_id"`
	FullName   string `json:"full_name"`
	Email      string `json:"email"`
	Password   string `json:"password"`
	Role       string `json:"role"`
	College    string `json:"college"`
	Institute  string `json:"institute"`
	Department string `json:"department"`
}

// UpdateUserInput carries the mutable fields of an existing account.
// Nil pointers mean "leave unchanged".
type UpdateUserInput struct {
	FacultyID  *string `json:"faculty_id"`
	FullName   *string `json:"full_name"`
	Email      *string `json:"email"`
	Role       *string `json:"role"`
	College    *string `json:"college"`
	Institute  *string `json:"institute"`
	Department *string `json:"department"`
}

// # Queries

// ListUsers returns a paginated, viewer-scoped account listing.
func (service *Service) ListUsers(context context.Context, viewer *sec.AuthClaims, filter Filter, sort pagination.Sort, limit, offset int) ([]*User, int, error) {
	return service.repo.List(context, filter.Scoped(viewer), sort, limit, offset)
}

// GetUser returns a single account if it lies within the viewer's scope.
//
// Out-of-scope accounts are reported as not found rather than forbidden, so
// campus admins cannot probe for the existence of foreign accounts.
func (service *Service) GetUser(context context.Context, viewer *sec.AuthClaims, id string) (*User, error) {
	user, err := service.repo.FindByID(context, id)
	if err != nil {
		return nil, err
	}

	if !service.inScope(viewer, user) {
		return nil, dberr.ErrNotFound
	}

	user.Password = ""
	return user, nil
}

// # Mutations

// CreateUser validates and persists a new account.
//
// Campus admins may only create faculty accounts inside their own college;
// super admins may create any role anywhere. Hierarchy placement is checked
// against the catalog, and the stored names are rewritten to their canonical
// catalog spelling.
func (service *Service) CreateUser(context context.Context, viewer *sec.AuthClaims, input CreateUserInput) (*User, error) {
	v := &validate.Validator{}
	v.Required("full_name", input.FullName).
		MaxLen("full_name", input.FullName, 150).
		Email("email", input.Email).
		MinLen("password", input.Password, 8).
		OneOf("role", input.Role, string(sec.RoleSuperAdmin), string(sec.RoleCampusAdmin), string(sec.RoleFaculty))
	if err := v.Err(); err != nil {
		return nil, err
	}

	if sec.UserRole(viewer.Role) != sec.RoleSuperAdmin {
		if input.Role != string(sec.RoleFaculty) {
			return nil, apperr.Forbidden("Campus admins can only create faculty accounts")
		}
		if !textutil.EqualFold(input.College, viewer.College) {
			return nil, apperr.Forbidden("Campus admins can only create accounts in their own college")
		}
	}

	placement, err := service.resolvePlacement(input.College, input.Institute, input.Department)
	if err != nil {
		return nil, err
	}

	passwordHash, err := sec.HashPassword(input.Password)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	user := &User{
		FacultyID:  strings.TrimSpace(input.FacultyID),
		FullName:   strings.TrimSpace(input.FullName),
		Email:      strings.ToLower(strings.TrimSpace(input.Email)),
		Password:   passwordHash,
		Role:       sec.UserRole(input.Role),
		College:    placement.college,
		Institute:  placement.institute,
		Department: placement.department,
		IsActive:   true,
	}

	if err := service.repo.Create(context, user); err != nil {
		return nil, err
	}

	service.logger.InfoContext(context, "user_created",
		slog.String("user_id", user.ID),
		slog.String("role", string(user.Role)),
		slog.String("college", user.College),
	)

	// The repository keeps the entity it was handed; sanitize a copy so the
	// stored hash survives.
	sanitized := *user
	sanitized.Password = ""
	return &sanitized, nil
}

// UpdateUser applies a partial update to an account within the viewer's scope.
func (service *Service) UpdateUser(context context.Context, viewer *sec.AuthClaims, id string, input UpdateUserInput) (*User, error) {
	user, err := service.repo.FindByID(context, id)
	if err != nil {
		return nil, err
	}
	if !service.inScope(viewer, user) {
		return nil, dberr.ErrNotFound
	}

	v := &validate.Validator{}

	if input.FacultyID != nil {
		user.FacultyID = strings.TrimSpace(*input.FacultyID)
	}
	if input.FullName != nil {
		v.Required("full_name", *input.FullName).MaxLen("full_name", *input.FullName, 150)
		user.FullName = strings.TrimSpace(*input.FullName)
	}
	if input.Email != nil {
		v.Email("email", *input.Email)
		user.Email = strings.ToLower(strings.TrimSpace(*input.Email))
	}
	if input.Role != nil {
		v.OneOf("role", *input.Role, string(sec.RoleSuperAdmin), string(sec.RoleCampusAdmin), string(sec.RoleFaculty))
		if sec.UserRole(viewer.Role) != sec.RoleSuperAdmin && *input.Role != string(sec.RoleFaculty) {
			return nil, apperr.Forbidden("Campus admins cannot grant admin roles")
		}
		user.Role = sec.UserRole(*input.Role)
	}
	if err := v.Err(); err != nil {
		return nil, err
	}

	if input.College != nil || input.Institute != nil || input.Department != nil {
		college := user.College
		institute := user.Institute
		department := user.Department
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
			return nil, apperr.Forbidden("Campus admins cannot move accounts to another college")
		}

		placement, err := service.resolvePlacement(college, institute, department)
		if err != nil {
			return nil, err
		}
		user.College = placement.college
		user.Institute = placement.institute
		user.Department = placement.department
	}

	if err := service.repo.Update(context, user); err != nil {
		return nil, err
	}

	sanitized := *user
	sanitized.Password = ""
	return &sanitized, nil
}

// SetUserActive toggles the active flag on an in-scope account.
func (service *Service) SetUserActive(context context.Context, viewer *sec.AuthClaims, id string, isActive bool) error {
	user, err := service.repo.FindByID(context, id)
	if err != nil {
		return err
	}
	if !service.inScope(viewer, user) {
		return dberr.ErrNotFound
	}
	if user.ID == viewer.UserID {
		return apperr.Unprocessable("You cannot deactivate your own account")
	}

	return service.repo.SetActive(context, id, isActive)
}

// DeleteUser soft-deletes an in-scope account.
func (service *Service) DeleteUser(context context.Context, viewer *sec.AuthClaims, id string) error {
	user, err := service.repo.FindByID(context, id)
	if err != nil {
		return err
	}
	if !service.inScope(viewer, user) {
		return dberr.ErrNotFound
	}
	if user.ID == viewer.UserID {
		return apperr.Unprocessable("You cannot delete your own account")
	}

	service.logger.InfoContext(context, "user_deleted",
		slog.String("user_id", user.ID),
		slog.String("deleted_by", viewer.UserID),
	)

	return service.repo.SoftDelete(context, id)
}

// # Scope & Placement Helpers

// inScope reports whether the viewer is allowed to see the target account.
func (service *Service) inScope(viewer *sec.AuthClaims, target *User) bool {
	if viewer == nil {
		return false
	}
	if sec.UserRole(viewer.Role) == sec.RoleSuperAdmin {
		return true
	}
	if target.Role == sec.RoleSuperAdmin {
		return false
	}
	return textutil.EqualFold(target.College, viewer.College)
}

type placement struct {
	college    string
	institute  string
	department string
}

// resolvePlacement validates a college/institute/department triple against
// the catalog and normalizes it to canonical catalog spelling.
//
// Empty institute/department values resolve to the "N/A" sentinel. An
// unknown college is rejected on the write path — reads degrade to "N/A",
// but persisting a dangling placement would poison every future aggregation.
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

	// Rewrite institute/department to catalog spelling.
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
