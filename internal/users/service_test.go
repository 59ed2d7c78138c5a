// Copyright (c) 2026 ScholarHub. All rights reserved.

package users_test

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scholarhub/api/internal/catalog"
	"github.com/scholarhub/api/internal/platform/apperr"
	"github.com/scholarhub/api/internal/platform/sec"
	"github.com/scholarhub/api/internal/users"
	"github.com/scholarhub/api/pkg/pagination"
)

type fakeRepo struct {
	byID       map[string]*users.User
	lastFilter users.Filter
	created    *users.User
	updated    *users.User
	active     map[string]bool
	deleted    []string
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{byID: map[string]*users.User{}, active: map[string]bool{}}
}

func (f *fakeRepo) List(_ context.Context, filter users.Filter, _ pagination.Sort, _, _ int) ([]*users.User, int, error) {
	f.lastFilter = filter
	return nil, 0, nil
}

func (f *fakeRepo) ListAll(_ context.Context, filter users.Filter) ([]*users.User, error) {
	f.lastFilter = filter
	return nil, nil
}

func (f *fakeRepo) FindByID(_ context.Context, id string) (*users.User, error) {
	if user, ok := f.byID[id]; ok {
		copied := *user
		return &copied, nil
	}
	return nil, apperr.NotFound("User")
}

func (f *fakeRepo) FindByEmail(_ context.Context, email string) (*users.User, error) {
	for _, user := range f.byID {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, apperr.NotFound("User")
}

func (f *fakeRepo) Create(_ context.Context, user *users.User) error {
	user.ID = "generated-id"
	f.created = user
	return nil
}

func (f *fakeRepo) Update(_ context.Context, user *users.User) error {
	f.updated = user
	return nil
}

func (f *fakeRepo) SetActive(_ context.Context, id string, isActive bool) error {
	f.active[id] = isActive
	return nil
}

func (f *fakeRepo) SoftDelete(_ context.Context, id string) error {
	f.deleted = append(f.deleted, id)
	return nil
}

func newService(repo *fakeRepo) *users.Service {
	return users.NewService(repo, catalog.Default(), slog.Default())
}

func superAdmin() *sec.AuthClaims {
	return &sec.AuthClaims{UserID: "root-1", Role: string(sec.RoleSuperAdmin)}
}

func campusAdmin(college string) *sec.AuthClaims {
	return &sec.AuthClaims{UserID: "admin-1", Role: string(sec.RoleCampusAdmin), College: college}
}

/*
TestListUsers_CampusAdminScoping verifies that a campus admin's listing is
pinned to their own college and can never surface super_admin accounts, no
matter what the request filter asked for.
*/
func TestListUsers_CampusAdminScoping(t *testing.T) {
	repo := newFakeRepo()
	service := newService(repo)

	viewer := campusAdmin("College of Business Administration")
	_, _, err := service.ListUsers(context.Background(), viewer, users.Filter{
		College: "College of Engineering and Technology",
		Role:    string(sec.RoleSuperAdmin),
	}, pagination.Sort{Field: "createdat", Direction: pagination.Descending}, 15, 0)
	require.NoError(t, err)

	assert.Equal(t, "College of Business Administration", repo.lastFilter.College)
	assert.True(t, repo.lastFilter.ExcludeSuperAdmins)
	assert.Empty(t, repo.lastFilter.Role)
}

/*
TestCreateUser verifies the happy path: placement names are rewritten to
canonical catalog spelling, the email is normalized, the password is stored
hashed, and the returned entity never carries the hash.
*/
func TestCreateUser(t *testing.T) {
	repo := newFakeRepo()
	service := newService(repo)

	created, err := service.CreateUser(context.Background(), superAdmin(), users.CreateUserInput{
		FullName:   "  Dana Reyes ",
		Email:      "Dana.Reyes@Scholarhub.App",
		Password:   "long enough secret",
		Role:       string(sec.RoleCampusAdmin),
		College:    "college of business administration",
		Department: "accounting",
	})
	require.NoError(t, err)

	assert.Equal(t, "College of Business Administration", created.College)
	assert.Equal(t, catalog.NotApplicable, created.Institute)
	assert.Equal(t, "Accounting", created.Department)
	assert.Equal(t, "dana.reyes@scholarhub.app", created.Email)
	assert.Equal(t, "Dana Reyes", created.FullName)
	assert.True(t, created.IsActive)
	assert.Empty(t, created.Password)

	require.NotNil(t, repo.created)
	assert.NotEmpty(t, repo.created.Password)
	assert.NotEqual(t, "long enough secret", repo.created.Password)
}

/*
TestUpdateUser_PreservesStoredHash verifies that sanitizing the response does
not reach back into the entity the repository persisted: the stored record
keeps its password hash while the returned copy carries none.
*/
func TestUpdateUser_PreservesStoredHash(t *testing.T) {
	repo := newFakeRepo()
	repo.byID["target"] = &users.User{
		ID: "target", FullName: "Dana Reyes", Email: "dana.reyes@scholarhub.app",
		Password: "stored-hash", Role: sec.RoleFaculty,
		College: "College of Business Administration",
	}
	service := newService(repo)

	newName := "Dana R. Reyes"
	updated, err := service.UpdateUser(context.Background(), superAdmin(), "target", users.UpdateUserInput{
		FullName: &newName,
	})
	require.NoError(t, err)

	assert.Equal(t, "Dana R. Reyes", updated.FullName)
	assert.Empty(t, updated.Password)

	require.NotNil(t, repo.updated)
	assert.Equal(t, "stored-hash", repo.updated.Password)
}

/*
TestCreateUser_CampusAdminRestrictions verifies that campus admins cannot
mint admin roles or place accounts outside their own college.
*/
func TestCreateUser_CampusAdminRestrictions(t *testing.T) {
	viewer := campusAdmin("College of Business Administration")

	tests := []struct {
		name  string
		input users.CreateUserInput
	}{
		{
			"admin_role_denied",
			users.CreateUserInput{
				FullName: "A", Email: "a@scholarhub.app", Password: "long enough secret",
				Role: string(sec.RoleCampusAdmin), College: "College of Business Administration",
			},
		},
		{
			"foreign_college_denied",
			users.CreateUserInput{
				FullName: "B", Email: "b@scholarhub.app", Password: "long enough secret",
				Role: string(sec.RoleFaculty), College: "College of Arts and Sciences",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := newService(newFakeRepo())

			_, err := service.CreateUser(context.Background(), viewer, tt.input)
			require.Error(t, err)

			appError := apperr.As(err)
			require.NotNil(t, appError)
			assert.Equal(t, 403, appError.HTTPStatus)
		})
	}
}

/*
TestCreateUser_InvalidPlacement verifies that an unknown college or a
department outside the selected branch is rejected on the write path.
*/
func TestCreateUser_InvalidPlacement(t *testing.T) {
	tests := []struct {
		name  string
		input users.CreateUserInput
	}{
		{
			"unknown_college",
			users.CreateUserInput{
				FullName: "C", Email: "c@scholarhub.app", Password: "long enough secret",
				Role: string(sec.RoleFaculty), College: "College of Wizardry",
			},
		},
		{
			"department_in_wrong_branch",
			users.CreateUserInput{
				FullName: "D", Email: "d@scholarhub.app", Password: "long enough secret",
				Role: string(sec.RoleFaculty), College: "College of Business Administration",
				Department: "Data Science",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := newService(newFakeRepo())

			_, err := service.CreateUser(context.Background(), superAdmin(), tt.input)
			require.Error(t, err)

			appError := apperr.As(err)
			require.NotNil(t, appError)
			assert.Equal(t, 400, appError.HTTPStatus)
		})
	}
}

/*
TestGetUser_OutOfScopeHidden verifies that out-of-scope accounts surface as
404, so a campus admin cannot distinguish foreign accounts from missing ones.
*/
func TestGetUser_OutOfScopeHidden(t *testing.T) {
	repo := newFakeRepo()
	repo.byID["target"] = &users.User{
		ID: "target", Role: sec.RoleFaculty, College: "College of Arts and Sciences",
	}
	repo.byID["root"] = &users.User{
		ID: "root", Role: sec.RoleSuperAdmin, College: "College of Business Administration",
	}
	service := newService(repo)

	viewer := campusAdmin("College of Business Administration")

	for _, id := range []string{"target", "root"} {
		_, err := service.GetUser(context.Background(), viewer, id)
		require.Error(t, err)

		appError := apperr.As(err)
		require.NotNil(t, appError)
		assert.Equal(t, 404, appError.HTTPStatus)
	}

	_, err := service.GetUser(context.Background(), superAdmin(), "target")
	assert.NoError(t, err)
}

/*
TestSetUserActive_SelfLockout verifies that admins cannot deactivate their
own account.
*/
func TestSetUserActive_SelfLockout(t *testing.T) {
	repo := newFakeRepo()
	repo.byID["root-1"] = &users.User{
		ID: "root-1", Role: sec.RoleSuperAdmin, IsActive: true,
	}
	repo.byID["other"] = &users.User{
		ID: "other", Role: sec.RoleFaculty, IsActive: true,
	}
	service := newService(repo)

	err := service.SetUserActive(context.Background(), superAdmin(), "root-1", false)
	require.Error(t, err)

	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, 422, appError.HTTPStatus)

	require.NoError(t, service.SetUserActive(context.Background(), superAdmin(), "other", false))
	assert.False(t, repo.active["other"])
}
