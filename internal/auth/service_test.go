// Copyright (c) 2026 ScholarHub. All rights reserved.

package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scholarhub/api/internal/auth"
	"github.com/scholarhub/api/internal/platform/apperr"
	"github.com/scholarhub/api/internal/platform/sec"
	"github.com/scholarhub/api/internal/users"
)

type fakeAccounts struct {
	byEmail map[string]*users.User
	byID    map[string]*users.User
}

func (f *fakeAccounts) FindByEmail(_ context.Context, email string) (*users.User, error) {
	if account, ok := f.byEmail[email]; ok {
		copied := *account
		return &copied, nil
	}
	return nil, apperr.NotFound("User")
}

func (f *fakeAccounts) FindByID(_ context.Context, id string) (*users.User, error) {
	if account, ok := f.byID[id]; ok {
		copied := *account
		return &copied, nil
	}
	return nil, apperr.NotFound("User")
}

type fakeSessions struct {
	byHash  map[string]*auth.Session
	revoked []string
}

func (f *fakeSessions) Create(_ context.Context, session *auth.Session) error {
	if f.byHash == nil {
		f.byHash = map[string]*auth.Session{}
	}
	f.byHash[session.TokenHash] = session
	return nil
}

func (f *fakeSessions) FindByTokenHash(_ context.Context, tokenHash string) (*auth.Session, error) {
	if session, ok := f.byHash[tokenHash]; ok && !session.IsRevoked {
		return session, nil
	}
	return nil, apperr.NotFound("Session")
}

func (f *fakeSessions) Revoke(_ context.Context, sessionID string) error {
	f.revoked = append(f.revoked, sessionID)
	for _, session := range f.byHash {
		if session.ID == sessionID {
			session.IsRevoked = true
		}
	}
	return nil
}

func (f *fakeSessions) RevokeAll(_ context.Context, userID string) error {
	for _, session := range f.byHash {
		if session.UserID == userID {
			session.IsRevoked = true
		}
	}
	return nil
}

func (f *fakeSessions) DeleteExpired(_ context.Context) error { return nil }

type fakeTokens struct{}

func (fakeTokens) GenerateAccessToken(userID, _, _, _ string, _ time.Duration) (string, error) {
	return "token-for-" + userID, nil
}

func newFixture(t *testing.T) (*auth.Service, *fakeSessions) {
	t.Helper()

	hash, err := sec.HashPassword("correct horse battery")
	require.NoError(t, err)

	accounts := &fakeAccounts{
		byEmail: map[string]*users.User{},
		byID:    map[string]*users.User{},
	}
	active := &users.User{
		ID:       "user-1",
		Email:    "staff@scholarhub.app",
		Password: hash,
		Role:     sec.RoleFaculty,
		College:  "College of Business Administration",
		IsActive: true,
	}
	inactive := &users.User{
		ID:       "user-2",
		Email:    "gone@scholarhub.app",
		Password: hash,
		Role:     sec.RoleFaculty,
		IsActive: false,
	}
	accounts.byEmail[active.Email] = active
	accounts.byEmail[inactive.Email] = inactive
	accounts.byID[active.ID] = active
	accounts.byID[inactive.ID] = inactive

	sessions := &fakeSessions{}
	return auth.NewService(accounts, sessions, fakeTokens{}, 15*time.Minute), sessions
}

/*
TestLogin verifies the happy path: a token pair is issued, a refresh
session is tracked, and the password hash never leaves the service.
*/
func TestLogin(t *testing.T) {
	service, sessions := newFixture(t)

	session, err := service.Login(context.Background(), auth.LoginInput{
		Email:    "staff@scholarhub.app",
		Password: "correct horse battery",
	})
	require.NoError(t, err)

	assert.Equal(t, "token-for-user-1", session.AccessToken)
	assert.NotEmpty(t, session.RefreshToken)
	assert.Empty(t, session.User.Password)
	assert.Len(t, sessions.byHash, 1)
}

/*
TestLogin_Rejections verifies that bad credentials and deactivated accounts
all surface as the same generic unauthorized error.
*/
func TestLogin_Rejections(t *testing.T) {
	service, _ := newFixture(t)

	tests := []struct {
		name  string
		input auth.LoginInput
	}{
		{"unknown_email", auth.LoginInput{Email: "nobody@scholarhub.app", Password: "correct horse battery"}},
		{"wrong_password", auth.LoginInput{Email: "staff@scholarhub.app", Password: "wrong"}},
		{"deactivated_account", auth.LoginInput{Email: "gone@scholarhub.app", Password: "correct horse battery"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.Login(context.Background(), tt.input)
			require.Error(t, err)

			appError := apperr.As(err)
			require.NotNil(t, appError)
			assert.Equal(t, 401, appError.HTTPStatus)
		})
	}
}

/*
TestRefreshSession_Rotation verifies that refreshing revokes the presented
token's session and a replay of the old token is rejected.
*/
func TestRefreshSession_Rotation(t *testing.T) {
	service, sessions := newFixture(t)

	login, err := service.Login(context.Background(), auth.LoginInput{
		Email:    "staff@scholarhub.app",
		Password: "correct horse battery",
	})
	require.NoError(t, err)

	refreshed, err := service.RefreshSession(context.Background(), login.RefreshToken, "", "")
	require.NoError(t, err)
	assert.NotEqual(t, login.RefreshToken, refreshed.RefreshToken)
	assert.Len(t, sessions.revoked, 1)

	_, err = service.RefreshSession(context.Background(), login.RefreshToken, "", "")
	assert.Error(t, err, "a rotated token must be dead on arrival")
}

/*
TestLogout_Idempotent verifies that logging out an unknown token succeeds.
*/
func TestLogout_Idempotent(t *testing.T) {
	service, _ := newFixture(t)

	assert.NoError(t, service.Logout(context.Background(), "never-issued"))
}
